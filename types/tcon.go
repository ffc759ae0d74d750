// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"strconv"
)

// TCTag identifies a type constructor, type function, or predicate constructor.
type TCTag uint8

const (
	// Type constructors:
	TCNum TCTag = iota
	TCInf
	TCBit
	TCInteger
	TCRational
	TCIntMod
	TCSeq
	TCFun
	TCTuple
	TCAbstract

	// Type functions:
	TFAdd
	TFSub
	TFMul
	TFDiv
	TFMod
	TFExp
	TFWidth
	TFMin
	TFMax
	TFCeilDiv
	TFCeilMod
	TFLenFromThenTo

	// Predicate constructors:
	PCEqual
	PCNeq
	PCGeq
	PCFin
	PCPrime
	PCHas
	PCZero
	PCLogic
	PCRing
	PCIntegral
	PCField
	PCRound
	PCEq
	PCCmp
	PCSignedCmp
	PCLiteral
	PCLiteralLessThan
	PCFLiteral
	PCAnd
	PCTrue
)

// TC is a type constructor together with its static parameters.
type TC struct {
	Tag TCTag
	// Value of a numeric literal, or the arity of a tuple.
	N int64
	// Declaration of a primitive (abstract) type.
	Abstract *AbstractType
	// Selector of a Has predicate.
	Sel Selector
}

// Equal compares two constructors.
func (c TC) Equal(d TC) bool {
	if c.Tag != d.Tag {
		return false
	}
	switch c.Tag {
	case TCNum, TCTuple:
		return c.N == d.N
	case TCAbstract:
		return c.Abstract.Name.ID == d.Abstract.Name.ID
	case PCHas:
		return c.Sel.Equal(d.Sel)
	}
	return true
}

// IsTypeFun reports whether c is a numeric type function.
func (c TC) IsTypeFun() bool { return c.Tag >= TFAdd && c.Tag <= TFLenFromThenTo }

// IsProp reports whether c constructs a predicate.
func (c TC) IsProp() bool { return c.Tag >= PCEqual }

// IsClass reports whether c is a class-like predicate over value types.
func (c TC) IsClass() bool { return c.Tag >= PCZero && c.Tag <= PCFLiteral }

// Kind of the constructor.
func (c TC) Kind() *Kind {
	switch c.Tag {
	case TCNum, TCInf:
		return KNum
	case TCBit, TCInteger, TCRational:
		return KType
	case TCIntMod:
		return KFun(KNum, KType)
	case TCSeq:
		return KFuns(KType, KNum, KType)
	case TCFun:
		return KFuns(KType, KType, KType)
	case TCTuple:
		args := make([]*Kind, c.N)
		for i := range args {
			args[i] = KType
		}
		return KFuns(KType, args...)
	case TCAbstract:
		return c.Abstract.K
	case TFWidth:
		return KFun(KNum, KNum)
	case TFLenFromThenTo:
		return KFuns(KNum, KNum, KNum, KNum)
	case PCEqual, PCNeq, PCGeq:
		return KFuns(KProp, KNum, KNum)
	case PCFin, PCPrime:
		return KFun(KNum, KProp)
	case PCHas:
		return KFuns(KProp, KType, KType)
	case PCZero, PCLogic, PCRing, PCIntegral, PCField, PCRound, PCEq, PCCmp, PCSignedCmp:
		return KFun(KType, KProp)
	case PCLiteral, PCLiteralLessThan:
		return KFuns(KProp, KNum, KType)
	case PCFLiteral:
		return KFuns(KProp, KNum, KNum, KNum, KType)
	case PCAnd:
		return KFuns(KProp, KProp, KProp)
	case PCTrue:
		return KProp
	}
	if c.IsTypeFun() {
		return KFuns(KNum, KNum, KNum)
	}
	return nil
}

var tcNames = map[TCTag]string{
	TCInf:             "inf",
	TCBit:             "Bit",
	TCInteger:         "Integer",
	TCRational:        "Rational",
	TCIntMod:          "Z",
	TCSeq:             "[]",
	TCFun:             "->",
	TFAdd:             "+",
	TFSub:             "-",
	TFMul:             "*",
	TFDiv:             "/",
	TFMod:             "%",
	TFExp:             "^^",
	TFWidth:           "width",
	TFMin:             "min",
	TFMax:             "max",
	TFCeilDiv:         "/^",
	TFCeilMod:         "%^",
	TFLenFromThenTo:   "lengthFromThenTo",
	PCEqual:           "==",
	PCNeq:             "!=",
	PCGeq:             ">=",
	PCFin:             "fin",
	PCPrime:           "prime",
	PCHas:             "Has",
	PCZero:            "Zero",
	PCLogic:           "Logic",
	PCRing:            "Ring",
	PCIntegral:        "Integral",
	PCField:           "Field",
	PCRound:           "Round",
	PCEq:              "Eq",
	PCCmp:             "Cmp",
	PCSignedCmp:       "SignedCmp",
	PCLiteral:         "Literal",
	PCLiteralLessThan: "LiteralLessThan",
	PCFLiteral:        "FLiteral",
	PCAnd:             "&&",
	PCTrue:            "True",
}

func (c TC) String() string {
	switch c.Tag {
	case TCNum:
		return strconv.FormatInt(c.N, 10)
	case TCTuple:
		return "(" + strconv.FormatInt(c.N, 10) + ")"
	case TCAbstract:
		return c.Abstract.Name.Ident
	}
	return tcNames[c.Tag]
}

// LookupTC finds a built-in constructor, type function, or class by its surface name.
func LookupTC(name string) (TC, bool) {
	for tag, s := range tcNames {
		if s == name && tag != TCSeq && tag != TCFun {
			return TC{Tag: tag}, true
		}
	}
	return TC{}, false
}
