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

package dtinfer

import (
	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/types"
)

var bitsPerDigit = map[int]int64{2: 1, 8: 3, 16: 4}

// Numeric literals call `number`. A decimal literal takes the expected type as
// its representation; other bases fix a word width from the written digits.
func (m *inferM) checkNum(e *ast.Num, exp expected) core.Expr {
	rep := exp.Type
	if bits, ok := bitsPerDigit[e.Base]; ok {
		rep = types.TWord(types.TNum(int64(e.Digits) * bits))
	}
	return m.checkPrim(CtLiteral{}, "number", map[string]types.Type{"val": types.TNum(e.Value), "rep": rep}, exp)
}

func (m *inferM) checkFrac(e *ast.Frac, exp expected) core.Expr {
	return m.checkPrim(CtLiteral{}, "fraction", map[string]types.Type{
		"m": types.TNum(e.Num),
		"n": types.TNum(e.Den),
		"r": types.TNum(0),
		"a": exp.Type,
	}, exp)
}

func (m *inferM) checkChar(c rune, exp expected) core.Expr {
	return m.checkPrim(CtLiteral{}, "number", map[string]types.Type{"val": types.TNum(int64(c)), "rep": types.TWord(types.TNum(8))}, exp)
}

func (m *inferM) checkString(s string, exp expected) core.Expr {
	chars := []rune(s)
	char := types.TWord(types.TNum(8))
	m.unify(exp, types.TSeq(types.TNum(int64(len(chars))), char))
	elems := make([]core.Expr, len(chars))
	for i, c := range chars {
		elems[i] = m.checkChar(c, expected{char, types.TypeOfSeqElement{}})
	}
	return &core.EList{Elems: elems, ElemType: char}
}

// Enumerations call one of the range primitives, chosen by which bounds are given.
func (m *inferM) checkRange(e *ast.Range, exp expected) core.Expr {
	num := func(t ast.Type) types.Type {
		if t == nil {
			return nil
		}
		return m.checkType(t, types.KNum)
	}
	var elem types.Type
	if e.Elem != nil {
		elem = m.checkType(e.Elem, types.KType)
	}
	args := map[string]types.Type{"first": num(e.First), "a": elem}
	var prim string
	switch {
	case e.Next != nil:
		prim = "fromThenTo"
		args["next"], args["last"] = num(e.Next), num(e.Last)
	case e.Stride != nil && !e.Down && e.Strict:
		prim = "fromToByLessThan"
		args["bound"], args["stride"] = num(e.Last), num(e.Stride)
	case e.Stride != nil && !e.Down:
		prim = "fromToBy"
		args["last"], args["stride"] = num(e.Last), num(e.Stride)
	case e.Stride != nil && e.Strict:
		prim = "fromToDownByGreaterThan"
		args["bound"], args["stride"] = num(e.Last), num(e.Stride)
	case e.Stride != nil:
		prim = "fromToDownBy"
		args["last"], args["stride"] = num(e.Last), num(e.Stride)
	case e.Strict:
		prim = "fromToLessThan"
		args["bound"] = num(e.Last)
	default:
		prim = "fromTo"
		args["last"] = num(e.Last)
	}
	return m.checkPrim(CtEnumeration{}, prim, args, exp)
}

// Infinite enumerations apply `infFrom` or `infFromThen` to their bounds.
func (m *inferM) checkInfFrom(e *ast.InfFrom, exp expected) core.Expr {
	if e.Next == nil {
		return m.checkE(&ast.App{Fun: &ast.Var{Name: m.prim("infFrom")}, Arg: e.First}, exp)
	}
	return m.checkE(&ast.App{Fun: &ast.App{Fun: &ast.Var{Name: m.prim("infFromThen")}, Arg: e.First}, Arg: e.Next}, exp)
}
