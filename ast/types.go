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

package ast

import (
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Type is the base for surface type syntax. Surface types are kind-checked and
// translated into types.Type by the checker.
type Type interface {
	TypeName() string
	isType()
}

// Use of a named type: a type parameter, synonym, newtype, or primitive type.
type TUser struct {
	Name names.Name
	Args []Type
}

// Built-in constructor, type function, or predicate: `inf`, `Z n`, `a + b`, `fin n`
type TBuiltin struct {
	Tag  types.TCTag
	Args []Type
}

// Function type: `a -> b`
type TFun struct {
	From, To Type
}

// Sequence type: `[n]a`
type TSeq struct {
	Len, Elem Type
}

// Bit type
type TBit struct{}

// Numeric literal type: `8`
type TNum struct {
	N int64
}

// Character as a numeric type: `'a'`
type TChar struct {
	C rune
}

// Tuple type: `(a, b)`
type TTuple struct {
	Elems []Type
}

// Record type: `{ x : a }`
type TRecord struct {
	Fields []TField
}

// Labelled field type
type TField struct {
	Label string
	Type  Type
}

// Wildcard type: `_`
type TWild struct{}

// Existential type-variable shared across the enclosing function body.
type TExistential struct {
	Ident string
}

// Type with a source range.
type TLocated struct {
	Range names.Range
	Type  Type
}

func (*TUser) TypeName() string        { return "TUser" }
func (*TBuiltin) TypeName() string     { return "TBuiltin" }
func (*TFun) TypeName() string         { return "TFun" }
func (*TSeq) TypeName() string         { return "TSeq" }
func (*TBit) TypeName() string         { return "TBit" }
func (*TNum) TypeName() string         { return "TNum" }
func (*TChar) TypeName() string        { return "TChar" }
func (*TTuple) TypeName() string       { return "TTuple" }
func (*TRecord) TypeName() string      { return "TRecord" }
func (*TWild) TypeName() string        { return "TWild" }
func (*TExistential) TypeName() string { return "TExistential" }
func (*TLocated) TypeName() string     { return "TLocated" }

func (*TUser) isType()        {}
func (*TBuiltin) isType()     {}
func (*TFun) isType()         {}
func (*TSeq) isType()         {}
func (*TBit) isType()         {}
func (*TNum) isType()         {}
func (*TChar) isType()        {}
func (*TTuple) isType()       {}
func (*TRecord) isType()      {}
func (*TWild) isType()        {}
func (*TExistential) isType() {}
func (*TLocated) isType()     {}

// Declared type parameter. Kind is nil when it should be inferred.
type TParam struct {
	Name names.Name
	Kind *types.Kind
}

// Schema is a written type signature: `{a, n} (fin n) => [n]a -> a`
type Schema struct {
	Params []TParam
	Props  []Type
	Body   Type
	Range  names.Range
}
