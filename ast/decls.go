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

// Decl is the base for all declarations.
type Decl interface {
	DeclName() string
	isDecl()
}

// Type synonym: `type T a = body`
type TySyn struct {
	Name   names.Name
	Params []TParam
	Body   Type
	Range  names.Range
}

// Newtype: `newtype T a = { x : a }`
type Newtype struct {
	Name   names.Name
	Params []TParam
	Fields []TField
	// Name of the constructor function. Defaults to Name when empty.
	ConName names.Name
	Range   names.Range
}

// Primitive (abstract) type: `primitive type T : # -> *`
type PrimType struct {
	Name  names.Name
	Kind  *types.Kind
	Props []Type
	Range names.Range
}

// Module type parameter: `parameter type n : #`
type ParamType struct {
	Name  names.Name
	Kind  *types.Kind
	Range names.Range
}

// Module parameter constraint: `parameter type constraint (fin n)`
type ParamConstraint struct {
	Props []Type
	Range names.Range
}

// Module parameter function: `parameter f : schema`
type ParamFun struct {
	Name   names.Name
	Schema *Schema
	Range  names.Range
}

// BindGroup is one strongly-connected group of value bindings.
type BindGroup struct {
	Recursive bool
	Binds     []*Bind
}

// Submodule: `submodule M where ds`
type Submodule struct {
	Name  names.Name
	Decls []Decl
	Range names.Range
}

// Value binding: `f p1 p2 = e`, `f : schema`, `primitive f : schema`
type Bind struct {
	Name   names.Name
	Params []Pattern
	// Body is nil for primitives.
	Body      Expr
	Signature *Schema
	// Mono marks a binding which must not be generalized.
	Mono  bool
	Prim  bool
	Range names.Range
}

func (*TySyn) DeclName() string           { return "TySyn" }
func (*Newtype) DeclName() string         { return "Newtype" }
func (*PrimType) DeclName() string        { return "PrimType" }
func (*ParamType) DeclName() string       { return "ParamType" }
func (*ParamConstraint) DeclName() string { return "ParamConstraint" }
func (*ParamFun) DeclName() string        { return "ParamFun" }
func (*BindGroup) DeclName() string       { return "BindGroup" }
func (*Submodule) DeclName() string       { return "Submodule" }

func (*TySyn) isDecl()           {}
func (*Newtype) isDecl()         {}
func (*PrimType) isDecl()        {}
func (*ParamType) isDecl()       {}
func (*ParamConstraint) isDecl() {}
func (*ParamFun) isDecl()        {}
func (*BindGroup) isDecl()       {}
func (*Submodule) isDecl()       {}

// IsParameterized reports whether a submodule declares module parameters.
func (m *Submodule) IsParameterized() bool {
	for _, d := range m.Decls {
		switch d.(type) {
		case *ParamType, *ParamConstraint, *ParamFun:
			return true
		}
	}
	return false
}

// Module is a name-resolved top-level module.
type Module struct {
	Name    names.Name
	Imports []names.Name
	Decls   []Decl
}
