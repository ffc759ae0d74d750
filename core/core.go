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

// Package core holds the elaborated program produced by type inference. Every
// term is explicitly typed: polymorphic values are abstracted over their type
// parameters and predicates, and every use applies them.
package core

import (
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Expr is the base for all elaborated expressions.
type Expr interface {
	ExprName() string
	isExpr()
}

var (
	_ Expr = (*EVar)(nil)
	_ Expr = (*ETApp)(nil)
	_ Expr = (*EProofApp)(nil)
	_ Expr = (*EApp)(nil)
	_ Expr = (*EAbs)(nil)
	_ Expr = (*ETAbs)(nil)
	_ Expr = (*EProofAbs)(nil)
	_ Expr = (*ETuple)(nil)
	_ Expr = (*ERec)(nil)
	_ Expr = (*ESel)(nil)
	_ Expr = (*ESet)(nil)
	_ Expr = (*EList)(nil)
	_ Expr = (*EComp)(nil)
	_ Expr = (*EIf)(nil)
	_ Expr = (*EWhere)(nil)
	_ Expr = (*ELocated)(nil)
	_ Expr = (*EHasSel)(nil)
	_ Expr = (*EHasSet)(nil)
)

// Variable
type EVar struct {
	Name names.Name
}

// Type application
type ETApp struct {
	Expr Expr
	Type types.Type
}

// Application to the evidence of a predicate
type EProofApp struct {
	Expr Expr
}

// Application
type EApp struct {
	Fun, Arg Expr
}

// Abstraction over a typed variable
type EAbs struct {
	Name names.Name
	Type types.Type
	Body Expr
}

// Type abstraction
type ETAbs struct {
	Param *types.TParam
	Body  Expr
}

// Abstraction over the evidence of a predicate
type EProofAbs struct {
	Prop types.Type
	Body Expr
}

// Tuple
type ETuple struct {
	Elems []Expr
}

// Record, with fields in label order
type ERec struct {
	Fields []Field
}

// Labelled field value
type Field struct {
	Label string
	Expr  Expr
}

// Selection from a record, tuple or sequence
type ESel struct {
	Expr Expr
	Sel  types.Selector
}

// Update of a field. Type is the type of the updated value.
type ESet struct {
	Type  types.Type
	Expr  Expr
	Sel   types.Selector
	Value Expr
}

// Sequence literal
type EList struct {
	Elems    []Expr
	ElemType types.Type
}

// Comprehension. Len and Elem describe the resulting sequence.
type EComp struct {
	Len    types.Type
	Elem   types.Type
	Result Expr
	Arms   [][]Match
}

// Match is a qualifier of a comprehension arm.
type Match interface {
	isMatch()
}

// Generator drawing Name from Expr, a sequence of Len elements of type Type.
type From struct {
	Name names.Name
	Len  types.Type
	Type types.Type
	Expr Expr
}

// Local definition within a comprehension arm
type Let struct {
	Decl *Decl
}

func (*From) isMatch() {}
func (*Let) isMatch()  {}

// Conditional
type EIf struct {
	Cond, Then, Else Expr
}

// Local declarations
type EWhere struct {
	Expr  Expr
	Decls []DeclGroup
}

// Expression with a source range
type ELocated struct {
	Range names.Range
	Expr  Expr
}

// Selection through an unresolved selector goal. Every EHasSel is replaced by a
// concrete selection once the goal is solved; none remain in a finished module.
type EHasSel struct {
	Goal int
	Expr Expr
}

// Update through an unresolved selector goal.
type EHasSet struct {
	Goal  int
	Expr  Expr
	Value Expr
}

func (*EVar) ExprName() string      { return "EVar" }
func (*ETApp) ExprName() string     { return "ETApp" }
func (*EProofApp) ExprName() string { return "EProofApp" }
func (*EApp) ExprName() string      { return "EApp" }
func (*EAbs) ExprName() string      { return "EAbs" }
func (*ETAbs) ExprName() string     { return "ETAbs" }
func (*EProofAbs) ExprName() string { return "EProofAbs" }
func (*ETuple) ExprName() string    { return "ETuple" }
func (*ERec) ExprName() string      { return "ERec" }
func (*ESel) ExprName() string      { return "ESel" }
func (*ESet) ExprName() string      { return "ESet" }
func (*EList) ExprName() string     { return "EList" }
func (*EComp) ExprName() string     { return "EComp" }
func (*EIf) ExprName() string       { return "EIf" }
func (*EWhere) ExprName() string    { return "EWhere" }
func (*ELocated) ExprName() string  { return "ELocated" }
func (*EHasSel) ExprName() string   { return "EHasSel" }
func (*EHasSet) ExprName() string   { return "EHasSet" }

func (*EVar) isExpr()      {}
func (*ETApp) isExpr()     {}
func (*EProofApp) isExpr() {}
func (*EApp) isExpr()      {}
func (*EAbs) isExpr()      {}
func (*ETAbs) isExpr()     {}
func (*EProofAbs) isExpr() {}
func (*ETuple) isExpr()    {}
func (*ERec) isExpr()      {}
func (*ESel) isExpr()      {}
func (*ESet) isExpr()      {}
func (*EList) isExpr()     {}
func (*EComp) isExpr()     {}
func (*EIf) isExpr()       {}
func (*EWhere) isExpr()    {}
func (*ELocated) isExpr()  {}
func (*EHasSel) isExpr()   {}
func (*EHasSet) isExpr()   {}

// Helpers for building applications:

// Apply f to each argument in turn.
func Apps(f Expr, args ...Expr) Expr {
	for _, a := range args {
		f = &EApp{Fun: f, Arg: a}
	}
	return f
}

// Apply f to each type in turn.
func TApps(f Expr, ts ...types.Type) Expr {
	for _, t := range ts {
		f = &ETApp{Expr: f, Type: t}
	}
	return f
}

// Apply f to n proofs.
func ProofApps(f Expr, n int) Expr {
	for i := 0; i < n; i++ {
		f = &EProofApp{Expr: f}
	}
	return f
}
