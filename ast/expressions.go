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

// Expr is the base for all expressions. Expressions arrive name-resolved: every
// variable carries the unique name assigned by the resolver.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	isExpr()
}

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*Num)(nil)
	_ Expr = (*Frac)(nil)
	_ Expr = (*Char)(nil)
	_ Expr = (*String)(nil)
	_ Expr = (*Tuple)(nil)
	_ Expr = (*Record)(nil)
	_ Expr = (*Sel)(nil)
	_ Expr = (*Upd)(nil)
	_ Expr = (*List)(nil)
	_ Expr = (*Range)(nil)
	_ Expr = (*InfFrom)(nil)
	_ Expr = (*Comp)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*AppT)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Where)(nil)
	_ Expr = (*Typed)(nil)
	_ Expr = (*TypeVal)(nil)
	_ Expr = (*Fun)(nil)
	_ Expr = (*Located)(nil)
)

// Variable
type Var struct {
	Name names.Name
}

// Integer literal: `10`, `0x0f`, `0b101`
type Num struct {
	Value int64
	// Radix of the literal (2, 8, 10 or 16).
	Base int
	// Number of digits written, used to compute the width of non-decimal literals.
	Digits int
}

// Fractional literal: `1.5`, `0x1.8`
type Frac struct {
	Num, Den int64
	Base     int
}

// Character literal: `'a'`
type Char struct {
	Value rune
}

// String literal: `"abc"`
type String struct {
	Value string
}

// Tuple: `(a, b)`
type Tuple struct {
	Elems []Expr
}

// Record: `{ x = a, y = b }`
type Record struct {
	Fields []FieldExpr
}

// Paired label and value
type FieldExpr struct {
	Label string
	Value Expr
}

// Selection: `r.x`, `t.0`
type Sel struct {
	Expr Expr
	Sel  types.Selector
}

// UpdHow distinguishes `f = v` from `f -> g` in record updates.
type UpdHow uint8

const (
	// Replace the field with a new value.
	UpdSet UpdHow = iota
	// Replace the field with a function of its old value.
	UpdFun
)

// Record update: `{ r | x = v }`. Record is nil for `{ _ | x = v }`.
type Upd struct {
	Record Expr
	Fields []UpdField
}

// Single field update. Path is the selector path of the field; dotted paths are
// split into nested updates by the resolver, so it holds exactly one selector.
type UpdField struct {
	Path  []types.Selector
	How   UpdHow
	Value Expr
}

// Sequence literal: `[a, b, c]`
type List struct {
	Elems []Expr
}

// Enumeration: `[first .. last]`, `[first, next .. last]`, `[first .. last by s]`,
// `[first ..< bound]`, `[first .. last down by s]`. Bounds are types.
type Range struct {
	First Type
	// Second element, for `[first, next .. last]`.
	Next Type
	// Last element, or the excluded bound when Strict is set.
	Last Type
	// Step, for `by` and `down by` forms.
	Stride Type
	Down   bool
	Strict bool
	// Explicit element type: `[first .. last : elem]`
	Elem Type
}

// Infinite enumeration: `[first ...]`, `[first, next ...]`
type InfFrom struct {
	First Expr
	Next  Expr
}

// Comprehension: `[ e | x <- xs, y <- ys | z <- zs ]`
//
// Each arm is a list of matches; matches within one arm are nested, arms run in parallel.
type Comp struct {
	Result Expr
	Arms   [][]Match
}

// Match is a qualifier of a comprehension arm.
type Match interface {
	isMatch()
}

// Generator: `p <- e`
type MatchBind struct {
	Pat  Pattern
	Expr Expr
}

// Local definition: `let x = e`
type MatchLet struct {
	Bind *Bind
}

func (*MatchBind) isMatch() {}
func (*MatchLet) isMatch()  {}

// Application: `f x`
type App struct {
	Fun Expr
	Arg Expr
}

// Explicit type application: `` f`{8, a = Bit} ``
type AppT struct {
	Fun  Expr
	Args []TypeInst
}

// TypeInst is an explicit type argument. Name is empty for positional arguments.
type TypeInst struct {
	Name string
	Type Type
}

// Conditional: `if c then a else b`
type If struct {
	Cond, Then, Else Expr
}

// Local declarations: `e where ds`
type Where struct {
	Body  Expr
	Decls []Decl
}

// Type annotation: `e : t`
type Typed struct {
	Expr Expr
	Type Type
}

// Demoted type: `` `n ``
type TypeVal struct {
	Type Type
}

// Lambda: `\p1 p2 -> e`
type Fun struct {
	Params []Pattern
	Body   Expr
}

// Expression with a source range.
type Located struct {
	Range names.Range
	Expr  Expr
}

func (*Var) ExprName() string     { return "Var" }
func (*Num) ExprName() string     { return "Num" }
func (*Frac) ExprName() string    { return "Frac" }
func (*Char) ExprName() string    { return "Char" }
func (*String) ExprName() string  { return "String" }
func (*Tuple) ExprName() string   { return "Tuple" }
func (*Record) ExprName() string  { return "Record" }
func (*Sel) ExprName() string     { return "Sel" }
func (*Upd) ExprName() string     { return "Upd" }
func (*List) ExprName() string    { return "List" }
func (*Range) ExprName() string   { return "Range" }
func (*InfFrom) ExprName() string { return "InfFrom" }
func (*Comp) ExprName() string    { return "Comp" }
func (*App) ExprName() string     { return "App" }
func (*AppT) ExprName() string    { return "AppT" }
func (*If) ExprName() string      { return "If" }
func (*Where) ExprName() string   { return "Where" }
func (*Typed) ExprName() string   { return "Typed" }
func (*TypeVal) ExprName() string { return "TypeVal" }
func (*Fun) ExprName() string     { return "Fun" }
func (*Located) ExprName() string { return "Located" }

func (*Var) isExpr()     {}
func (*Num) isExpr()     {}
func (*Frac) isExpr()    {}
func (*Char) isExpr()    {}
func (*String) isExpr()  {}
func (*Tuple) isExpr()   {}
func (*Record) isExpr()  {}
func (*Sel) isExpr()     {}
func (*Upd) isExpr()     {}
func (*List) isExpr()    {}
func (*Range) isExpr()   {}
func (*InfFrom) isExpr() {}
func (*Comp) isExpr()    {}
func (*App) isExpr()     {}
func (*AppT) isExpr()    {}
func (*If) isExpr()      {}
func (*Where) isExpr()   {}
func (*Typed) isExpr()   {}
func (*TypeVal) isExpr() {}
func (*Fun) isExpr()     {}
func (*Located) isExpr() {}
