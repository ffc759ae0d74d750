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

// Package construct builds name-resolved syntax and types with little ceremony.
// It stands in for a resolver in tests and in hosts which generate programs.
package construct

import (
	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Names hands out resolved names. The same identifier always resolves to the
// same name until it is shadowed with Fresh.
type Names struct {
	Module string
	next   int
	byName map[string]names.Name
}

// Create a name table whose ids start at start.
func NewNames(module string, start int) *Names {
	return &Names{Module: module, next: start, byName: make(map[string]names.Name)}
}

// Next is the first id which has not been handed out.
func (ns *Names) Next() int { return ns.next }

// Get the name of a value identifier, creating it on first use.
func (ns *Names) V(ident string) names.Name { return ns.get(ident, names.NSValue) }

// Get the name of a type identifier, creating it on first use.
func (ns *Names) T(ident string) names.Name { return ns.get(ident, names.NSType) }

// Fresh creates a new name for ident which shadows any earlier one.
func (ns *Names) Fresh(ident string) names.Name {
	n := names.Name{ID: ns.next, Ident: ident, Module: ns.Module, NS: names.NSValue}
	ns.next++
	ns.byName[key(ident, names.NSValue)] = n
	return n
}

func (ns *Names) get(ident string, space names.Namespace) names.Name {
	if n, ok := ns.byName[key(ident, space)]; ok {
		return n
	}
	n := names.Name{ID: ns.next, Ident: ident, Module: ns.Module, NS: space}
	ns.next++
	ns.byName[key(ident, space)] = n
	return n
}

func key(ident string, space names.Namespace) string {
	if space == names.NSType {
		return "type " + ident
	}
	return ident
}

// Types

// Use of a named type: `T a b`
func TUser(n names.Name, args ...ast.Type) *ast.TUser { return &ast.TUser{Name: n, Args: args} }

// Built-in constructor, type function or predicate: `a + b`, `fin n`
func TBuiltin(tag types.TCTag, args ...ast.Type) *ast.TBuiltin {
	return &ast.TBuiltin{Tag: tag, Args: args}
}

// Numeric type: `8`
func TNum(n int64) *ast.TNum { return &ast.TNum{N: n} }

// Sequence type: `[n]a`
func TSeq(n, a ast.Type) *ast.TSeq { return &ast.TSeq{Len: n, Elem: a} }

// Word type: `[n]`
func TWord(n ast.Type) *ast.TSeq { return &ast.TSeq{Len: n, Elem: &ast.TBit{}} }

func TBit() *ast.TBit { return &ast.TBit{} }

// Function type: `a -> b -> c`
func TFun(ts ...ast.Type) ast.Type {
	t := ts[len(ts)-1]
	for i := len(ts) - 2; i >= 0; i-- {
		t = &ast.TFun{From: ts[i], To: t}
	}
	return t
}

// Tuple type: `(a, b)`
func TTuple(ts ...ast.Type) *ast.TTuple { return &ast.TTuple{Elems: ts} }

// Record type: `{ x : a }`
func TRecord(fields ...ast.TField) *ast.TRecord { return &ast.TRecord{Fields: fields} }

// Labelled field type
func TField(label string, t ast.Type) ast.TField { return ast.TField{Label: label, Type: t} }

// Wildcard type: `_`
func TWild() *ast.TWild { return &ast.TWild{} }

// Existential type variable
func TExist(ident string) *ast.TExistential { return &ast.TExistential{Ident: ident} }

// Predicates:

func Fin(n ast.Type) ast.Type    { return TBuiltin(types.PCFin, n) }
func Geq(a, b ast.Type) ast.Type { return TBuiltin(types.PCGeq, a, b) }
func Eq(a, b ast.Type) ast.Type  { return TBuiltin(types.PCEqual, a, b) }
func Add(a, b ast.Type) ast.Type { return TBuiltin(types.TFAdd, a, b) }
func Ring(a ast.Type) ast.Type   { return TBuiltin(types.PCRing, a) }
func Literal(n, a ast.Type) ast.Type {
	return TBuiltin(types.PCLiteral, n, a)
}

// Declared type parameter with an optional kind
func TP(n names.Name, k *types.Kind) ast.TParam { return ast.TParam{Name: n, Kind: k} }

// Signature: `{params} (props) => body`
func Schema(params []ast.TParam, props []ast.Type, body ast.Type) *ast.Schema {
	return &ast.Schema{Params: params, Props: props, Body: body}
}

// Expressions:

// Variable
func Var(n names.Name) *ast.Var { return &ast.Var{Name: n} }

// Decimal literal
func Num(v int64) *ast.Num { return &ast.Num{Value: v, Base: 10} }

// Hexadecimal literal with the given number of digits: `0x0f`
func Hex(v int64, digits int) *ast.Num { return &ast.Num{Value: v, Base: 16, Digits: digits} }

// Fractional literal: `num / den`
func Frac(num, den int64) *ast.Frac { return &ast.Frac{Num: num, Den: den, Base: 10} }

func Char(c rune) *ast.Char { return &ast.Char{Value: c} }

func String(s string) *ast.String { return &ast.String{Value: s} }

// Application to each argument in turn: `f x y`
func App(f ast.Expr, args ...ast.Expr) ast.Expr {
	for _, a := range args {
		f = &ast.App{Fun: f, Arg: a}
	}
	return f
}

// Explicit type application: `` f`{8, a = Bit} ``
func AppT(f ast.Expr, args ...ast.TypeInst) *ast.AppT { return &ast.AppT{Fun: f, Args: args} }

// Positional type argument
func TArg(t ast.Type) ast.TypeInst { return ast.TypeInst{Type: t} }

// Named type argument
func TNamed(name string, t ast.Type) ast.TypeInst { return ast.TypeInst{Name: name, Type: t} }

// Lambda: `\x y -> e`
func Fun(params []ast.Pattern, body ast.Expr) *ast.Fun { return &ast.Fun{Params: params, Body: body} }

// Lambda over variables: `\x -> e`
func Lam(body ast.Expr, params ...names.Name) *ast.Fun {
	ps := make([]ast.Pattern, len(params))
	for i, p := range params {
		ps[i] = &ast.PVar{Name: p}
	}
	return &ast.Fun{Params: ps, Body: body}
}

func Tuple(es ...ast.Expr) *ast.Tuple { return &ast.Tuple{Elems: es} }

// Record: `{ x = a }`
func Record(fields ...ast.FieldExpr) *ast.Record { return &ast.Record{Fields: fields} }

// Paired label and value
func Field(label string, e ast.Expr) ast.FieldExpr { return ast.FieldExpr{Label: label, Value: e} }

// Record selection: `r.x`
func Sel(e ast.Expr, label string) *ast.Sel {
	return &ast.Sel{Expr: e, Sel: types.RecordSelector(label)}
}

// Tuple selection: `t.0`
func TupleSel(e ast.Expr, i int) *ast.Sel { return &ast.Sel{Expr: e, Sel: types.TupleSelector(i)} }

// Record update: `{ r | x = v }`
func Set(r ast.Expr, label string, v ast.Expr) *ast.Upd {
	return &ast.Upd{Record: r, Fields: []ast.UpdField{{Path: []types.Selector{types.RecordSelector(label)}, How: ast.UpdSet, Value: v}}}
}

// Record update through a function: `{ r | x -> f }`
func Modify(r ast.Expr, label string, f ast.Expr) *ast.Upd {
	return &ast.Upd{Record: r, Fields: []ast.UpdField{{Path: []types.Selector{types.RecordSelector(label)}, How: ast.UpdFun, Value: f}}}
}

// Sequence literal: `[a, b]`
func List(es ...ast.Expr) *ast.List { return &ast.List{Elems: es} }

// Enumeration: `[first .. last]`
func FromTo(first, last ast.Type) *ast.Range { return &ast.Range{First: first, Last: last} }

// Comprehension with parallel arms: `[ e | x <- xs | y <- ys ]`
func Comp(result ast.Expr, arms ...[]ast.Match) *ast.Comp { return &ast.Comp{Result: result, Arms: arms} }

// Generator: `p <- e`
func From(p ast.Pattern, e ast.Expr) *ast.MatchBind { return &ast.MatchBind{Pat: p, Expr: e} }

func If(c, t, e ast.Expr) *ast.If { return &ast.If{Cond: c, Then: t, Else: e} }

// Local declarations: `e where ds`
func Where(body ast.Expr, ds ...ast.Decl) *ast.Where { return &ast.Where{Body: body, Decls: ds} }

// Type annotation: `e : t`
func Typed(e ast.Expr, t ast.Type) *ast.Typed { return &ast.Typed{Expr: e, Type: t} }

// Demoted type: `` `n ``
func TypeVal(t ast.Type) *ast.TypeVal { return &ast.TypeVal{Type: t} }

// Expression with a source range on the given line.
func At(line int, e ast.Expr) *ast.Located {
	return &ast.Located{Range: Line(line), Expr: e}
}

// Range covering a whole line.
func Line(line int) names.Range {
	return names.Range{From: names.Position{Line: line, Col: 1}, To: names.Position{Line: line, Col: 80}}
}

// Patterns:

func PVar(n names.Name) *ast.PVar { return &ast.PVar{Name: n} }

func PWild() *ast.PWild { return &ast.PWild{} }

func PTuple(ps ...ast.Pattern) *ast.PTuple { return &ast.PTuple{Pats: ps} }

func PList(ps ...ast.Pattern) *ast.PList { return &ast.PList{Pats: ps} }

// Split pattern: `a # b`
func PSplit(l, r ast.Pattern) *ast.PSplit { return &ast.PSplit{Left: l, Right: r} }

// Typed pattern: `(p : t)`
func PTyped(p ast.Pattern, t ast.Type) *ast.PTyped { return &ast.PTyped{Pat: p, Type: t} }

// Declarations:

// Binding: `f p1 p2 = e`
func Bind(n names.Name, params []ast.Pattern, body ast.Expr) *ast.Bind {
	return &ast.Bind{Name: n, Params: params, Body: body}
}

// Binding with a signature
func SigBind(n names.Name, sig *ast.Schema, params []ast.Pattern, body ast.Expr) *ast.Bind {
	return &ast.Bind{Name: n, Params: params, Body: body, Signature: sig}
}

// Primitive: `primitive f : sig`
func Prim(n names.Name, sig *ast.Schema) *ast.Bind {
	return &ast.Bind{Name: n, Signature: sig, Prim: true}
}

// Group of bindings.
func Group(rec bool, bs ...*ast.Bind) *ast.BindGroup { return &ast.BindGroup{Recursive: rec, Binds: bs} }

// Module of the given declarations.
func Module(n names.Name, ds ...ast.Decl) *ast.Module { return &ast.Module{Name: n, Decls: ds} }
