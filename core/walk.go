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

package core

import (
	"github.com/wdamron/dtinfer/types"
)

// Rewriter rebuilds terms. Type is applied to every type annotation. Expr is
// consulted first on every node; when it returns ok the result replaces the
// node and its children are not visited.
type Rewriter struct {
	Type func(types.Type) types.Type
	Expr func(Expr) (Expr, bool)
}

func (r *Rewriter) ty(t types.Type) types.Type {
	if r.Type == nil || t == nil {
		return t
	}
	return r.Type(t)
}

// Schema rewrites the types of a schema.
func (r *Rewriter) Schema(s *types.Schema) *types.Schema {
	if r.Type == nil || s == nil {
		return s
	}
	props := make([]types.Type, len(s.Props))
	for i, p := range s.Props {
		props[i] = r.Type(p)
	}
	return &types.Schema{Params: s.Params, Props: props, Body: r.Type(s.Body)}
}

// Rewrite a term.
func (r *Rewriter) Rewrite(e Expr) Expr {
	if e == nil {
		return nil
	}
	if r.Expr != nil {
		if out, ok := r.Expr(e); ok {
			return out
		}
	}
	switch e := e.(type) {
	case *EVar:
		return e
	case *ETApp:
		return &ETApp{Expr: r.Rewrite(e.Expr), Type: r.ty(e.Type)}
	case *EProofApp:
		return &EProofApp{Expr: r.Rewrite(e.Expr)}
	case *EApp:
		return &EApp{Fun: r.Rewrite(e.Fun), Arg: r.Rewrite(e.Arg)}
	case *EAbs:
		return &EAbs{Name: e.Name, Type: r.ty(e.Type), Body: r.Rewrite(e.Body)}
	case *ETAbs:
		return &ETAbs{Param: e.Param, Body: r.Rewrite(e.Body)}
	case *EProofAbs:
		return &EProofAbs{Prop: r.ty(e.Prop), Body: r.Rewrite(e.Body)}
	case *ETuple:
		return &ETuple{Elems: r.list(e.Elems)}
	case *ERec:
		fields := make([]Field, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = Field{Label: f.Label, Expr: r.Rewrite(f.Expr)}
		}
		return &ERec{Fields: fields}
	case *ESel:
		return &ESel{Expr: r.Rewrite(e.Expr), Sel: e.Sel}
	case *ESet:
		return &ESet{Type: r.ty(e.Type), Expr: r.Rewrite(e.Expr), Sel: e.Sel, Value: r.Rewrite(e.Value)}
	case *EList:
		return &EList{Elems: r.list(e.Elems), ElemType: r.ty(e.ElemType)}
	case *EComp:
		arms := make([][]Match, len(e.Arms))
		for i, arm := range e.Arms {
			arms[i] = make([]Match, len(arm))
			for j, m := range arm {
				switch m := m.(type) {
				case *From:
					arms[i][j] = &From{Name: m.Name, Len: r.ty(m.Len), Type: r.ty(m.Type), Expr: r.Rewrite(m.Expr)}
				case *Let:
					arms[i][j] = &Let{Decl: r.Decl(m.Decl)}
				}
			}
		}
		return &EComp{Len: r.ty(e.Len), Elem: r.ty(e.Elem), Result: r.Rewrite(e.Result), Arms: arms}
	case *EIf:
		return &EIf{Cond: r.Rewrite(e.Cond), Then: r.Rewrite(e.Then), Else: r.Rewrite(e.Else)}
	case *EWhere:
		return &EWhere{Expr: r.Rewrite(e.Expr), Decls: r.Groups(e.Decls)}
	case *ELocated:
		return &ELocated{Range: e.Range, Expr: r.Rewrite(e.Expr)}
	case *EHasSel:
		return &EHasSel{Goal: e.Goal, Expr: r.Rewrite(e.Expr)}
	case *EHasSet:
		return &EHasSet{Goal: e.Goal, Expr: r.Rewrite(e.Expr), Value: r.Rewrite(e.Value)}
	}
	panic("unknown expression type: " + e.ExprName())
}

func (r *Rewriter) list(es []Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = r.Rewrite(e)
	}
	return out
}

// Decl rewrites a definition.
func (r *Rewriter) Decl(d *Decl) *Decl {
	return &Decl{Name: d.Name, Schema: r.Schema(d.Schema), Def: r.Rewrite(d.Def), Prim: d.Prim, Range: d.Range}
}

// Groups rewrites declaration groups.
func (r *Rewriter) Groups(gs []DeclGroup) []DeclGroup {
	out := make([]DeclGroup, len(gs))
	for i, g := range gs {
		ds := make([]*Decl, len(g.Decls))
		for j, d := range g.Decls {
			ds[j] = r.Decl(d)
		}
		out[i] = DeclGroup{Recursive: g.Recursive, Decls: ds}
	}
	return out
}

// ApplySubst applies a substitution to every type in e.
func ApplySubst(s types.Subst, e Expr) Expr {
	r := Rewriter{Type: s.Apply}
	return r.Rewrite(e)
}

// Visit calls f for e and every expression nested within it, and t for every
// type annotation. Either callback may be nil.
func Visit(e Expr, f func(Expr), t func(types.Type)) {
	r := Rewriter{
		Type: func(ty types.Type) types.Type {
			if t != nil {
				t(ty)
			}
			return ty
		},
		Expr: func(e Expr) (Expr, bool) {
			if f != nil {
				f(e)
			}
			return nil, false
		},
	}
	r.Rewrite(e)
}

// FreeVarsOf collects the unification variables mentioned anywhere in the groups.
func FreeVarsOf(gs []DeclGroup) []*types.TVFree {
	var ts []types.Type
	collect := func(t types.Type) { ts = append(ts, t) }
	for _, g := range gs {
		for _, d := range g.Decls {
			if d.Schema != nil {
				ts = append(ts, d.Schema.Body)
				ts = append(ts, d.Schema.Props...)
			}
			Visit(d.Def, nil, collect)
		}
	}
	return types.FreeVars(ts...)
}
