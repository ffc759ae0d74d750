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
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

type patVar struct {
	name names.Name
	typ  types.Type
}

// Check a pattern against the type of the matched value. The value is named by
// the returned variable; nested pattern variables are bound by the returned
// monomorphic declarations, which select from it.
func (m *inferM) checkPat(p ast.Pattern, exp expected) (names.Name, []*core.Decl, []patVar) {
	switch p := p.(type) {
	case *ast.PLocated:
		defer m.withRange(p.Range)()
		return m.checkPat(p.Pat, exp)

	case *ast.PVar:
		return p.Name, nil, []patVar{{p.Name, exp.Type}}

	case *ast.PWild:
		return m.freshName("_"), nil, nil

	case *ast.PTyped:
		t := m.checkType(p.Type, types.KType)
		m.unify(exp, t)
		return m.checkPat(p.Pat, expected{t, exp.Src})

	case *ast.PTuple:
		ts := m.expectTuple(len(p.Pats), exp)
		x := m.freshName("p")
		subs := make([]subPat, len(p.Pats))
		for i, q := range p.Pats {
			subs[i] = subPat{q, types.TupleSelector(i), ts[i], types.TypeOfTupleField{Index: i}}
		}
		ds, vs := m.checkSubPats(x, subs)
		return x, ds, vs

	case *ast.PRecord:
		labels := make([]string, len(p.Fields))
		for i, f := range p.Fields {
			labels[i] = f.Label
		}
		fs := m.expectRec(labels, exp)
		x := m.freshName("p")
		subs := make([]subPat, len(p.Fields))
		for i, f := range p.Fields {
			ft, _ := fs.Get(f.Label)
			subs[i] = subPat{f.Pat, types.RecordSelector(f.Label), ft, types.TypeOfRecordField{Label: f.Label}}
		}
		ds, vs := m.checkSubPats(x, subs)
		return x, ds, vs

	case *ast.PList:
		n, elem := m.expectSeq(exp)
		m.unifyFrom(CtPattern{What: "sequence"}, expected{n, types.LenOfSeq{}}, types.TNum(int64(len(p.Pats))))
		x := m.freshName("p")
		subs := make([]subPat, len(p.Pats))
		for i, q := range p.Pats {
			subs[i] = subPat{q, types.ListSelector(i), elem, types.TypeOfSeqElement{}}
		}
		ds, vs := m.checkSubPats(x, subs)
		return x, ds, vs

	case *ast.PSplit:
		return m.checkSplit(p, exp)
	}
	panic("unknown pattern type: " + p.PatternName())
}

type subPat struct {
	pat ast.Pattern
	sel types.Selector
	typ types.Type
	src types.TypeSource
}

func (m *inferM) checkSubPats(x names.Name, subs []subPat) ([]*core.Decl, []patVar) {
	var decls []*core.Decl
	var vars []patVar
	for _, s := range subs {
		y, ds, vs := m.checkPat(s.pat, expected{s.typ, s.src})
		def := &core.ESel{Expr: &core.EVar{Name: x}, Sel: s.sel}
		decls = append(decls, &core.Decl{Name: y, Schema: types.Mono(s.typ), Def: def, Range: m.rng})
		decls, vars = append(decls, ds...), append(vars, vs...)
	}
	return decls, vars
}

// `a # b` matches a sequence of length `m + n` and splits it with `splitAt`.
func (m *inferM) checkSplit(p *ast.PSplit, exp expected) (names.Name, []*core.Decl, []patVar) {
	front := m.freshType(types.KNum, types.LenOfSeq{})
	back := m.freshType(types.KNum, types.LenOfSeq{})
	elem := m.freshType(types.KType, types.TypeOfSeqElement{})
	m.unifyFrom(CtSplitPat{}, exp, types.TSeq(types.TFunApp(types.TFAdd, front, back), elem))
	m.addGoals(CtSplitPat{}, types.PFin(front))

	left, right := types.TSeq(front, elem), types.TSeq(back, elem)
	split := m.checkPrim(CtSplitPat{}, "splitAt", map[string]types.Type{"front": front, "back": back, "a": elem},
		expected{types.TFun(exp.Type, types.TTuple(left, right)), types.FunApp{}})

	x := m.freshName("p")
	parts := m.freshName("split")
	decls := []*core.Decl{{
		Name:   parts,
		Schema: types.Mono(types.TTuple(left, right)),
		Def:    &core.EApp{Fun: split, Arg: &core.EVar{Name: x}},
		Range:  m.rng,
	}}
	ds, vs := m.checkSubPats(parts, []subPat{
		{p.Left, types.TupleSelector(0), left, types.LenOfSeq{}},
		{p.Right, types.TupleSelector(1), right, types.LenOfSeq{}},
	})
	return x, append(decls, ds...), vs
}
