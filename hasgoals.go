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
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/internal/simplify"
	"github.com/wdamron/dtinfer/types"
)

// Solve the selector goals whose record types are known by now. Solutions are
// stored by goal ID; goals which are still undecided stay in the store.
func (m *inferM) solveHasGoals() {
	for progress := true; progress; {
		progress = false
		pending := m.hasGoals
		m.hasGoals = nil
		for _, g := range pending {
			if m.solveHasGoal(g) {
				progress = true
			} else {
				m.hasGoals = append(m.hasGoals, g)
			}
		}
	}
}

func (m *inferM) solveHasGoal(g HasGoal) bool {
	sel, rec, field, _ := types.IsHas(g.Goal.Prop)
	rec = m.subst.Apply(rec)
	defer m.withRange(g.Goal.Range)()

	direct := hasSoln{
		sel: func(e core.Expr) core.Expr { return &core.ESel{Expr: e, Sel: sel} },
		set: func(e, v core.Expr) core.Expr { return &core.ESet{Type: rec, Expr: e, Sel: sel, Value: v} },
	}
	src := expected{field, types.TypeOfRecordField{Label: sel.String()}}

	switch t := types.Expand(rec).(type) {
	case *types.TVFree:
		return false

	case *types.TRec:
		if sel.Tag == types.RecordSel {
			if ft, ok := t.Fields.Get(sel.Label); ok {
				m.unifyFrom(CtSelector{}, src, ft)
				m.hasSolns[g.ID] = direct
				return true
			}
		}

	case *types.TNewtype:
		if sel.Tag == types.RecordSel {
			if ft, ok := t.NT.FieldTypes(t.Args).Get(sel.Label); ok {
				m.unifyFrom(CtSelector{}, src, ft)
				m.hasSolns[g.ID] = direct
				return true
			}
		}

	case *types.TCon:
		switch t.C.Tag {
		case types.TCTuple:
			if sel.Tag == types.TupleSel && sel.Index < len(t.Args) {
				m.unifyFrom(CtSelector{}, src, t.Args[sel.Index])
				m.hasSolns[g.ID] = direct
				return true
			}
		case types.TCSeq:
			if sel.Tag == types.ListSel {
				m.unifyFrom(CtSelector{}, src, t.Args[1])
				m.addGoals(CtSelector{}, types.PFin(t.Args[0]), types.PGeq(t.Args[0], types.TNum(int64(sel.Index)+1)))
				m.hasSolns[g.ID] = direct
				return true
			}
			m.liftSeq(g.ID, sel, t.Args[0], t.Args[1], field)
			return true
		case types.TCFun:
			m.liftFun(g.ID, sel, t.Args[0], t.Args[1], field)
			return true
		}
	}
	m.recordError(&MissingField{Sel: sel, Type: rec})
	m.hasSolns[g.ID] = direct
	return true
}

// Selecting from a sequence of records selects from each element.
func (m *inferM) liftSeq(id int, sel types.Selector, n, elem, field types.Type) {
	inner := m.freshType(types.KType, types.TypeOfSeqElement{})
	m.unifyFrom(CtSelector{}, expected{field, types.TypeOfSeqElement{}}, types.TSeq(n, inner))
	sub := m.newHasGoal(sel, elem, inner)
	m.hasSolns[id] = hasSoln{
		sel: func(e core.Expr) core.Expr {
			x := m.freshName("x")
			return &core.EComp{
				Len:    n,
				Elem:   inner,
				Result: &core.EHasSel{Goal: sub, Expr: &core.EVar{Name: x}},
				Arms:   [][]core.Match{{&core.From{Name: x, Len: n, Type: elem, Expr: e}}},
			}
		},
		set: func(e, v core.Expr) core.Expr {
			x, y := m.freshName("x"), m.freshName("y")
			return &core.EComp{
				Len:    n,
				Elem:   elem,
				Result: &core.EHasSet{Goal: sub, Expr: &core.EVar{Name: x}, Value: &core.EVar{Name: y}},
				Arms: [][]core.Match{
					{&core.From{Name: x, Len: n, Type: elem, Expr: e}},
					{&core.From{Name: y, Len: n, Type: inner, Expr: v}},
				},
			}
		},
	}
}

// Selecting from a function selects from its result.
func (m *inferM) liftFun(id int, sel types.Selector, arg, res, field types.Type) {
	inner := m.freshType(types.KType, types.TypeOfRes{})
	m.unifyFrom(CtSelector{}, expected{field, types.TypeOfRes{}}, types.TFun(arg, inner))
	sub := m.newHasGoal(sel, res, inner)
	m.hasSolns[id] = hasSoln{
		sel: func(e core.Expr) core.Expr {
			x := m.freshName("x")
			return &core.EAbs{Name: x, Type: arg, Body: &core.EHasSel{Goal: sub, Expr: &core.EApp{Fun: e, Arg: &core.EVar{Name: x}}}}
		},
		set: func(e, v core.Expr) core.Expr {
			x := m.freshName("x")
			at := func(f core.Expr) core.Expr { return &core.EApp{Fun: f, Arg: &core.EVar{Name: x}} }
			return &core.EAbs{Name: x, Type: arg, Body: &core.EHasSet{Goal: sub, Expr: at(e), Value: at(v)}}
		},
	}
}

// Replace selector placeholders by their solutions. Placeholders of unsolved
// goals become plain selections; the goals themselves are reported separately.
// Apply the substitution and evaluate closed type-function applications.
func (m *inferM) zonk(t types.Type) types.Type { return simplify.Normalize(m.subst.Apply(t)) }

func (m *inferM) resolveHas() *core.Rewriter {
	r := &core.Rewriter{Type: m.zonk}
	r.Expr = func(e core.Expr) (core.Expr, bool) {
		switch e := e.(type) {
		case *core.EHasSel:
			inner := r.Rewrite(e.Expr)
			if soln, ok := m.hasSolns[e.Goal]; ok {
				return r.Rewrite(soln.sel(inner)), true
			}
			sel, _, _, _ := types.IsHas(m.hasInfo[e.Goal].Goal.Prop)
			return &core.ESel{Expr: inner, Sel: sel}, true
		case *core.EHasSet:
			inner, val := r.Rewrite(e.Expr), r.Rewrite(e.Value)
			if soln, ok := m.hasSolns[e.Goal]; ok {
				return r.Rewrite(soln.set(inner, val)), true
			}
			sel, rec, _, _ := types.IsHas(m.hasInfo[e.Goal].Goal.Prop)
			return &core.ESet{Type: m.zonk(rec), Expr: inner, Sel: sel, Value: val}, true
		}
		return nil, false
	}
	return r
}
