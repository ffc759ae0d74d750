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

// Check an expression against an expected type, returning its elaboration.
func (m *inferM) checkE(e ast.Expr, exp expected) core.Expr {
	switch e := e.(type) {
	case *ast.Located:
		defer m.withRange(e.Range)()
		inner := m.checkE(e.Expr, exp)
		if !m.opts.CallStacks {
			return inner
		}
		return &core.ELocated{Range: e.Range, Expr: inner}

	case *ast.Var:
		return m.checkVar(e.Name, nil, exp)

	case *ast.AppT:
		fun := ast.Unlocated(e.Fun)
		v, ok := fun.(*ast.Var)
		if !ok {
			panicf("explicit type application of a non-variable:", fun.ExprName())
		}
		return m.checkVar(v.Name, e.Args, exp)

	case *ast.Num:
		return m.checkNum(e, exp)
	case *ast.Frac:
		return m.checkFrac(e, exp)
	case *ast.Char:
		return m.checkChar(e.Value, exp)
	case *ast.String:
		return m.checkString(e.Value, exp)
	case *ast.TypeVal:
		t := m.checkType(e.Type, types.KNum)
		return m.checkPrim(CtLiteral{}, "number", map[string]types.Type{"val": t, "rep": exp.Type}, exp)
	case *ast.Range:
		return m.checkRange(e, exp)
	case *ast.InfFrom:
		return m.checkInfFrom(e, exp)

	case *ast.Tuple:
		ts := m.expectTuple(len(e.Elems), exp)
		elems := make([]core.Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = m.checkE(el, expected{ts[i], types.TypeOfTupleField{Index: i}})
		}
		return &core.ETuple{Elems: elems}

	case *ast.Record:
		labels := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			labels[i] = f.Label
		}
		fs := m.expectRec(labels, exp)
		fields := make([]core.Field, len(e.Fields))
		for i, f := range e.Fields {
			ft, _ := fs.Get(f.Label)
			fields[i] = core.Field{Label: f.Label, Expr: m.checkE(f.Value, expected{ft, types.TypeOfRecordField{Label: f.Label}})}
		}
		return &core.ERec{Fields: fields}

	case *ast.List:
		n, elem := m.expectSeq(exp)
		m.unify(expected{n, types.LenOfSeq{}}, types.TNum(int64(len(e.Elems))))
		elems := make([]core.Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = m.checkE(el, expected{elem, types.TypeOfSeqElement{}})
		}
		return &core.EList{Elems: elems, ElemType: elem}

	case *ast.Sel:
		return m.checkSel(e, exp)

	case *ast.Upd:
		return m.checkUpd(e, exp)

	case *ast.Comp:
		return m.checkComp(e, exp)

	case *ast.App:
		return m.checkApp(e, exp)

	case *ast.If:
		cond := m.checkE(e.Cond, expected{types.TBit, types.TypeOfRes{}})
		return &core.EIf{Cond: cond, Then: m.checkE(e.Then, exp), Else: m.checkE(e.Else, exp)}

	case *ast.Where:
		var body core.Expr
		groups := m.checkLocalDecls(e.Decls, func() { body = m.checkE(e.Body, exp) })
		return &core.EWhere{Expr: body, Decls: groups}

	case *ast.Typed:
		t := m.checkType(e.Type, types.KType)
		out := m.checkE(e.Expr, expected{t, types.TypeWildCard{}})
		m.unify(exp, t)
		return out

	case *ast.Fun:
		return m.checkFun(e.Params, e.Body, exp)
	}
	panic("unknown expression type: " + e.ExprName())
}

// Check a use of a variable, with optional explicit type arguments.
func (m *inferM) checkVar(n names.Name, targs []ast.TypeInst, exp expected) core.Expr {
	switch v := m.lookupVar(n).(type) {
	case *CurSCC:
		if len(targs) > 0 {
			t := m.checkType(targs[0].Type, nil)
			m.recordError(&TooManyTypeParams{Extra: len(targs), Kind: types.KindOf(t)})
		}
		m.unify(exp, v.Type)
		return v.Expr

	case *ExtVar:
		sc := m.subst.ApplySchema(v.Schema)
		given := m.typeArgs(n, sc, targs)
		inst := m.vt.Instantiate(sc, given, m.tparams, func(i int, p *types.TParam) types.TVarInfo {
			if p.Name != nil {
				return types.TVarInfo{Range: m.rng, Source: types.TypeParamInstNamed{Fun: n, Param: p.Name.Ident}}
			}
			return types.TVarInfo{Range: m.rng, Source: types.TypeParamInstPos{Fun: n, Index: i}}
		})
		m.addGoals(CtInst{Name: n}, inst.Props...)
		out := core.ProofApps(core.TApps(&core.EVar{Name: n}, inst.Args...), len(inst.Props))
		m.unify(exp, inst.Body)
		return out
	}
	panic("unknown variable type")
}

// Resolve explicit type arguments against the parameters of a schema.
func (m *inferM) typeArgs(n names.Name, sc *types.Schema, targs []ast.TypeInst) map[int]types.Type {
	if len(targs) == 0 {
		return nil
	}
	given := make(map[int]types.Type, len(targs))
	named, positional := 0, 0
	for _, a := range targs {
		if a.Name == "" {
			positional++
		} else {
			named++
		}
	}
	if named > 0 && positional > 0 {
		m.recordError(&CannotMixPositionalAndNamedTypeParams{})
		return nil
	}
	for i, a := range targs {
		var p *types.TParam
		if a.Name == "" {
			if i >= len(sc.Params) {
				m.recordError(&TooManyPositionalTypeParams{Fun: n})
				break
			}
			p = sc.Params[i]
		} else {
			for _, q := range sc.Params {
				if q.Name != nil && q.Name.Ident == a.Name {
					p = q
					break
				}
			}
			if p == nil {
				m.recordError(&UndefinedTypeParam{Fun: n, Name: a.Name})
				continue
			}
		}
		given[p.ID] = m.checkType(a.Type, p.K)
	}
	return given
}

// Check a call of a primitive with named type arguments.
func (m *inferM) checkPrim(src ConstraintSource, ident string, targs map[string]types.Type, exp expected) core.Expr {
	n := m.prim(ident)
	sc := m.subst.ApplySchema(m.primSchema(n))
	given := make(map[int]types.Type, len(targs))
	for _, p := range sc.Params {
		if p.Name == nil {
			continue
		}
		if t, ok := targs[p.Name.Ident]; ok && t != nil {
			given[p.ID] = t
		}
	}
	for name, t := range targs {
		if t != nil && !primHasParam(sc, name) {
			panicf("primitive", ident, "has no type parameter", name)
		}
	}
	inst := m.vt.Instantiate(sc, given, m.tparams, func(i int, p *types.TParam) types.TVarInfo {
		return types.TVarInfo{Range: m.rng, Source: types.TypeParamInstPos{Fun: n, Index: i}}
	})
	m.addGoals(src, inst.Props...)
	m.unify(exp, inst.Body)
	return core.ProofApps(core.TApps(&core.EVar{Name: n}, inst.Args...), len(inst.Props))
}

func primHasParam(sc *types.Schema, name string) bool {
	for _, p := range sc.Params {
		if p.Name != nil && p.Name.Ident == name {
			return true
		}
	}
	return false
}

func (m *inferM) primSchema(n names.Name) *types.Schema {
	if v, ok := m.lookupVar(n).(*ExtVar); ok {
		return v.Schema
	}
	panicf("primitive is being defined:", n.String())
	return nil
}

// Check an application spine. The function is checked first, against fresh
// argument types, so its signature informs the checking of the arguments.
func (m *inferM) checkApp(e *ast.App, exp expected) core.Expr {
	var args []ast.Expr
	var f ast.Expr = e
	for {
		app, ok := f.(*ast.App)
		if !ok {
			break
		}
		args = append(args, app.Arg)
		f = app.Fun
	}
	for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
		args[i], args[j] = args[j], args[i]
	}
	ts := make([]types.Type, len(args))
	for i := range args {
		ts[i] = m.freshType(types.KType, types.TypeOfArg{Index: i})
	}
	out := m.checkE(f, expected{types.TFuns(ts, exp.Type), types.FunApp{}})
	for i, a := range args {
		out = &core.EApp{Fun: out, Arg: m.checkE(a, expected{ts[i], types.TypeOfArg{Index: i}})}
	}
	return out
}

// Check a lambda. Parameters become monomorphic variables of the body.
func (m *inferM) checkFun(params []ast.Pattern, body ast.Expr, exp expected) core.Expr {
	if len(params) == 0 {
		return m.checkE(body, exp)
	}
	ts, res := m.expectFun(len(params), exp)
	xs := make([]names.Name, len(params))
	var decls []*core.Decl
	stashed := 0
	for i, p := range params {
		x, ds, vs := m.checkPat(p, expected{ts[i], types.TypeOfArg{Index: i}})
		xs[i], decls = x, append(decls, ds...)
		for _, v := range vs {
			stashed += m.declareMono(v.name, v.typ)
		}
	}
	out := m.checkE(body, expected{res, types.TypeOfRes{}})
	m.unstash(stashed)
	if len(decls) > 0 {
		out = &core.EWhere{Expr: out, Decls: monoGroups(decls)}
	}
	for i := len(params) - 1; i >= 0; i-- {
		out = &core.EAbs{Name: xs[i], Type: ts[i], Body: out}
	}
	return out
}

func monoGroups(ds []*core.Decl) []core.DeclGroup {
	gs := make([]core.DeclGroup, len(ds))
	for i, d := range ds {
		gs[i] = core.DeclGroup{Decls: []*core.Decl{d}}
	}
	return gs
}

// Selection elaborates to a placeholder naming a selector goal.
func (m *inferM) checkSel(e *ast.Sel, exp expected) core.Expr {
	var src types.TypeSource
	switch e.Sel.Tag {
	case types.RecordSel:
		src = types.TypeOfRecordField{Label: e.Sel.Label}
	case types.TupleSel:
		src = types.TypeOfTupleField{Index: e.Sel.Index}
	default:
		src = types.TypeOfSeqElement{}
	}
	rec := m.freshType(types.KType, src)
	inner := m.checkE(e.Expr, expected{rec, src})
	id := m.newHasGoal(e.Sel, rec, exp.Type)
	return &core.EHasSel{Goal: id, Expr: inner}
}

// Check a record update. `{ _ | f = v }` is a function of the updated record.
func (m *inferM) checkUpd(e *ast.Upd, exp expected) core.Expr {
	if e.Record == nil {
		x := m.freshName("r")
		return m.checkFun([]ast.Pattern{&ast.PVar{Name: x}}, &ast.Upd{Record: &ast.Var{Name: x}, Fields: e.Fields}, exp)
	}
	out := m.checkE(e.Record, exp)
	for _, f := range e.Fields {
		if len(f.Path) != 1 {
			panicf("record update must name exactly one field")
		}
		sel := f.Path[0]
		ft := m.freshType(types.KType, types.TypeOfRecordField{Label: sel.String()})
		id := m.newHasGoal(sel, exp.Type, ft)
		switch f.How {
		case ast.UpdSet:
			v := m.checkE(f.Value, expected{ft, types.TypeOfRecordField{Label: sel.String()}})
			out = &core.EHasSet{Goal: id, Expr: out, Value: v}
		case ast.UpdFun:
			v := m.checkE(f.Value, expected{types.TFun(ft, ft), types.TypeOfRecordField{Label: sel.String()}})
			x := m.freshName("upd")
			recv := &core.EVar{Name: x}
			set := &core.EHasSet{Goal: id, Expr: recv, Value: &core.EApp{Fun: v, Arg: &core.EHasSel{Goal: id, Expr: recv}}}
			bind := &core.Decl{Name: x, Schema: types.Mono(exp.Type), Def: out, Range: m.rng}
			out = &core.EWhere{Expr: set, Decls: monoGroups([]*core.Decl{bind})}
		}
	}
	return out
}
