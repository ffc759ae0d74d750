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
	"github.com/sirupsen/logrus"

	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/types"
)

// Infer the types of one strongly connected group of bindings.
//
// Bindings with signatures are checked against them. Bindings without
// signatures are generalized together, unless the group is monomorphic: when a
// binding is marked monomorphic, or when mono-binds mode is on and the group is
// local. In a recursive group the generalized bindings are checked first, using
// their monomorphic types for recursive calls; the remaining bindings are then
// checked against the generalized schemas.
func (m *inferM) inferBinds(top, rec bool, binds []*ast.Bind) []*core.Decl {
	mono := m.opts.MonoBinds && !top
	for _, b := range binds {
		mono = mono || b.Mono
	}
	ns := make([]string, len(binds))
	for i, b := range binds {
		ns[i] = b.Name.String()
	}
	m.debug("checking binding group", logrus.Fields{"names": ns, "recursive": rec, "top": top, "mono": mono})

	sigs := make(map[int]*types.Schema)
	monos := make(map[int]types.Type)
	cur := make(map[int]*CurSCC)
	var gen, others []*ast.Bind
	stashed := 0
	for _, b := range binds {
		restore := m.withRange(b.Range)
		switch {
		case b.Signature != nil:
			sc := m.checkSchema(b.Signature)
			sigs[b.Name.ID] = sc
			others = append(others, b)
			if rec {
				stashed += m.declare(b.Name, &ExtVar{Schema: sc})
			}
		case b.Prim:
			panicf("primitive without a signature:", b.Name.String())
		case mono:
			t := m.freshType(types.KType, types.DefinitionOf{Name: b.Name})
			monos[b.Name.ID] = t
			others = append(others, b)
			if rec {
				stashed += m.declareMono(b.Name, t)
			}
		default:
			c := &CurSCC{Expr: &core.EVar{Name: b.Name}, Type: m.freshType(types.KType, types.DefinitionOf{Name: b.Name})}
			cur[b.Name.ID] = c
			gen = append(gen, b)
			if rec {
				stashed += m.declare(b.Name, c)
			}
		}
		restore()
	}

	done := make(map[int]*core.Decl, len(binds))
	checkOthers := func() {
		for _, b := range others {
			if sc, ok := sigs[b.Name.ID]; ok {
				done[b.Name.ID] = m.checkSigB(b, sc)
			} else {
				done[b.Name.ID] = m.checkMonoB(b, monos[b.Name.ID])
			}
		}
	}
	if rec {
		for _, d := range m.checkGenBinds(gen, cur) {
			done[d.Name.ID] = d
			stashed += m.declare(d.Name, &ExtVar{Schema: d.Schema})
		}
		checkOthers()
	} else {
		checkOthers()
		for _, d := range m.checkGenBinds(gen, cur) {
			done[d.Name.ID] = d
		}
	}
	m.unstash(stashed)
	m.simplifyAllConstraints(true)

	out := make([]*core.Decl, len(binds))
	for i, b := range binds {
		out[i] = done[b.Name.ID]
	}
	return out
}

// Check the bindings to be generalized, then generalize them together.
func (m *inferM) checkGenBinds(bs []*ast.Bind, cur map[int]*CurSCC) []*core.Decl {
	if len(bs) == 0 {
		return nil
	}
	decls := make([]*core.Decl, 0, len(bs))
	goals := m.collectGoals(func() {
		for _, b := range bs {
			c := cur[b.Name.ID]
			restore := m.withRange(b.Range)
			def := m.checkBindBody(b, expected{c.Type, types.DefinitionOf{Name: b.Name}})
			decls = append(decls, &core.Decl{Name: b.Name, Schema: types.Mono(c.Type), Def: def, Range: b.Range})
			restore()
		}
		m.simplifyAllConstraints(false)
	})
	placeholders := make(map[int]*core.EVar, len(cur))
	for id, c := range cur {
		placeholders[id] = c.Expr
	}
	return m.generalize(decls, goals, placeholders)
}

// Check a binding against its signature. Goals which depend on the
// signature's parameters must follow from its constraints; other goals are
// left to the enclosing group.
func (m *inferM) checkSigB(b *ast.Bind, sc *types.Schema) *core.Decl {
	defer m.withRange(b.Range)()
	if b.Prim {
		return &core.Decl{Name: b.Name, Schema: sc, Prim: true, Range: b.Range}
	}
	restore := m.withParams(sc.Params, sc.Props)
	var body core.Expr
	goals := m.collectGoals(func() {
		body = m.checkBindBody(b, expected{sc.Body, types.DefinitionOf{Name: b.Name}})
		m.simplifyAllConstraints(false)
	})
	m.proveImplication(CtTypeSig{Name: b.Name}, sc.Params, goals)
	restore()

	for i := len(sc.Props) - 1; i >= 0; i-- {
		body = &core.EProofAbs{Prop: sc.Props[i], Body: body}
	}
	for i := len(sc.Params) - 1; i >= 0; i-- {
		body = &core.ETAbs{Param: sc.Params[i], Body: body}
	}
	return &core.Decl{Name: b.Name, Schema: sc, Def: body, Range: b.Range}
}

func (m *inferM) checkMonoB(b *ast.Bind, t types.Type) *core.Decl {
	defer m.withRange(b.Range)()
	def := m.checkBindBody(b, expected{t, types.DefinitionOf{Name: b.Name}})
	return &core.Decl{Name: b.Name, Schema: types.Mono(t), Def: def, Range: b.Range}
}

// Check a single local binding which is never generalized.
func (m *inferM) checkMonoBind(b *ast.Bind) *core.Decl {
	if b.Signature != nil {
		return m.checkSigB(b, m.checkSchema(b.Signature))
	}
	t := m.freshType(types.KType, types.DefinitionOf{Name: b.Name})
	return m.checkMonoB(b, t)
}

// The body of a binding opens a scope for existential type variables.
func (m *inferM) checkBindBody(b *ast.Bind, exp expected) core.Expr {
	m.pushExistentials()
	defer m.popExistentials()
	return m.checkFun(b.Params, b.Body, exp)
}

// Check local declarations, then run body with them in scope.
func (m *inferM) checkLocalDecls(ds []ast.Decl, body func()) []core.DeclGroup {
	m.openScope(ScopeLocal, m.freshName("where"))
	stashed := m.checkDecls(ds, false)
	body()
	m.unstash(stashed)
	return m.closeLocal()
}
