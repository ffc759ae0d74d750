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
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/config"
	. "github.com/wdamron/dtinfer/construct"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/types"
)

func newTestInferM() (*inferM, *Prelude) {
	p := NewPrelude(1000)
	in := &Input{
		Options:  config.Default(),
		External: NewExternalScope(p.Iface),
		Prims:    p.Prims,
		Seeds:    NameSeeds{TypeVar: p.NextTypeVar},
	}
	return newInferM(context.Background(), in), p
}

func TestScopeKindMismatchPanics(t *testing.T) {
	m, _ := newTestInferM()
	ns := NewNames("Main", 100000)
	m.openScope(ScopeTopModule, ns.T("Main"))
	m.openScope(ScopeLocal, ns.T("local"))

	var ierr *InternalError
	func() {
		defer func() { ierr, _ = recover().(*InternalError) }()
		m.closeSubmodule()
	}()
	require.NotNil(t, ierr)
	require.Contains(t, ierr.Msg, "closing submodule scope, but the open scope is local")

	// The failed close leaves the local scope open.
	require.Equal(t, ScopeLocal, m.curScope().kind)
	require.Empty(t, m.closeLocal())
	require.NotNil(t, m.closeTopModule())
}

func TestCloseSubmoduleMerges(t *testing.T) {
	m, _ := newTestInferM()
	ns := NewNames("Main", 100000)
	m.openScope(ScopeTopModule, ns.T("Main"))

	m.openScope(ScopeSubmodule, ns.T("Plain"))
	syn := &types.TySyn{Name: ns.T("Byte"), Body: types.TWord(types.TNum(8))}
	m.addTySyn(syn)
	plain := &core.Decl{Name: ns.V("plain"), Schema: types.Mono(types.TBit)}
	m.addDecls(core.DeclGroup{Decls: []*core.Decl{plain}})
	m.closeSubmodule()

	m.openScope(ScopeSubmodule, ns.T("Param"))
	n := ns.T("n")
	m.addParamType(&types.ModParamType{Name: n, Param: m.vt.NewParam(types.KNum, &n, types.TVarInfo{})})
	param := &core.Decl{Name: ns.V("param"), Schema: types.Mono(types.TBit)}
	m.addDecls(core.DeclGroup{Decls: []*core.Decl{param}})
	m.closeSubmodule()

	mod := m.closeTopModule()
	require.Same(t, syn, mod.TySyns[syn.Name.ID])
	require.Len(t, mod.Decls, 2)
	require.Empty(t, mod.ParamTypes, "module parameters stay with their submodule")
	require.NotContains(t, mod.Submodules, ns.T("Plain").ID)
	iface, ok := mod.Submodules[ns.T("Param").ID]
	require.True(t, ok, "a parameterized submodule registers its interface")
	require.Contains(t, iface.Vars, param.Name.ID)
	require.NotContains(t, iface.Vars, plain.Name.ID)
}

func TestFinalSubstitutionIdempotent(t *testing.T) {
	m, p := newTestInferM()
	ns := NewNames("Main", 100000)
	plus, eq, tru := p.Prims["+"], p.Prims["=="], p.Prims["True"]
	even, odd, pairs, x, y, z := ns.V("even"), ns.V("odd"), ns.V("pairs"), ns.V("x"), ns.V("y"), ns.V("z")
	ds := GroupDecls([]ast.Decl{
		Group(false,
			Bind(even, []ast.Pattern{PVar(x)}, If(App(Var(eq), Var(x), Num(0)), Var(tru), App(Var(odd), App(Var(plus), Var(x), Num(1))))),
			Bind(odd, []ast.Pattern{PVar(y)}, If(App(Var(eq), Var(y), Num(1)), Var(tru), App(Var(even), Var(y)))),
		),
		Group(false, Bind(pairs, nil, Comp(Tuple(Var(z), App(Var(even), Var(z))), []ast.Match{From(PVar(z), List(Num(1), Num(2)))}))),
	})

	m.openScope(ScopeTopModule, ns.T("Main"))
	m.checkDecls(ds, true)
	m.finish()
	require.Empty(t, m.errs)
	require.Greater(t, m.subst.Len(), 0)

	m.subst.Range(func(v *types.TVFree, _ types.Type) bool {
		once := m.subst.Apply(v)
		require.True(t, types.Equal(once, m.subst.Apply(once)), types.TypeString(once))
		require.False(t, types.Occurs(v, once))
		return true
	})
	m.zonkModule(m.closeTopModule())
	require.Empty(t, m.errs)
}
