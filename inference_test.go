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

package dtinfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer"
	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/config"
	. "github.com/wdamron/dtinfer/construct"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

type fixture struct {
	p  *Prelude
	ns *Names
	in dtinfer.Input
}

func newFixture() *fixture {
	p := NewPrelude(1000)
	return &fixture{
		p:  p,
		ns: NewNames("Main", 100000),
		in: dtinfer.Input{
			Options:  config.Default(),
			External: dtinfer.NewExternalScope(p.Iface),
			Prims:    p.Prims,
			Seeds:    dtinfer.NameSeeds{TypeVar: p.NextTypeVar},
		},
	}
}

func (f *fixture) module(ds ...ast.Decl) *ast.Module { return Module(f.ns.T("Main"), ds...) }

func (f *fixture) check(t *testing.T, ds ...ast.Decl) *core.Module {
	t.Helper()
	out, err := dtinfer.InferModule(context.Background(), f.in, f.module(ds...))
	require.NoError(t, err)
	return out.Module
}

func (f *fixture) fail(t *testing.T, ds ...ast.Decl) *dtinfer.Failure {
	t.Helper()
	_, err := dtinfer.InferModule(context.Background(), f.in, f.module(ds...))
	var failure *dtinfer.Failure
	require.True(t, errors.As(err, &failure), "expected a type error, got %v", err)
	require.NotEmpty(t, failure.Errors)
	return failure
}

func declOf(t *testing.T, mod *core.Module, n names.Name) *core.Decl {
	t.Helper()
	for _, g := range mod.Decls {
		for _, d := range g.Decls {
			if d.Name.ID == n.ID {
				return d
			}
		}
	}
	t.Fatalf("no declaration for %s", n)
	return nil
}

// Print a schema with its parameters renamed a, b, c, ... in order.
func canon(sc *types.Schema) string { return types.SchemaString(canonSchema(sc)) }

func canonSchema(sc *types.Schema) *types.Schema {
	out := &types.Schema{Params: make([]*types.TParam, len(sc.Params))}
	m := make(map[int]types.Type, len(sc.Params))
	for i, p := range sc.Params {
		n := names.Name{Ident: string(rune('a' + i))}
		q := &types.TParam{ID: p.ID, K: p.K, Name: &n, Info: p.Info}
		out.Params[i] = q
		m[p.ID] = types.TBound(q)
	}
	for _, p := range sc.Props {
		out.Props = append(out.Props, types.InstantiateBound(p, m))
	}
	out.Body = types.InstantiateBound(sc.Body, m)
	return out
}

func hasError[E dtinfer.TypeError](failure *dtinfer.Failure) bool {
	for _, d := range failure.Errors {
		if _, ok := d.Err.(E); ok {
			return true
		}
	}
	return false
}

func findExpr(e core.Expr, pred func(core.Expr) bool) core.Expr {
	var found core.Expr
	core.Visit(e, func(e core.Expr) {
		if found == nil && pred(e) {
			found = e
		}
	}, nil)
	return found
}

func TestIdentity(t *testing.T) {
	f := newFixture()
	id, x := f.ns.V("id"), f.ns.V("x")
	mod := f.check(t, Group(false, Bind(id, []ast.Pattern{PVar(x)}, Var(x))))

	d := declOf(t, mod, id)
	require.Equal(t, "{a} a -> a", canon(d.Schema))
	tabs, ok := d.Def.(*core.ETAbs)
	require.True(t, ok, "polymorphic definitions abstract over their parameters")
	require.Equal(t, d.Schema.Params[0].ID, tabs.Param.ID)
	_, ok = tabs.Body.(*core.EAbs)
	require.True(t, ok)
}

func TestLiteralGeneralized(t *testing.T) {
	f := newFixture()
	three := f.ns.V("three")
	mod := f.check(t, Group(false, Bind(three, nil, Num(3))))
	require.Equal(t, "{a} (Literal 3 a) => a", canon(declOf(t, mod, three).Schema))
}

func TestInferExprDefaults(t *testing.T) {
	f := newFixture()
	plus := f.p.Prims["+"]
	out, err := dtinfer.InferExpr(context.Background(), f.in, At(3, App(Var(plus), Num(3), Num(4))))
	require.NoError(t, err)
	require.Equal(t, "Integer", types.SchemaString(out.Schema))
	require.Len(t, out.Warnings, 1)
	w, ok := out.Warnings[0].Warning.(*dtinfer.DefaultingTo)
	require.True(t, ok)
	require.Equal(t, "Integer", types.TypeString(w.Type))
	require.Greater(t, out.Seeds.TypeVar, f.in.Seeds.TypeVar)
}

func TestSignatureAccepted(t *testing.T) {
	f := newFixture()
	same, x, n := f.ns.V("same"), f.ns.V("x"), f.ns.T("n")
	sig := Schema([]ast.TParam{TP(n, nil)}, []ast.Type{Fin(TUser(n))}, TFun(TWord(TUser(n)), TWord(TUser(n))))
	mod := f.check(t, Group(false, SigBind(same, sig, []ast.Pattern{PVar(x)}, Var(x))))

	d := declOf(t, mod, same)
	require.Equal(t, "{n} (fin n) => [n]Bit -> [n]Bit", types.SchemaString(d.Schema))
	require.Equal(t, types.KNum, d.Schema.Params[0].K, "kind is inferred from use")
}

func TestSignatureMismatch(t *testing.T) {
	f := newFixture()
	g, x := f.ns.V("g"), f.ns.V("x")
	sig := Schema(nil, nil, TFun(TWord(TNum(8)), TWord(TNum(4))))
	failure := f.fail(t, Group(false, SigBind(g, sig, []ast.Pattern{PVar(x)}, At(7, Var(x)))))
	require.IsType(t, &dtinfer.TypeMismatch{}, failure.Errors[0].Err)
	require.Equal(t, 7, failure.Errors[0].Range.From.Line)
}

func TestMonoLocalBinds(t *testing.T) {
	build := func(f *fixture) ast.Decl {
		top, local, x := f.ns.V("top"), f.ns.V("local"), f.ns.V("x")
		return Group(false, Bind(top, nil, Where(Var(local), Group(false, Bind(local, []ast.Pattern{PVar(x)}, Var(x))))))
	}
	localSchema := func(t *testing.T, f *fixture, mod *core.Module) *types.Schema {
		d := declOf(t, mod, f.ns.V("top"))
		require.Equal(t, "{a} a -> a", canon(d.Schema))
		w := findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.EWhere); return ok })
		require.NotNil(t, w)
		return w.(*core.EWhere).Decls[0].Decls[0].Schema
	}

	f := newFixture()
	mod := f.check(t, build(f))
	require.Len(t, localSchema(t, f, mod).Params, 1, "local bindings are generalized by default")

	f = newFixture()
	f.in.Options.MonoBinds = true
	mod = f.check(t, build(f))
	require.Empty(t, localSchema(t, f, mod).Params)
}

func TestMutualRecursion(t *testing.T) {
	f := newFixture()
	ping, pong, x, y := f.ns.V("ping"), f.ns.V("pong"), f.ns.V("x"), f.ns.V("y")
	ds := dtinfer.GroupDecls([]ast.Decl{
		Group(false, Bind(ping, []ast.Pattern{PVar(x)}, App(Var(pong), Var(x)))),
		Group(false, Bind(pong, []ast.Pattern{PVar(y)}, App(Var(ping), Var(y)))),
	})
	require.Len(t, ds, 1)
	require.True(t, ds[0].(*ast.BindGroup).Recursive)

	mod := f.check(t, ds...)
	require.Len(t, mod.Decls, 1)
	require.True(t, mod.Decls[0].Recursive)
	require.Equal(t, "{a, b} a -> b", canon(declOf(t, mod, ping).Schema))
	require.Equal(t, "{a, b} a -> b", canon(declOf(t, mod, pong).Schema))

	// Recursive uses are applied to the callee's parameters.
	d := declOf(t, mod, ping)
	tapp := findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.ETApp); return ok })
	require.NotNil(t, tapp)
}

func TestSplitPattern(t *testing.T) {
	f := newFixture()
	hi, a, b := f.ns.V("hi"), f.ns.V("a"), f.ns.V("b")
	sig := Schema(nil, nil, TFun(TWord(TNum(8)), TWord(TNum(4))))
	mod := f.check(t, Group(false, SigBind(hi, sig, []ast.Pattern{PSplit(PVar(a), PVar(b))}, Var(a))))
	require.Equal(t, "[8]Bit -> [4]Bit", types.SchemaString(declOf(t, mod, hi).Schema))

	f = newFixture()
	sig = Schema(nil, nil, TFun(TWord(TNum(3)), TWord(TNum(4))))
	f.fail(t, Group(false, SigBind(hi, sig, []ast.Pattern{PSplit(PVar(a), PVar(b))}, Var(a))))
}

func TestRecordSelect(t *testing.T) {
	f := newFixture()
	getX, r, a := f.ns.V("getX"), f.ns.V("r"), f.ns.T("a")
	rec := TRecord(TField("x", TUser(a)), TField("y", TBit()))
	sig := Schema([]ast.TParam{TP(a, nil)}, nil, TFun(rec, TUser(a)))
	mod := f.check(t, Group(false, SigBind(getX, sig, []ast.Pattern{PVar(r)}, Sel(Var(r), "x"))))

	d := declOf(t, mod, getX)
	require.Equal(t, "{a} {x : a, y : Bit} -> a", types.SchemaString(d.Schema))
	sel := findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.ESel); return ok })
	require.NotNil(t, sel)
	require.Equal(t, types.RecordSelector("x"), sel.(*core.ESel).Sel)
	require.Nil(t, findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.EHasSel); return ok }))
}

func TestRecordUpdate(t *testing.T) {
	f := newFixture()
	setX, r := f.ns.V("setX"), f.ns.V("r")
	rec := TRecord(TField("x", TWord(TNum(8))), TField("y", TBit()))
	sig := Schema(nil, nil, TFun(rec, rec))
	mod := f.check(t, Group(false, SigBind(setX, sig, []ast.Pattern{PVar(r)}, Set(Var(r), "x", Num(5)))))

	d := declOf(t, mod, setX)
	require.NotNil(t, findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.ESet); return ok }))
	require.Nil(t, findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.EHasSet); return ok }))
}

func TestMissingField(t *testing.T) {
	f := newFixture()
	getZ, r := f.ns.V("getZ"), f.ns.V("r")
	sig := Schema(nil, nil, TFun(TRecord(TField("x", TBit())), TBit()))
	failure := f.fail(t, Group(false, SigBind(getZ, sig, []ast.Pattern{PVar(r)}, Sel(Var(r), "z"))))
	require.IsType(t, &dtinfer.MissingField{}, failure.Errors[0].Err)
}

func TestComprehension(t *testing.T) {
	f := newFixture()
	x := f.ns.V("x")
	e := Comp(Var(x), []ast.Match{From(PVar(x), List(Num(1), Num(2), Num(3)))})
	out, err := dtinfer.InferExpr(context.Background(), f.in, e)
	require.NoError(t, err)
	require.Equal(t, "[3]Integer", types.SchemaString(out.Schema))
}

func TestLiteralTooWide(t *testing.T) {
	f := newFixture()
	small := f.ns.V("small")
	sig := Schema(nil, nil, TWord(TNum(2)))
	f.fail(t, Group(false, SigBind(small, sig, nil, Num(9))))
}

func TestContextCarriesInterfaces(t *testing.T) {
	f := newFixture()
	one := f.ns.V("one")
	ic := dtinfer.NewContext(f.in)

	_, err := ic.CheckModule(context.Background(), f.module(Group(false, Bind(one, nil, Num(1)))))
	require.NoError(t, err)
	require.Greater(t, ic.Seeds().TypeVar, f.in.Seeds.TypeVar)

	seeds := ic.Seeds()
	_, sc, err := ic.CheckExpr(context.Background(), Var(one))
	require.NoError(t, err)
	require.Equal(t, "Integer", types.SchemaString(sc))
	require.Len(t, ic.Warnings(), 1)
	require.GreaterOrEqual(t, ic.Seeds().TypeVar, seeds.TypeVar)

	_, _, err = ic.CheckExpr(context.Background(), App(Var(one), Num(2)))
	require.Error(t, err)
	require.Equal(t, err, ic.Error())
}

func TestCancelled(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dtinfer.InferModule(ctx, f.in, f.module(Group(false, Bind(f.ns.V("x"), nil, Num(1)))))
	require.ErrorIs(t, err, context.Canceled)
}

func TestIncrementGeneralized(t *testing.T) {
	f := newFixture()
	inc, x := f.ns.V("inc"), f.ns.V("x")
	plus := f.p.Prims["+"]
	mod := f.check(t, Group(false, Bind(inc, []ast.Pattern{PVar(x)}, App(Var(plus), Var(x), Num(1)))))

	sc := canonSchema(declOf(t, mod, inc).Schema)
	require.Len(t, sc.Params, 1)
	require.Equal(t, "a -> a", types.TypeString(sc.Body))
	props := make([]string, len(sc.Props))
	for i, p := range sc.Props {
		props[i] = types.TypeString(p)
	}
	require.ElementsMatch(t, []string{"Ring a", "Literal 1 a"}, props)
}

func TestMonoLocalUseFixesType(t *testing.T) {
	f := newFixture()
	f.in.Options.MonoBinds = true
	top, local, x := f.ns.V("top"), f.ns.V("local"), f.ns.V("x")
	tru := f.p.Prims["True"]
	body := Where(
		Tuple(App(Var(local), Var(tru)), App(Var(local), Num(3))),
		Group(false, Bind(local, []ast.Pattern{PVar(x)}, Var(x))),
	)
	failure := f.fail(t, Group(false, Bind(top, nil, body)))
	require.True(t, hasError[*dtinfer.UnsolvableGoal](failure) || hasError[*dtinfer.UnsolvedGoals](failure),
		"a monomorphic local used at Bit cannot take a literal: %v", failure)

	f = newFixture()
	mod := f.check(t, Group(false, Bind(top, nil, body)))
	require.Equal(t, "{a} (Literal 3 a) => (Bit, a)", canon(declOf(t, mod, top).Schema))
}

func TestWildcardUpdate(t *testing.T) {
	f := newFixture()
	upd := f.ns.V("upd")
	rec := TRecord(TField("x", TBit()))
	sig := Schema(nil, nil, TFun(rec, rec))
	mod := f.check(t, Group(false, SigBind(upd, sig, nil, Set(nil, "x", Var(f.p.Prims["True"])))))

	d := declOf(t, mod, upd)
	abs, ok := d.Def.(*core.EAbs)
	require.True(t, ok, "an update without a record becomes a function")
	set, ok := abs.Body.(*core.ESet)
	require.True(t, ok)
	require.Equal(t, abs.Name, set.Expr.(*core.EVar).Name)
}

func TestErrorsContinue(t *testing.T) {
	f := newFixture()
	xs, g, x := f.ns.V("xs"), f.ns.V("g"), f.ns.V("x")
	failure := f.fail(t,
		Group(false, SigBind(xs, Schema(nil, nil, TSeq(TNum(3), TBuiltin(types.TCInteger))), nil, At(1, List(Num(1), Num(2))))),
		Group(false, SigBind(g, Schema(nil, nil, TFun(TWord(TNum(8)), TWord(TNum(4)))), []ast.Pattern{PVar(x)}, At(2, Var(x)))),
	)
	require.Len(t, failure.Errors, 2)
	first, ok := failure.Errors[0].Err.(*dtinfer.TypeMismatch)
	require.True(t, ok)
	require.Equal(t, "3", types.TypeString(first.Expected))
	require.Equal(t, "2", types.TypeString(first.Actual))
	require.Equal(t, 2, failure.Errors[1].Range.From.Line)
}

func TestExistentials(t *testing.T) {
	f := newFixture()
	pair, x, y := f.ns.V("pair"), f.ns.V("x"), f.ns.V("y")
	body := Tuple(Typed(Var(x), TExist("t")), Typed(Var(y), TExist("t")))
	mod := f.check(t, Group(false, Bind(pair, []ast.Pattern{PVar(x), PVar(y)}, body)))
	require.Equal(t, "{a} a -> a -> (a, a)", canon(declOf(t, mod, pair).Schema))

	f = newFixture()
	v := f.ns.V("v")
	failure := f.fail(t, Group(false, SigBind(v, Schema(nil, nil, TExist("t")), nil, Num(1))))
	require.True(t, hasError[*dtinfer.UndefinedExistential](failure))
}

func TestParamEscapesThroughOuterVariable(t *testing.T) {
	f := newFixture()
	top, h, x, y, z, a := f.ns.V("top"), f.ns.V("h"), f.ns.V("x"), f.ns.V("y"), f.ns.V("z"), f.ns.T("a")
	sig := Schema([]ast.TParam{TP(a, nil)}, nil, TFun(TUser(a), TUser(a)))
	local := SigBind(h, sig, []ast.Pattern{PVar(y)}, App(Lam(Var(y), z), List(Var(x), List(Var(y)))))
	failure := f.fail(t, Group(false, Bind(top, []ast.Pattern{PVar(x)}, Where(Tuple(), Group(false, local)))))
	require.True(t, hasError[*dtinfer.TypeVariableEscaped](failure), "x may not mention a: %v", failure)
}

func TestRecursiveGroupQuantifiesPerBinding(t *testing.T) {
	f := newFixture()
	ping, pong, x, y, z := f.ns.V("ping"), f.ns.V("pong"), f.ns.V("x"), f.ns.V("y"), f.ns.V("z")
	ds := dtinfer.GroupDecls([]ast.Decl{
		Group(false, Bind(ping, []ast.Pattern{PVar(x)}, App(Lam(Var(x), z), Var(pong)))),
		Group(false, Bind(pong, []ast.Pattern{PVar(y)}, App(Lam(Var(y), z), Var(ping)))),
	})
	require.Len(t, ds, 1)

	mod := f.check(t, ds...)
	for _, n := range []names.Name{ping, pong} {
		d := declOf(t, mod, n)
		require.Equal(t, "{a} a -> a", canon(d.Schema))

		// The sibling is applied to its own single parameter.
		tapp := findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.ETApp); return ok })
		require.NotNil(t, tapp)
		_, nested := tapp.(*core.ETApp).Expr.(*core.ETApp)
		require.False(t, nested)
	}
}

func TestCallStacksKeepLocations(t *testing.T) {
	located := func(callStacks bool) core.Expr {
		f := newFixture()
		f.in.Options.CallStacks = callStacks
		g := f.ns.V("g")
		mod := f.check(t, Group(false, Bind(g, nil, At(3, Var(f.p.Prims["True"])))))
		return findExpr(declOf(t, mod, g).Def, func(e core.Expr) bool { _, ok := e.(*core.ELocated); return ok })
	}

	loc := located(true)
	require.NotNil(t, loc)
	require.Equal(t, 3, loc.(*core.ELocated).Range.From.Line)
	require.Nil(t, located(false))
}

func TestModifyBindsReceiver(t *testing.T) {
	f := newFixture()
	bump, r, v := f.ns.V("bump"), f.ns.V("r"), f.ns.V("v")
	rec := TRecord(TField("x", TWord(TNum(8))), TField("y", TBit()))
	sig := Schema(nil, nil, TFun(rec, rec))
	body := Modify(Var(r), "x", Lam(App(Var(f.p.Prims["+"]), Var(v), Num(1)), v))
	mod := f.check(t, Group(false, SigBind(bump, sig, []ast.Pattern{PVar(r)}, body)))

	d := declOf(t, mod, bump)
	w := findExpr(d.Def, func(e core.Expr) bool { _, ok := e.(*core.EWhere); return ok })
	require.NotNil(t, w, "the receiver is bound once")
	recv := w.(*core.EWhere).Decls[0].Decls[0]
	require.Equal(t, r.ID, recv.Def.(*core.EVar).Name.ID)
	require.Equal(t, "{x : [8]Bit, y : Bit}", types.TypeString(recv.Schema.Body))

	set, ok := w.(*core.EWhere).Expr.(*core.ESet)
	require.True(t, ok)
	require.Equal(t, recv.Name.ID, set.Expr.(*core.EVar).Name.ID)
	require.NotNil(t, findExpr(set.Value, func(e core.Expr) bool { _, ok := e.(*core.ESel); return ok }))
}

func TestParameterizedSubmodule(t *testing.T) {
	f := newFixture()
	sub, n, width, use, x := f.ns.T("Sized"), f.ns.T("n"), f.ns.V("width"), f.ns.V("use"), f.ns.V("x")
	sig := Schema(nil, nil, TFun(TWord(TUser(n)), TWord(TUser(n))))
	mod := f.check(t,
		&ast.Submodule{Name: sub, Decls: []ast.Decl{
			&ast.ParamType{Name: n, Kind: types.KNum},
			&ast.ParamConstraint{Props: []ast.Type{Fin(TUser(n))}},
			Group(false, SigBind(width, sig, []ast.Pattern{PVar(x)}, Var(x))),
		}},
		Group(false, Bind(use, nil, Var(f.p.Prims["True"]))),
	)

	require.Empty(t, mod.ParamTypes)
	require.Empty(t, mod.ParamConstraints)
	iface, ok := mod.Submodules[sub.ID]
	require.True(t, ok)
	require.Equal(t, "[n]Bit -> [n]Bit", types.SchemaString(iface.Vars[width.ID]))
	declOf(t, mod, width)
	declOf(t, mod, use)
}

func TestParameterConstraintsWellFormed(t *testing.T) {
	build := func(f *fixture, props ...ast.Type) ast.Decl {
		return &ast.Submodule{Name: f.ns.T("Sized"), Decls: []ast.Decl{
			&ast.ParamType{Name: f.ns.T("n"), Kind: types.KNum},
			&ast.ParamConstraint{Props: props},
		}}
	}
	pred := func(f *fixture) ast.Type { return TBuiltin(types.TFSub, TUser(f.ns.T("n")), TNum(1)) }

	f := newFixture()
	f.check(t, build(f, Geq(TUser(f.ns.T("n")), TNum(1)), Fin(pred(f))))

	f = newFixture()
	failure := f.fail(t, build(f, Fin(pred(f))))
	var sources []dtinfer.ConstraintSource
	for _, d := range failure.Errors {
		switch err := d.Err.(type) {
		case *dtinfer.UnsolvableGoal:
			sources = append(sources, err.Goal.Source)
		case *dtinfer.UnsolvedGoals:
			for _, g := range err.Goals {
				sources = append(sources, g.Source)
			}
		}
	}
	require.Contains(t, sources, dtinfer.ConstraintSource(dtinfer.CtModuleParam{}))
}
