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
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/config"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/internal/simplify"
	"github.com/wdamron/dtinfer/internal/typeutil"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Input configures an inference run.
type Input struct {
	Options config.Options
	// Logger receives debug traces. Defaults to a logger which discards everything.
	Logger logrus.FieldLogger
	// Solver decides the goals the local simplifier leaves open. Defaults to LocalSolver.
	Solver Solver
	// External holds the prelude and the interfaces of imported modules.
	External *ExternalScope
	// Prims maps the identifiers of well-known primitives (number, fraction,
	// splitAt, fromTo, ...) to their resolved names.
	Prims map[string]names.Name
	// Seeds continues the fresh-name sequences of an earlier run.
	Seeds NameSeeds
	// Supply allocates names for generated value bindings. Defaults to a
	// counter starting far above the ids a resolver hands out.
	Supply names.Supply
}

// NameSeeds are the next unused type-variable and goal ids.
type NameSeeds struct {
	TypeVar int
	Goal    int
}

// Output is the result of a successful module run.
type Output struct {
	Module   *core.Module
	Seeds    NameSeeds
	Warnings []WarningDiag
}

// ExprOutput is the result of a successful expression run.
type ExprOutput struct {
	Expr     core.Expr
	Schema   *types.Schema
	Seeds    NameSeeds
	Warnings []WarningDiag
}

// DefaultSupplyStart is the first id allocated by the default name supply.
const DefaultSupplyStart = 1 << 30

func newInferM(ctx context.Context, in *Input) *inferM {
	log := in.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	solver := in.Solver
	if solver == nil {
		solver = LocalSolver{}
	}
	supply := in.Supply
	if supply == nil {
		supply = names.NewSupply(DefaultSupplyStart)
	}
	return &inferM{
		ctx:      ctx,
		opts:     in.Options,
		log:      log,
		solver:   solver,
		prims:    in.Prims,
		supply:   supply,
		vt:       typeutil.VarTracker{NextTypeVar: in.Seeds.TypeVar, NextGoal: in.Seeds.Goal},
		env:      make(map[int]VarType),
		tvars:    make(map[int]*types.TParam),
		asmps:    simplify.NewAssumptions(),
		subst:    types.EmptySubst(),
		hasInfo:  make(map[int]HasGoal),
		hasSolns: make(map[int]hasSoln),
		external: in.External,
	}
}

// InferModule checks a name-resolved module and elaborates it into explicitly
// typed terms. It returns a *Failure when the module has type errors, and the
// context's error when ctx is cancelled between declarations.
func InferModule(ctx context.Context, in Input, mod *ast.Module) (*Output, error) {
	m := newInferM(ctx, &in)
	m.debug("checking module", logrus.Fields{"module": mod.Name.String()})
	m.openScope(ScopeTopModule, mod.Name)
	m.checkDecls(mod.Decls, true)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("checking module %s: %w", mod.Name, err)
	}
	m.finish()

	out := m.closeTopModule()
	out.Imports = mod.Imports
	m.zonkModule(out)
	if err := m.failure(); err != nil {
		return nil, err
	}
	m.debug("module done", logrus.Fields{"module": mod.Name.String(), "groups": len(out.Decls), "warnings": len(m.warns)})
	return &Output{Module: out, Seeds: m.seeds(), Warnings: m.warns}, nil
}

// InferExpr checks a single expression against the external scope. Ambiguous
// variables of the result are defaulted; the rest are generalized.
func InferExpr(ctx context.Context, in Input, e ast.Expr) (*ExprOutput, error) {
	m := newInferM(ctx, &in)
	m.openScope(ScopeTopModule, m.freshName("repl"))
	b := &ast.Bind{Name: m.freshName("it"), Body: e}
	if l, ok := e.(*ast.Located); ok {
		b.Range = l.Range
	}

	var d *core.Decl
	goals := m.collectGoals(func() {
		d = m.checkMonoB(b, m.freshType(types.KType, types.DefinitionOf{Name: b.Name}))
		m.simplifyAllConstraints(false)
	})
	var vs []*types.TVFree
	for _, g := range goals {
		vs = append(vs, types.FreeVars(m.subst.Apply(g.Prop))...)
	}
	goals = m.simplifyGoals(m.defaultVars(vs, goals))
	d = m.generalize([]*core.Decl{d}, goals, nil)[0]
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("checking expression: %w", err)
	}
	m.finish()
	m.closeTopModule()

	d = m.resolveHas().Decl(d)
	m.checkResolved([]core.DeclGroup{{Decls: []*core.Decl{d}}})
	if err := m.failure(); err != nil {
		return nil, err
	}
	return &ExprOutput{Expr: d.Def, Schema: d.Schema, Seeds: m.seeds(), Warnings: m.warns}, nil
}

func (m *inferM) seeds() NameSeeds {
	return NameSeeds{TypeVar: m.vt.NextTypeVar, Goal: m.vt.NextGoal}
}

func (m *inferM) failure() error {
	sortDiagnostics(m.errs, m.warns)
	if len(m.errs) == 0 {
		return nil
	}
	return &Failure{Errors: m.errs, Warnings: m.warns}
}

// Check declarations in order, adding them to the current scope. Returns the
// number of stashed environment entries; the caller unstashes them when the
// declarations go out of scope.
func (m *inferM) checkDecls(ds []ast.Decl, top bool) int {
	stashed := 0
	for _, d := range ds {
		if m.ctx.Err() != nil {
			break
		}
		switch d := d.(type) {
		case *ast.TySyn:
			m.checkTySyn(d)
		case *ast.Newtype:
			stashed += m.checkNewtype(d)
		case *ast.PrimType:
			m.checkPrimType(d)
		case *ast.ParamType:
			m.checkParamType(d)
		case *ast.ParamConstraint:
			m.checkParamConstraint(d)
		case *ast.ParamFun:
			restore := m.withRange(d.Range)
			sc := m.checkSchema(d.Schema)
			m.addParamFun(d.Name, sc)
			stashed += m.declare(d.Name, &ExtVar{Schema: sc})
			restore()
		case *ast.BindGroup:
			ds := m.inferBinds(top, d.Recursive, d.Binds)
			for _, cd := range ds {
				stashed += m.declare(cd.Name, &ExtVar{Schema: cd.Schema})
			}
			m.addDecls(core.DeclGroup{Recursive: d.Recursive, Decls: ds})
		case *ast.Submodule:
			stashed += m.checkSubmodule(d)
		default:
			panicf("unknown declaration:", d.DeclName())
		}
	}
	return stashed
}

func paramSource(n names.Name) types.TypeSource { return types.DefinitionOf{Name: n} }

func (m *inferM) checkTySyn(d *ast.TySyn) {
	defer m.withRange(d.Range)()
	if prev, ok := m.shadowedTySyn(d.Name); ok {
		m.recordWarning(&Shadowing{What: "type synonym", Name: prev})
	}
	km := m.newKindM(false)
	params := km.declare(d.Params, paramSource)
	body, _ := km.infer(d.Body, nil)
	defaultKinds(params)
	ts := &types.TySyn{Name: d.Name, Params: params, Body: body}
	for _, g := range km.goals {
		ts.Props = append(ts.Props, g.Prop)
	}
	m.addTySyn(ts)
}

// A newtype also declares its constructor function.
func (m *inferM) checkNewtype(d *ast.Newtype) int {
	defer m.withRange(d.Range)()
	km := m.newKindM(false)
	params := km.declare(d.Params, paramSource)
	fields := make([]types.Field, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = types.Field{Label: f.Label, Type: km.check(f.Type, types.KType)}
	}
	defaultKinds(params)
	con := d.ConName
	if con.Ident == "" {
		con = d.Name
	}
	nt := &types.Newtype{Name: d.Name, Params: params, Fields: types.NewFieldMap(fields...), ConName: con}
	for _, g := range km.goals {
		nt.Props = append(nt.Props, g.Prop)
	}
	m.addNewtype(nt)
	return m.declare(con, &ExtVar{Schema: nt.ConSchema()})
}

func (m *inferM) checkPrimType(d *ast.PrimType) {
	defer m.withRange(d.Range)()
	km := m.newKindM(false)
	at := &types.AbstractType{Name: d.Name, K: d.Kind}
	for _, p := range d.Props {
		at.Props = append(at.Props, types.SplitAnd(km.check(p, types.KProp))...)
	}
	for _, g := range km.goals {
		at.Props = append(at.Props, g.Prop)
	}
	m.addPrimType(at)
}

// Module type parameters are in scope as bound types for the rest of the
// module. Unification variables created later may depend on them.
func (m *inferM) checkParamType(d *ast.ParamType) {
	name := d.Name
	p := m.vt.NewParam(d.Kind, &name, types.TVarInfo{Range: d.Range, Source: types.TVFromModParam{Name: d.Name}})
	m.tparams = append(m.tparams, p)
	m.addParamType(&types.ModParamType{Name: d.Name, Param: p})
}

func (m *inferM) checkParamConstraint(d *ast.ParamConstraint) {
	defer m.withRange(d.Range)()
	km := m.newKindM(false)
	var props []types.Type
	for _, p := range d.Props {
		props = append(props, types.SplitAnd(km.check(p, types.KProp))...)
	}
	m.asmps = m.asmps.With(props...)
	m.addParamConstraints(props)

	// Constraints must be well-formed under each other; proved while they are in scope.
	wf := make([]Goal, len(km.goals))
	for i, g := range km.goals {
		wf[i] = Goal{Source: CtModuleParam{}, Range: g.Range, Prop: g.Prop}
	}
	m.goals = append(m.goals, m.simplifyGoals(wf)...)
}

// The declarations of a submodule stay visible after it closes. Its module
// parameters and their constraints do not.
func (m *inferM) checkSubmodule(d *ast.Submodule) int {
	defer m.withRange(d.Range)()
	prevParams, prevAsmps := m.tparams, m.asmps
	m.openScope(ScopeSubmodule, d.Name)
	stashed := m.checkDecls(d.Decls, true)
	m.tparams, m.asmps = prevParams, prevAsmps
	m.closeSubmodule()
	return stashed
}

// Discharge what is left of the goal store at the end of a run. Variables of
// the remaining goals are defaulted first; goals which still cannot be solved
// become errors.
func (m *inferM) finish() {
	m.simplifyAllConstraints(true)
	var vs []*types.TVFree
	for _, g := range m.goals {
		vs = append(vs, types.FreeVars(m.subst.Apply(g.Prop))...)
	}
	for _, g := range m.hasGoals {
		vs = append(vs, types.FreeVars(m.subst.Apply(g.Goal.Prop))...)
	}
	if len(vs) > 0 {
		m.goals = m.simplifyGoals(m.defaultVars(vs, m.goals))
		m.simplifyAllConstraints(true)
	}
	if len(m.goals) > 0 {
		restore := m.withRange(m.goals[0].Range)
		m.recordError(&UnsolvedGoals{Goals: m.goals})
		restore()
		m.goals = nil
	}
	if len(m.hasGoals) > 0 {
		gs := make([]Goal, len(m.hasGoals))
		for i, g := range m.hasGoals {
			gs[i] = g.Goal
			gs[i].Prop = m.subst.Apply(g.Goal.Prop)
		}
		restore := m.withRange(gs[0].Range)
		m.recordError(&UnsolvedGoals{Goals: gs})
		restore()
		m.hasGoals = nil
	}
}

// Apply the final substitution to the module and resolve selector
// placeholders.
func (m *inferM) zonkModule(mod *core.Module) {
	r := m.resolveHas()
	mod.Decls = r.Groups(mod.Decls)
	for i, p := range mod.ParamConstraints {
		mod.ParamConstraints[i] = m.zonk(p)
	}
	for id, sc := range mod.ParamFuns {
		mod.ParamFuns[id] = r.Schema(sc)
	}
	m.checkResolved(mod.Decls)
}

// Report unification variables which survived to the end of the run. After an
// earlier error they are expected, so they are only reported on their own.
func (m *inferM) checkResolved(gs []core.DeclGroup) {
	if len(m.errs) > 0 {
		return
	}
	for _, g := range gs {
		for _, d := range g.Decls {
			vs := core.FreeVarsOf([]core.DeclGroup{{Decls: []*core.Decl{d}}})
			if len(vs) == 0 {
				continue
			}
			restore := m.withRange(d.Range)
			m.recordError(&AmbiguousType{Names: []names.Name{d.Name}, Vars: vs})
			restore()
		}
	}
}
