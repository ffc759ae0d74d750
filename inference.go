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

	"github.com/sirupsen/logrus"

	"github.com/wdamron/dtinfer/config"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/internal/simplify"
	"github.com/wdamron/dtinfer/internal/typeutil"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// inferM holds the state of a single inference run. Every checking operation is
// a method on inferM; a run is sequential and inferM must not be shared.
type inferM struct {
	ctx    context.Context
	opts   config.Options
	log    logrus.FieldLogger
	solver Solver
	prims  map[string]names.Name
	supply names.Supply
	vt     typeutil.VarTracker

	// current source range
	rng names.Range
	// value variables in scope, shadowed entries are stashed
	env      map[int]VarType
	envStash []stashedVar
	// bound type parameters which new unification variables may depend on
	tparams []*types.TParam
	// type parameters visible by name (signature and module parameters)
	tvars map[int]*types.TParam
	// assumptions from enclosing signatures and parameter constraints
	asmps *simplify.Assumptions
	// open existential scopes, innermost last
	exist []map[string]types.Type

	subst    types.Subst
	goals    []Goal
	hasGoals []HasGoal
	hasInfo  map[int]HasGoal
	hasSolns map[int]hasSoln

	scopes   []*scope
	external *ExternalScope

	errs  []Diagnostic
	warns []WarningDiag
}

type stashedVar struct {
	id      int
	vt      VarType
	existed bool
}

// Goal is a constraint together with its provenance.
type Goal struct {
	Source ConstraintSource
	Range  names.Range
	Prop   types.Type
}

func (g Goal) String() string { return types.TypeString(g.Prop) }

// HasGoal is a selector constraint. The elaborated program refers to it by ID
// until it is solved.
type HasGoal struct {
	ID   int
	Goal Goal
}

func (m *inferM) withRange(r names.Range) (restore func()) {
	prev := m.rng
	if !r.IsEmpty() {
		m.rng = r
	}
	return func() { m.rng = prev }
}

func (m *inferM) recordError(err TypeError) {
	m.errs = append(m.errs, Diagnostic{Range: m.rng, Err: err})
}

func (m *inferM) recordWarning(w Warning) {
	if sh, ok := w.(*Shadowing); ok && sh.Name.System {
		return
	}
	m.warns = append(m.warns, WarningDiag{Range: m.rng, Warning: w})
}

// Allocate a fresh unification variable which may depend on the type parameters in scope.
func (m *inferM) freshType(k *types.Kind, src types.TypeSource) *types.TVFree {
	return m.vt.NewFree(k, m.tparams, types.TVarInfo{Range: m.rng, Source: src})
}

func (m *inferM) freshName(ident string) names.Name { return m.supply.Fresh(ident, m.rng) }

func (m *inferM) prim(ident string) names.Name {
	n, ok := m.prims[ident]
	if !ok {
		panicf("missing primitive", ident)
	}
	return n
}

// Record constraints emitted for src. Conjunctions are split and selector
// constraints move to the selector store.
func (m *inferM) addGoals(src ConstraintSource, props ...types.Type) {
	for _, p := range types.SplitAnd(props...) {
		if sel, rec, field, ok := types.IsHas(p); ok {
			m.newHasGoal(sel, rec, field)
			continue
		}
		m.goals = append(m.goals, Goal{Source: src, Range: m.rng, Prop: p})
	}
}

func (m *inferM) newHasGoal(sel types.Selector, rec, field types.Type) int {
	g := HasGoal{
		ID:   m.vt.NewGoal(),
		Goal: Goal{Source: CtSelector{}, Range: m.rng, Prop: types.PHas(sel, rec, field)},
	}
	m.hasGoals = append(m.hasGoals, g)
	m.hasInfo[g.ID] = g
	return g.ID
}

// Run f and return exactly the goals it emitted. Goals recorded before f are
// left in the store. Calls nest.
func (m *inferM) collectGoals(f func()) []Goal {
	outer := m.goals
	m.goals = nil
	f()
	collected := m.goals
	m.goals = outer
	return collected
}

// Extend the run's substitution. Failures here indicate a bug: callers only
// bind variables the unifier or solver has already checked.
func (m *inferM) extendSubst(v *types.TVFree, t types.Type) {
	s, err := m.subst.Extend(v, t)
	if err != nil {
		panic(&InternalError{Msg: "extending substitution: " + err.Error()})
	}
	m.subst = s
}

func (m *inferM) mergeSubst(delta types.Subst) {
	s, err := m.subst.Merge(delta)
	if err != nil {
		panic(&InternalError{Msg: "merging substitution: " + err.Error()})
	}
	m.subst = s
}

// Bring bound type parameters into scope, returning a function which restores the previous scope.
func (m *inferM) withParams(ps []*types.TParam, asmps []types.Type) (restore func()) {
	prevParams, prevAsmps := m.tparams, m.asmps
	m.tparams = append(append([]*types.TParam(nil), m.tparams...), ps...)
	for _, p := range ps {
		if p.Name != nil {
			if prev, ok := m.tvarByIdent(p.Name.Ident); ok && prev.ID != p.ID {
				m.recordWarning(&Shadowing{What: "type variable", Name: *p.Name})
			}
			m.tvars[p.Name.ID] = p
		}
	}
	if len(asmps) > 0 {
		m.asmps = m.asmps.With(asmps...)
	}
	return func() {
		for _, p := range ps {
			if p.Name != nil {
				delete(m.tvars, p.Name.ID)
			}
		}
		m.tparams, m.asmps = prevParams, prevAsmps
	}
}

func (m *inferM) tvarByIdent(ident string) (*types.TParam, bool) {
	for _, p := range m.tvars {
		if p.Name != nil && p.Name.Ident == ident {
			return p, true
		}
	}
	return nil, false
}

func (m *inferM) debug(msg string, fields logrus.Fields) {
	m.log.WithFields(fields).Debug(msg)
}

type hasSoln struct {
	sel func(rec core.Expr) core.Expr
	set func(rec, val core.Expr) core.Expr
}
