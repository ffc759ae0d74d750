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
	set "github.com/hashicorp/go-set/v3"
	"github.com/sirupsen/logrus"

	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/internal/simplify"
	"github.com/wdamron/dtinfer/internal/typeutil"
	"github.com/wdamron/dtinfer/types"
)

// Generalize a group of checked bindings over the goals they emitted.
//
// Variables free in the environment stay monomorphic. Goals which mention none
// of the remaining candidates are handed back to the enclosing group.
// Candidates which occur only in goals are defaulted where possible; the rest
// become parameters, numeric parameters first. Each binding abstracts only over
// the parameters of its own type and the goals connected to it. Recursive uses,
// elaborated as placeholders, become applications to the callee's parameters.
func (m *inferM) generalize(ds []*core.Decl, goals []Goal, placeholders map[int]*core.EVar) []*core.Decl {
	m.solveHasGoals()
	envFree := m.envFreeVars(placeholders)

	bodies := make([]types.Type, len(ds))
	for i, d := range ds {
		bodies[i] = m.subst.Apply(d.Schema.Body)
	}
	props := make([]types.Type, len(goals))
	for i := range goals {
		goals[i].Prop = m.subst.Apply(goals[i].Prop)
		props[i] = goals[i].Prop
	}
	cands := set.New[int](8)
	for _, v := range types.FreeVars(append(append([]types.Type(nil), bodies...), props...)...) {
		if !envFree.Contains(v.ID) {
			cands.Insert(v.ID)
		}
	}

	var here []Goal
	for _, g := range goals {
		if types.Mentions(g.Prop, cands) {
			here = append(here, g)
		} else {
			m.goals = append(m.goals, g)
		}
	}

	inBodies := types.FreeSet(bodies...)
	var ambiguous []*types.TVFree
	for _, g := range here {
		for _, v := range types.FreeVars(g.Prop) {
			if cands.Contains(v.ID) && !inBodies.Contains(v.ID) {
				ambiguous = append(ambiguous, v)
			}
		}
	}
	here = m.simplifyGoals(m.defaultVars(ambiguous, here))

	for i := range bodies {
		bodies[i] = m.subst.Apply(bodies[i])
	}
	var keep []Goal
	var qprops []types.Type
	for _, g := range here {
		if types.Mentions(g.Prop, cands) {
			keep = append(keep, g)
			qprops = append(qprops, g.Prop)
		} else {
			m.goals = append(m.goals, g)
		}
	}
	var vars []*types.TVFree
	for _, v := range types.FreeVars(append(append([]types.Type(nil), bodies...), qprops...)...) {
		if cands.Contains(v.ID) {
			vars = append(vars, v)
		}
	}

	index := make(map[int]int, len(ds))
	for i, d := range ds {
		index[d.Name.ID] = i
	}
	gens := make([]groupGen, len(ds))
	for i := range ds {
		gens[i] = m.quantifyDecl(bodies[i], nil, vars, qprops)
	}
	// Goals connected to no binding's type are ambiguous; every binding keeps them.
	var orphans []types.Type
	for j, p := range qprops {
		orphan := true
		for i := range gens {
			orphan = orphan && !gens[i].used[j]
		}
		if orphan {
			orphans = append(orphans, p)
		}
	}
	if len(orphans) > 0 {
		for i := range ds {
			gens[i] = m.quantifyDecl(bodies[i], orphans, vars, qprops)
		}
	}
	for i := range gens {
		g := &gens[i]
		g.params, g.pm = m.vt.Quantify(g.vars)
		// keep vars in parameter order
		byParam := make(map[int]*types.TVFree, len(g.vars))
		for _, v := range g.vars {
			byParam[g.pm[v.ID].ID] = v
		}
		for k, p := range g.params {
			g.vars[k] = byParam[p.ID]
		}
	}
	out := make([]*core.Decl, len(ds))
	for i, d := range ds {
		g := &gens[i]
		r := core.Rewriter{
			Type: g.close,
			Expr: func(e core.Expr) (core.Expr, bool) {
				if v, ok := e.(*core.EVar); ok {
					if ph, found := placeholders[v.Name.ID]; found && ph == v {
						callee := &gens[index[v.Name.ID]]
						args := make([]types.Type, len(callee.vars))
						for j, cv := range callee.vars {
							args[j] = g.close(cv)
						}
						return core.ProofApps(core.TApps(&core.EVar{Name: v.Name}, args...), len(callee.props)), true
					}
				}
				return nil, false
			},
		}
		sc := typeutil.Generalize(g.params, g.pm, g.props, bodies[i])
		def := r.Rewrite(d.Def)
		for j := len(sc.Props) - 1; j >= 0; j-- {
			def = &core.EProofAbs{Prop: sc.Props[j], Body: def}
		}
		for j := len(g.params) - 1; j >= 0; j-- {
			def = &core.ETAbs{Param: g.params[j], Body: def}
		}
		out[i] = &core.Decl{Name: d.Name, Schema: sc, Def: def, Range: d.Range}
		m.debug("generalized", logrus.Fields{"name": d.Name.String(), "schema": types.SchemaString(sc)})
	}
	return out
}

// groupGen is the generalization of one binding in a group.
type groupGen struct {
	vars   []*types.TVFree
	params []*types.TParam
	pm     map[int]*types.TParam
	props  []types.Type
	used   []bool
	subst  types.Subst
	// Group variables outside this binding's schema, fixed to closed types.
	others types.Subst
}

// Quantify one binding over the group variables of its own type, and of the
// goals connected to them. Group variables which only reach the binding's
// definition through its siblings are fixed, since the binding's schema does
// not abstract over them.
func (m *inferM) quantifyDecl(body types.Type, seed []types.Type, vars []*types.TVFree, qprops []types.Type) groupGen {
	fixed := types.FreeSet(append([]types.Type{body}, qprops...)...)
	for _, v := range vars {
		fixed.Remove(v.ID)
	}
	own := types.FreeSet(append([]types.Type{body}, seed...)...)
	own.RemoveSet(fixed)
	used := make([]bool, len(qprops))
	for changed := true; changed; {
		changed = false
		for j, p := range qprops {
			if used[j] || !types.Mentions(p, own) {
				continue
			}
			used[j], changed = true, true
			for _, v := range types.FreeVars(p) {
				if !fixed.Contains(v.ID) {
					own.Insert(v.ID)
				}
			}
		}
	}
	g := groupGen{used: used, subst: m.subst, others: types.EmptySubst()}
	for _, v := range vars {
		if own.Contains(v.ID) {
			g.vars = append(g.vars, v)
		} else if t := closedFor(v.K); t != nil {
			g.others, _ = g.others.Extend(v, t)
		}
	}
	for j, p := range qprops {
		if used[j] {
			g.props = append(g.props, p)
		}
	}
	return g
}

func (g *groupGen) close(t types.Type) types.Type {
	return types.Quantify(g.others.Apply(g.subst.Apply(t)), g.pm)
}

// A closed type of kind k, used for variables no schema abstracts over.
func closedFor(k *types.Kind) types.Type {
	switch {
	case k.Equal(types.KNum):
		return types.TNum(0)
	case k.Equal(types.KType):
		return types.TTuple()
	}
	return nil
}

// Default ambiguous variables to concrete types. A default is only taken if
// every goal mentioning the variable stays solvable.
func (m *inferM) defaultVars(vs []*types.TVFree, goals []Goal) []Goal {
	seen := make(map[int]bool, len(vs))
	for _, v := range vs {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		if _, bound := m.subst.Lookup(v); bound {
			continue
		}
		var relevant []types.Type
		for _, g := range goals {
			p := m.subst.Apply(g.Prop)
			if types.Mentions(p, types.FreeSet(v)) {
				relevant = append(relevant, p)
			}
		}
		t, ok := defaultFor(v, relevant)
		if !ok {
			continue
		}
		trial, err := m.subst.Extend(v, t)
		if err != nil {
			continue
		}
		solvable := true
		for _, p := range relevant {
			if _, err := simplify.Solve(trial.Apply(p), m.asmps); err != nil {
				solvable = false
				break
			}
		}
		if !solvable {
			continue
		}
		m.subst = trial
		m.recordWarning(&DefaultingTo{Var: v, Type: t})
		m.debug("defaulted", logrus.Fields{"var": types.TypeString(v), "type": types.TypeString(t)})
	}
	return goals
}

// Choose a default for v from the goals which mention it. Value types default
// to Integer, or Rational when fractional classes are required. Numeric types
// default to their largest constant lower bound.
func defaultFor(v *types.TVFree, goals []types.Type) (types.Type, bool) {
	if len(goals) == 0 {
		return nil, false
	}
	if v.K.Equal(types.KNum) {
		var lower simplify.Nat
		for _, p := range goals {
			args, ok := types.IsPropOf(p, types.PCGeq)
			if !ok {
				continue
			}
			if x, isVar := types.Expand(args[0]).(*types.TVFree); isVar && x.ID == v.ID {
				if n, ok := simplify.Eval(args[1]); ok && !n.Inf && n.N > lower.N {
					lower = n
				}
			}
		}
		return lower.Type(), true
	}
	if !v.K.Equal(types.KType) {
		return nil, false
	}
	t := types.TInteger
	only := types.FreeSet(v)
	for _, p := range goals {
		c, args, ok := types.IsProp(p)
		if !ok || !c.IsClass() {
			return nil, false
		}
		// the variable may only occur as the class's value type
		last := args[len(args)-1]
		if x, isVar := types.Expand(last).(*types.TVFree); !isVar || x.ID != v.ID {
			return nil, false
		}
		for _, a := range args[:len(args)-1] {
			if types.Mentions(a, only) {
				return nil, false
			}
		}
		switch c.Tag {
		case types.PCFLiteral, types.PCField, types.PCRound:
			t = types.TRational
		}
	}
	return t, true
}
