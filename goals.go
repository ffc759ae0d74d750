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

	"github.com/wdamron/dtinfer/internal/simplify"
	"github.com/wdamron/dtinfer/types"
)

// Simplify goals under the current assumptions. Unsolvable goals are recorded
// as errors; equalities which force a variable extend the substitution.
func (m *inferM) simplifyGoals(gs []Goal) []Goal {
	for {
		var out []Goal
		improved := false
		for _, g := range gs {
			p := m.subst.Apply(g.Prop)
			res, err := simplify.Solve(p, m.asmps)
			if err != nil {
				restore := m.withRange(g.Range)
				m.recordError(&UnsolvableGoal{Goal: Goal{Source: g.Source, Range: g.Range, Prop: p}})
				restore()
				continue
			}
			for _, r := range res {
				if v, t, ok := simplify.Improve(r); ok {
					if s, err := m.subst.Extend(v, t); err == nil {
						m.subst, improved = s, true
						continue
					}
				}
				out = append(out, Goal{Source: g.Source, Range: g.Range, Prop: r})
			}
		}
		gs = out
		if !improved {
			return gs
		}
	}
}

// Simplify the goal store. With escalate, goals the local simplifier could
// not discharge are passed to the solver.
func (m *inferM) simplifyAllConstraints(escalate bool) {
	m.solveHasGoals()
	m.goals = m.simplifyGoals(m.goals)
	if escalate && len(m.goals) > 0 {
		m.goals = m.escalate(m.goals, nil)
	}
}

// Pass goals to the solver and return the ones it could not decide. A solver
// failure is reported as unsolved goals and is not retried.
func (m *inferM) escalate(gs []Goal, params []*types.TParam) []Goal {
	props := make([]types.Type, len(gs))
	for i, g := range gs {
		props[i] = m.subst.Apply(g.Prop)
	}
	q := &Query{
		Params:      append(append([]*types.TParam(nil), m.tparams...), params...),
		Assumptions: m.asmps.Props(),
		Goals:       props,
	}
	ans, err := m.solver.Solve(m.ctx, q)
	if err != nil {
		m.log.WithError(err).WithField("goals", len(gs)).Debug("solver failed")
		defer m.withRange(gs[0].Range)()
		m.recordError(&UnsolvedGoals{Goals: gs})
		return nil
	}
	m.debug("solver answered", logrus.Fields{"goals": len(gs), "status": ans.Status.String()})
	ans.Subst.Range(func(v *types.TVFree, t types.Type) bool {
		if s, err := m.subst.Extend(v, m.subst.Apply(t)); err == nil {
			m.subst = s
		}
		return true
	})
	switch ans.Status {
	case Solved:
		return nil
	case Unsolvable:
		defer m.withRange(gs[0].Range)()
		for _, r := range ans.Residual {
			m.recordError(&UnsolvableGoal{Goal: m.goalFor(gs, r)})
		}
		if len(ans.Residual) == 0 {
			m.recordError(&UnsolvedGoals{Goals: gs})
		}
		return nil
	}
	out := make([]Goal, len(ans.Residual))
	for i, r := range ans.Residual {
		out[i] = m.goalFor(gs, r)
	}
	return out
}

// Find the goal a residual prop came from, to keep its provenance.
func (m *inferM) goalFor(gs []Goal, p types.Type) Goal {
	for _, g := range gs {
		if types.Equal(m.subst.Apply(g.Prop), p) {
			return Goal{Source: g.Source, Range: g.Range, Prop: p}
		}
	}
	return Goal{Source: CtImprovement{}, Range: m.rng, Prop: p}
}

// Prove the goals of a binding with a signature. Goals which mention the
// signature's parameters, or share variables with goals that do, must follow
// from its constraints. The others are left for the enclosing group.
func (m *inferM) proveImplication(src ConstraintSource, params []*types.TParam, gs []Goal) {
	ids := set.New[int](len(params))
	for _, p := range params {
		ids.Insert(p.ID)
	}
	stay := make([]bool, len(gs))
	vars := set.New[int](8)
	for i := range gs {
		gs[i].Prop = m.subst.Apply(gs[i].Prop)
		for _, p := range types.BoundParams(gs[i].Prop) {
			if ids.Contains(p.ID) {
				stay[i] = true
				vars.InsertSet(types.FreeSet(gs[i].Prop))
				break
			}
		}
	}
	for changed := true; changed; {
		changed = false
		for i, g := range gs {
			if !stay[i] && types.Mentions(g.Prop, vars) {
				stay[i], changed = true, true
				vars.InsertSet(types.FreeSet(g.Prop))
			}
		}
	}
	var here []Goal
	for i, g := range gs {
		if stay[i] {
			here = append(here, g)
		} else {
			m.goals = append(m.goals, g)
		}
	}
	here = m.simplifyGoals(here)
	if len(here) > 0 {
		here = m.escalate(here, nil)
	}
	if len(here) > 0 {
		defer m.withRange(here[0].Range)()
		m.recordError(&UnsolvedGoals{Goals: here})
		m.debug("unproved goals", logrus.Fields{"source": src.Describe(), "goals": len(here)})
	}
}
