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

	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// VarType is the type of a value variable in the environment.
type VarType interface {
	isVarType()
}

// ExtVar is a variable with a known schema: an import, a finished binding, or a
// binding with a signature.
type ExtVar struct {
	Schema *types.Schema
}

// CurSCC is a binding of the recursive group currently being inferred. Uses of
// the binding elaborate to Expr and have the still-monomorphic Type; Expr is
// rewritten once the group is generalized.
type CurSCC struct {
	Expr *core.EVar
	Type types.Type
}

func (*ExtVar) isVarType() {}
func (*CurSCC) isVarType() {}

// Declare v in the environment, stashing any binding it shadows. Returns the
// number of stashed entries (always 1) for use with unstash.
func (m *inferM) declare(n names.Name, v VarType) int {
	prev, existed := m.env[n.ID]
	m.envStash = append(m.envStash, stashedVar{id: n.ID, vt: prev, existed: existed})
	m.env[n.ID] = v
	return 1
}

// Restore the last count stashed entries.
func (m *inferM) unstash(count int) {
	stash := m.envStash
	for i := 0; i < count; i++ {
		s := stash[len(stash)-1-i]
		if s.existed {
			m.env[s.id] = s.vt
		} else {
			delete(m.env, s.id)
		}
	}
	m.envStash = stash[:len(stash)-count]
}

// Declare a monomorphic variable.
func (m *inferM) declareMono(n names.Name, t types.Type) int {
	return m.declare(n, &ExtVar{Schema: types.Mono(t)})
}

// Find the type of a variable. The resolver guarantees every name is bound, so a
// missing name is an internal error.
func (m *inferM) lookupVar(n names.Name) VarType {
	if v, ok := m.env[n.ID]; ok {
		return v
	}
	if sc, ok := m.external.Var(n.ID); ok {
		return &ExtVar{Schema: sc}
	}
	panicf("variable not in scope:", n.String())
	return nil
}

// Free unification variables of the environment. These may not be generalized.
// The placeholders of the group being generalized are skipped.
func (m *inferM) envFreeVars(skip map[int]*core.EVar) *set.Set[int] {
	var ts []types.Type
	for id, v := range m.env {
		switch v := v.(type) {
		case *ExtVar:
			if v.Schema.IsMono() || len(types.FreeVars(v.Schema.Body)) > 0 {
				ts = append(ts, m.subst.Apply(v.Schema.Body))
				ts = append(ts, m.subst.ApplyList(v.Schema.Props)...)
			}
		case *CurSCC:
			if ph, ok := skip[id]; ok && ph == v.Expr {
				continue
			}
			ts = append(ts, m.subst.Apply(v.Type))
		}
	}
	free := types.FreeSet(ts...)
	// variables of unsolved selector goals stay monomorphic until the goal is solved
	for _, g := range m.hasGoals {
		free.InsertSet(types.FreeSet(m.subst.Apply(g.Goal.Prop)))
	}
	// so do the variables of deferred goals which belong to enclosing groups
	for _, g := range m.goals {
		free.InsertSet(types.FreeSet(m.subst.Apply(g.Prop)))
	}
	return free
}
