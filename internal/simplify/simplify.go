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

// Package simplify is a lightweight local constraint simplifier. It is sound but
// incomplete: a goal it cannot decide is returned unchanged, to be passed on to
// the external solver.
package simplify

import (
	"github.com/wdamron/dtinfer/types"
)

// UnsolvableError reports a goal which can never hold.
type UnsolvableError struct {
	Goal types.Type
}

func (e *UnsolvableError) Error() string {
	return "unsolvable constraint: " + types.TypeString(e.Goal)
}

// Assumptions is a set of predicates known to hold, closed under superclass
// implication.
type Assumptions struct {
	props []types.Type
}

// NewAssumptions creates an assumption set from the given predicates.
func NewAssumptions(ps ...types.Type) *Assumptions {
	return (&Assumptions{}).With(ps...)
}

// With returns a copy of a extended with ps.
func (a *Assumptions) With(ps ...types.Type) *Assumptions {
	var props []types.Type
	if a != nil {
		props = append(props, a.props...)
	}
	for _, p := range types.SplitAnd(ps...) {
		props = append(props, types.Implied(Normalize(p))...)
	}
	return &Assumptions{props: props}
}

// Props returns the closed set of assumed predicates.
func (a *Assumptions) Props() []types.Type {
	if a == nil {
		return nil
	}
	return a.props
}

// Entails reports whether p follows from the assumptions.
func (a *Assumptions) Entails(p types.Type) bool {
	if a == nil {
		return false
	}
	geqArgs, isGeq := types.IsPropOf(p, types.PCGeq)
	for _, q := range a.props {
		if types.Equal(p, q) {
			return true
		}
		// x >= m follows from x >= n when n >= m
		if isGeq {
			if qargs, ok := types.IsPropOf(q, types.PCGeq); ok && types.Equal(geqArgs[0], qargs[0]) {
				m, okm := Eval(geqArgs[1])
				n, okn := Eval(qargs[1])
				if okm && okn && n.geq(m) {
					return true
				}
			}
		}
	}
	return false
}

// Solve simplifies a goal to a fixed point under the assumptions. It returns the
// residual sub-goals, which together are equivalent to the goal; an empty result
// means the goal holds.
func Solve(goal types.Type, asmps *Assumptions) ([]types.Type, error) {
	var residual []types.Type
	work := types.SplitAnd(goal)
	for len(work) > 0 {
		p := Normalize(work[len(work)-1])
		work = work[:len(work)-1]
		if asmps.Entails(p) {
			continue
		}
		sub, decided, err := step(p)
		if err != nil {
			return nil, err
		}
		if !decided {
			residual = append(residual, p)
			continue
		}
		work = append(work, types.SplitAnd(sub...)...)
	}
	// keep the goals in their original order
	for i, j := 0, len(residual)-1; i < j; i, j = i+1, j-1 {
		residual[i], residual[j] = residual[j], residual[i]
	}
	return residual, nil
}

// step performs one simplification of p. When decided is false, p could not be
// simplified and must be kept.
func step(p types.Type) (sub []types.Type, decided bool, err error) {
	c, args, ok := types.IsProp(p)
	if !ok {
		return nil, false, nil
	}
	if c.IsClass() {
		return classStep(c.Tag, args, p)
	}
	switch c.Tag {
	case types.PCFin:
		return finStep(args[0], p)
	case types.PCEqual, types.PCNeq, types.PCGeq:
		return cmpStep(c.Tag, args[0], args[1], p)
	case types.PCPrime:
		n, ok := Eval(args[0])
		if !ok {
			return nil, false, nil
		}
		if n.Inf || !isPrime(n.N) {
			return nil, false, &UnsolvableError{Goal: p}
		}
		return nil, true, nil
	case types.PCTrue:
		return nil, true, nil
	}
	return nil, false, nil
}

func finStep(t types.Type, p types.Type) ([]types.Type, bool, error) {
	if n, ok := Eval(t); ok {
		if n.Inf {
			return nil, false, &UnsolvableError{Goal: p}
		}
		return nil, true, nil
	}
	c, ok := types.Expand(t).(*types.TCon)
	if !ok {
		return nil, false, nil
	}
	switch c.C.Tag {
	case types.TFAdd, types.TFMul, types.TFMax:
		return []types.Type{types.PFin(c.Args[0]), types.PFin(c.Args[1])}, true, nil
	case types.TFWidth:
		return []types.Type{types.PFin(c.Args[0])}, true, nil
	case types.TFDiv, types.TFMod, types.TFCeilDiv, types.TFCeilMod, types.TFSub:
		return []types.Type{types.PFin(c.Args[0])}, true, nil
	}
	return nil, false, nil
}

func cmpStep(tag types.TCTag, a, b types.Type, p types.Type) ([]types.Type, bool, error) {
	if tag != types.PCNeq && types.Equal(a, b) {
		return nil, true, nil
	}
	na, oka := Eval(a)
	nb, okb := Eval(b)
	if oka && okb {
		holds := false
		switch tag {
		case types.PCEqual:
			holds = na == nb
		case types.PCNeq:
			holds = na != nb
		case types.PCGeq:
			holds = na.geq(nb)
		}
		if !holds {
			return nil, false, &UnsolvableError{Goal: p}
		}
		return nil, true, nil
	}
	if tag == types.PCGeq && ((okb && !nb.Inf && nb.N == 0) || (oka && na.Inf)) {
		return nil, true, nil
	}
	return nil, false, nil
}

// Improve finds a substitution forced by an equality goal: `v == t` where t is a
// closed numeric type, or an equality whose only variable sits under sums,
// differences and products with constants, as in `v + 2 == 8`.
func Improve(p types.Type) (*types.TVFree, types.Type, bool) {
	args, ok := types.IsPropOf(p, types.PCEqual)
	if !ok {
		return nil, nil, false
	}
	for i := 0; i < 2; i++ {
		n, ok := Eval(args[1-i])
		if !ok {
			continue
		}
		if v, isVar := types.Expand(args[i]).(*types.TVFree); isVar {
			return v, n.Type(), true
		}
		if !n.Inf {
			if v, t, ok := invert(args[i], n.N); ok {
				return v, t, true
			}
		}
	}
	return nil, nil, false
}

// Find the value the variable of t must take for t to evaluate to n.
func invert(t types.Type, n int64) (*types.TVFree, types.Type, bool) {
	switch t := types.Expand(t).(type) {
	case *types.TVFree:
		return t, types.TNum(n), true
	case *types.TCon:
		if len(t.Args) != 2 {
			return nil, nil, false
		}
		a, aok := Eval(t.Args[0])
		b, bok := Eval(t.Args[1])
		aok, bok = aok && !a.Inf, bok && !b.Inf
		switch t.C.Tag {
		case types.TFAdd:
			if aok && n >= a.N {
				return invert(t.Args[1], n-a.N)
			}
			if bok && n >= b.N {
				return invert(t.Args[0], n-b.N)
			}
		case types.TFSub:
			if bok {
				return invert(t.Args[0], n+b.N)
			}
			if aok && a.N >= n {
				return invert(t.Args[1], a.N-n)
			}
		case types.TFMul:
			if aok && a.N > 0 && n%a.N == 0 {
				return invert(t.Args[1], n/a.N)
			}
			if bok && b.N > 0 && n%b.N == 0 {
				return invert(t.Args[0], n/b.N)
			}
		}
	}
	return nil, nil, false
}
