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

	"github.com/wdamron/dtinfer/internal/simplify"
	"github.com/wdamron/dtinfer/types"
)

// Solver decides goals the local simplifier could not. A call blocks until the
// solver answers or ctx is done; timeouts are the solver's concern.
type Solver interface {
	Solve(ctx context.Context, q *Query) (*Answer, error)
}

// Query asks whether Goals follow from Assumptions. Params are the bound type
// parameters in scope, which the solver must treat as opaque.
type Query struct {
	Params      []*types.TParam
	Assumptions []types.Type
	Goals       []types.Type
}

type Status uint8

const (
	// Every goal holds, possibly under the returned substitution.
	Solved Status = iota
	// Some goal can never hold.
	Unsolvable
	// The residual goals could not be decided yet.
	Unknown
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Unsolvable:
		return "unsolvable"
	}
	return "unknown"
}

// Answer is a solver's verdict on a query.
type Answer struct {
	Status   Status
	Subst    types.Subst
	Residual []types.Type
}

// LocalSolver answers queries with the built-in simplifier. It is sound but
// incomplete: goals it cannot simplify are returned as residual.
type LocalSolver struct{}

var _ Solver = LocalSolver{}

func (LocalSolver) Solve(ctx context.Context, q *Query) (*Answer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	asmps := simplify.NewAssumptions(q.Assumptions...)
	su := types.EmptySubst()
	goals := q.Goals
	for {
		var residual []types.Type
		improved := false
		for _, g := range goals {
			res, err := simplify.Solve(su.Apply(g), asmps)
			if err != nil {
				return &Answer{Status: Unsolvable, Subst: su, Residual: []types.Type{g}}, nil
			}
			for _, r := range res {
				if v, t, ok := simplify.Improve(r); ok {
					if next, err := su.Extend(v, t); err == nil {
						su, improved = next, true
						continue
					}
				}
				residual = append(residual, r)
			}
		}
		goals = residual
		if !improved {
			break
		}
	}
	if len(goals) > 0 {
		return &Answer{Status: Unknown, Subst: su, Residual: goals}, nil
	}
	return &Answer{Status: Solved, Subst: su}, nil
}
