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

// Package astutil holds analyses over surface syntax.
package astutil

import (
	"sort"

	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/internal/util"
)

// Dependency analysis for bindings which may be mutually recursive; borrowed from Haskell.
// https://prime.haskell.org/wiki/RelaxedDependencyAnalysis
//
// Names are resolved before inference, so a reference is matched by name id
// and no scopes need to be tracked. References to bindings with a signature
// are kept: a binding must be checked after every binding it refers to.
type Analysis struct {
	// Vertex of each binding, by name id
	Verts map[int]int
	// Edges run from a binding to the bindings which refer to it.
	Graph util.Graph
	// SelfRef marks bindings which refer to themselves.
	SelfRef []bool
}

// Analyze builds the dependency graph of binds. Vertex i is binds[i].
func (a *Analysis) Analyze(binds []*ast.Bind) {
	a.Verts = make(map[int]int, len(binds))
	for i, b := range binds {
		a.Verts[b.Name.ID] = i
	}
	a.Graph = util.NewGraph(len(binds))
	a.SelfRef = make([]bool, len(binds))
	for user, b := range binds {
		ast.WalkExpr(b.Body, func(e ast.Expr) {
			v, ok := e.(*ast.Var)
			if !ok {
				return
			}
			dep, ok := a.Verts[v.Name.ID]
			if !ok {
				return
			}
			if dep == user {
				a.SelfRef[user] = true
				return
			}
			a.Graph.AddEdge(dep, user)
		})
	}
}

// Groups returns the strongly connected components in dependency order, with
// the vertices of each component in ascending order.
func (a *Analysis) Groups() [][]int {
	sccs := a.Graph.SCC()
	for _, c := range sccs {
		sort.Ints(c)
	}
	return sccs
}

// Recursive reports whether a component refers to itself.
func (a *Analysis) Recursive(c []int) bool {
	return len(c) > 1 || a.SelfRef[c[0]]
}
