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
	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/internal/astutil"
)

// GroupBindings splits bindings into strongly connected groups in dependency
// order, for hosts which do not group declarations themselves. Bindings keep
// their relative order within a group.
func GroupBindings(binds []*ast.Bind) []*ast.BindGroup {
	var a astutil.Analysis
	a.Analyze(binds)
	comps := a.Groups()
	groups := make([]*ast.BindGroup, len(comps))
	for i, c := range comps {
		g := &ast.BindGroup{Recursive: a.Recursive(c), Binds: make([]*ast.Bind, len(c))}
		for j, v := range c {
			g.Binds[j] = binds[v]
		}
		groups[i] = g
	}
	return groups
}

// GroupDecls replaces the binding groups of ds, which may be arbitrarily
// grouped, by their strongly connected groups. Other declarations keep their
// positions; the regrouped bindings take the place of the first binding group.
func GroupDecls(ds []ast.Decl) []ast.Decl {
	var binds []*ast.Bind
	first := -1
	for i, d := range ds {
		if g, ok := d.(*ast.BindGroup); ok {
			if first < 0 {
				first = i
			}
			binds = append(binds, g.Binds...)
		}
	}
	if first < 0 {
		return ds
	}
	out := make([]ast.Decl, 0, len(ds))
	for i, d := range ds {
		if _, ok := d.(*ast.BindGroup); ok {
			if i == first {
				for _, g := range GroupBindings(binds) {
					out = append(out, g)
				}
			}
			continue
		}
		out = append(out, d)
	}
	return out
}
