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

package astutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer/ast"
	. "github.com/wdamron/dtinfer/construct"
)

func TestAnalyzeGroups(t *testing.T) {
	ns := NewNames("Main", 1)
	f, g, h, k := ns.V("f"), ns.V("g"), ns.V("h"), ns.V("k")
	x := ns.V("x")
	binds := []*ast.Bind{
		Bind(f, nil, App(Var(g), Num(1))),
		Bind(g, []ast.Pattern{PVar(x)}, App(Var(f), Var(x))),
		Bind(h, nil, Var(f)),
		Bind(k, []ast.Pattern{PVar(x)}, App(Var(k), Var(x))),
	}
	var a Analysis
	a.Analyze(binds)
	groups := a.Groups()

	pos := make(map[int]int)
	for i, c := range groups {
		for _, v := range c {
			pos[v] = i
		}
	}
	require.Len(t, groups, 3)
	require.Equal(t, pos[0], pos[1], "f and g are mutually recursive")
	require.Less(t, pos[0], pos[2], "h follows f")
	require.True(t, a.Recursive(groups[pos[0]]))
	require.True(t, a.Recursive(groups[pos[3]]), "k refers to itself")
	require.False(t, a.Recursive(groups[pos[2]]))
	require.Equal(t, []int{0, 1}, groups[pos[0]])
}

func TestAnalyzeSignedDependency(t *testing.T) {
	ns := NewNames("Main", 1)
	f, g := ns.V("f"), ns.V("g")
	binds := []*ast.Bind{
		Bind(f, nil, Var(g)),
		SigBind(g, Schema(nil, nil, TBit()), nil, Var(ns.V("True"))),
	}
	var a Analysis
	a.Analyze(binds)
	require.Equal(t, [][]int{{1}, {0}}, a.Groups())
}
