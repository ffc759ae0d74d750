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

package util

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func sorted(sccs [][]int) [][]int {
	for _, c := range sccs {
		sort.Ints(c)
	}
	return sccs
}

func TestSCCChain(t *testing.T) {
	g := NewGraph(3)
	g.AddEdge(2, 1)
	g.AddEdge(1, 0)
	require.Equal(t, [][]int{{2}, {1}, {0}}, g.SCC())
}

func TestSCCCycles(t *testing.T) {
	g := NewGraph(5)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(3, 2)
	g.AddEdge(3, 3)
	require.Equal(t, [][]int{{4}, {0, 1}, {2, 3}}, sorted(g.SCC()))

	pos := make(map[int]int)
	for i, c := range g.SCC() {
		for _, v := range c {
			pos[v] = i
		}
	}
	for from, succs := range g {
		for _, to := range succs {
			require.LessOrEqual(t, pos[from], pos[to])
		}
	}
}

func TestAddEdgeDedup(t *testing.T) {
	g := NewGraph(2)
	g.AddEdge(0, 1)
	g.AddEdge(0, 1)
	require.Len(t, g[0], 1)
	require.True(t, g.HasEdge(0, 1))
	require.False(t, g.HasEdge(1, 0))
}
