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

package dtinfer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

func TestLocalSolver(t *testing.T) {
	ctx := context.Background()
	var s dtinfer.LocalSolver
	n := types.NewFree(1, types.KNum, nil, types.TVarInfo{})

	ans, err := s.Solve(ctx, &dtinfer.Query{Goals: []types.Type{types.PFin(types.TNum(3)), types.PGeq(types.TNum(3), types.TNum(1))}})
	require.NoError(t, err)
	require.Equal(t, dtinfer.Solved, ans.Status)

	ans, err = s.Solve(ctx, &dtinfer.Query{Goals: []types.Type{types.PGeq(types.TNum(1), types.TNum(3))}})
	require.NoError(t, err)
	require.Equal(t, dtinfer.Unsolvable, ans.Status)

	ans, err = s.Solve(ctx, &dtinfer.Query{Goals: []types.Type{types.PEqual(types.TFunApp(types.TFAdd, n, types.TNum(2)), types.TNum(5))}})
	require.NoError(t, err)
	require.Equal(t, dtinfer.Solved, ans.Status)
	require.Equal(t, "3", types.TypeString(ans.Subst.Apply(n)))

	ans, err = s.Solve(ctx, &dtinfer.Query{Goals: []types.Type{types.PPrime(n)}})
	require.NoError(t, err)
	require.Equal(t, dtinfer.Unknown, ans.Status)
	require.Len(t, ans.Residual, 1)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Solve(cancelled, &dtinfer.Query{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExternalScopeShadows(t *testing.T) {
	mk := func(id int, body types.Type) *core.Interface {
		x := names.Name{ID: 7, Ident: "x"}
		return &core.Interface{
			Name:  names.Name{ID: id, Ident: "M"},
			Vars:  map[int]*types.Schema{x.ID: types.Mono(body)},
			Names: map[int]names.Name{x.ID: x},
		}
	}
	base := dtinfer.NewExternalScope(mk(1, types.TBit))
	next := base.With(mk(2, types.TInteger))

	sc, ok := base.Var(7)
	require.True(t, ok)
	require.Equal(t, "Bit", types.SchemaString(sc), "the base is unchanged")
	sc, ok = next.Var(7)
	require.True(t, ok)
	require.Equal(t, "Integer", types.SchemaString(sc))
	_, ok = next.Var(8)
	require.False(t, ok)
}
