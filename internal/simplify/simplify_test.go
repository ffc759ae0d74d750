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

package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

func free(id int, k *types.Kind) *types.TVFree { return types.NewFree(id, k, nil, types.TVarInfo{}) }

func TestEval(t *testing.T) {
	cases := []struct {
		t    types.Type
		want Nat
		ok   bool
	}{
		{types.TFunApp(types.TFAdd, types.TNum(2), types.TNum(3)), Nat{N: 5}, true},
		{types.TFunApp(types.TFSub, types.TNum(2), types.TNum(3)), Nat{}, false},
		{types.TFunApp(types.TFMul, types.TNum(0), types.TInf), Nat{N: 0}, true},
		{types.TFunApp(types.TFWidth, types.TNum(255)), Nat{N: 8}, true},
		{types.TFunApp(types.TFWidth, types.TNum(256)), Nat{N: 9}, true},
		{types.TFunApp(types.TFExp, types.TNum(2), types.TNum(10)), Nat{N: 1024}, true},
		{types.TFunApp(types.TFCeilDiv, types.TNum(7), types.TNum(2)), Nat{N: 4}, true},
		{types.TFunApp(types.TFMin, types.TInf, types.TNum(4)), Nat{N: 4}, true},
		{types.TFunApp(types.TFLenFromThenTo, types.TNum(1), types.TNum(3), types.TNum(9)), Nat{N: 5}, true},
		{types.TFunApp(types.TFAdd, types.TNum(1), free(0, types.KNum)), Nat{}, false},
	}
	for _, c := range cases {
		got, ok := Eval(c.t)
		assert.Equal(t, c.ok, ok, types.TypeString(c.t))
		if c.ok {
			assert.Equal(t, c.want, got, types.TypeString(c.t))
		}
	}
}

func TestSolveInstances(t *testing.T) {
	a := free(0, types.KType)

	sub, err := Solve(types.PClass(types.PCRing, types.TWord(types.TNum(8))), nil)
	require.NoError(t, err)
	require.Empty(t, sub)

	sub, err = Solve(types.PClass(types.PCLiteral, types.TNum(3), types.TWord(types.TNum(1))), nil)
	var unsolvable *UnsolvableError
	require.ErrorAs(t, err, &unsolvable)
	require.Nil(t, sub)

	_, err = Solve(types.PClass(types.PCLogic, types.TInteger), nil)
	require.Error(t, err)

	sub, err = Solve(types.PClass(types.PCEq, types.TTuple(types.TBit, a)), nil)
	require.NoError(t, err)
	require.Len(t, sub, 1)
	require.Equal(t, "Eq ?a0", types.TypeString(sub[0]))

	sub, err = Solve(types.PClass(types.PCRing, types.TSeq(types.TNum(4), a)), nil)
	require.NoError(t, err)
	require.Len(t, sub, 1, "element type unknown, kept")
}

func TestSolveNumeric(t *testing.T) {
	n := free(1, types.KNum)

	sub, err := Solve(types.PFin(types.TFunApp(types.TFAdd, n, types.TNum(1))), nil)
	require.NoError(t, err)
	require.Len(t, sub, 1)
	require.Equal(t, "fin ?n1", types.TypeString(sub[0]))

	_, err = Solve(types.PFin(types.TInf), nil)
	require.Error(t, err)

	sub, err = Solve(types.PGeq(n, types.TNum(0)), nil)
	require.NoError(t, err)
	require.Empty(t, sub)

	_, err = Solve(types.PEqual(types.TNum(3), types.TNum(2)), nil)
	require.Error(t, err)

	sub, err = Solve(types.PPrime(types.TNum(7)), nil)
	require.NoError(t, err)
	require.Empty(t, sub)
}

func TestAssumptionsEntail(t *testing.T) {
	p := &types.TParam{ID: 9, K: types.KType, Name: &names.Name{Ident: "a"}}
	m := &types.TParam{ID: 10, K: types.KNum, Name: &names.Name{Ident: "m"}}
	asmps := NewAssumptions(types.PClass(types.PCRound, types.TBound(p)), types.PGeq(types.TBound(m), types.TNum(8)))

	for _, goal := range []types.Type{
		types.PClass(types.PCRing, types.TBound(p)),
		types.PClass(types.PCEq, types.TBound(p)),
		types.PGeq(types.TBound(m), types.TNum(3)),
	} {
		sub, err := Solve(goal, asmps)
		require.NoError(t, err)
		require.Empty(t, sub, types.TypeString(goal))
	}

	sub, err := Solve(types.PClass(types.PCLogic, types.TBound(p)), asmps)
	require.NoError(t, err)
	require.Len(t, sub, 1)
}

func TestImprove(t *testing.T) {
	n := free(2, types.KNum)
	v, ty, ok := Improve(types.PEqual(types.TFunApp(types.TFAdd, types.TNum(1), types.TNum(2)), n))
	require.True(t, ok)
	require.Equal(t, 2, v.ID)
	require.Equal(t, "3", types.TypeString(ty))
}

func TestImproveLinear(t *testing.T) {
	n := free(3, types.KNum)
	for _, tc := range []struct {
		lhs  types.Type
		want string
	}{
		{types.TFunApp(types.TFAdd, n, types.TNum(2)), "6"},
		{types.TFunApp(types.TFAdd, types.TNum(4), n), "4"},
		{types.TFunApp(types.TFSub, n, types.TNum(3)), "11"},
		{types.TFunApp(types.TFMul, types.TNum(2), n), "4"},
	} {
		v, ty, ok := Improve(types.PEqual(tc.lhs, types.TNum(8)))
		require.True(t, ok, types.TypeString(tc.lhs))
		require.Equal(t, 3, v.ID)
		require.Equal(t, tc.want, types.TypeString(ty))
	}

	// no integral solution
	_, _, ok := Improve(types.PEqual(types.TFunApp(types.TFMul, types.TNum(3), n), types.TNum(8)))
	require.False(t, ok)
	// two unknowns
	_, _, ok = Improve(types.PEqual(types.TFunApp(types.TFAdd, n, free(4, types.KNum)), types.TNum(8)))
	require.False(t, ok)
}
