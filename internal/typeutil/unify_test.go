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

package typeutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

func uniErr(t *testing.T, err error) *UnificationError {
	t.Helper()
	var uerr *UnificationError
	require.ErrorAs(t, err, &uerr)
	return uerr
}

func TestUnifyStructural(t *testing.T) {
	var vt VarTracker
	n := vt.NewFree(types.KNum, nil, types.TVarInfo{})
	a := vt.NewFree(types.KType, nil, types.TVarInfo{})

	res, err := Unify(types.TFun(types.TSeq(n, a), a), types.TFun(types.TWord(types.TNum(3)), types.TBit))
	require.NoError(t, err)
	require.Empty(t, res.Props)
	require.Equal(t, "[3]Bit", types.TypeString(res.Subst.Apply(types.TSeq(n, a))))
}

func TestUnifyDefersArithmetic(t *testing.T) {
	var vt VarTracker
	n := vt.NewFree(types.KNum, nil, types.TVarInfo{})

	res, err := Unify(types.TWord(types.TFunApp(types.TFAdd, n, types.TNum(1))), types.TWord(types.TNum(4)))
	require.NoError(t, err)
	require.Equal(t, 0, res.Subst.Len())
	require.Len(t, res.Props, 1)
	require.Equal(t, "(?n0 + 1) == 4", types.TypeString(res.Props[0]))

	// Distinct literals never unify:
	_, err = Unify(types.TNum(2), types.TNum(3))
	require.Equal(t, UniTypeMismatch, uniErr(t, err).Kind)
}

func TestUnifyErrors(t *testing.T) {
	var vt VarTracker
	n := vt.NewFree(types.KNum, nil, types.TVarInfo{})
	a := vt.NewFree(types.KType, nil, types.TVarInfo{})

	_, err := Unify(types.TBit, types.TInteger)
	require.Equal(t, UniTypeMismatch, uniErr(t, err).Kind)

	_, err = Unify(n, types.TBit)
	require.Equal(t, UniKindMismatch, uniErr(t, err).Kind)

	_, err = Unify(a, types.TSeq(types.TNum(1), a))
	require.Equal(t, UniRecursive, uniErr(t, err).Kind)

	_, err = Unify(types.TTuple(types.TBit), types.TTuple(types.TBit, types.TBit))
	require.Error(t, err)

	// No partial substitution escapes a failed unification:
	res, err := Unify(types.TTuple(a, types.TBit), types.TTuple(types.TInteger, types.TInteger))
	require.Error(t, err)
	require.Equal(t, 0, res.Subst.Len())
}

func TestUnifyEscape(t *testing.T) {
	var vt VarTracker
	p := vt.NewParam(types.KType, &names.Name{Ident: "p"}, types.TVarInfo{})
	outer := vt.NewFree(types.KType, nil, types.TVarInfo{})
	inner := vt.NewFree(types.KType, []*types.TParam{p}, types.TVarInfo{})

	_, err := Unify(outer, types.TBound(p))
	uerr := uniErr(t, err)
	require.Equal(t, UniNonPolyDepends, uerr.Kind)
	require.Equal(t, p.ID, uerr.Params[0].ID)

	res, err := Unify(inner, types.TBound(p))
	require.NoError(t, err)
	require.Equal(t, "p", types.TypeString(res.Subst.Apply(inner)))

	// Unifying two variables keeps the one with the narrower scope:
	res, err = Unify(inner, outer)
	require.NoError(t, err)
	got, ok := res.Subst.Apply(inner).(*types.TVFree)
	require.True(t, ok)
	require.Equal(t, outer.ID, got.ID)
}

func TestUnifyEscapeThroughBinding(t *testing.T) {
	var vt VarTracker
	p := vt.NewParam(types.KType, &names.Name{Ident: "p"}, types.TVarInfo{})
	outer := vt.NewFree(types.KType, nil, types.TVarInfo{})
	inner := vt.NewFree(types.KType, []*types.TParam{p}, types.TVarInfo{})

	// outer := [1]inner, then inner := p would let p reach outer.
	_, err := Unify(types.TTuple(outer, inner), types.TTuple(types.TSeq(types.TNum(1), inner), types.TBound(p)))
	require.Equal(t, UniNonPolyDepends, uniErr(t, err).Kind)

	// The same holds across separate unifications when the first is committed.
	res, err := Unify(outer, types.TSeq(types.TNum(1), inner))
	require.NoError(t, err)
	_, err = UnifyUnder(res.Subst, inner, types.TBound(p))
	require.Equal(t, UniNonPolyDepends, uniErr(t, err).Kind)

	_, err = UnifyUnder(res.Subst, inner, types.TBit)
	require.NoError(t, err)
}

func TestUnifyRecords(t *testing.T) {
	var vt VarTracker
	a := vt.NewFree(types.KType, nil, types.TVarInfo{})
	r1 := types.TRecord(types.NewFieldMap(types.Field{Label: "x", Type: a}, types.Field{Label: "y", Type: types.TBit}))
	r2 := types.TRecord(types.NewFieldMap(types.Field{Label: "y", Type: types.TBit}, types.Field{Label: "x", Type: types.TInteger}))
	res, err := Unify(r1, r2)
	require.NoError(t, err)
	require.Equal(t, "Integer", types.TypeString(res.Subst.Apply(a)))

	r3 := types.TRecord(types.NewFieldMap(types.Field{Label: "z", Type: types.TBit}))
	_, err = Unify(r1, r3)
	require.Equal(t, UniTypeMismatch, uniErr(t, err).Kind)
}

func TestQuantifyOrdersNumericFirst(t *testing.T) {
	var vt VarTracker
	a := vt.NewFree(types.KType, nil, types.TVarInfo{})
	n := vt.NewFree(types.KNum, nil, types.TVarInfo{})
	params, m := vt.Quantify([]*types.TVFree{a, n})
	require.Len(t, params, 2)
	require.Equal(t, types.KindNum, params[0].K.Tag)
	require.Equal(t, types.KindType, params[1].K.Tag)
	s := Generalize(params, m, []types.Type{types.PFin(n)}, types.TSeq(n, a))
	require.Empty(t, types.FreeVars(s.Body))
	require.Equal(t, "{a2, a3} (fin a2) => [a2]a3", types.SchemaString(s))

	inst := vt.Instantiate(s, nil, nil, func(int, *types.TParam) types.TVarInfo { return types.TVarInfo{} })
	require.Len(t, inst.Args, 2)
	require.Len(t, types.FreeVars(inst.Body), 2)
}
