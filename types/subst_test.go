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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer/names"
)

func TestSubstFollowsChains(t *testing.T) {
	a := NewFree(1, KType, nil, TVarInfo{})
	b := NewFree(2, KType, nil, TVarInfo{})
	s := EmptySubst()
	s, err := s.Extend(a, TSeq(TNum(4), b))
	require.NoError(t, err)
	s, err = s.Extend(b, TBit)
	require.NoError(t, err)

	got := s.Apply(a)
	require.True(t, Equal(TWord(TNum(4)), got), TypeString(got))
	require.True(t, Equal(got, s.Apply(got)), "apply must be idempotent")
	require.Equal(t, 2, s.Len())
}

func TestSubstOccursCheck(t *testing.T) {
	a := NewFree(1, KType, nil, TVarInfo{})
	b := NewFree(2, KType, nil, TVarInfo{})
	s, err := EmptySubst().Extend(b, TSeq(TNum(1), a))
	require.NoError(t, err)
	_, err = s.Extend(a, b)
	require.ErrorIs(t, err, ErrRecursive)

	// Binding a variable to itself is a no-op:
	same, err := s.Extend(a, a)
	require.NoError(t, err)
	require.Equal(t, s.Len(), same.Len())
}

func TestSubstEscapeCheck(t *testing.T) {
	p := &TParam{ID: 7, K: KType, Name: &names.Name{Ident: "p"}}
	outer := NewFree(1, KType, nil, TVarInfo{})
	inner := NewFree(2, KType, []*TParam{p}, TVarInfo{})

	_, err := EmptySubst().Extend(outer, TFun(TBound(p), TBit))
	var escape *EscapeError
	require.ErrorAs(t, err, &escape)
	require.Len(t, escape.Params, 1)
	require.Equal(t, 7, escape.Params[0].ID)

	s, err := EmptySubst().Extend(inner, TFun(TBound(p), TBit))
	require.NoError(t, err)
	require.Equal(t, "p -> Bit", TypeString(s.Apply(inner)))
}

func TestSubstNarrowsScopes(t *testing.T) {
	p := &TParam{ID: 7, K: KType, Name: &names.Name{Ident: "p"}}
	outer := NewFree(1, KType, nil, TVarInfo{})
	inner := NewFree(2, KType, []*TParam{p}, TVarInfo{})

	s, err := EmptySubst().Extend(outer, TSeq(TNum(1), inner))
	require.NoError(t, err)
	require.False(t, s.MayMention(inner, p), "inner is now reachable from outer")
	require.True(t, inner.MayMention(p), "the variable itself is unchanged")

	_, err = s.Extend(inner, TBound(p))
	var escape *EscapeError
	require.ErrorAs(t, err, &escape)
	require.Equal(t, 2, escape.Var.ID)

	// Deltas started from s see the narrowed sets, and merge cleanly.
	delta, err := s.Scopes().Extend(inner, TBit)
	require.NoError(t, err)
	require.Equal(t, 1, delta.Len())
	s, err = s.Merge(delta)
	require.NoError(t, err)
	require.Equal(t, "[1]Bit", TypeString(s.Apply(outer)))

	// Narrowing never widens.
	_, err = EmptySubst().Extend(inner, TBound(p))
	require.NoError(t, err)
}

func TestSubstMerge(t *testing.T) {
	a := NewFree(1, KNum, nil, TVarInfo{})
	b := NewFree(2, KNum, nil, TVarInfo{})
	delta, err := EmptySubst().Extend(b, TNum(3))
	require.NoError(t, err)
	s, err := EmptySubst().Extend(a, TFunApp(TFAdd, b, TNum(1)))
	require.NoError(t, err)
	s, err = s.Merge(delta)
	require.NoError(t, err)
	require.Equal(t, "3 + 1", TypeString(s.Apply(a)))
}

func TestFreeVarsAndQuantify(t *testing.T) {
	n := NewFree(3, KNum, nil, TVarInfo{})
	a := NewFree(4, KType, nil, TVarInfo{})
	ty := TFun(TSeq(n, a), TSeq(n, a))
	fvs := FreeVars(ty)
	require.Len(t, fvs, 2)
	require.Equal(t, 3, fvs[0].ID)
	require.Equal(t, 4, fvs[1].ID)
	require.True(t, FreeSet(ty).Contains(4))

	pn := &TParam{ID: 0, K: KNum, Name: &names.Name{Ident: "n"}}
	pa := &TParam{ID: 1, K: KType, Name: &names.Name{Ident: "a"}}
	body := Quantify(ty, map[int]*TParam{3: pn, 4: pa})
	require.Empty(t, FreeVars(body))
	require.Len(t, BoundParams(body), 2)
	sc := &Schema{Params: []*TParam{pn, pa}, Props: []Type{PFin(TBound(pn))}, Body: body}
	require.Equal(t, "{n, a} (fin n) => [n]a -> [n]a", SchemaString(sc))
}

func TestTypeString(t *testing.T) {
	n := NewFree(5, KNum, nil, TVarInfo{})
	cases := []struct {
		t    Type
		want string
	}{
		{TFun(TWord(TNum(8)), TBit), "[8]Bit -> Bit"},
		{TFun(TFun(TBit, TBit), TBit), "(Bit -> Bit) -> Bit"},
		{TSeq(TFunApp(TFAdd, TNum(1), n), TBit), "[1 + ?n5]Bit"},
		{TTuple(TBit, TInteger), "(Bit, Integer)"},
		{TRecord(NewFieldMap(Field{"y", TBit}, Field{"x", TInteger})), "{x : Integer, y : Bit}"},
		{PClass(PCLiteral, TNum(3), TIntMod(TNum(7))), "Literal 3 (Z 7)"},
		{PGeq(TInf, TNum(0)), "inf >= 0"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, TypeString(c.t))
	}
}

func TestImpliedSuperclasses(t *testing.T) {
	a := NewFree(1, KType, nil, TVarInfo{})
	implied := Implied(PClass(PCRound, a))
	var tags []TCTag
	for _, p := range implied {
		c, _, ok := IsProp(p)
		require.True(t, ok)
		tags = append(tags, c.Tag)
	}
	require.Contains(t, tags, PCField)
	require.Contains(t, tags, PCRing)
	require.Contains(t, tags, PCZero)
	require.Contains(t, tags, PCCmp)
	require.Contains(t, tags, PCEq)
}

func TestKindApply(t *testing.T) {
	k := TCon{C: TC{Tag: TCSeq}}
	require.True(t, KFuns(KType, KNum, KType).Equal(k.C.Kind()))
	require.True(t, KType.Equal(KindOf(TSeq(TNum(1), TBit))))
	require.Nil(t, KType.Apply(KNum))
}
