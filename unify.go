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
	"errors"

	"github.com/wdamron/dtinfer/internal/typeutil"
	"github.com/wdamron/dtinfer/types"
)

// expected is the type a checked term must have, with the reason it must have it.
type expected struct {
	Type types.Type
	Src  types.TypeSource
}

// Unify the expected type with the actual type of a term. Arithmetic the
// unifier cannot decide becomes equality goals. Failures are recorded and the
// run continues without extending the substitution.
func (m *inferM) unify(exp expected, actual types.Type) {
	m.unifyFrom(CtExactType{}, exp, actual)
}

func (m *inferM) unifyFrom(src ConstraintSource, exp expected, actual types.Type) {
	a, b := m.subst.Apply(exp.Type), m.subst.Apply(actual)
	res, err := typeutil.UnifyUnder(m.subst, a, b)
	if err != nil {
		m.recordUnifyError(exp.Src, err)
		return
	}
	m.mergeSubst(res.Subst)
	m.addGoals(src, res.Props...)
}

func (m *inferM) recordUnifyError(src types.TypeSource, err error) {
	var uerr *typeutil.UnificationError
	if !errors.As(err, &uerr) {
		panic(&InternalError{Msg: "unexpected unification failure: " + err.Error()})
	}
	switch uerr.Kind {
	case typeutil.UniKindMismatch:
		m.recordError(&KindMismatch{Source: src, Expected: uerr.LeftKind, Actual: uerr.RightKind})
	case typeutil.UniRecursive:
		m.recordError(&RecursiveType{Source: src, Expected: uerr.Left, Actual: uerr.Right})
	case typeutil.UniNonPolyDepends:
		m.recordError(&TypeVariableEscaped{Source: src, Type: uerr.Right, Params: uerr.Params})
	default:
		m.recordError(&TypeMismatch{Source: src, Expected: uerr.Left, Actual: uerr.Right})
	}
}

// Split the expected type into n argument types and a result type.
func (m *inferM) expectFun(n int, exp expected) ([]types.Type, types.Type) {
	args := make([]types.Type, 0, n)
	res := exp.Type
	for i := 0; i < n; i++ {
		if a, b, ok := types.IsFun(m.subst.Apply(res)); ok {
			args, res = append(args, a), b
			continue
		}
		a := m.freshType(types.KType, types.TypeOfArg{Index: i})
		b := m.freshType(types.KType, types.TypeOfRes{})
		m.unify(expected{res, exp.Src}, types.TFun(a, b))
		args, res = append(args, a), b
	}
	return args, res
}

// Get the element types of an expected n-tuple.
func (m *inferM) expectTuple(n int, exp expected) []types.Type {
	if ts, ok := types.IsTuple(m.subst.Apply(exp.Type)); ok && len(ts) == n {
		return ts
	}
	ts := make([]types.Type, n)
	for i := range ts {
		ts[i] = m.freshType(types.KType, types.TypeOfTupleField{Index: i})
	}
	m.unify(exp, types.TTuple(ts...))
	return ts
}

// Get the field types of an expected record with exactly the given labels.
func (m *inferM) expectRec(labels []string, exp expected) types.FieldMap {
	if fs, ok := types.IsRec(m.subst.Apply(exp.Type)); ok && fs.Len() == len(labels) {
		all := true
		for _, l := range labels {
			if _, has := fs.Get(l); !has {
				all = false
				break
			}
		}
		if all {
			return fs
		}
	}
	fields := make([]types.Field, len(labels))
	for i, l := range labels {
		fields[i] = types.Field{Label: l, Type: m.freshType(types.KType, types.TypeOfRecordField{Label: l})}
	}
	fs := types.NewFieldMap(fields...)
	m.unify(exp, types.TRecord(fs))
	return fs
}

// Get the length and element type of an expected sequence.
func (m *inferM) expectSeq(exp expected) (n, elem types.Type) {
	if n, a, ok := types.IsSeq(m.subst.Apply(exp.Type)); ok {
		return n, a
	}
	n = m.freshType(types.KNum, types.LenOfSeq{})
	elem = m.freshType(types.KType, types.TypeOfSeqElement{})
	m.unify(exp, types.TSeq(n, elem))
	return n, elem
}
