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
	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/dtinfer/types"
)

// UniErrorKind classifies unification failures.
type UniErrorKind uint8

const (
	UniTypeMismatch UniErrorKind = iota
	UniKindMismatch
	UniTypeLenMismatch
	UniRecursive
	UniNonPolyDepends
)

// UnificationError describes why two types could not be unified. Left and
// Right are the subterms which disagreed.
type UnificationError struct {
	Kind        UniErrorKind
	Left, Right types.Type
	LeftKind    *types.Kind
	RightKind   *types.Kind
	// Var and Params are set for UniNonPolyDepends.
	Var    *types.TVFree
	Params []*types.TParam
}

func (e *UnificationError) Error() string {
	switch e.Kind {
	case UniKindMismatch:
		return "kind mismatch: expected " + e.LeftKind.String() + ", got " + e.RightKind.String()
	case UniTypeLenMismatch:
		return "type length mismatch between " + types.TypeString(e.Left) + " and " + types.TypeString(e.Right)
	case UniRecursive:
		return "recursive type " + types.TypeString(e.Left) + " ~ " + types.TypeString(e.Right)
	case UniNonPolyDepends:
		return "type-variable " + types.TypeString(e.Var) + " cannot depend on " + e.Params[0].DisplayName()
	}
	return "type mismatch: " + types.TypeString(e.Left) + " and " + types.TypeString(e.Right)
}

// Result is a most general unifier: a substitution delta plus numeric equalities
// deferred to the solver.
type Result struct {
	Subst types.Subst
	Props []types.Type
}

// Unify computes the most general unifier of a and b.
//
// The unifier is pure: nothing is committed until the caller merges the delta.
// A failed unification returns no partial result.
func Unify(a, b types.Type) (Result, error) {
	return UnifyUnder(types.EmptySubst(), a, b)
}

// UnifyUnder computes the most general unifier of a and b, respecting the
// dependency sets already narrowed by s. Bindings of s are not consulted:
// callers apply s to a and b first. The returned delta has no bindings of s.
func UnifyUnder(s types.Subst, a, b types.Type) (Result, error) {
	var u unifier
	u.subst = s.Scopes()
	if err := u.unify(a, b); err != nil {
		return Result{}, err
	}
	return Result{Subst: u.subst, Props: u.props}, nil
}

type unifier struct {
	subst types.Subst
	props []types.Type
}

func (u *unifier) unify(a, b types.Type) error {
	a, b = u.subst.Apply(a), u.subst.Apply(b)

	if ua, ok := a.(*types.TUser); ok {
		if ub, ok := b.(*types.TUser); ok && ua.Name.ID == ub.Name.ID && equalAll(ua.Args, ub.Args) {
			return nil
		}
	}
	a, b = types.Expand(a), types.Expand(b)

	if v, ok := a.(*types.TVFree); ok {
		return u.bindVar(v, b)
	}
	if v, ok := b.(*types.TVFree); ok {
		return u.bindVar(v, a)
	}

	switch x := a.(type) {
	case *types.TVBound:
		if y, ok := b.(*types.TVBound); ok && x.Param.ID == y.Param.ID {
			return nil
		}

	case *types.TCon:
		if y, ok := b.(*types.TCon); ok {
			switch {
			case x.C.IsTypeFun() && y.C.IsTypeFun() && x.C.Equal(y.C) && equalAll(x.Args, y.Args):
				return nil
			case !x.C.IsTypeFun() && x.C.Equal(y.C):
				if len(x.Args) != len(y.Args) {
					return &UnificationError{Kind: UniTypeLenMismatch, Left: a, Right: b}
				}
				return u.unifyMany(x.Args, y.Args)
			}
		}

	case *types.TRec:
		if y, ok := b.(*types.TRec); ok && x.Fields.SameLabels(y.Fields) {
			var err error
			x.Fields.Range(func(label string, ft types.Type) bool {
				gt, _ := y.Fields.Get(label)
				err = u.unify(ft, gt)
				return err == nil
			})
			return err
		}

	case *types.TNewtype:
		if y, ok := b.(*types.TNewtype); ok && x.NT.Name.ID == y.NT.Name.ID {
			return u.unifyMany(x.Args, y.Args)
		}
	}

	ka, kb := types.KindOf(a), types.KindOf(b)
	if !ka.Equal(kb) {
		return &UnificationError{Kind: UniKindMismatch, Left: a, Right: b, LeftKind: ka, RightKind: kb}
	}
	if ka.Equal(types.KNum) && (isTypeFunApp(a) || isTypeFunApp(b)) {
		u.props = append(u.props, types.PEqual(a, b))
		return nil
	}
	return &UnificationError{Kind: UniTypeMismatch, Left: a, Right: b}
}

func (u *unifier) unifyMany(as, bs []types.Type) error {
	if len(as) != len(bs) {
		return &UnificationError{Kind: UniTypeLenMismatch, Left: types.TTuple(as...), Right: types.TTuple(bs...)}
	}
	for i := range as {
		if err := u.unify(as[i], bs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (u *unifier) bindVar(v *types.TVFree, t types.Type) error {
	if w, ok := t.(*types.TVFree); ok {
		if w.ID == v.ID {
			return nil
		}
		// Bind the variable with the wider scope, so the survivor is the more restricted one.
		if v.K.Equal(w.K) && scopeWithin(u.subst.ScopeOf(v), u.subst.ScopeOf(w)) {
			return u.extend(w, v)
		}
	}
	tk := types.KindOf(t)
	if !v.K.Equal(tk) {
		return &UnificationError{Kind: UniKindMismatch, Left: v, Right: t, LeftKind: v.K, RightKind: tk}
	}
	recursive := types.Occurs(v, t)
	if recursive && !v.K.Equal(types.KNum) {
		return &UnificationError{Kind: UniRecursive, Left: v, Right: t}
	}
	if escaped := u.subst.EscapedParams(v, t); len(escaped) > 0 {
		return &UnificationError{Kind: UniNonPolyDepends, Left: v, Right: t, Var: v, Params: escaped}
	}
	if recursive {
		u.props = append(u.props, types.PEqual(v, t))
		return nil
	}
	return u.extend(v, t)
}

func (u *unifier) extend(v *types.TVFree, t types.Type) error {
	s, err := u.subst.Extend(v, t)
	if err != nil {
		if esc, ok := err.(*types.EscapeError); ok {
			return &UnificationError{Kind: UniNonPolyDepends, Left: v, Right: t, Var: v, Params: esc.Params}
		}
		return &UnificationError{Kind: UniRecursive, Left: v, Right: t}
	}
	u.subst = s
	return nil
}

// scopeWithin reports whether every parameter in v is also in w.
func scopeWithin(v, w *set.Set[int]) bool {
	if v == nil || v.Empty() {
		return true
	}
	if w == nil {
		return false
	}
	within := true
	for _, id := range v.Slice() {
		if !w.Contains(id) {
			within = false
			break
		}
	}
	return within
}

func isTypeFunApp(t types.Type) bool {
	c, ok := types.Expand(t).(*types.TCon)
	return ok && c.C.IsTypeFun()
}

func equalAll(as, bs []types.Type) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !types.Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}
