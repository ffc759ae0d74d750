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
	"errors"

	"github.com/benbjohnson/immutable"
	set "github.com/hashicorp/go-set/v3"
)

var emptySubst = immutable.NewSortedMap(nil)

type binding struct {
	v *TVFree
	t Type
}

// Subst is a persistent finite mapping from unification variables to types.
//
// Bindings are stored triangularly; Apply follows chains, so applying a
// substitution is idempotent. Keys are unification variables only, so a bound
// parameter can never be the target of a binding.
//
// Binding v to t narrows the allowed-dependency set of every variable free in t
// to the parameters v may depend on. Narrowed sets are kept alongside the
// bindings, so the variables themselves are never mutated.
type Subst struct {
	m      *immutable.SortedMap
	scopes *immutable.SortedMap
}

// EmptySubst returns the substitution with no bindings.
func EmptySubst() Subst { return Subst{m: emptySubst, scopes: emptySubst} }

// Scopes returns a substitution with no bindings which keeps the narrowed
// dependency sets of s. Deltas computed against s should start from it.
func (s Subst) Scopes() Subst { return Subst{m: emptySubst, scopes: s.scopeMap()} }

func (s Subst) scopeMap() *immutable.SortedMap {
	if s.scopes == nil {
		return emptySubst
	}
	return s.scopes
}

// ScopeOf returns the parameters v may currently depend on. The result must not be modified.
func (s Subst) ScopeOf(v *TVFree) *set.Set[int] {
	if sc, ok := s.scopeMap().Get(v.ID); ok {
		return sc.(*set.Set[int])
	}
	return v.Scope
}

// MayMention reports whether v may currently be unified with a type mentioning p.
func (s Subst) MayMention(v *TVFree, p *TParam) bool {
	sc := s.ScopeOf(v)
	return sc != nil && sc.Contains(p.ID)
}

func (s Subst) sorted() *immutable.SortedMap {
	if s.m == nil {
		return emptySubst
	}
	return s.m
}

// Get the number of bindings.
func (s Subst) Len() int { return s.sorted().Len() }

// Lookup the type bound directly to v.
func (s Subst) Lookup(v *TVFree) (Type, bool) {
	b, ok := s.sorted().Get(v.ID)
	if !ok {
		return nil, false
	}
	return b.(binding).t, true
}

// Iterate over bindings in variable order. If f returns false, iteration will be stopped.
func (s Subst) Range(f func(*TVFree, Type) bool) {
	iter := s.sorted().Iterator()
	for !iter.Done() {
		_, b := iter.Next()
		if !f(b.(binding).v, b.(binding).t) {
			return
		}
	}
}

// ErrRecursive is returned when a variable would be bound to a type containing itself.
var ErrRecursive = errors.New("recursive type")

// EscapeError is returned when a binding would let bound parameters escape the
// scope of a unification variable.
type EscapeError struct {
	Var    *TVFree
	Type   Type
	Params []*TParam
}

func (e *EscapeError) Error() string {
	return "type-variable " + TypeString(e.Var) + " cannot depend on " + e.Params[0].DisplayName() + " in " + TypeString(e.Type)
}

// Extend returns a copy of s with v bound to t.
//
// Every extension is checked: t (under s) must not mention v, and every bound
// parameter in t must be in the allowed-dependency set of v.
func (s Subst) Extend(v *TVFree, t Type) (Subst, error) {
	if _, bound := s.Lookup(v); bound {
		return s, errors.New("type-variable " + TypeString(v) + " is already bound")
	}
	t = s.Apply(t)
	if fv, ok := t.(*TVFree); ok && fv.ID == v.ID {
		return s, nil
	}
	if Occurs(v, t) {
		return s, ErrRecursive
	}
	if escaped := s.EscapedParams(v, t); len(escaped) > 0 {
		return s, &EscapeError{Var: v, Type: t, Params: escaped}
	}
	return Subst{m: s.sorted().Set(v.ID, binding{v, t}), scopes: s.narrow(v, t)}, nil
}

// Restrict every variable free in t to the parameters v may depend on.
func (s Subst) narrow(v *TVFree, t Type) *immutable.SortedMap {
	scopes := s.scopeMap()
	allowed := s.ScopeOf(v)
	for _, w := range FreeVars(t) {
		cur := s.ScopeOf(w)
		if cur == nil || cur.Empty() {
			continue
		}
		next := set.New[int](cur.Size())
		for _, id := range cur.Slice() {
			if allowed != nil && allowed.Contains(id) {
				next.Insert(id)
			}
		}
		if next.Size() < cur.Size() {
			scopes = scopes.Set(w.ID, next)
		}
	}
	return scopes
}

// Merge extends s with every binding of delta.
func (s Subst) Merge(delta Subst) (Subst, error) {
	var err error
	delta.Range(func(v *TVFree, t Type) bool {
		s, err = s.Extend(v, t)
		return err == nil
	})
	return s, err
}

// Apply the substitution to a type.
func (s Subst) Apply(t Type) Type {
	if s.Len() == 0 || t == nil {
		return t
	}
	return Rewrite(t, func(t Type) (Type, bool) {
		v, ok := t.(*TVFree)
		if !ok {
			return nil, false
		}
		bound, found := s.Lookup(v)
		if !found {
			return t, true
		}
		return s.Apply(bound), true
	})
}

// Apply the substitution to a list of types.
func (s Subst) ApplyList(ts []Type) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = s.Apply(t)
	}
	return out
}

// Apply the substitution to a schema. Schemas produced by generalization are closed,
// so this only affects schemas of monomorphic bindings.
func (s Subst) ApplySchema(sc *Schema) *Schema {
	if s.Len() == 0 {
		return sc
	}
	return &Schema{Params: sc.Params, Props: s.ApplyList(sc.Props), Body: s.Apply(sc.Body)}
}

// Occurs reports whether v appears in t.
func Occurs(v *TVFree, t Type) bool {
	found := false
	Visit(t, func(t Type) bool {
		if fv, ok := t.(*TVFree); ok && fv.ID == v.ID {
			found = true
		}
		return !found
	})
	return found
}

// EscapedParams returns the bound parameters in t which v may not depend on.
func EscapedParams(v *TVFree, t Type) []*TParam {
	return EmptySubst().EscapedParams(v, t)
}

// EscapedParams returns the bound parameters in t which v may not depend on,
// taking the dependency sets narrowed by s into account.
func (s Subst) EscapedParams(v *TVFree, t Type) []*TParam {
	var escaped []*TParam
	Visit(t, func(t Type) bool {
		if b, ok := t.(*TVBound); ok && !s.MayMention(v, b.Param) {
			escaped = append(escaped, b.Param)
		}
		return true
	})
	return escaped
}
