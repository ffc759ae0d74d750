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
	"sort"

	set "github.com/hashicorp/go-set/v3"
)

// FreeVars collects the unification variables of ts in order of first occurrence.
func FreeVars(ts ...Type) []*TVFree {
	seen := set.New[int](8)
	var out []*TVFree
	for _, t := range ts {
		Visit(t, func(t Type) bool {
			if v, ok := t.(*TVFree); ok && seen.Insert(v.ID) {
				out = append(out, v)
			}
			return true
		})
	}
	return out
}

// FreeSet returns the ids of the unification variables of ts.
func FreeSet(ts ...Type) *set.Set[int] {
	s := set.New[int](8)
	for _, t := range ts {
		Visit(t, func(t Type) bool {
			if v, ok := t.(*TVFree); ok {
				s.Insert(v.ID)
			}
			return true
		})
	}
	return s
}

// BoundParams collects the bound parameters mentioned in ts, sorted by id.
func BoundParams(ts ...Type) []*TParam {
	seen := make(map[int]*TParam)
	for _, t := range ts {
		Visit(t, func(t Type) bool {
			if b, ok := t.(*TVBound); ok {
				seen[b.Param.ID] = b.Param
			}
			return true
		})
	}
	out := make([]*TParam, 0, len(seen))
	for _, p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Mentions reports whether t mentions any of the variables in vs.
func Mentions(t Type, vs *set.Set[int]) bool {
	found := false
	Visit(t, func(t Type) bool {
		if v, ok := t.(*TVFree); ok && vs.Contains(v.ID) {
			found = true
		}
		return !found
	})
	return found
}

// Quantify replaces the unification variables in t according to m (keyed by
// variable id) with bound occurrences of schema parameters.
func Quantify(t Type, m map[int]*TParam) Type {
	if len(m) == 0 {
		return t
	}
	return Rewrite(t, func(t Type) (Type, bool) {
		if v, ok := t.(*TVFree); ok {
			if p, found := m[v.ID]; found {
				return TBound(p), true
			}
			return t, true
		}
		return nil, false
	})
}
