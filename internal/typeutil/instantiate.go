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
	"github.com/wdamron/dtinfer/types"
)

// Instantiation is the result of instantiating a schema with fresh variables.
type Instantiation struct {
	Args  []types.Type
	Props []types.Type
	Body  types.Type
}

// Instantiate a schema. Parameters with an entry in given are instantiated with
// that type; the rest get fresh unification variables which may depend on scope.
// source describes each fresh variable for diagnostics.
func (vt *VarTracker) Instantiate(s *types.Schema, given map[int]types.Type, scope []*types.TParam, source func(i int, p *types.TParam) types.TVarInfo) Instantiation {
	args := make([]types.Type, len(s.Params))
	for i, p := range s.Params {
		if t, ok := given[p.ID]; ok {
			args[i] = t
			continue
		}
		args[i] = vt.NewFree(p.K, scope, source(i, p))
	}
	props, body := s.Instantiate(args)
	return Instantiation{Args: args, Props: props, Body: body}
}
