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
	"sort"

	"github.com/wdamron/dtinfer/types"
)

// Quantify turns the unification variables vs into fresh schema parameters.
//
// Numeric parameters are ordered before the others; within each kind the order
// of vs is kept. The returned map is keyed by variable id.
func (vt *VarTracker) Quantify(vs []*types.TVFree) ([]*types.TParam, map[int]*types.TParam) {
	ordered := make([]*types.TVFree, len(vs))
	copy(ordered, vs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].K.Tag == types.KindNum && ordered[j].K.Tag != types.KindNum
	})
	params := make([]*types.TParam, len(ordered))
	m := make(map[int]*types.TParam, len(ordered))
	for i, v := range ordered {
		p := vt.NewParam(v.K, nil, v.Info)
		params[i], m[v.ID] = p, p
	}
	return params, m
}

// Generalize builds a closed schema over props and body, binding the given parameters.
func Generalize(params []*types.TParam, m map[int]*types.TParam, props []types.Type, body types.Type) *types.Schema {
	qprops := make([]types.Type, len(props))
	for i, p := range props {
		qprops[i] = types.Quantify(p, m)
	}
	return &types.Schema{Params: params, Props: qprops, Body: types.Quantify(body, m)}
}
