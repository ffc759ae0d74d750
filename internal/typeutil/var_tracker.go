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
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// VarTracker allocates unification variables, schema parameters and goal ids.
//
// Unification variables and schema parameters share one id sequence, so a
// parameter id never collides with a variable id. Both counters only grow.
type VarTracker struct {
	NextTypeVar int
	NextGoal    int
}

func (vt *VarTracker) nextID() int {
	id := vt.NextTypeVar
	vt.NextTypeVar++
	return id
}

// NewFree creates a unification variable which may depend on the given parameters.
func (vt *VarTracker) NewFree(k *types.Kind, scope []*types.TParam, info types.TVarInfo) *types.TVFree {
	return types.NewFree(vt.nextID(), k, scope, info)
}

// NewParam creates a schema parameter. name is nil for machine-generated parameters.
func (vt *VarTracker) NewParam(k *types.Kind, name *names.Name, info types.TVarInfo) *types.TParam {
	return &types.TParam{ID: vt.nextID(), K: k, Name: name, Info: info}
}

// NewGoal allocates an id for a selector goal.
func (vt *VarTracker) NewGoal() int {
	id := vt.NextGoal
	vt.NextGoal++
	return id
}
