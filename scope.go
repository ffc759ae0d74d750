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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// ScopeKind identifies the shape of an open scope.
type ScopeKind uint8

const (
	ScopeLocal ScopeKind = iota
	ScopeSubmodule
	ScopeTopModule
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeLocal:
		return "local"
	case ScopeSubmodule:
		return "submodule"
	}
	return "top-level module"
}

// An open module-like scope. Declarations accumulate in checking order.
type scope struct {
	kind ScopeKind
	mod  *core.Module
}

// ExternalScope is the immutable base below the scope stack: the prelude and
// modules which have already been checked. It is safe to share between runs.
type ExternalScope struct {
	tysyns    *immutable.SortedMap
	newtypes  *immutable.SortedMap
	primTypes *immutable.SortedMap
	vars      *immutable.SortedMap
	ifaces    *immutable.SortedMap
}

var emptyExternal = &ExternalScope{
	tysyns:    immutable.NewSortedMap(nil),
	newtypes:  immutable.NewSortedMap(nil),
	primTypes: immutable.NewSortedMap(nil),
	vars:      immutable.NewSortedMap(nil),
	ifaces:    immutable.NewSortedMap(nil),
}

// Create an external scope exposing the given interfaces. Later interfaces
// shadow earlier ones per name.
func NewExternalScope(ifaces ...*core.Interface) *ExternalScope {
	s := emptyExternal
	for _, iface := range ifaces {
		s = s.With(iface)
	}
	return s
}

// With returns a copy of s which additionally exposes iface. s is unchanged.
func (s *ExternalScope) With(iface *core.Interface) *ExternalScope {
	if s == nil {
		s = emptyExternal
	}
	tysyns := immutable.NewSortedMapBuilder(s.tysyns)
	for id, ts := range iface.TySyns {
		tysyns.Set(id, ts)
	}
	newtypes := immutable.NewSortedMapBuilder(s.newtypes)
	for id, nt := range iface.Newtypes {
		newtypes.Set(id, nt)
	}
	primTypes := immutable.NewSortedMapBuilder(s.primTypes)
	for id, at := range iface.PrimTypes {
		primTypes.Set(id, at)
	}
	vars := immutable.NewSortedMapBuilder(s.vars)
	for id, sc := range iface.Vars {
		vars.Set(id, sc)
	}
	return &ExternalScope{
		tysyns:    tysyns.Map(),
		newtypes:  newtypes.Map(),
		primTypes: primTypes.Map(),
		vars:      vars.Map(),
		ifaces:    s.ifaces.Set(iface.Name.ID, iface),
	}
}

// Var finds the schema of an external value.
func (s *ExternalScope) Var(id int) (*types.Schema, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.vars.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*types.Schema), true
}

func (s *ExternalScope) TySyn(id int) (*types.TySyn, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.tysyns.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*types.TySyn), true
}

func (s *ExternalScope) Newtype(id int) (*types.Newtype, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.newtypes.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*types.Newtype), true
}

func (s *ExternalScope) PrimType(id int) (*types.AbstractType, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.primTypes.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*types.AbstractType), true
}

// Interface finds an imported module or submodule interface.
func (s *ExternalScope) Interface(id int) (*core.Interface, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.ifaces.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*core.Interface), true
}

func (m *inferM) openScope(kind ScopeKind, name names.Name) {
	m.scopes = append(m.scopes, &scope{kind: kind, mod: core.NewModule(name)})
}

func (m *inferM) curScope() *scope {
	if len(m.scopes) == 0 {
		panicf("no open scope")
	}
	return m.scopes[len(m.scopes)-1]
}

func (m *inferM) popScope(kind ScopeKind) *scope {
	s := m.curScope()
	if s.kind != kind {
		panicf("closing "+kind.String()+" scope, but the open scope is", s.kind.String())
	}
	m.scopes = m.scopes[:len(m.scopes)-1]
	return s
}

// Close a local scope, returning its declaration groups in dependency order.
func (m *inferM) closeLocal() []core.DeclGroup {
	return m.popScope(ScopeLocal).mod.Decls
}

// Close a submodule and merge its declarations into the parent. A
// parameterized submodule also registers its interface.
func (m *inferM) closeSubmodule() {
	child := m.popScope(ScopeSubmodule).mod
	parent := m.curScope().mod
	for id, ts := range child.TySyns {
		parent.TySyns[id] = ts
	}
	for id, nt := range child.Newtypes {
		parent.Newtypes[id] = nt
	}
	for id, at := range child.PrimTypes {
		parent.PrimTypes[id] = at
	}
	for id, iface := range child.Submodules {
		parent.Submodules[id] = iface
	}
	parent.Decls = append(parent.Decls, child.Decls...)
	if child.IsParameterized() {
		parent.Submodules[child.Name.ID] = child.Interface()
	}
}

// Close the top-level module. It must be the only open scope.
func (m *inferM) closeTopModule() *core.Module {
	if len(m.scopes) != 1 {
		panicf("closing top-level module with nested scopes still open")
	}
	return m.popScope(ScopeTopModule).mod
}

func (m *inferM) addDecls(g core.DeclGroup) {
	s := m.curScope().mod
	s.Decls = append(s.Decls, g)
}

func (m *inferM) addTySyn(ts *types.TySyn) { m.curScope().mod.TySyns[ts.Name.ID] = ts }

func (m *inferM) addNewtype(nt *types.Newtype) { m.curScope().mod.Newtypes[nt.Name.ID] = nt }

func (m *inferM) addPrimType(at *types.AbstractType) { m.curScope().mod.PrimTypes[at.Name.ID] = at }

func (m *inferM) addParamType(pt *types.ModParamType) {
	m.curScope().mod.ParamTypes[pt.Name.ID] = pt
}

func (m *inferM) addParamConstraints(ps []types.Type) {
	s := m.curScope().mod
	s.ParamConstraints = append(s.ParamConstraints, ps...)
}

func (m *inferM) addParamFun(n names.Name, sc *types.Schema) {
	m.curScope().mod.ParamFuns[n.ID] = sc
}

// Type-level lookups walk the scope stack from the innermost scope outwards,
// then fall back to the external scope.

func (m *inferM) lookupTySyn(id int) (*types.TySyn, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if ts, ok := m.scopes[i].mod.TySyns[id]; ok {
			return ts, true
		}
	}
	return m.external.TySyn(id)
}

func (m *inferM) lookupNewtype(id int) (*types.Newtype, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if nt, ok := m.scopes[i].mod.Newtypes[id]; ok {
			return nt, true
		}
	}
	return m.external.Newtype(id)
}

func (m *inferM) lookupPrimType(id int) (*types.AbstractType, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if at, ok := m.scopes[i].mod.PrimTypes[id]; ok {
			return at, true
		}
	}
	return m.external.PrimType(id)
}

func (m *inferM) lookupParamType(id int) (*types.ModParamType, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		if pt, ok := m.scopes[i].mod.ParamTypes[id]; ok {
			return pt, true
		}
	}
	return nil, false
}

// Find a visible type synonym with the same identifier but a different name.
func (m *inferM) shadowedTySyn(n names.Name) (names.Name, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		for _, ts := range m.scopes[i].mod.TySyns {
			if ts.Name.Ident == n.Ident && ts.Name.ID != n.ID {
				return ts.Name, true
			}
		}
	}
	return names.Name{}, false
}
