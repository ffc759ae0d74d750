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

package core

import (
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Decl is an elaborated value definition.
type Decl struct {
	Name   names.Name
	Schema *types.Schema
	// Def is nil for primitives and module parameters.
	Def   Expr
	Prim  bool
	Range names.Range
}

// DeclGroup is a group of definitions in dependency order.
type DeclGroup struct {
	Recursive bool
	Decls     []*Decl
}

// Module is the elaborated form of a module or submodule.
type Module struct {
	Name    names.Name
	Imports []names.Name

	TySyns    map[int]*types.TySyn
	Newtypes  map[int]*types.Newtype
	PrimTypes map[int]*types.AbstractType

	ParamTypes       map[int]*types.ModParamType
	ParamConstraints []types.Type
	ParamFuns        map[int]*types.Schema

	// Interfaces of parameterized submodules, by name id.
	Submodules map[int]*Interface

	Decls []DeclGroup
}

// Interface is the public view of a module: everything a later module needs in
// order to refer to its definitions.
type Interface struct {
	Name      names.Name
	TySyns    map[int]*types.TySyn
	Newtypes  map[int]*types.Newtype
	PrimTypes map[int]*types.AbstractType
	Vars      map[int]*types.Schema
	Names     map[int]names.Name
}

// NewModule creates an empty module.
func NewModule(name names.Name) *Module {
	return &Module{
		Name:       name,
		TySyns:     make(map[int]*types.TySyn),
		Newtypes:   make(map[int]*types.Newtype),
		PrimTypes:  make(map[int]*types.AbstractType),
		ParamTypes: make(map[int]*types.ModParamType),
		ParamFuns:  make(map[int]*types.Schema),
		Submodules: make(map[int]*Interface),
	}
}

// IsParameterized reports whether the module has module parameters.
func (m *Module) IsParameterized() bool {
	return len(m.ParamTypes) > 0 || len(m.ParamConstraints) > 0 || len(m.ParamFuns) > 0
}

// Interface computes the public interface of m.
func (m *Module) Interface() *Interface {
	iface := &Interface{
		Name:      m.Name,
		TySyns:    m.TySyns,
		Newtypes:  m.Newtypes,
		PrimTypes: m.PrimTypes,
		Vars:      make(map[int]*types.Schema),
		Names:     make(map[int]names.Name),
	}
	for _, g := range m.Decls {
		for _, d := range g.Decls {
			iface.Vars[d.Name.ID] = d.Schema
			iface.Names[d.Name.ID] = d.Name
		}
	}
	for _, nt := range m.Newtypes {
		iface.Vars[nt.ConName.ID] = nt.ConSchema()
		iface.Names[nt.ConName.ID] = nt.ConName
	}
	return iface
}
