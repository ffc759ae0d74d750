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
	"github.com/wdamron/dtinfer/names"
)

// Schema is a universally quantified type: `{a, n} (fin n) => [n]a -> a`
type Schema struct {
	Params []*TParam
	Props  []Type
	Body   Type
}

// Mono wraps a type in a schema without parameters or predicates.
func Mono(t Type) *Schema { return &Schema{Body: t} }

// IsMono reports whether the schema has no parameters and no predicates.
func (s *Schema) IsMono() bool { return len(s.Params) == 0 && len(s.Props) == 0 }

// Instantiate the schema with the given types for its parameters.
func (s *Schema) Instantiate(args []Type) (props []Type, body Type) {
	m := make(map[int]Type, len(s.Params))
	for i, p := range s.Params {
		if i < len(args) {
			m[p.ID] = args[i]
		}
	}
	props = make([]Type, len(s.Props))
	for i, p := range s.Props {
		props[i] = InstantiateBound(p, m)
	}
	return props, InstantiateBound(s.Body, m)
}

// Type synonym declaration: `type T a = body`
type TySyn struct {
	Name   names.Name
	Params []*TParam
	Props  []Type
	Body   Type
}

// Kind of the synonym when fully applied to its parameters.
func (ts *TySyn) Kind() *Kind {
	ks := make([]*Kind, len(ts.Params))
	for i, p := range ts.Params {
		ks[i] = p.K
	}
	return KFuns(KindOf(ts.Body), ks...)
}

// Newtype declaration: `newtype T a = { x : a }`
type Newtype struct {
	Name   names.Name
	Params []*TParam
	Props  []Type
	Fields FieldMap
	// Name of the constructor function.
	ConName names.Name
}

// Kind of the newtype constructor.
func (nt *Newtype) Kind() *Kind {
	ks := make([]*Kind, len(nt.Params))
	for i, p := range nt.Params {
		ks[i] = p.K
	}
	return KFuns(KType, ks...)
}

// ConSchema is the schema of the newtype's constructor function.
func (nt *Newtype) ConSchema() *Schema {
	args := make([]Type, len(nt.Params))
	for i, p := range nt.Params {
		args[i] = TBound(p)
	}
	return &Schema{
		Params: nt.Params,
		Props:  nt.Props,
		Body:   TFun(TRecord(nt.Fields), &TNewtype{NT: nt, Args: args}),
	}
}

// FieldTypes returns the fields of the newtype instantiated at args.
func (nt *Newtype) FieldTypes(args []Type) FieldMap {
	m := make(map[int]Type, len(nt.Params))
	for i, p := range nt.Params {
		if i < len(args) {
			m[p.ID] = args[i]
		}
	}
	return nt.Fields.Map(func(t Type) Type { return InstantiateBound(t, m) })
}

// AbstractType is a primitive type or a module parameter type.
type AbstractType struct {
	Name names.Name
	K    *Kind
	// Predicates which must hold for the type's parameters.
	Props []Type
}

// ModParamType is a type parameter of a (sub)module.
type ModParamType struct {
	Name  names.Name
	Param *TParam
}
