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

// Package names defines resolved identifiers and source ranges shared by the
// surface syntax, the type algebra and the elaborated program.
package names

import (
	"strconv"
)

// Namespace distinguishes value-level names from type-level names.
type Namespace uint8

const (
	NSValue Namespace = iota
	NSType
	NSModule
)

// Name is an identifier which has already been disambiguated by name resolution.
// Two names are the same name iff their ids are equal.
type Name struct {
	ID     int
	Ident  string
	Module string
	NS     Namespace
	// System names are introduced by the checker or earlier phases and are never
	// mentioned in warnings.
	System bool
	Range  Range
}

func (n Name) String() string {
	if n.Module == "" {
		return n.Ident
	}
	return n.Module + "::" + n.Ident
}

// Key is a stable, unique key for maps keyed by name.
func (n Name) Key() int { return n.ID }

// Position is a line/column location within a source.
type Position struct {
	Line, Col int
}

func (p Position) String() string { return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col) }

// Less orders positions by line, then column.
func (p Position) Less(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Range is a span of source text.
type Range struct {
	From, To Position
	Source   string
}

// EmptyRange is used for machine-introduced terms with no source location.
var EmptyRange = Range{}

func (r Range) IsEmpty() bool { return r == EmptyRange }

func (r Range) String() string {
	if r.IsEmpty() {
		return "<unknown>"
	}
	s := r.From.String() + "--" + r.To.String()
	if r.Source != "" {
		s = r.Source + ":" + s
	}
	return s
}

// Less orders ranges by source, then start position.
func (r Range) Less(o Range) bool {
	if r.Source != o.Source {
		return r.Source < o.Source
	}
	return r.From.Less(o.From)
}

// Supply hands out fresh value names. Name resolution owns the id space, so the
// checker draws its own locals from a supply which continues after the resolver's ids.
type Supply interface {
	Fresh(ident string, rng Range) Name
}

// CounterSupply is a Supply backed by a plain counter.
type CounterSupply struct {
	Next int
}

// NewSupply creates a supply which starts at the given id.
func NewSupply(start int) *CounterSupply { return &CounterSupply{Next: start} }

func (s *CounterSupply) Fresh(ident string, rng Range) Name {
	id := s.Next
	s.Next++
	return Name{ID: id, Ident: ident, System: true, Range: rng}
}
