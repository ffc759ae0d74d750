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

package ast

import (
	"github.com/wdamron/dtinfer/names"
)

// Pattern is the base for all patterns.
type Pattern interface {
	PatternName() string
	isPattern()
}

// Variable pattern
type PVar struct {
	Name names.Name
}

// Wildcard: `_`
type PWild struct{}

// Typed pattern: `(p : t)`
type PTyped struct {
	Pat  Pattern
	Type Type
}

// Tuple pattern: `(p1, p2)`
type PTuple struct {
	Pats []Pattern
}

// Record pattern: `{ x = p1, y = p2 }`
type PRecord struct {
	Fields []PField
}

// Paired label and pattern
type PField struct {
	Label string
	Pat   Pattern
}

// Sequence pattern: `[p1, p2]`
type PList struct {
	Pats []Pattern
}

// Split pattern: `p1 # p2`
type PSplit struct {
	Left, Right Pattern
}

// Pattern with a source range.
type PLocated struct {
	Range names.Range
	Pat   Pattern
}

func (*PVar) PatternName() string     { return "PVar" }
func (*PWild) PatternName() string    { return "PWild" }
func (*PTyped) PatternName() string   { return "PTyped" }
func (*PTuple) PatternName() string   { return "PTuple" }
func (*PRecord) PatternName() string  { return "PRecord" }
func (*PList) PatternName() string    { return "PList" }
func (*PSplit) PatternName() string   { return "PSplit" }
func (*PLocated) PatternName() string { return "PLocated" }

func (*PVar) isPattern()     {}
func (*PWild) isPattern()    {}
func (*PTyped) isPattern()   {}
func (*PTuple) isPattern()   {}
func (*PRecord) isPattern()  {}
func (*PList) isPattern()    {}
func (*PSplit) isPattern()   {}
func (*PLocated) isPattern() {}

// PatternVars returns the variables bound by p, left to right.
func PatternVars(p Pattern) []names.Name {
	var out []names.Name
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case *PVar:
			out = append(out, p.Name)
		case *PTyped:
			walk(p.Pat)
		case *PTuple:
			for _, q := range p.Pats {
				walk(q)
			}
		case *PRecord:
			for _, f := range p.Fields {
				walk(f.Pat)
			}
		case *PList:
			for _, q := range p.Pats {
				walk(q)
			}
		case *PSplit:
			walk(p.Left)
			walk(p.Right)
		case *PLocated:
			walk(p.Pat)
		}
	}
	walk(p)
	return out
}
