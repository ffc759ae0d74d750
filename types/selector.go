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
	"strconv"
)

// SelectorTag identifies the form of a field selector.
type SelectorTag uint8

const (
	RecordSel SelectorTag = iota
	TupleSel
	ListSel
)

// Selector picks a component of a record, tuple, or sequence: `r.x`, `t.1`, `xs.0`
type Selector struct {
	Tag   SelectorTag
	Label string
	Index int
}

func RecordSelector(label string) Selector { return Selector{Tag: RecordSel, Label: label} }
func TupleSelector(i int) Selector         { return Selector{Tag: TupleSel, Index: i} }
func ListSelector(i int) Selector          { return Selector{Tag: ListSel, Index: i} }

func (s Selector) Equal(o Selector) bool { return s == o }

func (s Selector) String() string {
	if s.Tag == RecordSel {
		return s.Label
	}
	return strconv.Itoa(s.Index)
}
