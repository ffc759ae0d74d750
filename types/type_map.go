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
	"github.com/benbjohnson/immutable"
)

var emptyFields = immutable.NewSortedMap(nil)

// FieldMap contains immutable mappings from record labels to types, sorted by label.
type FieldMap struct {
	m *immutable.SortedMap
}

// Field is a labelled type.
type Field struct {
	Label string
	Type  Type
}

// Create a FieldMap from a list of fields. Later duplicates replace earlier ones.
func NewFieldMap(fields ...Field) FieldMap {
	b := immutable.NewSortedMapBuilder(emptyFields)
	for _, f := range fields {
		b.Set(f.Label, f.Type)
	}
	return FieldMap{b.Map()}
}

func (m FieldMap) sorted() *immutable.SortedMap {
	if m.m == nil {
		return emptyFields
	}
	return m.m
}

// Get the number of fields.
func (m FieldMap) Len() int { return m.sorted().Len() }

// Get the type of a field.
func (m FieldMap) Get(label string) (Type, bool) {
	t, ok := m.sorted().Get(label)
	if !ok {
		return nil, false
	}
	return t.(Type), true
}

// Set returns a copy of the map with the given field added or replaced.
func (m FieldMap) Set(label string, t Type) FieldMap { return FieldMap{m.sorted().Set(label, t)} }

// Iterate over fields in label order. If f returns false, iteration will be stopped.
func (m FieldMap) Range(f func(string, Type) bool) {
	iter := m.sorted().Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Type)) {
			return
		}
	}
}

// Labels returns the field labels in sorted order.
func (m FieldMap) Labels() []string {
	labels := make([]string, 0, m.Len())
	m.Range(func(l string, _ Type) bool {
		labels = append(labels, l)
		return true
	})
	return labels
}

// Fields returns the fields in label order.
func (m FieldMap) Fields() []Field {
	fields := make([]Field, 0, m.Len())
	m.Range(func(l string, t Type) bool {
		fields = append(fields, Field{l, t})
		return true
	})
	return fields
}

// Map applies f to every field type, without mutating the existing map.
func (m FieldMap) Map(f func(Type) Type) FieldMap {
	b := immutable.NewSortedMapBuilder(m.sorted())
	m.Range(func(l string, t Type) bool {
		b.Set(l, f(t))
		return true
	})
	return FieldMap{b.Map()}
}

// SameLabels reports whether two maps have exactly the same labels.
func (m FieldMap) SameLabels(o FieldMap) bool {
	if m.Len() != o.Len() {
		return false
	}
	same := true
	m.Range(func(l string, _ Type) bool {
		_, same = o.Get(l)
		return same
	})
	return same
}
