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

// Predicates are types of kind Prop. The helpers below build and inspect them.

// Equality of numeric types: `a == b`
func PEqual(a, b Type) Type { return &TCon{C: TC{Tag: PCEqual}, Args: []Type{a, b}} }

// Disequality of numeric types: `a != b`
func PNeq(a, b Type) Type { return &TCon{C: TC{Tag: PCNeq}, Args: []Type{a, b}} }

// Ordering of numeric types: `a >= b`
func PGeq(a, b Type) Type { return &TCon{C: TC{Tag: PCGeq}, Args: []Type{a, b}} }

// Finiteness: `fin n`
func PFin(n Type) Type { return &TCon{C: TC{Tag: PCFin}, Args: []Type{n}} }

// Primality: `prime n`
func PPrime(n Type) Type { return &TCon{C: TC{Tag: PCPrime}, Args: []Type{n}} }

// Selector predicate: the type rec has a field sel of type field.
func PHas(sel Selector, rec, field Type) Type {
	return &TCon{C: TC{Tag: PCHas, Sel: sel}, Args: []Type{rec, field}}
}

// Apply a class-like predicate constructor.
func PClass(tag TCTag, args ...Type) Type { return &TCon{C: TC{Tag: tag}, Args: args} }

// Conjunction: `a && b`
func PAnd(a, b Type) Type { return &TCon{C: TC{Tag: PCAnd}, Args: []Type{a, b}} }

// Get the constructor and arguments of a predicate.
func IsProp(t Type) (TC, []Type, bool) {
	c, ok := Expand(t).(*TCon)
	if !ok || !c.C.IsProp() {
		return TC{}, nil, false
	}
	return c.C, c.Args, true
}

// Check whether a predicate is built with the given constructor.
func IsPropOf(t Type, tag TCTag) ([]Type, bool) {
	c, args, ok := IsProp(t)
	if !ok || c.Tag != tag {
		return nil, false
	}
	return args, true
}

// Split a Has predicate.
func IsHas(t Type) (sel Selector, rec, field Type, ok bool) {
	c, args, isProp := IsProp(t)
	if !isProp || c.Tag != PCHas {
		return Selector{}, nil, nil, false
	}
	return c.Sel, args[0], args[1], true
}

// SplitAnd flattens conjunctions and drops trivially true predicates.
func SplitAnd(ps ...Type) []Type {
	var out []Type
	for _, p := range ps {
		c, args, ok := IsProp(p)
		switch {
		case ok && c.Tag == PCAnd:
			out = append(out, SplitAnd(args...)...)
		case ok && c.Tag == PCTrue:
		default:
			out = append(out, p)
		}
	}
	return out
}

// Class hierarchy, from each class to the classes it implies:
var superClasses = map[TCTag][]TCTag{
	PCLogic:     {PCZero},
	PCRing:      {PCZero},
	PCIntegral:  {PCRing},
	PCField:     {PCRing},
	PCRound:     {PCField, PCCmp},
	PCCmp:       {PCEq},
	PCSignedCmp: {PCEq},
}

// Implied returns the predicates which follow directly from p, including p.
func Implied(p Type) []Type {
	out := []Type{p}
	c, args, ok := IsProp(p)
	if !ok {
		return out
	}
	switch {
	case c.IsClass():
		for _, super := range superClasses[c.Tag] {
			out = append(out, Implied(PClass(super, args...))...)
		}
	case c.Tag == PCPrime:
		out = append(out, PFin(args[0]), PGeq(args[0], TNum(2)))
	}
	return out
}

// Check whether a predicate is about numeric types only.
func IsNumericProp(p Type) bool {
	c, _, ok := IsProp(p)
	if !ok {
		return false
	}
	switch c.Tag {
	case PCEqual, PCNeq, PCGeq, PCFin, PCPrime:
		return true
	}
	return false
}
