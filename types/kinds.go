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

// KindTag identifies the shape of a kind.
type KindTag uint8

const (
	// Kind of value types: `*`
	KindType KindTag = iota
	// Kind of numeric types: `#`
	KindNum
	// Kind of predicates: `Prop`
	KindProp
	// Kind of type constructors: `k1 -> k2`
	KindFun
)

// Kind classifies types.
type Kind struct {
	Tag      KindTag
	From, To *Kind
}

var (
	KType = &Kind{Tag: KindType}
	KNum  = &Kind{Tag: KindNum}
	KProp = &Kind{Tag: KindProp}
)

// Create an arrow kind: `from -> to`
func KFun(from, to *Kind) *Kind { return &Kind{Tag: KindFun, From: from, To: to} }

// Create the kind of a constructor taking the given argument kinds and producing res.
func KFuns(res *Kind, args ...*Kind) *Kind {
	for i := len(args) - 1; i >= 0; i-- {
		res = KFun(args[i], res)
	}
	return res
}

// Equal reports whether two kinds are structurally equal.
func (k *Kind) Equal(o *Kind) bool {
	if k == o {
		return true
	}
	if k == nil || o == nil || k.Tag != o.Tag {
		return false
	}
	if k.Tag != KindFun {
		return true
	}
	return k.From.Equal(o.From) && k.To.Equal(o.To)
}

// Apply a constructor kind to an argument kind. The result is nil when the
// kind does not accept the argument.
func (k *Kind) Apply(arg *Kind) *Kind {
	if k == nil || k.Tag != KindFun || !k.From.Equal(arg) {
		return nil
	}
	return k.To
}

// Arity is the number of arguments the kind accepts.
func (k *Kind) Arity() int {
	n := 0
	for k != nil && k.Tag == KindFun {
		n, k = n+1, k.To
	}
	return n
}

func (k *Kind) String() string {
	if k == nil {
		return "?"
	}
	switch k.Tag {
	case KindType:
		return "*"
	case KindNum:
		return "#"
	case KindProp:
		return "Prop"
	}
	from := k.From.String()
	if k.From != nil && k.From.Tag == KindFun {
		from = "(" + from + ")"
	}
	return from + " -> " + k.To.String()
}
