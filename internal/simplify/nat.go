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

package simplify

import (
	"math"

	"github.com/wdamron/dtinfer/types"
)

// Nat is a value of a numeric type: a natural number or infinity.
type Nat struct {
	N   int64
	Inf bool
}

var natInf = Nat{Inf: true}

func (n Nat) Type() types.Type {
	if n.Inf {
		return types.TInf
	}
	return types.TNum(n.N)
}

func (n Nat) geq(m Nat) bool {
	switch {
	case n.Inf:
		return true
	case m.Inf:
		return false
	}
	return n.N >= m.N
}

// Eval computes the value of a numeric type built from literals, `inf` and type
// functions. It fails when the type mentions variables, when a type function is
// undefined at its arguments, or when the result does not fit in an int64.
func Eval(t types.Type) (Nat, bool) {
	c, ok := types.Expand(t).(*types.TCon)
	if !ok {
		return Nat{}, false
	}
	switch c.C.Tag {
	case types.TCNum:
		return Nat{N: c.C.N}, true
	case types.TCInf:
		return natInf, true
	}
	if !c.C.IsTypeFun() {
		return Nat{}, false
	}
	args := make([]Nat, len(c.Args))
	for i, a := range c.Args {
		if args[i], ok = Eval(a); !ok {
			return Nat{}, false
		}
	}
	return evalFun(c.C.Tag, args)
}

func evalFun(tag types.TCTag, args []Nat) (Nat, bool) {
	if tag == types.TFWidth {
		if args[0].Inf {
			return natInf, true
		}
		return Nat{N: width(args[0].N)}, true
	}
	if tag == types.TFLenFromThenTo {
		return lenFromThenTo(args[0], args[1], args[2])
	}
	a, b := args[0], args[1]
	switch tag {
	case types.TFAdd:
		if a.Inf || b.Inf {
			return natInf, true
		}
		if a.N > math.MaxInt64-b.N {
			return Nat{}, false
		}
		return Nat{N: a.N + b.N}, true
	case types.TFSub:
		switch {
		case a.Inf && !b.Inf:
			return natInf, true
		case a.Inf || b.Inf || a.N < b.N:
			return Nat{}, false
		}
		return Nat{N: a.N - b.N}, true
	case types.TFMul:
		switch {
		case (!a.Inf && a.N == 0) || (!b.Inf && b.N == 0):
			return Nat{}, true
		case a.Inf || b.Inf:
			return natInf, true
		case a.N > math.MaxInt64/b.N:
			return Nat{}, false
		}
		return Nat{N: a.N * b.N}, true
	case types.TFDiv:
		if a.Inf || b.Inf || b.N == 0 {
			return Nat{}, false
		}
		return Nat{N: a.N / b.N}, true
	case types.TFMod:
		if a.Inf || b.Inf || b.N == 0 {
			return Nat{}, false
		}
		return Nat{N: a.N % b.N}, true
	case types.TFCeilDiv:
		if a.Inf || b.Inf || b.N == 0 {
			return Nat{}, false
		}
		return Nat{N: (a.N + b.N - 1) / b.N}, true
	case types.TFCeilMod:
		if a.Inf || b.Inf || b.N == 0 {
			return Nat{}, false
		}
		return Nat{N: ((a.N+b.N-1)/b.N)*b.N - a.N}, true
	case types.TFExp:
		return exp(a, b)
	case types.TFMin:
		if a.geq(b) {
			return b, true
		}
		return a, true
	case types.TFMax:
		if a.geq(b) {
			return a, true
		}
		return b, true
	}
	return Nat{}, false
}

func width(n int64) int64 {
	w := int64(0)
	for n > 0 {
		w, n = w+1, n>>1
	}
	return w
}

func exp(a, b Nat) (Nat, bool) {
	switch {
	case !b.Inf && b.N == 0:
		return Nat{N: 1}, true
	case a.Inf:
		return natInf, true
	case b.Inf:
		if a.N >= 2 {
			return natInf, true
		}
		return a, true
	}
	r := int64(1)
	for i := int64(0); i < b.N; i++ {
		if a.N != 0 && r > math.MaxInt64/a.N {
			return Nat{}, false
		}
		r *= a.N
	}
	return Nat{N: r}, true
}

func lenFromThenTo(first, next, last Nat) (Nat, bool) {
	if first.Inf || next.Inf || last.Inf || first.N == next.N {
		return Nat{}, false
	}
	if next.N > first.N {
		if last.N < first.N {
			return Nat{}, true
		}
		return Nat{N: (last.N-first.N)/(next.N-first.N) + 1}, true
	}
	if last.N > first.N {
		return Nat{}, true
	}
	return Nat{N: (first.N-last.N)/(first.N-next.N) + 1}, true
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// Normalize replaces every closed type-function application in t by its value.
func Normalize(t types.Type) types.Type {
	return types.Rewrite(t, func(t types.Type) (types.Type, bool) {
		c, ok := t.(*types.TCon)
		if !ok || !c.C.IsTypeFun() {
			return nil, false
		}
		args := make([]types.Type, len(c.Args))
		for i, a := range c.Args {
			args[i] = Normalize(a)
		}
		norm := &types.TCon{C: c.C, Args: args}
		if n, ok := Eval(norm); ok {
			return n.Type(), true
		}
		return norm, true
	})
}
