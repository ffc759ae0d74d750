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

// Type is the base interface for all types. Predicates are types of kind Prop.
type Type interface {
	TypeName() string
	isType()
}

var (
	_ Type = (*TVFree)(nil)
	_ Type = (*TVBound)(nil)
	_ Type = (*TCon)(nil)
	_ Type = (*TRec)(nil)
	_ Type = (*TUser)(nil)
	_ Type = (*TNewtype)(nil)
)

func (t *TVFree) TypeName() string   { return "TVFree" }
func (t *TVBound) TypeName() string  { return "TVBound" }
func (t *TCon) TypeName() string     { return "TCon" }
func (t *TRec) TypeName() string     { return "TRec" }
func (t *TUser) TypeName() string    { return "TUser" }
func (t *TNewtype) TypeName() string { return "TNewtype" }

func (*TVFree) isType()   {}
func (*TVBound) isType()  {}
func (*TCon) isType()     {}
func (*TRec) isType()     {}
func (*TUser) isType()    {}
func (*TNewtype) isType() {}

// Applied type constructor: `[n]a`, `a -> b`, `(a, b)`, `n + 1`, `fin n`
type TCon struct {
	C    TC
	Args []Type
}

// Record type: `{ x : a, y : b }`
type TRec struct {
	Fields FieldMap
}

// Use of a type synonym. The synonym's name and arguments are kept for error
// messages; Body is the expansion.
type TUser struct {
	Name names.Name
	Args []Type
	Body Type
}

// Applied newtype: `T a b`
type TNewtype struct {
	NT   *Newtype
	Args []Type
}

// Expand strips synonym wrappers from the outermost layer of t.
func Expand(t Type) Type {
	for {
		u, ok := t.(*TUser)
		if !ok {
			return t
		}
		t = u.Body
	}
}

// Type constants and constructor helpers:

var (
	TInf      Type = &TCon{C: TC{Tag: TCInf}}
	TBit      Type = &TCon{C: TC{Tag: TCBit}}
	TInteger  Type = &TCon{C: TC{Tag: TCInteger}}
	TRational Type = &TCon{C: TC{Tag: TCRational}}
	PTrue     Type = &TCon{C: TC{Tag: PCTrue}}
)

// Numeric literal type: `8`
func TNum(n int64) Type { return &TCon{C: TC{Tag: TCNum, N: n}} }

// Sequence type: `[n]a`
func TSeq(n, a Type) Type { return &TCon{C: TC{Tag: TCSeq}, Args: []Type{n, a}} }

// Word type: `[n]Bit`
func TWord(n Type) Type { return TSeq(n, TBit) }

// Modular integer type: `Z n`
func TIntMod(n Type) Type { return &TCon{C: TC{Tag: TCIntMod}, Args: []Type{n}} }

// Function type: `a -> b`
func TFun(a, b Type) Type { return &TCon{C: TC{Tag: TCFun}, Args: []Type{a, b}} }

// Curried function type: `a1 -> a2 -> ... -> res`
func TFuns(args []Type, res Type) Type {
	for i := len(args) - 1; i >= 0; i-- {
		res = TFun(args[i], res)
	}
	return res
}

// Tuple type: `(a, b, c)`
func TTuple(ts ...Type) Type {
	return &TCon{C: TC{Tag: TCTuple, N: int64(len(ts))}, Args: ts}
}

// Record type with the given fields.
func TRecord(fields FieldMap) Type { return &TRec{Fields: fields} }

// Apply a type function: `a + b`
func TFunApp(tag TCTag, args ...Type) Type { return &TCon{C: TC{Tag: tag}, Args: args} }

// Bound type variable for a parameter.
func TBound(p *TParam) Type { return &TVBound{Param: p} }

// Split a sequence type into its length and element type.
func IsSeq(t Type) (n, a Type, ok bool) {
	if c, isCon := Expand(t).(*TCon); isCon && c.C.Tag == TCSeq {
		return c.Args[0], c.Args[1], true
	}
	return nil, nil, false
}

// Split a function type into its argument and result.
func IsFun(t Type) (a, b Type, ok bool) {
	if c, isCon := Expand(t).(*TCon); isCon && c.C.Tag == TCFun {
		return c.Args[0], c.Args[1], true
	}
	return nil, nil, false
}

// Split a tuple type into its element types.
func IsTuple(t Type) ([]Type, bool) {
	if c, isCon := Expand(t).(*TCon); isCon && c.C.Tag == TCTuple {
		return c.Args, true
	}
	return nil, false
}

// Get the fields of a record type.
func IsRec(t Type) (FieldMap, bool) {
	if r, isRec := Expand(t).(*TRec); isRec {
		return r.Fields, true
	}
	return FieldMap{}, false
}

// Get the value of a numeric literal type.
func IsNum(t Type) (int64, bool) {
	if c, isCon := Expand(t).(*TCon); isCon && c.C.Tag == TCNum {
		return c.C.N, true
	}
	return 0, false
}

// Check for the infinite numeric type.
func IsInf(t Type) bool {
	c, isCon := Expand(t).(*TCon)
	return isCon && c.C.Tag == TCInf
}

// Check for a (free or bound) type variable.
func IsVar(t Type) bool {
	switch Expand(t).(type) {
	case *TVFree, *TVBound:
		return true
	}
	return false
}

// KindOf computes the kind of a well-kinded type.
func KindOf(t Type) *Kind {
	switch t := t.(type) {
	case *TVFree:
		return t.K
	case *TVBound:
		return t.Param.K
	case *TRec, *TNewtype:
		return KType
	case *TUser:
		return KindOf(t.Body)
	case *TCon:
		k := t.C.Kind()
		for range t.Args {
			if k == nil || k.Tag != KindFun {
				return nil
			}
			k = k.To
		}
		return k
	}
	return nil
}

// Equal reports whether two types are syntactically equal, ignoring synonyms.
func Equal(a, b Type) bool {
	a, b = Expand(a), Expand(b)
	switch a := a.(type) {
	case *TVFree:
		b, ok := b.(*TVFree)
		return ok && a.ID == b.ID
	case *TVBound:
		b, ok := b.(*TVBound)
		return ok && a.Param.ID == b.Param.ID
	case *TCon:
		b, ok := b.(*TCon)
		return ok && a.C.Equal(b.C) && equalList(a.Args, b.Args)
	case *TNewtype:
		b, ok := b.(*TNewtype)
		return ok && a.NT.Name.ID == b.NT.Name.ID && equalList(a.Args, b.Args)
	case *TRec:
		b, ok := b.(*TRec)
		if !ok || !a.Fields.SameLabels(b.Fields) {
			return false
		}
		eq := true
		a.Fields.Range(func(l string, ta Type) bool {
			tb, _ := b.Fields.Get(l)
			eq = Equal(ta, tb)
			return eq
		})
		return eq
	}
	return false
}

func equalList(as, bs []Type) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !Equal(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// Rewrite rebuilds t bottom-up. When f returns ok, its result replaces the visited
// node and the node's children are not visited.
func Rewrite(t Type, f func(Type) (Type, bool)) Type {
	if r, ok := f(t); ok {
		return r
	}
	switch t := t.(type) {
	case *TCon:
		if len(t.Args) == 0 {
			return t
		}
		return &TCon{C: t.C, Args: rewriteList(t.Args, f)}
	case *TRec:
		return &TRec{Fields: t.Fields.Map(func(ft Type) Type { return Rewrite(ft, f) })}
	case *TUser:
		return &TUser{Name: t.Name, Args: rewriteList(t.Args, f), Body: Rewrite(t.Body, f)}
	case *TNewtype:
		return &TNewtype{NT: t.NT, Args: rewriteList(t.Args, f)}
	}
	return t
}

func rewriteList(ts []Type, f func(Type) (Type, bool)) []Type {
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = Rewrite(t, f)
	}
	return out
}

// Visit calls f for t and every type nested within it. If f returns false the
// children of the visited node are skipped.
func Visit(t Type, f func(Type) bool) {
	if !f(t) {
		return
	}
	switch t := t.(type) {
	case *TCon:
		for _, a := range t.Args {
			Visit(a, f)
		}
	case *TRec:
		t.Fields.Range(func(_ string, ft Type) bool {
			Visit(ft, f)
			return true
		})
	case *TUser:
		Visit(t.Body, f)
	case *TNewtype:
		for _, a := range t.Args {
			Visit(a, f)
		}
	}
}

// InstantiateBound replaces bound parameters according to m (keyed by parameter id).
func InstantiateBound(t Type, m map[int]Type) Type {
	if len(m) == 0 {
		return t
	}
	return Rewrite(t, func(t Type) (Type, bool) {
		if b, ok := t.(*TVBound); ok {
			if r, found := m[b.Param.ID]; found {
				return r, true
			}
			return t, true
		}
		return nil, false
	})
}
