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

package construct

import (
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Prelude declares the primitives the checker calls for literals,
// enumerations and split patterns, plus a few arithmetic functions.
type Prelude struct {
	Names *Names
	Iface *core.Interface
	// Prims maps primitive identifiers to their names.
	Prims map[string]names.Name
	// NextTypeVar is the first id not used by the prelude's schema parameters.
	NextTypeVar int
}

type schemaBuilder struct {
	next   int
	params []*types.TParam
}

func (b *schemaBuilder) param(ident string, k *types.Kind) types.Type {
	n := names.Name{ID: b.next, Ident: ident, NS: names.NSType, System: true}
	p := &types.TParam{ID: b.next, K: k, Name: &n}
	b.next++
	b.params = append(b.params, p)
	return types.TBound(p)
}

func (b *schemaBuilder) schema(props []types.Type, body types.Type) *types.Schema {
	sc := &types.Schema{Params: b.params, Props: props, Body: body}
	b.params = nil
	return sc
}

// NewPrelude builds the prelude. Value names and schema parameters are
// numbered from start.
func NewPrelude(start int) *Prelude {
	ns := NewNames("Prelude", start)
	b := &schemaBuilder{next: start + 1000}
	p := &Prelude{
		Names: ns,
		Iface: &core.Interface{
			Name:      ns.T("Prelude"),
			TySyns:    map[int]*types.TySyn{},
			Newtypes:  map[int]*types.Newtype{},
			PrimTypes: map[int]*types.AbstractType{},
			Vars:      map[int]*types.Schema{},
			Names:     map[int]names.Name{},
		},
		Prims: map[string]names.Name{},
	}
	add := func(ident string, sc *types.Schema) {
		n := ns.V(ident)
		p.Iface.Vars[n.ID] = sc
		p.Iface.Names[n.ID] = n
		p.Prims[ident] = n
	}
	lit := func(n, a types.Type) types.Type { return types.PClass(types.PCLiteral, n, a) }
	litLT := func(n, a types.Type) types.Type { return types.PClass(types.PCLiteralLessThan, n, a) }
	sub := func(a, c types.Type) types.Type { return types.TFunApp(types.TFSub, a, c) }
	one := types.TNum(1)

	{
		val, rep := b.param("val", types.KNum), b.param("rep", types.KType)
		add("number", b.schema([]types.Type{lit(val, rep)}, rep))
	}
	{
		m, n, r, a := b.param("m", types.KNum), b.param("n", types.KNum), b.param("r", types.KNum), b.param("a", types.KType)
		add("fraction", b.schema([]types.Type{types.PClass(types.PCFLiteral, m, n, r, a)}, a))
	}
	{
		front, back, a := b.param("front", types.KNum), b.param("back", types.KNum), b.param("a", types.KType)
		add("splitAt", b.schema([]types.Type{types.PFin(front)},
			types.TFun(types.TSeq(types.TFunApp(types.TFAdd, front, back), a), types.TTuple(types.TSeq(front, a), types.TSeq(back, a)))))
	}
	{
		first, last, a := b.param("first", types.KNum), b.param("last", types.KNum), b.param("a", types.KType)
		add("fromTo", b.schema(
			[]types.Type{types.PFin(last), types.PGeq(last, first), lit(last, a)},
			types.TSeq(types.TFunApp(types.TFAdd, one, sub(last, first)), a)))
	}
	{
		first, bound, a := b.param("first", types.KNum), b.param("bound", types.KNum), b.param("a", types.KType)
		add("fromToLessThan", b.schema(
			[]types.Type{types.PFin(first), types.PGeq(bound, first), litLT(bound, a)},
			types.TSeq(sub(bound, first), a)))
	}
	{
		first, next, last := b.param("first", types.KNum), b.param("next", types.KNum), b.param("last", types.KNum)
		a, n := b.param("a", types.KType), b.param("len", types.KNum)
		add("fromThenTo", b.schema([]types.Type{
			types.PFin(first), types.PFin(next), types.PFin(last),
			lit(first, a), lit(next, a), lit(last, a),
			types.PNeq(first, next),
			types.PEqual(types.TFunApp(types.TFLenFromThenTo, first, next, last), n),
		}, types.TSeq(n, a)))
	}
	{
		first, last, stride, a := b.param("first", types.KNum), b.param("last", types.KNum), b.param("stride", types.KNum), b.param("a", types.KType)
		add("fromToBy", b.schema(
			[]types.Type{types.PFin(last), types.PFin(stride), types.PGeq(stride, one), types.PGeq(last, first), lit(last, a)},
			types.TSeq(types.TFunApp(types.TFAdd, one, types.TFunApp(types.TFDiv, sub(last, first), stride)), a)))
	}
	{
		first, bound, stride, a := b.param("first", types.KNum), b.param("bound", types.KNum), b.param("stride", types.KNum), b.param("a", types.KType)
		add("fromToByLessThan", b.schema(
			[]types.Type{types.PFin(first), types.PFin(stride), types.PGeq(stride, one), types.PGeq(bound, first), litLT(bound, a)},
			types.TSeq(types.TFunApp(types.TFCeilDiv, sub(bound, first), stride), a)))
	}
	{
		first, last, stride, a := b.param("first", types.KNum), b.param("last", types.KNum), b.param("stride", types.KNum), b.param("a", types.KType)
		add("fromToDownBy", b.schema(
			[]types.Type{types.PFin(first), types.PFin(stride), types.PGeq(stride, one), types.PGeq(first, last), lit(first, a)},
			types.TSeq(types.TFunApp(types.TFAdd, one, types.TFunApp(types.TFDiv, sub(first, last), stride)), a)))
	}
	{
		first, bound, stride, a := b.param("first", types.KNum), b.param("bound", types.KNum), b.param("stride", types.KNum), b.param("a", types.KType)
		add("fromToDownByGreaterThan", b.schema(
			[]types.Type{types.PFin(first), types.PFin(stride), types.PGeq(stride, one), types.PGeq(first, bound), lit(first, a)},
			types.TSeq(types.TFunApp(types.TFCeilDiv, sub(first, bound), stride), a)))
	}
	{
		a := b.param("a", types.KType)
		add("infFrom", b.schema([]types.Type{types.PClass(types.PCIntegral, a)}, types.TFun(a, types.TSeq(types.TInf, a))))
	}
	{
		a := b.param("a", types.KType)
		add("infFromThen", b.schema([]types.Type{types.PClass(types.PCIntegral, a)}, types.TFuns([]types.Type{a, a}, types.TSeq(types.TInf, a))))
	}
	{
		a := b.param("a", types.KType)
		add("+", b.schema([]types.Type{types.PClass(types.PCRing, a)}, types.TFuns([]types.Type{a, a}, a)))
	}
	{
		a := b.param("a", types.KType)
		add("==", b.schema([]types.Type{types.PClass(types.PCEq, a)}, types.TFuns([]types.Type{a, a}, types.TBit)))
	}
	{
		front, back, a := b.param("front", types.KNum), b.param("back", types.KNum), b.param("a", types.KType)
		add("#", b.schema([]types.Type{types.PFin(front)},
			types.TFuns([]types.Type{types.TSeq(front, a), types.TSeq(back, a)}, types.TSeq(types.TFunApp(types.TFAdd, front, back), a))))
	}
	{
		n, a, c := b.param("n", types.KNum), b.param("a", types.KType), b.param("b", types.KType)
		add("length", b.schema([]types.Type{types.PFin(n), lit(n, c)}, types.TFun(types.TSeq(n, a), c)))
	}
	add("True", b.schema(nil, types.TBit))
	p.NextTypeVar = b.next
	return p
}
