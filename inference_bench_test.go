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

package dtinfer_test

import (
	"context"
	"testing"

	"github.com/wdamron/dtinfer"
	. "github.com/wdamron/dtinfer/construct"

	"github.com/wdamron/dtinfer/ast"
)

func BenchmarkMutuallyRecursiveGroup(b *testing.B) {
	f := newFixture()
	plus, eq, tru := f.p.Prims["+"], f.p.Prims["=="], f.p.Prims["True"]
	id, even, odd, use := f.ns.V("id"), f.ns.V("even"), f.ns.V("odd"), f.ns.V("use")
	x, y, z := f.ns.V("x"), f.ns.V("y"), f.ns.V("z")

	ds := dtinfer.GroupDecls([]ast.Decl{
		Group(false,
			Bind(id, []ast.Pattern{PVar(x)}, Var(x)),
			Bind(even, []ast.Pattern{PVar(y)}, If(App(Var(eq), Var(y), Num(0)), Var(tru), App(Var(odd), App(Var(plus), Var(y), Num(1))))),
			Bind(odd, []ast.Pattern{PVar(z)}, If(App(Var(eq), Var(z), Num(1)), Var(tru), App(Var(even), App(Var(id), Var(z))))),
			Bind(use, nil, Tuple(App(Var(even), Num(4)), Record(Field("odd", Var(odd)), Field("id", Var(id))))),
		),
	})
	mod := f.module(ds...)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dtinfer.InferModule(ctx, f.in, mod); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSplitAndSelect(b *testing.B) {
	f := newFixture()
	hi, pair, a, c, r := f.ns.V("hi"), f.ns.V("pair"), f.ns.V("a"), f.ns.V("c"), f.ns.V("r")
	sig := Schema(nil, nil, TFun(TWord(TNum(16)), TWord(TNum(8))))
	rec := TRecord(TField("lo", TWord(TNum(8))), TField("hi", TWord(TNum(8))))
	mod := f.module(
		Group(false, SigBind(hi, sig, []ast.Pattern{PSplit(PVar(a), PVar(c))}, Var(a))),
		Group(false, SigBind(pair, Schema(nil, nil, TFun(rec, TWord(TNum(8)))), []ast.Pattern{PVar(r)}, Sel(Var(r), "hi"))),
	)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dtinfer.InferModule(ctx, f.in, mod); err != nil {
			b.Fatal(err)
		}
	}
}
