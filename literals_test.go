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

	"github.com/stretchr/testify/require"

	"github.com/wdamron/dtinfer"
	"github.com/wdamron/dtinfer/ast"
	. "github.com/wdamron/dtinfer/construct"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// Split an elaborated primitive call into its head and type arguments.
func primCall(t *testing.T, e core.Expr) (names.Name, []string) {
	t.Helper()
	var targs []string
	for {
		switch x := e.(type) {
		case *core.EProofApp:
			e = x.Expr
			continue
		case *core.ETApp:
			targs = append([]string{types.TypeString(x.Type)}, targs...)
			e = x.Expr
			continue
		case *core.EVar:
			return x.Name, targs
		}
		t.Fatalf("not a primitive call: %T", e)
		return names.Name{}, nil
	}
}

func inferExpr(t *testing.T, f *fixture, e ast.Expr) *dtinfer.ExprOutput {
	t.Helper()
	out, err := dtinfer.InferExpr(context.Background(), f.in, e)
	require.NoError(t, err)
	return out
}

func TestFractionLiteral(t *testing.T) {
	f := newFixture()
	out := inferExpr(t, f, Frac(1, 2))
	require.Equal(t, "Rational", types.SchemaString(out.Schema))
	head, targs := primCall(t, out.Expr)
	require.Equal(t, f.p.Prims["fraction"].ID, head.ID)
	require.Equal(t, []string{"1", "2", "0", "Rational"}, targs)
}

func TestCharLiteral(t *testing.T) {
	f := newFixture()
	out := inferExpr(t, f, Char('a'))
	require.Equal(t, "[8]Bit", types.SchemaString(out.Schema))
	head, targs := primCall(t, out.Expr)
	require.Equal(t, f.p.Prims["number"].ID, head.ID)
	require.Equal(t, []string{"97", "[8]Bit"}, targs)
}

func TestStringLiteral(t *testing.T) {
	f := newFixture()
	out := inferExpr(t, f, String("hi"))
	require.Equal(t, "[2][8]Bit", types.SchemaString(out.Schema))
	list, ok := out.Expr.(*core.EList)
	require.True(t, ok, "strings are lists of characters")
	require.Len(t, list.Elems, 2)
	_, targs := primCall(t, list.Elems[1])
	require.Equal(t, []string{"105", "[8]Bit"}, targs)
}

func TestEnumerations(t *testing.T) {
	cases := []struct {
		prim string
		e    ast.Expr
		want string
	}{
		{"fromTo", FromTo(TNum(1), TNum(5)), "[5]Integer"},
		{"fromToLessThan", &ast.Range{First: TNum(1), Last: TNum(5), Strict: true}, "[4]Integer"},
		{"fromThenTo", &ast.Range{First: TNum(1), Next: TNum(3), Last: TNum(9)}, "[5]Integer"},
		{"fromToBy", &ast.Range{First: TNum(1), Last: TNum(9), Stride: TNum(2)}, "[5]Integer"},
		{"fromToByLessThan", &ast.Range{First: TNum(1), Last: TNum(9), Stride: TNum(2), Strict: true}, "[4]Integer"},
		{"fromToDownBy", &ast.Range{First: TNum(9), Last: TNum(1), Stride: TNum(2), Down: true}, "[5]Integer"},
		{"fromToDownByGreaterThan", &ast.Range{First: TNum(9), Last: TNum(1), Stride: TNum(2), Down: true, Strict: true}, "[4]Integer"},
		{"infFrom", &ast.InfFrom{First: Num(1)}, "[inf]Integer"},
		{"infFromThen", &ast.InfFrom{First: Num(1), Next: Num(3)}, "[inf]Integer"},
	}
	for _, c := range cases {
		t.Run(c.prim, func(t *testing.T) {
			f := newFixture()
			out := inferExpr(t, f, c.e)
			require.Equal(t, c.want, types.SchemaString(out.Schema))
			call := findExpr(out.Expr, func(e core.Expr) bool {
				v, ok := e.(*core.EVar)
				return ok && v.Name.ID == f.p.Prims[c.prim].ID
			})
			require.NotNil(t, call, "elaborates to %s", c.prim)
		})
	}
}

func TestEnumerationWithElementType(t *testing.T) {
	f := newFixture()
	out := inferExpr(t, f, &ast.Range{First: TNum(0), Last: TNum(3), Elem: TWord(TNum(4))})
	require.Equal(t, "[4][4]Bit", types.SchemaString(out.Schema))
	require.Empty(t, out.Warnings, "nothing left to default")
}

func TestComprehensionLengths(t *testing.T) {
	f := newFixture()
	x, y := f.ns.V("x"), f.ns.V("y")
	xs, ys := List(Num(1), Num(2), Num(3)), List(Num(1), Num(2))

	parallel := Comp(Tuple(Var(x), Var(y)), []ast.Match{From(PVar(x), xs)}, []ast.Match{From(PVar(y), ys)})
	require.Equal(t, "[2](Integer, Integer)", types.SchemaString(inferExpr(t, f, parallel).Schema))

	nested := Comp(Tuple(Var(x), Var(y)), []ast.Match{From(PVar(x), xs), From(PVar(y), ys)})
	require.Equal(t, "[6](Integer, Integer)", types.SchemaString(inferExpr(t, f, nested).Schema))
}

func TestComprehensionRepeatedName(t *testing.T) {
	f := newFixture()
	x := f.ns.V("x")
	e := Comp(Var(x), []ast.Match{From(PVar(x), List(Num(1)))}, []ast.Match{From(PVar(x), List(Num(2)))})
	_, err := dtinfer.InferExpr(context.Background(), f.in, e)
	var failure *dtinfer.Failure
	require.ErrorAs(t, err, &failure)
	require.True(t, hasError[*dtinfer.RepeatedDefinitions](failure))
}

func TestPrimitiveWithoutRequestedParam(t *testing.T) {
	f := newFixture()
	f.in.Prims = map[string]names.Name{}
	for k, v := range f.p.Prims {
		f.in.Prims[k] = v
	}
	f.in.Prims["fromTo"] = f.p.Prims["infFrom"]

	var ierr *dtinfer.InternalError
	func() {
		defer func() { ierr, _ = recover().(*dtinfer.InternalError) }()
		_, _ = dtinfer.InferExpr(context.Background(), f.in, FromTo(TNum(1), TNum(5)))
	}()
	require.NotNil(t, ierr)
	require.Contains(t, ierr.Msg, "has no type parameter")
}
