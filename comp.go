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

package dtinfer

import (
	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/types"
)

// Check a comprehension. Parallel arms are independent and the result is as
// long as the shortest arm; the generators of one arm are nested, so an arm is
// as long as the product of its generators.
func (m *inferM) checkComp(e *ast.Comp, exp expected) core.Expr {
	n, elem := m.expectSeq(exp)
	arms := make([][]core.Match, len(e.Arms))
	var total types.Type
	var vars []patVar
	seen := make(map[int]bool)
	for i, arm := range e.Arms {
		ms, armLen, vs := m.checkArm(arm)
		arms[i] = ms
		for _, v := range vs {
			if seen[v.name.ID] {
				m.recordError(&RepeatedDefinitions{Name: v.name})
			}
			seen[v.name.ID] = true
		}
		vars = append(vars, vs...)
		if total == nil {
			total = armLen
		} else {
			total = types.TFunApp(types.TFMin, total, armLen)
		}
	}
	if total == nil {
		total = types.TNum(1)
	}
	m.unifyFrom(CtComprehension{}, expected{n, types.LenOfSeq{}}, total)

	stashed := 0
	for _, v := range vars {
		stashed += m.declareMono(v.name, v.typ)
	}
	result := m.checkE(e.Result, expected{elem, types.TypeOfSeqElement{}})
	m.unstash(stashed)
	return &core.EComp{Len: n, Elem: elem, Result: result, Arms: arms}
}

// Check one arm. Each match sees the variables bound before it.
func (m *inferM) checkArm(ms []ast.Match) ([]core.Match, types.Type, []patVar) {
	var out []core.Match
	var vars []patVar
	var length types.Type
	stashed := 0
	for _, match := range ms {
		switch match := match.(type) {
		case *ast.MatchBind:
			n := m.freshType(types.KNum, types.LenOfCompGen{})
			a := m.freshType(types.KType, types.GeneratorOfListComp{})
			src := m.checkE(match.Expr, expected{types.TSeq(n, a), types.GeneratorOfListComp{}})
			x, ds, vs := m.checkPat(match.Pat, expected{a, types.TypeOfSeqElement{}})
			out = append(out, &core.From{Name: x, Len: n, Type: a, Expr: src})
			for _, d := range ds {
				out = append(out, &core.Let{Decl: d})
			}
			for _, v := range vs {
				stashed += m.declareMono(v.name, v.typ)
			}
			vars = append(vars, vs...)
			if length == nil {
				length = n
			} else {
				length = types.TFunApp(types.TFMul, length, n)
			}

		case *ast.MatchLet:
			d := m.checkMonoBind(match.Bind)
			out = append(out, &core.Let{Decl: d})
			stashed += m.declare(d.Name, &ExtVar{Schema: d.Schema})
			vars = append(vars, patVar{d.Name, d.Schema.Body})

		default:
			panic("unknown match type")
		}
	}
	m.unstash(stashed)
	if length == nil {
		length = types.TNum(1)
	}
	return out, length, vars
}
