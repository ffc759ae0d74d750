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

package ast

// WalkExpr calls f for e and every expression nested within it, including the
// bodies of local bindings and comprehension generators.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Var, *Num, *Frac, *Char, *String, *Range, *TypeVal:
		f(e)

	case *Tuple:
		f(e)
		for _, el := range e.Elems {
			WalkExpr(el, f)
		}

	case *Record:
		f(e)
		for _, fe := range e.Fields {
			WalkExpr(fe.Value, f)
		}

	case *Sel:
		f(e)
		WalkExpr(e.Expr, f)

	case *Upd:
		f(e)
		WalkExpr(e.Record, f)
		for _, u := range e.Fields {
			WalkExpr(u.Value, f)
		}

	case *List:
		f(e)
		for _, el := range e.Elems {
			WalkExpr(el, f)
		}

	case *InfFrom:
		f(e)
		WalkExpr(e.First, f)
		WalkExpr(e.Next, f)

	case *Comp:
		f(e)
		WalkExpr(e.Result, f)
		for _, arm := range e.Arms {
			for _, m := range arm {
				switch m := m.(type) {
				case *MatchBind:
					WalkExpr(m.Expr, f)
				case *MatchLet:
					WalkExpr(m.Bind.Body, f)
				}
			}
		}

	case *App:
		f(e)
		WalkExpr(e.Fun, f)
		WalkExpr(e.Arg, f)

	case *AppT:
		f(e)
		WalkExpr(e.Fun, f)

	case *If:
		f(e)
		WalkExpr(e.Cond, f)
		WalkExpr(e.Then, f)
		WalkExpr(e.Else, f)

	case *Where:
		f(e)
		WalkExpr(e.Body, f)
		WalkDecls(e.Decls, f)

	case *Typed:
		f(e)
		WalkExpr(e.Expr, f)

	case *Fun:
		f(e)
		WalkExpr(e.Body, f)

	case *Located:
		f(e)
		WalkExpr(e.Expr, f)

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// WalkDecls walks the bodies of all value bindings in ds, including nested submodules.
func WalkDecls(ds []Decl, f func(Expr)) {
	for _, d := range ds {
		switch d := d.(type) {
		case *BindGroup:
			for _, b := range d.Binds {
				WalkExpr(b.Body, f)
			}
		case *Submodule:
			WalkDecls(d.Decls, f)
		}
	}
}

// FreeVars returns the ids of the variables referenced within e. Names are
// resolved and unique, so locally bound names are included; callers filter
// the result against the names they are interested in.
func FreeVars(e Expr) map[int]bool {
	refs := make(map[int]bool)
	WalkExpr(e, func(e Expr) {
		if v, ok := e.(*Var); ok {
			refs[v.Name.ID] = true
		}
	})
	return refs
}

// Unlocated strips source ranges from the outermost layer of e.
func Unlocated(e Expr) Expr {
	for {
		l, ok := e.(*Located)
		if !ok {
			return e
		}
		e = l.Expr
	}
}
