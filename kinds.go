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
	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// kindM checks surface types. It shares the run's fresh names, errors and
// source ranges, and keeps its own map of type parameters whose kinds may not
// be known yet: a parameter's K stays nil until a use determines it.
type kindM struct {
	m         *inferM
	params    map[int]*types.TParam
	allowWild bool
	goals     []Goal
}

func (m *inferM) newKindM(allowWild bool) *kindM {
	return &kindM{m: m, params: make(map[int]*types.TParam), allowWild: allowWild}
}

// Declare type parameters local to a declaration. Parameters with no declared
// kind get a nil kind, fixed later by their uses.
func (km *kindM) declare(ps []ast.TParam, src func(n names.Name) types.TypeSource) []*types.TParam {
	out := make([]*types.TParam, len(ps))
	for i, p := range ps {
		name := p.Name
		if prev, ok := km.m.tvarByIdent(name.Ident); ok && prev.Name != nil && prev.Name.ID != name.ID {
			km.m.recordWarning(&Shadowing{What: "type variable", Name: *prev.Name})
		}
		tp := km.m.vt.NewParam(p.Kind, &name, types.TVarInfo{Range: name.Range, Source: src(name)})
		km.params[name.ID] = tp
		out[i] = tp
	}
	return out
}

// Default parameters whose kind was never determined to `*`.
func defaultKinds(ps []*types.TParam) {
	for _, p := range ps {
		if p.K == nil {
			p.K = types.KType
		}
	}
}

// Hand the goals emitted while checking types to the outer goal store.
func (km *kindM) flush(src ConstraintSource) {
	for _, g := range km.goals {
		km.m.goals = append(km.m.goals, Goal{Source: src, Range: g.Range, Prop: g.Prop})
	}
	km.goals = nil
}

func (km *kindM) emit(src ConstraintSource, props ...types.Type) {
	for _, p := range types.SplitAnd(props...) {
		km.goals = append(km.goals, Goal{Source: src, Range: km.m.rng, Prop: p})
	}
}

// Check a type against an expected kind. A nil kind is inferred.
func (km *kindM) check(t ast.Type, k *types.Kind) types.Type {
	ty, actual := km.infer(t, k)
	if k == nil || actual == nil {
		return ty
	}
	if !k.Equal(actual) {
		km.m.recordError(&KindMismatch{Expected: k, Actual: actual})
		return km.m.freshType(k, types.TypeErrorPlaceHolder{})
	}
	return ty
}

// Infer the kind of a type. The hint is the expected kind, when known; it
// fixes the kinds of parameters and wildcards.
func (km *kindM) infer(t ast.Type, hint *types.Kind) (types.Type, *types.Kind) {
	m := km.m
	switch t := t.(type) {
	case *ast.TLocated:
		defer m.withRange(t.Range)()
		return km.infer(t.Type, hint)

	case *ast.TBit:
		return types.TBit, types.KType

	case *ast.TNum:
		return types.TNum(t.N), types.KNum

	case *ast.TChar:
		return types.TNum(int64(t.C)), types.KNum

	case *ast.TSeq:
		n := km.check(t.Len, types.KNum)
		return types.TSeq(n, km.check(t.Elem, types.KType)), types.KType

	case *ast.TFun:
		return types.TFun(km.check(t.From, types.KType), km.check(t.To, types.KType)), types.KType

	case *ast.TTuple:
		ts := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			ts[i] = km.check(e, types.KType)
		}
		return types.TTuple(ts...), types.KType

	case *ast.TRecord:
		fields := make([]types.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = types.Field{Label: f.Label, Type: km.check(f.Type, types.KType)}
		}
		return types.TRecord(types.NewFieldMap(fields...)), types.KType

	case *ast.TWild:
		k := hint
		if k == nil {
			k = types.KType
		}
		if !km.allowWild {
			m.recordError(&UnexpectedTypeWildCard{})
		}
		return m.freshType(k, types.TypeWildCard{}), k

	case *ast.TExistential:
		k := hint
		if k == nil {
			k = types.KType
		}
		ty := km.existential(t.Ident, k)
		return ty, types.KindOf(ty)

	case *ast.TBuiltin:
		return km.builtin(t, hint)

	case *ast.TUser:
		return km.user(t, hint)
	}
	panic("unknown type: " + t.TypeName())
}

func (km *kindM) args(name names.Name, k *types.Kind, args []ast.Type) ([]types.Type, *types.Kind, bool) {
	if k.Arity() != len(args) {
		km.m.recordError(&TypeArityMismatch{Name: name, Expected: k.Arity(), Actual: len(args)})
		return nil, nil, false
	}
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = km.check(a, k.From)
		k = k.To
	}
	return out, k, true
}

func (km *kindM) builtin(t *ast.TBuiltin, hint *types.Kind) (types.Type, *types.Kind) {
	c := types.TC{Tag: t.Tag}
	args, k, ok := km.args(names.Name{Ident: c.String()}, c.Kind(), t.Args)
	if !ok {
		return km.placeholder(hint)
	}
	km.partial(c.Tag, args)
	return &types.TCon{C: c, Args: args}, k
}

// Partial type functions are only defined under side conditions, which become goals.
func (km *kindM) partial(tag types.TCTag, args []types.Type) {
	src := CtPartialTypeFun{Fun: types.TC{Tag: tag}.String()}
	switch tag {
	case types.TFSub:
		km.emit(src, types.PGeq(args[0], args[1]), types.PFin(args[1]))
	case types.TFDiv, types.TFMod, types.TFCeilDiv, types.TFCeilMod:
		km.emit(src, types.PFin(args[0]), types.PGeq(args[1], types.TNum(1)))
	case types.TFLenFromThenTo:
		km.emit(src, types.PFin(args[0]), types.PFin(args[1]), types.PFin(args[2]), types.PNeq(args[0], args[1]))
	}
}

func (km *kindM) placeholder(hint *types.Kind) (types.Type, *types.Kind) {
	k := hint
	if k == nil {
		k = types.KType
	}
	return km.m.freshType(k, types.TypeErrorPlaceHolder{}), k
}

func (km *kindM) user(t *ast.TUser, hint *types.Kind) (types.Type, *types.Kind) {
	m := km.m
	id := t.Name.ID

	// local parameters, whose kinds may still be open
	if p, ok := km.params[id]; ok {
		if len(t.Args) > 0 {
			m.recordError(&TypeArityMismatch{Name: t.Name, Expected: 0, Actual: len(t.Args)})
			return km.placeholder(hint)
		}
		if p.K == nil && hint != nil {
			p.K = hint
		}
		return types.TBound(p), p.K
	}
	if p, ok := m.tvars[id]; ok && len(t.Args) == 0 {
		return types.TBound(p), p.K
	}
	if pt, ok := m.lookupParamType(id); ok && len(t.Args) == 0 {
		return types.TBound(pt.Param), pt.Param.K
	}

	if ts, ok := m.lookupTySyn(id); ok {
		args, k, ok := km.args(t.Name, ts.Kind(), t.Args)
		if !ok {
			return km.placeholder(hint)
		}
		inst := make(map[int]types.Type, len(args))
		for i, p := range ts.Params {
			inst[p.ID] = args[i]
		}
		for _, p := range ts.Props {
			km.emit(CtInst{Name: ts.Name}, types.InstantiateBound(p, inst))
		}
		return &types.TUser{Name: ts.Name, Args: args, Body: types.InstantiateBound(ts.Body, inst)}, k
	}
	if nt, ok := m.lookupNewtype(id); ok {
		args, k, ok := km.args(t.Name, nt.Kind(), t.Args)
		if !ok {
			return km.placeholder(hint)
		}
		inst := make(map[int]types.Type, len(args))
		for i, p := range nt.Params {
			inst[p.ID] = args[i]
		}
		for _, p := range nt.Props {
			km.emit(CtInst{Name: nt.Name}, types.InstantiateBound(p, inst))
		}
		return &types.TNewtype{NT: nt, Args: args}, k
	}
	if at, ok := m.lookupPrimType(id); ok {
		args, k, ok := km.args(t.Name, at.K, t.Args)
		if !ok {
			return km.placeholder(hint)
		}
		for _, p := range at.Props {
			km.emit(CtInst{Name: at.Name}, p)
		}
		return &types.TCon{C: types.TC{Tag: types.TCAbstract, Abstract: at}, Args: args}, k
	}
	panicf("type not in scope:", t.Name.String())
	return nil, nil
}

// Resolve an existential type variable in the open existential scopes. The
// first use creates it in the innermost scope.
func (km *kindM) existential(ident string, k *types.Kind) types.Type {
	m := km.m
	if len(m.exist) == 0 {
		m.recordError(&UndefinedExistential{Ident: ident})
		return m.freshType(k, types.TypeErrorPlaceHolder{})
	}
	for i := len(m.exist) - 1; i >= 0; i-- {
		if t, ok := m.exist[i][ident]; ok {
			return t
		}
	}
	if p, ok := m.tvarByIdent(ident); ok && p.Name != nil {
		m.recordWarning(&Shadowing{What: "existential type variable", Name: *p.Name})
	}
	t := m.freshType(k, types.TypeOfExistential{Name: ident})
	m.exist[len(m.exist)-1][ident] = t
	return t
}

func (m *inferM) pushExistentials() { m.exist = append(m.exist, make(map[string]types.Type)) }

func (m *inferM) popExistentials() { m.exist = m.exist[:len(m.exist)-1] }

// Check a type written in an expression or pattern, where wildcards are allowed.
func (m *inferM) checkType(t ast.Type, k *types.Kind) types.Type {
	km := m.newKindM(true)
	ty := km.check(t, k)
	km.flush(CtExactType{})
	return ty
}

// Check a signature, returning a closed schema.
func (m *inferM) checkSchema(s *ast.Schema) *types.Schema {
	defer m.withRange(s.Range)()
	km := m.newKindM(false)
	params := km.declare(s.Params, func(n names.Name) types.TypeSource { return types.DefinitionOf{Name: n} })
	props := make([]types.Type, 0, len(s.Props))
	for _, p := range s.Props {
		props = append(props, types.SplitAnd(km.check(p, types.KProp))...)
	}
	body := km.check(s.Body, types.KType)
	defaultKinds(params)
	// side conditions of partial type functions become part of the signature
	for _, g := range km.goals {
		props = append(props, g.Prop)
	}
	km.goals = nil
	return &types.Schema{Params: params, Props: props, Body: body}
}
