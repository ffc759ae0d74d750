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
	"strconv"

	set "github.com/hashicorp/go-set/v3"

	"github.com/wdamron/dtinfer/names"
)

// Unification variable
type TVFree struct {
	ID int
	K  *Kind
	// Ids of the bound parameters the variable may be unified with types mentioning.
	Scope *set.Set[int]
	Info  TVarInfo
}

// Schema parameter (bound type-variable)
type TParam struct {
	ID int
	K  *Kind
	// Name is nil for machine-generated parameters.
	Name *names.Name
	Info TVarInfo
}

// Occurrence of a bound parameter within a type
type TVBound struct {
	Param *TParam
}

// TVarInfo records where a type-variable came from. It is used only for diagnostics.
type TVarInfo struct {
	Range  names.Range
	Source TypeSource
}

// Create a unification variable with the given allowed-dependency set.
func NewFree(id int, k *Kind, scope []*TParam, info TVarInfo) *TVFree {
	s := set.New[int](len(scope))
	for _, p := range scope {
		s.Insert(p.ID)
	}
	return &TVFree{ID: id, K: k, Scope: s, Info: info}
}

// MayMention reports whether v is allowed to be unified with a type mentioning p.
func (v *TVFree) MayMention(p *TParam) bool { return v.Scope != nil && v.Scope.Contains(p.ID) }

// DisplayName is used when printing parameters.
func (p *TParam) DisplayName() string {
	if p.Name != nil {
		return p.Name.Ident
	}
	return "a" + strconv.Itoa(p.ID)
}

// TypeSource describes why a type-variable was introduced. The set of sources is closed.
type TypeSource interface {
	Describe() string
	typeSource()
}

type (
	// Type parameter of a module.
	TVFromModParam struct{ Name names.Name }
	// Type written as `_`.
	TypeWildCard struct{}
	// Type of a record field.
	TypeOfRecordField struct{ Label string }
	// Type of a tuple component.
	TypeOfTupleField struct{ Index int }
	// Type of a sequence element.
	TypeOfSeqElement struct{}
	// Length of a sequence.
	LenOfSeq struct{}
	// Type argument instantiated by name.
	TypeParamInstNamed struct {
		Fun   names.Name
		Param string
	}
	// Type argument instantiated by position.
	TypeParamInstPos struct {
		Fun   names.Name
		Index int
	}
	// Type of a definition.
	DefinitionOf struct{ Name names.Name }
	// Length of a comprehension generator.
	LenOfCompGen struct{}
	// Type of a function argument.
	TypeOfArg struct{ Index int }
	// Type of a function result.
	TypeOfRes struct{}
	// Type of an applied function.
	FunApp struct{}
	// Type of an existential type-variable.
	TypeOfExistential struct{ Name string }
	// Element type of a comprehension generator.
	GeneratorOfListComp struct{}
	// Placeholder introduced after a type error.
	TypeErrorPlaceHolder struct{}
)

func (s TVFromModParam) Describe() string { return "module parameter " + s.Name.String() }
func (TypeWildCard) Describe() string     { return "type wildcard (_)" }
func (s TypeOfRecordField) Describe() string {
	return "type of field " + strconv.Quote(s.Label)
}
func (s TypeOfTupleField) Describe() string { return "type of " + ordinal(s.Index) + " tuple field" }
func (TypeOfSeqElement) Describe() string   { return "type of sequence member" }
func (LenOfSeq) Describe() string           { return "length of sequence" }
func (s TypeParamInstNamed) Describe() string {
	return "type argument " + s.Param + " of " + s.Fun.String()
}
func (s TypeParamInstPos) Describe() string {
	return ordinal(s.Index) + " type argument of " + s.Fun.String()
}
func (s DefinitionOf) Describe() string       { return "the type of " + s.Name.String() }
func (LenOfCompGen) Describe() string         { return "length of comprehension generator" }
func (s TypeOfArg) Describe() string          { return "type of " + ordinal(s.Index) + " argument" }
func (TypeOfRes) Describe() string            { return "type of function result" }
func (FunApp) Describe() string               { return "function call" }
func (s TypeOfExistential) Describe() string  { return "existential type " + s.Name }
func (GeneratorOfListComp) Describe() string  { return "generator in a comprehension" }
func (TypeErrorPlaceHolder) Describe() string { return "type error place-holder" }
func (TVFromModParam) typeSource()            {}
func (TypeWildCard) typeSource()              {}
func (TypeOfRecordField) typeSource()         {}
func (TypeOfTupleField) typeSource()          {}
func (TypeOfSeqElement) typeSource()          {}
func (LenOfSeq) typeSource()                  {}
func (TypeParamInstNamed) typeSource()        {}
func (TypeParamInstPos) typeSource()          {}
func (DefinitionOf) typeSource()              {}
func (LenOfCompGen) typeSource()              {}
func (TypeOfArg) typeSource()                 {}
func (TypeOfRes) typeSource()                 {}
func (FunApp) typeSource()                    {}
func (TypeOfExistential) typeSource()         {}
func (GeneratorOfListComp) typeSource()       {}
func (TypeErrorPlaceHolder) typeSource()      {}

func ordinal(i int) string {
	n := i + 1
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return strconv.Itoa(n) + suffix
}
