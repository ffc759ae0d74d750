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
	"sort"
	"strconv"
	"strings"

	"github.com/wdamron/dtinfer/names"
	"github.com/wdamron/dtinfer/types"
)

// TypeError is a user-facing problem found during inference. The set of
// concrete errors is closed.
type TypeError interface {
	error
	typeError()
}

// Diagnostic pairs an error with the source range it was found at.
type Diagnostic struct {
	Range names.Range
	Err   TypeError
}

func (d Diagnostic) String() string { return d.Range.String() + ": " + d.Err.Error() }

type (
	// Expected and actual types do not match.
	TypeMismatch struct {
		Source   types.TypeSource
		Expected types.Type
		Actual   types.Type
	}
	// Kinds do not match.
	KindMismatch struct {
		Source   types.TypeSource
		Expected *types.Kind
		Actual   *types.Kind
	}
	// A type would have to contain itself.
	RecursiveType struct {
		Source   types.TypeSource
		Expected types.Type
		Actual   types.Type
	}
	// A type mentions type parameters outside of their scope.
	TypeVariableEscaped struct {
		Source types.TypeSource
		Type   types.Type
		Params []*types.TParam
	}
	// Goals which could not be proved.
	UnsolvedGoals struct {
		Goals []Goal
	}
	// A goal which can never hold.
	UnsolvableGoal struct {
		Goal Goal
	}
	// Type variables which could not be resolved, even after defaulting.
	AmbiguousType struct {
		Names []names.Name
		Vars  []*types.TVFree
	}
	// Too many positional explicit type arguments.
	TooManyPositionalTypeParams struct {
		Fun names.Name
	}
	// Explicit type arguments for a value without a known schema.
	TooManyTypeParams struct {
		Extra int
		Kind  *types.Kind
	}
	// Named type argument which the schema does not declare.
	UndefinedTypeParam struct {
		Fun  names.Name
		Name string
	}
	// Positional and named explicit type arguments in one application.
	CannotMixPositionalAndNamedTypeParams struct{}
	// Wrong number of arguments for a type synonym, newtype or primitive type.
	TypeArityMismatch struct {
		Name     names.Name
		Expected int
		Actual   int
	}
	// Use of `_` where a type must be written out.
	UnexpectedTypeWildCard struct{}
	// Existential type variable referenced outside of any function body.
	UndefinedExistential struct {
		Ident string
	}
	// A name bound twice in one comprehension.
	RepeatedDefinitions struct {
		Name names.Name
	}
	// Selection of a field which the type does not have.
	MissingField struct {
		Sel  types.Selector
		Type types.Type
	}
)

func (e *TypeMismatch) Error() string {
	return "type mismatch" + srcSuffix(e.Source) + ": expected " + types.TypeString(e.Expected) + ", got " + types.TypeString(e.Actual)
}

func (e *KindMismatch) Error() string {
	return "kind mismatch" + srcSuffix(e.Source) + ": expected " + e.Expected.String() + ", got " + e.Actual.String()
}

func (e *RecursiveType) Error() string {
	return "matching would result in an infinite type" + srcSuffix(e.Source) + ": " + types.TypeString(e.Expected) + " ~ " + types.TypeString(e.Actual)
}

func (e *TypeVariableEscaped) Error() string {
	ps := make([]string, len(e.Params))
	for i, p := range e.Params {
		ps[i] = p.DisplayName()
	}
	return "the type " + types.TypeString(e.Type) + " is not sufficiently polymorphic: it cannot depend on " + strings.Join(ps, ", ")
}

func (e *UnsolvedGoals) Error() string {
	gs := make([]string, len(e.Goals))
	for i, g := range e.Goals {
		gs[i] = g.String()
	}
	return "unsolved constraints: " + strings.Join(gs, "; ")
}

func (e *UnsolvableGoal) Error() string { return "unsolvable constraint: " + e.Goal.String() }

func (e *AmbiguousType) Error() string {
	vs := make([]string, len(e.Vars))
	for i, v := range e.Vars {
		vs[i] = types.TypeString(v) + " (" + describeSource(v.Info.Source) + ")"
	}
	s := "ambiguous type: " + strings.Join(vs, ", ")
	if len(e.Names) > 0 {
		ns := make([]string, len(e.Names))
		for i, n := range e.Names {
			ns[i] = n.String()
		}
		s += " in the definition of " + strings.Join(ns, ", ")
	}
	return s
}

func (e *TooManyPositionalTypeParams) Error() string {
	return "too many positional type arguments for " + e.Fun.String()
}

func (e *TooManyTypeParams) Error() string {
	return strconv.Itoa(e.Extra) + " unexpected type argument(s) of kind " + e.Kind.String()
}

func (e *UndefinedTypeParam) Error() string {
	return e.Fun.String() + " has no type parameter named " + e.Name
}

func (*CannotMixPositionalAndNamedTypeParams) Error() string {
	return "named and positional type arguments may not be combined"
}

func (e *TypeArityMismatch) Error() string {
	return e.Name.String() + " expects " + strconv.Itoa(e.Expected) + " type argument(s), got " + strconv.Itoa(e.Actual)
}

func (*UnexpectedTypeWildCard) Error() string { return "wildcard types are not allowed here" }

func (e *UndefinedExistential) Error() string {
	return "undefined existential type variable " + e.Ident
}

func (e *RepeatedDefinitions) Error() string {
	return e.Name.String() + " is defined more than once in the same comprehension"
}

func (e *MissingField) Error() string {
	return "type " + types.TypeString(e.Type) + " has no field " + e.Sel.String()
}

func (*TypeMismatch) typeError()                          {}
func (*KindMismatch) typeError()                          {}
func (*RecursiveType) typeError()                         {}
func (*TypeVariableEscaped) typeError()                   {}
func (*UnsolvedGoals) typeError()                         {}
func (*UnsolvableGoal) typeError()                        {}
func (*AmbiguousType) typeError()                         {}
func (*TooManyPositionalTypeParams) typeError()           {}
func (*TooManyTypeParams) typeError()                     {}
func (*UndefinedTypeParam) typeError()                    {}
func (*CannotMixPositionalAndNamedTypeParams) typeError() {}
func (*TypeArityMismatch) typeError()                     {}
func (*UnexpectedTypeWildCard) typeError()                {}
func (*UndefinedExistential) typeError()                  {}
func (*RepeatedDefinitions) typeError()                   {}
func (*MissingField) typeError()                          {}

func srcSuffix(s types.TypeSource) string {
	if s == nil {
		return ""
	}
	return " (" + s.Describe() + ")"
}

func describeSource(s types.TypeSource) string {
	if s == nil {
		return "unknown"
	}
	return s.Describe()
}

// Warning is a non-fatal observation. The set of warnings is closed.
type Warning interface {
	String() string
	warning()
}

// WarningDiag pairs a warning with its source range.
type WarningDiag struct {
	Range   names.Range
	Warning Warning
}

type (
	// A type variable was defaulted to a concrete type.
	DefaultingTo struct {
		Var  *types.TVFree
		Type types.Type
	}
	// A declaration shadows a visible name.
	Shadowing struct {
		What string
		Name names.Name
	}
)

func (w *DefaultingTo) String() string {
	return "defaulting " + describeSource(w.Var.Info.Source) + " to " + types.TypeString(w.Type)
}

func (w *Shadowing) String() string { return "this " + w.What + " shadows " + w.Name.String() }

func (*DefaultingTo) warning() {}
func (*Shadowing) warning()    {}

// Failure is returned when a run records at least one error. Errors and
// warnings are ordered by source position.
type Failure struct {
	Errors   []Diagnostic
	Warnings []WarningDiag
}

func (f *Failure) Error() string {
	lines := make([]string, len(f.Errors))
	for i, d := range f.Errors {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

func sortDiagnostics(errs []Diagnostic, warns []WarningDiag) {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Range.Less(errs[j].Range) })
	sort.SliceStable(warns, func(i, j int) bool { return warns[i].Range.Less(warns[j].Range) })
}

// InternalError is the panic value for violated invariants. It indicates a bug
// in the checker or in an earlier phase, never a problem with the program.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

func panicf(msg string, args ...string) {
	panic(&InternalError{Msg: msg + " " + strings.Join(args, " ")})
}

// ConstraintSource records why a goal was emitted. The set of sources is closed.
type ConstraintSource interface {
	Describe() string
	constraintSource()
}

type (
	CtComprehension  struct{}
	CtSplitPat       struct{}
	CtTypeSig        struct{ Name names.Name }
	CtInst           struct{ Name names.Name }
	CtSelector       struct{}
	CtExactType      struct{}
	CtEnumeration    struct{}
	CtPartialTypeFun struct{ Fun string }
	CtImprovement    struct{}
	CtPattern        struct{ What string }
	CtModuleParam    struct{}
	CtLiteral        struct{}
)

func (CtComprehension) Describe() string    { return "list comprehension" }
func (CtSplitPat) Describe() string         { return "split (#) pattern" }
func (s CtTypeSig) Describe() string        { return "type signature of " + s.Name.String() }
func (s CtInst) Describe() string           { return "use of " + s.Name.String() }
func (CtSelector) Describe() string         { return "use of selector" }
func (CtExactType) Describe() string        { return "matching types" }
func (CtEnumeration) Describe() string      { return "sequence enumeration" }
func (s CtPartialTypeFun) Describe() string { return "use of partial type function " + s.Fun }
func (CtImprovement) Describe() string      { return "examination of collected goals" }
func (s CtPattern) Describe() string        { return s.What + " pattern" }
func (CtModuleParam) Describe() string      { return "module parameter" }
func (CtLiteral) Describe() string          { return "literal" }

func (CtComprehension) constraintSource()  {}
func (CtSplitPat) constraintSource()       {}
func (CtTypeSig) constraintSource()        {}
func (CtInst) constraintSource()           {}
func (CtSelector) constraintSource()       {}
func (CtExactType) constraintSource()      {}
func (CtEnumeration) constraintSource()    {}
func (CtPartialTypeFun) constraintSource() {}
func (CtImprovement) constraintSource()    {}
func (CtPattern) constraintSource()        {}
func (CtModuleParam) constraintSource()    {}
func (CtLiteral) constraintSource()        {}
