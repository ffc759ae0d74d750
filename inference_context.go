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
	"context"

	"github.com/wdamron/dtinfer/ast"
	"github.com/wdamron/dtinfer/core"
	"github.com/wdamron/dtinfer/types"
)

// InferenceContext is a reusable context for type inference. Each successful
// run continues the name seeds of the previous one, and a checked module's
// interface becomes visible to later runs.
//
// An inference context cannot be used concurrently.
type InferenceContext struct {
	in       Input
	warnings []WarningDiag
	err      error
}

// Create a new type-inference context starting from in.
func NewContext(in Input) *InferenceContext { return &InferenceContext{in: in} }

// Get the error which caused the last run to fail.
func (ic *InferenceContext) Error() error { return ic.err }

// Get the warnings of the last run.
func (ic *InferenceContext) Warnings() []WarningDiag { return ic.warnings }

// Get the seeds the next run will start from.
func (ic *InferenceContext) Seeds() NameSeeds { return ic.in.Seeds }

// Get the scope visible to the next run.
func (ic *InferenceContext) External() *ExternalScope { return ic.in.External }

// Check a module. On success its interface is added to the external scope.
func (ic *InferenceContext) CheckModule(ctx context.Context, mod *ast.Module) (*core.Module, error) {
	out, err := InferModule(ctx, ic.in, mod)
	ic.err, ic.warnings = err, nil
	if err != nil {
		if f, ok := err.(*Failure); ok {
			ic.warnings = f.Warnings
		}
		return nil, err
	}
	ic.warnings = out.Warnings
	ic.in.Seeds = out.Seeds
	ic.in.External = ic.in.External.With(out.Module.Interface())
	return out.Module, nil
}

// Infer the type of an expression against the external scope.
func (ic *InferenceContext) CheckExpr(ctx context.Context, e ast.Expr) (core.Expr, *types.Schema, error) {
	out, err := InferExpr(ctx, ic.in, e)
	ic.err, ic.warnings = err, nil
	if err != nil {
		if f, ok := err.(*Failure); ok {
			ic.warnings = f.Warnings
		}
		return nil, nil, err
	}
	ic.warnings = out.Warnings
	ic.in.Seeds = out.Seeds
	return out.Expr, out.Schema, nil
}
