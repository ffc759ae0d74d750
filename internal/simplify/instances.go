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

package simplify

import (
	"github.com/wdamron/dtinfer/types"
)

// Structural classes hold for tuples and records when they hold for every component.
var structural = map[types.TCTag]bool{
	types.PCZero:      true,
	types.PCLogic:     true,
	types.PCRing:      true,
	types.PCEq:        true,
	types.PCCmp:       true,
	types.PCSignedCmp: true,
}

// Classes which hold for a function type when they hold for its result.
var pointwise = map[types.TCTag]bool{
	types.PCZero:  true,
	types.PCLogic: true,
	types.PCRing:  true,
}

func classStep(tag types.TCTag, args []types.Type, p types.Type) ([]types.Type, bool, error) {
	// The instance type is the last argument; Literal-like classes carry values first.
	subject := types.Expand(args[len(args)-1])
	vals := args[:len(args)-1]
	no := func() ([]types.Type, bool, error) { return nil, false, &UnsolvableError{Goal: p} }
	yes := func(sub ...types.Type) ([]types.Type, bool, error) { return sub, true, nil }

	switch t := subject.(type) {
	case *types.TVFree, *types.TVBound:
		return nil, false, nil

	case *types.TRec:
		if !structural[tag] {
			return no()
		}
		var sub []types.Type
		t.Fields.Range(func(_ string, ft types.Type) bool {
			sub = append(sub, types.PClass(tag, ft))
			return true
		})
		return yes(sub...)

	case *types.TNewtype:
		return no()

	case *types.TCon:
		switch t.C.Tag {
		case types.TCTuple:
			if !structural[tag] {
				return no()
			}
			sub := make([]types.Type, len(t.Args))
			for i, a := range t.Args {
				sub[i] = types.PClass(tag, a)
			}
			return yes(sub...)

		case types.TCFun:
			if !pointwise[tag] {
				return no()
			}
			return yes(types.PClass(tag, t.Args[1]))

		case types.TCBit:
			switch tag {
			case types.PCZero, types.PCLogic, types.PCEq, types.PCCmp:
				return yes()
			case types.PCLiteral:
				return yes(types.PFin(vals[0]), types.PGeq(types.TNum(1), vals[0]))
			case types.PCLiteralLessThan:
				return yes(types.PGeq(types.TNum(2), vals[0]))
			}
			return no()

		case types.TCInteger:
			switch tag {
			case types.PCZero, types.PCRing, types.PCIntegral, types.PCEq, types.PCCmp, types.PCLiteralLessThan:
				return yes()
			case types.PCLiteral:
				return yes(types.PFin(vals[0]))
			}
			return no()

		case types.TCRational:
			switch tag {
			case types.PCZero, types.PCRing, types.PCField, types.PCRound, types.PCEq, types.PCCmp, types.PCLiteralLessThan:
				return yes()
			case types.PCLiteral:
				return yes(types.PFin(vals[0]))
			case types.PCFLiteral:
				return yes(types.PFin(vals[0]), types.PFin(vals[1]), types.PGeq(vals[1], types.TNum(1)))
			}
			return no()

		case types.TCIntMod:
			n := t.Args[0]
			switch tag {
			case types.PCZero, types.PCRing, types.PCEq:
				return yes(types.PFin(n), types.PGeq(n, types.TNum(1)))
			case types.PCField:
				return yes(types.PPrime(n))
			case types.PCLiteral:
				return yes(types.PFin(vals[0]), types.PFin(n), types.PGeq(n, types.TFunApp(types.TFAdd, vals[0], types.TNum(1))))
			case types.PCLiteralLessThan:
				return yes(types.PFin(n), types.PGeq(n, types.TNum(1)), types.PGeq(n, vals[0]))
			}
			return no()

		case types.TCSeq:
			return seqStep(tag, vals, t.Args[0], types.Expand(t.Args[1]), p)
		}
		return no()
	}
	return nil, false, nil
}

func seqStep(tag types.TCTag, vals []types.Type, n, elem types.Type, p types.Type) ([]types.Type, bool, error) {
	no := func() ([]types.Type, bool, error) { return nil, false, &UnsolvableError{Goal: p} }
	yes := func(sub ...types.Type) ([]types.Type, bool, error) { return sub, true, nil }
	_, elemUnknown := elem.(*types.TVFree)
	elemBit := types.Equal(elem, types.TBit)

	switch tag {
	case types.PCZero, types.PCLogic:
		return yes(types.PClass(tag, elem))
	case types.PCEq, types.PCCmp:
		return yes(types.PFin(n), types.PClass(tag, elem))
	case types.PCRing:
		switch {
		case elemBit:
			return yes(types.PFin(n))
		case elemUnknown:
			return nil, false, nil
		}
		return yes(types.PClass(tag, elem))
	case types.PCSignedCmp:
		switch {
		case elemBit:
			return yes(types.PFin(n), types.PGeq(n, types.TNum(1)))
		case elemUnknown:
			return nil, false, nil
		}
		return yes(types.PFin(n), types.PClass(tag, elem))
	case types.PCIntegral, types.PCLiteral, types.PCLiteralLessThan:
		switch {
		case elemUnknown:
			return nil, false, nil
		case !elemBit:
			return no()
		case tag == types.PCIntegral:
			return yes(types.PFin(n))
		case tag == types.PCLiteral:
			return yes(types.PFin(vals[0]), types.PFin(n), types.PGeq(n, types.TFunApp(types.TFWidth, vals[0])))
		}
		return yes(types.PFin(n), types.PGeq(types.TFunApp(types.TFExp, types.TNum(2), n), vals[0]))
	}
	return no()
}
