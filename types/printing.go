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
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &typePrinter{} },
}

func newTypePrinter() *typePrinter { return printerPool.Get().(*typePrinter) }

func (p *typePrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

type typePrinter struct {
	sb strings.Builder
}

// Precedence levels used for parenthesization.
const (
	precTop = iota
	precFun
	precInfix
	precApp
	precAtom
)

// TypeString returns a string representation of a Type.
func TypeString(t Type) string {
	p := newTypePrinter()
	typeString(p, precTop, t)
	s := p.sb.String()
	p.Release()
	return s
}

// SchemaString returns a string representation of a Schema: `{a, b} (fin a) => t`
func SchemaString(s *Schema) string {
	p := newTypePrinter()
	if len(s.Params) > 0 {
		p.sb.WriteByte('{')
		for i, tp := range s.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(tp.DisplayName())
		}
		p.sb.WriteString("} ")
	}
	if len(s.Props) > 0 {
		p.sb.WriteByte('(')
		for i, prop := range s.Props {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			typeString(p, precTop, prop)
		}
		p.sb.WriteString(") => ")
	}
	typeString(p, precTop, s.Body)
	str := p.sb.String()
	p.Release()
	return str
}

func freeVarName(v *TVFree) string {
	prefix := "?a"
	if v.K != nil && v.K.Tag == KindNum {
		prefix = "?n"
	}
	return prefix + strconv.Itoa(v.ID)
}

func (p *typePrinter) open(outer, inner int) {
	if outer > inner {
		p.sb.WriteByte('(')
	}
}

func (p *typePrinter) close(outer, inner int) {
	if outer > inner {
		p.sb.WriteByte(')')
	}
}

func (p *typePrinter) list(ts []Type) {
	for i, t := range ts {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		typeString(p, precTop, t)
	}
}

func typeString(p *typePrinter, prec int, t Type) {
	switch t := t.(type) {
	case nil:
		p.sb.WriteString("<nil>")

	case *TVFree:
		p.sb.WriteString(freeVarName(t))

	case *TVBound:
		p.sb.WriteString(t.Param.DisplayName())

	case *TUser:
		if len(t.Args) == 0 {
			p.sb.WriteString(t.Name.Ident)
			return
		}
		p.open(prec, precApp)
		p.sb.WriteString(t.Name.Ident)
		for _, a := range t.Args {
			p.sb.WriteByte(' ')
			typeString(p, precAtom, a)
		}
		p.close(prec, precApp)

	case *TNewtype:
		if len(t.Args) == 0 {
			p.sb.WriteString(t.NT.Name.Ident)
			return
		}
		p.open(prec, precApp)
		p.sb.WriteString(t.NT.Name.Ident)
		for _, a := range t.Args {
			p.sb.WriteByte(' ')
			typeString(p, precAtom, a)
		}
		p.close(prec, precApp)

	case *TRec:
		p.sb.WriteByte('{')
		i := 0
		t.Fields.Range(func(label string, ft Type) bool {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(label)
			p.sb.WriteString(" : ")
			typeString(p, precTop, ft)
			i++
			return true
		})
		p.sb.WriteByte('}')

	case *TCon:
		tconString(p, prec, t)
	}
}

func tconString(p *typePrinter, prec int, t *TCon) {
	switch tag := t.C.Tag; {
	case len(t.Args) == 0 && tag != TCTuple:
		p.sb.WriteString(t.C.String())

	case tag == TCSeq:
		p.open(prec, precApp)
		p.sb.WriteByte('[')
		typeString(p, precTop, t.Args[0])
		p.sb.WriteByte(']')
		typeString(p, precApp, t.Args[1])
		p.close(prec, precApp)

	case tag == TCFun:
		p.open(prec, precFun)
		typeString(p, precInfix, t.Args[0])
		p.sb.WriteString(" -> ")
		typeString(p, precFun, t.Args[1])
		p.close(prec, precFun)

	case tag == TCTuple:
		p.sb.WriteByte('(')
		p.list(t.Args)
		p.sb.WriteByte(')')

	case tag == PCAnd:
		p.sb.WriteByte('(')
		p.list(SplitAnd(t))
		p.sb.WriteByte(')')

	case tag == PCHas:
		p.open(prec, precApp)
		p.sb.WriteString("Has ")
		p.sb.WriteString(t.C.Sel.String())
		for _, a := range t.Args {
			p.sb.WriteByte(' ')
			typeString(p, precAtom, a)
		}
		p.close(prec, precApp)

	case len(t.Args) == 2 && isInfix(tag):
		p.open(prec, precInfix)
		typeString(p, precApp, t.Args[0])
		p.sb.WriteByte(' ')
		p.sb.WriteString(t.C.String())
		p.sb.WriteByte(' ')
		typeString(p, precApp, t.Args[1])
		p.close(prec, precInfix)

	default:
		p.open(prec, precApp)
		p.sb.WriteString(t.C.String())
		for _, a := range t.Args {
			p.sb.WriteByte(' ')
			typeString(p, precAtom, a)
		}
		p.close(prec, precApp)
	}
}

func isInfix(tag TCTag) bool {
	switch tag {
	case TFAdd, TFSub, TFMul, TFDiv, TFMod, TFExp, TFCeilDiv, TFCeilMod, PCEqual, PCNeq, PCGeq:
		return true
	}
	return false
}
