// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strconv"
	"strings"
)

// FmtFlags control how expressions are rendered.
type FmtFlags uint8

const (
	// FmtSimple renders infix operators in parentheses and everything else
	// as function calls.
	FmtSimple FmtFlags = 0
	// FmtShowTypes appends the resolved type of each fixed node.
	FmtShowTypes FmtFlags = 1 << iota
	// FmtFunctionStyle renders every operator with its function-style name,
	// the way expressions are written for exprbuild.
	FmtFunctionStyle
)

// String implements fmt.Stringer.
func (e *Expr) String() string {
	return AsStringWithFlags(e, FmtSimple)
}

// AsStringWithFlags renders e with the given flags.
func AsStringWithFlags(e *Expr, flags FmtFlags) string {
	var b strings.Builder
	format(&b, e, flags)
	return b.String()
}

func format(b *strings.Builder, e *Expr, flags FmtFlags) {
	switch {
	case e.Op == OpConst:
		switch d := e.Datum.(type) {
		case nil:
			b.WriteString("<nil>")
		case *DFloat:
			if flags&FmtFunctionStyle != 0 {
				// Keep the exponent so that the literal reads back as a double.
				b.WriteString(strconv.FormatFloat(float64(*d), 'e', -1, 64))
			} else {
				b.WriteString(d.String())
			}
		default:
			b.WriteString(d.String())
		}
	case e.Op == OpColumn:
		switch {
		case e.Col == nil:
			b.WriteString("<nil>")
		case e.Col.Name != "":
			b.WriteString(e.Col.Name)
		default:
			b.WriteByte('@')
			b.WriteString(strconv.Itoa(e.Col.Idx + 1))
		}
	case flags&FmtFunctionStyle != 0 || e.Op.Symbol() == "":
		b.WriteString(e.Op.String())
		b.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, arg, flags)
		}
		b.WriteByte(')')
	case e.Op == OpNeg && len(e.Args) == 1:
		arg := AsStringWithFlags(e.Args[0], flags)
		if strings.HasPrefix(arg, "-") {
			b.WriteString("-(")
			b.WriteString(arg)
			b.WriteByte(')')
		} else {
			b.WriteByte('-')
			b.WriteString(arg)
		}
	case len(e.Args) == 2:
		b.WriteByte('(')
		format(b, e.Args[0], flags)
		b.WriteByte(' ')
		b.WriteString(e.Op.Symbol())
		b.WriteByte(' ')
		format(b, e.Args[1], flags)
		b.WriteByte(')')
	default:
		// Malformed arity; fall back to the function form.
		format(b, e, flags|FmtFunctionStyle)
		return
	}
	if flags&FmtShowTypes != 0 && e.typ != nil {
		b.WriteByte('[')
		b.WriteString(e.typ.SQLString())
		b.WriteByte(']')
	}
}
