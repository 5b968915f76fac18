// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exprbuild builds expression trees from a compact function-call
// notation, for example
//
//	round(div(plus(a, 1.50), -3), 1)
//
// Operands are literals, column names or nested calls. Integer literals
// that fit in an int64 are signed, larger ones that fit in a uint64 are
// unsigned and the rest are decimals. Literals with a decimal point are
// decimals, literals with an exponent are doubles, and null is NULL.
//
// The notation is the one produced by tree.AsStringWithFlags with
// tree.FmtFunctionStyle.
package exprbuild

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
)

// Columns resolves column names.
type Columns interface {
	// FindColumn returns the column with the given name, or nil.
	FindColumn(name string) *tree.ColumnRef
}

// ColumnList is a Columns backed by a slice. Lookups are case insensitive.
type ColumnList []*tree.ColumnRef

// FindColumn implements Columns.
func (l ColumnList) FindColumn(name string) *tree.ColumnRef {
	for _, c := range l {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Build parses s into an unresolved expression tree. cols may be nil if s
// references no columns.
func Build(s string, cols Columns) (*tree.Expr, error) {
	p := parser{lexer: lexer{s: s}, cols: cols}
	p.next()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %s", p.tok)
	}
	return e, nil
}

// MustBuild is like Build but panics on error. It simplifies tests.
func MustBuild(s string, cols Columns) *tree.Expr {
	e, err := Build(s, cols)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	lexer
	cols Columns
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(pgerror.Newf(pgcode.Syntax, format, args...),
		"at or near position %d", p.tok.pos+1)
}

func (p *parser) parseExpr() (*tree.Expr, error) {
	switch tok := p.tok; tok.kind {
	case tokNumber:
		p.next()
		d, err := ParseNumber(tok.text)
		if err != nil {
			return nil, err
		}
		return tree.NewConst(d), nil

	case tokIdent:
		p.next()
		if p.tok.kind != tokLParen {
			if strings.EqualFold(tok.text, "null") {
				return tree.NewConst(tree.DNull), nil
			}
			var col *tree.ColumnRef
			if p.cols != nil {
				col = p.cols.FindColumn(tok.text)
			}
			if col == nil {
				return nil, pgerror.Newf(pgcode.UndefinedColumn, "column %q does not exist", tok.text)
			}
			return tree.NewColumn(col), nil
		}
		op, ok := tree.OperatorByName(tok.text)
		if !ok {
			return nil, pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", tok.text)
		}
		p.next()
		var args []*tree.Expr
		for p.tok.kind != tokRParen {
			if len(args) > 0 {
				if p.tok.kind != tokComma {
					return nil, p.errorf("expected , or ), found %s", p.tok)
				}
				p.next()
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		p.next()
		return tree.NewExpr(op, args...), nil

	default:
		return nil, p.errorf("unexpected %s", tok)
	}
}

// ParseNumber parses a numeric literal using the literal typing rules of
// the package.
func ParseNumber(s string) (tree.Datum, error) {
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, pgerror.Wrapf(err, pgcode.InvalidTextRepresentation,
				"could not parse %q as type double", s)
		}
		return tree.NewDFloat(f), nil
	}
	if !strings.Contains(s, ".") {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return tree.NewDInt(v), nil
		}
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return tree.NewDUint(v), nil
		}
	}
	return tree.ParseDDecimal(s)
}
