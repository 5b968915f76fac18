// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
	"github.com/cockroachdb/numexpr/pkg/util/arith"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
)

// Expr evaluates e over row. e must have been resolved with Resolve.
//
// Overflow and resolution errors are returned and abort the evaluation.
// Division by zero and invalid logarithm arguments produce tree.DNull and
// add a warning to w instead. The family of a non-NULL result always equals
// the family of e's resolved type.
func Expr(evalCtx *Context, e *tree.Expr, row tree.Row, w *Warnings) (tree.Datum, error) {
	return (*evaluator)(evalCtx).eval(e, row, w)
}

type evaluator Context

func (ev *evaluator) ctx() *Context {
	return (*Context)(ev)
}

func (ev *evaluator) eval(e *tree.Expr, row tree.Row, w *Warnings) (tree.Datum, error) {
	if !e.IsFixed() {
		return nil, errors.AssertionFailedf("%s evaluated before it was resolved", e)
	}
	if !e.BeginEval() {
		return nil, errors.AssertionFailedf("re-entrant evaluation of %s", e)
	}
	defer e.EndEval()

	switch e.Op {
	case tree.OpConst:
		return e.Datum, nil
	case tree.OpColumn:
		return evalColumn(e, row)
	}

	var buf [2]tree.Datum
	var args []tree.Datum
	if len(e.Args) <= len(buf) {
		args = buf[:len(e.Args)]
	} else {
		args = make([]tree.Datum, len(e.Args))
	}
	// Every argument is evaluated, even after a NULL, so that errors raised
	// by later arguments are not hidden.
	for i, arg := range e.Args {
		d, err := ev.eval(arg, row, w)
		if err != nil {
			return nil, err
		}
		args[i] = d
	}
	for _, d := range args {
		if d == tree.DNull {
			return tree.DNull, nil
		}
	}

	switch e.Op {
	case tree.OpPlus, tree.OpMinus, tree.OpMult, tree.OpDiv, tree.OpIntDiv, tree.OpMod:
		return ev.evalBinaryOp(e, args[0], args[1], w)
	case tree.OpNeg, tree.OpAbs, tree.OpCeiling, tree.OpFloor, tree.OpSign:
		return ev.evalUnaryOp(e, args[0])
	case tree.OpRound, tree.OpTruncate:
		return ev.evalRound(e, args)
	default:
		return ev.evalMathFunc(e, args, w)
	}
}

func evalColumn(e *tree.Expr, row tree.Row) (tree.Datum, error) {
	if e.Col.Idx < 0 || e.Col.Idx >= len(row) {
		return nil, errors.AssertionFailedf("column %s at position %d is outside a row of %d values",
			e, e.Col.Idx, len(row))
	}
	d := row[e.Col.Idx]
	if d == nil {
		return nil, errors.AssertionFailedf("no value for column %s", e)
	}
	if d != tree.DNull && d.Family() != e.ResolvedType().Family {
		return nil, errors.AssertionFailedf("column %s of type %s holds a %s value",
			e, e.ResolvedType(), d.Family())
	}
	return d, nil
}

// divisionByZero returns the result of dividing by zero: NULL, with a
// warning if the session asks for one.
func (ev *evaluator) divisionByZero(w *Warnings) (tree.Datum, error) {
	if ev.ctx().sessionData().ErrorForDivisionByZero {
		w.Add(newDivisionByZeroWarning())
	}
	return tree.DNull, nil
}

// floatResult checks that f is finite.
func floatResult(e *tree.Expr, f float64) (tree.Datum, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, newFloatOverflowError(e)
	}
	return tree.NewDFloat(f), nil
}

// decimalResult copies res into a new Datum.
func decimalResult(e *tree.Expr, res *apd.Decimal, status decimal.Status) (tree.Datum, error) {
	switch status {
	case decimal.StatusOK, decimal.StatusTruncated:
		dd := &tree.DDecimal{}
		dd.Set(res)
		return dd, nil
	case decimal.StatusOverflow:
		return nil, newDecimalOverflowError(e)
	default:
		return nil, errors.AssertionFailedf("unexpected decimal status %s", status)
	}
}

// asInt returns the integer held by d.
func asInt(d tree.Datum) (arith.Int, error) {
	i, ok := d.(*tree.DInt)
	if !ok {
		return arith.Int{}, errors.AssertionFailedf("expected an integer, found %s", d.Family())
	}
	return i.Int, nil
}

// asDecimal returns the value of d as a decimal, using buf for conversions.
// A double too large for a DECIMAL raises a decimal overflow on e.
func asDecimal(e *tree.Expr, d tree.Datum, buf *apd.Decimal) (*apd.Decimal, error) {
	switch t := d.(type) {
	case *tree.DInt:
		return decimal.FromInt(buf, t.Int), nil
	case *tree.DDecimal:
		return &t.Decimal, nil
	case *tree.DFloat:
		f := float64(*t)
		if decimal.FromFloat(buf, f) == decimal.StatusOverflow {
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return nil, errors.AssertionFailedf("non-finite double %s", t)
			}
			return nil, newDecimalOverflowError(e)
		}
		return buf, nil
	default:
		return nil, errors.AssertionFailedf("unexpected value %s", d)
	}
}

// asFloat returns the value of d as a double.
func asFloat(d tree.Datum) (float64, error) {
	switch t := d.(type) {
	case *tree.DInt:
		if t.Unsigned {
			return float64(t.Bits), nil
		}
		return float64(t.Int64()), nil
	case *tree.DDecimal:
		return decimal.ToFloat(&t.Decimal), nil
	case *tree.DFloat:
		return float64(*t), nil
	default:
		return 0, errors.AssertionFailedf("unexpected value %s", d)
	}
}

func unexpectedFamily(e *tree.Expr) error {
	return errors.AssertionFailedf("unexpected family %s for %s", e.ResolvedType().Family, e)
}
