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
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/cockroachdb/numexpr/pkg/util/arith"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
)

// evalBinaryOp evaluates an arithmetic operator over two non-NULL values in
// the family of e's resolved type.
func (ev *evaluator) evalBinaryOp(
	e *tree.Expr, left, right tree.Datum, w *Warnings,
) (tree.Datum, error) {
	switch e.ResolvedType().Family {
	case types.IntFamily:
		if e.Op == tree.OpIntDiv &&
			(left.Family() != types.IntFamily || right.Family() != types.IntFamily) {
			return ev.evalIntDivDecimal(e, left, right, w)
		}
		return ev.evalBinaryIntOp(e, left, right, w)
	case types.DecimalFamily:
		return ev.evalBinaryDecimalOp(e, left, right, w)
	case types.FloatFamily:
		return ev.evalBinaryFloatOp(e, left, right, w)
	default:
		return nil, unexpectedFamily(e)
	}
}

func (ev *evaluator) evalBinaryIntOp(
	e *tree.Expr, left, right tree.Datum, w *Warnings,
) (tree.Datum, error) {
	a, err := asInt(left)
	if err != nil {
		return nil, err
	}
	b, err := asInt(right)
	if err != nil {
		return nil, err
	}

	var res arith.Int
	var ok bool
	switch e.Op {
	case tree.OpPlus:
		res, ok = arith.Add(a, b)
	case tree.OpMinus:
		res, ok = arith.Sub(a, b)
	case tree.OpMult:
		res, ok = arith.Mul(a, b)
	case tree.OpIntDiv:
		if b.IsZero() {
			return ev.divisionByZero(w)
		}
		res, ok = arith.Div(a, b)
	case tree.OpMod:
		if b.IsZero() {
			return ev.divisionByZero(w)
		}
		res, ok = arith.Mod(a, b)
	default:
		return nil, errors.AssertionFailedf("unexpected integer operator %s", e.Op)
	}

	unsigned := e.ResolvedType().Unsigned
	if ok {
		res, ok = arith.Fit(res, unsigned)
	}
	if !ok {
		return nil, newIntegerOverflowError(e, unsigned)
	}
	return &tree.DInt{Int: res}, nil
}

// evalIntDivDecimal computes DIV when an operand is not an integer: the
// quotient is computed exactly and truncated toward zero.
func (ev *evaluator) evalIntDivDecimal(
	e *tree.Expr, left, right tree.Datum, w *Warnings,
) (tree.Datum, error) {
	var aBuf, bBuf apd.Decimal
	a, err := asDecimal(e, left, &aBuf)
	if err != nil {
		return nil, err
	}
	b, err := asDecimal(e, right, &bBuf)
	if err != nil {
		return nil, err
	}

	res := e.Scratch()
	switch decimal.Div(res, a, b, 0) {
	case decimal.StatusDivisionByZero:
		return ev.divisionByZero(w)
	case decimal.StatusOverflow:
		return nil, newDecimalOverflowError(e)
	}
	if decimal.Round(res, res, 0, decimal.Truncate) == decimal.StatusOverflow {
		return nil, newDecimalOverflowError(e)
	}
	unsigned := e.ResolvedType().Unsigned
	i, status := decimal.ToInt(res, unsigned)
	if status != decimal.StatusOK {
		return nil, newIntegerOverflowError(e, unsigned)
	}
	return &tree.DInt{Int: i}, nil
}

func (ev *evaluator) evalBinaryDecimalOp(
	e *tree.Expr, left, right tree.Datum, w *Warnings,
) (tree.Datum, error) {
	var aBuf, bBuf apd.Decimal
	a, err := asDecimal(e, left, &aBuf)
	if err != nil {
		return nil, err
	}
	b, err := asDecimal(e, right, &bBuf)
	if err != nil {
		return nil, err
	}

	res := e.Scratch()
	var status decimal.Status
	switch e.Op {
	case tree.OpPlus:
		status = decimal.Add(res, a, b)
	case tree.OpMinus:
		status = decimal.Sub(res, a, b)
	case tree.OpMult:
		status = decimal.Mul(res, a, b)
	case tree.OpDiv:
		status = decimal.Div(res, a, b, ev.ctx().sessionData().DivPrecisionIncrement)
		if status == decimal.StatusOK || status == decimal.StatusTruncated {
			status = decimal.Round(res, res, e.ResolvedType().Scale, decimal.HalfUp)
		}
	case tree.OpMod:
		status = decimal.Mod(res, a, b)
	default:
		return nil, errors.AssertionFailedf("unexpected decimal operator %s", e.Op)
	}
	if status == decimal.StatusDivisionByZero {
		return ev.divisionByZero(w)
	}
	return decimalResult(e, res, status)
}

func (ev *evaluator) evalBinaryFloatOp(
	e *tree.Expr, left, right tree.Datum, w *Warnings,
) (tree.Datum, error) {
	a, err := asFloat(left)
	if err != nil {
		return nil, err
	}
	b, err := asFloat(right)
	if err != nil {
		return nil, err
	}

	var r float64
	switch e.Op {
	case tree.OpPlus:
		r = a + b
	case tree.OpMinus:
		r = a - b
	case tree.OpMult:
		r = a * b
	case tree.OpDiv:
		if b == 0 {
			return ev.divisionByZero(w)
		}
		r = a / b
	case tree.OpMod:
		if b == 0 {
			return ev.divisionByZero(w)
		}
		r = math.Mod(a, b)
	default:
		return nil, errors.AssertionFailedf("unexpected float operator %s", e.Op)
	}
	return floatResult(e, r)
}
