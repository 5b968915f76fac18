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

// evalUnaryOp evaluates a single-argument operator over a non-NULL value.
func (ev *evaluator) evalUnaryOp(e *tree.Expr, d tree.Datum) (tree.Datum, error) {
	switch e.Op {
	case tree.OpNeg:
		return evalUnaryMinus(e, d)
	case tree.OpAbs:
		return evalAbs(e, d)
	case tree.OpCeiling:
		return evalIntVal(e, d, decimal.Ceiling)
	case tree.OpFloor:
		return evalIntVal(e, d, decimal.Floor)
	case tree.OpSign:
		return evalSign(d)
	default:
		return nil, errors.AssertionFailedf("unexpected unary operator %s", e.Op)
	}
}

func evalUnaryMinus(e *tree.Expr, d tree.Datum) (tree.Datum, error) {
	switch e.ResolvedType().Family {
	case types.IntFamily:
		i, err := asInt(d)
		if err != nil {
			return nil, err
		}
		res, ok := arith.Neg(i)
		if ok {
			res, ok = arith.Fit(res, false)
		}
		if !ok {
			return nil, newIntegerOverflowError(e, false)
		}
		return &tree.DInt{Int: res}, nil

	case types.DecimalFamily:
		// An integer operand lands here when its negation does not fit in
		// an int64.
		dec, err := asDecimal(e, d, e.Scratch())
		if err != nil {
			return nil, err
		}
		dd := &tree.DDecimal{}
		dd.Neg(dec)
		if dd.IsZero() {
			dd.Negative = false
		}
		return dd, nil

	case types.FloatFamily:
		f, err := asFloat(d)
		if err != nil {
			return nil, err
		}
		return tree.NewDFloat(-f), nil

	default:
		return nil, unexpectedFamily(e)
	}
}

func evalAbs(e *tree.Expr, d tree.Datum) (tree.Datum, error) {
	switch typ := e.ResolvedType(); typ.Family {
	case types.IntFamily:
		i, err := asInt(d)
		if err != nil {
			return nil, err
		}
		res, ok := arith.Abs(i)
		if ok {
			res, ok = arith.Fit(res, typ.Unsigned)
		}
		if !ok {
			return nil, newIntegerOverflowError(e, typ.Unsigned)
		}
		return &tree.DInt{Int: res}, nil

	case types.DecimalFamily:
		dec, err := asDecimal(e, d, e.Scratch())
		if err != nil {
			return nil, err
		}
		dd := &tree.DDecimal{}
		dd.Abs(dec)
		return dd, nil

	case types.FloatFamily:
		f, err := asFloat(d)
		if err != nil {
			return nil, err
		}
		return tree.NewDFloat(math.Abs(f)), nil

	default:
		return nil, unexpectedFamily(e)
	}
}

// evalIntVal computes CEILING and FLOOR, which round to zero decimals
// toward positive or negative infinity.
func evalIntVal(e *tree.Expr, d tree.Datum, mode decimal.RoundMode) (tree.Datum, error) {
	switch typ := e.ResolvedType(); typ.Family {
	case types.IntFamily:
		if d.Family() == types.IntFamily {
			i, err := asInt(d)
			if err != nil {
				return nil, err
			}
			res, ok := arith.Fit(i, typ.Unsigned)
			if !ok {
				return nil, newIntegerOverflowError(e, typ.Unsigned)
			}
			return &tree.DInt{Int: res}, nil
		}
		var buf apd.Decimal
		dec, err := asDecimal(e, d, &buf)
		if err != nil {
			return nil, err
		}
		res := e.Scratch()
		if RoundDecimal(res, dec, 0, 0, mode) == decimal.StatusOverflow {
			return nil, newDecimalOverflowError(e)
		}
		i, status := decimal.ToInt(res, typ.Unsigned)
		if status != decimal.StatusOK {
			return nil, newIntegerOverflowError(e, typ.Unsigned)
		}
		return &tree.DInt{Int: i}, nil

	case types.DecimalFamily:
		var buf apd.Decimal
		dec, err := asDecimal(e, d, &buf)
		if err != nil {
			return nil, err
		}
		res := e.Scratch()
		return decimalResult(e, res, RoundDecimal(res, dec, 0, 0, mode))

	case types.FloatFamily:
		f, err := asFloat(d)
		if err != nil {
			return nil, err
		}
		return floatResult(e, RoundFloat(f, 0, mode))

	default:
		return nil, unexpectedFamily(e)
	}
}

func evalSign(d tree.Datum) (tree.Datum, error) {
	switch t := d.(type) {
	case *tree.DInt:
		return tree.NewDInt(int64(t.Sign())), nil
	case *tree.DDecimal:
		return tree.NewDInt(int64(t.Sign())), nil
	case *tree.DFloat:
		switch f := float64(*t); {
		case f > 0:
			return tree.NewDInt(1), nil
		case f < 0:
			return tree.NewDInt(-1), nil
		default:
			return tree.NewDInt(0), nil
		}
	default:
		return nil, errors.AssertionFailedf("unexpected value %s", d)
	}
}
