// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
)

// evalMathFunc computes the double precision functions. Logarithms of
// non-positive numbers are NULL with a warning; square roots of negative
// numbers and inverse cosines and sines outside [-1, 1] are NULL.
func (ev *evaluator) evalMathFunc(e *tree.Expr, args []tree.Datum, w *Warnings) (tree.Datum, error) {
	var xs [2]float64
	for i, d := range args {
		f, err := asFloat(d)
		if err != nil {
			return nil, err
		}
		xs[i] = f
	}
	x := xs[0]

	var r float64
	switch e.Op {
	case tree.OpLn:
		if x <= 0 {
			return invalidLogArgument(w)
		}
		r = math.Log(x)
	case tree.OpLog:
		if len(args) == 1 {
			if x <= 0 {
				return invalidLogArgument(w)
			}
			r = math.Log(x)
			break
		}
		base, y := x, xs[1]
		if base <= 0 || y <= 0 {
			return invalidLogArgument(w)
		}
		lnBase := math.Log(base)
		if lnBase == 0 {
			return ev.divisionByZero(w)
		}
		r = float64(math.Log(y)) / lnBase
	case tree.OpLog2:
		if x <= 0 {
			return invalidLogArgument(w)
		}
		r = math.Log2(x)
	case tree.OpLog10:
		if x <= 0 {
			return invalidLogArgument(w)
		}
		r = math.Log10(x)
	case tree.OpExp:
		r = math.Exp(x)
	case tree.OpSqrt:
		if x < 0 {
			return tree.DNull, nil
		}
		r = math.Sqrt(x)
	case tree.OpPow:
		r = math.Pow(x, xs[1])
	case tree.OpAcos:
		if x < -1 || x > 1 {
			return tree.DNull, nil
		}
		r = math.Acos(x)
	case tree.OpAsin:
		if x < -1 || x > 1 {
			return tree.DNull, nil
		}
		r = math.Asin(x)
	case tree.OpAtan:
		if len(args) == 2 {
			r = math.Atan2(x, xs[1])
		} else {
			r = math.Atan(x)
		}
	case tree.OpCos:
		r = math.Cos(x)
	case tree.OpSin:
		r = math.Sin(x)
	case tree.OpTan:
		r = math.Tan(x)
	case tree.OpCot:
		r = 1 / float64(math.Tan(x))
	case tree.OpDegrees:
		r = x * (180 / math.Pi)
	case tree.OpRadians:
		r = x * (math.Pi / 180)
	default:
		return nil, errors.AssertionFailedf("unexpected function %s", e.Op)
	}
	return floatResult(e, r)
}

func invalidLogArgument(w *Warnings) (tree.Datum, error) {
	w.Add(newInvalidLogArgumentWarning())
	return tree.DNull, nil
}
