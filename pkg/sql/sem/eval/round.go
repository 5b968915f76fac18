// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/cockroachdb/numexpr/pkg/util/arith"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
)

// maxFloatPow10 is the largest power of ten below the float64 range.
const maxFloatPow10 = 308

// floatPow10 returns 10^n as a float64, or +Inf when it is out of range.
func floatPow10(n uint64) float64 {
	if n <= maxFloatPow10 {
		return math.Pow10(int(n))
	}
	return math.Pow(10, float64(n))
}

// RoundFloat rounds f to decimals fractional digits using mode. A negative
// number of decimals rounds to a multiple of a power of ten.
//
// Each intermediate is converted to float64 explicitly, which keeps the
// compiler from fusing the multiply with the subsequent rounding step.
func RoundFloat(f float64, decimals int64, mode decimal.RoundMode) float64 {
	negative := decimals < 0
	absDec := uint64(decimals)
	if negative {
		absDec = -absDec
	}
	scale := floatPow10(absDec)
	mulScaled := float64(f * scale)
	divScaled := float64(f / scale)

	switch {
	case negative && math.IsInf(scale, 0):
		return 0
	case !negative && (math.IsInf(mulScaled, 0) || math.IsNaN(mulScaled)):
		return f
	}

	scaled := mulScaled
	if negative {
		scaled = divScaled
	}
	var r float64
	switch mode {
	case decimal.HalfUp:
		r = float64(math.Round(scaled))
	case decimal.Truncate:
		r = float64(math.Trunc(scaled))
	case decimal.Ceiling:
		r = float64(math.Ceil(scaled))
	case decimal.Floor:
		r = float64(math.Floor(scaled))
	}
	if negative {
		return float64(r * scale)
	}
	return float64(r / scale)
}

// RoundInt rounds v to a multiple of 10^-decimals using mode. Integers have
// no fractional digits, so a non-negative number of decimals returns v. ok
// is false if the rounded value does not fit in the signedness of v.
func RoundInt(v arith.Int, decimals int64, mode decimal.RoundMode) (_ arith.Int, ok bool) {
	if decimals >= 0 {
		return v, true
	}
	exp := uint64(-(decimals + 1)) + 1
	var res arith.Int
	switch mode {
	case decimal.HalfUp, decimal.Truncate:
		res, ok = arith.RoundPow10(v, exp, mode == decimal.Truncate)
	case decimal.Ceiling, decimal.Floor:
		res, ok = roundIntDirected(v, exp, mode == decimal.Ceiling)
	}
	if !ok {
		return arith.Int{}, false
	}
	return arith.Fit(res, v.Unsigned)
}

// roundIntDirected rounds v toward positive infinity if up is set and
// toward negative infinity otherwise.
func roundIntDirected(v arith.Int, exp uint64, up bool) (arith.Int, bool) {
	trunc, ok := arith.RoundPow10(v, exp, true /* truncate */)
	if !ok {
		return arith.Int{}, false
	}
	if v.Abs() == trunc.Abs() {
		return trunc, true
	}
	if exp >= 20 {
		// |v| < 10^exp, so the result is zero or a power of ten beyond the
		// 64-bit range.
		if up == v.Negative() {
			return arith.Int{Unsigned: true}, true
		}
		return arith.Int{}, false
	}
	step := arith.Unsigned(pow10Int(exp))
	if up {
		if v.Negative() {
			return trunc, true
		}
		return arith.Add(trunc, step)
	}
	if !v.Negative() {
		return trunc, true
	}
	return arith.Sub(trunc, step)
}

func pow10Int(exp uint64) uint64 {
	p := uint64(1)
	for ; exp > 0; exp-- {
		p *= 10
	}
	return p
}

// RoundDecimal sets res to a rounded to decimals fractional digits. The
// number of decimals is clamped to [-decimal.MaxScale, maxScale], where
// maxScale is the scale of the result type.
func RoundDecimal(
	res, a *apd.Decimal, decimals int64, maxScale int32, mode decimal.RoundMode,
) decimal.Status {
	dec := min(max(decimals, -decimal.MaxScale), int64(maxScale))
	return decimal.Round(res, a, int32(dec), mode)
}

// evalRound computes ROUND and TRUNCATE over non-NULL arguments.
func (ev *evaluator) evalRound(e *tree.Expr, args []tree.Datum) (tree.Datum, error) {
	mode := decimal.HalfUp
	if e.Op == tree.OpTruncate {
		mode = decimal.Truncate
	}
	var decimals int64
	if len(args) > 1 {
		decimals = decimalsFromDatum(args[1])
	}

	switch typ := e.ResolvedType(); typ.Family {
	case types.IntFamily:
		i, err := asInt(args[0])
		if err != nil {
			return nil, err
		}
		res, ok := RoundInt(i, decimals, mode)
		if ok {
			res, ok = arith.Fit(res, typ.Unsigned)
		}
		if !ok {
			return nil, newIntegerOverflowError(e, typ.Unsigned)
		}
		return &tree.DInt{Int: res}, nil

	case types.DecimalFamily:
		var buf apd.Decimal
		dec, err := asDecimal(e, args[0], &buf)
		if err != nil {
			return nil, err
		}
		res := e.Scratch()
		return decimalResult(e, res, RoundDecimal(res, dec, decimals, typ.Scale, mode))

	case types.FloatFamily:
		f, err := asFloat(args[0])
		if err != nil {
			return nil, err
		}
		return floatResult(e, RoundFloat(f, decimals, mode))

	default:
		return nil, unexpectedFamily(e)
	}
}
