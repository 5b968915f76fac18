// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package decimal wraps apd with the bounded fixed-point semantics used by
// numeric expressions: at most MaxPrecision significant integer-plus-fraction
// digits and at most MaxScale fractional digits. Each operation reports a
// Status rather than an error so that callers decide which conditions are
// fatal.
package decimal

import (
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/numexpr/pkg/util/arith"
)

const (
	// MaxPrecision is the maximum number of digits of a decimal value.
	MaxPrecision = 65
	// MaxScale is the maximum number of fractional digits of a decimal value.
	MaxScale = 30

	// digitsPerWord is the granularity at which Div extends the scale of
	// its quotient.
	digitsPerWord = 9
)

// Status is the outcome of a decimal operation.
type Status int

const (
	// StatusOK means the result is exact.
	StatusOK Status = iota
	// StatusTruncated means fractional digits beyond MaxScale were dropped.
	// It is not an error.
	StatusTruncated
	// StatusOverflow means the integer part of the result does not fit.
	StatusOverflow
	// StatusDivisionByZero means the divisor was zero. The result is unset.
	StatusDivisionByZero
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTruncated:
		return "truncated"
	case StatusOverflow:
		return "overflow"
	case StatusDivisionByZero:
		return "division by zero"
	default:
		return "unknown"
	}
}

// RoundMode selects how Round discards digits.
type RoundMode int

const (
	// HalfUp rounds half away from zero.
	HalfUp RoundMode = iota
	// Truncate rounds toward zero.
	Truncate
	// Ceiling rounds toward positive infinity.
	Ceiling
	// Floor rounds toward negative infinity.
	Floor
)

// workPrecision exceeds the digits of any exact intermediate: a product of
// two maximal operands, or a quotient extended by Div.
const workPrecision = 256

func makeContext(r apd.Rounder) *apd.Context {
	return &apd.Context{
		Precision:   workPrecision,
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Rounding:    r,
	}
}

var (
	halfUpCtx   = makeContext(apd.RoundHalfUp)
	downCtx     = makeContext(apd.RoundDown)
	ceilingCtx  = makeContext(apd.RoundCeiling)
	floorCtx    = makeContext(apd.RoundFloor)
	roundingCtx = [...]*apd.Context{
		HalfUp:   halfUpCtx,
		Truncate: downCtx,
		Ceiling:  ceilingCtx,
		Floor:    floorCtx,
	}
)

// Scale returns the number of fractional digits of d.
func Scale(d *apd.Decimal) int32 {
	if d.Exponent >= 0 {
		return 0
	}
	return -d.Exponent
}

// IntDigits returns the number of digits of d left of the decimal point.
func IntDigits(d *apd.Decimal) int64 {
	if d.IsZero() {
		return 0
	}
	n := d.NumDigits() + int64(d.Exponent)
	if n < 0 {
		return 0
	}
	return n
}

// finish brings res into the bounded representation: a non-positive
// exponent, at most MaxScale fractional digits, and at most MaxPrecision
// integer digits.
func finish(res *apd.Decimal, cond apd.Condition, err error) Status {
	if err != nil || res.Form != apd.Finite || cond.Overflow() {
		return StatusOverflow
	}
	if res.Exponent > 0 {
		if _, err := halfUpCtx.Quantize(res, res, 0); err != nil || res.Form != apd.Finite {
			return StatusOverflow
		}
	}
	status := StatusOK
	if res.Exponent < -MaxScale {
		cond, err := downCtx.Quantize(res, res, -MaxScale)
		if err != nil || res.Form != apd.Finite {
			return StatusOverflow
		}
		if cond.Inexact() {
			status = StatusTruncated
		}
	}
	if IntDigits(res) > MaxPrecision {
		return StatusOverflow
	}
	if res.IsZero() {
		res.Negative = false
	}
	return status
}

// Add sets res to a+b.
func Add(res, a, b *apd.Decimal) Status {
	cond, err := halfUpCtx.Add(res, a, b)
	return finish(res, cond, err)
}

// Sub sets res to a-b.
func Sub(res, a, b *apd.Decimal) Status {
	cond, err := halfUpCtx.Sub(res, a, b)
	return finish(res, cond, err)
}

// Mul sets res to a*b.
func Mul(res, a, b *apd.Decimal) Status {
	cond, err := halfUpCtx.Mul(res, a, b)
	return finish(res, cond, err)
}

// Div sets res to a/b truncated to a scale of scale(a)+scale(b)+scaleIncr,
// rounded up to a multiple of nine digits. Callers round the quotient to
// their own result scale.
func Div(res, a, b *apd.Decimal, scaleIncr uint32) Status {
	if b.IsZero() {
		return StatusDivisionByZero
	}
	frac := int64(Scale(a)) + int64(Scale(b)) + int64(scaleIncr)
	frac = (frac + digitsPerWord - 1) / digitsPerWord * digitsPerWord
	// Truncating twice is the same as truncating once, provided the first
	// truncation keeps at least frac fractional digits, which workPrecision
	// guarantees.
	if _, err := downCtx.Quo(res, a, b); err != nil {
		return StatusOverflow
	}
	cond, err := downCtx.Quantize(res, res, -int32(frac))
	return finish(res, cond, err)
}

// Mod sets res to the remainder of a/b. The remainder takes the sign of a.
func Mod(res, a, b *apd.Decimal) Status {
	if b.IsZero() {
		return StatusDivisionByZero
	}
	cond, err := halfUpCtx.Rem(res, a, b)
	return finish(res, cond, err)
}

// Round sets res to a rounded to scale fractional digits. A negative scale
// rounds to a multiple of 10^-scale.
func Round(res, a *apd.Decimal, scale int32, mode RoundMode) Status {
	cond, err := roundingCtx[mode].Quantize(res, a, -scale)
	return finish(res, cond, err)
}

// Cmp compares a and b.
func Cmp(a, b *apd.Decimal) int {
	return a.Cmp(b)
}

// FromInt sets res to the value of i.
func FromInt(res *apd.Decimal, i arith.Int) *apd.Decimal {
	res.Form = apd.Finite
	res.Negative = i.Negative()
	res.Exponent = 0
	res.Coeff.SetUint64(i.Abs())
	return res
}

// ToInt rounds d half away from zero to an integer of the requested
// signedness. Out of range values are clamped and reported with
// StatusOverflow.
func ToInt(d *apd.Decimal, unsigned bool) (arith.Int, Status) {
	var r apd.Decimal
	if _, err := halfUpCtx.Quantize(&r, d, 0); err != nil || r.Form != apd.Finite {
		if d.Negative {
			return arith.Signed(math.MinInt64), StatusOverflow
		}
		return arith.Unsigned(math.MaxUint64), StatusOverflow
	}
	if r.IsZero() {
		return arith.Int{Unsigned: unsigned}, StatusOK
	}
	fits := r.Coeff.IsUint64()
	mag := r.Coeff.Uint64()
	switch {
	case r.Negative && unsigned:
		return arith.Unsigned(0), StatusOverflow
	case r.Negative:
		if !fits || mag > 1<<63 {
			return arith.Signed(math.MinInt64), StatusOverflow
		}
		return arith.Int{Bits: ^mag + 1}, StatusOK
	case unsigned:
		if !fits {
			return arith.Unsigned(math.MaxUint64), StatusOverflow
		}
		return arith.Unsigned(mag), StatusOK
	default:
		if !fits || mag > math.MaxInt64 {
			return arith.Signed(math.MaxInt64), StatusOverflow
		}
		return arith.Signed(int64(mag)), StatusOK
	}
}

// FromFloat sets res to the shortest decimal that round-trips to f.
// Infinities and NaN report StatusOverflow.
func FromFloat(res *apd.Decimal, f float64) Status {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return StatusOverflow
	}
	_, err := res.SetFloat64(f)
	return finish(res, 0, err)
}

// ToFloat returns the float64 nearest to d. Values beyond the float64 range
// become infinities.
func ToFloat(d *apd.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
