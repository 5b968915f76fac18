// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import "golang.org/x/exp/constraints"

func clamp[N constraints.Integer](v, lo, hi N) N {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// saturate bounds a precision and scale pair by MaxPrecision and MaxScale
// while keeping 1 <= precision and scale <= precision.
func saturate[N constraints.Integer](precision, scale N) (int32, int32) {
	s := int32(clamp(scale, 0, MaxScale))
	p := int32(clamp(precision, N(max(s, 1)), MaxPrecision))
	return p, s
}

// IntegerResultPrecision bounds the display precision of an integer result
// by the width of a 64-bit integer of the given signedness.
func IntegerResultPrecision(precision int32, unsigned bool) int32 {
	if unsigned {
		return clamp(precision, 1, MaxUintPrecision)
	}
	return clamp(precision, 1, MaxIntPrecision)
}

// AdditiveResult returns the precision and scale of a+b and a-b.
func AdditiveResult(a, b *T) (precision, scale int32) {
	scale = max(a.Scale, b.Scale)
	intDigits := int64(max(a.IntDigits(), b.IntDigits())) + 1
	return saturate(intDigits+int64(scale), int64(scale))
}

// MultiplicativeResult returns the precision and scale of a*b.
func MultiplicativeResult(a, b *T) (precision, scale int32) {
	return saturate(int64(a.Precision)+int64(b.Precision), int64(a.Scale)+int64(b.Scale))
}

// DivisionResult returns the precision and scale of a/b, where incr is the
// number of fractional digits division adds to the dividend's scale.
func DivisionResult(a, b *T, incr uint32) (precision, scale int32) {
	return saturate(
		int64(a.Precision)+int64(b.Scale)+int64(incr),
		int64(a.Scale)+int64(incr),
	)
}

// ModuloResult returns the precision and scale of a%b. A signed dividend
// taken modulo an unsigned divisor that is at least as wide and has no
// integer digits needs room for a sign.
func ModuloResult(a, b *T) (precision, scale int32) {
	scale = max(a.Scale, b.Scale)
	p := int64(max(a.Precision, b.Precision))
	if !a.Unsigned && b.Unsigned && a.Precision <= b.Precision && b.Scale == b.Precision {
		p++
	}
	return saturate(p, int64(scale))
}

// RoundResult returns the precision and scale of rounding a decimal of type
// a to decimals fractional digits. Rounding away digits may carry into a new
// integer digit, truncating never does.
func RoundResult(a *T, decimals int64, truncate bool) (precision, scale int32) {
	s := int64(clamp(decimals, 0, MaxScale))
	delta := int64(a.Scale) - s
	p := int64(a.Precision) - delta
	if delta > 0 && !truncate {
		p++
	}
	return saturate(p, s)
}

// IntValResult returns the precision and scale of CEILING and FLOOR over a
// decimal of type a.
func IntValResult(a *T) (precision, scale int32) {
	return saturate(int64(a.IntDigits())+1, 0)
}
