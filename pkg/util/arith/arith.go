// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package arith implements 64-bit integer arithmetic over values that may be
// either signed or unsigned, reporting overflow instead of wrapping.
//
// Every operation works on the unsigned bit pattern of its operands and
// derives the sign of the result from the operand signs. Signed overflow is
// never used as a detection mechanism.
package arith

import (
	"math"
	"strconv"
)

const signBit = uint64(1) << 63

// Int is a 64-bit integer together with the signedness used to interpret its
// bits. The bit pattern 1<<63 is 9223372036854775808 when Unsigned is set and
// math.MinInt64 otherwise.
type Int struct {
	Bits     uint64
	Unsigned bool
}

// Signed returns the Int for a signed value.
func Signed(v int64) Int {
	return Int{Bits: uint64(v)}
}

// Unsigned returns the Int for an unsigned value.
func Unsigned(v uint64) Int {
	return Int{Bits: v, Unsigned: true}
}

// Int64 returns the bits reinterpreted as a signed integer.
func (i Int) Int64() int64 {
	return int64(i.Bits)
}

// Negative returns whether i is below zero.
func (i Int) Negative() bool {
	return !i.Unsigned && i.Bits&signBit != 0
}

// IsZero returns whether i is zero.
func (i Int) IsZero() bool {
	return i.Bits == 0
}

// Abs returns the magnitude of i. It is exact for math.MinInt64, whose
// magnitude does not fit in an int64.
func (i Int) Abs() uint64 {
	if i.Negative() {
		return ^i.Bits + 1
	}
	return i.Bits
}

// Sign returns -1, 0 or 1.
func (i Int) Sign() int {
	switch {
	case i.Bits == 0:
		return 0
	case i.Negative():
		return -1
	default:
		return 1
	}
}

// String implements fmt.Stringer.
func (i Int) String() string {
	if i.Unsigned {
		return strconv.FormatUint(i.Bits, 10)
	}
	return strconv.FormatInt(int64(i.Bits), 10)
}

// fromMagnitude builds the result with magnitude mag and the given sign. A
// non-negative result is reported as unsigned so that Fit can place it in
// either kind of column. ok is false when a negative magnitude exceeds 2^63.
func fromMagnitude(mag uint64, negative bool) (_ Int, ok bool) {
	if !negative {
		return Int{Bits: mag, Unsigned: true}, true
	}
	if mag > signBit {
		return Int{}, false
	}
	return Int{Bits: ^mag + 1}, true
}

// sumOverflows returns whether a+b does not fit in a uint64.
func sumOverflows(a, b uint64) bool {
	return math.MaxUint64-a < b
}

// Fit converts a result carrying its natural signedness into a value of the
// requested signedness. ok is false if the result cannot be represented.
func Fit(res Int, unsigned bool) (_ Int, ok bool) {
	if unsigned && !res.Unsigned && res.Bits&signBit != 0 {
		return Int{}, false
	}
	if !unsigned && res.Unsigned && res.Bits > math.MaxInt64 {
		return Int{}, false
	}
	return Int{Bits: res.Bits, Unsigned: unsigned}, true
}

// Add returns a+b. The result is unsigned when it is known to be
// non-negative. ok is false if the sum fits in neither int64 nor uint64.
func Add(a, b Int) (_ Int, ok bool) {
	res := a.Bits + b.Bits
	resUnsigned := false
	switch {
	case a.Unsigned:
		if b.Unsigned || !b.Negative() {
			if sumOverflows(a.Bits, b.Bits) {
				return Int{}, false
			}
			resUnsigned = true
		} else if a.Bits > math.MaxInt64 {
			// a >= 2^63 and b >= -2^63, so a+b >= 0.
			resUnsigned = true
		}
	case b.Unsigned:
		if !a.Negative() {
			if sumOverflows(a.Bits, b.Bits) {
				return Int{}, false
			}
			resUnsigned = true
		} else if b.Bits > math.MaxInt64 {
			resUnsigned = true
		}
	default:
		if !a.Negative() && !b.Negative() {
			resUnsigned = true
		} else if a.Negative() && b.Negative() && res&signBit == 0 {
			return Int{}, false
		}
	}
	return Int{Bits: res, Unsigned: resUnsigned}, true
}

// Sub returns a-b with the same conventions as Add.
func Sub(a, b Int) (_ Int, ok bool) {
	res := a.Bits - b.Bits
	resUnsigned := false
	switch {
	case a.Unsigned && b.Unsigned:
		if a.Bits < b.Bits {
			// The difference is negative; it must not go below MinInt64.
			if res&signBit == 0 {
				return Int{}, false
			}
		} else {
			resUnsigned = true
		}
	case a.Unsigned:
		if !b.Negative() {
			if a.Bits > b.Bits {
				resUnsigned = true
			}
		} else {
			if sumOverflows(a.Bits, b.Abs()) {
				return Int{}, false
			}
			res = a.Bits + b.Abs()
			resUnsigned = true
		}
	case b.Unsigned:
		// a - b >= MinInt64 iff a - MinInt64 >= b. Flipping the sign bit
		// computes a - MinInt64 without leaving the unsigned domain.
		if a.Bits^signBit < b.Bits {
			return Int{}, false
		}
	default:
		if !a.Negative() && b.Negative() {
			res = a.Bits + b.Abs()
			resUnsigned = true
		} else if a.Negative() && !b.Negative() && b.Bits != 0 && res&signBit == 0 {
			return Int{}, false
		}
	}
	return Int{Bits: res, Unsigned: resUnsigned}, true
}

// Mul returns a*b with the same conventions as Add.
//
// Writing a = a1*2^32 + a0 and b = b1*2^32 + b0, the product of the
// magnitudes is a1*b1*2^64 + (a1*b0 + a0*b1)*2^32 + a0*b0, which overflows
// a uint64 iff a1 and b1 are both non-zero, or the cross term exceeds 32
// bits, or the final recombination overflows.
func Mul(a, b Int) (_ Int, ok bool) {
	negative := a.Negative() != b.Negative()
	ua, ub := a.Abs(), b.Abs()

	a0, a1 := ua&math.MaxUint32, ua>>32
	b0, b1 := ub&math.MaxUint32, ub>>32
	if a1 != 0 && b1 != 0 {
		return Int{}, false
	}
	cross := a1*b0 + a0*b1
	if cross > math.MaxUint32 {
		return Int{}, false
	}
	hi := cross << 32
	lo := a0 * b0
	if sumOverflows(hi, lo) {
		return Int{}, false
	}
	return fromMagnitude(hi+lo, negative)
}

// Div returns a/b truncated toward zero. b must not be zero.
func Div(a, b Int) (_ Int, ok bool) {
	return fromMagnitude(a.Abs()/b.Abs(), a.Negative() != b.Negative())
}

// Mod returns the remainder of a/b truncated toward zero; the result takes
// the sign of the dividend. b must not be zero.
func Mod(a, b Int) (_ Int, ok bool) {
	return fromMagnitude(a.Abs()%b.Abs(), a.Negative())
}

// Neg returns -a. Negating a signed math.MinInt64, or an unsigned value
// above 2^63, overflows.
func Neg(a Int) (_ Int, ok bool) {
	if a.Unsigned {
		if a.Bits == 0 {
			return Int{}, true
		}
		return fromMagnitude(a.Bits, true)
	}
	if a.Bits == signBit {
		return Int{}, false
	}
	return fromMagnitude(a.Abs(), !a.Negative())
}

// Abs returns |a|. The absolute value of a signed math.MinInt64 overflows.
func Abs(a Int) (_ Int, ok bool) {
	if a.Unsigned {
		return a, true
	}
	if a.Bits == signBit {
		return Int{}, false
	}
	return Int{Bits: a.Abs()}, true
}

// pow10 holds the powers of ten representable in a uint64.
var pow10 = [...]uint64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
	10000000000,
	100000000000,
	1000000000000,
	10000000000000,
	100000000000000,
	1000000000000000,
	10000000000000000,
	100000000000000000,
	1000000000000000000,
	10000000000000000000,
}

// RoundPow10 rounds a to a multiple of 10^exp. With truncate the magnitude
// is rounded toward zero, otherwise half away from zero. Exponents past the
// table yield zero. ok is false if the rounded magnitude overflows.
func RoundPow10(a Int, exp uint64, truncate bool) (_ Int, ok bool) {
	if exp >= uint64(len(pow10)) {
		return Int{Unsigned: true}, true
	}
	k := pow10[exp]
	mag := a.Abs()
	res := mag / k * k
	if !truncate && k > 1 && mag-res >= k>>1 {
		if sumOverflows(res, k) {
			return Int{}, false
		}
		res += k
	}
	return fromMagnitude(res, a.Negative())
}
