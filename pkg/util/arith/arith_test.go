// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package arith

import (
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func toBig(i Int) *big.Int {
	if i.Unsigned {
		return new(big.Int).SetUint64(i.Bits)
	}
	return big.NewInt(int64(i.Bits))
}

var (
	minInt64 = new(big.Int).SetInt64(math.MinInt64)
	maxUint  = new(big.Int).SetUint64(math.MaxUint64)
)

// representable returns whether v fits in either an int64 or a uint64.
func representable(v *big.Int) bool {
	return v.Cmp(minInt64) >= 0 && v.Cmp(maxUint) <= 0
}

func TestAdd(t *testing.T) {
	testCases := []struct {
		a, b     Int
		expected string
		overflow bool
	}{
		{a: Signed(1), b: Signed(2), expected: "3"},
		{a: Signed(math.MaxInt64), b: Signed(1), expected: "9223372036854775808"},
		{a: Signed(math.MinInt64), b: Signed(-1), overflow: true},
		{a: Signed(-1), b: Signed(1), expected: "0"},
		{a: Unsigned(math.MaxUint64), b: Signed(0), expected: "18446744073709551615"},
		{a: Unsigned(math.MaxUint64), b: Unsigned(1), overflow: true},
		{a: Unsigned(math.MaxUint64), b: Signed(-1), expected: "18446744073709551614"},
		{a: Unsigned(1), b: Signed(-2), expected: "-1"},
		{a: Signed(-2), b: Unsigned(1), expected: "-1"},
		{a: Signed(math.MinInt64), b: Unsigned(math.MaxUint64), expected: "9223372036854775807"},
		{a: Signed(5), b: Unsigned(math.MaxUint64 - 4), overflow: true},
	}
	for _, tc := range testCases {
		res, ok := Add(tc.a, tc.b)
		if tc.overflow {
			require.False(t, ok, "%s + %s", tc.a, tc.b)
			continue
		}
		require.True(t, ok, "%s + %s", tc.a, tc.b)
		require.Equal(t, tc.expected, res.String(), "%s + %s", tc.a, tc.b)
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		a, b     Int
		expected string
		overflow bool
	}{
		{a: Signed(3), b: Signed(5), expected: "-2"},
		{a: Signed(math.MinInt64), b: Signed(1), overflow: true},
		{a: Signed(0), b: Signed(math.MinInt64), expected: "9223372036854775808"},
		{a: Signed(math.MaxInt64), b: Signed(-1), expected: "9223372036854775808"},
		{a: Unsigned(3), b: Unsigned(5), expected: "-2"},
		{a: Unsigned(0), b: Unsigned(math.MaxUint64), overflow: true},
		{a: Unsigned(0), b: Unsigned(1 << 63), expected: "-9223372036854775808"},
		{a: Unsigned(10), b: Signed(-5), expected: "15"},
		{a: Unsigned(math.MaxUint64), b: Signed(-1), overflow: true},
		{a: Unsigned(1), b: Signed(2), expected: "-1"},
		{a: Signed(-1), b: Unsigned(math.MaxInt64), expected: "-9223372036854775808"},
		{a: Signed(-2), b: Unsigned(math.MaxInt64), overflow: true},
	}
	for _, tc := range testCases {
		res, ok := Sub(tc.a, tc.b)
		if tc.overflow {
			require.False(t, ok, "%s - %s", tc.a, tc.b)
			continue
		}
		require.True(t, ok, "%s - %s", tc.a, tc.b)
		require.Equal(t, tc.expected, res.String(), "%s - %s", tc.a, tc.b)
	}
}

func TestMul(t *testing.T) {
	testCases := []struct {
		a, b     Int
		expected string
		overflow bool
	}{
		{a: Signed(-3), b: Signed(4), expected: "-12"},
		{a: Signed(-3), b: Signed(-4), expected: "12"},
		{a: Signed(0), b: Signed(math.MinInt64), expected: "0"},
		{a: Signed(1 << 32), b: Signed(1 << 32), overflow: true},
		{a: Signed(1 << 31), b: Signed(-(1 << 32)), expected: "-9223372036854775808"},
		{a: Signed(1 << 31), b: Signed(1 << 32), expected: "9223372036854775808"},
		{a: Unsigned(math.MaxUint64), b: Signed(1), expected: "18446744073709551615"},
		{a: Unsigned(math.MaxUint64), b: Signed(-1), overflow: true},
		{a: Unsigned(math.MaxUint32 + 1), b: Unsigned(math.MaxUint32), expected: "18446744069414584320"},
		{a: Unsigned(1 << 40), b: Unsigned(1 << 24), overflow: true},
	}
	for _, tc := range testCases {
		res, ok := Mul(tc.a, tc.b)
		if tc.overflow {
			require.False(t, ok, "%s * %s", tc.a, tc.b)
			continue
		}
		require.True(t, ok, "%s * %s", tc.a, tc.b)
		require.Equal(t, tc.expected, res.String(), "%s * %s", tc.a, tc.b)
	}
}

func TestDivMod(t *testing.T) {
	res, ok := Div(Signed(-7), Signed(2))
	require.True(t, ok)
	require.Equal(t, "-3", res.String())

	res, ok = Div(Signed(math.MinInt64), Signed(1))
	require.True(t, ok)
	require.Equal(t, "-9223372036854775808", res.String())

	// The quotient 2^63 is positive here, so Fit rejects it for a signed node.
	res, ok = Div(Signed(math.MinInt64), Signed(-1))
	require.True(t, ok)
	_, ok = Fit(res, false /* unsigned */)
	require.False(t, ok)

	_, ok = Div(Unsigned(math.MaxUint64), Signed(-1))
	require.False(t, ok)

	res, ok = Mod(Signed(-7), Signed(2))
	require.True(t, ok)
	require.Equal(t, "-1", res.String())

	res, ok = Mod(Signed(7), Signed(-2))
	require.True(t, ok)
	require.Equal(t, "1", res.String())

	res, ok = Mod(Signed(math.MinInt64), Unsigned(math.MaxUint64))
	require.True(t, ok)
	require.Equal(t, "-9223372036854775808", res.String())
}

func TestNegAbs(t *testing.T) {
	_, ok := Neg(Signed(math.MinInt64))
	require.False(t, ok)

	res, ok := Neg(Unsigned(1 << 63))
	require.True(t, ok)
	require.Equal(t, Signed(math.MinInt64), res)

	_, ok = Neg(Unsigned(1<<63 + 1))
	require.False(t, ok)

	res, ok = Neg(Signed(-5))
	require.True(t, ok)
	res, ok = Fit(res, false /* unsigned */)
	require.True(t, ok)
	require.Equal(t, Signed(5), res)

	res, ok = Neg(Unsigned(0))
	require.True(t, ok)
	require.Equal(t, "0", res.String())

	_, ok = Abs(Signed(math.MinInt64))
	require.False(t, ok)

	res, ok = Abs(Signed(-9))
	require.True(t, ok)
	require.Equal(t, Signed(9), res)

	res, ok = Abs(Unsigned(math.MaxUint64))
	require.True(t, ok)
	require.Equal(t, Unsigned(math.MaxUint64), res)
}

func TestFit(t *testing.T) {
	_, ok := Fit(Unsigned(math.MaxInt64+1), false /* unsigned */)
	require.False(t, ok)
	_, ok = Fit(Signed(-1), true /* unsigned */)
	require.False(t, ok)

	res, ok := Fit(Unsigned(42), false /* unsigned */)
	require.True(t, ok)
	require.Equal(t, Signed(42), res)

	res, ok = Fit(Signed(42), true /* unsigned */)
	require.True(t, ok)
	require.Equal(t, Unsigned(42), res)
}

func TestRoundPow10(t *testing.T) {
	testCases := []struct {
		a        Int
		exp      uint64
		truncate bool
		expected string
		overflow bool
	}{
		{a: Signed(1250), exp: 2, expected: "1300"},
		{a: Signed(-1250), exp: 2, expected: "-1300"},
		{a: Signed(1249), exp: 2, expected: "1200"},
		{a: Signed(1299), exp: 2, truncate: true, expected: "1200"},
		{a: Signed(-1299), exp: 2, truncate: true, expected: "-1200"},
		{a: Signed(12345), exp: 0, expected: "12345"},
		{a: Signed(math.MaxInt64), exp: 20, expected: "0"},
		{a: Signed(math.MaxInt64), exp: 19, truncate: true, expected: "0"},
		{a: Signed(math.MaxInt64), exp: 19, expected: "10000000000000000000"},
		{a: Unsigned(math.MaxUint64), exp: 1, overflow: true},
		{a: Signed(math.MinInt64), exp: 1, overflow: true},
		{a: Signed(math.MinInt64), exp: 1, truncate: true, expected: "-9223372036854775800"},
	}
	for _, tc := range testCases {
		res, ok := RoundPow10(tc.a, tc.exp, tc.truncate)
		if tc.overflow {
			require.False(t, ok, "%s at 10^%d", tc.a, tc.exp)
			continue
		}
		require.True(t, ok, "%s at 10^%d", tc.a, tc.exp)
		require.Equal(t, tc.expected, res.String(), "%s at 10^%d", tc.a, tc.exp)
	}
}

func genInt() gopter.Gen {
	return gopter.CombineGens(gen.Int64(), gen.Bool()).Map(func(vals []interface{}) Int {
		return Int{Bits: uint64(vals[0].(int64)), Unsigned: vals[1].(bool)}
	})
}

func TestArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 2000
	properties := gopter.NewProperties(parameters)

	check := func(
		op func(a, b Int) (Int, bool), exact func(z, x, y *big.Int) *big.Int,
	) func(a, b Int) bool {
		return func(a, b Int) bool {
			want := exact(new(big.Int), toBig(a), toBig(b))
			res, ok := op(a, b)
			if !representable(want) {
				return !ok
			}
			return ok && toBig(res).Cmp(want) == 0
		}
	}

	properties.Property("add is exact or overflows", prop.ForAll(
		check(Add, (*big.Int).Add), genInt(), genInt(),
	))
	properties.Property("sub is exact or overflows", prop.ForAll(
		check(Sub, (*big.Int).Sub), genInt(), genInt(),
	))
	properties.Property("mul is exact or overflows", prop.ForAll(
		check(Mul, (*big.Int).Mul), genInt(), genInt(),
	))
	properties.Property("add then sub restores the operand", prop.ForAll(
		func(a, b Int) bool {
			sum, ok := Add(a, b)
			if !ok {
				return true
			}
			diff, ok := Sub(sum, b)
			return ok && toBig(diff).Cmp(toBig(a)) == 0
		},
		genInt(), genInt(),
	))
	properties.Property("mod takes the sign of the dividend", prop.ForAll(
		func(a, b Int) bool {
			if b.IsZero() {
				return true
			}
			res, ok := Mod(a, b)
			if !ok {
				return false
			}
			return res.Sign() == 0 || res.Negative() == a.Negative()
		},
		genInt(), genInt(),
	))

	properties.TestingRun(t)
}
