// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/numexpr/pkg/util/arith"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

var roundModes = []decimal.RoundMode{decimal.HalfUp, decimal.Truncate, decimal.Ceiling, decimal.Floor}

func TestRoundFloat(t *testing.T) {
	testCases := []struct {
		f        float64
		decimals int64
		mode     decimal.RoundMode
		expected float64
	}{
		{f: 2.5, mode: decimal.HalfUp, expected: 3},
		{f: -2.5, mode: decimal.HalfUp, expected: -3},
		{f: 2.449, decimals: 1, mode: decimal.Truncate, expected: 2.4},
		{f: 0.125, decimals: 2, mode: decimal.HalfUp, expected: 0.13},
		{f: 1234.5678, decimals: -2, mode: decimal.HalfUp, expected: 1200},
		{f: -1.5, mode: decimal.Ceiling, expected: -1},
		{f: -1.5, mode: decimal.Floor, expected: -2},
		// Scaling by 10^400 overflows, so the value is returned unchanged.
		{f: 1.5, decimals: 400, mode: decimal.HalfUp, expected: 1.5},
		{f: 1.5, decimals: -400, mode: decimal.HalfUp, expected: 0},
		{f: 5, decimals: math.MinInt64, mode: decimal.HalfUp, expected: 0},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, RoundFloat(tc.f, tc.decimals, tc.mode),
			"round(%g, %d) mode %d", tc.f, tc.decimals, tc.mode)
	}
}

// Truncating a double to positive decimals scales it by a power of ten
// that is not exact in binary, so a second truncation can drop another
// unit in the last place.
func TestTruncateFloatNotIdempotent(t *testing.T) {
	once := RoundFloat(88311.14600176993, 4, decimal.Truncate)
	require.Equal(t, 88311.146, once)
	require.Equal(t, 88311.1459, RoundFloat(once, 4, decimal.Truncate))
}

func TestRoundInt(t *testing.T) {
	testCases := []struct {
		v        arith.Int
		decimals int64
		mode     decimal.RoundMode
		expected string
	}{
		{v: arith.Signed(123), decimals: -1, mode: decimal.HalfUp, expected: "120"},
		{v: arith.Signed(125), decimals: -1, mode: decimal.HalfUp, expected: "130"},
		{v: arith.Signed(-125), decimals: -1, mode: decimal.HalfUp, expected: "-130"},
		{v: arith.Signed(-987), decimals: -2, mode: decimal.Truncate, expected: "-900"},
		{v: arith.Signed(987), decimals: -2, mode: decimal.Ceiling, expected: "1000"},
		{v: arith.Signed(-987), decimals: -2, mode: decimal.Ceiling, expected: "-900"},
		{v: arith.Signed(987), decimals: -2, mode: decimal.Floor, expected: "900"},
		{v: arith.Signed(-987), decimals: -2, mode: decimal.Floor, expected: "-1000"},
		{v: arith.Signed(-5), decimals: -25, mode: decimal.Ceiling, expected: "0"},
		{v: arith.Signed(5), decimals: -25, mode: decimal.Ceiling},
		{v: arith.Signed(7), decimals: 3, mode: decimal.HalfUp, expected: "7"},
		{v: arith.Unsigned(15), decimals: -1, mode: decimal.HalfUp, expected: "20"},
		{v: arith.Unsigned(math.MaxUint64), decimals: -1, mode: decimal.HalfUp},
		{v: arith.Signed(math.MaxInt64), decimals: -1, mode: decimal.HalfUp},
		{v: arith.Signed(math.MaxInt64), decimals: -1, mode: decimal.Truncate, expected: "9223372036854775800"},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/%d/%d", tc.v, tc.decimals, tc.mode), func(t *testing.T) {
			res, ok := RoundInt(tc.v, tc.decimals, tc.mode)
			if tc.expected == "" {
				require.False(t, ok, "expected overflow, got %s", res)
				return
			}
			require.True(t, ok)
			require.Equal(t, tc.expected, res.String())
			require.Equal(t, tc.v.Unsigned, res.Unsigned)
		})
	}
}

func TestRoundDecimal(t *testing.T) {
	testCases := []struct {
		in       string
		decimals int64
		maxScale int32
		mode     decimal.RoundMode
		expected string
	}{
		{in: "1.25", decimals: 1, maxScale: 2, mode: decimal.HalfUp, expected: "1.3"},
		{in: "1.25", decimals: 5, maxScale: 2, mode: decimal.HalfUp, expected: "1.25"},
		{in: "-1.25", decimals: 1, maxScale: 2, mode: decimal.HalfUp, expected: "-1.3"},
		{in: "12345.67", decimals: -2, mode: decimal.HalfUp, expected: "12300"},
		{in: "12345.67", decimals: -100, mode: decimal.HalfUp, expected: "0"},
		{in: "-0.5", mode: decimal.Ceiling, expected: "0"},
		{in: "2.5", mode: decimal.Truncate, expected: "2"},
		{in: "2.5", mode: decimal.Floor, expected: "2"},
		{in: "-2.5", mode: decimal.Floor, expected: "-3"},
		{in: strings.Repeat("9", decimal.MaxPrecision) + ".5", mode: decimal.HalfUp},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			a, _, err := apd.NewFromString(tc.in)
			require.NoError(t, err)
			var res apd.Decimal
			status := RoundDecimal(&res, a, tc.decimals, tc.maxScale, tc.mode)
			if tc.expected == "" {
				require.Equal(t, decimal.StatusOverflow, status)
				return
			}
			require.Equal(t, decimal.StatusOK, status)
			require.Equal(t, tc.expected, res.Text('f'))
		})
	}
}

func TestRoundIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	genMode := gen.IntRange(0, len(roundModes)-1).Map(func(i int) decimal.RoundMode {
		return roundModes[i]
	})

	properties.Property("float half up", prop.ForAll(
		func(f float64, decimals int64) bool {
			r := RoundFloat(f, decimals, decimal.HalfUp)
			return RoundFloat(r, decimals, decimal.HalfUp) == r
		},
		gen.Float64Range(-1e6, 1e6), gen.Int64Range(-5, 6),
	))
	properties.Property("float truncate to an integer", prop.ForAll(
		func(f float64, decimals int64) bool {
			r := RoundFloat(f, decimals, decimal.Truncate)
			return RoundFloat(r, decimals, decimal.Truncate) == r
		},
		gen.Float64Range(-1e6, 1e6), gen.Int64Range(-5, 0),
	))
	properties.Property("int", prop.ForAll(
		func(v int64, unsigned bool, decimals int64, mode decimal.RoundMode) bool {
			i := arith.Int{Bits: uint64(v), Unsigned: unsigned}
			r, ok := RoundInt(i, decimals, mode)
			if !ok {
				return true
			}
			again, ok := RoundInt(r, decimals, mode)
			return ok && again == r
		},
		gen.Int64(), gen.Bool(), gen.Int64Range(-25, 3), genMode,
	))
	properties.Property("decimal", prop.ForAll(
		func(coeff int64, exp int32, decimals int64, mode decimal.RoundMode) bool {
			a := apd.New(coeff, exp)
			var r, again apd.Decimal
			if RoundDecimal(&r, a, decimals, decimal.MaxScale, mode) != decimal.StatusOK {
				return false
			}
			if RoundDecimal(&again, &r, decimals, decimal.MaxScale, mode) != decimal.StatusOK {
				return false
			}
			return again.Cmp(&r) == 0
		},
		gen.Int64(), gen.Int32Range(-8, 0), gen.Int64Range(-8, 8), genMode,
	))

	properties.TestingRun(t)
}
