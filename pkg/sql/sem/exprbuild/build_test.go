// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exprbuild

import (
	"testing"

	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/stretchr/testify/require"
)

var testCols = ColumnList{
	{Name: "a", Idx: 0, Type: types.MakeInt(types.FieldTypeLongLong, false)},
	{Name: "Price", Idx: 1, Table: 1, Type: types.MakeDecimal(9, 2)},
}

func TestBuild(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "plus(a, 1)", expected: "(a + 1)"},
		{in: "  MUL( price ,-2.50 ) ", expected: "(Price * -2.50)"},
		{in: "round(div(a, 3), 2)", expected: "round((a / 3), 2)"},
		{in: "neg(-9223372036854775808)", expected: "-(-9223372036854775808)"},
		{in: "intdiv(18446744073709551615, 2.5e0)", expected: "(18446744073709551615 DIV 2.5)"},
		{in: "ceil(null)", expected: "ceiling(NULL)"},
		{in: "pi()", expected: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			e, err := Build(tc.in, testCols)
			if tc.expected == "" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, e.String())
		})
	}
}

func TestLiteralTypes(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "9223372036854775807", expected: "bigint"},
		{in: "-9223372036854775808", expected: "bigint"},
		{in: "9223372036854775808", expected: "bigint unsigned"},
		{in: "18446744073709551616", expected: "decimal(20,0)"},
		{in: "-9223372036854775809", expected: "decimal(19,0)"},
		{in: "12345.67", expected: "decimal(7,2)"},
		{in: "1e3", expected: "double"},
	}
	for _, tc := range testCases {
		d, err := ParseNumber(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.expected, tree.DatumType(d).SQLString(), tc.in)
	}
}

func TestBuildErrors(t *testing.T) {
	testCases := []struct {
		in   string
		code pgcode.Code
		msg  string
	}{
		{in: "plus(a, b)", code: pgcode.UndefinedColumn, msg: `column "b" does not exist`},
		{in: "concat(a)", code: pgcode.UndefinedFunction, msg: "unknown function: concat()"},
		{in: "plus(a 1)", code: pgcode.Syntax, msg: `at or near position 8: expected , or ), found "1"`},
		{in: "plus(a, 1", code: pgcode.Syntax, msg: "at or near position 10: expected , or ), found end of input"},
		{in: "a)", code: pgcode.Syntax, msg: `at or near position 2: unexpected ")"`},
		{in: "plus(a, $)", code: pgcode.Syntax, msg: `at or near position 9: unexpected character "$"`},
		{in: "1.2.3", code: pgcode.InvalidTextRepresentation},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Build(tc.in, testCols)
			require.Error(t, err)
			require.Equal(t, tc.code, pgerror.GetPGCode(err), "%v", err)
			if tc.msg != "" {
				require.EqualError(t, err, tc.msg)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{
		"plus(a, mul(Price, 2.5e+00))",
		"round(neg(a), -2)",
		"truncate(div(Price, NULL), 1)",
		"atan(1, log(2, a))",
	} {
		e := MustBuild(s, testCols)
		require.Equal(t, s, tree.AsStringWithFlags(e, tree.FmtFunctionStyle))
		again := MustBuild(tree.AsStringWithFlags(e, tree.FmtFunctionStyle), testCols)
		require.True(t, tree.Equal(e, again))
	}
}
