// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/stretchr/testify/require"
)

func TestParseDatum(t *testing.T) {
	testCases := []struct {
		typ      string
		in       string
		expected string
		code     pgcode.Code
	}{
		{typ: "bigint", in: "-42", expected: "-42"},
		{typ: "bigint", in: "NULL", expected: "NULL"},
		{typ: "bigint", in: "9223372036854775808", code: pgcode.NumericValueOutOfRange},
		{typ: "bigint unsigned", in: "18446744073709551615", expected: "18446744073709551615"},
		{typ: "bigint unsigned", in: "-1", code: pgcode.InvalidTextRepresentation},
		{typ: "bigint", in: "1.5", code: pgcode.InvalidTextRepresentation},
		{typ: "decimal(7,2)", in: "12345.67", expected: "12345.67"},
		{typ: "decimal(7,2)", in: "1.005", expected: "1.01"},
		{typ: "decimal(7,2)", in: "3", expected: "3.00"},
		{typ: "decimal(5,2)", in: "999.995", code: pgcode.NumericValueOutOfRange},
		{typ: "decimal(5,2)", in: "abc", code: pgcode.InvalidTextRepresentation},
		{typ: "double", in: "2.5e3", expected: "2500"},
		{typ: "double", in: "1e400", code: pgcode.NumericValueOutOfRange},
		{typ: "geometry", in: "1", code: pgcode.InvalidParameterValue},
	}
	for _, tc := range testCases {
		t.Run(tc.typ+"/"+tc.in, func(t *testing.T) {
			typ, err := types.ParseT(tc.typ)
			require.NoError(t, err)
			d, err := ParseDatum(typ, tc.in)
			if tc.expected == "" {
				require.Error(t, err)
				require.Equal(t, tc.code, pgerror.GetPGCode(err), "%v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, d.String())
		})
	}
}

func TestDatumType(t *testing.T) {
	testCases := []struct {
		d        Datum
		expected string
		prec     int32
	}{
		{d: NewDInt(-123), expected: "bigint", prec: 3},
		{d: NewDUint(18446744073709551615), expected: "bigint unsigned", prec: 20},
		{d: mustDecimalNoT("12345.67"), expected: "decimal(7,2)", prec: 7},
		{d: mustDecimalNoT("1.005"), expected: "decimal(4,3)", prec: 4},
		{d: mustDecimalNoT("0.05"), expected: "decimal(2,2)", prec: 2},
		{d: mustDecimalNoT("1E+3"), expected: "decimal(4,0)", prec: 4},
		{d: NewDFloat(1.5), expected: "double"},
		{d: DNull, expected: "bigint", prec: 1},
	}
	for _, tc := range testCases {
		typ := DatumType(tc.d)
		require.Equal(t, tc.expected, typ.SQLString(), tc.d.String())
		require.Equal(t, tc.prec, typ.Precision, tc.d.String())
	}
	require.True(t, DatumType(DNull).Nullable)
}

func mustDecimalNoT(s string) *DDecimal {
	d, err := ParseDDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormat(t *testing.T) {
	e := NewExpr(OpRound,
		NewExpr(OpDiv, NewColumn(colB), NewConst(NewDFloat(2.5))),
		NewConst(NewDInt(1)),
	)
	require.Equal(t, "round((b / 2.5), 1)", e.String())
	require.Equal(t, "round(div(b, 2.5e+00), 1)", AsStringWithFlags(e, FmtFunctionStyle))

	require.NoError(t, FixFields(e, testResolve))
	require.Equal(t, "round((b[decimal(9,2)] / 2.5[double])[decimal(9,2)], 1[bigint])[decimal(9,2)]",
		AsStringWithFlags(e, FmtShowTypes))

	anon := NewExpr(OpIntDiv, NewColumn(&ColumnRef{Idx: 2}), NewExpr(OpNeg, NewConst(NewDInt(4))))
	require.Equal(t, "(@3 DIV -4)", anon.String())
}

func TestOperatorByName(t *testing.T) {
	for op := OpPlus; op < NumOperators; op++ {
		got, ok := OperatorByName(op.String())
		require.True(t, ok, op.String())
		require.Equal(t, op, got)
	}
	op, ok := OperatorByName("CEIL")
	require.True(t, ok)
	require.Equal(t, OpCeiling, op)

	_, ok = OperatorByName("const")
	require.False(t, ok)
	_, ok = OperatorByName("concat")
	require.False(t, ok)
}
