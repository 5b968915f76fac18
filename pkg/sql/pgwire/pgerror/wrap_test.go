// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	testData := []struct {
		err          error
		expectedCode pgcode.Code
	}{
		{errors.New("woo"), pgcode.Syntax},
		{pgerror.New(pgcode.DivisionByZero, "division by zero"), pgcode.DivisionByZero},
		{errors.Wrap(pgerror.New(pgcode.NumericValueOutOfRange, "oops"), "context"), pgcode.NumericValueOutOfRange},
	}

	for i, test := range testData {
		werr := pgerror.Wrap(test.err, pgcode.Syntax, "woo")
		require.Equal(t, test.expectedCode, pgerror.GetPGCode(werr), "%d", i)
		require.True(t, errors.Is(werr, test.err), "%d: original error not preserved", i)
		require.Equal(t, "woo: "+test.err.Error(), werr.Error())
	}

	// Only the code is added when the message is empty.
	werr := pgerror.Wrap(errors.New("bare"), pgcode.DataException, "")
	require.Equal(t, "bare", werr.Error())
	require.Equal(t, pgcode.DataException, pgerror.GetPGCode(werr))
}

func TestGetPGCodeDefaults(t *testing.T) {
	require.Equal(t, pgcode.SuccessfulCompletion, pgerror.GetPGCode(nil))
	require.Equal(t, pgcode.Uncategorized, pgerror.GetPGCode(errors.New("plain")))
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(errors.AssertionFailedf("broken")))
	require.Equal(t, pgcode.QueryCanceled, pgerror.GetPGCode(errors.Wrap(context.Canceled, "row 3")))
	require.False(t, pgerror.HasCandidateCode(errors.New("plain")))
	require.True(t, pgerror.HasCandidateCode(errors.Wrap(pgerror.New(pgcode.Syntax, "x"), "y")))
}

func TestFlatten(t *testing.T) {
	require.Nil(t, pgerror.Flatten(nil))

	err := errors.WithHint(
		errors.WithDetail(pgerror.Newf(pgcode.NumericValueOutOfRange, "BIGINT value is out of range in '%s'", "(a + b)"), "row 2"),
		"use a decimal column",
	)
	flat := pgerror.Flatten(err)
	require.Equal(t, "22003", flat.Code)
	require.Equal(t, "ERROR", flat.Severity)
	require.Equal(t, "BIGINT value is out of range in '(a + b)'", flat.Message)
	require.Equal(t, "row 2", flat.Detail)
	require.Equal(t, "use a decimal column", flat.Hint)
	require.Equal(t,
		"error (22003): BIGINT value is out of range in '(a + b)'\nDETAIL: row 2\nHINT: use a decimal column",
		pgerror.FullError(err))

	flat = pgerror.Flatten(errors.AssertionFailedf("bad node"))
	require.Equal(t, "XX000", flat.Code)
	require.Equal(t, "internal error: bad node", flat.Message)
}
