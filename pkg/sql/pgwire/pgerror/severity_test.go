// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	testCases := []struct {
		err              error
		expectedSeverity string
	}{
		{WithSeverity(fmt.Errorf("notice me"), "NOTICE ME"), "NOTICE ME"},
		{WithSeverity(WithSeverity(fmt.Errorf("notice me"), "IGNORE ME"), "NOTICE ME"), "NOTICE ME"},
		{WithSeverity(WithCandidateCode(fmt.Errorf("notice me"), pgcode.DivisionByZero), "NOTICE ME"), "NOTICE ME"},
		{New(pgcode.Uncategorized, "i am an error"), "ERROR"},
		{WithCandidateCode(AsWarning(errors.Newf("division by 0")), pgcode.DivisionByZero), "WARNING"},
		{fmt.Errorf("something else"), "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			severity := GetSeverity(tc.err)
			require.Equal(t, tc.expectedSeverity, severity)
		})
	}
}

func TestIsWarning(t *testing.T) {
	w := AsWarning(New(pgcode.DivisionByZero, "Division by 0"))
	require.True(t, IsWarning(w))
	require.Equal(t, pgcode.DivisionByZero, GetPGCode(w))
	require.Equal(t, "warning (22012): Division by 0", FullError(w))
	require.False(t, IsWarning(New(pgcode.DivisionByZero, "Division by 0")))
}
