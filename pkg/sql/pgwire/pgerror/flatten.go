// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
)

// InternalErrorPrefix is prepended to the message of internal errors.
const InternalErrorPrefix = "internal error: "

// Error is the flattened form of an error chain.
type Error struct {
	Code     string
	Severity string
	Message  string
	Detail   string
	Hint     string
}

// Error implements the error interface.
func (pg *Error) Error() string { return pg.Message }

// String renders the error on one line, with its code.
func (pg *Error) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s): %s", strings.ToLower(pg.Severity), pg.Code, pg.Message)
	if pg.Detail != "" {
		fmt.Fprintf(&b, "\nDETAIL: %s", pg.Detail)
	}
	if pg.Hint != "" {
		fmt.Fprintf(&b, "\nHINT: %s", pg.Hint)
	}
	return b.String()
}

// Flatten turns any error into an Error with fields populated.
// Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:     GetPGCode(err).String(),
		Severity: GetSeverity(err),
		Message:  err.Error(),
		Detail:   errors.FlattenDetails(err),
		Hint:     errors.FlattenHints(err),
	}
	if resErr.Code == pgcode.Internal.String() {
		if !strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
			// The internal error prefix wasn't there already. Add it.
			resErr.Message = InternalErrorPrefix + resErr.Message
		}
	}
	return resErr
}

// FullError returns a one-line rendering of err including its code.
func FullError(err error) string {
	if err == nil {
		return ""
	}
	return Flatten(err).String()
}
