// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgerror attaches SQLSTATE codes and severities to errors built
// with github.com/cockroachdb/errors, and flattens error chains into the
// code, message, detail and hint reported to clients.
package pgerror

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
)

// New creates an error with a code.
func New(code pgcode.Code, msg string) error {
	err := errors.NewWithDepth(1, msg)
	err = WithCandidateCode(err, code)
	return err
}

// Newf creates an error with a code and a formatted message.
func Newf(code pgcode.Code, format string, args ...interface{}) error {
	err := errors.NewWithDepthf(1, format, args...)
	err = WithCandidateCode(err, code)
	return err
}

// NewWithDepthf creates an error with a code, annotating the stack frame
// depth levels above the caller.
func NewWithDepthf(depth int, code pgcode.Code, format string, args ...interface{}) error {
	err := errors.NewWithDepthf(1+depth, format, args...)
	err = WithCandidateCode(err, code)
	return err
}

// withCandidateCode annotates an error with a code that applies unless an
// error further down the chain carries its own.
type withCandidateCode struct {
	cause error
	code  string
}

var _ error = (*withCandidateCode)(nil)
var _ errors.SafeFormatter = (*withCandidateCode)(nil)
var _ fmt.Formatter = (*withCandidateCode)(nil)

func (w *withCandidateCode) Error() string { return w.cause.Error() }
func (w *withCandidateCode) Cause() error  { return w.cause }
func (w *withCandidateCode) Unwrap() error { return w.cause }

func (w *withCandidateCode) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

func (w *withCandidateCode) SafeFormatError(p errors.Printer) (next error) {
	if p.Detail() {
		p.Printf("candidate pg code: %s", errors.Safe(w.code))
	}
	return w.cause
}

// WithCandidateCode decorates err with a code. If err is nil, nil is
// returned.
func WithCandidateCode(err error, code pgcode.Code) error {
	if err == nil {
		return nil
	}
	return &withCandidateCode{cause: err, code: code.String()}
}

// HasCandidateCode returns whether any error in the chain has a code.
func HasCandidateCode(err error) bool {
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if _, ok := c.(*withCandidateCode); ok {
			return true
		}
	}
	return false
}

// GetPGCode retrieves the code of an error. The innermost code in the chain
// wins, so that wrapping an error with a more general code does not hide the
// specific one. Errors without a code are reported as Internal if they are
// assertion failures, QueryCanceled for context cancellation, and
// Uncategorized otherwise.
func GetPGCode(err error) pgcode.Code {
	if err == nil {
		return pgcode.SuccessfulCompletion
	}
	code := ""
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if w, ok := c.(*withCandidateCode); ok {
			code = w.code
		}
	}
	if code != "" {
		return pgcode.MakeCode(code)
	}
	switch {
	case errors.HasAssertionFailure(err):
		return pgcode.Internal
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return pgcode.QueryCanceled
	default:
		return pgcode.Uncategorized
	}
}
