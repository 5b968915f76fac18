// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package clierror attaches exit codes and log severities to the errors
// returned by CLI commands.
package clierror

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/cli/exit"
	"github.com/cockroachdb/numexpr/pkg/util/log"
)

// Error wraps an error with the exit code the process should
// terminate with.
type Error struct {
	exitCode exit.Code
	severity log.Severity
	cause    error
}

// NewError wraps cause with an exit code. The error is logged with
// severity ERROR.
func NewError(cause error, exitCode exit.Code) error {
	return NewErrorWithSeverity(cause, exitCode, log.Severity_ERROR)
}

// NewErrorWithSeverity is like NewError but lets the caller choose the
// severity with which the error is logged. Severity_UNKNOWN prevents
// logging.
func NewErrorWithSeverity(cause error, exitCode exit.Code, severity log.Severity) error {
	return &Error{
		exitCode: exitCode,
		severity: severity,
		cause:    cause,
	}
}

// GetExitCode returns the exit code for err: the one of the outermost
// *Error in its chain, or exit.UnspecifiedError.
func GetExitCode(err error) exit.Code {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.exitCode
	}
	return exit.UnspecifiedError()
}

// Error implements the error interface.
func (e *Error) Error() string { return e.cause.Error() }

// Cause implements causer.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the Go 1.13 unwrapping interface.
func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter.
func (e *Error) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// FormatError implements errors.Formatter.
func (e *Error) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("error with exit code: %d", e.exitCode.Int())
	}
	return e.cause
}
