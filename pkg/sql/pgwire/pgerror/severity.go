// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Severities reported alongside a code.
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
)

// withSeverity overrides the severity of an error. The outermost severity
// wins.
type withSeverity struct {
	cause    error
	severity string
}

var _ error = (*withSeverity)(nil)
var _ errors.SafeFormatter = (*withSeverity)(nil)
var _ fmt.Formatter = (*withSeverity)(nil)

func (w *withSeverity) Error() string { return w.cause.Error() }
func (w *withSeverity) Cause() error  { return w.cause }
func (w *withSeverity) Unwrap() error { return w.cause }

func (w *withSeverity) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

func (w *withSeverity) SafeFormatError(p errors.Printer) (next error) {
	if p.Detail() {
		p.Printf("severity: %s", errors.Safe(w.severity))
	}
	return w.cause
}

// WithSeverity decorates err with a severity.
func WithSeverity(err error, severity string) error {
	if err == nil {
		return nil
	}
	return &withSeverity{cause: err, severity: severity}
}

// AsWarning marks err as a warning: it describes a condition that did not
// abort evaluation.
func AsWarning(err error) error {
	return WithSeverity(err, SeverityWarning)
}

// GetSeverity returns the severity of an error, defaulting to ERROR.
func GetSeverity(err error) string {
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if w, ok := c.(*withSeverity); ok {
			return w.severity
		}
	}
	return SeverityError
}

// IsWarning returns whether err has warning severity.
func IsWarning(err error) bool {
	return GetSeverity(err) == SeverityWarning
}
