// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package clierror

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/util/log"
)

// Logger is the signature of the function CheckAndMaybeLog reports to.
type Logger func(ctx context.Context, sev log.Severity, msg string, args ...interface{})

// CheckAndMaybeLog reports the error, if non-nil, to the given logger.
// If err is an *Error, the logged error is its cause and the severity
// is the one it was created with; otherwise err is logged at ERROR.
// The error is returned unchanged.
func CheckAndMaybeLog(err error, logger Logger) error {
	if err == nil {
		return nil
	}
	severity := log.Severity_ERROR
	cause := err
	var ec *Error
	if errors.As(err, &ec) {
		severity = ec.severity
		cause = ec.cause
	}
	if severity > log.Severity_UNKNOWN {
		logger(context.Background(), severity, "%v", cause)
	}
	return err
}
