// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "context"

func logDepth(
	ctx context.Context, depth int, sev Severity, format string, args []interface{},
) {
	e := makeEntry(ctx, sev, depth+1, format, args)
	if logging.outputEntry(e) && sev == Severity_FATAL {
		logging.exitAfterFatal()
	}
}

// Info logs to the INFO log.
func Info(ctx context.Context, msg string) {
	logDepth(ctx, 1, Severity_INFO, msg, nil)
}

// Infof logs to the INFO log. Arguments are handled in the manner of
// fmt.Printf; values are redactable unless they are marked safe.
func Infof(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_INFO, format, args)
}

// InfofDepth logs to the INFO log, attributing the entry to the caller
// depth frames up the stack.
func InfofDepth(ctx context.Context, depth int, format string, args ...interface{}) {
	logDepth(ctx, depth+1, Severity_INFO, format, args)
}

// Warning logs to the WARNING and INFO logs.
func Warning(ctx context.Context, msg string) {
	logDepth(ctx, 1, Severity_WARNING, msg, nil)
}

// Warningf logs to the WARNING and INFO logs.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_WARNING, format, args)
}

// Error logs to the ERROR, WARNING, and INFO logs.
func Error(ctx context.Context, msg string) {
	logDepth(ctx, 1, Severity_ERROR, msg, nil)
}

// Errorf logs to the ERROR, WARNING, and INFO logs.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_ERROR, format, args)
}

// Fatalf logs to the FATAL log and terminates the process, or calls the
// function set with SetExitFunc.
func Fatalf(ctx context.Context, format string, args ...interface{}) {
	logDepth(ctx, 1, Severity_FATAL, format, args)
}

// VEventf logs to the INFO log if the verbosity is at least level. It is
// used for tracing events that are too frequent to be logged by default.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if VDepth(level, 1) {
		logDepth(ctx, 1, Severity_INFO, format, args)
	}
}

// Event logs msg to the INFO log if the verbosity is at least 2.
func Event(ctx context.Context, msg string) {
	if VDepth(2, 1) {
		logDepth(ctx, 1, Severity_INFO, msg, nil)
	}
}
