// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exit

// Codes that are common to all commands follow.

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition. The specific cause of the error can be found in
// the logging output.
func UnspecifiedError() Code { return Code{1} }

// UnspecifiedGoPanic (2) indicates the process has terminated due to
// an uncaught Go panic or some other error in the Go runtime.
func UnspecifiedGoPanic() Code { return Code{2} }

// Interrupted (3) indicates the process was interrupted with Ctrl+C /
// SIGINT.
func Interrupted() Code { return Code{3} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters.
func CommandLineFlagError() Code { return Code{4} }

// FatalError (7) indicates that a logical error caused an emergency
// shutdown.
func FatalError() Code { return Code{7} }

// Codes that are specific to commands follow. Command-specific exit codes
// are allocated down from 125.

// 'eval' exit codes.

// StatementFailed (125) indicates that at least one statement of a script
// aborted with an error.
func StatementFailed() Code { return Code{125} }

// ScriptInvalid (124) indicates that a script could not be loaded or one
// of its expressions could not be resolved.
func ScriptInvalid() Code { return Code{124} }
