// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"runtime/debug"

	"github.com/cockroachdb/numexpr/pkg/cli/exit"
)

// SetExitFunc allows setting a function that will be called to exit
// the process when a Fatal message is generated. The supplied bool,
// if true, suppresses the stack trace, which is useful for test
// callers wishing to keep the logs reasonably clean.
//
// Call with a nil function to undo.
func SetExitFunc(hideStack bool, f func(exit.Code)) {
	logging.mu.Lock()
	defer logging.mu.Unlock()

	logging.mu.exitOverride.f = f
	logging.mu.exitOverride.hideStack = hideStack
}

// ResetExitFunc undoes any prior call to SetExitFunc.
func ResetExitFunc() {
	SetExitFunc(false, nil)
}

// exitAfterFatal terminates the process after a fatal entry was output,
// or calls the exit override.
func (l *loggingT) exitAfterFatal() {
	l.mu.Lock()
	f, hideStack := l.mu.exitOverride.f, l.mu.exitOverride.hideStack
	if !hideStack {
		l.writeLocked(append(debug.Stack(), '\n'))
	}
	l.mu.Unlock()

	if f != nil {
		f(exit.FatalError())
		return
	}
	exit.WithCode(exit.FatalError())
}
