// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"io"
	"strings"

	"github.com/cockroachdb/numexpr/pkg/util/syncutil"
)

// tShim is the part of testing.TB used by TestLogScope.
type tShim interface {
	Helper()
	Failed() bool
	Logf(format string, args ...interface{})
}

// TestLogScope captures the log output of a test. It is created with
// Scope and must be closed at the end of the test:
//
//	defer log.Scope(t).Close(t)
//
// If the test fails, the captured output is replayed with t.Logf.
type TestLogScope struct {
	mu  syncutil.Mutex
	buf bytes.Buffer

	prevOut       io.Writer
	prevVerbosity int32
	prevThreshold Severity
}

// Scope redirects the log output to a buffer until Close is called.
func Scope(t tShim) *TestLogScope {
	t.Helper()
	sc := &TestLogScope{prevVerbosity: logging.verbosity.Load()}
	logging.mu.Lock()
	sc.prevOut = logging.mu.out
	sc.prevThreshold = logging.mu.threshold
	logging.mu.Unlock()
	SetOutput(sc)
	return sc
}

// Write implements io.Writer.
func (sc *TestLogScope) Write(p []byte) (int, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.buf.Write(p)
}

// Contents returns the captured log output.
func (sc *TestLogScope) Contents() string {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.buf.String()
}

// Lines returns the captured log entries.
func (sc *TestLogScope) Lines() []string {
	contents := strings.TrimRight(sc.Contents(), "\n")
	if contents == "" {
		return nil
	}
	return strings.Split(contents, "\n")
}

// Close restores the previous log configuration.
func (sc *TestLogScope) Close(t tShim) {
	t.Helper()
	if t.Failed() {
		t.Logf("log output:\n%s", sc.Contents())
	}
	SetOutput(sc.prevOut)
	SetVerbosity(sc.prevVerbosity)
	SetSeverityThreshold(sc.prevThreshold)
}
