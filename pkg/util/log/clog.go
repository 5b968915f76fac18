// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log writes leveled, context-tagged log entries to a single
// sink, stderr by default. Every entry is formatted as
//
//	I261018 12:34:56.789012 file.go:123 ⋮ [tag1,tag2] message
//
// where the first letter is the severity. Messages are built with
// redact, so that values are enclosed in redaction markers unless they
// are known to be safe; the markers are stripped on output unless
// SetRedactable(true) is in effect.
package log

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/numexpr/pkg/cli/exit"
	"github.com/cockroachdb/numexpr/pkg/util/syncutil"
)

// OrigStderr points to the original stderr stream.
var OrigStderr = os.Stderr

type loggingT struct {
	// verbosity is the V level; V(n) is true iff n <= verbosity.
	verbosity atomic.Int32

	mu struct {
		syncutil.Mutex
		out    io.Writer
		colors *colorProfile
		// threshold is the minimum severity of the entries that are output.
		threshold  Severity
		redactable bool

		exitOverride struct {
			f         func(exit.Code)
			hideStack bool
		}
	}
}

var logging = func() *loggingT {
	l := &loggingT{}
	l.mu.out = OrigStderr
	l.mu.colors = stderrColorProfile
	l.mu.threshold = Severity_INFO
	return l
}()

// SetOutput redirects log entries to w. Colors are only used when writing
// to a terminal on the original stderr.
func SetOutput(w io.Writer) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.out = w
	logging.mu.colors = nil
	if w == OrigStderr {
		logging.mu.colors = stderrColorProfile
	}
}

// SetSeverityThreshold drops entries below sev. Fatal entries are always
// output.
func SetSeverityThreshold(sev Severity) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.threshold = min(sev, Severity_FATAL)
}

// SetRedactable controls whether redaction markers are kept in the
// output.
func SetRedactable(redactable bool) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	logging.mu.redactable = redactable
}

// SetVerbosity sets the level up to which V returns true.
func SetVerbosity(level int32) {
	logging.verbosity.Store(level)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return VDepth(level, 1)
}

// VDepth is like V but takes the depth of the caller for which the
// verbosity is checked. There is no per-file verbosity, so depth only
// exists for call sites that forward it.
func VDepth(level int32, depth int) bool {
	return level <= logging.verbosity.Load()
}

// outputEntry writes a formatted entry to the sink. It returns whether
// the entry passed the severity threshold.
func (l *loggingT) outputEntry(e *entry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.sev < l.mu.threshold && e.sev != Severity_FATAL {
		return false
	}
	l.writeLocked(e.format(l.mu.colors, l.mu.redactable))
	return true
}

// writeLocked writes buf to the sink. l.mu must be held.
func (l *loggingT) writeLocked(buf []byte) {
	l.mu.AssertHeld()
	// Write errors are dropped: there is nowhere left to report them.
	_, _ = l.mu.out.Write(buf)
}
