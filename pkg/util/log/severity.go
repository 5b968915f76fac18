// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "strings"

// Severity is the importance of a log entry.
type Severity int32

// The severities, in increasing order of importance.
const (
	Severity_UNKNOWN Severity = iota
	Severity_INFO
	Severity_WARNING
	Severity_ERROR
	Severity_FATAL
)

var severityNames = [...]string{
	Severity_UNKNOWN: "UNKNOWN",
	Severity_INFO:    "INFO",
	Severity_WARNING: "WARNING",
	Severity_ERROR:   "ERROR",
	Severity_FATAL:   "FATAL",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return severityNames[Severity_UNKNOWN]
	}
	return severityNames[s]
}

// char is the one-letter abbreviation that starts each log line.
func (s Severity) char() byte {
	return s.String()[0]
}

// SeverityByName looks up a severity by name, ignoring case.
func SeverityByName(name string) (Severity, bool) {
	for s := Severity_INFO; s <= Severity_FATAL; s++ {
		if strings.EqualFold(severityNames[s], name) {
			return s, true
		}
	}
	return Severity_UNKNOWN, false
}
