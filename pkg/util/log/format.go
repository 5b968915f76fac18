// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/numexpr/pkg/util/timeutil"
	"github.com/cockroachdb/redact"
	"github.com/petermattis/goid"
)

// redactableIndicator separates the location of an entry from its
// message when the message carries redaction markers.
const redactableIndicator = "⋮"

type entry struct {
	sev  Severity
	time time.Time
	gid  int64
	file string
	line int
	tags *logtags.Buffer
	msg  redact.RedactableString
}

// makeEntry captures the caller, context tags and message of an entry.
// depth is the number of frames between the caller of the logging
// function and makeEntry.
func makeEntry(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) *entry {
	e := &entry{
		sev:  sev,
		time: timeutil.Now(),
		gid:  goid.Get(),
		file: "???",
		line: 1,
		tags: logtags.FromContext(ctx),
	}
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		e.file = filepath.Base(file)
		e.line = line
	}
	if len(args) == 0 {
		e.msg = redact.Sprint(redact.Safe(format))
	} else {
		e.msg = redact.Sprintf(format, args...)
	}
	return e
}

// format renders the entry on one line:
//
//	Lyymmdd hh:mm:ss.uuuuuu goid file:line [tags] msg
func (e *entry) format(cp *colorProfile, redactable bool) []byte {
	var buf bytes.Buffer
	if cp != nil {
		buf.Write(cp.severityPrefix(e.sev))
	}
	buf.WriteByte(e.sev.char())
	if cp != nil {
		buf.Write(colorReset)
		buf.Write(cp.timePrefix)
	}
	buf.WriteString(e.time.Format(timeutil.LogTimeFormat))
	if cp != nil {
		buf.Write(colorReset)
	}
	fmt.Fprintf(&buf, " %d %s:%d ", e.gid, e.file, e.line)
	if redactable {
		buf.WriteString(redactableIndicator)
		buf.WriteByte(' ')
	}
	if e.tags != nil && len(e.tags.Get()) > 0 {
		buf.WriteByte('[')
		buf.WriteString(e.tags.String())
		buf.WriteString("] ")
	}
	msg := string(e.msg)
	if !redactable {
		msg = e.msg.StripMarkers()
	}
	buf.WriteString(strings.TrimRight(msg, "\n"))
	buf.WriteByte('\n')
	return buf.Bytes()
}

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting string is
// generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	if tags := logtags.FromContext(ctx); tags != nil && len(tags.Get()) > 0 {
		buf.WriteByte('[')
		tags.FormatToString(&buf)
		buf.WriteString("] ")
	}
	fmt.Fprintf(&buf, format, args...)
	return buf.String()
}
