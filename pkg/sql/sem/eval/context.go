// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import "github.com/cockroachdb/numexpr/pkg/sql/sessiondata"

// Context holds the state numeric evaluation depends on. A Context is
// read-only during evaluation and may be shared by the trees of one
// session.
type Context struct {
	SessionData *sessiondata.SessionData
}

// MakeTestingEvalContext returns a Context with the session defaults.
func MakeTestingEvalContext() Context {
	return Context{SessionData: sessiondata.Default()}
}

// NewTestingEvalContext is like MakeTestingEvalContext but returns a
// pointer.
func NewTestingEvalContext() *Context {
	ctx := MakeTestingEvalContext()
	return &ctx
}

func (ctx *Context) sessionData() *sessiondata.SessionData {
	if ctx == nil || ctx.SessionData == nil {
		return defaultSessionData
	}
	return ctx.SessionData
}

var defaultSessionData = sessiondata.Default()
