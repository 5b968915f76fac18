// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgcode defines the SQLSTATE codes attached to errors and warnings
// raised while resolving and evaluating numeric expressions.
package pgcode

// Code is a SQLSTATE code.
type Code struct {
	code string
}

// MakeCode converts a string into a Code.
func MakeCode(s string) Code {
	return Code{code: s}
}

// String returns the underlying code string.
func (c Code) String() string {
	return c.code
}

// Class returns the two-character class of the code.
func (c Code) Class() string {
	if len(c.code) < 2 {
		return c.code
	}
	return c.code[:2]
}

// Codes that are used by the numeric evaluation layer.
var (
	// Section: Class 00 - Successful Completion
	SuccessfulCompletion = MakeCode("00000")
	// Section: Class 01 - Warning
	Warning = MakeCode("01000")
	// Section: Class 22 - Data Exception
	DataException               = MakeCode("22000")
	NumericValueOutOfRange      = MakeCode("22003")
	DivisionByZero              = MakeCode("22012")
	InvalidArgumentForLogarithm = MakeCode("2201E")
	InvalidParameterValue       = MakeCode("22023")
	InvalidTextRepresentation   = MakeCode("22P02")
	// Section: Class 42 - Syntax Error or Access Rule Violation
	Syntax            = MakeCode("42601")
	UndefinedColumn   = MakeCode("42703")
	UndefinedFunction = MakeCode("42883")
	DatatypeMismatch  = MakeCode("42804")
	// Section: Class 57 - Operator Intervention
	QueryCanceled = MakeCode("57014")
	// Section: Class F0 - Configuration File Error
	ConfigFile = MakeCode("F0000")
	// Section: Class XX - Internal Error
	Internal = MakeCode("XX000")
	// Uncategorized is used for errors that carry no code.
	Uncategorized = MakeCode("XXUUU")
)
