// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
)

// Error categories. Every error and warning produced by this package is
// marked with one of them; use errors.Is to classify.
var (
	ErrIntegerOverflow         = errors.New("integer overflow")
	ErrDecimalOverflow         = errors.New("decimal overflow")
	ErrFloatOverflow           = errors.New("float overflow")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrInvalidLogArgument      = errors.New("invalid argument for logarithm")
	ErrGeometryOperandRejected = errors.New("geometry operand rejected")
	ErrResolution              = errors.New("resolution error")
)

func newIntegerOverflowError(e *tree.Expr, unsigned bool) error {
	typ := "BIGINT"
	if unsigned {
		typ = "BIGINT UNSIGNED"
	}
	return errors.Mark(
		pgerror.Newf(pgcode.NumericValueOutOfRange, "%s value is out of range in '%s'", typ, e),
		ErrIntegerOverflow,
	)
}

func newDecimalOverflowError(e *tree.Expr) error {
	return errors.Mark(
		pgerror.Newf(pgcode.NumericValueOutOfRange, "DECIMAL value is out of range in '%s'", e),
		ErrDecimalOverflow,
	)
}

func newFloatOverflowError(e *tree.Expr) error {
	return errors.Mark(
		pgerror.Newf(pgcode.NumericValueOutOfRange, "DOUBLE value is out of range in '%s'", e),
		ErrFloatOverflow,
	)
}

func newDivisionByZeroWarning() error {
	return pgerror.AsWarning(errors.Mark(
		pgerror.New(pgcode.DivisionByZero, "Division by 0"),
		ErrDivisionByZero,
	))
}

func newInvalidLogArgumentWarning() error {
	return pgerror.AsWarning(errors.Mark(
		pgerror.New(pgcode.InvalidArgumentForLogarithm, "Invalid argument for logarithm"),
		ErrInvalidLogArgument,
	))
}

func newGeometryOperandError(e *tree.Expr) error {
	name := e.Op.Symbol()
	if name == "" {
		name = e.Op.String()
	}
	return errors.Mark(
		pgerror.Newf(pgcode.InvalidParameterValue, "Incorrect arguments to %s", name),
		ErrGeometryOperandRejected,
	)
}

func newArityError(e *tree.Expr) error {
	return errors.Mark(
		pgerror.Newf(pgcode.UndefinedFunction,
			"Incorrect parameter count in the call to native function '%s'", e.Op),
		ErrResolution,
	)
}

// Warnings accumulates the non-fatal conditions raised while evaluating a
// row. A nil *Warnings discards them.
type Warnings struct {
	errs []error
}

// Add records a warning.
func (w *Warnings) Add(err error) {
	if w != nil {
		w.errs = append(w.errs, err)
	}
}

// Len returns the number of recorded warnings.
func (w *Warnings) Len() int {
	if w == nil {
		return 0
	}
	return len(w.errs)
}

// Errors returns the recorded warnings in the order they were raised.
func (w *Warnings) Errors() []error {
	if w == nil {
		return nil
	}
	return w.errs
}

// Reset forgets all warnings, keeping the allocated storage.
func (w *Warnings) Reset() {
	if w != nil {
		w.errs = w.errs[:0]
	}
}
