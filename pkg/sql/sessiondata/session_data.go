// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sessiondata

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
)

// SessionData contains the session parameters that influence numeric
// evaluation. They are all user-configurable.
type SessionData struct {
	// DivPrecisionIncrement is the number of fractional digits that
	// division adds to the scale of its dividend.
	DivPrecisionIncrement uint32
	// ErrorForDivisionByZero causes division and modulo by zero to attach a
	// warning to the row. The result is NULL either way.
	ErrorForDivisionByZero bool
	// NoUnsignedSubtraction makes the difference of two integers signed even
	// if an operand is unsigned.
	NoUnsignedSubtraction bool
}

const (
	// DefaultDivPrecisionIncrement is the default value of
	// DivPrecisionIncrement.
	DefaultDivPrecisionIncrement = 4
	// MaxDivPrecisionIncrement is the largest accepted value of
	// DivPrecisionIncrement.
	MaxDivPrecisionIncrement = decimal.MaxScale
)

// Default returns the session defaults.
func Default() *SessionData {
	return &SessionData{
		DivPrecisionIncrement:  DefaultDivPrecisionIncrement,
		ErrorForDivisionByZero: true,
	}
}

// Clone returns a copy of s.
func (s *SessionData) Clone() *SessionData {
	c := *s
	return &c
}

// Validate checks that every parameter is in range.
func (s *SessionData) Validate() error {
	if s.DivPrecisionIncrement > MaxDivPrecisionIncrement {
		return pgerror.Newf(pgcode.InvalidParameterValue,
			"div_precision_increment must be between 0 and %d, got %d",
			MaxDivPrecisionIncrement, s.DivPrecisionIncrement)
	}
	return nil
}

// Overrides holds optional parameter values. Unset fields leave the
// corresponding session parameter untouched.
type Overrides struct {
	DivPrecisionIncrement  *uint32 `yaml:"div_precision_increment" toml:"div_precision_increment"`
	ErrorForDivisionByZero *bool   `yaml:"error_for_division_by_zero" toml:"error_for_division_by_zero"`
	NoUnsignedSubtraction  *bool   `yaml:"no_unsigned_subtraction" toml:"no_unsigned_subtraction"`
}

// Empty returns whether no parameter is overridden.
func (o *Overrides) Empty() bool {
	return o == nil || (o.DivPrecisionIncrement == nil &&
		o.ErrorForDivisionByZero == nil && o.NoUnsignedSubtraction == nil)
}

// Apply returns a copy of s with the overrides applied. The result is
// validated.
func (s *SessionData) Apply(o *Overrides) (*SessionData, error) {
	c := s.Clone()
	if !o.Empty() {
		if o.DivPrecisionIncrement != nil {
			c.DivPrecisionIncrement = *o.DivPrecisionIncrement
		}
		if o.ErrorForDivisionByZero != nil {
			c.ErrorForDivisionByZero = *o.ErrorForDivisionByZero
		}
		if o.NoUnsignedSubtraction != nil {
			c.NoUnsignedSubtraction = *o.NoUnsignedSubtraction
		}
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid session settings")
	}
	return c, nil
}
