// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/cockroachdb/numexpr/pkg/util/arith"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
)

// Datum is a numeric value. A Datum is either DNull or one of *DInt,
// *DDecimal and *DFloat.
type Datum interface {
	fmt.Stringer
	// Family returns the family of the value. It panics for DNull.
	Family() types.Family
	datum()
}

type dNull struct{}

// DNull is the NULL Datum.
var DNull Datum = dNull{}

// Family implements the Datum interface.
func (dNull) Family() types.Family {
	panic(errors.AssertionFailedf("NULL has no family"))
}

func (dNull) String() string { return "NULL" }
func (dNull) datum()         {}

// DInt is a signed or unsigned 64-bit integer Datum.
type DInt struct {
	arith.Int
}

// NewDInt is a helper routine to create a *DInt initialized from its
// argument.
func NewDInt(v int64) *DInt {
	return &DInt{Int: arith.Signed(v)}
}

// NewDUint creates an unsigned *DInt.
func NewDUint(v uint64) *DInt {
	return &DInt{Int: arith.Unsigned(v)}
}

// Family implements the Datum interface.
func (*DInt) Family() types.Family { return types.IntFamily }
func (*DInt) datum()               {}

// DDecimal is a fixed-point decimal Datum.
type DDecimal struct {
	apd.Decimal
}

// ParseDDecimal parses a decimal literal. Exponents are expanded so that the
// result has no positive exponent.
func ParseDDecimal(s string) (*DDecimal, error) {
	dd := &DDecimal{}
	if _, _, err := dd.SetString(strings.TrimSpace(s)); err != nil {
		return nil, pgerror.Wrapf(err, pgcode.InvalidTextRepresentation,
			"could not parse %q as type decimal", s)
	}
	if dd.Form != apd.Finite {
		return nil, pgerror.Newf(pgcode.InvalidTextRepresentation,
			"could not parse %q as type decimal", s)
	}
	if dd.Exponent > 0 {
		var tmp apd.Decimal
		if decimal.Add(&dd.Decimal, &dd.Decimal, &tmp) == decimal.StatusOverflow {
			return nil, pgerror.Newf(pgcode.NumericValueOutOfRange, "decimal %q is out of range", s)
		}
	}
	return dd, nil
}

// Family implements the Datum interface.
func (*DDecimal) Family() types.Family { return types.DecimalFamily }
func (*DDecimal) datum()               {}

// String formats the decimal without an exponent.
func (d *DDecimal) String() string {
	return d.Decimal.Text('f')
}

// DFloat is a double precision Datum.
type DFloat float64

// NewDFloat is a helper routine to create a *DFloat initialized from its
// argument.
func NewDFloat(f float64) *DFloat {
	d := DFloat(f)
	return &d
}

// Family implements the Datum interface.
func (*DFloat) Family() types.Family { return types.FloatFamily }
func (*DFloat) datum()               {}

func (d *DFloat) String() string {
	return strconv.FormatFloat(float64(*d), 'g', -1, 64)
}

// Row is the set of column values an expression is evaluated against.
type Row []Datum

// numDigits returns the number of decimal digits of v.
func numDigits(v uint64) int32 {
	n := int32(1)
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// DatumType returns the type of a literal holding d. Integer literals have a
// precision equal to their digit count and decimal literals keep their
// written scale.
func DatumType(d Datum) *types.T {
	switch t := d.(type) {
	case *DInt:
		return types.MakeIntWithPrecision(numDigits(t.Abs()), t.Unsigned)
	case *DDecimal:
		scale := decimal.Scale(&t.Decimal)
		return types.MakeDecimal(int32(decimal.IntDigits(&t.Decimal))+scale, scale)
	case *DFloat:
		return types.MakeFloat()
	default:
		return types.MakeNull()
	}
}

// ParseDatum parses the textual form of a value of type t. "NULL" in any
// case parses to DNull. Decimal values are rounded to the scale of t and
// must fit in its precision.
func ParseDatum(t *types.T, s string) (Datum, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "null") {
		return DNull, nil
	}
	switch t.Family {
	case types.IntFamily:
		if t.Unsigned {
			v, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return nil, parseError(err, s, t)
			}
			return NewDUint(v), nil
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, parseError(err, s, t)
		}
		return NewDInt(v), nil

	case types.DecimalFamily:
		dd, err := ParseDDecimal(s)
		if err != nil {
			return nil, err
		}
		if status := decimal.Round(&dd.Decimal, &dd.Decimal, t.Scale, decimal.HalfUp); status == decimal.StatusOverflow ||
			decimal.IntDigits(&dd.Decimal) > int64(t.IntDigits()) {
			return nil, pgerror.Newf(pgcode.NumericValueOutOfRange,
				"value %s is out of range for type %s", s, t.SQLString())
		}
		return dd, nil

	case types.FloatFamily:
		if t.IsGeometry() {
			return nil, pgerror.Newf(pgcode.InvalidParameterValue,
				"cannot parse %q as type geometry", s)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, parseError(err, s, t)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, pgerror.Newf(pgcode.NumericValueOutOfRange,
				"value %s is out of range for type %s", s, t.SQLString())
		}
		return NewDFloat(f), nil

	default:
		return nil, errors.AssertionFailedf("unexpected family %s", t.Family)
	}
}

func parseError(err error, s string, t *types.T) error {
	if errors.Is(err, strconv.ErrRange) {
		return pgerror.Newf(pgcode.NumericValueOutOfRange,
			"value %s is out of range for type %s", s, t.SQLString())
	}
	return pgerror.Newf(pgcode.InvalidTextRepresentation,
		"could not parse %q as type %s", s, t.SQLString())
}

// DatumsEqual returns whether a and b hold the same value in the same family.
// Integers compare by value regardless of signedness.
func DatumsEqual(a, b Datum) bool {
	switch ta := a.(type) {
	case dNull:
		return b == DNull
	case *DInt:
		tb, ok := b.(*DInt)
		if !ok || ta.Bits != tb.Bits {
			return false
		}
		return ta.Unsigned == tb.Unsigned || (!ta.Negative() && !tb.Negative())
	case *DDecimal:
		tb, ok := b.(*DDecimal)
		return ok && ta.Cmp(&tb.Decimal) == 0
	case *DFloat:
		tb, ok := b.(*DFloat)
		return ok && *ta == *tb
	default:
		return false
	}
}
