// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types describes the result types of numeric expressions: a family
// (integer, fixed-point decimal or floating point) together with precision,
// scale, signedness and nullability.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Family is the evaluation category of a numeric value.
type Family int8

const (
	// IntFamily values are 64-bit integers, signed or unsigned.
	IntFamily Family = iota
	// DecimalFamily values are fixed-point decimals.
	DecimalFamily
	// FloatFamily values are IEEE-754 doubles.
	FloatFamily
)

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case IntFamily:
		return "int"
	case DecimalFamily:
		return "decimal"
	case FloatFamily:
		return "float"
	default:
		return fmt.Sprintf("family(%d)", int8(f))
	}
}

// Promote returns the family that arithmetic over a and b is carried out in:
// float if either operand is float, otherwise decimal if either operand is
// decimal, otherwise integer.
func Promote(a, b Family) Family {
	if a > b {
		return a
	}
	return b
}

// FieldType is the storage kind a value originates from.
type FieldType uint8

const (
	FieldTypeLongLong FieldType = iota
	FieldTypeTiny
	FieldTypeShort
	FieldTypeInt24
	FieldTypeLong
	FieldTypeNewDecimal
	FieldTypeFloat
	FieldTypeDouble
	FieldTypeGeometry
	FieldTypeNull
)

var fieldTypeNames = [...]string{
	FieldTypeLongLong:   "bigint",
	FieldTypeTiny:       "tinyint",
	FieldTypeShort:      "smallint",
	FieldTypeInt24:      "mediumint",
	FieldTypeLong:       "int",
	FieldTypeNewDecimal: "decimal",
	FieldTypeFloat:      "float",
	FieldTypeDouble:     "double",
	FieldTypeGeometry:   "geometry",
	FieldTypeNull:       "null",
}

// String implements fmt.Stringer.
func (f FieldType) String() string {
	if int(f) < len(fieldTypeNames) {
		return fieldTypeNames[f]
	}
	return fmt.Sprintf("field(%d)", uint8(f))
}

const (
	// MaxPrecision is the maximum number of digits of a decimal.
	MaxPrecision = 65
	// MaxScale is the maximum number of fractional digits of a decimal.
	MaxScale = 30
	// MaxIntPrecision is the number of digits of the widest signed integer.
	MaxIntPrecision = 19
	// MaxUintPrecision is the number of digits of the widest unsigned integer.
	MaxUintPrecision = 20
)

// intPrecision holds the display precision of each integer field type.
var intPrecision = map[FieldType][2]int32{
	FieldTypeTiny:     {3, 3},
	FieldTypeShort:    {5, 5},
	FieldTypeInt24:    {7, 8},
	FieldTypeLong:     {10, 10},
	FieldTypeLongLong: {MaxIntPrecision, MaxUintPrecision},
}

// T is the resolved type of a numeric expression.
type T struct {
	Family Family
	// Precision is the total number of digits. For integers it is the
	// display width used when the value enters a decimal formula.
	Precision int32
	// Scale is the number of fractional digits. It is zero for integers.
	Scale int32
	// Unsigned is only set for integers.
	Unsigned bool
	// Nullable is set if evaluation may produce NULL.
	Nullable bool
	// FieldType is the storage kind the value originates from.
	FieldType FieldType
}

// MakeInt returns the integer type stored in a field of the given kind.
func MakeInt(ft FieldType, unsigned bool) *T {
	widths, ok := intPrecision[ft]
	if !ok {
		panic(errors.AssertionFailedf("%s is not an integer field type", ft))
	}
	p := widths[0]
	if unsigned {
		p = widths[1]
	}
	return &T{Family: IntFamily, Precision: p, Unsigned: unsigned, FieldType: ft}
}

// MakeIntWithPrecision returns a bigint type with the given display
// precision, clamped to the width of a 64-bit integer.
func MakeIntWithPrecision(precision int32, unsigned bool) *T {
	return &T{
		Family:    IntFamily,
		Precision: IntegerResultPrecision(precision, unsigned),
		Unsigned:  unsigned,
		FieldType: FieldTypeLongLong,
	}
}

// MakeDecimal returns the decimal type with the given precision and scale.
// The precision is raised to the scale and clamped to MaxPrecision.
func MakeDecimal(precision, scale int32) *T {
	scale = clamp(scale, 0, MaxScale)
	return &T{
		Family:    DecimalFamily,
		Precision: clamp(precision, max(scale, 1), MaxPrecision),
		Scale:     scale,
		FieldType: FieldTypeNewDecimal,
	}
}

// MakeFloat returns the double type.
func MakeFloat() *T {
	return &T{Family: FloatFamily, FieldType: FieldTypeDouble}
}

// MakeGeometry returns the type of a geometry column. Geometry values are
// read as doubles in a numeric context and are rejected by arithmetic.
func MakeGeometry() *T {
	return &T{Family: FloatFamily, FieldType: FieldTypeGeometry}
}

// MakeNull returns the type of the NULL literal.
func MakeNull() *T {
	return &T{Family: IntFamily, Precision: 1, Nullable: true, FieldType: FieldTypeNull}
}

// WithNullable returns a copy of t with the given nullability.
func (t *T) WithNullable(nullable bool) *T {
	c := *t
	c.Nullable = nullable
	return &c
}

// IntDigits returns the number of digits left of the decimal point.
func (t *T) IntDigits() int32 {
	return t.Precision - t.Scale
}

// IsGeometry returns whether t originates from a geometry field.
func (t *T) IsGeometry() bool {
	return t.FieldType == FieldTypeGeometry
}

// Identical returns whether t and o describe the same type.
func (t *T) Identical(o *T) bool {
	return *t == *o
}

// SQLString returns the type name as written in a column definition.
func (t *T) SQLString() string {
	switch t.Family {
	case IntFamily:
		if t.Unsigned {
			return "bigint unsigned"
		}
		return "bigint"
	case DecimalFamily:
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	case FloatFamily:
		if t.IsGeometry() {
			return "geometry"
		}
		return "double"
	default:
		return t.Family.String()
	}
}

// String implements fmt.Stringer.
func (t *T) String() string {
	return t.SQLString()
}

// ParseT parses a column type such as "int unsigned", "decimal(9,2)" or
// "double". Types are not nullable; ParseT accepts a trailing "null" or
// "not null".
func ParseT(s string) (*T, error) {
	fields := strings.Fields(compactArgs(strings.ToLower(s)))
	if len(fields) == 0 {
		return nil, errors.New("empty type")
	}
	nullable := false
	switch {
	case len(fields) >= 2 && fields[len(fields)-2] == "not" && fields[len(fields)-1] == "null":
		fields = fields[:len(fields)-2]
	case fields[len(fields)-1] == "null":
		nullable = true
		fields = fields[:len(fields)-1]
	}
	unsigned := false
	if len(fields) > 1 && fields[len(fields)-1] == "unsigned" {
		unsigned = true
		fields = fields[:len(fields)-1]
	}
	if len(fields) != 1 {
		return nil, errors.Newf("cannot parse type %q", s)
	}
	name, args, err := splitArgs(fields[0])
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse type %q", s)
	}

	var t *T
	switch name {
	case "tinyint":
		t = MakeInt(FieldTypeTiny, unsigned)
	case "smallint":
		t = MakeInt(FieldTypeShort, unsigned)
	case "mediumint":
		t = MakeInt(FieldTypeInt24, unsigned)
	case "int", "integer":
		t = MakeInt(FieldTypeLong, unsigned)
	case "bigint":
		t = MakeInt(FieldTypeLongLong, unsigned)
	case "decimal", "numeric":
		precision, scale := int32(10), int32(0)
		switch len(args) {
		case 2:
			scale = args[1]
			fallthrough
		case 1:
			precision = args[0]
		}
		if precision < 1 || precision > MaxPrecision {
			return nil, errors.Newf("decimal precision %d out of range [1, %d]", precision, MaxPrecision)
		}
		if scale < 0 || scale > MaxScale || scale > precision {
			return nil, errors.Newf("decimal scale %d out of range [0, %d]", scale, min(precision, MaxScale))
		}
		t = MakeDecimal(precision, scale)
	case "double", "real", "float":
		t = MakeFloat()
	case "geometry":
		t = MakeGeometry()
	default:
		return nil, errors.Newf("unknown type %q", s)
	}
	if unsigned && t.Family != IntFamily {
		return nil, errors.Newf("only integer types can be unsigned: %q", s)
	}
	if len(args) > 0 && t.Family != DecimalFamily {
		return nil, errors.Newf("type %q does not take arguments", name)
	}
	t.Nullable = nullable
	return t, nil
}

// compactArgs removes blanks inside the parenthesized argument list.
func compactArgs(s string) string {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s
	}
	end := strings.IndexByte(s[open:], ')')
	if end < 0 {
		return s
	}
	end += open
	return strings.TrimRight(s[:open], " ") + strings.ReplaceAll(s[open:end], " ", "") + s[end:]
}

// splitArgs splits "decimal(9,2)" into its name and arguments.
func splitArgs(s string) (name string, args []int32, _ error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, nil
	}
	if !strings.HasSuffix(s, ")") {
		return "", nil, errors.New("missing closing parenthesis")
	}
	for _, a := range strings.Split(s[open+1:len(s)-1], ",") {
		v, err := strconv.ParseInt(strings.TrimSpace(a), 10, 32)
		if err != nil {
			return "", nil, err
		}
		args = append(args, int32(v))
	}
	if len(args) > 2 {
		return "", nil, errors.Newf("too many arguments")
	}
	return s[:open], args, nil
}
