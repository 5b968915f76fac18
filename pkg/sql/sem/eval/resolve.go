// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/cockroachdb/numexpr/pkg/sql/sessiondata"
	"github.com/cockroachdb/numexpr/pkg/util/decimal"
)

// arity holds the accepted argument counts of each operator.
var arity = [tree.NumOperators]struct{ min, max int }{
	tree.OpPlus:     {2, 2},
	tree.OpMinus:    {2, 2},
	tree.OpMult:     {2, 2},
	tree.OpDiv:      {2, 2},
	tree.OpIntDiv:   {2, 2},
	tree.OpMod:      {2, 2},
	tree.OpNeg:      {1, 1},
	tree.OpAbs:      {1, 1},
	tree.OpRound:    {1, 2},
	tree.OpTruncate: {2, 2},
	tree.OpCeiling:  {1, 1},
	tree.OpFloor:    {1, 1},
	tree.OpSign:     {1, 1},
	tree.OpLn:       {1, 1},
	tree.OpLog:      {1, 2},
	tree.OpLog2:     {1, 1},
	tree.OpLog10:    {1, 1},
	tree.OpExp:      {1, 1},
	tree.OpSqrt:     {1, 1},
	tree.OpPow:      {2, 2},
	tree.OpAcos:     {1, 1},
	tree.OpAsin:     {1, 1},
	tree.OpAtan:     {1, 2},
	tree.OpCos:      {1, 1},
	tree.OpSin:      {1, 1},
	tree.OpTan:      {1, 1},
	tree.OpCot:      {1, 1},
	tree.OpDegrees:  {1, 1},
	tree.OpRadians:  {1, 1},
}

// alwaysNullable reports whether op may produce NULL from non-NULL
// arguments.
func alwaysNullable(op tree.Operator) bool {
	switch op {
	case tree.OpDiv, tree.OpIntDiv, tree.OpMod,
		tree.OpLn, tree.OpLog, tree.OpLog2, tree.OpLog10,
		tree.OpSqrt, tree.OpAcos, tree.OpAsin:
		return true
	}
	return false
}

// Resolve assigns a type to every node of e that does not have one yet and
// returns the type of e. Types are computed once; resolving a tree again
// returns the cached type.
func Resolve(evalCtx *Context, e *tree.Expr) (*types.T, error) {
	r := resolver{sd: evalCtx.sessionData()}
	if err := tree.FixFields(e, r.resolveNode); err != nil {
		return nil, err
	}
	return e.ResolvedType(), nil
}

type resolver struct {
	sd *sessiondata.SessionData
}

func (r *resolver) resolveNode(e *tree.Expr) (*types.T, error) {
	switch e.Op {
	case tree.OpConst:
		return tree.DatumType(e.Datum), nil
	case tree.OpColumn:
		return e.Col.Type, nil
	}
	if e.Op >= tree.NumOperators {
		return nil, errors.AssertionFailedf("unknown operator %s", e.Op)
	}
	if n := len(e.Args); n < arity[e.Op].min || n > arity[e.Op].max {
		return nil, newArityError(e)
	}
	for _, arg := range e.Args {
		if arg.ResolvedType().IsGeometry() {
			return nil, newGeometryOperandError(e)
		}
	}
	typ, err := r.resolveOperator(e)
	if err != nil {
		return nil, err
	}
	if alwaysNullable(e.Op) {
		typ = typ.WithNullable(true)
	}
	return typ, nil
}

func (r *resolver) resolveOperator(e *tree.Expr) (*types.T, error) {
	a := e.Args[0].ResolvedType()
	switch e.Op {
	case tree.OpPlus, tree.OpMinus, tree.OpMult:
		b := e.Args[1].ResolvedType()
		p, s := types.AdditiveResult(a, b)
		if e.Op == tree.OpMult {
			p, s = types.MultiplicativeResult(a, b)
		}
		switch fam := types.Promote(a.Family, b.Family); fam {
		case types.IntFamily:
			unsigned := a.Unsigned || b.Unsigned
			if e.Op == tree.OpMinus && r.sd.NoUnsignedSubtraction {
				unsigned = false
			}
			return types.MakeIntWithPrecision(p, unsigned), nil
		case types.DecimalFamily:
			return types.MakeDecimal(p, s), nil
		case types.FloatFamily:
			return types.MakeFloat(), nil
		default:
			return nil, errors.AssertionFailedf("unexpected family %s", fam)
		}

	case tree.OpDiv:
		b := e.Args[1].ResolvedType()
		if types.Promote(a.Family, b.Family) == types.FloatFamily {
			return types.MakeFloat(), nil
		}
		return types.MakeDecimal(types.DivisionResult(a, b, r.sd.DivPrecisionIncrement)), nil

	case tree.OpIntDiv:
		b := e.Args[1].ResolvedType()
		return types.MakeIntWithPrecision(a.IntDigits(), a.Unsigned || b.Unsigned), nil

	case tree.OpMod:
		b := e.Args[1].ResolvedType()
		switch fam := types.Promote(a.Family, b.Family); fam {
		case types.IntFamily:
			return types.MakeIntWithPrecision(max(a.Precision, b.Precision), a.Unsigned), nil
		case types.DecimalFamily:
			return types.MakeDecimal(types.ModuloResult(a, b)), nil
		case types.FloatFamily:
			return types.MakeFloat(), nil
		default:
			return nil, errors.AssertionFailedf("unexpected family %s", fam)
		}

	case tree.OpNeg:
		switch a.Family {
		case types.IntFamily:
			if negationOverflows(e.Args[0]) {
				return types.MakeDecimal(a.Precision+1, 0), nil
			}
			return types.MakeIntWithPrecision(a.Precision+1, false), nil
		case types.DecimalFamily:
			return types.MakeDecimal(a.Precision, a.Scale), nil
		case types.FloatFamily:
			return types.MakeFloat(), nil
		default:
			return nil, errors.AssertionFailedf("unexpected family %s", a.Family)
		}

	case tree.OpAbs:
		switch a.Family {
		case types.IntFamily:
			return types.MakeIntWithPrecision(a.Precision, a.Unsigned), nil
		case types.DecimalFamily:
			return types.MakeDecimal(a.Precision, a.Scale), nil
		case types.FloatFamily:
			return types.MakeFloat(), nil
		default:
			return nil, errors.AssertionFailedf("unexpected family %s", a.Family)
		}

	case tree.OpRound, tree.OpTruncate:
		return resolveRound(e, a, e.Op == tree.OpTruncate)

	case tree.OpCeiling, tree.OpFloor:
		switch a.Family {
		case types.IntFamily:
			return types.MakeIntWithPrecision(a.Precision, a.Unsigned), nil
		case types.DecimalFamily:
			p, s := types.IntValResult(a)
			if a.IntDigits() < maxIntValDigits {
				return types.MakeIntWithPrecision(p, false), nil
			}
			return types.MakeDecimal(p, s), nil
		case types.FloatFamily:
			return types.MakeFloat(), nil
		default:
			return nil, errors.AssertionFailedf("unexpected family %s", a.Family)
		}

	case tree.OpSign:
		return types.MakeIntWithPrecision(2, false), nil

	case tree.OpLn, tree.OpLog, tree.OpLog2, tree.OpLog10, tree.OpExp,
		tree.OpSqrt, tree.OpPow, tree.OpAcos, tree.OpAsin, tree.OpAtan,
		tree.OpCos, tree.OpSin, tree.OpTan, tree.OpCot,
		tree.OpDegrees, tree.OpRadians:
		return types.MakeFloat(), nil

	default:
		return nil, errors.AssertionFailedf("unhandled operator %s", e.Op)
	}
}

// maxIntValDigits is the number of integer digits below which CEILING and
// FLOOR of a decimal are computed as integers.
const maxIntValDigits = 18

// negationOverflows returns whether arg is an integer constant whose
// negation does not fit in a signed 64-bit integer.
func negationOverflows(arg *tree.Expr) bool {
	if arg.Op != tree.OpConst {
		return false
	}
	d, ok := arg.Datum.(*tree.DInt)
	if !ok {
		return false
	}
	if d.Unsigned {
		return d.Bits > 1<<63
	}
	return d.Bits == 1<<63
}

// resolveRound computes the type of ROUND and TRUNCATE. A constant number
// of decimals determines the result scale; otherwise the operand's scale is
// kept and integers are rounded as doubles.
func resolveRound(e *tree.Expr, a *types.T, truncate bool) (*types.T, error) {
	dec, isConst := int64(0), true
	if len(e.Args) > 1 {
		d := e.Args[1]
		if d.Op != tree.OpConst {
			isConst = false
		} else if d.Datum != tree.DNull {
			dec = decimalsFromDatum(d.Datum)
		}
	}

	if !isConst {
		switch a.Family {
		case types.DecimalFamily:
			return types.MakeDecimal(a.Precision+1, a.Scale), nil
		case types.IntFamily, types.FloatFamily:
			return types.MakeFloat(), nil
		default:
			return nil, errors.AssertionFailedf("unexpected family %s", a.Family)
		}
	}

	switch a.Family {
	case types.IntFamily:
		p := a.Precision
		if !truncate && dec < 0 {
			p++
		}
		return types.MakeIntWithPrecision(p, a.Unsigned), nil
	case types.DecimalFamily:
		return types.MakeDecimal(types.RoundResult(a, dec, truncate)), nil
	case types.FloatFamily:
		return types.MakeFloat(), nil
	default:
		return nil, errors.AssertionFailedf("unexpected family %s", a.Family)
	}
}

// decimalsFromDatum converts the decimals argument of ROUND and TRUNCATE to
// an int64. Unsigned values saturate at math.MaxInt64 and non-integers are
// rounded half away from zero.
func decimalsFromDatum(d tree.Datum) int64 {
	switch t := d.(type) {
	case *tree.DInt:
		if t.Unsigned && t.Bits > math.MaxInt64 {
			return math.MaxInt64
		}
		return t.Int64()
	case *tree.DDecimal:
		i, _ := decimal.ToInt(&t.Decimal, false)
		return i.Int64()
	case *tree.DFloat:
		f := math.Round(float64(*t))
		switch {
		case math.IsNaN(f):
			return 0
		case f >= math.MaxInt64:
			return math.MaxInt64
		case f <= math.MinInt64:
			return math.MinInt64
		default:
			return int64(f)
		}
	default:
		return 0
	}
}
