// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
)

// TableMap is a set of table ordinals. Ordinals at or above 64 are not
// representable.
type TableMap uint64

// MaxTables bounds the table ordinals a TableMap can hold: valid ordinals
// are in [0, MaxTables).
const MaxTables = 64

// MakeTableMap returns the set containing the given ordinals, which must
// be in [0, MaxTables).
func MakeTableMap(ords ...int) TableMap {
	var m TableMap
	for _, ord := range ords {
		m |= 1 << uint(ord)
	}
	return m
}

// Contains returns whether ord is in the set.
func (m TableMap) Contains(ord int) bool {
	return m&(1<<uint(ord)) != 0
}

// ColumnRef identifies a column of the rows an expression is evaluated over.
type ColumnRef struct {
	Name string
	// Idx is the position of the column's value in a Row.
	Idx int
	// Table is the ordinal of the table the column belongs to.
	Table int
	// Type is the declared type of the column, including its nullability.
	Type *types.T
}

// Props are the properties of a subtree that FixFields aggregates from the
// children into each parent.
type Props struct {
	// Nullable is set if the subtree may evaluate to NULL.
	Nullable bool
	// Const is set if the subtree does not read any column.
	Const bool
	// UsedTables is the set of tables whose columns the subtree reads.
	UsedTables TableMap
	// NotNullTables is the set of tables for which a NULL column value
	// makes the subtree NULL.
	NotNullTables TableMap
}

// Expr is a node of a numeric expression tree. A node exclusively owns its
// children. Leaves are constants (OpConst) and column references
// (OpColumn).
//
// Nodes are built with NewExpr, NewConst and NewColumn, resolved once with
// FixFields and then evaluated once per row. A node must not be evaluated
// concurrently.
type Expr struct {
	Op   Operator
	Args []*Expr

	// Datum is the value of an OpConst node.
	Datum Datum
	// Col is the column read by an OpColumn node.
	Col *ColumnRef

	fixed bool
	typ   *types.T
	props Props

	// scratch is the decimal buffer for intermediate results of this node.
	scratch    apd.Decimal
	evaluating bool
}

// NewExpr returns an operator node over args.
func NewExpr(op Operator, args ...*Expr) *Expr {
	return &Expr{Op: op, Args: args}
}

// NewConst returns a constant leaf.
func NewConst(d Datum) *Expr {
	return &Expr{Op: OpConst, Datum: d}
}

// NewColumn returns a column reference leaf.
func NewColumn(col *ColumnRef) *Expr {
	return &Expr{Op: OpColumn, Col: col}
}

// ResolvedType returns the type assigned by FixFields, or nil if the node
// has not been fixed.
func (e *Expr) ResolvedType() *types.T {
	return e.typ
}

// IsFixed returns whether FixFields resolved the node.
func (e *Expr) IsFixed() bool {
	return e.fixed
}

// Props returns the aggregated properties of the subtree.
func (e *Expr) Props() Props {
	return e.props
}

// IsConst returns whether the subtree reads no column.
func (e *Expr) IsConst() bool {
	return e.props.Const
}

// Scratch returns the decimal buffer reserved for this node's evaluation.
// It must not be retained past the evaluation that obtained it.
func (e *Expr) Scratch() *apd.Decimal {
	return &e.scratch
}

// BeginEval marks the node as being evaluated. It returns false if the node
// is already being evaluated, in which case EndEval must not be called.
func (e *Expr) BeginEval() bool {
	if e.evaluating {
		return false
	}
	e.evaluating = true
	return true
}

// EndEval clears the mark set by BeginEval.
func (e *Expr) EndEval() {
	e.evaluating = false
}

// ReplaceArg replaces the i-th child. The node and its cached type become
// unfixed; FixFields must be run again before evaluation.
func (e *Expr) ReplaceArg(i int, arg *Expr) {
	e.Args[i] = arg
	e.unfix()
}

func (e *Expr) unfix() {
	e.fixed = false
	e.typ = nil
	e.props = Props{}
}

// copyNode returns an unfixed copy of e sharing e's children.
func (e *Expr) copyNode() *Expr {
	return &Expr{
		Op:    e.Op,
		Args:  append([]*Expr(nil), e.Args...),
		Datum: e.Datum,
		Col:   e.Col,
	}
}
