// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
)

// ResolveFunc computes the type of a node whose children are already fixed.
// When it is called, e.Props() holds the properties aggregated from the
// children.
type ResolveFunc func(e *Expr) (*types.T, error)

// FixFields resolves every unfixed node of the tree bottom-up. For each node
// it aggregates nullability, constness, used tables and not-null tables from
// its children, then calls resolve exactly once. Already fixed subtrees are
// left alone, so calling FixFields again is free.
func FixFields(e *Expr, resolve ResolveFunc) error {
	if e.fixed {
		return nil
	}
	props, err := leafProps(e)
	if err != nil {
		return err
	}
	for _, arg := range e.Args {
		if err := FixFields(arg, resolve); err != nil {
			return err
		}
		props.Nullable = props.Nullable || arg.props.Nullable
		props.Const = props.Const && arg.props.Const
		props.UsedTables |= arg.props.UsedTables
		props.NotNullTables |= arg.props.NotNullTables
	}
	e.props = props

	typ, err := resolve(e)
	if err != nil {
		return err
	}
	if typ == nil {
		return errors.AssertionFailedf("no type resolved for %s", e)
	}
	if props.Nullable && !typ.Nullable {
		typ = typ.WithNullable(true)
	}
	e.typ = typ
	e.props.Nullable = typ.Nullable
	e.fixed = true
	return nil
}

// leafProps returns the properties a node has before its children are
// folded in.
func leafProps(e *Expr) (Props, error) {
	switch e.Op {
	case OpConst:
		if e.Datum == nil {
			return Props{}, errors.AssertionFailedf("constant without a value")
		}
		return Props{Const: true, Nullable: e.Datum == DNull}, nil
	case OpColumn:
		if e.Col == nil || e.Col.Type == nil {
			return Props{}, errors.AssertionFailedf("column reference without a type")
		}
		tables := MakeTableMap(e.Col.Table)
		return Props{
			Nullable:      e.Col.Type.Nullable,
			UsedTables:    tables,
			NotNullTables: tables,
		}, nil
	default:
		if len(e.Args) == 0 {
			return Props{}, errors.AssertionFailedf("%s has no arguments", e.Op)
		}
		return Props{Const: true}, nil
	}
}

// UpdateUsedTables recomputes the table sets of a fixed tree after column
// references were moved to other tables. Constant subtrees read no table
// and are skipped.
func UpdateUsedTables(e *Expr) {
	if e.props.Const {
		return
	}
	if e.Op == OpColumn {
		tables := MakeTableMap(e.Col.Table)
		e.props.UsedTables, e.props.NotNullTables = tables, tables
		return
	}
	var used, notNull TableMap
	for _, arg := range e.Args {
		UpdateUsedTables(arg)
		used |= arg.props.UsedTables
		notNull |= arg.props.NotNullTables
	}
	e.props.UsedTables, e.props.NotNullTables = used, notNull
}
