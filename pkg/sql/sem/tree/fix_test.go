// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/stretchr/testify/require"
)

func TestFixFieldsProps(t *testing.T) {
	e := sampleExpr()
	calls := map[*Expr]int{}
	resolve := func(e *Expr) (*types.T, error) {
		calls[e]++
		return testResolve(e)
	}
	require.NoError(t, FixFields(e, resolve))

	plus, neg := e.Args[0], e.Args[1]
	require.Equal(t, Props{UsedTables: MakeTableMap(0), NotNullTables: MakeTableMap(0)}, plus.Props())
	require.Equal(t, Props{Nullable: true, UsedTables: MakeTableMap(1), NotNullTables: MakeTableMap(1)}, neg.Props())
	require.Equal(t, Props{
		Nullable:      true,
		UsedTables:    MakeTableMap(0, 1),
		NotNullTables: MakeTableMap(0, 1),
	}, e.Props())
	require.True(t, plus.Args[1].IsConst())
	require.False(t, e.IsConst())

	// Nullability is forced onto the type of nullable subtrees.
	require.True(t, e.ResolvedType().Nullable)
	require.False(t, plus.ResolvedType().Nullable)

	// Each node is resolved exactly once, also across repeated calls.
	require.NoError(t, FixFields(e, resolve))
	require.Len(t, calls, 6)
	for n, c := range calls {
		require.Equal(t, 1, c, "%s resolved %d times", n, c)
	}
}

func TestFixFieldsConstant(t *testing.T) {
	e := NewExpr(OpPlus, NewConst(NewDInt(1)), NewConst(DNull))
	require.NoError(t, FixFields(e, testResolve))
	require.Equal(t, Props{Const: true, Nullable: true}, e.Props())
}

func TestFixFieldsErrors(t *testing.T) {
	e := sampleExpr()
	err := FixFields(e, func(n *Expr) (*types.T, error) {
		if n.Op == OpNeg {
			return nil, errors.New("cannot negate")
		}
		return testResolve(n)
	})
	require.EqualError(t, err, "cannot negate")
	require.False(t, e.IsFixed())
	require.True(t, e.Args[0].IsFixed())

	require.True(t, errors.HasAssertionFailure(FixFields(NewExpr(OpAbs), testResolve)))
	require.True(t, errors.HasAssertionFailure(FixFields(NewConst(nil), testResolve)))
	require.True(t, errors.HasAssertionFailure(FixFields(NewExpr(OpAbs, NewConst(NewDInt(1))),
		func(*Expr) (*types.T, error) { return nil, nil })))
}

func TestUpdateUsedTables(t *testing.T) {
	col := &ColumnRef{Name: "c", Idx: 0, Table: 2, Type: types.MakeFloat()}
	e := NewExpr(OpPlus, NewColumn(col), NewExpr(OpAbs, NewConst(NewDInt(-1))))
	require.NoError(t, FixFields(e, testResolve))
	require.Equal(t, MakeTableMap(2), e.Props().UsedTables)

	col.Table = 5
	UpdateUsedTables(e)
	require.Equal(t, MakeTableMap(5), e.Props().UsedTables)
	require.Equal(t, MakeTableMap(5), e.Props().NotNullTables)
	require.Equal(t, TableMap(0), e.Args[1].Props().UsedTables)
	require.True(t, e.Props().UsedTables.Contains(5))
}
