// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var (
	colA = &ColumnRef{Name: "a", Idx: 0, Table: 0, Type: types.MakeInt(types.FieldTypeLongLong, false)}
	colB = &ColumnRef{Name: "b", Idx: 1, Table: 1, Type: types.MakeDecimal(9, 2).WithNullable(true)}
)

// testResolve assigns leaves their natural type and every operator the
// type of its first argument.
func testResolve(e *Expr) (*types.T, error) {
	switch e.Op {
	case OpConst:
		return DatumType(e.Datum), nil
	case OpColumn:
		return e.Col.Type, nil
	default:
		return e.Args[0].ResolvedType().WithNullable(e.Props().Nullable), nil
	}
}

// sampleExpr builds ((a + 1) * -b).
func sampleExpr() *Expr {
	return NewExpr(OpMult,
		NewExpr(OpPlus, NewColumn(colA), NewConst(NewDInt(1))),
		NewExpr(OpNeg, NewColumn(colB)),
	)
}

func TestWalkOrder(t *testing.T) {
	e := sampleExpr()
	var visited []string
	record := func(e *Expr) bool {
		visited = append(visited, e.Op.String())
		return false
	}

	require.False(t, Walk(e, WalkPrefix, record))
	if diff := cmp.Diff([]string{"mul", "plus", "column", "const", "neg", "column"}, visited); diff != "" {
		t.Errorf("unexpected prefix order (-want +got):\n%s", diff)
	}

	visited = nil
	require.False(t, Walk(e, WalkPostfix, record))
	if diff := cmp.Diff([]string{"column", "const", "plus", "column", "neg", "mul"}, visited); diff != "" {
		t.Errorf("unexpected postfix order (-want +got):\n%s", diff)
	}

	visited = nil
	require.False(t, Walk(e.Args[1], WalkPrefix|WalkPostfix, record))
	require.Equal(t, []string{"neg", "column", "column", "neg"}, visited)
}

func TestWalkAbort(t *testing.T) {
	e := sampleExpr()
	var visited int
	stopped := Walk(e, WalkPrefix, func(e *Expr) bool {
		visited++
		return e.Op == OpConst
	})
	require.True(t, stopped)
	require.Equal(t, 4, visited)
}

func TestTransform(t *testing.T) {
	e := sampleExpr()
	require.NoError(t, FixFields(e, testResolve))
	before := e.String()

	// Replace the constant 1 with 2.
	n, err := Transform(e, func(e *Expr) (*Expr, error) {
		if e.Op == OpConst {
			return NewConst(NewDInt(2)), nil
		}
		return e, nil
	})
	require.NoError(t, err)
	require.Equal(t, "((a + 2) * -b)", n.String())
	require.Equal(t, before, e.String(), "input tree modified")

	// Nodes on the path to the change are copied and unfixed; the untouched
	// sibling subtree is shared and stays fixed.
	require.NotSame(t, e, n)
	require.NotSame(t, e.Args[0], n.Args[0])
	require.Same(t, e.Args[1], n.Args[1])
	require.False(t, n.IsFixed())
	require.True(t, n.Args[1].IsFixed())

	// An identity transform returns the same root.
	same, err := Transform(e, func(e *Expr) (*Expr, error) { return e, nil })
	require.NoError(t, err)
	require.Same(t, e, same)

	// Errors stop the transformation.
	_, err = Transform(e, func(e *Expr) (*Expr, error) {
		if e.Op == OpColumn {
			return nil, errors.New("boom")
		}
		return e, nil
	})
	require.EqualError(t, err, "boom")
}

func TestCompile(t *testing.T) {
	e := sampleExpr()

	// The analyzer tracks the depth of each node and skips negations; the
	// transformer wraps every column it sees at depth 2 in abs().
	type depth struct{ d int }
	var seen []int
	n, err := Compile(e,
		func(e *Expr, arg *depth) bool {
			arg.d++
			seen = append(seen, arg.d)
			return e.Op != OpNeg
		},
		depth{},
		func(e *Expr) (*Expr, error) {
			if e.Op == OpColumn {
				return NewExpr(OpAbs, e), nil
			}
			return e, nil
		},
	)
	require.NoError(t, err)
	require.Equal(t, "(abs(a) + 1)", n.Args[0].String())
	require.Same(t, e.Args[1], n.Args[1])
	// Siblings receive the same value from their parent.
	require.Equal(t, []int{1, 2, 3, 3, 2}, seen)
}

func TestReplaceArg(t *testing.T) {
	e := sampleExpr()
	require.NoError(t, FixFields(e, testResolve))
	require.True(t, e.IsFixed())

	e.ReplaceArg(1, NewConst(NewDInt(3)))
	require.False(t, e.IsFixed())
	require.Nil(t, e.ResolvedType())
	require.Equal(t, "((a + 1) * 3)", e.String())

	require.NoError(t, FixFields(e, testResolve))
	require.False(t, e.Props().Nullable)
	require.Equal(t, MakeTableMap(0), e.Props().UsedTables)
}
