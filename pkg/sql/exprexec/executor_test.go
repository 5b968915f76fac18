// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exprexec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sessiondata"
	"github.com/cockroachdb/numexpr/pkg/util/log"
	"github.com/cockroachdb/numexpr/pkg/util/metric"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

const testScript = `
columns:
  - {name: a, type: bigint}
  - {name: b, type: bigint null}
statements:
  - {name: sum, expr: "plus(a, b)"}
  - {name: ratio, expr: "div(a, b)"}
  - {name: big, expr: "mul(a, 4611686018427387904)"}
rows:
  - [1, 2]
  - [3, null]
  - [5, 0]
  - [3, 1]
`

func formatResult(res *Result) string {
	var sb strings.Builder
	for _, st := range res.Statements {
		typ := st.Type.SQLString()
		if st.Type.Nullable {
			typ += " null"
		}
		fmt.Fprintf(&sb, "%s: %s %s\n", st.Name, st.Expr, typ)
		for i, r := range st.Rows {
			fmt.Fprintf(&sb, "  %d: %s\n", i+1, r.Value)
			for _, w := range r.Warnings {
				fmt.Fprintf(&sb, "     %s\n", pgerror.FullError(w))
			}
		}
		if st.Err != nil {
			fmt.Fprintf(&sb, "  %d: %s\n", st.ErrRow, pgerror.FullError(st.Err))
		} else if len(st.Rows) == 0 {
			sb.WriteString("(no rows)\n")
		}
	}
	return sb.String()
}

func TestExecutor(t *testing.T) {
	defer log.Scope(t).Close(t)

	datadriven.RunTest(t, "testdata/run", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "run":
			ex := NewExecutor(sessiondata.Default(), nil)
			s, err := ParseScript("test.yaml", []byte(d.Input))
			if err != nil {
				require.True(t, errors.Is(err, ErrInvalidScript))
				return pgerror.FullError(err)
			}
			res, err := ex.RunScript(context.Background(), s)
			if err != nil {
				require.True(t, errors.Is(err, ErrInvalidScript))
				return pgerror.FullError(err)
			}
			return formatResult(res)
		default:
			d.Fatalf(t, "unknown command %s", d.Cmd)
			return ""
		}
	})
}

func TestExecutorMetrics(t *testing.T) {
	sc := log.Scope(t)
	defer sc.Close(t)

	m := MakeMetrics()
	r := metric.NewRegistry()
	require.NoError(t, r.AddMetricStruct(&m))

	s, err := ParseScript("metrics.yaml", []byte(testScript))
	require.NoError(t, err)
	ex := NewExecutor(nil, &m)
	res, err := ex.RunScript(context.Background(), s)
	require.NoError(t, err)
	require.True(t, res.Failed())

	// 4 rows for sum and ratio, 2 for big before it aborted.
	require.Equal(t, 10.0, testutil.ToFloat64(m.RowsEvaluated))
	require.Equal(t, 3.0, testutil.ToFloat64(m.NullResults))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Warnings.WithLabelValues("22012")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("22003")))
	require.Equal(t, 1, testutil.CollectAndCount(m.StatementLatency))

	contents := sc.Contents()
	require.Contains(t, contents, "[script=metrics.yaml,s2] row 3: Division by 0")
	require.Contains(t, contents, "[script=metrics.yaml,s3] statement aborted at row 2: BIGINT value is out of range")
}

func TestExecutorCancellation(t *testing.T) {
	defer log.Scope(t).Close(t)

	s, err := ParseScript("cancel.yaml", []byte(testScript))
	require.NoError(t, err)
	ex := NewExecutor(nil, nil)
	p, err := ex.Prepare(s)
	require.NoError(t, err)
	require.Equal(t, 4, p.NumRows())
	require.Len(t, p.Columns(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ex.Run(ctx, p)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, pgcode.QueryCanceled, pgerror.GetPGCode(err))

	// A prepared script can be run again.
	res, err := ex.Run(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, res.Statements, 3)
	require.Len(t, res.Statements[0].Rows, 4)
	require.Equal(t, 2, res.Statements[2].ErrRow)
}

func TestPrepareResolvesOnce(t *testing.T) {
	s, err := ParseScript("once.yaml", []byte(testScript))
	require.NoError(t, err)
	ex := NewExecutor(nil, nil)
	p, err := ex.Prepare(s)
	require.NoError(t, err)
	for _, st := range p.stmts {
		require.True(t, st.expr.IsFixed())
		require.Same(t, st.typ, st.expr.ResolvedType())
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScript), 0644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	require.Equal(t, "prices.yaml", s.Name)
	require.Len(t, s.Columns, 2)
	require.Equal(t, ColumnDef{Name: "b", Type: "bigint null"}, s.Columns[1])
	require.Len(t, s.Rows, 4)
	require.Nil(t, s.Rows[1][1])
	require.Equal(t, "3", *s.Rows[1][0])

	_, err = LoadScript(filepath.Join(dir, "missing.yaml"))
	require.True(t, errors.Is(err, ErrInvalidScript))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPrepareErrors(t *testing.T) {
	ex := NewExecutor(nil, nil)
	for _, tc := range []struct {
		script string
		msg    string
	}{
		{
			script: `{columns: [{type: bigint}], statements: [{expr: "1"}]}`,
			msg:    `column 1 has no name`,
		},
		{
			script: `{columns: [{name: a, type: bigint}, {name: A, type: double}], statements: [{expr: "1"}]}`,
			msg:    `column "A" is declared twice`,
		},
		{
			script: `{columns: [{name: a, type: varchar}], statements: [{expr: "1"}]}`,
			msg:    `column "a"`,
		},
		{
			script: `{columns: [{name: a, type: bigint, table: 64}], statements: [{expr: "a"}]}`,
			msg:    `column "a": table ordinal 64 is outside [0, 64)`,
		},
		{
			script: `{columns: [{name: a, type: bigint, table: -1}], statements: [{expr: "a"}]}`,
			msg:    `column "a": table ordinal -1 is outside [0, 64)`,
		},
		{
			script: `{columns: [{name: g, type: geometry}], statements: [{name: bad, expr: "plus(g, 1)"}]}`,
			msg:    `statement "bad": Incorrect arguments to +`,
		},
	} {
		t.Run(tc.msg, func(t *testing.T) {
			s, err := ParseScript("bad.yaml", []byte(tc.script))
			require.NoError(t, err)
			_, err = ex.Prepare(s)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidScript))
			require.Contains(t, err.Error(), tc.msg)
		})
	}
}
