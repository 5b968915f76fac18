// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package exprexec runs scripts of numeric expressions. Each expression is
// resolved once and then evaluated against every row of the script.
package exprexec

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/eval"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/exprbuild"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/cockroachdb/numexpr/pkg/sql/sessiondata"
	"github.com/cockroachdb/numexpr/pkg/util/log"
	"github.com/cockroachdb/numexpr/pkg/util/timeutil"
	"github.com/cockroachdb/redact"
)

// Executor prepares and runs scripts. It is safe for concurrent use as
// long as each Prepared script is run by a single goroutine.
type Executor struct {
	sd      *sessiondata.SessionData
	metrics *Metrics

	// warnEvery limits the logging of per-row warnings.
	warnEvery *log.EveryN
}

// NewExecutor creates an Executor that evaluates with the given session
// settings, before the overrides of each script are applied. metrics may
// be nil.
func NewExecutor(sd *sessiondata.SessionData, metrics *Metrics) *Executor {
	if sd == nil {
		sd = sessiondata.Default()
	}
	if metrics == nil {
		m := MakeMetrics()
		metrics = &m
	}
	return &Executor{sd: sd, metrics: metrics, warnEvery: log.Every(10 * time.Second)}
}

// Prepared is a script whose expressions are built and resolved and whose
// rows are parsed.
type Prepared struct {
	name    string
	evalCtx eval.Context
	cols    exprbuild.ColumnList
	stmts   []preparedStatement
	rows    []tree.Row
}

type preparedStatement struct {
	name string
	expr *tree.Expr
	typ  *types.T
}

// Columns returns the declared columns.
func (p *Prepared) Columns() []*tree.ColumnRef {
	return p.cols
}

// NumRows returns the number of rows of the script.
func (p *Prepared) NumRows() int {
	return len(p.rows)
}

// Prepare applies the session overrides of s, builds and resolves each of
// its statements and parses its rows. A script that declares neither
// columns nor rows has a single empty row. All errors are marked with
// ErrInvalidScript.
func (ex *Executor) Prepare(s *Script) (*Prepared, error) {
	sd, err := ex.sd.Apply(s.Session)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidScript)
	}
	p := &Prepared{name: s.Name, evalCtx: eval.Context{SessionData: sd}}

	for i, c := range s.Columns {
		if c.Name == "" {
			return nil, invalidScriptf("column %d has no name", i+1)
		}
		if p.cols.FindColumn(c.Name) != nil {
			return nil, invalidScriptf("column %q is declared twice", c.Name)
		}
		if c.Table < 0 || c.Table >= tree.MaxTables {
			return nil, invalidScriptf("column %q: table ordinal %d is outside [0, %d)",
				c.Name, c.Table, tree.MaxTables)
		}
		typ, err := types.ParseT(c.Type)
		if err != nil {
			return nil, wrapInvalidScript(err, "column %q", c.Name)
		}
		p.cols = append(p.cols, &tree.ColumnRef{Name: c.Name, Idx: i, Table: c.Table, Type: typ})
	}

	for _, st := range s.Statements {
		name := st.Name
		if name == "" {
			name = st.Expr
		}
		expr, err := exprbuild.Build(st.Expr, p.cols)
		if err != nil {
			return nil, wrapInvalidScript(err, "statement %q", name)
		}
		typ, err := eval.Resolve(&p.evalCtx, expr)
		if err != nil {
			return nil, wrapInvalidScript(err, "statement %q", name)
		}
		p.stmts = append(p.stmts, preparedStatement{name: name, expr: expr, typ: typ})
	}

	for i, vals := range s.Rows {
		row, err := p.parseRow(vals)
		if err != nil {
			return nil, wrapInvalidScript(err, "row %d", i+1)
		}
		p.rows = append(p.rows, row)
	}
	if len(p.rows) == 0 && len(p.cols) == 0 {
		// Constant statements are evaluated once.
		p.rows = []tree.Row{{}}
	}
	return p, nil
}

func (p *Prepared) parseRow(vals []*string) (tree.Row, error) {
	if len(vals) != len(p.cols) {
		return nil, invalidScriptf("expected %d values, got %d", len(p.cols), len(vals))
	}
	row := make(tree.Row, len(vals))
	for i, v := range vals {
		col := p.cols[i]
		if v == nil {
			row[i] = tree.DNull
		} else {
			d, err := tree.ParseDatum(col.Type, *v)
			if err != nil {
				return nil, errors.Wrapf(err, "column %q", col.Name)
			}
			row[i] = d
		}
		if row[i] == tree.DNull && !col.Type.Nullable {
			return nil, invalidScriptf("column %q is not nullable", col.Name)
		}
	}
	return row, nil
}

// Result is the outcome of running a script.
type Result struct {
	Script     string
	Statements []StatementResult
	Elapsed    time.Duration
}

// Failed returns whether any statement of the script aborted.
func (r *Result) Failed() bool {
	for i := range r.Statements {
		if r.Statements[i].Err != nil {
			return true
		}
	}
	return false
}

// StatementResult is the outcome of evaluating one statement against the
// rows of a script.
type StatementResult struct {
	Name string
	// Expr is the resolved expression in function style.
	Expr string
	Type *types.T
	// Rows holds the rows evaluated successfully, in order.
	Rows []RowResult
	// Err is the error that aborted the statement, if any. The row it was
	// raised on is ErrRow, counted from 1.
	Err    error
	ErrRow int
}

// RowResult is the value of a statement for one row.
type RowResult struct {
	Value    tree.Datum
	Warnings []error
}

// RunScript prepares and runs s.
func (ex *Executor) RunScript(ctx context.Context, s *Script) (*Result, error) {
	p, err := ex.Prepare(s)
	if err != nil {
		return nil, err
	}
	return ex.Run(ctx, p)
}

// Run evaluates every statement of p against every row. An evaluation
// error aborts the statement it was raised by; the following statements
// still run. Run returns an error only if ctx is canceled, which is
// checked between rows.
func (ex *Executor) Run(ctx context.Context, p *Prepared) (*Result, error) {
	ctx = logtags.AddTag(ctx, "script", p.name)
	sw := timeutil.NewStopWatch()
	sw.Start()
	res := &Result{Script: p.name}
	for i := range p.stmts {
		sr, err := ex.runStatement(logtags.AddTag(ctx, "s", i+1), p, &p.stmts[i])
		if err != nil {
			return nil, err
		}
		res.Statements = append(res.Statements, sr)
	}
	sw.Stop()
	res.Elapsed = sw.Elapsed()
	log.VEventf(ctx, 1, "ran %d statements over %d rows in %s",
		redact.Safe(len(p.stmts)), redact.Safe(len(p.rows)), redact.Safe(res.Elapsed))
	return res, nil
}

func (ex *Executor) runStatement(
	ctx context.Context, p *Prepared, st *preparedStatement,
) (StatementResult, error) {
	sr := StatementResult{
		Name: st.name,
		Expr: tree.AsStringWithFlags(st.expr, tree.FmtFunctionStyle),
		Type: st.typ,
	}
	start := timeutil.Now()
	defer func() {
		ex.metrics.StatementLatency.Observe(timeutil.Since(start).Seconds())
	}()

	var w eval.Warnings
	for i, row := range p.rows {
		if err := ctx.Err(); err != nil {
			return StatementResult{}, errors.Wrapf(err, "statement %q", st.name)
		}
		w.Reset()
		d, err := eval.Expr(&p.evalCtx, st.expr, row, &w)
		ex.metrics.RowsEvaluated.Inc()
		warnings := append([]error(nil), w.Errors()...)
		for _, warn := range warnings {
			ex.metrics.Warnings.WithLabelValues(pgerror.GetPGCode(warn).String()).Inc()
			if ex.warnEvery.ShouldLog() {
				log.Warningf(ctx, "row %d: %v", redact.Safe(i+1), warn)
			}
		}
		if err != nil {
			code := pgerror.GetPGCode(err)
			ex.metrics.Errors.WithLabelValues(code.String()).Inc()
			log.Infof(ctx, "statement aborted at row %d: %v", redact.Safe(i+1), err)
			sr.Err, sr.ErrRow = err, i+1
			return sr, nil
		}
		if d == tree.DNull {
			ex.metrics.NullResults.Inc()
		}
		log.VEventf(ctx, 2, "row %d: %s", redact.Safe(i+1), d)
		sr.Rows = append(sr.Rows, RowResult{Value: d, Warnings: warnings})
	}
	return sr, nil
}
