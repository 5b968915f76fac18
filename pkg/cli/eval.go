// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/cli/clierror"
	"github.com/cockroachdb/numexpr/pkg/cli/cliflags"
	"github.com/cockroachdb/numexpr/pkg/cli/exit"
	"github.com/cockroachdb/numexpr/pkg/sql/exprexec"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/util/humanizeutil"
	"github.com/cockroachdb/numexpr/pkg/util/log"
	"github.com/cockroachdb/numexpr/pkg/util/metric"
	"github.com/cockroachdb/numexpr/pkg/util/timeutil"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// evalContext captures the command-line parameters of the eval command.
type evalContext struct {
	session          sessionContext
	format           tableDisplayFormat
	concurrency      int
	maxScriptSize    int64
	showMetrics      bool
	graphiteEndpoint string

	env envFlags
}

func newEvalCmd() *cobra.Command {
	c := &evalContext{
		format:        defaultTableDisplayFormat(),
		concurrency:   runtime.GOMAXPROCS(0),
		maxScriptSize: 16 << 20,
	}
	cmd := &cobra.Command{
		Use:   "eval <script>...",
		Short: "evaluate expression scripts",
		Long: `
Evaluates the statements of each YAML script against its rows and prints
one result row per statement and input row. Scripts are evaluated
concurrently; results are printed in the order the scripts were given.

A script looks like:

  session:
    div_precision_increment: 2
  columns:
    - {name: price, type: "decimal(9,2)"}
    - {name: qty, type: int unsigned null}
  statements:
    - {name: total, expr: "mul(price, qty)"}
  rows:
    - [12.50, 3]
    - [1.05, null]

The command fails if a statement is aborted by an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args)
		},
	}
	f := flagSet{fs: cmd.Flags(), env: &c.env}
	c.session.registerFlags(f)
	f.VarFlag(&c.format, cliflags.Format)
	f.IntFlag(&c.concurrency, cliflags.Concurrency, c.concurrency)
	f.VarFlag(humanizeutil.NewBytesValue(&c.maxScriptSize), cliflags.MaxScriptSize)
	f.BoolFlag(&c.showMetrics, cliflags.ShowMetrics, false)
	f.StringFlag(&c.graphiteEndpoint, cliflags.GraphiteEndpoint, "")
	return cmd
}

func (c *evalContext) run(cmd *cobra.Command, paths []string) error {
	ctx, w := cmd.Context(), cmd.OutOrStdout()
	if err := c.env.apply(cmd.Flags()); err != nil {
		return flagError(err)
	}
	if c.concurrency < 1 {
		return flagError(errors.Newf("--%s must be at least 1", cliflags.Concurrency.Name))
	}
	sd, err := c.session.sessionData()
	if err != nil {
		return err
	}

	metrics := exprexec.MakeMetrics()
	registry := metric.NewRegistry()
	if err := registry.AddMetricStruct(&metrics); err != nil {
		return err
	}
	ex := exprexec.NewExecutor(sd, &metrics)

	sw := timeutil.NewStopWatch()
	sw.Start()
	results := make([]*exprexec.Result, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			s, err := c.loadScript(path)
			if err != nil {
				return err
			}
			res, err := ex.RunScript(gCtx, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		switch {
		case errors.Is(err, exprexec.ErrInvalidScript):
			return clierror.NewError(err, exit.ScriptInvalid())
		case pgerror.GetPGCode(err) == pgcode.QueryCanceled:
			return clierror.NewError(err, exit.Interrupted())
		default:
			return err
		}
	}
	sw.Stop()

	cols, rows, failed := resultRows(results)
	if err := printQueryOutput(w, cols, rows, c.format); err != nil {
		return err
	}
	if c.format == tableDisplayTable {
		fmt.Fprintf(w, "\nTime: %s\n", humanizeutil.Duration(sw.Elapsed()))
	}

	pm := metric.MakePrometheusExporter(registry)
	if c.showMetrics {
		fmt.Fprintln(w)
		if err := pm.PrintAsText(w); err != nil {
			return err
		}
	}
	if c.graphiteEndpoint != "" {
		ge := metric.MakeGraphiteExporter(&pm)
		if err := ge.Push(ctx, c.graphiteEndpoint); err != nil {
			log.Warningf(ctx, "%v", err)
		}
	}

	if failed > 0 {
		return clierror.NewError(
			errors.Newf("%d statement%s failed", failed, pluralize(failed)), exit.StatementFailed())
	}
	return nil
}

// loadScript loads the script at path, rejecting files larger than the
// configured maximum.
func (c *evalContext) loadScript(path string) (*exprexec.Script, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading script"), exprexec.ErrInvalidScript)
	}
	if fi.Size() > c.maxScriptSize {
		return nil, errors.Mark(
			errors.Newf("script %s is %s, larger than the limit of %s", path,
				humanizeutil.IBytes(fi.Size()), humanizeutil.IBytes(c.maxScriptSize)),
			exprexec.ErrInvalidScript)
	}
	return exprexec.LoadScript(path)
}

// resultRows converts the results of the scripts to rows of strings, one
// per statement and input row. A script column is included if there is
// more than one script. An aborted statement contributes a row holding
// the error, after the rows it evaluated.
func resultRows(results []*exprexec.Result) (cols []string, rows [][]string, failed int) {
	withScript := len(results) > 1
	if withScript {
		cols = append(cols, "script")
	}
	cols = append(cols, "statement", "row", "value", "notes")
	for _, res := range results {
		for _, st := range res.Statements {
			prefix := []string{st.Name}
			if withScript {
				prefix = []string{res.Script, st.Name}
			}
			for i, r := range st.Rows {
				notes := make([]string, len(r.Warnings))
				for j, w := range r.Warnings {
					notes[j] = pgerror.FullError(w)
				}
				row := append(append([]string(nil), prefix...),
					strconv.Itoa(i+1), r.Value.String(), strings.Join(notes, "; "))
				rows = append(rows, row)
			}
			if st.Err != nil {
				failed++
				row := append(append([]string(nil), prefix...),
					strconv.Itoa(st.ErrRow), "ERROR", pgerror.FullError(st.Err))
				rows = append(rows, row)
			}
		}
	}
	return cols, rows, failed
}
