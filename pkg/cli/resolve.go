// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/cli/clierror"
	"github.com/cockroachdb/numexpr/pkg/cli/cliflags"
	"github.com/cockroachdb/numexpr/pkg/cli/exit"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/eval"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/exprbuild"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/tree"
	"github.com/cockroachdb/numexpr/pkg/sql/sem/types"
	"github.com/spf13/cobra"
)

// resolveContext captures the command-line parameters of the resolve
// command.
type resolveContext struct {
	session       sessionContext
	columns       []string
	functionStyle bool

	env envFlags
}

func newResolveCmd() *cobra.Command {
	c := &resolveContext{}
	cmd := &cobra.Command{
		Use:   "resolve <expr>",
		Short: "print the typed tree of an expression",
		Long: `
Resolves an expression and prints it with the type of every node,
followed by the properties of the whole expression. For example:

  numexpr resolve --column "x:decimal(5,2)" "div(x, 3)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, args[0])
		},
	}
	f := flagSet{fs: cmd.Flags(), env: &c.env}
	c.session.registerFlags(f)
	f.StringSliceFlag(&c.columns, cliflags.Columns)
	f.BoolFlag(&c.functionStyle, cliflags.FunctionStyle, false)
	return cmd
}

// parseColumns parses column declarations of the form name:type.
func parseColumns(decls []string) (exprbuild.ColumnList, error) {
	var cols exprbuild.ColumnList
	for i, decl := range decls {
		name, typStr, ok := strings.Cut(decl, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf("invalid column %q: expected name:type", decl)
		}
		if cols.FindColumn(name) != nil {
			return nil, errors.Newf("column %q is declared twice", name)
		}
		typ, err := types.ParseT(typStr)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", name)
		}
		cols = append(cols, &tree.ColumnRef{Name: name, Idx: i, Type: typ})
	}
	return cols, nil
}

func (c *resolveContext) run(cmd *cobra.Command, expr string) error {
	if err := c.env.apply(cmd.Flags()); err != nil {
		return flagError(err)
	}
	sd, err := c.session.sessionData()
	if err != nil {
		return err
	}
	cols, err := parseColumns(c.columns)
	if err != nil {
		return flagError(err)
	}
	e, err := exprbuild.Build(expr, cols)
	if err != nil {
		return clierror.NewError(err, exit.ScriptInvalid())
	}
	typ, err := eval.Resolve(&eval.Context{SessionData: sd}, e)
	if err != nil {
		return clierror.NewError(err, exit.ScriptInvalid())
	}

	flags := tree.FmtShowTypes
	if c.functionStyle {
		flags |= tree.FmtFunctionStyle
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, tree.AsStringWithFlags(e, flags))
	props := e.Props()
	tw := tabwriter.NewWriter(w, 2, 1, 2, ' ', 0)
	fmt.Fprintf(tw, "type:\t%s\n", typ.SQLString())
	fmt.Fprintf(tw, "nullable:\t%t\n", typ.Nullable)
	fmt.Fprintf(tw, "constant:\t%t\n", props.Const)
	fmt.Fprintf(tw, "tables:\t%s\n", formatTableMap(props.UsedTables))
	return tw.Flush()
}

func formatTableMap(m tree.TableMap) string {
	var ords []string
	for i := 0; i < 64; i++ {
		if m.Contains(i) {
			ords = append(ords, strconv.Itoa(i))
		}
	}
	return "{" + strings.Join(ords, ",") + "}"
}
