// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the numexpr command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/build"
	"github.com/cockroachdb/numexpr/pkg/cli/clierror"
	"github.com/cockroachdb/numexpr/pkg/cli/exit"
	"github.com/cockroachdb/numexpr/pkg/util/log"
	"github.com/spf13/cobra"
)

// Main is the entry point for the numexpr binary.
func Main() {
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "help")
	}
	if err := Run(os.Args[1:]); err != nil {
		_ = clierror.CheckAndMaybeLog(err, stderrReporter(os.Stderr))
		exit.WithCode(clierror.GetExitCode(err))
	}
}

// Run executes the command line given by args, writing to the process'
// stdout and stderr.
func Run(args []string) error {
	cmd := newNumexprCmd(os.Stdout, os.Stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// stderrReporter returns a clierror.Logger printing errors to w, prefixed
// with their severity.
func stderrReporter(w io.Writer) clierror.Logger {
	return func(_ context.Context, sev log.Severity, msg string, args ...interface{}) {
		fmt.Fprintf(w, "%s: %s\n", sev, fmt.Sprintf(msg, args...))
	}
}

func newNumexprCmd(stdout, stderr io.Writer) *cobra.Command {
	cliCtx := newCLIContext()
	cmd := &cobra.Command{
		Use:   "numexpr [command] (flags)",
		Short: "numeric expression evaluator",
		Long: `
Resolves and evaluates numeric expressions over typed rows, with
overflow-checked integer, fixed-point decimal and double arithmetic.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierror.NewErrorWithSeverity(
			errors.Wrapf(err, "%s", c.CommandPath()), exit.CommandLineFlagError(), log.Severity_ERROR)
	})
	cliCtx.registerFlags(cmd)
	AddPersistentPreRunE(cmd, func(c *cobra.Command, _ []string) error {
		if err := cliCtx.env.apply(c.Flags()); err != nil {
			return flagError(err)
		}
		return cliCtx.applyLogFlags()
	})

	cmd.AddCommand(
		newEvalCmd(),
		newResolveCmd(),
		newVersionCmd(),
	)
	return cmd
}

// flagError marks err as caused by invalid command-line flags.
func flagError(err error) error {
	return clierror.NewError(err, exit.CommandLineFlagError())
}

// AddPersistentPreRunE add 'fn' as a persistent pre-run function to 'cmd'.
// If the command has an existing pre-run function, it is saved and will be called
// at the beginning of 'fn'.
func AddPersistentPreRunE(cmd *cobra.Command, fn func(*cobra.Command, []string) error) {
	// Save any existing hooks.
	wrapped := cmd.PersistentPreRunE

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Run the previous hook if it exists.
		if wrapped != nil {
			if err := wrapped(cmd, args); err != nil {
				return err
			}
		}

		// Now we can call the new function.
		return fn(cmd, args)
	}
}

func newVersionCmd() *cobra.Command {
	var includeDeps bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "output version information",
		Long: `
Output build version information.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := build.GetInfo()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 1, 2, ' ', 0)
			fmt.Fprintf(tw, "Build Tag:\t%s\n", info.Tag)
			fmt.Fprintf(tw, "Build Time:\t%s\n", info.Time)
			fmt.Fprintf(tw, "Revision:\t%s\n", info.Revision)
			fmt.Fprintf(tw, "Platform:\t%s\n", info.Platform)
			fmt.Fprintf(tw, "Go Version:\t%s\n", info.GoVersion)
			if includeDeps {
				fmt.Fprintf(tw, "Build Deps:\n\t%s\n", strings.Join(info.Dependencies, "\n\t"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&includeDeps, "build-deps", false, "include the modules linked into the binary")
	return cmd
}
