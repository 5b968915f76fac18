// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cliflags

// Flags shared by all commands.
var (
	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		EnvVar:      "NUMEXPR_VERBOSITY",
		Description: `Log verbosity. Level 1 logs a summary of every script, level 2 every evaluated row.`,
	}

	LogThreshold = FlagInfo{
		Name:        "log-threshold",
		Description: `Minimum severity of the log entries written to stderr: INFO, WARNING, ERROR or FATAL.`,
	}

	RedactableLogs = FlagInfo{
		Name:        "redactable-logs",
		Description: `Keep redaction markers around values that may contain sensitive data in log entries.`,
	}
)

// Flags of the eval command.
var (
	ConfigFile = FlagInfo{
		Name:      "config",
		Shorthand: "c",
		EnvVar:    "NUMEXPR_CONFIG",
		Description: `
Session settings file. The format, YAML or TOML, is chosen from the
file extension. Settings passed as flags take precedence.`,
	}

	Format = FlagInfo{
		Name: "format",
		Description: `
Selects how to display results: table or tsv. Defaults to table when
the output is a terminal and to tsv otherwise.`,
	}

	Concurrency = FlagInfo{
		Name:        "concurrency",
		EnvVar:      "NUMEXPR_CONCURRENCY",
		Description: `Maximum number of scripts evaluated at the same time.`,
	}

	MaxScriptSize = FlagInfo{
		Name:        "max-script-size",
		Description: `Scripts larger than this size are rejected, e.g. 64KiB or 1MB.`,
	}

	ShowMetrics = FlagInfo{
		Name:        "metrics",
		Description: `Print the evaluation metrics in the Prometheus text format after the results.`,
	}

	GraphiteEndpoint = FlagInfo{
		Name:        "graphite-endpoint",
		EnvVar:      "NUMEXPR_GRAPHITE_ENDPOINT",
		Description: `Address (host:port) of a Graphite or Carbon server to push the evaluation metrics to.`,
	}
)

// Flags of the resolve command.
var (
	Columns = FlagInfo{
		Name: "column",
		Description: `
Declares a column the expression may reference, as name:type, for example
"price:decimal(9,2) null". May be repeated; columns are numbered in order.`,
	}

	FunctionStyle = FlagInfo{
		Name:        "function-style",
		Description: `Print every operator in function form instead of infix form.`,
	}
)
