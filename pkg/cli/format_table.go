// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/util/humanizeutil"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

// tableDisplayFormat identifies the format used to print results.
type tableDisplayFormat int

// The following constants identify the supported table formats.
const (
	tableDisplayTSV tableDisplayFormat = iota
	tableDisplayCSV
	tableDisplayTable
	tableDisplayRecords
	// tableDisplayLastFormat must remain last.
	tableDisplayLastFormat
)

var tableDisplayFormats = [...]string{
	tableDisplayTSV:     "tsv",
	tableDisplayCSV:     "csv",
	tableDisplayTable:   "table",
	tableDisplayRecords: "records",
}

// Type implements the pflag.Value interface.
func (f *tableDisplayFormat) Type() string { return "string" }

// String implements the pflag.Value interface.
func (f *tableDisplayFormat) String() string {
	return tableDisplayFormats[*f]
}

// Set implements the pflag.Value interface.
func (f *tableDisplayFormat) Set(s string) error {
	for i := tableDisplayFormat(0); i < tableDisplayLastFormat; i++ {
		if s == tableDisplayFormats[i] {
			*f = i
			return nil
		}
	}
	return errors.Newf("invalid table display format: %s "+
		"(possible values: %s)", s, strings.Join(tableDisplayFormats[:], ", "))
}

// defaultTableDisplayFormat is table when stdout is a terminal, tsv
// otherwise.
func defaultTableDisplayFormat() tableDisplayFormat {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return tableDisplayTable
	}
	return tableDisplayTSV
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// printQueryOutput writes cols and rows to w in the given format.
func printQueryOutput(
	w io.Writer, cols []string, rows [][]string, displayFormat tableDisplayFormat,
) error {
	switch displayFormat {
	case tableDisplayTable:
		// Initialize tablewriter and set column names as the header row.
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetHeader(cols)
		for _, row := range rows {
			for i, r := range row {
				row[i] = expandTabsAndNewLines(r)
			}
			table.Append(row)
		}
		table.Render()
		fmt.Fprintf(w, "(%s row%s)\n", humanizeutil.Count(int64(len(rows))), pluralize(len(rows)))

	case tableDisplayTSV, tableDisplayCSV:
		csvWriter := csv.NewWriter(w)
		if displayFormat == tableDisplayTSV {
			csvWriter.Comma = '\t'
		}
		_ = csvWriter.Write(cols)
		return csvWriter.WriteAll(rows)

	case tableDisplayRecords:
		maxColWidth := 0
		for _, col := range cols {
			colLen := utf8.RuneCountInString(col)
			if colLen > maxColWidth {
				maxColWidth = colLen
			}
		}

		for i, row := range rows {
			fmt.Fprintf(w, "-[ RECORD %d ]\n", i+1)
			for j, r := range row {
				lines := strings.Split(r, "\n")
				for l, line := range lines {
					colLabel := cols[j]
					if l > 0 {
						colLabel = ""
					}
					fmt.Fprintf(w, "%-*s | %s\n", maxColWidth, colLabel, line)
				}
			}
		}

	default:
		return errors.AssertionFailedf("unknown display format %d", displayFormat)
	}
	return nil
}

// expandTabsAndNewLines ensures that multi-line row strings that may
// contain tabs are properly formatted: tabs are expanded to spaces, and
// newline characters are marked visually. Marking newline characters is
// especially important in single-column results where the underlying
// TableWriter would not otherwise show the difference between one
// multi-line row and two one-line rows.
func expandTabsAndNewLines(s string) string {
	var buf strings.Builder
	// 4-wide columns, 1 character minimum width.
	w := tabwriter.NewWriter(&buf, 4, 0, 1, ' ', 0)
	fmt.Fprint(w, strings.Replace(s, "\n", "␤\n", -1))
	_ = w.Flush()
	return buf.String()
}
