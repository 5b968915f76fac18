// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exprexec

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/numexpr/pkg/sql/sessiondata"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript marks errors caused by a script that cannot be
// prepared: malformed YAML, unknown column types, bad row values, or
// expressions that fail to build or resolve.
var ErrInvalidScript = errors.New("invalid script")

// Script is a batch of expressions evaluated against the same rows. In
// YAML:
//
//	session:
//	  div_precision_increment: 2
//	columns:
//	  - {name: price, type: "decimal(9,2)"}
//	  - {name: qty, type: int unsigned null, table: 1}
//	statements:
//	  - {name: total, expr: "mul(price, qty)"}
//	rows:
//	  - [12.50, 3]
//	  - [1.05, null]
//
// Row values are parsed according to the type of their column; null
// and "NULL" denote NULL.
type Script struct {
	// Name identifies the script in logs and results. It is the base name
	// of the file the script was loaded from.
	Name       string                 `yaml:"-"`
	Session    *sessiondata.Overrides `yaml:"session"`
	Columns    []ColumnDef            `yaml:"columns"`
	Statements []StatementDef         `yaml:"statements"`
	Rows       [][]*string            `yaml:"rows"`
}

// ColumnDef declares a column of the rows.
type ColumnDef struct {
	Name string `yaml:"name"`
	// Type is a column type as accepted by types.ParseT.
	Type string `yaml:"type"`
	// Table is the ordinal of the table the column belongs to.
	Table int `yaml:"table"`
}

// StatementDef is a named expression.
type StatementDef struct {
	// Name defaults to the expression text.
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

func invalidScriptf(format string, args ...interface{}) error {
	return errors.Mark(pgerror.Newf(pgcode.InvalidParameterValue, format, args...), ErrInvalidScript)
}

func wrapInvalidScript(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrInvalidScript)
}

// ParseScript decodes a YAML script. Unknown fields are rejected.
func ParseScript(name string, data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	s := &Script{Name: name}
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, wrapInvalidScript(
			pgerror.WithCandidateCode(err, pgcode.Syntax), "parsing script %s", name)
	}
	if len(s.Statements) == 0 {
		return nil, invalidScriptf("script %s has no statements", name)
	}
	return s, nil
}

// LoadScript reads and parses the script at path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapInvalidScript(err, "reading script")
	}
	return ParseScript(filepath.Base(path), data)
}
