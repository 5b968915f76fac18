// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sessiondata

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a session settings file.
type Format int

const (
	// FormatYAML is the default format.
	FormatYAML Format = iota
	FormatTOML
)

// FormatForPath picks the format from the file extension. Anything other
// than .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ParseOverrides decodes session settings. Unknown keys are rejected.
func ParseOverrides(data []byte, format Format) (*Overrides, error) {
	var o Overrides
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &o)
		if err != nil {
			return nil, pgerror.Wrap(err, pgcode.ConfigFile, "parsing session settings")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			slices.Sort(keys)
			return nil, pgerror.Newf(pgcode.ConfigFile,
				"unknown session settings: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
			return nil, pgerror.Wrap(err, pgcode.ConfigFile, "parsing session settings")
		}
	default:
		return nil, errors.AssertionFailedf("unknown format %d", format)
	}
	return &o, nil
}

// LoadFile reads session settings from a YAML or TOML file.
func LoadFile(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pgerror.Wrapf(err, pgcode.ConfigFile, "reading %s", path)
	}
	o, err := ParseOverrides(data, FormatForPath(path))
	return o, errors.Wrapf(err, "%s", path)
}

// Flag names.
const (
	DivPrecisionIncrementFlag  = "div-precision-increment"
	ErrorForDivisionByZeroFlag = "error-for-division-by-zero"
	NoUnsignedSubtractionFlag  = "no-unsigned-subtraction"
)

// Flags binds session settings to command line flags.
type Flags struct {
	fs   *pflag.FlagSet
	vals SessionData
}

// RegisterFlags adds one flag per session setting to fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	def := Default()
	fs.Uint32Var(&f.vals.DivPrecisionIncrement, DivPrecisionIncrementFlag, def.DivPrecisionIncrement,
		"number of fractional digits division adds to the scale of the dividend")
	fs.BoolVar(&f.vals.ErrorForDivisionByZero, ErrorForDivisionByZeroFlag, def.ErrorForDivisionByZero,
		"report a warning when dividing by zero")
	fs.BoolVar(&f.vals.NoUnsignedSubtraction, NoUnsignedSubtractionFlag, def.NoUnsignedSubtraction,
		"make the difference of unsigned integers signed")
	return f
}

// Overrides returns the settings explicitly given on the command line.
func (f *Flags) Overrides() *Overrides {
	var o Overrides
	if f.fs.Changed(DivPrecisionIncrementFlag) {
		v := f.vals.DivPrecisionIncrement
		o.DivPrecisionIncrement = &v
	}
	if f.fs.Changed(ErrorForDivisionByZeroFlag) {
		v := f.vals.ErrorForDivisionByZero
		o.ErrorForDivisionByZero = &v
	}
	if f.fs.Changed(NoUnsignedSubtractionFlag) {
		v := f.vals.NoUnsignedSubtraction
		o.NoUnsignedSubtraction = &v
	}
	return &o
}
