// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sessiondata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/numexpr/pkg/sql/pgwire/pgerror"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Default()
	require.Equal(t, uint32(4), s.DivPrecisionIncrement)
	require.True(t, s.ErrorForDivisionByZero)
	require.False(t, s.NoUnsignedSubtraction)
	require.NoError(t, s.Validate())
}

func TestApply(t *testing.T) {
	incr := uint32(8)
	off := false
	s, err := Default().Apply(&Overrides{DivPrecisionIncrement: &incr, ErrorForDivisionByZero: &off})
	require.NoError(t, err)
	require.Equal(t, SessionData{DivPrecisionIncrement: 8}, *s)

	same, err := s.Apply(nil)
	require.NoError(t, err)
	require.Equal(t, s, same)
	require.NotSame(t, s, same)

	tooLarge := uint32(31)
	_, err = s.Apply(&Overrides{DivPrecisionIncrement: &tooLarge})
	require.Error(t, err)
	require.Equal(t, pgcode.InvalidParameterValue, pgerror.GetPGCode(err))
}

func TestParseOverrides(t *testing.T) {
	o, err := ParseOverrides([]byte("div_precision_increment: 6\nno_unsigned_subtraction: true\n"), FormatYAML)
	require.NoError(t, err)
	require.Equal(t, uint32(6), *o.DivPrecisionIncrement)
	require.True(t, *o.NoUnsignedSubtraction)
	require.Nil(t, o.ErrorForDivisionByZero)

	o, err = ParseOverrides([]byte("error_for_division_by_zero = false\n"), FormatTOML)
	require.NoError(t, err)
	require.False(t, *o.ErrorForDivisionByZero)
	require.Nil(t, o.DivPrecisionIncrement)

	o, err = ParseOverrides(nil, FormatYAML)
	require.NoError(t, err)
	require.True(t, o.Empty())

	_, err = ParseOverrides([]byte("div_precision: 6\n"), FormatYAML)
	require.Error(t, err)
	require.Equal(t, pgcode.ConfigFile, pgerror.GetPGCode(err))

	_, err = ParseOverrides([]byte("div_precision = 6\nsql_mode = 'x'\n"), FormatTOML)
	require.EqualError(t, err, "unknown session settings: div_precision, sql_mode")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("div_precision_increment = 2\n"), 0644))
	o, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, uint32(2), *o.DivPrecisionIncrement)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.Equal(t, pgcode.ConfigFile, pgerror.GetPGCode(err))
}

func TestFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f := RegisterFlags(fs)
	require.True(t, f.Overrides().Empty())

	require.NoError(t, fs.Parse([]string{"--div-precision-increment=0", "--no-unsigned-subtraction"}))
	o := f.Overrides()
	require.Equal(t, uint32(0), *o.DivPrecisionIncrement)
	require.True(t, *o.NoUnsignedSubtraction)
	require.Nil(t, o.ErrorForDivisionByZero)
}
