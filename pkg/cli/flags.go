// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/numexpr/pkg/cli/cliflags"
	"github.com/cockroachdb/numexpr/pkg/sql/sessiondata"
	"github.com/cockroachdb/numexpr/pkg/util/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// setFlagFromEnv sets the flag from its environment variable, unless the
// flag was given on the command line.
func setFlagFromEnv(f *pflag.FlagSet, flagInfo cliflags.FlagInfo) error {
	if flagInfo.EnvVar == "" || f.Changed(flagInfo.Name) {
		return nil
	}
	if value, set := os.LookupEnv(flagInfo.EnvVar); set {
		if err := f.Set(flagInfo.Name, value); err != nil {
			return errors.Wrapf(err, "invalid value for %s", flagInfo.EnvVar)
		}
	}
	return nil
}

// envFlags records the flags that may be set from the environment, so
// that they can be applied after the command line is parsed.
type envFlags []cliflags.FlagInfo

func (e *envFlags) add(flagInfo cliflags.FlagInfo) {
	if flagInfo.EnvVar != "" {
		*e = append(*e, flagInfo)
	}
}

func (e envFlags) apply(fs *pflag.FlagSet) error {
	for _, flagInfo := range e {
		if err := setFlagFromEnv(fs, flagInfo); err != nil {
			return err
		}
	}
	return nil
}

// flagSet wraps a pflag.FlagSet to register flags described by a
// cliflags.FlagInfo.
type flagSet struct {
	fs  *pflag.FlagSet
	env *envFlags
}

// StringFlag creates a string flag and registers it with the FlagSet.
func (f flagSet) StringFlag(valPtr *string, flagInfo cliflags.FlagInfo, defaultVal string) {
	f.fs.StringVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())
	f.env.add(flagInfo)
}

// StringSliceFlag creates a repeatable string flag and registers it with
// the FlagSet. Values are not split on commas.
func (f flagSet) StringSliceFlag(valPtr *[]string, flagInfo cliflags.FlagInfo) {
	f.fs.StringArrayVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, nil, flagInfo.Usage())
	f.env.add(flagInfo)
}

// IntFlag creates an int flag and registers it with the FlagSet.
func (f flagSet) IntFlag(valPtr *int, flagInfo cliflags.FlagInfo, defaultVal int) {
	f.fs.IntVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())
	f.env.add(flagInfo)
}

// BoolFlag creates a bool flag and registers it with the FlagSet.
func (f flagSet) BoolFlag(valPtr *bool, flagInfo cliflags.FlagInfo, defaultVal bool) {
	f.fs.BoolVarP(valPtr, flagInfo.Name, flagInfo.Shorthand, defaultVal, flagInfo.Usage())
	f.env.add(flagInfo)
}

// VarFlag creates a custom-variable flag and registers it with the FlagSet.
func (f flagSet) VarFlag(value pflag.Value, flagInfo cliflags.FlagInfo) {
	f.fs.VarP(value, flagInfo.Name, flagInfo.Shorthand, flagInfo.Usage())
	f.env.add(flagInfo)
}

// cliContext captures the command-line parameters shared by all commands.
type cliContext struct {
	verbosity      int
	logThreshold   string
	redactableLogs bool

	env envFlags
}

func newCLIContext() *cliContext {
	return &cliContext{logThreshold: log.Severity_WARNING.String()}
}

func (c *cliContext) registerFlags(cmd *cobra.Command) {
	f := flagSet{fs: cmd.PersistentFlags(), env: &c.env}
	f.IntFlag(&c.verbosity, cliflags.Verbosity, c.verbosity)
	f.StringFlag(&c.logThreshold, cliflags.LogThreshold, c.logThreshold)
	f.BoolFlag(&c.redactableLogs, cliflags.RedactableLogs, c.redactableLogs)
}

// applyLogFlags configures the log package from the shared flags.
func (c *cliContext) applyLogFlags() error {
	sev, ok := log.SeverityByName(c.logThreshold)
	if !ok {
		return flagError(errors.Newf("unknown severity %q", c.logThreshold))
	}
	log.SetSeverityThreshold(sev)
	log.SetVerbosity(int32(c.verbosity))
	log.SetRedactable(c.redactableLogs)
	return nil
}

// sessionContext captures the parameters that determine the session
// settings of a command.
type sessionContext struct {
	configFile string
	flags      *sessiondata.Flags
}

func (c *sessionContext) registerFlags(f flagSet) {
	f.StringFlag(&c.configFile, cliflags.ConfigFile, "")
	c.flags = sessiondata.RegisterFlags(f.fs)
}

// sessionData returns the default session settings, overridden by the
// config file and then by the session flags.
func (c *sessionContext) sessionData() (*sessiondata.SessionData, error) {
	sd := sessiondata.Default()
	if c.configFile != "" {
		o, err := sessiondata.LoadFile(c.configFile)
		if err != nil {
			return nil, flagError(err)
		}
		if sd, err = sd.Apply(o); err != nil {
			return nil, flagError(errors.Wrapf(err, "%s", c.configFile))
		}
	}
	sd, err := sd.Apply(c.flags.Overrides())
	if err != nil {
		return nil, flagError(err)
	}
	return sd, nil
}
