// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"os"

	"github.com/cockroachdb/groupsql/pkg/cli/cliflags"
	"github.com/spf13/pflag"
)

// cliContext holds the values of the command-line flags.
type cliContext struct {
	schemaFile      string
	defaultSchema   string
	table           string
	lenientDefaults bool
	logFormat       string
	verbosity       int
	metrics         bool
}

var cliCtx cliContext

// setCLIDefaults resets the flag values, consulting the environment
// variables of flags that have one.
func setCLIDefaults() {
	cliCtx = cliContext{
		defaultSchema: envOr(cliflags.DefaultSchema, "public"),
		logFormat:     envOr(cliflags.LogFormat, "console"),
	}
}

func envOr(f cliflags.FlagInfo, def string) string {
	if f.EnvVar != "" {
		if v, ok := os.LookupEnv(f.EnvVar); ok {
			return v
		}
	}
	return def
}

func usage(f cliflags.FlagInfo) string {
	if f.EnvVar == "" {
		return f.Description
	}
	return f.Description + "\nEnvironment variable: " + f.EnvVar
}

func stringFlag(fs *pflag.FlagSet, v *string, f cliflags.FlagInfo) {
	fs.StringVarP(v, f.Name, f.Shorthand, *v, usage(f))
}

func boolFlag(fs *pflag.FlagSet, v *bool, f cliflags.FlagInfo) {
	fs.BoolVarP(v, f.Name, f.Shorthand, *v, usage(f))
}

func intFlag(fs *pflag.FlagSet, v *int, f cliflags.FlagInfo) {
	fs.IntVarP(v, f.Name, f.Shorthand, *v, usage(f))
}

func init() {
	setCLIDefaults()

	pf := groupsqlCmd.PersistentFlags()
	stringFlag(pf, &cliCtx.schemaFile, cliflags.SchemaFile)
	stringFlag(pf, &cliCtx.defaultSchema, cliflags.DefaultSchema)
	boolFlag(pf, &cliCtx.lenientDefaults, cliflags.LenientDefaults)
	stringFlag(pf, &cliCtx.logFormat, cliflags.LogFormat)
	intFlag(pf, &cliCtx.verbosity, cliflags.Verbosity)
	boolFlag(pf, &cliCtx.metrics, cliflags.Metrics)

	stringFlag(planCmd.Flags(), &cliCtx.table, cliflags.Table)
}
