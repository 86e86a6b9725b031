// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cli implements the groupsql command: it compiles the tables of
// a schema file and prints their catalog entries and insert plans.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/cli/exit"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/spf13/cobra"
)

var groupsqlCmd = &cobra.Command{
	Use:   "groupsql [command] (flags)",
	Short: "hierarchical-group schema and insert compiler",
	Long: `
Compile CREATE TABLE descriptions into a catalog of table groups and
print the plans of inserts into them.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := log.DefaultConfig()
		cfg.Format = cliCtx.logFormat
		cfg.Verbosity = int32(cliCtx.verbosity)
		cfg.Output = cmd.ErrOrStderr()
		return errors.Wrap(log.ApplyConfig(cfg), "configuring logging")
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if !cliCtx.metrics {
			return nil
		}
		return sqltelemetry.Dump(cmd.OutOrStdout())
	},
}

// errFlag marks errors in the command line.
var errFlag = errors.New("invalid command line")

func init() {
	cobra.EnableCommandSorting = false
	groupsqlCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Mark(err, errFlag)
	})
	groupsqlCmd.AddCommand(compileCmd, planCmd)
}

// Main is the entry point of the groupsql binary.
func Main() {
	if err := Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		if errors.Is(err, errFlag) {
			exit.WithCode(exit.CommandLineFlagError())
		}
		exit.WithCode(exit.UnspecifiedError())
	}
	exit.WithCode(exit.Success())
}

// Run executes the command line args.
func Run(ctx context.Context, args []string) error {
	setCLIDefaults()
	groupsqlCmd.SetArgs(args)
	return groupsqlCmd.ExecuteContext(ctx)
}

// formatError renders SQL errors with their code, hint and detail.
func formatError(err error) string {
	if errors.Is(err, errFlag) {
		return "ERROR: " + err.Error()
	}
	return pgerror.FullError(err)
}
