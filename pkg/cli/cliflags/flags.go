// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package cliflags describes the command-line flags of groupsql.
package cliflags

// FlagInfo contains the static information for a CLI flag.
type FlagInfo struct {
	// Name of the flag as used on the command line.
	Name string

	// Shorthand is the short form of the flag (optional).
	Shorthand string

	// EnvVar is the name of the environment variable the flag defaults
	// from (optional).
	EnvVar string

	// Description of the flag.
	Description string
}

var (
	SchemaFile = FlagInfo{
		Name:        "schema-file",
		Shorthand:   "f",
		Description: `YAML file listing the tables to create, in order.`,
	}

	DefaultSchema = FlagInfo{
		Name:        "default-schema",
		EnvVar:      "GROUPSQL_DEFAULT_SCHEMA",
		Description: `Schema of tables whose name is not qualified.`,
	}

	Table = FlagInfo{
		Name:        "table",
		Shorthand:   "t",
		Description: `Table to plan an insert for. All tables are planned when unset.`,
	}

	LenientDefaults = FlagInfo{
		Name: "lenient-defaults",
		Description: `
Keep textual defaults that cannot be converted to their column's type as
text instead of failing.`,
	}

	LogFormat = FlagInfo{
		Name:        "log-format",
		EnvVar:      "GROUPSQL_LOG_FORMAT",
		Description: `Format of log entries on stderr: console or json.`,
	}

	Verbosity = FlagInfo{
		Name:        "verbosity",
		Shorthand:   "v",
		Description: `Verbosity of compiler logging. Level 3 logs every planned column.`,
	}

	Metrics = FlagInfo{
		Name:        "metrics",
		Description: `Print feature counters in the Prometheus text format after the run.`,
	}
)
