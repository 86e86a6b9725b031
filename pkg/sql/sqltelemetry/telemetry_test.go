// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sqltelemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := Value("sql.schema.serial")
	IncrementSchemaCounter(SchemaSerialColumn)
	IncrementSchemaCounter(SchemaSerialColumn)
	require.Equal(t, before+2, Value("sql.schema.serial"))

	c := IndexCounter("group")
	require.Same(t, c, IndexCounter("group"))
	Inc(c)
	require.Equal(t, float64(1), Value("sql.schema.index.group"))
	require.Zero(t, Value("sql.never.used"))
}

func TestDump(t *testing.T) {
	Inc(InsertPlanCounter)
	var b strings.Builder
	require.NoError(t, Dump(&b))
	out := b.String()
	require.Contains(t, out, "# TYPE sql_plan_insert counter\n")
	require.Contains(t, out, "# HELP sql_schema_create_table Number of uses of sql.schema.create_table.\n")
	require.Contains(t, out, "sql_schema_drop_group 0\n")
}
