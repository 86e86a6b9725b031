// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sqltelemetry

import "fmt"

// SchemaTelemetryType is a kind of schema change to record telemetry for.
type SchemaTelemetryType int

const (
	_ SchemaTelemetryType = iota
	// SchemaCreateTable is a CREATE TABLE statement.
	SchemaCreateTable
	// SchemaDropTable is a DROP TABLE statement.
	SchemaDropTable
	// SchemaDropGroup is a DROP GROUP statement.
	SchemaDropGroup
	// SchemaRenameTable is a RENAME TABLE statement.
	SchemaRenameTable
	// SchemaSerialColumn is a SERIAL column expanded into an identity.
	SchemaSerialColumn
	// SchemaIdentityColumn is an explicit identity column.
	SchemaIdentityColumn
	// SchemaGroupingJoin is a grouping foreign key.
	SchemaGroupingJoin
	// SchemaHiddenPrimaryKey is a table that got a hidden primary key.
	SchemaHiddenPrimaryKey
)

var schemaTelemetryMap = map[SchemaTelemetryType]string{
	SchemaCreateTable:      "create_table",
	SchemaDropTable:        "drop_table",
	SchemaDropGroup:        "drop_group",
	SchemaRenameTable:      "rename_table",
	SchemaSerialColumn:     "serial",
	SchemaIdentityColumn:   "identity",
	SchemaGroupingJoin:     "grouping_join",
	SchemaHiddenPrimaryKey: "hidden_primary_key",
}

func (s SchemaTelemetryType) String() string {
	return schemaTelemetryMap[s]
}

// SchemaFeatureName returns the counter name of a schema change.
func SchemaFeatureName(s SchemaTelemetryType) string {
	return fmt.Sprintf("sql.schema.%s", s)
}

var schemaTelemetryCounters map[SchemaTelemetryType]Counter

func init() {
	schemaTelemetryCounters = make(map[SchemaTelemetryType]Counter)
	for ty := range schemaTelemetryMap {
		schemaTelemetryCounters[ty] = GetCounter(SchemaFeatureName(ty))
	}
}

// IncrementSchemaCounter increments the counter of a schema change.
func IncrementSchemaCounter(s SchemaTelemetryType) {
	Inc(schemaTelemetryCounters[s])
}

// IndexCounter returns the counter for indexes of the given kind, e.g.
// "group" or "full_text".
func IndexCounter(kind string) Counter {
	return GetCounter(fmt.Sprintf("sql.schema.index.%s", kind))
}

// InsertPlanCounter counts compiled insert plans.
var InsertPlanCounter = GetCounter("sql.plan.insert")

// LenientDefaultCounter counts textual defaults used without a cast
// because lenient defaults were requested.
var LenientDefaultCounter = GetCounter("sql.plan.insert.lenient_default")
