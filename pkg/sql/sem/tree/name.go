// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/cockroachdb/redact"
)

// TableName is a schema-qualified object name. An empty SchemaName means
// the name is unqualified and resolves against a default schema.
type TableName struct {
	SchemaName string
	ObjectName string
}

// MakeTableName creates a qualified name.
func MakeTableName(schema, object string) TableName {
	return TableName{SchemaName: schema, ObjectName: object}
}

// MakeUnqualifiedTableName creates a name without a schema.
func MakeUnqualifiedTableName(object string) TableName {
	return TableName{ObjectName: object}
}

// Schema returns the schema part of the name.
func (tn TableName) Schema() string { return tn.SchemaName }

// Object returns the object part of the name.
func (tn TableName) Object() string { return tn.ObjectName }

// HasExplicitSchema returns whether the name carries a schema.
func (tn TableName) HasExplicitSchema() bool { return tn.SchemaName != "" }

// Qualify returns the name with defaultSchema filled in when no schema was
// given.
func (tn TableName) Qualify(defaultSchema string) TableName {
	if tn.SchemaName == "" {
		tn.SchemaName = defaultSchema
	}
	return tn
}

// Less orders names by schema, then object.
func (tn TableName) Less(o TableName) bool {
	if tn.SchemaName != o.SchemaName {
		return tn.SchemaName < o.SchemaName
	}
	return tn.ObjectName < o.ObjectName
}

// SafeFormat implements redact.SafeFormatter. Both parts are user data.
func (tn TableName) SafeFormat(w redact.SafePrinter, _ rune) {
	if tn.SchemaName != "" {
		w.Print(tn.SchemaName)
		w.SafeRune('.')
	}
	w.Print(tn.ObjectName)
}

// String implements fmt.Stringer.
func (tn TableName) String() string {
	return redact.Sprint(tn).StripMarkers()
}

var _ redact.SafeFormatter = TableName{}
