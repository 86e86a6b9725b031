// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package rowtype describes the shape of rows flowing between operators.
package rowtype

import (
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// RowType is an ordered list of typed fields.
type RowType interface {
	NFields() int
	// TypeAt returns the type of field i, counting from zero.
	TypeAt(i int) *types.T
	// FieldName returns the name of field i. Computed fields may be
	// unnamed.
	FieldName(i int) string
}

// Field is one field of a row type.
type Field struct {
	Name string
	Type *types.T
}

type fieldList []Field

func (f fieldList) NFields() int           { return len(f) }
func (f fieldList) TypeAt(i int) *types.T  { return f[i].Type }
func (f fieldList) FieldName(i int) string { return f[i].Name }

// TableRowType is the row type of a table: one field per column,
// including hidden columns, in column order.
type TableRowType struct {
	table *catalog.Table
	fieldList
}

var _ RowType = (*TableRowType)(nil)

// ForTable returns the row type of t.
func ForTable(t *catalog.Table) *TableRowType {
	r := &TableRowType{table: t, fieldList: make(fieldList, len(t.Columns))}
	for i, c := range t.Columns {
		r.fieldList[i] = Field{Name: c.Name, Type: c.Type}
	}
	return r
}

// Table returns the table the row type describes.
func (r *TableRowType) Table() *catalog.Table { return r.table }

// ValuesRowType is the row type of a row source over literal or bound
// rows.
type ValuesRowType struct {
	fieldList
}

var _ RowType = (*ValuesRowType)(nil)

// NewValuesRowType returns a row type with the given fields.
func NewValuesRowType(fields ...Field) *ValuesRowType {
	return &ValuesRowType{fieldList: append(fieldList(nil), fields...)}
}

// ProjectedRowType is the row type produced by a projection.
type ProjectedRowType struct {
	fieldList
}

var _ RowType = (*ProjectedRowType)(nil)

// NewProjectedRowType returns a row type with the given fields.
func NewProjectedRowType(fields ...Field) *ProjectedRowType {
	return &ProjectedRowType{fieldList: append(fieldList(nil), fields...)}
}

// Equal returns whether a and b have the same number of fields and equal
// field types. Field names are ignored.
func Equal(a, b RowType) bool {
	if a.NFields() != b.NFields() {
		return false
	}
	for i := 0; i < a.NFields(); i++ {
		if !a.TypeAt(i).Equal(b.TypeAt(i)) {
			return false
		}
	}
	return true
}

// String formats r as "(name TYPE, ...)".
func String(r RowType) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < r.NFields(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		if name := r.FieldName(i); name != "" {
			b.WriteString(name)
			b.WriteByte(' ')
		}
		b.WriteString(r.TypeAt(i).String())
	}
	b.WriteByte(')')
	return b.String()
}
