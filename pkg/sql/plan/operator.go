// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package plan holds operator trees: immutable, re-executable descriptions
// of how rows are produced. Plans are built by the statement compilers and
// evaluated by RunInsert.
package plan

import (
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/rowtype"
)

// Operator is a node of an operator tree.
type Operator interface {
	// RowType describes the rows the operator produces.
	RowType() rowtype.RowType
	// Input returns the operator the rows come from, or nil for a row
	// source.
	Input() Operator
	describe(b *strings.Builder)
}

// ValuesScan produces literal or bound rows.
type ValuesScan struct {
	Rows [][]Expr
	Type *rowtype.ValuesRowType
}

var _ Operator = (*ValuesScan)(nil)

// RowType implements Operator.
func (v *ValuesScan) RowType() rowtype.RowType { return v.Type }

// Input implements Operator.
func (v *ValuesScan) Input() Operator { return nil }

func (v *ValuesScan) describe(b *strings.Builder) {
	b.WriteString("values")
	for i, row := range v.Rows {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		writeExprs(b, row)
	}
}

// NumParams returns the number of parameters the rows reference.
func (v *ValuesScan) NumParams() int {
	n := 0
	for _, row := range v.Rows {
		for _, e := range row {
			Walk(e, func(e Expr) {
				if p, ok := e.(*Parameter); ok && p.Index >= n {
					n = p.Index + 1
				}
			})
		}
	}
	return n
}

// Project computes one expression per output field over each input row.
type Project struct {
	In    Operator
	Exprs []Expr
	Type  *rowtype.ProjectedRowType
}

var _ Operator = (*Project)(nil)

// NewProject returns a projection of in. The output row type is derived
// from the expressions' resolved types; names are taken from names where
// given.
func NewProject(in Operator, exprs []Expr, names []string) *Project {
	fields := make([]rowtype.Field, len(exprs))
	for i, e := range exprs {
		fields[i].Type = e.ResolvedType()
		if i < len(names) {
			fields[i].Name = names[i]
		}
	}
	return &Project{In: in, Exprs: exprs, Type: rowtype.NewProjectedRowType(fields...)}
}

// RowType implements Operator.
func (p *Project) RowType() rowtype.RowType { return p.Type }

// Input implements Operator.
func (p *Project) Input() Operator { return p.In }

func (p *Project) describe(b *strings.Builder) {
	b.WriteString("project ")
	writeExprs(b, p.Exprs)
}

// InsertReturning writes each input row into a table and passes it on.
type InsertReturning struct {
	In    Operator
	Table *catalog.Table
	Type  *rowtype.TableRowType
}

var _ Operator = (*InsertReturning)(nil)

// RowType implements Operator.
func (i *InsertReturning) RowType() rowtype.RowType { return i.Type }

// Input implements Operator.
func (i *InsertReturning) Input() Operator { return i.In }

func (i *InsertReturning) describe(b *strings.Builder) {
	b.WriteString("insert-returning ")
	b.WriteString(i.Table.Name.String())
}

func writeExprs(b *strings.Builder, exprs []Expr) {
	b.WriteByte('(')
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
}

// Explain renders an operator tree, one operator per line, inputs
// indented below the operator consuming them.
func Explain(root Operator) string {
	var b strings.Builder
	depth := 0
	for op := root; op != nil; op = op.Input() {
		b.WriteString(strings.Repeat("  ", depth))
		op.describe(&b)
		b.WriteByte('\n')
		depth++
	}
	return b.String()
}
