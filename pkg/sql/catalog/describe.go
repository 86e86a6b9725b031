// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
)

// Describe renders a table, one line per column, index and join.
func Describe(t *Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "table %s\n", t.Name)
	fmt.Fprintf(&b, "  group: %s\n", t.Group)
	fmt.Fprintf(&b, "  hkey: %s\n", t.HKey)
	for _, c := range t.Columns {
		b.WriteString("  column ")
		describeColumn(&b, c)
		b.WriteByte('\n')
	}
	for _, ix := range t.Indexes {
		b.WriteString("  index ")
		describeIndex(&b, t.Name, ix)
		b.WriteByte('\n')
	}
	if j := t.ParentJoin; j != nil {
		fmt.Fprintf(&b, "  join %s parent %s (", j.Name, j.Parent)
		for i, jc := range j.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s = %s", jc.Child, jc.Parent)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

func describeColumn(b *strings.Builder, c *Column) {
	fmt.Fprintf(b, "%d %s %s", c.Position, c.Name, c.Type)
	if c.DefaultValue != nil {
		fmt.Fprintf(b, " DEFAULT %s", tree.NewDString(*c.DefaultValue))
	}
	if c.DefaultFunction != "" {
		fmt.Fprintf(b, " DEFAULT %s()", c.DefaultFunction)
	}
	if id := c.Identity; id != nil {
		fmt.Fprintf(b, " IDENTITY %s %s (%d, %d)", id.Mode, id.Sequence, id.Start, id.Increment)
	}
	if c.Hidden {
		b.WriteString(" HIDDEN")
	}
}

func describeIndex(b *strings.Builder, table tree.TableName, ix *Index) {
	fmt.Fprintf(b, "%s %s (", ix.Name, ix.Kind)
	for i, c := range ix.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		if c.Table != table {
			fmt.Fprintf(b, "%s.", c.Table)
		}
		b.WriteString(c.Column)
	}
	b.WriteByte(')')
	if ix.Function != tree.IndexFunctionNone {
		fmt.Fprintf(b, " %s[%d:%d]", ix.Function, ix.FirstFunctionArg, ix.FunctionArgCount)
	}
	if ix.Hidden {
		b.WriteString(" HIDDEN")
	}
}

// DescribeCatalog renders every table, sequence and group of c.
func DescribeCatalog(c *Catalog) string {
	var b strings.Builder
	for _, t := range c.Tables() {
		b.WriteString(Describe(t))
	}
	for _, s := range c.Sequences() {
		fmt.Fprintf(&b, "sequence %s start %d increment %d\n", s.Name, s.Start, s.Increment)
	}
	for _, g := range c.Groups() {
		fmt.Fprintf(&b, "group %s root %s\n", g.Name, g.Root)
	}
	return b.String()
}
