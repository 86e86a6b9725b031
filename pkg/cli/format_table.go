// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/olekukonko/tablewriter"
)

// renderTable writes rows as an ASCII table followed by a row count.
func renderTable(w io.Writer, cols []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(cols)
	table.AppendBulk(rows)
	table.Render()
	s := "s"
	if len(rows) == 1 {
		s = ""
	}
	fmt.Fprintf(w, "(%d row%s)\n", len(rows), s)
}

// printCatalog writes the columns and indexes of every table, followed by
// the sequences and groups.
func printCatalog(w io.Writer, c *catalog.Catalog) {
	for _, t := range c.Tables() {
		fmt.Fprintf(w, "table %s in group %s, hkey %s\n", t.Name, t.Group, t.HKey)
		if j := t.ParentJoin; j != nil {
			fmt.Fprintf(w, "grouping join %s\n", j.Name)
		}
		rows := make([][]string, len(t.Columns))
		for i, col := range t.Columns {
			rows[i] = columnRow(col)
		}
		renderTable(w, []string{"column", "type", "nullable", "default", "identity", "hidden"}, rows)

		rows = make([][]string, len(t.Indexes))
		for i, ix := range t.Indexes {
			rows[i] = indexRow(t.Name, ix)
		}
		renderTable(w, []string{"index", "kind", "columns", "function"}, rows)
		fmt.Fprintln(w)
	}
	var rows [][]string
	for _, s := range c.Sequences() {
		rows = append(rows, []string{
			s.Name.String(), strconv.FormatInt(s.Start, 10), strconv.FormatInt(s.Increment, 10),
		})
	}
	renderTable(w, []string{"sequence", "start", "increment"}, rows)
	rows = rows[:0]
	for _, g := range c.Groups() {
		rows = append(rows, []string{g.Name.String(), g.Root.String()})
	}
	renderTable(w, []string{"group", "root"}, rows)
}

func columnRow(c *catalog.Column) []string {
	var def, identity string
	switch {
	case c.DefaultValue != nil:
		def = tree.NewDString(*c.DefaultValue).String()
	case c.DefaultFunction != "":
		def = c.DefaultFunction + "()"
	}
	if id := c.Identity; id != nil {
		identity = fmt.Sprintf("%s %s (%d, %d)", id.Mode, id.Sequence, id.Start, id.Increment)
	}
	return []string{
		c.Name,
		c.Type.SQLString(),
		strconv.FormatBool(c.Nullable()),
		def,
		identity,
		strconv.FormatBool(c.Hidden),
	}
}

func indexRow(table tree.TableName, ix *catalog.Index) []string {
	cols := make([]string, len(ix.Columns))
	for i, ic := range ix.Columns {
		cols[i] = ic.Column
		if ic.Table != table {
			cols[i] = ic.Table.String() + "." + ic.Column
		}
	}
	var fn string
	if ix.Function != tree.IndexFunctionNone {
		fn = fmt.Sprintf("%s[%d:%d]", ix.Function, ix.FirstFunctionArg, ix.FunctionArgCount)
	}
	return []string{ix.Name, ix.Kind.String(), strings.Join(cols, ", "), fn}
}
