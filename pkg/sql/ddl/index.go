// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ddl

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/util/log"
)

// addUniqueIndex adds a PRIMARY KEY or UNIQUE constraint over columns of
// the table.
func (c *tableCompiler) addUniqueIndex(name string, kind catalog.IndexKind, columns []string) error {
	if len(columns) == 0 {
		return pgerror.Newf(pgcode.Syntax, "%s constraint on %s has no columns",
			errors.Safe(kind), c.name)
	}
	if name == "" {
		name = c.b.GenerateIndexName(c.name, columns[0], kind)
	}
	ix, err := c.b.CreateIndex(c.name, name, kind)
	if err != nil {
		return err
	}
	for _, col := range columns {
		if err := c.b.AddIndexColumn(c.name, ix.Name, catalog.IndexColumn{Column: col}); err != nil {
			return err
		}
	}
	sqltelemetry.Inc(sqltelemetry.IndexCounter(strings.ToLower(kind.String())))
	return nil
}

// addIndex adds an INDEX definition. The kind follows from the column
// list: a full text function makes a full text index, columns of other
// tables make a group index, anything else is a table index. A spatial
// function is checked once every column is attached.
func (c *tableCompiler) addIndex(d *tree.IndexTableDef) error {
	cols := d.Columns
	if len(cols.Columns) == 0 {
		return pgerror.Newf(pgcode.Syntax, "index on %s has no columns", c.name)
	}
	keys := make([]catalog.IndexColumn, len(cols.Columns))
	kind := catalog.TableIndex
	for i, ic := range cols.Columns {
		keys[i].Column = ic.Column
		if ic.Table == (tree.TableName{}) {
			continue
		}
		if t := c.qualify(ic.Table); t != c.name {
			keys[i].Table = t
			kind = catalog.GroupIndex
		}
	}
	if cols.Function == tree.IndexFunctionFullText {
		if kind == catalog.GroupIndex {
			return pgerror.Newf(pgcode.FeatureNotSupported,
				"full text index on %s cannot span tables", c.name)
		}
		kind = catalog.FullTextIndex
	}

	name := d.Name
	if name == "" {
		name = c.b.GenerateIndexName(c.name, cols.Columns[0].Column, kind)
	}
	log.VEventf(c.ctx, 2, "building %s index %q", kind, name)
	if kind == catalog.GroupIndex {
		if err := c.checkGroupIndex(name, keys); err != nil {
			return err
		}
	}
	ix, err := c.b.CreateIndex(c.name, name, kind)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := c.b.AddIndexColumn(c.name, ix.Name, k); err != nil {
			return err
		}
	}
	if cols.Function != tree.IndexFunctionNone {
		if err := c.b.SetIndexFunction(
			c.name, ix.Name, cols.Function, cols.FirstFunctionArg, cols.FunctionArgCount,
		); err != nil {
			return err
		}
	}
	if cols.Function == tree.IndexFunctionZOrderLatLon {
		if err := c.checkSpatialIndex(ix); err != nil {
			return err
		}
	}
	sqltelemetry.Inc(sqltelemetry.IndexCounter(strings.ToLower(kind.String())))
	return nil
}

// checkGroupIndex verifies that every other table a group index names is
// an ancestor of the indexed table.
func (c *tableCompiler) checkGroupIndex(name string, keys []catalog.IndexColumn) error {
	ancestors := make(map[tree.TableName]bool)
	t, _ := c.b.Lookup(c.name)
	if t.ParentJoin != nil {
		if parent, ok := c.b.Lookup(t.ParentJoin.Parent); ok {
			for _, s := range parent.HKey.Segments {
				ancestors[s.Table] = true
			}
		}
	}
	for _, k := range keys {
		if k.Table != (tree.TableName{}) && !ancestors[k.Table] {
			return sqlerrors.NewBadGroupIndexError(c.name, name, k.Table)
		}
	}
	return nil
}

// checkSpatialIndex verifies that the spatial function covers exactly two
// adjacent numeric key columns.
func (c *tableCompiler) checkSpatialIndex(ix *catalog.Index) error {
	first, count := ix.FirstFunctionArg, ix.FunctionArgCount
	if count != 2 || first < 0 || first+count > len(ix.Columns) {
		return sqlerrors.NewBadSpatialIndexError(c.name, ix.Name)
	}
	for _, k := range ix.Columns[first : first+count] {
		t, ok := c.b.Lookup(k.Table)
		if !ok {
			return errors.AssertionFailedf("index column table %s vanished", k.Table)
		}
		col, ok := t.Column(k.Column)
		if !ok {
			return errors.AssertionFailedf("index column %s.%s vanished", k.Table, k.Column)
		}
		if !col.Type.Family().Numeric() {
			return sqlerrors.NewBadSpatialIndexError(c.name, ix.Name)
		}
	}
	return nil
}
