// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ddl

import (
	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
	"github.com/cockroachdb/groupsql/pkg/util/log"
)

func assertValidSerialColumnDef(d *tree.ColumnTableDef, tableName tree.TableName) error {
	if d.HasDefaultExpr() {
		// SERIAL implies a new default expression, we can't have one to
		// start with. This is the error produced by pg in such case.
		return pgerror.Newf(pgcode.Syntax,
			"multiple default values specified for column %q of table %s", d.Name, tableName)
	}

	if d.Nullable == tree.Null {
		// SERIAL implies a non-NULL column, we can't accept a nullability
		// declaration. This is the error produced by pg in such case.
		return pgerror.Newf(pgcode.Syntax,
			"conflicting NULL/NOT NULL declarations for column %q of table %s", d.Name, tableName)
	}

	if d.Identity != nil {
		return pgerror.Newf(pgcode.Syntax,
			"both SERIAL and identity specified for column %q of table %s", d.Name, tableName)
	}

	return nil
}

// addSerialColumn expands a SERIAL column: a BIGINT NOT NULL column, a BY
// DEFAULT identity starting at 1 and incrementing by 1, and a unique index
// over the column.
func (c *tableCompiler) addSerialColumn(d *tree.ColumnTableDef) error {
	if err := assertValidSerialColumnDef(d, c.name); err != nil {
		return err
	}
	log.VEventf(c.ctx, 2, "expanding SERIAL column %q", d.Name)
	if _, err := c.b.AddColumn(c.name, catalog.ColumnDef{
		Name: d.Name,
		Type: types.BigInt.NotNull(),
	}); err != nil {
		return err
	}
	if _, err := c.b.SetIdentity(c.name, d.Name, tree.GeneratedByDefault, 1, 1); err != nil {
		return err
	}
	name := c.b.GenerateIndexName(c.name, d.Name, catalog.UniqueIndex)
	if _, err := c.b.CreateIndex(c.name, name, catalog.UniqueIndex); err != nil {
		return err
	}
	if err := c.b.AddIndexColumn(c.name, name, catalog.IndexColumn{Column: d.Name}); err != nil {
		return err
	}
	sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaSerialColumn)
	return nil
}
