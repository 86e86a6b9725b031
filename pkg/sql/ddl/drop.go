// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ddl

import (
	"context"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgnotice"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/cockroachdb/logtags"
)

// missing reports whether name does not exist, sending the IF EXISTS
// notice when the statement asked for one.
func missing(
	ctx context.Context, fns Functions, opts Options, name tree.TableName, check tree.ExistenceCheck,
) (bool, error) {
	if _, ok := fns.Catalog().Table(name); ok {
		return false, nil
	}
	if check == tree.IfExists {
		opts.notify(ctx, pgnotice.Newf("relation %s does not exist, skipping", name))
		return true, nil
	}
	return true, sqlerrors.NewUndefinedRelationError(name)
}

// DropTable compiles a DROP TABLE statement. Tables with grouping
// children cannot be dropped.
func DropTable(ctx context.Context, fns Functions, opts Options, n *tree.DropTable) error {
	name := n.Name.Qualify(opts.DefaultSchema)
	ctx = logtags.AddTag(ctx, "table", name)
	if skip, err := missing(ctx, fns, opts, name, n.ExistenceCheck); skip || err != nil {
		return err
	}
	if err := apply(ctx, fns, func(b *catalog.Builder) error {
		return b.DropTable(name)
	}); err != nil {
		return err
	}
	log.VEventf(ctx, 1, "dropped table")
	sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaDropTable)
	return nil
}

// DropGroup compiles a DROP GROUP statement, which drops every table of
// the group rooted at the named table.
func DropGroup(ctx context.Context, fns Functions, opts Options, n *tree.DropGroup) error {
	name := n.Name.Qualify(opts.DefaultSchema)
	ctx = logtags.AddTag(ctx, "group", name)
	if skip, err := missing(ctx, fns, opts, name, n.ExistenceCheck); skip || err != nil {
		return err
	}
	var dropped []tree.TableName
	if err := apply(ctx, fns, func(b *catalog.Builder) (err error) {
		dropped, err = b.DropGroup(name)
		return err
	}); err != nil {
		return err
	}
	log.VEventf(ctx, 1, "dropped %d tables: %v", len(dropped), dropped)
	sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaDropGroup)
	return nil
}

// RenameTable compiles a RENAME TABLE statement. An unqualified new name
// stays in the schema of the renamed table.
func RenameTable(ctx context.Context, fns Functions, opts Options, n *tree.RenameTable) error {
	from := n.Name.Qualify(opts.DefaultSchema)
	to := n.NewName.Qualify(from.Schema())
	ctx = logtags.AddTag(ctx, "table", from)
	if _, err := missing(ctx, fns, opts, from, tree.NoExistenceCheck); err != nil {
		return err
	}
	if err := apply(ctx, fns, func(b *catalog.Builder) error {
		return b.RenameTable(from, to)
	}); err != nil {
		return err
	}
	log.VEventf(ctx, 1, "renamed to %s", to)
	sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaRenameTable)
	return nil
}
