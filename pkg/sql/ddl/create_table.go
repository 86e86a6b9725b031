// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ddl

import (
	"context"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/coltypes"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgnotice"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/cockroachdb/logtags"
)

// CreateTable compiles a CREATE TABLE statement. Columns are added first,
// in declaration order, so that constraints may name columns declared
// after them. Grouping foreign keys are attached next, then the remaining
// constraints and indexes.
func CreateTable(ctx context.Context, fns Functions, opts Options, n *tree.CreateTable) error {
	name := n.Table.Qualify(opts.DefaultSchema)
	ctx = logtags.AddTag(ctx, "table", name)
	if n.As() {
		return sqlerrors.NewUnsupportedCreateSelectError()
	}
	base := fns.Catalog()
	_, isTable := base.Table(name)
	_, isSequence := base.Sequence(name)
	if isTable || isSequence {
		if n.ExistenceCheck == tree.IfNotExists {
			opts.notify(ctx, pgnotice.Newf("relation %s already exists, skipping", name))
			return nil
		}
		return sqlerrors.NewRelationAlreadyExistsError(name)
	}
	if err := apply(ctx, fns, func(b *catalog.Builder) error {
		c := &tableCompiler{ctx: ctx, b: b, name: name, defaultSchema: opts.DefaultSchema}
		return c.compile(n.Defs)
	}); err != nil {
		return err
	}
	sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaCreateTable)
	return nil
}

type tableCompiler struct {
	ctx           context.Context
	b             *catalog.Builder
	name          tree.TableName
	defaultSchema string
}

func (c *tableCompiler) compile(defs tree.TableDefs) error {
	if _, err := c.b.CreateTable(c.name); err != nil {
		return err
	}
	for _, pass := range []tree.TableDefVisitor{
		(*columnPass)(c),
		(*joinPass)(c),
		(*constraintPass)(c),
	} {
		for _, def := range defs {
			if err := def.Accept(pass); err != nil {
				return err
			}
		}
	}
	t, _ := c.b.Lookup(c.name)
	hidden := t.PrimaryKeyIncludingInternal() == nil
	if err := c.b.BasicSchemaIsComplete(); err != nil {
		return err
	}
	if hidden {
		sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaHiddenPrimaryKey)
	}
	if err := c.b.GroupingIsComplete(); err != nil {
		return err
	}
	log.VEventf(c.ctx, 1, "created table with %d columns and %d indexes",
		len(t.Columns), len(t.Indexes))
	return nil
}

// qualify resolves the schema of a name referenced by the table: the
// default schema when one is configured, otherwise the table's own.
func (c *tableCompiler) qualify(tn tree.TableName) tree.TableName {
	if c.defaultSchema != "" {
		return tn.Qualify(c.defaultSchema)
	}
	return tn.Qualify(c.name.Schema())
}

// columnPass adds the declared columns.
type columnPass tableCompiler

var _ tree.TableDefVisitor = (*columnPass)(nil)

func (p *columnPass) VisitColumn(d *tree.ColumnTableDef) error {
	c := (*tableCompiler)(p)
	if d.IsSerial() {
		return c.addSerialColumn(d)
	}
	typ, err := coltypes.Instance(c.name, d.Name, d.Type, d.Nullable != tree.NotNull)
	if err != nil {
		return err
	}
	def := catalog.ColumnDef{Name: d.Name, Type: typ}
	def.DefaultValue, def.DefaultFunction, err = columnDefault(c.name, d)
	if err != nil {
		return err
	}
	if d.Identity != nil && (def.DefaultValue != nil || def.DefaultFunction != "") {
		return pgerror.Newf(pgcode.Syntax,
			"both default and identity specified for column %q of table %s", d.Name, c.name)
	}
	if _, err := c.b.AddColumn(c.name, def); err != nil {
		return err
	}
	if id := d.Identity; id != nil {
		if _, err := c.b.SetIdentity(c.name, d.Name, id.Mode, id.Start, id.Increment); err != nil {
			return err
		}
		sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaIdentityColumn)
	}
	return nil
}

func (*columnPass) VisitPrimaryKey(*tree.PrimaryKeyConstraintDef) error { return nil }
func (*columnPass) VisitUnique(*tree.UniqueConstraintDef) error         { return nil }
func (*columnPass) VisitIndex(*tree.IndexTableDef) error                { return nil }
func (*columnPass) VisitForeignKey(*tree.ForeignKeyConstraintDef) error { return nil }
func (*columnPass) VisitCheck(*tree.CheckConstraintDef) error           { return nil }

// columnDefault extracts the default of a column: a textual value or the
// name of a niladic function. DEFAULT NULL is no default.
func columnDefault(
	tn tree.TableName, d *tree.ColumnTableDef,
) (value *string, function string, _ error) {
	switch e := d.DefaultExpr.(type) {
	case nil:
		return nil, "", nil
	case *tree.Constant:
		if e.IsNull {
			return nil, "", nil
		}
		v := e.Value
		return &v, "", nil
	case *tree.SpecialFunction:
		return nil, e.FunctionName(), nil
	case *tree.CurrentDatetime:
		return nil, e.FunctionName(), nil
	default:
		return nil, "", sqlerrors.NewBadColumnDefaultError(tn, d.Name, e.String())
	}
}

// joinPass attaches the table to its grouping parent.
type joinPass tableCompiler

var _ tree.TableDefVisitor = (*joinPass)(nil)

func (*joinPass) VisitColumn(*tree.ColumnTableDef) error              { return nil }
func (*joinPass) VisitPrimaryKey(*tree.PrimaryKeyConstraintDef) error { return nil }
func (*joinPass) VisitUnique(*tree.UniqueConstraintDef) error         { return nil }
func (*joinPass) VisitIndex(*tree.IndexTableDef) error                { return nil }
func (*joinPass) VisitCheck(*tree.CheckConstraintDef) error           { return nil }

func (p *joinPass) VisitForeignKey(fk *tree.ForeignKeyConstraintDef) error {
	c := (*tableCompiler)(p)
	if !fk.Grouping {
		return sqlerrors.NewUnsupportedFKIndexError()
	}
	parent := c.qualify(fk.Table)
	if parent == c.name {
		return sqlerrors.NewJoinToSelfError(c.name)
	}
	if _, ok := c.b.Lookup(parent); !ok {
		return sqlerrors.NewJoinToUnknownTableError(c.name, parent)
	}
	stub, err := c.b.AddShadowTable(parent)
	if err != nil {
		return err
	}
	// A hidden primary key cannot be referenced, so a parent without a
	// declared one has no key columns to join on.
	var pkColumns []string
	if pk := stub.PrimaryKey(); pk != nil {
		pkColumns = pk.ColumnNames()
	}
	parentColumns := fk.ToCols
	if len(parentColumns) == 0 {
		parentColumns = pkColumns
	}
	if len(fk.FromCols) != len(pkColumns) {
		return sqlerrors.NewJoinColumnMismatchError(len(fk.FromCols), c.name, parent, len(pkColumns))
	}
	if len(parentColumns) != len(fk.FromCols) {
		return sqlerrors.NewJoinColumnMismatchError(len(fk.FromCols), c.name, parent, len(parentColumns))
	}
	if _, err := c.b.JoinTables(c.name, parent); err != nil {
		return err
	}
	for i, child := range fk.FromCols {
		if err := c.b.JoinColumns(c.name, parentColumns[i], child); err != nil {
			return err
		}
	}
	if err := c.b.AddJoinToGroup(c.name); err != nil {
		return err
	}
	log.VEventf(c.ctx, 2, "joined to parent %s", parent)
	sqltelemetry.IncrementSchemaCounter(sqltelemetry.SchemaGroupingJoin)
	return nil
}

// constraintPass adds primary keys, unique constraints and indexes.
type constraintPass tableCompiler

var _ tree.TableDefVisitor = (*constraintPass)(nil)

func (p *constraintPass) VisitColumn(d *tree.ColumnTableDef) error {
	c := (*tableCompiler)(p)
	if d.PrimaryKey {
		if err := c.addUniqueIndex("", catalog.PrimaryIndex, []string{d.Name}); err != nil {
			return err
		}
	}
	if d.Unique {
		return c.addUniqueIndex("", catalog.UniqueIndex, []string{d.Name})
	}
	return nil
}

func (p *constraintPass) VisitPrimaryKey(d *tree.PrimaryKeyConstraintDef) error {
	return (*tableCompiler)(p).addUniqueIndex(d.Name, catalog.PrimaryIndex, d.Columns)
}

func (p *constraintPass) VisitUnique(d *tree.UniqueConstraintDef) error {
	return (*tableCompiler)(p).addUniqueIndex(d.Name, catalog.UniqueIndex, d.Columns)
}

func (p *constraintPass) VisitIndex(d *tree.IndexTableDef) error {
	return (*tableCompiler)(p).addIndex(d)
}

func (*constraintPass) VisitForeignKey(*tree.ForeignKeyConstraintDef) error { return nil }

func (*constraintPass) VisitCheck(*tree.CheckConstraintDef) error {
	return sqlerrors.NewUnsupportedCheckConstraintError()
}
