// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// ColumnDef describes a column added through a Builder.
type ColumnDef struct {
	Name            string
	Type            *types.T
	DefaultValue    *string
	DefaultFunction string
	Hidden          bool
}

// Builder stages schema changes against a base catalog. Nothing staged is
// visible in the base catalog; Commit returns a new catalog holding the
// changes. A Builder is used by a single goroutine and is discarded after
// Commit or after any error.
//
// Tables created in the session are mutable until Commit. Committed tables
// referenced by a grouping join are represented in the session by shadow
// stubs holding only their primary key, primary index, group and
// hierarchical key; stubs are dropped at Commit, where the committed
// definitions they shadow remain authoritative.
type Builder struct {
	base *Catalog
	// next is a private copy of base. Drops and renames apply to it
	// directly; created tables and sequences are added at Commit.
	next       *Catalog
	tables     []*Table
	stubs      map[tree.TableName]*Table
	sequences  []*Sequence
	groups     []*Group
	indexNames map[tree.TableName]*IndexNameGenerator

	basicComplete    bool
	groupingComplete bool
}

// NewBuilder starts a session against base.
func NewBuilder(base *Catalog) *Builder {
	return &Builder{
		base:       base,
		next:       base.clone(),
		stubs:      make(map[tree.TableName]*Table),
		indexNames: make(map[tree.TableName]*IndexNameGenerator),
	}
}

// Base returns the catalog the session started from.
func (b *Builder) Base() *Catalog { return b.base }

func (b *Builder) sessionTable(name tree.TableName) (*Table, bool) {
	for _, t := range b.tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

func (b *Builder) mutableTable(name tree.TableName) (*Table, error) {
	if t, ok := b.sessionTable(name); ok {
		return t, nil
	}
	return nil, sqlerrors.NewUndefinedRelationError(name)
}

// Lookup returns a table created in this session or, failing that, a
// committed table. Committed tables must not be modified.
func (b *Builder) Lookup(name tree.TableName) (*Table, bool) {
	if t, ok := b.sessionTable(name); ok {
		return t, true
	}
	return b.next.Table(name)
}

// Stub returns the shadow stub of a committed table, if one was added.
func (b *Builder) Stub(name tree.TableName) (*Table, bool) {
	t, ok := b.stubs[name]
	return t, ok
}

// joinTarget resolves the parent of a grouping join: a session table or
// a shadow stub.
func (b *Builder) joinTarget(name tree.TableName) (*Table, error) {
	if t, ok := b.sessionTable(name); ok {
		return t, nil
	}
	if t, ok := b.stubs[name]; ok {
		return t, nil
	}
	return nil, errors.AssertionFailedf("join target %s is neither staged nor shadowed", name)
}

func (b *Builder) nameInUse(name tree.TableName) bool {
	if b.next.nameInUse(name) {
		return true
	}
	if _, ok := b.sessionTable(name); ok {
		return true
	}
	for _, s := range b.sequences {
		if s.Name == name {
			return true
		}
	}
	return false
}

// CreateTable adds an empty table to the session.
func (b *Builder) CreateTable(name tree.TableName) (*Table, error) {
	if b.nameInUse(name) {
		return nil, sqlerrors.NewRelationAlreadyExistsError(name)
	}
	t := &Table{Name: name}
	b.tables = append(b.tables, t)
	b.indexNames[name] = NewIndexNameGenerator(t)
	return t, nil
}

// AddColumn appends a column to a session table. Hidden columns follow
// every declared column.
func (b *Builder) AddColumn(table tree.TableName, def ColumnDef) (*Column, error) {
	t, err := b.mutableTable(table)
	if err != nil {
		return nil, err
	}
	if def.Type == nil {
		return nil, errors.AssertionFailedf("column %q of %s has no type", def.Name, table)
	}
	if _, ok := t.Column(def.Name); ok {
		return nil, sqlerrors.NewColumnAlreadyExistsError(table, def.Name)
	}
	if n := len(t.Columns); !def.Hidden && n > 0 && t.Columns[n-1].Hidden {
		return nil, errors.AssertionFailedf("declared column %q added after hidden columns of %s",
			def.Name, table)
	}
	c := &Column{
		Name:            def.Name,
		Position:        len(t.Columns),
		Type:            def.Type,
		DefaultValue:    def.DefaultValue,
		DefaultFunction: def.DefaultFunction,
		Hidden:          def.Hidden,
	}
	t.Columns = append(t.Columns, c)
	return c, nil
}

// SetIdentity makes a column an identity column, creating the sequence
// generating its values in the table's schema. The sequence is named
// <table>_<column>_seq, suffixed with a number when that name is taken.
func (b *Builder) SetIdentity(
	table tree.TableName, column string, mode tree.IdentityMode, start, increment int64,
) (*Sequence, error) {
	t, err := b.mutableTable(table)
	if err != nil {
		return nil, err
	}
	c, ok := t.Column(column)
	if !ok {
		return nil, sqlerrors.NewUndefinedColumnError(table, column)
	}
	if c.Identity != nil {
		return nil, errors.AssertionFailedf("column %q of %s is already an identity column", column, table)
	}
	if increment == 0 {
		return nil, sqlerrors.NewZeroIncrementError(table, column)
	}
	s := &Sequence{
		Name:      b.sequenceName(table, column),
		Start:     start,
		Increment: increment,
	}
	b.sequences = append(b.sequences, s)
	c.Identity = &Identity{Sequence: s.Name, Mode: mode, Start: start, Increment: increment}
	return s, nil
}

func (b *Builder) sequenceName(table tree.TableName, column string) tree.TableName {
	prefix := fmt.Sprintf("%s_%s_seq", table.Object(), column)
	name := tree.MakeTableName(table.Schema(), prefix)
	for i := 1; b.nameInUse(name); i++ {
		name.ObjectName = prefix + strconv.Itoa(i)
	}
	return name
}

// GenerateIndexName returns an unused index name for a session table.
func (b *Builder) GenerateIndexName(table tree.TableName, firstColumn string, kind IndexKind) string {
	g, ok := b.indexNames[table]
	if !ok {
		return firstColumn
	}
	return g.Generate(firstColumn, kind)
}

// CreateIndex adds an empty index to a session table. Primary indexes are
// always named PRIMARY.
func (b *Builder) CreateIndex(table tree.TableName, name string, kind IndexKind) (*Index, error) {
	t, err := b.mutableTable(table)
	if err != nil {
		return nil, err
	}
	if kind == PrimaryIndex {
		if t.PrimaryKeyIncludingInternal() != nil {
			return nil, sqlerrors.NewMultiplePrimaryKeysError(table)
		}
		name = PrimaryIndexName
	}
	if name == "" {
		return nil, errors.AssertionFailedf("index on %s has no name", table)
	}
	if _, ok := t.Index(name); ok {
		return nil, sqlerrors.NewDuplicateIndexError(table, name)
	}
	ix := &Index{
		Name:   name,
		Kind:   kind,
		Unique: kind == PrimaryIndex || kind == UniqueIndex,
	}
	t.Indexes = append(t.Indexes, ix)
	if g, ok := b.indexNames[table]; ok {
		g.Reserve(name)
	}
	return ix, nil
}

// AddIndexColumn appends a key column to an index of a session table. An
// empty IndexColumn.Table names the indexed table itself. Primary key
// columns become NOT NULL.
func (b *Builder) AddIndexColumn(table tree.TableName, index string, col IndexColumn) error {
	t, err := b.mutableTable(table)
	if err != nil {
		return err
	}
	ix, ok := t.Index(index)
	if !ok {
		return errors.AssertionFailedf("index %q of %s does not exist", index, table)
	}
	if col.Table == (tree.TableName{}) {
		col.Table = table
	}
	if col.Table == table {
		c, ok := t.Column(col.Column)
		if !ok {
			return sqlerrors.NewUndefinedColumnError(table, col.Column)
		}
		if ix.Kind == PrimaryIndex {
			c.Type = c.Type.WithNullable(false)
		}
	} else {
		other, ok := b.Lookup(col.Table)
		if !ok {
			return sqlerrors.NewUndefinedRelationError(col.Table)
		}
		if _, ok := other.Column(col.Column); !ok {
			return sqlerrors.NewUndefinedColumnError(col.Table, col.Column)
		}
	}
	ix.Columns = append(ix.Columns, col)
	return nil
}

// SetIndexFunction applies fn to count key columns starting at first.
func (b *Builder) SetIndexFunction(
	table tree.TableName, index string, fn tree.IndexFunction, first, count int,
) error {
	t, err := b.mutableTable(table)
	if err != nil {
		return err
	}
	ix, ok := t.Index(index)
	if !ok {
		return errors.AssertionFailedf("index %q of %s does not exist", index, table)
	}
	ix.Function, ix.FirstFunctionArg, ix.FunctionArgCount = fn, first, count
	return nil
}

// AddShadowTable makes a table available as a grouping parent in the
// session. Session tables are their own shadow. For a committed table a
// stub is added holding copies of the primary key columns, the primary
// index, the group and the hierarchical key.
func (b *Builder) AddShadowTable(name tree.TableName) (*Table, error) {
	if t, ok := b.sessionTable(name); ok {
		return t, nil
	}
	if t, ok := b.stubs[name]; ok {
		return t, nil
	}
	parent, ok := b.next.Table(name)
	if !ok {
		return nil, sqlerrors.NewUndefinedRelationError(name)
	}
	pk := parent.PrimaryKeyIncludingInternal()
	if pk == nil {
		return nil, errors.AssertionFailedf("committed table %s has no primary index", name)
	}
	stub := &Table{
		ID:    parent.ID,
		Name:  parent.Name,
		Group: parent.Group,
		HKey:  parent.HKey.clone(),
	}
	for _, ic := range pk.Columns {
		c, ok := parent.Column(ic.Column)
		if !ok {
			return nil, errors.AssertionFailedf("primary key column %q missing from %s", ic.Column, name)
		}
		cc := *c
		cc.Identity = nil
		stub.Columns = append(stub.Columns, &cc)
	}
	pkCopy := *pk
	pkCopy.Columns = append([]IndexColumn(nil), pk.Columns...)
	stub.Indexes = []*Index{&pkCopy}
	b.stubs[name] = stub
	return stub, nil
}

// JoinTables creates the grouping join from child to parent. The parent
// must be a session table or have a shadow stub.
func (b *Builder) JoinTables(child, parent tree.TableName) (*Join, error) {
	if child == parent {
		return nil, sqlerrors.NewJoinToSelfError(child)
	}
	t, err := b.mutableTable(child)
	if err != nil {
		return nil, err
	}
	if _, err := b.joinTarget(parent); err != nil {
		return nil, err
	}
	if t.ParentJoin != nil {
		return nil, sqlerrors.NewMultipleGroupingParentsError(child)
	}
	j := &Join{Name: JoinName(parent, child), Parent: parent, Child: child}
	t.ParentJoin = j
	return j, nil
}

// JoinColumns adds a column pair to the grouping join of child. The parent
// column must be part of the parent's primary key.
func (b *Builder) JoinColumns(child tree.TableName, parentColumn, childColumn string) error {
	t, err := b.mutableTable(child)
	if err != nil {
		return err
	}
	j := t.ParentJoin
	if j == nil {
		return errors.AssertionFailedf("table %s has no grouping join", child)
	}
	if _, ok := t.Column(childColumn); !ok {
		return sqlerrors.NewUndefinedColumnError(child, childColumn)
	}
	parent, err := b.joinTarget(j.Parent)
	if err != nil {
		return err
	}
	if !inPrimaryKey(parent, parentColumn) {
		return sqlerrors.NewJoinToWrongColumnsError(child, childColumn, j.Parent, parentColumn)
	}
	j.Columns = append(j.Columns, JoinColumn{Parent: parentColumn, Child: childColumn})
	return nil
}

func inPrimaryKey(t *Table, column string) bool {
	pk := t.PrimaryKeyIncludingInternal()
	if pk == nil {
		return false
	}
	for _, c := range pk.Columns {
		if c.Column == column {
			return true
		}
	}
	return false
}

// AddJoinToGroup places child in the group of its grouping parent.
func (b *Builder) AddJoinToGroup(child tree.TableName) error {
	t, err := b.mutableTable(child)
	if err != nil {
		return err
	}
	if t.ParentJoin == nil {
		return errors.AssertionFailedf("table %s has no grouping join", child)
	}
	parent, err := b.joinTarget(t.ParentJoin.Parent)
	if err != nil {
		return err
	}
	group := parent.Group
	if group == (tree.TableName{}) {
		if !parent.IsRoot() {
			return errors.AssertionFailedf("parent %s of %s has no group", parent.Name, child)
		}
		// A session root gets its group in BasicSchemaIsComplete; the group
		// is named after it.
		group = parent.Name
	}
	t.Group = group
	return nil
}

// BasicSchemaIsComplete finishes the session tables: tables without a
// primary key get a hidden identity column and a hidden primary index over
// it, and root tables get a group of their own.
func (b *Builder) BasicSchemaIsComplete() error {
	if b.basicComplete {
		return errors.AssertionFailedf("basic schema already completed")
	}
	for _, t := range b.tables {
		if t.PrimaryKeyIncludingInternal() == nil {
			if err := b.addRowID(t); err != nil {
				return err
			}
		}
		switch {
		case t.IsRoot():
			if _, ok := b.next.Group(t.Name); ok {
				return errors.AssertionFailedf("group %s already exists", t.Name)
			}
			t.Group = t.Name
			b.groups = append(b.groups, &Group{Name: t.Name, Root: t.Name})
		case t.Group == (tree.TableName{}):
			return errors.AssertionFailedf("table %s was joined but not grouped", t.Name)
		}
	}
	b.basicComplete = true
	return nil
}

func (b *Builder) addRowID(t *Table) error {
	if _, err := b.AddColumn(t.Name, ColumnDef{
		Name:   RowIDColumnName,
		Type:   types.BigInt.NotNull(),
		Hidden: true,
	}); err != nil {
		return err
	}
	if _, err := b.SetIdentity(t.Name, RowIDColumnName, tree.GeneratedAlways, 1, 1); err != nil {
		return err
	}
	ix, err := b.CreateIndex(t.Name, PrimaryIndexName, PrimaryIndex)
	if err != nil {
		return err
	}
	ix.Hidden = true
	return b.AddIndexColumn(t.Name, ix.Name, IndexColumn{Column: RowIDColumnName})
}

// GroupingIsComplete computes the hierarchical key of every session table:
// the key of its parent followed by its own primary key columns.
func (b *Builder) GroupingIsComplete() error {
	if !b.basicComplete {
		return errors.AssertionFailedf("grouping completed before basic schema")
	}
	for _, t := range b.tables {
		pk := t.PrimaryKeyIncludingInternal()
		if pk == nil {
			return errors.AssertionFailedf("table %s has no primary index", t.Name)
		}
		own := HKeySegment{Table: t.Name, Columns: pk.ColumnNames()}
		if t.IsRoot() {
			t.HKey = HKey{Segments: []HKeySegment{own}}
			continue
		}
		parent, err := b.joinTarget(t.ParentJoin.Parent)
		if err != nil {
			return err
		}
		if parent.HKey.Depth() == 0 {
			return errors.AssertionFailedf("parent %s of %s has no hierarchical key", parent.Name, t.Name)
		}
		ppk := parent.PrimaryKeyIncludingInternal()
		if ppk == nil || len(ppk.Columns) != len(t.ParentJoin.Columns) {
			return errors.AssertionFailedf("join %s does not cover the parent primary key", t.ParentJoin.Name)
		}
		h := parent.HKey.clone()
		h.Segments = append(h.Segments, own)
		t.HKey = h
	}
	b.groupingComplete = true
	return nil
}

// Commit returns a catalog holding base plus every staged change. The
// builder cannot be used afterwards.
func (b *Builder) Commit() (*Catalog, error) {
	if b.next == nil {
		return nil, errors.AssertionFailedf("builder already committed")
	}
	if len(b.tables) > 0 && !(b.basicComplete && b.groupingComplete) {
		return nil, errors.AssertionFailedf("committing incomplete tables")
	}
	next := b.next
	b.next = nil
	for _, t := range b.tables {
		t.ID = next.allocateID()
		if err := next.putTable(t); err != nil {
			return nil, err
		}
	}
	for _, s := range b.sequences {
		s.ID = next.allocateID()
		if err := next.putSequence(s); err != nil {
			return nil, err
		}
	}
	for _, g := range b.groups {
		next.putGroup(g)
	}
	return next, nil
}
