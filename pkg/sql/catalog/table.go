// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// ID identifies a committed table or sequence. IDs are assigned when a
// Builder commits and are never reused within a catalog lineage.
type ID uint32

// InvalidID is the ID of objects that have not been committed.
const InvalidID ID = 0

// RowIDColumnName is the hidden primary key column of tables that declare
// no primary key.
const RowIDColumnName = "__row_id"

// PrimaryIndexName is the name of every primary index.
const PrimaryIndexName = "PRIMARY"

// Identity associates a column with the sequence generating its values.
type Identity struct {
	Sequence  tree.TableName
	Mode      tree.IdentityMode
	Start     int64
	Increment int64
}

// Column is a column of a table.
type Column struct {
	Name string
	// Position is the index of the column in Table.Columns.
	Position int
	// Type carries the column's nullability.
	Type *types.T
	// DefaultValue is the textual default, if any.
	DefaultValue *string
	// DefaultFunction names a niladic function computing the default.
	DefaultFunction string
	Identity        *Identity
	// Hidden columns are added by the catalog and cannot be set by users.
	Hidden bool
}

// Nullable is a shorthand for c.Type.Nullable().
func (c *Column) Nullable() bool { return c.Type.Nullable() }

// IndexKind is the kind of an index.
type IndexKind int

const (
	// PrimaryIndex holds the primary key.
	PrimaryIndex IndexKind = iota
	// UniqueIndex is a UNIQUE constraint.
	UniqueIndex
	// TableIndex is a secondary index over columns of one table.
	TableIndex
	// GroupIndex spans tables of one group.
	GroupIndex
	// FullTextIndex is a full text index.
	FullTextIndex
)

var indexKindNames = [...]string{
	PrimaryIndex:  "PRIMARY",
	UniqueIndex:   "UNIQUE",
	TableIndex:    "TABLE",
	GroupIndex:    "GROUP",
	FullTextIndex: "FULL_TEXT",
}

func (k IndexKind) String() string {
	if k < 0 || int(k) >= len(indexKindNames) {
		return "UNKNOWN"
	}
	return indexKindNames[k]
}

// IndexColumn is a key column of an index.
type IndexColumn struct {
	Table  tree.TableName
	Column string
}

// Index is an index of a table.
type Index struct {
	Name    string
	Kind    IndexKind
	Unique  bool
	Columns []IndexColumn
	// Function is applied to FunctionArgCount columns starting at
	// FirstFunctionArg.
	Function         tree.IndexFunction
	FirstFunctionArg int
	FunctionArgCount int
	Hidden           bool
}

// ColumnNames returns the names of the key columns.
func (ix *Index) ColumnNames() []string {
	names := make([]string, len(ix.Columns))
	for i, c := range ix.Columns {
		names[i] = c.Column
	}
	return names
}

// JoinColumn pairs a child column with the parent column it references.
type JoinColumn struct {
	Parent string
	Child  string
}

// Join is a grouping foreign key from a child table to its parent.
type Join struct {
	Name    string
	Parent  tree.TableName
	Child   tree.TableName
	Columns []JoinColumn
}

// JoinName is the name of the join from child to parent.
func JoinName(parent, child tree.TableName) string {
	return strings.Join([]string{
		parent.Schema(), parent.Object(), child.Schema(), child.Object(),
	}, "/")
}

// HKeySegment is the part of a hierarchical key contributed by one table.
type HKeySegment struct {
	Table   tree.TableName
	Columns []string
}

// HKey is the hierarchical key of a table: one segment per level from the
// group root down to the table.
type HKey struct {
	Segments []HKeySegment
}

// Depth is the number of levels of the key.
func (h HKey) Depth() int { return len(h.Segments) }

func (h HKey) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range h.Segments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Table.String())
		b.WriteByte('(')
		b.WriteString(strings.Join(s.Columns, ", "))
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}

func (h HKey) clone() HKey {
	if h.Segments == nil {
		return HKey{}
	}
	segs := make([]HKeySegment, len(h.Segments))
	for i, s := range h.Segments {
		segs[i] = HKeySegment{Table: s.Table, Columns: append([]string(nil), s.Columns...)}
	}
	return HKey{Segments: segs}
}

// Group is a hierarchy of tables rooted at one table. A group is named
// after the table it was created for.
type Group struct {
	Name tree.TableName
	Root tree.TableName
}

// Sequence is a named counter.
type Sequence struct {
	ID        ID
	Name      tree.TableName
	Start     int64
	Increment int64
}

// Table is a table of the catalog. Tables reachable from a Catalog are
// immutable.
type Table struct {
	ID   ID
	Name tree.TableName
	// Columns holds the declared columns followed by the hidden ones.
	Columns    []*Column
	Indexes    []*Index
	ParentJoin *Join
	Group      tree.TableName
	HKey       HKey
}

// DeclaredColumns returns the columns that were declared by the user.
func (t *Table) DeclaredColumns() []*Column {
	n := len(t.Columns)
	for n > 0 && t.Columns[n-1].Hidden {
		n--
	}
	return t.Columns[:n]
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Index looks up an index by name.
func (t *Table) Index(name string) (*Index, bool) {
	for _, ix := range t.Indexes {
		if ix.Name == name {
			return ix, true
		}
	}
	return nil, false
}

// PrimaryKeyIncludingInternal returns the primary index, which is hidden
// if the table declares no primary key.
func (t *Table) PrimaryKeyIncludingInternal() *Index {
	for _, ix := range t.Indexes {
		if ix.Kind == PrimaryIndex {
			return ix
		}
	}
	return nil
}

// PrimaryKey returns the declared primary key, or nil.
func (t *Table) PrimaryKey() *Index {
	if ix := t.PrimaryKeyIncludingInternal(); ix != nil && !ix.Hidden {
		return ix
	}
	return nil
}

// IsRoot returns whether the table has no grouping parent.
func (t *Table) IsRoot() bool { return t.ParentJoin == nil }

// clone returns a copy of t that can be modified without affecting t.
func (t *Table) clone() *Table {
	c := *t
	c.Columns = make([]*Column, len(t.Columns))
	for i, col := range t.Columns {
		cc := *col
		if col.Identity != nil {
			id := *col.Identity
			cc.Identity = &id
		}
		c.Columns[i] = &cc
	}
	c.Indexes = make([]*Index, len(t.Indexes))
	for i, ix := range t.Indexes {
		ic := *ix
		ic.Columns = append([]IndexColumn(nil), ix.Columns...)
		c.Indexes[i] = &ic
	}
	if t.ParentJoin != nil {
		j := *t.ParentJoin
		j.Columns = append([]JoinColumn(nil), t.ParentJoin.Columns...)
		c.ParentJoin = &j
	}
	c.HKey = t.HKey.clone()
	return &c
}
