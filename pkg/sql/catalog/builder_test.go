// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package catalog

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func tn(name string) tree.TableName { return tree.MakeTableName("test", name) }

func strPtr(s string) *string { return &s }

// createTable builds and commits a table with the given INT columns and
// primary key, optionally grouped under parent.
func createTable(
	t *testing.T, base *Catalog, name string, cols []string, pk []string, parent string, fk []string,
) *Catalog {
	t.Helper()
	b := NewBuilder(base)
	_, err := b.CreateTable(tn(name))
	require.NoError(t, err)
	for _, c := range cols {
		_, err := b.AddColumn(tn(name), ColumnDef{Name: c, Type: types.Int.Nullable()})
		require.NoError(t, err)
	}
	if parent != "" {
		_, err := b.AddShadowTable(tn(parent))
		require.NoError(t, err)
		_, err = b.JoinTables(tn(name), tn(parent))
		require.NoError(t, err)
		stub, _ := b.Stub(tn(parent))
		for i, c := range fk {
			require.NoError(t, b.JoinColumns(tn(name), stub.PrimaryKeyIncludingInternal().Columns[i].Column, c))
		}
		require.NoError(t, b.AddJoinToGroup(tn(name)))
	}
	if len(pk) > 0 {
		_, err := b.CreateIndex(tn(name), "", PrimaryIndex)
		require.NoError(t, err)
		for _, c := range pk {
			require.NoError(t, b.AddIndexColumn(tn(name), PrimaryIndexName, IndexColumn{Column: c}))
		}
	}
	require.NoError(t, b.BasicSchemaIsComplete())
	require.NoError(t, b.GroupingIsComplete())
	next, err := b.Commit()
	require.NoError(t, err)
	return next
}

func TestBuilderColumns(t *testing.T) {
	b := NewBuilder(NewCatalog())
	_, err := b.CreateTable(tn("t"))
	require.NoError(t, err)
	a, err := b.AddColumn(tn("t"), ColumnDef{Name: "a", Type: types.Int.Nullable()})
	require.NoError(t, err)
	c, err := b.AddColumn(tn("t"), ColumnDef{
		Name: "b", Type: types.Varchar.Instance(10, 0, true), DefaultValue: strPtr("x"),
	})
	require.NoError(t, err)
	require.Equal(t, 0, a.Position)
	require.Equal(t, 1, c.Position)

	_, err = b.AddColumn(tn("t"), ColumnDef{Name: "a", Type: types.Int.Nullable()})
	require.Equal(t, pgcode.DuplicateColumn, pgerror.GetPGCode(err))

	_, err = b.AddColumn(tn("missing"), ColumnDef{Name: "a", Type: types.Int.Nullable()})
	require.Equal(t, pgcode.UndefinedTable, pgerror.GetPGCode(err))

	_, err = b.AddColumn(tn("t"), ColumnDef{Name: "n"})
	require.True(t, errors.HasAssertionFailure(err))

	_, err = b.CreateTable(tn("t"))
	require.Equal(t, pgcode.DuplicateRelation, pgerror.GetPGCode(err))
}

func TestBuilderIndexes(t *testing.T) {
	b := NewBuilder(NewCatalog())
	_, err := b.CreateTable(tn("t"))
	require.NoError(t, err)
	_, err = b.AddColumn(tn("t"), ColumnDef{Name: "id", Type: types.Int.Nullable()})
	require.NoError(t, err)

	_, err = b.CreateIndex(tn("t"), "", PrimaryIndex)
	require.NoError(t, err)
	require.NoError(t, b.AddIndexColumn(tn("t"), PrimaryIndexName, IndexColumn{Column: "id"}))
	tbl, _ := b.Lookup(tn("t"))
	col, _ := tbl.Column("id")
	require.False(t, col.Nullable())

	_, err = b.CreateIndex(tn("t"), "", PrimaryIndex)
	require.Equal(t, pgcode.InvalidTableDefinition, pgerror.GetPGCode(err))

	name := b.GenerateIndexName(tn("t"), "id", UniqueIndex)
	require.Equal(t, "id", name)
	_, err = b.CreateIndex(tn("t"), name, UniqueIndex)
	require.NoError(t, err)
	_, err = b.CreateIndex(tn("t"), "id", TableIndex)
	require.Equal(t, pgcode.DuplicateRelation, pgerror.GetPGCode(err))
	require.Equal(t, "id_2", b.GenerateIndexName(tn("t"), "id", TableIndex))

	err = b.AddIndexColumn(tn("t"), "id", IndexColumn{Column: "nope"})
	require.True(t, pgerror.HasCode(err, pgcode.UndefinedColumn))
}

func TestHiddenPrimaryKey(t *testing.T) {
	b := NewBuilder(NewCatalog())
	_, err := b.CreateTable(tn("t"))
	require.NoError(t, err)
	_, err = b.AddColumn(tn("t"), ColumnDef{Name: "a", Type: types.Int.Nullable()})
	require.NoError(t, err)
	_, err = b.AddColumn(tn("t"), ColumnDef{
		Name: "b", Type: types.Varchar.Instance(10, 0, true), DefaultValue: strPtr("x"),
	})
	require.NoError(t, err)
	require.NoError(t, b.BasicSchemaIsComplete())
	require.NoError(t, b.GroupingIsComplete())
	c, err := b.Commit()
	require.NoError(t, err)

	tbl, ok := c.Table(tn("t"))
	require.True(t, ok)
	require.Len(t, tbl.DeclaredColumns(), 2)
	require.Len(t, tbl.Columns, 3)
	require.Nil(t, tbl.PrimaryKey())
	require.NotNil(t, tbl.PrimaryKeyIncludingInternal())
	require.Equal(t, `table test.t
  group: test.t
  hkey: [test.t(__row_id)]
  column 0 a INT
  column 1 b VARCHAR(10) DEFAULT 'x'
  column 2 __row_id BIGINT NOT NULL IDENTITY ALWAYS test.t___row_id_seq (1, 1) HIDDEN
  index PRIMARY PRIMARY (__row_id) HIDDEN
sequence test.t___row_id_seq start 1 increment 1
group test.t root test.t
`, DescribeCatalog(c))
	require.NotEqual(t, InvalidID, tbl.ID)
	seq, ok := c.Sequence(tn("t___row_id_seq"))
	require.True(t, ok)
	require.NotEqual(t, tbl.ID, seq.ID)

	_, err = b.Commit()
	require.True(t, errors.HasAssertionFailure(err))
}

func TestIdentitySequenceNames(t *testing.T) {
	base := createTable(t, NewCatalog(), "t_id_seq", []string{"x"}, []string{"x"}, "", nil)
	b := NewBuilder(base)
	_, err := b.CreateTable(tn("t"))
	require.NoError(t, err)
	for _, c := range []string{"id", "v"} {
		_, err := b.AddColumn(tn("t"), ColumnDef{Name: c, Type: types.BigInt.NotNull()})
		require.NoError(t, err)
	}
	s, err := b.SetIdentity(tn("t"), "id", tree.GeneratedByDefault, 1, 1)
	require.NoError(t, err)
	require.Equal(t, tn("t_id_seq1"), s.Name)

	_, err = b.SetIdentity(tn("t"), "id", tree.GeneratedByDefault, 1, 1)
	require.True(t, errors.HasAssertionFailure(err))
	_, err = b.SetIdentity(tn("t"), "v", tree.GeneratedAlways, 1, 0)
	require.Equal(t, pgcode.InvalidParameterValue, pgerror.GetPGCode(err))
	_, err = b.SetIdentity(tn("t"), "w", tree.GeneratedAlways, 1, 1)
	require.Equal(t, pgcode.UndefinedColumn, pgerror.GetPGCode(err))
}

func TestGroupingWithShadowParent(t *testing.T) {
	c := createTable(t, NewCatalog(), "p", []string{"id"}, []string{"id"}, "", nil)
	c = createTable(t, c, "c", []string{"id", "pid"}, []string{"id"}, "p", []string{"pid"})
	c = createTable(t, c, "g", []string{"cid"}, nil, "c", []string{"cid"})

	child, ok := c.Table(tn("c"))
	require.True(t, ok)
	require.Equal(t, tn("p"), child.Group)
	require.Equal(t, "test/p/test/c", child.ParentJoin.Name)
	require.Equal(t, "[test.p(id), test.c(id)]", child.HKey.String())

	grand, _ := c.Table(tn("g"))
	require.Equal(t, tn("p"), grand.Group)
	require.Equal(t, 3, grand.HKey.Depth())
	require.Equal(t, "[test.p(id), test.c(id), test.g(__row_id)]", grand.HKey.String())

	var names []string
	for _, m := range c.GroupTables(tn("p")) {
		names = append(names, m.Name.Object())
	}
	require.Equal(t, []string{"p", "c", "g"}, names)
	require.Len(t, c.Groups(), 1)

	// The parent stays as committed; the stub never leaks.
	parent, _ := c.Table(tn("p"))
	require.Len(t, parent.Columns, 1)
}

func TestJoinErrors(t *testing.T) {
	base := createTable(t, NewCatalog(), "p", []string{"id", "v"}, []string{"id"}, "", nil)
	b := NewBuilder(base)
	_, err := b.CreateTable(tn("c"))
	require.NoError(t, err)
	_, err = b.AddColumn(tn("c"), ColumnDef{Name: "pid", Type: types.Int.Nullable()})
	require.NoError(t, err)

	_, err = b.JoinTables(tn("c"), tn("c"))
	require.Equal(t, pgcode.InvalidForeignKey, pgerror.GetPGCode(err))

	_, err = b.AddShadowTable(tn("nope"))
	require.True(t, pgerror.HasCode(err, pgcode.UndefinedTable))

	stub, err := b.AddShadowTable(tn("p"))
	require.NoError(t, err)
	require.Len(t, stub.Columns, 1)
	again, err := b.AddShadowTable(tn("p"))
	require.NoError(t, err)
	require.Same(t, stub, again)

	_, err = b.JoinTables(tn("c"), tn("p"))
	require.NoError(t, err)
	_, err = b.JoinTables(tn("c"), tn("p"))
	require.Equal(t, pgcode.InvalidTableDefinition, pgerror.GetPGCode(err))

	err = b.JoinColumns(tn("c"), "id", "nope")
	require.Equal(t, pgcode.UndefinedColumn, pgerror.GetPGCode(err))
	err = b.JoinColumns(tn("c"), "v", "pid")
	require.Equal(t, pgcode.InvalidForeignKey, pgerror.GetPGCode(err))
	require.NoError(t, b.JoinColumns(tn("c"), "id", "pid"))
}

func TestCommitLeavesBaseUntouched(t *testing.T) {
	base := createTable(t, NewCatalog(), "p", []string{"id"}, []string{"id"}, "", nil)
	before := DescribeCatalog(base)

	b := NewBuilder(base)
	_, err := b.CreateTable(tn("q"))
	require.NoError(t, err)
	require.NoError(t, b.DropTable(tn("p")))
	require.NoError(t, b.BasicSchemaIsComplete())
	require.NoError(t, b.GroupingIsComplete())
	next, err := b.Commit()
	require.NoError(t, err)

	require.Equal(t, before, DescribeCatalog(base))
	_, ok := next.Table(tn("p"))
	require.False(t, ok)
	_, ok = next.Table(tn("q"))
	require.True(t, ok)
	_, ok = next.Group(tn("p"))
	require.False(t, ok)
}

func TestDropTable(t *testing.T) {
	c := createTable(t, NewCatalog(), "p", []string{"id"}, []string{"id"}, "", nil)
	c = createTable(t, c, "c", []string{"pid"}, nil, "p", []string{"pid"})

	err := NewBuilder(c).DropTable(tn("p"))
	require.Equal(t, pgcode.DependentObjectsStillExist, pgerror.GetPGCode(err))
	err = NewBuilder(c).DropTable(tn("x"))
	require.True(t, pgerror.HasCode(err, pgcode.UndefinedTable))

	b := NewBuilder(c)
	require.NoError(t, b.DropTable(tn("c")))
	next, err := b.Commit()
	require.NoError(t, err)
	_, ok := next.Table(tn("c"))
	require.False(t, ok)
	_, ok = next.Sequence(tn("c___row_id_seq"))
	require.False(t, ok)
	_, ok = next.Group(tn("p"))
	require.True(t, ok)
}

func TestDropGroup(t *testing.T) {
	c := createTable(t, NewCatalog(), "p", []string{"id"}, []string{"id"}, "", nil)
	c = createTable(t, c, "c", []string{"pid", "id"}, []string{"id"}, "p", []string{"pid"})
	c = createTable(t, c, "d", []string{"cid"}, nil, "c", []string{"cid"})
	c = createTable(t, c, "other", []string{"x"}, []string{"x"}, "", nil)

	_, err := NewBuilder(c).DropGroup(tn("c"))
	require.Equal(t, pgcode.WrongObjectType, pgerror.GetPGCode(err))

	b := NewBuilder(c)
	dropped, err := b.DropGroup(tn("p"))
	require.NoError(t, err)
	require.Equal(t, []tree.TableName{tn("d"), tn("c"), tn("p")}, dropped)
	next, err := b.Commit()
	require.NoError(t, err)
	require.Len(t, next.Tables(), 1)
	require.Len(t, next.Groups(), 1)
	require.Empty(t, next.Sequences())
}

func TestRenameTable(t *testing.T) {
	c := createTable(t, NewCatalog(), "p", []string{"id"}, []string{"id"}, "", nil)
	c = createTable(t, c, "c", []string{"pid", "id"}, []string{"pid", "id"}, "p", []string{"pid"})

	b := NewBuilder(c)
	require.NoError(t, b.RenameTable(tn("p"), tn("parent")))
	next, err := b.Commit()
	require.NoError(t, err)

	_, ok := next.Table(tn("p"))
	require.False(t, ok)
	parent, ok := next.Table(tn("parent"))
	require.True(t, ok)
	require.Equal(t, "[test.parent(id)]", parent.HKey.String())
	child, _ := next.Table(tn("c"))
	require.Equal(t, tn("parent"), child.ParentJoin.Parent)
	require.Equal(t, "test/parent/test/c", child.ParentJoin.Name)
	require.Equal(t, "[test.parent(id), test.c(pid, id)]", child.HKey.String())
	_, ok = next.Group(tn("p"))
	require.False(t, ok)
	g, ok := next.Group(tn("parent"))
	require.True(t, ok)
	require.Equal(t, tn("parent"), g.Root)
	require.Len(t, next.GroupTables(tn("parent")), 2)
	require.Equal(t, tn("parent"), parent.Group)
	require.Equal(t, tn("parent"), child.Group)

	// The freed name can root a new group.
	again := createTable(t, next, "p", []string{"id"}, []string{"id"}, "", nil)
	require.Len(t, again.Groups(), 2)
	_, ok = again.Group(tn("p"))
	require.True(t, ok)

	// The original snapshot is unchanged.
	old, _ := c.Table(tn("c"))
	require.Equal(t, tn("p"), old.ParentJoin.Parent)

	err = NewBuilder(next).RenameTable(tn("c"), tn("parent"))
	require.Equal(t, pgcode.DuplicateRelation, pgerror.GetPGCode(err))
	err = NewBuilder(next).RenameTable(tn("c"), tree.MakeTableName("other", "c"))
	require.Equal(t, pgcode.FeatureNotSupported, pgerror.GetPGCode(err))
}

func TestIndexNameGenerator(t *testing.T) {
	g := NewIndexNameGenerator(&Table{Indexes: []*Index{{Name: "a"}}})
	require.Equal(t, "PRIMARY", g.Generate("x", PrimaryIndex))
	require.Equal(t, "a_2", g.Generate("a", UniqueIndex))
	require.Equal(t, "a_3", g.Generate("a", TableIndex))
	require.Equal(t, "b", g.Generate("b", TableIndex))
	require.Equal(t, "b_fulltext", g.Generate("b", FullTextIndex))
	require.Equal(t, "b_fulltext_2", g.Generate("b", FullTextIndex))
	require.Equal(t, "index", g.Generate("", GroupIndex))
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	base := m.Catalog()
	next := createTable(t, base, "t", []string{"a"}, []string{"a"}, "", nil)
	require.NoError(t, m.Commit(ctx, base, next))
	require.Same(t, next, m.Catalog())

	stale := createTable(t, base, "u", []string{"a"}, []string{"a"}, "", nil)
	err := m.Commit(ctx, base, stale)
	require.Equal(t, pgcode.SerializationFailure, pgerror.GetPGCode(err))
	require.Same(t, next, m.Catalog())

	_, ok := m.Sequence(tn("t_a_seq"))
	require.False(t, ok)
}
