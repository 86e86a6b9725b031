// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"testing"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *catalog.Table {
	name := tree.MakeTableName("test", "t")
	b := catalog.NewBuilder(catalog.NewCatalog())
	_, err := b.CreateTable(name)
	require.NoError(t, err)
	_, err = b.AddColumn(name, catalog.ColumnDef{Name: "a", Type: types.Int.Nullable()})
	require.NoError(t, err)
	_, err = b.AddColumn(name, catalog.ColumnDef{Name: "b", Type: types.Varchar.Instance(10, 0, false)})
	require.NoError(t, err)
	require.NoError(t, b.BasicSchemaIsComplete())
	require.NoError(t, b.GroupingIsComplete())
	c, err := b.Commit()
	require.NoError(t, err)
	tbl, ok := c.Table(name)
	require.True(t, ok)
	return tbl
}

func TestForTable(t *testing.T) {
	tbl := testTable(t)
	r := ForTable(tbl)
	require.Same(t, tbl, r.Table())
	require.Equal(t, len(tbl.Columns), r.NFields())
	require.Equal(t, 3, r.NFields())
	for i, c := range tbl.Columns {
		require.Same(t, c.Type, r.TypeAt(i))
		require.Equal(t, c.Name, r.FieldName(i))
	}
	require.Equal(t, "(a INT, b VARCHAR(10) NOT NULL, __row_id BIGINT NOT NULL)", String(r))
}

func TestEqual(t *testing.T) {
	r := ForTable(testTable(t))
	same := NewProjectedRowType(
		Field{Type: types.Int.Nullable()},
		Field{Type: types.Varchar.Instance(10, 0, false)},
		Field{Type: types.BigInt.NotNull()},
	)
	require.True(t, Equal(r, same))
	require.Equal(t, "(INT, VARCHAR(10) NOT NULL, BIGINT NOT NULL)", String(same))

	nullable := NewProjectedRowType(
		Field{Type: types.Int.Nullable()},
		Field{Type: types.Varchar.Instance(10, 0, true)},
		Field{Type: types.BigInt.NotNull()},
	)
	require.False(t, Equal(r, nullable))
	require.False(t, Equal(r, NewValuesRowType(Field{Name: "a", Type: types.Int.Nullable()})))
}
