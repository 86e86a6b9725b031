// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package ddl

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgnotice"
	"github.com/cockroachdb/groupsql/pkg/sql/schemafile"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

type noticeBuffer struct {
	b *strings.Builder
}

func (n noticeBuffer) BufferClientNotice(_ context.Context, notice pgnotice.Notice) {
	fmt.Fprintf(n.b, "NOTICE: %s\n", notice.Error())
}

func parseName(t *testing.T, d *datadriven.TestData, key string) tree.TableName {
	var s string
	d.ScanArgs(t, key, &s)
	tn, err := schemafile.ParseTableName(s)
	require.NoError(t, err)
	return tn
}

func existence(d *datadriven.TestData) tree.ExistenceCheck {
	if d.HasArg("if-exists") {
		return tree.IfExists
	}
	return tree.NoExistenceCheck
}

// TestDataDriven runs the statements of each testdata file against one
// catalog.
//
// create-table
// <yaml table>
// ----
//
// drop-table name=<table> [if-exists]
// drop-group name=<table> [if-exists]
// rename-table from=<table> to=<table>
// describe [table=<table>]
func TestDataDriven(t *testing.T) {
	ctx := context.Background()
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		m := catalog.NewManager()
		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			var out strings.Builder
			opts := Options{DefaultSchema: "test", Notices: noticeBuffer{&out}}
			var err error
			switch d.Cmd {
			case "create-table":
				n, perr := schemafile.ParseTable([]byte(d.Input))
				require.NoError(t, perr)
				err = CreateTable(ctx, m, opts, n)
			case "drop-table":
				err = DropTable(ctx, m, opts, &tree.DropTable{
					Name: parseName(t, d, "name"), ExistenceCheck: existence(d),
				})
			case "drop-group":
				err = DropGroup(ctx, m, opts, &tree.DropGroup{
					Name: parseName(t, d, "name"), ExistenceCheck: existence(d),
				})
			case "rename-table":
				err = RenameTable(ctx, m, opts, &tree.RenameTable{
					Name: parseName(t, d, "from"), NewName: parseName(t, d, "to"),
				})
			case "describe":
				if !d.HasArg("table") {
					if s := catalog.DescribeCatalog(m.Catalog()); s != "" {
						return s
					}
					return "empty"
				}
				name := parseName(t, d, "table").Qualify("test")
				tab, ok := m.Catalog().Table(name)
				if !ok {
					return fmt.Sprintf("table %s not found", name)
				}
				return catalog.Describe(tab)
			default:
				d.Fatalf(t, "unknown command %s", d.Cmd)
			}
			if err != nil {
				fmt.Fprintln(&out, pgerror.FullError(err))
			}
			if out.Len() == 0 {
				return "ok"
			}
			return out.String()
		})
	})
}

func mustCreate(t *testing.T, m *catalog.Manager, yaml string) {
	t.Helper()
	n, err := schemafile.ParseTable([]byte(yaml))
	require.NoError(t, err)
	require.NoError(t, CreateTable(context.Background(), m, Options{DefaultSchema: "test"}, n))
}

func TestFailedStatementLeavesCatalog(t *testing.T) {
	m := catalog.NewManager()
	mustCreate(t, m, `
name: p
columns: [{name: id, type: int, primary_key: true}]
`)
	before := m.Catalog()
	n, err := schemafile.ParseTable([]byte(`
name: c
columns:
  - {name: id, type: serial}
  - {name: pid, type: int}
foreign_keys: [{columns: [pid], references: p, grouping: true}]
checks: ["pid > 0"]
`))
	require.NoError(t, err)
	err = CreateTable(context.Background(), m, Options{DefaultSchema: "test"}, n)
	require.Equal(t, pgcode.FeatureNotSupported, pgerror.GetPGCode(err))
	require.Same(t, before, m.Catalog())
	_, ok := m.Catalog().Sequence(tree.MakeTableName("test", "c_id_seq"))
	require.False(t, ok)
	require.Empty(t, m.Catalog().Children(tree.MakeTableName("test", "p")))
}

func TestCreateTableCountsCommittedTables(t *testing.T) {
	ctx := context.Background()
	created := sqltelemetry.SchemaFeatureName(sqltelemetry.SchemaCreateTable)
	m := catalog.NewManager()
	before := sqltelemetry.Value(created)

	for _, yaml := range []string{
		"name: bad\ncolumns: [{name: a, type: int}]\nchecks: [\"a > 0\"]\n",
		"name: bad\ncolumns: [{name: a, type: int}, {name: a, type: int}]\n",
		"name: bad\ncolumns: [{name: a, type: interval}]\n",
	} {
		n, err := schemafile.ParseTable([]byte(yaml))
		require.NoError(t, err)
		require.Error(t, CreateTable(ctx, m, Options{DefaultSchema: "test"}, n))
	}
	require.Equal(t, before, sqltelemetry.Value(created))

	mustCreate(t, m, "name: ok\ncolumns: [{name: a, type: int}]\n")
	require.Equal(t, before+1, sqltelemetry.Value(created))
}

func TestConstraintBeforeColumn(t *testing.T) {
	m := catalog.NewManager()
	name := tree.MakeUnqualifiedTableName("t")
	intType := &tree.DataType{ID: tree.IntegerTypeID}
	n := &tree.CreateTable{
		Table: name,
		Defs: tree.TableDefs{
			&tree.PrimaryKeyConstraintDef{Columns: []string{"b"}},
			&tree.UniqueConstraintDef{Name: "ab", Columns: []string{"a", "b"}},
			&tree.ColumnTableDef{Name: "a", Type: intType},
			&tree.ColumnTableDef{Name: "b", Type: intType},
		},
	}
	require.NoError(t, CreateTable(context.Background(), m, Options{DefaultSchema: "test"}, n))
	tab, ok := m.Catalog().Table(name.Qualify("test"))
	require.True(t, ok)
	require.Equal(t, []string{"b"}, tab.PrimaryKey().ColumnNames())
	b, _ := tab.Column("b")
	require.False(t, b.Type.Nullable())
	ab, ok := tab.Index("ab")
	require.True(t, ok)
	require.Equal(t, catalog.UniqueIndex, ab.Kind)
}

func TestSerialExpansion(t *testing.T) {
	m := catalog.NewManager()
	mustCreate(t, m, `
name: t
columns:
  - {name: id, type: serial, primary_key: true}
`)
	c := m.Catalog()
	tn := tree.MakeTableName("test", "t")
	tab, _ := c.Table(tn)
	seqName := tree.MakeTableName("test", "t_id_seq")
	seq, ok := c.Sequence(seqName)
	require.True(t, ok)

	want := &catalog.Column{
		Name:     "id",
		Position: 0,
		Type:     types.BigInt.NotNull(),
		Identity: &catalog.Identity{
			Mode: tree.GeneratedByDefault, Sequence: seqName, Start: 1, Increment: 1,
		},
	}
	id, _ := tab.Column("id")
	if diff := cmp.Diff(want, id,
		cmp.Comparer(func(a, b *types.T) bool { return a.Equal(b) }),
	); diff != "" {
		t.Errorf("unexpected column (-want +got):\n%s", diff)
	}
	require.Equal(t, int64(1), seq.Start)

	// The serial unique index and the primary key both exist.
	kinds := make([]catalog.IndexKind, 0, len(tab.Indexes))
	for _, ix := range tab.Indexes {
		kinds = append(kinds, ix.Kind)
	}
	require.ElementsMatch(t, []catalog.IndexKind{catalog.UniqueIndex, catalog.PrimaryIndex}, kinds)
}

func TestCatalogIDsIgnoredInComparison(t *testing.T) {
	// The same statements against two managers produce equal catalogs up
	// to the object IDs.
	build := func() *catalog.Catalog {
		m := catalog.NewManager()
		mustCreate(t, m, `
name: unrelated
columns: [{name: x, type: int}]
`)
		require.NoError(t, DropTable(context.Background(), m, Options{DefaultSchema: "test"},
			&tree.DropTable{Name: tree.MakeUnqualifiedTableName("unrelated")}))
		mustCreate(t, m, `
name: t
columns:
  - {name: a, type: varchar(8), default: abc}
  - {name: b, type: bigint, identity: {mode: by default, start: 5, increment: 2}}
`)
		return m.Catalog()
	}
	fresh := catalog.NewManager()
	mustCreate(t, fresh, `
name: t
columns:
  - {name: a, type: varchar(8), default: abc}
  - {name: b, type: bigint, identity: {mode: by default, start: 5, increment: 2}}
`)
	got, _ := build().Table(tree.MakeTableName("test", "t"))
	want, _ := fresh.Catalog().Table(tree.MakeTableName("test", "t"))
	if diff := cmp.Diff(want, got,
		cmpopts.IgnoreFields(catalog.Table{}, "ID"),
		cmp.Comparer(func(a, b *types.T) bool { return a.Equal(b) }),
	); diff != "" {
		t.Errorf("unexpected table (-want +got):\n%s", diff)
	}
}
