// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package plan

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/rowtype"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/builtins"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
	"github.com/stretchr/testify/require"
)

type countingSequences struct {
	calls int
}

func (s *countingSequences) NextVal(_ context.Context, schema, name string) (int64, error) {
	s.calls++
	return int64(s.calls), nil
}

var intake = types.Varchar.Instance(65535, 0, true)

func testTable() *catalog.Table {
	return &catalog.Table{
		Name: tree.MakeTableName("test", "t"),
		Columns: []*catalog.Column{
			{Name: "a", Position: 0, Type: types.Int.Nullable()},
			{Name: "id", Position: 1, Type: types.BigInt.NotNull()},
		},
	}
}

func resolve(t *testing.T, name string, args ...Expr) *Func {
	t.Helper()
	pre := make([]overload.PreptimeValue, len(args))
	for i, a := range args {
		pre[i].Type = a.ResolvedType()
		if l, ok := a.(*Literal); ok {
			pre[i].Value = l.Value
		}
	}
	res, ok := builtins.Default().ResolveOverload(name, pre)
	require.True(t, ok, "%s does not resolve", name)
	return NewFunc(res, args...)
}

func cast(t *testing.T, e Expr, typ *types.T) *Cast {
	t.Helper()
	c, ok := builtins.Default().ResolveCast(e.ResolvedType().Class(), typ.Class())
	require.True(t, ok)
	return NewCast(e, c, typ)
}

// testPlan builds
//
//	project (@2)
//	  insert-returning test.t
//	    project (CAST(@1 AS INT), IFNULL(CAST(@2 AS BIGINT), NEXTVAL('test', 's')))
//	      values ($1, $2)
func testPlan(t *testing.T) Operator {
	tbl := testTable()
	p1, p2 := NewParameter(0, intake), NewParameter(1, intake)
	scan := &ValuesScan{
		Rows: [][]Expr{{p1, p2}},
		Type: rowtype.NewValuesRowType(rowtype.Field{Name: "a", Type: intake}, rowtype.Field{Name: "id", Type: intake}),
	}
	in1, in2 := NewField(0, intake), NewField(1, intake)
	seq := resolve(t, "NEXTVAL",
		NewLiteral(tree.NewDString("test"), types.Varchar.Instance(4, 0, false)),
		NewLiteral(tree.NewDString("s"), types.Varchar.Instance(1, 0, false)),
	)
	norm := NewProject(scan, []Expr{
		cast(t, in1, types.Int.Nullable()),
		resolve(t, "IFNULL", cast(t, in2, types.BigInt.Nullable()), seq),
	}, []string{"a", "id"})
	ins := &InsertReturning{In: norm, Table: tbl, Type: rowtype.ForTable(tbl)}
	return NewProject(ins, []Expr{NewField(1, types.BigInt.NotNull())}, []string{"id"})
}

func TestExplain(t *testing.T) {
	require.Equal(t, `project (@2)
  insert-returning test.t
    project (CAST(@1 AS INT), IFNULL(CAST(@2 AS BIGINT), NEXTVAL('test', 's')))
      values ($1, $2)
`, Explain(testPlan(t)))
}

func TestRunInsert(t *testing.T) {
	ctx := context.Background()
	seqs := &countingSequences{}
	ec := &EvalContext{Sequences: seqs, StmtTime: time.Unix(0, 0)}
	p := testPlan(t)

	res, err := RunInsert(ctx, ec, p, tree.Datums{tree.NewDString("5"), tree.DNull})
	require.NoError(t, err)
	require.Len(t, res.Inserted, 1)
	require.Equal(t, "(5, 1)", res.Inserted[0].String())
	require.Equal(t, "(1)", res.Returned[0].String())

	// An explicit value wins over the sequence, which is not advanced.
	res, err = RunInsert(ctx, ec, p, tree.Datums{tree.DNull, tree.NewDString("42")})
	require.NoError(t, err)
	require.Equal(t, "(NULL, 42)", res.Inserted[0].String())
	require.Equal(t, 1, seqs.calls)

	_, err = RunInsert(ctx, ec, p, tree.Datums{tree.NewDString("x"), tree.DNull})
	require.Equal(t, pgcode.InvalidTextRepresentation, pgerror.GetPGCode(err))

	_, err = RunInsert(ctx, ec, p, tree.Datums{tree.DNull})
	require.Equal(t, pgcode.ProtocolViolation, pgerror.GetPGCode(err))
}

func TestRunInsertNotNull(t *testing.T) {
	tbl := testTable()
	scan := &ValuesScan{Rows: [][]Expr{{}}, Type: rowtype.NewValuesRowType()}
	norm := NewProject(scan, []Expr{NewNull(types.Int.Nullable()), NewNull(types.BigInt.NotNull())}, nil)
	ins := &InsertReturning{In: norm, Table: tbl, Type: rowtype.ForTable(tbl)}

	_, err := RunInsert(context.Background(), &EvalContext{}, ins, nil)
	require.Equal(t, pgcode.NotNullViolation, pgerror.GetPGCode(err))
	require.EqualError(t, err, `null value in column "id" violates not-null constraint`)
}

func TestSessionFunctions(t *testing.T) {
	ctx := context.Background()
	ec := &EvalContext{SessionUser: "alice", CurrentSchema: "test"}
	d, err := resolve(t, "CURRENT_USER").Eval(ctx, ec, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "alice", d.Text())

	_, err = resolve(t, "NEXTVAL",
		NewLiteral(tree.NewDString("test"), types.Varchar.Instance(4, 0, false)),
		NewLiteral(tree.NewDString("s"), types.Varchar.Instance(1, 0, false)),
	).Eval(ctx, ec, nil, nil)
	require.Error(t, err)
}

func TestRowTypes(t *testing.T) {
	p := testPlan(t).(*Project)
	require.Equal(t, "(id BIGINT NOT NULL)", rowtype.String(p.RowType()))
	norm := p.Input().Input()
	require.Equal(t, "(a INT, id BIGINT NOT NULL)", rowtype.String(norm.RowType()))
	require.True(t, rowtype.Equal(norm.RowType(), p.Input().RowType()))
}
