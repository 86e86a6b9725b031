// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package plan

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
)

// SequenceService hands out sequence values.
type SequenceService interface {
	NextVal(ctx context.Context, schema, name string) (int64, error)
}

// EvalContext is the session state expressions are evaluated in.
type EvalContext struct {
	Sequences     SequenceService
	SessionUser   string
	CurrentSchema string
	StmtTime      time.Time
}

var _ overload.Env = (*EvalContext)(nil)

// NextVal implements overload.Env.
func (ec *EvalContext) NextVal(ctx context.Context, schema, sequence string) (int64, error) {
	if ec.Sequences == nil {
		return 0, errors.AssertionFailedf("no sequence service to evaluate nextval(%s.%s)",
			schema, sequence)
	}
	return ec.Sequences.NextVal(ctx, schema, sequence)
}

// User implements overload.Env.
func (ec *EvalContext) User() string { return ec.SessionUser }

// Schema implements overload.Env.
func (ec *EvalContext) Schema() string { return ec.CurrentSchema }

// StmtTimestamp implements overload.Env.
func (ec *EvalContext) StmtTimestamp() time.Time { return ec.StmtTime }

// InsertResult holds the rows an insert wrote and the rows it returned.
type InsertResult struct {
	Inserted []tree.Datums
	Returned []tree.Datums
}

// RunInsert evaluates an insert plan over one set of bound parameters.
// Nothing is stored; the written rows are reported in the result.
func RunInsert(
	ctx context.Context, ec *EvalContext, root Operator, params tree.Datums,
) (InsertResult, error) {
	var res InsertResult
	var scan *ValuesScan
	var insert *InsertReturning
	for op := root; op != nil; op = op.Input() {
		switch t := op.(type) {
		case *ValuesScan:
			scan = t
		case *InsertReturning:
			insert = t
		}
	}
	if scan == nil || insert == nil {
		return res, errors.AssertionFailedf("not an insert plan")
	}
	if n := scan.NumParams(); n != len(params) {
		return res, pgerror.Newf(pgcode.ProtocolViolation,
			"expected %d parameters, got %d", n, len(params))
	}
	rows, err := run(ctx, ec, root, params, &res)
	if err != nil {
		return InsertResult{}, err
	}
	res.Returned = rows
	return res, nil
}

func run(
	ctx context.Context, ec *EvalContext, op Operator, params tree.Datums, res *InsertResult,
) ([]tree.Datums, error) {
	switch t := op.(type) {
	case *ValuesScan:
		out := make([]tree.Datums, len(t.Rows))
		for i, row := range t.Rows {
			r, err := evalRow(ctx, ec, row, nil, params)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil

	case *Project:
		in, err := run(ctx, ec, t.In, params, res)
		if err != nil {
			return nil, err
		}
		out := make([]tree.Datums, len(in))
		for i, row := range in {
			r, err := evalRow(ctx, ec, t.Exprs, row, params)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil

	case *InsertReturning:
		in, err := run(ctx, ec, t.In, params, res)
		if err != nil {
			return nil, err
		}
		for _, row := range in {
			if err := checkRow(t, row); err != nil {
				return nil, err
			}
			res.Inserted = append(res.Inserted, row)
		}
		return in, nil

	default:
		return nil, errors.AssertionFailedf("unknown operator %T", op)
	}
}

func evalRow(
	ctx context.Context, ec *EvalContext, exprs []Expr, row, params tree.Datums,
) (tree.Datums, error) {
	out := make(tree.Datums, len(exprs))
	for i, e := range exprs {
		d, err := e.Eval(ctx, ec, row, params)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func checkRow(ins *InsertReturning, row tree.Datums) error {
	if len(row) != len(ins.Table.Columns) {
		return errors.AssertionFailedf("inserting %d values into %d columns of %s",
			len(row), len(ins.Table.Columns), ins.Table.Name)
	}
	for i, c := range ins.Table.Columns {
		if row[i] == tree.DNull && !c.Nullable() {
			return pgerror.Newf(pgcode.NotNullViolation,
				"null value in column %q violates not-null constraint", c.Name)
		}
	}
	return nil
}
