// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package insertgen compiles INSERT statements into operator trees. A
// compiled insert reads one row of text parameters, normalizes it into
// the target table's row type and writes it, returning the primary key.
package insertgen

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/catalog"
	"github.com/cockroachdb/groupsql/pkg/sql/plan"
	"github.com/cockroachdb/groupsql/pkg/sql/rowtype"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/sql/sqltelemetry"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
	"github.com/cockroachdb/groupsql/pkg/util/log"
	"github.com/cockroachdb/logtags"
)

// DefaultIntakeWidth is the length of the text parameters a compiled
// insert accepts.
const DefaultIntakeWidth = 65535

// Options configures a Generator.
type Options struct {
	// LenientDefaults keeps a textual default that cannot be cast to its
	// column's type as raw text instead of failing the compile.
	LenientDefaults bool
	// IntakeWidth is the maximum length of a parameter. Zero means
	// DefaultIntakeWidth.
	IntakeWidth int64
}

// Generator compiles inserts against the casts and functions of a
// resolver.
type Generator struct {
	resolver overload.Resolver
	opts     Options
}

// NewGenerator returns a generator that resolves casts and functions
// with r.
func NewGenerator(r overload.Resolver, opts Options) *Generator {
	if opts.IntakeWidth <= 0 {
		opts.IntakeWidth = DefaultIntakeWidth
	}
	return &Generator{resolver: r, opts: opts}
}

// CompileInsert builds the plan of an insert into t:
//
//	project (primary key fields)     only with a declared primary key
//	  insert-returning t
//	    project (normalized columns)
//	      values ($1, ..., $n)       one parameter per declared column
//
// Compiling has no side effects, so the same table compiles to the same
// plan.
func (g *Generator) CompileInsert(ctx context.Context, t *catalog.Table) (plan.Operator, error) {
	ctx = logtags.AddTag(ctx, "insert", t.Name)
	scan := g.intake(t)
	norm, err := g.normalize(ctx, t, scan)
	if err != nil {
		return nil, err
	}
	target := rowtype.ForTable(t)
	if !rowtype.Equal(norm.Type, target) {
		return nil, errors.AssertionFailedf("normalized row %s does not match %s",
			rowtype.String(norm.Type), rowtype.String(target))
	}
	var root plan.Operator = &plan.InsertReturning{In: norm, Table: t, Type: target}
	if pk := t.PrimaryKey(); pk != nil {
		exprs := make([]plan.Expr, len(pk.Columns))
		names := make([]string, len(pk.Columns))
		for i, ic := range pk.Columns {
			col, ok := t.Column(ic.Column)
			if !ok {
				return nil, errors.AssertionFailedf("primary key column %q of %s does not exist",
					ic.Column, t.Name)
			}
			exprs[i] = plan.NewField(col.Position, col.Type)
			names[i] = col.Name
		}
		root = plan.NewProject(root, exprs, names)
	}
	sqltelemetry.Inc(sqltelemetry.InsertPlanCounter)
	return root, nil
}

// intake reads one row with a nullable text parameter per declared
// column.
func (g *Generator) intake(t *catalog.Table) *plan.ValuesScan {
	typ := types.Varchar.Instance(g.opts.IntakeWidth, 0, true)
	declared := t.DeclaredColumns()
	row := make([]plan.Expr, len(declared))
	fields := make([]rowtype.Field, len(declared))
	for i, c := range declared {
		row[i] = plan.NewParameter(i, typ)
		fields[i] = rowtype.Field{Name: c.Name, Type: typ}
	}
	return &plan.ValuesScan{Rows: [][]plan.Expr{row}, Type: rowtype.NewValuesRowType(fields...)}
}

// normalize projects the intake row onto the full row of t.
func (g *Generator) normalize(
	ctx context.Context, t *catalog.Table, in *plan.ValuesScan,
) (*plan.Project, error) {
	inType := in.RowType()
	exprs := make([]plan.Expr, len(t.Columns))
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
		var cur plan.Expr
		supplied := i < inType.NFields()
		if supplied {
			var err error
			if cur, err = g.cast(plan.NewField(i, inType.TypeAt(i)), c.Type); err != nil {
				return nil, err
			}
		} else {
			cur = plan.NewNull(c.Type)
		}

		var err error
		switch {
		case c.Identity != nil:
			cur, err = g.identity(c, cur, supplied)
		case c.DefaultValue != nil:
			cur, err = g.defaultValue(ctx, t, c, cur)
		case c.DefaultFunction != "":
			cur, err = g.defaultFunction(c, cur)
		}
		if err != nil {
			return nil, err
		}
		log.VEventf(ctx, 3, "column %s: %s", c.Name, cur)
		exprs[i] = cur
	}
	return plan.NewProject(in, exprs, names), nil
}

// cast converts e to typ, or returns e if it already has that type.
func (g *Generator) cast(e plan.Expr, typ *types.T) (plan.Expr, error) {
	from := e.ResolvedType()
	if from.Equal(typ) {
		return e, nil
	}
	c, ok := g.resolver.ResolveCast(from.Class(), typ.Class())
	if !ok {
		return nil, sqlerrors.NewNoCastError(from.SQLString(), typ.SQLString())
	}
	return plan.NewCast(e, c, typ), nil
}

// ifNull resolves IFNULL(cur, fallback).
func (g *Generator) ifNull(cur, fallback plan.Expr) (plan.Expr, error) {
	return g.call("IFNULL", cur, fallback)
}

func (g *Generator) call(name string, args ...plan.Expr) (plan.Expr, error) {
	pre := make([]overload.PreptimeValue, len(args))
	argTypes := make([]string, len(args))
	for i, a := range args {
		pre[i].Type = a.ResolvedType()
		if l, ok := a.(*plan.Literal); ok {
			pre[i].Value = l.Value
		}
		argTypes[i] = a.ResolvedType().SQLString()
	}
	res, ok := g.resolver.ResolveOverload(name, pre)
	if !ok {
		return nil, sqlerrors.NewUndefinedFunctionError(name, argTypes)
	}
	return plan.NewFunc(res, args...), nil
}

// identity draws the column from its sequence. A BY DEFAULT column keeps
// a supplied non-NULL value.
func (g *Generator) identity(c *catalog.Column, cur plan.Expr, supplied bool) (plan.Expr, error) {
	seq := c.Identity.Sequence
	next, err := g.call("NEXTVAL", textLiteral(seq.Schema()), textLiteral(seq.Object()))
	if err != nil {
		return nil, err
	}
	// NEXTVAL never yields NULL; only a class or parameter mismatch needs a
	// cast.
	if f, ok := next.(*plan.Func); ok {
		f.Typ = f.Typ.WithNullable(c.Type.Nullable())
	}
	if next, err = g.cast(next, c.Type); err != nil {
		return nil, err
	}
	if c.Identity.Mode == tree.GeneratedByDefault && supplied {
		return g.ifNull(cur, next)
	}
	return next, nil
}

// defaultValue evaluates the textual default of c at compile time and
// substitutes it for NULL.
func (g *Generator) defaultValue(
	ctx context.Context, t *catalog.Table, c *catalog.Column, cur plan.Expr,
) (plan.Expr, error) {
	text := *c.DefaultValue
	raw := tree.NewDString(text)
	var v tree.Datum
	if cast, ok := g.resolver.ResolveCast(types.Varchar, c.Type.Class()); ok {
		var err error
		if v, err = cast.Eval(raw, c.Type); err != nil {
			return nil, errors.WithSecondaryError(
				sqlerrors.NewBadColumnDefaultError(t.Name, c.Name, raw.String()), err)
		}
	} else if g.opts.LenientDefaults {
		log.Warningf(ctx, "default %s of column %s is not converted to %s",
			raw, c.Name, c.Type.SQLString())
		sqltelemetry.Inc(sqltelemetry.LenientDefaultCounter)
		v = raw
	} else {
		return nil, sqlerrors.NewDefaultNotCastableError(t.Name, c.Name, c.Type.SQLString())
	}
	return g.ifNull(cur, plan.NewLiteral(v, c.Type))
}

// defaultFunction substitutes a call of the column's default function for
// NULL.
func (g *Generator) defaultFunction(c *catalog.Column, cur plan.Expr) (plan.Expr, error) {
	fn, err := g.call(c.DefaultFunction)
	if err != nil {
		return nil, err
	}
	if fn, err = g.cast(fn, c.Type); err != nil {
		return nil, err
	}
	return g.ifNull(cur, fn)
}

func textLiteral(s string) *plan.Literal {
	return plan.NewLiteral(tree.NewDString(s), types.Varchar.Instance(int64(len(s)), 0, false))
}
