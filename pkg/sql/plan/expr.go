// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package plan

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// Expr is a prepared expression. Every expression carries the type it was
// resolved to while the plan was built; evaluation never changes it.
type Expr interface {
	// ResolvedType returns the type of the values the expression produces.
	ResolvedType() *types.T
	// Eval computes the expression over one input row. Parameters are
	// the statement's bound parameters.
	Eval(ctx context.Context, ec *EvalContext, row, params tree.Datums) (tree.Datum, error)
	String() string
}

// Field references a field of the input row.
type Field struct {
	// Index counts from zero.
	Index int
	Typ   *types.T
}

var _ Expr = (*Field)(nil)

// NewField returns a reference to field i of the input row.
func NewField(i int, typ *types.T) *Field { return &Field{Index: i, Typ: typ} }

// ResolvedType implements Expr.
func (f *Field) ResolvedType() *types.T { return f.Typ }

// Eval implements Expr.
func (f *Field) Eval(_ context.Context, _ *EvalContext, row, _ tree.Datums) (tree.Datum, error) {
	if f.Index >= len(row) {
		return nil, errors.AssertionFailedf("field @%d out of range of a row of %d fields",
			f.Index+1, len(row))
	}
	return row[f.Index], nil
}

func (f *Field) String() string { return "@" + strconv.Itoa(f.Index+1) }

// Parameter references a bound statement parameter.
type Parameter struct {
	// Index counts from zero.
	Index int
	Typ   *types.T
}

var _ Expr = (*Parameter)(nil)

// NewParameter returns a reference to parameter i.
func NewParameter(i int, typ *types.T) *Parameter { return &Parameter{Index: i, Typ: typ} }

// ResolvedType implements Expr.
func (p *Parameter) ResolvedType() *types.T { return p.Typ }

// Eval implements Expr.
func (p *Parameter) Eval(_ context.Context, _ *EvalContext, _, params tree.Datums) (tree.Datum, error) {
	if p.Index >= len(params) {
		return nil, errors.AssertionFailedf("parameter $%d out of range of %d parameters",
			p.Index+1, len(params))
	}
	return params[p.Index], nil
}

func (p *Parameter) String() string { return "$" + strconv.Itoa(p.Index+1) }

// Literal is a constant.
type Literal struct {
	Value tree.Datum
	Typ   *types.T
}

var _ Expr = (*Literal)(nil)

// NewLiteral returns a constant of the given type.
func NewLiteral(v tree.Datum, typ *types.T) *Literal { return &Literal{Value: v, Typ: typ} }

// NewNull returns a NULL of the given type.
func NewNull(typ *types.T) *Literal { return NewLiteral(tree.DNull, typ) }

// ResolvedType implements Expr.
func (l *Literal) ResolvedType() *types.T { return l.Typ }

// Eval implements Expr.
func (l *Literal) Eval(context.Context, *EvalContext, tree.Datums, tree.Datums) (tree.Datum, error) {
	return l.Value, nil
}

func (l *Literal) String() string { return l.Value.String() }

// Cast converts its input with a resolved cast.
type Cast struct {
	Input Expr
	Cast  *overload.Cast
	Typ   *types.T
}

var _ Expr = (*Cast)(nil)

// NewCast returns input converted to typ by c.
func NewCast(input Expr, c *overload.Cast, typ *types.T) *Cast {
	return &Cast{Input: input, Cast: c, Typ: typ}
}

// ResolvedType implements Expr.
func (c *Cast) ResolvedType() *types.T { return c.Typ }

// Eval implements Expr.
func (c *Cast) Eval(ctx context.Context, ec *EvalContext, row, params tree.Datums) (tree.Datum, error) {
	d, err := c.Input.Eval(ctx, ec, row, params)
	if err != nil {
		return nil, err
	}
	return c.Cast.Eval(d, c.Typ)
}

func (c *Cast) String() string {
	return "CAST(" + c.Input.String() + " AS " + c.Typ.SQLString() + ")"
}

// Func invokes a resolved overload.
type Func struct {
	Overload *overload.Overload
	Args     []Expr
	Typ      *types.T
}

var _ Expr = (*Func)(nil)

// NewFunc returns an invocation of a resolved overload.
func NewFunc(res overload.Result, args ...Expr) *Func {
	return &Func{Overload: res.Overload, Args: args, Typ: res.Type}
}

// ResolvedType implements Expr.
func (f *Func) ResolvedType() *types.T { return f.Typ }

// Eval implements Expr.
func (f *Func) Eval(ctx context.Context, ec *EvalContext, row, params tree.Datums) (tree.Datum, error) {
	if f.Overload.Coalesce {
		for _, a := range f.Args {
			d, err := a.Eval(ctx, ec, row, params)
			if err != nil {
				return nil, err
			}
			if d != tree.DNull {
				return d, nil
			}
		}
		return tree.DNull, nil
	}
	args := make(tree.Datums, len(f.Args))
	for i, a := range f.Args {
		d, err := a.Eval(ctx, ec, row, params)
		if err != nil {
			return nil, err
		}
		args[i] = d
	}
	return f.Overload.Fn(ctx, ec, args)
}

func (f *Func) String() string {
	var b strings.Builder
	b.WriteString(f.Overload.Name)
	b.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Walk calls fn for e and every expression below it, parents first.
func Walk(e Expr, fn func(Expr)) {
	fn(e)
	switch t := e.(type) {
	case *Cast:
		Walk(t.Input, fn)
	case *Func:
		for _, a := range t.Args {
			Walk(a, fn)
		}
	}
}
