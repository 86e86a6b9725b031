// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package overload defines how casts and functions are resolved at
// compile time and evaluated at run time. Resolution happens once, while a
// plan is built; the resolved Cast or Overload is stored in the plan and
// evaluated for every row.
package overload

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// PreptimeValue describes an argument as it is known while a plan is
// built: its type and, for literals, its value.
type PreptimeValue struct {
	Type *types.T
	// Value is nil unless the argument is a constant.
	Value tree.Datum
}

// ArgType is a named parameter of an overload. A nil Class accepts an
// argument of any class.
type ArgType struct {
	Name  string
	Class *types.Class
}

// ArgTypes is the parameter list of an overload.
type ArgTypes []ArgType

// Match returns whether the arguments fit the parameter list.
func (a ArgTypes) Match(args []PreptimeValue) bool {
	if len(a) != len(args) {
		return false
	}
	for i := range a {
		if a[i].Class != nil && (args[i].Type == nil || a[i].Class != args[i].Type.Class()) {
			return false
		}
	}
	return true
}

// String formats the parameter classes, e.g. "VARCHAR, VARCHAR".
func (a ArgTypes) String() string {
	names := make([]string, len(a))
	for i, t := range a {
		if t.Class == nil {
			names[i] = "anyelement"
		} else {
			names[i] = t.Class.Name()
		}
	}
	return strings.Join(names, ", ")
}

// ReturnTyper returns the result type of an overload for the given
// arguments. A nil result means that the overload does not apply to them.
type ReturnTyper func(args []PreptimeValue) *types.T

// FixedReturnType functions simply return a fixed type, independent of
// argument types.
func FixedReturnType(typ *types.T) ReturnTyper {
	return func([]PreptimeValue) *types.T { return typ }
}

// Env is what function evaluation may depend on.
type Env interface {
	// NextVal returns the next value of a sequence. Values returned for one
	// sequence are distinct across all callers.
	NextVal(ctx context.Context, schema, sequence string) (int64, error)
	// User is the session user.
	User() string
	// Schema is the session's current schema.
	Schema() string
	// StmtTimestamp is the time the statement started.
	StmtTimestamp() time.Time
}

// Fn evaluates an overload over its arguments.
type Fn func(ctx context.Context, env Env, args tree.Datums) (tree.Datum, error)

// Overload is one signature of a function.
type Overload struct {
	Name       string
	Types      ArgTypes
	ReturnType ReturnTyper
	Fn         Fn
	// Coalesce marks functions whose result is their first non-NULL
	// argument. Evaluation stops at that argument, so later arguments are
	// only computed when every earlier one is NULL.
	Coalesce bool
	Info     string
}

// Signature returns the name and parameter classes of the overload.
func (o *Overload) Signature() string {
	return o.Name + "(" + o.Types.String() + ")"
}

// Result is a resolved overload together with the type it returns for
// the arguments it was resolved with.
type Result struct {
	Overload *Overload
	Type     *types.T
}

// CastFn converts a non-NULL datum into the target type instance.
type CastFn func(d tree.Datum, target *types.T) (tree.Datum, error)

// Cast is a conversion between two type classes.
type Cast struct {
	Source *types.Class
	Target *types.Class
	Fn     CastFn
}

// Eval converts d into target. NULL converts to NULL.
func (c *Cast) Eval(d tree.Datum, target *types.T) (tree.Datum, error) {
	if d == tree.DNull {
		return tree.DNull, nil
	}
	return c.Fn(d, target)
}

// Resolver resolves casts and function overloads.
type Resolver interface {
	// ResolveCast returns the cast from source to target, if one exists.
	ResolveCast(source, target *types.Class) (*Cast, bool)
	// ResolveOverload picks the overload of the named function that
	// accepts args. Names are case-insensitive.
	ResolveOverload(name string, args []PreptimeValue) (Result, bool)
}
