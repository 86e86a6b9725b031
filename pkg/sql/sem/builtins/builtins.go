// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"context"

	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// NameLength is the length of the VARCHAR returned by functions that
// produce identifiers.
const NameLength = 128

var nameType = types.Varchar.Instance(NameLength, 0, false)

func makeBuiltin(name string, overloads ...overload.Overload) []*overload.Overload {
	out := make([]*overload.Overload, len(overloads))
	for i := range overloads {
		o := overloads[i]
		o.Name = name
		out[i] = &o
	}
	return out
}

// defaultBuiltins is copied into every Registry.
var defaultBuiltins = map[string][]*overload.Overload{
	"NEXTVAL": makeBuiltin("NEXTVAL",
		overload.Overload{
			Types:      overload.ArgTypes{{Name: "schema_name", Class: types.Varchar}, {Name: "sequence_name", Class: types.Varchar}},
			ReturnType: overload.FixedReturnType(types.BigInt.NotNull()),
			Fn: func(ctx context.Context, env overload.Env, args tree.Datums) (tree.Datum, error) {
				v, err := env.NextVal(ctx, args[0].Text(), args[1].Text())
				if err != nil {
					return nil, err
				}
				return tree.NewDInt(tree.DInt(v)), nil
			},
			Info: "Advances the given sequence and returns its new value.",
		},
	),

	"IFNULL": makeBuiltin("IFNULL",
		overload.Overload{
			Types:      overload.ArgTypes{{Name: "val", Class: nil}, {Name: "default", Class: nil}},
			ReturnType: ifNullReturnType,
			Fn: func(_ context.Context, _ overload.Env, args tree.Datums) (tree.Datum, error) {
				if args[0] != tree.DNull {
					return args[0], nil
				}
				return args[1], nil
			},
			Coalesce: true,
			Info:     "Returns `val` unless it is NULL, in which case `default` is returned.",
		},
	),

	"CURRENT_USER": makeBuiltin("CURRENT_USER", sessionString(
		func(env overload.Env) string { return env.User() }, "Returns the current user.")),
	"SESSION_USER": makeBuiltin("SESSION_USER", sessionString(
		func(env overload.Env) string { return env.User() }, "Returns the session user.")),
	"CURRENT_SCHEMA": makeBuiltin("CURRENT_SCHEMA", sessionString(
		func(env overload.Env) string { return env.Schema() }, "Returns the current schema.")),

	"CURRENT_DATE": makeBuiltin("CURRENT_DATE",
		overload.Overload{
			ReturnType: overload.FixedReturnType(types.Date.NotNull()),
			Fn: func(_ context.Context, env overload.Env, _ tree.Datums) (tree.Datum, error) {
				return tree.MakeDDate(env.StmtTimestamp()), nil
			},
			Info: "Returns the date of the current statement.",
		},
	),
	"CURRENT_TIME": makeBuiltin("CURRENT_TIME",
		overload.Overload{
			ReturnType: overload.FixedReturnType(types.Time.NotNull()),
			Fn: func(_ context.Context, env overload.Env, _ tree.Datums) (tree.Datum, error) {
				return tree.MakeDTime(env.StmtTimestamp()), nil
			},
			Info: "Returns the time of day of the current statement.",
		},
	),
	"CURRENT_TIMESTAMP": makeBuiltin("CURRENT_TIMESTAMP", nowOverload),
	"NOW":               makeBuiltin("NOW", nowOverload),
}

var nowOverload = overload.Overload{
	ReturnType: overload.FixedReturnType(types.Datetime.NotNull()),
	Fn: func(_ context.Context, env overload.Env, _ tree.Datums) (tree.Datum, error) {
		return tree.MakeDTimestamp(env.StmtTimestamp()), nil
	},
	Info: "Returns the time the current statement started.",
}

func sessionString(get func(overload.Env) string, info string) overload.Overload {
	return overload.Overload{
		ReturnType: overload.FixedReturnType(nameType),
		Fn: func(_ context.Context, env overload.Env, _ tree.Datums) (tree.Datum, error) {
			return tree.NewDString(get(env)), nil
		},
		Info: info,
	}
}

// ifNullReturnType requires both arguments to share a class. The result
// has the first argument's type and admits NULL only when both arguments
// do.
func ifNullReturnType(args []overload.PreptimeValue) *types.T {
	a, b := args[0].Type, args[1].Type
	if a == nil || b == nil || a.Class() != b.Class() {
		return nil
	}
	return a.WithNullable(a.Nullable() && b.Nullable())
}
