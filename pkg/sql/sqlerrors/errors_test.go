// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package sqlerrors_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAndMessages(t *testing.T) {
	p := tree.MakeTableName("test", "p")
	c := tree.MakeTableName("test", "c")
	testCases := []struct {
		err  error
		code pgcode.Code
		msg  string
	}{
		{sqlerrors.NewRelationAlreadyExistsError(p), pgcode.DuplicateRelation,
			"relation test.p already exists"},
		{sqlerrors.NewUndefinedRelationError(p), pgcode.UndefinedTable,
			"relation test.p does not exist"},
		{sqlerrors.NewUndefinedColumnError(p, "x"), pgcode.UndefinedColumn,
			`column "x" of relation test.p does not exist`},
		{sqlerrors.NewJoinToUnknownTableError(c, p), pgcode.UndefinedTable,
			"table test.c has a grouping foreign key to undefined table test.p"},
		{sqlerrors.NewJoinToSelfError(c), pgcode.InvalidForeignKey,
			"table test.c cannot have a grouping foreign key to itself"},
		{sqlerrors.NewJoinColumnMismatchError(2, c, p, 1), pgcode.InvalidForeignKey,
			"grouping foreign key from test.c to test.p has 2 columns, but the parent primary key has 1"},
		{sqlerrors.NewJoinToWrongColumnsError(c, "pid", p, "nope"), pgcode.InvalidForeignKey,
			`grouping foreign key column test.c."pid" references undefined column test.p."nope"`},
		{sqlerrors.NewNoCastError("BOOLEAN", "DATE"), pgcode.CannotCoerce,
			"no cast from BOOLEAN to DATE"},
		{sqlerrors.NewUndefinedFunctionError("NEXTVAL", []string{"INT"}), pgcode.UndefinedFunction,
			"unknown signature: NEXTVAL(INT)"},
		{sqlerrors.NewUnsupportedCheckConstraintError(), pgcode.FeatureNotSupported,
			"CHECK constraints are not supported"},
		{sqlerrors.NewUnsupportedCreateSelectError(), pgcode.FeatureNotSupported,
			"CREATE TABLE ... AS is not supported"},
		{sqlerrors.NewDropGroupNotRootError(c), pgcode.WrongObjectType,
			"table test.c is not the root of its group"},
	}
	for _, tc := range testCases {
		t.Run(tc.msg, func(t *testing.T) {
			require.Equal(t, tc.code, pgerror.GetPGCode(tc.err))
			require.Equal(t, tc.msg, tc.err.Error())
		})
	}
}

func TestPredicates(t *testing.T) {
	p := tree.MakeTableName("test", "p")
	require.True(t, sqlerrors.IsUndefinedRelationError(sqlerrors.NewUndefinedRelationError(p)))
	require.False(t, sqlerrors.IsUndefinedRelationError(sqlerrors.NewUndefinedColumnError(p, "a")))
	require.True(t, sqlerrors.IsUndefinedColumnError(
		errors.Wrap(sqlerrors.NewUndefinedColumnError(p, "a"), "resolving")))
}

func TestNamesAreRedactable(t *testing.T) {
	err := sqlerrors.NewUndefinedRelationError(tree.MakeTableName("secret", "accounts"))
	redacted := redact.Sprint(err).Redact()
	require.NotContains(t, string(redacted), "secret")
	require.NotContains(t, string(redacted), "accounts")
	require.Contains(t, string(redacted), "does not exist")
}
