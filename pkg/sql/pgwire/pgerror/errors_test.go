// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror_test

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestPGError(t *testing.T) {
	const msg = "err"
	const code = "abc"

	checkErr := func(pErr *pgerror.Error, errMsg string) {
		require.Equal(t, code, pErr.Code)
		require.Equal(t, errMsg, pErr.Message)
		require.Equal(t, "ERROR", pErr.Severity)
	}

	// Test NewError.
	pErr := pgerror.Flatten(pgerror.New(pgcode.MakeCode(code), msg))
	checkErr(pErr, msg)

	pErr = pgerror.Flatten(pgerror.New(pgcode.MakeCode(code), "bad%format"))
	checkErr(pErr, "bad%format")

	// Test NewErrorf.
	const prefix = "prefix"
	pErr = pgerror.Flatten(pgerror.Newf(pgcode.MakeCode(code), "%s: %s", prefix, msg))
	expected := fmt.Sprintf("%s: %s", prefix, msg)
	checkErr(pErr, expected)
}

func TestWrap(t *testing.T) {
	inner := pgerror.New(pgcode.UndefinedTable, "relation does not exist")
	wrapped := pgerror.Wrap(inner, pgcode.FeatureNotSupported, "while joining")
	require.Equal(t, pgcode.UndefinedTable, pgerror.GetPGCode(wrapped))
	require.Equal(t, "while joining: relation does not exist", wrapped.Error())

	plain := pgerror.Wrapf(errors.New("boom"), pgcode.CannotCoerce, "cast %d", 1)
	require.Equal(t, pgcode.CannotCoerce, pgerror.GetPGCode(plain))

	onlyCode := pgerror.Wrap(errors.New("boom"), pgcode.Syntax, "")
	require.Equal(t, "boom", onlyCode.Error())
	require.True(t, pgerror.HasCandidateCode(onlyCode))
	require.False(t, pgerror.HasCandidateCode(errors.New("boom")))
}

func TestGetPGCodeDefaults(t *testing.T) {
	require.Equal(t, pgcode.SuccessfulCompletion, pgerror.GetPGCode(nil))
	require.Equal(t, pgcode.Uncategorized, pgerror.GetPGCode(errors.New("plain")))
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(errors.AssertionFailedf("broken")))
	require.True(t, pgerror.HasCode(pgerror.New(pgcode.Syntax, "x"), pgcode.Syntax))
}

func TestFlattenInternal(t *testing.T) {
	pErr := pgerror.Flatten(errors.AssertionFailedf("column %d not assigned", 3))
	require.Equal(t, pgcode.Internal.String(), pErr.Code)
	require.Equal(t, pgerror.InternalErrorPrefix+"column 3 not assigned", pErr.Message)
	require.Nil(t, pgerror.Flatten(nil))
}

func TestFullError(t *testing.T) {
	err := pgerror.New(pgcode.InvalidForeignKey, "bad join")
	err = errors.WithHint(err, "check the parent primary key")
	require.Equal(t,
		"ERROR: bad join (SQLSTATE 42830)\nHINT: check the parent primary key",
		pgerror.FullError(err))

	pqErr := &pq.Error{Message: "remote", Hint: "retry"}
	require.Equal(t, "pq: remote\nHINT: retry", pgerror.FullError(errors.Wrap(pqErr, "outer")))
	require.Equal(t, "", pgerror.FullError(nil))
}
