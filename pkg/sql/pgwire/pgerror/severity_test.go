// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	skipping := errors.New("relation s.t already exists, skipping")
	for _, tc := range []struct {
		name string
		err  error
		want string
	}{
		{"plain", errors.New("boom"), DefaultSeverity},
		{"coded", Newf(pgcode.UndefinedTable, "relation %s does not exist", "s.t"), DefaultSeverity},
		{"notice", WithSeverity(skipping, "NOTICE"), "NOTICE"},
		{"outermost", WithSeverity(WithSeverity(skipping, "WARNING"), "NOTICE"), "NOTICE"},
		{"wrapped", errors.Wrap(WithSeverity(skipping, "NOTICE"), "create table"), "NOTICE"},
		{"under code", WithCandidateCode(WithSeverity(skipping, "NOTICE"), pgcode.Warning), "NOTICE"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, GetSeverity(tc.err))
		})
	}
	require.Nil(t, WithSeverity(nil, "NOTICE"))
}

func TestFullErrorSeverity(t *testing.T) {
	err := WithSeverity(New(pgcode.Warning, "lenient default"), "WARNING")
	require.Equal(t, "WARNING: lenient default (SQLSTATE 01000)", FullError(err))
}
