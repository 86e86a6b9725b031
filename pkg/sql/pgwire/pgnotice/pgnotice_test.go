// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgnotice_test

import (
	"testing"

	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgnotice"
	"github.com/stretchr/testify/require"
)

func TestNotices(t *testing.T) {
	n := pgnotice.Newf("table %s skipped", "t")
	require.Equal(t, "table t skipped", n.Error())
	require.Equal(t, "NOTICE", pgerror.GetSeverity(n))
	require.Equal(t, pgcode.SuccessfulCompletion, pgerror.GetPGCode(n))

	n = pgnotice.NewWithSeverityf("DEBUG1", "hello")
	require.Equal(t, "DEBUG1", pgerror.GetSeverity(n))

	w := pgnotice.FromError(pgerror.New(pgcode.DuplicateRelation, "relation exists"))
	require.Equal(t, "WARNING", pgerror.GetSeverity(w))
	require.Equal(t, pgcode.DuplicateRelation, pgerror.GetPGCode(w))
}
