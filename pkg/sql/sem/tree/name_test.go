// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestTableName(t *testing.T) {
	tn := MakeUnqualifiedTableName("orders")
	require.False(t, tn.HasExplicitSchema())
	require.Equal(t, "orders", tn.String())

	q := tn.Qualify("shop")
	require.True(t, q.HasExplicitSchema())
	require.Equal(t, "shop.orders", q.String())
	require.Equal(t, "shop", q.Schema())
	require.Equal(t, "orders", q.Object())
	require.Equal(t, q, q.Qualify("other"))

	require.Equal(t, redact.RedactableString("‹shop›.‹orders›"), redact.Sprint(q))
	require.Equal(t, "‹×›.‹×›", string(redact.Sprint(q).Redact()))
}

func TestTableNameLess(t *testing.T) {
	a := MakeTableName("a", "z")
	b := MakeTableName("b", "a")
	c := MakeTableName("b", "b")
	require.True(t, a.Less(b))
	require.True(t, b.Less(c))
	require.False(t, c.Less(b))
	require.False(t, c.Less(c))
}
