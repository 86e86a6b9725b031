// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"math"
	"testing"

	"github.com/lib/pq/oid"
	"github.com/stretchr/testify/require"
)

func TestInstanceString(t *testing.T) {
	testCases := []struct {
		typ      *T
		expected string
	}{
		{BigInt.NotNull(), "BIGINT NOT NULL"},
		{Varchar.Instance(10, 0, true), "VARCHAR(10)"},
		{Varchar.Instance(10, 7, true), "VARCHAR(10)"},
		{Decimal.Instance(10, 2, false), "DECIMAL(10,2) NOT NULL"},
		{UDecimal.Instance(5, 1, true), "DECIMAL(5,1) UNSIGNED"},
		{UInt.Instance(3, 3, true), "INT UNSIGNED"},
		{Char.Instance(4, 0, true).WithCharset("utf8", "utf8_bin"), "CHAR(4) CHARACTER SET utf8 COLLATE utf8_bin"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.typ.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := Varchar.Instance(10, 0, true)
	require.True(t, a.Equal(Varchar.Instance(10, 0, true)))
	require.False(t, a.Equal(Varchar.Instance(11, 0, true)))
	require.False(t, a.Equal(a.WithNullable(false)))
	require.True(t, a.EqualIgnoringNullability(a.WithNullable(false)))
	require.False(t, a.Equal(Char.Instance(10, 0, true)))
	require.Same(t, a, a.WithNullable(true))
	var nilT *T
	require.True(t, nilT.Equal(nil))
	require.False(t, nilT.Equal(a))
}

func TestIntRange(t *testing.T) {
	lo, hi := TinyInt.IntRange()
	require.Equal(t, int64(-128), lo)
	require.Equal(t, int64(127), hi)
	lo, hi = UTinyInt.IntRange()
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(255), hi)
	lo, hi = BigInt.IntRange()
	require.Equal(t, int64(math.MinInt64), lo)
	require.Equal(t, int64(math.MaxInt64), hi)
	_, hi = UBigInt.IntRange()
	require.Equal(t, int64(math.MaxInt64), hi)
	_, hi = Year.IntRange()
	require.Equal(t, int64(2155), hi)
}

func TestClasses(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Classes {
		require.False(t, seen[c.Name()], "duplicate class %s", c)
		seen[c.Name()] = true
		found, ok := ClassByName(c.Name())
		require.True(t, ok)
		require.Same(t, c, found)
		require.NotEqual(t, UnknownFamily, c.Family())
	}
	require.Equal(t, oid.T_varchar, Varchar.Oid())
	require.Equal(t, "varchar", Varchar.PGName())
	require.Equal(t, 2, Decimal.NTypeParameters())
	require.Equal(t, int64(65535), Text.Nullable().MaxLength())
	require.Equal(t, int64(12), Varbinary.Instance(12, 0, true).MaxLength())
	require.Equal(t, int64(0), Int.Nullable().MaxLength())
}
