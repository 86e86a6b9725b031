// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/stretchr/testify/require"
)

func TestDatumStrings(t *testing.T) {
	ts := time.Date(2024, 3, 9, 13, 4, 5, 999, time.UTC)
	testCases := []struct {
		d         Datum
		str, text string
	}{
		{DNull, "NULL", ""},
		{NewDString("it's"), "'it''s'", "it's"},
		{NewDInt(-7), "-7", "-7"},
		{NewDFloat(1.5), "1.5", "1.5"},
		{MakeDBool(true), "true", "true"},
		{NewDBytes("\x01\xff"), `'\x01ff'`, "\x01\xff"},
		{MakeDDate(ts), "'2024-03-09'", "2024-03-09"},
		{MakeDTime(ts), "'13:04:05'", "13:04:05"},
		{MakeDTimestamp(ts), "'2024-03-09 13:04:05'", "2024-03-09 13:04:05"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.str, tc.d.String())
		require.Equal(t, tc.text, tc.d.Text())
	}
	require.Equal(t, "(1, NULL, 'a')", Datums{NewDInt(1), DNull, NewDString("a")}.String())
	require.Same(t, DBoolFalse, MakeDBool(false))
}

func TestLimitDecimalWidth(t *testing.T) {
	testCases := []struct {
		in        string
		prec, sc  int
		out       string
		errSubstr string
	}{
		{"1.25", 5, 1, "1.3", ""},
		{"12.5", 3, 0, "13", ""},
		{"123.4", 3, 1, "", "must round to an absolute value less than 10^2"},
		{"0.5", 1, 1, "0.5", ""},
		{"1", 1, 1, "", "less than 1"},
		{"1", 2, 3, "", "scale (3) must be between 0 and precision (2)"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			d, err := ParseDDecimal(tc.in)
			require.NoError(t, err)
			err = LimitDecimalWidth(&d.Decimal, tc.prec, tc.sc)
			if tc.errSubstr != "" {
				require.ErrorContains(t, err, tc.errSubstr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, d.String())
		})
	}
}

func TestParseDDecimalError(t *testing.T) {
	_, err := ParseDDecimal("1.2.3")
	require.Equal(t, pgcode.InvalidTextRepresentation, pgerror.GetPGCode(err))

	d, err := ParseDDecimal("-12.50")
	require.NoError(t, err)
	require.True(t, d.Negative)
	require.Equal(t, int32(-2), d.Exponent)
	require.Equal(t, apd.Finite, d.Form)
}
