// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package coltypes maps the column types spelled in DDL statements to the
// catalog's type classes.
package coltypes

import (
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// typeMap is built once and never written to after package
// initialization. Every parser type identifier with a catalog
// representation appears exactly once.
var typeMap = map[tree.TypeID]*types.Class{
	tree.BooleanTypeID:   types.Boolean,
	tree.TinyIntTypeID:   types.TinyInt,
	tree.SmallIntTypeID:  types.SmallInt,
	tree.IntegerTypeID:   types.Int,
	tree.MediumIntTypeID: types.MediumInt,
	tree.BigIntTypeID:    types.BigInt,

	tree.TinyIntUnsignedTypeID:   types.UTinyInt,
	tree.SmallIntUnsignedTypeID:  types.USmallInt,
	tree.MediumIntUnsignedTypeID: types.UMediumInt,
	tree.IntegerUnsignedTypeID:   types.UInt,
	tree.BigIntUnsignedTypeID:    types.UBigInt,

	tree.RealTypeID:    types.Float,
	tree.DoubleTypeID:  types.Double,
	tree.DecimalTypeID: types.Decimal,
	tree.NumericTypeID: types.Decimal,

	tree.RealUnsignedTypeID:    types.UFloat,
	tree.DoubleUnsignedTypeID:  types.UDouble,
	tree.DecimalUnsignedTypeID: types.UDecimal,
	tree.NumericUnsignedTypeID: types.UDecimal,

	tree.CharTypeID:        types.Char,
	tree.VarcharTypeID:     types.Varchar,
	tree.LongVarcharTypeID: types.Varchar,
	tree.BitTypeID:         types.Binary,
	tree.VarbitTypeID:      types.Varbinary,
	tree.LongVarbitTypeID:  types.Varbinary,

	tree.DateTypeID:      types.Date,
	tree.TimeTypeID:      types.Time,
	tree.TimestampTypeID: types.Datetime,
	tree.DatetimeTypeID:  types.Datetime,
	tree.YearTypeID:      types.Year,

	tree.BlobTypeID:       types.LongBlob,
	tree.ClobTypeID:       types.LongText,
	tree.TextTypeID:       types.Text,
	tree.TinyBlobTypeID:   types.TinyBlob,
	tree.TinyTextTypeID:   types.TinyText,
	tree.MediumBlobTypeID: types.MediumBlob,
	tree.MediumTextTypeID: types.MediumText,
	tree.LongBlobTypeID:   types.LongBlob,
	tree.LongTextTypeID:   types.LongText,
}

// ClassOf returns the catalog class of a parser type identifier.
func ClassOf(id tree.TypeID) (*types.Class, bool) {
	c, ok := typeMap[id]
	return c, ok
}

// Mapped returns the number of parser type identifiers with a catalog
// class.
func Mapped() int {
	return len(typeMap)
}
