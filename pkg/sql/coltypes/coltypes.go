// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coltypes

import (
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/sqlerrors"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// ColumnType resolves the class of a declared column type and extracts its
// parameters. One-parameter classes take the declared length; two-parameter
// classes take precision and scale; the parameters of other classes are
// zero. Missing parameters fall back to the class defaults.
func ColumnType(
	tn tree.TableName, column string, dt *tree.DataType,
) (class *types.Class, param1, param2 int64, _ error) {
	class, ok := ClassOf(dt.ID)
	if !ok {
		return nil, 0, 0, sqlerrors.NewUnsupportedDataTypeError(tn, column, dt.String())
	}
	def1, def2 := class.DefaultParameters()
	switch class.NTypeParameters() {
	case 1:
		param1 = def1
		if len(dt.Params) > 0 {
			param1 = dt.Params[0]
		}
	case 2:
		param1, param2 = def1, def2
		if len(dt.Params) > 0 {
			param1, param2 = dt.Params[0], 0
		}
		if len(dt.Params) > 1 {
			param2 = dt.Params[1]
		}
	}
	return class, param1, param2, nil
}

// Instance resolves a declared type into a type instance with the given
// nullability and the declared character attributes.
func Instance(tn tree.TableName, column string, dt *tree.DataType, nullable bool) (*types.T, error) {
	class, p1, p2, err := ColumnType(tn, column, dt)
	if err != nil {
		return nil, err
	}
	t := class.Instance(p1, p2, nullable)
	if dt.Charset != "" || dt.Collation != "" {
		t = t.WithCharset(dt.Charset, dt.Collation)
	}
	return t, nil
}
