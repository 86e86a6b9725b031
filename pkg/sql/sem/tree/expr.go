// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import "strings"

// Expr is a column DEFAULT expression as produced by the parser.
type Expr interface {
	expr()
	String() string
}

// Constant is a literal default value in its textual form.
type Constant struct {
	Value string
	// IsNull is set for DEFAULT NULL.
	IsNull bool
}

// SpecialFunction is one of the niladic session functions such as
// CURRENT_USER.
type SpecialFunction struct {
	Name string
}

// CurrentDatetime is CURRENT_DATE, CURRENT_TIME or CURRENT_TIMESTAMP.
type CurrentDatetime struct {
	Field string
}

// UnresolvedExpr is any other expression, kept in its SQL form.
type UnresolvedExpr struct {
	SQL string
}

func (*Constant) expr()        {}
func (*SpecialFunction) expr() {}
func (*CurrentDatetime) expr() {}
func (*UnresolvedExpr) expr()  {}

func (c *Constant) String() string {
	if c.IsNull {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(c.Value, "'", "''") + "'"
}

func (s *SpecialFunction) String() string { return strings.ToUpper(s.Name) }

func (d *CurrentDatetime) String() string { return "CURRENT_" + strings.ToUpper(d.Field) }

func (u *UnresolvedExpr) String() string { return u.SQL }

// FunctionName returns the name of the function that computes a datetime
// default.
func (d *CurrentDatetime) FunctionName() string {
	return "CURRENT_" + strings.ToUpper(d.Field)
}

// FunctionName returns the name of the function that computes a session
// default.
func (s *SpecialFunction) FunctionName() string {
	return strings.ToUpper(s.Name)
}
