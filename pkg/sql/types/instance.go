// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package types

import (
	"strconv"
	"strings"
)

// T is an instance of a Class. T values are immutable; the With* methods
// return modified copies.
type T struct {
	class     *Class
	param1    int64
	param2    int64
	nullable  bool
	charset   string
	collation string
}

// Class returns the class of the instance.
func (t *T) Class() *Class { return t.class }

// Family is a shorthand for t.Class().Family().
func (t *T) Family() Family { return t.class.family }

// Nullable returns whether the instance admits NULL.
func (t *T) Nullable() bool { return t.nullable }

// Param1 returns the first type parameter: the length for one-parameter
// classes and the precision for two-parameter classes.
func (t *T) Param1() int64 { return t.param1 }

// Param2 returns the second type parameter (the scale).
func (t *T) Param2() int64 { return t.param2 }

// Precision returns the precision of a DECIMAL instance.
func (t *T) Precision() int64 { return t.param1 }

// Scale returns the scale of a DECIMAL instance.
func (t *T) Scale() int64 { return t.param2 }

// MaxLength returns the maximum length of a string or bytes value of this
// instance, or zero when unbounded.
func (t *T) MaxLength() int64 {
	switch t.class.family {
	case StringFamily, BytesFamily:
		if t.class.nParams == 1 {
			return t.param1
		}
		return t.class.maxLength
	}
	return 0
}

// Charset returns the character set, if any.
func (t *T) Charset() string { return t.charset }

// Collation returns the collation, if any.
func (t *T) Collation() string { return t.collation }

// WithNullable returns a copy of t with the given nullability.
func (t *T) WithNullable(nullable bool) *T {
	if t.nullable == nullable {
		return t
	}
	c := *t
	c.nullable = nullable
	return &c
}

// WithCharset returns a copy of t with the given character attributes.
func (t *T) WithCharset(charset, collation string) *T {
	c := *t
	c.charset, c.collation = charset, collation
	return &c
}

// Equal returns whether both instances have the same class, parameters,
// nullability and character attributes.
func (t *T) Equal(o *T) bool {
	if t == nil || o == nil {
		return t == o
	}
	return *t == *o
}

// EqualIgnoringNullability is like Equal, but nullability is ignored.
func (t *T) EqualIgnoringNullability(o *T) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.WithNullable(true).Equal(o.WithNullable(true))
}

// SQLString returns the SQL spelling of the instance, without its
// nullability.
func (t *T) SQLString() string {
	var b strings.Builder
	switch t.class.nParams {
	case 1:
		b.WriteString(t.class.name)
		b.WriteByte('(')
		b.WriteString(strconv.FormatInt(t.param1, 10))
		b.WriteByte(')')
	case 2:
		// Unsigned decimals spell their parameters before the modifier.
		name, suffix := t.class.name, ""
		if t.class.unsigned {
			name, suffix = strings.TrimSuffix(name, " UNSIGNED"), " UNSIGNED"
		}
		b.WriteString(name)
		b.WriteByte('(')
		b.WriteString(strconv.FormatInt(t.param1, 10))
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(t.param2, 10))
		b.WriteByte(')')
		b.WriteString(suffix)
	default:
		b.WriteString(t.class.name)
	}
	if t.charset != "" {
		b.WriteString(" CHARACTER SET ")
		b.WriteString(t.charset)
	}
	if t.collation != "" {
		b.WriteString(" COLLATE ")
		b.WriteString(t.collation)
	}
	return b.String()
}

// String implements fmt.Stringer.
func (t *T) String() string {
	if t.nullable {
		return t.SQLString()
	}
	return t.SQLString() + " NOT NULL"
}
