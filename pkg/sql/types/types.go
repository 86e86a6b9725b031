// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types holds the catalog's type system. A Class is a type
// family member such as VARCHAR or BIGINT UNSIGNED; a T is an instance of
// a class with its parameters (length, precision, scale), nullability and
// character attributes. Columns, expressions and row types are all typed
// with *T.
package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/lib/pq/oid"
)

// Family groups classes that share a physical representation and a
// conversion strategy.
type Family int

const (
	UnknownFamily Family = iota
	BoolFamily
	IntFamily
	FloatFamily
	DecimalFamily
	StringFamily
	BytesFamily
	DateFamily
	TimeFamily
	TimestampFamily
)

var familyNames = [...]string{
	UnknownFamily:   "unknown",
	BoolFamily:      "bool",
	IntFamily:       "int",
	FloatFamily:     "float",
	DecimalFamily:   "decimal",
	StringFamily:    "string",
	BytesFamily:     "bytes",
	DateFamily:      "date",
	TimeFamily:      "time",
	TimestampFamily: "timestamp",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// Numeric returns whether values of the family are numbers.
func (f Family) Numeric() bool {
	return f == IntFamily || f == FloatFamily || f == DecimalFamily
}

// Class is a catalog type class. Classes are statically allocated and
// compared by pointer.
type Class struct {
	name     string
	family   Family
	oid      oid.Oid
	nParams  int
	unsigned bool
	// width is the size in bits of int and float classes.
	width int
	// maxLength bounds the byte or character length of string and bytes
	// classes that take no length parameter. Zero means unbounded.
	maxLength int64
	// defaultParams are used when a type is declared without parameters.
	defaultParams [2]int64
}

// Name returns the SQL name of the class.
func (c *Class) Name() string { return c.name }

// String implements fmt.Stringer.
func (c *Class) String() string { return c.name }

// Family returns the family the class belongs to.
func (c *Class) Family() Family { return c.family }

// Oid returns the Postgres OID used to describe values of the class.
func (c *Class) Oid() oid.Oid { return c.oid }

// PGName returns the Postgres type name corresponding to the class' OID.
func (c *Class) PGName() string {
	if n, ok := oid.TypeName[c.oid]; ok {
		return strings.ToLower(n)
	}
	return strings.ToLower(c.name)
}

// NTypeParameters is the number of parameters (0, 1 or 2) an instance of
// the class carries.
func (c *Class) NTypeParameters() int { return c.nParams }

// IsUnsigned returns true for the unsigned numeric classes.
func (c *Class) IsUnsigned() bool { return c.unsigned }

// Width returns the size in bits of an int or float class.
func (c *Class) Width() int { return c.width }

// DefaultParameters returns the parameters used when a type of this class
// is declared without any.
func (c *Class) DefaultParameters() (int64, int64) {
	return c.defaultParams[0], c.defaultParams[1]
}

// IntRange returns the inclusive bounds of an int class.
func (c *Class) IntRange() (lo, hi int64) {
	if c == Year {
		return 0, 2155
	}
	if c.unsigned {
		if c.width >= 63 {
			return 0, math.MaxInt64
		}
		return 0, int64(1)<<c.width - 1
	}
	if c.width >= 64 {
		return math.MinInt64, math.MaxInt64
	}
	return -(int64(1) << (c.width - 1)), int64(1)<<(c.width-1) - 1
}

// Instance creates a type instance of the class. Parameters beyond the
// class' parameter count are dropped.
func (c *Class) Instance(param1, param2 int64, nullable bool) *T {
	t := &T{class: c, nullable: nullable}
	switch c.nParams {
	case 1:
		t.param1 = param1
	case 2:
		t.param1, t.param2 = param1, param2
	}
	return t
}

// NotNull is a shorthand for an instance with default parameters that
// cannot hold NULL.
func (c *Class) NotNull() *T {
	return c.Instance(c.defaultParams[0], c.defaultParams[1], false)
}

// Nullable is a shorthand for a nullable instance with default parameters.
func (c *Class) Nullable() *T {
	return c.Instance(c.defaultParams[0], c.defaultParams[1], true)
}

func intClass(name string, o oid.Oid, width int, unsigned bool) *Class {
	return &Class{name: name, family: IntFamily, oid: o, width: width, unsigned: unsigned}
}

func floatClass(name string, o oid.Oid, width int, unsigned bool) *Class {
	return &Class{name: name, family: FloatFamily, oid: o, width: width, unsigned: unsigned}
}

func textClass(name string, maxLength int64) *Class {
	return &Class{name: name, family: StringFamily, oid: oid.T_text, maxLength: maxLength}
}

func blobClass(name string, maxLength int64) *Class {
	return &Class{name: name, family: BytesFamily, oid: oid.T_bytea, maxLength: maxLength}
}

var (
	Boolean = &Class{name: "BOOLEAN", family: BoolFamily, oid: oid.T_bool}

	TinyInt   = intClass("TINYINT", oid.T_int2, 8, false)
	SmallInt  = intClass("SMALLINT", oid.T_int2, 16, false)
	MediumInt = intClass("MEDIUMINT", oid.T_int4, 24, false)
	Int       = intClass("INT", oid.T_int4, 32, false)
	BigInt    = intClass("BIGINT", oid.T_int8, 64, false)

	UTinyInt   = intClass("TINYINT UNSIGNED", oid.T_int2, 8, true)
	USmallInt  = intClass("SMALLINT UNSIGNED", oid.T_int4, 16, true)
	UMediumInt = intClass("MEDIUMINT UNSIGNED", oid.T_int4, 24, true)
	UInt       = intClass("INT UNSIGNED", oid.T_int8, 32, true)
	UBigInt    = intClass("BIGINT UNSIGNED", oid.T_numeric, 64, true)

	Year = intClass("YEAR", oid.T_int2, 16, false)

	Float   = floatClass("FLOAT", oid.T_float4, 32, false)
	Double  = floatClass("DOUBLE", oid.T_float8, 64, false)
	UFloat  = floatClass("FLOAT UNSIGNED", oid.T_float4, 32, true)
	UDouble = floatClass("DOUBLE UNSIGNED", oid.T_float8, 64, true)

	Decimal = &Class{
		name: "DECIMAL", family: DecimalFamily, oid: oid.T_numeric,
		nParams: 2, defaultParams: [2]int64{10, 0},
	}
	UDecimal = &Class{
		name: "DECIMAL UNSIGNED", family: DecimalFamily, oid: oid.T_numeric,
		nParams: 2, unsigned: true, defaultParams: [2]int64{10, 0},
	}

	Char = &Class{
		name: "CHAR", family: StringFamily, oid: oid.T_bpchar,
		nParams: 1, defaultParams: [2]int64{1, 0},
	}
	Varchar = &Class{
		name: "VARCHAR", family: StringFamily, oid: oid.T_varchar,
		nParams: 1, defaultParams: [2]int64{255, 0},
	}
	TinyText   = textClass("TINYTEXT", 255)
	Text       = textClass("TEXT", 65535)
	MediumText = textClass("MEDIUMTEXT", 16777215)
	LongText   = textClass("LONGTEXT", 4294967295)

	Binary = &Class{
		name: "BINARY", family: BytesFamily, oid: oid.T_bytea,
		nParams: 1, defaultParams: [2]int64{1, 0},
	}
	Varbinary = &Class{
		name: "VARBINARY", family: BytesFamily, oid: oid.T_bytea,
		nParams: 1, defaultParams: [2]int64{255, 0},
	}
	TinyBlob   = blobClass("TINYBLOB", 255)
	MediumBlob = blobClass("MEDIUMBLOB", 16777215)
	LongBlob   = blobClass("LONGBLOB", 4294967295)

	Date     = &Class{name: "DATE", family: DateFamily, oid: oid.T_date}
	Time     = &Class{name: "TIME", family: TimeFamily, oid: oid.T_time}
	Datetime = &Class{name: "DATETIME", family: TimestampFamily, oid: oid.T_timestamp}
)

// Classes lists every class known to the catalog.
var Classes = []*Class{
	Boolean,
	TinyInt, SmallInt, MediumInt, Int, BigInt,
	UTinyInt, USmallInt, UMediumInt, UInt, UBigInt,
	Year,
	Float, Double, UFloat, UDouble,
	Decimal, UDecimal,
	Char, Varchar, TinyText, Text, MediumText, LongText,
	Binary, Varbinary, TinyBlob, MediumBlob, LongBlob,
	Date, Time, Datetime,
}

var classesByName = func() map[string]*Class {
	m := make(map[string]*Class, len(Classes))
	for _, c := range Classes {
		m[c.name] = c
	}
	return m
}()

// ClassByName looks up a class by its SQL name.
func ClassByName(name string) (*Class, bool) {
	c, ok := classesByName[strings.ToUpper(name)]
	return c, ok
}
