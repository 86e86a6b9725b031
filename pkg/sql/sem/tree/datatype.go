// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
)

// TypeID identifies a column type as spelled by the parser. Several
// spellings share an ID (INTEGER and INT); several IDs can map to the same
// catalog type class.
type TypeID int

const (
	UnknownTypeID TypeID = iota
	BooleanTypeID
	TinyIntTypeID
	SmallIntTypeID
	IntegerTypeID
	MediumIntTypeID
	BigIntTypeID
	TinyIntUnsignedTypeID
	SmallIntUnsignedTypeID
	IntegerUnsignedTypeID
	MediumIntUnsignedTypeID
	BigIntUnsignedTypeID
	RealTypeID
	DoubleTypeID
	DecimalTypeID
	NumericTypeID
	RealUnsignedTypeID
	DoubleUnsignedTypeID
	DecimalUnsignedTypeID
	NumericUnsignedTypeID
	CharTypeID
	VarcharTypeID
	LongVarcharTypeID
	BitTypeID
	VarbitTypeID
	LongVarbitTypeID
	DateTypeID
	TimeTypeID
	TimestampTypeID
	DatetimeTypeID
	YearTypeID
	BlobTypeID
	ClobTypeID
	TextTypeID
	TinyBlobTypeID
	TinyTextTypeID
	MediumBlobTypeID
	MediumTextTypeID
	LongBlobTypeID
	LongTextTypeID
	// SerialTypeID is the SERIAL pseudo-type, expanded by the DDL compiler.
	SerialTypeID
	// The following are recognized by the parser but have no catalog class.
	IntervalTypeID
	XMLTypeID
	RefTypeID
	UserDefinedTypeID
)

var typeIDNames = map[TypeID]string{
	BooleanTypeID:           "BOOLEAN",
	TinyIntTypeID:           "TINYINT",
	SmallIntTypeID:          "SMALLINT",
	IntegerTypeID:           "INTEGER",
	MediumIntTypeID:         "MEDIUMINT",
	BigIntTypeID:            "BIGINT",
	TinyIntUnsignedTypeID:   "TINYINT UNSIGNED",
	SmallIntUnsignedTypeID:  "SMALLINT UNSIGNED",
	IntegerUnsignedTypeID:   "INTEGER UNSIGNED",
	MediumIntUnsignedTypeID: "MEDIUMINT UNSIGNED",
	BigIntUnsignedTypeID:    "BIGINT UNSIGNED",
	RealTypeID:              "REAL",
	DoubleTypeID:            "DOUBLE",
	DecimalTypeID:           "DECIMAL",
	NumericTypeID:           "NUMERIC",
	RealUnsignedTypeID:      "REAL UNSIGNED",
	DoubleUnsignedTypeID:    "DOUBLE UNSIGNED",
	DecimalUnsignedTypeID:   "DECIMAL UNSIGNED",
	NumericUnsignedTypeID:   "NUMERIC UNSIGNED",
	CharTypeID:              "CHAR",
	VarcharTypeID:           "VARCHAR",
	LongVarcharTypeID:       "LONG VARCHAR",
	BitTypeID:               "BIT",
	VarbitTypeID:            "VARBIT",
	LongVarbitTypeID:        "LONG VARBIT",
	DateTypeID:              "DATE",
	TimeTypeID:              "TIME",
	TimestampTypeID:         "TIMESTAMP",
	DatetimeTypeID:          "DATETIME",
	YearTypeID:              "YEAR",
	BlobTypeID:              "BLOB",
	ClobTypeID:              "CLOB",
	TextTypeID:              "TEXT",
	TinyBlobTypeID:          "TINYBLOB",
	TinyTextTypeID:          "TINYTEXT",
	MediumBlobTypeID:        "MEDIUMBLOB",
	MediumTextTypeID:        "MEDIUMTEXT",
	LongBlobTypeID:          "LONGBLOB",
	LongTextTypeID:          "LONGTEXT",
	SerialTypeID:            "SERIAL",
	IntervalTypeID:          "INTERVAL",
	XMLTypeID:               "XML",
	RefTypeID:               "REF",
	UserDefinedTypeID:       "USER DEFINED",
}

// typeIDsByName holds every spelling the parser accepts.
var typeIDsByName = func() map[string]TypeID {
	m := make(map[string]TypeID, len(typeIDNames)+16)
	for id, name := range typeIDNames {
		m[name] = id
	}
	for name, id := range map[string]TypeID{
		"BOOL":                        BooleanTypeID,
		"INT":                         IntegerTypeID,
		"INT UNSIGNED":                IntegerUnsignedTypeID,
		"FLOAT":                       RealTypeID,
		"FLOAT UNSIGNED":              RealUnsignedTypeID,
		"DOUBLE PRECISION":            DoubleTypeID,
		"DEC":                         DecimalTypeID,
		"CHARACTER":                   CharTypeID,
		"CHARACTER VARYING":           VarcharTypeID,
		"CHAR VARYING":                VarcharTypeID,
		"LONGVARCHAR":                 LongVarcharTypeID,
		"BIT VARYING":                 VarbitTypeID,
		"BINARY":                      BitTypeID,
		"VARBINARY":                   VarbitTypeID,
		"BINARY LARGE OBJECT":         BlobTypeID,
		"CHARACTER LARGE OBJECT":      ClobTypeID,
		"TIMESTAMP WITHOUT TIME ZONE": TimestampTypeID,
	} {
		m[name] = id
	}
	return m
}()

// String returns the canonical spelling of the type identifier.
func (id TypeID) String() string {
	if n, ok := typeIDNames[id]; ok {
		return n
	}
	return "UNKNOWN"
}

// DataType is a column type as declared in a column definition.
type DataType struct {
	ID TypeID
	// Name is the spelling used in the statement.
	Name string
	// Params are the parenthesized type parameters, e.g. the length of a
	// VARCHAR or the precision and scale of a DECIMAL.
	Params    []int64
	Charset   string
	Collation string
}

// NewDataType creates a DataType with the canonical spelling of id.
func NewDataType(id TypeID, params ...int64) *DataType {
	return &DataType{ID: id, Name: id.String(), Params: params}
}

// String implements fmt.Stringer.
func (d *DataType) String() string {
	var b strings.Builder
	name := d.Name
	if name == "" {
		name = d.ID.String()
	}
	unsigned := strings.HasSuffix(name, " UNSIGNED")
	b.WriteString(strings.TrimSuffix(name, " UNSIGNED"))
	if len(d.Params) > 0 {
		b.WriteByte('(')
		for i, p := range d.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatInt(p, 10))
		}
		b.WriteByte(')')
	}
	if unsigned {
		b.WriteString(" UNSIGNED")
	}
	return b.String()
}

// ParseDataType parses a type spelling such as "VARCHAR(10)",
// "DECIMAL(10,2) UNSIGNED" or "SERIAL".
func ParseDataType(s string) (*DataType, error) {
	spelled := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	if spelled == "" {
		return nil, pgerror.New(pgcode.Syntax, "empty type name")
	}
	var params []int64
	if open := strings.IndexByte(spelled, '('); open >= 0 {
		closing := strings.IndexByte(spelled, ')')
		if closing < open {
			return nil, pgerror.Newf(pgcode.Syntax, "malformed type %q", s)
		}
		for _, p := range strings.Split(spelled[open+1:closing], ",") {
			v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil || v < 0 {
				return nil, pgerror.Newf(pgcode.Syntax, "invalid type parameter %q in %q", p, s)
			}
			params = append(params, v)
		}
		spelled = strings.TrimSpace(spelled[:open] + spelled[closing+1:])
		spelled = strings.Join(strings.Fields(spelled), " ")
	}
	id, ok := typeIDsByName[spelled]
	if !ok {
		if strings.HasPrefix(spelled, "INTERVAL") {
			id = IntervalTypeID
		} else {
			id = UserDefinedTypeID
		}
	}
	return &DataType{ID: id, Name: spelled, Params: params}, nil
}
