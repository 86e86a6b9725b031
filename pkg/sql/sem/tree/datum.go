// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Datum represents a SQL value.
type Datum interface {
	datum()
	// String returns the value as a SQL literal.
	String() string
	// Text returns the value in its textual form, as a cast to a string
	// type would produce it.
	Text() string
}

// Datums is a slice of Datum values.
type Datums []Datum

// String formats the datums as a parenthesized tuple.
func (d Datums) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range d {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(')')
	return b.String()
}

type dNull struct{}

// DNull is the NULL Datum.
var DNull Datum = dNull{}

func (dNull) datum()         {}
func (dNull) String() string { return "NULL" }
func (dNull) Text() string   { return "" }

// DString is the string Datum.
type DString string

// NewDString is a helper routine to create a *DString initialized from
// its argument.
func NewDString(d string) *DString {
	r := DString(d)
	return &r
}

func (*DString) datum() {}

func (d *DString) String() string {
	return "'" + strings.ReplaceAll(string(*d), "'", "''") + "'"
}

func (d *DString) Text() string { return string(*d) }

// DInt is the int Datum.
type DInt int64

// NewDInt is a helper routine to create a *DInt initialized from its
// argument.
func NewDInt(d DInt) *DInt {
	return &d
}

func (*DInt) datum()           {}
func (d *DInt) String() string { return strconv.FormatInt(int64(*d), 10) }
func (d *DInt) Text() string   { return d.String() }

// DFloat is the float Datum.
type DFloat float64

// NewDFloat is a helper routine to create a *DFloat initialized from its
// argument.
func NewDFloat(d DFloat) *DFloat {
	return &d
}

func (*DFloat) datum()           {}
func (d *DFloat) String() string { return strconv.FormatFloat(float64(*d), 'g', -1, 64) }
func (d *DFloat) Text() string   { return d.String() }

// DDecimal is the decimal Datum.
type DDecimal struct {
	apd.Decimal
}

func (*DDecimal) datum()           {}
func (d *DDecimal) String() string { return d.Decimal.Text('f') }
func (d *DDecimal) Text() string   { return d.String() }

// DBool is the boolean Datum.
type DBool bool

// MakeDBool converts its argument to a *DBool, returning either DBoolTrue
// or DBoolFalse.
func MakeDBool(d DBool) *DBool {
	if d {
		return DBoolTrue
	}
	return DBoolFalse
}

var (
	// DBoolTrue is a pointer to the DBool(true) value and can be used in
	// comparisons against Datum types.
	DBoolTrue = &constDBoolTrue
	// DBoolFalse is a pointer to the DBool(false) value and can be used in
	// comparisons against Datum types.
	DBoolFalse = &constDBoolFalse

	constDBoolTrue  DBool = true
	constDBoolFalse DBool = false
)

func (*DBool) datum()           {}
func (d *DBool) String() string { return strconv.FormatBool(bool(*d)) }
func (d *DBool) Text() string   { return d.String() }

// DBytes is the bytes Datum. The underlying type is a string because we
// want the immutability, but this may contain arbitrary bytes.
type DBytes string

// NewDBytes is a helper routine to create a *DBytes initialized from its
// argument.
func NewDBytes(d DBytes) *DBytes {
	return &d
}

func (*DBytes) datum() {}

func (d *DBytes) String() string {
	return `'\x` + hex.EncodeToString([]byte(*d)) + "'"
}

func (d *DBytes) Text() string { return string(*d) }

// Layouts used to parse and print date and time values.
const (
	DateLayout      = "2006-01-02"
	TimeLayout      = "15:04:05"
	TimestampLayout = "2006-01-02 15:04:05"
)

// DDate is the date Datum. Only the year, month and day are meaningful.
type DDate struct {
	time.Time
}

// MakeDDate truncates t to its date.
func MakeDDate(t time.Time) *DDate {
	y, m, d := t.Date()
	return &DDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (*DDate) datum()           {}
func (d *DDate) String() string { return "'" + d.Text() + "'" }
func (d *DDate) Text() string   { return d.Time.Format(DateLayout) }

// DTime is the time-of-day Datum, as an offset from midnight.
type DTime time.Duration

// MakeDTime extracts the time of day from t.
func MakeDTime(t time.Time) *DTime {
	h, m, s := t.Clock()
	d := DTime(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
	return &d
}

func (*DTime) datum()           {}
func (d *DTime) String() string { return "'" + d.Text() + "'" }

func (d *DTime) Text() string {
	return time.Time{}.Add(time.Duration(*d)).Format(TimeLayout)
}

// DTimestamp is the timestamp Datum, at second precision.
type DTimestamp struct {
	time.Time
}

// MakeDTimestamp truncates t to the second.
func MakeDTimestamp(t time.Time) *DTimestamp {
	return &DTimestamp{Time: t.UTC().Truncate(time.Second)}
}

func (*DTimestamp) datum()           {}
func (d *DTimestamp) String() string { return "'" + d.Text() + "'" }
func (d *DTimestamp) Text() string   { return d.Time.Format(TimestampLayout) }
