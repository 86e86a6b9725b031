// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
)

// DecimalCtx is the default context for decimal operations.
var DecimalCtx = &apd.Context{
	Precision:   20,
	Rounding:    apd.RoundHalfUp,
	MaxExponent: 2000,
	MinExponent: -2000,
	Traps:       apd.DefaultTraps,
}

// ParseDDecimal parses a decimal literal.
func ParseDDecimal(s string) (*DDecimal, error) {
	d := &DDecimal{}
	if _, _, err := d.SetString(s); err != nil {
		return nil, pgerror.Wrapf(err, pgcode.InvalidTextRepresentation,
			"could not parse %q as type decimal", s)
	}
	return d, nil
}

// LimitDecimalWidth limits d's precision (total number of digits) and scale
// (number of digits after the decimal point).
func LimitDecimalWidth(d *apd.Decimal, precision, scale int) error {
	if d.Form != apd.Finite || precision <= 0 {
		return nil
	}
	// Use +1 here because it is inverted later.
	if scale < math.MinInt32+1 || scale > math.MaxInt32 {
		return errors.New("scale out of range")
	}
	if scale > precision {
		return pgerror.Newf(pgcode.InvalidParameterValue,
			"scale (%d) must be between 0 and precision (%d)", scale, precision)
	}

	// If the scale of a value to be stored is greater than the declared
	// scale of the column, the value is rounded to the specified number of
	// fractional digits. Then, if the number of digits to the left of the
	// decimal point exceeds the declared precision minus the declared
	// scale, an error is raised.
	c := DecimalCtx.WithPrecision(uint32(precision))
	c.Traps = apd.InvalidOperation

	if _, err := c.Quantize(d, d, -int32(scale)); err != nil {
		var lt string
		switch v := precision - scale; v {
		case 0:
			lt = "1"
		default:
			lt = fmt.Sprintf("10^%d", v)
		}
		return pgerror.Newf(pgcode.NumericValueOutOfRange,
			"value with precision %d, scale %d must round to an absolute value less than %s",
			precision, scale, lt)
	}
	return nil
}
