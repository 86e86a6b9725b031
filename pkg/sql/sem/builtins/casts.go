// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/groupsql/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/overload"
	"github.com/cockroachdb/groupsql/pkg/sql/sem/tree"
	"github.com/cockroachdb/groupsql/pkg/sql/types"
)

// castable reports whether a cast from the source family to the target
// family exists. Every family converts to and from strings; numbers
// convert among themselves and booleans to and from integers.
func castable(source, target types.Family) bool {
	switch {
	case source == target:
		return true
	case source == types.StringFamily || target == types.StringFamily:
		return true
	case source.Numeric() && target.Numeric():
		return true
	case source == types.BoolFamily && target == types.IntFamily,
		source == types.IntFamily && target == types.BoolFamily:
		return true
	case source == types.DateFamily && target == types.TimestampFamily,
		source == types.TimestampFamily && (target == types.DateFamily || target == types.TimeFamily):
		return true
	}
	return false
}

// makeCast builds the cast between two classes, assuming they are
// castable.
func makeCast(source, target *types.Class) *overload.Cast {
	var fn overload.CastFn
	switch target.Family() {
	case types.StringFamily:
		fn = castToString
	case types.BytesFamily:
		fn = castToBytes
	case types.IntFamily:
		fn = castToInt
	case types.FloatFamily:
		fn = castToFloat
	case types.DecimalFamily:
		fn = castToDecimal
	case types.BoolFamily:
		fn = castToBool
	case types.DateFamily:
		fn = castToDate
	case types.TimeFamily:
		fn = castToTime
	case types.TimestampFamily:
		fn = castToTimestamp
	default:
		fn = func(d tree.Datum, target *types.T) (tree.Datum, error) {
			return nil, errors.AssertionFailedf("no cast to %s", target.SQLString())
		}
	}
	return &overload.Cast{Source: source, Target: target, Fn: fn}
}

func unsupportedCast(d tree.Datum, target *types.T) error {
	return errors.AssertionFailedf("unexpected datum %T in cast to %s", d, target.SQLString())
}

func parseError(s string, target *types.T) error {
	return pgerror.Newf(pgcode.InvalidTextRepresentation,
		"could not parse %q as type %s", s, target.SQLString())
}

func outOfRange(target *types.T) error {
	return pgerror.Newf(pgcode.NumericValueOutOfRange,
		"value out of range for type %s", target.SQLString())
}

func castToString(d tree.Datum, target *types.T) (tree.Datum, error) {
	s := d.Text()
	if max := target.MaxLength(); max > 0 && int64(utf8.RuneCountInString(s)) > max {
		return nil, pgerror.Newf(pgcode.StringDataRightTruncation,
			"value too long for type %s", target.SQLString())
	}
	return tree.NewDString(s), nil
}

func castToBytes(d tree.Datum, target *types.T) (tree.Datum, error) {
	var b string
	switch v := d.(type) {
	case *tree.DBytes:
		b = string(*v)
	case *tree.DString:
		b = string(*v)
	default:
		return nil, unsupportedCast(d, target)
	}
	if max := target.MaxLength(); max > 0 && int64(len(b)) > max {
		return nil, pgerror.Newf(pgcode.StringDataRightTruncation,
			"value too long for type %s", target.SQLString())
	}
	return tree.NewDBytes(tree.DBytes(b)), nil
}

func castToInt(d tree.Datum, target *types.T) (tree.Datum, error) {
	var i int64
	switch v := d.(type) {
	case *tree.DInt:
		i = int64(*v)
	case *tree.DBool:
		if *v {
			i = 1
		}
	case *tree.DFloat:
		f := math.Round(float64(*v))
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, outOfRange(target)
		}
		i = int64(f)
	case *tree.DDecimal:
		var r apd.Decimal
		if _, err := tree.DecimalCtx.RoundToIntegralValue(&r, &v.Decimal); err != nil {
			return nil, err
		}
		var err error
		if i, err = r.Int64(); err != nil {
			return nil, outOfRange(target)
		}
	case *tree.DString:
		s := strings.TrimSpace(string(*v))
		var err error
		if i, err = strconv.ParseInt(s, 10, 64); err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, outOfRange(target)
			}
			return nil, parseError(s, target)
		}
	default:
		return nil, unsupportedCast(d, target)
	}
	if lo, hi := target.Class().IntRange(); i < lo || i > hi {
		return nil, outOfRange(target)
	}
	return tree.NewDInt(tree.DInt(i)), nil
}

func castToFloat(d tree.Datum, target *types.T) (tree.Datum, error) {
	var f float64
	switch v := d.(type) {
	case *tree.DFloat:
		f = float64(*v)
	case *tree.DInt:
		f = float64(*v)
	case *tree.DDecimal:
		var err error
		if f, err = v.Float64(); err != nil {
			return nil, outOfRange(target)
		}
	case *tree.DString:
		s := strings.TrimSpace(string(*v))
		var err error
		if f, err = strconv.ParseFloat(s, 64); err != nil {
			return nil, parseError(s, target)
		}
	default:
		return nil, unsupportedCast(d, target)
	}
	if target.Class().Width() == 32 {
		if math.Abs(f) > math.MaxFloat32 {
			return nil, outOfRange(target)
		}
		f = float64(float32(f))
	}
	if target.Class().IsUnsigned() && f < 0 {
		return nil, outOfRange(target)
	}
	return tree.NewDFloat(tree.DFloat(f)), nil
}

func castToDecimal(d tree.Datum, target *types.T) (tree.Datum, error) {
	res := &tree.DDecimal{}
	switch v := d.(type) {
	case *tree.DDecimal:
		res.Set(&v.Decimal)
	case *tree.DInt:
		res.SetInt64(int64(*v))
	case *tree.DFloat:
		if _, err := res.SetFloat64(float64(*v)); err != nil {
			return nil, outOfRange(target)
		}
	case *tree.DString:
		s := strings.TrimSpace(string(*v))
		if _, _, err := res.SetString(s); err != nil {
			return nil, parseError(s, target)
		}
	default:
		return nil, unsupportedCast(d, target)
	}
	if target.Class().IsUnsigned() && res.Negative && !res.IsZero() {
		return nil, outOfRange(target)
	}
	if err := tree.LimitDecimalWidth(&res.Decimal, int(target.Precision()), int(target.Scale())); err != nil {
		return nil, err
	}
	return res, nil
}

func castToBool(d tree.Datum, target *types.T) (tree.Datum, error) {
	switch v := d.(type) {
	case *tree.DBool:
		return v, nil
	case *tree.DInt:
		return tree.MakeDBool(*v != 0), nil
	case *tree.DString:
		s := strings.ToLower(strings.TrimSpace(string(*v)))
		switch s {
		case "t", "true", "y", "yes", "on", "1":
			return tree.DBoolTrue, nil
		case "f", "false", "n", "no", "off", "0":
			return tree.DBoolFalse, nil
		}
		return nil, parseError(string(*v), target)
	}
	return nil, unsupportedCast(d, target)
}

func parseTime(s string, target *types.T, layouts ...string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, pgerror.Newf(pgcode.InvalidDatetimeFormat,
		"could not parse %q as type %s", s, target.SQLString())
}

func castToDate(d tree.Datum, target *types.T) (tree.Datum, error) {
	switch v := d.(type) {
	case *tree.DDate:
		return v, nil
	case *tree.DTimestamp:
		return tree.MakeDDate(v.Time), nil
	case *tree.DString:
		t, err := parseTime(string(*v), target, tree.DateLayout, tree.TimestampLayout)
		if err != nil {
			return nil, err
		}
		return tree.MakeDDate(t), nil
	}
	return nil, unsupportedCast(d, target)
}

func castToTime(d tree.Datum, target *types.T) (tree.Datum, error) {
	switch v := d.(type) {
	case *tree.DTime:
		return v, nil
	case *tree.DTimestamp:
		return tree.MakeDTime(v.Time), nil
	case *tree.DString:
		t, err := parseTime(string(*v), target, tree.TimeLayout)
		if err != nil {
			return nil, err
		}
		return tree.MakeDTime(t), nil
	}
	return nil, unsupportedCast(d, target)
}

func castToTimestamp(d tree.Datum, target *types.T) (tree.Datum, error) {
	switch v := d.(type) {
	case *tree.DTimestamp:
		return v, nil
	case *tree.DDate:
		return tree.MakeDTimestamp(v.Time), nil
	case *tree.DString:
		t, err := parseTime(string(*v), target, tree.TimestampLayout, tree.DateLayout)
		if err != nil {
			return nil, err
		}
		return tree.MakeDTimestamp(t), nil
	}
	return nil, unsupportedCast(d, target)
}
