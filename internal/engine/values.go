package engine

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leengari/tablekit/internal/domain/schema"
)

func toString(v interface{}) string {
	return schema.FormatValue(v)
}

// toDecimal converts numbers and numeric strings to an exact decimal
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return t, true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int8:
		return decimal.NewFromInt(int64(t)), true
	case int16:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint:
		return decimal.NewFromUint64(uint64(t)), true
	case uint8:
		return decimal.NewFromUint64(uint64(t)), true
	case uint16:
		return decimal.NewFromUint64(uint64(t)), true
	case uint32:
		return decimal.NewFromUint64(uint64(t)), true
	case uint64:
		return decimal.NewFromUint64(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

// isNumber reports whether v is a numeric Go value (strings excluded)
func isNumber(v interface{}) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number, decimal.Decimal:
		return true
	}
	return false
}

func isList(v interface{}) bool {
	switch v.(type) {
	case []string, []interface{}, []int, []float64:
		return true
	}
	return false
}

// toList views a value as a list; scalars become one-element lists
func toList(v interface{}) []interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return t
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []int:
		out := make([]interface{}, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out
	case []float64:
		out := make([]interface{}, len(t))
		for i, n := range t {
			out[i] = n
		}
		return out
	case [2]interface{}:
		return []interface{}{t[0], t[1]}
	default:
		return []interface{}{v}
	}
}

// looseEquals compares numerically when both sides are numeric, otherwise
// by string form
func looseEquals(a, b interface{}) bool {
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Equal(db)
		}
	}
	return toString(a) == toString(b)
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateTime, time.DateOnly} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// isEmptyFilterValue reports whether a filter value carries no constraint
// for fn, in which case setting it removes the filter
func isEmptyFilterValue(fn schema.FilterFn, v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	switch fn {
	case schema.FilterArrIncludes, schema.FilterArrIncludesAll, schema.FilterArrIncludesSome:
		return len(toList(v)) == 0
	case schema.FilterInNumberRange:
		lo, hi := rangeBounds(v)
		return lo == nil && hi == nil
	}
	if isList(v) {
		return len(toList(v)) == 0
	}
	return false
}

// rangeBounds reads a [min, max] filter value; nil bounds are open
func rangeBounds(v interface{}) (lo, hi *decimal.Decimal) {
	parts := toList(v)
	if len(parts) > 0 {
		if d, ok := toDecimal(parts[0]); ok {
			lo = &d
		}
	}
	if len(parts) > 1 {
		if d, ok := toDecimal(parts[1]); ok {
			hi = &d
		}
	}
	return lo, hi
}
