package engine

import (
	"reflect"
	"strings"

	"github.com/leengari/tablekit/internal/domain/schema"
)

// applyFilter evaluates one filter predicate against a cell value. For fuzzy
// predicates it also returns the rank so sorting can reuse it.
func applyFilter(fn schema.FilterFn, value interface{}, defined bool, filterValue interface{}) (bool, *RankInfo) {
	if fn == schema.FilterFuzzy {
		info := RankItem(value, toString(filterValue))
		return info.Passed, &info
	}
	if !defined {
		return false, nil
	}

	switch fn {
	case schema.FilterIncludesString:
		return strings.Contains(strings.ToLower(toString(value)), strings.ToLower(toString(filterValue))), nil
	case schema.FilterIncludesStringSensitive:
		return strings.Contains(toString(value), toString(filterValue)), nil
	case schema.FilterEqualsString:
		return strings.EqualFold(toString(value), toString(filterValue)), nil
	case schema.FilterEquals:
		return strictEquals(value, filterValue), nil
	case schema.FilterWeakEquals:
		return looseEquals(value, filterValue), nil
	case schema.FilterArrIncludes:
		return listContains(toList(value), filterValue), nil
	case schema.FilterArrIncludesAll:
		items := toList(value)
		for _, want := range toList(filterValue) {
			if !listContains(items, want) {
				return false, nil
			}
		}
		return true, nil
	case schema.FilterArrIncludesSome:
		items := toList(value)
		for _, want := range toList(filterValue) {
			if listContains(items, want) {
				return true, nil
			}
		}
		return false, nil
	case schema.FilterInNumberRange:
		n, ok := toDecimal(value)
		if !ok {
			return false, nil
		}
		lo, hi := rangeBounds(filterValue)
		if lo != nil && hi != nil && lo.GreaterThan(*hi) {
			lo, hi = hi, lo
		}
		if lo != nil && n.LessThan(*lo) {
			return false, nil
		}
		if hi != nil && n.GreaterThan(*hi) {
			return false, nil
		}
		return true, nil
	}
	return false, nil
}

// strictEquals treats numbers of different Go types as equal when their
// values match; everything else must be deeply equal
func strictEquals(a, b interface{}) bool {
	if isNumber(a) && isNumber(b) {
		return looseEquals(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func listContains(items []interface{}, want interface{}) bool {
	for _, item := range items {
		if strictEquals(item, want) {
			return true
		}
	}
	return false
}

// autoFilterFn picks a predicate from a sample value of the column
func autoFilterFn(sample interface{}) schema.FilterFn {
	switch {
	case sample == nil:
		return schema.FilterWeakEquals
	case isList(sample):
		return schema.FilterArrIncludes
	case isNumber(sample):
		return schema.FilterInNumberRange
	}
	switch sample.(type) {
	case string:
		return schema.FilterIncludesString
	case bool:
		return schema.FilterEquals
	case map[string]interface{}:
		return schema.FilterEquals
	}
	return schema.FilterWeakEquals
}
