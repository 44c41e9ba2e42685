package engine

import (
	"reflect"

	"github.com/shopspring/decimal"
)

// GetFacetedRowModel returns the rows that pass every active filter except
// the column's own, so a column's filter options reflect the other filters.
// Unknown columns get an empty model.
func (t *Table) GetFacetedRowModel(columnID string) *RowModel {
	if _, ok := t.columnsByID[columnID]; !ok {
		return newRowModel(nil)
	}
	return t.facetMemo(columnID).get(t.deps(SliceColumnFilters, SliceGlobalFilter), func() *RowModel {
		return t.filterRows(t.GetCoreRowModel(), columnID)
	})
}

// GetFacetedUniqueValues counts the distinct values of a column over its
// faceted rows. List values are counted per element; undefined values are
// skipped.
func (t *Table) GetFacetedUniqueValues(columnID string) map[interface{}]int {
	counts := make(map[interface{}]int)
	for _, r := range t.GetFacetedRowModel(columnID).FlatRows {
		v, ok := r.GetValue(columnID)
		if !ok {
			continue
		}
		for _, item := range toList(v) {
			counts[facetKey(item)]++
		}
	}
	return counts
}

// GetFacetedMinMaxValues returns the numeric range of a column over its
// faceted rows; ok is false when no value is numeric
func (t *Table) GetFacetedMinMaxValues(columnID string) (lo, hi decimal.Decimal, ok bool) {
	for _, r := range t.GetFacetedRowModel(columnID).FlatRows {
		v, defined := r.GetValue(columnID)
		if !defined {
			continue
		}
		for _, item := range toList(v) {
			d, isNum := toDecimal(item)
			if !isNum {
				continue
			}
			if !ok {
				lo, hi, ok = d, d, true
				continue
			}
			if d.LessThan(lo) {
				lo = d
			}
			if d.GreaterThan(hi) {
				hi = d
			}
		}
	}
	return lo, hi, ok
}

// facetKey makes a value usable as a map key
func facetKey(v interface{}) interface{} {
	if v == nil || reflect.TypeOf(v).Comparable() {
		return v
	}
	return toString(v)
}
