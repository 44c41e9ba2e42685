package engine

import "github.com/leengari/tablekit/internal/domain/schema"

// activeFilter is a column filter resolved against a column handle
type activeFilter struct {
	column *Column
	fn     schema.FilterFn
	value  interface{}
}

// GetFilteredRowModel applies the column filters and the global filter to
// the core model. A row is kept when it passes or when any descendant is
// kept, so the path to every match survives.
func (t *Table) GetFilteredRowModel() *RowModel {
	return t.memos.filtered.get(t.deps(SliceColumnFilters, SliceGlobalFilter), func() *RowModel {
		m := t.filterRows(t.GetCoreRowModel(), "")
		t.modelComputed("filtered", m)
		return m
	})
}

// GetPreFilteredRowModel returns the model filtering starts from
func (t *Table) GetPreFilteredRowModel() *RowModel {
	return t.GetCoreRowModel()
}

// resolveFilters returns the column filters that apply, skipping unknown or
// unfilterable columns and the excluded column
func (t *Table) resolveFilters(exclude string) []activeFilter {
	var out []activeFilter
	for _, cf := range t.state.ColumnFilters {
		if cf.ID == exclude {
			continue
		}
		col, ok := t.columnsByID[cf.ID]
		if !ok || !col.GetCanFilter() {
			continue
		}
		out = append(out, activeFilter{column: col, fn: col.GetFilterFn(), value: cf.Value})
	}
	return out
}

// globalColumns returns the columns the global filter searches, or nil when
// no global filter is active. A global filter with no searchable column is
// ignored.
func (t *Table) globalColumns() []*Column {
	if t.state.GlobalFilter == "" || t.opts.DisableGlobalFilter {
		return nil
	}
	var out []*Column
	for _, col := range t.columns {
		if col.GetCanGlobalFilter() {
			out = append(out, col)
		}
	}
	return out
}

// filterRows filters a model with every active filter except the column
// filter named by exclude
func (t *Table) filterRows(src *RowModel, exclude string) *RowModel {
	filters := t.resolveFilters(exclude)
	global := t.globalColumns()
	globalActive := len(global) > 0

	if len(src.Rows) == 0 || (len(filters) == 0 && !globalActive) {
		return src
	}

	pass := func(r *Row) bool {
		meta := make(map[string]RankInfo)
		ok := true
		for _, f := range filters {
			v, defined := r.GetValue(f.column.ID)
			passed, rank := applyFilter(f.fn, v, defined, f.value)
			if rank != nil {
				meta[f.column.ID] = *rank
			}
			if !passed {
				ok = false
				break
			}
		}
		if ok && globalActive {
			// every column is ranked so fuzzy sorting has meta for all of them
			matched := false
			for _, col := range global {
				v, defined := r.GetValue(col.ID)
				passed, rank := applyFilter(t.opts.GlobalFilterFn, v, defined, t.state.GlobalFilter)
				if rank != nil {
					if prev, seen := meta[col.ID]; !seen || rank.Rank > prev.Rank {
						meta[col.ID] = *rank
					}
				}
				if passed {
					matched = true
				}
			}
			ok = matched
		}
		r.filterMeta = meta
		return ok
	}

	var recurse func(rows []*Row, depth int) []*Row
	recurse = func(rows []*Row, depth int) []*Row {
		out := make([]*Row, 0, len(rows))
		for _, src := range rows {
			r := src.derive()
			r.SubRows = nil
			if len(src.SubRows) > 0 && depth < t.opts.MaxLeafRowFilterDepth {
				r.SubRows = recurse(src.SubRows, depth+1)
				if pass(r) || len(r.SubRows) > 0 {
					out = append(out, r)
				}
				continue
			}
			if pass(r) {
				out = append(out, r)
			}
		}
		return out
	}

	return newRowModel(recurse(src.Rows, 0))
}
