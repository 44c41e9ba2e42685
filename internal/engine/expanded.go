package engine

// GetExpandedRowModel flattens the sorted model into the display list: a
// row's children follow it only when the row is expanded. Collapsed branches
// are pruned from Rows but FlatRows still holds every sorted row.
func (t *Table) GetExpandedRowModel() *RowModel {
	deps := t.deps(SliceColumnFilters, SliceGlobalFilter, SliceSorting, SliceExpanded)
	return t.memos.expanded.get(deps, func() *RowModel {
		src := t.GetSortedRowModel()
		if len(src.Rows) == 0 || len(t.state.Expanded) == 0 {
			return src
		}
		var rows []*Row
		var walk func([]*Row)
		walk = func(rs []*Row) {
			for _, r := range rs {
				rows = append(rows, r)
				if len(r.SubRows) > 0 && r.GetIsExpanded() {
					walk(r.SubRows)
				}
			}
		}
		walk(src.Rows)
		m := &RowModel{Rows: rows, FlatRows: src.FlatRows, RowsByID: src.RowsByID}
		t.modelComputed("expanded", m)
		return m
	})
}

// GetPreExpandedRowModel returns the model expansion starts from
func (t *Table) GetPreExpandedRowModel() *RowModel {
	return t.GetSortedRowModel()
}

// GetCanExpand reports whether the row has children or the caller says it
// can load some
func (r *Row) GetCanExpand() bool {
	if fn := r.table.opts.GetRowCanExpand; fn != nil {
		return fn(r)
	}
	return len(r.SubRows) > 0
}

// GetIsExpanded reports whether the row is expanded
func (r *Row) GetIsExpanded() bool {
	return r.table.state.Expanded[r.ID]
}

// GetIsAllParentsExpanded reports whether every ancestor is expanded
func (r *Row) GetIsAllParentsExpanded() bool {
	for _, p := range r.GetParentRows() {
		if !p.GetIsExpanded() {
			return false
		}
	}
	return true
}

// ToggleExpanded flips the row's expansion
func (r *Row) ToggleExpanded() {
	r.SetExpanded(!r.GetIsExpanded())
}

// SetExpanded expands or collapses the row. Rows that cannot expand are
// never marked expanded.
func (r *Row) SetExpanded(expanded bool) {
	exists := r.GetIsExpanded()
	if exists == expanded || (expanded && !r.GetCanExpand()) {
		return
	}
	r.table.SetExpanded(func(old ExpandedState) ExpandedState {
		if expanded {
			old[r.ID] = true
		} else {
			delete(old, r.ID)
		}
		return old
	})
}

// ToggleAllRowsExpanded expands every expandable row, or collapses all
func (t *Table) ToggleAllRowsExpanded(expanded bool) {
	if !expanded {
		t.SetExpanded(Replace(ExpandedState{}))
		return
	}
	next := ExpandedState{}
	for _, r := range t.GetCoreRowModel().FlatRows {
		if r.GetCanExpand() {
			next[r.ID] = true
		}
	}
	t.SetExpanded(Replace(next))
}

// GetIsAllRowsExpanded reports whether every expandable row is expanded
func (t *Table) GetIsAllRowsExpanded() bool {
	some := false
	for _, r := range t.GetCoreRowModel().FlatRows {
		if !r.GetCanExpand() {
			continue
		}
		if !r.GetIsExpanded() {
			return false
		}
		some = true
	}
	return some
}

// GetIsSomeRowsExpanded reports whether any row is expanded
func (t *Table) GetIsSomeRowsExpanded() bool {
	for _, v := range t.state.Expanded {
		if v {
			return true
		}
	}
	return false
}

// GetExpandedDepth returns how many levels are open: one more than the
// deepest expanded row's depth, or 0 when nothing is expanded
func (t *Table) GetExpandedDepth() int {
	core := t.GetCoreRowModel()
	depth := 0
	for id, v := range t.state.Expanded {
		if !v {
			continue
		}
		if r, ok := core.RowsByID[id]; ok && r.Depth+1 > depth {
			depth = r.Depth + 1
		}
	}
	return depth
}
