package engine

// subRowSelection summarizes how much of a row's subtree is selected
type subRowSelection int

const (
	subRowsNone subRowSelection = iota
	subRowsSome
	subRowsAll
)

// GetCanSelect reports whether the row may be selected
func (r *Row) GetCanSelect() bool {
	opts := r.table.opts
	if opts.DisableRowSelection {
		return false
	}
	if opts.EnableRowSelection != nil {
		return opts.EnableRowSelection(r)
	}
	return true
}

// GetCanSelectSubRows reports whether selecting the row cascades to children
func (r *Row) GetCanSelectSubRows() bool {
	return !r.table.opts.DisableSubRowSelection
}

// GetCanMultiSelect reports whether selecting the row keeps other selections
func (r *Row) GetCanMultiSelect() bool {
	return !r.table.opts.DisableMultiRowSelection
}

// GetIsSelected reports whether the row itself is selected
func (r *Row) GetIsSelected() bool {
	return r.table.state.RowSelection[r.ID]
}

// GetIsSomeSelected reports whether part, but not all, of the row's subtree
// is selected
func (r *Row) GetIsSomeSelected() bool {
	return r.subRowSelection() == subRowsSome
}

// GetIsAllSubRowsSelected reports whether every selectable descendant is
// selected
func (r *Row) GetIsAllSubRowsSelected() bool {
	return r.subRowSelection() == subRowsAll
}

func (r *Row) subRowSelection() subRowSelection {
	if len(r.SubRows) == 0 {
		return subRowsNone
	}
	all, some := true, false
	for _, sub := range r.SubRows {
		if some && !all {
			break
		}
		if sub.GetCanSelect() {
			if sub.GetIsSelected() {
				some = true
			} else {
				all = false
			}
		}
		if len(sub.SubRows) > 0 {
			switch sub.subRowSelection() {
			case subRowsAll:
				some = true
			case subRowsSome:
				some = true
				all = false
			default:
				all = false
			}
		}
	}
	switch {
	case all && some:
		return subRowsAll
	case some:
		return subRowsSome
	}
	return subRowsNone
}

// ToggleSelected selects or deselects the row. With selectChildren the
// change cascades to every descendant that allows it.
func (r *Row) ToggleSelected(value bool, selectChildren bool) {
	if r.GetCanSelect() && r.GetIsSelected() == value && !selectChildren {
		return
	}
	r.table.SetRowSelection(func(old RowSelectionState) RowSelectionState {
		r.table.mutateRowIsSelected(old, r.ID, value, selectChildren)
		return old
	})
}

// ToggleRowSelected selects or deselects a row by id, children included.
// Unknown ids are ignored.
func (t *Table) ToggleRowSelected(id string, value bool) {
	r, ok := t.GetRow(id)
	if !ok {
		return
	}
	r.ToggleSelected(value, true)
}

// mutateRowIsSelected applies a selection change using core row handles so
// children hidden by filters are still reached
func (t *Table) mutateRowIsSelected(sel RowSelectionState, id string, value bool, children bool) {
	r, ok := t.GetRow(id)
	if !ok {
		return
	}
	if value {
		if !r.GetCanMultiSelect() {
			clear(sel)
		}
		if r.GetCanSelect() {
			sel[id] = true
		}
	} else {
		delete(sel, id)
	}
	if children && r.GetCanSelectSubRows() {
		for _, sub := range r.SubRows {
			t.mutateRowIsSelected(sel, sub.ID, value, children)
		}
	}
}

// ToggleAllRowsSelected selects or clears every row that passes the filters
func (t *Table) ToggleAllRowsSelected(value bool) {
	rows := t.GetFilteredRowModel().FlatRows
	t.SetRowSelection(func(old RowSelectionState) RowSelectionState {
		for _, r := range rows {
			if !value {
				delete(old, r.ID)
			} else if r.GetCanSelect() {
				old[r.ID] = true
			}
		}
		return old
	})
}

// ToggleAllPageRowsSelected selects or clears the rows of the current page
// and their descendants
func (t *Table) ToggleAllPageRowsSelected(value bool) {
	rows := t.GetPaginationRowModel().Rows
	t.SetRowSelection(func(old RowSelectionState) RowSelectionState {
		for _, r := range rows {
			t.mutateRowIsSelected(old, r.ID, value, true)
		}
		return old
	})
}

// GetIsAllRowsSelected reports whether every selectable filtered row is
// selected
func (t *Table) GetIsAllRowsSelected() bool {
	rows := t.GetFilteredRowModel().FlatRows
	if len(rows) == 0 || len(t.state.RowSelection) == 0 {
		return false
	}
	for _, r := range rows {
		if r.GetCanSelect() && !r.GetIsSelected() {
			return false
		}
	}
	return true
}

// GetIsSomeRowsSelected reports a partial selection of the filtered rows,
// the indeterminate state of a select-all checkbox
func (t *Table) GetIsSomeRowsSelected() bool {
	if t.GetIsAllRowsSelected() {
		return false
	}
	for _, r := range t.GetFilteredRowModel().FlatRows {
		if r.GetCanSelect() && r.GetIsSelected() {
			return true
		}
	}
	return false
}

// GetIsAllPageRowsSelected reports whether every selectable row on the
// current page is selected
func (t *Table) GetIsAllPageRowsSelected() bool {
	found := false
	for _, r := range t.GetPaginationRowModel().FlatRows {
		if !r.GetCanSelect() {
			continue
		}
		if !r.GetIsSelected() {
			return false
		}
		found = true
	}
	return found
}

// GetIsSomePageRowsSelected reports a partial selection of the current page
func (t *Table) GetIsSomePageRowsSelected() bool {
	if t.GetIsAllPageRowsSelected() {
		return false
	}
	for _, r := range t.GetPaginationRowModel().FlatRows {
		if r.GetCanSelect() && (r.GetIsSelected() || r.GetIsSomeSelected()) {
			return true
		}
	}
	return false
}

// GetSelectedRowModel returns the selected rows of the core model
func (t *Table) GetSelectedRowModel() *RowModel {
	return t.selectRows(t.GetCoreRowModel())
}

// GetFilteredSelectedRowModel returns the selected rows that pass the filters
func (t *Table) GetFilteredSelectedRowModel() *RowModel {
	return t.selectRows(t.GetFilteredRowModel())
}

// selectRows keeps selected rows; FlatRows lists every selected row even
// when its parent is not selected
func (t *Table) selectRows(src *RowModel) *RowModel {
	m := &RowModel{RowsByID: make(map[string]*Row)}
	if len(t.state.RowSelection) == 0 {
		return m
	}
	var recurse func([]*Row) []*Row
	recurse = func(rows []*Row) []*Row {
		var out []*Row
		for _, src := range rows {
			selected := src.GetIsSelected()
			if selected {
				m.FlatRows = append(m.FlatRows, src)
				m.RowsByID[src.ID] = src
			}
			r := src
			if len(src.SubRows) > 0 {
				r = src.derive()
				r.SubRows = recurse(src.SubRows)
			}
			if selected {
				out = append(out, r)
			}
		}
		return out
	}
	m.Rows = recurse(src.Rows)
	return m
}
