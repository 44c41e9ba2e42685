package engine

// GetPaginationRowModel windows the expanded display list to the current
// page. Out-of-range pages and non-positive sizes give an empty page.
// FlatRows holds the page rows and their descendants.
func (t *Table) GetPaginationRowModel() *RowModel {
	deps := t.deps(SliceColumnFilters, SliceGlobalFilter, SliceSorting, SliceExpanded, SlicePagination)
	return t.memos.paginated.get(deps, func() *RowModel {
		src := t.GetExpandedRowModel()
		p := t.state.Pagination

		var page []*Row
		if p.PageSize > 0 && p.PageIndex >= 0 {
			start := p.PageIndex * p.PageSize
			if start < len(src.Rows) {
				end := min(start+p.PageSize, len(src.Rows))
				page = src.Rows[start:end]
			}
		}

		m := &RowModel{
			Rows:     page,
			FlatRows: make([]*Row, 0, len(page)),
			RowsByID: make(map[string]*Row, len(page)),
		}
		var walk func(*Row)
		walk = func(r *Row) {
			if _, seen := m.RowsByID[r.ID]; seen {
				return
			}
			m.FlatRows = append(m.FlatRows, r)
			m.RowsByID[r.ID] = r
			for _, sub := range r.SubRows {
				walk(sub)
			}
		}
		for _, r := range page {
			walk(r)
		}
		t.modelComputed("paginated", m)
		return m
	})
}

// GetPrePaginationRowModel returns the model pagination windows
func (t *Table) GetPrePaginationRowModel() *RowModel {
	return t.GetExpandedRowModel()
}

// GetRowCount returns the number of display rows before pagination
func (t *Table) GetRowCount() int {
	return len(t.GetExpandedRowModel().Rows)
}

// GetPageCount returns the number of pages at the current size
func (t *Table) GetPageCount() int {
	size := t.state.Pagination.PageSize
	if size <= 0 {
		return 0
	}
	return (t.GetRowCount() + size - 1) / size
}

// GetPageOptions lists the valid page indexes
func (t *Table) GetPageOptions() []int {
	n := t.GetPageCount()
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// GetCanPreviousPage reports whether a previous page exists
func (t *Table) GetCanPreviousPage() bool {
	return t.state.Pagination.PageIndex > 0
}

// GetCanNextPage reports whether a next page exists
func (t *Table) GetCanNextPage() bool {
	return t.state.Pagination.PageIndex < t.GetPageCount()-1
}

// SetPageIndex moves to a page. Negative indexes become 0; indexes past the
// end are kept and simply yield an empty page.
func (t *Table) SetPageIndex(index int) {
	t.SetPagination(func(old PaginationState) PaginationState {
		old.PageIndex = max(index, 0)
		return old
	})
}

// SetPageSize changes the page size, keeping the first row of the current
// page on screen
func (t *Table) SetPageSize(size int) {
	t.SetPagination(func(old PaginationState) PaginationState {
		size = max(size, 1)
		top := old.PageSize * old.PageIndex
		return PaginationState{PageIndex: top / size, PageSize: size}
	})
}

// PreviousPage moves back one page, stopping at the first
func (t *Table) PreviousPage() {
	t.SetPageIndex(t.state.Pagination.PageIndex - 1)
}

// NextPage moves forward one page
func (t *Table) NextPage() {
	t.SetPageIndex(t.state.Pagination.PageIndex + 1)
}

// FirstPage moves to page 0
func (t *Table) FirstPage() {
	t.SetPageIndex(0)
}

// LastPage moves to the last page
func (t *Table) LastPage() {
	t.SetPageIndex(t.GetPageCount() - 1)
}

// ResetPageIndex restores the initial page index
func (t *Table) ResetPageIndex() {
	t.SetPageIndex(t.initial.Pagination.PageIndex)
}

// ResetPageSize restores the initial page size
func (t *Table) ResetPageSize() {
	t.SetPageSize(t.initial.Pagination.PageSize)
}
