package command

import (
	"github.com/leengari/tablekit/internal/engine"
)

// ColumnMetadata describes one visible column of a result
type ColumnMetadata struct {
	Name      string      `json:"name"`
	Header    string      `json:"header"`
	Kind      string      `json:"kind"`
	Sort      string      `json:"sort,omitempty"`
	SortIndex int         `json:"sortIndex"`
	Filter    interface{} `json:"filter,omitempty"`
	Pinned    string      `json:"pinned,omitempty"`
	Size      int         `json:"size"`
}

// ResultRow is one displayed row with its rendered cells
type ResultRow struct {
	ID         string   `json:"id"`
	Depth      int      `json:"depth"`
	Selected   bool     `json:"selected"`
	Expandable bool     `json:"expandable"`
	Expanded   bool     `json:"expanded"`
	Cells      []string `json:"cells"`
}

// PageInfo locates the displayed rows within the filtered set
type PageInfo struct {
	Index    int `json:"index"`
	Size     int `json:"size"`
	Count    int `json:"count"`
	RowCount int `json:"rowCount"`
}

// Result represents the outcome of executing a command
type Result struct {
	Columns  []string         `json:"columns,omitempty"`
	Metadata []ColumnMetadata `json:"metadata,omitempty"`
	Rows     []ResultRow      `json:"rows,omitempty"`
	Page     *PageInfo        `json:"page,omitempty"`
	Message  string           `json:"message,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// view renders rows against the table's visible columns
func view(t *engine.Table, rows []*engine.Row) *Result {
	cols := t.GetVisibleLeafColumns()
	res := &Result{
		Columns:  make([]string, len(cols)),
		Metadata: make([]ColumnMetadata, len(cols)),
		Rows:     make([]ResultRow, 0, len(rows)),
	}

	for i, c := range cols {
		res.Columns[i] = c.ID
		meta := ColumnMetadata{
			Name:      c.ID,
			Header:    c.Def.HeaderText(),
			Kind:      c.Def.Kind.String(),
			Sort:      string(c.GetIsSorted()),
			SortIndex: c.GetSortIndex(),
			Pinned:    string(c.GetIsPinned()),
			Size:      c.GetSize(),
		}
		if v, ok := c.GetFilterValue(); ok {
			meta.Filter = v
		}
		res.Metadata[i] = meta
	}

	for _, r := range rows {
		cells := r.GetVisibleCells()
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			rendered[i] = cell.Render()
		}
		res.Rows = append(res.Rows, ResultRow{
			ID:         r.ID,
			Depth:      r.Depth,
			Selected:   r.GetIsSelected(),
			Expandable: r.GetCanExpand(),
			Expanded:   r.GetIsExpanded(),
			Cells:      rendered,
		})
	}
	return res
}

// pageView renders the current page with paging info
func pageView(t *engine.Table) *Result {
	res := view(t, t.GetRowModel().Rows)
	p := t.GetState().Pagination
	res.Page = &PageInfo{
		Index:    p.PageIndex,
		Size:     p.PageSize,
		Count:    t.GetPageCount(),
		RowCount: t.GetRowCount(),
	}
	return res
}
