package engine

import (
	"strconv"

	"github.com/leengari/tablekit/internal/domain/data"
)

// Row is a row handle inside a row model. Handles are read-only snapshots:
// each derived model may hold its own handle for the same row id, differing
// only in SubRows.
type Row struct {
	ID       string
	Index    int // position among siblings in the source data
	Depth    int
	ParentID string
	Original data.Row
	SubRows  []*Row

	table      *Table
	values     map[string]cellValue
	filterMeta map[string]RankInfo
}

type cellValue struct {
	value   interface{}
	defined bool
}

// RowModel is a derived, read-only view of rows
type RowModel struct {
	Rows     []*Row          // top-level rows, or the display list once expanded
	FlatRows []*Row          // every row reachable from the model, depth-first
	RowsByID map[string]*Row // lookup into FlatRows
}

// newRowModel indexes rows depth-first
func newRowModel(rows []*Row) *RowModel {
	m := &RowModel{
		Rows:     rows,
		FlatRows: make([]*Row, 0, len(rows)),
		RowsByID: make(map[string]*Row, len(rows)),
	}
	var walk func([]*Row)
	walk = func(rs []*Row) {
		for _, r := range rs {
			m.FlatRows = append(m.FlatRows, r)
			if _, dup := m.RowsByID[r.ID]; !dup {
				m.RowsByID[r.ID] = r
			}
			walk(r.SubRows)
		}
	}
	walk(rows)
	return m
}

// IDs returns the ids of Rows in order
func (m *RowModel) IDs() []string {
	ids := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		ids[i] = r.ID
	}
	return ids
}

// derive copies the handle so a model can give it different children
func (r *Row) derive() *Row {
	cp := *r
	return &cp
}

// GetValue returns the value of a column for this row
func (r *Row) GetValue(columnID string) (interface{}, bool) {
	if cv, ok := r.values[columnID]; ok {
		return cv.value, cv.defined
	}
	col, ok := r.table.columnsByID[columnID]
	if !ok {
		return nil, false
	}
	v, defined := col.Def.Value(r.Original)
	if defined && v == nil {
		defined = false
	}
	if r.values == nil {
		r.values = make(map[string]cellValue)
	}
	r.values[columnID] = cellValue{value: v, defined: defined}
	return v, defined
}

// RenderValue renders the value of a column using the column's kind
func (r *Row) RenderValue(columnID string) string {
	col, ok := r.table.columnsByID[columnID]
	if !ok {
		return ""
	}
	v, defined := r.GetValue(columnID)
	return col.Def.Kind.Render(v, defined)
}

// GetFilterMeta returns the fuzzy rank recorded for a column while filtering
func (r *Row) GetFilterMeta(columnID string) (RankInfo, bool) {
	info, ok := r.filterMeta[columnID]
	return info, ok
}

// GetParentRow returns the parent row from the core model
func (r *Row) GetParentRow() (*Row, bool) {
	if r.ParentID == "" {
		return nil, false
	}
	p, ok := r.table.GetCoreRowModel().RowsByID[r.ParentID]
	return p, ok
}

// GetParentRows returns the ancestor chain, root first
func (r *Row) GetParentRows() []*Row {
	var chain []*Row
	cur := r
	for {
		p, ok := cur.GetParentRow()
		if !ok {
			break
		}
		chain = append([]*Row{p}, chain...)
		cur = p
	}
	return chain
}

// GetLeafRows returns every descendant, depth-first
func (r *Row) GetLeafRows() []*Row {
	var out []*Row
	for _, sub := range r.SubRows {
		out = append(out, sub)
		out = append(out, sub.GetLeafRows()...)
	}
	return out
}

// Cell is one rendered cell of a row
type Cell struct {
	ID      string
	Row     *Row
	Column  *Column
	Value   interface{}
	Defined bool
}

// Render formats the cell using the column's kind
func (c Cell) Render() string {
	return c.Column.Def.Kind.Render(c.Value, c.Defined)
}

// GetVisibleCells returns cells for the visible columns in display order
func (r *Row) GetVisibleCells() []Cell {
	cols := r.table.GetVisibleLeafColumns()
	cells := make([]Cell, len(cols))
	for i, col := range cols {
		v, ok := r.GetValue(col.ID)
		cells[i] = Cell{
			ID:      r.ID + "_" + col.ID,
			Row:     r,
			Column:  col,
			Value:   v,
			Defined: ok,
		}
	}
	return cells
}

func defaultRowID(index int, parent *Row) string {
	if parent == nil {
		return strconv.Itoa(index)
	}
	return parent.ID + "." + strconv.Itoa(index)
}
