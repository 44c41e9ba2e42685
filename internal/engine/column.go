package engine

import (
	"slices"

	"github.com/leengari/tablekit/internal/domain/schema"
)

// Column is a handle on one leaf column of a Table
type Column struct {
	ID  string
	Def schema.ColumnDef

	table *Table
}

// PinPosition is the side a column is pinned to
type PinPosition string

const (
	PinNone  PinPosition = ""
	PinLeft  PinPosition = "left"
	PinRight PinPosition = "right"
)

// Header is one header cell for a visible leaf column
type Header struct {
	ID     string
	Column *Column
	Index  int
	Text   string
	Size   int
	Start  int
	Pinned PinPosition
}

// GetColumn looks a column up by id
func (t *Table) GetColumn(id string) (*Column, bool) {
	c, ok := t.columnsByID[id]
	return c, ok
}

// GetAllLeafColumns returns every column in display order: ids listed in
// ColumnOrder first, the rest in definition order. Unknown ids are ignored.
func (t *Table) GetAllLeafColumns() []*Column {
	order := t.state.ColumnOrder
	if len(order) == 0 {
		return slices.Clone(t.columns)
	}
	rest := slices.Clone(t.columns)
	out := make([]*Column, 0, len(rest))
	for _, id := range order {
		if len(rest) == 0 {
			break
		}
		i := slices.IndexFunc(rest, func(c *Column) bool { return c.ID == id })
		if i < 0 {
			continue
		}
		out = append(out, rest[i])
		rest = slices.Delete(rest, i, i+1)
	}
	return append(out, rest...)
}

// GetLeftVisibleLeafColumns returns visible columns pinned left, in pin order
func (t *Table) GetLeftVisibleLeafColumns() []*Column {
	return t.pinnedVisible(t.state.ColumnPinning.Left)
}

// GetRightVisibleLeafColumns returns visible columns pinned right, in pin order
func (t *Table) GetRightVisibleLeafColumns() []*Column {
	return t.pinnedVisible(t.state.ColumnPinning.Right)
}

// GetCenterVisibleLeafColumns returns visible unpinned columns in display order
func (t *Table) GetCenterVisibleLeafColumns() []*Column {
	var out []*Column
	for _, c := range t.GetAllLeafColumns() {
		if c.GetIsVisible() && c.GetIsPinned() == PinNone {
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) pinnedVisible(ids []string) []*Column {
	var out []*Column
	for _, id := range ids {
		if c, ok := t.columnsByID[id]; ok && c.GetIsVisible() {
			out = append(out, c)
		}
	}
	return out
}

// GetVisibleLeafColumns returns the visible columns: left pinned, center,
// then right pinned
func (t *Table) GetVisibleLeafColumns() []*Column {
	out := t.GetLeftVisibleLeafColumns()
	out = append(out, t.GetCenterVisibleLeafColumns()...)
	return append(out, t.GetRightVisibleLeafColumns()...)
}

// GetHeaders returns one header per visible leaf column
func (t *Table) GetHeaders() []Header {
	cols := t.GetVisibleLeafColumns()
	headers := make([]Header, len(cols))
	start := 0
	for i, c := range cols {
		size := c.GetSize()
		headers[i] = Header{
			ID:     c.ID,
			Column: c,
			Index:  i,
			Text:   c.Def.HeaderText(),
			Size:   size,
			Start:  start,
			Pinned: c.GetIsPinned(),
		}
		start += size
	}
	return headers
}

// MoveColumn moves a column to position to within the display order,
// clamping to the ends. Unknown ids are ignored.
func (t *Table) MoveColumn(id string, to int) {
	if _, ok := t.columnsByID[id]; !ok {
		return
	}
	ids := make([]string, 0, len(t.columns))
	for _, c := range t.GetAllLeafColumns() {
		if c.ID != id {
			ids = append(ids, c.ID)
		}
	}
	to = min(max(to, 0), len(ids))
	t.SetColumnOrder(Replace(ColumnOrderState(slices.Insert(ids, to, id))))
}

// ToggleAllColumnsVisible shows or hides every column that can be hidden
func (t *Table) ToggleAllColumnsVisible(visible bool) {
	t.SetColumnVisibility(func(old VisibilityState) VisibilityState {
		for _, c := range t.columns {
			old[c.ID] = visible || !c.GetCanHide()
		}
		return old
	})
}

// GetIsAllColumnsVisible reports whether no column is hidden
func (t *Table) GetIsAllColumnsVisible() bool {
	for _, c := range t.columns {
		if !c.GetIsVisible() {
			return false
		}
	}
	return true
}

// GetIsSomeColumnsVisible reports whether any column is visible
func (t *Table) GetIsSomeColumnsVisible() bool {
	for _, c := range t.columns {
		if c.GetIsVisible() {
			return true
		}
	}
	return false
}

// GetTotalSize sums the widths of the visible columns
func (t *Table) GetTotalSize() int {
	total := 0
	for _, c := range t.GetVisibleLeafColumns() {
		total += c.GetSize()
	}
	return total
}

// GetIsVisible reports whether the column is shown; absent means visible
func (c *Column) GetIsVisible() bool {
	v, ok := c.table.state.ColumnVisibility[c.ID]
	return !ok || v
}

// GetCanHide reports whether the column may be hidden
func (c *Column) GetCanHide() bool {
	return !c.Def.DisableHiding
}

// ToggleVisibility flips the column's visibility
func (c *Column) ToggleVisibility() {
	c.SetVisible(!c.GetIsVisible())
}

// SetVisible shows or hides the column
func (c *Column) SetVisible(visible bool) {
	if !c.GetCanHide() || c.GetIsVisible() == visible {
		return
	}
	c.table.SetColumnVisibility(func(old VisibilityState) VisibilityState {
		old[c.ID] = visible
		return old
	})
}

// GetIndex returns the column's position among the visible columns, or -1
func (c *Column) GetIndex() int {
	return slices.Index(c.table.GetVisibleLeafColumns(), c)
}

// GetCanFilter reports whether a column filter applies to the column
func (c *Column) GetCanFilter() bool {
	return !c.table.opts.DisableColumnFilters && !c.Def.DisableColumnFilter && c.Def.HasAccessor()
}

// GetCanGlobalFilter reports whether the global filter searches the column.
// Only columns whose first value is a string or number take part.
func (c *Column) GetCanGlobalFilter() bool {
	if c.table.opts.DisableGlobalFilter || c.Def.DisableGlobalFilter || !c.Def.HasAccessor() {
		return false
	}
	v, ok := c.firstValue()
	if !ok {
		return false
	}
	_, isString := v.(string)
	return isString || isNumber(v)
}

// GetFilterFn resolves the predicate used for the column filter
func (c *Column) GetFilterFn() schema.FilterFn {
	fn := c.Def.DefaultFilterFn()
	if fn != schema.FilterAuto {
		return fn
	}
	v, _ := c.firstValue()
	return autoFilterFn(v)
}

// GetFilterValue returns the column's filter value
func (c *Column) GetFilterValue() (interface{}, bool) {
	return c.table.state.ColumnFilters.Get(c.ID)
}

// GetIsFiltered reports whether the column has a filter value
func (c *Column) GetIsFiltered() bool {
	return c.GetFilterIndex() >= 0
}

// GetFilterIndex returns the position of the column's filter, or -1
func (c *Column) GetFilterIndex() int {
	return slices.IndexFunc(c.table.state.ColumnFilters, func(f ColumnFilter) bool {
		return f.ID == c.ID
	})
}

// SetFilterValue sets the column filter. A value that is empty for the
// column's predicate removes the filter instead.
func (c *Column) SetFilterValue(value interface{}) {
	fn := c.GetFilterFn()
	c.table.SetColumnFilters(func(old ColumnFiltersState) ColumnFiltersState {
		if isEmptyFilterValue(fn, value) {
			return old.Without(c.ID)
		}
		return old.With(c.ID, value)
	})
}

// firstValue returns the first defined value of the column in the core model
func (c *Column) firstValue() (interface{}, bool) {
	for _, r := range c.table.GetCoreRowModel().FlatRows {
		if v, ok := r.GetValue(c.ID); ok {
			return v, true
		}
	}
	return nil, false
}

// GetCanPin reports whether the column may be pinned
func (c *Column) GetCanPin() bool {
	return !c.Def.DisablePinning
}

// GetIsPinned returns the side the column is pinned to
func (c *Column) GetIsPinned() PinPosition {
	p := c.table.state.ColumnPinning
	switch {
	case slices.Contains(p.Left, c.ID):
		return PinLeft
	case slices.Contains(p.Right, c.ID):
		return PinRight
	}
	return PinNone
}

// GetPinnedIndex returns the column's position within its pinned side
func (c *Column) GetPinnedIndex() int {
	p := c.table.state.ColumnPinning
	switch c.GetIsPinned() {
	case PinLeft:
		return slices.Index(p.Left, c.ID)
	case PinRight:
		return slices.Index(p.Right, c.ID)
	}
	return 0
}

// Pin moves the column to the end of a pinned side, or unpins it
func (c *Column) Pin(position PinPosition) {
	if !c.GetCanPin() {
		return
	}
	c.table.SetColumnPinning(func(old ColumnPinningState) ColumnPinningState {
		without := func(ids []string) []string {
			return slices.DeleteFunc(ids, func(id string) bool { return id == c.ID })
		}
		next := ColumnPinningState{Left: without(old.Left), Right: without(old.Right)}
		switch position {
		case PinLeft:
			next.Left = append(next.Left, c.ID)
		case PinRight:
			next.Right = append(next.Right, c.ID)
		}
		return next
	})
}

// GetCanResize reports whether the column width may change
func (c *Column) GetCanResize() bool {
	return !c.Def.DisableResizing
}

// GetSize returns the column width clamped to its bounds
func (c *Column) GetSize() int {
	size, ok := c.table.state.ColumnSizing[c.ID]
	if !ok {
		size = c.Def.Size
		if size == 0 {
			size = schema.DefaultSize
		}
	}
	lo, hi := c.Def.MinSize, c.Def.MaxSize
	if lo == 0 {
		lo = schema.DefaultMinSize
	}
	if hi == 0 {
		hi = schema.DefaultMaxSize
	}
	return min(max(size, lo), hi)
}

// SetSize stores an explicit width for the column
func (c *Column) SetSize(size int) {
	if !c.GetCanResize() {
		return
	}
	c.table.SetColumnSizing(func(old ColumnSizingState) ColumnSizingState {
		old[c.ID] = size
		return old
	})
}

// ResetSize drops the column's explicit width
func (c *Column) ResetSize() {
	if _, ok := c.table.state.ColumnSizing[c.ID]; !ok {
		return
	}
	c.table.SetColumnSizing(func(old ColumnSizingState) ColumnSizingState {
		delete(old, c.ID)
		return old
	})
}

// section returns the visible columns sharing the column's pinned side
func (c *Column) section() []*Column {
	switch c.GetIsPinned() {
	case PinLeft:
		return c.table.GetLeftVisibleLeafColumns()
	case PinRight:
		return c.table.GetRightVisibleLeafColumns()
	}
	return c.table.GetCenterVisibleLeafColumns()
}

// GetStart returns the offset of the column within its pinned side
func (c *Column) GetStart() int {
	start := 0
	for _, other := range c.section() {
		if other == c {
			return start
		}
		start += other.GetSize()
	}
	return 0
}

// GetAfter returns the width of the columns following it within its side
func (c *Column) GetAfter() int {
	after, seen := 0, false
	for _, other := range c.section() {
		if seen {
			after += other.GetSize()
		}
		if other == c {
			seen = true
		}
	}
	return after
}
