package engine

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leengari/tablekit/internal/domain/schema"
)

// SortDirection is the sort state of one column
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// sortKey is a sort entry resolved against its column
type sortKey struct {
	column  *Column
	desc    bool
	compare func(a, b *Row) int
}

// GetSortedRowModel orders the filtered model by the sorting state. Each
// nesting level is sorted on its own, so children stay under their parent.
// Ties fall back to source order.
func (t *Table) GetSortedRowModel() *RowModel {
	return t.memos.sorted.get(t.deps(SliceColumnFilters, SliceGlobalFilter, SliceSorting), func() *RowModel {
		src := t.GetFilteredRowModel()
		keys := t.resolveSorting()
		if len(keys) == 0 || len(src.Rows) == 0 {
			return src
		}
		m := newRowModel(t.sortRows(src.Rows, keys))
		t.modelComputed("sorted", m)
		return m
	})
}

// GetPreSortedRowModel returns the model sorting starts from
func (t *Table) GetPreSortedRowModel() *RowModel {
	return t.GetFilteredRowModel()
}

func (t *Table) resolveSorting() []sortKey {
	keys := make([]sortKey, 0, len(t.state.Sorting))
	for _, cs := range t.state.Sorting {
		col, ok := t.columnsByID[cs.ID]
		if !ok || !col.GetCanSort() {
			continue
		}
		keys = append(keys, sortKey{column: col, desc: cs.Desc, compare: col.sortingFn()})
	}
	return keys
}

func (t *Table) sortRows(rows []*Row, keys []sortKey) []*Row {
	out := make([]*Row, len(rows))
	for i, r := range rows {
		out[i] = r.derive()
	}
	slices.SortStableFunc(out, func(a, b *Row) int {
		for _, k := range keys {
			if c := compareKey(k, a, b); c != 0 {
				return c
			}
		}
		return a.Index - b.Index
	})
	for _, r := range out {
		if len(r.SubRows) > 0 {
			r.SubRows = t.sortRows(r.SubRows, keys)
		}
	}
	return out
}

// compareKey compares two rows on one sort key. Undefined values are placed
// by the column's SortUndefined rule before the comparator runs.
func compareKey(k sortKey, a, b *Row) int {
	_, aDefined := a.GetValue(k.column.ID)
	_, bDefined := b.GetValue(k.column.ID)

	c := 0
	if !aDefined || !bDefined {
		if !aDefined && !bDefined {
			return 0
		}
		switch k.column.Def.SortUndefined {
		case schema.SortUndefinedFirst:
			if !aDefined {
				return -1
			}
			return 1
		case schema.SortUndefinedLast:
			if !aDefined {
				return 1
			}
			return -1
		case schema.SortUndefinedLow:
			c = 1
			if !aDefined {
				c = -1
			}
		default:
			c = -1
			if !aDefined {
				c = 1
			}
		}
	}
	if c == 0 {
		c = k.compare(a, b)
	}
	if c == 0 {
		return 0
	}
	if k.desc {
		c = -c
	}
	if k.column.Def.InvertSorting {
		c = -c
	}
	return c
}

// sortingFn resolves the column's row comparator
func (c *Column) sortingFn() func(a, b *Row) int {
	id := c.ID
	if c.Def.Compare != nil {
		return func(a, b *Row) int {
			av, _ := a.GetValue(id)
			bv, _ := b.GetValue(id)
			return c.Def.Compare(av, bv)
		}
	}

	values := func(fn func(a, b interface{}) int) func(a, b *Row) int {
		return func(a, b *Row) int {
			av, _ := a.GetValue(id)
			bv, _ := b.GetValue(id)
			return fn(av, bv)
		}
	}
	t := c.table

	fn := c.Def.SortingFn
	if fn == schema.SortAuto {
		fn = c.GetAutoSortingFn()
	}
	switch fn {
	case schema.SortAlphanumeric:
		return values(func(a, b interface{}) int {
			return compareAlphanumeric(strings.ToLower(toString(a)), strings.ToLower(toString(b)))
		})
	case schema.SortAlphanumericCaseSensitive:
		return values(func(a, b interface{}) int {
			return compareAlphanumeric(toString(a), toString(b))
		})
	case schema.SortText:
		return values(func(a, b interface{}) int {
			return t.collator.CompareString(toString(a), toString(b))
		})
	case schema.SortTextCaseSensitive:
		return values(func(a, b interface{}) int {
			return t.collatorSensitive.CompareString(toString(a), toString(b))
		})
	case schema.SortDatetime:
		return values(compareDatetime)
	case schema.SortFuzzy:
		alnum := values(func(a, b interface{}) int {
			return compareAlphanumeric(strings.ToLower(toString(a)), strings.ToLower(toString(b)))
		})
		return func(a, b *Row) int {
			ra, aok := a.filterMeta[id]
			rb, bok := b.filterMeta[id]
			if aok && bok {
				if dir := CompareRanks(ra, rb); dir != 0 {
					return dir
				}
			}
			return alnum(a, b)
		}
	default:
		return values(compareBasic)
	}
}

// GetAutoSortingFn picks a comparator from the first few filtered values
func (c *Column) GetAutoSortingFn() schema.SortingFn {
	rows := c.table.GetFilteredRowModel().FlatRows
	if len(rows) > 10 {
		rows = rows[:10]
	}
	isString := false
	for _, r := range rows {
		v, ok := r.GetValue(c.ID)
		if !ok {
			continue
		}
		switch v.(type) {
		case time.Time, *time.Time:
			return schema.SortDatetime
		}
		if s, ok := v.(string); ok {
			isString = true
			if reDigits.MatchString(s) {
				return schema.SortAlphanumeric
			}
		}
	}
	if isString {
		return schema.SortText
	}
	return schema.SortBasic
}

func isStringValue(v interface{}) bool {
	_, ok := v.(string)
	return ok
}

var reDigits = regexp.MustCompile(`[0-9]+`)

// compareAlphanumeric compares strings chunk by chunk, digit runs as numbers
func compareAlphanumeric(a, b string) int {
	ac := splitAlphanumeric(a)
	bc := splitAlphanumeric(b)
	for len(ac) > 0 && len(bc) > 0 {
		aa, bb := ac[0], bc[0]
		ac, bc = ac[1:], bc[1:]

		an, aNum := digitChunk(aa)
		bn, bNum := digitChunk(bb)
		switch {
		case !aNum && !bNum:
			if c := strings.Compare(aa, bb); c != 0 {
				return c
			}
		case aNum != bNum:
			if !aNum {
				return -1
			}
			return 1
		default:
			if c := an.Cmp(bn); c != 0 {
				return c
			}
		}
	}
	return len(ac) - len(bc)
}

func splitAlphanumeric(s string) []string {
	var chunks []string
	last := 0
	for _, loc := range reDigits.FindAllStringIndex(s, -1) {
		if loc[0] > last {
			chunks = append(chunks, s[last:loc[0]])
		}
		chunks = append(chunks, s[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(s) {
		chunks = append(chunks, s[last:])
	}
	return chunks
}

func digitChunk(s string) (decimal.Decimal, bool) {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

func compareDatetime(a, b interface{}) int {
	ta, aok := toTime(a)
	tb, bok := toTime(b)
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}
	return ta.Compare(tb)
}

// compareBasic orders numbers by value, booleans false first, and
// everything else by string form
func compareBasic(a, b interface{}) int {
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Cmp(db)
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case !ba:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(toString(a), toString(b))
}

// GetCanSort reports whether the column may be sorted
func (c *Column) GetCanSort() bool {
	return !c.table.opts.DisableSorting && !c.Def.DisableSorting && c.Def.HasAccessor()
}

// GetCanMultiSort reports whether the column may join a multi-column sort
func (c *Column) GetCanMultiSort() bool {
	return c.GetCanSort() && !c.table.opts.DisableMultiSort
}

// GetIsSorted returns the column's current direction, SortNone if unsorted
func (c *Column) GetIsSorted() SortDirection {
	cs, idx := c.table.state.Sorting.Find(c.ID)
	switch {
	case idx < 0:
		return SortNone
	case cs.Desc:
		return SortDesc
	default:
		return SortAsc
	}
}

// GetSortIndex returns the column's precedence in the sort, or -1
func (c *Column) GetSortIndex() int {
	_, idx := c.table.state.Sorting.Find(c.ID)
	return idx
}

// GetAutoSortDir is ascending for string columns, descending otherwise
func (c *Column) GetAutoSortDir() SortDirection {
	for _, r := range c.table.GetFilteredRowModel().FlatRows {
		if v, ok := r.GetValue(c.ID); ok {
			if isStringValue(v) {
				return SortAsc
			}
			return SortDesc
		}
	}
	return SortAsc
}

// GetFirstSortDir is the direction applied the first time the column is toggled
func (c *Column) GetFirstSortDir() SortDirection {
	switch c.Def.SortFirst {
	case schema.SortFirstAsc:
		return SortAsc
	case schema.SortFirstDesc:
		return SortDesc
	}
	return c.GetAutoSortDir()
}

// GetNextSortingOrder returns the direction the next toggle moves to; SortNone
// means the toggle removes the column from the sort
func (c *Column) GetNextSortingOrder(multi bool) SortDirection {
	first := c.GetFirstSortDir()
	current := c.GetIsSorted()
	if current == SortNone {
		return first
	}
	opts := c.table.opts
	if current != first && !opts.DisableSortingRemoval && (!multi || !opts.DisableMultiRemove) {
		return SortNone
	}
	if current == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// ToggleSorting cycles the column through its sort directions. With multi
// the column is added to or toggled within the existing sort; otherwise it
// replaces it.
func (c *Column) ToggleSorting(multi bool) {
	c.toggleSorting(nil, multi)
}

// SetSortDirection sorts the column in the given direction
func (c *Column) SetSortDirection(desc bool, multi bool) {
	c.toggleSorting(&desc, multi)
}

// ClearSorting removes the column from the sort
func (c *Column) ClearSorting() {
	if c.GetSortIndex() < 0 {
		return
	}
	c.table.SetSorting(func(old SortingState) SortingState {
		out := make(SortingState, 0, len(old))
		for _, cs := range old {
			if cs.ID != c.ID {
				out = append(out, cs)
			}
		}
		return out
	})
}

func (c *Column) toggleSorting(desc *bool, multi bool) {
	if !c.GetCanSort() {
		return
	}
	next := c.GetNextSortingOrder(multi)
	opts := c.table.opts

	c.table.SetSorting(func(old SortingState) SortingState {
		_, idx := old.Find(c.ID)
		nextDesc := next == SortDesc
		if desc != nil {
			nextDesc = *desc
		}

		var action string
		switch {
		case len(old) > 0 && multi && c.GetCanMultiSort():
			action = "add"
			if idx >= 0 {
				action = "toggle"
			}
		case len(old) > 0 && idx != len(old)-1:
			action = "replace"
		case idx >= 0:
			action = "toggle"
		default:
			action = "replace"
		}
		if action == "toggle" && desc == nil && next == SortNone {
			action = "remove"
		}

		switch action {
		case "add":
			out := append(old, ColumnSort{ID: c.ID, Desc: nextDesc})
			if limit := opts.MaxMultiSortColCount; limit > 0 && len(out) > limit {
				out = out[len(out)-limit:]
			}
			return out
		case "toggle":
			old[idx].Desc = nextDesc
			return old
		case "remove":
			return slices.Delete(old, idx, idx+1)
		default:
			return SortingState{{ID: c.ID, Desc: nextDesc}}
		}
	})
}
