package engine

import "maps"

// DefaultPageSize is the page size used when no pagination state is given
const DefaultPageSize = 10

// StateSlice names one independent slice of table state
type StateSlice string

const (
	SliceSorting          StateSlice = "sorting"
	SliceColumnFilters    StateSlice = "columnFilters"
	SliceGlobalFilter     StateSlice = "globalFilter"
	SlicePagination       StateSlice = "pagination"
	SliceRowSelection     StateSlice = "rowSelection"
	SliceExpanded         StateSlice = "expanded"
	SliceColumnOrder      StateSlice = "columnOrder"
	SliceColumnVisibility StateSlice = "columnVisibility"
	SliceColumnSizing     StateSlice = "columnSizing"
	SliceColumnPinning    StateSlice = "columnPinning"
)

// ColumnSort is one sort key; position in SortingState encodes precedence
type ColumnSort struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// SortingState is the ordered list of active sort keys
type SortingState []ColumnSort

// Find returns the sort entry for a column and its precedence index
func (s SortingState) Find(id string) (ColumnSort, int) {
	for i, cs := range s {
		if cs.ID == id {
			return cs, i
		}
	}
	return ColumnSort{}, -1
}

// ColumnFilter is the filter value for one column. The value is opaque to the
// state: a string, a number, a []string, or a [2]-element range.
type ColumnFilter struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// ColumnFiltersState maps column ids to filter values, keeping insertion order
type ColumnFiltersState []ColumnFilter

// Get returns the filter value for a column
func (f ColumnFiltersState) Get(id string) (interface{}, bool) {
	for _, cf := range f {
		if cf.ID == id {
			return cf.Value, true
		}
	}
	return nil, false
}

// With returns a copy with the column's value set (added or replaced)
func (f ColumnFiltersState) With(id string, value interface{}) ColumnFiltersState {
	out := make(ColumnFiltersState, 0, len(f)+1)
	replaced := false
	for _, cf := range f {
		if cf.ID == id {
			out = append(out, ColumnFilter{ID: id, Value: value})
			replaced = true
			continue
		}
		out = append(out, cf)
	}
	if !replaced {
		out = append(out, ColumnFilter{ID: id, Value: value})
	}
	return out
}

// Without returns a copy with the column's filter removed
func (f ColumnFiltersState) Without(id string) ColumnFiltersState {
	out := make(ColumnFiltersState, 0, len(f))
	for _, cf := range f {
		if cf.ID != id {
			out = append(out, cf)
		}
	}
	return out
}

// PaginationState is the current page window
type PaginationState struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// RowSelectionState is a sparse set of selected row ids
type RowSelectionState map[string]bool

// ExpandedState is a sparse set of expanded row ids
type ExpandedState map[string]bool

// ColumnOrderState lists column ids in display order
type ColumnOrderState []string

// VisibilityState maps column ids to visibility; absent means visible
type VisibilityState map[string]bool

// ColumnSizingState maps column ids to explicit widths
type ColumnSizingState map[string]int

// ColumnPinningState lists the ids pinned to each side
type ColumnPinningState struct {
	Left  []string `json:"left,omitempty"`
	Right []string `json:"right,omitempty"`
}

// State bundles every slice of table state
type State struct {
	Sorting          SortingState       `json:"sorting,omitempty"`
	ColumnFilters    ColumnFiltersState `json:"columnFilters,omitempty"`
	GlobalFilter     string             `json:"globalFilter,omitempty"`
	Pagination       PaginationState    `json:"pagination"`
	RowSelection     RowSelectionState  `json:"rowSelection,omitempty"`
	Expanded         ExpandedState      `json:"expanded,omitempty"`
	ColumnOrder      ColumnOrderState   `json:"columnOrder,omitempty"`
	ColumnVisibility VisibilityState    `json:"columnVisibility,omitempty"`
	ColumnSizing     ColumnSizingState  `json:"columnSizing,omitempty"`
	ColumnPinning    ColumnPinningState `json:"columnPinning"`
}

// Clone returns a deep copy; setters hand clones to updaters so live state
// is never mutated in place
func (s State) Clone() State {
	return State{
		Sorting:          append(SortingState(nil), s.Sorting...),
		ColumnFilters:    append(ColumnFiltersState(nil), s.ColumnFilters...),
		GlobalFilter:     s.GlobalFilter,
		Pagination:       s.Pagination,
		RowSelection:     maps.Clone(s.RowSelection),
		Expanded:         maps.Clone(s.Expanded),
		ColumnOrder:      append(ColumnOrderState(nil), s.ColumnOrder...),
		ColumnVisibility: maps.Clone(s.ColumnVisibility),
		ColumnSizing:     maps.Clone(s.ColumnSizing),
		ColumnPinning: ColumnPinningState{
			Left:  append([]string(nil), s.ColumnPinning.Left...),
			Right: append([]string(nil), s.ColumnPinning.Right...),
		},
	}
}

// withDefaults fills zero slices so getters never need nil checks
func (s State) withDefaults() State {
	if s.Pagination.PageSize == 0 {
		s.Pagination.PageSize = DefaultPageSize
	}
	if s.RowSelection == nil {
		s.RowSelection = RowSelectionState{}
	}
	if s.Expanded == nil {
		s.Expanded = ExpandedState{}
	}
	if s.ColumnVisibility == nil {
		s.ColumnVisibility = VisibilityState{}
	}
	if s.ColumnSizing == nil {
		s.ColumnSizing = ColumnSizingState{}
	}
	return s
}

// Updater derives a new slice value from the previous one
type Updater[T any] func(old T) T

// Replace builds an Updater that ignores the old value
func Replace[T any](v T) Updater[T] {
	return func(T) T { return v }
}
