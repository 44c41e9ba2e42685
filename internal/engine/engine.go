package engine

import (
	"log/slog"
	"maps"
	"reflect"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"

	"github.com/leengari/tablekit/internal/domain/data"
)

// Table is the headless table state engine. It owns column definitions, row
// data and state slices, and derives row models on demand.
// A Table is not safe for concurrent use.
type Table struct {
	id          string
	opts        Options
	columns     []*Column // definition order
	columnsByID map[string]*Column
	state       State
	initial     State // state at construction, restored by the Reset helpers
	observers   []Observer // Observers for state and row model events
	logger      *slog.Logger

	collator          *collate.Collator
	collatorSensitive *collate.Collator

	dataVersion   uint64
	stateVersions map[StateSlice]uint64
	memos         memos
}

// New creates a new Table. It never fails: empty columns yield a table with
// no rows and no headers.
func New(opts Options) *Table {
	t := &Table{
		id:            uuid.NewString(),
		observers:     make([]Observer, 0),
		stateVersions: make(map[StateSlice]uint64),
	}
	t.state = opts.State.Clone().withDefaults()
	t.initial = t.state.Clone()
	t.apply(opts)
	return t
}

// ID returns the engine instance id carried by every event
func (t *Table) ID() string {
	return t.id
}

// Options returns the options the table was last configured with
func (t *Table) Options() Options {
	return t.opts
}

// Update replaces columns, data and options while keeping the current state.
// opts.State is ignored; use SetState to replace state.
func (t *Table) Update(opts Options) {
	t.apply(opts)
	t.notify(Event{Type: EventDataChange, Data: len(opts.Data)})
}

// SetData replaces the row data only
func (t *Table) SetData(rows []data.Row) {
	t.opts.Data = rows
	t.dataVersion++
	t.notify(Event{Type: EventDataChange, Data: len(rows)})
}

func (t *Table) apply(opts Options) {
	t.opts = opts.withDefaults()
	t.logger = t.opts.Logger
	t.collator = collate.New(t.opts.Locale, collate.IgnoreCase)
	t.collatorSensitive = collate.New(t.opts.Locale)
	t.buildColumns()
	t.dataVersion++

	if len(t.columns) == 0 {
		t.logger.Warn("table has no usable columns, row models will be empty",
			"table_id", t.id,
			"definitions", len(opts.Columns),
		)
	}
}

func (t *Table) buildColumns() {
	t.columns = make([]*Column, 0, len(t.opts.Columns))
	t.columnsByID = make(map[string]*Column, len(t.opts.Columns))

	for i, def := range t.opts.Columns {
		id := def.ResolvedID()
		if id == "" {
			t.logger.Warn("skipping column without id", "position", i)
			continue
		}
		if _, dup := t.columnsByID[id]; dup {
			t.logger.Warn("skipping duplicate column", "column", id, "position", i)
			continue
		}
		col := &Column{ID: id, Def: def, table: t}
		t.columns = append(t.columns, col)
		t.columnsByID[id] = col
	}
}

// GetState returns a copy of the current state
func (t *Table) GetState() State {
	return t.state.Clone()
}

// SetState replaces the whole state. Observers are notified once per slice
// that actually changed, with Event.Replaced set so reset policies leave
// the restored state alone.
func (t *Table) SetState(u Updater[State]) {
	old := t.state
	t.state = u(old.Clone()).withDefaults()
	for _, slice := range diffSlices(old, t.state) {
		t.stateVersions[slice]++
		t.notify(Event{Type: EventStateChange, Slice: slice, Replaced: true})
	}
}

// SetSorting replaces the sorting slice
func (t *Table) SetSorting(u Updater[SortingState]) {
	t.state.Sorting = u(append(SortingState(nil), t.state.Sorting...))
	t.changed(SliceSorting)
}

// SetColumnFilters replaces the column filters slice
func (t *Table) SetColumnFilters(u Updater[ColumnFiltersState]) {
	t.state.ColumnFilters = u(append(ColumnFiltersState(nil), t.state.ColumnFilters...))
	t.changed(SliceColumnFilters)
}

// SetGlobalFilter replaces the global filter
func (t *Table) SetGlobalFilter(u Updater[string]) {
	t.state.GlobalFilter = u(t.state.GlobalFilter)
	t.changed(SliceGlobalFilter)
}

// SetPagination replaces the pagination slice
func (t *Table) SetPagination(u Updater[PaginationState]) {
	t.state.Pagination = u(t.state.Pagination)
	t.changed(SlicePagination)
}

// SetRowSelection replaces the row selection slice
func (t *Table) SetRowSelection(u Updater[RowSelectionState]) {
	next := u(maps.Clone(t.state.RowSelection))
	if next == nil {
		next = RowSelectionState{}
	}
	t.state.RowSelection = next
	t.changed(SliceRowSelection)
}

// SetExpanded replaces the expanded slice
func (t *Table) SetExpanded(u Updater[ExpandedState]) {
	next := u(maps.Clone(t.state.Expanded))
	if next == nil {
		next = ExpandedState{}
	}
	t.state.Expanded = next
	t.changed(SliceExpanded)
}

// SetColumnOrder replaces the column order slice
func (t *Table) SetColumnOrder(u Updater[ColumnOrderState]) {
	t.state.ColumnOrder = u(append(ColumnOrderState(nil), t.state.ColumnOrder...))
	t.changed(SliceColumnOrder)
}

// SetColumnVisibility replaces the column visibility slice
func (t *Table) SetColumnVisibility(u Updater[VisibilityState]) {
	next := u(maps.Clone(t.state.ColumnVisibility))
	if next == nil {
		next = VisibilityState{}
	}
	t.state.ColumnVisibility = next
	t.changed(SliceColumnVisibility)
}

// SetColumnSizing replaces the column sizing slice
func (t *Table) SetColumnSizing(u Updater[ColumnSizingState]) {
	next := u(maps.Clone(t.state.ColumnSizing))
	if next == nil {
		next = ColumnSizingState{}
	}
	t.state.ColumnSizing = next
	t.changed(SliceColumnSizing)
}

// SetColumnPinning replaces the column pinning slice
func (t *Table) SetColumnPinning(u Updater[ColumnPinningState]) {
	t.state.ColumnPinning = u(t.state.Clone().ColumnPinning)
	t.changed(SliceColumnPinning)
}

// ResetSorting restores the initial sorting
func (t *Table) ResetSorting() {
	t.SetSorting(Replace(t.initial.Clone().Sorting))
}

// ResetColumnFilters restores the initial column filters
func (t *Table) ResetColumnFilters() {
	t.SetColumnFilters(Replace(t.initial.Clone().ColumnFilters))
}

// ResetGlobalFilter restores the initial global filter
func (t *Table) ResetGlobalFilter() {
	t.SetGlobalFilter(Replace(t.initial.GlobalFilter))
}

// ResetRowSelection restores the initial selection
func (t *Table) ResetRowSelection() {
	t.SetRowSelection(Replace(t.initial.Clone().RowSelection))
}

// ResetExpanded restores the initial expansion
func (t *Table) ResetExpanded() {
	t.SetExpanded(Replace(t.initial.Clone().Expanded))
}

// ResetColumnOrder restores the initial column order
func (t *Table) ResetColumnOrder() {
	t.SetColumnOrder(Replace(t.initial.Clone().ColumnOrder))
}

// ResetColumnVisibility restores the initial visibility
func (t *Table) ResetColumnVisibility() {
	t.SetColumnVisibility(Replace(t.initial.Clone().ColumnVisibility))
}

// ResetColumnPinning restores the initial pinning
func (t *Table) ResetColumnPinning() {
	t.SetColumnPinning(Replace(t.initial.Clone().ColumnPinning))
}

// ResetColumnSizing restores the initial column widths
func (t *Table) ResetColumnSizing() {
	t.SetColumnSizing(Replace(t.initial.Clone().ColumnSizing))
}

// changed bumps the slice version and tells observers
func (t *Table) changed(slice StateSlice) {
	t.stateVersions[slice]++
	t.notify(Event{Type: EventStateChange, Slice: slice})
}

func diffSlices(a, b State) []StateSlice {
	var out []StateSlice
	check := func(slice StateSlice, x, y interface{}) {
		if !reflect.DeepEqual(x, y) {
			out = append(out, slice)
		}
	}
	check(SliceSorting, a.Sorting, b.Sorting)
	check(SliceColumnFilters, a.ColumnFilters, b.ColumnFilters)
	check(SliceGlobalFilter, a.GlobalFilter, b.GlobalFilter)
	check(SlicePagination, a.Pagination, b.Pagination)
	check(SliceRowSelection, a.RowSelection, b.RowSelection)
	check(SliceExpanded, a.Expanded, b.Expanded)
	check(SliceColumnOrder, a.ColumnOrder, b.ColumnOrder)
	check(SliceColumnVisibility, a.ColumnVisibility, b.ColumnVisibility)
	check(SliceColumnSizing, a.ColumnSizing, b.ColumnSizing)
	check(SliceColumnPinning, a.ColumnPinning, b.ColumnPinning)
	return out
}

// AddObserver registers an observer to receive engine events
func (t *Table) AddObserver(observer Observer) {
	t.observers = append(t.observers, observer)
}

// RemoveObserver unregisters an observer
func (t *Table) RemoveObserver(observer Observer) {
	for i, o := range t.observers {
		if o == observer {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (t *Table) notify(event Event) {
	event.TableID = t.id
	event.Timestamp = time.Now()
	// observers may add or remove observers while handling the event
	for _, observer := range append([]Observer(nil), t.observers...) {
		observer.OnEvent(event)
	}
}
