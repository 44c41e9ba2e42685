package policy

import (
	"log/slog"

	"github.com/leengari/tablekit/internal/engine"
)

// AutoReset keeps dependent state slices consistent after a change, e.g. it
// returns to the first page when the filters change. The engine itself never
// couples slices; hosts opt in by attaching an AutoReset.
type AutoReset struct {
	table  *engine.Table
	logger *slog.Logger

	PageIndexOnFilter bool
	PageIndexOnSort   bool
	PageIndexOnData   bool
	ExpandedOnData    bool
}

// Option tweaks an AutoReset before it is attached
type Option func(*AutoReset)

// WithPageIndexOnFilter toggles the page reset after filter changes (default on)
func WithPageIndexOnFilter(on bool) Option {
	return func(a *AutoReset) { a.PageIndexOnFilter = on }
}

// WithPageIndexOnSort resets the page index after sorting changes
func WithPageIndexOnSort(on bool) Option {
	return func(a *AutoReset) { a.PageIndexOnSort = on }
}

// WithPageIndexOnData resets the page index when data is replaced
func WithPageIndexOnData(on bool) Option {
	return func(a *AutoReset) { a.PageIndexOnData = on }
}

// WithExpandedOnData collapses every row when data is replaced
func WithExpandedOnData(on bool) Option {
	return func(a *AutoReset) { a.ExpandedOnData = on }
}

// WithLogger sets the logger; the default is slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(a *AutoReset) { a.logger = logger }
}

// Attach registers a new AutoReset on t
func Attach(t *engine.Table, opts ...Option) *AutoReset {
	a := &AutoReset{
		table:             t,
		logger:            slog.Default(),
		PageIndexOnFilter: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	t.AddObserver(a)
	return a
}

// Detach stops the policy from reacting to further events
func (a *AutoReset) Detach() {
	a.table.RemoveObserver(a)
}

// OnEvent implements engine.Observer
func (a *AutoReset) OnEvent(event engine.Event) {
	switch event.Type {
	case engine.EventStateChange:
		if event.Replaced {
			return
		}
		switch event.Slice {
		case engine.SliceColumnFilters, engine.SliceGlobalFilter:
			if a.PageIndexOnFilter {
				a.resetPageIndex(event)
			}
		case engine.SliceSorting:
			if a.PageIndexOnSort {
				a.resetPageIndex(event)
			}
		}
	case engine.EventDataChange:
		if a.PageIndexOnData {
			a.resetPageIndex(event)
		}
		if a.ExpandedOnData && len(a.table.GetState().Expanded) > 0 {
			a.logger.Debug("collapsing rows after data change", "table_id", event.TableID)
			a.table.SetExpanded(engine.Replace(engine.ExpandedState{}))
		}
	}
}

func (a *AutoReset) resetPageIndex(cause engine.Event) {
	// SetPageIndex notifies again; skipping no-op resets keeps the event log quiet
	if a.table.GetState().Pagination.PageIndex == 0 {
		return
	}
	a.logger.Debug("resetting page index",
		"table_id", cause.TableID,
		"cause", cause.Type,
		"slice", cause.Slice,
	)
	a.table.SetPageIndex(0)
}
