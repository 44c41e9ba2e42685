package engine

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
)

// DefaultMaxLeafRowFilterDepth bounds how deep filtering descends before
// rows are evaluated as leaves
const DefaultMaxLeafRowFilterDepth = 100

// Options configures a Table. Columns and Data are treated as immutable for
// as long as the Table holds them.
type Options struct {
	Columns []schema.ColumnDef
	Data    []data.Row
	State   State

	// GetSubRows returns a row's children; defaults to row.SubRows
	GetSubRows func(data.Row) []data.Row
	// GetRowID derives a row id. The default is the positional path
	// ("2.0.1"), which is not stable across insertions or removals.
	GetRowID func(row data.Row, index int, parent *Row) string
	// GetRowCanExpand lets rows expand before their children are loaded
	GetRowCanExpand func(*Row) bool
	// EnableRowSelection decides per row whether it may be selected
	EnableRowSelection func(*Row) bool

	DisableRowSelection      bool
	DisableSubRowSelection   bool
	DisableMultiRowSelection bool

	DisableSorting        bool
	DisableMultiSort      bool
	MaxMultiSortColCount  int
	DisableSortingRemoval bool
	DisableMultiRemove    bool

	DisableColumnFilters  bool
	DisableGlobalFilter   bool
	GlobalFilterFn        schema.FilterFn // defaults to fuzzy
	MaxLeafRowFilterDepth int

	// Locale drives text collation; defaults to English
	Locale language.Tag
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.GlobalFilterFn == schema.FilterAuto {
		o.GlobalFilterFn = schema.FilterFuzzy
	}
	if o.MaxLeafRowFilterDepth <= 0 {
		o.MaxLeafRowFilterDepth = DefaultMaxLeafRowFilterDepth
	}
	if o.Locale == language.Und {
		o.Locale = language.English
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) subRows(r data.Row) []data.Row {
	if o.GetSubRows != nil {
		return o.GetSubRows(r)
	}
	return r.SubRows
}
