package storage

import (
	"fmt"
	"strings"

	"github.com/leengari/tablekit/internal/domain/schema"
)

// Format is the encoding of a dataset's files
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Ext returns the file extension for the format
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// CatalogMeta is the optional meta file at the root of a catalog directory
type CatalogMeta struct {
	Name     string   `json:"name" yaml:"name"`
	Version  int      `json:"version" yaml:"version"`
	Datasets []string `json:"datasets,omitempty" yaml:"datasets,omitempty"`
}

// DatasetMeta describes a dataset: its columns and how rows are identified
type DatasetMeta struct {
	Name     string       `json:"name" yaml:"name"`
	Version  int          `json:"version" yaml:"version"`
	RowIDKey string       `json:"row_id,omitempty" yaml:"row_id,omitempty"`
	Columns  []ColumnMeta `json:"columns" yaml:"columns"`
	RowCount int          `json:"row_count,omitempty" yaml:"row_count,omitempty"`
}

// ColumnMeta is the persisted form of a column definition. Function-valued
// fields (accessor functions, custom comparators) cannot be persisted.
type ColumnMeta struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Accessor string   `json:"accessor,omitempty" yaml:"accessor,omitempty"`
	Header   string   `json:"header,omitempty" yaml:"header,omitempty"`
	Kind     string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`

	DisableSorting bool   `json:"disable_sorting,omitempty" yaml:"disable_sorting,omitempty"`
	SortingFn      string `json:"sorting_fn,omitempty" yaml:"sorting_fn,omitempty"`
	SortFirst      string `json:"sort_first,omitempty" yaml:"sort_first,omitempty"`
	SortUndefined  string `json:"sort_undefined,omitempty" yaml:"sort_undefined,omitempty"`
	InvertSorting  bool   `json:"invert_sorting,omitempty" yaml:"invert_sorting,omitempty"`

	DisableFilter       bool   `json:"disable_filter,omitempty" yaml:"disable_filter,omitempty"`
	FilterFn            string `json:"filter_fn,omitempty" yaml:"filter_fn,omitempty"`
	DisableGlobalFilter bool   `json:"disable_global_filter,omitempty" yaml:"disable_global_filter,omitempty"`

	DisableHiding   bool `json:"disable_hiding,omitempty" yaml:"disable_hiding,omitempty"`
	DisablePinning  bool `json:"disable_pinning,omitempty" yaml:"disable_pinning,omitempty"`
	DisableResizing bool `json:"disable_resizing,omitempty" yaml:"disable_resizing,omitempty"`
	Size            int  `json:"size,omitempty" yaml:"size,omitempty"`
	MinSize         int  `json:"min_size,omitempty" yaml:"min_size,omitempty"`
	MaxSize         int  `json:"max_size,omitempty" yaml:"max_size,omitempty"`
}

// ToDef converts the persisted column into a definition. A column with an
// id but no accessor reads the key named by its id.
func (c ColumnMeta) ToDef(dataset string, index int) (schema.ColumnDef, error) {
	fail := func(field string, err error) (schema.ColumnDef, error) {
		return schema.ColumnDef{}, &schema.DefinitionError{
			Dataset: dataset, Column: c.ID, Index: index, Field: field, Reason: err.Error(),
		}
	}

	kind, err := schema.ParseKind(c.Kind)
	if err != nil {
		return fail("kind", err)
	}
	filterFn, err := schema.ParseFilterFn(c.FilterFn)
	if err != nil {
		return fail("filter_fn", err)
	}
	sortingFn, err := schema.ParseSortingFn(c.SortingFn)
	if err != nil {
		return fail("sorting_fn", err)
	}
	sortFirst, err := parseSortFirst(c.SortFirst)
	if err != nil {
		return fail("sort_first", err)
	}
	undefined, err := schema.ParseSortUndefined(c.SortUndefined)
	if err != nil {
		return fail("sort_undefined", err)
	}

	accessor := c.Accessor
	if accessor == "" {
		accessor = c.ID
	}

	return schema.ColumnDef{
		ID:                  c.ID,
		AccessorKey:         accessor,
		Header:              c.Header,
		Kind:                kind,
		Options:             c.Options,
		DisableSorting:      c.DisableSorting,
		SortingFn:           sortingFn,
		SortFirst:           sortFirst,
		SortUndefined:       undefined,
		InvertSorting:       c.InvertSorting,
		DisableColumnFilter: c.DisableFilter,
		FilterFn:            filterFn,
		DisableGlobalFilter: c.DisableGlobalFilter,
		DisableHiding:       c.DisableHiding,
		DisablePinning:      c.DisablePinning,
		DisableResizing:     c.DisableResizing,
		Size:                c.Size,
		MinSize:             c.MinSize,
		MaxSize:             c.MaxSize,
	}, nil
}

// ColumnMetaFromDef is the inverse of ToDef for the persistable fields
func ColumnMetaFromDef(def schema.ColumnDef) ColumnMeta {
	m := ColumnMeta{
		ID:                  def.ID,
		Accessor:            def.AccessorKey,
		Header:              def.Header,
		Options:             def.Options,
		DisableSorting:      def.DisableSorting,
		SortingFn:           string(def.SortingFn),
		SortFirst:           formatSortFirst(def.SortFirst),
		SortUndefined:       formatSortUndefined(def.SortUndefined),
		InvertSorting:       def.InvertSorting,
		DisableFilter:       def.DisableColumnFilter,
		FilterFn:            string(def.FilterFn),
		DisableGlobalFilter: def.DisableGlobalFilter,
		DisableHiding:       def.DisableHiding,
		DisablePinning:      def.DisablePinning,
		DisableResizing:     def.DisableResizing,
		Size:                def.Size,
		MinSize:             def.MinSize,
		MaxSize:             def.MaxSize,
	}
	if def.Kind != schema.KindText {
		m.Kind = def.Kind.String()
	}
	if m.ID == m.Accessor {
		m.Accessor = ""
	}
	if m.ID == "" {
		m.ID = def.AccessorKey
		m.Accessor = ""
	}
	return m
}

func parseSortFirst(s string) (schema.SortFirst, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return schema.SortFirstAuto, nil
	case "asc":
		return schema.SortFirstAsc, nil
	case "desc":
		return schema.SortFirstDesc, nil
	}
	return schema.SortFirstAuto, fmt.Errorf("unknown sort direction %q", s)
}

func formatSortFirst(s schema.SortFirst) string {
	switch s {
	case schema.SortFirstAsc:
		return "asc"
	case schema.SortFirstDesc:
		return "desc"
	}
	return ""
}

func formatSortUndefined(s schema.SortUndefined) string {
	switch s {
	case schema.SortUndefinedFirst:
		return "first"
	case schema.SortUndefinedLast:
		return "last"
	case schema.SortUndefinedLow:
		return "low"
	case schema.SortUndefinedHigh:
		return "high"
	}
	return ""
}
