package schema

import (
	"fmt"
	"strings"

	"github.com/leengari/tablekit/internal/domain/data"
)

// ColumnKind selects the filter predicate and cell renderer a column uses
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindSelect
	KindCheckbox
	KindNumber
)

var kindNames = map[ColumnKind]string{
	KindText:     "text",
	KindSelect:   "select",
	KindCheckbox: "checkbox",
	KindNumber:   "number",
}

func (k ColumnKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name; the empty string means text
func ParseKind(s string) (ColumnKind, error) {
	if s == "" {
		return KindText, nil
	}
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return KindText, fmt.Errorf("unknown column kind %q", s)
}

// FilterFn names a column filter predicate
type FilterFn string

const (
	FilterAuto                    FilterFn = ""
	FilterIncludesString          FilterFn = "includesString"
	FilterIncludesStringSensitive FilterFn = "includesStringSensitive"
	FilterEqualsString            FilterFn = "equalsString"
	FilterEquals                  FilterFn = "equals"
	FilterWeakEquals              FilterFn = "weakEquals"
	FilterArrIncludes             FilterFn = "arrIncludes"
	FilterArrIncludesAll          FilterFn = "arrIncludesAll"
	FilterArrIncludesSome         FilterFn = "arrIncludesSome"
	FilterInNumberRange           FilterFn = "inNumberRange"
	FilterFuzzy                   FilterFn = "fuzzy"
)

// FilterFns lists every named filter predicate
var FilterFns = []FilterFn{
	FilterIncludesString, FilterIncludesStringSensitive, FilterEqualsString,
	FilterEquals, FilterWeakEquals, FilterArrIncludes, FilterArrIncludesAll,
	FilterArrIncludesSome, FilterInNumberRange, FilterFuzzy,
}

// ParseFilterFn validates a filter predicate name
func ParseFilterFn(s string) (FilterFn, error) {
	if s == "" || s == "auto" {
		return FilterAuto, nil
	}
	for _, fn := range FilterFns {
		if string(fn) == s {
			return fn, nil
		}
	}
	return FilterAuto, fmt.Errorf("unknown filter function %q", s)
}

// SortingFn names a row comparison strategy
type SortingFn string

const (
	SortAuto                      SortingFn = ""
	SortAlphanumeric              SortingFn = "alphanumeric"
	SortAlphanumericCaseSensitive SortingFn = "alphanumericCaseSensitive"
	SortText                      SortingFn = "text"
	SortTextCaseSensitive         SortingFn = "textCaseSensitive"
	SortDatetime                  SortingFn = "datetime"
	SortBasic                     SortingFn = "basic"
	SortFuzzy                     SortingFn = "fuzzy"
)

// SortingFns lists every named sorting strategy
var SortingFns = []SortingFn{
	SortAlphanumeric, SortAlphanumericCaseSensitive, SortText,
	SortTextCaseSensitive, SortDatetime, SortBasic, SortFuzzy,
}

// ParseSortingFn validates a sorting strategy name
func ParseSortingFn(s string) (SortingFn, error) {
	if s == "" || s == "auto" {
		return SortAuto, nil
	}
	for _, fn := range SortingFns {
		if string(fn) == s {
			return fn, nil
		}
	}
	return SortAuto, fmt.Errorf("unknown sorting function %q", s)
}

// SortFirst is the direction a column sorts in the first time it is toggled
type SortFirst int

const (
	SortFirstAuto SortFirst = iota
	SortFirstAsc
	SortFirstDesc
)

// SortUndefined controls where rows with an undefined sort value land.
// First and Last are absolute; Low and High flip with the sort direction.
type SortUndefined int

const (
	SortUndefinedDefault SortUndefined = iota // same as High
	SortUndefinedFirst
	SortUndefinedLast
	SortUndefinedLow
	SortUndefinedHigh
)

// ParseSortUndefined parses "first", "last", "low", "high" or ""
func ParseSortUndefined(s string) (SortUndefined, error) {
	switch strings.ToLower(s) {
	case "":
		return SortUndefinedDefault, nil
	case "first":
		return SortUndefinedFirst, nil
	case "last":
		return SortUndefinedLast, nil
	case "low", "-1":
		return SortUndefinedLow, nil
	case "high", "1":
		return SortUndefinedHigh, nil
	}
	return SortUndefinedDefault, fmt.Errorf("unknown sortUndefined value %q", s)
}

// Column size defaults
const (
	DefaultSize    = 150
	DefaultMinSize = 20
	DefaultMaxSize = 1<<31 - 1
)

// ColumnDef describes how to derive, sort, filter and render one leaf column
type ColumnDef struct {
	ID          string
	AccessorKey string
	AccessorFn  func(data.Row) (interface{}, bool)
	Header      string
	Kind        ColumnKind
	Options     []string // choices offered by select/checkbox filters

	DisableSorting bool
	SortingFn      SortingFn
	Compare        func(a, b interface{}) int // overrides SortingFn when set
	SortFirst      SortFirst
	SortUndefined  SortUndefined
	InvertSorting  bool

	DisableColumnFilter bool
	FilterFn            FilterFn
	DisableGlobalFilter bool

	DisableHiding   bool
	DisablePinning  bool
	DisableResizing bool
	Size            int
	MinSize         int
	MaxSize         int
}

// ResolvedID returns ID, falling back to AccessorKey
func (c ColumnDef) ResolvedID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.AccessorKey
}

// HasAccessor reports whether the column can derive a value from a row
func (c ColumnDef) HasAccessor() bool {
	return c.AccessorFn != nil || c.AccessorKey != ""
}

// Value derives the cell value for row
func (c ColumnDef) Value(row data.Row) (interface{}, bool) {
	if c.AccessorFn != nil {
		return c.AccessorFn(row)
	}
	if c.AccessorKey == "" {
		return nil, false
	}
	return row.Get(c.AccessorKey)
}

// HeaderText returns the header label, defaulting to the resolved id
func (c ColumnDef) HeaderText() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ResolvedID()
}

// DefaultFilterFn returns the predicate implied by the kind when no FilterFn
// is configured. FilterAuto means "pick by value type".
func (c ColumnDef) DefaultFilterFn() FilterFn {
	if c.FilterFn != FilterAuto {
		return c.FilterFn
	}
	switch c.Kind {
	case KindSelect:
		return FilterEqualsString
	case KindCheckbox:
		return FilterArrIncludesSome
	case KindNumber:
		return FilterWeakEquals
	default:
		return FilterAuto
	}
}
