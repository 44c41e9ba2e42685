package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tablekit/internal/domain/data"
)

func TestParseNames(t *testing.T) {
	k, err := ParseKind("Number")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, k)
	k, _ = ParseKind("")
	assert.Equal(t, KindText, k)
	_, err = ParseKind("date")
	assert.ErrorContains(t, err, "unknown column kind")
	assert.Equal(t, "kind(9)", ColumnKind(9).String())

	fn, err := ParseFilterFn("arrIncludesSome")
	require.NoError(t, err)
	assert.Equal(t, FilterArrIncludesSome, fn)
	fn, _ = ParseFilterFn("auto")
	assert.Equal(t, FilterAuto, fn)
	_, err = ParseFilterFn("startsWith")
	assert.Error(t, err)

	sfn, err := ParseSortingFn("alphanumeric")
	require.NoError(t, err)
	assert.Equal(t, SortAlphanumeric, sfn)
	_, err = ParseSortingFn("random")
	assert.Error(t, err)

	u, err := ParseSortUndefined("-1")
	require.NoError(t, err)
	assert.Equal(t, SortUndefinedLow, u)
	u, _ = ParseSortUndefined("LAST")
	assert.Equal(t, SortUndefinedLast, u)
	_, err = ParseSortUndefined("middle")
	assert.Error(t, err)
}

func TestColumnDefAccessors(t *testing.T) {
	row := data.NewRow(map[string]interface{}{"first": "Ada", "last": "Lovelace"})

	byKey := ColumnDef{AccessorKey: "first"}
	assert.Equal(t, "first", byKey.ResolvedID())
	assert.Equal(t, "first", byKey.HeaderText())
	v, ok := byKey.Value(row)
	assert.True(t, ok)
	assert.Equal(t, "Ada", v)

	computed := ColumnDef{
		ID:     "full",
		Header: "Full name",
		AccessorFn: func(r data.Row) (interface{}, bool) {
			f, _ := r.Get("first")
			l, _ := r.Get("last")
			return strings.Join([]string{f.(string), l.(string)}, " "), true
		},
	}
	assert.Equal(t, "full", computed.ResolvedID())
	assert.Equal(t, "Full name", computed.HeaderText())
	v, _ = computed.Value(row)
	assert.Equal(t, "Ada Lovelace", v)

	display := ColumnDef{ID: "actions"}
	assert.False(t, display.HasAccessor())
	_, ok = display.Value(row)
	assert.False(t, ok)
}

func TestDefaultFilterFn(t *testing.T) {
	assert.Equal(t, FilterAuto, ColumnDef{}.DefaultFilterFn())
	assert.Equal(t, FilterEqualsString, ColumnDef{Kind: KindSelect}.DefaultFilterFn())
	assert.Equal(t, FilterArrIncludesSome, ColumnDef{Kind: KindCheckbox}.DefaultFilterFn())
	assert.Equal(t, FilterWeakEquals, ColumnDef{Kind: KindNumber}.DefaultFilterFn())
	assert.Equal(t, FilterFuzzy, ColumnDef{Kind: KindNumber, FilterFn: FilterFuzzy}.DefaultFilterFn())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("ok", []ColumnDef{{AccessorKey: "a"}, {AccessorKey: "b"}}))

	err := Validate("bad", []ColumnDef{
		{AccessorKey: "a"},
		{},
		{AccessorKey: "a"},
		{ID: "display"},
		{AccessorKey: "w", Size: -1, MinSize: 50, MaxSize: 10},
	})
	require.Error(t, err)

	var defErrs []*DefinitionError
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var de *DefinitionError
		require.True(t, errors.As(e, &de))
		defErrs = append(defErrs, de)
	}
	require.Len(t, defErrs, 5)
	assert.Equal(t, "id", defErrs[0].Field)
	assert.Equal(t, 1, defErrs[0].Index)
	assert.Contains(t, defErrs[1].Reason, "duplicate of column at position 0")
	assert.Equal(t, "accessor", defErrs[2].Field)
	assert.Equal(t, "negative size", defErrs[3].Reason)
	assert.Contains(t, defErrs[4].Reason, "min size 50 exceeds max size 10")
}

func TestDefinitionErrorMessage(t *testing.T) {
	err := &DefinitionError{Dataset: "d", Column: "c", Index: 2, Field: "size", Reason: "negative size"}
	assert.Equal(t, "invalid column d.c - (size) - negative size - at position 2", err.Error())

	err = &DefinitionError{Column: "c", Index: -1}
	assert.Equal(t, "invalid column c", err.Error())
}
