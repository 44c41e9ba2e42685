package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
	"github.com/leengari/tablekit/internal/testutil"
)

func mustColumn(t *testing.T, eng *Table, id string) *Column {
	t.Helper()
	col, ok := eng.GetColumn(id)
	require.True(t, ok, "column %s", id)
	return col
}

func TestGlobalFilterExample(t *testing.T) {
	eng := newExampleTable()
	eng.SetGlobalFilter(Replace("b"))

	testutil.AssertIDs(t, eng.GetFilteredRowModel().IDs(), []string{"1"}, "global filter b")
	testutil.AssertIDs(t, eng.GetRowModel().IDs(), []string{"1"}, "final model")
}

func TestColumnFilterAutoPredicate(t *testing.T) {
	eng := newExampleTable()
	example := mustColumn(t, eng, "example")

	// first value is a string, so the predicate is a substring match
	assert.Equal(t, schema.FilterIncludesString, example.GetFilterFn())

	example.SetFilterValue("1")
	testutil.AssertIDs(t, eng.GetFilteredRowModel().IDs(), []string{"0", "3", "4"}, "contains 1")
	assert.True(t, example.GetIsFiltered())
	assert.Equal(t, 0, example.GetFilterIndex())

	v, ok := example.GetFilterValue()
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestColumnFilterAutoRemove(t *testing.T) {
	eng := newExampleTable()
	name := mustColumn(t, eng, "name")

	name.SetFilterValue("a")
	require.True(t, name.GetIsFiltered())

	name.SetFilterValue("")
	assert.False(t, name.GetIsFiltered())
	assert.Empty(t, eng.GetState().ColumnFilters)
	assert.Len(t, eng.GetFilteredRowModel().Rows, 5)
}

func TestFilterPreservesAncestors(t *testing.T) {
	eng := newNestedTable()
	mustColumn(t, eng, "name").SetFilterValue("leaf")

	filtered := eng.GetFilteredRowModel()
	testutil.AssertIDs(t, filtered.IDs(), []string{"0"}, "top level")
	testutil.AssertIDs(t, flatIDs(filtered.FlatRows), []string{"0", "0.1", "0.1.0"}, "path to the match")

	// every ancestor of every kept row is kept
	for _, r := range filtered.FlatRows {
		for _, p := range r.GetParentRows() {
			_, ok := filtered.RowsByID[p.ID]
			assert.True(t, ok, "ancestor %s of %s", p.ID, r.ID)
		}
	}
}

func TestFilterKeepsMatchingParentWithoutMatchingChildren(t *testing.T) {
	eng := newNestedTable()
	mustColumn(t, eng, "name").SetFilterValue("north")

	filtered := eng.GetFilteredRowModel()
	testutil.AssertIDs(t, flatIDs(filtered.FlatRows), []string{"0", "0.0", "0.1"}, "leaf-z dropped")

	northA := filtered.RowsByID["0.1"]
	require.NotNil(t, northA)
	assert.Empty(t, northA.SubRows)

	// the core model still has the child
	core, _ := eng.GetRow("0.1")
	assert.Len(t, core.SubRows, 1)
}

func TestFilterByKind(t *testing.T) {
	t.Run("select uses exact match", func(t *testing.T) {
		eng := newNestedTable()
		status := mustColumn(t, eng, "status")
		assert.Equal(t, schema.FilterEqualsString, status.GetFilterFn())

		status.SetFilterValue("disabled")
		testutil.AssertIDs(t, flatIDs(eng.GetFilteredRowModel().FlatRows), []string{"0", "0.1", "1"}, "disabled")
	})

	t.Run("number uses loose equality", func(t *testing.T) {
		eng := newNestedTable()
		count := mustColumn(t, eng, "count")
		assert.Equal(t, schema.FilterWeakEquals, count.GetFilterFn())

		count.SetFilterValue("5")
		testutil.AssertIDs(t, flatIDs(eng.GetFilteredRowModel().FlatRows), []string{"1", "1.0"}, "count 5")
	})

	t.Run("checkbox matches any option", func(t *testing.T) {
		eng := New(Options{
			Columns: []schema.ColumnDef{
				{AccessorKey: "name"},
				{AccessorKey: "tags", Kind: schema.KindCheckbox, Options: []string{"red", "green", "blue"}},
			},
			Data: []data.Row{
				data.NewRow(map[string]interface{}{"name": "x", "tags": []string{"red"}}),
				data.NewRow(map[string]interface{}{"name": "y", "tags": []string{"green", "blue"}}),
				data.NewRow(map[string]interface{}{"name": "z", "tags": "blue"}),
			},
		})
		tags := mustColumn(t, eng, "tags")
		assert.Equal(t, schema.FilterArrIncludesSome, tags.GetFilterFn())

		tags.SetFilterValue([]string{"blue"})
		testutil.AssertIDs(t, eng.GetFilteredRowModel().IDs(), []string{"1", "2"}, "blue")

		tags.SetFilterValue([]string{})
		assert.False(t, tags.GetIsFiltered(), "empty selection removes the filter")
	})
}

func TestFilterFns(t *testing.T) {
	tests := []struct {
		name   string
		fn     schema.FilterFn
		value  interface{}
		filter interface{}
		want   bool
	}{
		{"includesString ignores case", schema.FilterIncludesString, "Load Balancer", "balance", true},
		{"includesStringSensitive", schema.FilterIncludesStringSensitive, "Load Balancer", "balance", false},
		{"equalsString", schema.FilterEqualsString, "Active", "active", true},
		{"equalsString no substring", schema.FilterEqualsString, "Active", "act", false},
		{"equals numbers across types", schema.FilterEquals, 5, 5.0, true},
		{"equals is strict on strings", schema.FilterEquals, "5", 5, false},
		{"weakEquals", schema.FilterWeakEquals, "5", 5, true},
		{"arrIncludes", schema.FilterArrIncludes, []string{"a", "b"}, "b", true},
		{"arrIncludesAll", schema.FilterArrIncludesAll, []string{"a", "b"}, []string{"a", "c"}, false},
		{"arrIncludesAll match", schema.FilterArrIncludesAll, []string{"a", "b", "c"}, []string{"a", "c"}, true},
		{"arrIncludesSome", schema.FilterArrIncludesSome, []string{"a", "b"}, []string{"c", "b"}, true},
		{"inNumberRange", schema.FilterInNumberRange, 7, []interface{}{5, 10}, true},
		{"inNumberRange open max", schema.FilterInNumberRange, 700, []interface{}{5, nil}, true},
		{"inNumberRange swapped bounds", schema.FilterInNumberRange, 7, []interface{}{10, 5}, true},
		{"inNumberRange outside", schema.FilterInNumberRange, "11", []interface{}{5, 10}, false},
		{"fuzzy", schema.FilterFuzzy, "Round Robin", "rr", true},
		{"fuzzy no match", schema.FilterFuzzy, "Round Robin", "xyz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := applyFilter(tt.fn, tt.value, true, tt.filter)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("undefined values never pass", func(t *testing.T) {
		got, _ := applyFilter(schema.FilterWeakEquals, nil, false, "")
		assert.False(t, got)
	})
}

func TestInNumberRangeColumn(t *testing.T) {
	eng := newNestedTable(func(o *Options) {
		o.Columns[1].FilterFn = schema.FilterInNumberRange
	})
	mustColumn(t, eng, "count").SetFilterValue([]interface{}{2, 3})

	testutil.AssertIDs(t, flatIDs(eng.GetFilteredRowModel().FlatRows), []string{"0", "0.0", "2"}, "2 <= count <= 3")
}

func TestMaxLeafRowFilterDepth(t *testing.T) {
	eng := newNestedTable(func(o *Options) { o.MaxLeafRowFilterDepth = 1 })
	mustColumn(t, eng, "name").SetFilterValue("leaf")

	// north-a sits at the depth limit, so its children are not searched
	assert.Empty(t, eng.GetFilteredRowModel().FlatRows)
}

func TestGlobalFilterNested(t *testing.T) {
	eng := newNestedTable()
	eng.SetGlobalFilter(Replace("south"))

	filtered := eng.GetFilteredRowModel()
	testutil.AssertIDs(t, flatIDs(filtered.FlatRows), []string{"1", "1.0"}, "south")

	south := filtered.RowsByID["1"]
	meta, ok := south.GetFilterMeta("name")
	require.True(t, ok)
	assert.Equal(t, RankCaseSensitiveEqual, meta.Rank)

	southA := filtered.RowsByID["1.0"]
	meta, _ = southA.GetFilterMeta("name")
	assert.Equal(t, RankStartsWith, meta.Rank)
}

func TestGlobalFilterSkipsColumns(t *testing.T) {
	eng := New(Options{
		Columns: []schema.ColumnDef{
			{AccessorKey: "name"},
			{AccessorKey: "secret", DisableGlobalFilter: true},
			{AccessorKey: "flag"},
		},
		Data: []data.Row{
			data.NewRow(map[string]interface{}{"name": "alpha", "secret": "beta", "flag": true}),
		},
	})

	assert.True(t, mustColumn(t, eng, "name").GetCanGlobalFilter())
	assert.False(t, mustColumn(t, eng, "secret").GetCanGlobalFilter())
	assert.False(t, mustColumn(t, eng, "flag").GetCanGlobalFilter(), "booleans are not searched")

	eng.SetGlobalFilter(Replace("beta"))
	assert.Empty(t, eng.GetFilteredRowModel().Rows)
}

func TestFilterIgnoresUnknownAndDisabledColumns(t *testing.T) {
	eng := New(Options{
		Columns: []schema.ColumnDef{
			{AccessorKey: "name", DisableColumnFilter: true},
			{AccessorKey: "example"},
		},
		Data: testutil.ExampleData(),
	})

	eng.SetColumnFilters(Replace(ColumnFiltersState{
		{ID: "nope", Value: "x"},
		{ID: "name", Value: "zzz"},
	}))
	assert.Len(t, eng.GetFilteredRowModel().Rows, 5)
}

func TestHiddenColumnsStillFilter(t *testing.T) {
	eng := newExampleTable()
	name := mustColumn(t, eng, "name")
	name.SetVisible(false)
	name.SetFilterValue("c")

	testutil.AssertIDs(t, eng.GetFilteredRowModel().IDs(), []string{"2"}, "hidden column filter")
}

func TestFilteredModelMemoized(t *testing.T) {
	eng := newExampleTable()
	eng.SetGlobalFilter(Replace("b"))
	first := eng.GetFilteredRowModel()

	eng.SetPageIndex(0)
	eng.SetSorting(Replace(SortingState{{ID: "name"}}))
	assert.Same(t, first, eng.GetFilteredRowModel())

	eng.SetGlobalFilter(Replace("c"))
	assert.NotSame(t, first, eng.GetFilteredRowModel())
}
