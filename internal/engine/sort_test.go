package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
	"github.com/leengari/tablekit/internal/testutil"
)

func TestSortExampleNumericStrings(t *testing.T) {
	eng := newExampleTable()

	assert.Equal(t, schema.SortAlphanumeric, mustColumn(t, eng, "example").GetAutoSortingFn())

	eng.SetSorting(Replace(SortingState{{ID: "example"}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"3", "1", "0", "4", "2"}, "ascending d b a e c")

	eng.SetSorting(Replace(SortingState{{ID: "example", Desc: true}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"2", "4", "0", "1", "3"}, "descending")
}

func TestSortPerLevel(t *testing.T) {
	eng := newNestedTable()
	eng.SetSorting(Replace(SortingState{{ID: "count"}}))

	sorted := eng.GetSortedRowModel()
	testutil.AssertIDs(t, sorted.IDs(), []string{"1", "2", "0"}, "top level by count")
	testutil.AssertIDs(t, flatIDs(sorted.FlatRows),
		[]string{"1", "1.0", "2", "0", "0.1", "0.1.0", "0.0"}, "children stay under their parent")

	// each row's children are contiguous and directly follow it
	pos := make(map[string]int, len(sorted.FlatRows))
	for i, r := range sorted.FlatRows {
		pos[r.ID] = i
	}
	for _, r := range sorted.FlatRows {
		next := pos[r.ID] + 1
		for _, sub := range r.SubRows {
			assert.Equal(t, next, pos[sub.ID], "child %s of %s", sub.ID, r.ID)
			next += 1 + len(sub.GetLeafRows())
		}
	}
}

func TestSortStableMultiKey(t *testing.T) {
	rows := []data.Row{
		data.NewRow(map[string]interface{}{"team": "red", "score": 2}),
		data.NewRow(map[string]interface{}{"team": "blue", "score": 1}),
		data.NewRow(map[string]interface{}{"team": "red", "score": 1}),
		data.NewRow(map[string]interface{}{"team": "blue", "score": 1}),
	}
	eng := New(Options{
		Columns: []schema.ColumnDef{{AccessorKey: "team"}, {AccessorKey: "score"}},
		Data:    rows,
	})

	eng.SetSorting(Replace(SortingState{{ID: "team"}, {ID: "score", Desc: true}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"1", "3", "0", "2"}, "team then score")

	eng.SetSorting(Replace(SortingState{{ID: "score"}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"1", "2", "3", "0"}, "ties keep source order")
}

func undefinedScoreTable(mode schema.SortUndefined) *Table {
	return New(Options{
		Columns: []schema.ColumnDef{{AccessorKey: "score", SortUndefined: mode}},
		Data: []data.Row{
			data.NewRow(map[string]interface{}{"score": 3}),
			data.NewRow(map[string]interface{}{}),
			data.NewRow(map[string]interface{}{"score": 1}),
			data.NewRow(map[string]interface{}{"score": nil}),
			data.NewRow(map[string]interface{}{"score": 2}),
		},
	})
}

func TestSortUndefined(t *testing.T) {
	tests := []struct {
		mode schema.SortUndefined
		asc  []string
		desc []string
	}{
		{schema.SortUndefinedLast, []string{"2", "4", "0", "1", "3"}, []string{"0", "4", "2", "1", "3"}},
		{schema.SortUndefinedFirst, []string{"1", "3", "2", "4", "0"}, []string{"1", "3", "0", "4", "2"}},
		{schema.SortUndefinedDefault, []string{"2", "4", "0", "1", "3"}, []string{"1", "3", "0", "4", "2"}},
		{schema.SortUndefinedHigh, []string{"2", "4", "0", "1", "3"}, []string{"1", "3", "0", "4", "2"}},
		{schema.SortUndefinedLow, []string{"1", "3", "2", "4", "0"}, []string{"0", "4", "2", "1", "3"}},
	}

	for _, tt := range tests {
		eng := undefinedScoreTable(tt.mode)

		eng.SetSorting(Replace(SortingState{{ID: "score"}}))
		testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), tt.asc, "ascending")

		eng.SetSorting(Replace(SortingState{{ID: "score", Desc: true}}))
		testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), tt.desc, "descending")
	}
}

func TestSortCustomCompare(t *testing.T) {
	order := map[string]int{"starting": 0, "active": 1, "disabled": 2}
	eng := newNestedTable(func(o *Options) {
		o.Columns[2].Compare = func(a, b interface{}) int {
			return order[a.(string)] - order[b.(string)]
		}
	})
	eng.SetSorting(Replace(SortingState{{ID: "status"}}))

	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"2", "0", "1"}, "starting, active, disabled")
}

func TestSortInvert(t *testing.T) {
	eng := New(Options{
		Columns: []schema.ColumnDef{{AccessorKey: "rank", InvertSorting: true}},
		Data: []data.Row{
			data.NewRow(map[string]interface{}{"rank": 2}),
			data.NewRow(map[string]interface{}{"rank": 1}),
			data.NewRow(map[string]interface{}{"rank": 3}),
		},
	})
	eng.SetSorting(Replace(SortingState{{ID: "rank"}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"2", "0", "1"}, "inverted ascending")
}

func TestSortText(t *testing.T) {
	eng := New(Options{
		Columns: []schema.ColumnDef{{AccessorKey: "word"}},
		Data: []data.Row{
			data.NewRow(map[string]interface{}{"word": "banana"}),
			data.NewRow(map[string]interface{}{"word": "Apple"}),
			data.NewRow(map[string]interface{}{"word": "cherry"}),
			data.NewRow(map[string]interface{}{"word": "éclair"}),
		},
	})
	assert.Equal(t, schema.SortText, mustColumn(t, eng, "word").GetAutoSortingFn())

	eng.SetSorting(Replace(SortingState{{ID: "word"}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"1", "0", "2", "3"}, "collated, case-insensitive")
}

func TestSortDatetime(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	eng := New(Options{
		Columns: []schema.ColumnDef{{AccessorKey: "at"}},
		Data: []data.Row{
			data.NewRow(map[string]interface{}{"at": day(3)}),
			data.NewRow(map[string]interface{}{"at": day(1)}),
			data.NewRow(map[string]interface{}{"at": day(2)}),
		},
	})
	assert.Equal(t, schema.SortDatetime, mustColumn(t, eng, "at").GetAutoSortingFn())

	eng.SetSorting(Replace(SortingState{{ID: "at"}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"1", "2", "0"}, "by time")
}

func TestSortFuzzyByRank(t *testing.T) {
	eng := New(Options{
		Columns: []schema.ColumnDef{{AccessorKey: "name", SortingFn: schema.SortFuzzy}},
		Data: []data.Row{
			data.NewRow(map[string]interface{}{"name": "a south"}),
			data.NewRow(map[string]interface{}{"name": "south-a"}),
			data.NewRow(map[string]interface{}{"name": "south"}),
		},
	})
	eng.SetGlobalFilter(Replace("south"))
	eng.SetSorting(Replace(SortingState{{ID: "name"}}))

	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"2", "1", "0"}, "best match first")
}

func TestCompareAlphanumeric(t *testing.T) {
	assert.Negative(t, compareAlphanumeric("item2", "item10"))
	assert.Positive(t, compareAlphanumeric("item10", "item2"))
	assert.Negative(t, compareAlphanumeric("a", "a1"))
	assert.Negative(t, compareAlphanumeric("x", "1"), "text chunks before digit chunks")
	assert.Zero(t, compareAlphanumeric("v1.2", "v1.2"))
	assert.Negative(t, compareAlphanumeric("99999999999999999999", "100000000000000000000"))
}

func TestToggleSortingCycle(t *testing.T) {
	t.Run("strings start ascending", func(t *testing.T) {
		eng := newNestedTable()
		name := mustColumn(t, eng, "name")
		assert.Equal(t, SortAsc, name.GetFirstSortDir())

		name.ToggleSorting(false)
		assert.Equal(t, SortAsc, name.GetIsSorted())
		name.ToggleSorting(false)
		assert.Equal(t, SortDesc, name.GetIsSorted())
		name.ToggleSorting(false)
		assert.Equal(t, SortNone, name.GetIsSorted())
		assert.Empty(t, eng.GetState().Sorting)
	})

	t.Run("numbers start descending", func(t *testing.T) {
		eng := newNestedTable()
		count := mustColumn(t, eng, "count")
		assert.Equal(t, SortDesc, count.GetFirstSortDir())

		count.ToggleSorting(false)
		assert.Equal(t, SortDesc, count.GetIsSorted())
		count.ToggleSorting(false)
		assert.Equal(t, SortAsc, count.GetIsSorted())
		count.ToggleSorting(false)
		assert.Equal(t, SortNone, count.GetIsSorted())
	})

	t.Run("explicit first direction", func(t *testing.T) {
		eng := newNestedTable(func(o *Options) { o.Columns[0].SortFirst = schema.SortFirstDesc })
		name := mustColumn(t, eng, "name")
		name.ToggleSorting(false)
		assert.Equal(t, SortDesc, name.GetIsSorted())
	})

	t.Run("removal disabled", func(t *testing.T) {
		eng := newNestedTable(func(o *Options) { o.DisableSortingRemoval = true })
		name := mustColumn(t, eng, "name")
		name.ToggleSorting(false)
		name.ToggleSorting(false)
		name.ToggleSorting(false)
		assert.Equal(t, SortAsc, name.GetIsSorted())
	})
}

func TestToggleSortingMulti(t *testing.T) {
	eng := newNestedTable()
	name := mustColumn(t, eng, "name")
	status := mustColumn(t, eng, "status")
	count := mustColumn(t, eng, "count")

	name.ToggleSorting(false)
	status.ToggleSorting(true)
	assert.Equal(t, SortingState{{ID: "name"}, {ID: "status"}}, eng.GetState().Sorting)
	assert.Equal(t, 1, status.GetSortIndex())

	// a single toggle replaces the multi sort
	count.ToggleSorting(false)
	assert.Equal(t, SortingState{{ID: "count", Desc: true}}, eng.GetState().Sorting)

	status.ToggleSorting(true)
	status.ClearSorting()
	assert.Equal(t, SortingState{{ID: "count", Desc: true}}, eng.GetState().Sorting)
	assert.Equal(t, -1, status.GetSortIndex())

	status.SetSortDirection(true, true)
	assert.Equal(t, SortDesc, status.GetIsSorted())
}

func TestMaxMultiSortColCount(t *testing.T) {
	eng := newNestedTable(func(o *Options) { o.MaxMultiSortColCount = 2 })
	mustColumn(t, eng, "name").ToggleSorting(false)
	mustColumn(t, eng, "count").ToggleSorting(true)
	mustColumn(t, eng, "status").ToggleSorting(true)

	assert.Equal(t, SortingState{{ID: "count", Desc: true}, {ID: "status"}}, eng.GetState().Sorting)
}

func TestSortingDisabled(t *testing.T) {
	eng := newNestedTable(func(o *Options) { o.Columns[0].DisableSorting = true })
	name := mustColumn(t, eng, "name")
	require.False(t, name.GetCanSort())

	name.ToggleSorting(false)
	assert.Empty(t, eng.GetState().Sorting)

	// a sort entry set directly is ignored
	eng.SetSorting(Replace(SortingState{{ID: "name", Desc: true}, {ID: "unknown"}}))
	testutil.AssertIDs(t, eng.GetSortedRowModel().IDs(), []string{"0", "1", "2"}, "unsorted")
}
