package writer

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tablekit/internal/engine"
	"github.com/leengari/tablekit/internal/storage"
	"github.com/leengari/tablekit/internal/testutil"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestSaveDatasetRoundTrip(t *testing.T) {
	for _, format := range []storage.Format{storage.FormatJSON, storage.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested")
			ds := &storage.Dataset{
				Name:    "nested",
				Path:    dir,
				Format:  format,
				Columns: testutil.NestedColumns(),
				Rows:    testutil.NestedData(),
			}

			require.NoError(t, SaveDataset(ds, discard))
			_, err := os.Stat(filepath.Join(dir, "meta"+format.Ext()+".tmp"))
			assert.True(t, os.IsNotExist(err), "temp files are renamed away")

			loaded, err := storage.LoadDataset(dir, discard)
			require.NoError(t, err)
			assert.Equal(t, format, loaded.Format)
			assert.Equal(t, 7, loaded.Meta.RowCount)
			require.Len(t, loaded.Columns, 3)
			assert.Equal(t, testutil.NestedColumns()[2].Kind, loaded.Columns[2].Kind)

			before := engine.New(ds.Options())
			after := engine.New(loaded.Options())
			assert.Equal(t, before.GetCoreRowModel().IDs(), after.GetCoreRowModel().IDs())
			assert.Len(t, after.GetCoreRowModel().FlatRows, 7)
		})
	}
}

func TestSaveDatasetRequiresPath(t *testing.T) {
	testutil.AssertError(t, SaveDataset(&storage.Dataset{Name: "x"}, discard), "missing path")
	testutil.AssertError(t, SaveDataset(nil, discard), "nil dataset")
}

func TestStateSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views", "default.json")
	state := engine.State{
		Sorting:       engine.SortingState{{ID: "count", Desc: true}},
		ColumnFilters: engine.ColumnFiltersState{{ID: "status", Value: "active"}},
		GlobalFilter:  "north",
		Pagination:    engine.PaginationState{PageIndex: 1, PageSize: 5},
		RowSelection:  engine.RowSelectionState{"0.1": true},
		Expanded:      engine.ExpandedState{"0": true},
		ColumnOrder:   engine.ColumnOrderState{"status", "name"},
		ColumnPinning: engine.ColumnPinningState{Left: []string{"name"}},
	}

	require.NoError(t, SaveState(path, state))
	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)

	_, err = LoadState(filepath.Join(t.TempDir(), "missing.json"))
	testutil.AssertError(t, err, "missing snapshot")
}
