package repl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tablekit/internal/command"
	"github.com/leengari/tablekit/internal/storage"
	"github.com/leengari/tablekit/internal/testutil"
)

func newSession(t *testing.T) *command.Session {
	catalog := &storage.Catalog{
		Name: "test",
		Datasets: map[string]*storage.Dataset{
			"nested": {Name: "nested", Columns: testutil.NestedColumns(), Rows: testutil.NestedData()},
		},
	}
	return command.NewSession(catalog,
		command.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		command.WithSnapshotDir(t.TempDir()),
	)
}

func TestStartRunsUntilExit(t *testing.T) {
	in := strings.NewReader("use nested\n\nsort count desc\nbogus\n\\q\nshow\n")
	var out bytes.Buffer

	err := Start(context.Background(), in, &out, newSession(t))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Welcome to tablekit")
	assert.Contains(t, text, "Using dataset 'nested'")
	assert.Contains(t, text, "sorted by count desc")
	assert.Contains(t, text, "count ↓")
	assert.Contains(t, text, `Error: unknown command "bogus"`)
	assert.Equal(t, 2, strings.Count(text, "page 1/1, 3 rows"), "show after exit never runs")
}

func TestStartStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	err := Start(context.Background(), strings.NewReader("show"), &out, newSession(t))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Error: no dataset selected")
}

func TestStartCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Start(ctx, strings.NewReader("help\n"), io.Discard, newSession(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintResult(&out, &command.Result{Error: "boom"}))
	assert.Equal(t, "Error: boom\n", out.String())

	out.Reset()
	require.NoError(t, PrintResult(&out, &command.Result{Message: "done"}))
	assert.Equal(t, "done\n", out.String())

	out.Reset()
	res := &command.Result{
		Columns:  []string{"name", "count"},
		Metadata: []command.ColumnMetadata{{Name: "name", Pinned: "left"}, {Name: "count", Sort: "asc"}},
		Rows: []command.ResultRow{
			{ID: "0", Expandable: true, Expanded: true, Cells: []string{"north", "3"}},
			{ID: "0.0", Depth: 1, Selected: true, Cells: []string{"north-b", "2"}},
		},
	}
	require.NoError(t, PrintResult(&out, res))
	text := out.String()
	assert.Contains(t, text, "[name]")
	assert.Contains(t, text, "count ↑")
	assert.Contains(t, text, "- north")
	assert.Contains(t, text, "*    north-b")
}

func TestCells(t *testing.T) {
	assert.Equal(t, []string{"+ a", "1"}, cells(command.ResultRow{Expandable: true, Cells: []string{"a", "1"}}))
	assert.Equal(t, []string{"    b"}, cells(command.ResultRow{Depth: 1, Cells: []string{"b"}}))
	assert.Empty(t, cells(command.ResultRow{}))

	row := command.ResultRow{Cells: []string{"c"}}
	cells(row)
	assert.Equal(t, "c", row.Cells[0], "cells copies")
}
