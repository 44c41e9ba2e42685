package storage

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tablekit/internal/domain/schema"
	"github.com/leengari/tablekit/internal/engine"
	"github.com/leengari/tablekit/internal/testutil"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

const jsonMeta = `{
  "name": "resources",
  "version": 1,
  "row_id": "id",
  "columns": [
    {"id": "id", "disable_hiding": true},
    {"id": "name", "header": "Name"},
    {"id": "rule", "kind": "select", "options": ["Round robin", "DNS delegation"]},
    {"id": "port", "kind": "number", "sort_undefined": "last"}
  ]
}`

const jsonData = `[
  {"id": "a1", "name": "lb-1", "rule": "Round robin", "port": 443,
   "subRows": [{"id": "a2", "name": "lb-1a", "rule": "DNS delegation"}]},
  {"id": "b1", "name": "lb-2", "rule": "DNS delegation", "port": 80}
]`

func TestLoadDatasetJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "resources")
	writeFile(t, dir, "meta.json", jsonMeta)
	writeFile(t, dir, "data.json", jsonData)

	ds, err := LoadDataset(dir, discard)
	testutil.AssertNoError(t, err, "load")
	require.NotNil(t, ds)

	assert.Equal(t, "resources", ds.Name)
	assert.Equal(t, FormatJSON, ds.Format)
	require.Len(t, ds.Columns, 4)
	assert.Equal(t, "name", ds.Columns[1].AccessorKey)
	assert.Equal(t, schema.KindSelect, ds.Columns[2].Kind)
	assert.Equal(t, schema.SortUndefinedLast, ds.Columns[3].SortUndefined)
	require.Len(t, ds.Rows, 2)
	assert.Len(t, ds.Rows[0].SubRows, 1)

	tbl := engine.New(ds.Options())
	_, ok := tbl.GetRow("a2")
	assert.True(t, ok, "row ids come from the row_id key")
}

func TestLoadDatasetYAML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "people")
	writeFile(t, dir, "meta.yaml", `
name: people
columns:
  - id: firstName
  - id: age
    kind: number
    sort_first: desc
  - id: city
    accessor: address.city
`)
	writeFile(t, dir, "data.yml", `
- firstName: Ada
  age: 36
  address:
    city: London
  subRows:
    - firstName: Byron
      age: 12
- firstName: Grace
  age: 85
`)

	ds, err := LoadDataset(dir, discard)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, ds.Format)
	assert.Equal(t, schema.SortFirstDesc, ds.Columns[1].SortFirst)

	city, ok := ds.Rows[0].Get("address.city")
	assert.True(t, ok)
	assert.Equal(t, "London", city)
	assert.Len(t, ds.Rows[0].SubRows, 1)

	tbl := engine.New(ds.Options())
	testutil.AssertRowCount(t, len(tbl.GetCoreRowModel().FlatRows), 3, "flat rows")
}

func TestLoadDatasetWithoutData(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "empty")
	writeFile(t, dir, "meta.json", `{"columns": [{"id": "a"}]}`)

	ds, err := LoadDataset(dir, discard)
	require.NoError(t, err)
	assert.Equal(t, "empty", ds.Name, "name defaults to the directory")
	assert.Empty(t, ds.Rows)
}

func TestLoadDatasetInvalidColumns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bad")
	writeFile(t, dir, "meta.json", `{"name": "bad", "columns": [
		{"id": "a", "kind": "bogus"},
		{"id": "b"},
		{"id": "b"},
		{"id": "c", "min_size": 50, "max_size": 10}
	]}`)

	_, err := LoadDataset(dir, discard)
	testutil.AssertError(t, err, "invalid columns")

	var defErr *schema.DefinitionError
	require.True(t, errors.As(err, &defErr))
	assert.Contains(t, err.Error(), "unknown column kind")
	assert.Contains(t, err.Error(), "duplicate")
	assert.Contains(t, err.Error(), "min size 50 exceeds max size 10")
}

func TestLoadDatasetMissingMeta(t *testing.T) {
	_, err := LoadDataset(t.TempDir(), discard)
	testutil.AssertError(t, err, "missing meta")
}

func TestLoadCatalog(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "meta.json", `{"name": "demo", "version": 1}`)
	writeFile(t, filepath.Join(root, "resources"), "meta.json", jsonMeta)
	writeFile(t, filepath.Join(root, "resources"), "data.json", jsonData)
	writeFile(t, filepath.Join(root, "people"), "meta.yaml", "name: people\ncolumns:\n  - id: name\n")
	writeFile(t, root, "README.txt", "not a dataset")

	catalog, err := LoadCatalog(root, discard)
	require.NoError(t, err)
	assert.Equal(t, "demo", catalog.Name)
	assert.Equal(t, []string{"people", "resources"}, catalog.Names())

	_, ok := catalog.Get("missing")
	assert.False(t, ok)
}

func TestColumnMetaRoundTrip(t *testing.T) {
	def := schema.ColumnDef{
		ID:            "status",
		AccessorKey:   "health.status",
		Kind:          schema.KindCheckbox,
		SortingFn:     schema.SortText,
		SortFirst:     schema.SortFirstDesc,
		SortUndefined: schema.SortUndefinedLow,
		FilterFn:      schema.FilterArrIncludesAll,
		Size:          90,
	}

	back, err := ColumnMetaFromDef(def).ToDef("x", 0)
	require.NoError(t, err)
	assert.Equal(t, def.ID, back.ID)
	assert.Equal(t, def.AccessorKey, back.AccessorKey)
	assert.Equal(t, def.Kind, back.Kind)
	assert.Equal(t, def.SortingFn, back.SortingFn)
	assert.Equal(t, def.SortFirst, back.SortFirst)
	assert.Equal(t, def.SortUndefined, back.SortUndefined)
	assert.Equal(t, def.FilterFn, back.FilterFn)
	assert.Equal(t, def.Size, back.Size)
}
