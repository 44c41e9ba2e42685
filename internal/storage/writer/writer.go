package writer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/engine"
	"github.com/leengari/tablekit/internal/storage"
)

type file struct {
	path string
	data []byte
	name string
}

// writeAtomic writes each file to a temp path and renames it into place
func writeAtomic(files []file) error {
	for _, f := range files {
		tmpPath := f.path + ".tmp"

		// Write to temp
		if err := os.WriteFile(tmpPath, f.data, 0644); err != nil {
			return fmt.Errorf("failed to write temp file %s: %w", f.name, err)
		}

		// Atomic replace
		if err := os.Rename(tmpPath, f.path); err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("failed to rename temp → %s: %w", f.name, err)
		}
	}
	return nil
}

func marshal(format storage.Format, v interface{}) ([]byte, error) {
	if format == storage.FormatYAML {
		return yaml.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// SaveDataset persists meta and data of a dataset atomically, in the
// dataset's own format (JSON when unset)
func SaveDataset(ds *storage.Dataset, logger *slog.Logger) error {
	if ds == nil || ds.Path == "" {
		return fmt.Errorf("cannot save dataset: nil or missing path")
	}
	format := ds.Format
	if format == "" {
		format = storage.FormatJSON
	}

	// 1. Prepare meta (updated from current in-memory state)
	meta := ds.Meta
	meta.Name = ds.Name
	if meta.Version == 0 {
		meta.Version = 1
	}
	meta.RowCount = data.CountRows(ds.Rows)
	meta.Columns = make([]storage.ColumnMeta, len(ds.Columns))
	for i, def := range ds.Columns {
		meta.Columns[i] = storage.ColumnMetaFromDef(def)
	}

	metaBytes, err := marshal(format, meta)
	if err != nil {
		return fmt.Errorf("failed to marshal meta for %s: %w", ds.Name, err)
	}

	// 2. Marshal data (rows)
	docs := make([]map[string]interface{}, len(ds.Rows))
	for i, r := range ds.Rows {
		docs[i] = r.ToMap()
	}
	dataBytes, err := marshal(format, docs)
	if err != nil {
		return fmt.Errorf("failed to marshal rows for %s: %w", ds.Name, err)
	}

	// 3. Write both files using temp + atomic rename
	if err := os.MkdirAll(ds.Path, 0755); err != nil {
		return fmt.Errorf("failed to create dataset directory %s: %w", ds.Path, err)
	}
	err = writeAtomic([]file{
		{filepath.Join(ds.Path, "meta"+format.Ext()), metaBytes, "meta" + format.Ext()},
		{filepath.Join(ds.Path, "data"+format.Ext()), dataBytes, "data" + format.Ext()},
	})
	if err != nil {
		return fmt.Errorf("failed to save dataset %s: %w", ds.Name, err)
	}

	logger.Info("dataset saved successfully",
		slog.String("dataset", ds.Name),
		slog.String("path", ds.Path),
		slog.Int("row_count", meta.RowCount),
	)

	return nil
}

// SaveState writes a view snapshot (the table state) as JSON
func SaveState(path string, state engine.State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal view state: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}
	return writeAtomic([]file{{path, raw, filepath.Base(path)}})
}

// LoadState reads a view snapshot written by SaveState
func LoadState(path string) (engine.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return engine.State{}, fmt.Errorf("failed to read view state: %w", err)
	}
	var state engine.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return engine.State{}, fmt.Errorf("failed to parse view state %s: %w", path, err)
	}
	return state, nil
}
