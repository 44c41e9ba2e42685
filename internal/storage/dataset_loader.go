package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
	"github.com/leengari/tablekit/internal/engine"
)

// Dataset is a loaded dataset directory: its column definitions and rows
type Dataset struct {
	Name    string
	Path    string
	Format  Format
	Meta    DatasetMeta
	Columns []schema.ColumnDef
	Rows    []data.Row
}

// Options returns engine options for the dataset. Datasets naming a row id
// key get stable ids instead of positional ones.
func (d *Dataset) Options() engine.Options {
	opts := engine.Options{
		Columns: d.Columns,
		Data:    d.Rows,
	}
	if d.Meta.RowIDKey != "" {
		opts.GetRowID = engine.RowIDByKey(d.Meta.RowIDKey)
	}
	return opts
}

// findDoc locates base.json, base.yaml or base.yml inside dir
func findDoc(dir, base string) (string, Format, error) {
	candidates := []struct {
		ext    string
		format Format
	}{
		{".json", FormatJSON},
		{".yaml", FormatYAML},
		{".yml", FormatYAML},
	}
	for _, c := range candidates {
		path := filepath.Join(dir, base+c.ext)
		if _, err := os.Stat(path); err == nil {
			return path, c.format, nil
		}
	}
	return "", "", fmt.Errorf("no %s.json or %s.yaml in %s: %w", base, base, dir, fs.ErrNotExist)
}

func decode(raw []byte, format Format, v interface{}) error {
	if format == FormatYAML {
		return yaml.Unmarshal(raw, v)
	}
	return json.Unmarshal(raw, v)
}

// LoadDataset loads meta and (optional) data from a dataset directory and
// validates the column definitions
func LoadDataset(path string, logger *slog.Logger) (*Dataset, error) {
	metaPath, format, err := findDoc(path, "meta")
	if err != nil {
		return nil, err
	}

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset meta: %w", err)
	}

	var meta DatasetMeta
	if err := decode(metaBytes, format, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse dataset meta %s: %w", metaPath, err)
	}
	if meta.Name == "" {
		meta.Name = filepath.Base(path)
	}

	var errs []error
	columns := make([]schema.ColumnDef, 0, len(meta.Columns))
	for i, c := range meta.Columns {
		def, err := c.ToDef(meta.Name, i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		columns = append(columns, def)
	}
	if err := errors.Join(append(errs, schema.Validate(meta.Name, columns))...); err != nil {
		return nil, fmt.Errorf("dataset %s has invalid columns: %w", meta.Name, err)
	}

	rows, err := loadRows(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows of dataset %s: %w", meta.Name, err)
	}

	ds := &Dataset{
		Name:    meta.Name,
		Path:    path,
		Format:  format,
		Meta:    meta,
		Columns: columns,
		Rows:    rows,
	}
	logger.Info("dataset loaded",
		slog.String("dataset", ds.Name),
		slog.String("format", string(format)),
		slog.Int("columns", len(columns)),
		slog.Int("rows", data.CountRows(rows)),
	)

	return ds, nil
}

func loadRows(path string) ([]data.Row, error) {
	dataPath, format, err := findDoc(path, "data")
	if errors.Is(err, fs.ErrNotExist) {
		return []data.Row{}, nil
	}
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, err
	}

	if format == FormatJSON {
		var rows []data.Row
		if err := json.Unmarshal(raw, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	var docs []map[string]interface{}
	if err := yaml.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return data.FromMaps(docs), nil
}
