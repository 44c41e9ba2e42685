package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Catalog is a directory of datasets
type Catalog struct {
	Name     string
	Path     string
	Datasets map[string]*Dataset
}

// Names returns the dataset names in sorted order
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Datasets))
	for name := range c.Datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a dataset by name
func (c *Catalog) Get(name string) (*Dataset, bool) {
	ds, ok := c.Datasets[name]
	return ds, ok
}

// LoadCatalog loads every dataset directory under path. The catalog meta
// file is optional; without it the catalog is named after the directory.
func LoadCatalog(path string, logger *slog.Logger) (*Catalog, error) {
	catalog := &Catalog{
		Name:     filepath.Base(path),
		Path:     path,
		Datasets: make(map[string]*Dataset),
	}

	if metaPath, format, err := findDoc(path, "meta"); err == nil {
		raw, err := os.ReadFile(metaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog meta: %w", err)
		}
		var meta CatalogMeta
		if err := decode(raw, format, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse catalog meta: %w", err)
		}
		if meta.Name != "" {
			catalog.Name = meta.Name
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	// Read all entries in the catalog directory
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(path, entry.Name())
		ds, err := LoadDataset(dir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset %s: %w", entry.Name(), err)
		}
		if _, dup := catalog.Datasets[ds.Name]; dup {
			return nil, fmt.Errorf("duplicate dataset name %q in %s", ds.Name, dir)
		}

		catalog.Datasets[ds.Name] = ds
	}

	logger.Info("catalog loaded successfully",
		slog.String("name", catalog.Name),
		slog.String("path", path),
		slog.Int("dataset_count", len(catalog.Datasets)),
	)

	return catalog, nil
}
