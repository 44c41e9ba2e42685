package schema

import (
	"errors"
	"fmt"
	"strings"
)

// DefinitionError describes an invalid column definition
// (missing id, duplicate id, missing accessor, bad size bounds, etc.)
type DefinitionError struct {
	Dataset string // dataset name (empty if unknown)
	Column  string // resolved column id (empty if none)
	Index   int    // position in the definition list
	Field   string // "id", "accessor", "size", ...
	Reason  string // human-readable explanation
}

func (e *DefinitionError) Error() string {
	var parts []string

	if e.Dataset != "" {
		parts = append(parts, fmt.Sprintf("invalid column %s.%s", e.Dataset, e.Column))
	} else {
		parts = append(parts, fmt.Sprintf("invalid column %s", e.Column))
	}

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Field))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("at position %d", e.Index))
	}

	return strings.Join(parts, " - ")
}

// Validate checks a set of column definitions and returns every problem
// found, joined. The engine itself tolerates all of these; loaders reject them.
func Validate(dataset string, defs []ColumnDef) error {
	var errs []error
	seen := make(map[string]int, len(defs))

	for i, def := range defs {
		id := def.ResolvedID()
		if id == "" {
			errs = append(errs, &DefinitionError{
				Dataset: dataset, Index: i, Field: "id",
				Reason: "neither id nor accessor key set",
			})
			continue
		}
		if prev, dup := seen[id]; dup {
			errs = append(errs, &DefinitionError{
				Dataset: dataset, Column: id, Index: i, Field: "id",
				Reason: fmt.Sprintf("duplicate of column at position %d", prev),
			})
		}
		seen[id] = i

		if !def.HasAccessor() {
			errs = append(errs, &DefinitionError{
				Dataset: dataset, Column: id, Index: i, Field: "accessor",
				Reason: "no accessor, cells will render empty",
			})
		}
		if def.MinSize < 0 || def.MaxSize < 0 || def.Size < 0 {
			errs = append(errs, &DefinitionError{
				Dataset: dataset, Column: id, Index: i, Field: "size",
				Reason: "negative size",
			})
		}
		if def.MaxSize > 0 && def.MinSize > def.MaxSize {
			errs = append(errs, &DefinitionError{
				Dataset: dataset, Column: id, Index: i, Field: "size",
				Reason: fmt.Sprintf("min size %d exceeds max size %d", def.MinSize, def.MaxSize),
			})
		}
	}

	return errors.Join(errs...)
}
