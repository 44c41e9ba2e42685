package data

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a row by its index at each nesting level, e.g. [2 0 1]
type Path []int

// ParsePath parses a positional row id such as "2.0.1"
func ParsePath(id string) (Path, error) {
	if id == "" {
		return nil, fmt.Errorf("empty row path")
	}
	parts := strings.Split(id, ".")
	path := make(Path, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid row path %q: segment %q", id, p)
		}
		path[i] = n
	}
	return path, nil
}

// String renders the path in its positional id form
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// At returns the row addressed by path
func At(rows []Row, path Path) (Row, bool) {
	if len(path) == 0 {
		return Row{}, false
	}
	cur := rows
	for depth, idx := range path {
		if idx < 0 || idx >= len(cur) {
			return Row{}, false
		}
		if depth == len(path)-1 {
			return cur[idx], true
		}
		cur = cur[idx].SubRows
	}
	return Row{}, false
}

// WithCellValue returns a new row slice in which the row at path has key set
// to value. Only the rows along the path are copied; rows is never mutated.
func WithCellValue(rows []Row, path Path, key string, value interface{}) ([]Row, error) {
	return rewrite(rows, path, func(r Row) Row {
		data := make(map[string]interface{}, len(r.Data)+1)
		for k, v := range r.Data {
			data[k] = v
		}
		data[key] = value
		return Row{Data: data, SubRows: r.SubRows}
	})
}

// WithSubRows returns a new row slice in which the row at path owns subRows.
// This is how rows fetched on demand are attached to their parent.
func WithSubRows(rows []Row, path Path, subRows []Row) ([]Row, error) {
	return rewrite(rows, path, func(r Row) Row {
		return Row{Data: r.Data, SubRows: subRows}
	})
}

// WithoutRow returns a new row slice with the row at path, and its sub-rows,
// removed. Later siblings move up one position.
func WithoutRow(rows []Row, path Path) ([]Row, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty row path")
	}
	last := path[len(path)-1]
	drop := func(siblings []Row) ([]Row, bool) {
		if last < 0 || last >= len(siblings) {
			return nil, false
		}
		if len(siblings) == 1 {
			return nil, true
		}
		out := make([]Row, 0, len(siblings)-1)
		out = append(out, siblings[:last]...)
		return append(out, siblings[last+1:]...), true
	}

	if len(path) == 1 {
		out, ok := drop(rows)
		if !ok {
			return nil, fmt.Errorf("row path %s out of range", path)
		}
		return out, nil
	}

	found := false
	out, err := rewrite(rows, path[:len(path)-1], func(r Row) Row {
		children, ok := drop(r.SubRows)
		if !ok {
			return r
		}
		found = true
		return Row{Data: r.Data, SubRows: children}
	})
	if err != nil || !found {
		return nil, fmt.Errorf("row path %s out of range", path)
	}
	return out, nil
}

func rewrite(rows []Row, path Path, fn func(Row) Row) ([]Row, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty row path")
	}
	idx := path[0]
	if idx < 0 || idx >= len(rows) {
		return nil, fmt.Errorf("row path %s out of range", path)
	}

	out := make([]Row, len(rows))
	copy(out, rows)

	if len(path) == 1 {
		out[idx] = fn(rows[idx])
		return out, nil
	}

	children, err := rewrite(rows[idx].SubRows, path[1:], fn)
	if err != nil {
		return nil, fmt.Errorf("row path %s out of range", path)
	}
	out[idx] = Row{Data: rows[idx].Data, SubRows: children}
	return out, nil
}
