package engine

import "github.com/leengari/tablekit/internal/domain/data"

// GetCoreRowModel flattens the data depth-first into row handles with
// depth, id and parent id. A table without columns has no rows.
func (t *Table) GetCoreRowModel() *RowModel {
	return t.memos.core.get(t.deps(), func() *RowModel {
		if len(t.columns) == 0 {
			return newRowModel(nil)
		}
		m := newRowModel(t.accessRows(t.opts.Data, 0, nil))
		t.modelComputed("core", m)
		return m
	})
}

func (t *Table) accessRows(rows []data.Row, depth int, parent *Row) []*Row {
	out := make([]*Row, 0, len(rows))
	for i, orig := range rows {
		id := defaultRowID(i, parent)
		if t.opts.GetRowID != nil {
			id = t.opts.GetRowID(orig, i, parent)
		}
		r := &Row{
			ID:       id,
			Index:    i,
			Depth:    depth,
			Original: orig,
			table:    t,
		}
		if parent != nil {
			r.ParentID = parent.ID
		}
		if subs := t.opts.subRows(orig); len(subs) > 0 {
			r.SubRows = t.accessRows(subs, depth+1, r)
		}
		out = append(out, r)
	}
	return out
}

// RowIDByKey builds a GetRowID that reads the id from a data key, falling
// back to the positional id for rows without it
func RowIDByKey(key string) func(data.Row, int, *Row) string {
	return func(row data.Row, index int, parent *Row) string {
		if v, ok := row.Get(key); ok {
			if id := toString(v); id != "" {
				return id
			}
		}
		return defaultRowID(index, parent)
	}
}

// GetRow looks a row up by id in the core model
func (t *Table) GetRow(id string) (*Row, bool) {
	r, ok := t.GetCoreRowModel().RowsByID[id]
	return r, ok
}

// GetRowModel returns the final row model (after pagination)
func (t *Table) GetRowModel() *RowModel {
	return t.GetPaginationRowModel()
}

func (t *Table) modelComputed(name string, m *RowModel) {
	t.logger.Debug("row model computed",
		"table_id", t.id,
		"model", name,
		"rows", len(m.Rows),
		"flat_rows", len(m.FlatRows),
	)
	t.notify(Event{Type: EventRowModel, Data: map[string]int{
		name: len(m.FlatRows),
	}})
}
