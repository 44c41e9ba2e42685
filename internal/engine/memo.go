package engine

import "slices"

// memo caches one derived value keyed on the versions of its inputs
type memo[T any] struct {
	deps  []uint64
	value T
	valid bool
}

func (m *memo[T]) get(deps []uint64, compute func() T) T {
	if m.valid && slices.Equal(m.deps, deps) {
		return m.value
	}
	m.value = compute()
	m.deps = deps
	m.valid = true
	return m.value
}

type memos struct {
	core      memo[*RowModel]
	filtered  memo[*RowModel]
	sorted    memo[*RowModel]
	expanded  memo[*RowModel]
	paginated memo[*RowModel]
	faceted   map[string]*memo[*RowModel]
}

func (t *Table) deps(inputs ...StateSlice) []uint64 {
	out := make([]uint64, 0, len(inputs)+1)
	out = append(out, t.dataVersion)
	for _, s := range inputs {
		out = append(out, t.stateVersions[s])
	}
	return out
}

func (t *Table) facetMemo(columnID string) *memo[*RowModel] {
	if t.memos.faceted == nil {
		t.memos.faceted = make(map[string]*memo[*RowModel])
	}
	m, ok := t.memos.faceted[columnID]
	if !ok {
		m = &memo[*RowModel]{}
		t.memos.faceted[columnID] = m
	}
	return m
}
