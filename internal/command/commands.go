package command

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/leengari/tablekit/internal/domain/data"
	"github.com/leengari/tablekit/internal/domain/schema"
	"github.com/leengari/tablekit/internal/engine"
	"github.com/leengari/tablekit/internal/storage/writer"
)

type command struct {
	usage      string
	help       string
	minArgs    int
	needsTable bool
	run        func(ctx context.Context, s *Session, args []string) (*Result, error)
}

// commands is filled in init because 'help' reads it
var commands map[string]command

func init() {
	commands = map[string]command{
		"help":     {usage: "help", help: "list commands", run: runHelp},
		"datasets": {usage: "datasets", help: "list datasets", run: runDatasets},
		"use":      {usage: "use <dataset>", help: "open a dataset", minArgs: 1, run: runUse},
		"show":     {usage: "show", help: "show the current page", needsTable: true, run: runShow},

		"sort":   {usage: "sort <column> [asc|desc] [--multi]", help: "toggle or set a column's sort", minArgs: 1, needsTable: true, run: runSort},
		"unsort": {usage: "unsort [column]", help: "clear one column's sort, or all sorting", needsTable: true, run: runUnsort},

		"filter":   {usage: "filter <column> <value...>", help: "filter a column (ranges as lo..hi)", minArgs: 1, needsTable: true, run: runFilter},
		"unfilter": {usage: "unfilter [column]", help: "remove one column filter, or all", needsTable: true, run: runUnfilter},
		"search":   {usage: "search [text...]", help: "set or clear the global filter", needsTable: true, run: runSearch},

		"page":  {usage: "page <n>", help: "go to page n (1-based)", minArgs: 1, needsTable: true, run: runPage},
		"next":  {usage: "next", help: "next page", needsTable: true, run: runNext},
		"prev":  {usage: "prev", help: "previous page", needsTable: true, run: runPrev},
		"first": {usage: "first", help: "first page", needsTable: true, run: runFirst},
		"last":  {usage: "last", help: "last page", needsTable: true, run: runLast},
		"size":  {usage: "size <n>", help: "set the page size", minArgs: 1, needsTable: true, run: runSize},

		"select":   {usage: "select all|page|none|<row-id...>", help: "select rows", minArgs: 1, needsTable: true, run: runSelect},
		"unselect": {usage: "unselect all|page|<row-id...>", help: "unselect rows", minArgs: 1, needsTable: true, run: runUnselect},
		"selected": {usage: "selected", help: "show selected rows", needsTable: true, run: runSelected},

		"expand":   {usage: "expand all|<row-id...>", help: "expand rows", minArgs: 1, needsTable: true, run: runExpand},
		"collapse": {usage: "collapse all|<row-id...>", help: "collapse rows", minArgs: 1, needsTable: true, run: runCollapse},

		"cols":     {usage: "cols", help: "list columns with their state", needsTable: true, run: runCols},
		"hide":     {usage: "hide <column...>", help: "hide columns", minArgs: 1, needsTable: true, run: runHide},
		"show-col": {usage: "show-col all|<column...>", help: "show hidden columns", minArgs: 1, needsTable: true, run: runShowCol},
		"move":     {usage: "move <column> <position>", help: "move a column (0-based)", minArgs: 2, needsTable: true, run: runMove},
		"pin":      {usage: "pin <column> left|right|none", help: "pin a column", minArgs: 2, needsTable: true, run: runPin},
		"resize":   {usage: "resize <column> <width>|reset", help: "resize a column", minArgs: 2, needsTable: true, run: runResize},
		"facets":   {usage: "facets <column>", help: "unique values and counts under the other filters", minArgs: 1, needsTable: true, run: runFacets},

		"edit":     {usage: "edit <row-id> <column> <value>", help: "change a cell value", minArgs: 3, needsTable: true, run: runEdit},
		"delete":   {usage: "delete selected|<row-id...>", help: "remove rows and their sub-rows", minArgs: 1, needsTable: true, run: runDelete},
		"fetch":    {usage: "fetch [n]", help: "load n more rows from the sample source", needsTable: true, run: runFetch},
		"children": {usage: "children <row-id> [n]", help: "load sub-rows of a row from the sample source", minArgs: 1, needsTable: true, run: runChildren},

		"state": {usage: "state", help: "print the view state as JSON", needsTable: true, run: runState},
		"save":  {usage: "save <name>", help: "save the view state", minArgs: 1, needsTable: true, run: runSave},
		"load":  {usage: "load <name>", help: "restore a saved view state", minArgs: 1, needsTable: true, run: runLoad},
		"reset": {usage: "reset", help: "restore the initial view state", needsTable: true, run: runReset},
		"write": {usage: "write [dir]", help: "persist the dataset with its edits", needsTable: true, run: runWrite},
	}
}

func runHelp(_ context.Context, _ *Session, _ []string) (*Result, error) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	res := &Result{Columns: []string{"command", "description"}}
	for _, name := range names {
		c := commands[name]
		res.Rows = append(res.Rows, ResultRow{ID: name, Cells: []string{c.usage, c.help}})
	}
	return res, nil
}

func runDatasets(_ context.Context, s *Session, _ []string) (*Result, error) {
	res := &Result{Columns: []string{"dataset"}}
	for _, name := range s.Datasets() {
		res.Rows = append(res.Rows, ResultRow{ID: name, Cells: []string{name}})
	}
	res.Message = fmt.Sprintf("%d datasets", len(res.Rows))
	return res, nil
}

func runUse(ctx context.Context, s *Session, args []string) (*Result, error) {
	if err := s.openByName(ctx, args[0]); err != nil {
		return nil, err
	}
	res := pageView(s.table)
	res.Message = fmt.Sprintf("Using dataset '%s'", args[0])
	return res, nil
}

func runShow(_ context.Context, s *Session, _ []string) (*Result, error) {
	return pageView(s.table), nil
}

// column looks up a column by id
func (s *Session) column(id string) (*engine.Column, error) {
	c, ok := s.table.GetColumn(id)
	if !ok {
		return nil, fmt.Errorf("column not found: %s", id)
	}
	return c, nil
}

// row looks up a row by id in the core model
func (s *Session) row(id string) (*engine.Row, error) {
	r, ok := s.table.GetRow(id)
	if !ok {
		return nil, fmt.Errorf("row not found: %s", id)
	}
	return r, nil
}

// withPage renders the current page with a status message
func (s *Session) withPage(format string, a ...interface{}) (*Result, error) {
	res := pageView(s.table)
	res.Message = fmt.Sprintf(format, a...)
	return res, nil
}

// splitFlag removes flag from args and reports whether it was present
func splitFlag(args []string, names ...string) ([]string, bool) {
	out := make([]string, 0, len(args))
	found := false
	for _, a := range args {
		matched := false
		for _, n := range names {
			if a == n {
				matched = true
				break
			}
		}
		if matched {
			found = true
			continue
		}
		out = append(out, a)
	}
	return out, found
}

func runSort(_ context.Context, s *Session, args []string) (*Result, error) {
	args, multi := splitFlag(args, "--multi", "-m")
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: %s", commands["sort"].usage)
	}
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	if !c.GetCanSort() {
		return nil, fmt.Errorf("column %s cannot be sorted", c.ID)
	}

	if len(args) > 1 {
		switch strings.ToLower(args[1]) {
		case "asc":
			c.SetSortDirection(false, multi)
		case "desc":
			c.SetSortDirection(true, multi)
		default:
			return nil, fmt.Errorf("unknown sort direction %q", args[1])
		}
	} else {
		c.ToggleSorting(multi)
	}

	dir := c.GetIsSorted()
	if dir == engine.SortNone {
		return s.withPage("%s unsorted", c.ID)
	}
	return s.withPage("sorted by %s %s", c.ID, dir)
}

func runUnsort(_ context.Context, s *Session, args []string) (*Result, error) {
	if len(args) == 0 {
		s.table.SetSorting(engine.Replace(engine.SortingState{}))
		return s.withPage("sorting cleared")
	}
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	c.ClearSorting()
	return s.withPage("%s unsorted", c.ID)
}

func runFilter(_ context.Context, s *Session, args []string) (*Result, error) {
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	if !c.GetCanFilter() {
		return nil, fmt.Errorf("column %s cannot be filtered", c.ID)
	}
	value, err := parseFilterValue(c.GetFilterFn(), args[1:])
	if err != nil {
		return nil, err
	}
	c.SetFilterValue(value)

	if !c.GetIsFiltered() {
		return s.withPage("filter on %s removed", c.ID)
	}
	return s.withPage("filtered %s (%s): %d rows", c.ID, c.GetFilterFn(), s.table.GetRowCount())
}

func runUnfilter(_ context.Context, s *Session, args []string) (*Result, error) {
	if len(args) == 0 {
		s.table.SetColumnFilters(engine.Replace(engine.ColumnFiltersState{}))
		return s.withPage("column filters cleared")
	}
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	c.SetFilterValue(nil)
	return s.withPage("filter on %s removed", c.ID)
}

func runSearch(_ context.Context, s *Session, args []string) (*Result, error) {
	query := strings.Join(args, " ")
	s.table.SetGlobalFilter(engine.Replace(query))
	if query == "" {
		return s.withPage("search cleared")
	}
	return s.withPage("search %q: %d rows", query, s.table.GetRowCount())
}

func pageMessage(t *engine.Table) string {
	return fmt.Sprintf("page %d of %d", t.GetState().Pagination.PageIndex+1, t.GetPageCount())
}

func runPage(_ context.Context, s *Session, args []string) (*Result, error) {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid page number %q", args[0])
	}
	s.table.SetPageIndex(n - 1)
	return s.withPage("%s", pageMessage(s.table))
}

func runNext(_ context.Context, s *Session, _ []string) (*Result, error) {
	s.table.NextPage()
	return s.withPage("%s", pageMessage(s.table))
}

func runPrev(_ context.Context, s *Session, _ []string) (*Result, error) {
	s.table.PreviousPage()
	return s.withPage("%s", pageMessage(s.table))
}

func runFirst(_ context.Context, s *Session, _ []string) (*Result, error) {
	s.table.FirstPage()
	return s.withPage("%s", pageMessage(s.table))
}

func runLast(_ context.Context, s *Session, _ []string) (*Result, error) {
	s.table.LastPage()
	return s.withPage("%s", pageMessage(s.table))
}

func runSize(_ context.Context, s *Session, args []string) (*Result, error) {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid page size %q", args[0])
	}
	s.table.SetPageSize(n)
	return s.withPage("page size %d, %s", n, pageMessage(s.table))
}

func (s *Session) setSelected(args []string, value bool) error {
	switch args[0] {
	case "all":
		s.table.ToggleAllRowsSelected(value)
		return nil
	case "page":
		s.table.ToggleAllPageRowsSelected(value)
		return nil
	}
	for _, id := range args {
		r, err := s.row(id)
		if err != nil {
			return err
		}
		if !r.GetCanSelect() {
			return fmt.Errorf("row %s cannot be selected", id)
		}
		r.ToggleSelected(value, true)
	}
	return nil
}

func runSelect(_ context.Context, s *Session, args []string) (*Result, error) {
	if args[0] == "none" {
		s.table.SetRowSelection(engine.Replace(engine.RowSelectionState{}))
		return s.withPage("selection cleared")
	}
	if err := s.setSelected(args, true); err != nil {
		return nil, err
	}
	return s.withPage("%d rows selected", len(s.table.GetSelectedRowModel().FlatRows))
}

func runUnselect(_ context.Context, s *Session, args []string) (*Result, error) {
	if err := s.setSelected(args, false); err != nil {
		return nil, err
	}
	return s.withPage("%d rows selected", len(s.table.GetSelectedRowModel().FlatRows))
}

func runSelected(_ context.Context, s *Session, _ []string) (*Result, error) {
	rows := s.table.GetSelectedRowModel().FlatRows
	res := view(s.table, rows)
	res.Message = fmt.Sprintf("%d rows selected", len(rows))
	return res, nil
}

func (s *Session) setExpanded(args []string, value bool) error {
	if args[0] == "all" {
		s.table.ToggleAllRowsExpanded(value)
		return nil
	}
	for _, id := range args {
		r, err := s.row(id)
		if err != nil {
			return err
		}
		if value && !r.GetCanExpand() {
			return fmt.Errorf("row %s has no sub-rows", id)
		}
		r.SetExpanded(value)
	}
	return nil
}

func runExpand(_ context.Context, s *Session, args []string) (*Result, error) {
	if err := s.setExpanded(args, true); err != nil {
		return nil, err
	}
	return s.withPage("%d rows displayed", s.table.GetRowCount())
}

func runCollapse(_ context.Context, s *Session, args []string) (*Result, error) {
	if err := s.setExpanded(args, false); err != nil {
		return nil, err
	}
	return s.withPage("%d rows displayed", s.table.GetRowCount())
}

func runCols(_ context.Context, s *Session, _ []string) (*Result, error) {
	res := &Result{Columns: []string{"id", "header", "kind", "visible", "pinned", "size", "sort", "filter"}}
	for _, c := range s.table.GetAllLeafColumns() {
		filter := ""
		if v, ok := c.GetFilterValue(); ok {
			filter = fmt.Sprintf("%s %s", c.GetFilterFn(), schema.FormatValue(v))
		}
		sorted := string(c.GetIsSorted())
		if i := c.GetSortIndex(); i >= 0 {
			sorted = fmt.Sprintf("%s (%d)", sorted, i+1)
		}
		res.Rows = append(res.Rows, ResultRow{ID: c.ID, Cells: []string{
			c.ID,
			c.Def.HeaderText(),
			c.Def.Kind.String(),
			strconv.FormatBool(c.GetIsVisible()),
			string(c.GetIsPinned()),
			strconv.Itoa(c.GetSize()),
			sorted,
			filter,
		}})
	}
	res.Message = fmt.Sprintf("%d columns, total width %d", len(res.Rows), s.table.GetTotalSize())
	return res, nil
}

func runHide(_ context.Context, s *Session, args []string) (*Result, error) {
	for _, id := range args {
		c, err := s.column(id)
		if err != nil {
			return nil, err
		}
		if !c.GetCanHide() {
			return nil, fmt.Errorf("column %s cannot be hidden", id)
		}
		c.SetVisible(false)
	}
	return s.withPage("%d columns visible", len(s.table.GetVisibleLeafColumns()))
}

func runShowCol(_ context.Context, s *Session, args []string) (*Result, error) {
	if args[0] == "all" {
		s.table.ToggleAllColumnsVisible(true)
		return s.withPage("all columns visible")
	}
	for _, id := range args {
		c, err := s.column(id)
		if err != nil {
			return nil, err
		}
		c.SetVisible(true)
	}
	return s.withPage("%d columns visible", len(s.table.GetVisibleLeafColumns()))
}

func runMove(_ context.Context, s *Session, args []string) (*Result, error) {
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	to, err := strconv.Atoi(args[1])
	if err != nil || to < 0 {
		return nil, fmt.Errorf("invalid position %q", args[1])
	}
	s.table.MoveColumn(c.ID, to)
	return s.withPage("moved %s", c.ID)
}

func runPin(_ context.Context, s *Session, args []string) (*Result, error) {
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	var pos engine.PinPosition
	switch strings.ToLower(args[1]) {
	case "left":
		pos = engine.PinLeft
	case "right":
		pos = engine.PinRight
	case "none":
		pos = engine.PinNone
	default:
		return nil, fmt.Errorf("unknown pin position %q", args[1])
	}
	if !c.GetCanPin() {
		return nil, fmt.Errorf("column %s cannot be pinned", c.ID)
	}
	c.Pin(pos)
	return s.withPage("%s pinned %s", c.ID, args[1])
}

func runResize(_ context.Context, s *Session, args []string) (*Result, error) {
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}
	if args[1] == "reset" {
		c.ResetSize()
		return s.withPage("%s width %d", c.ID, c.GetSize())
	}
	w, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid width %q", args[1])
	}
	if !c.GetCanResize() {
		return nil, fmt.Errorf("column %s cannot be resized", c.ID)
	}
	c.SetSize(w)
	return s.withPage("%s width %d", c.ID, c.GetSize())
}

func runFacets(_ context.Context, s *Session, args []string) (*Result, error) {
	c, err := s.column(args[0])
	if err != nil {
		return nil, err
	}

	counts := s.table.GetFacetedUniqueValues(c.ID)
	type facet struct {
		label string
		count int
	}
	facets := make([]facet, 0, len(counts))
	for v, n := range counts {
		facets = append(facets, facet{schema.FormatValue(v), n})
	}
	sort.Slice(facets, func(i, j int) bool { return facets[i].label < facets[j].label })

	res := &Result{Columns: []string{"value", "count"}}
	for _, f := range facets {
		res.Rows = append(res.Rows, ResultRow{ID: f.label, Cells: []string{f.label, strconv.Itoa(f.count)}})
	}
	res.Message = fmt.Sprintf("%d unique values", len(facets))
	if lo, hi, ok := s.table.GetFacetedMinMaxValues(c.ID); ok {
		res.Message += fmt.Sprintf(", range %s..%s", lo, hi)
	}
	return res, nil
}

// rowPath rebuilds the positional data path of a row from its ancestors
func rowPath(r *engine.Row) data.Path {
	parents := r.GetParentRows()
	path := make(data.Path, 0, len(parents)+1)
	for _, p := range parents {
		path = append(path, p.Index)
	}
	return append(path, r.Index)
}

// replaceData swaps the session's rows (the engine and its dataset copy)
func (s *Session) replaceData(rows []data.Row) {
	s.dataset.Rows = rows
	s.table.SetData(rows)
}

func runEdit(_ context.Context, s *Session, args []string) (*Result, error) {
	r, err := s.row(args[0])
	if err != nil {
		return nil, err
	}
	c, err := s.column(args[1])
	if err != nil {
		return nil, err
	}
	if c.Def.AccessorFn != nil || c.Def.AccessorKey == "" {
		return nil, fmt.Errorf("column %s is computed and cannot be edited", c.ID)
	}

	value, err := parseCellValue(c.Def.Kind, strings.Join(args[2:], " "))
	if err != nil {
		return nil, err
	}
	rows, err := data.WithCellValue(s.table.Options().Data, rowPath(r), c.Def.AccessorKey, value)
	if err != nil {
		return nil, err
	}
	s.replaceData(rows)
	return s.withPage("row %s %s = %s", r.ID, c.ID, schema.FormatValue(value))
}

func runDelete(_ context.Context, s *Session, args []string) (*Result, error) {
	var targets []*engine.Row
	if len(args) == 1 && args[0] == "selected" {
		targets = s.table.GetSelectedRowModel().FlatRows
		if len(targets) == 0 {
			return nil, fmt.Errorf("no rows selected")
		}
	} else {
		for _, id := range args {
			r, err := s.row(id)
			if err != nil {
				return nil, err
			}
			targets = append(targets, r)
		}
	}

	// deepest and last first, so earlier paths stay valid
	paths := make([]data.Path, 0, len(targets))
	for _, r := range targets {
		paths = append(paths, rowPath(r))
	}
	slices.SortFunc(paths, func(a, b data.Path) int { return slices.Compare(b, a) })
	paths = slices.CompactFunc(paths, func(a, b data.Path) bool { return slices.Equal(a, b) })

	rows := s.table.Options().Data
	removed := 0
	for _, p := range paths {
		r, ok := data.At(rows, p)
		if !ok {
			continue
		}
		removed += data.CountRows([]data.Row{r})
		next, err := data.WithoutRow(rows, p)
		if err != nil {
			return nil, err
		}
		rows = next
	}

	gone := make(map[string]bool)
	for _, r := range targets {
		markSubtree(gone, r)
	}
	s.table.SetRowSelection(func(old engine.RowSelectionState) engine.RowSelectionState {
		for id := range gone {
			delete(old, id)
		}
		return old
	})
	s.replaceData(rows)
	return s.withPage("%d rows deleted", removed)
}

func markSubtree(ids map[string]bool, r *engine.Row) {
	ids[r.ID] = true
	for _, sub := range r.SubRows {
		markSubtree(ids, sub)
	}
}

func (s *Session) sampleOnly() error {
	if s.source == nil || s.dataset.Name != SampleDataset {
		return fmt.Errorf("only the %s dataset is backed by a source", SampleDataset)
	}
	return nil
}

func optionalCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[0])
	}
	return n, nil
}

func runFetch(ctx context.Context, s *Session, args []string) (*Result, error) {
	if err := s.sampleOnly(); err != nil {
		return nil, err
	}
	n, err := optionalCount(args, s.table.GetState().Pagination.PageSize)
	if err != nil {
		return nil, err
	}

	current := s.table.Options().Data
	page, err := s.source.Fetch(ctx, len(current), n)
	if err != nil {
		return nil, err
	}
	rows := make([]data.Row, 0, len(current)+len(page.Rows))
	rows = append(append(rows, current...), page.Rows...)
	s.replaceData(rows)
	return s.withPage("fetched %d rows, %d of %d loaded", len(page.Rows), len(rows), page.TotalRowCount)
}

func runChildren(ctx context.Context, s *Session, args []string) (*Result, error) {
	if err := s.sampleOnly(); err != nil {
		return nil, err
	}
	r, err := s.row(args[0])
	if err != nil {
		return nil, err
	}
	if len(r.SubRows) > 0 {
		return nil, fmt.Errorf("row %s already has sub-rows", r.ID)
	}
	n, err := optionalCount(args[1:], 2)
	if err != nil {
		return nil, err
	}

	children, err := s.source.FetchSubRows(ctx, r.ID, n)
	if err != nil {
		return nil, err
	}
	rows, err := data.WithSubRows(s.table.Options().Data, rowPath(r), children)
	if err != nil {
		return nil, err
	}
	s.replaceData(rows)

	if loaded, ok := s.table.GetRow(r.ID); ok {
		loaded.SetExpanded(true)
	}
	return s.withPage("loaded %d sub-rows of %s", len(children), r.ID)
}

func runState(_ context.Context, s *Session, _ []string) (*Result, error) {
	raw, err := json.MarshalIndent(s.table.GetState(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return &Result{Message: string(raw)}, nil
}

func (s *Session) snapshotPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid snapshot name %q", name)
	}
	return filepath.Join(s.snapshots, s.dataset.Name, name+".json"), nil
}

func runSave(_ context.Context, s *Session, args []string) (*Result, error) {
	path, err := s.snapshotPath(args[0])
	if err != nil {
		return nil, err
	}
	if err := writer.SaveState(path, s.table.GetState()); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("view saved to %s", path)}, nil
}

func runLoad(_ context.Context, s *Session, args []string) (*Result, error) {
	path, err := s.snapshotPath(args[0])
	if err != nil {
		return nil, err
	}
	state, err := writer.LoadState(path)
	if err != nil {
		return nil, err
	}
	s.table.SetState(engine.Replace(state))
	return s.withPage("view %s restored", args[0])
}

func runReset(_ context.Context, s *Session, _ []string) (*Result, error) {
	t := s.table
	t.ResetSorting()
	t.ResetColumnFilters()
	t.ResetGlobalFilter()
	t.ResetRowSelection()
	t.ResetExpanded()
	t.ResetColumnOrder()
	t.ResetColumnVisibility()
	t.ResetColumnPinning()
	t.ResetColumnSizing()
	t.ResetPageSize()
	t.ResetPageIndex()
	return s.withPage("view reset")
}

func runWrite(_ context.Context, s *Session, args []string) (*Result, error) {
	if len(args) > 0 {
		s.dataset.Path = args[0]
	}
	if s.dataset.Path == "" {
		return nil, fmt.Errorf("dataset %s has no directory, use 'write <dir>'", s.dataset.Name)
	}
	if err := writer.SaveDataset(s.dataset, s.logger); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("dataset %s written to %s", s.dataset.Name, s.dataset.Path)}, nil
}
