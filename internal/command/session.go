package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/leengari/tablekit/internal/config"
	"github.com/leengari/tablekit/internal/engine"
	"github.com/leengari/tablekit/internal/policy"
	"github.com/leengari/tablekit/internal/sample"
	"github.com/leengari/tablekit/internal/storage"
)

// SampleDataset is the name under which a session exposes its sample source
const SampleDataset = "sample"

// ErrNoDataset is returned by table commands before a dataset is opened
var ErrNoDataset = errors.New("no dataset selected, run 'use <dataset>' first")

// Session holds one engine bound to an open dataset. A Session is used by a
// single goroutine; servers create one per connection.
type Session struct {
	catalog   *storage.Catalog
	view      config.ViewConfig
	snapshots string
	source    *sample.Source
	sampleLen int
	logger    *slog.Logger

	dataset *storage.Dataset
	table   *engine.Table
}

// Option configures a Session
type Option func(*Session)

// WithView applies view settings to every table the session opens
func WithView(v config.ViewConfig) Option {
	return func(s *Session) { s.view = v }
}

// WithSnapshotDir sets where 'save' and 'load' keep view snapshots
func WithSnapshotDir(dir string) Option {
	return func(s *Session) { s.snapshots = dir }
}

// WithSource exposes a simulated remote source as the "sample" dataset,
// initially loaded with n rows
func WithSource(src *sample.Source, n int) Option {
	return func(s *Session) {
		s.source = src
		s.sampleLen = n
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates a session over catalog; catalog may be nil when only
// the sample source is used
func NewSession(catalog *storage.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog:   catalog,
		view:      config.Default().View,
		snapshots: config.Default().Data.Snapshots,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the engine of the open dataset, or nil
func (s *Session) Table() *engine.Table {
	return s.table
}

// Datasets lists the names a session can open
func (s *Session) Datasets() []string {
	var names []string
	if s.catalog != nil {
		names = s.catalog.Names()
	}
	if s.source != nil && !slices.Contains(names, SampleDataset) {
		names = append(names, SampleDataset)
		sort.Strings(names)
	}
	return names
}

// Open binds a new engine to ds, with the session's view settings,
// auto-reset policy and lifecycle logging attached
func (s *Session) Open(ds *storage.Dataset) {
	opts := s.view.EngineOptions(ds.Options())
	opts.Logger = s.logger

	t := engine.New(opts)
	t.AddObserver(engine.NewLoggingObserver(s.logger))
	policy.Attach(t, append(s.view.Policies(), policy.WithLogger(s.logger))...)

	// the session edits its own copy; catalog datasets are shared
	own := *ds
	s.dataset = &own
	s.table = t
	s.logger.Info("dataset opened",
		"dataset", ds.Name,
		"table_id", t.ID(),
		"rows", len(ds.Rows),
	)
}

func (s *Session) openByName(ctx context.Context, name string) error {
	if s.catalog != nil {
		if ds, ok := s.catalog.Get(name); ok {
			s.Open(ds)
			return nil
		}
	}
	if name == SampleDataset && s.source != nil {
		page, err := s.source.Fetch(ctx, 0, s.sampleLen)
		if err != nil {
			return err
		}
		s.Open(&storage.Dataset{
			Name:    SampleDataset,
			Columns: sample.Columns(),
			Rows:    page.Rows,
			Meta:    storage.DatasetMeta{Name: SampleDataset, RowIDKey: sample.RowIDKey},
		})
		return nil
	}
	return fmt.Errorf("dataset not found: %s", name)
}

// Execute runs one command line. Command failures are returned as errors;
// callers report them in Result.Error.
func (s *Session) Execute(ctx context.Context, line string) (*Result, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if len(args) == 0 {
		return &Result{}, nil
	}

	name := strings.ToLower(args[0])
	cmd, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
	if cmd.needsTable && s.table == nil {
		return nil, ErrNoDataset
	}
	if len(args)-1 < cmd.minArgs {
		return nil, fmt.Errorf("usage: %s", cmd.usage)
	}

	s.logger.Debug("executing command", "command", name, "args", len(args)-1)
	return cmd.run(ctx, s, args[1:])
}
