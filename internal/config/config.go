package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/leengari/tablekit/internal/domain/schema"
	"github.com/leengari/tablekit/internal/engine"
	"github.com/leengari/tablekit/internal/policy"
)

// Config is the tablekit configuration file
type Config struct {
	Data   DataConfig   `toml:"data"`
	View   ViewConfig   `toml:"view"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	Sample SampleConfig `toml:"sample"`
}

type DataConfig struct {
	Dir       string `toml:"dir"`       // catalog directory
	Dataset   string `toml:"dataset"`   // dataset opened on start
	Snapshots string `toml:"snapshots"` // directory for saved views
}

type ViewConfig struct {
	PageSize          int    `toml:"page_size"`
	Locale            string `toml:"locale"`
	GlobalFilterFn    string `toml:"global_filter_fn"`
	MaxMultiSort      int    `toml:"max_multi_sort"`
	ResetPageOnFilter bool   `toml:"reset_page_on_filter"`
	ResetPageOnSort   bool   `toml:"reset_page_on_sort"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	SeqURL string `toml:"seq_url"`
}

type ServerConfig struct {
	Addr        string   `toml:"addr"`
	IdleTimeout Duration `toml:"idle_timeout"`
}

type SampleConfig struct {
	Seed    int64    `toml:"seed"`
	Rows    []int    `toml:"rows"`
	Latency Duration `toml:"latency"`
}

// Duration decodes TOML strings such as "500ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Data: DataConfig{Dir: "datasets", Snapshots: "views"},
		View: ViewConfig{
			PageSize:          engine.DefaultPageSize,
			Locale:            "en",
			GlobalFilterFn:    string(schema.FilterFuzzy),
			ResetPageOnFilter: true,
		},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: "127.0.0.1:4040", IdleTimeout: Duration{5 * time.Minute}},
		Sample: SampleConfig{Seed: 1, Rows: []int{10}, Latency: Duration{500 * time.Millisecond}},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Keys the configuration does not know are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	if c.View.PageSize < 1 {
		errs = append(errs, fmt.Errorf("view.page_size must be at least 1, got %d", c.View.PageSize))
	}
	if c.View.MaxMultiSort < 0 {
		errs = append(errs, fmt.Errorf("view.max_multi_sort must not be negative"))
	}
	if _, err := language.Parse(c.View.Locale); err != nil {
		errs = append(errs, fmt.Errorf("view.locale: %w", err))
	}
	if _, err := schema.ParseFilterFn(c.View.GlobalFilterFn); err != nil {
		errs = append(errs, fmt.Errorf("view.global_filter_fn: %w", err))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must be set"))
	}
	for _, n := range c.Sample.Rows {
		if n < 0 {
			errs = append(errs, fmt.Errorf("sample.rows must not contain negative counts"))
			break
		}
	}
	return errors.Join(errs...)
}

// SlogLevel parses the configured level name
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// EngineOptions applies the view settings to base. Settings that are
// invalid leave the engine default in place; Validate reports them.
func (v ViewConfig) EngineOptions(base engine.Options) engine.Options {
	if tag, err := language.Parse(v.Locale); err == nil {
		base.Locale = tag
	}
	if fn, err := schema.ParseFilterFn(v.GlobalFilterFn); err == nil {
		base.GlobalFilterFn = fn
	}
	base.MaxMultiSortColCount = v.MaxMultiSort
	if base.State.Pagination.PageSize == 0 {
		base.State.Pagination.PageSize = v.PageSize
	}
	return base
}

// Policies returns the auto-reset options matching the view settings
func (v ViewConfig) Policies() []policy.Option {
	return []policy.Option{
		policy.WithPageIndexOnFilter(v.ResetPageOnFilter),
		policy.WithPageIndexOnSort(v.ResetPageOnSort),
	}
}
