package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leengari/tablekit/internal/command"
	"github.com/leengari/tablekit/internal/config"
	"github.com/leengari/tablekit/internal/logging"
	"github.com/leengari/tablekit/internal/sample"
	"github.com/leengari/tablekit/internal/storage"
)

// app carries what every subcommand needs once the root has run
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
	closeLog   func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := a.rootCmd().ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tablekit",
		Short:         "Explore datasets through a headless table state engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, a.closeLog = logging.SetupLogger(cfg.Log, cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(
		a.replCmd(),
		a.serveCmd(),
		a.renderCmd(),
		a.sampleCmd(),
	)
	return root
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
}

// loadCatalog loads the configured data directory; a missing directory
// yields no catalog so the sample source can still be used
func (a *app) loadCatalog() (*storage.Catalog, error) {
	catalog, err := storage.LoadCatalog(a.cfg.Data.Dir, a.logger)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Warn("data directory not found, only the sample dataset is available", "dir", a.cfg.Data.Dir)
		return nil, nil
	}
	return catalog, err
}

// sessionFactory builds sessions that share one catalog and sample source
func (a *app) sessionFactory(catalog *storage.Catalog) func() *command.Session {
	src := sample.NewSource(a.cfg.Sample.Seed, a.cfg.Sample.Rows, a.cfg.Sample.Latency.Duration, a.logger)

	return func() *command.Session {
		return command.NewSession(catalog,
			command.WithView(a.cfg.View),
			command.WithSnapshotDir(a.cfg.Data.Snapshots),
			command.WithSource(src, a.cfg.View.PageSize),
			command.WithLogger(a.logger),
		)
	}
}
