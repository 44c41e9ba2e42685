package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leengari/tablekit/internal/command"
	"github.com/leengari/tablekit/internal/network"
	"github.com/leengari/tablekit/internal/repl"
	"github.com/leengari/tablekit/internal/sample"
	"github.com/leengari/tablekit/internal/storage"
	"github.com/leengari/tablekit/internal/storage/writer"
)

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			session := a.sessionFactory(catalog)()

			if name := a.cfg.Data.Dataset; name != "" {
				res, err := session.Execute(cmd.Context(), "use "+name)
				if err != nil {
					return fmt.Errorf("failed to open dataset: %w", err)
				}
				if err := repl.PrintResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}
			err = repl.Start(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), session)
			if cmd.Context().Err() != nil {
				return nil
			}
			return err
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions as JSON over TCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			catalog, err := a.loadCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			srv := network.NewServer(a.sessionFactory(catalog), a.cfg.Server.IdleTimeout.Duration, a.logger)
			if err := srv.ListenAndServe(cmd.Context(), addr); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (a *app) renderCmd() *cobra.Command {
	var steps []string
	cmd := &cobra.Command{
		Use:   "render <dataset>",
		Short: "Print one page of a dataset after applying commands",
		Example: `  tablekit render resources -e "sort status" -e "filter rule round-robin" -e "page 2"
  tablekit render sample -e "search balancer 3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.loadCatalog()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			session := a.sessionFactory(catalog)()

			lines := append([]string{"use " + args[0]}, steps...)
			var res *command.Result
			for _, line := range lines {
				if res, err = session.Execute(cmd.Context(), line); err != nil {
					return fmt.Errorf("%s: %w", line, err)
				}
			}
			if len(res.Rows) == 0 && len(res.Columns) == 0 {
				// state-only commands such as 'save' print a message; show the page too
				if err := repl.PrintResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
				if res, err = session.Execute(cmd.Context(), "show"); err != nil {
					return err
				}
			}
			return repl.PrintResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringArrayVarP(&steps, "exec", "e", nil, "command to run before printing (repeatable)")
	return cmd
}

func (a *app) sampleCmd() *cobra.Command {
	var (
		format string
		lens   []int
		seed   int64
	)
	cmd := &cobra.Command{
		Use:   "sample <dir>",
		Short: "Generate a nested sample dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("rows") {
				lens = a.cfg.Sample.Rows
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Sample.Seed
			}
			f := storage.Format(format)
			if f != storage.FormatJSON && f != storage.FormatYAML {
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}

			dir := args[0]
			name := filepath.Base(dir)
			rows := sample.MakeData(seed, lens...)
			ds := &storage.Dataset{
				Name:    name,
				Path:    dir,
				Format:  f,
				Meta:    storage.DatasetMeta{Name: name, RowIDKey: sample.RowIDKey},
				Columns: sample.Columns(),
				Rows:    rows,
			}
			if err := writer.SaveDataset(ds, a.logger); err != nil {
				return fmt.Errorf("failed to write sample dataset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s rows to %s\n", sample.Describe(rows), dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", string(storage.FormatJSON), "json or yaml")
	cmd.Flags().IntSliceVar(&lens, "rows", nil, "rows per nesting level, e.g. 10,3 (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "generator seed (default from config)")
	return cmd
}
