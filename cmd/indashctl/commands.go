package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indash/config"
	"indash/database"
	"indash/entities"
	"indash/pkg/app"
	"indash/pkg/export"
	"indash/pkg/location"
	"indash/pkg/logging"
)

type options struct {
	year    int
	season  int
	backend string
	sqlite  string
	seed    bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "indashctl",
		Short:         "Query the agricultural dashboard derivations from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := root.PersistentFlags()
	f.IntVar(&opts.year, "year", 0, "planning year (default: reference period)")
	f.IntVar(&opts.season, "season", 0, "planning season, 1 wet or 2 dry (default: reference period)")
	f.StringVar(&opts.backend, "backend", "", "query backend override: http or sqlite")
	f.StringVar(&opts.sqlite, "sqlite", "", "sqlite replica path override")
	f.BoolVar(&opts.seed, "seed", false, "seed the demo tables into the sqlite replica")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		resolveCmd(),
		labelCmd(opts),
		monitoringCmd(opts),
		planningCmd(opts),
		irrigationCmd(opts),
		summaryCmd(opts),
		rainfallCmd(opts),
		selectCmd(opts),
		exportCmd(opts),
		seedCmd(opts),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// open builds the service graph from the environment plus flag overrides.
func (o *options) open() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.QueryBackend = o.backend
	}
	if o.sqlite != "" {
		cfg.SQLitePath = o.sqlite
	}
	if o.seed {
		cfg.SeedDemo = true
	}
	log := zap.NewNop()
	if o.verbose {
		if log, err = logging.New(cfg.LogLevel, "console"); err != nil {
			return nil, err
		}
	}
	return app.New(cfg, log, nil)
}

func (o *options) period(ctx context.Context, a *app.App) entities.Period {
	p := a.Dashboard.LoadReferencePeriod(ctx)
	if o.year > 0 {
		p.Year = o.year
	}
	if o.season > 0 {
		p.Season = o.season
	}
	return p
}

func withApp(opts *options, run func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.open()
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()
		return run(cmd.Context(), a, cmd, args)
	}
}

func panelResult(data any, a entities.Availability) map[string]any {
	return map[string]any{"data": data, "availability": a}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Classify a location id and list its backing tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := location.Validate(id); err != nil {
				return err
			}
			info := location.Resolve(id)
			out := map[string]any{
				"id":          info.ID,
				"level":       info.Level,
				"tableSuffix": info.Suffix,
				"idColumn":    info.IDColumn(),
				"monitoring":  info.Monitoring(),
				"planning":    info.Planning(),
				"ancestors":   location.Ancestors(id),
			}
			if t, ok := info.Irrigation(); ok {
				out["irrigation"] = t
			}
			if pred, norm, ok := info.Rainfall(); ok {
				out["rainfall"] = map[string]location.Target{"prediction": pred, "normal": norm}
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func labelCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "label <id>",
		Short: "Print the hierarchy label of a location",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.Dashboard.LocationHierarchyLabel(ctx, args[0]))
			return err
		}),
	}
}

func monitoringCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "monitoring <id>",
		Short: "Phase areas and harvest/production forecast from the latest monitoring row",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			d, av := a.Monitoring.Display(ctx, args[0])
			return printJSON(cmd.OutOrStdout(), panelResult(d, av))
		}),
	}
}

func planningCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "planning <id>",
		Short: "Planting plan, inputs, water balance and production cascade",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			d, av := a.Planning.Display(ctx, args[0], opts.period(ctx, a))
			return printJSON(cmd.OutOrStdout(), panelResult(d, av))
		}),
	}
}

func irrigationCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "irrigation <id>",
		Short: "Irrigation schedule per dekad or per season",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			d, av := a.Irrigation.Schedule(ctx, args[0], opts.period(ctx, a))
			return printJSON(cmd.OutOrStdout(), panelResult(d, av))
		}),
	}
}

func summaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <id>",
		Short: "Village, district, province and national rollup",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			p := opts.period(ctx, a)
			d, av := a.Summary.Aggregate(ctx, args[0], &p)
			return printJSON(cmd.OutOrStdout(), panelResult(d, av))
		}),
	}
}

func rainfallCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rainfall <id>",
		Short: "Predicted and normal rainfall for the next nine dekads",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			d, av := a.Rainfall.Outlook(ctx, args[0])
			return printJSON(cmd.OutOrStdout(), panelResult(d, av))
		}),
	}
}

func selectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "select <id>",
		Short: "Resolve every panel for a location in the reference period",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			a.Dashboard.LoadReferencePeriod(ctx)
			snap, _, err := a.Dashboard.OnLocationSelected(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snap)
		}),
	}
}

func exportCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write the irrigation schedule and summary to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := location.Validate(id); err != nil {
				return err
			}
			p := opts.period(ctx, a)
			sched, _ := a.Irrigation.Schedule(ctx, id, p)
			sum, _ := a.Summary.Aggregate(ctx, id, &p)
			f, err := export.IrrigationWorkbook(sched, sum)
			if err != nil {
				return err
			}
			defer f.Close()
			path := out
			if path == "" {
				path = fmt.Sprintf("irigasi_%s_%d_MT%d.xlsx", id, p.Year, p.Season)
			}
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path")
	return cmd
}

func seedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo tables in the sqlite replica",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			path := cfg.SQLitePath
			if opts.sqlite != "" {
				path = opts.sqlite
			}
			db, err := database.OpenSQLite(path)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := database.SeedDemo(db); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", path)
			return err
		},
	}
}
