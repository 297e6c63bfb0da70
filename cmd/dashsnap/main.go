package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"marketdash/internal/charts"
	"marketdash/internal/config"
	"marketdash/internal/dashboard"
	"marketdash/internal/logger"
	"marketdash/internal/models"
	"marketdash/internal/reports"
)

// snapshotOptions holds the flag values of one dashsnap invocation.
type snapshotOptions struct {
	series   string
	from     int
	to       int
	kind     string
	logScale bool
	outDir   string
	mockup   bool
	dataURL  string
	profile  string
}

func newRootCmd() *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "dashsnap",
		Short: "Render a static snapshot of the market dashboard",
		Long: `dashsnap loads the market dataset once, dispatches a single widget state
and writes the dashboard page, the interactive chart page, PNG renderings of
every chart and the raw outputs as JSON into an output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.series, "series", "s", "", "series to chart (default: profile default)")
	cmd.Flags().IntVar(&opts.from, "from", 0, "first year of the range (default: dataset minimum)")
	cmd.Flags().IntVar(&opts.to, "to", 0, "last year of the range (default: dataset maximum)")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", string(models.ChartLine), "chart kind: line, scatter or bar")
	cmd.Flags().BoolVar(&opts.logScale, "log", false, "use a logarithmic y axis")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "snapshot", "output directory")
	cmd.Flags().BoolVar(&opts.mockup, "mockup", false, "use the bundled sample dataset")
	cmd.Flags().StringVar(&opts.dataURL, "data-url", "", "override DATA_URL")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "override PROFILE_PATH")

	return cmd
}

func runSnapshot(cmd *cobra.Command, opts *snapshotOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mockup") {
		cfg.MockupMode = opts.mockup
	}
	if opts.dataURL != "" {
		cfg.DataURL = opts.dataURL
	}
	if opts.profile != "" {
		cfg.ProfilePath = opts.profile
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, cfg.Environment)
	log := logger.Component("dashsnap")

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
	defer cancel()
	store, err := dashboard.LoadStore(loadCtx, cfg, profile, nil)
	if err != nil {
		return err
	}

	controller := dashboard.NewController(store, charts.NewBuilder(profile), profile)
	out := controller.Dispatch(dashboard.State{
		Series:   opts.series,
		MinYear:  opts.from,
		MaxYear:  opts.to,
		Kind:     models.ChartKind(opts.kind),
		LogScale: opts.logScale,
	})

	generator := reports.NewFileGenerator(reports.NewHTMLBuilder(profile, cfg.ChartTheme), cfg.ChartTheme)
	files, err := generator.GenerateAllFiles(out, controller.Options())
	if err != nil {
		return fmt.Errorf("failed to generate snapshot: %w", err)
	}
	if err := generator.WriteToDir(opts.outDir, files); err != nil {
		return err
	}

	log.Info("Snapshot written", logger.Fields{
		"dir":    opts.outDir,
		"series": out.State.Series,
		"from":   out.State.MinYear,
		"to":     out.State.MaxYear,
		"files":  len(files.Names()),
	})
	for _, name := range files.Names() {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dashsnap:", err)
		os.Exit(1)
	}
}
