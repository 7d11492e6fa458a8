package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"senscal/internal/bootstrap"
	"senscal/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var workspacePath string

	root := &cobra.Command{
		Use:           "senscal",
		Short:         "Guided pressure sensor calibration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&workspacePath, "workspace", ".", "calibration workspace path")

	root.AddCommand(newTUICmd(&workspacePath))
	root.AddCommand(newRegionCmd(&workspacePath))
	root.AddCommand(newPlanCmd(&workspacePath))
	root.AddCommand(newMeasureCmd(&workspacePath))
	root.AddCommand(newResultsCmd(&workspacePath))
	root.AddCommand(newDriverCmd(&workspacePath))
	return root
}

func loadApp(workspacePath string) (*bootstrap.App, error) {
	cfg, err := config.New(workspacePath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(workspacePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run senscal terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(*workspacePath, app)
		},
	}
}

func newRegionCmd(workspacePath *string) *cobra.Command {
	region := &cobra.Command{Use: "region", Short: "Sensor region commands"}

	region.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List measurement regions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			regions, err := app.RegionCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, r := range regions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%d, %d)\t%s\n", r.ID, r.X, r.Y, r.Name)
			}
			return nil
		},
	})

	var regionID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show region details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(regionID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			r, err := app.RegionCLI.Get(context.Background(), regionID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nname: %s\nbase: (%d, %d)\n%s\n", r.ID, r.Name, r.X, r.Y, r.Description)
			return nil
		},
	}
	show.Flags().StringVar(&regionID, "id", "", "region id")
	region.AddCommand(show)
	return region
}

func newPlanCmd(workspacePath *string) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Micro-position plan commands"}

	var regionID string
	var count, jitter, frames int
	generate := &cobra.Command{
		Use:   "generate --region <id>",
		Short: "Generate a micro-position plan around a region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(regionID) == "" {
				return fmt.Errorf("--region is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			out, err := app.PlanCLI.Generate(context.Background(), regionID, count, jitter, frames)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "plan generated: region=%s positions=%d jitter=%d frames=%d\n",
				out.RegionID, len(out.Positions), out.Jitter, out.FramesPerPosition)
			return nil
		},
	}
	generate.Flags().StringVar(&regionID, "region", "", "region id")
	generate.Flags().IntVar(&count, "count", 5, "positions to generate")
	generate.Flags().IntVar(&jitter, "jitter", 2, "max cell offset from the region base")
	generate.Flags().IntVar(&frames, "frames", 10, "frames to record per position")
	plan.AddCommand(generate)

	plan.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			out, err := app.PlanCLI.Get(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "region=%s base=(%d, %d) jitter=%d frames=%d generated=%s\n",
				out.RegionID, out.BaseX, out.BaseY, out.Jitter, out.FramesPerPosition,
				out.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
			for _, p := range out.Positions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%d, %d)\toffset=(%+d, %+d)\tdistance=%.2f\n",
					p.ID, p.X, p.Y, p.OffsetX, p.OffsetY, p.Distance)
			}
			return nil
		},
	})
	return plan
}

func newMeasureCmd(workspacePath *string) *cobra.Command {
	measure := &cobra.Command{Use: "measure", Short: "Measurement run commands"}

	var weightID string
	var interval time.Duration
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the current plan unattended, reading frames from the configured driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*workspacePath)
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.FrameInterval = interval
			}
			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.RunAutomatic(cmd.Context(), weightID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "run %s: %s, %d/%d positions sealed\n",
				out.RunID, out.Status, out.Recorded, out.Total)
			return nil
		},
	}
	run.Flags().StringVar(&weightID, "weight", "default", "calibration weight id")
	run.Flags().DurationVar(&interval, "interval", 0, "frame pacing interval (defaults to settings.yaml)")
	measure.AddCommand(run)

	measure.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			runs, err := app.SessionCLI.ListRuns(context.Background())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
				return nil
			}
			for _, r := range runs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d samples\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.RegionID, r.Status, len(r.Samples))
			}
			return nil
		},
	})

	var runID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show an archived run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(runID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			r, err := app.SessionCLI.GetRun(context.Background(), runID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\nregion: %s\nweight: %s\nstatus: %s\nstarted: %s\n",
				r.ID, r.RegionID, r.WeightID, r.Status, r.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
			for _, s := range r.Samples {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%d, %d)\tframes=%d\tmean=%.2f\n",
					s.PositionID, s.X, s.Y, len(s.Frames), s.Mean)
			}
			return nil
		},
	}
	show.Flags().StringVar(&runID, "id", "", "run id or id prefix")
	measure.AddCommand(show)
	return measure
}

func newResultsCmd(workspacePath *string) *cobra.Command {
	results := &cobra.Command{Use: "results", Short: "Sensitivity analysis commands"}

	results.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List analyzed runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			records, err := app.AnalysisCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no analyzed runs")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\tmean=%.2f\tcv=%.4f\t%s\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.RegionID, r.MeanPressure, r.CV, r.Grade)
			}
			return nil
		},
	})

	var runID string
	show := &cobra.Command{
		Use:   "show --run <id>",
		Short: "Analyze a run and print the report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(runID) == "" {
				return fmt.Errorf("--run is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			report, err := app.AnalysisCLI.Analyze(context.Background(), runID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "run=%s region=%s weight=%s status=%s\n",
				report.RunID, report.RegionID, report.WeightID, report.Status)
			for _, p := range report.Positions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%d, %d)\tmean=%.2f\tstd=%.2f\tcv=%.4f\t%s\n",
					p.PositionID, p.X, p.Y, p.Mean, p.StdDev, p.CV, p.Grade)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "overall: mean=%.2f cv=%.4f grade=%s\n",
				report.Overall.MeanOfMeans, report.Overall.CV, report.Overall.Grade)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "frames:  count=%d mean=%.2f std=%.2f cv=%.4f\n",
				report.Overall.Frames, report.Overall.FrameMean, report.Overall.FrameStd, report.Overall.FrameCV)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Recommendation)
			return nil
		},
	}
	show.Flags().StringVar(&runID, "run", "", "run id or id prefix")
	results.AddCommand(show)

	var exportRunID, format string
	export := &cobra.Command{
		Use:   "export --run <id>",
		Short: "Export a sensitivity report to the exports directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportRunID) == "" {
				return fmt.Errorf("--run is required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			path, err := app.AnalysisCLI.Export(context.Background(), exportRunID, format)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "report written: %s\n", path)
			return nil
		},
	}
	export.Flags().StringVar(&exportRunID, "run", "", "run id or id prefix")
	export.Flags().StringVar(&format, "format", "json", "report format: json|text")
	results.AddCommand(export)

	var queryRunID, queryPath string
	query := &cobra.Command{
		Use:   "query --run <id> --path <expr>",
		Short: "Query a report field by path, e.g. overall.cv or positions.0.grade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(queryRunID) == "" || strings.TrimSpace(queryPath) == "" {
				return fmt.Errorf("--run and --path are required")
			}
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			value, err := app.AnalysisCLI.Query(context.Background(), queryRunID, queryPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	query.Flags().StringVar(&queryRunID, "run", "", "run id or id prefix")
	query.Flags().StringVar(&queryPath, "path", "", "report path expression")
	results.AddCommand(query)
	return results
}

func newDriverCmd(workspacePath *string) *cobra.Command {
	driver := &cobra.Command{Use: "driver", Short: "Sensor driver commands"}

	driver.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured drivers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			drivers, err := app.DriverCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, d := range drivers {
				kind := "plugin"
				if d.Builtin {
					kind = "builtin"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s %s enabled=%t binary=%s\n",
					d.Name, d.Version, kind, d.Enabled, d.Binary)
			}
			return nil
		},
	})

	driver.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate driver binaries, checksums, and probe responses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*workspacePath)
			if err != nil {
				return err
			}
			results, err := app.DriverCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no drivers configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s binary=%t checksum=%t probe=%t",
					r.Name, r.BinaryReachable, r.ChecksumValid, r.ProbeOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})
	return driver
}
