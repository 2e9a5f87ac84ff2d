package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"codecsweep/internal/config"
	"codecsweep/internal/console"
	"codecsweep/internal/monitor"
	"codecsweep/internal/notify"
	"codecsweep/internal/pipeline"
	"codecsweep/internal/transcoder"
	"codecsweep/pkg/models"
)

func newRunCommand(configFlag *string) *cobra.Command {
	var dirFlag string
	var patternFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Discover candidate files and convert those not yet in the target codec",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configFlag)
			if err != nil {
				return err
			}
			if dirFlag != "" {
				cfg.MediaDir = dirFlag
			}
			if patternFlag != "" {
				cfg.Pattern = patternFlag
			}

			log := newLogger(cfg.LogLevel)

			// Locate the binaries up front; a missing tool aborts before
			// any file is touched.
			engine, err := transcoder.NewEngine(cfg.FFmpegPath, cfg.FFprobePath)
			if err != nil {
				return err
			}

			runner := &pipeline.Runner{
				Engine:     engine,
				Prober:     transcoder.NewProber(engine),
				Transcoder: transcoder.NewTranscoder(engine),
				Console:    console.New(),
				Log:        log,
			}

			// No signal handling by design: cancellation is default
			// process termination.
			ctx := context.Background()
			started := time.Now()

			sum, err := runner.Run(ctx, pipeline.Options{
				Dir:     cfg.MediaDir,
				Pattern: cfg.Pattern,
				Profile: cfg.Profile(),
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			sendReport(ctx, log, cfg, sum, started)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Media directory (overrides config)")
	cmd.Flags().StringVarP(&patternFlag, "pattern", "p", "", "Glob pattern for candidate files (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Probe and report only, do not convert")

	return cmd
}

// sendReport posts the run report when a webhook is configured. Report
// delivery failures are logged, never fatal.
func sendReport(ctx context.Context, log hclog.Logger, cfg *config.Config, sum models.RunSummary, started time.Time) {
	reporter := notify.NewReporter(cfg.ReportURL)
	if !reporter.Enabled() {
		return
	}

	report := models.RunReport{
		RunID:      uuid.NewString(),
		Pattern:    cfg.Pattern,
		Host:       monitor.Snapshot(ctx),
		Summary:    sum,
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if err := reporter.Send(ctx, report); err != nil {
		log.Warn("run report delivery failed", "url", cfg.ReportURL, "error", err)
	}
}

func newLogger(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "codecsweep",
		Level:  hclog.LevelFromString(level),
		Output: os.Stderr,
	})
}
