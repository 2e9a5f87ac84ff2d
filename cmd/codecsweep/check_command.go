package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"codecsweep/internal/config"
	"codecsweep/internal/monitor"
	"codecsweep/internal/transcoder"
)

// newCheckCommand builds the diagnostics command: tool availability,
// encoder availability for the configured profile, and a host snapshot.
// Informational only; it does not modify any file.
func newCheckCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify external tooling and print a host snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configFlag)
			if err != nil {
				return err
			}
			ctx := context.Background()

			engine, err := transcoder.NewEngine(cfg.FFmpegPath, cfg.FFprobePath)
			if err != nil {
				return err
			}

			version, err := engine.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("ffmpeg:  %s\n", version)
			fmt.Printf("ffprobe: %s\n", engine.FFprobePath)

			profile := cfg.Profile()
			ok, err := engine.EncoderAvailable(ctx, profile.Encoder)
			if err != nil {
				return err
			}
			if ok {
				fmt.Printf("encoder %s: available\n", profile.Encoder)
			} else {
				fmt.Printf("encoder %s: NOT available\n", profile.Encoder)
			}

			specs := monitor.Snapshot(ctx)
			fmt.Printf("host: %s (%d threads, %.1f GB RAM free)\n",
				specs.CPUModel, specs.Threads, specs.RAMFreeGB)
			return nil
		},
	}
}
