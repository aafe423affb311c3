package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightrec/internal/journal"
	"flightrec/internal/logging"
	"flightrec/internal/retention"
)

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int
	var pruneLogs bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Apply the retention limit to recorded videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			limit := cfg.Recording.MaxKeptVideos
			if keep > 0 {
				limit = keep
			}

			removed := retention.NewPolicy(logger).Apply(cfg.Paths.RecoveryDir, journal.VideoExt, limit)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d video(s), keeping the newest %d\n", removed, limit)

			if pruneLogs {
				logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
					Dir:     cfg.Paths.LogDir,
					Pattern: "*.log",
				})
				fmt.Fprintf(out, "Pruned log files older than %d day(s)\n", cfg.Logging.RetentionDays)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "Override the configured number of videos to keep")
	cmd.Flags().BoolVar(&pruneLogs, "logs", false, "Also prune old log files per the configured retention")
	return cmd
}
