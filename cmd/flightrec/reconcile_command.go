package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightrec/internal/journal"
	"flightrec/internal/logging"
	"flightrec/internal/recovery"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Clean up stale recovery records and orphaned artifacts",
		Long: "Reconcile scans the recovery directory for metadata left behind by a\n" +
			"previous run and removes it along with any orphaned video artifacts.\n" +
			"Crash videos already handed to the reporter are never re-delivered.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			store := journal.NewStore(cfg.Paths.RecoveryDir)
			report, err := recovery.NewScanner(store, logger).Reconcile(cmd.Context())
			if err != nil {
				return fmt.Errorf("reconcile recovery directory: %w", err)
			}

			out := cmd.OutOrStdout()
			if report.Empty() {
				fmt.Fprintln(out, "Recovery directory is clean")
				return nil
			}
			fmt.Fprintf(out, "Scanned %d record(s): removed %d record(s), %d artifact(s), %d malformed\n",
				report.RecordsScanned, report.RecordsRemoved, report.ArtifactsRemoved, report.MalformedRemoved)
			return nil
		},
	}
}
