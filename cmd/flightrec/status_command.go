package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"flightrec/internal/journal"
	"flightrec/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show environment health and pending recovery records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			printSection(out, "Environment", colorize)
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			printSection(out, "Recovery journal", colorize)

			records, err := journal.NewStore(cfg.Paths.RecoveryDir).ReadAll()
			if err != nil {
				return fmt.Errorf("read recovery records: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, renderStatusLine("Pending records", statusOK, "none", colorize))
				return nil
			}
			for _, rec := range records {
				label := filepath.Base(rec.MetaPath)
				switch {
				case rec.Malformed():
					fmt.Fprintln(out, renderStatusLine(label, statusError, "malformed", colorize))
				case rec.Status == journal.StatusCrashRecorded:
					fmt.Fprintln(out, renderStatusLine(label, statusWarn, "crash recorded, awaiting cleanup", colorize))
				default:
					fmt.Fprintln(out, renderStatusLine(label, statusInfo, string(rec.Status), colorize))
				}
			}
			fmt.Fprintf(out, "\nRun `flightrec reconcile` to clean up stale records.\n")
			return nil
		},
	}
}

func printSection(out io.Writer, title string, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
}
