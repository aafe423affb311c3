package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"flightrec/internal/config"
	"flightrec/internal/fileutil"
	"flightrec/internal/journal"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "export <destination>",
		Short: "Copy a recorded video out of the recovery directory",
		Long: "Export copies a video artifact to the given destination and verifies\n" +
			"the copy against the source checksum. Without --source the most\n" +
			"recently modified video in the recovery directory is exported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			src := strings.TrimSpace(source)
			if src == "" {
				src, err = newestVideo(cfg.Paths.RecoveryDir)
				if err != nil {
					return err
				}
			} else if src, err = config.ExpandPath(src); err != nil {
				return fmt.Errorf("resolve source path: %w", err)
			}
			if !fileutil.ExistsNonEmpty(src) {
				return fmt.Errorf("source video %s is missing or empty", src)
			}

			dest, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve destination path: %w", err)
			}
			if info, statErr := os.Stat(dest); statErr == nil && info.IsDir() {
				dest = filepath.Join(dest, filepath.Base(src))
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("create destination directory: %w", err)
			}

			if err := fileutil.CopyFileVerified(src, dest); err != nil {
				return fmt.Errorf("export video: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", filepath.Base(src), dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Video to export (defaults to the newest recording)")
	return cmd
}

func newestVideo(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read recovery directory: %w", err)
	}
	type candidate struct {
		path    string
		modTime int64
	}
	var videos []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), journal.VideoExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		videos = append(videos, candidate{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}
	if len(videos) == 0 {
		return "", fmt.Errorf("no videos found in %s", dir)
	}
	sort.Slice(videos, func(i, j int) bool { return videos[i].modTime > videos[j].modTime })
	return videos[0].path, nil
}
