// Package retention bounds the number of finished artifacts kept in the
// recovery directory.
package retention

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flightrec/internal/logging"
)

// Policy deletes the oldest matching files beyond a maximum kept count. It
// only ever inspects finished files: the session runs it immediately after a
// new recording starts, before the new artifact exists under its name, so no
// open write handle is ever a candidate.
type Policy struct {
	logger *slog.Logger
}

// NewPolicy returns a policy that logs deletions through logger.
func NewPolicy(logger *slog.Logger) *Policy {
	return &Policy{logger: logging.NewComponentLogger(logger, "retention")}
}

// Apply lists files in dir whose names end with ext, sorts them ascending by
// modification time, and removes the oldest count-maxKeep files when more
// than maxKeep exist. Equal modification times keep the listing order; the
// tie order is stable but carries no meaning. Returns the number of files
// removed.
func (p *Policy) Apply(dir, ext string, maxKeep int) int {
	if maxKeep <= 0 {
		return 0
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		p.logger.Warn("retention scan failed", logging.String("dir", dir), logging.Error(err))
		return 0
	}

	type candidate struct {
		path    string
		modTime int64
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime().UnixNano(),
		})
	}

	excess := len(candidates) - maxKeep
	if excess <= 0 {
		return 0
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].modTime < candidates[j].modTime
	})

	removed := 0
	for _, c := range candidates[:excess] {
		if err := os.Remove(c.path); err != nil {
			p.logger.Warn("retention remove failed; file remains",
				logging.String("path", c.path),
				logging.Error(err),
			)
			continue
		}
		removed++
		p.logger.Info("old recording pruned",
			logging.String("path", c.path),
			logging.String(logging.FieldEventType, "recording_pruned"),
		)
	}
	return removed
}
