package recovery

import (
	"context"
	"log/slog"
	"os"

	"flightrec/internal/fileutil"
	"flightrec/internal/journal"
	"flightrec/internal/logging"
)

// Report summarizes the effects of one reconcile pass.
type Report struct {
	RecordsScanned   int
	RecordsRemoved   int
	ArtifactsRemoved int
	MalformedRemoved int
}

// Empty reports whether the pass had no observable effect.
func (r Report) Empty() bool {
	return r.RecordsRemoved == 0 && r.ArtifactsRemoved == 0 && r.MalformedRemoved == 0
}

// Scanner reconciles leftover recovery metadata from a previous unclean
// shutdown. It never re-attaches an artifact: anything delivered at crash
// time was delivered by the synchronous crash finalize, so recovery is
// cleanup only. Running it twice in a row with no new records yields no
// effect the second time.
type Scanner struct {
	store  *journal.Store
	logger *slog.Logger
}

// NewScanner returns a scanner over the given metadata store.
func NewScanner(store *journal.Store, logger *slog.Logger) *Scanner {
	return &Scanner{
		store:  store,
		logger: logging.NewComponentLogger(logger, "recovery-scan"),
	}
}

// Reconcile inspects every metadata record left on disk and reconciles it
// against the expected artifact state. Individual removal failures are
// logged and skipped; only a failure to list the records is returned.
func (s *Scanner) Reconcile(ctx context.Context) (Report, error) {
	var report Report

	records, err := s.store.ReadAll()
	if err != nil {
		return report, err
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.RecordsScanned++

		if rec.Malformed() {
			if s.removeRecord(rec) {
				report.MalformedRemoved++
				report.RecordsRemoved++
			}
			continue
		}

		switch rec.Status {
		case journal.StatusCrashRecorded:
			s.reconcileCrashRecorded(rec, &report)
		default:
			// RECORDING, and any status a future writer might leave that
			// this version does not recognize: the buffer was memory
			// resident, nothing on disk was delivered.
			s.reconcileRecording(rec, &report)
		}
	}

	if report.Empty() {
		s.logger.Debug("reconcile found nothing to do", logging.Int("records", report.RecordsScanned))
	} else {
		s.logger.Info("stale recording state reconciled",
			logging.Int("records_scanned", report.RecordsScanned),
			logging.Int("records_removed", report.RecordsRemoved),
			logging.Int("artifacts_removed", report.ArtifactsRemoved),
			logging.Int("malformed_removed", report.MalformedRemoved),
		)
	}
	return report, nil
}

// reconcileCrashRecorded handles records whose crash-time finalize completed.
// A non-empty crash artifact was already registered with the reporter by the
// crashing process, so it is deleted, never re-sent. An empty artifact is a
// corrupt flush; it is deleted too. An absent artifact means cleanup already
// happened.
func (s *Scanner) reconcileCrashRecorded(rec journal.Record, report *Report) {
	crashPath := rec.CrashVideoPath
	if crashPath == "" {
		crashPath = journal.CrashVideoPathFor(rec.VideoPath)
	}

	if _, err := os.Stat(crashPath); err == nil {
		reason := "already delivered at crash time"
		if !fileutil.ExistsNonEmpty(crashPath) {
			reason = "empty crash artifact"
		}
		if s.removeFile(crashPath, reason) {
			report.ArtifactsRemoved++
		}
	}
	if s.removeRecord(rec) {
		report.RecordsRemoved++
	}
}

// reconcileRecording handles records from sessions killed before any crash
// finalize ran. The video path is expected not to exist; a file found there
// is incomplete and unverifiable.
func (s *Scanner) reconcileRecording(rec journal.Record, report *Report) {
	if _, err := os.Stat(rec.VideoPath); err == nil {
		if s.removeFile(rec.VideoPath, "orphaned artifact from silent termination") {
			report.ArtifactsRemoved++
		}
	}
	if s.removeRecord(rec) {
		report.RecordsRemoved++
	}
}

func (s *Scanner) removeFile(path, reason string) bool {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false
		}
		s.logger.Warn("artifact cleanup failed; file remains",
			logging.String(logging.FieldVideoPath, path),
			logging.Error(err),
		)
		return false
	}
	s.logger.Info("leftover artifact removed",
		logging.String(logging.FieldVideoPath, path),
		logging.String("reason", reason),
	)
	return true
}

func (s *Scanner) removeRecord(rec journal.Record) bool {
	if err := s.store.RemoveRecord(rec); err != nil {
		s.logger.Warn("metadata cleanup failed; record remains",
			logging.String("meta_path", rec.MetaPath),
			logging.Error(err),
		)
		return false
	}
	return true
}
