package recording

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	appconfig "flightrec/internal/config"
	"flightrec/internal/fileutil"
	"flightrec/internal/history"
	"flightrec/internal/journal"
	"flightrec/internal/logging"
	"flightrec/internal/recovery"
	"flightrec/internal/report"
	"flightrec/internal/retention"
)

const lockFileName = "session.lock"

type captureReason int

const (
	captureManual captureReason = iota
	captureCrash
)

// Session governs one recording lifecycle: Idle -> Active -> Idle. Exactly
// one session may be Active per process; the flock on the recovery
// directory extends that guarantee across processes sharing it.
//
// The host registers NotifyCrash as its crash-hook callback at construction
// time and calls it once, synchronously, before process death. Every step
// on that path degrades to "no video this time" rather than raising.
type Session struct {
	mu sync.Mutex

	recorder Recorder
	gateway  *report.Gateway
	store    *journal.Store
	scanner  *recovery.Scanner
	policy   *retention.Policy
	ledger   *history.Store
	lock     *flock.Flock
	logger   *slog.Logger

	recoveryDir string
	settleDelay time.Duration
	maxKept     int

	active    bool
	crashed   bool
	attached  bool
	cfg       Config
	videoPath string
	sessionID string
	startTime time.Time
}

// Option customizes session construction.
type Option func(*Session)

// WithHistory records finalized captures in the given ledger.
func WithHistory(ledger *history.Store) Option {
	return func(s *Session) { s.ledger = ledger }
}

// WithSettleDelay overrides the post-stop flush settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(s *Session) { s.settleDelay = d }
}

// NewSession builds a session over the given collaborators. recorder and
// reporter are external services; either may be nil, which surfaces as a
// precondition failure at Start.
func NewSession(cfg *appconfig.Config, recorder Recorder, reporter report.Reporter, logger *slog.Logger, opts ...Option) *Session {
	store := journal.NewStore(cfg.Paths.RecoveryDir)
	s := &Session{
		recorder:    recorder,
		gateway:     report.NewGateway(reporter, logger),
		store:       store,
		scanner:     recovery.NewScanner(store, logger),
		policy:      retention.NewPolicy(logger),
		lock:        flock.New(filepath.Join(cfg.Paths.RecoveryDir, lockFileName)),
		logger:      logging.NewComponentLogger(logger, "recording-session"),
		recoveryDir: cfg.Paths.RecoveryDir,
		settleDelay: time.Duration(cfg.Recording.SettleDelayMS) * time.Millisecond,
		maxKept:     cfg.Recording.MaxKeptVideos,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start transitions the session to Active. The reconcile of stale metadata
// runs before the new record is written, so a scan never observes its own
// session. Metadata write failures do not block recording: losing recovery
// fidelity is preferable to losing the buffer.
func (s *Session) Start(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrAlreadyActive
	}
	if !s.gateway.Ready() {
		return ErrReporterUnavailable
	}
	if s.recorder == nil {
		return ErrRecorderUnavailable
	}

	cfg = cfg.Clamped()

	if err := os.MkdirAll(s.recoveryDir, 0o755); err != nil {
		s.logger.Warn("recovery directory unavailable", logging.String("dir", s.recoveryDir), logging.Error(err))
	}
	locked, err := s.lock.TryLock()
	if err != nil || !locked {
		if err != nil {
			s.logger.Warn("session lock acquisition failed", logging.Error(err))
		}
		return ErrRecoveryDirLocked
	}

	if _, err := s.scanner.Reconcile(ctx); err != nil {
		s.logger.Warn("recovery reconcile failed; continuing", logging.Error(err))
	}

	now := time.Now()
	videoPath := newArtifactPath(s.recoveryDir, now)
	sessionID := uuid.NewString()

	rec := journal.Record{
		VideoPath:  videoPath,
		Status:     journal.StatusRecording,
		StartTime:  now,
		Duration:   cfg.LastSecondsToRecord,
		FPS:        cfg.TargetFPS,
		Resolution: cfg.Resolution(),
	}
	if err := s.store.Write(rec); err != nil {
		s.logger.Warn("recovery metadata write failed; recording anyway", logging.Error(err))
	}

	startErr := s.recorder.Start(StartOptions{
		OutputPath:    videoPath,
		FPS:           cfg.TargetFPS,
		Width:         cfg.Width,
		Height:        cfg.Height,
		Bitrate:       cfg.Bitrate(),
		RecordUI:      cfg.RecordUI,
		RecordAudio:   cfg.RecordAudio,
		BufferSeconds: cfg.LastSecondsToRecord,
	})
	if startErr != nil {
		if err := s.store.Remove(videoPath); err != nil {
			s.logger.Warn("metadata cleanup after failed start", logging.Error(err))
		}
		s.unlock()
		return ErrRecorderStart
	}

	s.policy.Apply(s.recoveryDir, journal.VideoExt, s.maxKept)

	s.active = true
	s.crashed = false
	s.attached = false
	s.cfg = cfg
	s.videoPath = videoPath
	s.sessionID = sessionID
	s.startTime = now

	s.logger.Info("recording started",
		logging.String(logging.FieldSessionID, sessionID),
		logging.String(logging.FieldVideoPath, videoPath),
		logging.Int("buffer_seconds", cfg.LastSecondsToRecord),
		logging.Int("fps", cfg.TargetFPS),
		logging.Int("bitrate", cfg.Bitrate()),
	)
	return nil
}

// Stop ends an Active session cleanly. Removing the metadata record is the
// clean-shutdown signal; it is skipped when the session was flagged as
// crashed so the record survives for the crash protocol.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}
	if s.recorder != nil && s.recorder.Active() {
		s.recorder.Stop()
	}
	if !s.crashed {
		if err := s.store.Remove(s.videoPath); err != nil {
			s.logger.Warn("metadata removal on stop failed", logging.Error(err))
		}
	}
	s.logger.Info("recording stopped", logging.String(logging.FieldSessionID, s.sessionID))

	s.unlock()
	s.active = false
	s.crashed = false
	s.attached = false
	s.videoPath = ""
	s.sessionID = ""
}

// Close tears the session down, performing a clean stop if one is active.
func (s *Session) Close() {
	s.Stop()
}

// IsRecording reports whether a session is Active.
func (s *Session) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ArtifactPath returns the current artifact path, empty when Idle.
func (s *Session) ArtifactPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoPath
}

// SetMaxKept adjusts the retention limit applied at the next start.
func (s *Session) SetMaxKept(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.maxKept = n
	}
}

// FinalizeAndAttach flushes the buffer to disk for a manual "capture now"
// request and registers the artifact with the reporter. The session remains
// nominally Active; only an explicit Stop ends it. Returns the artifact
// path, or "" when no artifact is available.
func (s *Session) FinalizeAndAttach() string {
	return s.finalize(captureManual)
}

// NotifyCrash is the synchronous crash-hook entry point. It flushes the
// buffer, moves the artifact to its crash-recovery name, updates the
// metadata record to CRASH_RECORDED, and registers the attachment — all with
// bounded waits, since the process is about to die.
func (s *Session) NotifyCrash() string {
	return s.finalize(captureCrash)
}

func (s *Session) finalize(reason captureReason) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ""
	}
	if reason == captureCrash {
		s.crashed = true
	}

	if s.recorder.Active() {
		s.recorder.Stop()
	}
	if s.settleDelay > 0 {
		// Fixed, bounded wait for the encoder flush. Never retried.
		time.Sleep(s.settleDelay)
	}

	out := s.recorder.LastOutputPath()
	if out == "" {
		out = s.videoPath
	}
	if !fileutil.ExistsNonEmpty(out) {
		s.logger.Warn("finalize produced no usable artifact",
			logging.String(logging.FieldSessionID, s.sessionID),
			logging.String(logging.FieldVideoPath, out),
		)
		return ""
	}

	final := out
	if reason == captureCrash {
		crashPath := journal.CrashVideoPathFor(s.videoPath)
		if out != crashPath {
			if err := fileutil.MoveFile(out, crashPath); err != nil {
				s.logger.Warn("crash artifact rename failed; using original path", logging.Error(err))
				crashPath = out
			}
		}
		final = crashPath

		rec := journal.Record{
			VideoPath:      s.videoPath,
			CrashVideoPath: final,
			Status:         journal.StatusCrashRecorded,
			StartTime:      s.startTime,
			Duration:       s.cfg.LastSecondsToRecord,
			FPS:            s.cfg.TargetFPS,
			Resolution:     s.cfg.Resolution(),
		}
		if err := s.store.Write(rec); err != nil {
			s.logger.Warn("crash metadata update failed", logging.Error(err))
		}
	}

	if !s.attached {
		if !s.gateway.Attach(final, filepath.Base(final), report.MIMEVideoMP4) {
			s.logger.Warn("artifact not registered with reporter",
				logging.String(logging.FieldVideoPath, final),
			)
			return ""
		}
		s.attached = true
		s.recordCapture(reason, final)
	}

	s.logger.Info("buffer finalized",
		logging.String(logging.FieldSessionID, s.sessionID),
		logging.String(logging.FieldVideoPath, final),
		logging.Bool("crash", reason == captureCrash),
	)
	return final
}

func (s *Session) recordCapture(reason captureReason, path string) {
	if s.ledger == nil {
		return
	}
	why := history.ReasonManual
	if reason == captureCrash {
		why = history.ReasonCrash
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	entry := history.Entry{
		VideoPath:  path,
		Reason:     why,
		SizeBytes:  size,
		Delivered:  true,
		CapturedAt: time.Now(),
	}
	if _, err := s.ledger.Add(context.Background(), entry); err != nil {
		s.logger.Warn("capture history write failed", logging.Error(err))
	}
}

func (s *Session) unlock() {
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("session lock release failed", logging.Error(err))
	}
}
