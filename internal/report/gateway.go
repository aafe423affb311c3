// Package report adapts recovery artifacts into crash reporter attachments.
package report

import (
	"log/slog"
	"os"

	"flightrec/internal/logging"
)

// MIMEVideoMP4 is the attachment content type for recorded artifacts.
const MIMEVideoMP4 = "video/mp4"

// AttachmentHandle is an opaque token the reporter hands back for a created
// attachment.
type AttachmentHandle any

// Reporter is the external crash/error reporting client. Attachments
// registered with it ride along with the next reported event; registration
// never triggers transmission on its own.
type Reporter interface {
	Enabled() bool
	CreateAttachment(path, displayName, mimeType string) (AttachmentHandle, error)
	AddAttachment(handle AttachmentHandle)
}

// Gateway performs idempotent attachment registration against a Reporter.
type Gateway struct {
	reporter Reporter
	logger   *slog.Logger
}

// NewGateway wraps reporter. A nil reporter yields a gateway whose Attach
// always reports false.
func NewGateway(reporter Reporter, logger *slog.Logger) *Gateway {
	return &Gateway{
		reporter: reporter,
		logger:   logging.NewComponentLogger(logger, "attachment-gateway"),
	}
}

// Attach registers the file at path with the reporter's current scope.
// Returns false when the reporter is unavailable or the file does not exist
// at call time; the caller treats false as "no artifact delivered".
func (g *Gateway) Attach(path, displayName, mimeType string) bool {
	if g == nil || g.reporter == nil || !g.reporter.Enabled() {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		g.logger.Warn("attachment skipped; artifact missing",
			logging.String(logging.FieldVideoPath, path),
			logging.Error(err),
		)
		return false
	}
	if mimeType == "" {
		mimeType = MIMEVideoMP4
	}

	handle, err := g.reporter.CreateAttachment(path, displayName, mimeType)
	if err != nil {
		g.logger.Warn("attachment creation failed",
			logging.String(logging.FieldVideoPath, path),
			logging.Error(err),
		)
		return false
	}
	g.reporter.AddAttachment(handle)
	g.logger.Info("artifact registered with reporter",
		logging.String(logging.FieldVideoPath, path),
		logging.String("display_name", displayName),
	)
	return true
}

// Ready reports whether the reporter can accept attachments right now.
func (g *Gateway) Ready() bool {
	return g != nil && g.reporter != nil && g.reporter.Enabled()
}
