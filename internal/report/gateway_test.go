package report_test

import (
	"path/filepath"
	"testing"

	"flightrec/internal/logging"
	"flightrec/internal/report"
	"flightrec/internal/testsupport"
)

func TestAttachRegistersExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.mp4")
	testsupport.WriteFile(t, path, 128)

	reporter := testsupport.NewFakeReporter()
	gateway := report.NewGateway(reporter, logging.NewNop())

	if !gateway.Attach(path, "Crash Video", report.MIMEVideoMP4) {
		t.Fatal("expected attach to succeed")
	}
	atts := reporter.Attachments()
	if len(atts) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(atts))
	}
	if atts[0].Path != path || atts[0].DisplayName != "Crash Video" || atts[0].MIMEType != report.MIMEVideoMP4 {
		t.Fatalf("unexpected attachment: %+v", atts[0])
	}
}

func TestAttachFailsWhenReporterDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.mp4")
	testsupport.WriteFile(t, path, 128)

	reporter := testsupport.NewFakeReporter()
	reporter.SetEnabled(false)
	gateway := report.NewGateway(reporter, logging.NewNop())

	if gateway.Attach(path, "Crash Video", "") {
		t.Fatal("expected attach to fail while reporter disabled")
	}
	if len(reporter.Attachments()) != 0 {
		t.Fatal("disabled reporter must not receive attachments")
	}
}

func TestAttachFailsForMissingFile(t *testing.T) {
	reporter := testsupport.NewFakeReporter()
	gateway := report.NewGateway(reporter, logging.NewNop())

	if gateway.Attach(filepath.Join(t.TempDir(), "missing.mp4"), "Video", "") {
		t.Fatal("expected attach to fail for missing file")
	}
	if len(reporter.Attachments()) != 0 {
		t.Fatal("reporter must not receive attachment for missing file")
	}
}

func TestAttachNilReporter(t *testing.T) {
	gateway := report.NewGateway(nil, logging.NewNop())
	if gateway.Attach("/tmp/x.mp4", "Video", "") {
		t.Fatal("nil reporter must never attach")
	}
	if gateway.Ready() {
		t.Fatal("nil reporter gateway must not be ready")
	}
}

func TestAttachDefaultsMIMEType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.mp4")
	testsupport.WriteFile(t, path, 16)

	reporter := testsupport.NewFakeReporter()
	gateway := report.NewGateway(reporter, logging.NewNop())

	if !gateway.Attach(path, "Video", "") {
		t.Fatal("expected attach to succeed")
	}
	if got := reporter.Attachments()[0].MIMEType; got != report.MIMEVideoMP4 {
		t.Fatalf("expected default mime type, got %q", got)
	}
}
