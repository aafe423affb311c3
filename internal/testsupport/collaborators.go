package testsupport

import (
	"os"
	"sync"

	"flightrec/internal/recording"
	"flightrec/internal/report"
)

// FakeRecorder is an in-memory stand-in for the external circular-buffer
// recorder. Stop simulates the flush-to-disk by writing FlushBytes bytes to
// the path given at Start.
type FakeRecorder struct {
	mu         sync.Mutex
	startErr   error
	flushBytes int64
	active     bool
	lastOutput string
	lastStart  recording.StartOptions
	startCalls int
	stopCalls  int
}

// NewFakeRecorder returns a recorder whose flush produces a 1 KiB artifact.
func NewFakeRecorder() *FakeRecorder {
	return &FakeRecorder{flushBytes: 1024}
}

// FailStart makes subsequent Start calls return err.
func (r *FakeRecorder) FailStart(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startErr = err
}

// SetFlushBytes controls the size of the artifact written on Stop. Zero
// means Stop writes nothing, simulating a failed flush.
func (r *FakeRecorder) SetFlushBytes(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushBytes = n
}

func (r *FakeRecorder) Start(opts recording.StartOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startCalls++
	if r.startErr != nil {
		return r.startErr
	}
	r.active = true
	r.lastOutput = opts.OutputPath
	r.lastStart = opts
	return nil
}

func (r *FakeRecorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCalls++
	if !r.active {
		return
	}
	r.active = false
	if r.flushBytes > 0 && r.lastOutput != "" {
		data := make([]byte, r.flushBytes)
		_ = os.WriteFile(r.lastOutput, data, 0o644)
	}
}

func (r *FakeRecorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *FakeRecorder) LastOutputPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastOutput
}

// StartCalls returns how many times Start was invoked.
func (r *FakeRecorder) StartCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.startCalls
}

// StopCalls returns how many times Stop was invoked.
func (r *FakeRecorder) StopCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopCalls
}

// LastStartOptions returns the options passed to the most recent Start.
func (r *FakeRecorder) LastStartOptions() recording.StartOptions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastStart
}

// RecordedAttachment captures one attachment registered with the reporter.
type RecordedAttachment struct {
	Path        string
	DisplayName string
	MIMEType    string
}

// FakeReporter is an in-memory stand-in for the external crash reporter.
type FakeReporter struct {
	mu          sync.Mutex
	enabled     bool
	createErr   error
	attachments []RecordedAttachment
}

// NewFakeReporter returns an enabled reporter with no attachments.
func NewFakeReporter() *FakeReporter {
	return &FakeReporter{enabled: true}
}

// SetEnabled toggles reporter availability.
func (r *FakeReporter) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

// FailCreate makes CreateAttachment return err.
func (r *FakeReporter) FailCreate(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErr = err
}

func (r *FakeReporter) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

func (r *FakeReporter) CreateAttachment(path, displayName, mimeType string) (report.AttachmentHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	return RecordedAttachment{Path: path, DisplayName: displayName, MIMEType: mimeType}, nil
}

func (r *FakeReporter) AddAttachment(handle report.AttachmentHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if att, ok := handle.(RecordedAttachment); ok {
		r.attachments = append(r.attachments, att)
	}
}

// Attachments returns everything registered so far.
func (r *FakeReporter) Attachments() []RecordedAttachment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedAttachment, len(r.attachments))
	copy(out, r.attachments)
	return out
}
