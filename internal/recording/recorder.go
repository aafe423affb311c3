package recording

// StartOptions carries the resolved parameters handed to the recorder when a
// session starts. All numeric values are already clamped.
type StartOptions struct {
	OutputPath    string
	FPS           int
	Width         int
	Height        int
	Bitrate       int
	RecordUI      bool
	RecordAudio   bool
	BufferSeconds int
}

// Recorder is the external circular-buffer video encoder. It keeps the
// buffer memory-resident while active and flushes it to disk on Stop. All
// calls are synchronous; the recorder may run its own encoding thread
// internally.
type Recorder interface {
	Start(opts StartOptions) error
	Stop()
	Active() bool
	LastOutputPath() string
}
