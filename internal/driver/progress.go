package driver

import "time"

// Stage names the step a file is in.
type Stage string

const (
	StageRead    Stage = "read"
	StageCache   Stage = "cache"
	StageAnalyze Stage = "analyze"
	StageFix     Stage = "fix"
)

// Status reports the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event is one progress update. File is empty for run-wide events.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Cached  bool
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(s ProgressSink, evt Event) {
	if s != nil {
		s.OnEvent(evt)
	}
}
