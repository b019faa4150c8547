// Package pipeline carries per-document progress events from the driver to
// whoever displays them.
package pipeline

import "time"

// Stage is a phase of checking one unit document.
type Stage string

const (
	StageDecode Stage = "decode"
	StageCheck  Stage = "check"
	StageRender Stage = "render"
)

// Status is the state of a document within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a document, or for the whole run when File is
// empty.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Err         error
	Elapsed     time.Duration
	Diagnostics int
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit sends ev to sink when sink is not nil.
func Emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
