// Package diag is the diagnostic channel the changelog pipeline reports to.
// Skip decisions (merge commits, unparseable subjects, lightweight tags, ...)
// are never fatal; they are emitted here as structured events so the CLI can
// route them to a logger and tests can assert on them.
package diag

import "sync"

// Level is the severity of an event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Reason identifies why an event was emitted.
type Reason string

const (
	ReasonMergeCommit     Reason = "merge-commit"
	ReasonUnparseable     Reason = "unparseable-message"
	ReasonUnknownKind     Reason = "unknown-kind"
	ReasonScopeMismatch   Reason = "scope-mismatch"
	ReasonLightweightTag  Reason = "lightweight-tag"
	ReasonDuplicateTag    Reason = "duplicate-tag"
	ReasonSkippedBoundary Reason = "skipped-boundary"
	ReasonRepositoryStart Reason = "repository-start"
	ReasonRepositoryDone  Reason = "repository-done"
)

// Event is a single diagnostic. Empty fields are omitted by sinks.
type Event struct {
	Level      Level
	Reason     Reason
	Message    string
	Repository string
	Hash       string
	Tag        string
	Kind       string
	Scope      string
	Subject    string
}

// Sink receives events.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// OrDiscard returns s, or Discard when s is nil.
func OrDiscard(s Sink) Sink {
	if s == nil {
		return Discard
	}
	return s
}

// WithRepository returns a sink that stamps the repository name on events
// that do not carry one.
func WithRepository(s Sink, name string) Sink {
	s = OrDiscard(s)
	return SinkFunc(func(e Event) {
		if e.Repository == "" {
			e.Repository = name
		}
		s.Emit(e)
	})
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Emit records e.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ByReason returns the recorded events with the given reason.
func (r *Recorder) ByReason(reason Reason) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Reason == reason {
			out = append(out, e)
		}
	}
	return out
}
