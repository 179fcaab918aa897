// Package audit records configuration lifecycle operations as JSON lines.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Operation names a lifecycle step.
type Operation string

const (
	OpOpen        Operation = "open"
	OpClose       Operation = "close"
	OpLoadReplace Operation = "load_replace"
	OpLoadMerge   Operation = "load_merge"
	OpCompare     Operation = "compare"
	OpCommit      Operation = "commit"
	OpDiscard     Operation = "discard"
	OpRollback    Operation = "rollback"
)

// Event is one lifecycle operation against one device.
type Event struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	User      string        `json:"user"`
	Device    string        `json:"device"`
	Operation Operation     `json:"operation"`
	Source    string        `json:"source,omitempty"`
	Diff      string        `json:"diff,omitempty"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	SessionID string        `json:"session_id,omitempty"`
}

// Filter selects events in Query. Zero fields match everything.
type Filter struct {
	Device      string
	User        string
	Operation   Operation
	SessionID   string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates an event stamped with a fresh ID and the current time.
func NewEvent(user, device string, op Operation) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		User:      user,
		Device:    device,
		Operation: op,
	}
}

// WithSource records where the loaded configuration came from.
func (e *Event) WithSource(source string) *Event {
	e.Source = source
	return e
}

// WithDiff records the pending change set returned by compare.
func (e *Event) WithDiff(diff string) *Event {
	e.Diff = diff
	return e
}

func (e *Event) WithSession(id string) *Event {
	e.SessionID = id
	return e
}

// WithResult marks the event successful when err is nil and failed otherwise.
func (e *Event) WithResult(err error) *Event {
	e.Success = err == nil
	e.Error = ""
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func (f Filter) matches(e *Event) bool {
	switch {
	case f.Device != "" && e.Device != f.Device:
		return false
	case f.User != "" && e.User != f.User:
		return false
	case f.Operation != "" && e.Operation != f.Operation:
		return false
	case f.SessionID != "" && e.SessionID != f.SessionID:
		return false
	case !f.StartTime.IsZero() && e.Timestamp.Before(f.StartTime):
		return false
	case !f.EndTime.IsZero() && e.Timestamp.After(f.EndTime):
		return false
	case f.SuccessOnly && !e.Success:
		return false
	case f.FailureOnly && e.Success:
		return false
	}
	return true
}

// page applies Offset and Limit.
func (f Filter) page(events []*Event) []*Event {
	if f.Offset > 0 {
		if f.Offset >= len(events) {
			return nil
		}
		events = events[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(events) {
		events = events[:f.Limit]
	}
	return events
}
