package analysis

import (
	"sync"
)

// Status of one record's analysis request.
type Status int

const (
	Idle Status = iota
	Running
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Tracker maps record ids to request status. It exists so the one real
// concurrency concern in this client, disabling re-triggers per record while
// an analysis is in flight, is explicit and testable.
type Tracker struct {
	mu     sync.RWMutex
	states map[string]Status
}

func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]Status)}
}

// Status returns the current status of a record. Unknown records are Idle.
func (t *Tracker) Status(id string) Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[id]
}

// Begin marks the record Running. Returns false when an analysis for it is
// already in flight; a previous Failed state does not block a new run.
func (t *Tracker) Begin(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.states[id] == Running {
		return false
	}
	t.states[id] = Running
	return true
}

// Done returns the record to Idle.
func (t *Tracker) Done(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[id] = Idle
}

// Fail marks the record Failed.
func (t *Tracker) Fail(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[id] = Failed
}

// Snapshot returns a copy of all non-idle records, for display.
func (t *Tracker) Snapshot() map[string]Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Status)
	for id, s := range t.states {
		if s != Idle {
			out[id] = s
		}
	}
	return out
}
