package testing

import (
	"context"
	"sync"

	"github.com/LeJamon/goRentald/internal/core/rental"
)

// EventRecorder is an event sink keeping everything it receives.
type EventRecorder struct {
	mu     sync.Mutex
	events []rental.Event
}

func (r *EventRecorder) Publish(_ context.Context, events []rental.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, events...)
	return nil
}

// Events returns a copy of the recorded events.
func (r *EventRecorder) Events() []rental.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rental.Event(nil), r.events...)
}

// Clear forgets recorded events.
func (r *EventRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// OfType returns the recorded events of type typ.
func (r *EventRecorder) OfType(typ rental.EventType) []rental.Event {
	var out []rental.Event
	for _, ev := range r.Events() {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}
