// Package revalidatetest provides an in-memory revalidate.Notifier for tests.
package revalidatetest

import (
	"context"
	"sync"
	"time"

	"crm-backend/internal/revalidate"

	"github.com/google/uuid"
)

// Recorder keeps change signals in memory
type Recorder struct {
	mu     sync.Mutex
	events []revalidate.Event
}

var _ revalidate.Notifier = (*Recorder)(nil)

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Changed(_ context.Context, orgID uuid.UUID, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, revalidate.Event{OrganizationID: orgID, Paths: append([]string(nil), paths...), At: time.Now()})
	return nil
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []revalidate.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]revalidate.Event(nil), r.events...)
}

// Paths returns every recorded path in order
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.Paths...)
	}
	return out
}
