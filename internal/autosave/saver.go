// ABOUTME: Debounced autosave for in-progress workout edits.
// ABOUTME: Rapid edits collapse into one write carrying the latest state.
package autosave

import (
	"sync"
	"time"

	"github.com/harperreed/gym/internal/models"
)

// DefaultDelay is how long the saver waits after the last edit before
// writing. Matches the feel of typing into a set field: the write lands
// once the user pauses.
const DefaultDelay = 500 * time.Millisecond

// SaveFunc persists a workout. Typically Repository.UpdateWorkout.
type SaveFunc func(w *models.Workout) error

// Saver debounces workout writes. Schedule may be called on every edit;
// only the last scheduled state is written, DefaultDelay after the last
// call. Saves run on a timer goroutine, so the SaveFunc must be safe to
// call from there; with a single Repository writer that is already true.
type Saver struct {
	mu      sync.Mutex
	save    SaveFunc
	delay   time.Duration
	onError func(error)
	timer   *time.Timer
	pending *models.Workout
}

// Option configures a Saver.
type Option func(*Saver)

// WithDelay overrides the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(s *Saver) { s.delay = d }
}

// WithErrorHandler sets a callback for save failures from the timer
// goroutine. Without one, failures are dropped; the next Flush or
// Schedule retries with newer state anyway.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Saver) { s.onError = fn }
}

// New creates a Saver around the given save function.
func New(save SaveFunc, opts ...Option) *Saver {
	s := &Saver{save: save, delay: DefaultDelay}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule records w as the state to persist and restarts the debounce
// timer. Earlier scheduled states that have not fired yet are discarded.
func (s *Saver) Schedule(w *models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = w
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Flush cancels any pending timer and writes the pending state now.
// Call it before reading the workout back or closing the store, so the
// last edit is never lost to the debounce window.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	w := s.pending
	s.pending = nil
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	return s.save(w)
}

// Stop cancels any pending save without writing.
func (s *Saver) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

func (s *Saver) fire() {
	s.mu.Lock()
	w := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if w == nil {
		return
	}
	if err := s.save(w); err != nil && s.onError != nil {
		s.onError(err)
	}
}
