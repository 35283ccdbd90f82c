// ABOUTME: Tests for the debounced workout saver.
// ABOUTME: Uses short delays and a counting save function, no real store.
package autosave

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/gym/internal/models"
)

type countingSaver struct {
	mu    sync.Mutex
	calls int
	last  *models.Workout
	err   error
}

func (c *countingSaver) save(w *models.Workout) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.last = w
	return c.err
}

func (c *countingSaver) snapshot() (int, *models.Workout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls, c.last
}

func TestRapidEditsCollapseToOneSave(t *testing.T) {
	c := &countingSaver{}
	s := New(c.save, WithDelay(30*time.Millisecond))
	defer s.Stop()

	var final *models.Workout
	for i := 0; i < 10; i++ {
		w := models.NewWorkout("Free Workout")
		w.ID = uint64(i + 1)
		s.Schedule(w)
		final = w
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		calls, last := c.snapshot()
		if calls > 0 {
			if calls != 1 {
				t.Fatalf("got %d saves, want 1", calls)
			}
			if last != final {
				t.Fatalf("saved workout id %d, want the last scheduled id %d", last.ID, final.ID)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("save never fired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	c := &countingSaver{}
	s := New(c.save, WithDelay(time.Hour))
	defer s.Stop()

	w := models.NewWorkout("Free Workout")
	s.Schedule(w)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	calls, last := c.snapshot()
	if calls != 1 || last != w {
		t.Fatalf("after Flush: calls=%d last=%v", calls, last)
	}

	// Nothing pending: Flush is a no-op, and the timer must not fire later.
	if err := s.Flush(); err != nil {
		t.Fatalf("second Flush() error = %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if calls, _ := c.snapshot(); calls != 1 {
		t.Fatalf("flushed save fired again: %d calls", calls)
	}
}

func TestStopDiscardsPendingState(t *testing.T) {
	c := &countingSaver{}
	s := New(c.save, WithDelay(20*time.Millisecond))

	s.Schedule(models.NewWorkout("Free Workout"))
	s.Stop()

	time.Sleep(80 * time.Millisecond)
	if calls, _ := c.snapshot(); calls != 0 {
		t.Fatalf("save fired after Stop: %d calls", calls)
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush() after Stop error = %v", err)
	}
	if calls, _ := c.snapshot(); calls != 0 {
		t.Fatal("Flush after Stop wrote discarded state")
	}
}

func TestErrorHandlerReceivesTimerFailures(t *testing.T) {
	wantErr := errors.New("disk full")
	c := &countingSaver{err: wantErr}

	errCh := make(chan error, 1)
	s := New(c.save,
		WithDelay(10*time.Millisecond),
		WithErrorHandler(func(err error) { errCh <- err }))
	defer s.Stop()

	s.Schedule(models.NewWorkout("Free Workout"))

	select {
	case err := <-errCh:
		if !errors.Is(err, wantErr) {
			t.Fatalf("handler got %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("error handler never called")
	}
}

func TestFlushReturnsSaveError(t *testing.T) {
	wantErr := errors.New("disk full")
	c := &countingSaver{err: wantErr}
	s := New(c.save, WithDelay(time.Hour))
	defer s.Stop()

	s.Schedule(models.NewWorkout("Free Workout"))
	if err := s.Flush(); !errors.Is(err, wantErr) {
		t.Fatalf("Flush() error = %v, want %v", err, wantErr)
	}
}
