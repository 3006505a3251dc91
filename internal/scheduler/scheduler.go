// Package scheduler owns the delayed one-shot submission tasks. One task per
// confirmed booking: it waits until the booking's target instant, posts the
// form exactly once, and stays cancellable up to the moment the fire decision
// is taken.
package scheduler

import (
	"context"
	"sync"
	"time"

	"courtbook/internal/domain"
	"courtbook/internal/utils"
)

// Payload carries everything a task needs at fire time.
type Payload struct {
	BookingID         int64
	P1, P2, P3        string
	CourtName         string
	ConfirmationEmail string
}

// SubmitFunc posts one booking to the upstream form.
type SubmitFunc func(p Payload) error

// StatusStore persists booking status transitions.
type StatusStore interface {
	UpdateStatus(id int64, status domain.Status) error
}

type taskState int

const (
	stateWaiting taskState = iota
	stateFired
	stateCancelled
)

// task tags each registered booking with an explicit lifecycle state. The
// state and the registry are both guarded by the scheduler mutex, so the
// fire/cancel decision is atomic: exactly one of them wins.
type task struct {
	state  taskState
	cancel context.CancelFunc
}

// Scheduler is the process-wide task registry. Construct it with New and
// inject it; it holds no package-level state.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[int64]*task
	wg    sync.WaitGroup

	submit SubmitFunc
	store  StatusStore

	// OnSubmitted runs after a successful submission and status flip.
	OnSubmitted func(p Payload)
	// OnStuck runs when submission fails and the booking stays confirmed.
	OnStuck func(p Payload, err error)
}

func New(submit SubmitFunc, store StatusStore) *Scheduler {
	return &Scheduler{
		tasks:  make(map[int64]*task),
		submit: submit,
		store:  store,
	}
}

// Register arms a task that fires at target. It refuses a booking that
// already has a live task and reports whether the task was created.
func (s *Scheduler) Register(bookingID int64, target time.Time, p Payload) bool {
	s.mu.Lock()
	if _, exists := s.tasks[bookingID]; exists {
		s.mu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.tasks[bookingID] = &task{state: stateWaiting, cancel: cancel}
	s.mu.Unlock()

	delay := time.Until(target)
	if delay < 0 {
		delay = 0
	}

	utils.LogEventf("scheduler", "register", "booking_id=%d fire_in=%s", bookingID, delay.Round(time.Second))

	s.wg.Add(1)
	go s.run(ctx, bookingID, delay, p)
	return true
}

// Cancel stops a waiting task. It returns false when the booking has no live
// task, including the case where the fire decision was already taken.
// Calling it repeatedly is harmless.
func (s *Scheduler) Cancel(bookingID int64) bool {
	s.mu.Lock()
	t, ok := s.tasks[bookingID]
	if !ok || t.state != stateWaiting {
		s.mu.Unlock()
		return false
	}
	t.state = stateCancelled
	delete(s.tasks, bookingID)
	s.mu.Unlock()

	t.cancel()
	utils.LogEventf("scheduler", "cancel", "booking_id=%d", bookingID)
	return true
}

// Len reports how many tasks are currently waiting.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown cancels every waiting task and waits for their goroutines, up to
// the context deadline. In-flight submissions are allowed to finish.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, t := range s.tasks {
		t.state = stateCancelled
		t.cancel()
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context, bookingID int64, delay time.Duration, p Payload) {
	defer s.wg.Done()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		if !s.beginFire(bookingID) {
			// cancellation won the race inside the final instant
			return
		}
		s.fire(p)
	case <-ctx.Done():
	}
}

// beginFire atomically moves a waiting task to fired and drops it from the
// registry. A false return means cancellation got there first.
func (s *Scheduler) beginFire(bookingID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[bookingID]
	if !ok || t.state != stateWaiting {
		return false
	}
	t.state = stateFired
	delete(s.tasks, bookingID)
	return true
}

// fire performs the single submission attempt. Failure is terminal for the
// task: no retry, the booking stays confirmed and an operator has to follow
// up. Retrying would risk a duplicate registration upstream.
func (s *Scheduler) fire(p Payload) {
	utils.LogEventf("scheduler", "fire", "booking_id=%d court=%q", p.BookingID, p.CourtName)

	if err := s.submit(p); err != nil {
		utils.LogEventf("scheduler", "submit_failed", "booking_id=%d stuck in confirmed, manual follow-up needed: %v", p.BookingID, err)
		if s.OnStuck != nil {
			s.OnStuck(p, err)
		}
		return
	}

	if err := s.store.UpdateStatus(p.BookingID, domain.StatusSubmitted); err != nil {
		utils.LogEventf("scheduler", "status_update_failed", "booking_id=%d: %v", p.BookingID, err)
	}
	utils.LogEventf("scheduler", "submitted", "booking_id=%d", p.BookingID)

	if s.OnSubmitted != nil {
		s.OnSubmitted(p)
	}
}
