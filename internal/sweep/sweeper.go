// Package sweep runs periodic housekeeping: dropping old booking rows and
// expired one-time codes.
package sweep

import (
	"sync"
	"time"

	"courtbook/internal/utils"
)

const (
	defaultInterval = 24 * time.Hour
	retention       = 5 * 24 * time.Hour
)

// BookingPurger removes booking rows created before a cutoff.
type BookingPurger interface {
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// CodePurger evicts expired one-time codes.
type CodePurger interface {
	PurgeExpired() int
}

// Sweeper owns the cleanup loop. It runs one pass at startup and one per
// interval after that, until Stop is called.
type Sweeper struct {
	bookings BookingPurger
	codes    CodePurger

	interval time.Duration

	// Now is the clock, replaceable in tests.
	Now func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func New(bookings BookingPurger, codes CodePurger) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		codes:    codes,
		interval: defaultInterval,
		Now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the loop in the background. Calling it twice is a no-op.
func (s *Sweeper) Start() {
	s.startOnce.Do(func() {
		go s.loop()
	})
}

// Stop halts the loop and waits for an in-flight pass to finish.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Sweeper) loop() {
	defer close(s.done)

	s.runOnce()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stop:
			return
		}
	}
}

func (s *Sweeper) runOnce() {
	cutoff := s.Now().Add(-retention)

	deleted, err := s.bookings.DeleteOlderThan(cutoff)
	if err != nil {
		utils.LogEventf("sweep", "bookings", "cleanup failed: %v", err)
	} else if deleted > 0 {
		utils.LogEventf("sweep", "bookings", "removed %d bookings older than %s", deleted, cutoff.Format("2006-01-02"))
	}

	if purged := s.codes.PurgeExpired(); purged > 0 {
		utils.LogEventf("sweep", "codes", "evicted %d expired codes", purged)
	}
}
