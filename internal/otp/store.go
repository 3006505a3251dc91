// Package otp keeps in-memory one-time codes for booking confirmation and
// cancellation. Codes are ephemeral: nothing here touches the database.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"courtbook/internal/domain"
)

const (
	// ValiditySeconds is how long an issued code stays verifiable.
	ValiditySeconds = 300
	// RateLimitSeconds is the cool-down between issue requests per booking.
	RateLimitSeconds = 60

	codeLength = 6
)

type challenge struct {
	code      string
	expiresAt time.Time
}

// Store maps booking ids to their live challenge plus the issue rate
// limiter. One challenge per booking; a new issue overwrites the old one.
type Store struct {
	mu         sync.Mutex
	challenges map[int64]challenge
	lastIssue  map[int64]time.Time

	validity time.Duration
	cooldown time.Duration

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		challenges: make(map[int64]challenge),
		lastIssue:  make(map[int64]time.Time),
		validity:   ValiditySeconds * time.Second,
		cooldown:   RateLimitSeconds * time.Second,
		Now:        time.Now,
	}
}

// CheckRateLimit gates explicit code-resend requests. It stamps the
// cool-down window on success and returns a domain.RateLimitError inside
// it; a rejected request does not restart the window. Generate does not
// consult this limiter, so issuing a code at booking creation never blocks
// an immediate resend.
func (s *Store) CheckRateLimit(bookingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	if last, ok := s.lastIssue[bookingID]; ok {
		if waited := now.Sub(last); waited < s.cooldown {
			retry := int((s.cooldown - waited).Seconds())
			if retry < 1 {
				retry = 1
			}
			return domain.RateLimitError{RetryAfter: retry}
		}
	}
	s.lastIssue[bookingID] = now
	return nil
}

// Generate issues a fresh 6-digit code for the booking, overwriting any
// previous challenge.
func (s *Store) Generate(bookingID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := generateCode()
	if err != nil {
		return "", domain.InternalError{Msg: "failed to generate code", Err: err}
	}
	s.challenges[bookingID] = challenge{code: code, expiresAt: s.Now().Add(s.validity)}
	return code, nil
}

// Verify checks a code against the booking's live challenge. The challenge
// is consumed on a match and evicted on detected expiry; a wrong code leaves
// it in place until it expires.
func (s *Store) Verify(bookingID int64, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.challenges[bookingID]
	if !ok {
		return false
	}
	if s.Now().After(ch.expiresAt) {
		delete(s.challenges, bookingID)
		return false
	}
	if ch.code == code {
		delete(s.challenges, bookingID)
		return true
	}
	return false
}

// Drop discards any live challenge and rate-limit record for the booking.
func (s *Store) Drop(bookingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.challenges, bookingID)
	delete(s.lastIssue, bookingID)
}

// PurgeExpired evicts expired challenges and stale rate-limit records,
// returning how many challenges were dropped.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	purged := 0
	for id, ch := range s.challenges {
		if now.After(ch.expiresAt) {
			delete(s.challenges, id)
			purged++
		}
	}
	for id, last := range s.lastIssue {
		if now.Sub(last) >= s.cooldown {
			delete(s.lastIssue, id)
		}
	}
	return purged
}

// Len reports how many live challenges are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.challenges)
}

func generateCode() (string, error) {
	code := ""
	for i := 0; i < codeLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += fmt.Sprintf("%d", num.Int64())
	}
	return code, nil
}
