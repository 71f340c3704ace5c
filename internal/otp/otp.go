// Package otp holds the process-wide one-time-passcode store used by the
// username/password recovery flows. Codes are random six-digit strings
// with a TTL, deleted on first successful verification. The store is
// in-process state: a multi-instance deployment must swap it for a shared
// backend.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// Purposes a code can be issued for. Verification requires the purpose to
// match so a username-recovery code cannot reset a password.
const (
	PurposeForgotUsername = "forgot_username"
	PurposeForgotPassword = "forgot_password"
)

// DefaultExpiry is how long a code stays valid.
const DefaultExpiry = 10 * time.Minute

type entry struct {
	code      string
	userID    string
	purpose   string
	expiresAt time.Time
}

// Store is a mutex-guarded in-memory OTP store keyed by email.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	expiry  time.Duration
	now     func() time.Time
}

// NewStore creates a store with the given code lifetime.
func NewStore(expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		entries: make(map[string]entry),
		expiry:  expiry,
		now:     time.Now,
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue generates and stores a code for the email, replacing any code
// already pending for it.
func (s *Store) Issue(email, userID, purpose string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry{
		code:      code,
		userID:    userID,
		purpose:   purpose,
		expiresAt: s.now().Add(s.expiry),
	}
	return code, nil
}

// Verify checks a code for the email and purpose. On success the code is
// consumed (single use) and the stored user id is returned. Expired codes
// are removed on sight.
func (s *Store) Verify(email, code, purpose string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok {
		return "", false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, email)
		return "", false
	}
	if e.code != code || e.purpose != purpose {
		return "", false
	}

	delete(s.entries, email)
	return e.userID, true
}

// Delete drops any pending code for the email.
func (s *Store) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// CleanupExpired removes every expired code and reports how many were
// dropped.
func (s *Store) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for email, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, email)
			removed++
		}
	}
	return removed
}
