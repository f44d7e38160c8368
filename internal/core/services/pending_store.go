package services

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
)

// CodeLength is the number of digits in a one-time code
const CodeLength = 4

// PendingStore keeps registrations waiting for their one-time code,
// keyed by the caller's registration session key. Entries live in memory
// only: a restart means the applicant starts over.
type PendingStore struct {
	mu    sync.Mutex
	store map[string]*domain.PendingRegistration
	now   func() time.Time
}

// NewPendingStore creates an empty store
func NewPendingStore() *PendingStore {
	return &PendingStore{
		store: make(map[string]*domain.PendingRegistration),
		now:   time.Now,
	}
}

// WithClock replaces the time source
func (s *PendingStore) WithClock(now func() time.Time) *PendingStore {
	s.now = now
	return s
}

// Now returns the store's current time
func (s *PendingStore) Now() time.Time {
	return s.now()
}

// Put stores p under key, replacing any earlier registration for that key
func (s *PendingStore) Put(key string, p domain.PendingRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store[key] = &p
}

// Get returns a copy of the live entry for key. Expired entries are
// removed and reported with ErrCodeExpired.
func (s *PendingStore) Get(key string) (domain.PendingRegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[key]
	if !ok {
		return domain.PendingRegistration{}, domain.ErrNoPendingRegistration
	}
	if s.expired(entry) {
		delete(s.store, key)
		return domain.PendingRegistration{}, domain.ErrCodeExpired
	}
	return *entry, nil
}

// RecordFailure counts a wrong code. Once maxAttempts is reached (0 means
// unlimited) the entry is dropped and ErrTooManyAttempts is returned.
func (s *PendingStore) RecordFailure(key string, maxAttempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.store[key]
	if !ok {
		return domain.ErrNoPendingRegistration
	}
	entry.Attempts++
	if maxAttempts > 0 && entry.Attempts >= maxAttempts {
		delete(s.store, key)
		return domain.ErrTooManyAttempts
	}
	return nil
}

// Delete removes the entry for key
func (s *PendingStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, key)
}

// Len returns the number of stored entries, expired ones included
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store)
}

// Sweep removes expired entries and returns how many were dropped
func (s *PendingStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.store {
		if s.expired(entry) {
			delete(s.store, key)
			removed++
		}
	}
	return removed
}

func (s *PendingStore) expired(entry *domain.PendingRegistration) bool {
	return !entry.ExpiresAt.IsZero() && s.now().After(entry.ExpiresAt)
}

// generateSecureCode returns a uniformly random code of length digits
// with no leading zero (1000-9999 for four digits)
func generateSecureCode(length int) (string, error) {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, low).String(), nil
}
