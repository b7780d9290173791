// Package otp holds pending one-time passwords for the two-step admin
// login. A pending code is single-use: it is deleted on successful
// verification, and a new request for the same email overwrites it.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// Store abstracts where pending codes live. The memory store is only
// valid for a single server process; load-balanced deployments must use
// the redis-backed store or step-2 verification lands on an instance
// that never saw the code.
type Store interface {
	// Put records code as the pending OTP for email, replacing any
	// previous pending code. ttl bounds how long the code stays valid.
	Put(ctx context.Context, email, code string, ttl time.Duration) error
	// Get returns the pending code for email, ok=false when none exists
	// or it has lapsed.
	Get(ctx context.Context, email string) (code string, ok bool, err error)
	// Delete removes the pending code for email.
	Delete(ctx context.Context, email string) error
}

// GenerateCode returns a uniformly random numeric code of the given
// number of digits, zero-padded.
func GenerateCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process store. State does not
// survive a restart and is not shared across instances.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pending: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[email] = entry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[email]
	if !ok {
		return "", false, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.pending, email)
		return "", false, nil
	}
	return e.code, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, email)
	return nil
}
