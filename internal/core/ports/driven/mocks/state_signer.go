package mocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// MockStateSigner is a mock implementation of StateSigner for testing.
// Tokens are opaque handles into an in-memory map rather than real JWTs.
type MockStateSigner struct {
	mu      sync.Mutex
	issued  map[string]issuedState
	counter int

	// SignErr, when set, is returned by Sign.
	SignErr error
}

type issuedState struct {
	claims    driven.StateClaims
	expiresAt time.Time
}

// NewMockStateSigner creates a new MockStateSigner
func NewMockStateSigner() *MockStateSigner {
	return &MockStateSigner{
		issued: make(map[string]issuedState),
	}
}

func (m *MockStateSigner) Sign(claims driven.StateClaims, ttl time.Duration) (string, error) {
	if m.SignErr != nil {
		return "", m.SignErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	token := fmt.Sprintf("mock-state-%d", m.counter)
	m.issued[token] = issuedState{
		claims:    claims,
		expiresAt: time.Now().Add(ttl),
	}
	return token, nil
}

func (m *MockStateSigner) Verify(token string) (*driven.StateClaims, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.issued[token]
	if !ok {
		return nil, domain.ErrInvalidState
	}
	if time.Now().After(state.expiresAt) {
		return nil, domain.ErrInvalidState
	}
	claims := state.claims
	return &claims, nil
}

// Helper methods for testing

func (m *MockStateSigner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued = make(map[string]issuedState)
	m.counter = 0
}

// Expire marks an issued token as expired without waiting out its TTL.
func (m *MockStateSigner) Expire(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.issued[token]; ok {
		state.expiresAt = time.Now().Add(-time.Minute)
		m.issued[token] = state
	}
}
