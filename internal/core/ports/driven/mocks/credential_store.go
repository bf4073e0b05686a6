package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// MockCredentialStore is a mock implementation of CredentialStore for testing
type MockCredentialStore struct {
	mu          sync.Mutex
	pending     map[string]*domain.PendingAuth
	credentials map[string]credentialEntry

	// SaveCredentialsErr, when set, is returned by SaveCredentials.
	SaveCredentialsErr error
}

type credentialEntry struct {
	creds     domain.Credentials
	expiresAt time.Time
}

// NewMockCredentialStore creates a new MockCredentialStore
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{
		pending:     make(map[string]*domain.PendingAuth),
		credentials: make(map[string]credentialEntry),
	}
}

func (m *MockCredentialStore) SavePendingAuth(ctx context.Context, auth *domain.PendingAuth) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *auth
	m.pending[auth.Nonce] = &copied
	return nil
}

func (m *MockCredentialStore) ConsumePendingAuth(ctx context.Context, nonce string) (*domain.PendingAuth, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	auth, ok := m.pending[nonce]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(m.pending, nonce)
	if auth.IsExpired() {
		return nil, domain.ErrNotFound
	}
	copied := *auth
	return &copied, nil
}

func (m *MockCredentialStore) SaveCredentials(ctx context.Context, session domain.Session, creds *domain.Credentials, ttl time.Duration) error {
	if m.SaveCredentialsErr != nil {
		return m.SaveCredentialsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials[session.Key()] = credentialEntry{
		creds:     *creds,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (m *MockCredentialStore) GetCredentials(ctx context.Context, session domain.Session) (*domain.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.credentials[session.Key()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(m.credentials, session.Key())
		return nil, domain.ErrNotFound
	}
	copied := entry.creds
	return &copied, nil
}

func (m *MockCredentialStore) DeleteCredentials(ctx context.Context, session domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.credentials, session.Key())
	return nil
}

func (m *MockCredentialStore) Cleanup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for nonce, auth := range m.pending {
		if now.After(auth.ExpiresAt) {
			delete(m.pending, nonce)
		}
	}
	for key, entry := range m.credentials {
		if now.After(entry.expiresAt) {
			delete(m.credentials, key)
		}
	}
	return nil
}

// Helper methods for testing

func (m *MockCredentialStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = make(map[string]*domain.PendingAuth)
	m.credentials = make(map[string]credentialEntry)
}

func (m *MockCredentialStore) CountPending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *MockCredentialStore) CountCredentials() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.credentials)
}
