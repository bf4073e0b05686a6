package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements driven.CredentialStore with in-process maps.
// It is the zero-configuration backend for local runs and tests. Entries
// expire lazily on read; Cleanup sweeps them so long-lived processes do
// not accumulate dead entries between reads.
type CredentialStore struct {
	mu          sync.Mutex
	pending     map[string]domain.PendingAuth
	credentials map[string]credentialEntry

	// now is swapped in tests to drive TTL expiry.
	now func() time.Time
}

type credentialEntry struct {
	creds     domain.Credentials
	expiresAt time.Time
}

// NewCredentialStore creates a new in-memory CredentialStore.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		pending:     make(map[string]domain.PendingAuth),
		credentials: make(map[string]credentialEntry),
		now:         time.Now,
	}
}

// SavePendingAuth stores a pending authorization keyed by nonce.
func (s *CredentialStore) SavePendingAuth(ctx context.Context, auth *domain.PendingAuth) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[auth.Nonce] = *auth
	return nil
}

// ConsumePendingAuth atomically removes and returns a pending
// authorization. Absent or expired entries fail with domain.ErrNotFound;
// holding one lock across lookup and delete makes the consume single-use
// under concurrent double-submit.
func (s *CredentialStore) ConsumePendingAuth(ctx context.Context, nonce string) (*domain.PendingAuth, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth, ok := s.pending[nonce]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.pending, nonce)

	if s.now().After(auth.ExpiresAt) {
		return nil, domain.ErrNotFound
	}
	return &auth, nil
}

// SaveCredentials stores credentials for a session with a TTL.
func (s *CredentialStore) SaveCredentials(ctx context.Context, session domain.Session, creds *domain.Credentials, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials[session.Key()] = credentialEntry{
		creds:     *creds,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// GetCredentials returns the session's stored credentials, or
// domain.ErrNotFound when absent or past their TTL.
func (s *CredentialStore) GetCredentials(ctx context.Context, session domain.Session) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.credentials[session.Key()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.credentials, session.Key())
		return nil, domain.ErrNotFound
	}

	creds := entry.creds
	return &creds, nil
}

// DeleteCredentials removes the session's stored credentials.
// Deleting absent credentials is not an error.
func (s *CredentialStore) DeleteCredentials(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.credentials, session.Key())
	return nil
}

// Cleanup removes every expired entry.
func (s *CredentialStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for nonce, auth := range s.pending {
		if now.After(auth.ExpiresAt) {
			delete(s.pending, nonce)
		}
	}
	for key, entry := range s.credentials {
		if now.After(entry.expiresAt) {
			delete(s.credentials, key)
		}
	}
	return nil
}
