package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bhataasim1/integrations-technical-assessment/internal/adapters/driven/crypto"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

const (
	// Key prefixes for Redis
	pendingAuthPrefix = "pending_auth:"
	credentialsPrefix = "credentials:"
)

// CredentialStore implements driven.CredentialStore using Redis.
// Entries expire via Redis TTLs; the credential payload is encrypted at
// rest. The single-use pending-auth consume maps onto GETDEL, which is
// atomic server-side.
type CredentialStore struct {
	client    *redis.Client
	encryptor *crypto.SecretEncryptor
}

// NewCredentialStore creates a new Redis-backed CredentialStore.
func NewCredentialStore(client *redis.Client, encryptor *crypto.SecretEncryptor) *CredentialStore {
	return &CredentialStore{client: client, encryptor: encryptor}
}

// storedCredentials is the wire form of domain.Credentials inside the
// encrypted blob. The domain type never serializes its tokens, so the
// store keeps its own shape.
type storedCredentials struct {
	Provider     string     `json:"provider"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ObtainedAt   time.Time  `json:"obtained_at"`
}

// SavePendingAuth stores a pending authorization with a TTL derived from
// its expiry.
func (s *CredentialStore) SavePendingAuth(ctx context.Context, auth *domain.PendingAuth) error {
	ttl := time.Until(auth.ExpiresAt)
	if ttl <= 0 {
		// Already expired, don't save
		return nil
	}

	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal pending auth: %w", err)
	}

	if err := s.client.Set(ctx, pendingAuthPrefix+auth.Nonce, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pending auth: %w", err)
	}

	return nil
}

// ConsumePendingAuth atomically removes and returns a pending
// authorization. GETDEL resolves racing duplicate submits so exactly one
// caller gets the entry.
func (s *CredentialStore) ConsumePendingAuth(ctx context.Context, nonce string) (*domain.PendingAuth, error) {
	data, err := s.client.GetDel(ctx, pendingAuthPrefix+nonce).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume pending auth: %w", err)
	}

	var auth domain.PendingAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending auth: %w", err)
	}

	// Double-check expiration; the TTL usually handles this.
	if auth.IsExpired() {
		return nil, domain.ErrNotFound
	}

	return &auth, nil
}

// SaveCredentials stores encrypted credentials for a session with a TTL.
func (s *CredentialStore) SaveCredentials(ctx context.Context, session domain.Session, creds *domain.Credentials, ttl time.Duration) error {
	if ttl <= 0 {
		// Nothing to keep
		return nil
	}

	blob, err := s.encryptor.Encrypt(storedCredentials{
		Provider:     string(creds.Provider),
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		ExpiresAt:    creds.ExpiresAt,
		ObtainedAt:   creds.ObtainedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := s.client.Set(ctx, credentialsPrefix+session.Key(), blob, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// GetCredentials returns the session's stored credentials, or
// domain.ErrNotFound when absent or past their TTL.
func (s *CredentialStore) GetCredentials(ctx context.Context, session domain.Session) (*domain.Credentials, error) {
	blob, err := s.client.Get(ctx, credentialsPrefix+session.Key()).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}

	var stored storedCredentials
	if err := s.encryptor.Decrypt(blob, &stored); err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	return &domain.Credentials{
		Provider:     domain.ProviderType(stored.Provider),
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		ExpiresAt:    stored.ExpiresAt,
		ObtainedAt:   stored.ObtainedAt,
	}, nil
}

// DeleteCredentials removes the session's stored credentials.
// Deleting absent credentials is not an error.
func (s *CredentialStore) DeleteCredentials(ctx context.Context, session domain.Session) error {
	if err := s.client.Del(ctx, credentialsPrefix+session.Key()).Err(); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

// Cleanup is a no-op: Redis evicts expired keys itself.
func (s *CredentialStore) Cleanup(ctx context.Context) error {
	return nil
}

// Ping checks Redis connectivity
func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
