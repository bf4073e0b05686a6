package driven

import (
	"context"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// CredentialStore is the time-boxed mapping backing the OAuth flow: it
// holds in-flight flows (PendingAuth, keyed by state nonce) and completed
// flows (Credentials, keyed by session). Entries older than their TTL are
// treated as absent on read. It is the only shared mutable resource in
// the system.
type CredentialStore interface {
	// SavePendingAuth stores a new in-flight flow.
	// The entry expires at auth.ExpiresAt (typically 10 minutes out).
	SavePendingAuth(ctx context.Context, auth *domain.PendingAuth) error

	// ConsumePendingAuth atomically retrieves and deletes a flow by nonce.
	// This ensures single-use semantics: of two concurrent consumes for
	// the same nonce exactly one succeeds.
	// Returns domain.ErrNotFound if the nonce is absent or expired.
	ConsumePendingAuth(ctx context.Context, nonce string) (*domain.PendingAuth, error)

	// SaveCredentials stores exchanged tokens for a session with the
	// given TTL, replacing any previous entry.
	SaveCredentials(ctx context.Context, session domain.Session, creds *domain.Credentials, ttl time.Duration) error

	// GetCredentials retrieves tokens for a session.
	// Returns domain.ErrNotFound if absent or expired.
	GetCredentials(ctx context.Context, session domain.Session) (*domain.Credentials, error)

	// DeleteCredentials removes tokens for a session.
	// Deleting an absent entry is not an error.
	DeleteCredentials(ctx context.Context, session domain.Session) error

	// Cleanup removes expired entries.
	// Should be called periodically; backends with native expiry may
	// treat this as a no-op.
	Cleanup(ctx context.Context) error
}
