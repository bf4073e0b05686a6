package driven

import (
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// StateClaims are the contents bound into a signed state token.
type StateClaims struct {
	// Nonce is the random single-use identifier; it keys the PendingAuth.
	Nonce string

	// UserID and OrgID identify the session that started the flow.
	UserID string
	OrgID  string

	// Provider is the CRM provider the flow targets.
	Provider domain.ProviderType
}

// StateSigner creates and verifies tamper-evident OAuth state tokens.
// This does NOT handle single-use enforcement - use CredentialStore for that.
type StateSigner interface {
	// Sign produces a compact signed token embedding the claims,
	// valid for ttl.
	Sign(claims StateClaims, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// Returns domain.ErrInvalidState for malformed, tampered, or expired
	// tokens.
	Verify(token string) (*StateClaims, error)
}
