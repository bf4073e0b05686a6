package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// DefaultStateTTL bounds how long an issued state token may be redeemed.
const DefaultStateTTL = 10 * time.Minute

// StateTokenService issues and redeems the single-use state tokens that
// protect the OAuth flow against CSRF and replay. A token is a signed
// claim set whose nonce keys a PendingAuth record in the store; redeeming
// consumes the record, so the same token can never complete two flows.
type StateTokenService struct {
	store  driven.CredentialStore
	signer driven.StateSigner
	ttl    time.Duration
}

// StateTokenServiceConfig holds dependencies for StateTokenService.
type StateTokenServiceConfig struct {
	// Store persists pending authorizations keyed by nonce.
	Store driven.CredentialStore

	// Signer signs and verifies state tokens.
	Signer driven.StateSigner

	// TTL is how long issued tokens stay redeemable.
	// Zero means DefaultStateTTL.
	TTL time.Duration
}

// NewStateTokenService creates a new state token service.
func NewStateTokenService(cfg StateTokenServiceConfig) *StateTokenService {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &StateTokenService{
		store:  cfg.Store,
		signer: cfg.Signer,
		ttl:    ttl,
	}
}

// Issue creates a pending authorization for the session and returns the
// signed state token to embed in the provider authorization URL.
func (s *StateTokenService) Issue(ctx context.Context, session domain.Session, provider domain.ProviderType) (string, time.Time, error) {
	// 64 hex characters: 256 bits of entropy.
	nonce, err := generateRandomString(64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate nonce: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	pending := &domain.PendingAuth{
		Nonce:     nonce,
		UserID:    session.UserID,
		OrgID:     session.OrgID,
		Provider:  provider,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := s.store.SavePendingAuth(ctx, pending); err != nil {
		return "", time.Time{}, fmt.Errorf("save pending auth: %w", err)
	}

	token, err := s.signer.Sign(driven.StateClaims{
		Nonce:    nonce,
		UserID:   session.UserID,
		OrgID:    session.OrgID,
		Provider: provider,
	}, s.ttl)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign state token: %w", err)
	}

	return token, expiresAt, nil
}

// Consume verifies a state token and redeems its pending authorization.
// Redemption is single-use: a second Consume with the same token fails
// with domain.ErrInvalidState, also under concurrent double-submit.
func (s *StateTokenService) Consume(ctx context.Context, token string) (*domain.PendingAuth, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}

	pending, err := s.store.ConsumePendingAuth(ctx, claims.Nonce)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidState
		}
		return nil, fmt.Errorf("consume pending auth: %w", err)
	}

	// The stored record is authoritative; the signed claims must agree
	// with it or the token was issued for a different flow.
	if pending.UserID != claims.UserID || pending.OrgID != claims.OrgID || pending.Provider != claims.Provider {
		return nil, domain.ErrInvalidState
	}
	if pending.IsExpired() {
		return nil, domain.ErrInvalidState
	}

	return pending, nil
}

// generateRandomString generates a cryptographically secure random string.
func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes)[:length], nil
}
