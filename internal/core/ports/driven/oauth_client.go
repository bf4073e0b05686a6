package driven

import (
	"context"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// OAuthClient drives the authorization-code flow against one provider's
// authorization and token endpoints. Each provider is implemented
// independently; there is no shared multi-provider abstraction beyond
// this interface.
type OAuthClient interface {
	// Type returns the provider this client talks to.
	Type() domain.ProviderType

	// BuildAuthorizationURL constructs the provider redirect URL carrying
	// the given state token. Pure function: no network call, identical
	// inputs produce identical URLs.
	BuildAuthorizationURL(state string) string

	// ExchangeCode swaps an authorization code for tokens.
	// Returns domain.ErrTokenExchange (wrapped with the provider's error
	// payload) when the provider rejects the code; never retried.
	ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error)

	// RefreshCredentials swaps a refresh token for a fresh set of tokens.
	// Same error contract as ExchangeCode.
	RefreshCredentials(ctx context.Context, refreshToken string) (*domain.Credentials, error)
}
