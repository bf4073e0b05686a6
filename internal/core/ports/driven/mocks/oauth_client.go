package mocks

import (
	"context"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// MockOAuthClient is a mock implementation of OAuthClient for testing
type MockOAuthClient struct {
	TypeFn                  func() domain.ProviderType
	BuildAuthorizationURLFn func(state string) string
	ExchangeCodeFn          func(ctx context.Context, code string) (*domain.Credentials, error)
	RefreshCredentialsFn    func(ctx context.Context, refreshToken string) (*domain.Credentials, error)
}

// NewMockOAuthClient creates a new MockOAuthClient with sensible defaults
func NewMockOAuthClient() *MockOAuthClient {
	return &MockOAuthClient{}
}

func (m *MockOAuthClient) Type() domain.ProviderType {
	if m.TypeFn != nil {
		return m.TypeFn()
	}
	return domain.ProviderTypeHubSpot
}

func (m *MockOAuthClient) BuildAuthorizationURL(state string) string {
	if m.BuildAuthorizationURLFn != nil {
		return m.BuildAuthorizationURLFn(state)
	}
	return "https://example.com/oauth/authorize?state=" + state
}

func (m *MockOAuthClient) ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error) {
	if m.ExchangeCodeFn != nil {
		return m.ExchangeCodeFn(ctx, code)
	}
	return &domain.Credentials{
		Provider:    domain.ProviderTypeHubSpot,
		AccessToken: "mock-access-token",
	}, nil
}

func (m *MockOAuthClient) RefreshCredentials(ctx context.Context, refreshToken string) (*domain.Credentials, error) {
	if m.RefreshCredentialsFn != nil {
		return m.RefreshCredentialsFn(ctx, refreshToken)
	}
	return &domain.Credentials{
		Provider:    domain.ProviderTypeHubSpot,
		AccessToken: "mock-refreshed-token",
	}, nil
}
