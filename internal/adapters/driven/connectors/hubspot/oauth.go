package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
	"github.com/bhataasim1/integrations-technical-assessment/internal/observability"
)

// Ensure OAuthClient implements the interface.
var _ driven.OAuthClient = (*OAuthClient)(nil)

// OAuthClient handles the HubSpot authorization-code flow.
type OAuthClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewOAuthClient creates a new HubSpot OAuth client.
func NewOAuthClient(cfg Config) *OAuthClient {
	cfg = cfg.withDefaults()
	return &OAuthClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Type returns the provider this client talks to.
func (c *OAuthClient) Type() domain.ProviderType {
	return domain.ProviderTypeHubSpot
}

// BuildAuthorizationURL constructs the HubSpot authorization URL carrying
// the given state. Pure function; url.Values.Encode sorts parameters, so
// identical inputs produce identical URLs.
func (c *OAuthClient) BuildAuthorizationURL(state string) string {
	params := url.Values{
		"client_id":     {c.cfg.ClientID},
		"redirect_uri":  {c.cfg.RedirectURL},
		"scope":         {strings.Join(c.cfg.Scopes, " ")},
		"state":         {state},
		"response_type": {"code"},
	}
	return c.cfg.AuthURL + "?" + params.Encode()
}

// ExchangeCode exchanges an authorization code for tokens.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (*domain.Credentials, error) {
	params := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"redirect_uri":  {c.cfg.RedirectURL},
		"code":          {code},
	}
	return c.requestToken(ctx, params)
}

// RefreshCredentials exchanges a refresh token for a fresh set of tokens.
func (c *OAuthClient) RefreshCredentials(ctx context.Context, refreshToken string) (*domain.Credentials, error) {
	params := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"refresh_token": {refreshToken},
	}
	return c.requestToken(ctx, params)
}

// requestToken posts a grant to the token endpoint and maps the response
// to credentials. Provider rejections surface as domain.ErrTokenExchange
// wrapped with the status and response excerpt; never retried.
func (c *OAuthClient) requestToken(ctx context.Context, params url.Values) (*domain.Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("request token: %w", domain.ErrUpstreamTimeout)
		}
		return nil, fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()
	observability.RecordProviderRequest(string(domain.ProviderTypeHubSpot), "token", resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrTokenExchange, resp.StatusCode, excerpt(body))
	}

	var tokenResp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}

	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: response contained no access token", domain.ErrTokenExchange)
	}

	creds := &domain.Credentials{
		Provider:     domain.ProviderTypeHubSpot,
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ObtainedAt:   time.Now(),
	}
	if tokenResp.ExpiresIn > 0 {
		expiresAt := creds.ObtainedAt.Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
		creds.ExpiresAt = &expiresAt
	}

	return creds, nil
}
