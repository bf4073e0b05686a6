package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driving"
)

// Mock services for testing

type mockIntegrationService struct {
	beginAuthFn            func(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error)
	handleCallbackFn       func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error)
	fetchItemsFn           func(ctx context.Context, req driving.FetchItemsRequest) ([]domain.Item, error)
	getCredentialSummaryFn func(ctx context.Context, req driving.CredentialSummaryRequest) (*domain.CredentialSummary, error)
}

func (m *mockIntegrationService) BeginAuth(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error) {
	if m.beginAuthFn != nil {
		return m.beginAuthFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIntegrationService) HandleCallback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
	if m.handleCallbackFn != nil {
		return m.handleCallbackFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIntegrationService) FetchItems(ctx context.Context, req driving.FetchItemsRequest) ([]domain.Item, error) {
	if m.fetchItemsFn != nil {
		return m.fetchItemsFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIntegrationService) GetCredentialSummary(ctx context.Context, req driving.CredentialSummaryRequest) (*domain.CredentialSummary, error) {
	if m.getCredentialSummaryFn != nil {
		return m.getCredentialSummaryFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

// Test that mock implements the interface
func TestMockIntegrationServiceInterface(t *testing.T) {
	var _ driving.IntegrationService = (*mockIntegrationService)(nil)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func decodeDetail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp["detail"]
}

// Authorize handler tests

func TestHandleAuthorize_Success(t *testing.T) {
	var captured driving.BeginAuthRequest
	mock := &mockIntegrationService{
		beginAuthFn: func(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error) {
			captured = req
			return &driving.BeginAuthResponse{
				URL:       "https://app.hubspot.com/oauth/authorize?state=tok",
				ExpiresAt: time.Now().Add(10 * time.Minute),
			}, nil
		},
	}

	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/authorize?userId=u1&orgId=o1", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleAuthorize(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp AuthorizeResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.URL != "https://app.hubspot.com/oauth/authorize?state=tok" {
		t.Errorf("unexpected url %q", resp.URL)
	}

	if captured.Provider != domain.ProviderTypeHubSpot {
		t.Errorf("expected provider hubspot, got %s", captured.Provider)
	}
	if captured.UserID != "u1" || captured.OrgID != "o1" {
		t.Errorf("expected session u1/o1, got %s/%s", captured.UserID, captured.OrgID)
	}
}

func TestHandleAuthorize_MissingParams(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	req := httptest.NewRequest("GET", "/integrations/hubspot/authorize?userId=u1", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleAuthorize(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	if detail := decodeDetail(t, rr); !strings.Contains(detail, "userId and orgId") {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestHandleAuthorize_UnknownProvider(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	req := httptest.NewRequest("GET", "/integrations/salesforce/authorize?userId=u1&orgId=o1", nil)
	req.SetPathValue("provider", "salesforce")
	rr := httptest.NewRecorder()

	server.handleAuthorize(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleAuthorize_ProviderNotConfigured(t *testing.T) {
	mock := &mockIntegrationService{
		beginAuthFn: func(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error) {
			return nil, driving.ErrOAuthProviderNotFound
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/authorize?userId=u1&orgId=o1", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleAuthorize(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleAuthorize_InternalError(t *testing.T) {
	mock := &mockIntegrationService{
		beginAuthFn: func(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error) {
			return nil, errors.New("store unavailable")
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/authorize?userId=u1&orgId=o1", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleAuthorize(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	if detail := decodeDetail(t, rr); detail != "internal server error" {
		t.Errorf("internal detail leaked: %q", detail)
	}
}

// OAuth callback handler tests

func TestHandleOAuthCallback_JSONResponse(t *testing.T) {
	mock := &mockIntegrationService{
		handleCallbackFn: func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
			if req.Code != "abc" || req.State != "tok" {
				t.Errorf("unexpected callback request: code=%q state=%q", req.Code, req.State)
			}
			return &driving.CallbackResponse{
				Session: domain.Session{UserID: "u1", OrgID: "o1"},
				Credentials: &domain.CredentialSummary{
					Provider:        domain.ProviderTypeHubSpot,
					HasRefreshToken: true,
					ObtainedAt:      time.Now(),
				},
				Message: "Successfully connected to HubSpot",
			}, nil
		},
	}

	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/oauth2callback?code=abc&state=tok", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleOAuthCallback(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp driving.CallbackResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Successfully connected to HubSpot" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if resp.Session.UserID != "u1" || resp.Session.OrgID != "o1" {
		t.Errorf("unexpected session %+v", resp.Session)
	}
}

func TestHandleOAuthCallback_RedirectsToFrontend(t *testing.T) {
	mock := &mockIntegrationService{
		handleCallbackFn: func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
			return &driving.CallbackResponse{
				Session: domain.Session{UserID: "u1", OrgID: "o1"},
			}, nil
		},
	}

	server := &Server{
		integrationService: mock,
		frontendURL:        "https://app.example.com/integrations",
	}

	req := httptest.NewRequest("GET", "/integrations/hubspot/oauth2callback?code=abc&state=tok", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleOAuthCallback(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rr.Code)
	}

	location, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatalf("failed to parse location: %v", err)
	}
	if location.Host != "app.example.com" {
		t.Errorf("unexpected redirect host %q", location.Host)
	}
	query := location.Query()
	if query.Get("connected") != "hubspot" {
		t.Errorf("expected connected=hubspot, got %q", query.Get("connected"))
	}
	if query.Get("userId") != "u1" || query.Get("orgId") != "o1" {
		t.Errorf("unexpected session params in %q", location.RawQuery)
	}
}

func TestHandleOAuthCallback_InvalidState(t *testing.T) {
	mock := &mockIntegrationService{
		handleCallbackFn: func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
			return nil, driving.ErrOAuthInvalidState
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/oauth2callback?code=abc&state=bad", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleOAuthCallback(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
	if detail := decodeDetail(t, rr); !strings.Contains(detail, "invalid_state") {
		t.Errorf("unexpected detail %q", detail)
	}
}

func TestHandleOAuthCallback_ExchangeFailed(t *testing.T) {
	mock := &mockIntegrationService{
		handleCallbackFn: func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
			return nil, &driving.OAuthError{
				Code:        "exchange_failed",
				Description: "token exchange failed: status 400",
			}
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/oauth2callback?code=bad&state=tok", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleOAuthCallback(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleOAuthCallback_ProviderDenied(t *testing.T) {
	mock := &mockIntegrationService{
		handleCallbackFn: func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResponse, error) {
			if req.Error != "access_denied" {
				t.Errorf("expected provider error to pass through, got %q", req.Error)
			}
			return nil, &driving.OAuthError{Code: req.Error, Description: req.ErrorDescription}
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/oauth2callback?error=access_denied&error_description=The+user+denied+access", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleOAuthCallback(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleOAuthCallback_UnknownProvider(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	req := httptest.NewRequest("GET", "/integrations/salesforce/oauth2callback?code=abc&state=tok", nil)
	req.SetPathValue("provider", "salesforce")
	rr := httptest.NewRecorder()

	server.handleOAuthCallback(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

// Fetch items handler tests

func fetchItemsRequest(t *testing.T, credentials string) *http.Request {
	t.Helper()
	form := url.Values{}
	if credentials != "" {
		form.Set("credentials", credentials)
	}
	req := httptest.NewRequest("POST", "/integrations/hubspot", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("provider", "hubspot")
	return req
}

func TestHandleFetchItems_Success(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	mock := &mockIntegrationService{
		fetchItemsFn: func(ctx context.Context, req driving.FetchItemsRequest) ([]domain.Item, error) {
			if req.Session.UserID != "u1" || req.Session.OrgID != "o1" {
				t.Errorf("unexpected session %+v", req.Session)
			}
			return []domain.Item{
				{ID: "1", Name: "Jane Doe", Type: domain.ItemTypeContact, CreationTime: now, LastModifiedTime: now, URL: "https://app.hubspot.com/contacts/1"},
				{ID: "2", Name: "Acme Inc", Type: domain.ItemTypeCompany, CreationTime: now, LastModifiedTime: now},
			}, nil
		},
	}
	server := &Server{integrationService: mock}

	rr := httptest.NewRecorder()
	server.handleFetchItems(rr, fetchItemsRequest(t, `{"userId":"u1","orgId":"o1"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var items []domain.Item
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Jane Doe" || items[0].Type != domain.ItemTypeContact {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[1].Name != "Acme Inc" || items[1].Type != domain.ItemTypeCompany {
		t.Errorf("unexpected second item %+v", items[1])
	}
}

func TestHandleFetchItems_EmptyResult(t *testing.T) {
	mock := &mockIntegrationService{
		fetchItemsFn: func(ctx context.Context, req driving.FetchItemsRequest) ([]domain.Item, error) {
			return nil, nil
		},
	}
	server := &Server{integrationService: mock}

	rr := httptest.NewRecorder()
	server.handleFetchItems(rr, fetchItemsRequest(t, `{"userId":"u1","orgId":"o1"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if body := strings.TrimSpace(rr.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestHandleFetchItems_MissingCredentials(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	rr := httptest.NewRecorder()
	server.handleFetchItems(rr, fetchItemsRequest(t, ""))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleFetchItems_MalformedCredentials(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	rr := httptest.NewRecorder()
	server.handleFetchItems(rr, fetchItemsRequest(t, "not-json"))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleFetchItems_UnknownProvider(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	form := url.Values{"credentials": {`{"userId":"u1","orgId":"o1"}`}}
	req := httptest.NewRequest("POST", "/integrations/salesforce", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("provider", "salesforce")
	rr := httptest.NewRecorder()

	server.handleFetchItems(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleFetchItems_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no credentials", domain.ErrNoCredentials, http.StatusBadRequest},
		{"wrapped no credentials", fmt.Errorf("get credentials: %w", domain.ErrNoCredentials), http.StatusBadRequest},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"unauthorized", fmt.Errorf("fetch items: %w", domain.ErrUnauthorized), http.StatusUnauthorized},
		{"rate limited", fmt.Errorf("fetch items: %w", &domain.UpstreamError{Err: domain.ErrRateLimited, Status: 429}), http.StatusTooManyRequests},
		{"upstream timeout", fmt.Errorf("fetch items: %w", domain.ErrUpstreamTimeout), http.StatusGatewayTimeout},
		{"upstream failure", fmt.Errorf("fetch items: %w", &domain.UpstreamError{Err: domain.ErrUpstream, Status: 500, Body: "oops"}), http.StatusBadGateway},
		{"provider not found", domain.ErrProviderNotFound, http.StatusNotFound},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockIntegrationService{
				fetchItemsFn: func(ctx context.Context, req driving.FetchItemsRequest) ([]domain.Item, error) {
					return nil, tt.err
				},
			}
			server := &Server{integrationService: mock}

			rr := httptest.NewRecorder()
			server.handleFetchItems(rr, fetchItemsRequest(t, `{"userId":"u1","orgId":"o1"}`))

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if detail := decodeDetail(t, rr); detail == "" {
				t.Error("expected non-empty detail")
			}
		})
	}
}

// Credential summary handler tests

func TestHandleGetCredentials_Success(t *testing.T) {
	obtained := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	expires := obtained.Add(time.Hour)
	mock := &mockIntegrationService{
		getCredentialSummaryFn: func(ctx context.Context, req driving.CredentialSummaryRequest) (*domain.CredentialSummary, error) {
			return &domain.CredentialSummary{
				Provider:        domain.ProviderTypeHubSpot,
				HasRefreshToken: true,
				ExpiresAt:       &expires,
				ObtainedAt:      obtained,
			}, nil
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/credentials?userId=u1&orgId=o1", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleGetCredentials(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var summary domain.CredentialSummary
	if err := json.NewDecoder(rr.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if summary.Provider != domain.ProviderTypeHubSpot || !summary.HasRefreshToken {
		t.Errorf("unexpected summary %+v", summary)
	}

	// Tokens must never appear in the response.
	if body := rr.Body.String(); strings.Contains(body, "access_token") {
		t.Errorf("summary leaked token material: %s", body)
	}
}

func TestHandleGetCredentials_NotFound(t *testing.T) {
	mock := &mockIntegrationService{
		getCredentialSummaryFn: func(ctx context.Context, req driving.CredentialSummaryRequest) (*domain.CredentialSummary, error) {
			return nil, domain.ErrNotFound
		},
	}
	server := &Server{integrationService: mock}

	req := httptest.NewRequest("GET", "/integrations/hubspot/credentials?userId=u1&orgId=o1", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleGetCredentials(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleGetCredentials_MissingParams(t *testing.T) {
	server := &Server{integrationService: &mockIntegrationService{}}

	req := httptest.NewRequest("GET", "/integrations/hubspot/credentials", nil)
	req.SetPathValue("provider", "hubspot")
	rr := httptest.NewRecorder()

	server.handleGetCredentials(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

// Health handler tests

func TestHandleHealth_NoBackend(t *testing.T) {
	server := &Server{version: "test"}

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	server.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Version != "test" {
		t.Errorf("unexpected health response %+v", resp)
	}
}

func TestHandleHealth_BackendHealthy(t *testing.T) {
	server := &Server{version: "test", store: &mockPinger{}}

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	server.handleHealth(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestHandleHealth_BackendDown(t *testing.T) {
	server := &Server{version: "test", store: &mockPinger{err: errors.New("connection refused")}}

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	server.handleHealth(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("expected unhealthy status, got %q", resp.Status)
	}
}

// Routing tests through the full server

func TestServerRouting(t *testing.T) {
	mock := &mockIntegrationService{
		beginAuthFn: func(ctx context.Context, req driving.BeginAuthRequest) (*driving.BeginAuthResponse, error) {
			return &driving.BeginAuthResponse{URL: "https://example.com/auth"}, nil
		},
	}

	server := NewServer(DefaultConfig(), mock, nil)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"authorize route", "GET", "/integrations/hubspot/authorize?userId=u1&orgId=o1", http.StatusOK},
		{"health route", "GET", "/health", http.StatusOK},
		{"metrics route", "GET", "/metrics", http.StatusOK},
		{"unknown route", "GET", "/nope", http.StatusNotFound},
		{"unknown provider via mux", "GET", "/integrations/salesforce/authorize?userId=u1&orgId=o1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rr := httptest.NewRecorder()

			server.httpServer.Handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}
