package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCredentialsIsExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		expiry   *time.Time
		expected bool
	}{
		{
			name:     "nil expiry",
			expiry:   nil,
			expected: false,
		},
		{
			name: "expired",
			expiry: func() *time.Time {
				t := now.Add(-1 * time.Hour)
				return &t
			}(),
			expected: true,
		},
		{
			name: "not expired",
			expiry: func() *time.Time {
				t := now.Add(1 * time.Hour)
				return &t
			}(),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := &Credentials{ExpiresAt: tt.expiry}
			if creds.IsExpired() != tt.expected {
				t.Errorf("expected IsExpired() = %v", tt.expected)
			}
		})
	}
}

func TestCredentialsToSummary(t *testing.T) {
	now := time.Now()
	expiry := now.Add(30 * time.Minute)

	creds := &Credentials{
		Provider:     ProviderTypeHubSpot,
		AccessToken:  "secret-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    &expiry,
		ObtainedAt:   now,
	}

	summary := creds.ToSummary()

	if summary.Provider != ProviderTypeHubSpot {
		t.Errorf("expected provider hubspot, got %s", summary.Provider)
	}
	if !summary.HasRefreshToken {
		t.Error("expected HasRefreshToken to be true")
	}
	if summary.ExpiresAt == nil {
		t.Error("expected ExpiresAt to be set")
	}

	noRefresh := &Credentials{Provider: ProviderTypeHubSpot, AccessToken: "tok"}
	if noRefresh.ToSummary().HasRefreshToken {
		t.Error("expected HasRefreshToken to be false without a refresh token")
	}
}

func TestCredentialsNeverSerializeTokens(t *testing.T) {
	creds := &Credentials{
		Provider:     ProviderTypeHubSpot,
		AccessToken:  "super-secret-access",
		RefreshToken: "super-secret-refresh",
		ObtainedAt:   time.Now(),
	}

	data, err := json.Marshal(creds)
	if err != nil {
		t.Fatalf("marshal credentials: %v", err)
	}

	if strings.Contains(string(data), "super-secret") {
		t.Errorf("tokens leaked into JSON: %s", data)
	}
}
