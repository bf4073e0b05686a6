package domain

import (
	"errors"
	"testing"
)

func TestParseProviderType(t *testing.T) {
	pt, err := ParseProviderType("hubspot")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pt != ProviderTypeHubSpot {
		t.Errorf("expected hubspot, got %s", pt)
	}

	_, err = ParseProviderType("salesforce")
	if !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound, got %v", err)
	}

	_, err = ParseProviderType("")
	if !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound for empty input, got %v", err)
	}
}

func TestProviderIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
		expected bool
	}{
		{
			name: "fully configured",
			provider: Provider{
				ClientID:     "id",
				ClientSecret: "secret",
				RedirectURL:  "http://localhost/callback",
			},
			expected: true,
		},
		{
			name:     "missing everything",
			provider: Provider{},
			expected: false,
		},
		{
			name: "missing secret",
			provider: Provider{
				ClientID:    "id",
				RedirectURL: "http://localhost/callback",
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.provider.IsConfigured() != tt.expected {
				t.Errorf("expected IsConfigured() = %v", tt.expected)
			}
		})
	}
}
