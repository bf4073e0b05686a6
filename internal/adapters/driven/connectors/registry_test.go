package connectors

import (
	"testing"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven/mocks"
)

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	client := &mocks.MockOAuthClient{}
	source := &mocks.MockItemSource{}
	registry.Register(client, source)

	clients := registry.OAuthClients()
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[domain.ProviderTypeHubSpot] != client {
		t.Error("expected registered client under hubspot")
	}

	sources := registry.ItemSources()
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[domain.ProviderTypeHubSpot] != source {
		t.Error("expected registered source under hubspot")
	}
}

func TestRegistry_SupportedTypes(t *testing.T) {
	registry := NewRegistry()
	if got := registry.SupportedTypes(); len(got) != 0 {
		t.Errorf("expected no types for empty registry, got %v", got)
	}

	registry.Register(&mocks.MockOAuthClient{}, &mocks.MockItemSource{})

	types := registry.SupportedTypes()
	if len(types) != 1 || types[0] != domain.ProviderTypeHubSpot {
		t.Errorf("expected [hubspot], got %v", types)
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mocks.MockOAuthClient{}, &mocks.MockItemSource{})

	clients := registry.OAuthClients()
	delete(clients, domain.ProviderTypeHubSpot)

	if len(registry.OAuthClients()) != 1 {
		t.Error("expected registry to be unaffected by caller mutation")
	}
}
