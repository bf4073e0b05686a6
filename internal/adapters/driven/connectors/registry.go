package connectors

import (
	"sync"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
	"github.com/bhataasim1/integrations-technical-assessment/internal/core/ports/driven"
)

// Registry holds the wired connector implementations per provider.
// Providers register an OAuth client and an item source as a pair; the
// integration service consumes them as maps.
type Registry struct {
	mu           sync.RWMutex
	oauthClients map[domain.ProviderType]driven.OAuthClient
	itemSources  map[domain.ProviderType]driven.ItemSource
}

// NewRegistry creates an empty connector registry.
func NewRegistry() *Registry {
	return &Registry{
		oauthClients: make(map[domain.ProviderType]driven.OAuthClient),
		itemSources:  make(map[domain.ProviderType]driven.ItemSource),
	}
}

// Register wires a provider's OAuth client and item source, keyed by the
// client's provider type. Registering the same provider twice replaces
// the previous pair.
func (r *Registry) Register(client driven.OAuthClient, source driven.ItemSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.oauthClients[client.Type()] = client
	r.itemSources[client.Type()] = source
}

// OAuthClients returns a copy of the registered OAuth clients.
func (r *Registry) OAuthClients() map[domain.ProviderType]driven.OAuthClient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make(map[domain.ProviderType]driven.OAuthClient, len(r.oauthClients))
	for providerType, client := range r.oauthClients {
		clients[providerType] = client
	}
	return clients
}

// ItemSources returns a copy of the registered item sources.
func (r *Registry) ItemSources() map[domain.ProviderType]driven.ItemSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sources := make(map[domain.ProviderType]driven.ItemSource, len(r.itemSources))
	for providerType, source := range r.itemSources {
		sources[providerType] = source
	}
	return sources
}

// SupportedTypes returns all registered provider types.
func (r *Registry) SupportedTypes() []domain.ProviderType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]domain.ProviderType, 0, len(r.oauthClients))
	for t := range r.oauthClients {
		types = append(types, t)
	}
	return types
}
