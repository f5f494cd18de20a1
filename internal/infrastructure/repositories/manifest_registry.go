package repositories

import (
	domainRepos "github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

// ManifestRegistry manages all registered manifest readers. Readers are kept
// in registration order, which is also the order their declarations are merged.
type ManifestRegistry struct {
	manifests []domainRepos.ManifestRepository
}

// NewManifestRegistry creates an empty manifest registry.
func NewManifestRegistry() *ManifestRegistry {
	return &ManifestRegistry{
		manifests: make([]domainRepos.ManifestRepository, 0),
	}
}

// Register appends a manifest reader. Registering a name twice replaces the
// earlier reader in place.
func (r *ManifestRegistry) Register(m domainRepos.ManifestRepository) {
	for i, existing := range r.manifests {
		if existing.Name() == m.Name() {
			r.manifests[i] = m
			return
		}
	}
	r.manifests = append(r.manifests, m)
}

// All returns every registered reader in registration order.
func (r *ManifestRegistry) All() []domainRepos.ManifestRepository {
	result := make([]domainRepos.ManifestRepository, len(r.manifests))
	copy(result, r.manifests)
	return result
}

// Names returns the registered reader names in registration order.
func (r *ManifestRegistry) Names() []string {
	names := make([]string, 0, len(r.manifests))
	for _, m := range r.manifests {
		names = append(names, m.Name())
	}
	return names
}
