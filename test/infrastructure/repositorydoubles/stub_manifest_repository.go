//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

// StubManifestRepository implements repositories.ManifestRepository with
// canned paths and manifests.
type StubManifestRepository struct {
	// --- identity ---
	ManifestName string

	// --- Locate ---
	Paths       []string
	LocateCalls []string

	// --- Parse ---
	Manifests  map[string]entities.PackageManifest // path -> manifest
	ParseErrs  map[string]error                    // path -> error
	ParseCalls []string
}

var _ repositories.ManifestRepository = (*StubManifestRepository)(nil)

func (s *StubManifestRepository) Name() string { return s.ManifestName }

func (s *StubManifestRepository) Locate(resolvedPath string) []string {
	s.LocateCalls = append(s.LocateCalls, resolvedPath)
	return s.Paths
}

func (s *StubManifestRepository) Parse(path string) (entities.PackageManifest, error) {
	s.ParseCalls = append(s.ParseCalls, path)
	if err, ok := s.ParseErrs[path]; ok {
		return entities.PackageManifest{}, err
	}
	if manifest, ok := s.Manifests[path]; ok {
		return manifest, nil
	}
	return entities.PackageManifest{Path: path}, nil
}

// DummyManifestRepository is a no-op implementation of repositories.ManifestRepository.
type DummyManifestRepository struct{}

var _ repositories.ManifestRepository = (*DummyManifestRepository)(nil)

func (d *DummyManifestRepository) Name() string { return "dummy" }

func (d *DummyManifestRepository) Locate(_ string) []string { return nil }

func (d *DummyManifestRepository) Parse(path string) (entities.PackageManifest, error) {
	return entities.PackageManifest{Path: path}, nil
}
