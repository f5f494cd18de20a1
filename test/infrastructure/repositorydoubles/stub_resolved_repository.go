//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

// StubResolvedRepository implements repositories.ResolvedRepository with a
// canned lock file.
type StubResolvedRepository struct {
	// --- Locate ---
	ResolvedPath string
	LocateErr    error
	LocateCalls  []string

	// --- Load ---
	Resolved  *entities.PackageResolved
	LoadErr   error
	LoadCalls []string
}

var _ repositories.ResolvedRepository = (*StubResolvedRepository)(nil)

func (s *StubResolvedRepository) Locate(path string) (string, error) {
	s.LocateCalls = append(s.LocateCalls, path)
	if s.LocateErr != nil {
		return "", s.LocateErr
	}
	return s.ResolvedPath, nil
}

func (s *StubResolvedRepository) Load(path string) (*entities.PackageResolved, error) {
	s.LoadCalls = append(s.LoadCalls, path)
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Resolved == nil {
		return &entities.PackageResolved{Version: 2, Pins: []entities.Pin{}}, nil
	}
	return s.Resolved, nil
}
