//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

// SpyTagRepository implements repositories.TagRepository as a configurable
// spy. It is safe for concurrent use.
type SpyTagRepository struct {
	// --- FetchTags ---
	Tags map[string][]string // repository URL -> tags
	Errs map[string]error    // repository URL -> error
	// Hold keeps every call in flight for the given duration.
	Hold time.Duration

	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int
}

var _ repositories.TagRepository = (*SpyTagRepository)(nil)

func (s *SpyTagRepository) FetchTags(_ context.Context, repositoryURL string) ([]string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, repositoryURL)
	s.inFlight++
	s.maxInFlight = max(s.maxInFlight, s.inFlight)
	s.mu.Unlock()

	if s.Hold > 0 {
		time.Sleep(s.Hold)
	}

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	if err, ok := s.Errs[repositoryURL]; ok {
		return nil, err
	}
	return s.Tags[repositoryURL], nil
}

// Calls returns the repository URLs queried so far, in call order.
func (s *SpyTagRepository) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// MaxInFlight returns the highest number of overlapping calls observed.
func (s *SpyTagRepository) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

// Factory returns a repositories.TagRepositoryFactory that always yields
// this spy and records the tokens it was asked for.
func (s *SpyTagRepository) Factory(tokens *[]string) repositories.TagRepositoryFactory {
	return func(token string) repositories.TagRepository {
		if tokens != nil {
			*tokens = append(*tokens, token)
		}
		return s
	}
}
