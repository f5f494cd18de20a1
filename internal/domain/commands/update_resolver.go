package commands

import (
	"context"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

// UpdateResolver looks up the latest tagged version of every dependency
// concurrently. A failed lookup only affects its own dependency.
type UpdateResolver struct {
	tagRepository repositories.TagRepository
	concurrency   int
}

// NewUpdateResolver creates a resolver that keeps at most concurrency lookups
// in flight. A non-positive concurrency means no limit.
func NewUpdateResolver(tagRepository repositories.TagRepository, concurrency int) *UpdateResolver {
	return &UpdateResolver{
		tagRepository: tagRepository,
		concurrency:   concurrency,
	}
}

// CheckForUpdates returns the dependencies enriched with their latest version,
// sorted by name case-insensitively. Branch-pinned dependencies are never
// looked up.
func (it *UpdateResolver) CheckForUpdates(
	ctx context.Context,
	dependencies []entities.Dependency,
) []entities.Dependency {
	results := make([]entities.Dependency, len(dependencies))
	copy(results, dependencies)

	var group errgroup.Group
	if it.concurrency > 0 {
		group.SetLimit(it.concurrency)
	}

	for i, dep := range dependencies {
		if dep.IsBranchPinned() {
			logger.Debugf("Skipping %s: pinned to branch %q", dep.Name, dep.Branch)
			continue
		}
		group.Go(func() error {
			results[i] = it.checkForUpdate(ctx, dep)
			return nil
		})
	}
	_ = group.Wait() // lookups never return errors

	slices.SortStableFunc(results, func(a, b entities.Dependency) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return results
}

func (it *UpdateResolver) checkForUpdate(ctx context.Context, dep entities.Dependency) entities.Dependency {
	tags, err := it.tagRepository.FetchTags(ctx, dep.RepositoryURL)
	if err != nil {
		logger.Debugf("Failed to fetch tags for %s (%s): %v", dep.Name, dep.RepositoryURL, err)
		return dep
	}

	latest := FindLatestVersion(tags)
	if latest != nil {
		logger.Debugf("Latest version of %s is %s", dep.Name, latest)
	}
	return dep.WithLatestVersion(latest)
}

// FindLatestVersion returns the highest release version among tags. Tags that
// do not parse and prerelease versions are ignored. It returns nil when no tag
// qualifies.
func FindLatestVersion(tags []string) *entities.SemanticVersion {
	var latest *entities.SemanticVersion
	for _, tag := range tags {
		version := entities.ParseSemanticVersion(tag)
		if version == nil || version.IsPrerelease() {
			continue
		}
		if latest == nil || version.GreaterThan(*latest) {
			latest = version
		}
	}
	return latest
}
