//go:build unit

package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/swiftoutdated/internal/domain/commands"
	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/test/domain/entitybuilders"
	"github.com/rios0rios0/swiftoutdated/test/infrastructure/repositorydoubles"
)

func TestFindLatestVersion(t *testing.T) {
	t.Parallel()

	t.Run("should pick the highest release tag", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"0.9.0", "1.0.0", "1.1.0", "1.2.0", "v2.0.0"}

		// when
		latest := commands.FindLatestVersion(tags)

		// then
		require.NotNil(t, latest)
		assert.Equal(t, "2.0.0", latest.String())
	})

	t.Run("should ignore prerelease tags", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"1.0.0", "1.1.0", "2.0.0-alpha", "2.0.0-beta.1"}

		// when
		latest := commands.FindLatestVersion(tags)

		// then
		require.NotNil(t, latest)
		assert.Equal(t, "1.1.0", latest.String())
	})

	t.Run("should ignore a tag with an empty prerelease", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"1.0.0", "2.0.0-"}

		// when
		latest := commands.FindLatestVersion(tags)

		// then
		require.NotNil(t, latest)
		assert.Equal(t, "1.0.0", latest.String())
	})

	t.Run("should return nil when no tag qualifies", func(t *testing.T) {
		t.Parallel()

		// given
		tags := []string{"latest", "nightly", "3.0.0-rc.1"}

		// when
		latest := commands.FindLatestVersion(tags)

		// then
		assert.Nil(t, latest)
	})
}

func TestUpdateResolverCheckForUpdates(t *testing.T) {
	t.Parallel()

	t.Run("should enrich every dependency and sort by name case-insensitively", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyTagRepository{Tags: map[string][]string{
			"https://x/zeta.git":  {"1.0.0", "1.4.0"},
			"https://x/Alpha.git": {"v2.1.0", "2.0.0"},
			"https://x/beta.git":  {"0.1.0"},
		}}
		deps := []entities.Dependency{
			entitybuilders.NewDependencyBuilder().WithName("zeta").WithURL("https://x/zeta.git").BuildDependency(),
			entitybuilders.NewDependencyBuilder().WithName("beta").WithURL("https://x/beta.git").BuildDependency(),
			entitybuilders.NewDependencyBuilder().WithName("Alpha").WithURL("https://x/Alpha.git").BuildDependency(),
		}
		resolver := commands.NewUpdateResolver(spy, 2)

		// when
		results := resolver.CheckForUpdates(context.Background(), deps)

		// then
		require.Len(t, results, 3)
		assert.Equal(t, []string{"Alpha", "beta", "zeta"}, names(results))
		assert.Equal(t, "2.1.0", results[0].LatestVersion.String())
		assert.Equal(t, "0.1.0", results[1].LatestVersion.String())
		assert.Equal(t, "1.4.0", results[2].LatestVersion.String())
		assert.Len(t, spy.Calls(), 3)
	})

	t.Run("should never query a branch-pinned dependency", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyTagRepository{Tags: map[string][]string{
			"https://x/branchy.git": {"9.9.9"},
		}}
		deps := []entities.Dependency{
			entitybuilders.NewDependencyBuilder().
				WithName("branchy").WithURL("https://x/branchy.git").WithCurrentVer("").WithBranch("main").
				BuildDependency(),
		}
		resolver := commands.NewUpdateResolver(spy, entities.DefaultConcurrency)

		// when
		results := resolver.CheckForUpdates(context.Background(), deps)

		// then
		require.Len(t, results, 1)
		assert.Nil(t, results[0].LatestVersion)
		assert.Empty(t, spy.Calls())
	})

	t.Run("should isolate a failed lookup to its own dependency", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyTagRepository{
			Tags: map[string][]string{"https://x/ok.git": {"1.2.0"}},
			Errs: map[string]error{"https://x/broken.git": errors.New("authentication required")},
		}
		deps := []entities.Dependency{
			entitybuilders.NewDependencyBuilder().WithName("broken").WithURL("https://x/broken.git").BuildDependency(),
			entitybuilders.NewDependencyBuilder().WithName("ok").WithURL("https://x/ok.git").BuildDependency(),
		}
		resolver := commands.NewUpdateResolver(spy, entities.DefaultConcurrency)

		// when
		results := resolver.CheckForUpdates(context.Background(), deps)

		// then
		require.Len(t, results, 2)
		assert.Nil(t, results[0].LatestVersion)
		assert.False(t, results[0].IsOutdated())
		require.NotNil(t, results[1].LatestVersion)
		assert.Equal(t, "1.2.0", results[1].LatestVersion.String())
	})

	t.Run("should classify against the matched requirement", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyTagRepository{Tags: map[string][]string{
			"https://x/safe.git":    {"1.0.0", "1.5.0"},
			"https://x/blocked.git": {"1.0.0", "2.0.0"},
		}}
		requirement := entities.UpToNextMajor(entities.MustParseSemanticVersion("1.0.0"))
		deps := []entities.Dependency{
			entitybuilders.NewDependencyBuilder().WithName("safe").WithURL("https://x/safe.git").
				WithRequirement(requirement, "/p/Package.swift").BuildDependency(),
			entitybuilders.NewDependencyBuilder().WithName("blocked").WithURL("https://x/blocked.git").
				WithRequirement(requirement, "/p/Package.swift").BuildDependency(),
		}
		resolver := commands.NewUpdateResolver(spy, entities.DefaultConcurrency)

		// when
		results := resolver.CheckForUpdates(context.Background(), deps)

		// then
		require.Len(t, results, 2)
		assert.Equal(t, "blocked", results[0].Name)
		assert.True(t, results[0].IsOutdated())
		assert.False(t, results[0].CanAutoUpdate())
		assert.Equal(t, "safe", results[1].Name)
		assert.True(t, results[1].IsOutdated())
		assert.True(t, results[1].CanAutoUpdate())
	})

	t.Run("should return an empty list without any lookup", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyTagRepository{}
		resolver := commands.NewUpdateResolver(spy, entities.DefaultConcurrency)

		// when
		results := resolver.CheckForUpdates(context.Background(), []entities.Dependency{})

		// then
		assert.Empty(t, results)
		assert.Empty(t, spy.Calls())
	})

	t.Run("should keep at most the configured number of lookups in flight", func(t *testing.T) {
		t.Parallel()

		// given
		const limit = 3
		spy := &repositorydoubles.SpyTagRepository{Hold: 5 * time.Millisecond}
		deps := make([]entities.Dependency, 0, 12)
		for i := range 12 {
			deps = append(deps, entitybuilders.NewDependencyBuilder().
				WithName(fmt.Sprintf("dep-%02d", i)).
				WithURL(fmt.Sprintf("https://x/dep-%02d.git", i)).
				BuildDependency())
		}
		resolver := commands.NewUpdateResolver(spy, limit)

		// when
		results := resolver.CheckForUpdates(context.Background(), deps)

		// then
		assert.Len(t, results, 12)
		assert.Len(t, spy.Calls(), 12)
		assert.LessOrEqual(t, spy.MaxInFlight(), limit)
	})

	t.Run("should not mutate the input slice", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &repositorydoubles.SpyTagRepository{Tags: map[string][]string{"https://x/b.git": {"5.0.0"}}}
		deps := []entities.Dependency{
			entitybuilders.NewDependencyBuilder().WithName("b").WithURL("https://x/b.git").BuildDependency(),
			entitybuilders.NewDependencyBuilder().WithName("a").WithURL("https://x/a.git").BuildDependency(),
		}
		resolver := commands.NewUpdateResolver(spy, 0)

		// when
		_ = resolver.CheckForUpdates(context.Background(), deps)

		// then
		assert.Equal(t, "b", deps[0].Name)
		assert.Nil(t, deps[0].LatestVersion)
	})
}

func names(deps []entities.Dependency) []string {
	result := make([]string, 0, len(deps))
	for _, dep := range deps {
		result = append(result, dep.Name)
	}
	return result
}
