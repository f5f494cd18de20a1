//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/test/domain/entitybuilders"
)

func TestDependencyFromPin(t *testing.T) {
	t.Parallel()

	t.Run("should build a dependency from a version pin", func(t *testing.T) {
		t.Parallel()

		// given
		pin := entitybuilders.NewPinBuilder().
			WithIdentity("swift-nio").
			WithLocation("https://github.com/apple/swift-nio.git").
			WithVersion("2.65.0").
			BuildPin()

		// when
		dep := entities.DependencyFromPin(pin)

		// then
		assert.Equal(t, "swift-nio", dep.Name)
		assert.Equal(t, "https://github.com/apple/swift-nio.git", dep.RepositoryURL)
		require.NotNil(t, dep.CurrentVersion)
		assert.Equal(t, "2.65.0", dep.CurrentVersion.String())
		assert.False(t, dep.IsBranchPinned())
		assert.Nil(t, dep.LatestVersion)
	})

	t.Run("should mark a branch pin and leave its version unknown", func(t *testing.T) {
		t.Parallel()

		// given
		pin := entitybuilders.NewPinBuilder().WithBranch("main").BuildPin()

		// when
		dep := entities.DependencyFromPin(pin)

		// then
		assert.True(t, dep.IsBranchPinned())
		assert.Equal(t, "main", dep.Branch)
		assert.Nil(t, dep.CurrentVersion)
	})

	t.Run("should leave the version unknown when the pin version does not parse", func(t *testing.T) {
		t.Parallel()

		// given
		pin := entitybuilders.NewPinBuilder().WithVersion("nightly").BuildPin()

		// when
		dep := entities.DependencyFromPin(pin)

		// then
		assert.Nil(t, dep.CurrentVersion)
		assert.False(t, dep.IsOutdated())
	})
}

func TestDependencyClassification(t *testing.T) {
	t.Parallel()

	t.Run("should be outdated and auto-updatable within the requirement", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().
			WithCurrentVer("1.0.0").
			WithLatestVer("1.5.0").
			WithRequirement(entities.UpToNextMajor(v("1.0.0")), "/p/Package.swift").
			BuildDependency()

		// when
		outdated, auto := dep.IsOutdated(), dep.CanAutoUpdate()

		// then
		assert.True(t, outdated)
		assert.True(t, auto)
		assert.Equal(t, entities.UpdateKindMinor, dep.UpdateKind())
	})

	t.Run("should be outdated and blocked outside the requirement", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().
			WithCurrentVer("1.0.0").
			WithLatestVer("2.0.0").
			WithRequirement(entities.UpToNextMajor(v("1.0.0")), "/p/Package.swift").
			BuildDependency()

		// when
		outdated, auto := dep.IsOutdated(), dep.CanAutoUpdate()

		// then
		assert.True(t, outdated)
		assert.False(t, auto)
		assert.Equal(t, entities.UpdateKindMajor, dep.UpdateKind())
	})

	t.Run("should treat missing information optimistically", func(t *testing.T) {
		t.Parallel()

		// given
		noRequirement := entitybuilders.NewDependencyBuilder().WithLatestVer("9.0.0").BuildDependency()
		noLatest := entitybuilders.NewDependencyBuilder().
			WithRequirement(entities.Exact(v("1.0.0"))).
			BuildDependency()

		// when / then
		assert.True(t, noRequirement.CanAutoUpdate())
		assert.True(t, noLatest.CanAutoUpdate())
		assert.False(t, noLatest.IsOutdated())
	})

	t.Run("should not be outdated when either version is unknown or not newer", func(t *testing.T) {
		t.Parallel()

		// given
		unknownCurrent := entitybuilders.NewDependencyBuilder().WithCurrentVer("").WithLatestVer("2.0.0").BuildDependency()
		same := entitybuilders.NewDependencyBuilder().WithCurrentVer("1.0.0").WithLatestVer("1.0.0").BuildDependency()
		older := entitybuilders.NewDependencyBuilder().WithCurrentVer("1.2.0").WithLatestVer("1.1.0").BuildDependency()

		// when / then
		assert.False(t, unknownCurrent.IsOutdated())
		assert.False(t, same.IsOutdated())
		assert.False(t, older.IsOutdated())
		assert.Empty(t, same.UpdateKind())
	})

	t.Run("should classify a patch update", func(t *testing.T) {
		t.Parallel()

		// given
		dep := entitybuilders.NewDependencyBuilder().WithCurrentVer("1.2.3").WithLatestVer("1.2.4").BuildDependency()

		// when
		kind := dep.UpdateKind()

		// then
		assert.Equal(t, entities.UpdateKindPatch, kind)
	})

	t.Run("should classify from the version cores only", func(t *testing.T) {
		t.Parallel()

		// given
		fromPrerelease := entitybuilders.NewDependencyBuilder().
			WithCurrentVer("2.0.0-beta.1").WithLatestVer("2.0.0+build.5").BuildDependency()
		fromBuild := entitybuilders.NewDependencyBuilder().
			WithCurrentVer("1.9.9+ci").WithLatestVer("2.0.0").BuildDependency()

		// when
		sameCore := fromPrerelease.UpdateKind()
		nextMajor := fromBuild.UpdateKind()

		// then
		assert.Equal(t, entities.UpdateKindPatch, sameCore)
		assert.Equal(t, entities.UpdateKindMajor, nextMajor)
	})
}

func TestDependencyEnrichment(t *testing.T) {
	t.Parallel()

	t.Run("should return modified copies without touching the original", func(t *testing.T) {
		t.Parallel()

		// given
		original := entitybuilders.NewDependencyBuilder().BuildDependency()
		latest := v("3.0.0")
		requirement := entities.Exact(v("1.0.0"))
		sources := []string{"/p/Package.swift"}

		// when
		enriched := original.WithLatestVersion(&latest).WithVersionRequirement(&requirement, sources)
		sources[0] = "mutated"

		// then
		assert.Nil(t, original.LatestVersion)
		assert.Nil(t, original.VersionRequirement)
		require.NotNil(t, enriched.LatestVersion)
		assert.Equal(t, "3.0.0", enriched.LatestVersion.String())
		assert.Equal(t, []string{"/p/Package.swift"}, enriched.RequirementSources)
	})
}

func TestMatchRequirements(t *testing.T) {
	t.Parallel()

	t.Run("should attach declarations by case-insensitive identity", func(t *testing.T) {
		t.Parallel()

		// given
		deps := []entities.Dependency{
			entitybuilders.NewDependencyBuilder().WithName("Kingfisher").BuildDependency(),
			entitybuilders.NewDependencyBuilder().WithName("swift-log").BuildDependency(),
		}
		declarations := []entities.ManifestDependency{{
			URL:         "https://github.com/onevcat/Kingfisher.git",
			Requirement: entities.UpToNextMinor(v("7.1.0")),
			SourcePaths: []string{"/p/App.xcodeproj"},
		}}

		// when
		matched := entities.MatchRequirements(deps, declarations)

		// then
		require.Len(t, matched, 2)
		require.NotNil(t, matched[0].VersionRequirement)
		assert.Equal(t, entities.UpToNextMinor(v("7.1.0")), *matched[0].VersionRequirement)
		assert.Equal(t, []string{"/p/App.xcodeproj"}, matched[0].RequirementSources)
		assert.Nil(t, matched[1].VersionRequirement)
		assert.Empty(t, matched[1].RequirementSources)
	})
}
