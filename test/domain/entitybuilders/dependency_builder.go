//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"slices"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
)

// DependencyBuilder helps create test dependencies with a fluent interface.
// Versions are given as text and parsed on build; an empty string leaves the
// version unknown.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	name        string
	url         string
	currentVer  string
	revision    string
	latestVer   string
	branch      string
	requirement *entities.VersionRequirement
	sources     []string
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "swift-test-package",
		url:         "https://github.com/test/swift-test-package.git",
		currentVer:  "1.0.0",
		revision:    "0123456789abcdef0123456789abcdef01234567",
	}
}

// WithName sets the dependency name (the pin identity).
func (b *DependencyBuilder) WithName(name string) *DependencyBuilder {
	b.name = name
	return b
}

// WithURL sets the repository URL.
func (b *DependencyBuilder) WithURL(url string) *DependencyBuilder {
	b.url = url
	return b
}

// WithCurrentVer sets the current version.
func (b *DependencyBuilder) WithCurrentVer(version string) *DependencyBuilder {
	b.currentVer = version
	return b
}

// WithRevision sets the pinned revision.
func (b *DependencyBuilder) WithRevision(revision string) *DependencyBuilder {
	b.revision = revision
	return b
}

// WithLatestVer sets the latest version.
func (b *DependencyBuilder) WithLatestVer(version string) *DependencyBuilder {
	b.latestVer = version
	return b
}

// WithBranch pins the dependency to a branch.
func (b *DependencyBuilder) WithBranch(branch string) *DependencyBuilder {
	b.branch = branch
	return b
}

// WithRequirement sets the declared requirement and the manifests declaring it.
func (b *DependencyBuilder) WithRequirement(
	requirement entities.VersionRequirement,
	sources ...string,
) *DependencyBuilder {
	b.requirement = &requirement
	b.sources = sources
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDependency creates the dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() entities.Dependency {
	dep := entities.Dependency{
		Name:            b.name,
		RepositoryURL:   b.url,
		CurrentVersion:  entities.ParseSemanticVersion(b.currentVer),
		CurrentRevision: b.revision,
		LatestVersion:   entities.ParseSemanticVersion(b.latestVer),
		Branch:          b.branch,
	}
	if b.requirement != nil {
		dep = dep.WithVersionRequirement(b.requirement, b.sources)
	}
	return dep
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "swift-test-package"
	b.url = "https://github.com/test/swift-test-package.git"
	b.currentVer = "1.0.0"
	b.revision = "0123456789abcdef0123456789abcdef01234567"
	b.latestVer = ""
	b.branch = ""
	b.requirement = nil
	b.sources = nil
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	clone := &DependencyBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		url:         b.url,
		currentVer:  b.currentVer,
		revision:    b.revision,
		latestVer:   b.latestVer,
		branch:      b.branch,
		sources:     slices.Clone(b.sources),
	}
	if b.requirement != nil {
		requirement := *b.requirement
		clone.requirement = &requirement
	}
	return clone
}
