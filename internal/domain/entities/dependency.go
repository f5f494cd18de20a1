package entities

import (
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	UpdateKindMajor = "major"
	UpdateKindMinor = "minor"
	UpdateKindPatch = "patch"
)

// Dependency is a pinned package from Package.resolved, optionally enriched
// with the latest tagged version and the requirement declared in a manifest.
// Values are never mutated; the With* methods return modified copies.
type Dependency struct {
	Name            string
	RepositoryURL   string
	CurrentVersion  *SemanticVersion
	CurrentRevision string
	LatestVersion   *SemanticVersion
	// Branch is set when the pin tracks a moving branch instead of a tag.
	Branch             string
	VersionRequirement *VersionRequirement
	RequirementSources []string
}

// DependencyFromPin builds a Dependency from a Package.resolved pin. A pin
// version that does not parse leaves CurrentVersion empty.
func DependencyFromPin(pin Pin) Dependency {
	dep := Dependency{
		Name:            pin.Identity,
		RepositoryURL:   pin.Location,
		CurrentRevision: pin.State.Revision,
	}
	if pin.State.Version != nil {
		dep.CurrentVersion = ParseSemanticVersion(*pin.State.Version)
	}
	if pin.State.Branch != nil {
		dep.Branch = *pin.State.Branch
	}
	return dep
}

// IsBranchPinned reports whether the pin follows a branch, in which case no
// latest version is ever resolved.
func (d Dependency) IsBranchPinned() bool {
	return d.Branch != ""
}

// IsOutdated is true when both versions are known and the latest is newer.
func (d Dependency) IsOutdated() bool {
	if d.CurrentVersion == nil || d.LatestVersion == nil {
		return false
	}
	return d.LatestVersion.GreaterThan(*d.CurrentVersion)
}

// CanAutoUpdate is true unless both a requirement and a latest version are
// known and the latest version falls outside the requirement.
func (d Dependency) CanAutoUpdate() bool {
	if d.LatestVersion == nil || d.VersionRequirement == nil {
		return true
	}
	return d.VersionRequirement.IsSatisfiedBy(*d.LatestVersion)
}

// UpdateKind classifies an outdated dependency by the most significant
// component that changed. It is empty when the dependency is not outdated.
func (d Dependency) UpdateKind() string {
	if !d.IsOutdated() {
		return ""
	}

	// Only the "vX.Y.Z" cores reach x/mod/semver; prerelease and build parts
	// never change the kind.
	current := d.CurrentVersion.canonical()
	latest := d.LatestVersion.canonical()
	switch {
	case semver.Major(current) != semver.Major(latest):
		return UpdateKindMajor
	case semver.MajorMinor(current) != semver.MajorMinor(latest):
		return UpdateKindMinor
	default:
		return UpdateKindPatch
	}
}

// WithLatestVersion returns a copy with LatestVersion set.
func (d Dependency) WithLatestVersion(version *SemanticVersion) Dependency {
	d.LatestVersion = version
	return d
}

// WithVersionRequirement returns a copy with the requirement and the manifest
// paths that declared it.
func (d Dependency) WithVersionRequirement(requirement *VersionRequirement, sources []string) Dependency {
	d.VersionRequirement = requirement
	d.RequirementSources = slices.Clone(sources)
	return d
}

// MatchRequirements attaches to each dependency the merged manifest
// declaration whose identity equals the dependency name, case-insensitively.
// Dependencies with no matching declaration are returned unchanged.
func MatchRequirements(dependencies []Dependency, declarations []ManifestDependency) []Dependency {
	byIdentity := make(map[string]ManifestDependency, len(declarations))
	for _, decl := range declarations {
		identity := decl.Identity()
		if _, exists := byIdentity[identity]; !exists {
			byIdentity[identity] = decl
		}
	}

	matched := make([]Dependency, 0, len(dependencies))
	for _, dep := range dependencies {
		decl, ok := byIdentity[strings.ToLower(dep.Name)]
		if !ok {
			matched = append(matched, dep)
			continue
		}
		requirement := decl.Requirement
		matched = append(matched, dep.WithVersionRequirement(&requirement, decl.SourcePaths))
	}
	return matched
}
