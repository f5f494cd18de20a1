package entities

import (
	"slices"
	"strings"
)

// ManifestDependency is one dependency declaration recovered from a manifest
// (Package.swift or an Xcode project), together with every manifest path that
// declared the same identity.
type ManifestDependency struct {
	URL         string
	Requirement VersionRequirement
	SourcePaths []string
}

// Identity is the join key against Package.resolved pins.
func (d ManifestDependency) Identity() string {
	return IdentityFromURL(d.URL)
}

// IdentityFromURL derives a package identity from a repository URL: the last
// path segment with any trailing ".git" removed, lowercased.
func IdentityFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed == "" {
		trimmed = url
	}
	return strings.ToLower(trimmed)
}

// PackageManifest holds the declarations parsed from a single manifest file.
type PackageManifest struct {
	Path         string
	Dependencies []ManifestDependency
}

// MergeManifests combines manifests, in the given order, into one list keyed
// by identity. The first requirement seen for an identity is kept; every later
// manifest that declares the same identity is only appended to SourcePaths.
func MergeManifests(manifests []PackageManifest) []ManifestDependency {
	merged := make([]ManifestDependency, 0)
	index := make(map[string]int)

	for _, manifest := range manifests {
		for _, dep := range manifest.Dependencies {
			identity := dep.Identity()
			if pos, ok := index[identity]; ok {
				if !slices.Contains(merged[pos].SourcePaths, manifest.Path) {
					merged[pos].SourcePaths = append(merged[pos].SourcePaths, manifest.Path)
				}
				continue
			}

			index[identity] = len(merged)
			merged = append(merged, ManifestDependency{
				URL:         dep.URL,
				Requirement: dep.Requirement,
				SourcePaths: []string{manifest.Path},
			})
		}
	}

	return merged
}

// RequirementConflict describes an identity declared with different
// requirements by different manifests. Kept is the requirement MergeManifests
// retained; Ignored lists the later, differing declarations.
type RequirementConflict struct {
	Identity string
	Kept     ManifestDependency
	Ignored  []ManifestDependency
}

// FindRequirementConflicts reports identities whose declarations disagree.
// It does not change merge results.
func FindRequirementConflicts(manifests []PackageManifest) []RequirementConflict {
	conflicts := make([]RequirementConflict, 0)
	index := make(map[string]int)
	first := make(map[string]ManifestDependency)

	for _, manifest := range manifests {
		for _, dep := range manifest.Dependencies {
			identity := dep.Identity()
			kept, seen := first[identity]
			if !seen {
				first[identity] = ManifestDependency{
					URL: dep.URL, Requirement: dep.Requirement, SourcePaths: []string{manifest.Path},
				}
				continue
			}
			if kept.Requirement == dep.Requirement {
				continue
			}

			ignored := ManifestDependency{
				URL: dep.URL, Requirement: dep.Requirement, SourcePaths: []string{manifest.Path},
			}
			if pos, ok := index[identity]; ok {
				conflicts[pos].Ignored = append(conflicts[pos].Ignored, ignored)
				continue
			}
			index[identity] = len(conflicts)
			conflicts = append(conflicts, RequirementConflict{
				Identity: identity,
				Kept:     kept,
				Ignored:  []ManifestDependency{ignored},
			})
		}
	}

	return conflicts
}
