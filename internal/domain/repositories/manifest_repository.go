package repositories

import "github.com/rios0rios0/swiftoutdated/internal/domain/entities"

// ManifestRepository abstracts a source of dependency declarations
// (Package.swift files, Xcode projects, etc.).
type ManifestRepository interface {
	// Name returns the manifest kind identifier (e.g. "package.swift", "xcodeproj").
	Name() string

	// Locate returns, in discovery order, the manifests that belong to the
	// project owning the given Package.resolved path.
	Locate(resolvedPath string) []string

	// Parse reads one manifest and returns its declarations.
	Parse(path string) (entities.PackageManifest, error)
}
