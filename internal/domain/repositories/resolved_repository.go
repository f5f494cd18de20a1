package repositories

import "github.com/rios0rios0/swiftoutdated/internal/domain/entities"

// ResolvedRepository finds and decodes Package.resolved lock files.
type ResolvedRepository interface {
	// Locate resolves a directory, .xcodeproj, .xcworkspace or direct file path
	// to a Package.resolved path. It wraps entities.ErrResolvedFileNotFound.
	Locate(path string) (string, error)

	// Load decodes the lock file at path.
	Load(path string) (*entities.PackageResolved, error)
}
