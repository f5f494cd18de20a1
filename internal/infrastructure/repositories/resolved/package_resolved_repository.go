package resolved

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

const (
	resolvedFile = "Package.resolved"

	// xcodeprojResolved and xcworkspaceResolved are where Xcode keeps the
	// lock file inside a project and a workspace.
	xcodeprojResolved   = "project.xcworkspace/xcshareddata/swiftpm/Package.resolved"
	xcworkspaceResolved = "xcshareddata/swiftpm/Package.resolved"
)

// PackageResolvedRepository finds and decodes Package.resolved files on disk.
type PackageResolvedRepository struct{}

// NewPackageResolvedRepository creates a new lock-file source.
func NewPackageResolvedRepository() repositories.ResolvedRepository {
	return &PackageResolvedRepository{}
}

// Locate accepts a Package.resolved file, an .xcodeproj, an .xcworkspace or a
// directory. A directory is searched for a Package.resolved of its own first,
// then inside its Xcode projects and workspaces in name order.
func (r *PackageResolvedRepository) Locate(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && !info.IsDir() &&
		strings.HasSuffix(path, resolvedFile) {
		return path, nil
	}

	switch filepath.Ext(strings.TrimRight(path, string(filepath.Separator))) {
	case ".xcodeproj":
		return locateInside(path, xcodeprojResolved)
	case ".xcworkspace":
		return locateInside(path, xcworkspaceResolved)
	}

	direct := filepath.Join(path, resolvedFile)
	if fileExists(direct) {
		return direct, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		logger.Debugf("Failed to list %s: %v", path, err)
	}
	for _, entry := range entries {
		var candidate string
		switch filepath.Ext(entry.Name()) {
		case ".xcodeproj":
			candidate = filepath.Join(path, entry.Name(), xcodeprojResolved)
		case ".xcworkspace":
			candidate = filepath.Join(path, entry.Name(), xcworkspaceResolved)
		default:
			continue
		}
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w at %s", entities.ErrResolvedFileNotFound, path)
}

// Load reads and decodes the lock file at path.
func (r *PackageResolvedRepository) Load(path string) (*entities.PackageResolved, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.ParsePackageResolved(data)
}

func locateInside(container, relative string) (string, error) {
	candidate := filepath.Join(container, relative)
	if fileExists(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%w at %s", entities.ErrResolvedFileNotFound, candidate)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
