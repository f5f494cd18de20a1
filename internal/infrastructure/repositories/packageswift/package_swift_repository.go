package packageswift

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
)

const (
	manifestName = "package.swift"
	manifestFile = "Package.swift"

	// maxWalkUp bounds the upward search from the lock file directory.
	maxWalkUp = 10
	// maxScanDepth bounds the downward search for local packages.
	maxScanDepth = 6
)

// skippedDirs never contain manifests that belong to the project itself.
var skippedDirs = map[string]bool{
	".build":         true,
	".git":           true,
	".swiftpm":       true,
	"DerivedData":    true,
	"Pods":           true,
	"Carthage":       true,
	"node_modules":   true,
	"SourcePackages": true,
}

// PackageSwiftRepository reads dependency declarations from Package.swift
// manifests: the one owning the lock file and every local package below the
// project root.
type PackageSwiftRepository struct{}

// NewPackageSwiftRepository creates a new Package.swift reader.
func NewPackageSwiftRepository() repositories.ManifestRepository {
	return &PackageSwiftRepository{}
}

func (r *PackageSwiftRepository) Name() string { return manifestName }

// Locate returns the nearest Package.swift above the lock file first, then
// the manifests of local packages under the project root sorted by path.
func (r *PackageSwiftRepository) Locate(resolvedPath string) []string {
	paths := make([]string, 0)

	root := FindUpward(filepath.Dir(resolvedPath))
	projectRoot := projectRootOf(resolvedPath)
	if root != "" {
		paths = append(paths, root)
		projectRoot = filepath.Dir(root)
	}

	for _, sub := range findLocalPackages(projectRoot) {
		if sub != root {
			paths = append(paths, sub)
		}
	}
	return paths
}

// Parse reads one Package.swift.
func (r *PackageSwiftRepository) Parse(path string) (entities.PackageManifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return entities.PackageManifest{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return entities.PackageManifest{Path: path, Dependencies: ParseContent(string(content))}, nil
}

// FindUpward walks from dir towards the filesystem root looking for a
// Package.swift, giving up after maxWalkUp levels.
func FindUpward(dir string) string {
	current := filepath.Clean(dir)
	for range maxWalkUp {
		candidate := filepath.Join(current, manifestFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

// projectRootOf returns the directory holding the outermost .xcodeproj or
// .xcworkspace the lock file lives in, or the lock file's own directory.
func projectRootOf(resolvedPath string) string {
	dir := filepath.Dir(filepath.Clean(resolvedPath))
	root := dir
	for current := dir; ; {
		ext := filepath.Ext(current)
		if ext == ".xcodeproj" || ext == ".xcworkspace" {
			root = filepath.Dir(current)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return root
		}
		current = parent
	}
}

// findLocalPackages lists every Package.swift under root, sorted by path.
func findLocalPackages(root string) []string {
	found := make([]string, 0)
	baseDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Debugf("[%s] Skipping %s: %v", manifestName, path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			if strings.Count(path, string(filepath.Separator))-baseDepth >= maxScanDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == manifestFile {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		logger.Debugf("[%s] Failed to scan %s: %v", manifestName, root, err)
	}

	slices.Sort(found)
	return found
}

func shouldSkipDir(name string) bool {
	if skippedDirs[name] {
		return true
	}
	ext := filepath.Ext(name)
	return ext == ".xcodeproj" || ext == ".xcworkspace"
}
