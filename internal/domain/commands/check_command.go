package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories"
)

// Check is the interface for the check command (the default mode).
type Check interface {
	Execute(ctx context.Context, opts CheckOptions) (*CheckResult, error)
}

// CheckOptions holds runtime options for a single check.
type CheckOptions struct {
	Path     string
	Settings *entities.Settings
}

// CheckResult is the classified outcome of a check.
type CheckResult struct {
	ResolvedPath string
	Dependencies []entities.Dependency
	Conflicts    []entities.RequirementConflict
	// Ignored counts pins dropped by the ignore list.
	Ignored int
}

// CheckCommand orchestrates the full flow:
// Package.resolved -> manifest requirements -> latest tags -> classification.
type CheckCommand struct {
	resolvedRepository repositories.ResolvedRepository
	manifestRegistry   *infraRepos.ManifestRegistry
	newTagRepository   repositories.TagRepositoryFactory
}

// NewCheckCommand creates a new CheckCommand.
func NewCheckCommand(
	resolvedRepository repositories.ResolvedRepository,
	manifestRegistry *infraRepos.ManifestRegistry,
	newTagRepository repositories.TagRepositoryFactory,
) *CheckCommand {
	return &CheckCommand{
		resolvedRepository: resolvedRepository,
		manifestRegistry:   manifestRegistry,
		newTagRepository:   newTagRepository,
	}
}

// Execute runs the check. Errors are returned only for structural failures
// (missing, unsupported or malformed lock file); lookup failures degrade the
// affected dependency to an unknown latest version.
func (it *CheckCommand) Execute(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	settings := opts.Settings
	if settings == nil {
		settings = entities.NewDefaultSettings()
	}

	resolvedPath, err := it.resolvedRepository.Locate(opts.Path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Using lock file: %s", resolvedPath)

	resolved, err := it.resolvedRepository.Load(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", resolvedPath, err)
	}

	result := &CheckResult{ResolvedPath: resolvedPath}
	dependencies := make([]entities.Dependency, 0, len(resolved.Pins))
	for _, dep := range resolved.Dependencies() {
		if settings.IsIgnored(dep.Name) {
			logger.Debugf("Ignoring %s", dep.Name)
			result.Ignored++
			continue
		}
		dependencies = append(dependencies, dep)
	}
	result.Dependencies = dependencies
	if len(dependencies) == 0 {
		return result, nil
	}

	if settings.ShouldScanManifests() {
		manifests := collectManifests(it.manifestRegistry, resolvedPath)
		result.Conflicts = entities.FindRequirementConflicts(manifests)
		for _, conflict := range result.Conflicts {
			logger.Warnf(
				"Conflicting requirements for %s: keeping %q from %s",
				conflict.Identity, conflict.Kept.Requirement, conflict.Kept.SourcePaths[0],
			)
		}
		dependencies = entities.MatchRequirements(dependencies, entities.MergeManifests(manifests))
	}

	logger.Infof("Checking %d dependencies for updates...", len(dependencies))
	resolver := NewUpdateResolver(it.newTagRepository(settings.Token), settings.Concurrency)
	result.Dependencies = resolver.CheckForUpdates(ctx, dependencies)
	return result, nil
}

// collectManifests locates and parses every manifest, in registry order, for
// the project that owns resolvedPath. Unreadable manifests are skipped.
func collectManifests(registry *infraRepos.ManifestRegistry, resolvedPath string) []entities.PackageManifest {
	logger.Debugf("Scanning manifests with readers: %s", strings.Join(registry.Names(), ", "))
	manifests := make([]entities.PackageManifest, 0)
	for _, repository := range registry.All() {
		for _, path := range repository.Locate(resolvedPath) {
			manifest, err := repository.Parse(path)
			if err != nil {
				logger.Warnf("[%s] Failed to parse %s: %v", repository.Name(), path, err)
				continue
			}
			logger.Debugf(
				"[%s] %s declares %d dependencies",
				repository.Name(), path, len(manifest.Dependencies),
			)
			manifests = append(manifests, manifest)
		}
	}
	return manifests
}
