package commands

import (
	"context"
	"errors"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories"
)

// Requirements is the interface for the requirements command, which reports
// declared requirements without touching the network.
type Requirements interface {
	Execute(ctx context.Context, path string) (*RequirementsResult, error)
}

// RequirementsResult is the merged view of every manifest in a project.
type RequirementsResult struct {
	Declarations []entities.ManifestDependency
	Conflicts    []entities.RequirementConflict
}

// RequirementsCommand merges manifest declarations for a project.
type RequirementsCommand struct {
	resolvedRepository repositories.ResolvedRepository
	manifestRegistry   *infraRepos.ManifestRegistry
}

// NewRequirementsCommand creates a new RequirementsCommand.
func NewRequirementsCommand(
	resolvedRepository repositories.ResolvedRepository,
	manifestRegistry *infraRepos.ManifestRegistry,
) *RequirementsCommand {
	return &RequirementsCommand{
		resolvedRepository: resolvedRepository,
		manifestRegistry:   manifestRegistry,
	}
}

// Execute discovers manifests next to the project's Package.resolved. When
// there is no lock file yet, discovery starts from path itself.
func (it *RequirementsCommand) Execute(_ context.Context, path string) (*RequirementsResult, error) {
	anchor, err := it.resolvedRepository.Locate(path)
	if err != nil {
		if !errors.Is(err, entities.ErrResolvedFileNotFound) {
			return nil, err
		}
		logger.Debugf("No lock file under %s, scanning manifests from there", path)
		anchor = filepath.Join(path, "Package.resolved")
	}

	manifests := collectManifests(it.manifestRegistry, anchor)
	return &RequirementsResult{
		Declarations: entities.MergeManifests(manifests),
		Conflicts:    entities.FindRequirementConflicts(manifests),
	}, nil
}
