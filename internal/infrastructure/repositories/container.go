package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/swiftoutdated/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories/git"
	swiftRepo "github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories/packageswift"
	resolvedRepo "github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories/resolved"
	xcodeRepo "github.com/rios0rios0/swiftoutdated/internal/infrastructure/repositories/xcodeproj"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register manifest registry; registration order is the merge order
	if err := container.Provide(func() *ManifestRegistry {
		reg := NewManifestRegistry()
		reg.Register(swiftRepo.NewPackageSwiftRepository())
		reg.Register(xcodeRepo.NewXcodeprojRepository())
		return reg
	}); err != nil {
		return err
	}

	// Register lock-file source
	if err := container.Provide(resolvedRepo.NewPackageResolvedRepository); err != nil {
		return err
	}

	// Register tag source factory, built per run with the configured token
	if err := container.Provide(func() domainRepos.TagRepositoryFactory {
		return gitRepo.NewGitTagRepository
	}); err != nil {
		return err
	}

	return nil
}
