package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewRequirementsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	checkController *CheckController,
	requirementsController *RequirementsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		checkController,
		requirementsController,
	}
}
