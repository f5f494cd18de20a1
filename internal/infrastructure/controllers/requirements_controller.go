package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/swiftoutdated/internal/domain/commands"
	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/infrastructure/presenters"
)

// RequirementsController handles the "requirements" subcommand.
type RequirementsController struct {
	command   commands.Requirements
	presenter *presenters.ConsolePresenter
}

// NewRequirementsController creates a new RequirementsController.
func NewRequirementsController(
	command commands.Requirements,
	presenter *presenters.ConsolePresenter,
) *RequirementsController {
	return &RequirementsController{command: command, presenter: presenter}
}

// GetBind returns the Cobra command metadata for the requirements controller.
func (it *RequirementsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "requirements [path]",
		Short: "List declared version requirements",
		Long: `List the version requirement declared for every dependency across the
project's Package.swift manifests and Xcode project, with the manifests that
declared it. Identities declared differently by several manifests are listed
as conflicts; the first declaration is the one used by check.

No network access is performed.`,
	}
}

// Execute prints the merged requirements.
func (it *RequirementsController) Execute(cmd *cobra.Command, args []string) error {
	path, err := pathArgument(args)
	if err != nil {
		return err
	}
	if _, err = loadSettings(cmd); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := it.command.Execute(cmd.Context(), path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(
		cmd.OutOrStdout(),
		it.presenter.FormatRequirements(result.Declarations, result.Conflicts),
	)
	return nil
}

// AddFlags adds the requirements-specific flags to the given Cobra command.
func (it *RequirementsController) AddFlags(_ *cobra.Command) {}
