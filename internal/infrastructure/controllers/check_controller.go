package controllers

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/swiftoutdated/internal/domain/commands"
	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
	"github.com/rios0rios0/swiftoutdated/internal/infrastructure/presenters"
)

const (
	noDependencies  = "No dependencies found in Package.resolved"
	allDependencies = "All %d dependencies in Package.resolved are ignored\n"
)

// CheckController handles the root command: report outdated dependencies.
type CheckController struct {
	command   commands.Check
	presenter *presenters.ConsolePresenter
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check, presenter *presenters.ConsolePresenter) *CheckController {
	return &CheckController{command: command, presenter: presenter}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check [path]",
		Short: "Check for outdated Swift package dependencies",
		Long: `Scan a Package.resolved file and report dependencies with newer tagged versions.

The path may be a directory, an .xcodeproj, an .xcworkspace or the
Package.resolved file itself. Version requirements declared in Package.swift
manifests and Xcode projects are used to tell updates that fit the declared
requirement (green) from those that need a manifest change (red).`,
	}
}

// Execute runs the check and prints the table or JSON report.
func (it *CheckController) Execute(cmd *cobra.Command, args []string) error {
	path, err := pathArgument(args)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("concurrency") {
		settings.Concurrency, _ = cmd.Flags().GetInt("concurrency")
		if settings.Concurrency <= 0 {
			return errors.New("--concurrency must be greater than zero")
		}
	}
	if all, _ := cmd.Flags().GetBool("all"); all {
		settings.ShowAll = true
	}
	if noManifest, _ := cmd.Flags().GetBool("no-manifest"); noManifest {
		scan := false
		settings.ScanManifests = &scan
	}

	result, err := it.command.Execute(cmd.Context(), commands.CheckOptions{
		Path:     path,
		Settings: settings,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Dependencies) == 0 {
		if result.Ignored > 0 {
			_, _ = fmt.Fprintf(out, allDependencies, result.Ignored)
			return nil
		}
		_, _ = fmt.Fprintln(out, noDependencies)
		return nil
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		report, jsonErr := it.presenter.FormatJSON(result.Dependencies, settings.ShowAll)
		if jsonErr != nil {
			return jsonErr
		}
		_, _ = fmt.Fprintln(out, report)
		return nil
	}

	_, _ = fmt.Fprintln(out, it.presenter.FormatTable(result.Dependencies, settings.ShowAll))
	return nil
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output results in JSON format")
	cmd.Flags().Bool("all", false, "Show all dependencies, not only outdated ones")
	cmd.Flags().Int("concurrency", entities.DefaultConcurrency, "Maximum number of concurrent tag lookups")
	cmd.Flags().Bool("no-manifest", false, "Do not read version requirements from manifests")
}
