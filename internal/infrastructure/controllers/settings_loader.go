package controllers

import (
	"errors"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/swiftoutdated/internal/domain/entities"
)

// loadSettings reads the file given with --config, or the first one found in
// the default locations, and applies the persistent flag overrides. Without a
// file the defaults are used.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
		}
		configPath = found
	}

	settings := entities.NewDefaultSettings()
	if configPath != "" {
		logger.Debugf("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if token, _ := cmd.Flags().GetString("token"); token != "" {
		settings.Token = token
	}
	return settings, nil
}

// pathArgument returns the single optional positional path, defaulting to the
// working directory.
func pathArgument(args []string) (string, error) {
	switch len(args) {
	case 0:
		return ".", nil
	case 1:
		return args[0], nil
	default:
		return "", errors.New("expected at most one path argument")
	}
}
