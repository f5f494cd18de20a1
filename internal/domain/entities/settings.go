package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// DefaultConcurrency caps the number of tag lookups in flight at once.
const DefaultConcurrency = 8

// Settings is the optional swiftoutdated configuration file.
type Settings struct {
	Concurrency   int      `yaml:"concurrency" hcl:"concurrency,optional"`
	Ignore        []string `yaml:"ignore" hcl:"ignore,optional"`
	ShowAll       bool     `yaml:"show_all" hcl:"show_all,optional"`
	Token         string   `yaml:"token" hcl:"token,optional"`
	ScanManifests *bool    `yaml:"scan_manifests" hcl:"scan_manifests,optional"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns the settings used when no file is found.
func NewDefaultSettings() *Settings {
	scan := true
	return &Settings{Concurrency: DefaultConcurrency, ScanManifests: &scan}
}

// NewSettings reads a YAML or HCL settings file, chosen by extension, expands
// ${ENV_VAR} references in the token and fills in defaults.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		if decodeErr := hclsimple.Decode(path, data, newEvalContext(), &settings); decodeErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", decodeErr)
		}
	default:
		if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	}

	settings.Token = resolveToken(settings.Token)
	settings.applyDefaults()
	return &settings, nil
}

// ShouldScanManifests reports whether manifests are read for requirements.
func (s *Settings) ShouldScanManifests() bool {
	return s.ScanManifests == nil || *s.ScanManifests
}

// IsIgnored reports whether a dependency identity is listed under ignore.
func (s *Settings) IsIgnored(name string) bool {
	for _, ignored := range s.Ignore {
		if strings.EqualFold(ignored, name) {
			return true
		}
	}
	return false
}

func (s *Settings) applyDefaults() {
	if s.Concurrency <= 0 {
		s.Concurrency = DefaultConcurrency
	}
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".swiftoutdated.yaml",
		".swiftoutdated.yml",
		".swiftoutdated.hcl",
		"swiftoutdated.yaml",
		"swiftoutdated.yml",
		"swiftoutdated.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// newEvalContext exposes the process environment to HCL files as `env.NAME`.
func newEvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, found := strings.Cut(kv, "=")
		if !found || !hclsyntax.ValidIdentifier(name) {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}
