// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild. Go's //go:embed
// bakes the file into the binary, so the packaged version reported by
// --version always matches the metadata the binary was built from.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing fields.
		defaults = brand{
			CLIName:     "go-cli-template",
			DisplayName: "Go CLI Template",
			Description: "A production-ready Go CLI template with Cobra",
			Version:     "0.0.0",
			HomeDir:     ".go-cli-template",
			EnvPrefix:   "GO_CLI_TEMPLATE",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "go-cli-template").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// Version returns the packaged semantic version.
func Version() string { load(); return defaults.Version }

// HomeDir returns the dot-directory name under $HOME (e.g., ".go-cli-template").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "GO_CLI_TEMPLATE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("home") → "GO_CLI_TEMPLATE_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
