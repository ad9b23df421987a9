package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-lessondeck/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // LESSONDECK_CONFIG: config file name or path
	AssetRoot     string // LESSONDECK_ASSET_ROOT: logical asset root
	OutputDir     string // LESSONDECK_OUTPUT_DIR: default output directory
	ImageKey      string // LESSONDECK_IMAGE_KEY: image provider key
	ImageEndpoint string // LESSONDECK_IMAGE_ENDPOINT: provider search URL
}

// knownEnvVars lists valid LESSONDECK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LESSONDECK_CONFIG":         true,
	"LESSONDECK_ASSET_ROOT":     true,
	"LESSONDECK_OUTPUT_DIR":     true,
	"LESSONDECK_IMAGE_KEY":      true,
	"LESSONDECK_IMAGE_ENDPOINT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath:    os.Getenv("LESSONDECK_CONFIG"),
		AssetRoot:     os.Getenv("LESSONDECK_ASSET_ROOT"),
		OutputDir:     os.Getenv("LESSONDECK_OUTPUT_DIR"),
		ImageKey:      os.Getenv("LESSONDECK_IMAGE_KEY"),
		ImageEndpoint: os.Getenv("LESSONDECK_IMAGE_ENDPOINT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized LESSONDECK_* variables.
// Helps catch typos like LESSONDECK_IMAGES_KEY instead of LESSONDECK_IMAGE_KEY.
func warnUnknownEnvVars(w io.Writer) {
	for _, name := range unknownEnvVars() {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// unknownEnvVars returns the names of set LESSONDECK_* variables that are not recognized.
func unknownEnvVars() []string {
	var names []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "LESSONDECK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				names = append(names, name)
			}
		}
	}
	return names
}

// applyEnvConfig overlays environment values on the loaded config.
// Set variables win over the config file; flags are applied afterwards,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.AssetRoot != "" {
		cfg.Assets.Root = env.AssetRoot
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImageKey != "" {
		cfg.Images.APIKey = env.ImageKey
	}
	if env.ImageEndpoint != "" {
		cfg.Images.Endpoint = env.ImageEndpoint
	}
}
