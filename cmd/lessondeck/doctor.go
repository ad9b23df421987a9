package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	lessondeck "github.com/alnah/go-lessondeck"
	"github.com/alnah/go-lessondeck/internal/assets"
	"github.com/alnah/go-lessondeck/internal/config"
	"github.com/alnah/go-lessondeck/internal/fileutil"
)

// ErrDoctorFailed is returned when a diagnostic check reports an error.
var ErrDoctorFailed = errors.New("doctor found errors")

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo `json:"config"`
	Assets   assetsInfo `json:"assets"`
	Images   imagesInfo `json:"images"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo describes which config file was loaded.
type configInfo struct {
	Name   string `json:"name,omitempty"`
	Loaded bool   `json:"loaded"`
}

// assetsInfo holds asset resolution and loading results.
type assetsInfo struct {
	Root       string   `json:"root"`
	RootExists bool     `json:"root_exists"`
	BasePath   string   `json:"base_path,omitempty"`
	Loadable   bool     `json:"loadable"`
	Inline     bool     `json:"inline"`
	Themes     []string `json:"themes"`
}

// imagesInfo holds image provider settings. The key itself is never reported.
type imagesInfo struct {
	Enabled   bool   `json:"enabled"`
	KeySource string `json:"key_source"` // "LESSONDECK_IMAGE_KEY", "config", "PEXELS_API_KEY", "none"
	Endpoint  string `json:"endpoint,omitempty"`
}

// envInfo holds platform and environment variable results.
type envInfo struct {
	OS          string   `json:"os"`
	Arch        string   `json:"arch"`
	UnknownVars []string `json:"unknown_vars,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctor executes the doctor command.
// Warnings still succeed; any error fails with ErrDoctorFailed.
func runDoctor(args []string, env *Environment) error {
	f, positional, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: doctor takes no arguments, got %q", ErrUsage, positional)
	}

	result := diagnose(f.config)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ErrDoctorFailed
	}
	return nil
}

// diagnose performs all diagnostic checks.
func diagnose(configName string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:          runtime.GOOS,
			Arch:        runtime.GOARCH,
			UnknownVars: unknownEnvVars(),
		},
	}

	envCfg := loadEnvConfig()
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg := checkConfig(result, configName)
	keyFromFile := cfg.Images.APIKey != ""
	applyEnvConfig(envCfg, cfg)

	checkAssets(result, cfg)
	checkImages(result, cfg, envCfg, keyFromFile)
	checkSystem(result)

	for _, name := range result.Env.UnknownVars {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Unknown environment variable %s (typo?)", name))
	}

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkConfig loads the named config, falling back to defaults on failure.
func checkConfig(result *doctorResult, name string) *config.Config {
	result.Config.Name = name
	cfg, err := loadConfig(name)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return config.DefaultConfig()
	}
	result.Config.Loaded = name != ""
	return cfg
}

// checkAssets verifies the asset root and any custom asset directory.
func checkAssets(result *doctorResult, cfg *config.Config) {
	result.Assets.Root = cfg.Assets.Root
	result.Assets.BasePath = cfg.Assets.BasePath
	result.Assets.Inline = cfg.Assets.Inline

	result.Assets.RootExists = fileutil.DirExists(cfg.Assets.Root)
	if !result.Assets.RootExists && !cfg.Assets.Inline {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Asset root %q not found; linked stylesheet and script will not load", cfg.Assets.Root))
	}

	opts := []lessondeck.Option{lessondeck.WithoutImages()}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, lessondeck.WithAssetPath(cfg.Assets.BasePath))
	}
	if _, err := lessondeck.NewRenderer(opts...); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Assets: %v", err))
		return
	}
	result.Assets.Loadable = true
	result.Assets.Themes = availableThemes(cfg.Assets.BasePath)
}

// availableThemes lists the stylesheets a deck may name as its theme.
func availableThemes(basePath string) []string {
	layers := assets.Embedded()
	if basePath != "" {
		if overlay, err := assets.Overlay(basePath); err == nil {
			layers = overlay
		}
	}
	themes := make([]string, 0, 4)
	for _, name := range layers.List(assets.Style) {
		if name != assets.DefaultStyleName {
			themes = append(themes, name)
		}
	}
	return themes
}

// checkImages reports where the provider key would come from.
func checkImages(result *doctorResult, cfg *config.Config, envCfg *envConfig, keyFromFile bool) {
	result.Images.Enabled = !cfg.Images.Disabled
	result.Images.Endpoint = cfg.Images.Endpoint

	switch {
	case envCfg.ImageKey != "":
		result.Images.KeySource = "LESSONDECK_IMAGE_KEY"
	case keyFromFile:
		result.Images.KeySource = "config"
	case os.Getenv(lessondeck.EnvPexelsKey) != "":
		result.Images.KeySource = lessondeck.EnvPexelsKey
	default:
		result.Images.KeySource = "none"
	}

	if result.Images.Enabled && result.Images.KeySource == "none" {
		result.Warnings = append(result.Warnings,
			"No image provider key; image queries will render without images. Set LESSONDECK_IMAGE_KEY or use --no-images")
	}
}

// checkSystem verifies the temp directory is writable; atomic output writes depend on it.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "lessondeck-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "lessondeck doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Loaded:
		fmt.Fprintf(w, "  [OK] Loaded: %s\n", r.Config.Name)
	case r.Config.Name == "":
		fmt.Fprintln(w, "  [OK] Defaults (no config file)")
	default:
		fmt.Fprintf(w, "  [ERROR] Could not load: %s\n", r.Config.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.RootExists {
		fmt.Fprintf(w, "  [OK] Root: %s\n", r.Assets.Root)
	} else {
		fmt.Fprintf(w, "  [WARN] Root: %s (not found)\n", r.Assets.Root)
	}
	source := "embedded"
	if r.Assets.BasePath != "" {
		source = r.Assets.BasePath
	}
	if r.Assets.Loadable {
		fmt.Fprintf(w, "  [OK] Templates and styles: %s\n", source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Templates and styles: %s\n", source)
	}
	if len(r.Assets.Themes) > 0 {
		fmt.Fprintf(w, "  [OK] Themes: %s\n", strings.Join(r.Assets.Themes, ", "))
	}
	if r.Assets.Inline {
		fmt.Fprintln(w, "  [OK] Inline: enabled")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Images")
	if !r.Images.Enabled {
		fmt.Fprintln(w, "  [OK] Enrichment: disabled")
	} else {
		fmt.Fprintln(w, "  [OK] Enrichment: enabled")
		fmt.Fprintf(w, "  [OK] Key source: %s\n", r.Images.KeySource)
		if r.Images.Endpoint != "" {
			fmt.Fprintf(w, "  [OK] Endpoint: %s\n", r.Images.Endpoint)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
