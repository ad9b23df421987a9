package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-lessondeck/internal/fileutil"
	"github.com/alnah/go-lessondeck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the per-user config directory.
const AppName = "lessondeck"

// Field length limits.
const (
	MaxPathLength     = 4096 // Filesystem paths
	MaxURLLength      = 2048 // Browser limit
	MaxKeyLength      = 256  // Provider API keys
	MaxHrefRefLength  = 512  // Logical asset reference
	MaxDurationLength = 20   // "1m30s"
	MaxHrefEntries    = 256  // Pinned hrefs
)

// Config holds all configuration for deck rendering.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Assets AssetsConfig `yaml:"assets"`
	Images ImagesConfig `yaml:"images"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = stdout)
}

// AssetsConfig defines asset resolution and loading options.
type AssetsConfig struct {
	Root     string            `yaml:"root"`     // Logical asset root hrefs resolve against (default "assets")
	BasePath string            `yaml:"basePath"` // Custom asset directory for inlining (empty = embedded)
	Inline   bool              `yaml:"inline"`   // Embed stylesheet and script in the document
	Hrefs    map[string]string `yaml:"hrefs"`    // Pinned hrefs by logical reference
}

// ImagesConfig defines image provider options.
type ImagesConfig struct {
	Disabled     bool   `yaml:"disabled"`
	APIKey       string `yaml:"apiKey"`
	Endpoint     string `yaml:"endpoint"`
	Orientation  string `yaml:"orientation"`  // "landscape", "portrait", "square"
	PerPage      int    `yaml:"perPage"`      // 1-80
	Size         string `yaml:"size"`         // "large", "medium", "small"
	Variant      string `yaml:"variant"`      // Preferred src variant (e.g. "landscape")
	Timeout      string `yaml:"timeout"`      // Go duration, e.g. "10s"
	RateInterval string `yaml:"rateInterval"` // Minimum spacing between provider requests
}

// TimeoutDuration returns the parsed images.timeout, or zero when unset.
// Validate guarantees the value parses.
func (c ImagesConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// RateIntervalDuration returns the parsed images.rateInterval, or zero when unset.
func (c ImagesConfig) RateIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RateInterval)
	return d
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("assets.root", c.Assets.Root, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if len(c.Assets.Hrefs) > MaxHrefEntries {
		return fmt.Errorf("%w: assets.hrefs has %d entries (max %d)", ErrInvalidValue, len(c.Assets.Hrefs), MaxHrefEntries)
	}
	for ref, href := range c.Assets.Hrefs {
		if ref == "" {
			return fmt.Errorf("%w: assets.hrefs: empty reference", ErrInvalidValue)
		}
		if err := validateFieldLength("assets.hrefs key", ref, MaxHrefRefLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("assets.hrefs[%s]", ref), href, MaxURLLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("images.apiKey", c.Images.APIKey, MaxKeyLength); err != nil {
		return err
	}
	if err := validateFieldLength("images.endpoint", c.Images.Endpoint, MaxURLLength); err != nil {
		return err
	}
	if c.Images.Endpoint != "" && !fileutil.IsURL(c.Images.Endpoint) {
		return fmt.Errorf("%w: images.endpoint must be an http(s) URL, got %q", ErrInvalidValue, c.Images.Endpoint)
	}
	if c.Images.Orientation != "" {
		switch strings.ToLower(c.Images.Orientation) {
		case "landscape", "portrait", "square":
			// valid
		default:
			return fmt.Errorf("%w: images.orientation %q (must be landscape, portrait, or square)", ErrInvalidValue, c.Images.Orientation)
		}
	}
	if c.Images.Size != "" {
		switch strings.ToLower(c.Images.Size) {
		case "large", "medium", "small":
			// valid
		default:
			return fmt.Errorf("%w: images.size %q (must be large, medium, or small)", ErrInvalidValue, c.Images.Size)
		}
	}
	if c.Images.PerPage < 0 || c.Images.PerPage > 80 {
		return fmt.Errorf("%w: images.perPage must be between 1 and 80, got %d", ErrInvalidValue, c.Images.PerPage)
	}
	if err := validateDuration("images.timeout", c.Images.Timeout); err != nil {
		return err
	}
	if err := validateDuration("images.rateInterval", c.Images.RateInterval); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateDuration(fieldName, value string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, value, MaxDurationLength); err != nil {
		return err
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if d < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, fieldName)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: embedded assets under "assets",
// provider defaults, images enabled.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{DefaultDir: ""},
		Assets: AssetsConfig{Root: "assets"},
		Images: ImagesConfig{},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/lessondeck/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError reports every location searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }
