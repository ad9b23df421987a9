// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/lessondeck/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/lessondeck") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownLayout returns hints listing the registered layouts.
func ForUnknownLayout(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available layouts: " + strings.Join(available, ", "))
}

// ForMalformedDocument returns hints for decks that fail to parse.
func ForMalformedDocument(path string) string {
	ext := strings.ToLower(path)
	switch {
	case strings.HasSuffix(ext, ".yaml"), strings.HasSuffix(ext, ".yml"):
		return format("check indentation; tabs are not allowed in YAML")
	case strings.HasSuffix(ext, ".json"):
		return format("check for trailing commas and unquoted keys")
	}
	return format("deck must be a JSON or YAML document")
}

// ForAssetUnresolved returns hints for shell assets that could not be resolved.
func ForAssetUnresolved() string {
	return format("set --asset-root or pin the href with --asset-href ref=href")
}

// ForImageKey returns a hint when image enrichment has no provider key.
// Returns empty when enrichment is explicitly disabled or a key is present.
func ForImageKey(disabled bool) string {
	if disabled {
		return ""
	}
	if os.Getenv("LESSONDECK_IMAGE_KEY") != "" || os.Getenv("PEXELS_API_KEY") != "" {
		return ""
	}
	return formatHints([]string{
		"set LESSONDECK_IMAGE_KEY to enable image search",
		"use --no-images to silence this",
	})
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
