package main

import (
	"errors"
	"os"

	lessondeck "github.com/alnah/go-lessondeck"
	"github.com/alnah/go-lessondeck/internal/config"
	"github.com/alnah/go-lessondeck/internal/fileutil"
)

// Exit codes for the lessondeck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Deck rendered, possibly with degraded images
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, deck, or slide content
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDeck) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrPathDirectory) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, lessondeck.ErrMalformedDocument) ||
		errors.Is(err, lessondeck.ErrSchemaViolation) ||
		errors.Is(err, lessondeck.ErrContentContract) ||
		errors.Is(err, lessondeck.ErrUnknownLayout) ||
		errors.Is(err, lessondeck.ErrInvalidContent) ||
		errors.Is(err, lessondeck.ErrAssetUnresolved) ||
		errors.Is(err, lessondeck.ErrInvalidAssetPath) ||
		errors.Is(err, lessondeck.ErrStyleNotFound) ||
		errors.Is(err, lessondeck.ErrScriptNotFound) ||
		errors.Is(err, ErrInvalidDeck) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
