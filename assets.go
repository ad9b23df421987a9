package lessondeck

import (
	"errors"

	"github.com/alnah/go-lessondeck/internal/archetype"
	"github.com/alnah/go-lessondeck/internal/assets"
)

// Logical references of the built-in shell assets.
const (
	// StylesheetRef is the deck stylesheet, relative to the asset root.
	StylesheetRef = assets.StylesheetRef

	// ScriptRef is the deck script, relative to the asset root.
	ScriptRef = assets.ScriptRef

	// DefaultAssetRoot is used when Input.AssetRoot is empty.
	DefaultAssetRoot = "assets"
)

// HrefOptions controls how logical asset references become hrefs.
type HrefOptions struct {
	// AssetRoot is the directory logical references are relative to.
	AssetRoot string
	// AssetPaths pins the href of individual references, keyed by reference.
	AssetPaths map[string]string
}

// ResolveAssetHref returns the href a document written at outputPath uses to
// reach ref, always with forward slashes:
//   - a pinned href in opts.AssetPaths wins
//   - absolute URLs (http, https, data, protocol-relative), root-relative
//     paths and fragments are returned unchanged
//   - otherwise the path from the output directory to AssetRoot/ref
//
// An empty outputPath means the document sits in the working directory. The
// filesystem is never consulted. Returns ErrAssetUnresolved when AssetRoot is
// empty or the relative path cannot be computed.
func ResolveAssetHref(outputPath, ref string, opts HrefOptions) (string, error) {
	href, err := assets.ResolveAssetHref(outputPath, ref, assets.HrefOptions(opts))
	if err != nil {
		return "", convertAssetError(err)
	}
	return href, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isError(err, assets.ErrUnresolved):
		return wrapError(ErrAssetUnresolved, err)
	case isError(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case isError(err, assets.ErrScriptNotFound):
		return wrapError(ErrScriptNotFound, err)
	case isError(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case isError(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidAssetPath, err)
	case isError(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case isError(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// convertLayoutError maps internal layout errors to public errors.
func convertLayoutError(err error) error {
	switch {
	case isError(err, archetype.ErrUnknownLayout):
		return wrapError(ErrUnknownLayout, err)
	case isError(err, archetype.ErrInvalidContent):
		return wrapError(ErrInvalidContent, err)
	default:
		return wrapError(ErrSlideRender, err)
	}
}

// isError checks if err wraps or equals target using errors.Is semantics.
func isError(err, target error) bool {
	return errors.Is(err, target)
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
