package assets

import "errors"

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrScriptNotFound   = errors.New("script not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names carrying separators or "..".
	ErrInvalidAssetName = errors.New("invalid asset name")
	// ErrInvalidBasePath rejects an overlay that is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	// ErrPathTraversal reports an overlay file that links outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrUnresolved reports a logical reference with no usable href.
	ErrUnresolved = errors.New("asset reference unresolved")
)
