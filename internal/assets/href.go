package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-lessondeck/internal/fileutil"
)

// HrefOptions controls how logical asset references become hrefs.
type HrefOptions struct {
	// AssetRoot is the directory logical references are relative to.
	AssetRoot string
	// AssetPaths pins the href of individual references.
	AssetPaths map[string]string
}

// ResolveAssetHref returns the href a document written at outputPath uses to
// reach ref. Pinned hrefs win; URLs, root-relative paths and fragments are
// returned unchanged; everything else is made relative to the output directory.
// An empty outputPath means the working directory. The filesystem is never consulted.
func ResolveAssetHref(outputPath, ref string, opts HrefOptions) (string, error) {
	if href, ok := opts.AssetPaths[ref]; ok {
		return href, nil
	}
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnresolved)
	}
	if fileutil.IsAbsoluteRef(ref) || fileutil.IsFragmentRef(ref) || strings.HasPrefix(ref, "/") {
		return ref, nil
	}
	if opts.AssetRoot == "" {
		return "", fmt.Errorf("%w: %q: no asset root", ErrUnresolved, ref)
	}

	outDir := "."
	if outputPath != "" {
		outDir = filepath.Dir(outputPath)
	}
	target := filepath.Join(opts.AssetRoot, filepath.FromSlash(ref))

	outAbs, targetAbs := filepath.IsAbs(outDir), filepath.IsAbs(target)
	switch {
	case targetAbs && !outAbs:
		return filepath.ToSlash(target), nil
	case outAbs && !targetAbs:
		return "", fmt.Errorf("%w: %q: relative asset root %q against absolute output %q",
			ErrUnresolved, ref, opts.AssetRoot, outputPath)
	}

	rel, err := filepath.Rel(outDir, target)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnresolved, ref, err)
	}
	return filepath.ToSlash(rel), nil
}
