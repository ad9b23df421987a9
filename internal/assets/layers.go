package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

//go:embed styles/* scripts/* templates/*
var builtin embed.FS

// Layers loads assets from a stack of directories, topmost first. A lookup
// falls through to the next layer only when the asset is absent; any other
// failure is returned as is.
type Layers struct {
	stack []layer
}

// layer is one asset source. root is set for directories on disk and is
// used to keep symlinked files inside that directory.
type layer struct {
	fsys fs.FS
	root string
}

// Embedded returns the built-in assets.
func Embedded() *Layers {
	return &Layers{stack: []layer{{fsys: builtin}}}
}

// Overlay returns dir stacked on top of the built-in assets, so a custom
// directory may override a single file and inherit the rest.
// Returns ErrInvalidBasePath if dir is empty, missing or not a readable directory.
func Overlay(dir string) (*Layers, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrInvalidBasePath, dir)
	}
	if _, err := os.ReadDir(resolved); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}

	return &Layers{stack: []layer{
		{fsys: os.DirFS(resolved), root: resolved},
		{fsys: builtin},
	}}, nil
}

// Custom reports whether a directory on disk sits above the built-in assets.
func (l *Layers) Custom() bool {
	return len(l.stack) > 1
}

// Load returns the named asset of the given kind from the topmost layer
// that has it.
func (l *Layers) Load(kind Kind, name string) (string, error) {
	file, err := kind.file(name)
	if err != nil {
		return "", err
	}
	rel := path.Join(kind.Dir, file)

	for _, ly := range l.stack {
		data, err := ly.read(rel)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w: %q", kind.NotFound, name)
}

// LoadStyle implements AssetLoader.
func (l *Layers) LoadStyle(name string) (string, error) { return l.Load(Style, name) }

// LoadScript implements AssetLoader.
func (l *Layers) LoadScript(name string) (string, error) { return l.Load(Script, name) }

// LoadTemplate implements AssetLoader.
func (l *Layers) LoadTemplate(name string) (string, error) { return l.Load(Template, name) }

// List returns the sorted names of every asset of the given kind across
// all layers, without extensions.
func (l *Layers) List(kind Kind) []string {
	var names []string
	for _, ly := range l.stack {
		entries, err := fs.ReadDir(ly.fsys, kind.Dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), kind.Ext) {
				continue
			}
			names = append(names, strings.TrimSuffix(e.Name(), kind.Ext))
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func (ly layer) read(rel string) ([]byte, error) {
	if ly.root != "" {
		if err := ly.contain(rel); err != nil {
			return nil, err
		}
	}
	data, err := fs.ReadFile(ly.fsys, rel)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetRead, rel, err)
	}
	return data, err
}

// contain fails with ErrPathTraversal when rel resolves outside the layer root.
func (ly layer) contain(rel string) error {
	resolved, err := filepath.EvalSymlinks(filepath.Join(ly.root, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", ErrAssetRead, rel, err)
	}
	if resolved != ly.root && !strings.HasPrefix(resolved, ly.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, rel)
	}
	return nil
}
