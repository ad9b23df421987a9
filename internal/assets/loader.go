package assets

import (
	"fmt"
	"strings"
)

// AssetLoader loads the deck stylesheet, script and shell template by name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or ErrStyleNotFound.
	LoadStyle(name string) (string, error)
	// LoadScript returns scripts/{name}.js or ErrScriptNotFound.
	LoadScript(name string) (string, error)
	// LoadTemplate returns templates/{name}.html or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// Kind is one family of assets: where it lives and how a miss is reported.
type Kind struct {
	Dir      string
	Ext      string
	NotFound error
}

// Asset kinds shipped with the module.
var (
	Style    = Kind{Dir: "styles", Ext: ".css", NotFound: ErrStyleNotFound}
	Script   = Kind{Dir: "scripts", Ext: ".js", NotFound: ErrScriptNotFound}
	Template = Kind{Dir: "templates", Ext: ".html", NotFound: ErrTemplateNotFound}
)

// file returns the file name for an asset, rejecting names that could
// address anything outside the kind's directory.
func (k Kind) file(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return name + k.Ext, nil
}
