// Package assets provides the deck stylesheet, script and shell template,
// and resolves logical asset references to hrefs relative to an output document.
//
// # Layers
//
// Assets are read from a stack of fs.FS layers. Embedded returns the
// built-in files alone; Overlay puts a directory on disk above them. A
// lookup only falls through to a lower layer when the file is absent, so
// an overlay may replace the shell template and keep the default
// stylesheet. List merges the names found in every layer, which is how
// custom themes become visible.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css     # deck.css and theme stylesheets
//	├── scripts/
//	│   └── {name}.js      # deck.js navigation script
//	└── templates/
//	    └── {name}.html    # shell.html document template
//
// # Href Resolution
//
// ResolveAssetHref maps a logical reference such as "css/deck.css" to the href
// a document written at a given output path should use. It never touches the
// filesystem.
//
// # Security
//
// Names carrying separators or ".." are rejected before any layer is read.
// Overlay files are resolved through symlinks and must stay inside the
// overlay directory.
package assets
