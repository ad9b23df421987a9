// Package lessondeck renders declarative lesson deck documents into single,
// self-contained HTML documents.
//
// # Quick Start
//
// Create a renderer and render a deck:
//
//	r, err := lessondeck.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, lessondeck.Input{
//	    Document:   deckJSON,
//	    OutputPath: "out/lesson.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out/lesson.html", []byte(result.HTML), 0644)
//
// The library never writes files; OutputPath is only used to compute
// relative asset hrefs.
//
// # Rendering Pipeline
//
// Render runs these stages in order:
//
//  1. Schema validation of the document envelope (JSON or YAML)
//  2. Content contracts: each slide is decoded into its layout's typed content
//  3. Image enrichment for image slots with a query and no explicit URL
//  4. Asset resolution for the stylesheet, theme, script and cover image
//  5. Slide rendering through the layout registry and shell assembly
//
// Stages 1 and 2 report every finding at once, as *ValidationError or
// *ContentError, before any network call is made. Image lookups never fail a
// render. For the same input and options the output is byte-identical.
//
// # Layouts
//
// The layout set is closed; Layouts lists every layout with its required
// content fields. Fields ending in Html carry trusted markup and are inlined;
// every other string is escaped.
//
// # Image Enrichment
//
// An ImageService resolves its provider key once, caches provider responses
// for its lifetime and logs each kind of failure once. Share one across
// renderers:
//
//	images := lessondeck.NewImageService(lessondeck.WithImageKey(key))
//	r, err := lessondeck.NewRenderer(lessondeck.WithImageService(images))
//
// # Custom Assets
//
// Override the embedded stylesheet, script or shell template:
//
//	r, err := lessondeck.NewRenderer(lessondeck.WithAssetPath("/path/to/assets"))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── deck.css
//	├── scripts/
//	│   └── deck.js
//	└── templates/
//	    └── shell.html
//
// Missing files fall back to the embedded defaults.
package lessondeck
