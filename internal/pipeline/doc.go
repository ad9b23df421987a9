// Package pipeline holds the HTML stages of deck rendering:
//   - Markdown to HTML fragments via Goldmark, with ==highlight== support
//   - Rewriting relative src/href references inside trusted fragments
//   - Assembling the document shell around rendered slides
//
// Deciding what a reference resolves to is the caller's concern; this
// package only walks markup.
package pipeline
