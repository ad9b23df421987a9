package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

// testDeck is a valid two-slide deck. The hero slide needs an image lookup.
const testDeck = `{
  "id": "deck-cli-001",
  "slug": "au-marche",
  "title": "Au marché",
  "language": "fr",
  "version": "1.0.0",
  "level": "A2",
  "slides": [
    {"layout": "hero-title", "content": {"title": "Au marché", "imageQuery": "market stalls"}},
    {"layout": "framed-list", "content": {"title": "Objectifs", "listItems": ["Saluer", "Demander un prix", "Remercier"]}}
  ]
}`

// testEnv returns an environment with captured output and a fixed id.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		NewID:  func() string { return "00000000-0000-4000-8000-000000000000" },
	}, &stdout, &stderr
}

// runCLI runs the CLI with args (without the program name).
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	env, stdout, stderr := testEnv()
	code := runMain(context.Background(), append([]string{"lessondeck"}, args...), env)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}
