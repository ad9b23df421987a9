package main

// Notes:
// - runRender: we test CLI/library parity on the same output path, stdout
//   output, default output directory, itemized rejection listings with exit 2,
//   the missing-key hint, and config/env/flag precedence end to end.
// - runValidate: we test valid and invalid decks.
// - The provider is an httptest server reached through LESSONDECK_IMAGE_ENDPOINT;
//   t.Setenv and t.Chdir prevent t.Parallel() for those tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	lessondeck "github.com/alnah/go-lessondeck"
)

// photoServer answers every search with one photo derived from the query,
// except queries starting with "missing".
func photoServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query().Get("query")
		photos := []map[string]any{}
		if !strings.HasPrefix(q, "missing") {
			photos = append(photos, map[string]any{
				"alt":          "photo of " + q,
				"photographer": "Ana",
				"src":          map[string]string{"large": "https://img.example/" + strings.ReplaceAll(q, " ", "-") + ".jpg"},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"photos": photos})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// clearImageEnv keeps the developer's own keys out of a test.
func clearImageEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LESSONDECK_IMAGE_KEY", "")
	t.Setenv("PEXELS_API_KEY", "")
	t.Setenv("LESSONDECK_CONFIG", "")
	t.Setenv("LESSONDECK_ASSET_ROOT", "")
	t.Setenv("LESSONDECK_OUTPUT_DIR", "")
}

// ---------------------------------------------------------------------------
// TestRender_MatchesLibrary - CLI/library parity
// ---------------------------------------------------------------------------

func TestRender_MatchesLibrary(t *testing.T) {
	clearImageEnv(t)
	srv, hits := photoServer(t)
	t.Setenv("LESSONDECK_IMAGE_ENDPOINT", srv.URL)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "deck.json", testDeck)

	code, _, stderr := runCLI(t, "render", "deck.json", "-o", "site/deck.html", "--image-key", "k")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	got, err := os.ReadFile(filepath.Join("site", "deck.html"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	r, err := lessondeck.NewRenderer(lessondeck.WithImageService(lessondeck.NewImageService(
		lessondeck.WithImageKey("k"),
		lessondeck.WithImageEndpoint(srv.URL),
	)))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	want, err := r.Render(context.Background(), lessondeck.Input{
		Document:   []byte(testDeck),
		OutputPath: "site/deck.html",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if string(got) != want.HTML {
		t.Errorf("CLI output differs from library output")
	}
	if !strings.Contains(string(got), "https://img.example/market-stalls.jpg") {
		t.Errorf("hero image not enriched")
	}
	if !strings.Contains(string(got), `href="../assets/`) {
		t.Errorf("stylesheet href not relative to site/")
	}
	if hits.Load() != 2 {
		t.Errorf("provider hits = %d, want one per render", hits.Load())
	}
}

// ---------------------------------------------------------------------------
// TestRender_Stdout - No output path
// ---------------------------------------------------------------------------

func TestRender_Stdout(t *testing.T) {
	clearImageEnv(t)
	deck := writeFile(t, t.TempDir(), "deck.json", testDeck)

	code, stdout, stderr := runCLI(t, "render", deck, "--no-images", "-q")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if !strings.HasPrefix(stdout, "<!DOCTYPE html>") {
		t.Errorf("stdout does not start with a document: %.60q", stdout)
	}
	if stderr != "" {
		t.Errorf("quiet render wrote to stderr: %q", stderr)
	}
}

// ---------------------------------------------------------------------------
// TestRender_OutputDirFromEnv - Default directory
// ---------------------------------------------------------------------------

func TestRender_OutputDirFromEnv(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "lesson.json", testDeck)
	t.Setenv("LESSONDECK_OUTPUT_DIR", "dist")

	code, stdout, stderr := runCLI(t, "render", "lesson.json", "--no-images")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if stdout != "" {
		t.Errorf("stdout = %.60q, want empty when writing a file", stdout)
	}
	if _, err := os.Stat(filepath.Join("dist", "lesson.html")); err != nil {
		t.Errorf("output not written to dist/lesson.html: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRender_AbsoluteOutput - Relative asset root against an absolute output
// ---------------------------------------------------------------------------

func TestRender_AbsoluteOutput(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "deck.json", testDeck)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(cwd, "site", "deck.html")

	code, _, stderr := runCLI(t, "render", "deck.json", "-o", out, "--no-images", "-q")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`href="../assets/css/deck.css"`, `src="../assets/js/deck.js"`} {
		if !strings.Contains(string(html), want) {
			t.Errorf("output missing %s", want)
		}
	}
}

func TestAnchorAssetRoot(t *testing.T) {
	t.Parallel()

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	absOut := filepath.Join(cwd, "out", "deck.html")
	absRoot := filepath.Join(cwd, "static")

	tests := []struct {
		name string
		out  string
		root string
		want string
	}{
		{"relative output keeps root", "dist/deck.html", "assets", "assets"},
		{"stdout keeps root", "", "assets", "assets"},
		{"absolute output anchors root", absOut, "assets", filepath.Join(cwd, "assets")},
		{"absolute root untouched", absOut, absRoot, absRoot},
		{"empty root untouched", absOut, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := anchorAssetRoot(tt.out, tt.root)
			if err != nil {
				t.Fatalf("anchorAssetRoot() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("anchorAssetRoot(%q, %q) = %q, want %q", tt.out, tt.root, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender_Precedence - Flags over env over config
// ---------------------------------------------------------------------------

func TestRender_Precedence(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "deck.json", testDeck)
	writeFile(t, ".", "classroom.yaml", "assets:\n  root: from-config\n  hrefs:\n    js/deck.js: /pinned/deck.js\nimages:\n  disabled: true\n")
	t.Setenv("LESSONDECK_CONFIG", "classroom")
	t.Setenv("LESSONDECK_ASSET_ROOT", "from-env")

	code, stdout, stderr := runCLI(t, "render", "deck.json")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	assertContains(t, stdout, `href="from-env/css/`)
	assertContains(t, stdout, `src="/pinned/deck.js"`)

	code, stdout, stderr = runCLI(t, "render", "deck.json", "--asset-root", "from-flag")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	assertContains(t, stdout, `href="from-flag/css/`)
}

// ---------------------------------------------------------------------------
// TestRender_RejectedDeck - Itemized listing, exit 2
// ---------------------------------------------------------------------------

func TestRender_RejectedDeck(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name      string
		deck      string
		wantLines []string
		wantHint  string
	}{
		{
			name:      "schema violations",
			deck:      `{"id": "d", "slug": "Bad Slug", "language": "fr", "version": "1.0.0", "level": "A1", "slides": [{"layout": "centered-text", "content": {"text": "x"}}]}`,
			wantLines: []string{"slug: ", "title: "},
		},
		{
			name:      "content issues",
			deck:      `{"id": "d", "slug": "s", "title": "T", "language": "fr", "version": "1.0.0", "level": "A1", "slides": [{"layout": "framed-list", "content": {"title": "x"}}, {"layout": "no-such-layout", "content": {}}]}`,
			wantLines: []string{"slides[0] (framed-list): missing listItems", "slides[1] (no-such-layout)"},
			wantHint:  "available layouts:",
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deck := writeFile(t, dir, "deck"+string(rune('a'+i))+".json", tt.deck)

			code, stdout, stderr := runCLI(t, "render", deck, "--no-images")
			if code != ExitUsage {
				t.Errorf("exit = %d, want %d", code, ExitUsage)
			}
			if stdout != "" {
				t.Errorf("rejected deck produced output")
			}
			for _, want := range tt.wantLines {
				assertContains(t, stderr, want)
			}
			assertContains(t, stderr, "issue(s)")
			if tt.wantHint != "" {
				assertContains(t, stderr, tt.wantHint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender_MalformedDeck - Parse failure hint
// ---------------------------------------------------------------------------

func TestRender_MalformedDeck(t *testing.T) {
	t.Parallel()
	deck := writeFile(t, t.TempDir(), "deck.yaml", "id: [unclosed\n")

	code, _, stderr := runCLI(t, "render", deck, "--no-images")
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	assertContains(t, stderr, "hint: check indentation")
}

// ---------------------------------------------------------------------------
// TestRender_MissingKeyHint - Degraded images still succeed
// ---------------------------------------------------------------------------

func TestRender_MissingKeyHint(t *testing.T) {
	clearImageEnv(t)
	srv, hits := photoServer(t)
	t.Setenv("LESSONDECK_IMAGE_ENDPOINT", srv.URL)
	deck := writeFile(t, t.TempDir(), "deck.json", testDeck)

	code, stdout, stderr := runCLI(t, "render", deck)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if hits.Load() != 0 {
		t.Errorf("provider hit %d times without a key", hits.Load())
	}
	assertContains(t, stdout, "Au marché")
	assertContains(t, stderr, "hint: set LESSONDECK_IMAGE_KEY")
}

// ---------------------------------------------------------------------------
// TestRender_ConfigNotFound - Hint lists searched paths
// ---------------------------------------------------------------------------

func TestRender_ConfigNotFound(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "deck.json", testDeck)

	code, _, stderr := runCLI(t, "render", "deck.json", "-c", "nope")
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	assertContains(t, stderr, "config file not found")
	assertContains(t, stderr, "hint: use --config")
}

// ---------------------------------------------------------------------------
// TestValidate - Findings listing
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		deck := writeFile(t, dir, "ok.json", testDeck)
		code, stdout, stderr := runCLI(t, "validate", deck)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %q", code, stderr)
		}
		assertContains(t, stdout, "valid")
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		deck := writeFile(t, dir, "bad.json", `{"id": "d", "slug": "s", "language": "fr", "version": "x", "level": "A1", "slides": []}`)
		code, stdout, stderr := runCLI(t, "validate", deck)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if stdout != "" {
			t.Errorf("stdout = %q, want empty", stdout)
		}
		for _, want := range []string{"slides: ", "title: ", "version: ", "3 issue(s)"} {
			assertContains(t, stderr, want)
		}
	})
}

func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("output missing %q:\n%s", substr, s)
	}
}
