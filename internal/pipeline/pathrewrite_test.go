package pipeline

// Notes:
// - Tests RewriteRefs through its public API with a map-backed resolver
// - Error branches of parseHTML/renderHTML are not covered: the html package
//   does not fail on string input

import (
	"strings"
	"testing"
)

// mapResolver resolves only the refs present in m.
func mapResolver(m map[string]string) RefResolver {
	return func(ref string) (string, bool) {
		out, ok := m[ref]
		return out, ok
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRefs - Attribute Coverage
// ---------------------------------------------------------------------------

func TestRewriteRefs(t *testing.T) {
	t.Parallel()

	resolve := mapResolver(map[string]string{
		"img/a.png":      "../assets/img/a.png",
		"audio/t1.mp3":   "../assets/audio/t1.mp3",
		"video/v.mp4":    "../assets/video/v.mp4",
		"img/poster.png": "../assets/img/poster.png",
		"docs/ref.pdf":   "../assets/docs/ref.pdf",
		"subs/en.vtt":    "../assets/subs/en.vtt",
	})

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "img src",
			html:         `<p><img src="img/a.png" alt="a"></p>`,
			wantContains: []string{`src="../assets/img/a.png"`, `alt="a"`},
		},
		{
			name:         "anchor href",
			html:         `<a href="docs/ref.pdf">ref</a>`,
			wantContains: []string{`href="../assets/docs/ref.pdf"`},
		},
		{
			name:         "audio src",
			html:         `<audio controls src="audio/t1.mp3"></audio>`,
			wantContains: []string{`src="../assets/audio/t1.mp3"`},
		},
		{
			name:         "video src and poster",
			html:         `<video src="video/v.mp4" poster="img/poster.png"></video>`,
			wantContains: []string{`src="../assets/video/v.mp4"`, `poster="../assets/img/poster.png"`},
		},
		{
			name:         "source and track inside audio",
			html:         `<video><source src="video/v.mp4"><track src="subs/en.vtt"></video>`,
			wantContains: []string{`src="../assets/video/v.mp4"`, `src="../assets/subs/en.vtt"`},
		},
		{
			name:         "unknown ref unchanged",
			html:         `<img src="img/other.png">`,
			wantContains: []string{`src="img/other.png"`},
		},
		{
			name:         "fragment ref unchanged",
			html:         `<a href="#slide-2">next</a>`,
			wantContains: []string{`href="#slide-2"`},
		},
		{
			name:         "non-ref attribute unchanged",
			html:         `<p title="img/a.png">x</p>`,
			wantContains: []string{`title="img/a.png"`},
			wantExcludes: []string{"../assets"},
		},
		{
			name:         "text mentioning path unchanged",
			html:         `<p>see img/a.png</p>`,
			wantContains: []string{`see img/a.png`},
			wantExcludes: []string{"../assets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRefs(tt.html, resolve)
			if err != nil {
				t.Fatalf("RewriteRefs() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRefs() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteRefs() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRefs_Passthrough - Untouched Input
// ---------------------------------------------------------------------------

func TestRewriteRefs_Passthrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		resolve RefResolver
	}{
		{"plain text", "no markup here", mapResolver(nil)},
		{"empty", "", mapResolver(nil)},
		{"nil resolver", `<img src="img/a.png">`, nil},
		// Unchanged trees are returned byte-identical, not re-serialized.
		{"nothing resolved", `<p>Hi<br/><img src="x.png"></p>`, mapResolver(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRefs(tt.html, tt.resolve)
			if err != nil {
				t.Fatalf("RewriteRefs() error = %v", err)
			}
			if got != tt.html {
				t.Errorf("RewriteRefs() = %q, want %q", got, tt.html)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRefs_Document - Full Documents
// ---------------------------------------------------------------------------

func TestRewriteRefs_Document(t *testing.T) {
	t.Parallel()

	input := `<!DOCTYPE html><html><head><link rel="stylesheet" href="css/x.css"></head><body><img src="img/a.png"></body></html>`
	resolve := mapResolver(map[string]string{
		"css/x.css": "assets/css/x.css",
		"img/a.png": "assets/img/a.png",
	})

	got, err := RewriteRefs(input, resolve)
	if err != nil {
		t.Fatalf("RewriteRefs() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", `href="assets/css/x.css"`, `src="assets/img/a.png"`} {
		if !strings.Contains(got, want) {
			t.Errorf("RewriteRefs() = %q, want to contain %q", got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRefs_FragmentNoWrapper - Fragments Stay Fragments
// ---------------------------------------------------------------------------

func TestRewriteRefs_FragmentNoWrapper(t *testing.T) {
	t.Parallel()

	got, err := RewriteRefs(`<img src="a.png">`, mapResolver(map[string]string{"a.png": "b.png"}))
	if err != nil {
		t.Fatalf("RewriteRefs() error = %v", err)
	}
	if got != `<img src="b.png"/>` {
		t.Errorf("RewriteRefs() = %q, want %q", got, `<img src="b.png"/>`)
	}
	for _, bad := range []string{"<html", "<body", "<head"} {
		if strings.Contains(got, bad) {
			t.Errorf("RewriteRefs() = %q, should not contain %q", got, bad)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRewriteRefs_EscapesOutput - Resolved Values Are Attribute-Escaped
// ---------------------------------------------------------------------------

func TestRewriteRefs_EscapesOutput(t *testing.T) {
	t.Parallel()

	got, err := RewriteRefs(`<a href="x">x</a>`, mapResolver(map[string]string{"x": `y"><script>`}))
	if err != nil {
		t.Fatalf("RewriteRefs() error = %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("RewriteRefs() = %q, resolved value must be escaped", got)
	}
}
