package lessondeck

// Notes:
// - Path arithmetic is covered in internal/assets; these tests pin the
//   public contract and the error mapping
// - Absolute paths come from t.TempDir so the table runs on every OS

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alnah/go-lessondeck/internal/archetype"
	"github.com/alnah/go-lessondeck/internal/assets"
)

// ---------------------------------------------------------------------------
// TestResolveAssetHref
// ---------------------------------------------------------------------------

func TestResolveAssetHref(t *testing.T) {
	t.Parallel()

	root := HrefOptions{AssetRoot: "assets"}
	abs := t.TempDir()

	tests := []struct {
		name    string
		output  string
		ref     string
		opts    HrefOptions
		want    string
		wantErr error
	}{
		{"working directory", "", "css/deck.css", root, "assets/css/deck.css", nil},
		{"output beside root", "index.html", "js/deck.js", root, "assets/js/deck.js", nil},
		{"nested output", "out/week1/lesson.html", "audio/track1.mp3", root, "../../assets/audio/track1.mp3", nil},
		{"https unchanged", "out/a.html", "https://cdn.example/x.css", root, "https://cdn.example/x.css", nil},
		{"data unchanged", "out/a.html", "data:image/png;base64,AA==", root, "data:image/png;base64,AA==", nil},
		{"protocol relative unchanged", "out/a.html", "//cdn.example/x.css", root, "//cdn.example/x.css", nil},
		{"fragment unchanged", "out/a.html", "#slide-3", root, "#slide-3", nil},
		{
			name:   "pinned href wins",
			output: "out/a.html",
			ref:    "css/deck.css",
			opts:   HrefOptions{AssetRoot: "assets", AssetPaths: map[string]string{"css/deck.css": "/static/deck.css"}},
			want:   "/static/deck.css",
		},
		{
			name:   "pinned href without root",
			ref:    "css/deck.css",
			opts:   HrefOptions{AssetPaths: map[string]string{"css/deck.css": "deck.css"}},
			want:   "deck.css",
		},
		{"no root", "out/a.html", "css/deck.css", HrefOptions{}, "", ErrAssetUnresolved},
		{"absolute output relative root", filepath.Join(abs, "a.html"), "css/deck.css", root, "", ErrAssetUnresolved},
		{
			name:   "absolute root relative output",
			output: "out/a.html",
			ref:    "css/deck.css",
			opts:   HrefOptions{AssetRoot: filepath.Join(abs, "assets")},
			want:   filepath.ToSlash(filepath.Join(abs, "assets", "css", "deck.css")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveAssetHref(tt.output, tt.ref, tt.opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveAssetHref() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAssetHref() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveAssetHref() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertAssetError - Internal To Public Mapping
// ---------------------------------------------------------------------------

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		internal error
		public   error
	}{
		{assets.ErrUnresolved, ErrAssetUnresolved},
		{assets.ErrStyleNotFound, ErrStyleNotFound},
		{assets.ErrScriptNotFound, ErrScriptNotFound},
		{assets.ErrTemplateNotFound, ErrTemplateNotFound},
		{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{assets.ErrPathTraversal, ErrInvalidAssetPath},
		{assets.ErrInvalidAssetName, ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.internal.Error(), func(t *testing.T) {
			t.Parallel()

			original := fmt.Errorf("%w: detail", tt.internal)
			got := convertAssetError(original)
			if !errors.Is(got, tt.public) {
				t.Errorf("convertAssetError() = %v, want %v", got, tt.public)
			}
			if got.Error() != original.Error() {
				t.Errorf("message = %q, want original %q", got.Error(), original.Error())
			}
			if errors.Is(got, tt.internal) {
				t.Error("internal sentinel should not leak")
			}
		})
	}

	if convertAssetError(nil) != nil {
		t.Error("convertAssetError(nil) should be nil")
	}
	other := errors.New("other")
	if convertAssetError(other) != other {
		t.Error("unknown errors should pass through")
	}
}

func TestConvertLayoutError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		internal error
		public   error
	}{
		{archetype.ErrUnknownLayout, ErrUnknownLayout},
		{archetype.ErrInvalidContent, ErrInvalidContent},
		{archetype.ErrRender, ErrSlideRender},
	}

	for _, tt := range tests {
		if got := convertLayoutError(fmt.Errorf("%w: x", tt.internal)); !errors.Is(got, tt.public) {
			t.Errorf("convertLayoutError(%v) = %v, want %v", tt.internal, got, tt.public)
		}
	}
}
