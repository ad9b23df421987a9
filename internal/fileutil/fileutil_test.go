package fileutil_test

// Notes:
// - WriteFileAtomic write/close error branches are not tested because
//   triggering disk write failures is platform-specific.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-lessondeck/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateOutputPath - Output path validation
// ---------------------------------------------------------------------------

func TestValidateOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"regular file path", filepath.Join(dir, "deck.html"), nil},
		{"nested missing dirs", filepath.Join(dir, "a", "b", "deck.html"), nil},
		{"empty path", "", fileutil.ErrPathEmpty},
		{"null byte", "deck\x00.html", fileutil.ErrPathNullByte},
		{"existing directory", dir, fileutil.ErrPathDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateOutputPath(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateOutputPath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Output writing
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "nested", "deck.html")
		if err := fileutil.WriteFileAtomic(path, []byte("<html></html>")); err != nil {
			t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if string(got) != "<html></html>" {
			t.Errorf("content = %q, want %q", got, "<html></html>")
		}
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "deck.html")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("new")); err != nil {
			t.Fatalf("WriteFileAtomic() unexpected error: %v", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := fileutil.WriteFileAtomic(filepath.Join(dir, "deck.html"), []byte("x")); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("rejects directory target", func(t *testing.T) {
		t.Parallel()

		if err := fileutil.WriteFileAtomic(t.TempDir(), []byte("x")); !errors.Is(err, fileutil.ErrPathDirectory) {
			t.Errorf("WriteFileAtomic(dir) error = %v, want ErrPathDirectory", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Existence checks
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "deck.json")
	if err := os.WriteFile(file, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Name versus path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"deck", false},
		{"my-config", false},
		{"./deck.yaml", true},
		{"../shared/deck.yaml", true},
		{"/absolute/deck.yaml", true},
		{`C:\decks\deck.yaml`, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsAbsoluteRef - References left untouched by resolution
// ---------------------------------------------------------------------------

func TestIsAbsoluteRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref  string
		want bool
	}{
		{"https://cdn.example.com/deck.css", true},
		{"http://example.com/a.png", true},
		{"HTTPS://EXAMPLE.COM/A.PNG", true},
		{"data:image/png;base64,AAAA", true},
		{"//cdn.example.com/deck.js", true},
		{"mailto:teacher@example.com", true},
		{"file:///srv/deck.css", true},
		{"ftp://files.example.com/a.pdf", true},
		{"javascript:void(0)", true},
		{"tel:+33123456789", true},
		{"blob:https://example.com/1", true},
		{"C:/decks/deck.css", false},
		{`C:\decks\deck.css`, false},
		{"img/a:b.png", false},
		{"1http://x", false},
		{"css/deck.css", false},
		{"/assets/css/deck.css", false},
		{"../audio/track1.mp3", false},
		{"#slide-3", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsAbsoluteRef(tt.ref); got != tt.want {
				t.Errorf("IsAbsoluteRef(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestIsFragmentRef(t *testing.T) {
	t.Parallel()

	if !fileutil.IsFragmentRef("#notes") {
		t.Error("IsFragmentRef(#notes) = false, want true")
	}
	if fileutil.IsFragmentRef("css/deck.css#x") {
		t.Error("IsFragmentRef(css/deck.css#x) = true, want false")
	}
}
