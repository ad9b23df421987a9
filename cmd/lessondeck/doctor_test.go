package main

// Notes:
// - diagnose: we test config loading, asset root detection, custom asset
//   directories, key source reporting, and typo warnings. The key itself must
//   never appear in the report.
// - runDoctor: we test JSON output and the failing exit code.
// - Tests use t.Setenv() and t.Chdir() which prevent t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiagnose - Checks and status
// ---------------------------------------------------------------------------

func TestDiagnose_Ready(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	if err := os.Mkdir("assets", 0o750); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LESSONDECK_IMAGE_KEY", "secret-key")

	r := diagnose("")

	if r.Status != "ready" {
		t.Errorf("Status = %q, want ready (warnings %v, errors %v)", r.Status, r.Warnings, r.Errors)
	}
	if !r.Assets.RootExists || !r.Assets.Loadable {
		t.Errorf("Assets = %+v", r.Assets)
	}
	if r.Images.KeySource != "LESSONDECK_IMAGE_KEY" {
		t.Errorf("KeySource = %q", r.Images.KeySource)
	}
	if !slices.Equal(r.Assets.Themes, []string{"contrast", "warm"}) {
		t.Errorf("Themes = %v", r.Assets.Themes)
	}
}

func TestDiagnose_Warnings(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("LESSONDECK_IMAGES_KEY", "typo")

	r := diagnose("")

	if r.Status != "warnings" {
		t.Errorf("Status = %q, want warnings", r.Status)
	}
	joined := strings.Join(r.Warnings, "\n")
	for _, want := range []string{`Asset root "assets" not found`, "No image provider key", "LESSONDECK_IMAGES_KEY"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q:\n%s", want, joined)
		}
	}
	if !slices.Contains(r.Env.UnknownVars, "LESSONDECK_IMAGES_KEY") {
		t.Errorf("UnknownVars = %v", r.Env.UnknownVars)
	}
}

func TestDiagnose_ConfigKeySource(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "classroom.yaml", "assets:\n  inline: true\nimages:\n  apiKey: from-file\n")

	r := diagnose("classroom")

	if !r.Config.Loaded {
		t.Errorf("Config = %+v, want loaded", r.Config)
	}
	if r.Images.KeySource != "config" {
		t.Errorf("KeySource = %q, want config", r.Images.KeySource)
	}
	if !r.Assets.Inline {
		t.Errorf("Assets.Inline = false, want true")
	}
	if r.Status != "ready" {
		t.Errorf("Status = %q (warnings %v), want ready: inline decks need no asset root", r.Status, r.Warnings)
	}
}

func TestDiagnose_Errors(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	writeFile(t, ".", "broken.yaml", "assets:\n  basePath: does-not-exist\n")

	r := diagnose("missing-config")
	if r.Status != "errors" || len(r.Errors) == 0 {
		t.Errorf("missing config: Status = %q, Errors = %v", r.Status, r.Errors)
	}

	r = diagnose("broken")
	if r.Assets.Loadable {
		t.Errorf("Assets.Loadable = true for a missing asset directory")
	}
	if r.Status != "errors" {
		t.Errorf("bad asset path: Status = %q, want errors", r.Status)
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Output and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctor_JSON(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("LESSONDECK_IMAGE_KEY", "secret-key")

	code, stdout, stderr := runCLI(t, "doctor", "--json")
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr = %q", code, stderr)
	}
	if strings.Contains(stdout, "secret-key") {
		t.Fatalf("report leaks the provider key:\n%s", stdout)
	}

	var r doctorResult
	if err := json.Unmarshal([]byte(stdout), &r); err != nil {
		t.Fatalf("decoding report: %v\n%s", err, stdout)
	}
	if r.Images.KeySource != "LESSONDECK_IMAGE_KEY" || r.Env.OS == "" {
		t.Errorf("report = %+v", r)
	}
}

func TestRunDoctor_Failure(t *testing.T) {
	clearImageEnv(t)
	t.Chdir(t.TempDir())

	code, stdout, _ := runCLI(t, "doctor", "-c", "missing-config")
	if code != ExitGeneral {
		t.Errorf("exit = %d, want %d", code, ExitGeneral)
	}
	for _, want := range []string{"lessondeck doctor", "[ERROR] Could not load: missing-config", "Status: Not ready"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestAvailableThemes_Overlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	styles := filepath.Join(dir, "styles")
	if err := os.Mkdir(styles, 0o750); err != nil {
		t.Fatal(err)
	}
	writeFile(t, styles, "chalk.css", ":root{}")

	if got, want := availableThemes(dir), []string{"chalk", "contrast", "warm"}; !slices.Equal(got, want) {
		t.Errorf("availableThemes() = %v, want %v", got, want)
	}
}
