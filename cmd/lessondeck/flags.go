package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds asset resolution and loading flags.
type assetFlags struct {
	root      string
	hrefs     map[string]string
	assetPath string
	inline    bool
}

// imageFlags holds image enrichment flags.
type imageFlags struct {
	key      string
	disabled bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	assets assetFlags
	images imageFlags
	output string
}

// validateFlags holds flags for the validate command.
type validateFlags struct {
	quiet bool
}

// initFlags holds flags for the init command.
type initFlags struct {
	title    string
	slug     string
	language string
	level    string
	yaml     bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug diagnostics")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.root, "asset-root", "", "directory asset references resolve against")
	fs.StringToStringVar(&f.hrefs, "asset-href", nil, "pin an asset href: ref=href (repeatable)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory for inlined assets")
	fs.BoolVar(&f.inline, "inline-assets", false, "embed stylesheet and script in the document")
}

// addImageFlags adds image enrichment flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.StringVar(&f.key, "image-key", "", "image provider API key")
	fs.BoolVar(&f.disabled, "no-images", false, "skip image lookups")
}

// newFlagSet returns a FlagSet whose usage and parse errors go to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args, wrapping failures so they map to the usage exit code.
// flag.ErrHelp is returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// newRenderFlagSet registers every render flag. Completion reuses it so the
// FlagSet stays the single source of truth.
func newRenderFlagSet(w io.Writer) (*flag.FlagSet, *renderFlags) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: stdout)")
	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addImageFlags(fs, &f.images)
	return fs, f
}

func newValidateFlagSet(w io.Writer) (*flag.FlagSet, *validateFlags) {
	f := &validateFlags{}
	fs := newFlagSet("validate", w, printValidateUsage)

	fs.BoolVarP(&f.quiet, "quiet", "q", false, "print findings only")
	return fs, f
}

func newInitFlagSet(w io.Writer) (*flag.FlagSet, *initFlags) {
	f := &initFlags{}
	fs := newFlagSet("init", w, printInitUsage)

	fs.StringVar(&f.title, "title", "Nouvelle leçon", "deck title")
	fs.StringVar(&f.slug, "slug", "", "deck slug (default: derived from title)")
	fs.StringVar(&f.language, "language", "fr", "deck language")
	fs.StringVar(&f.level, "level", "A1", "learner level")
	fs.BoolVar(&f.yaml, "yaml", false, "print YAML instead of JSON")
	return fs, f
}

func newDoctorFlagSet(w io.Writer) (*flag.FlagSet, *doctorFlags) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", w, printDoctorUsage)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	return fs, f
}

func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	fs, f := newRenderFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseValidateFlags(args []string, w io.Writer) (*validateFlags, []string, error) {
	fs, f := newValidateFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseInitFlags(args []string, w io.Writer) (*initFlags, []string, error) {
	fs, f := newInitFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	fs, f := newDoctorFlagSet(w)
	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
