package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	lessondeck "github.com/alnah/go-lessondeck"
	"github.com/alnah/go-lessondeck/internal/config"
	"github.com/alnah/go-lessondeck/internal/fileutil"
	"github.com/alnah/go-lessondeck/internal/hints"
	"github.com/alnah/go-lessondeck/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no deck specified")
	ErrReadDeck       = errors.New("failed to read deck")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidDeck    = errors.New("deck is invalid")
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// runRender renders one deck to a file or stdout.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleInput(positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !f.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	configName := f.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(f, cfg)

	logger, err := logging.New(env.Stderr, logLevel(f.common))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	raw, err := readDeck(path)
	if err != nil {
		return err
	}

	outPath := resolveOutputPath(f.output, cfg.Output.DefaultDir, path)
	if outPath != "" {
		if err := fileutil.ValidateOutputPath(outPath); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	assetRoot, err := anchorAssetRoot(outPath, cfg.Assets.Root)
	if err != nil {
		return err
	}

	renderer, err := lessondeck.NewRenderer(rendererOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	logger.Debug("rendering deck",
		zap.String("deck", path),
		zap.String("output", outPath),
		zap.String("assetRoot", assetRoot),
		logging.Secret("imageKey", cfg.Images.APIKey))

	res, err := renderer.Render(ctx, lessondeck.Input{
		Document:     raw,
		OutputPath:   outPath,
		AssetRoot:    assetRoot,
		AssetPaths:   cfg.Assets.Hrefs,
		InlineAssets: cfg.Assets.Inline,
		Image: lessondeck.ImageOptions{
			Orientation: cfg.Images.Orientation,
			PerPage:     cfg.Images.PerPage,
			Size:        cfg.Images.Size,
			Variant:     cfg.Images.Variant,
		},
	})
	if err != nil {
		if n := printIssues(env, err); n > 0 {
			return &rejectedError{path: path, count: n, err: err, hint: layoutHint(err)}
		}
		return fmt.Errorf("%s: %w%s", path, err, renderHint(err, path))
	}

	if outPath == "" {
		if _, err := fmt.Fprint(env.Stdout, res.HTML); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	} else if err := fileutil.WriteFileAtomic(outPath, []byte(res.HTML)); err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrWriteOutput, outPath, err, hints.ForOutputDirectory())
	}

	logger.Info("deck rendered",
		zap.String("deck", path),
		zap.Int("slides", res.Slides),
		zap.Int("images", res.ImagesResolved),
		zap.Int("warnings", len(res.Warnings)))

	if !f.common.quiet && cfg.Images.APIKey == "" && hasImageMiss(res.Warnings) {
		if hint := hints.ForImageKey(cfg.Images.Disabled); hint != "" {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(hint, "\n"))
		}
	}
	return nil
}

// mergeFlags applies explicitly set flags over config and env values.
func mergeFlags(f *renderFlags, cfg *config.Config) {
	if f.assets.root != "" {
		cfg.Assets.Root = f.assets.root
	}
	if len(f.assets.hrefs) > 0 {
		merged := make(map[string]string, len(cfg.Assets.Hrefs)+len(f.assets.hrefs))
		for ref, href := range cfg.Assets.Hrefs {
			merged[ref] = href
		}
		for ref, href := range f.assets.hrefs {
			merged[ref] = href
		}
		cfg.Assets.Hrefs = merged
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
	if f.assets.inline {
		cfg.Assets.Inline = true
	}
	if f.images.key != "" {
		cfg.Images.APIKey = f.images.key
	}
	if f.images.disabled {
		cfg.Images.Disabled = true
	}
}

// rendererOptions translates the merged config into renderer options.
func rendererOptions(cfg *config.Config, logger *zap.Logger) []lessondeck.Option {
	opts := []lessondeck.Option{lessondeck.WithLogger(logger)}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, lessondeck.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Images.Disabled {
		return append(opts, lessondeck.WithoutImages())
	}

	imgOpts := []lessondeck.ImageServiceOption{lessondeck.WithImageLogger(logger)}
	if cfg.Images.APIKey != "" {
		imgOpts = append(imgOpts, lessondeck.WithImageKey(cfg.Images.APIKey))
	}
	if cfg.Images.Endpoint != "" {
		imgOpts = append(imgOpts, lessondeck.WithImageEndpoint(cfg.Images.Endpoint))
	}
	if d := cfg.Images.TimeoutDuration(); d > 0 {
		imgOpts = append(imgOpts, lessondeck.WithImageTimeout(d))
	}
	if d := cfg.Images.RateIntervalDuration(); d > 0 {
		imgOpts = append(imgOpts, lessondeck.WithImageRateInterval(d))
	}
	return append(opts, lessondeck.WithImageService(lessondeck.NewImageService(imgOpts...)))
}

// loadConfig loads the named config, or defaults when no name is given.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(nf.Tried))
		}
		return nil, err
	}
	if cfg.Assets.Root == "" {
		cfg.Assets.Root = lessondeck.DefaultAssetRoot
	}
	return cfg, nil
}

// resolveOutputPath returns -o verbatim when set, a path under the default
// directory otherwise, or "" for stdout.
func resolveOutputPath(output, defaultDir, deckPath string) string {
	if output != "" {
		return output
	}
	if defaultDir == "" {
		return ""
	}
	base := filepath.Base(deckPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(defaultDir, stem+".html")
}

// anchorAssetRoot makes a relative asset root absolute against the working
// directory when the output path is absolute, since hrefs can only be
// computed between two paths of the same kind.
func anchorAssetRoot(outPath, root string) (string, error) {
	if root == "" || !filepath.IsAbs(outPath) || filepath.IsAbs(root) {
		return root, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving asset root %q: %w", root, err)
	}
	return abs, nil
}

// logLevel maps -q and -v to a zap level; -q wins.
func logLevel(f commonFlags) string {
	switch {
	case f.quiet:
		return logging.LevelError
	case f.verbose:
		return logging.LevelDebug
	default:
		return logging.LevelWarn
	}
}

func singleInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one deck, got %d", ErrUsage, len(args))
	}
}

func readDeck(path string) ([]byte, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- deck path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDeck, err)
	}
	return raw, nil
}

// printIssues lists every finding of a rejected deck, one per line,
// and returns how many it printed.
func printIssues(env *Environment, err error) int {
	var verr *lessondeck.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			fmt.Fprintln(env.Stderr, fe.String())
		}
		return len(verr.Errors)
	}
	var cerr *lessondeck.ContentError
	if errors.As(err, &cerr) {
		for _, issue := range cerr.Issues {
			fmt.Fprintln(env.Stderr, issue.String())
		}
		return len(cerr.Issues)
	}
	return 0
}

// renderHint returns an actionable hint for a failed render, or "".
func renderHint(err error, path string) string {
	switch {
	case errors.Is(err, lessondeck.ErrMalformedDocument):
		return hints.ForMalformedDocument(path)
	case errors.Is(err, lessondeck.ErrAssetUnresolved):
		return hints.ForAssetUnresolved()
	}
	return ""
}

// layoutHint lists the registered layouts when a slide names an unknown one.
func layoutHint(err error) string {
	if !errors.Is(err, lessondeck.ErrUnknownLayout) {
		return ""
	}
	layouts := lessondeck.Layouts()
	ids := make([]string, len(layouts))
	for i, l := range layouts {
		ids[i] = l.ID
	}
	return hints.ForUnknownLayout(ids)
}

// rejectedError summarizes a deck whose findings were already printed.
type rejectedError struct {
	path  string
	count int
	err   error
	hint  string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("%s: rejected with %d issue(s)%s", e.path, e.count, e.hint)
}

func (e *rejectedError) Unwrap() error { return e.err }

func hasImageMiss(warnings []string) bool {
	for _, w := range warnings {
		if strings.HasPrefix(w, "no image for query") {
			return true
		}
	}
	return false
}
