package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	lessondeck "github.com/alnah/go-lessondeck"
	"github.com/alnah/go-lessondeck/internal/yamlutil"
)

// skeletonVersion is the version stamped on new decks.
const skeletonVersion = "0.1.0"

// runInit prints a minimal deck that passes validation.
func runInit(args []string, env *Environment) error {
	f, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: init takes no arguments, got %q", ErrUsage, positional)
	}

	slug := f.slug
	if slug == "" {
		slug = slugify(f.title)
	}

	out, err := skeleton(env.NewID(), slug, f)
	if err != nil {
		return err
	}
	if f.yaml {
		if out, err = yamlutil.FromJSON(out); err != nil {
			return fmt.Errorf("converting skeleton to YAML: %w", err)
		}
	} else {
		out = append(out, '\n')
	}

	_, err = env.Stdout.Write(out)
	return err
}

// skeleton builds a one-slide deck and checks it against the schema,
// so a bad --slug or --level surfaces here rather than at render time.
func skeleton(id, slug string, f *initFlags) ([]byte, error) {
	content, err := json.Marshal(map[string]string{"title": f.title})
	if err != nil {
		return nil, err
	}
	deck := lessondeck.Deck{
		ID:       id,
		Slug:     slug,
		Title:    f.title,
		Language: f.language,
		Version:  skeletonVersion,
		Level:    f.level,
		Slides:   []lessondeck.Slide{{Layout: "hero-title", Content: content}},
	}

	out, err := json.MarshalIndent(deck, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding skeleton: %w", err)
	}

	res, err := lessondeck.Validate(out)
	if err != nil {
		return nil, err
	}
	if !res.Valid {
		return nil, &lessondeck.ValidationError{Errors: res.Errors}
	}
	return out, nil
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// slugify lowercases s, folds accents, and joins alphanumeric runs with hyphens.
func slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, stripMarks, norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return "deck"
	}
	return b.String()
}
