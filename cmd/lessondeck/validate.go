package main

import (
	"fmt"

	lessondeck "github.com/alnah/go-lessondeck"
)

// runValidate checks a deck against the schema and prints one line per finding.
func runValidate(args []string, env *Environment) error {
	f, positional, err := parseValidateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	path, err := singleInput(positional)
	if err != nil {
		return err
	}
	raw, err := readDeck(path)
	if err != nil {
		return err
	}

	res, err := lessondeck.Validate(raw)
	if err != nil {
		return fmt.Errorf("%s: %w%s", path, err, renderHint(err, path))
	}
	if !res.Valid {
		for _, fe := range res.Errors {
			fmt.Fprintln(env.Stderr, fe.String())
		}
		return &rejectedError{path: path, count: len(res.Errors), err: ErrInvalidDeck}
	}

	if !f.quiet {
		fmt.Fprintf(env.Stdout, "%s: valid\n", path)
	}
	return nil
}
