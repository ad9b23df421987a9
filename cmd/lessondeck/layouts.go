package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	lessondeck "github.com/alnah/go-lessondeck"
)

// runLayouts prints every registered layout with its required content fields.
func runLayouts(args []string, env *Environment) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: layouts takes no arguments, got %q", ErrUsage, args)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LAYOUT\tREQUIRED")
	for _, l := range lessondeck.Layouts() {
		required := strings.Join(l.Required, ", ")
		if required == "" {
			required = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\n", l.ID, required)
	}
	return tw.Flush()
}
