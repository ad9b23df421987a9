package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessondeck <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a deck to a standalone HTML document")
	fmt.Fprintln(w, "  validate   Check a deck against the deck schema")
	fmt.Fprintln(w, "  layouts    List slide layouts and their required fields")
	fmt.Fprintln(w, "  init       Print a minimal valid deck")
	fmt.Fprintln(w, "  doctor     Check configuration, assets and image provider")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'lessondeck help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessondeck render <deck> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a JSON or YAML deck to a single HTML document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  deck    Deck file (.json, .yaml or .yml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output HTML file (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-root <dir>     Directory asset references resolve against (default: assets)")
	fmt.Fprintln(w, "      --asset-href <r=h>     Pin the href of a reference (repeatable)")
	fmt.Fprintln(w, "      --asset-path <dir>     Custom styles/, scripts/ and templates/ directory")
	fmt.Fprintln(w, "      --inline-assets        Embed stylesheet and script in the document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --image-key <key>      Image provider API key")
	fmt.Fprintln(w, "      --no-images            Skip image lookups")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LESSONDECK_CONFIG          Config file name or path")
	fmt.Fprintln(w, "  LESSONDECK_ASSET_ROOT      Asset root")
	fmt.Fprintln(w, "  LESSONDECK_OUTPUT_DIR      Default output directory")
	fmt.Fprintln(w, "  LESSONDECK_IMAGE_KEY       Image provider API key")
	fmt.Fprintln(w, "  LESSONDECK_IMAGE_ENDPOINT  Image provider search URL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags override environment variables, which override the config file.")
}

// printValidateUsage prints usage for the validate command.
func printValidateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessondeck validate <deck> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check a deck against the deck schema. Findings are printed as")
	fmt.Fprintln(w, "'location: message', one per line; the exit code is 2 when any exist.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet    Print findings only")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessondeck init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print a minimal valid deck with a fresh id.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --title <s>       Deck title")
	fmt.Fprintln(w, "      --slug <s>        Deck slug (default: derived from title)")
	fmt.Fprintln(w, "      --language <s>    Deck language (default: fr)")
	fmt.Fprintln(w, "      --level <s>       Learner level A1-C2 (default: A1)")
	fmt.Fprintln(w, "      --yaml            Print YAML instead of JSON")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lessondeck doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the config file, asset root, custom assets and image provider key.")
	fmt.Fprintln(w, "Exits 1 when a check fails; warnings still exit 0.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>    Config file name or path")
	fmt.Fprintln(w, "      --json             Print the report as JSON")
}

// runHelp prints help for the named command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "validate":
		printValidateUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "layouts":
		fmt.Fprintln(env.Stdout, "Usage: lessondeck layouts")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List slide layouts and their required content fields.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: lessondeck version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: lessondeck help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
