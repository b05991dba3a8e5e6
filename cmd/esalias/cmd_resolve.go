package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/natrim/esalias/lib"
	"github.com/natrim/esalias/lib/alias"
)

const (
	declinedText   = "null"
	unresolvedText = "(unresolved)"
)

func resolveCommand(args []string) error {
	set := flag.NewFlagSet("resolve", flag.ContinueOnError)
	set.SetOutput(lib.Stderr)
	setupResolveFlags(set)
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() == 0 {
		return errors.New("resolve needs at least one specifier")
	}

	var prober alias.Prober
	if offline {
		prober = alias.NoProbe
	}
	resolver, _, err := loadResolver(prober)
	if err != nil {
		return err
	}

	return printResolutions(lib.Stdout, resolver, importer, set.Args())
}

// printResolutions writes one "specifier -> outcome" line per specifier.
func printResolutions(w io.Writer, hook alias.Hook, importer string, specifiers []string) error {
	for _, specifier := range specifiers {
		if _, err := fmt.Fprintln(w, specifier, "->", describe(hook.ResolveID(specifier, importer))); err != nil {
			return err
		}
	}
	return nil
}

func describe(result alias.Result) string {
	switch result.Outcome {
	case alias.Resolved:
		return result.Path
	case alias.Declined:
		return declinedText
	default:
		return unresolvedText
	}
}
