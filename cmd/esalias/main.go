package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/natrim/esalias/lib"
	"github.com/natrim/esalias/lib/alias"
)

func main() {
	SetupFlags()

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		lib.PrintError(err)
		os.Exit(1)
	}

	lib.UseColor(useColor)

	if isHelp || flag.NArg() == 0 {
		printHelp()
		if isHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		lib.PrintError(err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	switch command {
	case "resolve":
		return resolveCommand(args)
	case "build":
		return buildCommand(args)
	case "watch":
		return watchCommand(args)
	case "version":
		lib.PrintOk("Current version is:", lib.Version)
		return nil
	case "help":
		printHelp()
		return nil
	default:
		return fmt.Errorf("unknown command %q, use resolve, build, watch or version", command)
	}
}

func printHelp() {
	lib.Print("esalias [flags] <command> [command flags]")
	lib.Print()
	lib.Print("commands:")
	lib.Print("  resolve  print what each given specifier resolves to")
	lib.Print("  build    bundle the entry with esbuild and the alias plugin")
	lib.Print("  watch    build, then rebuild on source or alias config changes")
	lib.Print("  version  print esalias version")
	lib.Print()
	lib.Print("flags:")
	flag.CommandLine.SetOutput(lib.Stdout)
	flag.CommandLine.PrintDefaults()
}

// loadConfig reads the alias config and applies the cli overrides.
func loadConfig() (*lib.Config, error) {
	config, err := lib.LoadConfig(configPath, packagePath)
	if err != nil {
		return nil, errors.Join(errors.New("failed to load aliases"), err)
	}
	if lib.IsFlagPassed(flag.CommandLine, "alias") {
		if err := config.OverrideAliases(cliAliases); err != nil {
			return nil, err
		}
	}
	if lib.IsFlagPassed(flag.CommandLine, "resolve") {
		config.OverrideExtensions(cliResolve)
	}
	if verbose {
		if config.Source != "" {
			lib.PrintInfo("aliases from:", config.Source)
		}
		for _, entry := range config.Alias.Entries {
			lib.PrintMapping(entry.Find.String(), entry.Replacement)
		}
	}
	return config, nil
}

func loadResolver(prober alias.Prober) (*alias.Resolver, *lib.Config, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return config.Resolver(prober), config, nil
}
