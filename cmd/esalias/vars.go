package main

import (
	"flag"
	"os"

	"github.com/natrim/esalias/lib"
)

var configPath = ""
var packagePath = "package.json"
var useColor = true
var verbose = false
var isHelp = false

var envFiles = ""
var envPrefix = "APP_"
var entryFile = "src/index.js"
var outputDir = "build"
var format = "esm"
var platform = "browser"
var customBrowserTarget = ""
var sourceMap = "linked"
var minify = false

var importer = ""
var offline = false

var cliAliases lib.AliasFlags
var cliResolve lib.ArrayFlags

func SetupFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.Usage = func() {
		// nothing, app will print it's stuff
	}

	flag.BoolVar(&isHelp, "h", isHelp, "alias of -help")
	flag.BoolVar(&isHelp, "help", isHelp, "this help")
	flag.BoolVar(&verbose, "v", verbose, "alias of -verbose")
	flag.BoolVar(&verbose, "verbose", verbose, "print every rewritten import")
	flag.BoolVar(&useColor, "color", useColor, "colorize output")

	flag.StringVar(&configPath, "config", configPath, "alias config file (json or yaml), replaces the package.json 'alias' key")
	flag.StringVar(&packagePath, "package", packagePath, "path to package.json, relative to current work directory")

	flag.Var(&cliAliases, "alias", "alias 'find:replacement', overrides the configured aliases, keeps order, can have multiple flags, ie. --alias=react:preact/compat,@:./src")
	flag.Var(&cliResolve, "resolve", "extensions to probe, overrides the configured ones, ie. --resolve=.js,.jsx,.ts")
}

// setupBuildFlags registers the esbuild options shared by build and watch.
func setupBuildFlags(set *flag.FlagSet) {
	set.StringVar(&entryFile, "entry", entryFile, "entry file")
	set.StringVar(&outputDir, "outdir", outputDir, "output dir")
	set.StringVar(&format, "format", format, "output format, available options: esm|cjs|iife|default")
	set.StringVar(&platform, "platform", platform, "target platform, available options: browser|node|neutral")
	set.StringVar(&customBrowserTarget, "target", customBrowserTarget, "language target, ie. es2020, defaults to esnext")
	set.StringVar(&sourceMap, "sourcemap", sourceMap, "what sourcemap to use, available options: none|inline|linked|external|both")
	set.BoolVar(&minify, "minify", minify, "minify output")
	set.StringVar(&envFiles, "env", envFiles, "env files to load from (always loads .env first)")
	set.StringVar(&envPrefix, "envPrefix", envPrefix, "env variables prefix exposed to the bundle")
}

func setupResolveFlags(set *flag.FlagSet) {
	set.StringVar(&importer, "importer", importer, "file doing the import, empty resolves like an entry point")
	set.BoolVar(&offline, "offline", offline, "do not touch the filesystem, extensions fall back to the first one")
}
