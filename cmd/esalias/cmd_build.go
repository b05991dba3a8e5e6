package main

import (
	"errors"
	"flag"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/natrim/esalias/lib"
	"github.com/natrim/esalias/lib/alias"
	"github.com/natrim/esalias/lib/plugins"
)

func buildCommand(args []string) error {
	set := flag.NewFlagSet("build", flag.ContinueOnError)
	set.SetOutput(lib.Stderr)
	setupBuildFlags(set)
	if err := set.Parse(args); err != nil {
		return err
	}

	resolver, _, err := loadResolver(nil)
	if err != nil {
		return err
	}
	options, err := makeBuildOptions(resolver, false)
	if err != nil {
		return err
	}
	return build(options)
}

// makeBuildOptions maps the build flags onto esbuild options with the alias plugin installed.
func makeBuildOptions(resolver *alias.Resolver, isWatch bool) (api.BuildOptions, error) {
	var errs []error
	f, err := lib.ParseFormat(format)
	errs = append(errs, err)
	p, err := lib.ParsePlatform(platform)
	errs = append(errs, err)
	target, err := lib.ParseBrowserTarget(customBrowserTarget)
	errs = append(errs, err)
	sm, err := lib.ParseSourceMap(sourceMap)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return api.BuildOptions{}, err
	}
	if target == api.DefaultTarget {
		target = api.ESNext
	}

	env, err := loadEnv(envFileList(".", envFiles))
	if err != nil {
		return api.BuildOptions{}, err
	}

	var trace plugins.TraceFunc
	if verbose {
		trace = func(specifier, importer, path string) {
			lib.PrintMapping(specifier, path)
		}
	}

	return api.BuildOptions{
		EntryPoints:       []string{entryFile},
		Outdir:            outputDir,
		Bundle:            true,
		Format:            f,
		Platform:          p,
		Target:            target,
		Sourcemap:         sm,
		MinifyIdentifiers: minify && !isWatch,
		MinifySyntax:      minify && !isWatch,
		MinifyWhitespace:  minify && !isWatch,
		Write:             true,
		LogLevel:          api.LogLevelSilent,
		Define:            makeDefine(env, envPrefix, isWatch),
		Plugins: []api.Plugin{
			plugins.AliasPlugin(resolver, trace),
		},
	}, nil
}

func build(options api.BuildOptions) error {
	start := time.Now()

	lib.PrintItem("Building..")

	result := api.Build(options)
	if err := resultError(result); err != nil {
		lib.PrintError("failed to build")
		lib.PrintInfof("Time: %dms\n", time.Since(start).Milliseconds())
		return err
	}

	lib.PrintOk("Build done")
	lib.PrintInfof("Time: %dms\n", time.Since(start).Milliseconds())
	return nil
}

// resultError joins the esbuild error messages, nil when there are none.
func resultError(result api.BuildResult) error {
	if len(result.Errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(result.Errors))
	for _, msg := range result.Errors {
		text := msg.Text
		if msg.Location != nil {
			text = msg.Location.File + ": " + text
		}
		errs = append(errs, errors.New("-*- "+text))
	}
	return errors.Join(errs...)
}
