package plugins

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/natrim/esalias/lib/alias"
)

// TraceFunc is told about every specifier the alias plugin rewrote.
type TraceFunc func(specifier, importer, path string)

// reentry marks resolutions the plugin started itself so it does not alias its own output.
type reentry struct{}

// AliasPluginDefault is the alias plugin without tracing
func AliasPluginDefault(resolver *alias.Resolver) api.Plugin {
	return AliasPlugin(resolver, nil)
}

// AliasPlugin rewrites import paths matching resolver's rules
func AliasPlugin(resolver *alias.Resolver, trace TraceFunc) api.Plugin {
	entries := resolver.Entries()
	if len(entries) == 0 {
		return api.Plugin{
			Name: "alias-stub",
			Setup: func(build api.PluginBuild) {
			},
		}
	}
	filter := AliasFilter(entries)
	return api.Plugin{
		Name: "alias",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: filter},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					if _, ok := args.PluginData.(reentry); ok {
						return api.OnResolveResult{}, nil
					}

					result := resolver.Resolve(alias.Request{
						Specifier: args.Path,
						Importer:  args.Importer,
						BaseDir:   args.ResolveDir,
					})
					if result.Outcome != alias.Resolved {
						return api.OnResolveResult{}, nil
					}

					if trace != nil {
						trace(args.Path, args.Importer, result.Path)
					}

					if filepath.IsAbs(result.Path) {
						return api.OnResolveResult{Path: result.Path}, nil
					}

					// bare replacement, esbuild finds the package
					resolved := build.Resolve(result.Path, api.ResolveOptions{
						Importer:   args.Importer,
						Namespace:  args.Namespace,
						ResolveDir: args.ResolveDir,
						Kind:       args.Kind,
						PluginData: reentry{},
					})
					if len(resolved.Errors) > 0 {
						return api.OnResolveResult{Errors: resolved.Errors, Warnings: resolved.Warnings}, nil
					}
					return api.OnResolveResult{
						Path:        resolved.Path,
						External:    resolved.External,
						SideEffects: resolved.SideEffects,
						Namespace:   resolved.Namespace,
						Suffix:      resolved.Suffix,
						PluginData:  resolved.PluginData,
						Warnings:    resolved.Warnings,
					}, nil
				})
		},
	}
}

// AliasFilter builds the esbuild filter preselecting specifiers any entry could match.
func AliasFilter(entries []alias.Entry) string {
	var bounded, open, patterns []string
	for _, entry := range entries {
		find := entry.Find.String()
		switch {
		case entry.Find.IsPattern():
			patterns = append(patterns, "(?:"+find+")")
		case strings.HasSuffix(find, alias.Separator):
			open = append(open, regexp.QuoteMeta(find))
		default:
			bounded = append(bounded, regexp.QuoteMeta(find))
		}
	}

	var filter []string
	if len(bounded) > 0 {
		filter = append(filter, "^(?:"+strings.Join(bounded, "|")+")(?:/|$)")
	}
	if len(open) > 0 {
		filter = append(filter, "^(?:"+strings.Join(open, "|")+")")
	}
	return strings.Join(append(filter, patterns...), "|")
}
