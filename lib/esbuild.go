package lib

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

func ParseFormat(text string) (api.Format, error) {
	switch strings.ToLower(text) {
	case "esm", "es", "module":
		return api.FormatESModule, nil
	case "cjs", "commonjs":
		return api.FormatCommonJS, nil
	case "iife":
		return api.FormatIIFE, nil
	case "", "default":
		return api.FormatDefault, nil
	default:
		return api.FormatDefault, fmt.Errorf("invalid format value: %q, valid values are \"esm\", \"cjs\", \"iife\" or \"default\"", text)
	}
}

func ParsePlatform(text string) (api.Platform, error) {
	switch strings.ToLower(text) {
	case "browser", "":
		return api.PlatformBrowser, nil
	case "node":
		return api.PlatformNode, nil
	case "neutral":
		return api.PlatformNeutral, nil
	default:
		return api.PlatformBrowser, fmt.Errorf("invalid platform value: %q, valid values are \"browser\", \"node\" or \"neutral\"", text)
	}
}

func ParseSourceMap(text string) (api.SourceMap, error) {
	switch text {
	case "none", "":
		return api.SourceMapNone, nil
	case "inline":
		return api.SourceMapInline, nil
	case "linked":
		return api.SourceMapLinked, nil
	case "external":
		return api.SourceMapExternal, nil
	case "both":
		return api.SourceMapInlineAndExternal, nil
	default:
		return api.SourceMapNone, fmt.Errorf("invalid sourcemap value: %q, valid values are \"none\", \"inline\", \"linked\", \"external\" or \"both\"", text)
	}
}

var browserTargets = map[string]api.Target{
	"es5":    api.ES5,
	"es6":    api.ES2015,
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"es2023": api.ES2023,
	"es2024": api.ES2024,
	"esnext": api.ESNext,
}

func ParseBrowserTarget(customBrowserTarget string) (api.Target, error) {
	switch t := strings.ToLower(strings.TrimSpace(customBrowserTarget)); t {
	case "", "default", "none":
		return api.DefaultTarget, nil
	default:
		if target, ok := browserTargets[t]; ok {
			return target, nil
		}
		return api.DefaultTarget, fmt.Errorf("unsupported target: %q, valid targets are \"es5\", \"es6\", \"es2015\" up to \"es2024\", \"esnext\", \"default\"", customBrowserTarget)
	}
}
