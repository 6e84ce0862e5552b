package esbuild

import (
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/zerr"
)

// syntaxTargets maps the configurable es* syntax levels onto esbuild's enum.
var syntaxTargets = map[string]api.Target{
	"esnext": api.ESNext,
	"es5":    api.ES5,
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
}

var nodeTargetRegex = regexp.MustCompile(`^node\d+(\.\d+){0,2}$`)

// buildOptions maps a build target onto esbuild's API.
func buildOptions(target domain.BuildTarget) (api.BuildOptions, error) {
	platform, err := parsePlatform(target.Platform)
	if err != nil {
		return api.BuildOptions{}, err
	}

	format, err := parseFormat(target.Format)
	if err != nil {
		return api.BuildOptions{}, err
	}

	syntax, engines, err := parseSyntaxTarget(target.Target)
	if err != nil {
		return api.BuildOptions{}, err
	}

	sourcemap := api.SourceMapNone
	if target.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	return api.BuildOptions{
		EntryPoints: []string{target.Entry},
		Outfile:     target.Outfile,
		Bundle:      true,
		Write:       true,
		Platform:    platform,
		Format:      format,
		Target:      syntax,
		Engines:     engines,
		Sourcemap:   sourcemap,
		Define:      target.Define,
		LogLevel:    api.LogLevelSilent,
	}, nil
}

func parsePlatform(platform string) (api.Platform, error) {
	switch platform {
	case "browser":
		return api.PlatformBrowser, nil
	case "node":
		return api.PlatformNode, nil
	case "neutral":
		return api.PlatformNeutral, nil
	default:
		return api.PlatformDefault, zerr.With(domain.ErrInvalidPlatform, "platform", platform)
	}
}

func parseFormat(format string) (api.Format, error) {
	switch format {
	case "iife":
		return api.FormatIIFE, nil
	case "cjs":
		return api.FormatCommonJS, nil
	case "esm":
		return api.FormatESModule, nil
	default:
		return api.FormatDefault, zerr.With(domain.ErrInvalidFormat, "format", format)
	}
}

// parseSyntaxTarget resolves a syntax level. Plain es* names map onto
// esbuild's enum, node* names become a node engine constraint instead.
func parseSyntaxTarget(name string) (api.Target, []api.Engine, error) {
	if nodeTargetRegex.MatchString(name) {
		version := strings.TrimPrefix(name, "node")
		return api.DefaultTarget, []api.Engine{{Name: api.EngineNode, Version: version}}, nil
	}

	if syntax, ok := syntaxTargets[name]; ok {
		return syntax, nil, nil
	}

	return api.DefaultTarget, nil, zerr.With(domain.ErrInvalidSyntaxTarget, "target", name)
}
