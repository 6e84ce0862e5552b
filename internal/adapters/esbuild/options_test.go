package esbuild

import (
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fxdev/internal/core/domain"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    api.Platform
		wantErr error
	}{
		{name: "browser", input: "browser", want: api.PlatformBrowser},
		{name: "node", input: "node", want: api.PlatformNode},
		{name: "neutral", input: "neutral", want: api.PlatformNeutral},
		{name: "unknown", input: "deno", wantErr: domain.ErrInvalidPlatform},
		{name: "empty", input: "", wantErr: domain.ErrInvalidPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlatform(tt.input)

			if tt.wantErr != nil {
				require.ErrorContains(t, err, tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    api.Format
		wantErr error
	}{
		{name: "iife", input: "iife", want: api.FormatIIFE},
		{name: "cjs", input: "cjs", want: api.FormatCommonJS},
		{name: "esm", input: "esm", want: api.FormatESModule},
		{name: "unknown", input: "umd", wantErr: domain.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFormat(tt.input)

			if tt.wantErr != nil {
				require.ErrorContains(t, err, tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSyntaxTarget(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantSyntax  api.Target
		wantEngines []api.Engine
		wantErr     error
	}{
		{name: "es2021", input: "es2021", wantSyntax: api.ES2021},
		{name: "esnext", input: "esnext", wantSyntax: api.ESNext},
		{name: "oldest level", input: "es5", wantSyntax: api.ES5},
		{name: "newest level", input: "es2024", wantSyntax: api.ES2024},
		{
			name:        "node major version",
			input:       "node16",
			wantSyntax:  api.DefaultTarget,
			wantEngines: []api.Engine{{Name: api.EngineNode, Version: "16"}},
		},
		{
			name:        "node minor version",
			input:       "node18.17",
			wantSyntax:  api.DefaultTarget,
			wantEngines: []api.Engine{{Name: api.EngineNode, Version: "18.17"}},
		},
		{name: "bare node", input: "node", wantErr: domain.ErrInvalidSyntaxTarget},
		{name: "node with suffix", input: "node16beta", wantErr: domain.ErrInvalidSyntaxTarget},
		{name: "unknown es level", input: "es9999", wantErr: domain.ErrInvalidSyntaxTarget},
		{name: "empty", input: "", wantErr: domain.ErrInvalidSyntaxTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syntax, engines, err := parseSyntaxTarget(tt.input)

			if tt.wantErr != nil {
				require.ErrorContains(t, err, tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSyntax, syntax)
			assert.Equal(t, tt.wantEngines, engines)
		})
	}
}

func TestBuildOptions(t *testing.T) {
	target := domain.BuildTarget{
		Name:      "client",
		Entry:     "/resource/src/client/index.ts",
		Outfile:   "/resource/dist/client.js",
		Platform:  "browser",
		Target:    "es2021",
		Format:    "iife",
		Sourcemap: true,
		Define:    map[string]string{domain.DefineIsRDR3: "false"},
	}

	opts, err := buildOptions(target)
	require.NoError(t, err)

	assert.Equal(t, []string{target.Entry}, opts.EntryPoints)
	assert.Equal(t, target.Outfile, opts.Outfile)
	assert.True(t, opts.Bundle)
	assert.True(t, opts.Write)
	assert.Equal(t, api.PlatformBrowser, opts.Platform)
	assert.Equal(t, api.FormatIIFE, opts.Format)
	assert.Equal(t, api.ES2021, opts.Target)
	assert.Empty(t, opts.Engines)
	assert.Equal(t, api.SourceMapLinked, opts.Sourcemap)
	assert.Equal(t, map[string]string{domain.DefineIsRDR3: "false"}, opts.Define)
	assert.Equal(t, api.LogLevelSilent, opts.LogLevel)
}

func TestBuildOptions_NodeTarget(t *testing.T) {
	target := domain.BuildTarget{
		Name:     "server",
		Entry:    "/resource/src/server/index.ts",
		Outfile:  "/resource/dist/server.js",
		Platform: "node",
		Target:   "node16",
		Format:   "cjs",
	}

	opts, err := buildOptions(target)
	require.NoError(t, err)

	assert.Equal(t, api.PlatformNode, opts.Platform)
	assert.Equal(t, api.FormatCommonJS, opts.Format)
	assert.Equal(t, api.DefaultTarget, opts.Target)
	assert.Equal(t, []api.Engine{{Name: api.EngineNode, Version: "16"}}, opts.Engines)
	assert.Equal(t, api.SourceMapNone, opts.Sourcemap)
}

func TestBuildOptions_Invalid(t *testing.T) {
	base := domain.BuildTarget{
		Name:     "client",
		Entry:    "/resource/src/index.ts",
		Outfile:  "/resource/dist/out.js",
		Platform: "browser",
		Target:   "es2021",
		Format:   "iife",
	}

	tests := []struct {
		name    string
		mutate  func(*domain.BuildTarget)
		wantErr error
	}{
		{
			name:    "invalid platform",
			mutate:  func(tg *domain.BuildTarget) { tg.Platform = "deno" },
			wantErr: domain.ErrInvalidPlatform,
		},
		{
			name:    "invalid format",
			mutate:  func(tg *domain.BuildTarget) { tg.Format = "umd" },
			wantErr: domain.ErrInvalidFormat,
		},
		{
			name:    "invalid syntax target",
			mutate:  func(tg *domain.BuildTarget) { tg.Target = "es1995" },
			wantErr: domain.ErrInvalidSyntaxTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := base
			tt.mutate(&target)

			_, err := buildOptions(target)
			require.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}
