package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when the configuration file contains invalid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")

	// ErrInvalidResourceName is returned when a configured resource name contains
	// characters outside [a-zA-Z0-9_-].
	ErrInvalidResourceName = zerr.New("invalid resource name")

	// ErrInvalidGame is returned when a game identifier is neither gta5 nor rdr3.
	ErrInvalidGame = zerr.New("invalid game, expected 'gta5' or 'rdr3'")

	// ErrInvalidTargetName is returned when a build target is declared with an invalid name.
	ErrInvalidTargetName = zerr.New("invalid target name")

	// ErrMissingEntryPoint is returned when a build target does not declare an entry point.
	ErrMissingEntryPoint = zerr.New("target is missing an entry point")

	// ErrMissingOutfile is returned when a build target does not declare an output file.
	ErrMissingOutfile = zerr.New("target is missing an output file")

	// ErrInvalidPlatform is returned when a target platform is not browser, node or neutral.
	ErrInvalidPlatform = zerr.New("invalid platform, expected 'browser', 'node' or 'neutral'")

	// ErrInvalidFormat is returned when a target format is not iife, cjs or esm.
	ErrInvalidFormat = zerr.New("invalid format, expected 'iife', 'cjs' or 'esm'")

	// ErrInvalidSyntaxTarget is returned when a target syntax level is neither an
	// es20xx level nor a node version.
	ErrInvalidSyntaxTarget = zerr.New("invalid syntax target")

	// ErrBuildFailed marks bundler and UI build failures whose details were already
	// reported. The CLI exits non-zero without logging it a second time.
	ErrBuildFailed = zerr.New("build failed")

	// ErrManifestReadFailed is returned when the resource manifest exists but cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read resource manifest")

	// ErrManifestWriteFailed is returned when the patched resource manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write resource manifest")

	// ErrOutputPathOutsideRoot is returned when a clean operation would touch a path
	// outside the resource root.
	ErrOutputPathOutsideRoot = zerr.New("output path is outside the resource root")

	// ErrWatchStartFailed is returned when a watch session cannot be started.
	ErrWatchStartFailed = zerr.New("failed to start watch session")
)
