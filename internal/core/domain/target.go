package domain

import (
	"regexp"
	"strconv"
)

// DefineIsRDR3 is the compile-time constant injected into every bundle so
// scripts can branch on the target platform.
const DefineIsRDR3 = "IS_RDR3"

// syntaxTargetRegex matches the supported syntax levels: the es* names the
// bundler understands and node versions such as node16 or node18.17.0.
var syntaxTargetRegex = regexp.MustCompile(`^(esnext|es5|es201[5-9]|es202[0-4]|node\d+(\.\d+){0,2})$`)

// ValidSyntaxTarget reports whether s is a supported syntax level.
func ValidSyntaxTarget(s string) bool {
	return syntaxTargetRegex.MatchString(s)
}

// BuildTarget describes one bundling unit of a resource, typically the client
// or the server script.
type BuildTarget struct {
	// Name identifies the target in logs and configuration.
	Name string

	// Entry is the absolute path of the entry point.
	Entry string

	// Outfile is the absolute path the bundle is written to.
	Outfile string

	// Platform selects the bundling platform: browser, node or neutral.
	Platform string

	// Target is the syntax level, an es20xx name or a node version such as node16.
	Target string

	// Format is the output module format: iife, cjs or esm.
	Format string

	// Sourcemap enables a linked source map next to the bundle.
	Sourcemap bool

	// Define holds target-specific compile-time substitutions.
	Define map[string]string
}

// MergedDefine combines the platform constant, project-wide defines and the
// target's own defines. Later sources win on key collisions.
func (t BuildTarget) MergedDefine(game Game, global map[string]string) map[string]string {
	merged := make(map[string]string, len(global)+len(t.Define)+1)
	merged[DefineIsRDR3] = strconv.FormatBool(game.IsRDR3())
	for k, v := range global {
		merged[k] = v
	}
	for k, v := range t.Define {
		merged[k] = v
	}
	return merged
}
