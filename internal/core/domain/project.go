package domain

import "time"

// Project is the fully resolved configuration of a resource. All paths are
// absolute, all durations parsed and all defaults applied.
type Project struct {
	// Root is the resource root, the directory holding the manifest.
	Root string

	// Resource is the resource name announced to the game server on restarts.
	Resource string

	// Game the resource targets.
	Game Game

	// Address overrides network address detection when set.
	Address string

	// Restart configures the restart notifications sent after rebuilds.
	Restart RestartSettings

	// UI configures the optional UI sub-project.
	UI UISettings

	// Targets are the bundling units of the resource.
	Targets []BuildTarget

	// Define holds project-wide compile-time substitutions.
	Define map[string]string
}

// RestartSettings configure the restart notifications sent to the game server.
type RestartSettings struct {
	// URL is the restart endpoint.
	URL string

	// Timeout bounds a single restart request.
	Timeout time.Duration

	// Debounce is the window within which repeated rebuilds coalesce into a
	// single restart request.
	Debounce time.Duration
}

// UISettings configure the optional UI sub-project of a resource.
type UISettings struct {
	// Dir is the absolute path of the UI sub-project.
	Dir string

	// Name is the manifest-relative directory of the UI sub-project.
	Name string

	// Port the UI dev server listens on.
	Port int

	// Build is the command that produces the production UI bundle.
	Build []string

	// Dev is the command that starts the UI dev server.
	Dev []string
}
