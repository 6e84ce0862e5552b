package domain

import "path/filepath"

// Well-known file and directory names inside a resource.
const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "fxdev.yaml"

	// EnvFileName is the name of the optional dotenv file loaded from the resource root.
	EnvFileName = ".env"

	// ManifestFileName is the name of the resource manifest consumed by the game server.
	ManifestFileName = "fxmanifest.lua"

	// DefaultUIDirName is the directory a UI sub-project lives in unless configured otherwise.
	DefaultUIDirName = "ui"

	// UIDistDirName is the directory a built UI sub-project publishes to.
	UIDistDirName = "dist"

	// UIPageFileName is the entry page of a built UI sub-project.
	UIPageFileName = "index.html"
)

// File system permissions for everything fxdev creates.
const (
	// DirPerm is the permission used for directories.
	DirPerm = 0o750

	// FilePerm is the permission used for regular files such as the patched manifest.
	FilePerm = 0o644
)

// ManifestPath returns the manifest location inside a resource root.
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}
