// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fxdev/internal/adapters/config"
	_ "go.trai.ch/fxdev/internal/adapters/esbuild"
	_ "go.trai.ch/fxdev/internal/adapters/logger"
	_ "go.trai.ch/fxdev/internal/adapters/manifest"
	_ "go.trai.ch/fxdev/internal/adapters/netaddr"
	_ "go.trai.ch/fxdev/internal/adapters/shell"
	_ "go.trai.ch/fxdev/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/fxdev/internal/app"
)
