package ports

import (
	"context"

	"go.trai.ch/fxdev/internal/core/domain"
)

// RebuildFunc is invoked after every rebuild of a watched target. failed is
// true when the rebuild reported errors.
type RebuildFunc func(failed bool)

// Bundler bundles build targets.
//
//go:generate mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type Bundler interface {
	// Build bundles the target once. Diagnostics are reported through the
	// logger; the returned error only signals that the build failed.
	Build(ctx context.Context, target domain.BuildTarget) error

	// Watch starts an incremental build session that rebuilds the target
	// whenever its inputs change, invoking onRebuild after every pass,
	// including the initial one.
	Watch(ctx context.Context, target domain.BuildTarget, onRebuild RebuildFunc) (BuildSession, error)
}

// BuildSession is a running incremental build.
type BuildSession interface {
	// Dispose stops the session and releases its resources.
	Dispose()
}
