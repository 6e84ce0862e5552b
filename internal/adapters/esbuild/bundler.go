// Package esbuild implements the bundler on esbuild's Go API.
package esbuild

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

// Bundler bundles build targets with esbuild.
type Bundler struct {
	logger ports.Logger
}

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger) *Bundler {
	return &Bundler{logger: logger}
}

// Build bundles the target once. Diagnostics are logged here, the returned
// error only signals that the build failed.
func (b *Bundler) Build(_ context.Context, target domain.BuildTarget) error {
	opts, err := buildOptions(target)
	if err != nil {
		return err
	}

	result := api.Build(opts)
	b.report(target.Name, result.Warnings, result.Errors)

	if len(result.Errors) > 0 {
		return zerr.With(zerr.New("bundling failed"), "target", target.Name)
	}
	return nil
}

// Watch starts an incremental build session for the target. The first pass
// is triggered by the session itself and also reaches onRebuild.
func (b *Bundler) Watch(_ context.Context, target domain.BuildTarget, onRebuild ports.RebuildFunc) (ports.BuildSession, error) {
	opts, err := buildOptions(target)
	if err != nil {
		return nil, err
	}
	opts.Plugins = append(opts.Plugins, b.notifyPlugin(target, onRebuild))

	bctx, ctxErr := api.Context(opts)
	if ctxErr != nil {
		b.report(target.Name, nil, ctxErr.Errors)
		return nil, zerr.With(domain.ErrWatchStartFailed, "target", target.Name)
	}

	if err := bctx.Watch(api.WatchOptions{}); err != nil {
		bctx.Dispose()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrWatchStartFailed.Error()), "target", target.Name)
	}

	return &session{bctx: bctx}, nil
}

// notifyPlugin reports the outcome of every watch mode pass.
func (b *Bundler) notifyPlugin(target domain.BuildTarget, onRebuild ports.RebuildFunc) api.Plugin {
	return api.Plugin{
		Name: "watch-notify",
		Setup: func(pb api.PluginBuild) {
			pb.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				b.report(target.Name, result.Warnings, result.Errors)

				failed := len(result.Errors) > 0
				if failed {
					b.logger.Warn(fmt.Sprintf("build of %s failed with %d error(s)", target.Name, len(result.Errors)))
				} else {
					b.logger.Info(fmt.Sprintf("built %s", target.Name))
				}

				if onRebuild != nil {
					onRebuild(failed)
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

// report logs esbuild diagnostics, one line per message.
func (b *Bundler) report(target string, warnings, errs []api.Message) {
	for _, msg := range warnings {
		b.logger.Warn(formatMessage(target, msg))
	}
	for _, msg := range errs {
		b.logger.Error(errors.New(formatMessage(target, msg)))
	}
}

// formatMessage flattens a diagnostic to a single line with its location.
func formatMessage(target string, msg api.Message) string {
	if msg.Location == nil {
		return fmt.Sprintf("%s: %s", target, msg.Text)
	}
	return fmt.Sprintf("%s: %s:%d:%d: %s", target, msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}

// session wraps an esbuild context as a running build session.
type session struct {
	bctx api.BuildContext
}

// Dispose stops watching and releases the build context.
func (s *session) Dispose() {
	s.bctx.Dispose()
}
