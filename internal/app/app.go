// Package app implements the application layer for fxdev.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/fxdev/internal/adapters/restarter"
	"go.trai.ch/fxdev/internal/adapters/telemetry"
	"go.trai.ch/fxdev/internal/adapters/watcher"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// RestarterFactory creates the restart notifier of a watch session.
type RestarterFactory func(settings domain.RestartSettings, resource string) ports.Restarter

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	bundler      ports.Bundler
	patcher      ports.ManifestPatcher
	resolver     ports.AddressResolver
	runner       ports.Runner
	watcher      ports.Watcher
	logger       ports.Logger
	newRestarter RestarterFactory
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	bundler ports.Bundler,
	patcher ports.ManifestPatcher,
	resolver ports.AddressResolver,
	runner ports.Runner,
	manifestWatcher ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		bundler:      bundler,
		patcher:      patcher,
		resolver:     resolver,
		runner:       runner,
		watcher:      manifestWatcher,
		logger:       log,
		newRestarter: func(settings domain.RestartSettings, resource string) ports.Restarter {
			return restarter.NewNotifier(log, settings, resource)
		},
	}
}

// WithRestarterFactory replaces how restart notifiers are created.
// This is primarily used for testing to avoid real HTTP requests.
func (a *App) WithRestarterFactory(factory RestarterFactory) *App {
	a.newRestarter = factory
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	Game    string
	Address string
}

// Build patches the manifest, bundles all targets concurrently and builds the
// UI sub-project when the resource carries one.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	project, err := a.loadProject(opts.Game, opts.Address)
	if err != nil {
		return err
	}

	profile := a.targetProfile(project, false)
	a.patchManifest(project, profile)

	tracer := a.setupTelemetry()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range project.Targets {
		g.Go(func() error {
			return a.buildTarget(gctx, tracer, project, target)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if profile.HasUI {
		if err := a.buildUI(ctx, tracer, project); err != nil {
			return err
		}
	}

	a.logger.Info(fmt.Sprintf("built %s in %s", project.Resource, time.Since(start).Round(time.Millisecond)))
	return nil
}

// buildTarget bundles a single target inside its own span.
func (a *App) buildTarget(ctx context.Context, tracer ports.Tracer, project *domain.Project, target domain.BuildTarget) error {
	ctx, span := tracer.Start(ctx, target.Name)
	defer span.End()
	span.SetAttribute("entry", target.Entry)

	target.Define = target.MergedDefine(project.Game, project.Define)

	if err := a.bundler.Build(ctx, target); err != nil {
		span.RecordError(err)
		return errors.Join(domain.ErrBuildFailed, err)
	}
	return nil
}

// buildUI runs the UI build command and waits for it. A failing UI build
// fails the whole run, the resource must not ship a stale UI bundle.
func (a *App) buildUI(ctx context.Context, tracer ports.Tracer, project *domain.Project) error {
	if len(project.UI.Build) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "ui")
	defer span.End()
	span.SetAttribute("dir", project.UI.Dir)

	if err := a.runner.Run(ctx, project.UI.Dir, project.UI.Build); err != nil {
		span.RecordError(err)
		uiErr := zerr.Wrap(err, "ui build failed")
		a.logger.Error(uiErr)
		return errors.Join(domain.ErrBuildFailed, uiErr)
	}
	return nil
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Game    string
	Address string
}

// Watch keeps all targets bundled on change until ctx is canceled. Every
// session reports rebuilds to the restart notifier, so the game server
// reloads the resource while the developer works.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	project, err := a.loadProject(opts.Game, opts.Address)
	if err != nil {
		return err
	}

	profile := a.targetProfile(project, true)
	a.patchManifest(project, profile)

	notifier := a.newRestarter(project.Restart, project.Resource)

	for _, target := range project.Targets {
		target.Define = target.MergedDefine(project.Game, project.Define)
		session, err := a.bundler.Watch(ctx, target, notifier.BuildCompleted)
		if err != nil {
			return err
		}
		defer session.Dispose()
	}

	if profile.HasUI {
		a.startUIDev(project, profile)
	}

	stop := a.watchManifest(ctx, project, profile, notifier)
	defer stop()

	a.logger.Info("watching for changes, press ctrl+c to stop")
	<-ctx.Done()

	return nil
}

// startUIDev spawns the UI dev server in its own session. Spawn failures are
// not fatal, script bundling works without the UI.
func (a *App) startUIDev(project *domain.Project, profile domain.TargetProfile) {
	if len(project.UI.Dev) == 0 {
		return
	}

	if err := a.runner.StartDetached(project.UI.Dir, project.UI.Dev); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to start ui dev server: %v", err))
		return
	}
	a.logger.Info(fmt.Sprintf("ui dev server starting on http://%s:%d", profile.Address, profile.UIPort))
}

// watchManifest re-applies the profile when the manifest is edited by hand.
// The returned stop func flushes pending events and releases the watcher.
func (a *App) watchManifest(ctx context.Context, project *domain.Project, profile domain.TargetProfile, notifier ports.Restarter) func() {
	var lastFingerprint atomic.Uint64
	if fp, err := a.patcher.Fingerprint(project.Root); err == nil {
		lastFingerprint.Store(fp)
	}

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(_ []string) {
		a.onManifestChanged(project, profile, &lastFingerprint, notifier)
	})

	if err := a.watcher.Start(ctx, project.Root); err != nil {
		a.logger.Warn(fmt.Sprintf("manifest watching disabled: %v", err))
		return func() {}
	}

	events := a.watcher.Events()
	go func() {
		for event := range events {
			if filepath.Base(event.Path) != domain.ManifestFileName || event.Operation == ports.OpRemove {
				continue
			}
			debouncer.Add(event.Path)
		}
	}()

	return func() {
		debouncer.Flush()
		_ = a.watcher.Stop()
	}
}

// onManifestChanged handles a debounced batch of manifest events. fxdev's own
// write-backs arrive here too, the fingerprint comparison drops them.
func (a *App) onManifestChanged(project *domain.Project, profile domain.TargetProfile, lastFingerprint *atomic.Uint64, notifier ports.Restarter) {
	current, err := a.patcher.Fingerprint(project.Root)
	if err == nil && current == lastFingerprint.Load() {
		return
	}

	a.logger.Info(domain.ManifestFileName + " changed, re-applying dev settings")

	if _, err := a.patcher.Patch(project.Root, profile); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to patch manifest: %v", err))
		return
	}

	if fp, err := a.patcher.Fingerprint(project.Root); err == nil {
		lastFingerprint.Store(fp)
	}

	// A manifest edit only takes effect after a resource restart.
	notifier.BuildCompleted(false)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	UI bool
}

// Clean removes the built target outputs and, when requested, the built UI
// bundle. Only paths inside the resource root are ever removed.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	project, err := a.loadProject("", "")
	if err != nil {
		return err
	}

	var errs error

	remove := func(path string) {
		name, err := relInsideRoot(project.Root, path)
		if err != nil {
			errs = errors.Join(errs, err)
			return
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return
		}
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	for _, target := range project.Targets {
		remove(target.Outfile)
		if target.Sourcemap {
			remove(target.Outfile + ".map")
		}
	}

	if opts.UI {
		remove(filepath.Join(project.UI.Dir, domain.UIDistDirName))
	}

	return errs
}

// loadProject loads the configuration and applies command line overrides.
func (a *App) loadProject(game, address string) (*domain.Project, error) {
	project, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if game != "" {
		parsed, err := domain.ParseGame(game)
		if err != nil {
			return nil, zerr.With(err, "game", game)
		}
		project.Game = parsed
	}
	if address != "" {
		project.Address = address
	}

	return project, nil
}

// targetProfile derives the manifest profile of the session.
func (a *App) targetProfile(project *domain.Project, watch bool) domain.TargetProfile {
	return domain.TargetProfile{
		Game:    project.Game,
		Watch:   watch,
		HasUI:   hasUI(project),
		UIDir:   project.UI.Name,
		Address: a.resolver.Resolve(project.Address),
		UIPort:  project.UI.Port,
	}
}

// hasUI reports whether the resource carries a UI sub-project.
func hasUI(project *domain.Project) bool {
	info, err := os.Stat(project.UI.Dir)
	return err == nil && info.IsDir()
}

// patchManifest applies the profile to the resource manifest. Manifest
// trouble never stops a build, it only warns.
func (a *App) patchManifest(project *domain.Project, profile domain.TargetProfile) {
	changed, err := a.patcher.Patch(project.Root, profile)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("failed to patch manifest: %v", err))
		return
	}
	if changed {
		a.logger.Info("updated " + domain.ManifestFileName)
	}
}

// setupTelemetry wires the span bridge to the logger and returns the tracer
// used for build spans.
func (a *App) setupTelemetry() ports.Tracer {
	bridge := telemetry.NewBridge(a.logger)
	setupOTel(bridge)
	return telemetry.NewOTelTracer("fxdev")
}

// relInsideRoot returns path relative to root, or an error when path escapes
// or names the root itself.
func relInsideRoot(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrOutputPathOutsideRoot, "path", path)
	}
	return rel, nil
}

// setupOTel configures the OpenTelemetry SDK with the logger bridge.
func setupOTel(bridge *telemetry.Bridge) {
	// Create a new TracerProvider with the bridge as a SpanProcessor.
	// This ensures that all finished spans are reported to the logger.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)

	// Register it as the global provider.
	otel.SetTracerProvider(tp)
}
