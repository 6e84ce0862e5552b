package app_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fxdev/internal/adapters/watcher"
	"go.trai.ch/fxdev/internal/app"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/fxdev/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	ctrl      *gomock.Controller
	loader    *mocks.MockConfigLoader
	bundler   *mocks.MockBundler
	patcher   *mocks.MockManifestPatcher
	resolver  *mocks.MockAddressResolver
	runner    *mocks.MockRunner
	watcher   *mocks.MockWatcher
	logger    *mocks.MockLogger
	restarter *mocks.MockRestarter
}

func newTestApp(t *testing.T) (*app.App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &appMocks{
		ctrl:      ctrl,
		loader:    mocks.NewMockConfigLoader(ctrl),
		bundler:   mocks.NewMockBundler(ctrl),
		patcher:   mocks.NewMockManifestPatcher(ctrl),
		resolver:  mocks.NewMockAddressResolver(ctrl),
		runner:    mocks.NewMockRunner(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		restarter: mocks.NewMockRestarter(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.resolver.EXPECT().Resolve(gomock.Any()).Return("10.0.0.5").AnyTimes()

	a := app.New(m.loader, m.bundler, m.patcher, m.resolver, m.runner, m.watcher, m.logger).
		WithRestarterFactory(func(domain.RestartSettings, string) ports.Restarter {
			return m.restarter
		})

	return a, m
}

func testProject(root string) *domain.Project {
	return &domain.Project{
		Root:     root,
		Resource: "demo",
		Game:     domain.GameGTA5,
		Restart: domain.RestartSettings{
			URL:      "http://127.0.0.1:30120/fxdev/restart",
			Timeout:  2 * time.Second,
			Debounce: 500 * time.Millisecond,
		},
		UI: domain.UISettings{
			Dir:   filepath.Join(root, "ui"),
			Name:  "ui",
			Port:  5173,
			Build: []string{"npm", "run", "build"},
			Dev:   []string{"npm", "run", "dev"},
		},
		Targets: []domain.BuildTarget{
			{
				Name:     "client",
				Entry:    filepath.Join(root, "src", "client", "index.ts"),
				Outfile:  filepath.Join(root, "dist", "client.js"),
				Platform: "browser",
				Target:   "es2021",
				Format:   "iife",
			},
			{
				Name:     "server",
				Entry:    filepath.Join(root, "src", "server", "index.ts"),
				Outfile:  filepath.Join(root, "dist", "server.js"),
				Platform: "node",
				Target:   "node16",
				Format:   "cjs",
			},
		},
	}
}

var noEvents iter.Seq[ports.WatchEvent] = func(func(ports.WatchEvent) bool) {}

// channelEvents adapts a channel to the watcher's event iterator, so tests
// can feed events at exact points in time.
func channelEvents(events <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range events {
			if !yield(event) {
				return
			}
		}
	}
}

func TestApp_Build(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())

	m.loader.EXPECT().Load(".").Return(project, nil)

	var gotProfile domain.TargetProfile
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).DoAndReturn(
		func(_ string, profile domain.TargetProfile) (bool, error) {
			gotProfile = profile
			return true, nil
		})

	built := make(chan domain.BuildTarget, len(project.Targets))
	m.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target domain.BuildTarget) error {
			built <- target
			return nil
		}).Times(2)

	err := a.Build(context.Background(), app.BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.GameGTA5, gotProfile.Game)
	assert.False(t, gotProfile.Watch)
	assert.False(t, gotProfile.HasUI)
	assert.Equal(t, "10.0.0.5", gotProfile.Address)

	targets := []domain.BuildTarget{<-built, <-built}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	assert.Equal(t, "client", targets[0].Name)
	assert.Equal(t, "server", targets[1].Name)

	// Every bundled target carries the platform constant.
	assert.Equal(t, "false", targets[0].Define[domain.DefineIsRDR3])
	assert.Equal(t, "false", targets[1].Define[domain.DefineIsRDR3])
}

func TestApp_Build_MergesDefines(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Define = map[string]string{"VERSION": `"1.0.0"`}
	project.Targets = project.Targets[:1]
	project.Targets[0].Define = map[string]string{"DEBUG": "true"}

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(false, nil)

	var got domain.BuildTarget
	m.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, target domain.BuildTarget) error {
			got = target
			return nil
		})

	err := a.Build(context.Background(), app.BuildOptions{Game: "rdr3"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		domain.DefineIsRDR3: "true",
		"VERSION":           `"1.0.0"`,
		"DEBUG":             "true",
	}, got.Define)
}

func TestApp_Build_WithUI(t *testing.T) {
	a, m := newTestApp(t)
	root := t.TempDir()
	project := testProject(root)
	project.Targets = project.Targets[:1]
	require.NoError(t, os.MkdirAll(project.UI.Dir, domain.DirPerm))

	m.loader.EXPECT().Load(".").Return(project, nil)

	var gotProfile domain.TargetProfile
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).DoAndReturn(
		func(_ string, profile domain.TargetProfile) (bool, error) {
			gotProfile = profile
			return true, nil
		})
	m.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil)
	m.runner.EXPECT().Run(gomock.Any(), project.UI.Dir, []string{"npm", "run", "build"}).Return(nil)

	err := a.Build(context.Background(), app.BuildOptions{})
	require.NoError(t, err)

	assert.True(t, gotProfile.HasUI)
	assert.Equal(t, "ui", gotProfile.UIDir)
	assert.Equal(t, 5173, gotProfile.UIPort)
}

func TestApp_Build_BundlerError(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).Return(errors.New("bundling failed"))

	err := a.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
}

func TestApp_Build_UIBuildError(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]
	require.NoError(t, os.MkdirAll(project.UI.Dir, domain.DirPerm))

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil)
	m.runner.EXPECT().Run(gomock.Any(), project.UI.Dir, gomock.Any()).Return(errors.New("exit status 1"))
	m.logger.EXPECT().Error(gomock.Any()).Times(1)

	err := a.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorContains(t, err, "ui build failed")
}

func TestApp_Build_ConfigError(t *testing.T) {
	a, m := newTestApp(t)

	m.loader.EXPECT().Load(".").Return(nil, errors.New("yaml: line 3: mapping values are not allowed"))

	err := a.Build(context.Background(), app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
	assert.NotErrorIs(t, err, domain.ErrBuildFailed)
}

func TestApp_Build_InvalidGame(t *testing.T) {
	a, m := newTestApp(t)

	m.loader.EXPECT().Load(".").Return(testProject(t.TempDir()), nil)

	err := a.Build(context.Background(), app.BuildOptions{Game: "gta6"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidGame.Error())
}

func TestApp_Build_ManifestWarningDoesNotStopBuild(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(false, errors.New("permission denied"))
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)
	m.bundler.EXPECT().Build(gomock.Any(), gomock.Any()).Return(nil)

	err := a.Build(context.Background(), app.BuildOptions{})
	require.NoError(t, err)
}

func TestApp_Watch(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())

	m.loader.EXPECT().Load(".").Return(project, nil)

	var gotProfile domain.TargetProfile
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).DoAndReturn(
		func(_ string, profile domain.TargetProfile) (bool, error) {
			gotProfile = profile
			return true, nil
		})
	m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(1), nil)

	session := mocks.NewMockBuildSession(m.ctrl)
	session.EXPECT().Dispose().Times(2)

	var hooks []ports.RebuildFunc
	m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.BuildTarget, onRebuild ports.RebuildFunc) (ports.BuildSession, error) {
			hooks = append(hooks, onRebuild)
			return session, nil
		}).Times(2)

	m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(nil)
	m.watcher.EXPECT().Events().Return(noEvents)
	m.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Watch(ctx, app.WatchOptions{})
	require.NoError(t, err)

	assert.True(t, gotProfile.Watch)
	require.Len(t, hooks, 2)

	// The rebuild hooks feed the restart notifier.
	m.restarter.EXPECT().BuildCompleted(false).Times(1)
	m.restarter.EXPECT().BuildCompleted(true).Times(1)
	hooks[0](false)
	hooks[1](true)
}

func TestApp_Watch_SessionStartError(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(false, nil)
	m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrWatchStartFailed)

	err := a.Watch(context.Background(), app.WatchOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWatchStartFailed.Error())
}

func TestApp_Watch_StartsUIDevServer(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]
	require.NoError(t, os.MkdirAll(project.UI.Dir, domain.DirPerm))

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(true, nil)
	m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(1), nil)

	session := mocks.NewMockBuildSession(m.ctrl)
	session.EXPECT().Dispose()
	m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

	m.runner.EXPECT().StartDetached(project.UI.Dir, []string{"npm", "run", "dev"}).Return(nil)

	m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(nil)
	m.watcher.EXPECT().Events().Return(noEvents)
	m.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Watch(ctx, app.WatchOptions{})
	require.NoError(t, err)
}

func TestApp_Watch_UIDevSpawnFailureIsNotFatal(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]
	require.NoError(t, os.MkdirAll(project.UI.Dir, domain.DirPerm))

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(true, nil)
	m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(1), nil)

	session := mocks.NewMockBuildSession(m.ctrl)
	session.EXPECT().Dispose()
	m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

	m.runner.EXPECT().StartDetached(project.UI.Dir, gomock.Any()).Return(errors.New("npm not found"))
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(nil)
	m.watcher.EXPECT().Events().Return(noEvents)
	m.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Watch(ctx, app.WatchOptions{})
	require.NoError(t, err)
}

func TestApp_Watch_WatcherStartErrorIsNotFatal(t *testing.T) {
	a, m := newTestApp(t)
	project := testProject(t.TempDir())
	project.Targets = project.Targets[:1]

	m.loader.EXPECT().Load(".").Return(project, nil)
	m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(true, nil)
	m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(1), nil)

	session := mocks.NewMockBuildSession(m.ctrl)
	session.EXPECT().Dispose()
	m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

	m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(errors.New("too many open files"))
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := a.Watch(ctx, app.WatchOptions{})
	require.NoError(t, err)
}

func TestApp_Watch_ManifestEdit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newTestApp(t)
		project := testProject(t.TempDir())
		project.Targets = project.Targets[:1]

		m.loader.EXPECT().Load(".").Return(project, nil)

		// Initial patch plus the re-patch after the edit.
		m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(true, nil).Times(2)
		gomock.InOrder(
			m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(1), nil),
			m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(2), nil),
			m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(2), nil),
		)

		session := mocks.NewMockBuildSession(m.ctrl)
		session.EXPECT().Dispose()
		m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

		events := make(chan ports.WatchEvent)
		m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(nil)
		m.watcher.EXPECT().Events().Return(channelEvents(events))
		m.watcher.EXPECT().Stop().Return(nil)

		m.restarter.EXPECT().BuildCompleted(false).Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- a.Watch(ctx, app.WatchOptions{}) }()
		synctest.Wait()

		events <- ports.WatchEvent{
			Path:      filepath.Join(project.Root, domain.ManifestFileName),
			Operation: ports.OpWrite,
		}
		time.Sleep(watcher.DefaultDebounceWindow + 10*time.Millisecond)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)
		close(events)
	})
}

func TestApp_Watch_SkipsOwnWriteBack(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newTestApp(t)
		project := testProject(t.TempDir())
		project.Targets = project.Targets[:1]

		m.loader.EXPECT().Load(".").Return(project, nil)

		// Only the initial patch, the event fingerprint matches the write-back.
		m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(true, nil).Times(1)
		m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(7), nil).Times(2)

		session := mocks.NewMockBuildSession(m.ctrl)
		session.EXPECT().Dispose()
		m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

		events := make(chan ports.WatchEvent)
		m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(nil)
		m.watcher.EXPECT().Events().Return(channelEvents(events))
		m.watcher.EXPECT().Stop().Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- a.Watch(ctx, app.WatchOptions{}) }()
		synctest.Wait()

		events <- ports.WatchEvent{
			Path:      filepath.Join(project.Root, domain.ManifestFileName),
			Operation: ports.OpWrite,
		}
		time.Sleep(watcher.DefaultDebounceWindow + 10*time.Millisecond)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)
		close(events)
	})
}

func TestApp_Watch_IgnoresOtherFiles(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		a, m := newTestApp(t)
		project := testProject(t.TempDir())
		project.Targets = project.Targets[:1]

		m.loader.EXPECT().Load(".").Return(project, nil)
		m.patcher.EXPECT().Patch(project.Root, gomock.Any()).Return(true, nil).Times(1)
		m.patcher.EXPECT().Fingerprint(project.Root).Return(uint64(1), nil).Times(1)

		session := mocks.NewMockBuildSession(m.ctrl)
		session.EXPECT().Dispose()
		m.bundler.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

		events := make(chan ports.WatchEvent)
		m.watcher.EXPECT().Start(gomock.Any(), project.Root).Return(nil)
		m.watcher.EXPECT().Events().Return(channelEvents(events))
		m.watcher.EXPECT().Stop().Return(nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- a.Watch(ctx, app.WatchOptions{}) }()
		synctest.Wait()

		events <- ports.WatchEvent{Path: filepath.Join(project.Root, "README.md"), Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: filepath.Join(project.Root, domain.ManifestFileName), Operation: ports.OpRemove}
		time.Sleep(watcher.DefaultDebounceWindow + 10*time.Millisecond)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)
		close(events)
	})
}

func TestApp_Clean(t *testing.T) {
	a, m := newTestApp(t)
	root := t.TempDir()
	project := testProject(root)
	project.Targets[0].Sourcemap = true

	for _, name := range []string{
		filepath.Join("dist", "client.js"),
		filepath.Join("dist", "client.js.map"),
		filepath.Join("dist", "server.js"),
		filepath.Join("ui", "dist", "index.html"),
	} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte("x"), domain.FilePerm))
	}

	m.loader.EXPECT().Load(".").Return(project, nil)

	err := a.Clean(context.Background(), app.CleanOptions{UI: true})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "dist", "client.js"))
	assert.NoFileExists(t, filepath.Join(root, "dist", "client.js.map"))
	assert.NoFileExists(t, filepath.Join(root, "dist", "server.js"))
	assert.NoDirExists(t, filepath.Join(root, "ui", "dist"))
	// The UI sources themselves stay.
	assert.DirExists(t, filepath.Join(root, "ui"))
}

func TestApp_Clean_KeepsUIWithoutFlag(t *testing.T) {
	a, m := newTestApp(t)
	root := t.TempDir()
	project := testProject(root)

	uiIndex := filepath.Join(root, "ui", "dist", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(uiIndex), domain.DirPerm))
	require.NoError(t, os.WriteFile(uiIndex, []byte("x"), domain.FilePerm))

	m.loader.EXPECT().Load(".").Return(project, nil)

	err := a.Clean(context.Background(), app.CleanOptions{})
	require.NoError(t, err)

	assert.FileExists(t, uiIndex)
}

func TestApp_Clean_RefusesPathsOutsideRoot(t *testing.T) {
	a, m := newTestApp(t)
	root := t.TempDir()
	outside := filepath.Join(t.TempDir(), "escape.js")
	require.NoError(t, os.WriteFile(outside, []byte("x"), domain.FilePerm))

	project := testProject(root)
	project.Targets = project.Targets[:1]
	project.Targets[0].Outfile = outside

	m.loader.EXPECT().Load(".").Return(project, nil)

	err := a.Clean(context.Background(), app.CleanOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutputPathOutsideRoot.Error())
	assert.FileExists(t, outside)
}
