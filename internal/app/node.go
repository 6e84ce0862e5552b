package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fxdev/internal/adapters/config"
	"go.trai.ch/fxdev/internal/adapters/esbuild"
	"go.trai.ch/fxdev/internal/adapters/logger"
	"go.trai.ch/fxdev/internal/adapters/manifest"
	"go.trai.ch/fxdev/internal/adapters/netaddr"
	"go.trai.ch/fxdev/internal/adapters/shell"
	"go.trai.ch/fxdev/internal/adapters/watcher"
	"go.trai.ch/fxdev/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			esbuild.NodeID,
			manifest.NodeID,
			netaddr.NodeID,
			shell.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	bundler, err := graft.Dep[ports.Bundler](ctx)
	if err != nil {
		return nil, err
	}

	patcher, err := graft.Dep[ports.ManifestPatcher](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.AddressResolver](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}

	manifestWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, bundler, patcher, resolver, runner, manifestWatcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
	}, nil
}
