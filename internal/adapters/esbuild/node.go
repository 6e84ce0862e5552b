package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fxdev/internal/adapters/logger"
	"go.trai.ch/fxdev/internal/core/ports"
)

// NodeID is the unique identifier for the bundler Graft node.
const NodeID graft.ID = "adapter.esbuild"

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBundler(log), nil
		},
	})
}
