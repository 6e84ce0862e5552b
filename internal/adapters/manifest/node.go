package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fxdev/internal/core/ports"
)

// NodeID is the unique identifier for the manifest patcher Graft node.
const NodeID graft.ID = "adapter.manifest"

func init() {
	graft.Register(graft.Node[ports.ManifestPatcher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestPatcher, error) {
			return NewPatcher(), nil
		},
	})
}
