package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fxdev/internal/core/ports"
)

// NodeID is the unique identifier for the command runner Graft node.
const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[ports.Runner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Runner, error) {
			return NewRunner(), nil
		},
	})
}
