package netaddr

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fxdev/internal/core/ports"
)

// NodeID is the unique identifier for the address resolver Graft node.
const NodeID graft.ID = "adapter.netaddr"

func init() {
	graft.Register(graft.Node[ports.AddressResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AddressResolver, error) {
			return NewResolver(), nil
		},
	})
}
