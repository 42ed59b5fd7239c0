package state

import (
	"context"

	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the build info store Graft node.
const NodeID graft.ID = "adapter.build_info_store"

func init() {
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildInfoStore, error) {
			return NewStore(), nil
		},
	})
}
