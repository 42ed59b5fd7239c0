package shell

import (
	"context"

	"github.com/difrex/surok-build/internal/adapters/logger"
	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the host packager Graft node.
const NodeID graft.ID = "adapter.packager.host"

func init() {
	graft.Register(graft.Node[*Packager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Packager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPackager(log), nil
		},
	})
}
