package docker

import (
	"context"

	"github.com/difrex/surok-build/internal/adapters/logger"
	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	// ImageBuilderNodeID is the unique identifier for the image builder Graft node.
	ImageBuilderNodeID graft.ID = "adapter.image_builder"
	// PackagerNodeID is the unique identifier for the container packager Graft node.
	PackagerNodeID graft.ID = "adapter.packager.container"
)

func init() {
	graft.Register(graft.Node[ports.ImageBuilder]{
		ID:        ImageBuilderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ImageBuilder, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewImageBuilder(log)
		},
	})

	graft.Register(graft.Node[*Packager]{
		ID:        PackagerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Packager, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPackager(log)
		},
	})
}
