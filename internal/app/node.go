package app

import (
	"context"

	"github.com/difrex/surok-build/internal/adapters/config"
	"github.com/difrex/surok-build/internal/adapters/docker"
	"github.com/difrex/surok-build/internal/adapters/fs"
	"github.com/difrex/surok-build/internal/adapters/logger"
	"github.com/difrex/surok-build/internal/adapters/shell"
	"github.com/difrex/surok-build/internal/adapters/source"
	"github.com/difrex/surok-build/internal/adapters/state"
	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/grindlemire/graft"
)

// Components bundles everything the entrypoint needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			docker.ImageBuilderNodeID,
			docker.PackagerNodeID,
			shell.NodeID,
			source.NodeID,
			fs.HasherNodeID,
			state.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			images, err := graft.Dep[ports.ImageBuilder](ctx)
			if err != nil {
				return nil, err
			}
			packer, err := graft.Dep[*docker.Packager](ctx)
			if err != nil {
				return nil, err
			}
			hostPkg, err := graft.Dep[*shell.Packager](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, images, packer, hostPkg, fetcher, hasher, store, log),
				Logger: log,
			}, nil
		},
	})
}
