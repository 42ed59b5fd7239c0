package fs

import (
	"context"

	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/grindlemire/graft"
)

// HasherNodeID is the unique identifier for the hasher Graft node.
const HasherNodeID graft.ID = "adapter.hasher"

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
