package ports

import "github.com/difrex/surok-build/internal/core/domain"

// BuildInfoStore persists per-image build records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build info for an image role. A missing record
	// returns (nil, nil).
	Get(root, image string) (*domain.BuildInfo, error)

	// Put stores the build info.
	Put(root string, info domain.BuildInfo) error
}

// Hasher computes digests of image build contexts.
type Hasher interface {
	// HashTree returns a stable digest of every file under root.
	HashTree(root string) (string, error)
}
