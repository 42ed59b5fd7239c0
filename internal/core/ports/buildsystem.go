// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/difrex/surok-build/internal/core/domain"
)

// ImageBuilder builds container images.
//
//go:generate mockgen -source=buildsystem.go -destination=mocks/mock_buildsystem.go -package=mocks
type ImageBuilder interface {
	// Build assembles the image described by spec. The context directory
	// is resolved by the caller; opts controls caching behavior.
	Build(ctx context.Context, spec domain.ImageSpec, opts domain.ImageBuildOptions) error

	// Exists reports whether an image with the given reference is present
	// in the daemon.
	Exists(ctx context.Context, ref string) (bool, error)
}

// Packager runs the Debian packaging command for a resolved job. The
// container and host implementations are interchangeable behind this
// interface.
type Packager interface {
	// Run executes the packaging command and returns an error carrying
	// the command's exit status on failure.
	Run(ctx context.Context, job domain.PackageJob) error
}

// SourceFetcher makes sure the Surok source tree is available locally.
type SourceFetcher interface {
	// Ensure returns the directory holding the source tree, cloning it
	// first when it is missing and a repository is configured.
	Ensure(ctx context.Context, src domain.Source) (string, error)
}
