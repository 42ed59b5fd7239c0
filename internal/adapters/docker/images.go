// Package docker talks to the Docker daemon for image builds and
// containerized package builds.
package docker

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	logadapter "github.com/difrex/surok-build/internal/adapters/logger"
	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"go.trai.ch/zerr"
)

var _ ports.ImageBuilder = (*ImageBuilder)(nil)

// ImageBuilder implements ports.ImageBuilder using the Docker SDK.
type ImageBuilder struct {
	cli    client.APIClient
	logger ports.Logger
}

// NewImageBuilder creates an ImageBuilder connected to the daemon from
// the environment (DOCKER_HOST et al.).
func NewImageBuilder(logger ports.Logger) (*ImageBuilder, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create docker client")
	}
	return &ImageBuilder{cli: cli, logger: logger}, nil
}

// Build tars the context directory and sends it to the daemon.
func (b *ImageBuilder) Build(ctx context.Context, spec domain.ImageSpec, opts domain.ImageBuildOptions) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	buildContext, err := archive.TarWithOptions(spec.Context, &archive.TarOptions{})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build context"), "context", spec.Context)
	}
	defer buildContext.Close() //nolint:errcheck // Best effort close in defer

	resp, err := b.cli.ImageBuild(ctx, buildContext, types.ImageBuildOptions{
		Tags:       []string{spec.Tag},
		Dockerfile: spec.Dockerfile,
		Remove:     true,
		NoCache:    opts.NoCache,
		PullParent: opts.Pull,
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrImageBuildFailed.Error()), "tag", spec.Tag)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	if err := b.drainBuildStream(resp.Body); err != nil {
		return zerr.With(err, "tag", spec.Tag)
	}

	return nil
}

// drainBuildStream consumes the daemon's JSON progress stream, forwarding
// build output to the logger and surfacing build errors.
func (b *ImageBuilder) drainBuildStream(body io.Reader) error {
	out := logadapter.NewLineWriter(b.logger)
	defer out.Close() //nolint:errcheck // Best effort close in defer

	dec := json.NewDecoder(body)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return zerr.Wrap(err, domain.ErrImageBuildFailed.Error())
		}

		if msg.Error != nil {
			return zerr.Wrap(msg.Error, domain.ErrImageBuildFailed.Error())
		}
		if msg.Stream != "" {
			_, _ = out.Write([]byte(msg.Stream))
		}
	}
}

// Exists reports whether an image with the given reference is present in
// the daemon.
func (b *ImageBuilder) Exists(ctx context.Context, ref string) (bool, error) {
	images, err := b.cli.ImageList(ctx, types.ImageListOptions{
		Filters: filters.NewArgs(filters.Arg("reference", ref)),
	})
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to list images"), "reference", ref)
	}
	return len(images) > 0, nil
}
