package docker

import (
	"context"
	"path"

	logadapter "github.com/difrex/surok-build/internal/adapters/logger"
	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Packager)(nil)

// Packager runs the Debian packaging command inside the builder image.
//
// The source tree is bind-mounted at the job's workdir and the output
// directory at the workdir's parent, which is where dpkg-buildpackage
// drops its artifacts.
type Packager struct {
	cli    client.APIClient
	logger ports.Logger
}

// NewPackager creates a Packager connected to the daemon from the
// environment.
func NewPackager(logger ports.Logger) (*Packager, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create docker client")
	}
	return &Packager{cli: cli, logger: logger}, nil
}

// Run executes the packaging command and propagates the container's exit
// status on failure.
func (p *Packager) Run(ctx context.Context, job domain.PackageJob) error {
	resp, err := p.cli.ContainerCreate(ctx, &container.Config{
		Image:      job.Image,
		Cmd:        job.Command,
		WorkingDir: job.Workdir,
		Env:        job.Env,
	}, &container.HostConfig{
		Binds: containerBinds(job),
	}, nil, nil, "")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create builder container"), "image", job.Image)
	}

	defer func() {
		_ = p.cli.ContainerRemove(context.WithoutCancel(ctx), resp.ID, container.RemoveOptions{Force: true})
	}()

	if err := p.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return zerr.Wrap(err, "failed to start builder container")
	}

	status, err := p.waitForContainer(ctx, resp.ID)
	if err != nil {
		return err
	}

	if logErr := p.streamLogs(ctx, resp.ID); logErr != nil {
		p.logger.Warn("could not read builder container logs: " + logErr.Error())
	}

	if status != 0 {
		return &domain.ExitError{
			Code: int(status),
			Err:  zerr.With(domain.ErrPackageBuildFailed, "exit_code", status),
		}
	}

	return nil
}

func (p *Packager) waitForContainer(ctx context.Context, id string) (int64, error) {
	waitCh, errCh := p.cli.ContainerWait(ctx, id, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return 0, zerr.Wrap(err, "failed waiting for builder container")
	case status := <-waitCh:
		if status.Error != nil {
			return 0, zerr.With(domain.ErrPackageBuildFailed, "daemon_error", status.Error.Message)
		}
		return status.StatusCode, nil
	}
}

func (p *Packager) streamLogs(ctx context.Context, id string) error {
	logs, err := p.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return err
	}
	defer logs.Close() //nolint:errcheck // Best effort close in defer

	stdout := logadapter.NewLineWriter(p.logger)
	stderr := logadapter.NewWarnLineWriter(p.logger)
	defer stdout.Close() //nolint:errcheck // Flush trailing partial lines
	defer stderr.Close() //nolint:errcheck // Flush trailing partial lines

	// The daemon multiplexes both streams into one connection.
	_, err = stdcopy.StdCopy(stdout, stderr, logs)
	return err
}

// containerBinds mounts the output directory at the parent of the source
// mount so that dpkg-buildpackage's "../" artifacts land on the host.
func containerBinds(job domain.PackageJob) []string {
	return []string{
		job.OutputDir + ":" + path.Dir(job.Workdir),
		job.SourceDir + ":" + job.Workdir,
	}
}
