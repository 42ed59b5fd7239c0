// Package shell runs the packaging command directly on the host.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"
	logadapter "github.com/difrex/surok-build/internal/adapters/logger"
	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Packager)(nil)

// Packager implements ports.Packager using os/exec under a PTY, so
// packaging tools keep their progress output.
type Packager struct {
	logger ports.Logger
}

// NewPackager creates a host Packager.
func NewPackager(logger ports.Logger) *Packager {
	return &Packager{logger: logger}
}

// Run executes the packaging command in the source directory. The job's
// env entries extend the host environment, and DEB_DEST points the
// packaging scripts at the output directory.
func (p *Packager) Run(ctx context.Context, job domain.PackageJob) error {
	if len(job.Command) == 0 {
		return zerr.Wrap(domain.ErrPackageBuildFailed, "empty packaging command")
	}

	name := job.Command[0]
	args := job.Command[1:]

	cmdEnv := mergeEnvironment(os.Environ(), job.Env)
	cmdEnv = append(cmdEnv, "DEB_DEST="+job.OutputDir)

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // Command comes from the build config
	cmd.Dir = job.SourceDir
	cmd.Env = cmdEnv

	out := logadapter.NewLineWriter(p.logger)
	defer out.Close() //nolint:errcheck // Flush trailing partial lines

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start packaging command"), "command", name)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// The PTY merges stdout and stderr into one stream.
		_, _ = io.Copy(out, ptmx)
	}()

	waitErr := cmd.Wait()
	_ = ptmx.Close()
	<-ioDone

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return &domain.ExitError{
				Code: exitErr.ExitCode(),
				Err:  zerr.With(domain.ErrPackageBuildFailed, "exit_code", exitErr.ExitCode()),
			}
		}
		return zerr.Wrap(waitErr, domain.ErrPackageBuildFailed.Error())
	}

	return nil
}

// mergeEnvironment overlays extra KEY=VALUE pairs on a base environment,
// with later values winning per key.
func mergeEnvironment(base, extra []string) []string {
	merged := make(map[string]string, len(base)+len(extra))
	order := make([]string, 0, len(base)+len(extra))

	add := func(entry string) {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			return
		}
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] = entry
	}

	for _, entry := range base {
		add(entry)
	}
	for _, entry := range extra {
		add(entry)
	}

	result := make([]string, 0, len(order))
	for _, key := range order {
		result = append(result, merged[key])
	}
	return result
}
