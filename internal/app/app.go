// Package app implements the application layer for surok-build.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic. Each method corresponds to
// one build routine dispatched by the CLI.
type App struct {
	loader  ports.ConfigLoader
	images  ports.ImageBuilder
	packer  ports.Packager
	hostPkg ports.Packager
	fetcher ports.SourceFetcher
	hasher  ports.Hasher
	store   ports.BuildInfoStore
	logger  ports.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a new App instance. packer runs the packaging command in a
// builder container; hostPkg runs it directly on the host.
func New(
	loader ports.ConfigLoader,
	images ports.ImageBuilder,
	packer ports.Packager,
	hostPkg ports.Packager,
	fetcher ports.SourceFetcher,
	hasher ports.Hasher,
	store ports.BuildInfoStore,
	log ports.Logger,
) *App {
	return &App{
		loader:  loader,
		images:  images,
		packer:  packer,
		hostPkg: hostPkg,
		fetcher: fetcher,
		hasher:  hasher,
		store:   store,
		logger:  log,
		now:     time.Now,
	}
}

// WithClock overrides the time source. Used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Clean removes the artifact output directory and the recorded build state.
func (a *App) Clean(_ context.Context) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	var errs error

	remove := func(path, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(cfg.OutputDir, "build artifacts")
	remove(cfg.StateDir(), "build state")

	return errs
}

// BuildBuilder builds the Debian builder image holding the packaging
// toolchain.
func (a *App) BuildBuilder(ctx context.Context) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	return a.buildImage(ctx, cfg, domain.ImageBuilder, domain.ImageBuildOptions{})
}

// BuildPackage builds the Surok Debian package, in the builder container
// by default or on the host when configured.
func (a *App) BuildPackage(ctx context.Context) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	sourceDir, err := a.fetcher.Ensure(ctx, cfg.Source)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", cfg.OutputDir)
	}

	builder, err := cfg.Image(domain.ImageBuilder)
	if err != nil {
		return err
	}

	job := domain.PackageJob{
		Image:     builder.Tag,
		SourceDir: sourceDir,
		OutputDir: cfg.OutputDir,
		Command:   cfg.Package.Command,
		Workdir:   cfg.Package.Workdir,
		Env:       cfg.Package.Env,
	}

	packer := a.packer
	mode := "container"
	if cfg.Package.Host {
		packer = a.hostPkg
		mode = "host"
	}

	a.logger.Info("building debian package (" + mode + " mode)")
	if err := packer.Run(ctx, job); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	a.logger.Info("debian package written to " + cfg.OutputDir)

	return nil
}

// BuildBase builds the Surok base image. With rebuild set, the daemon
// cache is bypassed and the image is always rebuilt. Without it, the
// build is skipped when the context digest matches the recorded one and
// the tag still exists in the daemon.
func (a *App) BuildBase(ctx context.Context, rebuild bool) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	spec, err := cfg.Image(domain.ImageBase)
	if err != nil {
		return err
	}

	digest, err := a.hasher.HashTree(spec.Context)
	if err != nil {
		return err
	}

	if !rebuild {
		skip, err := a.upToDate(ctx, cfg, spec, digest)
		if err != nil {
			return err
		}
		if skip {
			a.logger.Info("image " + spec.Tag + " is up to date, skipping build")
			return nil
		}
	}

	if err := a.buildImage(ctx, cfg, domain.ImageBase, domain.ImageBuildOptions{NoCache: rebuild}); err != nil {
		return err
	}

	return a.store.Put(cfg.StateDir(), domain.BuildInfo{
		Image:         domain.ImageBase,
		Tag:           spec.Tag,
		ContextDigest: digest,
		BuiltAt:       a.now(),
	})
}

// BuildAlpine builds the Alpine base image.
func (a *App) BuildAlpine(ctx context.Context) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	return a.buildImage(ctx, cfg, domain.ImageAlpine, domain.ImageBuildOptions{})
}

// BuildCentos builds the CentOS base image.
func (a *App) BuildCentos(ctx context.Context) error {
	cfg, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	return a.buildImage(ctx, cfg, domain.ImageCentos, domain.ImageBuildOptions{})
}

func (a *App) buildImage(ctx context.Context, cfg *domain.Config, role string, opts domain.ImageBuildOptions) error {
	spec, err := cfg.Image(role)
	if err != nil {
		return err
	}

	a.logger.Info("building image " + spec.Tag)
	if err := a.images.Build(ctx, spec, opts); err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	a.logger.Info("built image " + spec.Tag)

	return nil
}

// upToDate reports whether the recorded digest matches the current one
// and the tagged image is still present in the daemon.
func (a *App) upToDate(ctx context.Context, cfg *domain.Config, spec domain.ImageSpec, digest string) (bool, error) {
	info, err := a.store.Get(cfg.StateDir(), spec.Name)
	if err != nil {
		return false, err
	}
	if info == nil || info.ContextDigest != digest {
		return false, nil
	}

	exists, err := a.images.Exists(ctx, spec.Tag)
	if err != nil {
		return false, err
	}
	return exists, nil
}
