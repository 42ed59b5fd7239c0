package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/difrex/surok-build/internal/app"
	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader  *mocks.MockConfigLoader
	images  *mocks.MockImageBuilder
	packer  *mocks.MockPackager
	hostPkg *mocks.MockPackager
	fetcher *mocks.MockSourceFetcher
	hasher  *mocks.MockHasher
	store   *mocks.MockBuildInfoStore
	logger  *mocks.MockLogger
	app     *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		images:  mocks.NewMockImageBuilder(ctrl),
		packer:  mocks.NewMockPackager(ctrl),
		hostPkg: mocks.NewMockPackager(ctrl),
		fetcher: mocks.NewMockSourceFetcher(ctrl),
		hasher:  mocks.NewMockHasher(ctrl),
		store:   mocks.NewMockBuildInfoStore(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	f.app = app.New(f.loader, f.images, f.packer, f.hostPkg, f.fetcher, f.hasher, f.store, f.logger)
	return f
}

func testConfig(root string) *domain.Config {
	return &domain.Config{
		Root: root,
		Source: domain.Source{
			Dir: filepath.Join(root, "src"),
		},
		OutputDir: filepath.Join(root, "dist"),
		Images: map[string]domain.ImageSpec{
			domain.ImageBuilder: {Name: domain.ImageBuilder, Tag: "surok/builder", Context: filepath.Join(root, "dockerfiles", "builder"), Dockerfile: "Dockerfile"},
			domain.ImageBase:    {Name: domain.ImageBase, Tag: "surok/base", Context: filepath.Join(root, "dockerfiles", "base"), Dockerfile: "Dockerfile"},
			domain.ImageAlpine:  {Name: domain.ImageAlpine, Tag: "surok/alpine", Context: filepath.Join(root, "dockerfiles", "alpine"), Dockerfile: "Dockerfile"},
			domain.ImageCentos:  {Name: domain.ImageCentos, Tag: "surok/centos", Context: filepath.Join(root, "dockerfiles", "centos"), Dockerfile: "Dockerfile"},
		},
		Package: domain.PackageSettings{
			Command: domain.DefaultPackageCommand,
			Workdir: domain.DefaultContainerWorkdir,
		},
	}
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t)

	root := t.TempDir()
	cfg := testConfig(root)
	require.NoError(t, os.MkdirAll(cfg.OutputDir, 0o750))
	require.NoError(t, os.MkdirAll(cfg.StateDir(), 0o750))

	f.loader.EXPECT().Load(".").Return(cfg, nil)

	require.NoError(t, f.app.Clean(context.Background()))

	assert.NoDirExists(t, cfg.OutputDir)
	assert.NoDirExists(t, cfg.StateDir())
}

func TestApp_BuildBuilder(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.images.EXPECT().
		Build(gomock.Any(), cfg.Images[domain.ImageBuilder], domain.ImageBuildOptions{}).
		Return(nil)

	require.NoError(t, f.app.BuildBuilder(context.Background()))
}

func TestApp_BuildPackage_ContainerMode(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.fetcher.EXPECT().Ensure(gomock.Any(), cfg.Source).Return(cfg.Source.Dir, nil)
	f.packer.EXPECT().
		Run(gomock.Any(), domain.PackageJob{
			Image:     "surok/builder",
			SourceDir: cfg.Source.Dir,
			OutputDir: cfg.OutputDir,
			Command:   domain.DefaultPackageCommand,
			Workdir:   domain.DefaultContainerWorkdir,
		}).
		Return(nil)

	require.NoError(t, f.app.BuildPackage(context.Background()))
	assert.DirExists(t, cfg.OutputDir)
}

func TestApp_BuildPackage_HostMode(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())
	cfg.Package.Host = true

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.fetcher.EXPECT().Ensure(gomock.Any(), cfg.Source).Return(cfg.Source.Dir, nil)
	f.hostPkg.EXPECT().Run(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.app.BuildPackage(context.Background()))
}

func TestApp_BuildPackage_SourceFetchFails(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.fetcher.EXPECT().Ensure(gomock.Any(), cfg.Source).Return("", domain.ErrSourceMissing)

	err := f.app.BuildPackage(context.Background())
	require.ErrorIs(t, err, domain.ErrSourceMissing)
}

func TestApp_BuildPackage_PropagatesExitStatus(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.fetcher.EXPECT().Ensure(gomock.Any(), cfg.Source).Return(cfg.Source.Dir, nil)
	f.packer.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(&domain.ExitError{Code: 29, Err: domain.ErrPackageBuildFailed})

	err := f.app.BuildPackage(context.Background())
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Equal(t, 29, domain.ExitStatus(err))
}

func TestApp_BuildBase_Rebuild(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())
	base := cfg.Images[domain.ImageBase]

	builtAt := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	f.app.WithClock(func() time.Time { return builtAt })

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.hasher.EXPECT().HashTree(base.Context).Return("digest-1", nil)
	f.images.EXPECT().
		Build(gomock.Any(), base, domain.ImageBuildOptions{NoCache: true}).
		Return(nil)
	f.store.EXPECT().
		Put(cfg.StateDir(), domain.BuildInfo{
			Image:         domain.ImageBase,
			Tag:           base.Tag,
			ContextDigest: "digest-1",
			BuiltAt:       builtAt,
		}).
		Return(nil)

	require.NoError(t, f.app.BuildBase(context.Background(), true))
}

func TestApp_BuildBase_NoRebuild_SkipsWhenUpToDate(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())
	base := cfg.Images[domain.ImageBase]

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.hasher.EXPECT().HashTree(base.Context).Return("digest-1", nil)
	f.store.EXPECT().
		Get(cfg.StateDir(), domain.ImageBase).
		Return(&domain.BuildInfo{Image: domain.ImageBase, ContextDigest: "digest-1"}, nil)
	f.images.EXPECT().Exists(gomock.Any(), base.Tag).Return(true, nil)
	// No Build call expected.

	require.NoError(t, f.app.BuildBase(context.Background(), false))
}

func TestApp_BuildBase_NoRebuild_BuildsOnDigestChange(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())
	base := cfg.Images[domain.ImageBase]

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.hasher.EXPECT().HashTree(base.Context).Return("digest-2", nil)
	f.store.EXPECT().
		Get(cfg.StateDir(), domain.ImageBase).
		Return(&domain.BuildInfo{Image: domain.ImageBase, ContextDigest: "digest-1"}, nil)
	f.images.EXPECT().
		Build(gomock.Any(), base, domain.ImageBuildOptions{NoCache: false}).
		Return(nil)
	f.store.EXPECT().Put(cfg.StateDir(), gomock.Any()).Return(nil)

	require.NoError(t, f.app.BuildBase(context.Background(), false))
}

func TestApp_BuildBase_NoRebuild_BuildsWhenImageGone(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())
	base := cfg.Images[domain.ImageBase]

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.hasher.EXPECT().HashTree(base.Context).Return("digest-1", nil)
	f.store.EXPECT().
		Get(cfg.StateDir(), domain.ImageBase).
		Return(&domain.BuildInfo{Image: domain.ImageBase, ContextDigest: "digest-1"}, nil)
	f.images.EXPECT().Exists(gomock.Any(), base.Tag).Return(false, nil)
	f.images.EXPECT().
		Build(gomock.Any(), base, domain.ImageBuildOptions{NoCache: false}).
		Return(nil)
	f.store.EXPECT().Put(cfg.StateDir(), gomock.Any()).Return(nil)

	require.NoError(t, f.app.BuildBase(context.Background(), false))
}

func TestApp_BuildAlpine_BuildFailure(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.images.EXPECT().
		Build(gomock.Any(), cfg.Images[domain.ImageAlpine], domain.ImageBuildOptions{}).
		Return(errors.New("daemon unreachable"))

	err := f.app.BuildAlpine(context.Background())
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_BuildCentos(t *testing.T) {
	f := newFixture(t)
	cfg := testConfig(t.TempDir())

	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.images.EXPECT().
		Build(gomock.Any(), cfg.Images[domain.ImageCentos], domain.ImageBuildOptions{}).
		Return(nil)

	require.NoError(t, f.app.BuildCentos(context.Background()))
}

func TestApp_ConfigLoadFailure(t *testing.T) {
	f := newFixture(t)

	f.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigNotFound).Times(2)

	require.ErrorIs(t, f.app.Clean(context.Background()), domain.ErrConfigNotFound)
	require.ErrorIs(t, f.app.BuildBuilder(context.Background()), domain.ErrConfigNotFound)
}
