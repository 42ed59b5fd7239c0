// Package domain holds the core types of the surok-build pipeline.
package domain

import "path/filepath"

// ConfigFileName is the name of the build configuration file.
const ConfigFileName = "surok-build.yaml"

// Image roles known to the pipeline. Each role maps to one entry in the
// config's images section.
const (
	ImageBuilder = "builder"
	ImageBase    = "base"
	ImageAlpine  = "alpine"
	ImageCentos  = "centos"
)

// DefaultPackageCommand is the Debian packaging command run when the
// config does not override it.
var DefaultPackageCommand = []string{"dpkg-buildpackage", "-us", "-uc", "-b"}

// DefaultContainerWorkdir is where the source tree is mounted inside the
// builder container.
const DefaultContainerWorkdir = "/build/surok"

// Source describes where the Surok source tree comes from.
type Source struct {
	// Dir is the local checkout of the source tree.
	Dir string
	// Repository is an optional git URL cloned into Dir when Dir is missing.
	Repository string
}

// ImageSpec describes one buildable container image.
type ImageSpec struct {
	// Name is the image role (builder, base, alpine, centos).
	Name string
	// Tag is the full image reference the build is tagged with.
	Tag string
	// Context is the directory sent to the daemon as build context.
	Context string
	// Dockerfile is the dockerfile path relative to Context.
	Dockerfile string
}

// Validate checks that the spec can be handed to an image builder.
func (s ImageSpec) Validate() error {
	if s.Tag == "" || s.Context == "" {
		return ErrInvalidImageSpec
	}
	return nil
}

// ImageBuildOptions controls a single image build.
type ImageBuildOptions struct {
	// NoCache disables the daemon layer cache.
	NoCache bool
	// Pull forces pulling newer versions of base images.
	Pull bool
}

// PackageSettings configures the Debian package build.
type PackageSettings struct {
	// Command is the packaging command, argv style.
	Command []string
	// Host runs the command directly on the host instead of inside the
	// builder container.
	Host bool
	// Workdir is the mount point of the source tree inside the container.
	Workdir string
	// Env holds extra KEY=VALUE pairs for the packaging command.
	Env []string
}

// PackageJob is a fully resolved packaging run.
type PackageJob struct {
	// Image is the builder image reference (empty in host mode).
	Image string
	// SourceDir is the source tree the command runs against.
	SourceDir string
	// OutputDir receives the built artifacts.
	OutputDir string
	// Command is the packaging command, argv style.
	Command []string
	// Workdir is the working directory of the command.
	Workdir string
	// Env holds extra KEY=VALUE pairs.
	Env []string
}

// Config is the loaded and defaulted build configuration.
type Config struct {
	// Root is the directory containing the config file. All relative
	// paths in the config resolve against it.
	Root string
	// Source locates the Surok source tree.
	Source Source
	// OutputDir receives built packages.
	OutputDir string
	// Images maps image roles to their specs.
	Images map[string]ImageSpec
	// Package configures the Debian package build.
	Package PackageSettings
}

// Image returns the spec for the given role.
func (c *Config) Image(name string) (ImageSpec, error) {
	spec, ok := c.Images[name]
	if !ok {
		return ImageSpec{}, ErrUnknownImage
	}
	return spec, nil
}

// StateDir is where build info is recorded, relative to the config root.
func (c *Config) StateDir() string {
	return filepath.Join(c.Root, ".surok-build", "state")
}
