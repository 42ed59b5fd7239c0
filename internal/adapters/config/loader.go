// Package config provides the configuration loader for surok-build.
package config

import (
	"os"
	"path/filepath"

	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// defaultImages is the image set assumed when the config omits a role.
// Tags and contexts follow the layout of the Surok repository.
var defaultImages = map[string]domain.ImageSpec{
	domain.ImageBuilder: {Name: domain.ImageBuilder, Tag: "surok/builder", Context: "dockerfiles/builder"},
	domain.ImageBase:    {Name: domain.ImageBase, Tag: "surok/base", Context: "dockerfiles/base"},
	domain.ImageAlpine:  {Name: domain.ImageAlpine, Tag: "surok/alpine", Context: "dockerfiles/alpine"},
	domain.ImageCentos:  {Name: domain.ImageCentos, Tag: "surok/centos", Context: "dockerfiles/centos"},
}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads surok-build.yaml, searching upward from cwd, and returns the
// configuration with defaults applied and paths resolved against the
// config file's directory.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Path was located by walking up from the working directory
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file buildfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return l.build(filepath.Dir(configPath), file)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd

	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) build(root string, file buildfile) (*domain.Config, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	cfg := &domain.Config{
		Root: absRoot,
		Source: domain.Source{
			Dir:        resolvePath(absRoot, file.Source.Dir, absRoot),
			Repository: file.Source.Repository,
		},
		OutputDir: resolvePath(absRoot, file.Output, filepath.Join(absRoot, "dist")),
		Images:    make(map[string]domain.ImageSpec, len(defaultImages)),
		Package: domain.PackageSettings{
			Command: file.Package.Command,
			Host:    file.Package.Host,
			Workdir: file.Package.Workdir,
			Env:     file.Package.Env,
		},
	}

	if len(cfg.Package.Command) == 0 {
		cfg.Package.Command = domain.DefaultPackageCommand
	}
	if cfg.Package.Workdir == "" {
		cfg.Package.Workdir = domain.DefaultContainerWorkdir
	}

	for name, def := range defaultImages {
		spec := def
		if dto, ok := file.Images[name]; ok {
			if dto.Tag != "" {
				spec.Tag = dto.Tag
			}
			if dto.Context != "" {
				spec.Context = dto.Context
			}
			spec.Dockerfile = dto.Dockerfile
		}
		spec.Context = resolvePath(absRoot, spec.Context, "")
		if spec.Dockerfile == "" {
			spec.Dockerfile = "Dockerfile"
		}
		if err := spec.Validate(); err != nil {
			return nil, zerr.With(err, "image", name)
		}
		cfg.Images[name] = spec
	}

	for name := range file.Images {
		if _, ok := defaultImages[name]; !ok {
			l.Logger.Warn("ignoring unknown image role " + name)
		}
	}

	return cfg, nil
}

// resolvePath makes p absolute against root, falling back to def when empty.
func resolvePath(root, p, def string) string {
	if p == "" {
		return def
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
