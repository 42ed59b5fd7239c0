// Package source makes the Surok source tree available locally.
package source

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	git "github.com/go-git/go-git/v5"
	"go.trai.ch/zerr"
)

var _ ports.SourceFetcher = (*Fetcher)(nil)

// Fetcher implements ports.SourceFetcher using go-git.
type Fetcher struct {
	logger ports.Logger
}

// NewFetcher creates a new Fetcher.
func NewFetcher(logger ports.Logger) *Fetcher {
	return &Fetcher{logger: logger}
}

// Ensure returns the directory holding the source tree. When the dir is
// missing and a repository is configured, it is shallow-cloned first.
func (f *Fetcher) Ensure(ctx context.Context, src domain.Source) (string, error) {
	if _, err := os.Stat(src.Dir); err == nil {
		return src.Dir, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSourceFetchFailed.Error()), "dir", src.Dir)
	}

	if src.Repository == "" {
		return "", zerr.With(domain.ErrSourceMissing, "dir", src.Dir)
	}

	f.logger.Info("cloning " + src.Repository)
	_, err := git.PlainCloneContext(ctx, src.Dir, false, &git.CloneOptions{
		URL:   src.Repository,
		Depth: 1,
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrSourceFetchFailed.Error()), "repository", src.Repository)
	}

	return src.Dir, nil
}
