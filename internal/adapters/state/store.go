// Package state persists per-image build records between invocations.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/difrex/surok-build/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildInfoStore using a file-per-image strategy.
type Store struct{}

// NewStore creates a new BuildInfoStore.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the build info recorded for an image role. A missing
// record is not an error and returns (nil, nil).
func (s *Store) Get(root, image string) (*domain.BuildInfo, error) {
	filename := s.getFilename(root, image)
	//nolint:gosec // Path is constructed from the state dir and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &info, nil
}

// Put stores the build info.
func (s *Store) Put(root string, info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, info.Image)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from the state dir and a hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, image string) string {
	hash := sha256.Sum256([]byte(image))
	return filepath.Join(root, hex.EncodeToString(hash[:])+".json")
}
