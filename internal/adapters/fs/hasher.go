// Package fs provides filesystem hashing for image build contexts.
package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/difrex/surok-build/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of directory trees.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashTree returns a stable digest of every regular file under root.
// Paths relative to root and file contents both contribute, so renames
// and edits alike change the digest.
func (h *Hasher) HashTree(root string) (string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrContextHashFailed.Error()), "root", root)
	}

	// WalkDir yields lexical order already; sort anyway so the digest
	// never depends on walk internals.
	sort.Strings(files)

	hasher := xxhash.New()
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrContextHashFailed.Error()), "path", path)
		}

		_, _ = hasher.WriteString(rel)
		_, _ = hasher.Write([]byte{0})

		fileHash, err := h.hashFile(path)
		if err != nil {
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, fileHash); err != nil {
			return "", zerr.Wrap(err, domain.ErrContextHashFailed.Error())
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashFile(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from walking a configured context dir
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}
