package domain

import (
	"io/fs"
	"time"
)

// Filesystem permissions used by the state store.
const (
	DirPerm  fs.FileMode = 0o750
	FilePerm fs.FileMode = 0o640
)

// BuildInfo records the outcome of an image build so that subsequent
// no-rebuild invocations can skip work when nothing changed.
type BuildInfo struct {
	// Image is the image role the record belongs to.
	Image string `json:"image"`
	// Tag is the reference the build was tagged with.
	Tag string `json:"tag"`
	// ContextDigest is the xxhash digest of the build context at build time.
	ContextDigest string `json:"context_digest"`
	// BuiltAt is when the build finished.
	BuiltAt time.Time `json:"built_at"`
}
