package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/difrex/surok-build/internal/adapters/state"
	"github.com/difrex/surok-build/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	store := state.NewStore()

	builtAt := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	info := domain.BuildInfo{
		Image:         domain.ImageBase,
		Tag:           "surok/base",
		ContextDigest: "00000000deadbeef",
		BuiltAt:       builtAt,
	}

	require.NoError(t, store.Put(tmpDir, info))

	got, err := store.Get(tmpDir, domain.ImageBase)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info, *got)
}

func TestStore_Get_Missing(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	got, err := store.Get(t.TempDir(), domain.ImageAlpine)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Get_Corrupt(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	store := state.NewStore()

	require.NoError(t, store.Put(tmpDir, domain.BuildInfo{Image: domain.ImageBase}))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, entries[0].Name()), []byte("{"), 0o640))

	_, err = store.Get(tmpDir, domain.ImageBase)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStoreUnmarshalFailed.Error())
}

func TestStore_Put_CreatesStateDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), ".surok-build", "state")
	store := state.NewStore()

	require.NoError(t, store.Put(root, domain.BuildInfo{Image: domain.ImageCentos}))

	got, err := store.Get(root, domain.ImageCentos)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ImageCentos, got.Image)
}
