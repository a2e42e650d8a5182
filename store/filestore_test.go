package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tanalabs/tanacoin-client/store"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	fs, err := store.NewFileStore(path)
	require.NoError(t, err)

	_, ok := fs.Get(store.TokenKey)
	require.False(t, ok)

	require.NoError(t, fs.Set(store.TokenKey, "abc"))
	require.NoError(t, fs.Set(store.WalletAddressKey, "0xdeadbeef"))

	value, ok := fs.Get(store.TokenKey)
	require.True(t, ok)
	require.Equal(t, "abc", value)

	require.NoError(t, fs.Remove(store.TokenKey))
	_, ok = fs.Get(store.TokenKey)
	require.False(t, ok)
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")

	fs, err := store.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set(store.TokenKey, "abc"))

	reopened, err := store.NewFileStore(path)
	require.NoError(t, err)
	value, ok := reopened.Get(store.TokenKey)
	require.True(t, ok)
	require.Equal(t, "abc", value)
}

func TestFileStoreRemoveMissingKeyIsNoError(t *testing.T) {
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)
	require.NoError(t, fs.Remove("never-set"))
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{{not json"), 0o600))

	fs, err := store.NewFileStore(path)
	require.NoError(t, err)
	_, ok := fs.Get(store.TokenKey)
	require.False(t, ok)
}

func TestFileStoreRequiresPath(t *testing.T) {
	_, err := store.NewFileStore("")
	require.Error(t, err)
}
