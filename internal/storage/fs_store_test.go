package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutExists(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store, err := NewFSStore(fsys, "images/releases")
	require.NoError(t, err)

	ok, err := store.Exists("abc.png")
	require.NoError(t, err)
	assert.False(t, ok)

	written, err := store.Put("abc.png", []byte("first"))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = store.Put("abc.png", []byte("second"))
	require.NoError(t, err)
	assert.False(t, written, "existing objects are never overwritten")

	data, err := afero.ReadFile(fsys, "images/releases/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	ok, err = store.Exists("abc.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFSStore_RejectsPathNames(t *testing.T) {
	store, err := NewFSStore(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../escape.png", "sub/dir.png"} {
		_, err := store.Put(name, []byte("x"))
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestFSStore_ListSkipsTempFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store, err := NewFSStore(fsys, "cache")
	require.NoError(t, err)

	_, err = store.Put("b.png", []byte("b"))
	require.NoError(t, err)
	_, err = store.Put("a.jpg", []byte("a"))
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, "cache/.a.jpg.tmp-1", []byte("partial"), 0o644))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.png"}, names)
}

func TestFSStore_OnDisk(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFSStore(afero.NewOsFs(), dir)
	require.NoError(t, err)

	_, err = store.Put("k.gif", []byte("GIF89a"))
	require.NoError(t, err)

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"k.gif"}, names)
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, WriteFileAtomic(fsys, "out/page.mdx", []byte("one"), 0o644))
	require.NoError(t, WriteFileAtomic(fsys, "out/page.mdx", []byte("two"), 0o644))

	data, err := afero.ReadFile(fsys, "out/page.mdx")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := afero.ReadDir(fsys, "out")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
