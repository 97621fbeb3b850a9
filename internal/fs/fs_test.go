package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, Default.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "x")
	f, err := Default.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	moved := filepath.Join(dir, "y")
	require.NoError(t, Default.Rename(path, moved))

	f, err = Default.OpenFile(moved, os.O_RDONLY, 0)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "hello", string(data))

	require.NoError(t, Default.Remove(moved))
	_, err = Default.OpenFile(moved, os.O_RDONLY, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFaultyFSWriteLimit(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp", Fault{FailAfterBytes: 5})

	dir := t.TempDir()
	f, err := ffs.OpenFile(filepath.Join(dir, "a.tmp"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = f.Write([]byte("!"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Zero(t, n)

	g, err := ffs.OpenFile(filepath.Join(dir, "b"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer g.Close()
	_, err = g.Write([]byte("unaffected"))
	assert.NoError(t, err)
}

func TestFaultyFSSyncAndRename(t *testing.T) {
	boom := errors.New("boom")
	ffs := NewFaultyFS(nil)
	ffs.AddRule("x", Fault{FailAfterBytes: -1})
	ffs.AddRule("x.tmp", Fault{FailAfterBytes: -1, FailOnSync: true, FailOnRename: true, Err: boom})

	dir := t.TempDir()
	path := filepath.Join(dir, "x.tmp")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), boom)
	require.NoError(t, f.Close())

	assert.ErrorIs(t, ffs.Rename(path, filepath.Join(dir, "x")), boom)
	require.NoError(t, ffs.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	assert.NoError(t, ffs.Remove(path))
}
