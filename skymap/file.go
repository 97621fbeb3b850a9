package skymap

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/hupe1980/hpxgo/blobstore"
	"github.com/hupe1980/hpxgo/internal/fs"
)

// Load reads a skymap file. A missing file yields an error satisfying
// errors.Is(err, fs.ErrNotExist).
func Load(path string) (Skymap, error) {
	return load(fs.Default, path)
}

// Save writes s to path. The file is replaced atomically: readers see
// either the previous content or the complete new map.
func Save(s Skymap, path string, opts ...Option) error {
	return save(fs.Default, s, path, opts...)
}

func load(fsys fs.FileSystem, path string) (Skymap, error) {
	f, err := fsys.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(bufio.NewReader(f))
}

func save(fsys fs.FileSystem, s Skymap, path string, opts ...Option) (err error) {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp")
	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = fsys.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Encode(bw, s, opts...); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err = fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// LoadBlob reads a skymap from a blob store. A missing blob yields an error
// satisfying errors.Is(err, blobstore.ErrNotFound).
func LoadBlob(ctx context.Context, store blobstore.BlobStore, name string) (Skymap, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			return Decode(bytes.NewReader(data))
		}
	}

	rc, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return Decode(bufio.NewReader(rc))
}

// SaveBlob writes s to a blob store with a single Put, so the blob appears
// complete or not at all.
func SaveBlob(ctx context.Context, store blobstore.BlobStore, name string, s Skymap, opts ...Option) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s, opts...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}
