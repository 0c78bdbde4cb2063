// Package files stores each key as a JSON document in a directory. Writes go
// to a temporary file which is synced and renamed over the old value, so a
// crash mid-write leaves the previous value readable.
package files

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
	"github.com/agentstation/marquee/pkg/store"
)

const ext = ".json"

// Store is a directory of value files on an afero filesystem.
type Store struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

// New creates a store rooted at dir on fs, creating the directory if needed.
func New(fs afero.Fs, dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.NewValidationError("dir", dir, "cannot be empty")
	}
	if exists, _ := afero.DirExists(fs, dir); !exists {
		if err := fs.MkdirAll(dir, constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", dir, err)
		}
	}
	return &Store{fs: fs, dir: dir}, nil
}

// Open creates a store on the OS filesystem.
func Open(dir string) (*Store, error) {
	return New(afero.NewOsFs(), dir)
}

// Dir returns the directory holding the value files.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+ext)
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.path(key))
	if os.IsNotExist(err) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapIO("read", s.path(key), err)
	}
	return data, nil
}

// Put implements store.Store.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.SecureFilePermissions)
	if err != nil {
		return errors.WrapIO("open", tmp, err)
	}
	if _, err := f.Write(value); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return errors.WrapIO("write", tmp, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return errors.WrapIO("sync", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.WrapIO("close", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// Delete implements store.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.WrapIO("delete", s.path(key), err)
	}
	return nil
}

// Close implements store.Store. There is nothing to release.
func (s *Store) Close() error {
	return nil
}

var _ store.Store = (*Store)(nil)
