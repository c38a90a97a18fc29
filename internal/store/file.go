package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 25 * time.Millisecond

// FileKV stores each key as <dir>/<key>.json.
// Writes go to a temp file that is renamed into place, under an exclusive lock on
// <dir>/.lock so two processes sharing the directory never interleave.
// mu serializes callers within this process, since the file lock is shared by them.
type FileKV struct {
	mu   sync.Mutex
	dir  string
	lock *flock.Flock
}

// OpenFileKV creates the directory if needed and returns a FileKV rooted there.
func OpenFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileKV{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".lock")),
	}, nil
}

// Dir returns the directory holding the files.
func (f *FileKV) Dir() string {
	return f.dir
}

// Get implements KV.
func (f *FileKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return nil, false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	locked, err := f.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, false, fmt.Errorf("lock store: %w", err)
	}
	if !locked {
		return nil, false, fmt.Errorf("lock store: not acquired")
	}
	defer f.lock.Unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements KV.
func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock store: not acquired")
	}
	defer f.lock.Unlock()

	tmp, err := os.CreateTemp(f.dir, "."+key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

// Close implements KV.
func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lock.Close()
}

// pathFor maps a key to its file, rejecting keys that would escape the directory.
func (f *FileKV) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}
