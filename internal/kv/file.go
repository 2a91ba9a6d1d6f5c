package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FileStore persists each key as one JSON file under a data directory.
// Writes are atomic: the value is written to a temp file in the same
// directory and renamed over the target, so readers never observe a partial
// payload even after a crash mid-write.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kv.NewFileStore: %w: %v", ErrUnavailable, err)
	}
	return &FileStore{dir: dir}, nil
}

// Get reads and decodes the JSON file for key into dest.
func (s *FileStore) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("kv.FileStore.Get %q: %w", key, translate(err))
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("kv.FileStore.Get %q: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}

// Set writes value as JSON under key, atomically.
func (s *FileStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv.FileStore.Set %q: marshal: %w", key, err)
	}

	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".kv-*")
	if err != nil {
		return fmt.Errorf("kv.FileStore.Set %q: %w", key, translate(err))
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(raw)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmpName, target)
	}
	if werr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kv.FileStore.Set %q: %w", key, translate(werr))
	}
	return nil
}

// Delete removes the file for key. Absent keys are not an error.
func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kv.FileStore.Delete %q: %w", key, translate(err))
	}
	return nil
}

// Probe writes and deletes a sentinel key to verify the directory is usable.
func (s *FileStore) Probe(ctx context.Context) error {
	if err := s.Set(ctx, probeKey, "ok"); err != nil {
		return fmt.Errorf("kv.FileStore.Probe: %w", err)
	}
	if err := s.Delete(ctx, probeKey); err != nil {
		return fmt.Errorf("kv.FileStore.Probe: %w", err)
	}
	return nil
}

// path maps a logical key to a file name. Colons in keys (the namespace
// separator) are not portable as file name characters, so they become
// underscores.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "_")+".json")
}

// translate maps OS-level write failures onto the store error taxonomy so
// callers can show the right message: out of space vs. store unusable.
func translate(err error) error {
	switch {
	case errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT):
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	case os.IsPermission(err) || os.IsNotExist(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

// compile-time check: FileStore must satisfy Store.
var _ Store = (*FileStore)(nil)
