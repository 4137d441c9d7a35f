package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BlobStore stores invoice attachment contents under opaque keys.
type BlobStore interface {
	Save(key string, r io.Reader) (int64, error)
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// DiskStore keeps blobs as files under a base directory.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates the base directory if needed and returns a store backed by it.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

func (s *DiskStore) path(key string) string {
	// Keys are generated server side, but clean anyway so a stray
	// separator can never escape the base directory.
	return filepath.Join(s.baseDir, filepath.Base(key))
}

// Save writes the reader's contents under key and returns the byte count.
func (s *DiskStore) Save(key string, r io.Reader) (int64, error) {
	f, err := os.Create(s.path(key))
	if err != nil {
		return 0, fmt.Errorf("failed to create blob: %w", err)
	}
	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(s.path(key))
		return 0, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close blob: %w", err)
	}
	return n, nil
}

// Open returns a reader for the blob stored under key.
func (s *DiskStore) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes the blob stored under key. Missing blobs are not an error.
func (s *DiskStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
