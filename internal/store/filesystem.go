package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"digilib-go/internal/library"
)

// FileSystemStore keeps each document as one JSON file under a root
// directory: <root>/<key>.json. Writes are atomic (temp file + rename), so
// a document is either its previous version or its new one, never a torn
// write. Concurrent processes sharing a root still race at the whole-
// document level: last write wins.
type FileSystemStore struct {
	root string
}

// NewFileSystemStore creates a store rooted at the given directory,
// creating it if needed.
func NewFileSystemStore(root string) (*FileSystemStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileSystemStore{root: root}, nil
}

func (s *FileSystemStore) docPath(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Get returns the document stored under key.
func (s *FileSystemStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.docPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %q: %w", key, library.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("reading document %q: %w", key, err)
	}
	return data, nil
}

// Put overwrites the document stored under key using an atomic write.
func (s *FileSystemStore) Put(key string, data []byte) error {
	destPath := s.docPath(key)

	// Create temp file in the same directory to ensure atomic rename works
	tmpFile, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, bytes.NewReader(data)); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Delete removes the document stored under key. Absent keys are a no-op.
func (s *FileSystemStore) Delete(key string) error {
	if err := os.Remove(s.docPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting document %q: %w", key, err)
	}
	return nil
}

// ValidateSetup verifies that the store root is an accessible directory.
func (s *FileSystemStore) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("store root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root is not a directory: %s", s.root)
	}
	return nil
}

// Close is a no-op: the store holds no open handles between operations.
func (s *FileSystemStore) Close() error { return nil }

// Compile-time check that FileSystemStore implements library.Store
var _ library.Store = (*FileSystemStore)(nil)
