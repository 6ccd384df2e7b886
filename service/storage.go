package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// ObjectStore holds the raw document files behind the stub server. The
// production-shaped implementation is MinIO; tests use the in-memory one.
type ObjectStore interface {
	// Put stores the object and returns the path recorded in the document
	// slot.
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	// Exists reports whether the object is stored.
	Exists(ctx context.Context, objectName string) (bool, error)
	// Delete removes the object.
	Delete(ctx context.Context, objectName string) error
}

// MemoryStore is an in-memory ObjectStore.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, objectName string, reader io.Reader, size int64, _ string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}
	if size >= 0 && int64(buf.Len()) != size {
		return "", fmt.Errorf("object size mismatch: expected %d, got %d", size, buf.Len())
	}

	s.mu.Lock()
	s.objects[objectName] = buf.Bytes()
	s.mu.Unlock()
	return objectName, nil
}

func (s *MemoryStore) Exists(_ context.Context, objectName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[objectName]
	return ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}
