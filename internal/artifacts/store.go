// Package artifacts persists rendered report payloads under opaque locator
// keys. Reports reference artifacts by locator only, so the backing store can
// change without touching the pipeline.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/finratios/fin_report_app/internal/apperrors"
)

// Store writes and reads rendered artifacts.
type Store interface {
	// Put stores the payload and returns its locator.
	Put(ctx context.Context, key string, payload []byte) (string, error)
	// Get returns the payload for a locator, or apperrors.ErrNotFound.
	Get(ctx context.Context, locator string) ([]byte, error)
}

// FileStore keeps artifacts as files under a base directory. Locators are
// paths relative to that directory.
type FileStore struct {
	baseDir string
}

// NewFileStore creates the base directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir %s: %w", baseDir, err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) Put(ctx context.Context, key string, payload []byte) (string, error) {
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: invalid artifact key %q", apperrors.ErrValidation, key)
	}
	path := filepath.Join(s.baseDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact subdir: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", key, err)
	}
	return key, nil
}

func (s *FileStore) Get(ctx context.Context, locator string) ([]byte, error) {
	if strings.Contains(locator, "..") || strings.HasPrefix(locator, "/") {
		return nil, fmt.Errorf("%w: invalid artifact locator %q", apperrors.ErrValidation, locator)
	}
	payload, err := os.ReadFile(filepath.Join(s.baseDir, locator))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", locator, err)
	}
	return payload, nil
}

// MemoryStore keeps artifacts in process memory; used in tests and DB-less
// runs.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{payloads: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, payload []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.payloads[key] = cp
	return key, nil
}

func (s *MemoryStore) Get(ctx context.Context, locator string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.payloads[locator]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return payload, nil
}
