// Package store loads configuration and template text and persists
// generated artifacts.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/smolos/drvgen/internal/configpaths"
)

// Store is the load/persist capability used by the generator.
type Store interface {
	Load(path string) (string, error)
	// Persist writes content to path and reports whether the stored bytes
	// changed.
	Persist(path, content string) (bool, error)
}

// Digest is the blake2b-256 sum used to detect unchanged artifacts.
func Digest(data []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(data)
}

// OS is a Store backed by the filesystem. Parent directories are created on
// persist; files whose digest matches the new content are left untouched so
// their modification time is preserved.
type OS struct {
	Perm fs.FileMode
}

// NewOS returns a filesystem store writing files with mode 0644.
func NewOS() *OS {
	return &OS{Perm: 0o644}
}

func (s *OS) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return string(data), nil
}

func (s *OS) Persist(path, content string) (bool, error) {
	data := []byte(content)
	if old, err := os.ReadFile(path); err == nil {
		if Digest(old) == Digest(data) {
			return false, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("persist %s: %w", path, err)
	}

	if err := configpaths.EnsureDir(path); err != nil {
		return false, fmt.Errorf("persist %s: %w", path, err)
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return false, fmt.Errorf("persist %s: %w", path, err)
	}
	return true, nil
}

// Memory is an in-memory Store, safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

func (m *Memory) Load(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return "", fmt.Errorf("load %s: %w", path, fs.ErrNotExist)
	}
	return string(data), nil
}

func (m *Memory) Persist(path, content string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := filepath.Clean(path)
	if old, ok := m.files[key]; ok && bytes.Equal(old, []byte(content)) {
		return false, nil
	}
	m.files[key] = []byte(content)
	return true, nil
}

// Paths lists the stored paths in sorted order.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
