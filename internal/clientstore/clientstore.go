// Package clientstore is the durable key/value storage that stands in for a
// browser's localStorage: a per-visitor SQLite table on the web, a directory
// of files in the terminal, and a map in tests.
package clientstore

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when the key has never been saved.
var ErrNotFound = errors.New("clientstore: key not found")

// Storage persists opaque values under string keys.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Delete(key string) error
}

// Memory is an in-process Storage.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
