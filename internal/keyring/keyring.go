// Package keyring provides an in-process stand-in for the OS keyring
// that stores key-module blobs under their signatures.
package keyring

import (
	"sync"

	"pemkey/internal/domain"
)

// Memory keeps inserted keys for the lifetime of the process.
type Memory struct {
	mu   sync.Mutex
	keys map[domain.Signature][]byte
	adds int
}

func NewMemory() *Memory {
	return &Memory{keys: make(map[domain.Signature][]byte)}
}

// AddKey records blob under sig. Re-inserting an existing signature is
// allowed and replaces the blob, matching keyring update semantics.
func (m *Memory) AddKey(sig domain.Signature, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[sig] = append([]byte(nil), b...)
	m.adds++
	return nil
}

// Key returns the blob stored under sig.
func (m *Memory) Key(sig domain.Signature) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.keys[sig]
	return b, ok
}

// Adds reports how many insertions have happened.
func (m *Memory) Adds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adds
}

var _ domain.Keyring = (*Memory)(nil)
