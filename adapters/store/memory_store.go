package store

import (
	"context"
	"sync"

	"github.com/layer-3/keyring/core"
	"github.com/layer-3/keyring/ports"
)

// MemoryStore is an in-memory implementation of the credential store,
// used in tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	credential *core.Credential
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ ports.CredentialStore = (*MemoryStore)(nil)

// Get returns the stored credential, or nil if nothing is saved.
func (s *MemoryStore) Get(ctx context.Context) (*core.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.credential == nil {
		return nil, nil
	}
	credential := *s.credential
	return &credential, nil
}

// Save stores the credential, replacing any previous one.
func (s *MemoryStore) Save(ctx context.Context, credential core.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = &credential
	return nil
}

// Clear removes the stored credential.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = nil
	return nil
}
