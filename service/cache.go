package service

import (
	"sync"
	"time"

	"github.com/layer-3/keyring/core"
)

// CredentialTTL is how long a cached authorized credential is served
// without re-consulting the store.
const CredentialTTL = time.Hour

// credentialCache holds the last committed credential and its freshness
// deadline. Single entry, in-memory only, safe for concurrent use.
type credentialCache struct {
	mu         sync.RWMutex
	credential *core.Credential
	validUntil time.Time

	now func() time.Time
}

func newCredentialCache() *credentialCache {
	return &credentialCache{now: time.Now}
}

// read returns the cached credential if it is present and still fresh,
// nil on a miss. A stale entry is never returned.
func (c *credentialCache) read() *core.Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.credential == nil || !c.now().Before(c.validUntil) {
		return nil
	}
	cred := *c.credential
	return &cred
}

// write caches an authorized credential for CredentialTTL. An unauthorized
// credential clears the entry: it must never be readable back as fresh.
func (c *credentialCache) write(credential core.Credential) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !credential.Authorized() {
		c.credential = nil
		c.validUntil = time.Time{}
		return
	}
	c.credential = &credential
	c.validUntil = c.now().Add(CredentialTTL)
}
