package ports

import (
	"context"

	"github.com/layer-3/keyring/core"
)

// CredentialStore persists the credential for the integration. Last write
// wins, no transactionality is expected.
type CredentialStore interface {
	// Get returns the stored credential, or nil if nothing is saved.
	// Implementations treat deserialization failures as absent.
	Get(ctx context.Context) (*core.Credential, error)

	// Save persists the credential, replacing any previous one.
	Save(ctx context.Context, credential core.Credential) error

	// Clear removes the persisted credential.
	Clear(ctx context.Context) error
}
