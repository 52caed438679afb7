package ports

import (
	"context"

	"github.com/layer-3/keyring/core"
)

// LoginFlow obtains a fresh credential through an interactive or headless
// authentication flow. A nil credential or an error both mean the flow
// yielded nothing usable.
type LoginFlow interface {
	Login(ctx context.Context) (*core.Credential, error)
}

// RefreshFlow exchanges the current credential's refresh token for a
// renewed credential.
type RefreshFlow interface {
	Refresh(ctx context.Context, current core.Credential) (*core.Credential, error)
}
