package ports

import (
	"context"

	"github.com/layer-3/keyring/core"
)

// EventPublisher announces committed authentication status to other
// components or instances.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, status core.Status) error
}
