package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/layer-3/keyring/core"
	"github.com/layer-3/keyring/ports"
)

// StatusTopic is the topic for authentication status change events.
const StatusTopic = "keyring.auth.status"

// StatusChangedEvent is the wire representation of a committed status.
type StatusChangedEvent struct {
	Status core.Status `json:"status"`
	At     time.Time   `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     StatusTopic,
	}
}

// PublishStatusChange publishes a status change event.
func (p *WatermillPublisher) PublishStatusChange(ctx context.Context, status core.Status) error {
	event := StatusChangedEvent{
		Status: status,
		At:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
