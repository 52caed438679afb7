package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/layer-3/keyring/core"
	"github.com/layer-3/keyring/ports"
	"github.com/redis/go-redis/v9"
)

// RedisStore persists the credential as a JSON blob under a fixed key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis-backed credential store.
func NewRedisStore(client *redis.Client) ports.CredentialStore {
	return &RedisStore{
		client: client,
		key:    "keyring:credential",
	}
}

// Get retrieves the persisted credential. A missing key or a blob that no
// longer unmarshals both report absent rather than an error.
func (s *RedisStore) Get(ctx context.Context) (*core.Credential, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	var credential core.Credential
	if err := json.Unmarshal(payload, &credential); err != nil {
		return nil, nil
	}

	return &credential, nil
}

// Save persists the credential, replacing any previous one.
func (s *RedisStore) Save(ctx context.Context, credential core.Credential) error {
	payload, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// Clear removes the persisted credential.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	return nil
}
