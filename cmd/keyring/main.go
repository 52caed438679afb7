package main

import (
	"log"
	"os"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/layer-3/keyring/adapters/events"
	"github.com/layer-3/keyring/adapters/flow"
	"github.com/layer-3/keyring/adapters/store"
	"github.com/layer-3/keyring/service"
	"github.com/layer-3/keyring/transport/http"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

func main() {
	// Get Redis URL from environment
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	// Parse Redis URL and create client
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)

	// Initialize Watermill Redis publisher
	logger := watermill.NewStdLogger(false, false)
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to create Redis publisher: %v", err)
	}

	// OAuth client configuration for the external service
	oauthConfig := &oauth2.Config{
		ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		Endpoint: oauth2.Endpoint{
			AuthURL:       os.Getenv("OAUTH_AUTH_URL"),
			TokenURL:      os.Getenv("OAUTH_TOKEN_URL"),
			DeviceAuthURL: os.Getenv("OAUTH_DEVICE_AUTH_URL"),
		},
		Scopes: splitScopes(os.Getenv("OAUTH_SCOPES")),
	}

	credentialStore := store.NewRedisStore(redisClient)
	eventPub := events.NewWatermillPublisher(publisher)
	loginFlow := flow.NewDeviceFlow(oauthConfig, logger)
	refreshFlow := flow.NewTokenRefresher(oauthConfig)

	// The manager kicks off credential hydration from the store
	manager := service.NewManager(credentialStore, loginFlow, refreshFlow, eventPub, logger)

	// Setup Gin router
	router := http.SetupRouter(manager)

	// Start server
	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":9100"
	}
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}
	var scopes []string
	for _, scope := range strings.Split(raw, ",") {
		if scope = strings.TrimSpace(scope); scope != "" {
			scopes = append(scopes, scope)
		}
	}
	return scopes
}
