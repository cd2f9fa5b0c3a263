package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/documinds/documinds/api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis channels
const (
	ChannelWebSocket = "websocket"
)

// AuthStateTTL bounds how long an issued OAuth state nonce stays redeemable
const AuthStateTTL = 10 * time.Minute

const authStatePrefix = "oauth:state:"

var (
	client *redis.Client
	once   sync.Once
)

// Initialize sets up the Redis client and tests the connection
func Initialize(cfg *config.Config) error {
	var initErr error
	once.Do(func() {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       0,
		})

		// Test connection
		ctx := context.Background()
		if err := client.Ping(ctx).Err(); err != nil {
			initErr = fmt.Errorf("failed to connect to Redis: %w", err)
		}
	})
	return initErr
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

func authStateKey(integrationID, userID string) string {
	return authStatePrefix + integrationID + ":" + userID
}

// SaveAuthState stores a server-issued OAuth state nonce for one
// (integration, user) pair with a TTL. A later authorize call for the same
// pair overwrites the previous nonce.
func SaveAuthState(ctx context.Context, integrationID, userID, state string) error {
	if err := client.Set(ctx, authStateKey(integrationID, userID), state, AuthStateTTL).Err(); err != nil {
		return fmt.Errorf("failed to persist oauth state: %w", err)
	}
	return nil
}

// ConsumeAuthState checks the supplied state against the stored nonce and
// deletes it on match, so a state value can be redeemed at most once.
func ConsumeAuthState(ctx context.Context, integrationID, userID, state string) (bool, error) {
	key := authStateKey(integrationID, userID)
	stored, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load oauth state: %w", err)
	}
	if stored != state {
		return false, nil
	}
	if err := client.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to consume oauth state: %w", err)
	}
	return true, nil
}

// PublishWebSocketMessage publishes a message to the WebSocket channel
func PublishWebSocketMessage(ctx context.Context, roomID string, data interface{}) error {
	message, err := json.Marshal(map[string]interface{}{
		"roomId": roomID,
		"data":   data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal websocket message: %w", err)
	}

	return client.Publish(ctx, ChannelWebSocket, message).Err()
}

// PublishSyncEvent broadcasts an integration sync event to the organization's
// dashboard room. Failures are non-fatal for the sync itself.
func PublishSyncEvent(ctx context.Context, organizationID, event string, payload interface{}) error {
	return PublishWebSocketMessage(ctx, "org:"+organizationID, map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
}
