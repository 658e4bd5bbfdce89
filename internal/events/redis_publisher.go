package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisConfig holds the settings of the Redis pub/sub publisher
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Channel  string
}

// RedisPublisher publishes events as JSON on a Redis pub/sub channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisPublisher connects to Redis and returns a publisher for config.Channel
func NewRedisPublisher(config RedisConfig) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisPublisherWithClient(client, config.Channel), nil
}

// NewRedisPublisherWithClient wraps an existing client
func NewRedisPublisherWithClient(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish implements Publisher
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("JSON marshal error: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("Redis publish error: %w", err)
	}
	return nil
}

// HealthCheck checks Redis connection health
func (p *RedisPublisher) HealthCheck(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
