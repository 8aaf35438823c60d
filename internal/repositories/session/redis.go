package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vera24m/ultimatum-game/internal/models"
)

const (
	// Key prefix for Redis
	scratchKeyPrefix = "scratch:"

	// DefaultTTL is how long an idle browser session keeps its scratch
	DefaultTTL = 24 * time.Hour
)

// ErrScratchNotFound is returned when a session has no scratch state
var ErrScratchNotFound = errors.New("scratch state not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// TTL for scratch entries. Defaults to DefaultTTL.
	TTL time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.RedisClient,
		ttl:    ttl,
	}, nil
}

// GetScratch retrieves the scratch state for a browser session
func (r *redisRepository) GetScratch(ctx context.Context, input *GetScratchInput) (*models.Scratch, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratchJSON, err := r.client.Get(ctx, scratchKeyPrefix+input.SessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrScratchNotFound
		}
		return nil, fmt.Errorf("failed to get scratch state: %w", err)
	}

	var scratch models.Scratch
	if err := json.Unmarshal([]byte(scratchJSON), &scratch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scratch state: %w", err)
	}

	return &scratch, nil
}

// SaveScratch persists the scratch state and refreshes its TTL
func (r *redisRepository) SaveScratch(ctx context.Context, input *SaveScratchInput) error {
	if input == nil || input.SessionID == "" || input.Scratch == nil {
		return errors.New("input, session ID and scratch cannot be empty")
	}

	scratchJSON, err := json.Marshal(input.Scratch)
	if err != nil {
		return fmt.Errorf("failed to marshal scratch state: %w", err)
	}

	if err := r.client.Set(ctx, scratchKeyPrefix+input.SessionID, scratchJSON, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save scratch state: %w", err)
	}

	return nil
}

// DeleteScratch removes the scratch state for a browser session
func (r *redisRepository) DeleteScratch(ctx context.Context, input *DeleteScratchInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if err := r.client.Del(ctx, scratchKeyPrefix+input.SessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete scratch state: %w", err)
	}

	return nil
}
