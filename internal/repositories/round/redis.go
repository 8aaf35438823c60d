package round

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vera24m/ultimatum-game/internal/models"
)

const (
	// Key prefixes for Redis
	roundKeyPrefix     = "round:"
	playerRoundsPrefix = "player_rounds:"
)

// ErrRoundNotFound is returned when a round is not found
var ErrRoundNotFound = errors.New("round not found")

// Config holds configuration for the Redis round repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed round repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveRound persists a round record and indexes it by player in
// creation order
func (r *redisRepository) SaveRound(ctx context.Context, input *SaveRoundInput) error {
	if input == nil || input.Round == nil {
		return errors.New("input and round cannot be nil")
	}

	roundJSON, err := json.Marshal(input.Round)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, roundKeyPrefix+input.Round.ID, roundJSON, 0)
	pipe.ZAdd(ctx, playerRoundsPrefix+input.Round.PlayerID, redis.Z{
		Score:  float64(input.Round.CreatedAt.UnixNano()),
		Member: input.Round.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

// ListByPlayer retrieves a player's rounds in creation order
func (r *redisRepository) ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	roundIDs, err := r.client.ZRange(ctx, playerRoundsPrefix+input.PlayerID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]*models.Round, 0, len(roundIDs))
	for _, roundID := range roundIDs {
		roundJSON, err := r.client.Get(ctx, roundKeyPrefix+roundID).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get round %s: %w", roundID, err)
		}

		var round models.Round
		if err := json.Unmarshal([]byte(roundJSON), &round); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round %s: %w", roundID, err)
		}

		rounds = append(rounds, &round)
	}

	return &ListByPlayerOutput{Rounds: rounds}, nil
}

// CountByPlayer counts a player's rounds
func (r *redisRepository) CountByPlayer(ctx context.Context, input *CountByPlayerInput) (*CountByPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	count, err := r.client.ZCard(ctx, playerRoundsPrefix+input.PlayerID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count rounds: %w", err)
	}

	return &CountByPlayerOutput{Count: int(count)}, nil
}
