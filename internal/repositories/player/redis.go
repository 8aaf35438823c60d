package player

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
	playerKeyPrefix    = "player:"
	kindPlayersPrefix  = "kind_players:"
	finishedPlayersKey = "finished_players"
)

// ErrPlayerNotFound is returned when a player is not found
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

// SavePlayer persists a player to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	playerJSON, err := json.Marshal(input.Player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, playerKeyPrefix+input.Player.ID, playerJSON, 0)
	pipe.SAdd(ctx, kindPlayersPrefix+string(input.Player.KindID), input.Player.ID)

	if input.Player.Finished {
		pipe.SAdd(ctx, finishedPlayersKey, input.Player.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by ID from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	playerJSON, err := r.client.Get(ctx, playerKeyPrefix+input.PlayerID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var player models.Player
	if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &player, nil
}

// CountByKind counts all players ever created, per kind. Counts are
// read without a lock; slightly stale values are acceptable for the
// category balancing they feed.
func (r *redisRepository) CountByKind(ctx context.Context, input *CountByKindInput) (*CountByKindOutput, error) {
	pipe := r.client.Pipeline()

	countCommands := make(map[models.KindID]*redis.IntCmd)
	for _, kind := range models.AllKinds() {
		countCommands[kind.ID] = pipe.SCard(ctx, kindPlayersPrefix+string(kind.ID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to count players by kind: %w", err)
	}

	counts := make(map[models.KindID]int64, len(countCommands))
	for kindID, cmd := range countCommands {
		counts[kindID] = cmd.Val()
	}

	return &CountByKindOutput{Counts: counts}, nil
}

// ListFinished retrieves all players who reached the completion screen
func (r *redisRepository) ListFinished(ctx context.Context, input *ListFinishedInput) (*ListFinishedOutput, error) {
	playerIDs, err := r.client.SMembers(ctx, finishedPlayersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get finished player IDs: %w", err)
	}

	players := make([]*models.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		player, err := r.GetPlayer(ctx, &GetPlayerInput{PlayerID: playerID})
		if err != nil {
			if errors.Is(err, ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		players = append(players, player)
	}

	return &ListFinishedOutput{Players: players}, nil
}
