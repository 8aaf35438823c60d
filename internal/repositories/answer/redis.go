package answer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/vera24m/ultimatum-game/internal/models"
)

const (
	// Key prefixes for Redis. The answer key embeds both IDs, which
	// makes the one-answer-per-question rule a plain overwrite.
	answerKeyPrefix     = "answer:"
	playerAnswersPrefix = "player_answers:"
)

// ErrAnswerNotFound is returned when an answer is not found
var ErrAnswerNotFound = errors.New("answer not found")

// Config holds configuration for the Redis answer repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed answer repository
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

func answerKey(playerID, questionID string) string {
	return fmt.Sprintf("%s%s:%s", answerKeyPrefix, playerID, questionID)
}

// SaveAnswer creates or overwrites a player's answer to a question
func (r *redisRepository) SaveAnswer(ctx context.Context, input *SaveAnswerInput) error {
	if input == nil || input.Answer == nil {
		return errors.New("input and answer cannot be nil")
	}

	if input.Answer.PlayerID == "" || input.Answer.QuestionID == "" || input.Answer.OptionID == "" {
		return errors.New("answer player, question and option IDs are required")
	}

	answerJSON, err := json.Marshal(input.Answer)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, answerKey(input.Answer.PlayerID, input.Answer.QuestionID), answerJSON, 0)
	pipe.SAdd(ctx, playerAnswersPrefix+input.Answer.PlayerID, input.Answer.QuestionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}

	return nil
}

// GetAnswer retrieves a player's answer to a question
func (r *redisRepository) GetAnswer(ctx context.Context, input *GetAnswerInput) (*models.Answer, error) {
	if input == nil || input.PlayerID == "" || input.QuestionID == "" {
		return nil, errors.New("input, player ID and question ID cannot be empty")
	}

	answerJSON, err := r.client.Get(ctx, answerKey(input.PlayerID, input.QuestionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrAnswerNotFound
		}
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	var answer models.Answer
	if err := json.Unmarshal([]byte(answerJSON), &answer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answer: %w", err)
	}

	return &answer, nil
}

// ListByPlayer retrieves all answers a player has given
func (r *redisRepository) ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error) {
	if input == nil || input.PlayerID == "" {
		return nil, errors.New("input and player ID cannot be empty")
	}

	questionIDs, err := r.client.SMembers(ctx, playerAnswersPrefix+input.PlayerID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list answered questions: %w", err)
	}

	answers := make([]*models.Answer, 0, len(questionIDs))
	for _, questionID := range questionIDs {
		answer, err := r.GetAnswer(ctx, &GetAnswerInput{
			PlayerID:   input.PlayerID,
			QuestionID: questionID,
		})
		if err != nil {
			if errors.Is(err, ErrAnswerNotFound) {
				continue
			}
			return nil, err
		}
		answers = append(answers, answer)
	}

	return &ListByPlayerOutput{Answers: answers}, nil
}
