package catalog

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
	opponentKeyPrefix     = "opponent:"
	kindOpponentsPrefix   = "kind_opponents:"
	questionKeyPrefix     = "question:"
	questionsKey          = "questions"
	optionKeyPrefix       = "option:"
	questionOptionsPrefix = "question_options:"
)

// ErrOpponentNotFound is returned when an opponent is not found
var ErrOpponentNotFound = errors.New("opponent not found")

// ErrOptionNotFound is returned when an option is not found
var ErrOptionNotFound = errors.New("option not found")

// Config holds configuration for the Redis catalog repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed catalog repository
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

// Seed populates kinds, opponents and the question catalog. IDs are
// derived from content, so seeding is idempotent.
func (r *redisRepository) Seed(ctx context.Context, input *SeedInput) error {
	if input == nil || input.OpponentsPerKind < 1 {
		return errors.New("input and opponents per kind are required")
	}

	pipe := r.client.Pipeline()

	for _, kind := range models.AllKinds() {
		for slot := 1; slot <= input.OpponentsPerKind; slot++ {
			opponent := &models.Opponent{
				ID:      fmt.Sprintf("%s_%d", kind.ID, slot),
				KindID:  kind.ID,
				Picture: fmt.Sprintf("%s_%d", kind.ID, slot),
			}

			opponentJSON, err := json.Marshal(opponent)
			if err != nil {
				return fmt.Errorf("failed to marshal opponent: %w", err)
			}

			pipe.Set(ctx, opponentKeyPrefix+opponent.ID, opponentJSON, 0)
			pipe.ZAdd(ctx, kindOpponentsPrefix+string(kind.ID), redis.Z{
				Score:  float64(slot),
				Member: opponent.ID,
			})
		}
	}

	for qi, sq := range seedQuestions() {
		question := &models.Question{
			ID:   fmt.Sprintf("q_%d", qi+1),
			Text: sq.text,
		}

		questionJSON, err := json.Marshal(question)
		if err != nil {
			return fmt.Errorf("failed to marshal question: %w", err)
		}

		pipe.Set(ctx, questionKeyPrefix+question.ID, questionJSON, 0)
		pipe.ZAdd(ctx, questionsKey, redis.Z{
			Score:  float64(qi + 1),
			Member: question.ID,
		})

		for oi, text := range sq.options {
			option := &models.Option{
				ID:         fmt.Sprintf("%s_o_%d", question.ID, oi+1),
				QuestionID: question.ID,
				Text:       text,
			}

			optionJSON, err := json.Marshal(option)
			if err != nil {
				return fmt.Errorf("failed to marshal option: %w", err)
			}

			pipe.Set(ctx, optionKeyPrefix+option.ID, optionJSON, 0)
			pipe.ZAdd(ctx, questionOptionsPrefix+question.ID, redis.Z{
				Score:  float64(oi + 1),
				Member: option.ID,
			})
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	return nil
}

// GetOpponent retrieves an opponent by ID from Redis
func (r *redisRepository) GetOpponent(ctx context.Context, input *GetOpponentInput) (*models.Opponent, error) {
	if input == nil || input.OpponentID == "" {
		return nil, errors.New("input and opponent ID cannot be empty")
	}

	opponentJSON, err := r.client.Get(ctx, opponentKeyPrefix+input.OpponentID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrOpponentNotFound
		}
		return nil, fmt.Errorf("failed to get opponent: %w", err)
	}

	var opponent models.Opponent
	if err := json.Unmarshal([]byte(opponentJSON), &opponent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal opponent: %w", err)
	}

	return &opponent, nil
}

// ListOpponentsByKind retrieves all opponents of a kind, in slot order
func (r *redisRepository) ListOpponentsByKind(ctx context.Context, input *ListOpponentsByKindInput) (*ListOpponentsByKindOutput, error) {
	if input == nil || input.KindID == "" {
		return nil, errors.New("input and kind ID cannot be empty")
	}

	opponentIDs, err := r.client.ZRange(ctx, kindOpponentsPrefix+string(input.KindID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list opponents: %w", err)
	}

	opponents := make([]*models.Opponent, 0, len(opponentIDs))
	for _, opponentID := range opponentIDs {
		opponent, err := r.GetOpponent(ctx, &GetOpponentInput{OpponentID: opponentID})
		if err != nil {
			if errors.Is(err, ErrOpponentNotFound) {
				continue
			}
			return nil, err
		}
		opponents = append(opponents, opponent)
	}

	return &ListOpponentsByKindOutput{Opponents: opponents}, nil
}

// ListQuestions retrieves the full question catalog, in order
func (r *redisRepository) ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error) {
	questionIDs, err := r.client.ZRange(ctx, questionsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]*models.Question, 0, len(questionIDs))
	for _, questionID := range questionIDs {
		questionJSON, err := r.client.Get(ctx, questionKeyPrefix+questionID).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get question %s: %w", questionID, err)
		}

		var question models.Question
		if err := json.Unmarshal([]byte(questionJSON), &question); err != nil {
			return nil, fmt.Errorf("failed to unmarshal question %s: %w", questionID, err)
		}

		questions = append(questions, &question)
	}

	return &ListQuestionsOutput{Questions: questions}, nil
}

// ListOptions retrieves the options of a question, in catalog order
func (r *redisRepository) ListOptions(ctx context.Context, input *ListOptionsInput) (*ListOptionsOutput, error) {
	if input == nil || input.QuestionID == "" {
		return nil, errors.New("input and question ID cannot be empty")
	}

	optionIDs, err := r.client.ZRange(ctx, questionOptionsPrefix+input.QuestionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}

	options := make([]*models.Option, 0, len(optionIDs))
	for _, optionID := range optionIDs {
		option, err := r.GetOption(ctx, &GetOptionInput{OptionID: optionID})
		if err != nil {
			if errors.Is(err, ErrOptionNotFound) {
				continue
			}
			return nil, err
		}
		options = append(options, option)
	}

	return &ListOptionsOutput{Options: options}, nil
}

// GetOption retrieves an option by ID from Redis
func (r *redisRepository) GetOption(ctx context.Context, input *GetOptionInput) (*models.Option, error) {
	if input == nil || input.OptionID == "" {
		return nil, errors.New("input and option ID cannot be empty")
	}

	optionJSON, err := r.client.Get(ctx, optionKeyPrefix+input.OptionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to get option: %w", err)
	}

	var option models.Option
	if err := json.Unmarshal([]byte(optionJSON), &option); err != nil {
		return nil, fmt.Errorf("failed to unmarshal option: %w", err)
	}

	return &option, nil
}
