package answer

import (
	"context"

	"github.com/vera24m/ultimatum-game/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/vera24m/ultimatum-game/internal/repositories/answer Repository

// Repository defines the interface for questionnaire answer persistence.
// There is at most one answer per (player, question) pair; saving again
// overwrites the earlier choice.
type Repository interface {
	// SaveAnswer creates or overwrites a player's answer to a question
	SaveAnswer(ctx context.Context, input *SaveAnswerInput) error

	// GetAnswer retrieves a player's answer to a question
	GetAnswer(ctx context.Context, input *GetAnswerInput) (*models.Answer, error)

	// ListByPlayer retrieves all answers a player has given
	ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error)
}
