package catalog

import (
	"context"

	"github.com/vera24m/ultimatum-game/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/vera24m/ultimatum-game/internal/repositories/catalog Repository

// Repository defines the interface for the read-only reference data:
// kinds, the opponent pool and the question catalog.
type Repository interface {
	// Seed populates the reference rows. Safe to call more than once;
	// rows have deterministic IDs so re-seeding overwrites in place.
	Seed(ctx context.Context, input *SeedInput) error

	// GetOpponent retrieves an opponent by ID
	GetOpponent(ctx context.Context, input *GetOpponentInput) (*models.Opponent, error)

	// ListOpponentsByKind retrieves all opponents of a kind, in slot order
	ListOpponentsByKind(ctx context.Context, input *ListOpponentsByKindInput) (*ListOpponentsByKindOutput, error)

	// ListQuestions retrieves the full question catalog, in order
	ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error)

	// ListOptions retrieves the options of a question, in order
	ListOptions(ctx context.Context, input *ListOptionsInput) (*ListOptionsOutput, error)

	// GetOption retrieves an option by ID
	GetOption(ctx context.Context, input *GetOptionInput) (*models.Option, error)
}
