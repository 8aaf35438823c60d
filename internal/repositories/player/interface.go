package player

import (
	"context"

	"github.com/vera24m/ultimatum-game/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/vera24m/ultimatum-game/internal/repositories/player Repository

// Repository defines the interface for player data persistence
type Repository interface {
	// SavePlayer persists a player, creating or overwriting it
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player by ID
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.Player, error)

	// CountByKind counts all players ever created, per kind
	CountByKind(ctx context.Context, input *CountByKindInput) (*CountByKindOutput, error)

	// ListFinished retrieves all players who reached the completion screen
	ListFinished(ctx context.Context, input *ListFinishedInput) (*ListFinishedOutput, error)
}
