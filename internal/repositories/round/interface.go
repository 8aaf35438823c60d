package round

import (
	"context"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/vera24m/ultimatum-game/internal/repositories/round Repository

// Repository defines the interface for round record persistence.
// Rounds are append-only; their creation order per player is the
// player's round history.
type Repository interface {
	// SaveRound persists a round record
	SaveRound(ctx context.Context, input *SaveRoundInput) error

	// ListByPlayer retrieves a player's rounds in creation order
	ListByPlayer(ctx context.Context, input *ListByPlayerInput) (*ListByPlayerOutput, error)

	// CountByPlayer counts a player's rounds
	CountByPlayer(ctx context.Context, input *CountByPlayerInput) (*CountByPlayerOutput, error)
}
