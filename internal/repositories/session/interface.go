package session

import (
	"context"

	"github.com/vera24m/ultimatum-game/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/vera24m/ultimatum-game/internal/repositories/session Repository

// Repository defines the interface for the per-browser scratch state.
// Scratch entries expire; durable facts live in the player, round and
// answer repositories.
type Repository interface {
	// GetScratch retrieves the scratch state for a browser session
	GetScratch(ctx context.Context, input *GetScratchInput) (*models.Scratch, error)

	// SaveScratch persists the scratch state and refreshes its TTL
	SaveScratch(ctx context.Context, input *SaveScratchInput) error

	// DeleteScratch removes the scratch state for a browser session
	DeleteScratch(ctx context.Context, input *DeleteScratchInput) error
}
