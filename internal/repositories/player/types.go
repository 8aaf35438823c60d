package player

import "github.com/vera24m/ultimatum-game/internal/models"

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.Player
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	PlayerID string
}

// CountByKindInput contains parameters for the per-kind player counts
type CountByKindInput struct{}

// CountByKindOutput contains the number of players per kind
type CountByKindOutput struct {
	Counts map[models.KindID]int64
}

// ListFinishedInput contains parameters for listing finished players
type ListFinishedInput struct{}

// ListFinishedOutput contains all players who finished the experiment
type ListFinishedOutput struct {
	Players []*models.Player
}
