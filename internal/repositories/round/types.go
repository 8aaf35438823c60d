package round

import "github.com/vera24m/ultimatum-game/internal/models"

// SaveRoundInput contains parameters for saving a round
type SaveRoundInput struct {
	Round *models.Round
}

// ListByPlayerInput contains parameters for listing a player's rounds
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput contains a player's rounds in creation order
type ListByPlayerOutput struct {
	Rounds []*models.Round
}

// CountByPlayerInput contains parameters for counting a player's rounds
type CountByPlayerInput struct {
	PlayerID string
}

// CountByPlayerOutput contains the number of rounds a player has played
type CountByPlayerOutput struct {
	Count int
}
