package session

import "github.com/vera24m/ultimatum-game/internal/models"

// GetScratchInput contains parameters for retrieving scratch state
type GetScratchInput struct {
	SessionID string
}

// SaveScratchInput contains parameters for saving scratch state
type SaveScratchInput struct {
	SessionID string
	Scratch   *models.Scratch
}

// DeleteScratchInput contains parameters for deleting scratch state
type DeleteScratchInput struct {
	SessionID string
}
