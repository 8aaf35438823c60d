package answer

import "github.com/vera24m/ultimatum-game/internal/models"

// SaveAnswerInput contains parameters for saving an answer
type SaveAnswerInput struct {
	Answer *models.Answer
}

// GetAnswerInput contains parameters for retrieving an answer
type GetAnswerInput struct {
	PlayerID   string
	QuestionID string
}

// ListByPlayerInput contains parameters for listing a player's answers
type ListByPlayerInput struct {
	PlayerID string
}

// ListByPlayerOutput contains all answers a player has given
type ListByPlayerOutput struct {
	Answers []*models.Answer
}
