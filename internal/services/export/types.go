package export

import (
	answerRepo "github.com/vera24m/ultimatum-game/internal/repositories/answer"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
)

// Config holds configuration for the export service
type Config struct {
	// Repository dependencies
	CatalogRepo catalogRepo.Repository
	PlayerRepo  playerRepo.Repository
	RoundRepo   roundRepo.Repository
	AnswerRepo  answerRepo.Repository
}

// ResultsInput contains parameters for the results export
type ResultsInput struct{}

// ResultsOutput contains the rendered CSV
type ResultsOutput struct {
	CSV []byte
}
