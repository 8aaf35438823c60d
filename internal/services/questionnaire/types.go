package questionnaire

import (
	"github.com/vera24m/ultimatum-game/internal/common/clock"
	"github.com/vera24m/ultimatum-game/internal/models"
	answerRepo "github.com/vera24m/ultimatum-game/internal/repositories/answer"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
)

// Config holds configuration for the questionnaire service
type Config struct {
	// QuestionsPerPage is how many questions each page shows
	QuestionsPerPage int

	// Orphans is the minimum size of a trailing page; smaller leftovers
	// are absorbed into the previous page
	Orphans int

	// Repository dependencies
	CatalogRepo catalogRepo.Repository
	AnswerRepo  answerRepo.Repository
	PlayerRepo  playerRepo.Repository
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Clock clock.Clock
}

// PageQuestion is one question on a page together with its options
type PageQuestion struct {
	Question *models.Question
	Options  []*models.Option
}

// GetPageInput contains parameters for rendering the current page
type GetPageInput struct {
	SessionID string
}

// GetPageOutput contains the current page of the questionnaire
type GetPageOutput struct {
	// PageNumber is the 1-based page cursor
	PageNumber int

	// Questions are the questions on this page, in catalog order
	Questions []*PageQuestion

	// HasNext indicates more pages follow this one
	HasNext bool

	// Done indicates the cursor is past the last page: the
	// questionnaire phase is complete
	Done bool
}

// SubmitPageInput contains the selections for the current page
type SubmitPageInput struct {
	SessionID string

	// Selections maps question ID to the chosen option ID
	Selections map[string]string
}

// SubmitPageOutput contains the result of a page submission
type SubmitPageOutput struct {
	// InvalidQuestionIDs lists questions with a missing or foreign
	// option selection. Non-empty means nothing was persisted.
	InvalidQuestionIDs []string

	// Finished indicates the last page was just submitted
	Finished bool
}
