package catalog

import "github.com/vera24m/ultimatum-game/internal/models"

// SeedInput contains parameters for seeding the reference data
type SeedInput struct {
	// OpponentsPerKind is how many opponents each kind gets, one per
	// round slot
	OpponentsPerKind int
}

// GetOpponentInput contains parameters for retrieving an opponent
type GetOpponentInput struct {
	OpponentID string
}

// ListOpponentsByKindInput contains parameters for listing a kind's opponents
type ListOpponentsByKindInput struct {
	KindID models.KindID
}

// ListOpponentsByKindOutput contains the result of listing a kind's opponents
type ListOpponentsByKindOutput struct {
	Opponents []*models.Opponent
}

// ListQuestionsInput contains parameters for listing the question catalog
type ListQuestionsInput struct{}

// ListQuestionsOutput contains the ordered question catalog
type ListQuestionsOutput struct {
	Questions []*models.Question
}

// ListOptionsInput contains parameters for listing a question's options
type ListOptionsInput struct {
	QuestionID string
}

// ListOptionsOutput contains the ordered options of a question
type ListOptionsOutput struct {
	Options []*models.Option
}

// GetOptionInput contains parameters for retrieving an option
type GetOptionInput struct {
	OptionID string
}
