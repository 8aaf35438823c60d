package models

// Question represents one questionnaire item
type Question struct {
	// ID is the unique identifier for the question
	ID string

	// Text is the prompt shown to the player
	Text string
}

// Option represents one selectable answer to a question
type Option struct {
	// ID is the unique identifier for the option
	ID string

	// QuestionID is the question this option belongs to
	QuestionID string

	// Text is the label shown to the player
	Text string
}

// Answer represents the option a player chose for a question.
// There is at most one answer per (player, question) pair.
type Answer struct {
	// PlayerID is the participant who answered
	PlayerID string

	// QuestionID is the question answered
	QuestionID string

	// OptionID is the chosen option
	OptionID string
}
