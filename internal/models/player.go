package models

import (
	"time"
)

// Player represents one anonymous participant across their whole session
type Player struct {
	// ID is the unique identifier for the player
	ID string

	// KindID is the opponent category assigned at first contact
	KindID KindID

	// RegisteredAt is when the player first reached the experiment
	RegisteredAt time.Time

	// MturkKey is the completion token handed out on the final screen.
	// Empty until the player reaches the terminal phase.
	MturkKey string

	// StartTimeMs is the time spent before opening the instructions,
	// in milliseconds. Zero means not yet captured.
	StartTimeMs int64

	// InstructionsTimeMs is the time spent on the instructions before
	// the first round, in milliseconds. Zero means not yet captured.
	InstructionsTimeMs int64

	// QuestionnaireTimeMs is the time spent on the whole questionnaire,
	// in milliseconds. Zero means not yet captured.
	QuestionnaireTimeMs int64

	// Age is the self-reported age from the demographic form
	Age int

	// HoursBehindComputer is the self-reported daily screen time
	HoursBehindComputer int

	// Nationality is the self-reported nationality
	Nationality string

	// Finished indicates the player reached the completion screen
	Finished bool
}
