package models

import (
	"time"
)

// Round represents one completed offer exchange. Rounds are immutable
// once created; a player's rounds in creation order are their history.
type Round struct {
	// ID is the unique identifier for the round
	ID string

	// PlayerID is the participant who faced the offer
	PlayerID string

	// OpponentID is the opponent the offer was attributed to
	OpponentID string

	// AmountOffered is the number of money units offered to the player
	AmountOffered int

	// Intentional indicates the offer was framed as deliberately chosen
	// rather than randomly generated
	Intentional bool

	// Accepted is the player's decision on the offer
	Accepted bool

	// TimeElapsedMs is how long the decision took, in milliseconds
	TimeElapsedMs int64

	// CreatedAt is when the decision was recorded
	CreatedAt time.Time
}
