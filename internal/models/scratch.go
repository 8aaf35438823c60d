package models

import (
	"time"
)

// Scratch is the ephemeral per-browser session state. It only bridges
// in-progress, not-yet-persisted steps; everything durable lives in the
// player, round and answer records, so a lost scratch can always be
// rebuilt from those plus at most one in-flight offer.
type Scratch struct {
	// PlayerID links the browser session to its player record
	PlayerID string

	// OpponentID is the opponent currently assigned to the player.
	// Empty between rounds.
	OpponentID string

	// AmountOffered is the in-flight offer for the current round.
	// Zero means no offer has been drawn yet.
	AmountOffered int

	// Intentional caches the framing decided for the current half of
	// the session. Nil until the first framing decision.
	Intentional *bool

	// FramingFlipped records that the second-half framing flip already
	// happened, so it happens exactly once.
	FramingFlipped bool

	// AcknowledgedRounds holds the round indices whose framing
	// disclosure the player has already acknowledged.
	AcknowledgedRounds []int

	// Page is the questionnaire page cursor, starting at 1
	Page int

	// SessionStartedAt is when the player first hit the start screen
	SessionStartedAt time.Time

	// InstructionsViewedAt is when the instructions were first shown
	InstructionsViewedAt time.Time

	// QuestionnaireStartedAt is when the first questionnaire page was shown
	QuestionnaireStartedAt time.Time
}

// HasAcknowledged reports whether the framing disclosure for the given
// round index was already acknowledged in this session.
func (s *Scratch) HasAcknowledged(roundIndex int) bool {
	for _, r := range s.AcknowledgedRounds {
		if r == roundIndex {
			return true
		}
	}
	return false
}

// Acknowledge records the framing disclosure for a round index as seen.
func (s *Scratch) Acknowledge(roundIndex int) {
	if !s.HasAcknowledged(roundIndex) {
		s.AcknowledgedRounds = append(s.AcknowledgedRounds, roundIndex)
	}
}
