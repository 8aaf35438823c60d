package experiment

import (
	"github.com/vera24m/ultimatum-game/internal/common/clock"
	"github.com/vera24m/ultimatum-game/internal/common/uuid"
	"github.com/vera24m/ultimatum-game/internal/draw"
	"github.com/vera24m/ultimatum-game/internal/models"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
)

// Phase identifies where in the experiment a session currently is
type Phase string

const (
	// PhaseNoOpponentCategory indicates the assigned kind has no
	// opponents seeded; the session cannot proceed to rounds
	PhaseNoOpponentCategory Phase = "no_opponent_category"

	// PhaseFramingDisclosure indicates the framing disclosure must be
	// acknowledged before the next round is shown
	PhaseFramingDisclosure Phase = "framing_disclosure"

	// PhaseRoundStart indicates the next round's opponent introduction
	PhaseRoundStart Phase = "round_start"

	// PhaseQuestionnaire indicates all rounds are played
	PhaseQuestionnaire Phase = "questionnaire"
)

// Config holds configuration for the experiment service
type Config struct {
	// NumRounds is the total number of rounds per session
	NumRounds int

	// AmountAvailable is the number of money units split in each round
	AmountAvailable int

	// Repository dependencies
	CatalogRepo catalogRepo.Repository
	PlayerRepo  playerRepo.Repository
	RoundRepo   roundRepo.Repository
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Picker        draw.Picker
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	// SessionID identifies the browser session
	SessionID string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct{}

// ViewInstructionsInput contains parameters for the instructions page
type ViewInstructionsInput struct {
	SessionID string
}

// ViewInstructionsOutput contains the result of opening the instructions
type ViewInstructionsOutput struct {
	// KindID is the player's assigned opponent category
	KindID models.KindID

	// KindName is the display name of the category
	KindName string

	// Created indicates the player record was created by this call
	Created bool
}

// ResolveRoundInput contains parameters for resolving the current phase
type ResolveRoundInput struct {
	SessionID string
}

// ResolveRoundOutput contains the resolved phase and round context
type ResolveRoundOutput struct {
	// Phase is where the session must go next
	Phase Phase

	// RoundIndex is the 1-based index of the upcoming round. Zero when
	// all rounds are complete.
	RoundIndex int

	// Opponent is the opponent for the upcoming round, when in a round
	// phase
	Opponent *models.Opponent

	// Intentional is the framing for the upcoming round, meaningful in
	// PhaseFramingDisclosure and round phases
	Intentional bool
}

// FramingStatusInput contains parameters for the framing disclosure page
type FramingStatusInput struct {
	SessionID string
}

// FramingStatusOutput contains the framing to disclose
type FramingStatusOutput struct {
	// RoundIndex is the round the disclosure applies to
	RoundIndex int

	// Intentional is the framing for the upcoming half of the session
	Intentional bool
}

// AcknowledgeFramingInput contains parameters for acknowledging the
// framing disclosure
type AcknowledgeFramingInput struct {
	SessionID string
}

// AcknowledgeFramingOutput contains the result of the acknowledgment
type AcknowledgeFramingOutput struct{}

// CurrentOfferInput contains parameters for retrieving the round's offer
type CurrentOfferInput struct {
	SessionID string
}

// CurrentOfferOutput contains the offer shown on the play screen
type CurrentOfferOutput struct {
	// RoundIndex is the 1-based index of the round being played
	RoundIndex int

	// Opponent is the opponent making the offer
	Opponent *models.Opponent

	// AmountOffered is the number of money units offered to the player
	AmountOffered int

	// AmountKept is what the opponent keeps
	AmountKept int

	// Intentional is the framing of this offer
	Intentional bool
}

// SubmitDecisionInput contains parameters for recording a decision
type SubmitDecisionInput struct {
	SessionID string

	// Accepted is the player's decision on the offer
	Accepted bool

	// TimeElapsedMs is how long the decision took, in milliseconds
	TimeElapsedMs int64
}

// SubmitDecisionOutput contains the result of recording a decision
type SubmitDecisionOutput struct {
	// AlreadyRecorded indicates the round was recorded earlier and this
	// submission was ignored
	AlreadyRecorded bool
}

// EndRoundInput contains parameters for the round outcome page
type EndRoundInput struct {
	SessionID string
}

// EndRoundOutput contains the just-played round's outcome
type EndRoundOutput struct {
	AmountOffered int
	Accepted      bool
}

// SubmitDemographicInput contains the demographic form fields
type SubmitDemographicInput struct {
	SessionID string

	Age                 int
	HoursBehindComputer int
	Nationality         string
}

// SubmitDemographicOutput contains the result of the demographic submit
type SubmitDemographicOutput struct{}

// CompleteInput contains parameters for the completion screen
type CompleteInput struct {
	SessionID string
}

// CompleteOutput contains the completion token
type CompleteOutput struct {
	// Token is the player's completion token
	Token string

	// Issued indicates the token was generated by this call rather
	// than returned from an earlier one
	Issued bool
}
