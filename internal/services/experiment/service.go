package experiment

import (
	"context"
	"errors"
	"time"

	"github.com/vera24m/ultimatum-game/internal/common/clock"
	commonUUID "github.com/vera24m/ultimatum-game/internal/common/uuid"
	"github.com/vera24m/ultimatum-game/internal/draw"
	"github.com/vera24m/ultimatum-game/internal/models"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
)

const (
	// DefaultNumRounds is the number of rounds per session
	DefaultNumRounds = 8

	// DefaultAmountAvailable is the money units split in each round
	DefaultAmountAvailable = 100
)

// service implements the Service interface
type service struct {
	numRounds       int
	amountAvailable int

	catalogRepo catalogRepo.Repository
	playerRepo  playerRepo.Repository
	roundRepo   roundRepo.Repository
	sessionRepo sessionRepo.Repository

	clock  clock.Clock
	uuid   commonUUID.UUID
	picker draw.Picker
}

// New creates a new experiment service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.CatalogRepo == nil {
		return nil, ErrNilCatalogRepo
	}
	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}
	if cfg.RoundRepo == nil {
		return nil, ErrNilRoundRepo
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}
	if cfg.Picker == nil {
		return nil, ErrNilPicker
	}

	numRounds := cfg.NumRounds
	if numRounds <= 0 {
		numRounds = DefaultNumRounds
	}

	amountAvailable := cfg.AmountAvailable
	if amountAvailable <= 0 {
		amountAvailable = DefaultAmountAvailable
	}

	return &service{
		numRounds:       numRounds,
		amountAvailable: amountAvailable,
		catalogRepo:     cfg.CatalogRepo,
		playerRepo:      cfg.PlayerRepo,
		roundRepo:       cfg.RoundRepo,
		sessionRepo:     cfg.SessionRepo,
		clock:           cfg.Clock,
		uuid:            cfg.UUIDGenerator,
		picker:          cfg.Picker,
	}, nil
}

// StartSession ensures scratch state exists and stamps the session
// start time once
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if scratch.SessionStartedAt.IsZero() {
		scratch.SessionStartedAt = s.clock.Now()
		if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
			return nil, err
		}
	}

	return &StartSessionOutput{}, nil
}

// ViewInstructions gets or creates the player and captures the
// pre-instructions time once
func (s *service) ViewInstructions(ctx context.Context, input *ViewInstructionsInput) (*ViewInstructionsOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, created, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	if player.StartTimeMs == 0 && !scratch.SessionStartedAt.IsZero() {
		player.StartTimeMs = elapsedMs(scratch.SessionStartedAt, now)
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player}); err != nil {
			return nil, err
		}
	}

	if scratch.InstructionsViewedAt.IsZero() {
		scratch.InstructionsViewedAt = now
	}

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &ViewInstructionsOutput{
		KindID:   player.KindID,
		KindName: kindName(player.KindID),
		Created:  created,
	}, nil
}

// ResolveRound is the central phase resolver. It reconstructs the
// session's position from the persisted round history plus the scratch
// state and decides what happens next.
func (s *service) ResolveRound(ctx context.Context, input *ResolveRoundInput) (*ResolveRoundOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	opponent, err := s.currentOpponent(ctx, scratch, player)
	if err != nil {
		if errors.Is(err, errKindHasNoOpponents) {
			if saveErr := s.saveScratch(ctx, input.SessionID, scratch); saveErr != nil {
				return nil, saveErr
			}
			return &ResolveRoundOutput{Phase: PhaseNoOpponentCategory}, nil
		}
		return nil, err
	}

	if opponent == nil {
		// Opponent pool exhausted: every round is played.
		if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
			return nil, err
		}
		return &ResolveRoundOutput{Phase: PhaseQuestionnaire}, nil
	}

	roundIndex, err := s.roundIndex(ctx, player)
	if err != nil {
		return nil, err
	}

	// The Randomness kind never sees the framing subflow; all its
	// offers are presented as randomly generated.
	if player.KindID != models.KindRandomness && s.isHalfBoundary(roundIndex) && !scratch.HasAcknowledged(roundIndex) {
		intentional := s.currentFraming(scratch, roundIndex)
		if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
			return nil, err
		}
		return &ResolveRoundOutput{
			Phase:       PhaseFramingDisclosure,
			RoundIndex:  roundIndex,
			Intentional: intentional,
		}, nil
	}

	if roundIndex == 1 && player.InstructionsTimeMs == 0 && !scratch.InstructionsViewedAt.IsZero() {
		player.InstructionsTimeMs = elapsedMs(scratch.InstructionsViewedAt, s.clock.Now())
		if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player}); err != nil {
			return nil, err
		}
	}

	intentional := false
	if player.KindID != models.KindRandomness {
		intentional = s.currentFraming(scratch, roundIndex)
	}

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &ResolveRoundOutput{
		Phase:       PhaseRoundStart,
		RoundIndex:  roundIndex,
		Opponent:    opponent,
		Intentional: intentional,
	}, nil
}

// FramingStatus reports the framing to disclose before the next round
func (s *service) FramingStatus(ctx context.Context, input *FramingStatusInput) (*FramingStatusOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	roundIndex, err := s.roundIndex(ctx, player)
	if err != nil {
		return nil, err
	}

	intentional := false
	if player.KindID != models.KindRandomness {
		intentional = s.currentFraming(scratch, roundIndex)
	}

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &FramingStatusOutput{
		RoundIndex:  roundIndex,
		Intentional: intentional,
	}, nil
}

// AcknowledgeFraming records that the disclosure for the upcoming round
// was read, so it is not shown again for that round index
func (s *service) AcknowledgeFraming(ctx context.Context, input *AcknowledgeFramingInput) (*AcknowledgeFramingOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	roundIndex, err := s.roundIndex(ctx, player)
	if err != nil {
		return nil, err
	}

	scratch.Acknowledge(roundIndex)

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &AcknowledgeFramingOutput{}, nil
}

// CurrentOffer returns the round's offer, drawing and caching it on the
// first call so reloads of the play screen see the same amount
func (s *service) CurrentOffer(ctx context.Context, input *CurrentOfferInput) (*CurrentOfferOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	if scratch.OpponentID == "" {
		return nil, ErrNoActiveRound
	}

	opponent, err := s.catalogRepo.GetOpponent(ctx, &catalogRepo.GetOpponentInput{OpponentID: scratch.OpponentID})
	if err != nil {
		return nil, err
	}

	roundIndex, err := s.roundIndex(ctx, player)
	if err != nil {
		return nil, err
	}

	intentional := false
	if player.KindID != models.KindRandomness {
		intentional = s.currentFraming(scratch, roundIndex)
	}

	if scratch.AmountOffered == 0 {
		history, err := s.roundRepo.ListByPlayer(ctx, &roundRepo.ListByPlayerInput{PlayerID: player.ID})
		if err != nil {
			return nil, err
		}

		eligible := eligibleOffers(history.Rounds, player.KindID, intentional)
		if len(eligible) == 0 {
			return nil, ErrScheduleExhausted
		}

		scratch.AmountOffered = eligible[s.picker.Intn(len(eligible))]
	}

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &CurrentOfferOutput{
		RoundIndex:    roundIndex,
		Opponent:      opponent,
		AmountOffered: scratch.AmountOffered,
		AmountKept:    s.amountAvailable - scratch.AmountOffered,
		Intentional:   intentional,
	}, nil
}

// SubmitDecision records the accept/reject decision for the current
// round. When the scratch holds no in-flight offer the round was
// already recorded, and the resubmission is ignored.
func (s *service) SubmitDecision(ctx context.Context, input *SubmitDecisionInput) (*SubmitDecisionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}
	if input.TimeElapsedMs < 0 {
		return nil, errors.New("elapsed time cannot be negative")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	if scratch.OpponentID == "" {
		return nil, ErrNoActiveRound
	}

	if scratch.AmountOffered == 0 {
		return &SubmitDecisionOutput{AlreadyRecorded: true}, nil
	}

	roundIndex, err := s.roundIndex(ctx, player)
	if err != nil {
		return nil, err
	}

	intentional := false
	if player.KindID != models.KindRandomness {
		intentional = s.currentFraming(scratch, roundIndex)
	}

	record := &models.Round{
		ID:            s.uuid.NewUUID(),
		PlayerID:      player.ID,
		OpponentID:    scratch.OpponentID,
		AmountOffered: scratch.AmountOffered,
		Intentional:   intentional,
		Accepted:      input.Accepted,
		TimeElapsedMs: input.TimeElapsedMs,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.roundRepo.SaveRound(ctx, &roundRepo.SaveRoundInput{Round: record}); err != nil {
		return nil, err
	}

	scratch.AmountOffered = 0
	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &SubmitDecisionOutput{}, nil
}

// EndRound returns the just-played round's outcome and releases the
// opponent so the next resolution assigns a fresh one
func (s *service) EndRound(ctx context.Context, input *EndRoundInput) (*EndRoundOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	if scratch.OpponentID == "" {
		return nil, ErrNoActiveRound
	}

	history, err := s.roundRepo.ListByPlayer(ctx, &roundRepo.ListByPlayerInput{PlayerID: player.ID})
	if err != nil {
		return nil, err
	}

	var last *models.Round
	for _, r := range history.Rounds {
		if r.OpponentID == scratch.OpponentID {
			last = r
		}
	}
	if last == nil {
		return nil, ErrNoActiveRound
	}

	scratch.OpponentID = ""
	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &EndRoundOutput{
		AmountOffered: last.AmountOffered,
		Accepted:      last.Accepted,
	}, nil
}

// SubmitDemographic stores the demographic form answers on the player
func (s *service) SubmitDemographic(ctx context.Context, input *SubmitDemographicInput) (*SubmitDemographicOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	player.Age = input.Age
	player.HoursBehindComputer = input.HoursBehindComputer
	player.Nationality = input.Nationality

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player}); err != nil {
		return nil, err
	}

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	return &SubmitDemographicOutput{}, nil
}

// Complete issues the completion token once and returns it unchanged on
// every later visit
func (s *service) Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getOrCreateScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	player, _, err := s.getOrCreatePlayer(ctx, scratch)
	if err != nil {
		return nil, err
	}

	if player.MturkKey != "" {
		return &CompleteOutput{Token: player.MturkKey}, nil
	}

	player.MturkKey = s.uuid.NewUUID()
	player.Finished = true

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player}); err != nil {
		return nil, err
	}

	return &CompleteOutput{Token: player.MturkKey, Issued: true}, nil
}

// elapsedMs returns the duration between two instants rounded to the
// nearest millisecond
func elapsedMs(from, to time.Time) int64 {
	return to.Sub(from).Round(time.Millisecond).Milliseconds()
}

// kindName resolves a kind's display name
func kindName(kindID models.KindID) string {
	for _, kind := range models.AllKinds() {
		if kind.ID == kindID {
			return kind.Name
		}
	}
	return string(kindID)
}
