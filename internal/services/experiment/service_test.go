package experiment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/vera24m/ultimatum-game/internal/common/clock/mocks"
	uuidMocks "github.com/vera24m/ultimatum-game/internal/common/uuid/mocks"
	drawMocks "github.com/vera24m/ultimatum-game/internal/draw/mocks"
	"github.com/vera24m/ultimatum-game/internal/models"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
)

const testNumRounds = 4

type ServiceTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client

	catalog  catalogRepo.Repository
	players  playerRepo.Repository
	rounds   roundRepo.Repository
	sessions sessionRepo.Repository

	ctrl       *gomock.Controller
	mockClock  *clockMocks.MockClock
	mockUUID   *uuidMocks.MockUUID
	mockPicker *drawMocks.MockPicker

	svc Service

	// now is the mock clock's current time; tests advance it directly
	now time.Time

	// intnQueue scripts successive Intn picks; an empty queue picks 0
	intnQueue []int

	// flip is what the mock coin flip returns
	flip bool

	uuidCount int
}

func (s *ServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.catalog, err = catalogRepo.NewRedis(&catalogRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.players, err = playerRepo.NewRedis(&playerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.rounds, err = roundRepo.NewRedis(&roundRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.sessions, err = sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.Require().NoError(s.catalog.Seed(context.Background(), &catalogRepo.SeedInput{
		OpponentsPerKind: testNumRounds,
	}))

	s.now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s.intnQueue = nil
	s.flip = true
	s.uuidCount = 0

	s.ctrl = gomock.NewController(s.T())

	s.mockClock = clockMocks.NewMockClock(s.ctrl)
	s.mockClock.EXPECT().Now().DoAndReturn(func() time.Time {
		return s.now
	}).AnyTimes()

	s.mockUUID = uuidMocks.NewMockUUID(s.ctrl)
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.uuidCount++
		return fmt.Sprintf("uuid-%d", s.uuidCount)
	}).AnyTimes()

	s.mockPicker = drawMocks.NewMockPicker(s.ctrl)
	s.mockPicker.EXPECT().Intn(gomock.Any()).DoAndReturn(func(n int) int {
		if len(s.intnQueue) == 0 {
			return 0
		}
		pick := s.intnQueue[0]
		s.intnQueue = s.intnQueue[1:]
		s.Require().Less(pick, n)
		return pick
	}).AnyTimes()
	s.mockPicker.EXPECT().Flip().DoAndReturn(func() bool {
		return s.flip
	}).AnyTimes()

	svc, err := New(&Config{
		NumRounds:     testNumRounds,
		CatalogRepo:   s.catalog,
		PlayerRepo:    s.players,
		RoundRepo:     s.rounds,
		SessionRepo:   s.sessions,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		Picker:        s.mockPicker,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *ServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// enterExperiment walks a fresh session through the start and
// instructions screens, returning the player ID behind it.
func (s *ServiceTestSuite) enterExperiment(sessionID string) string {
	_, err := s.svc.StartSession(context.Background(), &StartSessionInput{SessionID: sessionID})
	s.Require().NoError(err)

	_, err = s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: sessionID})
	s.Require().NoError(err)

	scratch, err := s.sessions.GetScratch(context.Background(), &sessionRepo.GetScratchInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Require().NotEmpty(scratch.PlayerID)

	return scratch.PlayerID
}

// enterAsKind wires a session to a pre-assigned player of the given
// kind, bypassing the balancing draw.
func (s *ServiceTestSuite) enterAsKind(sessionID string, kindID models.KindID) string {
	playerID := "player-" + string(kindID)

	err := s.players.SavePlayer(context.Background(), &playerRepo.SavePlayerInput{
		Player: &models.Player{
			ID:           playerID,
			KindID:       kindID,
			RegisteredAt: s.now,
		},
	})
	s.Require().NoError(err)

	err = s.sessions.SaveScratch(context.Background(), &sessionRepo.SaveScratchInput{
		SessionID: sessionID,
		Scratch:   &models.Scratch{PlayerID: playerID},
	})
	s.Require().NoError(err)

	return playerID
}

// resolveToRoundStart resolves the session's phase, acknowledging a
// framing disclosure if one is pending, and returns the round start.
func (s *ServiceTestSuite) resolveToRoundStart(sessionID string) *ResolveRoundOutput {
	out, err := s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: sessionID})
	s.Require().NoError(err)

	if out.Phase == PhaseFramingDisclosure {
		_, err = s.svc.AcknowledgeFraming(context.Background(), &AcknowledgeFramingInput{SessionID: sessionID})
		s.Require().NoError(err)

		out, err = s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: sessionID})
		s.Require().NoError(err)
	}

	s.Require().Equal(PhaseRoundStart, out.Phase)
	return out
}

// playRound plays one full round and returns the offer that was shown
func (s *ServiceTestSuite) playRound(sessionID string, accepted bool) *CurrentOfferOutput {
	s.resolveToRoundStart(sessionID)

	offer, err := s.svc.CurrentOffer(context.Background(), &CurrentOfferInput{SessionID: sessionID})
	s.Require().NoError(err)

	s.now = s.now.Add(time.Second)

	_, err = s.svc.SubmitDecision(context.Background(), &SubmitDecisionInput{
		SessionID:     sessionID,
		Accepted:      accepted,
		TimeElapsedMs: 1000,
	})
	s.Require().NoError(err)

	_, err = s.svc.EndRound(context.Background(), &EndRoundInput{SessionID: sessionID})
	s.Require().NoError(err)

	return offer
}

func (s *ServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{
		CatalogRepo:   s.catalog,
		PlayerRepo:    s.players,
		RoundRepo:     s.rounds,
		SessionRepo:   s.sessions,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.ErrorIs(err, ErrNilPicker)
}

func (s *ServiceTestSuite) TestViewInstructionsBalancesKinds() {
	first, err := s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.True(first.Created)
	s.Equal(models.KindHuman, first.KindID)
	s.Equal("Human", first.KindName)

	// Human now has one player, so the next draw is among the rest.
	second, err := s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: "sess-2"})
	s.Require().NoError(err)
	s.True(second.Created)
	s.Equal(models.KindComputer, second.KindID)
}

func (s *ServiceTestSuite) TestViewInstructionsIsIdempotent() {
	first, err := s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.True(first.Created)

	again, err := s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.False(again.Created)
	s.Equal(first.KindID, again.KindID)
}

func (s *ServiceTestSuite) TestStartTimeCapturedOnce() {
	_, err := s.svc.StartSession(context.Background(), &StartSessionInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	s.now = s.now.Add(5 * time.Second)

	_, err = s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	scratch, err := s.sessions.GetScratch(context.Background(), &sessionRepo.GetScratchInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{PlayerID: scratch.PlayerID})
	s.Require().NoError(err)
	s.Equal(int64(5000), player.StartTimeMs)

	// A reload of the instructions must not overwrite the timing.
	s.now = s.now.Add(time.Minute)

	_, err = s.svc.ViewInstructions(context.Background(), &ViewInstructionsInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	player, err = s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{PlayerID: scratch.PlayerID})
	s.Require().NoError(err)
	s.Equal(int64(5000), player.StartTimeMs)
}

func (s *ServiceTestSuite) TestResolveRoundShowsFramingUntilAcknowledged() {
	s.enterExperiment("sess-1")

	out, err := s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(PhaseFramingDisclosure, out.Phase)
	s.Equal(1, out.RoundIndex)
	s.True(out.Intentional)

	// Reloading resolves to the disclosure again.
	out, err = s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(PhaseFramingDisclosure, out.Phase)

	status, err := s.svc.FramingStatus(context.Background(), &FramingStatusInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.True(status.Intentional)

	_, err = s.svc.AcknowledgeFraming(context.Background(), &AcknowledgeFramingInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	out, err = s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(PhaseRoundStart, out.Phase)
	s.Equal(1, out.RoundIndex)
	s.Require().NotNil(out.Opponent)
	s.Equal(models.KindHuman, out.Opponent.KindID)
}

func (s *ServiceTestSuite) TestInstructionsTimeCapturedAtFirstRound() {
	s.enterExperiment("sess-1")

	s.now = s.now.Add(7 * time.Second)

	out := s.resolveToRoundStart("sess-1")
	s.Equal(1, out.RoundIndex)

	scratch, err := s.sessions.GetScratch(context.Background(), &sessionRepo.GetScratchInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{PlayerID: scratch.PlayerID})
	s.Require().NoError(err)
	s.Equal(int64(7000), player.InstructionsTimeMs)
}

func (s *ServiceTestSuite) TestRandomnessNeverSeesFraming() {
	s.enterAsKind("sess-x", models.KindRandomness)

	out, err := s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-x"})
	s.Require().NoError(err)
	s.Equal(PhaseRoundStart, out.Phase)
	s.False(out.Intentional)

	// The doubled schedule repeats each amount before moving on.
	var offers []int
	for i := 0; i < 3; i++ {
		offer := s.playRound("sess-x", true)
		s.False(offer.Intentional)
		offers = append(offers, offer.AmountOffered)
	}
	s.Equal([]int{10, 10, 20}, offers)
}

func (s *ServiceTestSuite) TestCurrentOfferStableAcrossReloads() {
	s.enterExperiment("sess-1")
	s.resolveToRoundStart("sess-1")

	first, err := s.svc.CurrentOffer(context.Background(), &CurrentOfferInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(10, first.AmountOffered)
	s.Equal(90, first.AmountKept)

	again, err := s.svc.CurrentOffer(context.Background(), &CurrentOfferInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(first.AmountOffered, again.AmountOffered)
	s.Equal(first.Opponent.ID, again.Opponent.ID)
}

func (s *ServiceTestSuite) TestCurrentOfferWithoutRound() {
	s.enterExperiment("sess-1")

	_, err := s.svc.CurrentOffer(context.Background(), &CurrentOfferInput{SessionID: "sess-1"})
	s.ErrorIs(err, ErrNoActiveRound)
}

func (s *ServiceTestSuite) TestSubmitDecisionIsRecordedOnce() {
	playerID := s.enterExperiment("sess-1")
	s.resolveToRoundStart("sess-1")

	_, err := s.svc.CurrentOffer(context.Background(), &CurrentOfferInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	out, err := s.svc.SubmitDecision(context.Background(), &SubmitDecisionInput{
		SessionID:     "sess-1",
		Accepted:      true,
		TimeElapsedMs: 1500,
	})
	s.Require().NoError(err)
	s.False(out.AlreadyRecorded)

	// A resubmission of the same form is ignored.
	out, err = s.svc.SubmitDecision(context.Background(), &SubmitDecisionInput{
		SessionID:     "sess-1",
		Accepted:      false,
		TimeElapsedMs: 1500,
	})
	s.Require().NoError(err)
	s.True(out.AlreadyRecorded)

	count, err := s.rounds.CountByPlayer(context.Background(), &roundRepo.CountByPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.Equal(1, count.Count)

	history, err := s.rounds.ListByPlayer(context.Background(), &roundRepo.ListByPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.Require().Len(history.Rounds, 1)
	s.True(history.Rounds[0].Accepted)
	s.Equal(int64(1500), history.Rounds[0].TimeElapsedMs)
}

func (s *ServiceTestSuite) TestEndRoundReleasesOpponent() {
	s.enterExperiment("sess-1")
	s.resolveToRoundStart("sess-1")

	_, err := s.svc.CurrentOffer(context.Background(), &CurrentOfferInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	_, err = s.svc.SubmitDecision(context.Background(), &SubmitDecisionInput{
		SessionID: "sess-1",
		Accepted:  false,
	})
	s.Require().NoError(err)

	out, err := s.svc.EndRound(context.Background(), &EndRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(10, out.AmountOffered)
	s.False(out.Accepted)

	_, err = s.svc.EndRound(context.Background(), &EndRoundInput{SessionID: "sess-1"})
	s.ErrorIs(err, ErrNoActiveRound)
}

func (s *ServiceTestSuite) TestSubmitDemographic() {
	playerID := s.enterExperiment("sess-1")

	_, err := s.svc.SubmitDemographic(context.Background(), &SubmitDemographicInput{
		SessionID:           "sess-1",
		Age:                 29,
		HoursBehindComputer: 8,
		Nationality:         "German",
	})
	s.Require().NoError(err)

	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.Equal(29, player.Age)
	s.Equal(8, player.HoursBehindComputer)
	s.Equal("German", player.Nationality)
}

func (s *ServiceTestSuite) TestCompleteIssuesTokenOnce() {
	playerID := s.enterExperiment("sess-1")

	first, err := s.svc.Complete(context.Background(), &CompleteInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.True(first.Issued)
	s.NotEmpty(first.Token)

	again, err := s.svc.Complete(context.Background(), &CompleteInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.False(again.Issued)
	s.Equal(first.Token, again.Token)

	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.True(player.Finished)
	s.Equal(first.Token, player.MturkKey)
}

func (s *ServiceTestSuite) TestFullSessionCoversScheduleAcrossFramings() {
	// Script every draw: the kind assignment, then per round one
	// opponent pick and one offer pick.
	s.intnQueue = []int{
		1,    // kind: Computer
		0, 0, // round 1: opponent c_1, offer 10 of {10,20,30,50}
		0, 1, // round 2: opponent c_2, offer 30 of {20,30,50}
		0, 1, // round 3: opponent c_3, offer 20 of {10,20,30,50}
		0, 2, // round 4: opponent c_4, offer 50 of {10,30,50}
	}

	playerID := s.enterExperiment("sess-1")

	player, err := s.players.GetPlayer(context.Background(), &playerRepo.GetPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.Require().Equal(models.KindComputer, player.KindID)

	type played struct {
		amount      int
		intentional bool
	}
	var offers []played

	for i := 0; i < testNumRounds; i++ {
		offer := s.playRound("sess-1", i%2 == 0)
		offers = append(offers, played{offer.AmountOffered, offer.Intentional})
	}

	// First half intentional, second half not, schedule fully covered.
	s.Equal([]played{
		{10, true},
		{30, true},
		{20, false},
		{50, false},
	}, offers)

	// Every opponent was faced exactly once.
	history, err := s.rounds.ListByPlayer(context.Background(), &roundRepo.ListByPlayerInput{PlayerID: playerID})
	s.Require().NoError(err)
	s.Require().Len(history.Rounds, testNumRounds)

	faced := make(map[string]bool)
	for _, round := range history.Rounds {
		s.False(faced[round.OpponentID], "opponent %s faced twice", round.OpponentID)
		faced[round.OpponentID] = true
	}

	// With the pool exhausted the session moves to the questionnaire.
	out, err := s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(PhaseQuestionnaire, out.Phase)

	// The tail of the flow: demographics, then a completion token.
	_, err = s.svc.SubmitDemographic(context.Background(), &SubmitDemographicInput{
		SessionID:           "sess-1",
		Age:                 27,
		HoursBehindComputer: 5,
		Nationality:         "Dutch",
	})
	s.Require().NoError(err)

	completed, err := s.svc.Complete(context.Background(), &CompleteInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.True(completed.Issued)
	s.NotEmpty(completed.Token)
}

func (s *ServiceTestSuite) TestFramingFlipsExactlyOnceAtHalfBoundary() {
	s.enterExperiment("sess-1")

	// Two first-half rounds under the coin-flipped framing.
	s.Equal(true, s.playRound("sess-1", true).Intentional)
	s.Equal(true, s.playRound("sess-1", true).Intentional)

	// Round 3 opens the second half: the disclosure reappears with the
	// opposite framing.
	out, err := s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(PhaseFramingDisclosure, out.Phase)
	s.Equal(3, out.RoundIndex)
	s.False(out.Intentional)

	_, err = s.svc.AcknowledgeFraming(context.Background(), &AcknowledgeFramingInput{SessionID: "sess-1"})
	s.Require().NoError(err)

	s.Equal(false, s.playRound("sess-1", true).Intentional)
	s.Equal(false, s.playRound("sess-1", true).Intentional)
}

func (s *ServiceTestSuite) TestResolveRoundWithoutOpponentPool() {
	// An unseeded store has no opponents for any kind.
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())

	s.enterExperiment("sess-1")

	out, err := s.svc.ResolveRound(context.Background(), &ResolveRoundInput{SessionID: "sess-1"})
	s.Require().NoError(err)
	s.Equal(PhaseNoOpponentCategory, out.Phase)
}
