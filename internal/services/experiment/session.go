package experiment

import (
	"context"
	"errors"

	"github.com/vera24m/ultimatum-game/internal/models"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
)

// errKindHasNoOpponents signals a kind without seeded opponents; the
// resolver maps it to the no-opponent-category guard phase.
var errKindHasNoOpponents = errors.New("kind has no opponents")

// getOrCreateScratch loads the session's scratch state. A missing or
// expired entry is not an error: the participant simply starts over
// with a fresh scratch.
func (s *service) getOrCreateScratch(ctx context.Context, sessionID string) (*models.Scratch, error) {
	scratch, err := s.sessionRepo.GetScratch(ctx, &sessionRepo.GetScratchInput{SessionID: sessionID})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrScratchNotFound) {
			return &models.Scratch{}, nil
		}
		return nil, err
	}
	return scratch, nil
}

func (s *service) saveScratch(ctx context.Context, sessionID string, scratch *models.Scratch) error {
	return s.sessionRepo.SaveScratch(ctx, &sessionRepo.SaveScratchInput{
		SessionID: sessionID,
		Scratch:   scratch,
	})
}

// getOrCreatePlayer returns the player behind the scratch state,
// creating one with a freshly assigned kind on first contact. A scratch
// pointing at a deleted player is treated the same as no player.
func (s *service) getOrCreatePlayer(ctx context.Context, scratch *models.Scratch) (*models.Player, bool, error) {
	if scratch.PlayerID != "" {
		player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: scratch.PlayerID})
		if err == nil {
			return player, false, nil
		}
		if !errors.Is(err, playerRepo.ErrPlayerNotFound) {
			return nil, false, err
		}
	}

	kindID, err := s.assignKind(ctx)
	if err != nil {
		return nil, false, err
	}

	player := &models.Player{
		ID:           s.uuid.NewUUID(),
		KindID:       kindID,
		RegisteredAt: s.clock.Now(),
	}

	if err := s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player}); err != nil {
		return nil, false, err
	}

	scratch.PlayerID = player.ID

	return player, true, nil
}

// assignKind picks the new player's opponent category: uniformly at
// random among the kinds with the fewest players so far. Counts cover
// every player ever created, finished or not, which keeps sample sizes
// balanced under drop-off without post hoc rebalancing.
func (s *service) assignKind(ctx context.Context) (models.KindID, error) {
	counts, err := s.playerRepo.CountByKind(ctx, &playerRepo.CountByKindInput{})
	if err != nil {
		return "", err
	}

	var minCount int64 = -1
	for _, kind := range models.AllKinds() {
		if c := counts.Counts[kind.ID]; minCount < 0 || c < minCount {
			minCount = c
		}
	}

	var candidates []models.KindID
	for _, kind := range models.AllKinds() {
		if counts.Counts[kind.ID] == minCount {
			candidates = append(candidates, kind.ID)
		}
	}

	return candidates[s.picker.Intn(len(candidates))], nil
}

// currentOpponent returns the opponent for the upcoming round, reusing
// the scratch assignment or drawing a fresh one among the opponents of
// the player's kind not yet faced. Returns nil when the pool is
// exhausted, which means every round is played.
func (s *service) currentOpponent(ctx context.Context, scratch *models.Scratch, player *models.Player) (*models.Opponent, error) {
	if scratch.OpponentID != "" {
		return s.catalogRepo.GetOpponent(ctx, &catalogRepo.GetOpponentInput{OpponentID: scratch.OpponentID})
	}
	return s.createOpponent(ctx, scratch, player)
}

// createOpponent draws a new opponent assignment. The session must not
// hold one already; two concurrent assignments would let a player face
// the same opponent twice.
func (s *service) createOpponent(ctx context.Context, scratch *models.Scratch, player *models.Player) (*models.Opponent, error) {
	if scratch.OpponentID != "" {
		return nil, ErrOpponentConflict
	}

	pool, err := s.catalogRepo.ListOpponentsByKind(ctx, &catalogRepo.ListOpponentsByKindInput{KindID: player.KindID})
	if err != nil {
		return nil, err
	}

	if len(pool.Opponents) == 0 {
		return nil, errKindHasNoOpponents
	}

	history, err := s.roundRepo.ListByPlayer(ctx, &roundRepo.ListByPlayerInput{PlayerID: player.ID})
	if err != nil {
		return nil, err
	}

	faced := make(map[string]bool, len(history.Rounds))
	for _, r := range history.Rounds {
		faced[r.OpponentID] = true
	}

	available := make([]*models.Opponent, 0, len(pool.Opponents))
	for _, opponent := range pool.Opponents {
		if !faced[opponent.ID] {
			available = append(available, opponent)
		}
	}

	if len(available) == 0 {
		return nil, nil
	}

	opponent := available[s.picker.Intn(len(available))]
	scratch.OpponentID = opponent.ID

	return opponent, nil
}

// roundIndex is the 1-based index of the upcoming round, reconstructed
// from the persisted history. There is no separate counter to drift.
func (s *service) roundIndex(ctx context.Context, player *models.Player) (int, error) {
	count, err := s.roundRepo.CountByPlayer(ctx, &roundRepo.CountByPlayerInput{PlayerID: player.ID})
	if err != nil {
		return 0, err
	}
	return count.Count + 1, nil
}
