package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sort"
	"strconv"

	answerRepo "github.com/vera24m/ultimatum-game/internal/repositories/answer"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	roundRepo "github.com/vera24m/ultimatum-game/internal/repositories/round"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/vera24m/ultimatum-game/internal/services/export Service

// Service defines the interface for the reward-reconciliation export
type Service interface {
	// Results renders the denormalized results CSV: one row per round
	// of every finished player, question columns appended
	Results(ctx context.Context, input *ResultsInput) (*ResultsOutput, error)
}

// service implements the Service interface
type service struct {
	catalogRepo catalogRepo.Repository
	playerRepo  playerRepo.Repository
	roundRepo   roundRepo.Repository
	answerRepo  answerRepo.Repository
}

// New creates a new export service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.CatalogRepo == nil {
		return nil, errors.New("catalog repository cannot be nil")
	}
	if cfg.PlayerRepo == nil {
		return nil, errors.New("player repository cannot be nil")
	}
	if cfg.RoundRepo == nil {
		return nil, errors.New("round repository cannot be nil")
	}
	if cfg.AnswerRepo == nil {
		return nil, errors.New("answer repository cannot be nil")
	}

	return &service{
		catalogRepo: cfg.CatalogRepo,
		playerRepo:  cfg.PlayerRepo,
		roundRepo:   cfg.RoundRepo,
		answerRepo:  cfg.AnswerRepo,
	}, nil
}

// Results renders the results CSV. Only players holding a completion
// token appear; abandoned sessions are retained in storage but never
// exported.
func (s *service) Results(ctx context.Context, input *ResultsInput) (*ResultsOutput, error) {
	questions, err := s.catalogRepo.ListQuestions(ctx, &catalogRepo.ListQuestionsInput{})
	if err != nil {
		return nil, err
	}

	header := []string{
		"player", "round", "opponent", "opponent_kind",
		"accepted", "amount_offered", "is_intentional",
		"start_time", "instructions_time", "round_time", "questionnaire_time",
		"age", "hours_a_day_you_spend_behind_a_computer", "nationality",
	}
	for _, question := range questions.Questions {
		header = append(header, question.Text)
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	finished, err := s.playerRepo.ListFinished(ctx, &playerRepo.ListFinishedInput{})
	if err != nil {
		return nil, err
	}

	// Stable row order across exports.
	sort.Slice(finished.Players, func(i, j int) bool {
		return finished.Players[i].ID < finished.Players[j].ID
	})

	for _, player := range finished.Players {
		answers, err := s.answerRepo.ListByPlayer(ctx, &answerRepo.ListByPlayerInput{PlayerID: player.ID})
		if err != nil {
			return nil, err
		}

		chosen := make(map[string]string, len(answers.Answers))
		for _, answer := range answers.Answers {
			option, err := s.catalogRepo.GetOption(ctx, &catalogRepo.GetOptionInput{OptionID: answer.OptionID})
			if err != nil {
				return nil, err
			}
			chosen[answer.QuestionID] = option.Text
		}

		rounds, err := s.roundRepo.ListByPlayer(ctx, &roundRepo.ListByPlayerInput{PlayerID: player.ID})
		if err != nil {
			return nil, err
		}

		for i, round := range rounds.Rounds {
			opponent, err := s.catalogRepo.GetOpponent(ctx, &catalogRepo.GetOpponentInput{OpponentID: round.OpponentID})
			if err != nil {
				return nil, err
			}

			record := []string{
				player.ID,
				strconv.Itoa(i + 1),
				opponent.ID,
				string(opponent.KindID),
				strconv.FormatBool(round.Accepted),
				strconv.Itoa(round.AmountOffered),
				strconv.FormatBool(round.Intentional),
				strconv.FormatInt(player.StartTimeMs, 10),
				strconv.FormatInt(player.InstructionsTimeMs, 10),
				strconv.FormatInt(round.TimeElapsedMs, 10),
				strconv.FormatInt(player.QuestionnaireTimeMs, 10),
				strconv.Itoa(player.Age),
				strconv.Itoa(player.HoursBehindComputer),
				player.Nationality,
			}
			for _, question := range questions.Questions {
				record = append(record, chosen[question.ID])
			}

			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &ResultsOutput{CSV: buf.Bytes()}, nil
}
