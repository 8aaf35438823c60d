package questionnaire

import (
	"context"
	"errors"
	"time"

	"github.com/vera24m/ultimatum-game/internal/common/clock"
	"github.com/vera24m/ultimatum-game/internal/models"
	answerRepo "github.com/vera24m/ultimatum-game/internal/repositories/answer"
	catalogRepo "github.com/vera24m/ultimatum-game/internal/repositories/catalog"
	playerRepo "github.com/vera24m/ultimatum-game/internal/repositories/player"
	sessionRepo "github.com/vera24m/ultimatum-game/internal/repositories/session"
)

const (
	// DefaultQuestionsPerPage is how many questions each page shows
	DefaultQuestionsPerPage = 2
)

// ErrNoPlayer means the session has not been through the experiment
// start, so there is no player to attach answers to.
var ErrNoPlayer = errors.New("session has no player")

// service implements the Service interface
type service struct {
	questionsPerPage int
	orphans          int

	catalogRepo catalogRepo.Repository
	answerRepo  answerRepo.Repository
	playerRepo  playerRepo.Repository
	sessionRepo sessionRepo.Repository

	clock clock.Clock
}

// New creates a new questionnaire service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.CatalogRepo == nil {
		return nil, errors.New("catalog repository cannot be nil")
	}
	if cfg.AnswerRepo == nil {
		return nil, errors.New("answer repository cannot be nil")
	}
	if cfg.PlayerRepo == nil {
		return nil, errors.New("player repository cannot be nil")
	}
	if cfg.SessionRepo == nil {
		return nil, errors.New("session repository cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	questionsPerPage := cfg.QuestionsPerPage
	if questionsPerPage <= 0 {
		questionsPerPage = DefaultQuestionsPerPage
	}

	orphans := cfg.Orphans
	if orphans < 0 {
		orphans = 0
	}

	return &service{
		questionsPerPage: questionsPerPage,
		orphans:          orphans,
		catalogRepo:      cfg.CatalogRepo,
		answerRepo:       cfg.AnswerRepo,
		playerRepo:       cfg.PlayerRepo,
		sessionRepo:      cfg.SessionRepo,
		clock:            cfg.Clock,
	}, nil
}

// GetPage returns the questions of the session's current page,
// stamping the questionnaire start on first view
func (s *service) GetPage(ctx context.Context, input *GetPageInput) (*GetPageOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	page := scratch.Page
	if page < 1 {
		page = 1
	}

	catalog, err := s.catalogRepo.ListQuestions(ctx, &catalogRepo.ListQuestionsInput{})
	if err != nil {
		return nil, err
	}

	total := len(catalog.Questions)
	pages := numPages(total, s.questionsPerPage, s.orphans)

	if page > pages {
		return &GetPageOutput{PageNumber: page, Done: true}, nil
	}

	dirty := false
	if scratch.QuestionnaireStartedAt.IsZero() {
		scratch.QuestionnaireStartedAt = s.clock.Now()
		dirty = true
	}
	if scratch.Page != page {
		scratch.Page = page
		dirty = true
	}
	if dirty {
		if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
			return nil, err
		}
	}

	start, end := pageBounds(total, s.questionsPerPage, s.orphans, page)

	questions := make([]*PageQuestion, 0, end-start)
	for _, question := range catalog.Questions[start:end] {
		options, err := s.catalogRepo.ListOptions(ctx, &catalogRepo.ListOptionsInput{QuestionID: question.ID})
		if err != nil {
			return nil, err
		}
		questions = append(questions, &PageQuestion{
			Question: question,
			Options:  options.Options,
		})
	}

	return &GetPageOutput{
		PageNumber: page,
		Questions:  questions,
		HasNext:    page < pages,
	}, nil
}

// SubmitPage validates one selection per question on the current page.
// Invalid pages persist nothing; valid pages upsert the answers and
// advance the cursor, capturing the questionnaire time on the last one.
func (s *service) SubmitPage(ctx context.Context, input *SubmitPageInput) (*SubmitPageOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	scratch, err := s.getScratch(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if scratch.PlayerID == "" {
		return nil, ErrNoPlayer
	}

	page := scratch.Page
	if page < 1 {
		page = 1
	}

	catalog, err := s.catalogRepo.ListQuestions(ctx, &catalogRepo.ListQuestionsInput{})
	if err != nil {
		return nil, err
	}

	total := len(catalog.Questions)
	pages := numPages(total, s.questionsPerPage, s.orphans)

	if page > pages {
		return &SubmitPageOutput{Finished: true}, nil
	}

	start, end := pageBounds(total, s.questionsPerPage, s.orphans, page)
	pageQuestions := catalog.Questions[start:end]

	// Validate the whole page before persisting anything.
	var invalid []string
	selections := make(map[string]*models.Option, len(pageQuestions))
	for _, question := range pageQuestions {
		optionID := input.Selections[question.ID]
		if optionID == "" {
			invalid = append(invalid, question.ID)
			continue
		}
		option, err := s.catalogRepo.GetOption(ctx, &catalogRepo.GetOptionInput{OptionID: optionID})
		if err != nil {
			if errors.Is(err, catalogRepo.ErrOptionNotFound) {
				invalid = append(invalid, question.ID)
				continue
			}
			return nil, err
		}
		if option.QuestionID != question.ID {
			invalid = append(invalid, question.ID)
			continue
		}
		selections[question.ID] = option
	}

	if len(invalid) > 0 {
		return &SubmitPageOutput{InvalidQuestionIDs: invalid}, nil
	}

	for _, question := range pageQuestions {
		if err := s.answerRepo.SaveAnswer(ctx, &answerRepo.SaveAnswerInput{
			Answer: &models.Answer{
				PlayerID:   scratch.PlayerID,
				QuestionID: question.ID,
				OptionID:   selections[question.ID].ID,
			},
		}); err != nil {
			return nil, err
		}
	}

	scratch.Page = page + 1
	finished := page == pages

	if err := s.saveScratch(ctx, input.SessionID, scratch); err != nil {
		return nil, err
	}

	if finished {
		if err := s.captureQuestionnaireTime(ctx, scratch); err != nil {
			return nil, err
		}
	}

	return &SubmitPageOutput{Finished: finished}, nil
}

// captureQuestionnaireTime writes the questionnaire duration once
func (s *service) captureQuestionnaireTime(ctx context.Context, scratch *models.Scratch) error {
	if scratch.QuestionnaireStartedAt.IsZero() {
		return nil
	}

	player, err := s.playerRepo.GetPlayer(ctx, &playerRepo.GetPlayerInput{PlayerID: scratch.PlayerID})
	if err != nil {
		return err
	}

	if player.QuestionnaireTimeMs != 0 {
		return nil
	}

	player.QuestionnaireTimeMs = s.clock.Now().Sub(scratch.QuestionnaireStartedAt).Round(time.Millisecond).Milliseconds()

	return s.playerRepo.SavePlayer(ctx, &playerRepo.SavePlayerInput{Player: player})
}

func (s *service) getScratch(ctx context.Context, sessionID string) (*models.Scratch, error) {
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
