package answer

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/vera24m/ultimatum-game/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetAnswer() {
	err := s.repo.SaveAnswer(context.Background(), &SaveAnswerInput{
		Answer: &models.Answer{
			PlayerID:   "player-1",
			QuestionID: "q_1",
			OptionID:   "q_1_o_3",
		},
	})
	s.Require().NoError(err)

	answer, err := s.repo.GetAnswer(context.Background(), &GetAnswerInput{
		PlayerID:   "player-1",
		QuestionID: "q_1",
	})
	s.Require().NoError(err)
	s.Require().NotNil(answer)

	s.Equal("player-1", answer.PlayerID)
	s.Equal("q_1", answer.QuestionID)
	s.Equal("q_1_o_3", answer.OptionID)
}

func (s *RedisRepositoryTestSuite) TestSaveAnswerOverwrites() {
	for _, optionID := range []string{"q_1_o_1", "q_1_o_5"} {
		err := s.repo.SaveAnswer(context.Background(), &SaveAnswerInput{
			Answer: &models.Answer{
				PlayerID:   "player-1",
				QuestionID: "q_1",
				OptionID:   optionID,
			},
		})
		s.Require().NoError(err)
	}

	answer, err := s.repo.GetAnswer(context.Background(), &GetAnswerInput{
		PlayerID:   "player-1",
		QuestionID: "q_1",
	})
	s.Require().NoError(err)
	s.Equal("q_1_o_5", answer.OptionID)

	// Still a single answer for the question.
	listed, err := s.repo.ListByPlayer(context.Background(), &ListByPlayerInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Len(listed.Answers, 1)
}

func (s *RedisRepositoryTestSuite) TestGetAnswerNotFound() {
	answer, err := s.repo.GetAnswer(context.Background(), &GetAnswerInput{
		PlayerID:   "player-1",
		QuestionID: "q_99",
	})

	s.Require().Error(err)
	s.ErrorIs(err, ErrAnswerNotFound)
	s.Nil(answer)
}

func (s *RedisRepositoryTestSuite) TestListByPlayer() {
	answers := []*models.Answer{
		{PlayerID: "player-1", QuestionID: "q_1", OptionID: "q_1_o_1"},
		{PlayerID: "player-1", QuestionID: "q_2", OptionID: "q_2_o_2"},
		{PlayerID: "player-2", QuestionID: "q_1", OptionID: "q_1_o_7"},
	}

	for _, answer := range answers {
		err := s.repo.SaveAnswer(context.Background(), &SaveAnswerInput{Answer: answer})
		s.Require().NoError(err)
	}

	listed, err := s.repo.ListByPlayer(context.Background(), &ListByPlayerInput{
		PlayerID: "player-1",
	})
	s.Require().NoError(err)
	s.Require().Len(listed.Answers, 2)

	questionIDs := []string{listed.Answers[0].QuestionID, listed.Answers[1].QuestionID}
	s.ElementsMatch([]string{"q_1", "q_2"}, questionIDs)
}

func (s *RedisRepositoryTestSuite) TestSaveAnswerRequiresIDs() {
	err := s.repo.SaveAnswer(context.Background(), &SaveAnswerInput{
		Answer: &models.Answer{
			PlayerID:   "player-1",
			QuestionID: "q_1",
		},
	})
	s.Error(err)
}
