package rollhistory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	rollhistory "github.com/KirkDiggler/age-toolbox/internal/repositories/roll_history"
	"github.com/KirkDiggler/age-toolbox/internal/testutils"
)

const testSessionID = "table_1"

func newRoll(id string, blue1, blue2, red int) *entities.DiceRollResult {
	roll := &entities.DiceRollResult{
		RollID:   id,
		BlueDice: [2]int{blue1, blue2},
		RedDie:   red,
		Total:    blue1 + blue2,
		RolledAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	roll.HasDoubles = blue1 == blue2
	roll.Display = roll.Describe()
	return roll
}

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr   *miniredis.Miniredis
	repo rollhistory.Repository
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	repo, err := rollhistory.NewRedis(&rollhistory.RedisConfig{
		Client: client,
		TTL:    time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TestNewRedisRequiresClient() {
	_, err := rollhistory.NewRedis(&rollhistory.RedisConfig{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = rollhistory.NewRedis(nil)
	s.Require().Error(err)
}

func (s *RedisRepositoryTestSuite) TestAppendMostRecentFirst() {
	_, err := s.repo.Append(s.ctx, rollhistory.AppendInput{SessionID: testSessionID, Roll: newRoll("roll_1", 1, 2, 3)})
	s.Require().NoError(err)

	output, err := s.repo.Append(s.ctx, rollhistory.AppendInput{SessionID: testSessionID, Roll: newRoll("roll_2", 4, 4, 6)})
	s.Require().NoError(err)
	s.Require().Len(output.Rolls, 2)
	s.Equal("roll_2", output.Rolls[0].RollID)
	s.Equal("roll_1", output.Rolls[1].RollID)
	s.True(output.Rolls[0].HasDoubles)
	s.Equal([2]int{4, 4}, output.Rolls[0].BlueDice)

	s.True(s.mr.Exists("roll_history:" + testSessionID))
	s.Equal(time.Hour, s.mr.TTL("roll_history:"+testSessionID))
}

func (s *RedisRepositoryTestSuite) TestAppendEvictsPastCapacity() {
	for i := 1; i <= entities.RollHistoryCapacity+3; i++ {
		_, err := s.repo.Append(s.ctx, rollhistory.AppendInput{
			SessionID: testSessionID,
			Roll:      newRoll(fmt.Sprintf("roll_%d", i), 1, 2, 3),
		})
		s.Require().NoError(err)
	}

	output, err := s.repo.List(s.ctx, rollhistory.ListInput{SessionID: testSessionID})
	s.Require().NoError(err)
	s.Require().Len(output.Rolls, entities.RollHistoryCapacity)
	s.Equal("roll_13", output.Rolls[0].RollID)
	s.Equal("roll_4", output.Rolls[entities.RollHistoryCapacity-1].RollID)
}

func (s *RedisRepositoryTestSuite) TestSessionsAreIsolated() {
	_, err := s.repo.Append(s.ctx, rollhistory.AppendInput{SessionID: "a", Roll: newRoll("roll_a", 1, 2, 3)})
	s.Require().NoError(err)

	output, err := s.repo.List(s.ctx, rollhistory.ListInput{SessionID: "b"})
	s.Require().NoError(err)
	s.Empty(output.Rolls)
}

func (s *RedisRepositoryTestSuite) TestClear() {
	s.Run("clears existing history", func() {
		for i := 0; i < 3; i++ {
			_, err := s.repo.Append(s.ctx, rollhistory.AppendInput{SessionID: testSessionID, Roll: newRoll("roll", 1, 2, 3)})
			s.Require().NoError(err)
		}

		output, err := s.repo.Clear(s.ctx, rollhistory.ClearInput{SessionID: testSessionID})
		s.Require().NoError(err)
		s.Equal(int32(3), output.RollsCleared)

		list, err := s.repo.List(s.ctx, rollhistory.ListInput{SessionID: testSessionID})
		s.Require().NoError(err)
		s.Empty(list.Rolls)
	})

	s.Run("clearing an empty session is not an error", func() {
		output, err := s.repo.Clear(s.ctx, rollhistory.ClearInput{SessionID: "nobody"})
		s.Require().NoError(err)
		s.Equal(int32(0), output.RollsCleared)
	})
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	_, err := s.repo.Append(s.ctx, rollhistory.AppendInput{Roll: newRoll("roll", 1, 2, 3)})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Append(s.ctx, rollhistory.AppendInput{SessionID: testSessionID})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.List(s.ctx, rollhistory.ListInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Clear(s.ctx, rollhistory.ClearInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestCorruptEntry() {
	s.mr.Lpush("roll_history:"+testSessionID, "{not json")

	_, err := s.repo.List(s.ctx, rollhistory.ListInput{SessionID: testSessionID})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
