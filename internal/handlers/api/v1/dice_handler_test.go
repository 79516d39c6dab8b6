package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
	"github.com/KirkDiggler/age-toolbox/internal/orchestrators/dice"
)

func sampleRoll() *entities.DiceRollResult {
	target := 11
	success := false
	return &entities.DiceRollResult{
		RollID:     "roll_1",
		BlueDice:   [2]int{4, 4},
		RedDie:     6,
		Bonus:      2,
		Total:      10,
		Target:     &target,
		Success:    &success,
		HasDoubles: true,
		Display:    "[4, 4] [6] + 2 = 10",
		RolledAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerTestSuite) TestRollDice() {
	s.Run("passes bonus, target and session", func() {
		target := 11
		s.mockDice.EXPECT().
			RollDice(gomock.Any(), &dice.RollDiceInput{SessionID: "table_1", Bonus: 2, Target: &target}).
			Return(&dice.RollDiceOutput{Roll: sampleRoll()}, nil)

		rec := s.do(http.MethodPost, "/api/roll_dice", map[string]any{"bonus": 2, "target": 11, "session_id": "table_1"})
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal([]any{4.0, 4.0}, body["blue_dice"])
		s.Equal(6.0, body["red_die"])
		s.Equal(10.0, body["total"])
		s.Equal(false, body["success"])
		s.Equal(true, body["has_doubles"])
		s.Equal(0.0, body["stunt_points"])
		s.Equal("[4, 4] [6] + 2 = 10", body["display"])
	})

	s.Run("empty body rolls with defaults", func() {
		s.mockDice.EXPECT().
			RollDice(gomock.Any(), &dice.RollDiceInput{}).
			Return(&dice.RollDiceOutput{Roll: sampleRoll()}, nil)

		rec := s.do(http.MethodPost, "/api/roll_dice", nil)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("malformed body", func() {
		rec := s.do(http.MethodPost, "/api/roll_dice", `{"bonus":"lots"}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal("invalid_argument", s.decodeError(rec).Code)
	})

	s.Run("internal errors are hidden", func() {
		s.mockDice.EXPECT().
			RollDice(gomock.Any(), gomock.Any()).
			Return(nil, errors.Internal("redis exploded"))

		rec := s.do(http.MethodPost, "/api/roll_dice", map[string]any{"bonus": 0})
		s.Equal(http.StatusInternalServerError, rec.Code)
		resp := s.decodeError(rec)
		s.Equal("internal server error", resp.Error)
		s.NotEmpty(resp.RequestID)
	})
}

func (s *HandlerTestSuite) TestRollHistory() {
	s.mockDice.EXPECT().
		GetHistory(gomock.Any(), &dice.GetHistoryInput{SessionID: "table_1"}).
		Return(&dice.GetHistoryOutput{Rolls: []*entities.DiceRollResult{sampleRoll()}}, nil)

	rec := s.do(http.MethodGet, "/api/roll_history?session_id=table_1", nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp v1.HistoryResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Rolls, 1)
	s.Equal("roll_1", resp.Rolls[0].RollID)

	s.mockDice.EXPECT().
		GetHistory(gomock.Any(), &dice.GetHistoryInput{}).
		Return(&dice.GetHistoryOutput{}, nil)

	rec = s.do(http.MethodGet, "/api/roll_history", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"rolls":[]}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestClearRollHistory() {
	s.mockDice.EXPECT().
		ClearHistory(gomock.Any(), &dice.ClearHistoryInput{SessionID: "table_1"}).
		DoAndReturn(func(_ context.Context, _ *dice.ClearHistoryInput) (*dice.ClearHistoryOutput, error) {
			return &dice.ClearHistoryOutput{RollsCleared: 3}, nil
		})

	rec := s.do(http.MethodDelete, "/api/roll_history?session_id=table_1", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"rolls_cleared":3}`, rec.Body.String())
}
