package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/orchestrators/dice"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	if c == nil || c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// DiceHandler serves the dice roller endpoints
type DiceHandler struct {
	diceService dice.Service
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
	}, nil
}

// RollDiceRequest is the body of POST /api/roll_dice
type RollDiceRequest struct {
	Bonus     int    `json:"bonus"`
	Target    *int   `json:"target"`
	SessionID string `json:"session_id"`
}

// HistoryResponse wraps a roll history
type HistoryResponse struct {
	Rolls []*entities.DiceRollResult `json:"rolls"`
}

// ClearHistoryResponse reports how many rolls were removed
type ClearHistoryResponse struct {
	RollsCleared int32 `json:"rolls_cleared"`
}

// RollDice handles POST /api/roll_dice. An empty body rolls with no bonus
// and no target.
func (h *DiceHandler) RollDice(c *gin.Context) {
	var req RollDiceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "invalid roll request: "+err.Error())
		return
	}

	output, err := h.diceService.RollDice(c.Request.Context(), &dice.RollDiceInput{
		SessionID: req.SessionID,
		Bonus:     req.Bonus,
		Target:    req.Target,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Roll)
}

// GetHistory handles GET /api/roll_history
func (h *DiceHandler) GetHistory(c *gin.Context) {
	output, err := h.diceService.GetHistory(c.Request.Context(), &dice.GetHistoryInput{
		SessionID: c.Query("session_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	rolls := output.Rolls
	if rolls == nil {
		rolls = []*entities.DiceRollResult{}
	}

	c.JSON(http.StatusOK, HistoryResponse{Rolls: rolls})
}

// ClearHistory handles DELETE /api/roll_history
func (h *DiceHandler) ClearHistory(c *gin.Context) {
	output, err := h.diceService.ClearHistory(c.Request.Context(), &dice.ClearHistoryInput{
		SessionID: c.Query("session_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ClearHistoryResponse{RollsCleared: output.RollsCleared})
}
