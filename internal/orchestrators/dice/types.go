package dice

import (
	"github.com/KirkDiggler/age-toolbox/internal/entities"
)

// DefaultSessionID is used when a caller does not name a session
const DefaultSessionID = "default"

// RollDiceInput defines the request for rolling dice
type RollDiceInput struct {
	SessionID string
	Bonus     int
	Target    *int
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Roll    *entities.DiceRollResult
	History []*entities.DiceRollResult
}

// GetHistoryInput defines the request for reading a roll history
type GetHistoryInput struct {
	SessionID string
}

// GetHistoryOutput defines the response for reading a roll history
type GetHistoryOutput struct {
	Rolls []*entities.DiceRollResult
}

// ClearHistoryInput defines the request for clearing a roll history
type ClearHistoryInput struct {
	SessionID string
}

// ClearHistoryOutput defines the response for clearing a roll history
type ClearHistoryOutput struct {
	RollsCleared int32
}
