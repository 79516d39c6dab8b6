// Package rollhistory provides repository interface and types for per-session roll history
package rollhistory

import (
	"context"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/KirkDiggler/age-toolbox/internal/repositories/roll_history Repository

// AppendInput contains parameters for recording a roll
type AppendInput struct {
	SessionID string
	Roll      *entities.DiceRollResult
}

// AppendOutput contains the session history after the append
type AppendOutput struct {
	Rolls []*entities.DiceRollResult
}

// ListInput contains parameters for reading a session history
type ListInput struct {
	SessionID string
}

// ListOutput contains the rolls, most recent first
type ListOutput struct {
	Rolls []*entities.DiceRollResult
}

// ClearInput contains parameters for clearing a session history
type ClearInput struct {
	SessionID string
}

// ClearOutput contains the result of clearing a session history
type ClearOutput struct {
	RollsCleared int32
}

// Repository stores the last entities.RollHistoryCapacity rolls per session
type Repository interface {
	// Append records a roll as the most recent, evicting the oldest past capacity
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	// List returns the session rolls, most recent first. An unknown session is empty.
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Clear removes every roll of the session
	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}
