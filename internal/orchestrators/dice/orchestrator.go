// Package dice implements the dice orchestrator for AGE rolls and per-session history
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/age-toolbox/internal/orchestrators/dice Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/pkg/clock"
	"github.com/KirkDiggler/age-toolbox/internal/pkg/idgen"
	rollhistory "github.com/KirkDiggler/age-toolbox/internal/repositories/roll_history"
)

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)
	ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Roller      dice.Roller
	HistoryRepo rollhistory.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.HistoryRepo == nil {
		vb.RequiredField("HistoryRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	roller      dice.Roller
	historyRepo rollhistory.Repository
	idGen       idgen.Generator
	clock       clock.Clock
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller:      cfg.Roller,
		historyRepo: cfg.HistoryRepo,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
	}, nil
}

func sessionOrDefault(sessionID string) string {
	if sessionID == "" {
		return DefaultSessionID
	}
	return sessionID
}

// RollDice rolls the three AGE dice and records the result in the session history
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sessionID := sessionOrDefault(input.SessionID)

	roll, err := Evaluate(o.roller, input.Bonus, input.Target)
	if err != nil {
		slog.Error("Failed to roll dice", "session_id", sessionID, "error", err)
		return nil, err
	}

	roll.RollID = o.idGen.Generate()
	roll.RolledAt = o.clock.Now()

	appendOutput, err := o.historyRepo.Append(ctx, rollhistory.AppendInput{
		SessionID: sessionID,
		Roll:      roll,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to record roll for session %s", sessionID)
	}

	slog.Info("Dice rolled",
		"roll_id", roll.RollID,
		"session_id", sessionID,
		"display", roll.Display,
		"stunt_points", roll.StuntPoints)

	return &RollDiceOutput{
		Roll:    roll,
		History: appendOutput.Rolls,
	}, nil
}

// GetHistory returns the session rolls, most recent first
func (o *orchestrator) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sessionID := sessionOrDefault(input.SessionID)

	listOutput, err := o.historyRepo.List(ctx, rollhistory.ListInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get roll history for session %s", sessionID)
	}

	return &GetHistoryOutput{Rolls: listOutput.Rolls}, nil
}

// ClearHistory removes every roll recorded for the session
func (o *orchestrator) ClearHistory(ctx context.Context, input *ClearHistoryInput) (*ClearHistoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sessionID := sessionOrDefault(input.SessionID)

	clearOutput, err := o.historyRepo.Clear(ctx, rollhistory.ClearInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clear roll history for session %s", sessionID)
	}

	slog.Info("Roll history cleared",
		"session_id", sessionID,
		"rolls_cleared", clearOutput.RollsCleared)

	return &ClearHistoryOutput{RollsCleared: clearOutput.RollsCleared}, nil
}
