package entities

import (
	"fmt"
	"time"
)

// RollHistoryCapacity is the number of rolls kept per session
const RollHistoryCapacity = 10

// DiceRollResult is the outcome of one 3d6 roll: two blue dice summed with
// the bonus and a red stunt die
type DiceRollResult struct {
	RollID      string    `json:"roll_id"`
	BlueDice    [2]int    `json:"blue_dice"`
	RedDie      int       `json:"red_die"`
	Bonus       int       `json:"bonus"`
	Total       int       `json:"total"`
	Target      *int      `json:"target"`
	Success     *bool     `json:"success"`
	HasDoubles  bool      `json:"has_doubles"`
	StuntPoints int       `json:"stunt_points"`
	Display     string    `json:"display"`
	RolledAt    time.Time `json:"rolled_at"`
}

// Describe renders the roll as "[b1, b2] [r] + bonus = total"
func (r *DiceRollResult) Describe() string {
	sign, bonus := "+", r.Bonus
	if bonus < 0 {
		sign, bonus = "-", -bonus
	}
	return fmt.Sprintf("[%d, %d] [%d] %s %d = %d",
		r.BlueDice[0], r.BlueDice[1], r.RedDie, sign, bonus, r.Total)
}

// RollHistory is a bounded most-recent-first list of rolls. The zero value
// is not usable; create one with NewRollHistory.
type RollHistory struct {
	capacity int
	rolls    []*DiceRollResult
}

// NewRollHistory creates a history holding at most capacity rolls
func NewRollHistory(capacity int) *RollHistory {
	if capacity <= 0 {
		capacity = RollHistoryCapacity
	}
	return &RollHistory{
		capacity: capacity,
		rolls:    make([]*DiceRollResult, 0, capacity),
	}
}

// Push records a roll as the most recent, evicting the oldest when full
func (h *RollHistory) Push(roll *DiceRollResult) {
	if len(h.rolls) == h.capacity {
		h.rolls = h.rolls[:h.capacity-1]
	}
	h.rolls = append(h.rolls, nil)
	copy(h.rolls[1:], h.rolls)
	h.rolls[0] = roll
}

// Rolls returns the rolls, most recent first
func (h *RollHistory) Rolls() []*DiceRollResult {
	out := make([]*DiceRollResult, len(h.rolls))
	copy(out, h.rolls)
	return out
}

// Len returns the number of rolls held
func (h *RollHistory) Len() int {
	return len(h.rolls)
}

// Clear empties the history and returns how many rolls were dropped
func (h *RollHistory) Clear() int {
	n := len(h.rolls)
	h.rolls = h.rolls[:0]
	return n
}
