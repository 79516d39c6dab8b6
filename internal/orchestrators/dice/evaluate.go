package dice

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
)

const (
	// DieSize is the number of faces on every AGE die
	DieSize = 6

	blueDiceCount = 2
)

// Evaluate draws two blue dice and the red stunt die from roller and scores
// them against bonus and the optional target.
func Evaluate(roller dice.Roller, bonus int, target *int) (*entities.DiceRollResult, error) {
	if roller == nil {
		return nil, errors.Internal("dice roller is required")
	}

	blue, err := roller.RollN(blueDiceCount, DieSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll blue dice")
	}
	if len(blue) != blueDiceCount {
		return nil, errors.Internalf("expected %d blue dice, got %d", blueDiceCount, len(blue))
	}

	red, err := roller.Roll(DieSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll stunt die")
	}

	return Score([2]int{blue[0], blue[1]}, red, bonus, target), nil
}

// Score computes the outcome of already drawn dice. Stunt points equal the
// red die when the blue pair are doubles and the roll did not fail a target.
func Score(blue [2]int, red, bonus int, target *int) *entities.DiceRollResult {
	result := &entities.DiceRollResult{
		BlueDice:   blue,
		RedDie:     red,
		Bonus:      bonus,
		Total:      blue[0] + blue[1] + bonus,
		HasDoubles: blue[0] == blue[1],
	}

	earned := result.HasDoubles
	if target != nil {
		t := *target
		success := result.Total >= t
		result.Target = &t
		result.Success = &success
		earned = earned && success
	}

	if earned {
		result.StuntPoints = red
	}
	result.Display = result.Describe()

	return result
}
