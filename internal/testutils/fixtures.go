package testutils

import (
	"github.com/KirkDiggler/age-toolbox/internal/entities"
)

// Setting returns a pointer to the given setting name
func Setting(name string) *string {
	return &name
}

// Intp returns a pointer to n
func Intp(n int) *int {
	return &n
}

// CreateTestStunt creates a stunt with sensible defaults
func CreateTestStunt(id int64, name string, cost entities.Cost, category string, setting *string) *entities.Stunt {
	return &entities.Stunt{
		ID:          id,
		Name:        name,
		Cost:        cost,
		Category:    category,
		Setting:     setting,
		Description: name + " effect description.",
	}
}

// SampleCatalog returns a small catalog covering every cost form and setting
func SampleCatalog() []*entities.Stunt {
	return []*entities.Stunt{
		CreateTestStunt(1, "Skirmish", "1", "Combat", nil),
		CreateTestStunt(2, "Disarm", "2-4", "Combat", nil),
		CreateTestStunt(3, "Lightning Attack", "5+", "Combat", nil),
		CreateTestStunt(4, "Dirty Fighting", "2", "Combat", Setting("Gritty")),
		CreateTestStunt(5, "Swing on a Rope", "3", "Movement", Setting("Pulpy")),
		CreateTestStunt(6, "Flattery", "1-2", "Social", nil),
		CreateTestStunt(7, "Sudden Insight", "X", "Mental", Setting("Cinematic")),
	}
}
