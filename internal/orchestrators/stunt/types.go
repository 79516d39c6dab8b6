package stunt

import (
	"github.com/KirkDiggler/age-toolbox/internal/entities"
)

// ListStuntsInput defines the request for listing stunts
type ListStuntsInput struct {
	Criteria Criteria
}

// ListStuntsOutput defines the response for listing stunts
type ListStuntsOutput struct {
	Stunts []*entities.Stunt
	// Total is the catalog size before filtering
	Total int
}

// GetStuntInput defines the request for getting a stunt
type GetStuntInput struct {
	ID int64
}

// GetStuntOutput defines the response for getting a stunt
type GetStuntOutput struct {
	Stunt *entities.Stunt
}

// CreateStuntInput defines the request for creating a stunt
type CreateStuntInput struct {
	Name        string
	Cost        entities.Cost
	Category    string
	Description string
	// Setting is optional; nil, blank and "Universal" all mean Universal
	Setting *string
}

// CreateStuntOutput defines the response for creating a stunt
type CreateStuntOutput struct {
	Stunt *entities.Stunt
}

// UpdateStuntInput defines a partial update. Nil fields are left unchanged;
// a Setting of "" or "Universal" clears the setting.
type UpdateStuntInput struct {
	ID          int64
	Name        *string
	Cost        *entities.Cost
	Category    *string
	Description *string
	Setting     *string
}

// UpdateStuntOutput defines the response for updating a stunt
type UpdateStuntOutput struct {
	Stunt *entities.Stunt
}

// DeleteStuntInput defines the request for deleting a stunt
type DeleteStuntInput struct {
	ID int64
}

// DeleteStuntOutput defines the response for deleting a stunt
type DeleteStuntOutput struct{}

// GetFacetsInput defines the request for the filter facets
type GetFacetsInput struct{}

// GetFacetsOutput holds the distinct values available to filter on
type GetFacetsOutput struct {
	Categories []string
	Settings   []string
}

// CountStuntsInput defines the input for counting the catalog
type CountStuntsInput struct{}

// CountStuntsOutput defines the output for counting the catalog
type CountStuntsOutput struct {
	Count int64
}
