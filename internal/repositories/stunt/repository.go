// Package stunt provides the interface for stunt catalog persistence
package stunt

//go:generate mockgen -destination=mock/mock_repository.go -package=stuntrepomock github.com/KirkDiggler/age-toolbox/internal/repositories/stunt Repository

import (
	"context"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
)

// Repository defines the interface for stunt persistence
type Repository interface {
	// List returns every stunt ordered by ID
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Get retrieves a stunt by ID
	// Returns errors.InvalidArgument for non-positive IDs
	// Returns errors.NotFound if the stunt doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Create stores a new stunt and assigns its ID. Any ID on the input is ignored.
	// Returns errors.InvalidArgument for a nil stunt
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Update replaces an existing stunt, keyed by Stunt.ID
	// Returns errors.NotFound if the stunt doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a stunt by ID
	// Returns errors.NotFound if the stunt doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// Count returns the number of stored stunts
	Count(ctx context.Context, input CountInput) (*CountOutput, error)
}

// ListInput defines the input for listing stunts
type ListInput struct{}

// ListOutput defines the output for listing stunts
type ListOutput struct {
	Stunts []*entities.Stunt
}

// GetInput defines the input for getting a stunt
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a stunt
type GetOutput struct {
	Stunt *entities.Stunt
}

// CreateInput defines the input for creating a stunt
type CreateInput struct {
	Stunt *entities.Stunt
}

// CreateOutput defines the output for creating a stunt
type CreateOutput struct {
	Stunt *entities.Stunt
}

// UpdateInput defines the input for updating a stunt
type UpdateInput struct {
	Stunt *entities.Stunt
}

// UpdateOutput defines the output for updating a stunt
type UpdateOutput struct {
	Stunt *entities.Stunt
}

// DeleteInput defines the input for deleting a stunt
type DeleteInput struct {
	ID int64
}

// DeleteOutput defines the output for deleting a stunt
type DeleteOutput struct{}

// CountInput defines the input for counting stunts
type CountInput struct{}

// CountOutput defines the output for counting stunts
type CountOutput struct {
	Count int64
}

const (
	// Error messages
	errStuntNil  = "stunt cannot be nil"
	errIDInvalid = "stunt ID must be positive"
	errNotFound  = "stunt with ID %d not found"
)

func validateID(id int64) error {
	if id <= 0 {
		return errors.InvalidArgument(errIDInvalid)
	}
	return nil
}

func notFound(id int64) error {
	return errors.NotFoundf(errNotFound, id).WithMeta("stunt_id", id)
}
