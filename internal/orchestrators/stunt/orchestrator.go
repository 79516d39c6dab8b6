// Package stunt implements the stunt catalog orchestrator: filtered listing,
// facets and validated CRUD over the stunt repository
package stunt

//go:generate mockgen -destination=mock/mock_service.go -package=stuntmock github.com/KirkDiggler/age-toolbox/internal/orchestrators/stunt Service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	stuntrepo "github.com/KirkDiggler/age-toolbox/internal/repositories/stunt"
)

const (
	maxNameLength        = 200
	maxCategoryLength    = 100
	maxSettingLength     = 100
	maxCostLength        = 20
	maxDescriptionLength = 5000
)

// Service defines the interface for stunt catalog operations
type Service interface {
	ListStunts(ctx context.Context, input *ListStuntsInput) (*ListStuntsOutput, error)
	GetStunt(ctx context.Context, input *GetStuntInput) (*GetStuntOutput, error)
	CreateStunt(ctx context.Context, input *CreateStuntInput) (*CreateStuntOutput, error)
	UpdateStunt(ctx context.Context, input *UpdateStuntInput) (*UpdateStuntOutput, error)
	DeleteStunt(ctx context.Context, input *DeleteStuntInput) (*DeleteStuntOutput, error)
	GetFacets(ctx context.Context, input *GetFacetsInput) (*GetFacetsOutput, error)
	CountStunts(ctx context.Context, input *CountStuntsInput) (*CountStuntsOutput, error)
}

// Config holds the dependencies for the stunt orchestrator
type Config struct {
	StuntRepo stuntrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.StuntRepo == nil {
		vb.RequiredField("StuntRepo")
	}

	return vb.Build()
}

type orchestrator struct {
	stuntRepo stuntrepo.Repository
}

// NewOrchestrator creates a new stunt orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		stuntRepo: cfg.StuntRepo,
	}, nil
}

// ListStunts filters the full catalog by the input criteria
func (o *orchestrator) ListStunts(ctx context.Context, input *ListStuntsInput) (*ListStuntsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	listOutput, err := o.stuntRepo.List(ctx, stuntrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stunts")
	}

	return &ListStuntsOutput{
		Stunts: Filter(listOutput.Stunts, input.Criteria),
		Total:  len(listOutput.Stunts),
	}, nil
}

// CountStunts reports the catalog size without loading it
func (o *orchestrator) CountStunts(ctx context.Context, input *CountStuntsInput) (*CountStuntsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	countOutput, err := o.stuntRepo.Count(ctx, stuntrepo.CountInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stunts")
	}

	return &CountStuntsOutput{Count: countOutput.Count}, nil
}

func (o *orchestrator) GetStunt(ctx context.Context, input *GetStuntInput) (*GetStuntOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.stuntRepo.Get(ctx, stuntrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stunt %d", input.ID)
	}

	return &GetStuntOutput{Stunt: getOutput.Stunt}, nil
}

// CreateStunt validates and stores a new stunt
func (o *orchestrator) CreateStunt(ctx context.Context, input *CreateStuntInput) (*CreateStuntOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	stunt := normalize(&entities.Stunt{
		Name:        input.Name,
		Cost:        input.Cost,
		Category:    input.Category,
		Description: input.Description,
		Setting:     input.Setting,
	})

	if err := validateStunt(stunt); err != nil {
		return nil, err
	}

	createOutput, err := o.stuntRepo.Create(ctx, stuntrepo.CreateInput{Stunt: stunt})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stunt")
	}

	slog.Info("Stunt created",
		"stunt_id", createOutput.Stunt.ID,
		"name", createOutput.Stunt.Name,
		"category", createOutput.Stunt.Category)

	return &CreateStuntOutput{Stunt: createOutput.Stunt}, nil
}

// UpdateStunt merges the provided fields into the stored stunt and
// re-validates the result
func (o *orchestrator) UpdateStunt(ctx context.Context, input *UpdateStuntInput) (*UpdateStuntOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	getOutput, err := o.stuntRepo.Get(ctx, stuntrepo.GetInput{ID: input.ID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stunt %d", input.ID)
	}

	stunt := getOutput.Stunt.Clone()
	if input.Name != nil {
		stunt.Name = *input.Name
	}
	if input.Cost != nil {
		stunt.Cost = *input.Cost
	}
	if input.Category != nil {
		stunt.Category = *input.Category
	}
	if input.Description != nil {
		stunt.Description = *input.Description
	}
	if input.Setting != nil {
		stunt.Setting = input.Setting
	}
	stunt = normalize(stunt)

	if err := validateStunt(stunt); err != nil {
		return nil, err
	}

	updateOutput, err := o.stuntRepo.Update(ctx, stuntrepo.UpdateInput{Stunt: stunt})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update stunt %d", input.ID)
	}

	slog.Info("Stunt updated",
		"stunt_id", updateOutput.Stunt.ID,
		"name", updateOutput.Stunt.Name)

	return &UpdateStuntOutput{Stunt: updateOutput.Stunt}, nil
}

func (o *orchestrator) DeleteStunt(ctx context.Context, input *DeleteStuntInput) (*DeleteStuntOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if _, err := o.stuntRepo.Delete(ctx, stuntrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete stunt %d", input.ID)
	}

	slog.Info("Stunt deleted", "stunt_id", input.ID)

	return &DeleteStuntOutput{}, nil
}

// GetFacets derives the category and setting choices from the full catalog
func (o *orchestrator) GetFacets(ctx context.Context, _ *GetFacetsInput) (*GetFacetsOutput, error) {
	listOutput, err := o.stuntRepo.List(ctx, stuntrepo.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stunts")
	}

	return &GetFacetsOutput{
		Categories: UniqueCategories(listOutput.Stunts),
		Settings:   UniqueSettings(listOutput.Stunts),
	}, nil
}

func normalize(stunt *entities.Stunt) *entities.Stunt {
	stunt.Name = strings.TrimSpace(stunt.Name)
	stunt.Cost = entities.Cost(strings.TrimSpace(stunt.Cost.String()))
	stunt.Category = strings.TrimSpace(stunt.Category)
	stunt.Description = strings.TrimSpace(stunt.Description)
	stunt.Setting = entities.NormalizeSetting(stunt.Setting)
	return stunt
}

func validateStunt(stunt *entities.Stunt) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", stunt.Name, vb)
	errors.ValidateRequired("cost", stunt.Cost.String(), vb)
	errors.ValidateRequired("category", stunt.Category, vb)
	errors.ValidateRequired("description", stunt.Description, vb)

	errors.ValidateMaxLength("name", stunt.Name, maxNameLength, vb)
	errors.ValidateMaxLength("cost", stunt.Cost.String(), maxCostLength, vb)
	errors.ValidateMaxLength("category", stunt.Category, maxCategoryLength, vb)
	errors.ValidateMaxLength("description", stunt.Description, maxDescriptionLength, vb)
	if stunt.Setting != nil {
		errors.ValidateMaxLength("setting", *stunt.Setting, maxSettingLength, vb)
	}

	return vb.Build()
}
