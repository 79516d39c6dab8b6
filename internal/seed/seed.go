// Package seed loads an initial stunt catalog from a TOML file into an empty store
package seed

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	"github.com/KirkDiggler/age-toolbox/internal/orchestrators/stunt"
)

// File is the TOML catalog layout:
//
//	[[stunt]]
//	name = "Skirmish"
//	cost = 1
//	category = "Combat"
//	description = "Move yourself or your target 2 yards."
//	setting = "Gritty" # optional
type File struct {
	Stunts []Entry `toml:"stunt"`
}

// Entry is one catalog stunt. Cost may be an integer or a string.
type Entry struct {
	Name        string `toml:"name"`
	Cost        any    `toml:"cost"`
	Category    string `toml:"category"`
	Description string `toml:"description"`
	Setting     string `toml:"setting"`
}

// Decode parses a TOML catalog
func Decode(r io.Reader) (*File, error) {
	var file File
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode stunt catalog")
	}

	for i, entry := range file.Stunts {
		if _, err := entry.cost(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid stunt catalog").
				WithMeta("entry", i).
				WithMeta("name", entry.Name)
		}
	}

	return &file, nil
}

// LoadFile reads and parses the catalog at path
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("stunt catalog %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to open stunt catalog %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	return Decode(f)
}

func (e Entry) cost() (entities.Cost, error) {
	switch v := e.Cost.(type) {
	case int64:
		return entities.Cost(strconv.FormatInt(v, 10)), nil
	case string:
		return entities.Cost(strings.TrimSpace(v)), nil
	case nil:
		return "", nil
	default:
		return "", errors.InvalidArgumentf("cost must be an integer or a string, got %T", v)
	}
}

// Input converts the entry to a create request
func (e Entry) Input() (*stunt.CreateStuntInput, error) {
	cost, err := e.cost()
	if err != nil {
		return nil, err
	}

	input := &stunt.CreateStuntInput{
		Name:        e.Name,
		Cost:        cost,
		Category:    e.Category,
		Description: e.Description,
	}
	if e.Setting != "" {
		setting := e.Setting
		input.Setting = &setting
	}
	return input, nil
}

// Result reports what a seed run did
type Result struct {
	Created int
	Skipped bool
}

// Run creates every catalog stunt through svc when the catalog is empty.
// A store that already holds stunts is left untouched.
func Run(ctx context.Context, svc stunt.Service, file *File) (*Result, error) {
	if svc == nil {
		return nil, errors.InvalidArgument("stunt service is required")
	}
	if file == nil {
		return nil, errors.InvalidArgument("catalog is required")
	}

	existing, err := svc.CountStunts(ctx, &stunt.CountStuntsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing stunts")
	}
	if existing.Count > 0 {
		slog.Info("Stunt store not empty, skipping seed", "existing", existing.Count)
		return &Result{Skipped: true}, nil
	}

	result := &Result{}
	for i, entry := range file.Stunts {
		input, err := entry.Input()
		if err != nil {
			return result, errors.Wrapf(err, "invalid catalog entry %d", i)
		}

		if _, err := svc.CreateStunt(ctx, input); err != nil {
			return result, errors.Wrapf(err, "failed to seed stunt %q", entry.Name)
		}
		result.Created++
	}

	slog.Info("Stunt catalog seeded", "created", result.Created)

	return result, nil
}
