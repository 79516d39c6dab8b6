package stunt

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
)

// Criteria selects stunts. Each unset field leaves its predicate inactive:
// a nil CostCeiling, empty Categories or Settings, or an empty Search.
// Search is matched as given, whitespace included.
type Criteria struct {
	CostCeiling *int
	Categories  []string
	Settings    []string
	Search      string
}

// IsEmpty reports whether no criterion is active
func (c Criteria) IsEmpty() bool {
	for _, p := range c.predicates() {
		if p.active {
			return false
		}
	}
	return true
}

type predicate struct {
	active bool
	match  func(*entities.Stunt) bool
}

func (c Criteria) predicates() []predicate {
	search := strings.ToLower(c.Search)

	return []predicate{
		{
			active: c.CostCeiling != nil,
			match: func(s *entities.Stunt) bool {
				return costWithin(s.Cost, *c.CostCeiling)
			},
		},
		{
			active: len(c.Categories) > 0,
			match: func(s *entities.Stunt) bool {
				return contains(c.Categories, s.Category)
			},
		},
		{
			active: len(c.Settings) > 0,
			match: func(s *entities.Stunt) bool {
				return s.Setting != nil && contains(c.Settings, *s.Setting)
			},
		},
		{
			active: search != "",
			match: func(s *entities.Stunt) bool {
				return strings.Contains(strings.ToLower(s.Name), search) ||
					strings.Contains(strings.ToLower(s.Description), search)
			},
		},
	}
}

// Filter returns the records matching every active criterion, in their
// original order. Records are never modified.
func Filter(records []*entities.Stunt, criteria Criteria) []*entities.Stunt {
	var active []predicate
	for _, p := range criteria.predicates() {
		if p.active {
			active = append(active, p)
		}
	}

	out := make([]*entities.Stunt, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		if matchesAll(record, active) {
			out = append(out, record)
		}
	}
	return out
}

func matchesAll(record *entities.Stunt, predicates []predicate) bool {
	for _, p := range predicates {
		if !p.match(record) {
			return false
		}
	}
	return true
}

// MinCost parses the lowest attainable cost of a stunt: "2" gives 2, "2-4"
// gives 2 and "2+" gives 2. ok is false when the cost has none of those forms.
func MinCost(cost entities.Cost) (minCost int, ok bool) {
	text := strings.TrimSpace(cost.String())

	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}

	if lower, _, found := strings.Cut(text, "-"); found {
		if n, err := strconv.Atoi(strings.TrimSpace(lower)); err == nil {
			return n, true
		}
		return 0, false
	}

	if lower, found := strings.CutSuffix(text, "+"); found {
		if n, err := strconv.Atoi(strings.TrimSpace(lower)); err == nil {
			return n, true
		}
	}

	return 0, false
}

// costWithin includes costs it cannot parse
func costWithin(cost entities.Cost, ceiling int) bool {
	minCost, ok := MinCost(cost)
	if !ok {
		return true
	}
	return minCost <= ceiling
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// UniqueCategories returns the sorted distinct categories of records
func UniqueCategories(records []*entities.Stunt) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		if record == nil {
			continue
		}
		seen[record.Category] = struct{}{}
	}
	return sortedKeys(seen)
}

// UniqueSettings returns the sorted distinct settings of records. Universal
// stunts contribute nothing.
func UniqueSettings(records []*entities.Stunt) []string {
	seen := make(map[string]struct{})
	for _, record := range records {
		if record == nil || record.Setting == nil {
			continue
		}
		seen[*record.Setting] = struct{}{}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
