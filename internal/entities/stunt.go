// Package entities provides core data structures for age-toolbox.
package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeStunt is the rpg-toolkit entity type reported by stunts
const EntityTypeStunt = "stunt"

// SettingUniversal is the display name for stunts without a setting
const SettingUniversal = "Universal"

// Stunt is a rule entry purchasable with stunt points
type Stunt struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Cost        Cost    `json:"cost"`
	Category    string  `json:"category"`
	Setting     *string `json:"setting"`
	Description string  `json:"description"`
}

var _ core.Entity = (*Stunt)(nil)

// GetID returns the stunt ID in its decimal form
func (s *Stunt) GetID() string {
	return strconv.FormatInt(s.ID, 10)
}

// GetType returns the entity type for rpg-toolkit
func (s *Stunt) GetType() string {
	return EntityTypeStunt
}

// IsUniversal reports whether the stunt applies to every setting
func (s *Stunt) IsUniversal() bool {
	return s.Setting == nil
}

// SettingName returns the setting, or SettingUniversal when unset
func (s *Stunt) SettingName() string {
	if s.Setting == nil {
		return SettingUniversal
	}
	return *s.Setting
}

// Clone returns a deep copy
func (s *Stunt) Clone() *Stunt {
	if s == nil {
		return nil
	}
	out := *s
	if s.Setting != nil {
		setting := *s.Setting
		out.Setting = &setting
	}
	return &out
}

// NormalizeSetting maps blank and "Universal" settings to nil
func NormalizeSetting(setting *string) *string {
	if setting == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*setting)
	if trimmed == "" || strings.EqualFold(trimmed, SettingUniversal) {
		return nil
	}
	return &trimmed
}

// Cost is the stunt point cost as written in the rules: "2", "1-3" or "2+".
// It decodes from a JSON number or string. Text that is exactly a canonical
// integer encodes as a number; anything else, "+3" or "007" included, stays
// a string.
type Cost string

// MarshalJSON implements json.Marshaler
func (c Cost) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(c)); err == nil && strconv.Itoa(n) == string(c) {
		return []byte(string(c)), nil
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON implements json.Unmarshaler
func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cost(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Cost(n.String())
	return nil
}

// String returns the cost text
func (c Cost) String() string {
	return string(c)
}
