package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
)

var (
	blueDie    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("27")).Padding(0, 1)
	redDie     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1)
	success    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	failure    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	stuntBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")).Padding(0, 1)
	muted      = lipgloss.NewStyle().Faint(true)
	heading    = lipgloss.NewStyle().Bold(true).Underline(true)
	card       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
)

// renderRoll draws one roll: the two blue dice, the red stunt die, the total
// and the outcome badges
func renderRoll(r *entities.DiceRollResult) string {
	dice := lipgloss.JoinHorizontal(lipgloss.Center,
		blueDie.Render(fmt.Sprint(r.BlueDice[0])), " ",
		blueDie.Render(fmt.Sprint(r.BlueDice[1])), "  ",
		redDie.Render(fmt.Sprint(r.RedDie)),
	)

	parts := []string{dice, fmt.Sprintf("total %d", r.Total)}
	if r.Target != nil && r.Success != nil {
		if *r.Success {
			parts = append(parts, success.Render(fmt.Sprintf("SUCCESS vs %d", *r.Target)))
		} else {
			parts = append(parts, failure.Render(fmt.Sprintf("FAIL vs %d", *r.Target)))
		}
	}
	if r.StuntPoints > 0 {
		parts = append(parts, stuntBadge.Render(fmt.Sprintf("%d SP", r.StuntPoints)))
	} else if r.HasDoubles {
		parts = append(parts, muted.Render("doubles"))
	}

	return strings.Join(parts, "  ") + "\n" + muted.Render(r.Display)
}

func renderStunt(s *entities.Stunt) string {
	title := fmt.Sprintf("#%d %s", s.ID, s.Name)
	meta := fmt.Sprintf("%s SP · %s · %s", s.Cost, s.Category, s.SettingName())
	return card.Render(heading.Render(title) + "\n" + muted.Render(meta) + "\n" + s.Description)
}

func renderStuntRow(s *entities.Stunt) string {
	return fmt.Sprintf("%4d  %-28s %-6s %-12s %s", s.ID, s.Name, s.Cost, s.Category, s.SettingName())
}

// renderDetails lists validation details from an error response
func renderDetails(details any) string {
	fields, ok := details.(map[string]any)
	if !ok || len(fields) == 0 {
		return ""
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %v\n", name, fields[name])
	}
	return failure.Render("validation failed") + "\n" + b.String()
}
