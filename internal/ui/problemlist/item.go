package problemlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/theme"
)

// ProblemItem wraps a model.Problem so it can be used in a bubbles/list.
type ProblemItem struct {
	Problem model.Problem
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProblemItem) FilterValue() string { return i.Problem.Title }

// Title returns the problem title for the list.
func (i ProblemItem) Title() string { return i.Problem.Title }

// Description returns a short summary line for the list.
func (i ProblemItem) Description() string {
	var parts []string
	if i.Problem.Difficulty > 0 {
		parts = append(parts, fmt.Sprintf("rated %d", i.Problem.Difficulty))
	}
	if i.Problem.NoOfAttempts > 0 {
		parts = append(parts, attemptsLabel(i.Problem.NoOfAttempts))
	}
	if i.Problem.TimeTaken > 0 {
		parts = append(parts, fmt.Sprintf("%d min", i.Problem.TimeTaken))
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering problem rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single problem line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProblemItem)
	if !ok {
		return
	}
	p := pi.Problem

	id := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("#%-4d", p.ID))

	rating := theme.DifficultyStyle(p.Difficulty).Render(difficultyLabel(p.Difficulty))

	details := ""
	if desc := pi.Description(); desc != "" {
		details = theme.DimmedStyle.Render("  " + desc)
	}

	line := fmt.Sprintf("%s %s %s%s", id, rating, p.Title, details)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// difficultyLabel returns a fixed-width rating badge.
func difficultyLabel(d int) string {
	if d <= 0 {
		return "  ? "
	}
	return fmt.Sprintf("%4d", d)
}

func attemptsLabel(n int) string {
	if n == 1 {
		return "1 attempt"
	}
	return fmt.Sprintf("%d attempts", n)
}
