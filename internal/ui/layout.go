package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/problem-catalog/internal/theme"
)

// minPanelWidth keeps the tag panel usable on narrow terminals.
const minPanelWidth = 30

// Layout manages the two-pane terminal layout: the problem list on the
// left and the tag panel on the right.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// PanelWidth returns the width of the tag panel: two fifths of the
// screen, never narrower than minPanelWidth.
func (l Layout) PanelWidth() int {
	w := l.Width * 2 / 5
	if w < minPanelWidth {
		w = min(minPanelWidth, l.Width)
	}
	return w
}

// ListWidth returns the width left for the problem list.
func (l Layout) ListWidth() int {
	return max(l.Width-l.PanelWidth(), 0)
}

// RenderHeader renders the top header bar with a title and the current
// binding summary.
func (l Layout) RenderHeader(title string, scope string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	scopeRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(scope)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(scopeRendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		scopeRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderPanes places the problem list and tag panel side by side.
func (l Layout) RenderPanes(list, panel string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, list, panel)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
