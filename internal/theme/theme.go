package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a side panel.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// FocusedPanelStyle marks the panel that receives keystrokes.
var FocusedPanelStyle = PanelStyle.
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle is used for secondary text.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TitleStyle renders a panel title.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	MarginBottom(1)

// ChipStyle renders an attached tag.
var ChipStyle = lipgloss.NewStyle().
	Foreground(ColorMagenta).
	Padding(0, 1)

// SelectedChipStyle renders the attached tag under the chip cursor.
var SelectedChipStyle = ChipStyle.
	Bold(true).
	Reverse(true)

// CandidateStyle renders a search candidate.
var CandidateStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedCandidateStyle renders the highlighted search candidate.
var SelectedCandidateStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorGreen).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorGreen)

// StatusStyle returns a color-coded style for a status message kind
// ("info", "hint" or "error").
func StatusStyle(kind string) lipgloss.Style {
	base := lipgloss.NewStyle().Italic(true)

	switch kind {
	case "error":
		return base.Foreground(ColorRed).Bold(true)
	case "hint":
		return base.Foreground(ColorGray)
	case "info":
		return base.Foreground(ColorYellow)
	default:
		return base.Foreground(ColorGray)
	}
}

// DifficultyStyle returns a color-coded style for a problem rating.
func DifficultyStyle(difficulty int) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch {
	case difficulty <= 0:
		return base.Foreground(ColorGray)
	case difficulty < 1200:
		return base.Foreground(ColorGreen)
	case difficulty < 1600:
		return base.Foreground(ColorBlue)
	case difficulty < 2000:
		return base.Foreground(ColorYellow)
	case difficulty < 2400:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorRed)
	}
}

// RemovableLabel returns a marker for fixed tags.
func RemovableLabel(removable bool) string {
	if removable {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorGray).Render("•")
}
