package tagpanel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/problem-catalog/internal/keys"
	"github.com/nhle/problem-catalog/internal/search"
	"github.com/nhle/problem-catalog/internal/tagsync"
	"github.com/nhle/problem-catalog/internal/theme"
)

// maxCandidates caps how many search matches are drawn.
const maxCandidates = 8

// Controller is the tagsync surface the panel drives.
type Controller interface {
	Dispatch(ctx context.Context, ev tagsync.Event) error
	Snapshot() tagsync.Snapshot
}

// BlurMsg asks the parent to move focus back to the problem list.
type BlurMsg struct{}

// ResultMsg delivers a search engine result to the panel.
type ResultMsg struct {
	Result search.Result
}

type statusExpiredMsg struct {
	id uint64
}

// Model is the tag panel: attached tags, the search box and its
// candidate list, and the status line.
type Model struct {
	ctrl       Controller
	selection  tagsync.ProblemSource
	keys       *keys.KeyMap
	input      textinput.Model
	snap       tagsync.Snapshot
	chip       int
	lastStatus uint64
	focused    bool
	width      int
	height     int
}

// New creates a tag panel driving ctrl. selection is the problem list's
// highlighted row; tag actions are stamped with it so the controller can
// drop them when it is still bound to another problem.
func New(ctrl Controller, selection tagsync.ProblemSource, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "search or add a tag"
	ti.Prompt = "# "
	ti.ShowSuggestions = true
	ti.CharLimit = 64
	// Tab and the arrows belong to the candidate list.
	ti.KeyMap.AcceptSuggestion = key.NewBinding(key.WithKeys("ctrl+f"))
	ti.Width = width - 6

	m := Model{
		ctrl:      ctrl,
		selection: selection,
		keys:      k,
		input:     ti,
		width:     width,
		height:    height,
	}
	m.snap = ctrl.Snapshot()
	return m
}

// Focus gives keyboard focus to the search box.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the panel receives keystrokes.
func (m Model) Focused() bool {
	return m.focused
}

// Snapshot returns the controller state last rendered.
func (m Model) Snapshot() tagsync.Snapshot {
	return m.snap
}

// Dispatch sends ev to the controller and re-reads its state. Failures
// are already reflected in the status line.
func (m Model) Dispatch(ev tagsync.Event) (Model, tea.Cmd) {
	_ = m.ctrl.Dispatch(context.Background(), ev)
	return m.Sync()
}

// Sync re-reads the controller state. The returned command schedules
// the expiry of a newly shown status.
func (m Model) Sync() (Model, tea.Cmd) {
	m.snap = m.ctrl.Snapshot()

	if m.input.Value() != m.snap.SearchText {
		m.input.SetValue(m.snap.SearchText)
		m.input.CursorEnd()
	}
	m.input.SetSuggestions(m.snap.KnownNames)

	if m.chip >= len(m.snap.Tags) {
		m.chip = max(len(m.snap.Tags)-1, 0)
	}

	st := m.snap.Status
	if st.Empty() || st.ID == m.lastStatus {
		return m, nil
	}
	m.lastStatus = st.ID
	id := st.ID
	return m, tea.Tick(st.Timeout, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// Update handles messages for the tag panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		return m.Dispatch(tagsync.SearchResultReady{Result: msg.Result})

	case statusExpiredMsg:
		return m.Dispatch(tagsync.StatusExpired{ID: msg.id})

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// scope returns the problem the user is looking at in the list.
func (m Model) scope() int64 {
	if id, ok := m.selection.CurrentProblemID(); ok {
		return id
	}
	return tagsync.ScopeNone
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	scope := m.scope()

	switch {
	case key.Matches(msg, m.keys.Accept):
		return m.Dispatch(tagsync.TagAccepted{Scope: scope})

	case key.Matches(msg, m.keys.AddTag):
		return m.Dispatch(tagsync.TagCreateRequested{Text: m.input.Value()})

	case key.Matches(msg, m.keys.DeleteTag):
		return m.Dispatch(tagsync.TagDeleteRequested{Text: m.input.Value()})

	case key.Matches(msg, m.keys.NextCandidate) && m.snap.PickerOpen:
		return m.Dispatch(tagsync.CursorMoved{Delta: 1})

	case key.Matches(msg, m.keys.PrevCandidate) && m.snap.PickerOpen:
		return m.Dispatch(tagsync.CursorMoved{Delta: -1})

	case key.Matches(msg, m.keys.NextChip):
		if n := len(m.snap.Tags); n > 0 {
			m.chip = (m.chip + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevChip):
		if n := len(m.snap.Tags); n > 0 {
			m.chip = (m.chip - 1 + n) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.DetachTag):
		if m.chip >= len(m.snap.Tags) {
			return m, nil
		}
		return m.Dispatch(tagsync.TagDetachRequested{Scope: scope, TagID: m.snap.Tags[m.chip].ID})

	case key.Matches(msg, m.keys.Back):
		if m.snap.PickerOpen {
			return m.Dispatch(tagsync.SearchDismissed{})
		}
		return m, func() tea.Msg { return BlurMsg{} }
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		var syncCmd tea.Cmd
		m, syncCmd = m.Dispatch(tagsync.SearchTextChanged{Text: after})
		return m, tea.Batch(cmd, syncCmd)
	}
	return m, cmd
}

// View renders the tag panel.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(m.title()))
	b.WriteString("\n")

	if m.snap.State == tagsync.StateBound {
		b.WriteString(m.renderChips())
	} else {
		b.WriteString(theme.HelpStyle.Render("Select a problem to see its tags."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.snap.PickerOpen {
		b.WriteString(m.renderCandidates())
	}
	if m.snap.Hint != "" {
		b.WriteString(theme.HelpStyle.Render(m.snap.Hint))
		b.WriteString("\n")
	}

	if st := m.snap.Status; !st.Empty() {
		b.WriteString("\n")
		b.WriteString(theme.StatusStyle(st.Kind.String()).Render(st.Text))
	}

	style := theme.PanelStyle
	if m.focused {
		style = theme.FocusedPanelStyle
	}
	return style.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}

func (m Model) title() string {
	if m.snap.State != tagsync.StateBound {
		return "Tags"
	}
	return fmt.Sprintf("Tags of #%d", m.snap.ProblemID)
}

func (m Model) renderChips() string {
	if len(m.snap.Tags) == 0 {
		return theme.HelpStyle.Render("No tags yet. Type to search, enter to attach.")
	}

	chips := make([]string, len(m.snap.Tags))
	for i, t := range m.snap.Tags {
		label := t.Name + theme.RemovableLabel(t.Removable)
		if m.focused && i == m.chip {
			chips[i] = theme.SelectedChipStyle.Render(label)
		} else {
			chips[i] = theme.ChipStyle.Render(label)
		}
	}
	return lipgloss.NewStyle().
		Width(max(m.width-4, 0)).
		Render(strings.Join(chips, " "))
}

func (m Model) renderCandidates() string {
	var b strings.Builder
	cands := m.snap.Candidates

	start := 0
	if m.snap.Cursor >= maxCandidates {
		start = m.snap.Cursor - maxCandidates + 1
	}
	end := min(start+maxCandidates, len(cands))

	for i := start; i < end; i++ {
		label := cands[i].Name + " " + theme.RemovableLabel(cands[i].Removable)
		if i == m.snap.Cursor {
			b.WriteString(theme.SelectedCandidateStyle.Render(label))
		} else {
			b.WriteString(theme.CandidateStyle.Render(label))
		}
		b.WriteString("\n")
	}
	if len(cands) > maxCandidates {
		b.WriteString(theme.DimmedStyle.Render(
			fmt.Sprintf("  %d/%d matches", m.snap.Cursor+1, len(cands))))
		b.WriteString("\n")
	}
	return b.String()
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}
