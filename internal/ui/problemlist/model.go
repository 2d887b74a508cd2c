package problemlist

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/theme"
)

// Loader reads the problem table. store.ProblemStore satisfies it.
type Loader interface {
	ListProblems(ctx context.Context) ([]model.Problem, error)
}

// ProblemsLoadedMsg is sent when problems have been loaded from the store.
type ProblemsLoadedMsg struct {
	Problems []model.Problem
	Err      error

	// Removed is the id of a problem deleted just before this load.
	Removed int64
}

// SelectionChangedMsg is sent whenever the highlighted problem changes,
// including when the list becomes empty.
type SelectionChangedMsg struct {
	ID int64
	OK bool

	// Removed carries ProblemsLoadedMsg.Removed through.
	Removed int64
}

// Selection is the list's current row shared with non-UI readers.
type Selection struct {
	mu sync.Mutex
	id int64
	ok bool
}

// CurrentProblemID returns the highlighted problem, if any.
func (s *Selection) CurrentProblemID() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.ok
}

func (s *Selection) set(id int64, ok bool) (changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed = s.id != id || s.ok != ok
	s.id, s.ok = id, ok
	return changed
}

// Model is the problem list view component.
type Model struct {
	list    list.Model
	loader  Loader
	sel     *Selection
	loadErr error
	width   int
	height  int
}

// New creates a new problem list model.
func New(loader Loader, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.Title = "Problems"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		loader: loader,
		sel:    &Selection{},
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the problems.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Selection returns the shared selection handle.
func (m Model) Selection() *Selection {
	return m.sel
}

// Update handles messages for the problem list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProblemsLoadedMsg:
		m.loadErr = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Problems))
		for i, p := range msg.Problems {
			items[i] = ProblemItem{Problem: p}
		}
		cmd := m.list.SetItems(items)
		if m.list.Index() >= len(items) {
			m.list.Select(max(len(items)-1, 0))
		}
		return m, tea.Batch(cmd, m.syncSelection(msg.Removed, true))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, tea.Batch(cmd, m.syncSelection(0, false))
}

// syncSelection publishes the highlighted row when it changed. force
// publishes even when unchanged, so a reload after a delete is always
// reported.
func (m Model) syncSelection(removed int64, force bool) tea.Cmd {
	id, ok := m.SelectedID()
	if !m.sel.set(id, ok) && !force {
		return nil
	}
	return func() tea.Msg {
		return SelectionChangedMsg{ID: id, OK: ok, Removed: removed}
	}
}

// SelectedID returns the id of the highlighted problem.
func (m Model) SelectedID() (int64, bool) {
	p, ok := m.SelectedProblem()
	return p.ID, ok
}

// SelectedProblem returns the highlighted problem.
func (m Model) SelectedProblem() (model.Problem, bool) {
	item, ok := m.list.SelectedItem().(ProblemItem)
	if !ok {
		return model.Problem{}, false
	}
	return item.Problem, true
}

// Len returns the number of problems shown.
func (m Model) Len() int {
	return len(m.list.Items())
}

// View renders the problem list view.
func (m Model) View() string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Foreground(theme.ColorRed).
			Render("Could not load problems: " + m.loadErr.Error())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(m.list.View())
}

// renderEmptyState shows guidance text when no problems exist.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No problems yet.\n\nPress n to record one.")
}

// Load returns a tea.Cmd that reads every problem from the store.
func (m Model) Load() tea.Cmd {
	return m.load(0)
}

// ReloadAfterDelete reloads and reports removed in the resulting
// SelectionChangedMsg.
func (m Model) ReloadAfterDelete(removed int64) tea.Cmd {
	return m.load(removed)
}

func (m Model) load(removed int64) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		problems, err := loader.ListProblems(context.Background())
		return ProblemsLoadedMsg{Problems: problems, Err: err, Removed: removed}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
