package problemform

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/theme"
)

// ProblemCreatedMsg is dispatched when the form is submitted.
type ProblemCreatedMsg struct {
	Problem model.Problem
}

// ProblemUpdatedMsg is dispatched when an edit is submitted. Problem
// carries the id of the edited row.
type ProblemUpdatedMsg struct {
	Problem model.Problem
}

// DeleteConfirmedMsg is dispatched when the user confirms a deletion.
type DeleteConfirmedMsg struct {
	ID int64
}

// CancelMsg is dispatched when the user leaves the form without acting.
type CancelMsg struct{}

type formMode int

const (
	modeCreate formMode = iota
	modeEdit
	modeDelete
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	difficulty  string
	timeTaken   string
	problemURL  string
	solutionURL string
	filePath    string
	attempts    string
	description string
	confirm     bool
}

// Model is the Bubble Tea model for the problem create and edit form and
// the delete confirmation.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   formMode
	target model.Problem
	width  int
	height int
}

// New creates a new problem form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for recording a new problem.
func (m *Model) StartCreate() tea.Cmd {
	*m.fb = formBindings{}
	m.mode = modeCreate
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartEdit opens the form filled with p. Leaving with esc discards
// the changes.
func (m *Model) StartEdit(p model.Problem) tea.Cmd {
	*m.fb = bindingsOf(p)
	m.mode = modeEdit
	m.target = p
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartDelete asks for confirmation before deleting p.
func (m *Model) StartDelete(p model.Problem) tea.Cmd {
	*m.fb = formBindings{}
	m.mode = modeDelete
	m.target = p
	m.form = m.buildConfirmForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.handleSubmit()
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Problem"
	switch m.mode {
	case modeEdit:
		titleText = fmt.Sprintf("Edit Problem #%d", m.target.ID)
	case modeDelete:
		titleText = "Delete Problem"
	}

	content := theme.TitleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCreateForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Problem name").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Difficulty").
				Placeholder("Rating, e.g. 1600 (optional)").
				Value(&m.fb.difficulty).
				Validate(validateOptionalInt("Difficulty")),
			huh.NewInput().
				Title("Time Taken").
				Placeholder("Minutes (optional)").
				Value(&m.fb.timeTaken).
				Validate(validateOptionalInt("Time taken")),
			huh.NewInput().
				Title("Attempts").
				Placeholder("Number of attempts (optional)").
				Value(&m.fb.attempts).
				Validate(validateOptionalInt("Attempts")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Problem URL").
				Placeholder("https://...").
				Value(&m.fb.problemURL).
				Validate(validateOptionalURL),
			huh.NewInput().
				Title("Solution URL").
				Placeholder("https://...").
				Value(&m.fb.solutionURL).
				Validate(validateOptionalURL),
			huh.NewInput().
				Title("File Path").
				Placeholder("Local solution file (optional)").
				Value(&m.fb.filePath),
			huh.NewText().
				Title("Description").
				Placeholder("Notes...").
				Value(&m.fb.description),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete problem %q?", m.target.Title)).
				Description("Its tag links are removed too. Tags themselves are kept.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	switch m.mode {
	case modeDelete:
		if !m.fb.confirm {
			return func() tea.Msg { return CancelMsg{} }
		}
		id := m.target.ID
		return func() tea.Msg { return DeleteConfirmedMsg{ID: id} }
	case modeEdit:
		p := m.fb.problem()
		p.ID = m.target.ID
		return func() tea.Msg { return ProblemUpdatedMsg{Problem: p} }
	}

	p := m.fb.problem()
	return func() tea.Msg { return ProblemCreatedMsg{Problem: p} }
}

// bindingsOf fills the form fields from p. Zero numbers are left blank.
func bindingsOf(p model.Problem) formBindings {
	return formBindings{
		title:       p.Title,
		difficulty:  itoaOrEmpty(p.Difficulty),
		timeTaken:   itoaOrEmpty(p.TimeTaken),
		problemURL:  p.ProblemURL,
		solutionURL: p.SolutionURL,
		filePath:    p.FilePath,
		attempts:    itoaOrEmpty(p.NoOfAttempts),
		description: p.Description,
	}
}

// problem converts the bound strings. Fields were validated by the form.
func (fb *formBindings) problem() model.Problem {
	return model.Problem{
		Title:        strings.TrimSpace(fb.title),
		Difficulty:   atoiOrZero(fb.difficulty),
		TimeTaken:    atoiOrZero(fb.timeTaken),
		ProblemURL:   strings.TrimSpace(fb.problemURL),
		SolutionURL:  strings.TrimSpace(fb.solutionURL),
		FilePath:     strings.TrimSpace(fb.filePath),
		NoOfAttempts: atoiOrZero(fb.attempts),
		Description:  fb.description,
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalInt(fieldName string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative number", fieldName)
		}
		return nil
	}
}

func validateOptionalURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL, include the scheme (https://...)")
	}
	return nil
}
