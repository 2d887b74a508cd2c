package tagcatalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/problem-catalog/internal/keys"
	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/theme"
)

// Catalog is the subset of store.TagStore the view uses.
type Catalog interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	AddTag(ctx context.Context, name string, removable bool) (int64, error)
	DeleteTag(ctx context.Context, name string) (int64, error)
}

// CloseMsg signals the parent to close the tag catalog.
type CloseMsg struct{}

// ChangedMsg signals that tags were added or deleted.
type ChangedMsg struct{}

type viewMode int

const (
	modeList viewMode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	fixed   bool
	confirm bool
}

type tagsLoadedMsg struct {
	tags []model.Tag
	err  error
}

type tagSavedMsg struct {
	name string
	err  error
}

type tagDeletedMsg struct {
	name string
	n    int64
	err  error
}

// Model lists every tag row, duplicates included, and adds or deletes
// tags by name.
type Model struct {
	mode        viewMode
	catalog     Catalog
	keys        *keys.KeyMap
	tags        []model.Tag
	selectedIdx int
	form        *huh.Form
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	width       int
	height      int
}

// New creates a new tag catalog model.
func New(c Catalog, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:    modeList,
		catalog: c,
		keys:    k,
		fb:      &formBindings{},
		width:   width, height: height,
	}
}

// Init loads tags from the store.
func (m Model) Init() tea.Cmd {
	return m.loadTags()
}

// Open resets the view to the list and reloads it.
func (m *Model) Open() tea.Cmd {
	m.mode = modeList
	m.statusMsg = ""
	return m.loadTags()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.tags = msg.tags
		if m.selectedIdx >= len(m.tags) {
			m.selectedIdx = max(len(m.tags)-1, 0)
		}
		return m, nil

	case tagSavedMsg:
		m.mode = modeList
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.statusMsg = msg.name + " tag is added"
		return m, tea.Batch(m.loadTags(), changed)

	case tagDeletedMsg:
		m.mode = modeList
		switch {
		case msg.err != nil:
			m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		case msg.n == 0:
			m.statusMsg = "no removable tag named " + msg.name
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("%s tag is deleted (%d)", msg.name, msg.n)
		return m, tea.Batch(m.loadTags(), changed)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveForm(msg)
}

func changed() tea.Msg { return ChangedMsg{} }

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeList:
		return m.handleListKey(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(msg, m.keys.Down):
		if len(m.tags) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.tags)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.tags) > 0 {
			m.selectedIdx = (m.selectedIdx - 1 + len(m.tags)) % len(m.tags)
		}
		return m, nil

	case msg.String() == "n":
		*m.fb = formBindings{}
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case msg.String() == "d":
		t, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if !t.Removable {
			m.statusMsg = t.Name + " is fixed and cannot be deleted"
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm(t.Name)
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

// Selected returns the highlighted tag.
func (m Model) Selected() (model.Tag, bool) {
	if m.selectedIdx >= len(m.tags) {
		return model.Tag{}, false
	}
	return m.tags[m.selectedIdx], true
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Tag name").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Fixed?").
				Description("Fixed tags cannot be deleted by name.").
				Affirmative("Fixed").
				Negative("Removable").
				Value(&m.fb.fixed),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) buildConfirmForm(name string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete tag %q?", name)).
				Description("Every removable tag with this name is deleted and detached from its problems.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m, m.saveTag()
	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	switch m.confirmForm.State {
	case huh.StateCompleted:
		t, ok := m.Selected()
		if m.fb.confirm && ok {
			return m, m.deleteTag(t.Name)
		}
		m.mode = modeList
		return m, nil
	case huh.StateAborted:
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

func (m Model) updateActiveForm(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m, nil
}

// View renders the tag catalog.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.viewForm(m.form)
	case modeConfirmDelete:
		return m.viewForm(m.confirmForm)
	default:
		return m.viewList()
	}
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Tag Catalog (%d)", len(m.tags))))
	b.WriteString("\n\n")

	if len(m.tags) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No tags yet. Press 'n' to create one."))
	} else {
		for i, t := range m.tags {
			label := fmt.Sprintf("#%-4d %s %s", t.ID, t.Name, theme.RemovableLabel(t.Removable))
			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.HelpStyle.Render("n new | d delete by name | esc back"))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) viewForm(f *huh.Form) string {
	if f == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(f.View())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func (m Model) loadTags() tea.Cmd {
	c := m.catalog
	return func() tea.Msg {
		tags, err := c.ListTags(context.Background())
		return tagsLoadedMsg{tags: tags, err: err}
	}
}

func (m Model) saveTag() tea.Cmd {
	c := m.catalog
	name := strings.TrimSpace(m.fb.name)
	removable := !m.fb.fixed
	return func() tea.Msg {
		_, err := c.AddTag(context.Background(), name, removable)
		return tagSavedMsg{name: name, err: err}
	}
}

func (m Model) deleteTag(name string) tea.Cmd {
	c := m.catalog
	return func() tea.Msg {
		n, err := c.DeleteTag(context.Background(), name)
		return tagDeletedMsg{name: name, n: n, err: err}
	}
}
