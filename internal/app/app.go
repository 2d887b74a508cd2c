package app

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/problem-catalog/internal/keys"
	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/search"
	"github.com/nhle/problem-catalog/internal/store"
	"github.com/nhle/problem-catalog/internal/tagsync"
	"github.com/nhle/problem-catalog/internal/ui"
	"github.com/nhle/problem-catalog/internal/ui/command"
	helpview "github.com/nhle/problem-catalog/internal/ui/help"
	"github.com/nhle/problem-catalog/internal/ui/problemform"
	"github.com/nhle/problem-catalog/internal/ui/problemlist"
	"github.com/nhle/problem-catalog/internal/ui/tagcatalog"
	"github.com/nhle/problem-catalog/internal/ui/tagpanel"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewMain ViewState = iota
	ViewForm
	ViewHelp
	ViewCommand
	ViewTagCatalog
)

// focus is the pane of the main view that receives keystrokes.
type focus int

const (
	focusList focus = iota
	focusTags
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the catalogs.
type Model struct {
	currentView  ViewState
	previousView ViewState
	focus        focus
	layout       ui.Layout
	keys         *keys.KeyMap
	logger       *slog.Logger

	problems *store.ProblemStore
	engine   *search.Engine
	ctrl     *tagsync.Controller

	problemList problemlist.Model
	tagPanel    tagpanel.Model
	formView    problemform.Model
	helpView    helpview.Model
	commandView command.Model
	catalogView tagcatalog.Model

	ready    bool
	errorMsg string
}

// New creates the root model over gw. cfg supplies the search and
// display tuning; a nil logger discards.
func New(gw store.Gateway, cfg *model.AppConfig, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	k := keys.DefaultKeyMap()
	problems := store.NewProblemStore(gw)
	tags := store.NewTagStore(gw)
	assoc := store.NewAssociationStore(gw)

	engine := search.NewEngine(tags, search.Options{
		Interval:     cfg.Search.Debounce(),
		Mode:         cfg.Search.MatchMode(),
		QueryTimeout: cfg.Search.QueryTimeout(),
		Logger:       logger,
	})

	list := problemlist.New(problems, 80, 24)
	ctrl := tagsync.New(tags, assoc, list.Selection(), engine, tagsync.Options{
		StatusTimeout: cfg.Display.StatusTimeout(),
		HintTimeout:   cfg.Display.HintTimeout(),
		Logger:        logger,
	})

	return Model{
		currentView: ViewMain,
		keys:        k,
		logger:      logger.With("component", "app"),
		problems:    problems,
		engine:      engine,
		ctrl:        ctrl,
		problemList: list,
		tagPanel:    tagpanel.New(ctrl, list.Selection(), k, 40, 24),
		formView:    problemform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		catalogView: tagcatalog.New(tags, k, 80, 24),
	}
}

// Init loads the problems and the tag catalog and starts listening for
// search results.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.problemList.Init(),
		m.loadCatalog(),
		m.waitForResult(),
	)
}

// Close releases the search engine. It is safe to call more than once.
func (m Model) Close() {
	m.engine.Close()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.problemList.SetSize(m.layout.ListWidth(), contentHeight)
		m.tagPanel.SetSize(m.layout.PanelWidth(), contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.catalogView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case catalogLoadedMsg:
		if msg.err != nil {
			m.logger.Error("loading tag catalog", "error", msg.err)
			m.errorMsg = fmt.Sprintf("Could not load tags: %v", msg.err)
		}
		var cmd tea.Cmd
		m.tagPanel, cmd = m.tagPanel.Sync()
		return m, cmd

	case tagpanel.ResultMsg:
		var cmd tea.Cmd
		m.tagPanel, cmd = m.tagPanel.Update(msg)
		return m, tea.Batch(cmd, m.waitForResult())

	case problemlist.ProblemsLoadedMsg:
		var cmd tea.Cmd
		m.problemList, cmd = m.problemList.Update(msg)
		return m, cmd

	case problemlist.SelectionChangedMsg:
		var cmd tea.Cmd
		m.tagPanel, cmd = m.tagPanel.Dispatch(selectionEvent(msg))
		return m, cmd

	case tagpanel.BlurMsg:
		m.focusPane(focusList)
		return m, nil

	case problemform.ProblemCreatedMsg:
		m.currentView = ViewMain
		return m, m.createProblem(msg.Problem)

	case problemform.ProblemUpdatedMsg:
		m.currentView = ViewMain
		return m, m.updateProblem(msg.Problem)

	case problemform.DeleteConfirmedMsg:
		m.currentView = ViewMain
		return m, m.deleteProblem(msg.ID)

	case problemform.CancelMsg:
		m.currentView = ViewMain
		return m, nil

	case problemCreatedResultMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Could not save problem: %v", msg.err)
			return m, nil
		}
		m.errorMsg = ""
		return m, m.problemList.Load()

	case problemUpdatedResultMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Could not save problem #%d: %v", msg.id, msg.err)
			return m, nil
		}
		m.errorMsg = ""
		return m, m.problemList.Load()

	case problemDeletedResultMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Could not delete problem: %v", msg.err)
			return m, nil
		}
		m.errorMsg = ""
		return m, m.problemList.ReloadAfterDelete(msg.id)

	case tagcatalog.CloseMsg:
		m.currentView = ViewMain
		return m, nil

	case tagcatalog.ChangedMsg:
		var cmd tea.Cmd
		m.tagPanel, cmd = m.tagPanel.Dispatch(tagsync.CatalogChanged{})
		return m, cmd

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that switch views. Keys typed into a
// text input are never intercepted.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.currentView {
	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false

	case ViewForm, ViewTagCatalog:
		return nil, false
	}

	if m.focus == focusTags {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		_, cmd := m.quit()
		return cmd, true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case key.Matches(msg, m.keys.FocusTags):
		return m.focusPane(focusTags), true

	case key.Matches(msg, m.keys.NewProblem):
		return m.startCreate(), true

	case key.Matches(msg, m.keys.EditProblem):
		return m.startEdit(), true

	case key.Matches(msg, m.keys.DeleteProblem):
		return m.startDelete(), true

	case key.Matches(msg, m.keys.Refresh):
		return m.problemList.Load(), true

	case key.Matches(msg, m.keys.Catalog):
		return m.openCatalog(), true
	}
	return nil, false
}

// focusPane moves keyboard focus within the main view.
func (m *Model) focusPane(f focus) tea.Cmd {
	m.focus = f
	if f == focusTags {
		return m.tagPanel.Focus()
	}
	m.tagPanel.Blur()
	return nil
}

func (m *Model) startCreate() tea.Cmd {
	m.previousView = ViewMain
	m.currentView = ViewForm
	return m.formView.StartCreate()
}

func (m *Model) startEdit() tea.Cmd {
	p, ok := m.problemList.SelectedProblem()
	if !ok {
		return nil
	}
	m.previousView = ViewMain
	m.currentView = ViewForm
	return m.formView.StartEdit(p)
}

func (m *Model) startDelete() tea.Cmd {
	p, ok := m.problemList.SelectedProblem()
	if !ok {
		return nil
	}
	m.previousView = ViewMain
	m.currentView = ViewForm
	return m.formView.StartDelete(p)
}

func (m *Model) openCatalog() tea.Cmd {
	m.previousView = ViewMain
	m.currentView = ViewTagCatalog
	return m.catalogView.Open()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewMain:
		if _, isKey := msg.(tea.KeyMsg); isKey {
			if m.focus == focusTags {
				m.tagPanel, cmd = m.tagPanel.Update(msg)
			} else {
				m.problemList, cmd = m.problemList.Update(msg)
			}
			return m, cmd
		}
		var listCmd, panelCmd tea.Cmd
		m.problemList, listCmd = m.problemList.Update(msg)
		m.tagPanel, panelCmd = m.tagPanel.Update(msg)
		cmd = tea.Batch(listCmd, panelCmd)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTagCatalog:
		m.catalogView, cmd = m.catalogView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Problem Catalog", m.scopeSummary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewMain:
		return m.layout.RenderPanes(m.problemList.View(), m.tagPanel.View())
	case ViewForm:
		return m.formView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTagCatalog:
		return m.catalogView.View()
	default:
		return ""
	}
}

// scopeSummary describes which problem the tag panel is bound to.
func (m Model) scopeSummary() string {
	snap := m.tagPanel.Snapshot()
	if snap.State != tagsync.StateBound {
		return fmt.Sprintf("%d problems | no selection", m.problemList.Len())
	}
	return fmt.Sprintf("%d problems | #%d: %d tags",
		m.problemList.Len(), snap.ProblemID, len(snap.Tags))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Show storage errors prominently when present.
	if m.errorMsg != "" && m.currentView == ViewMain {
		return m.errorMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewTagCatalog:
		return "j/k move | n new | d delete | esc back"
	}

	if m.focus == focusTags {
		return "enter attach | ctrl+a add | ctrl+d delete | ctrl+x detach | esc back"
	}
	return "q quit | ? help | n new | e edit | d delete | / tags | c catalog | : command"
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "reload", "refresh":
		return m.problemList.Load()
	case "quit", "q":
		m.Close()
		return tea.Quit
	case "new problem", "new":
		return m.startCreate()
	case "edit problem", "edit":
		return m.startEdit()
	case "delete problem", "delete":
		return m.startDelete()
	case "tags":
		m.currentView = ViewMain
		return m.focusPane(focusTags)
	case "catalog":
		return m.openCatalog()
	case "help":
		m.previousView = ViewMain
		m.currentView = ViewHelp
		return nil
	default:
		m.logger.Debug("unknown command", "command", cmd)
		return nil
	}
}
