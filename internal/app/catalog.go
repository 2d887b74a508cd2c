package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/tagsync"
	"github.com/nhle/problem-catalog/internal/ui/problemlist"
	"github.com/nhle/problem-catalog/internal/ui/tagpanel"
)

// catalogLoadedMsg is sent once the known tag names are read.
type catalogLoadedMsg struct{ err error }

// problemCreatedResultMsg is sent after a problem is persisted.
type problemCreatedResultMsg struct {
	id  int64
	err error
}

// problemUpdatedResultMsg is sent after an edited problem is saved.
type problemUpdatedResultMsg struct {
	id  int64
	err error
}

// problemDeletedResultMsg is sent after a problem and its links are removed.
type problemDeletedResultMsg struct {
	id  int64
	err error
}

// loadCatalog reads the tag names offered as completions.
func (m Model) loadCatalog() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		return catalogLoadedMsg{err: ctrl.Load(context.Background())}
	}
}

// waitForResult returns a tea.Cmd that waits for the next search result.
// It is re-armed after every ResultMsg. A closed engine ends the loop.
func (m Model) waitForResult() tea.Cmd {
	results := m.engine.Results()
	return func() tea.Msg {
		r, ok := <-results
		if !ok {
			return nil
		}
		return tagpanel.ResultMsg{Result: r}
	}
}

// createProblem persists a new problem.
func (m Model) createProblem(p model.Problem) tea.Cmd {
	s := m.problems
	return func() tea.Msg {
		id, err := s.CreateProblem(context.Background(), p)
		return problemCreatedResultMsg{id: id, err: err}
	}
}

// updateProblem saves an edited problem. Its tag links are untouched.
func (m Model) updateProblem(p model.Problem) tea.Cmd {
	s := m.problems
	return func() tea.Msg {
		err := s.UpdateProblem(context.Background(), p)
		return problemUpdatedResultMsg{id: p.ID, err: err}
	}
}

// deleteProblem removes a problem together with its tag links.
func (m Model) deleteProblem(id int64) tea.Cmd {
	s := m.problems
	return func() tea.Msg {
		err := s.DeleteProblem(context.Background(), id)
		return problemDeletedResultMsg{id: id, err: err}
	}
}

// selectionEvent translates a list selection change for the tag controller.
func selectionEvent(msg problemlist.SelectionChangedMsg) tagsync.Event {
	switch {
	case msg.Removed != 0:
		return tagsync.ProblemRowRemoved{ID: msg.Removed}
	case msg.OK:
		return tagsync.ProblemSelected{ID: msg.ID}
	default:
		return tagsync.ProblemDeselected{}
	}
}
