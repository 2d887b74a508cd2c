package problemlist

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/problem-catalog/internal/model"
)

type fakeLoader struct {
	problems []model.Problem
	err      error
}

func (f *fakeLoader) ListProblems(context.Context) ([]model.Problem, error) {
	return f.problems, f.err
}

// drain runs cmd and every command it batches, collecting the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func selectionMsgs(msgs []tea.Msg) []SelectionChangedMsg {
	var out []SelectionChangedMsg
	for _, m := range msgs {
		if s, ok := m.(SelectionChangedMsg); ok {
			out = append(out, s)
		}
	}
	return out
}

func loaded(t *testing.T, m Model) (Model, []tea.Msg) {
	t.Helper()
	msgs := drain(m.Init())
	require.Len(t, msgs, 1)
	m, cmd := m.Update(msgs[0])
	return m, drain(cmd)
}

func TestProblemList_FirstRowSelectedOnLoad(t *testing.T) {
	loader := &fakeLoader{problems: []model.Problem{{ID: 3, Title: "A"}, {ID: 5, Title: "B"}}}
	m := New(loader, 80, 20)

	m, msgs := loaded(t, m)

	sel := selectionMsgs(msgs)
	require.Len(t, sel, 1)
	assert.Equal(t, SelectionChangedMsg{ID: 3, OK: true}, sel[0])

	id, ok := m.Selection().CurrentProblemID()
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestProblemList_CursorMoveChangesSelection(t *testing.T) {
	loader := &fakeLoader{problems: []model.Problem{{ID: 3, Title: "A"}, {ID: 5, Title: "B"}}}
	m, _ := loaded(t, New(loader, 80, 20))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel := selectionMsgs(drain(cmd))
	require.Len(t, sel, 1)
	assert.Equal(t, int64(5), sel[0].ID)

	// Moving past the end does not change anything.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, selectionMsgs(drain(cmd)))
}

func TestProblemList_EmptyList(t *testing.T) {
	m, msgs := loaded(t, New(&fakeLoader{}, 80, 20))

	sel := selectionMsgs(msgs)
	require.Len(t, sel, 1)
	assert.False(t, sel[0].OK)
	assert.Contains(t, m.View(), "No problems yet")
}

func TestProblemList_ReloadAfterDelete(t *testing.T) {
	loader := &fakeLoader{problems: []model.Problem{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}}
	m, _ := loaded(t, New(loader, 80, 20))

	loader.problems = []model.Problem{{ID: 2, Title: "B"}}
	msgs := drain(m.ReloadAfterDelete(1))
	require.Len(t, msgs, 1)
	m, cmd := m.Update(msgs[0])

	sel := selectionMsgs(drain(cmd))
	require.Len(t, sel, 1)
	assert.Equal(t, SelectionChangedMsg{ID: 2, OK: true, Removed: 1}, sel[0])
	assert.Equal(t, 1, m.Len())
}

func TestProblemList_LoadError(t *testing.T) {
	m, msgs := loaded(t, New(&fakeLoader{err: errors.New("locked")}, 80, 20))

	assert.Empty(t, selectionMsgs(msgs))
	assert.Contains(t, m.View(), "locked")
}

func TestProblemItem_Description(t *testing.T) {
	item := ProblemItem{Problem: model.Problem{Difficulty: 1500, NoOfAttempts: 1, TimeTaken: 30}}
	assert.Equal(t, "rated 1500 | 1 attempt | 30 min", item.Description())
	assert.Empty(t, ProblemItem{}.Description())
}
