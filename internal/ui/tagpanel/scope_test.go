package tagpanel

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/problem-catalog/internal/keys"
	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/tagsync"
)

type namedTags map[string]int64

func (n namedTags) AddTag(context.Context, string, bool) (int64, error) { return 0, nil }
func (n namedTags) DeleteTag(context.Context, string) (int64, error)    { return 0, nil }
func (n namedTags) ListAllTagNames(context.Context) ([]string, error)   { return nil, nil }

func (n namedTags) FindTagIDByName(_ context.Context, name string) (int64, bool, error) {
	id, ok := n[name]
	return id, ok, nil
}

// links records attaches and fails to list the tags of broken problems.
type links struct {
	broken   map[int64]bool
	attached []int64
}

func (l *links) Attach(_ context.Context, problemID, _ int64) (bool, error) {
	l.attached = append(l.attached, problemID)
	return true, nil
}

func (l *links) Detach(context.Context, int64, int64) (bool, error) { return true, nil }

func (l *links) ListTagsOf(_ context.Context, problemID int64) ([]model.Tag, error) {
	if l.broken[problemID] {
		return nil, errors.New("database is locked")
	}
	return nil, nil
}

type idleSearcher struct{}

func (idleSearcher) TextChanged(string) uint64 { return 1 }
func (idleSearcher) Cancel()                   {}
func (idleSearcher) Latest() uint64            { return 1 }

func TestTagPanel_AcceptAfterFailedRebindIsDropped(t *testing.T) {
	var selected int64
	list := tagsync.ProblemSourceFunc(func() (int64, bool) { return selected, selected != 0 })

	assoc := &links{broken: map[int64]bool{2: true}}
	ctrl := tagsync.New(namedTags{"dp": 5}, assoc, list, idleSearcher{}, tagsync.Options{})
	m := New(ctrl, list, keys.DefaultKeyMap(), 50, 20)
	m.Focus()

	selected = 1
	m, _ = m.Dispatch(tagsync.ProblemSelected{ID: 1})

	// The list moves on but loading the new problem's tags fails, so the
	// controller stays bound to problem 1.
	selected = 2
	m, _ = m.Dispatch(tagsync.ProblemSelected{ID: 2})
	require.Equal(t, int64(1), m.Snapshot().ProblemID)

	m = typeText(m, "dp")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, assoc.attached, "nothing is attached while the list shows another problem")
	assert.Equal(t, int64(1), m.Snapshot().ProblemID)
}

func TestTagPanel_DetachWithoutSelectionIsDropped(t *testing.T) {
	var selected int64 = 4
	list := tagsync.ProblemSourceFunc(func() (int64, bool) { return selected, selected != 0 })

	ctrl := &fakeController{snap: tagsync.Snapshot{
		State:     tagsync.StateBound,
		ProblemID: 4,
		Tags:      []model.Tag{{ID: 10, Name: "dp"}},
	}}
	m := New(ctrl, list, keys.DefaultKeyMap(), 50, 20)
	m.Focus()

	selected = 0
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})

	assert.Equal(t, tagsync.TagDetachRequested{Scope: tagsync.ScopeNone, TagID: 10}, ctrl.last())
}
