package problemform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/problem-catalog/internal/model"
)

func TestFormBindings_Problem(t *testing.T) {
	fb := formBindings{
		title:       "  Two Sum ",
		difficulty:  "800",
		timeTaken:   "12",
		attempts:    "",
		problemURL:  " https://leetcode.com/problems/two-sum ",
		description: "hash map",
	}

	assert.Equal(t, model.Problem{
		Title:       "Two Sum",
		Difficulty:  800,
		TimeTaken:   12,
		ProblemURL:  "https://leetcode.com/problems/two-sum",
		Description: "hash map",
	}, fb.problem())
}

func TestValidators(t *testing.T) {
	assert.Error(t, validateRequired("Title")(" "))
	assert.NoError(t, validateRequired("Title")("x"))

	intCheck := validateOptionalInt("Difficulty")
	assert.NoError(t, intCheck(""))
	assert.NoError(t, intCheck("1600"))
	assert.Error(t, intCheck("-3"))
	assert.Error(t, intCheck("hard"))

	assert.NoError(t, validateOptionalURL(""))
	assert.NoError(t, validateOptionalURL("https://codeforces.com/problemset/problem/4/A"))
	assert.Error(t, validateOptionalURL("codeforces.com"))
}

func TestHandleSubmit_Delete(t *testing.T) {
	m := New(80, 24)
	m.StartDelete(model.Problem{ID: 9, Title: "Old"})

	m.fb.confirm = true
	msg := m.handleSubmit()()
	assert.Equal(t, DeleteConfirmedMsg{ID: 9}, msg)

	m.fb.confirm = false
	assert.Equal(t, CancelMsg{}, m.handleSubmit()())
}

func TestHandleSubmit_Create(t *testing.T) {
	m := New(80, 24)
	m.StartCreate()
	m.fb.title = "Knapsack"

	msg, ok := m.handleSubmit()().(ProblemCreatedMsg)
	require.True(t, ok)
	assert.Equal(t, "Knapsack", msg.Problem.Title)
}

func TestUpdate_NoFormIsNoop(t *testing.T) {
	m := New(80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.View())
}

func TestHandleSubmit_EditKeepsID(t *testing.T) {
	m := New(80, 24)
	m.StartEdit(model.Problem{ID: 4, Title: "Coin Change", Difficulty: 1500, ProblemURL: "https://cses.fi/problemset/task/1635"})

	assert.Equal(t, "Coin Change", m.fb.title)
	assert.Equal(t, "1500", m.fb.difficulty)
	assert.Empty(t, m.fb.attempts, "zero numbers start blank")
	assert.Contains(t, m.View(), "Edit Problem #4")

	m.fb.title = "Coin Change II"
	m.fb.attempts = "2"

	msg, ok := m.handleSubmit()().(ProblemUpdatedMsg)
	require.True(t, ok)
	assert.Equal(t, model.Problem{
		ID:           4,
		Title:        "Coin Change II",
		Difficulty:   1500,
		ProblemURL:   "https://cses.fi/problemset/task/1635",
		NoOfAttempts: 2,
	}, msg.Problem)
}
