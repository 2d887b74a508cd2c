package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/store"
	"github.com/nhle/problem-catalog/tests/testutil"
)

func TestCreateProblem_GetProblem(t *testing.T) {
	s := testutil.NewTestStore(t)
	problems := store.NewProblemStore(s)
	ctx := context.Background()

	in := model.Problem{
		Title:        "Longest Increasing Subsequence",
		Difficulty:   1800,
		TimeTaken:    45,
		ProblemURL:   "https://codeforces.com/problemset/problem/1/A",
		NoOfAttempts: 2,
		Description:  "classic",
	}
	id, err := problems.CreateProblem(ctx, in)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := problems.GetProblem(ctx, id)
	require.NoError(t, err)
	in.ID = id
	assert.Equal(t, &in, got)
}

func TestCreateProblem_Validation(t *testing.T) {
	problems := store.NewProblemStore(testutil.NewTestStore(t))

	tests := []struct {
		name    string
		problem model.Problem
		wantMsg string
	}{
		{name: "missing title", problem: model.Problem{}, wantMsg: "title is required"},
		{name: "negative difficulty", problem: model.Problem{Title: "x", Difficulty: -1}, wantMsg: "difficulty must be at least 0"},
		{name: "bad url", problem: model.Problem{Title: "x", ProblemURL: "not a url"}, wantMsg: "problem_url must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := problems.CreateProblem(context.Background(), tt.problem)
			require.ErrorIs(t, err, store.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGetProblem_NotFound(t *testing.T) {
	_, err := store.NewProblemStore(testutil.NewTestStore(t)).GetProblem(context.Background(), 99)
	assert.True(t, store.IsNotFound(err))
}

func TestListProblems(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.MustCreateProblem(t, s, "A")
	testutil.MustCreateProblem(t, s, "B")

	got, err := store.NewProblemStore(s).ListProblems(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "B", got[1].Title)
}

func TestDeleteProblem_RemovesLinks(t *testing.T) {
	s := testutil.NewTestStore(t)
	problems := store.NewProblemStore(s)
	assoc := store.NewAssociationStore(s)
	ctx := context.Background()

	doomed := testutil.MustCreateProblem(t, s, "Doomed")
	kept := testutil.MustCreateProblem(t, s, "Kept")
	dp := testutil.MustAddTag(t, s, "dp", true)

	for _, p := range []int64{doomed, kept} {
		_, err := assoc.Attach(ctx, p, dp)
		require.NoError(t, err)
	}

	require.NoError(t, problems.DeleteProblem(ctx, doomed))

	assert.Zero(t, testutil.CountLinks(t, s, doomed, dp))
	assert.Equal(t, 1, testutil.CountLinks(t, s, kept, dp))

	// The tag itself is untouched.
	_, ok, err := store.NewTagStore(s).FindTagIDByName(ctx, "dp")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDeleteProblem_NotFound(t *testing.T) {
	err := store.NewProblemStore(testutil.NewTestStore(t)).DeleteProblem(context.Background(), 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProblem(t *testing.T) {
	s := testutil.NewTestStore(t)
	problems := store.NewProblemStore(s)
	assoc := store.NewAssociationStore(s)
	ctx := context.Background()

	id := testutil.MustCreateProblem(t, s, "Coin Change")
	dp := testutil.MustAddTag(t, s, "dp", true)
	_, err := assoc.Attach(ctx, id, dp)
	require.NoError(t, err)

	p, err := problems.GetProblem(ctx, id)
	require.NoError(t, err)
	p.Title = "Coin Change II"
	p.NoOfAttempts = 3
	require.NoError(t, problems.UpdateProblem(ctx, *p))

	got, err := problems.GetProblem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, 1, testutil.CountLinks(t, s, id, dp), "tag links survive an edit")
}

func TestUpdateProblem_Errors(t *testing.T) {
	s := testutil.NewTestStore(t)
	problems := store.NewProblemStore(s)
	ctx := context.Background()

	err := problems.UpdateProblem(ctx, model.Problem{ID: 42, Title: "Ghost"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	id := testutil.MustCreateProblem(t, s, "Two Sum")
	err = problems.UpdateProblem(ctx, model.Problem{ID: id})
	assert.ErrorIs(t, err, store.ErrInvalid)

	got, err := problems.GetProblem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", got.Title)
}
