package testutil

import (
	"context"
	"testing"

	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/store"
)

// MustCreateProblem inserts a problem with the given title and returns its id.
func MustCreateProblem(t *testing.T, gw store.Gateway, title string) int64 {
	t.Helper()

	id, err := store.NewProblemStore(gw).CreateProblem(context.Background(), model.Problem{Title: title})
	if err != nil {
		t.Fatalf("creating problem %q: %v", title, err)
	}
	return id
}

// MustAddTag inserts a tag and returns its id.
func MustAddTag(t *testing.T, gw store.Gateway, name string, removable bool) int64 {
	t.Helper()

	id, err := store.NewTagStore(gw).AddTag(context.Background(), name, removable)
	if err != nil {
		t.Fatalf("adding tag %q: %v", name, err)
	}
	return id
}

// CountLinks returns how many problem_tag rows exist for the pair.
func CountLinks(t *testing.T, gw store.Gateway, problemID, tagID int64) int {
	t.Helper()

	var n int
	err := gw.Get(context.Background(), &n,
		"SELECT COUNT(*) FROM problem_tag WHERE problem_id = ? AND tag_id = ?",
		problemID, tagID)
	if err != nil {
		t.Fatalf("counting links: %v", err)
	}
	return n
}
