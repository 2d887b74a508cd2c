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

func tagNames(tags []model.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

func TestAddTag_FindByName(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := store.NewTagStore(s)
	ctx := context.Background()

	id, err := tags.AddTag(ctx, "dp", true)
	require.NoError(t, err)

	got, ok, err := tags.FindTagIDByName(ctx, "dp")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok, err = tags.FindTagIDByName(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddTag_RejectsBlank(t *testing.T) {
	tags := store.NewTagStore(testutil.NewTestStore(t))

	for _, name := range []string{"", "   "} {
		_, err := tags.AddTag(context.Background(), name, true)
		assert.ErrorIs(t, err, store.ErrInvalid, "name %q", name)
	}
}

func TestAddTag_DuplicateNamesKept(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := store.NewTagStore(s)
	ctx := context.Background()

	first, err := tags.AddTag(ctx, "dp", true)
	require.NoError(t, err)
	second, err := tags.AddTag(ctx, "dp", true)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	all, err := tags.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Lookup by name resolves to the oldest row.
	id, ok, err := tags.FindTagIDByName(ctx, "dp")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, id)

	names, err := tags.ListAllTagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dp"}, names)
}

func TestListAllTagNames_FirstUseOrder(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := store.NewTagStore(s)
	ctx := context.Background()

	for _, n := range []string{"greedy", "dp", "greedy", "bfs"} {
		testutil.MustAddTag(t, s, n, true)
	}

	names, err := tags.ListAllTagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"greedy", "dp", "bfs"}, names)
}

func TestListAllTagNames_Empty(t *testing.T) {
	names, err := store.NewTagStore(testutil.NewTestStore(t)).ListAllTagNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDeleteTag(t *testing.T) {
	tests := []struct {
		name      string
		seed      []model.Tag
		delete    string
		wantCount int64
		wantLeft  []string
	}{
		{
			name:      "removable",
			seed:      []model.Tag{{Name: "dp", Removable: true}, {Name: "bfs", Removable: true}},
			delete:    "dp",
			wantCount: 1,
			wantLeft:  []string{"bfs"},
		},
		{
			name:      "fixed tag stays",
			seed:      []model.Tag{{Name: "math", Removable: false}},
			delete:    "math",
			wantCount: 0,
			wantLeft:  []string{"math"},
		},
		{
			name:      "unknown name",
			seed:      []model.Tag{{Name: "dp", Removable: true}},
			delete:    "graphs",
			wantCount: 0,
			wantLeft:  []string{"dp"},
		},
		{
			name: "duplicates",
			seed: []model.Tag{
				{Name: "dp", Removable: true},
				{Name: "dp", Removable: false},
				{Name: "dp", Removable: true},
			},
			delete:    "dp",
			wantCount: 2,
			wantLeft:  []string{"dp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testutil.NewTestStore(t)
			tags := store.NewTagStore(s)
			ctx := context.Background()

			for _, seed := range tt.seed {
				testutil.MustAddTag(t, s, seed.Name, seed.Removable)
			}

			n, err := tags.DeleteTag(ctx, tt.delete)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, n)

			left, err := tags.ListTags(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLeft, tagNames(left))
			for _, tag := range left {
				if tag.Name == tt.delete {
					assert.False(t, tag.Removable, "only fixed tags survive a delete")
				}
			}
		})
	}
}

func TestDeleteTag_CascadesAssociations(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	problemID := testutil.MustCreateProblem(t, s, "Two Sum")
	tagID := testutil.MustAddTag(t, s, "hashing", true)

	_, err := store.NewAssociationStore(s).Attach(ctx, problemID, tagID)
	require.NoError(t, err)

	_, err = store.NewTagStore(s).DeleteTag(ctx, "hashing")
	require.NoError(t, err)
	assert.Zero(t, testutil.CountLinks(t, s, problemID, tagID))
}

func TestSearchTags(t *testing.T) {
	s := testutil.NewTestStore(t)
	tags := store.NewTagStore(s)
	ctx := context.Background()

	for _, n := range []string{"dp", "greedy", "DP-bitmask", "dfs", "100%", "a_b", "axb"} {
		testutil.MustAddTag(t, s, n, true)
	}

	tests := []struct {
		name string
		text string
		mode model.MatchMode
		want []string
	}{
		{name: "contains", text: "d", mode: model.MatchContains, want: []string{"dp", "greedy", "DP-bitmask", "dfs"}},
		{name: "prefix", text: "d", mode: model.MatchPrefix, want: []string{"dp", "DP-bitmask", "dfs"}},
		{name: "ascii case folding", text: "dp", mode: model.MatchContains, want: []string{"dp", "DP-bitmask"}},
		{name: "no match", text: "zzz", mode: model.MatchContains, want: []string{}},
		{name: "percent is literal", text: "%", mode: model.MatchContains, want: []string{"100%"}},
		{name: "underscore is literal", text: "a_", mode: model.MatchPrefix, want: []string{"a_b"}},
		{name: "unknown mode is contains", text: "bit", mode: "", want: []string{"DP-bitmask"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tags.SearchTags(ctx, tt.text, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tagNames(got))
		})
	}
}

func TestSearchTags_EmptyText(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.MustAddTag(t, s, "dp", true)

	got, err := store.NewTagStore(s).SearchTags(context.Background(), "", model.MatchContains)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchTags_CancelledContext(t *testing.T) {
	s := testutil.NewTestStore(t)
	testutil.MustAddTag(t, s, "dp", true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.NewTagStore(s).SearchTags(ctx, "dp", model.MatchContains)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStatementFailure)
}
