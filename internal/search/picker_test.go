package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/problem-catalog/internal/model"
)

var pickerTags = []model.Tag{
	{ID: 1, Name: "dp"},
	{ID: 2, Name: "dfs"},
	{ID: 3, Name: "dijkstra"},
}

func TestPicker_ShowHighlightsFirst(t *testing.T) {
	var p Picker
	p.Show(pickerTags)

	assert.True(t, p.Open())
	assert.Equal(t, 0, p.Cursor())
	cur, ok := p.Current()
	assert.True(t, ok)
	assert.Equal(t, "dp", cur.Name)
}

func TestPicker_MoveWraps(t *testing.T) {
	tests := []struct {
		name  string
		moves []int
		want  string
	}{
		{name: "next", moves: []int{1}, want: "dfs"},
		{name: "wrap forward", moves: []int{1, 1, 1}, want: "dp"},
		{name: "wrap backward", moves: []int{-1}, want: "dijkstra"},
		{name: "large delta", moves: []int{-7}, want: "dijkstra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Picker
			p.Show(pickerTags)
			for _, d := range tt.moves {
				p.Move(d)
			}
			cur, ok := p.Current()
			assert.True(t, ok)
			assert.Equal(t, tt.want, cur.Name)
		})
	}
}

func TestPicker_NextPrev(t *testing.T) {
	var p Picker
	p.Show(pickerTags)

	p.Next()
	p.Next()
	p.Prev()
	cur, _ := p.Current()
	assert.Equal(t, "dfs", cur.Name)
}

func TestPicker_EmptyStaysClosed(t *testing.T) {
	var p Picker
	p.Show(nil)

	assert.False(t, p.Open())
	p.Next()
	_, ok := p.Current()
	assert.False(t, ok)
	assert.Nil(t, p.Candidates())
}

func TestPicker_Close(t *testing.T) {
	var p Picker
	p.Show(pickerTags)
	p.Next()
	p.Close()

	assert.False(t, p.Open())
	assert.Equal(t, 0, p.Cursor())
	_, ok := p.Current()
	assert.False(t, ok)
}

func TestPicker_CandidatesIsCopy(t *testing.T) {
	var p Picker
	p.Show(pickerTags)

	got := p.Candidates()
	got[0].Name = "changed"

	cur, _ := p.Current()
	assert.Equal(t, "dp", cur.Name)
}
