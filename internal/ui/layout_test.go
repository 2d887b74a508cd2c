package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestLayout_Dimensions(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		wantPanel int
		wantList  int
		wantBody  int
	}{
		{name: "wide", width: 100, height: 30, wantPanel: 40, wantList: 60, wantBody: 28},
		{name: "narrow", width: 50, height: 10, wantPanel: 30, wantList: 20, wantBody: 8},
		{name: "tiny", width: 20, height: 1, wantPanel: 20, wantList: 0, wantBody: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.width, tt.height)
			assert.Equal(t, tt.wantPanel, l.PanelWidth())
			assert.Equal(t, tt.wantList, l.ListWidth())
			assert.Equal(t, tt.wantBody, l.ContentHeight())
		})
	}
}

func TestLayout_HeaderFillsWidth(t *testing.T) {
	l := NewLayout(60, 20)
	header := l.RenderHeader("Problems", "problem #7")

	assert.Equal(t, 60, lipgloss.Width(header))
	assert.Contains(t, header, "Problems")
	assert.Contains(t, header, "problem #7")
}
