package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestProgressBarFilled(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{0, 0},
		{0.5, 10},
		{0.04, 1},
		{1, 20},
		{1.7, 20},
		{-0.3, 0},
	}
	for _, tt := range tests {
		p := ProgressBar{Percent: tt.percent}
		assert.Equal(t, tt.want, p.Filled(20), "percent %v", tt.percent)
	}
}

func TestProgressBarView(t *testing.T) {
	p := NewProgressBar("Mastery", 0.5, true, 40)
	out := p.View()
	assert.Contains(t, out, "Mastery")
	assert.Contains(t, out, "50%")
	assert.LessOrEqual(t, lipgloss.Width(out), 40)
	// 40 minus the label and the percent column.
	assert.Equal(t, 25, strings.Count(out, "█")+strings.Count(out, "░"))
}
