package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreBarFill(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		maxWidth float64
		want     float64
	}{
		{name: "zero score is empty", score: 0, maxWidth: 200, want: 0},
		{name: "negative score is empty", score: -5, maxWidth: 200, want: 0},
		{name: "proportional", score: 50, maxWidth: 200, want: 100},
		{name: "rounded", score: 33, maxWidth: 100, want: 33},
		{name: "rounds half up", score: 75, maxWidth: 50, want: 38},
		{name: "full", score: 100, maxWidth: 200, want: 200},
		{name: "over range is capped", score: 130, maxWidth: 200, want: 200},
		{name: "tiny score floored to min visible", score: 1, maxWidth: 200, want: scoreBarMinVisible},
		{name: "min visible never exceeds track", score: 1, maxWidth: 5, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreBarFill(tt.score, tt.maxWidth), 1e-9)
		})
	}
}

func TestDrawScoreBar(t *testing.T) {
	t.Run("track and fill", func(t *testing.T) {
		r := newRecorder()
		DrawScoreBar(r, 10, 20, 80, 200)

		require.Equal(t, 2, r.count("rrect"))
		assert.InDelta(t, 200, r.ops[0].w, 1e-9)
		assert.InDelta(t, 160, r.ops[1].w, 1e-9)
		assert.InDelta(t, scoreBarHeight, r.ops[1].h, 1e-9)
	})

	t.Run("zero score draws only the track", func(t *testing.T) {
		r := newRecorder()
		DrawScoreBar(r, 10, 20, 0, 200)
		assert.Equal(t, 1, r.count("rrect"))
	})
}

func TestScoreColorTiers(t *testing.T) {
	assert.Equal(t, colorTierA, scoreColor(80))
	assert.Equal(t, colorTierB, scoreColor(79))
	assert.Equal(t, colorTierB, scoreColor(65))
	assert.Equal(t, colorTierC, scoreColor(64))
}

func TestDrawWrappedText(t *testing.T) {
	t.Run("empty string is a no-op", func(t *testing.T) {
		r := newRecorder()
		y := DrawWrappedText(r, "", 0, 100, TextOptions{Width: 100, Size: 10, LineGap: 6})
		assert.Equal(t, 100.0, y)
		assert.Empty(t, r.ops)
	})

	t.Run("wraps and advances by lines plus gap", func(t *testing.T) {
		r := newRecorder()
		// Each rune is 5pt wide at size 10, so 12 runes fit in 60pt.
		y := DrawWrappedText(r, "alpha beta gamma delta", 0, 100, TextOptions{Width: 60, Size: 10, LineGap: 6})

		lines := r.texts()
		assert.Equal(t, []string{"alpha beta", "gamma delta"}, lines)
		assert.InDelta(t, 100+2*lineHeight(10)+6, y, 1e-9)
	})
}

func TestWrapLines(t *testing.T) {
	r := newRecorder()
	r.SetFont(fontFamily, "", 10)

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "fits", text: "short", width: 100, want: []string{"short"}},
		{name: "collapses whitespace", text: "a   b\tc", width: 100, want: []string{"a b c"}},
		{name: "keeps newlines", text: "one\ntwo", width: 100, want: []string{"one", "two"}},
		{name: "splits long word", text: "abcdefghij", width: 25, want: []string{"abcde", "fghij"}},
		{name: "blank", text: "   ", width: 100, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapLines(r, tt.text, tt.width))
		})
	}
}

func TestFitLines(t *testing.T) {
	r := newRecorder()
	r.SetFont(fontFamily, "", 10)

	lines := fitLines(r, "one two three four five six", 40, 2)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ellipsis))
	for _, l := range lines {
		assert.LessOrEqual(t, r.GetStringWidth(l), 40.0)
	}

	assert.Nil(t, fitLines(r, "anything", 40, 0))
}

func TestDrawSectionTitle(t *testing.T) {
	r := newRecorder()
	y := DrawSectionTitle(r, "Executive Summary", 50, 96, 495)

	assert.Equal(t, 96+sectionTitleHeight, y)
	assert.Equal(t, []string{"Executive Summary"}, r.texts())

	// Accent width follows the text, capped at the available width.
	var accent op
	for _, o := range r.ops {
		if o.kind == "rrect" {
			accent = o
		}
	}
	assert.InDelta(t, r.GetStringWidth("Executive Summary"), accent.w, 1e-9)

	r = newRecorder()
	DrawSectionTitle(r, strings.Repeat("W", 80), 50, 96, 300)
	for _, o := range r.ops {
		if o.kind == "rrect" {
			assert.InDelta(t, 300, o.w, 1e-9)
		}
	}
}

func TestRoundedFilledRect_SkipsEmpty(t *testing.T) {
	r := newRecorder()
	RoundedFilledRect(r, 0, 0, 0, 10, 4, colorCard)
	RoundedFilledRect(r, 0, 0, 10, -1, 4, colorCard)
	assert.Empty(t, r.ops)
}
