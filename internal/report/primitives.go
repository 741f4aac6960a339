package report

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	sectionTitleSize   = 20.0
	sectionTitleHeight = 34.0
	accentBarHeight    = 3.0

	scoreBarHeight     = 8.0
	scoreBarRadius     = 4.0
	scoreBarMinVisible = 2 * scoreBarRadius

	lineHeightFactor = 1.35
	ellipsis         = "..."
)

// TextOptions controls DrawWrappedText.
type TextOptions struct {
	Width   float64
	Size    float64
	Color   Color
	Bold    bool
	LineGap float64
}

func setFill(s Surface, c Color) {
	s.SetFillColor(c[0], c[1], c[2])
}

func setStroke(s Surface, c Color) {
	s.SetDrawColor(c[0], c[1], c[2])
}

func setTextColor(s Surface, c Color) {
	s.SetTextColor(c[0], c[1], c[2])
}

func setFont(s Surface, size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	s.SetFont(fontFamily, style, size)
}

// lineHeight is the vertical pitch of one wrapped line at size.
func lineHeight(size float64) float64 {
	return size * lineHeightFactor
}

// drawTextLine draws one line whose box starts at top.
func drawTextLine(s Surface, text string, x, top, size float64) {
	if text == "" {
		return
	}
	s.Text(x, top+size*0.9, text)
}

// RoundedFilledRect fills a rectangle with rounded corners.
func RoundedFilledRect(s Surface, x, y, w, h, radius float64, fill Color) {
	if w <= 0 || h <= 0 {
		return
	}
	radius = math.Min(radius, math.Min(w, h)/2)
	setFill(s, fill)
	if radius <= 0 {
		s.Rect(x, y, w, h, "F")
		return
	}
	s.RoundedRect(x, y, w, h, radius, "1234", "F")
}

// DrawSectionTitle renders a bold heading with an accent underline sized to
// the heading text, capped at maxWidth. It returns the y below the title block.
func DrawSectionTitle(s Surface, text string, x, y, maxWidth float64) float64 {
	setFont(s, sectionTitleSize, true)
	setTextColor(s, colorPrimary)
	drawTextLine(s, text, x, y, sectionTitleSize)

	accent := math.Min(s.GetStringWidth(text), maxWidth)
	RoundedFilledRect(s, x, y+sectionTitleSize+6, accent, accentBarHeight, 1.5, colorAccent)
	return y + sectionTitleHeight
}

// WrapLines breaks text into lines no wider than width using the surface's
// current font. Explicit newlines are kept.
func WrapLines(s Surface, text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			continue
		}
		current := ""
		for _, word := range words {
			for s.GetStringWidth(word) > width && utf8.RuneCountInString(word) > 1 {
				// A single word wider than the column is split by runes.
				if current != "" {
					lines = append(lines, current)
					current = ""
				}
				head, tail := splitWord(s, word, width)
				lines = append(lines, head)
				word = tail
			}
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if current != "" && s.GetStringWidth(candidate) > width {
				lines = append(lines, current)
				current = word
				continue
			}
			current = candidate
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	// Trailing blank lines carry no ink.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitWord returns the longest prefix of word that fits width and the rest.
func splitWord(s Surface, word string, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && s.GetStringWidth(string(runes[:n+1])) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

// fitLines wraps text and truncates it to maxLines, marking the cut.
func fitLines(s Surface, text string, width float64, maxLines int) []string {
	if maxLines < 1 {
		return nil
	}
	lines := WrapLines(s, text, width)
	if len(lines) <= maxLines {
		return lines
	}
	lines = lines[:maxLines]
	last := lines[maxLines-1]
	for last != "" && s.GetStringWidth(last+ellipsis) > width {
		runes := []rune(last)
		last = strings.TrimRight(string(runes[:len(runes)-1]), " ")
	}
	lines[maxLines-1] = last + ellipsis
	return lines
}

// measureWrappedText returns the height DrawWrappedText would consume.
func measureWrappedText(s Surface, text string, opts TextOptions) float64 {
	if text == "" {
		return 0
	}
	setFont(s, opts.Size, opts.Bold)
	lines := WrapLines(s, text, opts.Width)
	return float64(len(lines))*lineHeight(opts.Size) + opts.LineGap
}

// DrawWrappedText word-wraps text to opts.Width and draws it from (x, y).
// It returns y advanced by the rendered height plus opts.LineGap; an empty
// string draws nothing and returns y unchanged.
func DrawWrappedText(s Surface, text string, x, y float64, opts TextOptions) float64 {
	if text == "" {
		return y
	}
	setFont(s, opts.Size, opts.Bold)
	setTextColor(s, opts.Color)
	lines := WrapLines(s, text, opts.Width)
	lh := lineHeight(opts.Size)
	for i, line := range lines {
		drawTextLine(s, line, x, y+float64(i)*lh, opts.Size)
	}
	return y + float64(len(lines))*lh + opts.LineGap
}

// ScoreBarFill returns the filled width of a score bar. Any nonzero score is
// at least scoreBarMinVisible wide so it never reads as zero.
func ScoreBarFill(score int, maxWidth float64) float64 {
	if score <= 0 || maxWidth <= 0 {
		return 0
	}
	if score > 100 {
		score = 100
	}
	w := math.Round(float64(score) / 100 * maxWidth)
	if w < scoreBarMinVisible {
		w = math.Min(scoreBarMinVisible, maxWidth)
	}
	return w
}

// DrawScoreBar draws a track and a fill proportional to score/100.
func DrawScoreBar(s Surface, x, y float64, score int, maxWidth float64) {
	RoundedFilledRect(s, x, y, maxWidth, scoreBarHeight, scoreBarRadius, colorTrack)
	if fill := ScoreBarFill(score, maxWidth); fill > 0 {
		RoundedFilledRect(s, x, y, fill, scoreBarHeight, scoreBarRadius, scoreColor(score))
	}
}

// drawDivider draws a thin horizontal rule.
func drawDivider(s Surface, x, y, width float64) {
	setStroke(s, colorGridLine)
	s.SetLineWidth(0.6)
	s.Line(x, y, x+width, y)
}

// drawBulletDot draws the list marker for a line box starting at top.
func drawBulletDot(s Surface, x, top, size float64, c Color) {
	setFill(s, c)
	s.Circle(x+2.5, top+size*0.55, 2.2, "F")
}

// drawCentered draws a single line centred on cx.
func drawCentered(s Surface, text string, cx, top, size float64) {
	w := s.GetStringWidth(text)
	drawTextLine(s, text, cx-w/2, top, size)
}
