package report

import (
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/jonathan/leadership-report/internal/types"
)

// PageBreaker ensures needed points are free below y, starting a new page
// when they are not, and returns the y to draw at.
type PageBreaker func(y, needed float64) float64

const (
	competencyCardHeight = 58.0
	competencyCardGap    = 10.0

	radarRadius    = 110.0
	radarMinScore  = 40
	radarLabelGap  = 14.0
	radarLabelSize = 8.5

	timelineNodeRadius = 13.0

	matrixGutter = 18.0
)

// radarRings are the reference circles as fractions of the radius.
var radarRings = []float64{0.25, 0.5, 0.75, 1.0}

// QuadrantTitles are the fixed priority-matrix quadrant captions in
// placement order: top-left, top-right, bottom-left, bottom-right.
var QuadrantTitles = [4]string{
	"High Impact / Low Effort",
	"High Impact / High Effort",
	"Low Impact / Low Effort",
	"Low Impact / High Effort",
}

// DrawCompetencyList draws one card per competency in the order given.
// A card is never split across pages.
func DrawCompetencyList(s Surface, comps []types.Competency, x, y, width float64, brk PageBreaker) float64 {
	for _, comp := range comps {
		y = brk(y, competencyCardHeight)
		drawCompetencyCard(s, comp, x, y, width)
		y += competencyCardHeight + competencyCardGap
	}
	return y
}

func drawCompetencyCard(s Surface, comp types.Competency, x, y, width float64) {
	const pad = 14.0
	RoundedFilledRect(s, x, y, width, competencyCardHeight, 6, colorCard)

	// Score, right aligned
	score := strconv.Itoa(comp.Score)
	setFont(s, 16, true)
	setTextColor(s, scoreColor(comp.Score))
	scoreW := s.GetStringWidth(score)
	drawTextLine(s, score, x+width-pad-scoreW, y+9, 16)

	// Level badge left of the score
	level := string(comp.Level)
	setFont(s, 8, true)
	badgeW := s.GetStringWidth(level) + 16
	badgeX := x + width - pad - scoreW - 10 - badgeW
	RoundedFilledRect(s, badgeX, y+11, badgeW, 15, 7.5, levelColor(level))
	setTextColor(s, colorWhite)
	drawTextLine(s, level, badgeX+8, y+14.5, 8)

	// Name fills what is left of the row
	setFont(s, 12, true)
	setTextColor(s, colorTextDark)
	nameLines := fitLines(s, comp.Name, badgeX-x-pad-8, 1)
	if len(nameLines) > 0 {
		drawTextLine(s, nameLines[0], x+pad, y+11, 12)
	}

	DrawScoreBar(s, x+pad, y+36, comp.Score, width-2*pad)
}

// RadarVertexRadius is the distance from the centre of a competency's vertex.
// Scores below radarMinScore are drawn at the floor so the shape never
// collapses into the centre.
func RadarVertexRadius(score int, radius float64) float64 {
	if score < radarMinScore {
		score = radarMinScore
	}
	if score > 100 {
		score = 100
	}
	return radius * float64(score) / 100
}

// radarAngle starts at the top and proceeds clockwise on the page.
func radarAngle(i, n int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
}

// RadarVertices returns the data polygon in index order.
func RadarVertices(cx, cy, radius float64, scores []int) []fpdf.PointType {
	pts := make([]fpdf.PointType, len(scores))
	for i, score := range scores {
		a := radarAngle(i, len(scores))
		r := RadarVertexRadius(score, radius)
		pts[i] = fpdf.PointType{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

// radarHeight is the vertical extent DrawRadarChart needs around its centre.
func radarHeight(radius float64) float64 {
	return 2*(radius+radarLabelGap) + 2*lineHeight(radarLabelSize)
}

// DrawRadarChart draws a spider chart centred on (cx, cy) and returns the y
// below its labels. Fewer than three competencies draw nothing.
func DrawRadarChart(s Surface, comps []types.Competency, cx, cy, radius float64) float64 {
	n := len(comps)
	if n < 3 {
		return cy
	}

	setStroke(s, colorGridLine)
	s.SetLineWidth(0.5)
	for _, f := range radarRings {
		s.Circle(cx, cy, radius*f, "D")
	}
	for i := 0; i < n; i++ {
		a := radarAngle(i, n)
		s.Line(cx, cy, cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}

	scores := make([]int, n)
	for i, c := range comps {
		scores[i] = c.Score
	}
	pts := RadarVertices(cx, cy, radius, scores)
	setFill(s, colorRadarFill)
	setStroke(s, colorSecondary)
	s.SetLineWidth(1.2)
	s.Polygon(pts, "FD")

	setFill(s, colorSecondary)
	for _, p := range pts {
		s.Circle(p.X, p.Y, 2.5, "F")
	}

	setFont(s, radarLabelSize, true)
	setTextColor(s, colorTextDark)
	for i, c := range comps {
		a := radarAngle(i, n)
		cos, sin := math.Cos(a), math.Sin(a)
		lx := cx + (radius+radarLabelGap)*cos
		ly := cy + (radius+radarLabelGap)*sin
		lines := fitLines(s, c.Name, 96, 1)
		if len(lines) == 0 {
			continue
		}
		label := lines[0]
		w := s.GetStringWidth(label)
		switch {
		case cos > 0.3:
		case cos < -0.3:
			lx -= w
		default:
			lx -= w / 2
		}
		top := ly - radarLabelSize/2
		if sin < -0.3 {
			top -= radarLabelSize / 2
		} else if sin > 0.3 {
			top += radarLabelSize / 4
		}
		drawTextLine(s, label, lx, top, radarLabelSize)
	}

	return cy + radius + radarLabelGap + 2*lineHeight(radarLabelSize)
}

// TimelinePhase is one node of the roadmap timeline.
type TimelinePhase struct {
	Label   string
	Title   string
	Caption string
}

// TimelineNodeX is the centre of node i: the width is split into three
// equal columns regardless of text length.
func TimelineNodeX(x, width float64, i int) float64 {
	col := width / 3
	return x + col/2 + float64(i)*col
}

// DrawTimeline lays three phases across width on a horizontal spine and
// returns the y below the tallest column.
func DrawTimeline(s Surface, phases [3]TimelinePhase, x, y, width float64) float64 {
	col := width / 3
	spineY := y + timelineNodeRadius

	setStroke(s, colorGridLine)
	s.SetLineWidth(2)
	s.Line(TimelineNodeX(x, width, 0), spineY, TimelineNodeX(x, width, 2), spineY)

	bottom := spineY + timelineNodeRadius
	for i, ph := range phases {
		cx := TimelineNodeX(x, width, i)
		setFill(s, colorPrimary)
		s.Circle(cx, spineY, timelineNodeRadius, "F")
		setFont(s, 11, true)
		setTextColor(s, colorWhite)
		drawCentered(s, strconv.Itoa(i+1), cx, spineY-6, 11)

		top := spineY + timelineNodeRadius + 6
		setFont(s, 8, true)
		setTextColor(s, colorAccent)
		drawCentered(s, ph.Label, cx, top, 8)
		top += lineHeight(8) + 2

		setFont(s, 11, true)
		setTextColor(s, colorTextDark)
		top = drawCenteredLines(s, WrapLines(s, ph.Title, col-12), cx, top, 11)

		setFont(s, 9, false)
		setTextColor(s, colorTextMuted)
		top = drawCenteredLines(s, WrapLines(s, ph.Caption, col-12), cx, top+2, 9)

		bottom = math.Max(bottom, top)
	}
	return bottom + 8
}

func drawCenteredLines(s Surface, lines []string, cx, top, size float64) float64 {
	for _, line := range lines {
		drawCentered(s, line, cx, top, size)
		top += lineHeight(size)
	}
	return top
}

// DrawPriorityMatrix draws the impact x effort grid and places up to four
// labels into the quadrants in QuadrantTitles order. Extra labels are
// dropped; empty labels leave their quadrant blank.
func DrawPriorityMatrix(s Surface, labels []string, x, y, width, height float64) float64 {
	if len(labels) > len(QuadrantTitles) {
		labels = labels[:len(QuadrantTitles)]
	}
	gridX := x + matrixGutter
	gridW := width - matrixGutter
	gridH := height - matrixGutter
	cellW, cellH := gridW/2, gridH/2
	fills := [4]Color{colorCallout, colorCard, colorCard, colorDangerSoft}

	for q, title := range QuadrantTitles {
		cx := gridX + float64(q%2)*cellW
		cy := y + float64(q/2)*cellH
		RoundedFilledRect(s, cx+2, cy+2, cellW-4, cellH-4, 6, fills[q])

		setFont(s, 9, true)
		setTextColor(s, colorPrimary)
		drawTextLine(s, title, cx+12, cy+10, 9)

		if q >= len(labels) || labels[q] == "" {
			continue
		}
		setFont(s, 10, false)
		setTextColor(s, colorTextDark)
		maxLines := int((cellH - 40) / lineHeight(10))
		for i, line := range fitLines(s, labels[q], cellW-24, maxLines) {
			drawTextLine(s, line, cx+12, cy+28+float64(i)*lineHeight(10), 10)
		}
	}

	// Axes: impact rises up the gutter, effort grows to the right.
	setStroke(s, colorTextMuted)
	s.SetLineWidth(0.8)
	s.Line(x+6, y+gridH, x+6, y+4)
	s.Line(gridX, y+gridH+6, gridX+gridW-4, y+gridH+6)

	setFont(s, 7, true)
	setTextColor(s, colorTextMuted)
	for i, ch := range "IMPACT" {
		drawTextLine(s, string(ch), x+9, y+gridH/2-24+float64(i)*8, 7)
	}
	drawCentered(s, "EFFORT", gridX+gridW/2, y+gridH+8, 7)

	return y + height
}
