package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/leadership-report/internal/types"
)

const (
	riskCardHeight = 60.0
	riskCardGap    = 8.0
	matrixHeight   = 240.0
	chipHeight     = 22.0
	chipGap        = 8.0
)

// section is one entry of the fixed document outline.
type section struct {
	label string
	title string
	cover bool
	draw  func(w *writer, cur Cursor) Cursor
}

// sections is the canonical order; content never reorders it.
var sections = []section{
	{label: "Cover", cover: true, draw: (*writer).cover},
	{label: "Executive Summary", title: "Executive Summary", draw: (*writer).executiveSummary},
	{label: "Competency Scores", title: "Competency Scores", draw: (*writer).competencyScores},
	{label: "Deep Dive", title: "Your Leadership Archetype", draw: (*writer).archetype},
	{label: "Deep Dive", title: "Top Growth Areas", draw: (*writer).growthAreas},
	{label: "Self-Awareness", title: "Self-Awareness", draw: (*writer).selfAwareness},
	{label: "Stakeholders & KPIs", title: "Stakeholders & KPIs", draw: (*writer).stakeholders},
	{label: "Operating Cadence", title: "Operating Cadence", draw: (*writer).operatingCadence},
	{label: "Decision Matrix & Risks", title: "Decision Matrix & Risks", draw: (*writer).decisionsAndRisks},
	{label: "Talent & Meetings", title: "Talent & Meetings", draw: (*writer).talentAndMeetings},
	{label: "90-Day Roadmap", title: "90-Day Roadmap", draw: (*writer).roadmap},
	{label: "First-Week Sprint", title: "First-Week Sprint", draw: (*writer).firstWeek},
	{label: "Next Step", title: "Communication & Next Step", draw: (*writer).nextStep},
}

// SectionNames lists the section titles in emission order.
func SectionNames() []string {
	names := make([]string, len(sections))
	for i, sec := range sections {
		names[i] = sec.title
		if sec.cover {
			names[i] = sec.label
		}
	}
	return names
}

// writer draws one record through a composer.
type writer struct {
	c    *Composer
	s    Surface
	rec  *types.AnalysisRecord
	opts Options
}

func (w *writer) width() float64 {
	return w.c.geo.ContentWidth()
}

func (w *writer) body() TextOptions {
	return TextOptions{Width: w.width(), Size: 11, Color: colorTextDark, LineGap: 10}
}

// RankCompetencies returns a copy of comps ordered by descending score.
// Equal scores keep their input order. The argument is not modified.
func RankCompetencies(comps []types.Competency) []types.Competency {
	ranked := make([]types.Competency, len(comps))
	copy(ranked, comps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func (w *writer) cover(cur Cursor) Cursor {
	s, g := w.s, w.c.geo
	band := 300.0
	setFill(s, colorPrimary)
	s.Rect(0, 0, g.Width, band, "F")

	setFont(s, 14, true)
	setTextColor(s, colorWhite)
	drawTextLine(s, w.opts.BrandName, g.Margin, g.Margin, 14)

	setFont(s, 10, true)
	setTextColor(s, colorAccent)
	drawTextLine(s, "LEADERSHIP REPORT", g.Margin, 120, 10)

	y := DrawWrappedText(s, "Your Leadership Assessment", g.Margin, 140, TextOptions{
		Width: g.ContentWidth(), Size: 30, Color: colorWhite, Bold: true, LineGap: 6,
	})
	if w.opts.PreparedFor != "" {
		DrawWrappedText(s, "Prepared for "+w.opts.PreparedFor, g.Margin, y, TextOptions{
			Width: g.ContentWidth(), Size: 12, Color: colorCallout,
		})
	}

	cx, cy := g.Width/2, band+110
	setFill(s, colorCallout)
	s.Circle(cx, cy, 78, "F")
	setFill(s, colorPrimary)
	s.Circle(cx, cy, 64, "F")
	setFont(s, 40, true)
	setTextColor(s, colorWhite)
	drawCentered(s, strconv.Itoa(w.rec.LeadershipScore), cx, cy-26, 40)
	setFont(s, 10, false)
	drawCentered(s, "/ 100", cx, cy+20, 10)

	setFont(s, 9, true)
	setTextColor(s, colorTextMuted)
	drawCentered(s, "LEADERSHIP SCORE", cx, cy+90, 9)

	y = cy + 120
	setFont(s, 18, true)
	setTextColor(s, colorPrimary)
	y = drawCenteredLines(s, WrapLines(s, w.rec.LeadershipStage, g.ContentWidth()), cx, y, 18) + 8
	if w.rec.Archetype.Name != "" {
		setFont(s, 12, false)
		setTextColor(s, colorTextDark)
		y = drawCenteredLines(s, WrapLines(s, "Archetype: "+w.rec.Archetype.Name, g.ContentWidth()), cx, y, 12)
	}

	setFont(s, 10, false)
	setTextColor(s, colorTextMuted)
	drawCentered(s, "Generated on "+w.opts.GeneratedAt.Format("January 2, 2006"), cx, g.PrintableBottom()-20, 10)
	return cur.Down(y - cur.Y)
}

func (w *writer) executiveSummary(cur Cursor) Cursor {
	cur = w.c.Paragraph(cur, w.rec.ExecutiveSummary, w.body())
	cur = w.c.Callout(cur, "Key Insight", w.rec.KeyInsight, w.width(), colorCallout)
	cur = w.c.Callout(cur, "Your 90-Day Outcome", w.rec.NinetyDayOutcome, w.width(), colorCard)

	ranked := RankCompetencies(w.rec.Competencies)
	if len(ranked) == 0 {
		return cur
	}
	const boxH = 72.0
	y := w.c.Ensure(cur.Y, boxH)
	half := (w.width() - columnGap) / 2
	w.scoreCallout(cur.X, y, half, boxH, "Strongest Competency", ranked[0])
	w.scoreCallout(cur.X+half+columnGap, y, half, boxH, "Biggest Opportunity", ranked[len(ranked)-1])
	return Cursor{X: cur.X, Y: y + boxH + 12}
}

func (w *writer) scoreCallout(x, y, width, height float64, label string, comp types.Competency) {
	s := w.s
	RoundedFilledRect(s, x, y, width, height, 8, colorCard)
	setFont(s, 8, true)
	setTextColor(s, colorTextMuted)
	drawTextLine(s, strings.ToUpper(label), x+12, y+10, 8)

	setFont(s, 12, true)
	setTextColor(s, colorTextDark)
	if lines := fitLines(s, comp.Name, width-70, 1); len(lines) > 0 {
		drawTextLine(s, lines[0], x+12, y+26, 12)
	}
	score := strconv.Itoa(comp.Score)
	setFont(s, 20, true)
	setTextColor(s, scoreColor(comp.Score))
	drawTextLine(s, score, x+width-12-s.GetStringWidth(score), y+22, 20)
	DrawScoreBar(s, x+12, y+52, comp.Score, width-24)
}

func (w *writer) competencyScores(cur Cursor) Cursor {
	cur = w.c.Paragraph(cur, "Each competency is scored from 0 to 100 and listed in assessment order.",
		TextOptions{Width: w.width(), Size: 10, Color: colorTextMuted, LineGap: 10})
	y := DrawCompetencyList(w.s, w.rec.Competencies, cur.X, cur.Y, w.width(), w.c.Ensure)

	y = w.c.Ensure(y, radarHeight(radarRadius))
	cy := y + radarRadius + radarLabelGap + lineHeight(radarLabelSize)
	y = DrawRadarChart(w.s, w.rec.Competencies, cur.X+w.width()/2, cy, radarRadius)
	return Cursor{X: cur.X, Y: y}
}

func (w *writer) archetype(cur Cursor) Cursor {
	a := w.rec.Archetype
	if a.Name != "" {
		cur = w.c.Paragraph(cur, a.Name, TextOptions{Width: w.width(), Size: 18, Color: colorPrimary, Bold: true, LineGap: 10})
	}

	// Trait chips flow left to right and wrap by row.
	s := w.s
	x, y := cur.X, cur.Y
	right := cur.X + w.width()
	for _, trait := range a.Traits {
		setFont(s, 10, true)
		lines := fitLines(s, trait, w.width()-20, 1)
		if len(lines) == 0 {
			continue
		}
		chipW := s.GetStringWidth(lines[0]) + 20
		if x > cur.X && x+chipW > right {
			x = cur.X
			y += chipHeight + chipGap
		}
		if ny, broke := w.c.CheckPageBreak(y, chipHeight); broke {
			x, y = cur.X, ny
		}
		RoundedFilledRect(s, x, y, chipW, chipHeight, chipHeight/2, colorCallout)
		setFont(s, 10, true)
		setTextColor(s, colorPrimary)
		drawTextLine(s, lines[0], x+10, y+6, 10)
		x += chipW + chipGap
	}
	if len(a.Traits) > 0 {
		y += chipHeight + 16
	}
	return w.c.Paragraph(Cursor{X: cur.X, Y: y}, a.Description, w.body())
}

func (w *writer) growthAreas(cur Cursor) Cursor {
	for i, area := range w.rec.TopGrowthAreas {
		cur = w.growthCard(cur, i+1, area)
	}
	return cur
}

// growthCard keeps a growth area on one card when it fits a page and lets
// it flow across pages otherwise.
func (w *writer) growthCard(cur Cursor, n int, area types.GrowthArea) Cursor {
	const pad = 14.0
	s := w.s
	inner := w.width() - 2*pad - 30
	titleOpts := TextOptions{Width: inner, Size: 12, Color: colorTextDark, Bold: true, LineGap: 4}
	descOpts := TextOptions{Width: inner, Size: bodySize, Color: colorTextDark, LineGap: 6}
	stepOpts := bulletOptions(inner)

	h := 2*pad + measureWrappedText(s, area.Title, titleOpts) + measureWrappedText(s, area.Description, descOpts)
	for _, step := range area.ActionSteps {
		h += measureWrappedText(s, step, stepOpts) + bulletGap
	}
	h = math.Max(h, 2*pad+24)

	x := cur.X + pad + 30
	if !w.c.fitsOnPage(h) {
		cur = w.c.Subheading(cur, fmt.Sprintf("%d. %s", n, area.Title))
		cur = w.c.Paragraph(cur, area.Description, TextOptions{Width: w.width(), Size: bodySize, Color: colorTextDark, LineGap: 6})
		return w.c.BulletList(cur, area.ActionSteps, w.width()).Down(10)
	}

	y := w.c.Ensure(cur.Y, h)
	RoundedFilledRect(s, cur.X, y, w.width(), h, 8, colorCard)
	setFill(s, colorAccent)
	s.Circle(cur.X+pad+11, y+pad+11, 11, "F")
	setFont(s, 11, true)
	setTextColor(s, colorWhite)
	drawCentered(s, strconv.Itoa(n), cur.X+pad+11, y+pad+5, 11)

	ty := DrawWrappedText(s, area.Title, x, y+pad, titleOpts)
	ty = DrawWrappedText(s, area.Description, x, ty, descOpts)
	for _, step := range area.ActionSteps {
		drawBulletDot(s, x, ty, bodySize, colorSecondary)
		ty = DrawWrappedText(s, step, x+bulletIndent, ty, stepOpts) + bulletGap
	}
	return Cursor{X: cur.X, Y: y + h + 12}
}

func (w *writer) selfAwareness(cur Cursor) Cursor {
	cur = w.c.Subheading(cur, "Blind Spots")
	cur = w.c.BulletList(cur, w.rec.BlindSpots, w.width()).Down(8)
	cur = w.c.Subheading(cur, "Strength Levers")
	return w.c.BulletList(cur, w.rec.StrengthLevers, w.width())
}

func (w *writer) stakeholders(cur Cursor) Cursor {
	cur = w.c.Subheading(cur, "Stakeholder Playbook")
	cur = w.c.BulletList(cur, w.rec.StakeholderPlaybook, w.width()).Down(8)
	cur = w.c.Subheading(cur, "Key Performance Indicators")
	cur = w.c.BulletList(cur, w.rec.KPIs, w.width()).Down(8)
	cur = w.c.Subheading(cur, "Metrics Dashboard")
	m := w.rec.MetricsDashboard
	return w.c.Columns(cur, []string{"Leading Indicators", "Lagging Indicators"},
		[][]string{m.LeadingIndicators, m.LaggingIndicators}, w.width())
}

func (w *writer) operatingCadence(cur Cursor) Cursor {
	oc := w.rec.OperatingCadence
	return w.c.Columns(cur, []string{"Daily", "Weekly", "Monthly"},
		[][]string{oc.Daily, oc.Weekly, oc.Monthly}, w.width())
}

// matrixLabels interleaves wins and bets so the first win lands top-left
// and the first bet top-right.
func matrixLabels(dm types.DecisionMatrix) []string {
	at := func(list []string, i int) string {
		if i < len(list) {
			return list[i]
		}
		return ""
	}
	return []string{
		at(dm.ImmediateWins, 0),
		at(dm.StrategicBets, 0),
		at(dm.ImmediateWins, 1),
		at(dm.StrategicBets, 1),
	}
}

func (w *writer) decisionsAndRisks(cur Cursor) Cursor {
	y := w.c.Ensure(cur.Y, matrixHeight)
	y = DrawPriorityMatrix(w.s, matrixLabels(w.rec.DecisionMatrix), cur.X, y, w.width(), matrixHeight)
	cur = Cursor{X: cur.X, Y: y + 16}

	dm := w.rec.DecisionMatrix
	cur = w.c.Columns(cur, []string{"Immediate Wins", "Strategic Bets"},
		[][]string{dm.ImmediateWins, dm.StrategicBets}, w.width()).Down(8)
	return w.riskRegister(cur, w.rec.RiskRegister)
}

// riskRegister draws one fixed-height card per risk, breaking between cards.
func (w *writer) riskRegister(cur Cursor, risks []types.Risk) Cursor {
	cur = w.c.Subheading(cur, "Risk Register")
	y := cur.Y
	for _, r := range risks {
		y = w.c.Ensure(y, riskCardHeight)
		w.riskCard(cur.X, y, w.width(), r)
		y += riskCardHeight + riskCardGap
	}
	return Cursor{X: cur.X, Y: y}
}

func impactColor(impact string) Color {
	switch l := strings.ToLower(impact); {
	case strings.Contains(l, "high"):
		return Color{192, 57, 43}
	case strings.Contains(l, "med"):
		return colorTierC
	default:
		return colorTierB
	}
}

func (w *writer) riskCard(x, y, width float64, r types.Risk) {
	s := w.s
	RoundedFilledRect(s, x, y, width, riskCardHeight, 6, colorCard)
	RoundedFilledRect(s, x, y, 5, riskCardHeight, 2.5, impactColor(r.Impact))

	impactW := 0.0
	if r.Impact != "" {
		impact := "Impact: " + r.Impact
		setFont(s, 8, true)
		setTextColor(s, impactColor(r.Impact))
		impactW = s.GetStringWidth(impact)
		drawTextLine(s, impact, x+width-12-impactW, y+9, 8)
	}

	setFont(s, 10, true)
	setTextColor(s, colorTextDark)
	if lines := fitLines(s, r.Risk, width-40-impactW, 1); len(lines) > 0 {
		drawTextLine(s, lines[0], x+14, y+8, 10)
	}
	if r.Owner != "" {
		setFont(s, 8.5, false)
		setTextColor(s, colorTextMuted)
		drawTextLine(s, "Owner: "+r.Owner, x+14, y+23, 8.5)
	}
	if r.Mitigation != "" {
		setFont(s, 9, false)
		setTextColor(s, colorTextDark)
		for i, line := range fitLines(s, "Mitigation: "+r.Mitigation, width-28, 2) {
			drawTextLine(s, line, x+14, y+35+float64(i)*11, 9)
		}
	}
}

func (w *writer) talentAndMeetings(cur Cursor) Cursor {
	tp := w.rec.TalentPlan
	cur = w.c.Columns(cur, []string{"Accelerate", "Stabilize", "Delegate"},
		[][]string{tp.Accelerate, tp.Stabilize, tp.Delegate}, w.width()).Down(8)

	cur = w.c.Subheading(cur, "Meeting Blueprint")
	mb := w.rec.MeetingBlueprint
	cur = w.meetingCard(cur, "Team Meeting", mb.Team)
	cur = w.meetingCard(cur, "Leadership Sync", mb.Leadership)
	return w.meetingCard(cur, "Stakeholder Review", mb.Stakeholder)
}

// meetingCard falls back to a subheading and bullets when the card would not
// fit a page.
func (w *writer) meetingCard(cur Cursor, name string, m types.Meeting) Cursor {
	const pad = 12.0
	s := w.s
	inner := w.width() - 2*pad
	purposeOpts := TextOptions{Width: inner, Size: bodySize, Color: colorTextDark, LineGap: 4}
	agendaOpts := TextOptions{Width: inner - bulletIndent, Size: 9, Color: colorTextDark}

	h := 2*pad + lineHeight(11) + 4 + measureWrappedText(s, m.Purpose, purposeOpts)
	for _, item := range m.Agenda {
		h += measureWrappedText(s, item, agendaOpts) + 2
	}
	if !w.c.fitsOnPage(h) {
		heading := name
		if m.Cadence != "" {
			heading += " (" + m.Cadence + ")"
		}
		cur = w.c.Subheading(cur, heading)
		cur = w.c.Paragraph(cur, m.Purpose, TextOptions{Width: w.width(), Size: bodySize, Color: colorTextDark, LineGap: 4})
		return w.c.BulletList(cur, m.Agenda, w.width()).Down(10)
	}
	y := w.c.Ensure(cur.Y, h)
	RoundedFilledRect(s, cur.X, y, w.width(), h, 8, colorCard)

	setFont(s, 11, true)
	setTextColor(s, colorPrimary)
	drawTextLine(s, name, cur.X+pad, y+pad, 11)
	if m.Cadence != "" {
		setFont(s, 9, false)
		setTextColor(s, colorTextMuted)
		drawTextLine(s, m.Cadence, cur.X+w.width()-pad-s.GetStringWidth(m.Cadence), y+pad+1, 9)
	}
	ty := DrawWrappedText(s, m.Purpose, cur.X+pad, y+pad+lineHeight(11)+4, purposeOpts)
	for _, item := range m.Agenda {
		drawBulletDot(s, cur.X+pad, ty, 9, colorSecondary)
		ty = DrawWrappedText(s, item, cur.X+pad+bulletIndent, ty, agendaOpts) + 2
	}
	return Cursor{X: cur.X, Y: y + h + 10}
}

func (w *writer) roadmap(cur Cursor) Cursor {
	months := w.rec.Roadmap.Phases()
	var phases [3]TimelinePhase
	for i, m := range months {
		phases[i] = TimelinePhase{
			Label:   fmt.Sprintf("DAYS %d-%d", i*30+1, (i+1)*30),
			Title:   m.Title,
			Caption: m.Theme,
		}
	}
	y := w.c.Ensure(cur.Y, 120)
	y = DrawTimeline(w.s, phases, cur.X, y, w.width())
	cur = Cursor{X: cur.X, Y: y + 12}

	for i, m := range months {
		heading := fmt.Sprintf("Month %d", i+1)
		if m.Title != "" {
			heading += ": " + m.Title
		}
		cur = w.c.Subheading(cur, heading)
		cur = w.c.BulletList(cur, m.Actions, w.width()).Down(6)
	}
	return cur
}

func (w *writer) firstWeek(cur Cursor) Cursor {
	const pad = 12.0
	s := w.s
	opts := TextOptions{Width: w.width() - 2*pad - 60, Size: bodySize, Color: colorTextDark}
	y := cur.Y
	for i, item := range w.rec.FirstWeekPlan {
		h := math.Max(measureWrappedText(s, item, opts), lineHeight(bodySize)) + 2*pad
		if !w.c.fitsOnPage(h) {
			next := w.c.Subheading(Cursor{X: cur.X, Y: y}, fmt.Sprintf("Day %d", i+1))
			y = w.c.Paragraph(next, item, TextOptions{Width: w.width(), Size: bodySize, Color: colorTextDark}).Y + 8
			continue
		}
		y = w.c.Ensure(y, h)
		RoundedFilledRect(s, cur.X, y, w.width(), h, 8, colorCard)
		RoundedFilledRect(s, cur.X, y, 52, h, 8, colorPrimary)
		setFont(s, 9, true)
		setTextColor(s, colorWhite)
		drawCentered(s, fmt.Sprintf("DAY %d", i+1), cur.X+26, y+h/2-5, 9)
		DrawWrappedText(s, item, cur.X+60+pad, y+pad, opts)
		y += h + 8
	}
	return Cursor{X: cur.X, Y: y}
}

func (w *writer) nextStep(cur Cursor) Cursor {
	cur = w.c.Subheading(cur, "Communication Script")
	cur = w.c.Paragraph(cur, w.rec.CommunicationScript, w.body())

	s := w.s
	const ctaH = 96.0
	y := w.c.Ensure(cur.Y, ctaH)
	RoundedFilledRect(s, cur.X, y, w.width(), ctaH, 10, colorPrimary)
	setFont(s, 16, true)
	setTextColor(s, colorWhite)
	drawTextLine(s, "Book a call", cur.X+18, y+16, 16)
	DrawWrappedText(s, "Walk through this report with a coach and turn it into a plan for your next 90 days.",
		cur.X+18, y+40, TextOptions{Width: w.width() - 36, Size: 10, Color: colorCallout})
	if w.opts.CallURL != "" {
		setFont(s, 10, true)
		setTextColor(s, colorAccent)
		drawTextLine(s, w.opts.CallURL, cur.X+18, y+72, 10)
	}
	cur = Cursor{X: cur.X, Y: y + ctaH + 16}

	if w.rec.CallAgenda != nil {
		cur = w.c.Subheading(cur, "On the call")
		cur = w.c.BulletList(cur, w.rec.CallAgenda, w.width())
	}
	return cur
}
