package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/leadership-report/internal/types"
)

var testDate = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func minimalRecord() *types.AnalysisRecord {
	return &types.AnalysisRecord{
		LeadershipScore: 70,
		LeadershipStage: "First-Time Manager",
		Competencies: []types.Competency{
			{Name: "Strategic Thinking", Score: 55, Level: types.LevelEmerging},
			{Name: "Team Development", Score: 70, Level: types.LevelDeveloping},
			{Name: "Communication", Score: 80, Level: types.LevelStrong},
			{Name: "Execution", Score: 95, Level: types.LevelAdvanced},
		},
	}
}

func fullRecord() *types.AnalysisRecord {
	rec := minimalRecord()
	rec.ExecutiveSummary = strings.Repeat("You lead with clarity and care, and your team trusts your judgement. ", 12)
	rec.KeyInsight = "Your biggest lever is delegating decisions, not tasks."
	rec.NinetyDayOutcome = "A team that runs its own weekly rhythm while you focus on strategy."
	rec.Competencies = append(rec.Competencies, types.Competency{Name: "Coaching", Score: 30, Level: types.LevelEmerging})
	rec.Archetype = types.Archetype{
		Name:        "The Steady Builder",
		Traits:      []string{"Reliable", "Calm under pressure", "Detail oriented", "Fair", "Pragmatic", "Curious"},
		Description: "You build durable systems and people trust them.",
	}
	rec.TopGrowthAreas = []types.GrowthArea{
		{Title: "Delegation", Description: "Hand over ownership.", ActionSteps: []string{"List recurring decisions", "Assign an owner to each"}},
		{Title: "Strategic communication", Description: "Tell the why.", ActionSteps: []string{"Write a one-page narrative"}},
	}
	rec.BlindSpots = []string{"Jumps into details", "Avoids conflict"}
	rec.StrengthLevers = []string{"Deep trust", "Operational rigour"}
	rec.StakeholderPlaybook = []string{"Meet your manager weekly", "Share a monthly update with peers"}
	rec.KPIs = []string{"Team engagement", "Delivery predictability"}
	rec.FirstWeekPlan = []string{"Hold 1:1s with every report", "Map stakeholders", "Review the backlog", "Set team norms", "Share your 90-day intent"}
	rec.OperatingCadence = types.OperatingCadence{
		Daily:   []string{"Stand-up"},
		Weekly:  []string{"1:1s", "Team sync"},
		Monthly: []string{"Retro", "Skip-levels", "Roadmap review"},
	}
	rec.MetricsDashboard = types.MetricsDashboard{
		LeadingIndicators: []string{"1:1 completion"},
		LaggingIndicators: []string{"Attrition", "NPS"},
	}
	rec.DecisionMatrix = types.DecisionMatrix{
		ImmediateWins: []string{"Clarify on-call", "Fix review queue", "Third win"},
		StrategicBets: []string{"Platform rewrite", "Hire a lead"},
	}
	for i := 0; i < 9; i++ {
		rec.RiskRegister = append(rec.RiskRegister, types.Risk{
			Risk: fmt.Sprintf("Key person dependency %d", i+1), Impact: "High", Owner: "You", Mitigation: "Pair and document",
		})
	}
	rec.TalentPlan = types.TalentPlan{Accelerate: []string{"Ana"}, Stabilize: []string{"Ben"}, Delegate: []string{"Chi"}}
	rec.MeetingBlueprint = types.MeetingBlueprint{
		Team:        types.Meeting{Purpose: "Align on priorities", Cadence: "Weekly", Agenda: []string{"Wins", "Blockers"}},
		Leadership:  types.Meeting{Purpose: "Escalations", Cadence: "Bi-weekly"},
		Stakeholder: types.Meeting{Purpose: "Expectations", Cadence: "Monthly", Agenda: []string{"Roadmap"}},
	}
	rec.Roadmap = types.Roadmap{
		Month1: types.RoadmapPhase{Title: "Listen", Theme: "Understand the team", Actions: []string{"1:1s"}},
		Month2: types.RoadmapPhase{Title: "Shape", Theme: "Set direction", Actions: []string{"Team charter"}},
		Month3: types.RoadmapPhase{Title: "Scale", Theme: "Build rhythm", Actions: []string{"Delegate rituals"}},
	}
	rec.CommunicationScript = "Here is what I heard, here is what we will do next, and here is how you can help."
	rec.CallAgenda = []string{"Review your score", "Pick one growth area"}
	return rec
}

func renderRecorded(t *testing.T, rec *types.AnalysisRecord) *recorder {
	t.Helper()
	r := newRecorder()
	_, err := render(r, rec, Options{GeneratedAt: testDate})
	require.NoError(t, err)
	return r
}

func onPages(r *recorder, pages []int, kind string) []op {
	in := map[int]bool{}
	for _, p := range pages {
		in[p] = true
	}
	var out []op
	for _, o := range r.ops {
		if o.kind == kind && in[o.page] {
			out = append(out, o)
		}
	}
	return out
}

func TestRender_MinimalRecord(t *testing.T) {
	rec := minimalRecord()
	r := renderRecorded(t, rec)

	assert.Equal(t, len(sections), r.PageNo(), "no section overflows")

	var cover []string
	for _, o := range r.ops {
		if o.kind == "text" && o.page == 1 {
			cover = append(cover, o.text)
		}
	}
	assert.Contains(t, cover, "70")

	compPages := r.pagesWith("Competency Scores")
	require.Equal(t, []int{3}, compPages)

	cards := 0
	for _, o := range onPages(r, compPages, "rrect") {
		if o.h == competencyCardHeight {
			cards++
		}
	}
	assert.Equal(t, 4, cards)

	// Card names are drawn at the card's inner left edge, in input order.
	g := DefaultGeometry()
	var names []string
	for _, o := range onPages(r, compPages, "text") {
		if o.x == g.Margin+14 {
			for _, c := range rec.Competencies {
				if o.text == c.Name {
					names = append(names, o.text)
				}
			}
		}
	}
	assert.Equal(t, []string{"Strategic Thinking", "Team Development", "Communication", "Execution"}, names)

	cx := g.Margin + g.ContentWidth()/2
	axes := 0
	for _, o := range onPages(r, compPages, "line") {
		if o.x == cx {
			axes++
		}
	}
	assert.Equal(t, 4, axes)
	polys := onPages(r, compPages, "polygon")
	require.Len(t, polys, 1)
	assert.Len(t, polys[0].points, 4)
}

func TestRender_EmptyListsKeepSectionHeaders(t *testing.T) {
	rec := minimalRecord()
	rec.BlindSpots = []string{}
	rec.StrengthLevers = []string{}
	r := renderRecorded(t, rec)

	pages := r.pagesWith("Self-Awareness")
	require.Len(t, pages, 1)
	assert.Len(t, r.pagesWith("Blind Spots"), 1)
	assert.Len(t, r.pagesWith("Strength Levers"), 1)
	assert.Empty(t, onPages(r, pages, "circle"), "no list items")
}

func TestRender_FooterNumbersIncrementByOne(t *testing.T) {
	for name, rec := range map[string]*types.AnalysisRecord{
		"minimal": minimalRecord(),
		"full":    fullRecord(),
	} {
		t.Run(name, func(t *testing.T) {
			r := renderRecorded(t, rec)
			got := footers(r)
			require.Len(t, got, r.PageNo())
			for i, f := range got {
				assert.Equal(t, fmt.Sprintf("Page %d of 13", i+1), f)
			}
		})
	}
}

func TestRender_SectionOrder(t *testing.T) {
	r := renderRecorded(t, fullRecord())

	last := 0
	for _, name := range SectionNames()[1:] {
		pages := r.pagesWith(name)
		require.NotEmpty(t, pages, name)
		assert.Greater(t, pages[0], last, name)
		last = pages[0]
	}
}

func TestRender_CallAgendaOnlyWhenPresent(t *testing.T) {
	rec := fullRecord()
	r := renderRecorded(t, rec)
	assert.Len(t, r.pagesWith("On the call"), 1)

	rec.CallAgenda = nil
	r = renderRecorded(t, rec)
	assert.Empty(t, r.pagesWith("On the call"))
	assert.Len(t, r.pagesWith("Book a call"), 1)
}

func TestRender_SurfaceFailure(t *testing.T) {
	r := newRecorder()
	r.failAt = 3

	pages, err := render(r, minimalRecord(), Options{GeneratedAt: testDate})
	require.Error(t, err)
	assert.Zero(t, pages)
	assert.True(t, IsRenderFailure(err))
	assert.False(t, IsInvalidAnalysis(err))
	assert.Contains(t, err.Error(), "Competency Scores")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 3, r.PageNo(), "generation stops at the failing section")
}

func TestGenerate(t *testing.T) {
	t.Run("produces a PDF", func(t *testing.T) {
		pdf, err := Generate(fullRecord(), Options{GeneratedAt: testDate})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := Generate(fullRecord(), Options{GeneratedAt: testDate})
		require.NoError(t, err)
		b, err := Generate(fullRecord(), Options{GeneratedAt: testDate})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("non latin-1 text", func(t *testing.T) {
		rec := minimalRecord()
		rec.ExecutiveSummary = "Café culture – “quoted” • 90‑day plan ✓"
		_, err := Generate(rec, Options{GeneratedAt: testDate})
		require.NoError(t, err)
	})
}

func TestGenerate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		rec   *types.AnalysisRecord
		opts  Options
		check func(t *testing.T, err error)
	}{
		{
			name: "nil record",
			rec:  nil,
			opts: Options{GeneratedAt: testDate},
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidAnalysis(err))
			},
		},
		{
			name: "too few competencies",
			rec: func() *types.AnalysisRecord {
				rec := minimalRecord()
				rec.Competencies = rec.Competencies[:2]
				return rec
			}(),
			opts: Options{GeneratedAt: testDate},
			check: func(t *testing.T, err error) {
				assert.True(t, IsInvalidAnalysis(err))
				var inv *InvalidAnalysisError
				require.True(t, errors.As(err, &inv))
				assert.Error(t, inv.Cause)
			},
		},
		{
			name: "missing generation date",
			rec:  minimalRecord(),
			opts: Options{},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMissingGeneratedAt)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf, err := Generate(tt.rec, tt.opts)
			require.Error(t, err)
			assert.Nil(t, pdf)
			tt.check(t, err)
		})
	}
}

func TestGenerator_Result(t *testing.T) {
	g := NewGenerator(Options{GeneratedAt: testDate, CallURL: "https://example.com/book"})
	res, err := g.Generate(minimalRecord())
	require.NoError(t, err)

	assert.Equal(t, len(sections), res.Pages)
	assert.Equal(t, "leadership-report-first-time-manager-2024-03-01.pdf", res.Filename)
	assert.True(t, bytes.HasPrefix(res.PDF, []byte("%PDF")))
}

func TestSuggestedFilename(t *testing.T) {
	assert.Equal(t, "leadership-report-senior-leader-2024-03-01.pdf", SuggestedFilename("  Senior Leader! ", testDate))
	assert.Equal(t, "leadership-report-leader-2024-03-01.pdf", SuggestedFilename("", testDate))
}

func TestGenerate_ConcurrentIsolation(t *testing.T) {
	defer goleak.VerifyNone(t)

	want, err := Generate(fullRecord(), Options{GeneratedAt: testDate})
	require.NoError(t, err)

	results := make([][]byte, 8)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			pdf, err := Generate(fullRecord(), Options{GeneratedAt: testDate})
			results[i] = pdf
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
