package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/leadership-report/internal/types"
)

// ratingAliases maps common self-rating keys onto competency names.
var ratingAliases = map[string]string{
	"strategy":               "Strategic Thinking",
	"strategic thinking":     "Strategic Thinking",
	"team development":       "Team Development",
	"coaching":               "Team Development",
	"delegation":             "Team Development",
	"communication":          "Communication",
	"execution":              "Execution",
	"delivery":               "Execution",
	"emotional intelligence": "Emotional Intelligence",
	"empathy":                "Emotional Intelligence",
	"decision making":        "Decision Making",
	"decisions":              "Decision Making",
}

var archetypes = map[string]types.Archetype{
	"Strategic Thinking": {
		Name:        "The Architect",
		Traits:      []string{"Systems thinker", "Long-range planner", "Connects work to strategy", "Comfortable with ambiguity"},
		Description: "You see how the pieces fit and naturally steer the team toward the work that matters most.",
	},
	"Team Development": {
		Name:        "The Coach",
		Traits:      []string{"Grows people", "Patient teacher", "Gives honest feedback", "Builds trust quickly"},
		Description: "You measure success by how much your people grow and you invest in them deliberately.",
	},
	"Communication": {
		Name:        "The Connector",
		Traits:      []string{"Clear communicator", "Builds alignment", "Reads the room", "Bridges teams"},
		Description: "You keep people informed and aligned, turning complex situations into shared understanding.",
	},
	"Execution": {
		Name:        "The Driver",
		Traits:      []string{"Results focused", "Sets a high bar", "Removes blockers", "Keeps momentum"},
		Description: "You turn plans into outcomes and your team knows what done looks like.",
	},
	"Emotional Intelligence": {
		Name:        "The Anchor",
		Traits:      []string{"Calm under pressure", "Empathetic", "Self-aware", "Creates psychological safety"},
		Description: "You bring steadiness to the team and people feel safe raising problems early.",
	},
	"Decision Making": {
		Name:        "The Navigator",
		Traits:      []string{"Decisive", "Weighs trade-offs", "Owns outcomes", "Balances speed and rigour"},
		Description: "You make calls with incomplete information and help the team move forward with confidence.",
	},
}

var growthPlays = map[string]types.GrowthArea{
	"Strategic Thinking": {
		Title:       "Lift your eyes to the horizon",
		Description: "Spend less time in the day-to-day and more time shaping where the team is heading.",
		ActionSteps: []string{"Block two hours a week for planning", "Write a one-page team strategy", "Review it monthly with your manager"},
	},
	"Team Development": {
		Title:       "Grow the people around you",
		Description: "Make development a visible, recurring part of how you lead rather than an annual event.",
		ActionSteps: []string{"Hold a development conversation with each report", "Delegate one stretch project", "Give specific feedback weekly"},
	},
	"Communication": {
		Title:       "Make the message land",
		Description: "Tighten how you share context so the team hears the same story from you every time.",
		ActionSteps: []string{"Send a weekly written update", "Open meetings with the why", "Ask the team to play back key decisions"},
	},
	"Execution": {
		Title:       "Turn priorities into delivery",
		Description: "Create a simple rhythm that makes commitments visible and keeps work moving.",
		ActionSteps: []string{"Agree three priorities per month", "Track commitments in one place", "Run a short weekly review"},
	},
	"Emotional Intelligence": {
		Title:       "Lead with steadiness",
		Description: "Notice how pressure shows up in you and how it lands on the team.",
		ActionSteps: []string{"Pause before responding in tense moments", "Ask one check-in question per 1:1", "Request feedback on your presence"},
	},
	"Decision Making": {
		Title:       "Decide with clarity",
		Description: "Make it obvious who decides what, and close decisions faster.",
		ActionSteps: []string{"Publish a decision log", "Set a deadline on open decisions", "Name the owner for each call"},
	},
}

// Fallback builds a deterministic analysis from the answers alone. It is used
// when no model is configured or the model output is unusable, and always
// yields a record that passes validation.
func Fallback(a *types.Answers) *types.AnalysisRecord {
	comps := fallbackCompetencies(a)
	total := 0
	for _, c := range comps {
		total += c.Score
	}
	score := clamp(total/len(comps), MinLeadershipScore, MaxLeadershipScore)

	ranked := make([]types.Competency, len(comps))
	copy(ranked, comps)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	strongest, weakest := ranked[0], ranked[len(ranked)-1]

	role := orDefault(a.Role, "leader")
	team := teamPhrase(a.TeamSize)
	challenge := orDefault(a.BiggestChallenge, "balancing delivery with developing the team")

	arch := archetypes[strongest.Name]
	arch.Traits = append([]string(nil), arch.Traits...)

	growth := make([]types.GrowthArea, 0, MaxGrowthAreas)
	for i := len(ranked) - 1; i >= 0 && len(growth) < MaxGrowthAreas; i-- {
		g := growthPlays[ranked[i].Name]
		g.ActionSteps = append([]string(nil), g.ActionSteps...)
		growth = append(growth, g)
	}

	goals := compact(a.Goals)
	firstGoal := "a clear, shared plan for the quarter"
	if len(goals) > 0 {
		firstGoal = goals[0]
	}

	rec := &types.AnalysisRecord{
		LeadershipScore: score,
		LeadershipStage: StageForScore(score),
		ExecutiveSummary: fmt.Sprintf(
			"As a %s leading %s, your strongest lever today is %s. "+
				"Your biggest opportunity is %s, which shapes how you handle %s. "+
				"The next 90 days are about turning that insight into a steady operating rhythm.",
			role, team, strings.ToLower(strongest.Name), strings.ToLower(weakest.Name), strings.ToLower(challenge)),
		KeyInsight:       fmt.Sprintf("Your %s is an asset; investing in %s will multiply it.", strings.ToLower(strongest.Name), strings.ToLower(weakest.Name)),
		NinetyDayOutcome: fmt.Sprintf("In 90 days you have made progress on %s and the team runs on a predictable cadence.", strings.ToLower(firstGoal)),
		Competencies:     comps,
		Archetype:        arch,
		TopGrowthAreas:   growth,
		BlindSpots: []string{
			fmt.Sprintf("Over-relying on %s when a situation calls for something else", strings.ToLower(strongest.Name)),
			"Assuming the team has the same context you do",
			"Solving problems yourself instead of coaching others through them",
		},
		StrengthLevers: []string{
			fmt.Sprintf("Use your %s to set direction in team meetings", strings.ToLower(strongest.Name)),
			"Pair your strengths with a peer who complements them",
			"Make your best habits visible so the team can copy them",
		},
		StakeholderPlaybook: []string{
			"Meet your manager to agree what success looks like this quarter",
			"Map the three peers whose work most affects your team",
			"Share a short monthly update with key stakeholders",
		},
		KPIs: []string{
			"Team commitments delivered on time",
			"Engagement pulse score",
			"Regretted attrition",
		},
		FirstWeekPlan: []string{
			"Monday: list your top three priorities for the quarter",
			"Tuesday: hold a 1:1 focused on growth with one report",
			"Wednesday: share the priorities with the team",
			"Thursday: agree one decision you will delegate",
			"Friday: review the week and plan the next",
		},
		OperatingCadence: types.OperatingCadence{
			Daily:   []string{"Ten-minute priorities check", "Clear blockers for the team"},
			Weekly:  []string{"Team sync", "1:1s with each report", "Written update"},
			Monthly: []string{"Priorities review", "Skip-level conversations", "Retrospective"},
		},
		MetricsDashboard: types.MetricsDashboard{
			LeadingIndicators: []string{"1:1s held", "Decisions closed within a week", "Feedback given"},
			LaggingIndicators: []string{"Delivery against plan", "Engagement score", "Retention"},
		},
		DecisionMatrix: types.DecisionMatrix{
			ImmediateWins: []string{"Publish team priorities", "Start a decision log"},
			StrategicBets: []string{fmt.Sprintf("Build depth in %s", strings.ToLower(weakest.Name)), "Grow a successor"},
		},
		RiskRegister: []types.Risk{
			{Risk: "Priorities shift before the plan lands", Impact: "High", Owner: "You", Mitigation: "Revisit priorities monthly with your manager"},
			{Risk: "Key person dependency", Impact: "Medium", Owner: "You", Mitigation: "Cross-train one teammate per quarter"},
			{Risk: "New habits fade under pressure", Impact: "Medium", Owner: "You", Mitigation: "Put the cadence in the calendar and protect it"},
		},
		TalentPlan: types.TalentPlan{
			Accelerate: []string{"Identify your highest-potential report and give them a stretch goal"},
			Stabilize:  []string{"Agree clear expectations with anyone who is struggling"},
			Delegate:   []string{"Hand off one recurring task you still own"},
		},
		MeetingBlueprint: types.MeetingBlueprint{
			Team: types.Meeting{
				Purpose: "Align on priorities and unblock work",
				Cadence: "Weekly, 45 minutes",
				Agenda:  []string{"Wins", "Priorities", "Blockers"},
			},
			Leadership: types.Meeting{
				Purpose: "Keep your manager ahead of risks",
				Cadence: "Biweekly, 30 minutes",
				Agenda:  []string{"Progress", "Risks", "Asks"},
			},
			Stakeholder: types.Meeting{
				Purpose: "Keep partners informed and aligned",
				Cadence: "Monthly, 30 minutes",
				Agenda:  []string{"Outcomes", "Upcoming changes", "Feedback"},
			},
		},
		Roadmap: types.Roadmap{
			Month1: types.RoadmapPhase{Title: "Listen and learn", Theme: "Build context", Actions: []string{"Hold growth 1:1s", "Map stakeholders", "Agree priorities"}},
			Month2: types.RoadmapPhase{Title: "Set the rhythm", Theme: "Install cadence", Actions: []string{"Launch the weekly sync", "Start the decision log", "Delegate one project"}},
			Month3: types.RoadmapPhase{Title: "Scale impact", Theme: "Raise the bar", Actions: []string{"Review KPIs", "Run a retrospective", "Plan the next quarter"}},
		},
		CommunicationScript: fmt.Sprintf(
			"I want to share where I am focusing over the next 90 days. Our priority is %s. "+
				"I will be working on my own %s and I would value your feedback along the way.",
			strings.ToLower(firstGoal), strings.ToLower(weakest.Name)),
		CallAgenda: []string{
			"Walk through your leadership profile",
			fmt.Sprintf("Build a plan for %s", strings.ToLower(weakest.Name)),
			"Agree your first 30-day commitments",
		},
	}
	return rec
}

// fallbackCompetencies scores the default set. A self rating r in 1..5 maps to
// 40 + 11r; unrated competencies start from experience.
func fallbackCompetencies(a *types.Answers) []types.Competency {
	ratings := make(map[string]int, len(a.SelfRatings))
	for _, key := range sortedKeys(a.SelfRatings) {
		name, ok := ratingAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		if _, dup := ratings[name]; !dup {
			ratings[name] = a.SelfRatings[key]
		}
	}

	base := 60 + 2*min(a.YearsLeading, 10)
	out := make([]types.Competency, 0, len(DefaultCompetencies))
	for _, name := range DefaultCompetencies {
		score := base
		if r, ok := ratings[name]; ok {
			score = 40 + 11*clamp(r, 1, 5)
		}
		out = append(out, types.Competency{Name: name, Score: score, Level: types.LevelForScore(score)})
	}
	return out
}

func teamPhrase(size int) string {
	switch {
	case size <= 0:
		return "a team"
	case size == 1:
		return "one direct report"
	default:
		return fmt.Sprintf("a team of %d", size)
	}
}
