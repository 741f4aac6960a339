package analysis

import (
	"strings"

	"github.com/jonathan/leadership-report/internal/types"
)

// Normalisation bounds.
const (
	MinLeadershipScore = 55
	MaxLeadershipScore = 95
	MinCompetencies    = 4
	MaxCompetencies    = 6
	MaxTraits          = 6
	MaxGrowthAreas     = 3
	MaxCadenceItems    = 3
)

// DefaultCompetencies is the canonical competency set, in report order.
var DefaultCompetencies = []string{
	"Strategic Thinking",
	"Team Development",
	"Communication",
	"Execution",
	"Emotional Intelligence",
	"Decision Making",
}

// Normalize brings a model-produced analysis within the bounds the report
// layout expects. It edits rec in place.
func Normalize(rec *types.AnalysisRecord) {
	rec.LeadershipScore = clamp(rec.LeadershipScore, MinLeadershipScore, MaxLeadershipScore)
	rec.LeadershipStage = strings.TrimSpace(rec.LeadershipStage)
	if rec.LeadershipStage == "" {
		rec.LeadershipStage = StageForScore(rec.LeadershipScore)
	}
	rec.Competencies = normalizeCompetencies(rec.Competencies, rec.LeadershipScore)

	rec.Archetype.Traits = capList(compact(rec.Archetype.Traits), MaxTraits)
	if len(rec.TopGrowthAreas) > MaxGrowthAreas {
		rec.TopGrowthAreas = rec.TopGrowthAreas[:MaxGrowthAreas]
	}
	for i := range rec.TopGrowthAreas {
		rec.TopGrowthAreas[i].ActionSteps = compact(rec.TopGrowthAreas[i].ActionSteps)
	}

	cad := &rec.OperatingCadence
	cad.Daily = capList(compact(cad.Daily), MaxCadenceItems)
	cad.Weekly = capList(compact(cad.Weekly), MaxCadenceItems)
	cad.Monthly = capList(compact(cad.Monthly), MaxCadenceItems)

	rec.BlindSpots = compact(rec.BlindSpots)
	rec.StrengthLevers = compact(rec.StrengthLevers)
	rec.StakeholderPlaybook = compact(rec.StakeholderPlaybook)
	rec.KPIs = compact(rec.KPIs)
	rec.FirstWeekPlan = compact(rec.FirstWeekPlan)

	for i := range rec.RiskRegister {
		rec.RiskRegister[i].Impact = normalizeImpact(rec.RiskRegister[i].Impact)
	}
}

// StageForScore names the leadership stage for an overall score.
func StageForScore(score int) string {
	switch {
	case score >= 85:
		return "Senior Leader"
	case score >= 75:
		return "Established Leader"
	case score >= 65:
		return "Developing Manager"
	default:
		return "First-Time Manager"
	}
}

func normalizeCompetencies(in []types.Competency, padScore int) []types.Competency {
	seen := make(map[string]bool, len(in))
	out := make([]types.Competency, 0, max(len(in), MinCompetencies))
	for _, c := range in {
		name := strings.TrimSpace(c.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		if len(out) == MaxCompetencies {
			break
		}
		seen[key] = true
		score := clamp(c.Score, 0, 100)
		out = append(out, types.Competency{Name: name, Score: score, Level: types.LevelForScore(score)})
	}
	for _, name := range DefaultCompetencies {
		if len(out) >= MinCompetencies {
			break
		}
		if seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, types.Competency{Name: name, Score: padScore, Level: types.LevelForScore(padScore)})
	}
	return out
}

func normalizeImpact(impact string) string {
	switch strings.ToLower(strings.TrimSpace(impact)) {
	case "high", "critical":
		return "High"
	case "medium", "moderate":
		return "Medium"
	case "low":
		return "Low"
	default:
		return "Medium"
	}
}

// compact trims entries and drops empty ones. A nil or all-empty input
// yields an empty, non-nil slice.
func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
