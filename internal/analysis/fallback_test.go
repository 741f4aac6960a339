package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadership-report/internal/types"
)

func TestFallback_Deterministic(t *testing.T) {
	a := Fallback(sampleAnswers())
	b := Fallback(sampleAnswers())
	assert.Equal(t, a, b)
}

func TestFallback_IsValid(t *testing.T) {
	answers := []*types.Answers{
		sampleAnswers(),
		{Email: "x@y.co", Role: "Director"},
		{Email: "x@y.co", Role: "Lead", YearsLeading: 40, SelfRatings: map[string]int{"empathy": 1}},
	}
	for _, in := range answers {
		rec := Fallback(in)
		require.NoError(t, rec.Validate())
		assert.GreaterOrEqual(t, rec.LeadershipScore, MinLeadershipScore)
		assert.LessOrEqual(t, rec.LeadershipScore, MaxLeadershipScore)
		assert.Len(t, rec.Competencies, len(DefaultCompetencies))
		assert.Len(t, rec.TopGrowthAreas, MaxGrowthAreas)
		assert.NotNil(t, rec.CallAgenda)
	}
}

func TestFallback_UsesSelfRatings(t *testing.T) {
	rec := Fallback(sampleAnswers())
	scores := map[string]int{}
	for _, c := range rec.Competencies {
		scores[c.Name] = c.Score
	}
	assert.Equal(t, 84, scores["Communication"])
	assert.Equal(t, 62, scores["Strategic Thinking"])
	assert.Equal(t, 95, scores["Execution"])
	assert.Equal(t, 64, scores["Team Development"], "unrated starts from experience")
}

func TestFallback_ArchetypeFollowsStrongest(t *testing.T) {
	rec := Fallback(sampleAnswers())
	assert.Equal(t, "The Driver", rec.Archetype.Name)
	// Weakest competency leads the growth areas.
	assert.Equal(t, growthPlays["Strategic Thinking"].Title, rec.TopGrowthAreas[0].Title)
}

func TestFallback_DoesNotShareTemplates(t *testing.T) {
	rec := Fallback(sampleAnswers())
	rec.Archetype.Traits[0] = "mutated"
	rec.TopGrowthAreas[0].ActionSteps[0] = "mutated"

	again := Fallback(sampleAnswers())
	assert.NotEqual(t, "mutated", again.Archetype.Traits[0])
	assert.NotEqual(t, "mutated", again.TopGrowthAreas[0].ActionSteps[0])
}
