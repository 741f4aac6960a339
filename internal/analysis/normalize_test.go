package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadership-report/internal/types"
)

func TestNormalize_ClampsScore(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 55},
		{54, 55},
		{70, 70},
		{96, 95},
		{200, 95},
	}
	for _, tt := range tests {
		rec := &types.AnalysisRecord{LeadershipScore: tt.in}
		Normalize(rec)
		assert.Equal(t, tt.want, rec.LeadershipScore, "input %d", tt.in)
	}
}

func TestNormalize_Competencies(t *testing.T) {
	rec := &types.AnalysisRecord{
		LeadershipScore: 72,
		Competencies: []types.Competency{
			{Name: "  Execution ", Score: -5, Level: types.LevelAdvanced},
			{Name: "", Score: 90},
			{Name: "EXECUTION", Score: 90},
		},
	}
	Normalize(rec)

	assert.Equal(t, []types.Competency{
		{Name: "Execution", Score: 0, Level: types.LevelEmerging},
		{Name: "Strategic Thinking", Score: 72, Level: types.LevelDeveloping},
		{Name: "Team Development", Score: 72, Level: types.LevelDeveloping},
		{Name: "Communication", Score: 72, Level: types.LevelDeveloping},
	}, rec.Competencies)
}

func TestNormalize_KeepsSixCompetencies(t *testing.T) {
	rec := &types.AnalysisRecord{}
	for _, name := range DefaultCompetencies {
		rec.Competencies = append(rec.Competencies, types.Competency{Name: name, Score: 80})
	}
	Normalize(rec)
	assert.Len(t, rec.Competencies, len(DefaultCompetencies))
	for _, c := range rec.Competencies {
		assert.Equal(t, types.LevelStrong, c.Level)
	}
}

func TestNormalize_CapsCompetencies(t *testing.T) {
	rec := &types.AnalysisRecord{LeadershipScore: 70}
	rec.Competencies = append(rec.Competencies, types.Competency{Name: "Execution", Score: 60})
	rec.Competencies = append(rec.Competencies, types.Competency{Name: "execution", Score: 99})
	for i := 1; i <= 8; i++ {
		rec.Competencies = append(rec.Competencies, types.Competency{Name: fmt.Sprintf("Skill %d", i), Score: 70})
	}
	Normalize(rec)

	require.Len(t, rec.Competencies, MaxCompetencies)
	assert.Equal(t, "Execution", rec.Competencies[0].Name)
	assert.Equal(t, 60, rec.Competencies[0].Score)
	assert.Equal(t, "Skill 5", rec.Competencies[MaxCompetencies-1].Name)
}

func TestNormalize_CapsLists(t *testing.T) {
	rec := &types.AnalysisRecord{
		TopGrowthAreas: make([]types.GrowthArea, 5),
		OperatingCadence: types.OperatingCadence{
			Daily:   []string{"a", " ", "b", "c", "d"},
			Weekly:  []string{"w"},
			Monthly: nil,
		},
		BlindSpots: []string{"", "  spot  "},
	}
	Normalize(rec)

	assert.Len(t, rec.TopGrowthAreas, MaxGrowthAreas)
	assert.Equal(t, []string{"a", "b", "c"}, rec.OperatingCadence.Daily)
	assert.Equal(t, []string{"w"}, rec.OperatingCadence.Weekly)
	assert.Empty(t, rec.OperatingCadence.Monthly)
	assert.Equal(t, []string{"spot"}, rec.BlindSpots)
}

func TestNormalize_StageDefault(t *testing.T) {
	rec := &types.AnalysisRecord{LeadershipScore: 80}
	Normalize(rec)
	assert.Equal(t, "Established Leader", rec.LeadershipStage)

	rec = &types.AnalysisRecord{LeadershipScore: 80, LeadershipStage: " Scaling Manager "}
	Normalize(rec)
	assert.Equal(t, "Scaling Manager", rec.LeadershipStage)
}

func TestNormalize_LeavesCallAgendaNil(t *testing.T) {
	rec := &types.AnalysisRecord{}
	Normalize(rec)
	assert.Nil(t, rec.CallAgenda)
}

func TestStageForScore(t *testing.T) {
	assert.Equal(t, "First-Time Manager", StageForScore(55))
	assert.Equal(t, "Developing Manager", StageForScore(65))
	assert.Equal(t, "Established Leader", StageForScore(75))
	assert.Equal(t, "Senior Leader", StageForScore(85))
}
