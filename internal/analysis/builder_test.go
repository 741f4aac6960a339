package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/leadership-report/internal/llm"
	"github.com/jonathan/leadership-report/internal/schemas"
	"github.com/jonathan/leadership-report/internal/types"
)

// fakeClient returns responses in order, then response for every later call.
type fakeClient struct {
	responses []string
	response  string
	err       error
	system    string
	prompt    string
	prompts   []string
	tier      llm.ModelTier
	calls     int
}

func (f *fakeClient) GenerateJSON(_ context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	f.calls++
	f.system, f.prompt, f.tier = system, prompt, tier
	f.prompts = append(f.prompts, prompt)
	if len(f.responses) > 0 {
		next := f.responses[0]
		f.responses = f.responses[1:]
		return next, f.err
	}
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

const modelOutput = `{
  "leadershipScore": 99,
  "leadershipStage": "Scaling Manager",
  "executiveSummary": "You have built trust quickly.",
  "competencies": [
    {"name": "Execution", "score": 88},
    {"name": "execution", "score": 10},
    {"name": "Communication", "score": 100, "level": "Emerging"},
    {"name": "Coaching", "score": 58}
  ],
  "archetype": {"name": "The Builder", "traits": ["a","b","c","d","e","f","g","h"]},
  "riskRegister": [{"risk": "Burnout", "impact": "critical", "owner": "You", "mitigation": "Rest"}],
  "callAgenda": ["Review"]
}`

func sampleAnswers() *types.Answers {
	return &types.Answers{
		Name:             "Sam",
		Email:            "sam@example.com",
		Role:             "Engineering Manager",
		TeamSize:         7,
		YearsLeading:     2,
		BiggestChallenge: "Delegating well",
		Goals:            []string{"Ship the platform rewrite", "Hire two engineers"},
		FocusAreas:       []string{"delegation"},
		SelfRatings:      map[string]int{"communication": 4, "strategy": 2, "execution": 5},
	}
}

func TestBuild_ModelOutputIsNormalized(t *testing.T) {
	client := &fakeClient{response: modelOutput}
	b := NewBuilder(client, zerolog.Nop())

	rec, src, err := b.Build(context.Background(), sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, src)
	assert.Equal(t, llm.TierAdvanced, client.tier)
	assert.Contains(t, client.prompt, "Engineering Manager")
	assert.Contains(t, client.prompt, "communication=4, execution=5, strategy=2")
	assert.NotEmpty(t, client.system)

	assert.Equal(t, MaxLeadershipScore, rec.LeadershipScore)
	names := make([]string, len(rec.Competencies))
	for i, c := range rec.Competencies {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Execution", "Communication", "Coaching", "Strategic Thinking"}, names)
	assert.Equal(t, 100, rec.Competencies[1].Score)
	assert.Equal(t, types.LevelAdvanced, rec.Competencies[1].Level)
	assert.Equal(t, types.LevelEmerging, rec.Competencies[2].Level)
	assert.Len(t, rec.Archetype.Traits, MaxTraits)
	assert.Equal(t, "High", rec.RiskRegister[0].Impact)
	assert.Equal(t, []string{"Review"}, rec.CallAgenda)
}

func TestBuild_FallsBack(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
		calls  int
	}{
		{"model error", &fakeClient{err: errors.New("quota exceeded")}, 1},
		{"not json", &fakeClient{response: "sorry, I cannot help"}, 2},
		{"schema violation", &fakeClient{response: `{"leadershipScore": 70}`}, 2},
		{"too few competencies", &fakeClient{response: `{"leadershipScore":70,"leadershipStage":"x","executiveSummary":"y","competencies":[{"name":"A","score":1},{"name":"B","score":2}]}`}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, src, err := NewBuilder(tt.client, zerolog.Nop()).Build(context.Background(), sampleAnswers())
			require.NoError(t, err)
			assert.Equal(t, SourceFallback, src)
			assert.Equal(t, tt.calls, tt.client.calls, "one repair request before falling back")
			assert.Equal(t, Fallback(sampleAnswers()), rec)
		})
	}
}

func TestBuild_RepairsInvalidOutput(t *testing.T) {
	bad := `{"leadershipScore": 70}`
	client := &fakeClient{responses: []string{bad, modelOutput}}

	rec, src, err := NewBuilder(client, zerolog.Nop()).Build(context.Background(), sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, src)
	assert.Equal(t, "Scaling Manager", rec.LeadershipStage)

	require.Len(t, client.prompts, 2)
	repair := client.prompts[1]
	assert.Contains(t, repair, bad, "previous answer is quoted")
	assert.Contains(t, repair, "competencies")
	assert.NotContains(t, repair, "{{.")
}

func TestBuild_WithoutRepairs(t *testing.T) {
	client := &fakeClient{responses: []string{`{"leadershipScore": 70}`, modelOutput}}

	_, src, err := NewBuilder(client, zerolog.Nop()).WithRepairs(0).Build(context.Background(), sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, 1, client.calls)
}

func TestBuild_RepairRequestFails(t *testing.T) {
	client := &fakeClient{response: "not json"}
	b := NewBuilder(client, zerolog.Nop()).WithRepairs(3)

	_, src, err := b.Build(context.Background(), sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, 4, client.calls)
}

func TestDescribeProblems(t *testing.T) {
	assert.Equal(t, "- boom", describeProblems(errors.New("boom")))

	ve := &schemas.ValidationError{}
	for i := 0; i < maxProblems+2; i++ {
		ve.Errors = append(ve.Errors, schemas.FieldError{Field: fmt.Sprintf("f%d", i), Message: "bad"})
	}
	got := describeProblems(ve)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, maxProblems+1)
	assert.Equal(t, "- f0: bad", lines[0])
	assert.Equal(t, "- ... and 2 more", lines[maxProblems])
}

func TestBuild_NilClientUsesFallback(t *testing.T) {
	rec, src, err := NewBuilder(nil, zerolog.Nop()).Build(context.Background(), sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, src)
	require.NoError(t, rec.Validate())
}

func TestBuild_InvalidAnswers(t *testing.T) {
	b := NewBuilder(&fakeClient{response: modelOutput}, zerolog.Nop())

	_, _, err := b.Build(context.Background(), nil)
	var be *BuildError
	require.ErrorAs(t, err, &be)

	answers := sampleAnswers()
	answers.Email = "not-an-email"
	_, _, err = b.Build(context.Background(), answers)
	require.ErrorAs(t, err, &be)
	assert.Contains(t, err.Error(), "invalid answers")
}

func TestBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &fakeClient{err: context.Canceled}

	_, _, err := NewBuilder(client, zerolog.Nop()).Build(ctx, sampleAnswers())
	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithTier(t *testing.T) {
	client := &fakeClient{response: modelOutput}
	base := NewBuilder(client, zerolog.Nop())
	lite := base.WithTier(llm.TierLite)

	_, _, err := lite.Build(context.Background(), sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, llm.TierLite, client.tier)
	assert.Equal(t, llm.TierAdvanced, base.tier)
}

func TestPromptData_MissingFields(t *testing.T) {
	data := PromptData(&types.Answers{Email: "a@b.co", Role: "Lead"})
	assert.Equal(t, "not provided", data["Name"])
	assert.Equal(t, "not provided", data["SelfRatings"])
	assert.Equal(t, "0", data["TeamSize"])
	for k, v := range data {
		assert.False(t, strings.Contains(v, "{{"), k)
	}
}
