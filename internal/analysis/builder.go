// Package analysis turns questionnaire answers into a normalised
// AnalysisRecord, asking the LLM first and falling back to a deterministic
// rule-based analysis when the model is unavailable or returns bad output.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/leadership-report/internal/llm"
	"github.com/jonathan/leadership-report/internal/metrics"
	"github.com/jonathan/leadership-report/internal/prompts"
	"github.com/jonathan/leadership-report/internal/schemas"
	"github.com/jonathan/leadership-report/internal/types"
)

// Source records which path produced an analysis.
type Source string

// Analysis sources.
const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Fallback reasons, also used as metric labels.
const (
	reasonNoClient = "no_client"
	reasonLLM      = "llm_error"
	reasonSchema   = "schema"
	reasonDecode   = "decode"
	reasonInvalid  = "invalid"
)

// DefaultRepairAttempts is how many times a builder asks the model to fix
// output that failed validation before falling back.
const DefaultRepairAttempts = 1

// Builder produces analyses. A nil client means every build uses the fallback.
type Builder struct {
	client  llm.Client
	tier    llm.ModelTier
	repairs int
	logger  zerolog.Logger
}

// NewBuilder returns a builder that asks client at the advanced tier.
func NewBuilder(client llm.Client, logger zerolog.Logger) *Builder {
	return &Builder{client: client, tier: llm.TierAdvanced, repairs: DefaultRepairAttempts, logger: logger}
}

// WithTier returns a copy of b that uses tier for generation.
func (b *Builder) WithTier(tier llm.ModelTier) *Builder {
	cp := *b
	cp.tier = tier
	return &cp
}

// WithRepairs returns a copy of b that makes at most n repair requests.
func (b *Builder) WithRepairs(n int) *Builder {
	cp := *b
	cp.repairs = max(n, 0)
	return &cp
}

// Build validates answers and returns a normalised analysis together with
// the path that produced it. Model output that fails the schema or record
// validation is sent back for repair up to the builder's repair budget; a
// model error or an exhausted budget falls back to the rule-based analysis.
// Only unusable answers or an ended context produce an error.
func (b *Builder) Build(ctx context.Context, answers *types.Answers) (*types.AnalysisRecord, Source, error) {
	if answers == nil {
		return nil, "", &BuildError{Message: "answers are required"}
	}
	if err := answers.Validate(); err != nil {
		return nil, "", &BuildError{Message: "invalid answers", Cause: err}
	}
	if b.client == nil {
		return b.fallback(answers, reasonNoClient, nil), SourceFallback, nil
	}

	system := prompts.MustGet(prompts.AnalysisFile, prompts.KeyAnalysisSystem)
	tmpl, data := prompts.MustGet(prompts.AnalysisFile, prompts.KeyAnalysisUser), PromptData(answers)
	if missing := prompts.Missing(tmpl, data); len(missing) > 0 {
		b.logger.Warn().Strs("placeholders", missing).Msg("analysis prompt has unfilled placeholders")
	}
	prompt := prompts.Format(tmpl, data)

	for attempt := 0; ; attempt++ {
		raw, err := b.client.GenerateJSON(ctx, system, prompt, b.tier)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, "", &BuildError{Message: "context finished during generation", Cause: ctxErr}
			}
			return b.fallback(answers, reasonLLM, err), SourceFallback, nil
		}

		rec, reason, err := parse(raw)
		if err == nil {
			b.logger.Debug().
				Int("score", rec.LeadershipScore).
				Int("competencies", len(rec.Competencies)).
				Int("repairs", attempt).
				Msg("analysis generated by model")
			return rec, SourceLLM, nil
		}
		if attempt >= b.repairs {
			return b.fallback(answers, reason, err), SourceFallback, nil
		}
		b.logger.Debug().Str("reason", reason).Err(err).Int("attempt", attempt+1).Msg("requesting analysis repair")
		prompt = repairPrompt(raw, err)
	}
}

// parse checks raw model output and turns it into a normalised record.
// On failure it also returns the fallback reason.
func parse(raw string) (*types.AnalysisRecord, string, error) {
	if err := schemas.ValidateAnalysis(raw); err != nil {
		return nil, reasonSchema, err
	}
	var rec types.AnalysisRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, reasonDecode, err
	}
	Normalize(&rec)
	if err := rec.Validate(); err != nil {
		return nil, reasonInvalid, err
	}
	return &rec, "", nil
}

func (b *Builder) fallback(answers *types.Answers, reason string, cause error) *types.AnalysisRecord {
	metrics.ObserveFallback(reason)
	ev := b.logger.Warn().Str("reason", reason)
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Msg("using fallback analysis")
	return Fallback(answers)
}

// PromptData flattens answers into prompt placeholders. Ratings are listed in
// name order so the prompt is stable for identical answers.
func PromptData(a *types.Answers) map[string]string {
	ratings := make([]string, 0, len(a.SelfRatings))
	for _, name := range sortedKeys(a.SelfRatings) {
		ratings = append(ratings, fmt.Sprintf("%s=%d", name, a.SelfRatings[name]))
	}
	return map[string]string{
		"Name":             orDefault(a.Name, "not provided"),
		"Role":             a.Role,
		"TeamSize":         strconv.Itoa(a.TeamSize),
		"YearsLeading":     strconv.Itoa(a.YearsLeading),
		"BiggestChallenge": orDefault(a.BiggestChallenge, "not provided"),
		"Goals":            orDefault(strings.Join(a.Goals, "; "), "not provided"),
		"FocusAreas":       orDefault(strings.Join(a.FocusAreas, ", "), "not provided"),
		"SelfRatings":      orDefault(strings.Join(ratings, ", "), "not provided"),
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
