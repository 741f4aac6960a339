package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/leadership-report/internal/analysis"
	"github.com/jonathan/leadership-report/internal/config"
	"github.com/jonathan/leadership-report/internal/llm"
	"github.com/jonathan/leadership-report/internal/schemas"
	"github.com/jonathan/leadership-report/internal/types"
)

// dateLayout is the format accepted by --date.
const dateLayout = "2006-01-02"

// newBuilder returns an analysis builder backed by the LLM when an API key
// is configured, otherwise one that always uses the deterministic fallback.
// The returned close func releases the client.
func newBuilder(ctx context.Context, cfg config.Config) (*analysis.Builder, func(), error) {
	if cfg.APIKey == "" {
		logger.Info().Msg("no API key configured, analyses use the rule-based fallback")
		return analysis.NewBuilder(nil, logger), func() {}, nil
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierAdvanced, cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close LLM client")
		}
	}
	return analysis.NewBuilder(client, logger), closeFn, nil
}

// readAnswers loads questionnaire answers from path, checking them against
// the answers schema first.
func readAnswers(path string) (*types.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}
	if err := schemas.ValidateAnswers(data); err != nil {
		return nil, fmt.Errorf("answers file %s: %w", path, err)
	}
	var answers types.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers file: %w", err)
	}
	return &answers, nil
}

// readAnalysis loads an AnalysisRecord from path. Validation is left to the
// renderer so malformed records surface as invalid-analysis errors.
func readAnalysis(path string) (*types.AnalysisRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis file: %w", err)
	}
	var rec types.AnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse analysis file %s: %w", path, err)
	}
	return &rec, nil
}

// writeJSON writes v to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// parseDate parses --date, defaulting to today in UTC.
func parseDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
