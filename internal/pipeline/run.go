// Package pipeline provides the high-level orchestration for report generation:
// answers, then analysis, then PDF, then optional persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/leadership-report/internal/analysis"
	"github.com/jonathan/leadership-report/internal/db"
	"github.com/jonathan/leadership-report/internal/metrics"
	"github.com/jonathan/leadership-report/internal/report"
	"github.com/jonathan/leadership-report/internal/types"
)

// Pipeline steps, in emission order.
const (
	StepAnalysis = "analysis"
	StepRender   = "render"
	StepPersist  = "persist"
	StepComplete = "complete"
)

// Step categories.
const (
	CategoryAnalysis  = "analysis"
	CategoryReport    = "report"
	CategoryLifecycle = "lifecycle"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Store persists leads and reports. *db.DB satisfies it.
type Store interface {
	CreateLead(ctx context.Context, answers *types.Answers) (uuid.UUID, error)
	SaveReport(ctx context.Context, in *db.ReportInput) (*db.Report, error)
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Answers *types.Answers
	Builder *analysis.Builder
	Report  report.Options
	// Store is optional; without it nothing is persisted.
	Store      Store
	Logger     zerolog.Logger
	OnProgress ProgressCallback
}

// Result is the outcome of a pipeline run.
type Result struct {
	RunID    uuid.UUID
	Analysis *types.AnalysisRecord
	Source   analysis.Source
	Report   *report.Result
	LeadID   *uuid.UUID
	ReportID *uuid.UUID
}

// Summary is the completion payload sent to progress listeners.
type Summary struct {
	RunID    string `json:"run_id"`
	ReportID string `json:"report_id,omitempty"`
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Pages    int    `json:"pages"`
}

// Summary returns the completion payload for r.
func (r *Result) Summary() Summary {
	s := Summary{
		RunID:    r.RunID.String(),
		Filename: r.Report.Filename,
		Source:   string(r.Source),
		Pages:    r.Report.Pages,
	}
	if r.ReportID != nil {
		s.ReportID = r.ReportID.String()
	}
	return s
}

func emitProgress(opts *RunOptions, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID.String(),
			Content:  content,
		})
	}
}

// Run builds the analysis, renders the report and persists both when a
// store is configured. Persistence failures are logged and do not fail the run.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Builder == nil {
		return nil, errors.New("pipeline: analysis builder is required")
	}
	if opts.Report.GeneratedAt.IsZero() {
		opts.Report.GeneratedAt = time.Now().UTC()
	}
	res := &Result{RunID: uuid.New()}
	logger := opts.Logger.With().Str("run_id", res.RunID.String()).Logger()

	rec, source, err := opts.Builder.Build(ctx, opts.Answers)
	if err != nil {
		metrics.ObserveReport("none", metrics.OutcomeInvalid)
		return nil, err
	}
	res.Analysis, res.Source = rec, source
	emitProgress(&opts, res.RunID, StepAnalysis, CategoryAnalysis,
		fmt.Sprintf("Built %s analysis: %s, score %d", source, rec.LeadershipStage, rec.LeadershipScore),
		map[string]any{"source": source, "score": rec.LeadershipScore, "stage": rec.LeadershipStage})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Report.PreparedFor == "" && opts.Answers != nil {
		opts.Report.PreparedFor = opts.Answers.Name
	}
	out, err := Render(rec, opts.Report)
	if err != nil {
		if report.IsRenderFailure(err) {
			logger.Error().Err(err).Str("source", string(source)).Msg("layout failed on a built analysis")
		}
		metrics.ObserveReport(string(source), outcomeFor(err))
		return nil, err
	}
	res.Report = out
	emitProgress(&opts, res.RunID, StepRender, CategoryReport,
		fmt.Sprintf("Rendered %s (%d pages)", out.Filename, out.Pages), nil)

	if opts.Store != nil {
		persist(ctx, &opts, res, logger)
	}

	metrics.ObserveReport(string(source), metrics.OutcomeSuccess)
	logger.Info().
		Str("source", string(source)).
		Int("pages", out.Pages).
		Int("bytes", len(out.PDF)).
		Msg("report generated")
	emitProgress(&opts, res.RunID, StepComplete, CategoryLifecycle, "Report ready", res.Summary())
	return res, nil
}

func persist(ctx context.Context, opts *RunOptions, res *Result, logger zerolog.Logger) {
	var leadID *uuid.UUID
	if opts.Answers != nil {
		id, err := opts.Store.CreateLead(ctx, opts.Answers)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to store lead")
		} else {
			leadID = &id
		}
	}
	res.LeadID = leadID

	saved, err := opts.Store.SaveReport(ctx, &db.ReportInput{
		LeadID:   leadID,
		Filename: res.Report.Filename,
		PDF:      res.Report.PDF,
		Analysis: res.Analysis,
		Source:   string(res.Source),
		Pages:    res.Report.Pages,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to store report")
		return
	}
	res.ReportID = &saved.ID
	emitProgress(opts, res.RunID, StepPersist, CategoryLifecycle,
		fmt.Sprintf("Stored report %s", saved.ID), nil)
}

// Render generates a report for rec and records render metrics.
func Render(rec *types.AnalysisRecord, opts report.Options) (*report.Result, error) {
	start := time.Now()
	out, err := report.NewGenerator(opts).Generate(rec)
	if err != nil {
		metrics.ObserveRender(outcomeFor(err), 0, time.Since(start))
		return nil, err
	}
	metrics.ObserveRender(metrics.OutcomeSuccess, out.Pages, time.Since(start))
	return out, nil
}

func outcomeFor(err error) string {
	if report.IsInvalidAnalysis(err) || errors.Is(err, report.ErrMissingGeneratedAt) {
		return metrics.OutcomeInvalid
	}
	return metrics.OutcomeError
}
