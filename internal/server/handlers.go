package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/leadership-report/internal/db"
	"github.com/jonathan/leadership-report/internal/pipeline"
	"github.com/jonathan/leadership-report/internal/schemas"
	"github.com/jonathan/leadership-report/internal/types"
)

// maxBodyBytes caps request bodies; answers and analyses are small.
const maxBodyBytes = 1 << 20

// ReportResponse is the body returned by POST /api/report.
type ReportResponse struct {
	RunID     string `json:"run_id"`
	ReportID  string `json:"report_id,omitempty"`
	Filename  string `json:"filename"`
	Source    string `json:"source"`
	Pages     int    `json:"pages"`
	PDFBase64 string `json:"pdf_base64"`
}

// StreamComplete is the payload of the final event on /api/report/stream.
// The PDF is inlined only when the report was not stored, since there is
// then no report_id to fetch it by.
type StreamComplete struct {
	pipeline.Summary
	PDFBase64 string `json:"pdf_base64,omitempty"`
}

// RenderRequest is the body accepted by POST /api/report/render.
type RenderRequest struct {
	Analysis    *types.AnalysisRecord `json:"analysis"`
	PreparedFor string                `json:"prepared_for,omitempty"`
	GeneratedAt *time.Time            `json:"generated_at,omitempty"`
}

// readAnswers decodes the request body as questionnaire answers after
// checking it against the answers schema.
func readAnswers(w http.ResponseWriter, r *http.Request) (*types.Answers, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if !json.Valid(body) {
		return nil, &ErrValidation{Field: "body", Message: "request body is not valid JSON"}
	}
	if err := schemas.ValidateAnswers(body); err != nil {
		return nil, err
	}
	var answers types.Answers
	if err := json.Unmarshal(body, &answers); err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return &answers, nil
}

func (s *Server) runOptions(answers *types.Answers) pipeline.RunOptions {
	return pipeline.RunOptions{
		Answers: answers,
		Builder: s.builder,
		Report:  s.reportOptions(answers.Name),
		Store:   s.store,
		Logger:  s.logger,
	}
}

// handleReport runs the whole pipeline and returns the PDF inline.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	answers, err := readAnswers(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	res, err := pipeline.Run(r.Context(), s.runOptions(answers))
	if err != nil {
		s.failure(w, err)
		return
	}

	sum := res.Summary()
	s.jsonResponse(w, http.StatusOK, ReportResponse{
		RunID:     sum.RunID,
		ReportID:  sum.ReportID,
		Filename:  sum.Filename,
		Source:    sum.Source,
		Pages:     sum.Pages,
		PDFBase64: base64.StdEncoding.EncodeToString(res.Report.PDF),
	})
}

// handleReportStream runs the pipeline with SSE progress updates. A stored
// report is fetched afterwards from /api/reports/{id}; otherwise the PDF
// travels in the completion event.
func (s *Server) handleReportStream(w http.ResponseWriter, r *http.Request) {
	answers, err := readAnswers(w, r)
	if err != nil {
		s.failure(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := s.runOptions(answers)
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if event.Step == pipeline.StepComplete {
			return
		}
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Debug().Err(err).Msg("failed to write progress event")
		}
	}

	res, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	done := StreamComplete{Summary: res.Summary()}
	if done.ReportID == "" {
		done.PDFBase64 = base64.StdEncoding.EncodeToString(res.Report.PDF)
	}
	sse.WriteComplete(done)
}

// handleRender lays out a caller-supplied analysis without running the model.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.failure(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	if req.Analysis == nil {
		s.failure(w, &ErrValidation{Field: "analysis", Message: "is required"})
		return
	}

	opts := s.reportOptions(req.PreparedFor)
	if req.GeneratedAt != nil {
		opts.GeneratedAt = req.GeneratedAt.UTC()
	}
	out, err := pipeline.Render(req.Analysis, opts)
	if err != nil {
		s.failure(w, err)
		return
	}
	writePDF(w, out.Filename, out.PDF)
}

// handleGetReport streams a stored report.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, ErrPersistenceDisabled)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	rep, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		s.failure(w, fmt.Errorf("failed to load report: %w", err))
		return
	}
	if rep == nil {
		s.failure(w, &ErrNotFound{Resource: "report", ID: id.String()})
		return
	}
	writePDF(w, rep.Filename, rep.PDF)
}

// handleListLeadReports lists the reports generated for one lead.
func (s *Server) handleListLeadReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.failure(w, ErrPersistenceDisabled)
		return
	}
	leadID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}
	limit := db.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.failure(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	lead, err := s.store.GetLead(r.Context(), leadID)
	if err != nil {
		s.failure(w, fmt.Errorf("failed to load lead: %w", err))
		return
	}
	if lead == nil {
		s.failure(w, &ErrNotFound{Resource: "lead", ID: leadID.String()})
		return
	}

	reports, err := s.store.ListReportsByLead(r.Context(), leadID, limit)
	if err != nil {
		s.failure(w, fmt.Errorf("failed to list reports: %w", err))
		return
	}
	if reports == nil {
		reports = []db.ReportSummary{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"lead_id": leadID,
		"reports": reports,
		"count":   len(reports),
	})
}

func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
