package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultListLimit caps ListReportsByLead when no limit is given.
const DefaultListLimit = 50

// SaveReport stores a generated report and returns the saved row without
// re-reading the PDF body.
func (db *DB) SaveReport(ctx context.Context, in *ReportInput) (*Report, error) {
	if in == nil || len(in.PDF) == 0 {
		return nil, fmt.Errorf("report body is required")
	}
	analysis, err := json.Marshal(in.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	report := &Report{
		LeadID:   in.LeadID,
		Filename: in.Filename,
		PDF:      in.PDF,
		Analysis: analysis,
		Source:   in.Source,
		Pages:    in.Pages,
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO reports (lead_id, filename, pdf, analysis, source, pages)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		in.LeadID, in.Filename, in.PDF, analysis, in.Source, in.Pages,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

// GetReport retrieves a report including its PDF. A missing report yields nil, nil.
func (db *DB) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	var r Report
	err := db.pool.QueryRow(ctx,
		`SELECT id, lead_id, filename, pdf, analysis, source, pages, created_at
		 FROM reports WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.LeadID, &r.Filename, &r.PDF, &r.Analysis, &r.Source, &r.Pages, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &r, nil
}

// ListReportsByLead returns a lead's reports, newest first.
func (db *DB) ListReportsByLead(ctx context.Context, leadID uuid.UUID, limit int) ([]ReportSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, source, pages, created_at
		 FROM reports WHERE lead_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		leadID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var out []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.Filename, &s.Source, &s.Pages, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return out, nil
}
