package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Lead is a questionnaire submission.
type Lead struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	Answers   json.RawMessage `json:"answers"`
	CreatedAt time.Time       `json:"created_at"`
}

// Report is a stored PDF together with the analysis it was drawn from.
type Report struct {
	ID        uuid.UUID       `json:"id"`
	LeadID    *uuid.UUID      `json:"lead_id,omitempty"`
	Filename  string          `json:"filename"`
	PDF       []byte          `json:"-"`
	Analysis  json.RawMessage `json:"analysis"`
	Source    string          `json:"source"`
	Pages     int             `json:"pages"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReportSummary is a Report without the PDF body, for listings.
type ReportSummary struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Source    string    `json:"source"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportInput carries the columns written by SaveReport.
type ReportInput struct {
	LeadID   *uuid.UUID
	Filename string
	PDF      []byte
	Analysis any
	Source   string
	Pages    int
}
