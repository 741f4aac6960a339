package db

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DeclaresTables(t *testing.T) {
	schema := Schema()
	for _, table := range []string{"leads", "reports"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table)
	}
	for _, col := range []string{"answers     JSONB", "pdf         BYTEA", "analysis    JSONB"} {
		assert.Contains(t, schema, col)
	}
	assert.Equal(t, 2, strings.Count(schema, "CREATE TABLE"))
}

func TestReport_JSONOmitsPDF(t *testing.T) {
	lead := uuid.New()
	r := Report{
		ID:        uuid.New(),
		LeadID:    &lead,
		Filename:  "leadership-report-x-2024-03-01.pdf",
		PDF:       []byte("%PDF-1.3"),
		Analysis:  json.RawMessage(`{"leadershipScore":70}`),
		Source:    "fallback",
		Pages:     14,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.NotContains(t, decoded, "pdf")
	assert.NotContains(t, decoded, "PDF")
	assert.Equal(t, lead.String(), decoded["lead_id"])
	assert.Equal(t, float64(70), decoded["analysis"].(map[string]any)["leadershipScore"])
}

func TestReport_LeadIDOptional(t *testing.T) {
	body, err := json.Marshal(Report{Filename: "a.pdf"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "lead_id")
}
