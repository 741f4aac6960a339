package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisSchemaPath = "../../schemas/analysis.schema.json"

func TestValidateJSON_AnalysisFiles(t *testing.T) {
	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{
			name:      "valid analysis",
			jsonFile:  filepath.Join("testdata", "valid_analysis.json"),
			wantError: false,
		},
		{
			name:      "wrong type and too few competencies",
			jsonFile:  filepath.Join("testdata", "invalid_analysis.json"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(analysisSchemaPath, tt.jsonFile)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %T: %v", err, err)
			assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid_analysis.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(analysisSchemaPath, "testdata/nonexistent.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	malformed := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{ invalid json }"), 0o644))

	assert.Error(t, ValidateJSON(analysisSchemaPath, malformed))
}

func TestValidateAnalysis(t *testing.T) {
	valid, err := os.ReadFile(filepath.Join("testdata", "valid_analysis.json"))
	require.NoError(t, err)
	assert.NoError(t, ValidateAnalysis(string(valid)))

	invalid, err := os.ReadFile(filepath.Join("testdata", "invalid_analysis.json"))
	require.NoError(t, err)
	err = ValidateAnalysis(string(invalid))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	fields := map[string]bool{}
	for _, fe := range validationErr.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["leadershipScore"], "%v", fields)
	assert.True(t, fields["competencies"], "%v", fields)

	assert.Error(t, ValidateAnalysis("not json"))
}

func TestValidateAnswers(t *testing.T) {
	assert.NoError(t, ValidateAnswers([]byte(`{"email": "a@b.co", "role": "Engineering Manager", "teamSize": 6, "selfRatings": {"Coaching": 4}}`)))

	err := ValidateAnswers([]byte(`{"email": "a@b.co", "selfRatings": {"Coaching": 9}}`))
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 2)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "competencies", Message: "Array must have at least 3 items"},
		{Field: "leadershipScore", Message: "Invalid type"},
	}}
	msg := err.Error()
	assert.Contains(t, msg, "1. competencies: Array must have at least 3 items")
	assert.Contains(t, msg, "2. leadershipScore: Invalid type")
}
