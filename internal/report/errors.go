// Package report lays out a leadership analysis as a paginated PDF report.
package report

import (
	"errors"
	"fmt"
)

// ErrMissingGeneratedAt is returned when Options carries no generation date.
var ErrMissingGeneratedAt = errors.New("report: generation date is required")

// InvalidAnalysisError means the analysis record cannot be laid out.
// It is raised before anything is drawn.
type InvalidAnalysisError struct {
	Message string
	Cause   error
}

func (e *InvalidAnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid analysis: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid analysis: %s", e.Message)
}

func (e *InvalidAnalysisError) Unwrap() error {
	return e.Cause
}

// RenderError means the drawing surface failed part way through a document.
// No partial output accompanies it.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failure: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render failure: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// IsInvalidAnalysis reports whether err is, or wraps, an InvalidAnalysisError.
func IsInvalidAnalysis(err error) bool {
	var target *InvalidAnalysisError
	return errors.As(err, &target)
}

// IsRenderFailure reports whether err is, or wraps, a RenderError.
func IsRenderFailure(err error) bool {
	var target *RenderError
	return errors.As(err, &target)
}
