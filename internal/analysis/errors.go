package analysis

import "fmt"

// BuildError is returned when an analysis cannot be produced at all, either
// because the answers are unusable or the caller's context ended.
type BuildError struct {
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis build failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis build failed: %s", e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}
