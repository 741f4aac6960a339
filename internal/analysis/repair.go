package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/leadership-report/internal/prompts"
	"github.com/jonathan/leadership-report/internal/schemas"
)

// maxProblems caps how many validation problems are quoted back to the model.
const maxProblems = 10

// repairPrompt asks the model to correct previous, listing what was wrong with it.
func repairPrompt(previous string, problem error) string {
	return prompts.Format(prompts.MustGet(prompts.AnalysisFile, prompts.KeyAnalysisRepair), map[string]string{
		"Problems": describeProblems(problem),
		"Previous": previous,
	})
}

// describeProblems renders problem as a bullet list. Schema failures are
// listed field by field.
func describeProblems(problem error) string {
	var ve *schemas.ValidationError
	if !errors.As(problem, &ve) || len(ve.Errors) == 0 {
		return "- " + problem.Error()
	}
	var sb strings.Builder
	for i, fe := range ve.Errors {
		if i == maxProblems {
			fmt.Fprintf(&sb, "- ... and %d more\n", len(ve.Errors)-maxProblems)
			break
		}
		fmt.Fprintf(&sb, "- %s: %s\n", fe.Field, fe.Message)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
