package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/leadership-report/internal/analysis"
	"github.com/jonathan/leadership-report/internal/types"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write demo answers or their fallback analysis",
	Long: `Write a deterministic sample for trying the other commands: the rule-based
analysis of a built-in questionnaire submission, or with --answers the submission itself.`,
	RunE: runSample,
}

var (
	sampleOutFile string
	sampleAnswers bool
)

func init() {
	sampleCmd.Flags().StringVarP(&sampleOutFile, "out", "o", "", "Output file (default stdout)")
	sampleCmd.Flags().BoolVar(&sampleAnswers, "answers", false, "Write the demo answers instead of the analysis")
	rootCmd.AddCommand(sampleCmd)
}

// demoAnswers is a plausible first-time manager submission.
func demoAnswers() *types.Answers {
	return &types.Answers{
		Name:             "Jordan Lee",
		Email:            "jordan@example.com",
		Role:             "Engineering Manager",
		TeamSize:         6,
		YearsLeading:     1,
		BiggestChallenge: "Letting go of hands-on work and delegating decisions",
		Goals: []string{
			"Run a predictable delivery cadence",
			"Grow a senior engineer into a tech lead",
		},
		FocusAreas: []string{"delegation", "feedback"},
		SelfRatings: map[string]int{
			"communication": 4,
			"strategy":      2,
			"execution":     4,
			"coaching":      3,
		},
	}
}

func runSample(_ *cobra.Command, _ []string) error {
	if sampleAnswers {
		return writeJSON(sampleOutFile, demoAnswers())
	}
	return writeJSON(sampleOutFile, analysis.Fallback(demoAnswers()))
}
