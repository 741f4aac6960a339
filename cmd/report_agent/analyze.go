package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadership-report/internal/observability"
	"github.com/jonathan/leadership-report/internal/pipeline"
	"github.com/jonathan/leadership-report/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build a leadership analysis from questionnaire answers",
	Long: `Build the AnalysisRecord for a questionnaire submission and print it as JSON.
The LLM is used when an API key is configured; otherwise the rule-based fallback runs.
With --pdf the report is rendered as well.`,
	RunE: runAnalyze,
}

var (
	analyzeAnswersFile string
	analyzeOutFile     string
	analyzePDFFile     string
	analyzeDate        string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeAnswersFile, "answers", "a", "", "Path to answers JSON file")
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Write the analysis JSON here instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzePDFFile, "pdf", "", "Also render the report to this path")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "Generation date YYYY-MM-DD for --pdf (default today)")

	_ = analyzeCmd.MarkFlagRequired("answers")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	answers, err := readAnswers(analyzeAnswersFile)
	if err != nil {
		return err
	}
	at, err := parseDate(analyzeDate, time.Now())
	if err != nil {
		return err
	}

	builder, closeBuilder, err := newBuilder(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeBuilder()

	rec, source, err := builder.Build(ctx, answers)
	if err != nil {
		return err
	}
	if appConfig.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAnalysis(rec, string(source))
	}
	if err := writeJSON(analyzeOutFile, rec); err != nil {
		return err
	}

	if analyzePDFFile == "" {
		return nil
	}
	out, err := pipeline.Render(rec, report.Options{
		GeneratedAt: at,
		BrandName:   appConfig.BrandName,
		PreparedFor: answers.Name,
		CallURL:     appConfig.CallURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(analyzePDFFile, out.PDF, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", analyzePDFFile, err)
	}
	observability.NewPrinter(cmd.ErrOrStderr()).PrintReport(analyzePDFFile, out.Pages, len(out.PDF))
	return nil
}
