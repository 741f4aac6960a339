package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadership-report/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check answers or analysis JSON against its schema",
	Long: `Validate a JSON document against the embedded answers or analysis schema, or
against a schema file given with --schema. Analysis documents are also checked
against the renderer's record rules.`,
	RunE: runValidate,
}

var (
	validateKind   string
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "analysis", "Document kind: analysis or answers")
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to the JSON document")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema file to use instead of the embedded one")

	_ = validateCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := validateFile(validateKind, validateInput, validateSchema); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid %s document\n", validateInput, validateKind)
	return nil
}

func validateFile(kind, path, schemaPath string) error {
	if kind != "analysis" && kind != "answers" {
		return fmt.Errorf("unknown --kind %q, expected analysis or answers", kind)
	}
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, path); err != nil {
			return err
		}
	}

	switch kind {
	case "answers":
		if schemaPath == "" {
			if _, err := readAnswers(path); err != nil {
				return err
			}
		}
	case "analysis":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if schemaPath == "" {
			if err := schemas.ValidateAnalysis(string(data)); err != nil {
				return err
			}
		}
		rec, err := readAnalysis(path)
		if err != nil {
			return err
		}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("analysis cannot be rendered: %w", err)
		}
	}
	return nil
}
