package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/leadership-report/internal/observability"
	"github.com/jonathan/leadership-report/internal/pipeline"
	"github.com/jonathan/leadership-report/internal/report"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render analysis JSON files to PDF reports",
	Long: `Render one or more AnalysisRecord JSON files to PDF. Files are rendered in
parallel, each on its own drawing surface. With a single input the output is named
after the leadership stage and date; with several, after each input file.`,
	RunE: runRender,
}

var (
	renderInputs      []string
	renderOutDir      string
	renderDate        string
	renderConcurrency int
	renderPreparedFor string
)

func init() {
	renderCmd.Flags().StringSliceVarP(&renderInputs, "in", "i", nil, "Analysis JSON file (repeatable)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "o", ".", "Directory for the generated PDFs")
	renderCmd.Flags().StringVar(&renderDate, "date", "", "Generation date YYYY-MM-DD (default today)")
	renderCmd.Flags().IntVar(&renderConcurrency, "concurrency", 0, "Parallel renders (default from config)")
	renderCmd.Flags().StringVar(&renderPreparedFor, "prepared-for", "", "Name printed on the cover")

	_ = renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}

// renderJob is the outcome of rendering one input file.
type renderJob struct {
	Input string
	Path  string
	Pages int
	Size  int
}

func runRender(cmd *cobra.Command, _ []string) error {
	at, err := parseDate(renderDate, time.Now())
	if err != nil {
		return err
	}
	concurrency := renderConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Concurrency
	}

	opts := report.Options{
		GeneratedAt: at,
		BrandName:   appConfig.BrandName,
		PreparedFor: renderPreparedFor,
		CallURL:     appConfig.CallURL,
	}
	jobs, err := renderFiles(cmd.Context(), renderInputs, renderOutDir, opts, concurrency)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, j := range jobs {
		printer.PrintReport(j.Path, j.Pages, j.Size)
	}
	return nil
}

// renderFiles renders every input into outDir with at most concurrency
// renders in flight. The first failure cancels the remaining work; results
// keep the input order.
func renderFiles(ctx context.Context, inputs []string, outDir string, opts report.Options, concurrency int) ([]renderJob, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one --in file is required")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var mu sync.Mutex
	names := make(map[string]string, len(inputs))
	jobs := make([]renderJob, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := readAnalysis(in)
			if err != nil {
				return err
			}
			out, err := pipeline.Render(rec, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			name := out.Filename
			if len(inputs) > 1 {
				name = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".pdf"
			}
			mu.Lock()
			prev, dup := names[name]
			names[name] = in
			mu.Unlock()
			if dup {
				return fmt.Errorf("%s and %s would both write %s", prev, in, name)
			}

			path := filepath.Join(outDir, name)
			if err := os.WriteFile(path, out.PDF, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			logger.Debug().Str("input", in).Str("output", path).Int("pages", out.Pages).Msg("rendered report")
			jobs[i] = renderJob{Input: in, Path: path, Pages: out.Pages, Size: len(out.PDF)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return jobs, nil
}
