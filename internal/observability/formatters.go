// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/leadership-report/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// scoreBarWidth is the number of cells in a text score bar
	scoreBarWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// ScoreBar renders score (0-100) as a fixed-width text bar.
func ScoreBar(score int) string {
	score = min(max(score, 0), 100)
	filled := (score*scoreBarWidth + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", scoreBarWidth-filled)
}

// PrintAnalysis outputs a human-readable summary of a built analysis.
func (p *Printer) PrintAnalysis(rec *types.AnalysisRecord, source string) {
	if rec == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:     %d / 100\n", rec.LeadershipScore))
	sb.WriteString(fmt.Sprintf("Stage:     %s\n", rec.LeadershipStage))
	sb.WriteString(fmt.Sprintf("Archetype: %s\n", rec.Archetype.Name))
	sb.WriteString(fmt.Sprintf("Source:    %s\n", source))
	sb.WriteString("\n")

	if len(rec.Competencies) > 0 {
		sb.WriteString("Competencies:\n")
		for _, c := range rec.Competencies {
			sb.WriteString(fmt.Sprintf("  %-22s %s %3d\n", truncate(c.Name, 22), ScoreBar(c.Score), c.Score))
		}
		sb.WriteString("\n")
	}

	if len(rec.TopGrowthAreas) > 0 {
		sb.WriteString("Growth Areas:\n")
		for _, g := range rec.TopGrowthAreas {
			sb.WriteString(fmt.Sprintf("  • %s\n", g.Title))
		}
		sb.WriteString("\n")
	}

	if len(rec.RiskRegister) > 0 {
		sb.WriteString("Risks:\n")
		count := min(len(rec.RiskRegister), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := rec.RiskRegister[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", r.Impact, r.Risk))
		}
		if len(rec.RiskRegister) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(rec.RiskRegister)-maxItemsToShow))
		}
	}

	p.printBox("LEADERSHIP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs where a rendered report was written.
func (p *Printer) PrintReport(path string, pages, size int) {
	content := fmt.Sprintf("File:  %s\nPages: %d\nSize:  %s", path, pages, humanBytes(size))
	p.printBox("REPORT WRITTEN", content)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
