package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonathan/leadership-report/internal/types"
)

// DefaultBrandName is printed in headers and footers when Options leaves it empty.
const DefaultBrandName = "Leadership Compass"

// Options carries everything a report needs besides the analysis itself.
type Options struct {
	// GeneratedAt is printed on the cover and fixes the document dates,
	// so identical inputs yield identical bytes. Required.
	GeneratedAt time.Time
	// Geometry overrides DefaultGeometry when set.
	Geometry    *PageGeometry
	BrandName   string
	PreparedFor string
	CallURL     string
}

func (o Options) withDefaults() Options {
	if o.BrandName == "" {
		o.BrandName = DefaultBrandName
	}
	return o
}

func (o Options) geometry() PageGeometry {
	if o.Geometry != nil {
		return *o.Geometry
	}
	return DefaultGeometry()
}

// Result is a finished report.
type Result struct {
	PDF      []byte
	Pages    int
	Filename string
}

// Generate validates rec and renders it to PDF bytes. Invalid input fails
// with an *InvalidAnalysisError before anything is drawn; a surface failure
// fails with a *RenderError and no bytes.
func Generate(rec *types.AnalysisRecord, opts Options) ([]byte, error) {
	res, err := NewGenerator(opts).Generate(rec)
	if err != nil {
		return nil, err
	}
	return res.PDF, nil
}

// Generator renders reports with a fixed set of options. It holds no
// per-document state and is safe for concurrent use.
type Generator struct {
	opts Options
}

// NewGenerator returns a generator for opts.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts.withDefaults()}
}

// Generate renders rec. The generation date comes from the generator's options.
func (g *Generator) Generate(rec *types.AnalysisRecord) (*Result, error) {
	return g.GenerateAt(rec, g.opts.GeneratedAt)
}

// GenerateAt renders rec stamped with at.
func (g *Generator) GenerateAt(rec *types.AnalysisRecord, at time.Time) (*Result, error) {
	opts := g.opts
	opts.GeneratedAt = at
	if err := validate(rec, opts); err != nil {
		return nil, err
	}

	pdf := newPDFSurface(opts.geometry())
	pdf.SetCreationDate(opts.GeneratedAt)
	pdf.SetModificationDate(opts.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle("Leadership Report", true)
	pdf.SetAuthor(opts.BrandName, true)
	pdf.SetCreator(opts.BrandName, true)

	pages, err := render(pdf, rec, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.output(&buf); err != nil {
		return nil, &RenderError{Message: "PDF output error", Cause: err}
	}
	return &Result{
		PDF:      buf.Bytes(),
		Pages:    pages,
		Filename: SuggestedFilename(rec.LeadershipStage, opts.GeneratedAt),
	}, nil
}

func validate(rec *types.AnalysisRecord, opts Options) error {
	if rec == nil {
		return &InvalidAnalysisError{Message: "analysis record is nil"}
	}
	if err := rec.Validate(); err != nil {
		return &InvalidAnalysisError{Message: "analysis record failed validation", Cause: err}
	}
	if opts.GeneratedAt.IsZero() {
		return ErrMissingGeneratedAt
	}
	return nil
}

// render draws every section in order onto s and returns the page count.
// The surface error state is checked after each section.
func render(s Surface, rec *types.AnalysisRecord, opts Options) (int, error) {
	opts = opts.withDefaults()
	c := NewComposer(s, opts.geometry(), opts.BrandName)
	w := &writer{c: c, s: s, rec: rec, opts: opts}

	for _, sec := range sections {
		var cur Cursor
		if sec.cover {
			cur = c.StartCover()
		} else {
			cur = c.StartSection(sec.label, sec.title)
		}
		sec.draw(w, cur)
		c.EndSection()
		if s.Err() {
			name := sec.title
			if sec.cover {
				name = sec.label
			}
			return 0, &RenderError{Message: fmt.Sprintf("section %q", name), Cause: s.Error()}
		}
	}
	return c.Pages(), nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SuggestedFilename names a report after the leader's stage and the
// generation date, e.g. leadership-report-first-time-manager-2024-03-01.pdf.
func SuggestedFilename(stage string, at time.Time) string {
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(stage), "-"), "-")
	if slug == "" {
		slug = "leader"
	}
	return fmt.Sprintf("leadership-report-%s-%s.pdf", slug, at.Format("2006-01-02"))
}
