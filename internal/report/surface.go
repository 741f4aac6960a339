package report

import (
	"io"

	"github.com/go-pdf/fpdf"
)

// Surface is the drawing API the layout engine needs. *fpdf.Fpdf provides
// all of it; tests substitute a recorder.
type Surface interface {
	AddPage()
	PageNo() int
	SetFont(familyStr, styleStr string, size float64)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
	SetTextColor(r, g, b int)
	SetLineWidth(width float64)
	Rect(x, y, w, h float64, styleStr string)
	RoundedRect(x, y, w, h, r float64, corners string, stylestr string)
	Line(x1, y1, x2, y2 float64)
	Polygon(points []fpdf.PointType, styleStr string)
	Circle(x, y, r float64, styleStr string)
	Text(x, y float64, txtStr string)
	GetStringWidth(s string) float64
	Err() bool
	Error() error
}

const fontFamily = "Helvetica"

// pdfSurface adapts fpdf's core fonts to UTF-8 input.
type pdfSurface struct {
	*fpdf.Fpdf
	tr func(string) string
}

func newPDFSurface(geo PageGeometry) *pdfSurface {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	pdf.SetMargins(geo.Margin, geo.ContentTop, geo.Margin)
	// Pagination is driven by Composer.CheckPageBreak only.
	pdf.SetAutoPageBreak(false, 0)
	return &pdfSurface{
		Fpdf: pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *pdfSurface) Text(x, y float64, txtStr string) {
	p.Fpdf.Text(x, y, p.tr(txtStr))
}

func (p *pdfSurface) GetStringWidth(s string) float64 {
	return p.Fpdf.GetStringWidth(p.tr(s))
}

func (p *pdfSurface) output(w io.Writer) error {
	return p.Fpdf.Output(w)
}
