package report

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// op is one recorded drawing call.
type op struct {
	kind   string
	page   int
	x, y   float64
	w, h   float64
	text   string
	points []fpdf.PointType
}

// recorder is a Surface that records calls instead of drawing. Text width is
// half the font size per rune.
type recorder struct {
	ops    []op
	page   int
	size   float64
	err    error
	failAt int // fail on this AddPage call when > 0
	adds   int
}

func newRecorder() *recorder {
	return &recorder{size: 12}
}

func (r *recorder) add(o op) {
	o.page = r.page
	r.ops = append(r.ops, o)
}

func (r *recorder) AddPage() {
	r.adds++
	if r.failAt > 0 && r.adds == r.failAt {
		r.err = errors.New("disk full")
	}
	r.page++
	r.add(op{kind: "page"})
}

func (r *recorder) PageNo() int { return r.page }

func (r *recorder) SetFont(_, _ string, size float64) { r.size = size }

func (r *recorder) SetFillColor(_, _, _ int) {}
func (r *recorder) SetDrawColor(_, _, _ int) {}
func (r *recorder) SetTextColor(_, _, _ int) {}
func (r *recorder) SetLineWidth(_ float64)   {}

func (r *recorder) Rect(x, y, w, h float64, _ string) {
	r.add(op{kind: "rect", x: x, y: y, w: w, h: h})
}

func (r *recorder) RoundedRect(x, y, w, h, _ float64, _, _ string) {
	r.add(op{kind: "rrect", x: x, y: y, w: w, h: h})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.add(op{kind: "line", x: x1, y: y1, w: x2 - x1, h: y2 - y1})
}

func (r *recorder) Polygon(points []fpdf.PointType, _ string) {
	r.add(op{kind: "polygon", points: points})
}

func (r *recorder) Circle(x, y, rad float64, _ string) {
	r.add(op{kind: "circle", x: x, y: y, w: rad})
}

func (r *recorder) Text(x, y float64, s string) {
	r.add(op{kind: "text", x: x, y: y, text: s})
}

func (r *recorder) GetStringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * 0.5
}

func (r *recorder) Err() bool    { return r.err != nil }
func (r *recorder) Error() error { return r.err }

// texts returns every drawn string in order.
func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.ops {
		if o.kind == "text" {
			out = append(out, o.text)
		}
	}
	return out
}

// textOps returns the text ops whose string contains sub.
func (r *recorder) textOps(sub string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == "text" && strings.Contains(o.text, sub) {
			out = append(out, o)
		}
	}
	return out
}

// pagesWith returns the distinct pages on which a text containing sub appears.
func (r *recorder) pagesWith(sub string) []int {
	var pages []int
	for _, o := range r.textOps(sub) {
		if len(pages) == 0 || pages[len(pages)-1] != o.page {
			pages = append(pages, o.page)
		}
	}
	return pages
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}
