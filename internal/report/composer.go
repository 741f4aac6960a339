package report

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	subheadingSize   = 12.0
	subheadingHeight = 22.0
	bodySize         = 10.0
	bulletIndent     = 14.0
	bulletGap        = 4.0
	columnGap        = 16.0
	calloutPad       = 12.0
)

// Composer owns pagination for one document. It tracks the running section
// label so continuation pages repeat the page header, and stamps each page's
// footer exactly once.
type Composer struct {
	s       Surface
	geo     PageGeometry
	brand   string
	label   string
	stamped bool
}

// NewComposer returns a composer drawing onto s with the given frame.
func NewComposer(s Surface, geo PageGeometry, brand string) *Composer {
	return &Composer{s: s, geo: geo, brand: brand, stamped: true}
}

// Geometry returns the page frame.
func (c *Composer) Geometry() PageGeometry {
	return c.geo
}

// Pages returns the number of physical pages emitted so far.
func (c *Composer) Pages() int {
	return c.s.PageNo()
}

func (c *Composer) newPage() {
	c.stampFooter()
	c.s.AddPage()
	c.stamped = false
}

// StartCover opens the cover page, which has a footer but no running header.
func (c *Composer) StartCover() Cursor {
	c.label = ""
	c.newPage()
	return Cursor{X: c.geo.Margin, Y: c.geo.Margin}
}

// StartSection opens a new page for a section, emits the running header
// with label and draws the section title once. The returned cursor sits
// below the title.
func (c *Composer) StartSection(label, title string) Cursor {
	c.label = label
	c.newPage()
	c.drawHeader()
	y := DrawSectionTitle(c.s, title, c.geo.Margin, c.geo.ContentTop, c.geo.ContentWidth())
	return Cursor{X: c.geo.Margin, Y: y}
}

// EndSection stamps the footer of the section's last page.
func (c *Composer) EndSection() {
	c.stampFooter()
}

// CheckPageBreak reports whether a block of needed points fits below y.
// When it does not, the current page is finalised, a continuation page with
// the same header is started and the content top is returned. A block taller
// than a whole page is drawn from the top of a fresh page rather than
// breaking again.
func (c *Composer) CheckPageBreak(y, needed float64) (float64, bool) {
	if y+needed <= c.geo.PrintableBottom() || y <= c.geo.ContentTop {
		return y, false
	}
	c.newPage()
	if c.label != "" {
		c.drawHeader()
	}
	return c.geo.ContentTop, true
}

// fitsOnPage reports whether a block of h points fits on an empty content page.
func (c *Composer) fitsOnPage(h float64) bool {
	return h <= c.geo.PrintableBottom()-c.geo.ContentTop
}

// Ensure is CheckPageBreak as a PageBreaker.
func (c *Composer) Ensure(y, needed float64) float64 {
	y, _ = c.CheckPageBreak(y, needed)
	return y
}

func (c *Composer) drawHeader() {
	s, g := c.s, c.geo
	RoundedFilledRect(s, g.Margin, 24, 24, 24, 6, colorPrimary)
	initial, _ := utf8.DecodeRuneInString(c.brand)
	if initial != utf8.RuneError {
		setFont(s, 13, true)
		setTextColor(s, colorWhite)
		drawCentered(s, string(initial), g.Margin+12, 29, 13)
	}
	setFont(s, 11, true)
	setTextColor(s, colorPrimary)
	drawTextLine(s, c.brand, g.Margin+32, 30, 11)

	setFont(s, 9, false)
	setTextColor(s, colorTextMuted)
	label := strings.ToUpper(c.label)
	drawTextLine(s, label, g.Width-g.Margin-s.GetStringWidth(label), 31, 9)

	drawDivider(s, g.Margin, g.HeaderHeight-8, g.ContentWidth())
}

func (c *Composer) stampFooter() {
	if c.stamped || c.s.PageNo() == 0 {
		return
	}
	s, g := c.s, c.geo
	top := g.Height - g.FooterReserve + 12
	drawDivider(s, g.Margin, top, g.ContentWidth())

	setFont(s, 8, false)
	setTextColor(s, colorTextMuted)
	drawTextLine(s, c.brand, g.Margin, top+8, 8)
	num := fmt.Sprintf("Page %d of %d", s.PageNo(), g.NominalPages)
	drawTextLine(s, num, g.Width-g.Margin-s.GetStringWidth(num), top+8, 8)
	c.stamped = true
}

// Subheading draws a small heading and keeps it on the same page as the
// first line that follows it.
func (c *Composer) Subheading(cur Cursor, text string) Cursor {
	y := c.Ensure(cur.Y, subheadingHeight+lineHeight(bodySize))
	setFont(c.s, subheadingSize, true)
	setTextColor(c.s, colorSecondary)
	drawTextLine(c.s, text, cur.X, y+2, subheadingSize)
	return Cursor{X: cur.X, Y: y + subheadingHeight}
}

// Paragraph draws wrapped body text. Text that fits on one page is kept
// together; longer text breaks between lines.
func (c *Composer) Paragraph(cur Cursor, text string, opts TextOptions) Cursor {
	if text == "" {
		return cur
	}
	setFont(c.s, opts.Size, opts.Bold)
	lines := WrapLines(c.s, text, opts.Width)
	lh := lineHeight(opts.Size)
	y := cur.Y
	if total := float64(len(lines)) * lh; c.fitsOnPage(total) {
		y = c.Ensure(y, total)
	}
	for _, line := range lines {
		if ny, broke := c.CheckPageBreak(y, lh); broke {
			y = ny
		}
		setFont(c.s, opts.Size, opts.Bold)
		setTextColor(c.s, opts.Color)
		drawTextLine(c.s, line, cur.X, y, opts.Size)
		y += lh
	}
	return Cursor{X: cur.X, Y: y + opts.LineGap}
}

func bulletOptions(width float64) TextOptions {
	return TextOptions{Width: width - bulletIndent, Size: bodySize, Color: colorTextDark}
}

// BulletList draws one dotted item per entry, breaking between items. An
// item taller than a page breaks between its lines. An empty list draws
// nothing.
func (c *Composer) BulletList(cur Cursor, items []string, width float64) Cursor {
	opts := bulletOptions(width)
	y := cur.Y
	for _, item := range items {
		h := measureWrappedText(c.s, item, opts)
		if !c.fitsOnPage(h) {
			y = c.Ensure(y, lineHeight(bodySize))
			drawBulletDot(c.s, cur.X, y, bodySize, colorAccent)
			y = c.Paragraph(Cursor{X: cur.X + bulletIndent, Y: y}, item, opts).Y + bulletGap
			continue
		}
		y = c.Ensure(y, h)
		drawBulletDot(c.s, cur.X, y, bodySize, colorAccent)
		y = DrawWrappedText(c.s, item, cur.X+bulletIndent, y, opts) + bulletGap
	}
	return Cursor{X: cur.X, Y: y}
}

// Columns lays lists side by side under their titles. Rows are paginated
// together so a column never runs ahead of its neighbours.
func (c *Composer) Columns(cur Cursor, titles []string, lists [][]string, width float64) Cursor {
	n := len(titles)
	if n == 0 {
		return cur
	}
	colW := (width - columnGap*float64(n-1)) / float64(n)
	colX := func(i int) float64 { return cur.X + float64(i)*(colW+columnGap) }

	y := c.Ensure(cur.Y, subheadingHeight+lineHeight(bodySize))
	setFont(c.s, 11, true)
	setTextColor(c.s, colorSecondary)
	for i, title := range titles {
		drawTextLine(c.s, title, colX(i), y+2, 11)
		RoundedFilledRect(c.s, colX(i), y+17, colW, 1.5, 0.75, colorAccent)
	}
	y += subheadingHeight + 2

	rows := 0
	for _, l := range lists {
		rows = max(rows, len(l))
	}
	opts := bulletOptions(colW)
	for r := 0; r < rows; r++ {
		rowH := 0.0
		for _, l := range lists {
			if r < len(l) {
				rowH = math.Max(rowH, measureWrappedText(c.s, l[r], opts))
			}
		}
		y = c.Ensure(y, rowH)
		for i, l := range lists {
			if r >= len(l) {
				continue
			}
			drawBulletDot(c.s, colX(i), y, bodySize, colorAccent)
			DrawWrappedText(c.s, l[r], colX(i)+bulletIndent, y, opts)
		}
		y += rowH + bulletGap
	}
	return Cursor{X: cur.X, Y: y}
}

// Callout draws text on a tinted card with a bold label, keeping the card
// on one page. Text too long for a single page is drawn as a subheading and
// a paragraph instead.
func (c *Composer) Callout(cur Cursor, label, text string, width float64, fill Color) Cursor {
	opts := TextOptions{Width: width - 2*calloutPad, Size: bodySize, Color: colorTextDark}
	h := 2*calloutPad + lineHeight(10) + 4 + measureWrappedText(c.s, text, opts)
	if !c.fitsOnPage(h) {
		cur = c.Subheading(cur, label)
		return c.Paragraph(cur, text, TextOptions{Width: width, Size: bodySize, Color: colorTextDark, LineGap: 12})
	}
	y := c.Ensure(cur.Y, h)
	RoundedFilledRect(c.s, cur.X, y, width, h, 8, fill)
	RoundedFilledRect(c.s, cur.X, y, 4, h, 2, colorAccent)
	setFont(c.s, 10, true)
	setTextColor(c.s, colorPrimary)
	drawTextLine(c.s, label, cur.X+calloutPad, y+calloutPad, 10)
	DrawWrappedText(c.s, text, cur.X+calloutPad, y+calloutPad+lineHeight(10)+4, opts)
	return Cursor{X: cur.X, Y: y + h + 12}
}
