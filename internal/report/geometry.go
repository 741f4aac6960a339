package report

// PageGeometry describes the fixed page frame every section is laid out in.
// Values are PDF points.
type PageGeometry struct {
	Width         float64
	Height        float64
	Margin        float64
	HeaderHeight  float64 // band occupied by the running page header
	ContentTop    float64 // first usable y on a content page
	FooterReserve float64
	SafetyMargin  float64
	NominalPages  int // shown in footers only; overflow adds pages beyond it
}

// DefaultGeometry returns the A4 portrait frame used for production reports.
func DefaultGeometry() PageGeometry {
	return PageGeometry{
		Width:         595.28,
		Height:        841.89,
		Margin:        50,
		HeaderHeight:  70,
		ContentTop:    96,
		FooterReserve: 48,
		SafetyMargin:  12,
		NominalPages:  13,
	}
}

// ContentWidth is the drawable width between the side margins.
func (g PageGeometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// PrintableBottom is the lowest y a block may reach before a page break.
func (g PageGeometry) PrintableBottom() float64 {
	return g.Height - g.FooterReserve - g.SafetyMargin
}

// Cursor is the drawing position on the current page.
type Cursor struct {
	X float64
	Y float64
}

// Down returns the cursor moved dy points down the page.
func (c Cursor) Down(dy float64) Cursor {
	return Cursor{X: c.X, Y: c.Y + dy}
}

// Color is a fill, stroke or text colour as 0-255 RGB components.
type Color [3]int

// Colour scheme - deep teal with warm accents
var (
	colorPrimary    = Color{15, 76, 92}    // Deep teal
	colorSecondary  = Color{38, 132, 155}  // Lighter teal
	colorAccent     = Color{232, 145, 58}  // Warm orange
	colorTierA      = Color{39, 174, 96}   // Green, score >= 80
	colorTierB      = Color{52, 152, 219}  // Blue, score >= 65
	colorTierC      = Color{243, 156, 18}  // Amber
	colorTextDark   = Color{33, 47, 61}    // Body text
	colorTextMuted  = Color{120, 133, 140} // Captions
	colorTrack      = Color{229, 232, 235} // Empty bar track
	colorCard       = Color{246, 248, 249} // Card background
	colorCallout    = Color{231, 243, 246} // Insight callout
	colorGridLine   = Color{214, 219, 223} // Chart rings and axes
	colorRadarFill  = Color{180, 219, 228} // Radar polygon
	colorWhite      = Color{255, 255, 255}
	colorDangerSoft = Color{250, 229, 222} // Risk card band
)

// levelColor keys a level badge to its tier.
func levelColor(level string) Color {
	switch level {
	case "Advanced":
		return colorTierA
	case "Strong":
		return colorTierB
	case "Developing":
		return colorTierC
	default:
		return Color{192, 57, 43}
	}
}

// scoreColor picks the bar fill tier for a score.
func scoreColor(score int) Color {
	switch {
	case score >= 80:
		return colorTierA
	case score >= 65:
		return colorTierB
	default:
		return colorTierC
	}
}
