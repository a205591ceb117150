// Package render encodes paginated reports. Both encoders draw the same plan: every box of every page
// with its position, colors and wrapped text, so the HTML preview and the PDF artifact stay identical.
package render

import (
	"github.com/redland/registro/core/report"
)

// header band and footer layout, in mm
const (
	bandGap      = 4
	logoInset    = 3
	titleTop     = 5
	titleHeight  = 8
	subtitleTop  = 14
	subtitleH    = 6
	footerOffset = 4
	footerHeight = 6

	titleSize    = 15.0
	subtitleSize = 10.0
	footerSize   = 8.0
	bannerSize   = 10.0
)

type align string

const (
	alignLeft   align = "L"
	alignCenter align = "C"
	alignRight  align = "R"
)

type box struct {
	X, Y, W, H float64
	Fill       *report.Color
	Color      report.Color
	Stroke     *report.Color
	Bold       bool
	Size       float64 // pt
	Align      align
	Lines      []string
}

// lineTop is the top of line i, with the text block centered vertically in the box.
func (b box) lineTop(i int, lineHeight float64) float64 {
	return b.Y + (b.H-float64(len(b.Lines))*lineHeight)/2 + float64(i)*lineHeight
}

type logoBox struct {
	X, Y, W, H float64
}

type pagePlan struct {
	Number int
	Logo   *logoBox
	Boxes  []box
}

func fill(c report.Color) *report.Color { return &c }

// plan positions every element of doc.
func plan(doc *report.Document) []pagePlan {
	geo := doc.Geometry
	pal := doc.Palette
	pages := make([]pagePlan, len(doc.Pages))
	for i, p := range doc.Pages {
		pp := pagePlan{Number: p.Number}
		pp.Logo, pp.Boxes = headerBand(doc)

		y := p.HeaderHeight
		for _, row := range p.Rows {
			pp.Boxes = append(pp.Boxes, rowBoxes(geo, pal, row, y)...)
			y += row.Height
		}

		footerY := geo.PageHeight - geo.MarginBottom + footerOffset
		pp.Boxes = append(pp.Boxes,
			box{
				X: geo.MarginLeft, Y: footerY, W: geo.ContentWidth() * 0.8, H: footerHeight,
				Color: pal.Muted, Size: footerSize, Align: alignLeft, Lines: []string{printable(doc.Footer)},
			},
			box{
				X: geo.MarginLeft + geo.ContentWidth()*0.8, Y: footerY, W: geo.ContentWidth() * 0.2, H: footerHeight,
				Color: pal.Muted, Size: footerSize, Align: alignRight, Lines: []string{printable(doc.PageLabel(p.Number))},
			},
		)
		pages[i] = pp
	}
	return pages
}

// headerBand is repeated identically on every page.
func headerBand(doc *report.Document) (*logoBox, []box) {
	geo := doc.Geometry
	pal := doc.Palette
	bandH := geo.HeaderHeight - bandGap
	textX := geo.MarginLeft

	var logo *logoBox
	if doc.Logo != nil && doc.Logo.Width > 0 && doc.Logo.Height > 0 {
		h := bandH - 2*logoInset
		w := h * float64(doc.Logo.Width) / float64(doc.Logo.Height)
		logo = &logoBox{X: geo.MarginLeft, Y: logoInset, W: w, H: h}
		textX += w + logoInset
	}
	textW := geo.PageWidth - geo.MarginRight - textX

	return logo, []box{
		{X: 0, Y: 0, W: geo.PageWidth, H: bandH, Fill: fill(pal.Primary)},
		{
			X: textX, Y: titleTop, W: textW, H: titleHeight,
			Color: pal.OnPrimary, Bold: true, Size: titleSize, Align: alignLeft, Lines: []string{printable(doc.Title)},
		},
		{
			X: textX, Y: subtitleTop, W: textW, H: subtitleH,
			Color: pal.OnPrimary, Size: subtitleSize, Align: alignLeft, Lines: []string{printable(doc.Subtitle)},
		},
	}
}

func rowBoxes(geo report.Geometry, pal report.Palette, row report.LayoutRow, y float64) []box {
	bg, fg := pal.RowColors(row)
	size := geo.FontSize
	if row.Kind == report.DateBannerRow {
		size = bannerSize
	}

	if row.Kind != report.DataRow && row.Kind != report.TableHeaderRow {
		al := alignLeft
		if row.Kind == report.NoticeRow {
			al = alignCenter
		}
		return []box{{
			X: geo.MarginLeft, Y: y, W: geo.ContentWidth(), H: row.Height,
			Fill: fill(bg), Color: fg, Bold: report.Bold(row), Size: size, Align: al,
			Lines: printLines(row.Lines[0]),
		}}
	}

	badge := report.BadgeColumn(row)
	boxes := make([]box, len(row.Lines))
	x := geo.MarginLeft
	for i, lines := range row.Lines {
		b := box{
			X: x, Y: y, W: row.Widths[i], H: row.Height,
			Fill: fill(bg), Color: fg,
			Bold: report.Bold(row), Size: size, Align: alignLeft,
			Lines: printLines(lines),
		}
		if row.Kind == report.DataRow {
			b.Stroke = fill(pal.Border)
		}
		if i == badge {
			st := pal.Section(row.Section)
			b.Fill, b.Color, b.Align = fill(st.Background), st.Foreground, alignCenter
		}
		boxes[i] = b
		x += row.Widths[i]
	}
	return boxes
}

// printLines drops blank lines, which neither encoder draws, and folds the rest to printable text.
func printLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, printable(l))
		}
	}
	return out
}
