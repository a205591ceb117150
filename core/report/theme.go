package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
)

type Color struct{ R, G, B uint8 }

// Hex returns the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// MustHex parses a #RRGGBB color. It panics on malformed input and is meant for package-level palettes.
func MustHex(s string) Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		panic(fmt.Sprintf("report: invalid color %q", s))
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

type SectionStyle struct {
	Background Color
	Foreground Color
}

// Palette is shared by every renderer.
type Palette struct {
	Primary    Color // header band, banners, table headers
	OnPrimary  Color
	Text       Color
	Muted      Color
	Border     Color
	ZebraEven  Color
	ZebraOdd   Color
	Important  Color
	DateBanner Color
	Sections   map[calendar.Section]SectionStyle
}

// Section returns the badge style of sec, falling back to the AllSections style.
func (p Palette) Section(sec calendar.Section) SectionStyle {
	if st, ok := p.Sections[sec]; ok {
		return st
	}
	return p.Sections[calendar.AllSections]
}

// Zebra returns the background of the data row at band position band.
func (p Palette) Zebra(band int) Color {
	if band%2 == 0 {
		return p.ZebraEven
	}
	return p.ZebraOdd
}

var DefaultPalette = Palette{
	Primary:    MustHex("#4F46E5"),
	OnPrimary:  MustHex("#FFFFFF"),
	Text:       MustHex("#111827"),
	Muted:      MustHex("#6B7280"),
	Border:     MustHex("#E5E7EB"),
	ZebraEven:  MustHex("#F9FAFB"),
	ZebraOdd:   MustHex("#FFFFFF"),
	Important:  MustHex("#DC2626"),
	DateBanner: MustHex("#EEF2FF"),
	Sections: map[calendar.Section]SectionStyle{
		calendar.SectionJunior: {Background: MustHex("#D1FAE5"), Foreground: MustHex("#065F46")},
		calendar.SectionMiddle: {Background: MustHex("#FEF3C7"), Foreground: MustHex("#92400E")},
		calendar.SectionSenior: {Background: MustHex("#FCE7F3"), Foreground: MustHex("#9F1239")},
		calendar.AllSections:   {Background: MustHex("#E0E7FF"), Foreground: MustHex("#3730A3")},
	},
}

// Table identifies the kind of table a row belongs to.
type Table string

const (
	ActivitiesTable  Table = "activities"
	EvaluationsTable Table = "evaluations"
)

type Column struct {
	Title string
	Width float64 // mm
}

var tableColumns = map[Table][]Column{
	ActivitiesTable: {
		{Title: "Hora", Width: 24},
		{Title: "Actividad", Width: 95},
		{Title: "Lugar", Width: 40},
		{Title: "Responsable", Width: 40},
		{Title: "Cursos", Width: 46},
		{Title: "Sección", Width: 32},
	},
	EvaluationsTable: {
		{Title: "Cursos", Width: 50},
		{Title: "Asignatura", Width: 60},
		{Title: "Tema", Width: 115},
		{Title: "Hora", Width: 20},
		{Title: "Sección", Width: 32},
	},
}

// Titles returns the header texts of t.
func Titles(t Table) []string {
	cols := tableColumns[t]
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Title
	}
	return out
}

// Geometry is the page layout in millimetres. Text sizes are in points.
type Geometry struct {
	PageWidth, PageHeight   float64
	MarginLeft, MarginRight float64
	MarginBottom            float64
	HeaderHeight            float64

	BaseRowHeight       float64
	LineHeight          float64
	Padding             float64
	DateBannerHeight    float64
	SectionBannerHeight float64
	TableHeaderHeight   float64
	NoticeHeight        float64

	FontFamily string
	FontSize   float64
}

// Printable is the vertical space available for rows on every page.
func (g Geometry) Printable() float64 {
	return g.PageHeight - g.HeaderHeight - g.MarginBottom
}

// ContentWidth is the horizontal space between the margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// Columns returns the columns of t scaled to the content width.
func (g Geometry) Columns(t Table) []Column {
	base := tableColumns[t]
	var total float64
	for _, c := range base {
		total += c.Width
	}
	scale := 1.0
	if total > 0 && g.ContentWidth() > 0 {
		scale = g.ContentWidth() / total
	}
	out := make([]Column, len(base))
	for i, c := range base {
		c.Width *= scale
		out[i] = c
	}
	return out
}

// DefaultGeometry is A4 landscape.
var DefaultGeometry = Geometry{
	PageWidth:           297,
	PageHeight:          210,
	MarginLeft:          10,
	MarginRight:         10,
	MarginBottom:        15,
	HeaderHeight:        28,
	BaseRowHeight:       7,
	LineHeight:          4.5,
	Padding:             2.5,
	DateBannerHeight:    9,
	SectionBannerHeight: 7,
	TableHeaderHeight:   7,
	NoticeHeight:        12,
	FontFamily:          "Helvetica",
	FontSize:            9,
}

// GeometryFromConfig overrides the page size, margins and font of DefaultGeometry with conf.
// Zero values keep the default.
func GeometryFromConfig(conf core.ReportConfig) Geometry {
	g := DefaultGeometry
	set := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	set(&g.PageWidth, conf.PageWidth)
	set(&g.PageHeight, conf.PageHeight)
	set(&g.MarginLeft, conf.MarginLeft)
	set(&g.MarginRight, conf.MarginRight)
	set(&g.MarginBottom, conf.MarginBottom)
	set(&g.HeaderHeight, conf.HeaderHeight)
	if conf.FontFamily != "" {
		g.FontFamily = conf.FontFamily
	}
	return g
}

// RowColors returns the background and text colors of row.
func (p Palette) RowColors(row LayoutRow) (bg, fg Color) {
	switch row.Kind {
	case DateBannerRow:
		return p.DateBanner, p.Primary
	case SectionBannerRow, TableHeaderRow:
		return p.Primary, p.OnPrimary
	case NoticeRow:
		return p.ZebraOdd, p.Muted
	}
	fg = p.Text
	if row.Emphasized {
		fg = p.Important
	}
	return p.Zebra(row.Band), fg
}

// BadgeColumn is the index of the section column of a data row, drawn in the section colors.
// It is -1 for other rows.
func BadgeColumn(row LayoutRow) int {
	if row.Kind != DataRow || len(row.Lines) == 0 {
		return -1
	}
	return len(row.Lines) - 1
}

// Bold reports whether the text of row is set in bold.
func Bold(row LayoutRow) bool {
	return row.Kind == DateBannerRow || row.Kind == SectionBannerRow || row.Kind == TableHeaderRow
}
