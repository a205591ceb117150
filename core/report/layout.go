package report

import (
	"strings"

	"github.com/redland/registro/core/calendar"
)

type RowKind int

const (
	DateBannerRow RowKind = iota
	SectionBannerRow
	TableHeaderRow
	DataRow
	NoticeRow
)

func (k RowKind) String() string {
	switch k {
	case DateBannerRow:
		return "date_banner"
	case SectionBannerRow:
		return "section_banner"
	case TableHeaderRow:
		return "table_header"
	case DataRow:
		return "data"
	case NoticeRow:
		return "notice"
	}
	return "unknown"
}

// Entry is a document row before measurement.
type Entry struct {
	Kind       RowKind
	Table      Table // header and data rows only
	Columns    []string
	Section    calendar.Section // data rows only
	Emphasized bool
}

// LayoutRow is a measured row, ready to be placed on a page.
type LayoutRow struct {
	Kind       RowKind
	Table      Table
	Columns    []string
	Lines      [][]string // wrapped text of each column
	Widths     []float64  // mm; one per column, or a single full width for banners and notices
	Height     float64    // mm
	Section    calendar.Section
	Emphasized bool
	Band       int  // zebra position of a data row within its table, from 0
	Repeated   bool // table header re-emitted at the top of a page
}

type Page struct {
	Number         int // from 1
	HeaderHeight   float64
	HeaderRepeated bool
	Rows           []LayoutRow
}

// BodyHeight is the vertical space taken by the rows of p.
func (p Page) BodyHeight() float64 {
	var h float64
	for _, r := range p.Rows {
		h += r.Height
	}
	return h
}

// Builder measures rows and lays them out into pages.
type Builder struct {
	geo     Geometry
	measure Measurer
}

func NewBuilder(geo Geometry, m Measurer) *Builder {
	return &Builder{geo: geo, measure: m}
}

func (b *Builder) Geometry() Geometry { return b.geo }

// Measure computes the wrapped lines and the height of every entry.
func (b *Builder) Measure(entries []Entry) []LayoutRow {
	rows := make([]LayoutRow, len(entries))
	for i, e := range entries {
		rows[i] = b.measureEntry(e)
	}
	return rows
}

func (b *Builder) measureEntry(e Entry) LayoutRow {
	row := LayoutRow{
		Kind:       e.Kind,
		Table:      e.Table,
		Columns:    e.Columns,
		Section:    e.Section,
		Emphasized: e.Emphasized,
	}
	switch e.Kind {
	case DateBannerRow:
		row.Height = b.geo.DateBannerHeight
	case SectionBannerRow:
		row.Height = b.geo.SectionBannerHeight
	case NoticeRow:
		row.Height = b.geo.NoticeHeight
	case TableHeaderRow:
		row.Height = b.geo.TableHeaderHeight
	}

	if e.Kind != TableHeaderRow && e.Kind != DataRow {
		row.Widths = []float64{b.geo.ContentWidth()}
		row.Lines = [][]string{{strings.Join(e.Columns, " ")}}
		return row
	}

	cols := b.geo.Columns(e.Table)
	row.Widths = make([]float64, len(cols))
	row.Lines = make([][]string, len(cols))
	var n int
	for i, col := range cols {
		row.Widths[i] = col.Width
		var text string
		if i < len(e.Columns) {
			text = e.Columns[i]
		}
		if e.Kind == TableHeaderRow {
			row.Lines[i] = []string{text}
			continue
		}
		row.Lines[i] = WrapText(b.measure, text, col.Width-2*CellPaddingX)
		if len(row.Lines[i]) > n {
			n = len(row.Lines[i])
		}
	}
	if e.Kind == DataRow {
		row.Height = b.geo.BaseRowHeight
		if h := float64(n)*b.geo.LineHeight + b.geo.Padding; h > row.Height {
			row.Height = h
		}
	}
	return row
}

// layoutState is the accumulator of the pagination fold.
type layoutState struct {
	pages  []Page
	y      float64 // cursor below the header band
	fresh  bool    // nothing but the header band on the current page
	header *LayoutRow
	band   int
}

func (st layoutState) newPage(headerHeight float64) layoutState {
	n := len(st.pages) + 1
	st.pages = append(st.pages, Page{Number: n, HeaderHeight: headerHeight, HeaderRepeated: n > 1})
	st.y = 0
	st.fresh = true
	return st
}

func (st layoutState) emit(row LayoutRow) layoutState {
	last := &st.pages[len(st.pages)-1]
	last.Rows = append(last.Rows, row)
	st.y += row.Height
	st.fresh = false
	return st
}

// Paginate lays rows out into pages. A row that would cross the bottom of the printable area
// starts a new page, which repeats the header band and, within a table, the table header.
// Banners are kept together with the rows that follow them up to the first data row.
// A row taller than a page is placed anyway and overflows.
func (b *Builder) Paginate(rows []LayoutRow) []Page {
	st := layoutState{}.newPage(b.geo.HeaderHeight)
	for i := range rows {
		st = b.place(st, rows[i], b.keepWithNext(rows, i))
	}
	return st.pages
}

func (b *Builder) place(st layoutState, row LayoutRow, need float64) layoutState {
	if !st.fresh && st.y+need > b.geo.Printable() {
		st = st.newPage(b.geo.HeaderHeight)
		if row.Kind == DataRow && st.header != nil {
			hdr := *st.header
			hdr.Repeated = true
			st = st.emit(hdr)
			st.band = 0
		}
	}

	switch row.Kind {
	case TableHeaderRow:
		hdr := row
		st.header = &hdr
		st.band = 0
	case DataRow:
		row.Band = st.band
		st.band++
	default:
		st.header = nil
	}
	return st.emit(row)
}

// keepWithNext is the height that must fit for rows[i] to stay on the current page: a banner or
// table header needs room for itself, the non-data rows after it and the first data row.
// When that chain is taller than a page only the row itself counts.
func (b *Builder) keepWithNext(rows []LayoutRow, i int) float64 {
	own := rows[i].Height
	if rows[i].Kind == DataRow || rows[i].Kind == NoticeRow {
		return own
	}
	need := own
	for j := i + 1; j < len(rows); j++ {
		need += rows[j].Height
		if rows[j].Kind == DataRow || rows[j].Kind == NoticeRow {
			break
		}
	}
	if need > b.geo.Printable() {
		return own
	}
	return need
}
