package render

import (
	"bytes"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/redland/registro/core/report"
)

const logoImage = "logo"

// PDF draws reports as explicit positioned commands with fpdf.
type PDF struct {
	compress bool
}

type PDFOption func(*PDF)

// Uncompressed leaves page streams readable, for inspection and tests.
func Uncompressed() PDFOption {
	return func(r *PDF) { r.compress = false }
}

func NewPDF(opts ...PDFOption) *PDF {
	r := &PDF{compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PDF) Format() report.Format { return report.FormatPDF }
func (r *PDF) ContentType() string   { return "application/pdf" }

func (r *PDF) Render(w io.Writer, doc *report.Document) error {
	geo := doc.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	pdf.SetCompression(r.compress)
	pdf.SetMargins(geo.MarginLeft, 0, geo.MarginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("Registro Escolar", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if doc.Logo != nil {
		pdf.RegisterImageOptionsReader(logoImage, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(doc.Logo.PNG))
	}

	for _, page := range plan(doc) {
		pdf.AddPage()
		for _, b := range page.Boxes {
			drawBox(pdf, tr, geo, b)
		}
		if page.Logo != nil {
			l := page.Logo
			pdf.ImageOptions(logoImage, l.X, l.Y, l.W, l.H, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "drawing pdf")
	}
	return errors.Wrap(pdf.Output(w), "writing pdf")
}

func drawBox(pdf *fpdf.Fpdf, tr func(string) string, geo report.Geometry, b box) {
	if b.Fill != nil || b.Stroke != nil {
		style := ""
		if b.Fill != nil {
			pdf.SetFillColor(int(b.Fill.R), int(b.Fill.G), int(b.Fill.B))
			style += "F"
		}
		if b.Stroke != nil {
			pdf.SetDrawColor(int(b.Stroke.R), int(b.Stroke.G), int(b.Stroke.B))
			pdf.SetLineWidth(0.1)
			style += "D"
		}
		pdf.Rect(b.X, b.Y, b.W, b.H, style)
	}
	if len(b.Lines) == 0 {
		return
	}

	fontStyle := ""
	if b.Bold {
		fontStyle = "B"
	}
	pdf.SetFont(geo.FontFamily, fontStyle, b.Size)
	pdf.SetTextColor(int(b.Color.R), int(b.Color.G), int(b.Color.B))
	for i, line := range b.Lines {
		pdf.SetXY(b.X+report.CellPaddingX, b.lineTop(i, geo.LineHeight))
		pdf.CellFormat(b.W-2*report.CellPaddingX, geo.LineHeight, tr(line), "", 0, string(b.Align)+"M", false, 0, "")
	}
}
