package render

import (
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/redland/registro/core/report"
)

// FontMeasurer measures text with the PDF font metrics of the body font.
type FontMeasurer struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewFontMeasurer(geo report.Geometry) (*FontMeasurer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont(geo.FontFamily, "", geo.FontSize)
	if err := pdf.Error(); err != nil {
		return nil, errors.Wrapf(err, "loading font %s", geo.FontFamily)
	}
	return &FontMeasurer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}, nil
}

func (m *FontMeasurer) TextWidth(s string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pdf.GetStringWidth(m.tr(printable(s)))
}
