package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"regexp"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/redland/registro/core/calendar"
	"github.com/redland/registro/core/report"
)

var (
	htmlTextRegex = regexp.MustCompile(`<span class="ln" style="[^"]*">([^<]*)</span>`)
	pdfTextRegex  = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\) ?Tj`)
	pdfUnescaper  = strings.NewReplacer(`\\`, `\`, `\(`, `(`, `\)`, `)`, `\r`, "\r")
)

func htmlTexts(t *testing.T, out []byte) []string {
	t.Helper()
	var texts []string
	for _, m := range htmlTextRegex.FindAllSubmatch(out, -1) {
		texts = append(texts, html.UnescapeString(string(m[1])))
	}
	return texts
}

func pdfTexts(t *testing.T, out []byte) []string {
	t.Helper()
	dec := charmap.Windows1252.NewDecoder()
	var texts []string
	for _, m := range pdfTextRegex.FindAllSubmatch(out, -1) {
		s, err := dec.String(pdfUnescaper.Replace(string(m[1])))
		require.NoError(t, err)
		texts = append(texts, s)
	}
	return texts
}

func testDocument(t *testing.T, rows int) *report.Document {
	t.Helper()
	titles := make([]string, rows)
	for i := range titles {
		titles[i] = fmt.Sprintf("<b>Química & Física</b> (Lab) \\ %d, una actividad con un título bastante largo para que se ajuste", i)
	}
	return activitiesDocument(t, titles...)
}

func activitiesDocument(t *testing.T, titles ...string) *report.Document {
	t.Helper()
	geo := report.DefaultGeometry
	m, err := NewFontMeasurer(geo)
	require.NoError(t, err)

	entries := []report.Entry{
		{Kind: report.DateBannerRow, Columns: []string{"Lunes 2 de Marzo de 2026"}},
		{Kind: report.SectionBannerRow, Columns: []string{"ACTIVIDADES"}},
		{Kind: report.TableHeaderRow, Table: report.ActivitiesTable, Columns: report.Titles(report.ActivitiesTable)},
	}
	for i, title := range titles {
		entries = append(entries, report.Entry{
			Kind:  report.DataRow,
			Table: report.ActivitiesTable,
			Columns: []string{
				"TODO EL DÍA",
				title,
				"Laboratorio",
				"O'Higgins",
				"6° AB, I EM A",
				"Todas las Secciones",
			},
			Section:    calendar.AllSections,
			Emphasized: i%5 == 0,
		})
	}

	b := report.NewBuilder(geo, m)
	return &report.Document{
		Title:    "Registro Escolar 2026 - Reporte de Actividades",
		Subtitle: "Sección: Todas las Secciones | Período: Lunes 2 de Marzo de 2026 - Lunes 2 de Marzo de 2026",
		Footer:   "Generado el 01-03-2026 14:05 por Ana Pérez | Registro Escolar Web - Redland School",
		Geometry: geo,
		Palette:  report.DefaultPalette,
		Pages:    b.Paginate(b.Measure(entries)),
	}
}

func testLogo(t *testing.T) *report.Logo {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &report.Logo{PNG: buf.Bytes(), Width: 4, Height: 2}
}

func TestRenderers_SameText(t *testing.T) {
	doc := testDocument(t, 40)
	require.Greater(t, len(doc.Pages), 1)

	var h, p bytes.Buffer
	require.NoError(t, NewHTML().Render(&h, doc))
	require.NoError(t, NewPDF(Uncompressed()).Render(&p, doc))

	fromHTML := htmlTexts(t, h.Bytes())
	fromPDF := pdfTexts(t, p.Bytes())
	require.NotEmpty(t, fromHTML)

	if !assert.Equal(t, fromHTML, fromPDF) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        fromHTML,
			B:        fromPDF,
			FromFile: "html",
			ToFile:   "pdf",
			Context:  2,
		})
		t.Log(diff)
	}

	last := fmt.Sprintf("Página %d de %d", len(doc.Pages), len(doc.Pages))
	assert.Contains(t, fromHTML, last)
	assert.Contains(t, fromHTML, "O'Higgins")
}

func TestRenderers_SameTextOutsideCharset(t *testing.T) {
	doc := activitiesDocument(t,
		"Área del círculo: π·r² ≤ 10 ✓",
		"Ĉefo ﬁnal Ω",
	)

	var h, p bytes.Buffer
	require.NoError(t, NewHTML().Render(&h, doc))
	require.NoError(t, NewPDF(Uncompressed()).Render(&p, doc))

	fromHTML := htmlTexts(t, h.Bytes())
	assert.Equal(t, fromHTML, pdfTexts(t, p.Bytes()))
	assert.Contains(t, fromHTML, "Área del círculo: ?·r² ? 10 ?")
	assert.Contains(t, fromHTML, "Cefo final ?")
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "6° AB, I EM A", "6° AB, I EM A"},
		{"latin", "Química € “Día”", "Química € “Día”"},
		{"decomposed accent", "Ĉefo ő", "Cefo o"},
		{"ligature", "ﬁnal", "final"},
		{"no equivalent", "π ≤ ✓", "? ? ?"},
		{"c1 control", "a\u0085b", "a?b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, printable(tc.in))
		})
	}
}

func TestHTML_Escapes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewHTML().Render(&out, testDocument(t, 1)))
	s := out.String()

	assert.NotContains(t, s, "<b>Química")
	assert.Contains(t, s, "&lt;b&gt;Química &amp; Física&lt;/b&gt;")
	assert.Equal(t, len(testDocument(t, 1).Pages), strings.Count(s, `class="page"`))
}

func TestHTML_Palette(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewHTML().Render(&out, testDocument(t, 2)))
	s := out.String()

	pal := report.DefaultPalette
	for _, c := range []report.Color{
		pal.Primary,
		pal.ZebraEven,
		pal.ZebraOdd,
		pal.Important,
		pal.Sections[calendar.AllSections].Background,
		pal.Sections[calendar.AllSections].Foreground,
	} {
		assert.Contains(t, s, c.Hex())
	}
}

func TestRenderers_Logo(t *testing.T) {
	doc := testDocument(t, 1)
	doc.Logo = testLogo(t)

	var h, p bytes.Buffer
	require.NoError(t, NewHTML().Render(&h, doc))
	require.NoError(t, NewPDF().Render(&p, doc))

	assert.Contains(t, h.String(), `src="data:image/png;base64,`)
	assert.True(t, bytes.HasPrefix(p.Bytes(), []byte("%PDF-")))
}

func TestPDF_Compressed(t *testing.T) {
	var p bytes.Buffer
	r := NewPDF()
	require.NoError(t, r.Render(&p, testDocument(t, 3)))
	assert.Equal(t, "application/pdf", r.ContentType())
	assert.Equal(t, report.FormatPDF, r.Format())
	assert.Empty(t, pdfTexts(t, p.Bytes()), "page streams are deflated")
}

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer(report.DefaultGeometry)
	require.NoError(t, err)

	assert.Zero(t, m.TextWidth(""))
	assert.Greater(t, m.TextWidth("WWWW"), m.TextWidth("iiii"))
	assert.InDelta(t, m.TextWidth("Día")+m.TextWidth("s"), m.TextWidth("Días"), 1e-9)

	geo := report.DefaultGeometry
	geo.FontFamily = "NoSuchFont"
	_, err = NewFontMeasurer(geo)
	assert.Error(t, err)
}
