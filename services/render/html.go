package render

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/redland/registro/core/report"
)

//go:embed templates/report.gohtml
var templatesFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templatesFS, "templates/report.gohtml"))

// HTML renders reports as absolutely positioned markup, page by page, for in-browser preview and printing.
// Text goes through html/template, so record content is always escaped.
type HTML struct{}

func NewHTML() *HTML { return &HTML{} }

func (r *HTML) Format() report.Format { return report.FormatHTML }
func (r *HTML) ContentType() string   { return "text/html; charset=utf-8" }

type (
	htmlDoc struct {
		Title      string
		PageSize   template.CSS
		FontFamily template.CSS
		PageStyle  template.CSS
		LogoURI    template.URL
		Pages      []htmlPage
	}

	htmlPage struct {
		Number int
		Boxes  []htmlBox
		Logo   template.CSS
	}

	htmlBox struct {
		Style template.CSS
		Lines []htmlLine
	}

	htmlLine struct {
		Style template.CSS
		Text  string
	}
)

func (r *HTML) Render(w io.Writer, doc *report.Document) error {
	geo := doc.Geometry
	view := htmlDoc{
		Title:      doc.Title,
		PageSize:   template.CSS(fmt.Sprintf("%smm %smm", mm(geo.PageWidth), mm(geo.PageHeight))),
		FontFamily: template.CSS(cssFontFamily(geo.FontFamily)),
		PageStyle:  template.CSS(fmt.Sprintf("width:%smm;height:%smm", mm(geo.PageWidth), mm(geo.PageHeight))),
	}
	if doc.Logo != nil {
		view.LogoURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(doc.Logo.PNG))
	}

	for _, page := range plan(doc) {
		hp := htmlPage{Number: page.Number}
		if l := page.Logo; l != nil {
			hp.Logo = template.CSS(fmt.Sprintf("left:%smm;top:%smm;width:%smm;height:%smm", mm(l.X), mm(l.Y), mm(l.W), mm(l.H)))
		}
		for _, b := range page.Boxes {
			hp.Boxes = append(hp.Boxes, htmlBoxOf(geo, b))
		}
		view.Pages = append(view.Pages, hp)
	}

	return errors.Wrap(reportTemplate.Execute(w, view), "executing report template")
}

func htmlBoxOf(geo report.Geometry, b box) htmlBox {
	var st strings.Builder
	fmt.Fprintf(&st, "left:%smm;top:%smm;width:%smm;height:%smm;", mm(b.X), mm(b.Y), mm(b.W), mm(b.H))
	if b.Fill != nil {
		fmt.Fprintf(&st, "background:%s;", b.Fill.Hex())
	}
	if b.Stroke != nil {
		fmt.Fprintf(&st, "border:0.1mm solid %s;", b.Stroke.Hex())
	}
	fmt.Fprintf(&st, "color:%s;font-size:%spt;", b.Color.Hex(), mm(b.Size))
	if b.Bold {
		st.WriteString("font-weight:bold;")
	}
	st.WriteString("text-align:" + cssAlign(b.Align))

	hb := htmlBox{Style: template.CSS(st.String())}
	for i, line := range b.Lines {
		top := b.lineTop(i, geo.LineHeight) - b.Y
		hb.Lines = append(hb.Lines, htmlLine{
			Style: template.CSS(fmt.Sprintf(
				"top:%smm;height:%smm;line-height:%smm;padding:0 %smm",
				mm(top), mm(geo.LineHeight), mm(geo.LineHeight), mm(report.CellPaddingX),
			)),
			Text: line,
		})
	}
	return hb
}

// mm formats a length with two decimals, the precision of the PDF output.
func mm(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func cssAlign(a align) string {
	switch a {
	case alignCenter:
		return "center"
	case alignRight:
		return "right"
	}
	return "left"
}

// cssFontFamily quotes family names that are not a single identifier.
func cssFontFamily(name string) string {
	name = strings.NewReplacer(`"`, "", ";", "", "<", "", ">", "").Replace(name)
	if strings.ContainsAny(name, " ,") {
		return `"` + name + `"`
	}
	return name
}
