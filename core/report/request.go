package report

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/redland/registro/core"
	"github.com/redland/registro/core/calendar"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

const (
	sourceTag  = "report_source"
	sectionTag = "report_section"
	nivelTag   = "nivel"
	formatTag  = "report_format"
)

var translations = map[string]string{
	sourceTag:  "{0} must be activities, evaluations or both",
	sectionTag: "{0} must be ALL, Junior, Middle or Senior",
	nivelTag:   "{0} must be ALL, or a year level of the selected section (5-8 for Middle, I-IV for Senior)",
	formatTag:  "{0} must be html or pdf",
}

// Request selects the content and output format of a report.
// Source, Section and Format are matched case-insensitively.
type Request struct {
	Source  string `json:"source" query:"source" validate:"required"`
	Section string `json:"section" query:"section"`
	Nivel   string `json:"nivel" query:"nivel"`
	From    string `json:"from" query:"from"` // YYYY-MM-DD; checked by ParseDateRange
	To      string `json:"to" query:"to"`
	Format  string `json:"format" query:"format"`
}

// RegisterValidators registers the report validations on validate.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(requestStructValidation, Request{})
	for tag, text := range translations {
		core.RegisterCustomTranslation(validate, translator, tag, text)
	}
}

// requestStructValidation applies the rules of Request.parse, so bound requests and
// programmatic ones accept the same values.
func requestStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(Request)
	if strings.TrimSpace(req.Source) != "" {
		if _, ok := parseSource(req.Source); !ok {
			sl.ReportError(req.Source, "source", "Source", sourceTag, "")
		}
	}
	sec, ok := parseSectionOrAll(req.Section)
	if !ok {
		sl.ReportError(req.Section, "section", "Section", sectionTag, "")
	} else if !validNivel(sec, normalizeNivel(req.Nivel)) {
		sl.ReportError(req.Nivel, "nivel", "Nivel", nivelTag, "")
	}
	if _, ok := parseFormat(req.Format); !ok {
		sl.ReportError(req.Format, "format", "Format", formatTag, "")
	}
}

func parseSource(s string) (Source, bool) {
	src := Source(strings.ToLower(strings.TrimSpace(s)))
	switch src {
	case SourceActivities, SourceEvaluations, SourceBoth:
		return src, true
	}
	return "", false
}

// parseSectionOrAll defaults an empty section to every section.
func parseSectionOrAll(s string) (calendar.Section, bool) {
	if strings.TrimSpace(s) == "" {
		return calendar.AllSections, true
	}
	return calendar.ParseSection(s)
}

func normalizeNivel(s string) string {
	if n := strings.ToUpper(strings.TrimSpace(s)); n != "" {
		return n
	}
	return AllLevels
}

// parseFormat defaults an empty format to PDF.
func parseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPDF, true
	case FormatHTML, FormatPDF:
		return f, true
	}
	return "", false
}

func validNivel(sec calendar.Section, nivel string) bool {
	if nivel == "" || nivel == AllLevels {
		return true
	}
	return calendar.ValidLevel(sec, nivel)
}

type query struct {
	source  Source
	section calendar.Section
	nivel   string
	format  Format
}

// parse normalizes r. Empty fields default to every section, every level and PDF.
func (r Request) parse() (query, error) {
	var (
		q    query
		ok   bool
		flds []core.FieldError
	)
	if q.source, ok = parseSource(r.Source); !ok {
		flds = append(flds, core.FieldError{Field: "source", Error: fmt.Sprintf("unknown source %q", r.Source)})
	}
	if q.section, ok = parseSectionOrAll(r.Section); !ok {
		flds = append(flds, core.FieldError{Field: "section", Error: fmt.Sprintf("unknown section %q", r.Section)})
	}
	q.nivel = normalizeNivel(r.Nivel)
	if !validNivel(q.section, q.nivel) {
		flds = append(flds, core.FieldError{Field: "nivel", Error: fmt.Sprintf("%q is not a year level of %s", r.Nivel, q.section)})
	}
	if q.format, ok = parseFormat(r.Format); !ok {
		flds = append(flds, core.FieldError{Field: "format", Error: fmt.Sprintf("unknown format %q", r.Format)})
	}
	if len(flds) > 0 {
		return query{}, core.NewValidationError(nil, flds...)
	}
	return q, nil
}

func FileName(source Source, sec calendar.Section, rng DateRange, format Format) string {
	return fmt.Sprintf("Report_%s_%s_%s_%s.%s", source.fileType(), sec, rng.FromKey(), rng.ToKey(), format)
}
