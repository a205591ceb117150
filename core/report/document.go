package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redland/registro/core/calendar"
)

type Source string

const (
	SourceActivities  Source = "activities"
	SourceEvaluations Source = "evaluations"
	SourceBoth        Source = "both"
)

func (s Source) includesActivities() bool  { return s == SourceActivities || s == SourceBoth }
func (s Source) includesEvaluations() bool { return s == SourceEvaluations || s == SourceBoth }

// fileType is the <Type> part of report file names.
func (s Source) fileType() string {
	switch s {
	case SourceActivities:
		return "Activities"
	case SourceEvaluations:
		return "Evaluations"
	}
	return "Both"
}

func (s Source) title() string {
	switch s {
	case SourceActivities:
		return "Actividades"
	case SourceEvaluations:
		return "Evaluaciones"
	}
	return "Actividades y Evaluaciones"
}

// emptyNotice is shown when the range holds nothing to report.
func (s Source) emptyNotice() string {
	var what string
	switch s {
	case SourceActivities:
		what = "actividades"
	case SourceEvaluations:
		what = "evaluaciones"
	default:
		what = "actividades ni evaluaciones"
	}
	return fmt.Sprintf("No se encontraron %s en el rango de fechas seleccionado.", what)
}

const (
	activitiesBanner  = "ACTIVIDADES"
	evaluationsBanner = "EVALUACIONES"
	allDayText        = "TODO EL DÍA"
	emptyCell         = "-"
)

var (
	dayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

	monthNames = [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
)

// LongDate formats t as a Spanish long date: "Lunes 2 de Marzo de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d de %s de %d", dayNames[t.Weekday()], t.Day(), monthNames[t.Month()-1], t.Year())
}

// Logo is the decoded header image.
type Logo struct {
	PNG           []byte
	Width, Height int // pixels
}

// Document is the paginated report handed to a Renderer.
type Document struct {
	Title    string
	Subtitle string
	Footer   string
	Logo     *Logo // nil renders a text-only header
	Geometry Geometry
	Palette  Palette
	Pages    []Page
}

// PageLabel is the page counter printed in the footer of page n.
func (d *Document) PageLabel(n int) string {
	return fmt.Sprintf("Página %d de %d", n, len(d.Pages))
}

// Dataset holds the records of a report, keyed by date and section.
type Dataset struct {
	Activities  calendar.Buckets[calendar.Activity]
	Evaluations calendar.Buckets[calendar.Evaluation]
}

// Assemble turns the records of data into document rows: for each date with content a date banner,
// then the activities table and the evaluations table, each under its own banner.
// Course codes that could not be formatted are returned as warnings.
func Assemble(source Source, sec calendar.Section, nivel string, data Dataset) ([]Entry, []Warning) {
	dates := make(map[string]bool)
	if source.includesActivities() {
		for d := range data.Activities {
			dates[d] = true
		}
	}
	if source.includesEvaluations() {
		for d := range data.Evaluations {
			dates[d] = true
		}
	}
	keys := make([]string, 0, len(dates))
	for d := range dates {
		keys = append(keys, d)
	}
	sort.Strings(keys)

	asm := assembler{seen: make(map[string]bool)}
	for _, date := range keys {
		var acts []ActivityRow
		var evals []evaluationRow
		if source.includesActivities() {
			acts = activityRows(date, data.Activities[date], sec, nivel)
		}
		if source.includesEvaluations() {
			evals = evaluationRows(data.Evaluations[date], sec, nivel)
		}
		if len(acts) == 0 && len(evals) == 0 {
			continue
		}

		asm.add(Entry{Kind: DateBannerRow, Columns: []string{longDateKey(date)}})
		if len(acts) > 0 {
			asm.add(Entry{Kind: SectionBannerRow, Columns: []string{activitiesBanner}})
			asm.add(Entry{Kind: TableHeaderRow, Table: ActivitiesTable, Columns: Titles(ActivitiesTable)})
			for _, r := range acts {
				asm.addActivity(date, r)
			}
		}
		if len(evals) > 0 {
			asm.add(Entry{Kind: SectionBannerRow, Columns: []string{evaluationsBanner}})
			asm.add(Entry{Kind: TableHeaderRow, Table: EvaluationsTable, Columns: Titles(EvaluationsTable)})
			for _, r := range evals {
				asm.addEvaluation(date, r)
			}
		}
	}
	if len(asm.entries) == 0 {
		asm.add(Entry{Kind: NoticeRow, Columns: []string{source.emptyNotice()}})
	}
	return asm.entries, asm.warnings
}

type evaluationRow struct {
	Section calendar.Section
	calendar.Evaluation
}

// activityRows filters and sorts the activities of every section of sec on date and consolidates
// the ones shared by all sections.
func activityRows(date string, secs calendar.SectionMap[calendar.Activity], sec calendar.Section, nivel string) []ActivityRow {
	var rows []ActivityRow
	for _, s := range sec.Expand() {
		acts := append([]calendar.Activity(nil), FilterNivel(secs[s], s, nivel)...)
		SortActivities(acts)
		for _, a := range acts {
			rows = append(rows, ActivityRow{Date: date, Section: s, Activity: a})
		}
	}
	return Consolidate(rows)
}

func evaluationRows(secs calendar.SectionMap[calendar.Evaluation], sec calendar.Section, nivel string) []evaluationRow {
	var rows []evaluationRow
	for _, s := range sec.Expand() {
		evals := append([]calendar.Evaluation(nil), FilterNivel(secs[s], s, nivel)...)
		SortEvaluations(evals)
		for _, e := range evals {
			rows = append(rows, evaluationRow{Section: s, Evaluation: e})
		}
	}
	return rows
}

type assembler struct {
	entries  []Entry
	warnings []Warning
	seen     map[string]bool // malformed codes already reported
}

func (a *assembler) add(e Entry) {
	a.entries = append(a.entries, e)
}

func (a *assembler) courses(date string, codes []string, mode LabelMode) string {
	label, malformed := FormatCourses(codes, mode)
	for _, c := range malformed {
		if a.seen[c] {
			continue
		}
		a.seen[c] = true
		a.warnings = append(a.warnings, Warning{
			Kind:   MalformedCourseCodeWarning,
			Detail: fmt.Sprintf("%s: curso no reconocido %q", date, c),
		})
	}
	return label
}

func (a *assembler) addActivity(date string, r ActivityRow) {
	a.add(Entry{
		Kind:  DataRow,
		Table: ActivitiesTable,
		Columns: []string{
			timeText(r.Time),
			r.Title,
			orEmpty(r.Location),
			orEmpty(r.Owner),
			orEmpty(a.courses(date, r.Courses, SingleLine)),
			r.Section.DisplayName(),
		},
		Section:    r.Section,
		Emphasized: r.Important,
	})
}

func (a *assembler) addEvaluation(date string, r evaluationRow) {
	at := r.Time
	if at != "" {
		at = timeText(at)
	}
	a.add(Entry{
		Kind:  DataRow,
		Table: EvaluationsTable,
		Columns: []string{
			orEmpty(a.courses(date, r.Courses, MultiLine)),
			r.Subject,
			orEmpty(r.Topic),
			at,
			r.Section.DisplayName(),
		},
		Section: r.Section,
	})
}

func timeText(t string) string {
	if t == calendar.AllDay {
		return allDayText
	}
	return t
}

func orEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyCell
	}
	return s
}

func longDateKey(key string) string {
	day, err := ParseDay(key)
	if err != nil {
		return key
	}
	return LongDate(day)
}
