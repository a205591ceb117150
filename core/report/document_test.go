package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redland/registro/core/calendar"
)

func dataRows(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == DataRow {
			out = append(out, e)
		}
	}
	return out
}

func kinds(entries []Entry) []RowKind {
	out := make([]RowKind, len(entries))
	for i, e := range entries {
		out[i] = e.Kind
	}
	return out
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "Lunes 2 de Marzo de 2026", LongDate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Miércoles 30 de Diciembre de 2026", LongDate(time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)))
}

func TestAssemble_ConsolidatesAcrossSections(t *testing.T) {
	acts := make(calendar.Buckets[calendar.Activity])
	for _, sec := range calendar.Sections {
		acts.Add("2026-03-02", sec, calendar.Activity{
			ID:       string(sec),
			Title:    "Día del libro",
			Time:     calendar.AllDay,
			Location: "Biblioteca",
			Owner:    "Coordinación",
		})
	}

	entries, warnings := Assemble(SourceActivities, calendar.AllSections, AllLevels, Dataset{Activities: acts})
	assert.Empty(t, warnings)
	assert.Equal(t, []RowKind{DateBannerRow, SectionBannerRow, TableHeaderRow, DataRow}, kinds(entries))
	assert.Equal(t, []string{"Lunes 2 de Marzo de 2026"}, entries[0].Columns)

	row := entries[3]
	assert.Equal(t, calendar.AllSections, row.Section)
	assert.Equal(t, []string{"TODO EL DÍA", "Día del libro", "Biblioteca", "Coordinación", "-", "Todas las Secciones"}, row.Columns)
}

func TestAssemble_EvaluationLabels(t *testing.T) {
	evals := make(calendar.Buckets[calendar.Evaluation])
	evals.Add("2026-03-03", calendar.SectionSenior, calendar.Evaluation{ID: "2", Subject: "Historia", Courses: []string{"I EM A", "II EM B"}})
	evals.Add("2026-03-03", calendar.SectionSenior, calendar.Evaluation{ID: "1", Subject: "Química", Courses: []string{"I EM A", "I EM B"}, Time: "09:00"})

	entries, _ := Assemble(SourceEvaluations, calendar.SectionSenior, AllLevels, Dataset{Evaluations: evals})
	rows := dataRows(entries)
	require.Len(t, rows, 2)
	// same first course: input order is kept
	assert.Equal(t, []string{"I EM A\nII EM B", "Historia", "-", "", "Senior School"}, rows[0].Columns)
	assert.Equal(t, []string{"I EM AB", "Química", "-", "09:00", "Senior School"}, rows[1].Columns)
}

func TestAssemble_Both(t *testing.T) {
	acts := make(calendar.Buckets[calendar.Activity])
	acts.Add("2026-03-04", calendar.SectionMiddle, calendar.Activity{ID: "a2", Title: "Salida", Time: "11:00", Courses: []string{"6° A"}, Important: true})
	acts.Add("2026-03-04", calendar.SectionMiddle, calendar.Activity{ID: "a1", Title: "Acto", Time: "08:00", Courses: []string{"Taller"}})
	evals := make(calendar.Buckets[calendar.Evaluation])
	evals.Add("2026-03-02", calendar.SectionMiddle, calendar.Evaluation{ID: "e1", Subject: "Lenguaje", Courses: []string{"7° A"}})
	evals.Add("2026-03-04", calendar.SectionMiddle, calendar.Evaluation{ID: "e2", Subject: "Matemática", Courses: []string{"6° B"}})

	entries, warnings := Assemble(SourceBoth, calendar.SectionMiddle, AllLevels, Dataset{Activities: acts, Evaluations: evals})
	assert.Equal(t, []RowKind{
		DateBannerRow, SectionBannerRow, TableHeaderRow, DataRow,
		DateBannerRow, SectionBannerRow, TableHeaderRow, DataRow, DataRow, SectionBannerRow, TableHeaderRow, DataRow,
	}, kinds(entries))
	assert.Equal(t, []string{activitiesBanner}, entries[5].Columns)
	assert.Equal(t, []string{evaluationsBanner}, entries[9].Columns)
	assert.Equal(t, "Acto", entries[7].Columns[1])
	assert.Equal(t, "Salida", entries[8].Columns[1])
	assert.True(t, entries[8].Emphasized)

	require.Len(t, warnings, 1)
	assert.Equal(t, MalformedCourseCodeWarning, warnings[0].Kind)
	assert.Contains(t, warnings[0].Detail, "Taller")
	assert.Equal(t, "Taller", entries[7].Columns[4])
}

func TestAssemble_NivelAndSection(t *testing.T) {
	acts := make(calendar.Buckets[calendar.Activity])
	acts.Add("2026-03-02", calendar.SectionMiddle, calendar.Activity{ID: "6", Title: "Sexto", Time: "10:00", Courses: []string{"6° A"}})
	acts.Add("2026-03-02", calendar.SectionMiddle, calendar.Activity{ID: "7", Title: "Séptimo", Time: "09:00", Courses: []string{"7° A"}})
	acts.Add("2026-03-02", calendar.SectionMiddle, calendar.Activity{ID: "g", Title: "General", Time: "12:00"})
	acts.Add("2026-03-02", calendar.SectionSenior, calendar.Activity{ID: "s", Title: "Senior", Time: "08:00"})

	entries, _ := Assemble(SourceActivities, calendar.SectionMiddle, "6", Dataset{Activities: acts})
	var titles []string
	for _, r := range dataRows(entries) {
		titles = append(titles, r.Columns[1])
	}
	assert.Equal(t, []string{"Sexto", "General"}, titles)
}

func TestAssemble_Empty(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceActivities, "No se encontraron actividades en el rango de fechas seleccionado."},
		{SourceEvaluations, "No se encontraron evaluaciones en el rango de fechas seleccionado."},
		{SourceBoth, "No se encontraron actividades ni evaluaciones en el rango de fechas seleccionado."},
	}

	for _, tc := range tests {
		t.Run(string(tc.source), func(t *testing.T) {
			// a date with records of another section only must not produce a banner
			acts := make(calendar.Buckets[calendar.Activity])
			acts.Add("2026-03-02", calendar.SectionJunior, calendar.Activity{ID: "j", Title: "Junior"})

			entries, _ := Assemble(tc.source, calendar.SectionSenior, AllLevels, Dataset{Activities: acts})
			require.Len(t, entries, 1)
			assert.Equal(t, NoticeRow, entries[0].Kind)
			assert.Equal(t, []string{tc.want}, entries[0].Columns)
		})
	}
}
