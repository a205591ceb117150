package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redland/registro/core/calendar"
)

func TestFilterNivel(t *testing.T) {
	acts := []calendar.Activity{
		{ID: "i", Courses: []string{"I EM A"}},
		{ID: "ii", Courses: []string{"II EM B"}},
		{ID: "mixed", Courses: []string{"III EM A", "I EM B"}},
		{ID: "general"},
	}

	tests := []struct {
		name  string
		sec   calendar.Section
		nivel string
		want  []string
	}{
		{name: "all levels", sec: calendar.SectionSenior, nivel: AllLevels, want: []string{"i", "ii", "mixed", "general"}},
		{name: "empty means all", sec: calendar.SectionSenior, nivel: "", want: []string{"i", "ii", "mixed", "general"}},
		{name: "I does not match II", sec: calendar.SectionSenior, nivel: "I", want: []string{"i", "mixed", "general"}},
		{name: "II", sec: calendar.SectionSenior, nivel: "II", want: []string{"ii", "general"}},
		{name: "other section", sec: calendar.SectionMiddle, nivel: "6", want: []string{"general"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, activityIDs(FilterNivel(acts, tc.sec, tc.nivel)))
		})
	}
}

func TestFilterNivel_Evaluations(t *testing.T) {
	evals := []calendar.Evaluation{
		{ID: "6a", Courses: []string{"6° A"}},
		{ID: "7b", Courses: []string{"7 B"}},
	}
	assert.Equal(t, []string{"7b"}, evaluationIDs(FilterNivel(evals, calendar.SectionMiddle, "7")))
}
