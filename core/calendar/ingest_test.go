package calendar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeActivities(t *testing.T) {
	payload := `{"activities": {
		"2026-03-02": {
			"Junior": [{"id": "1", "actividad": " Día del libro ", "hora": "TODO EL DIA", "lugar": "Patio"}],
			"Middle": [
				{"id": "2", "actividad": "Salida", "hora": "09:00", "curso": "6° A"},
				{"id": "3", "actividad": "Charla", "hora": "10:30", "cursos": ["7° A", " ", "7° B"], "importante": true}
			],
			"Kinder": [{"id": "4", "actividad": "ignored"}]
		}
	}}`

	got, err := DecodeActivities(strings.NewReader(payload))
	require.NoError(t, err)

	day := got["2026-03-02"]
	require.NotNil(t, day)
	assert.Len(t, day, 2)
	assert.Equal(t, Activity{ID: "1", Title: "Día del libro", Time: AllDay, Location: "Patio", Courses: []string{}}, day[SectionJunior][0])
	assert.Equal(t, []string{"6° A"}, day[SectionMiddle][0].Courses)
	assert.Equal(t, []string{"7° A", "7° B"}, day[SectionMiddle][1].Courses)
	assert.True(t, day[SectionMiddle][1].Important)
	assert.Equal(t, 3, got.Len())
}

func TestDecodeEvaluations(t *testing.T) {
	payload := `{"evaluations": {"2026-04-10": {"Senior": [
		{"id": "e1", "asignatura": "Química", "tema": "Estequiometría", "cursos": ["I EM A", "I EM B"]},
		{"id": "e2", "asignatura": "Historia", "curso": "II EM AB", "hora": "08:00"}
	]}}}`

	got, err := DecodeEvaluations(strings.NewReader(payload))
	require.NoError(t, err)

	evals := got["2026-04-10"][SectionSenior]
	require.Len(t, evals, 2)
	assert.Equal(t, []string{"I EM A", "I EM B"}, evals[0].Courses)
	assert.Equal(t, []string{"II EM AB"}, evals[1].Courses)
	assert.Equal(t, "08:00", evals[1].Time)
	assert.Equal(t, "", evals[0].Time)
}

func TestDecodeActivities_invalid(t *testing.T) {
	_, err := DecodeActivities(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestBuckets_Dates(t *testing.T) {
	b := make(Buckets[Activity])
	b.Add("2026-03-10", SectionJunior, Activity{ID: "a"})
	b.Add("2026-02-28", SectionSenior, Activity{ID: "b"})
	b.Add("2026-03-01", SectionMiddle, Activity{ID: "c"})
	assert.Equal(t, []string{"2026-02-28", "2026-03-01", "2026-03-10"}, b.Dates())
}
