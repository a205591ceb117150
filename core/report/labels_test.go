package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCourses(t *testing.T) {
	tests := []struct {
		name          string
		courses       []string
		mode          LabelMode
		wantLabel     string
		wantMalformed []string
	}{
		{name: "empty", courses: nil, wantLabel: ""},
		{name: "single canonical", courses: []string{"6° A"}, wantLabel: "6° A"},
		{name: "single normalized", courses: []string{" 6º  b "}, wantLabel: "6° B"},
		{name: "single unknown", courses: []string{"Taller"}, wantLabel: "Taller", wantMalformed: []string{"Taller"}},
		{name: "A and B collapse", courses: []string{"6° A", "6° B"}, wantLabel: "6° AB"},
		{name: "B and A collapse", courses: []string{"6° B", "6° A"}, wantLabel: "6° AB"},
		{name: "AB wins", courses: []string{"6° A", "6° B", "6° AB"}, wantLabel: "6° AB"},
		{name: "AB with A", courses: []string{"6° AB", "6° A"}, wantLabel: "6° AB"},
		{name: "senior pair", courses: []string{"I EM A", "I EM B"}, wantLabel: "I EM AB"},
		{name: "no false collapse across levels", courses: []string{"I EM A", "II EM B"}, wantLabel: "I EM A, II EM B"},
		{name: "middle before senior", courses: []string{"II EM A", "8° B", "5° A"}, wantLabel: "5° A, 8° B, II EM A"},
		{name: "roman order", courses: []string{"IV EM A", "I EM A", "III EM B"}, wantLabel: "I EM A, III EM B, IV EM A"},
		{name: "duplicates dropped", courses: []string{"7° A", "7° A"}, wantLabel: "7° A"},
		{
			name:          "unknown codes last",
			courses:       []string{"Taller", "6° A", "6° B"},
			wantLabel:     "6° AB, Taller",
			wantMalformed: []string{"Taller"},
		},
		{name: "junior first", courses: []string{"6° A", "Junior A", "Junior B"}, wantLabel: "Junior AB, 6° A"},
		{name: "multi-line", courses: []string{"6° A", "6° B", "I EM A"}, mode: MultiLine, wantLabel: "6° AB\nI EM A"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			label, malformed := FormatCourses(tc.courses, tc.mode)
			assert.Equal(t, tc.wantLabel, label)
			assert.Equal(t, tc.wantMalformed, malformed)
		})
	}
}

func TestFormatCourses_Idempotent(t *testing.T) {
	inputs := [][]string{
		{"6° A", "6° B"},
		{"I EM A", "II EM B"},
		{"5° A", "6° AB", "IV EM B"},
		{"Junior A", "7° B"},
	}
	for _, mode := range []LabelMode{SingleLine, MultiLine} {
		for _, in := range inputs {
			once, _ := FormatCourses(in, mode)
			twice, malformed := FormatCourses([]string{once}, mode)
			assert.Equal(t, once, twice, "input %q", in)
			assert.Empty(t, malformed)
		}
	}
}
