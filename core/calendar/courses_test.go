package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCourse(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   CourseCode
		wantOk bool
	}{
		{name: "middle canonical", raw: "6° A", want: CourseCode{Section: SectionMiddle, Level: "6", Variant: "A"}, wantOk: true},
		{name: "middle no space", raw: "7°AB", want: CourseCode{Section: SectionMiddle, Level: "7", Variant: "AB"}, wantOk: true},
		{name: "middle ordinal sign", raw: "8º b", want: CourseCode{Section: SectionMiddle, Level: "8", Variant: "B"}, wantOk: true},
		{name: "middle out of range", raw: "4° A"},
		{name: "senior canonical", raw: "I EM B", want: CourseCode{Section: SectionSenior, Level: "I", Variant: "B"}, wantOk: true},
		{name: "senior extra spaces", raw: "  III   EM   AB ", want: CourseCode{Section: SectionSenior, Level: "III", Variant: "AB"}, wantOk: true},
		{name: "senior IV", raw: "IV EM A", want: CourseCode{Section: SectionSenior, Level: "IV", Variant: "A"}, wantOk: true},
		{name: "senior without EM", raw: "II A"},
		{name: "junior", raw: "Junior AB", want: CourseCode{Section: SectionJunior, Variant: "AB"}, wantOk: true},
		{name: "garbage", raw: "Taller de robótica"},
		{name: "empty", raw: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCourse(tt.raw)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseCode_String(t *testing.T) {
	assert.Equal(t, "6° A", CourseCode{Section: SectionMiddle, Level: "6", Variant: "A"}.String())
	assert.Equal(t, "II EM AB", CourseCode{Section: SectionSenior, Level: "II", Variant: "AB"}.String())
	assert.Equal(t, "Junior B", CourseCode{Section: SectionJunior, Variant: "B"}.String())
}

func TestCourseCode_YearLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"5° A", 5}, {"8° AB", 8}, {"I EM A", 1}, {"IV EM B", 4}, {"Junior A", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cc, ok := ParseCourse(tt.raw)
			assert.True(t, ok)
			assert.Equal(t, tt.want, cc.YearLevel())
		})
	}
}

func TestCourseVocabulary(t *testing.T) {
	assert.Len(t, CoursesFor(SectionMiddle), 12)
	assert.Len(t, CoursesFor(SectionSenior), 12)
	assert.Equal(t, []string{"Junior A", "Junior B", "Junior AB"}, CoursesFor(SectionJunior))

	for _, sec := range Sections {
		for _, c := range CoursesFor(sec) {
			assert.True(t, ValidCourse(sec, c), c)
		}
	}
	assert.False(t, ValidCourse(SectionMiddle, "I EM A"))
	assert.True(t, HasLevel("II EM B", SectionSenior, "II"))
	assert.False(t, HasLevel("II EM B", SectionSenior, "I"))
	assert.True(t, ValidLevel(SectionMiddle, "5"))
	assert.False(t, ValidLevel(SectionJunior, "5"))
}

func TestValidTime(t *testing.T) {
	for tm, want := range map[string]bool{
		AllDay: true, "07:00": true, "18:45": true, "06:59": false, "19:00": false, "9:00": false, "lol": false, "": false,
	} {
		assert.Equal(t, want, ValidTime(tm), tm)
	}
}
