package calendar

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Course variants
const (
	VariantA  = "A"
	VariantB  = "B"
	VariantAB = "AB"
)

var (
	MiddleLevels = []string{"5", "6", "7", "8"}
	SeniorLevels = []string{"I", "II", "III", "IV"}

	romanRanks = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4}

	middleRegex = regexp.MustCompile(`^([5-8])\s*°?\s*(AB|A|B)$`)
	seniorRegex = regexp.MustCompile(`^(IV|III|II|I)\s*EM\s*(AB|A|B)$`)
	juniorRegex = regexp.MustCompile(`^JUNIOR\s*(AB|A|B)$`)
	spaceRegex  = regexp.MustCompile(`\s+`)

	courseMap = buildCourseMap()
)

// CourseCode is a parsed course identifier such as "6° A" or "II EM AB".
type CourseCode struct {
	Section Section
	Level   string // "5".."8" (Middle), "I".."IV" (Senior), "" (Junior)
	Variant string // A, B or AB
}

// LevelLabel is the grouping key of the course: "6°", "II EM" or "Junior".
func (c CourseCode) LevelLabel() string {
	switch c.Section {
	case SectionMiddle:
		return c.Level + "°"
	case SectionSenior:
		return c.Level + " EM"
	}
	return string(c.Section)
}

// String returns the canonical form of the course.
func (c CourseCode) String() string {
	return c.LevelLabel() + " " + c.Variant
}

// YearLevel is the numeric year of the course: 5..8 for Middle, 1..4 for Senior and 0 otherwise.
func (c CourseCode) YearLevel() int {
	switch c.Section {
	case SectionMiddle:
		return int(c.Level[0] - '0')
	case SectionSenior:
		return romanRanks[c.Level]
	}
	return 0
}

// ParseCourse parses raw into a CourseCode, tolerating spacing, case and ordinal-sign variations.
func ParseCourse(raw string) (CourseCode, bool) {
	s := canonicalText(raw)
	if m := middleRegex.FindStringSubmatch(s); m != nil {
		return CourseCode{Section: SectionMiddle, Level: m[1], Variant: m[2]}, true
	}
	if m := seniorRegex.FindStringSubmatch(s); m != nil {
		return CourseCode{Section: SectionSenior, Level: m[1], Variant: m[2]}, true
	}
	if m := juniorRegex.FindStringSubmatch(s); m != nil {
		return CourseCode{Section: SectionJunior, Variant: m[1]}, true
	}
	return CourseCode{}, false
}

// HasLevel reports whether raw is a course of sec at year level nivel ("6", "II"...).
func HasLevel(raw string, sec Section, nivel string) bool {
	cc, ok := ParseCourse(raw)
	return ok && cc.Section == sec && cc.Level == nivel
}

// CoursesFor returns the course vocabulary of sec.
func CoursesFor(sec Section) []string {
	return courseMap[sec]
}

// ValidCourse reports whether raw belongs to the course vocabulary of sec.
func ValidCourse(sec Section, raw string) bool {
	cc, ok := ParseCourse(raw)
	return ok && cc.Section == sec
}

// ValidLevel reports whether nivel is a year level of sec.
func ValidLevel(sec Section, nivel string) bool {
	var levels []string
	switch sec {
	case SectionMiddle:
		levels = MiddleLevels
	case SectionSenior:
		levels = SeniorLevels
	}
	for _, l := range levels {
		if l == nivel {
			return true
		}
	}
	return false
}

func canonicalText(raw string) string {
	s := norm.NFC.String(raw)
	s = strings.NewReplacer("º", "°", "˚", "°").Replace(s)
	s = spaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.ToUpper(s)
}

func buildCourseMap() map[Section][]string {
	m := map[Section][]string{
		SectionJunior: {"Junior A", "Junior B", "Junior AB"},
	}
	variants := []string{VariantA, VariantB, VariantAB}
	for _, lvl := range MiddleLevels {
		for _, v := range variants {
			m[SectionMiddle] = append(m[SectionMiddle], CourseCode{Section: SectionMiddle, Level: lvl, Variant: v}.String())
		}
	}
	for _, lvl := range SeniorLevels {
		for _, v := range variants {
			m[SectionSenior] = append(m[SectionSenior], CourseCode{Section: SectionSenior, Level: lvl, Variant: v}.String())
		}
	}
	return m
}
