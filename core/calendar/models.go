package calendar

import (
	"sort"
	"strconv"
	"strings"
)

// Sections
const (
	SectionJunior Section = "Junior"
	SectionMiddle Section = "Middle"
	SectionSenior Section = "Senior"

	// AllSections selects every section in filters and marks consolidated rows.
	AllSections Section = "ALL"
)

// AllDay is the time of day of an activity without a specific clock time.
const AllDay = "ALL_DAY"

var (
	Sections = []Section{SectionJunior, SectionMiddle, SectionSenior}

	sectionNames = map[Section]string{
		SectionJunior: "Junior School",
		SectionMiddle: "Middle School",
		SectionSenior: "Senior School",
		AllSections:   "Todas las Secciones",
	}
)

type Section string

func ParseSection(s string) (Section, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JUNIOR":
		return SectionJunior, true
	case "MIDDLE":
		return SectionMiddle, true
	case "SENIOR":
		return SectionSenior, true
	case "ALL", "TODAS", "ALL_SECTIONS":
		return AllSections, true
	}
	return "", false
}

// DisplayName is the human readable name of the section.
func (s Section) DisplayName() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return string(s)
}

// Expand returns the concrete sections selected by s, in display order.
func (s Section) Expand() []Section {
	if s == AllSections || s == "" {
		return Sections
	}
	return []Section{s}
}

type Activity struct {
	ID        string   `json:"id"`
	Title     string   `json:"actividad"`
	Time      string   `json:"hora"` // AllDay or "HH:MM"
	Location  string   `json:"lugar,omitempty"`
	Owner     string   `json:"responsable,omitempty"`
	Courses   []string `json:"cursos"`
	Important bool     `json:"importante"`
}

func (a Activity) CourseCodes() []string { return a.Courses }

func (a Activity) IsAllDay() bool { return a.Time == AllDay }

type Evaluation struct {
	ID      string   `json:"id"`
	Subject string   `json:"asignatura"`
	Topic   string   `json:"tema,omitempty"`
	Time    string   `json:"hora,omitempty"`
	Courses []string `json:"cursos"`
}

func (e Evaluation) CourseCodes() []string { return e.Courses }

// Coursed is any record assigned to zero or more courses.
type Coursed interface {
	CourseCodes() []string
}

// SectionMap holds the records of a single day, per section.
type SectionMap[T any] map[Section][]T

// Buckets maps an ISO date (YYYY-MM-DD) to the records of that day.
type Buckets[T any] map[string]SectionMap[T]

// Dates returns the keys of b sorted ascending, which for ISO dates is chronological.
func (b Buckets[T]) Dates() []string {
	dates := make([]string, 0, len(b))
	for d := range b {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Len counts every record in b.
func (b Buckets[T]) Len() int {
	var n int
	for _, secs := range b {
		for _, recs := range secs {
			n += len(recs)
		}
	}
	return n
}

// Add appends rec to the bucket of date and sec.
func (b Buckets[T]) Add(date string, sec Section, rec T) {
	secs, ok := b[date]
	if !ok {
		secs = make(SectionMap[T])
		b[date] = secs
	}
	secs[sec] = append(secs[sec], rec)
}

// Identity is the acting user, as provided by the session collaborator.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	}
	return "Anónimo"
}

// ValidTime reports whether t is AllDay or a HH:MM time between 07:00 and 18:59.
func ValidTime(t string) bool {
	if t == AllDay {
		return true
	}
	parts := strings.Split(t, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 7 || h > 18 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	return err == nil && m >= 0 && m < 60
}
