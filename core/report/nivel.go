package report

import "github.com/redland/registro/core/calendar"

// AllLevels disables the year level filter.
const AllLevels = "ALL"

// FilterNivel keeps the records of sec that have a course at year level nivel.
// Records without courses concern the whole section and are always kept.
func FilterNivel[T calendar.Coursed](records []T, sec calendar.Section, nivel string) []T {
	if nivel == AllLevels || nivel == "" {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		courses := rec.CourseCodes()
		if len(courses) == 0 {
			out = append(out, rec)
			continue
		}
		for _, c := range courses {
			if calendar.HasLevel(c, sec, nivel) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
