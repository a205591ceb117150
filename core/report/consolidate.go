package report

import (
	"sort"

	"github.com/redland/registro/core/calendar"
)

// ActivityRow is an activity occurrence within a single section on a given date.
type ActivityRow struct {
	Date    string
	Section calendar.Section
	calendar.Activity
}

type consolidationKey struct {
	date, time, title, owner, location string
}

func keyOf(r ActivityRow) consolidationKey {
	return consolidationKey{r.Date, r.Time, r.Title, r.Owner, r.Location}
}

// Consolidate collapses activity rows that appear identically in Junior, Middle and Senior into
// a single AllSections row. Rows are grouped by date, time, title, owner and location, courses are
// not part of the key. Groups with any other section set are kept row by row. The result is
// re-sorted by time of day.
func Consolidate(rows []ActivityRow) []ActivityRow {
	groups := make(map[consolidationKey][]ActivityRow)
	var order []consolidationKey
	for _, r := range rows {
		k := keyOf(r)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]ActivityRow, 0, len(rows))
	for _, k := range order {
		g := groups[k]
		if coversAllSections(g) {
			out = append(out, merge(g))
			continue
		}
		out = append(out, g...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return activityRank(out[i].Time) < activityRank(out[j].Time)
	})
	return out
}

func coversAllSections(g []ActivityRow) bool {
	if len(g) != len(calendar.Sections) {
		return false
	}
	seen := make(map[calendar.Section]bool, len(g))
	for _, r := range g {
		seen[r.Section] = true
	}
	for _, s := range calendar.Sections {
		if !seen[s] {
			return false
		}
	}
	return true
}

// merge folds a Junior/Middle/Senior group into one row. Courses are merged in section order.
func merge(g []ActivityRow) ActivityRow {
	bySection := make(map[calendar.Section]ActivityRow, len(g))
	for _, r := range g {
		bySection[r.Section] = r
	}
	merged := g[0]
	merged.Section = calendar.AllSections
	merged.Courses = nil
	seen := make(map[string]bool)
	for _, s := range calendar.Sections {
		r := bySection[s]
		merged.Important = merged.Important || r.Important
		for _, c := range r.Courses {
			if !seen[c] {
				seen[c] = true
				merged.Courses = append(merged.Courses, c)
			}
		}
	}
	return merged
}
