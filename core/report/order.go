package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/redland/registro/core/calendar"
)

// minutes assigned to a missing or malformed time, i.e. 99:99
const lastMinute = 99*60 + 99

// SortActivities orders activities in place: all-day activities first, in input order,
// then timed activities by time of day.
func SortActivities(acts []calendar.Activity) {
	sort.SliceStable(acts, func(i, j int) bool {
		return activityRank(acts[i].Time) < activityRank(acts[j].Time)
	})
}

// activityRank maps a time of day to a sort key where AllDay sorts first.
func activityRank(t string) int {
	if t == calendar.AllDay {
		return -1
	}
	return minutesOf(t)
}

func minutesOf(t string) int {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 {
		return lastMinute
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return lastMinute
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return lastMinute
	}
	return h*60 + m
}

// SortEvaluations orders evaluations in place by the year level of their first course,
// then by its variant (A, B, AB, anything else). Ties keep their input order.
func SortEvaluations(evals []calendar.Evaluation) {
	sort.SliceStable(evals, func(i, j int) bool {
		li, vi := evaluationRank(evals[i])
		lj, vj := evaluationRank(evals[j])
		if li != lj {
			return li < lj
		}
		return vi < vj
	})
}

func evaluationRank(e calendar.Evaluation) (level, variant int) {
	if len(e.Courses) == 0 {
		return 0, 4
	}
	cc, ok := calendar.ParseCourse(e.Courses[0])
	if !ok {
		return 0, 4
	}
	switch cc.Variant {
	case calendar.VariantA:
		variant = 1
	case calendar.VariantB:
		variant = 2
	case calendar.VariantAB:
		variant = 3
	default:
		variant = 4
	}
	return cc.YearLevel(), variant
}
