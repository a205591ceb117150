package calendar

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// legacy spellings of AllDay stored by earlier versions of the register
var allDayAliases = map[string]bool{
	"TODO EL DIA": true,
	"TODO EL DÍA": true,
	"ALL_DAY":     true,
	"ALL DAY":     true,
}

// RawActivity is an activity as stored by the CRUD backend. Older records carry a single
// `curso` instead of the `cursos` list.
type RawActivity struct {
	ID        string   `json:"id"`
	Title     string   `json:"actividad"`
	Time      string   `json:"hora"`
	Location  string   `json:"lugar"`
	Owner     string   `json:"responsable"`
	Courses   []string `json:"cursos"`
	Course    string   `json:"curso"`
	Important bool     `json:"importante"`
}

// RawEvaluation is an evaluation as stored by the CRUD backend.
type RawEvaluation struct {
	ID      string   `json:"id"`
	Subject string   `json:"asignatura"`
	Topic   string   `json:"tema"`
	Time    string   `json:"hora"`
	Courses []string `json:"cursos"`
	Course  string   `json:"curso"`
}

func (r RawActivity) Normalize() Activity {
	return Activity{
		ID:        r.ID,
		Title:     strings.TrimSpace(r.Title),
		Time:      normalizeTime(r.Time, true),
		Location:  strings.TrimSpace(r.Location),
		Owner:     strings.TrimSpace(r.Owner),
		Courses:   normalizeCourses(r.Courses, r.Course),
		Important: r.Important,
	}
}

func (r RawEvaluation) Normalize() Evaluation {
	return Evaluation{
		ID:      r.ID,
		Subject: strings.TrimSpace(r.Subject),
		Topic:   strings.TrimSpace(r.Topic),
		Time:    normalizeTime(r.Time, false),
		Courses: normalizeCourses(r.Courses, r.Course),
	}
}

func normalizeTime(t string, allDayDefault bool) string {
	t = strings.TrimSpace(t)
	if allDayAliases[strings.ToUpper(t)] {
		return AllDay
	}
	if t == "" && allDayDefault {
		return AllDay
	}
	return t
}

func normalizeCourses(courses []string, legacy string) []string {
	if len(courses) == 0 && strings.TrimSpace(legacy) != "" {
		courses = []string{legacy}
	}
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

type (
	activitiesPayload struct {
		Activities map[string]map[string][]RawActivity `json:"activities"`
	}
	evaluationsPayload struct {
		Evaluations map[string]map[string][]RawEvaluation `json:"evaluations"`
	}
)

// DecodeActivities reads a `{"activities": {date: {section: [...]}}}` payload.
// Unknown sections are dropped.
func DecodeActivities(r io.Reader) (Buckets[Activity], error) {
	var payload activitiesPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding activities")
	}
	out := make(Buckets[Activity], len(payload.Activities))
	for date, secs := range payload.Activities {
		for name, raws := range secs {
			sec, ok := ParseSection(name)
			if !ok || sec == AllSections {
				continue
			}
			for _, raw := range raws {
				out.Add(date, sec, raw.Normalize())
			}
		}
	}
	return out, nil
}

// DecodeEvaluations reads a `{"evaluations": {date: {section: [...]}}}` payload.
func DecodeEvaluations(r io.Reader) (Buckets[Evaluation], error) {
	var payload evaluationsPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding evaluations")
	}
	out := make(Buckets[Evaluation], len(payload.Evaluations))
	for date, secs := range payload.Evaluations {
		for name, raws := range secs {
			sec, ok := ParseSection(name)
			if !ok || sec == AllSections {
				continue
			}
			for _, raw := range raws {
				out.Add(date, sec, raw.Normalize())
			}
		}
	}
	return out, nil
}
