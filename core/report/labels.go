package report

import (
	"sort"
	"strings"

	"github.com/redland/registro/core/calendar"
)

type LabelMode int

const (
	// SingleLine joins course groups with ", ".
	SingleLine LabelMode = iota
	// MultiLine puts every course group on its own line.
	MultiLine
)

type courseGroup struct {
	code     calendar.CourseCode // Variant unused
	variants []string
	hasAB    bool
}

func (g *courseGroup) add(variant string) {
	if variant == calendar.VariantAB {
		g.hasAB = true
		return
	}
	for _, v := range g.variants {
		if v == variant {
			return
		}
	}
	g.variants = append(g.variants, variant)
}

func (g *courseGroup) labels() []string {
	lvl := g.code.LevelLabel()
	if g.hasAB || (len(g.variants) == 2 && containsStr(g.variants, calendar.VariantA) && containsStr(g.variants, calendar.VariantB)) {
		return []string{lvl + " " + calendar.VariantAB}
	}
	out := make([]string, 0, len(g.variants))
	for _, v := range g.variants {
		out = append(out, lvl+" "+v)
	}
	return out
}

// FormatCourses turns raw course codes into a compact label: ["6° A", "6° B", "I EM A"] becomes
// "6° AB, I EM A". Codes that match no known pattern are kept verbatim, after the known ones,
// and returned as malformed. Formatting an already formatted label yields the same label.
func FormatCourses(courses []string, mode LabelMode) (string, []string) {
	courses = expandLabels(courses)
	switch len(courses) {
	case 0:
		return "", nil
	case 1:
		if cc, ok := calendar.ParseCourse(courses[0]); ok {
			return cc.String(), nil
		}
		return courses[0], []string{courses[0]}
	}

	groups := make(map[string]*courseGroup)
	var (
		order     []*courseGroup
		others    []string
		malformed []string
	)
	for _, raw := range courses {
		cc, ok := calendar.ParseCourse(raw)
		if !ok {
			if !containsStr(others, raw) {
				others = append(others, raw)
				malformed = append(malformed, raw)
			}
			continue
		}
		key := cc.LevelLabel()
		g, ok := groups[key]
		if !ok {
			g = &courseGroup{code: cc}
			groups[key] = g
			order = append(order, g)
		}
		g.add(cc.Variant)
	}

	sort.SliceStable(order, func(i, j int) bool {
		si, sj := sectionRank(order[i].code.Section), sectionRank(order[j].code.Section)
		if si != sj {
			return si < sj
		}
		return order[i].code.YearLevel() < order[j].code.YearLevel()
	})

	parts := make([]string, 0, len(order)+len(others))
	for _, g := range order {
		parts = append(parts, strings.Join(g.labels(), ", "))
	}
	parts = append(parts, others...)

	sep := ", "
	if mode == MultiLine {
		sep = "\n"
	}
	return strings.Join(parts, sep), malformed
}

// expandLabels splits previously formatted labels back into their course codes.
// An element is only split when every part is a known course code.
func expandLabels(courses []string) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.ContainsAny(c, ",\n") {
			out = append(out, c)
			continue
		}
		parts := strings.FieldsFunc(c, func(r rune) bool { return r == ',' || r == '\n' })
		known := len(parts) > 0
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
			if _, ok := calendar.ParseCourse(parts[i]); !ok {
				known = false
				break
			}
		}
		if known {
			out = append(out, parts...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func sectionRank(sec calendar.Section) int {
	switch sec {
	case calendar.SectionJunior:
		return 0
	case calendar.SectionMiddle:
		return 1
	case calendar.SectionSenior:
		return 2
	}
	return 3
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
