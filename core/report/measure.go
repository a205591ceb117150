package report

import (
	"strings"
	"unicode/utf8"
)

// CellPaddingX is the horizontal padding on each side of a cell, in mm.
const CellPaddingX = 1.5

// Measurer reports the printed width of a string, in mm, at the body font size.
// Renderers provide one backed by their font metrics so that every output shares the same row heights.
type Measurer interface {
	TextWidth(s string) float64
}

// FixedMeasurer gives every rune the same width in mm.
type FixedMeasurer float64

func (m FixedMeasurer) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * float64(m)
}

// WrapText breaks s into lines that fit width. Line breaks in s are kept and words
// wider than a line are split between runes. The result always has at least one line.
func WrapText(m Measurer, s string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line string
		for _, w := range words {
			cand := w
			if line != "" {
				cand = line + " " + w
			}
			if m.TextWidth(cand) <= width {
				line = cand
				continue
			}
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			if m.TextWidth(w) <= width {
				line = w
				continue
			}
			// split an overlong word
			for _, r := range w {
				if line != "" && m.TextWidth(line+string(r)) > width {
					lines = append(lines, line)
					line = ""
				}
				line += string(r)
			}
		}
		lines = append(lines, line)
	}
	return lines
}
