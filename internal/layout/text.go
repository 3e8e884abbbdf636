package layout

import (
	"fmt"
	"strings"
	"time"
)

// Placeholder is drawn in place of an absent value.
const Placeholder = "—"

// Measurer reports the rendered width of a string in document units.
type Measurer interface {
	StringWidth(s string, st Style) float64
}

// OrPlaceholder returns v, or Placeholder when v is empty.
func OrPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}

// FormatDate renders an ISO date (yyyy-mm-dd) the German way, day.month.year
// without zero padding. An empty value yields Placeholder; a value that is not
// an ISO date is returned unchanged.
func FormatDate(iso string) string {
	if iso == "" {
		return Placeholder
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(iso))
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d.%d.%d", t.Day(), int(t.Month()), t.Year())
}

// Wrap breaks text into lines no wider than width. Explicit newlines are kept,
// runs of whitespace collapse to a single space, and words wider than width
// are split between characters.
func Wrap(m Measurer, text string, st Style, width float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(m, para, st, width)...)
	}
	return lines
}

func wrapParagraph(m Measurer, para string, st Style, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, w := range words {
		if m.StringWidth(w, st) > width {
			if line != "" {
				lines = append(lines, line)
			}
			pieces := splitWord(m, w, st, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			line = pieces[len(pieces)-1]
			continue
		}

		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if m.StringWidth(candidate, st) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

func splitWord(m Measurer, w string, st Style, width float64) []string {
	var pieces []string
	var cur []rune
	for _, r := range w {
		next := append(cur, r)
		if len(cur) > 0 && m.StringWidth(string(next), st) > width {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	return append(pieces, string(cur))
}
