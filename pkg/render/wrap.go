package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// nbsp stands in for a space that must not become a line break, such as
// one inside a code span. It is turned back into a space after wrapping.
const nbsp = '\x00'

// wrapLines splits text on newlines and wraps each line at width display
// columns, breaking only at spaces. Width zero disables wrapping.
func wrapLines(text string, width int) []string {
	var out []string
	for line := range strings.SplitSeq(text, "\n") {
		if width <= 0 {
			out = append(out, restoreSpaces(strings.TrimRight(line, " ")))
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line string, width int) []string {
	var (
		out     []string
		current strings.Builder
		col     int
	)

	flush := func() {
		out = append(out, restoreSpaces(strings.TrimRight(current.String(), " ")))
		current.Reset()
		col = 0
	}

	for word := range strings.SplitSeq(line, " ") {
		w := runewidth.StringWidth(word)
		switch {
		case current.Len() == 0:
		case col+1+w > width && strings.TrimSpace(current.String()) != "":
			flush()
			if word == "" {
				continue
			}
		default:
			current.WriteByte(' ')
			col++
		}
		current.WriteString(word)
		col += w
	}
	if current.Len() > 0 || len(out) == 0 {
		flush()
	}
	return out
}

func restoreSpaces(s string) string {
	return strings.ReplaceAll(s, string(nbsp), " ")
}

func protectSpaces(s string) string {
	return strings.ReplaceAll(s, " ", string(nbsp))
}

// prefixLines prepends first to the first line and rest to every other
// non-empty line.
func prefixLines(lines []string, first, rest string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			out = append(out, strings.TrimRight(first+line, " "))
		case line == "":
			out = append(out, strings.TrimRight(rest, " "))
		default:
			out = append(out, rest+line)
		}
	}
	return out
}
