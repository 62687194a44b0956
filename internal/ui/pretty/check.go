package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdbridge/pkg/document"
	"github.com/yaklabco/mdbridge/pkg/textdiff"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// CheckStats summarizes a round-trip check over several files.
type CheckStats struct {
	FilesChecked    int
	FilesMismatched int
	FilesFailed     int
}

// FormatRoundTrip formats the outcome of one file's round-trip check. A
// matching result is a single line; a mismatch is followed by a diff of the
// direct and model renderings.
func (s *Styles) FormatRoundTrip(path string, result document.RoundTrip) string {
	if result.Equal() {
		return s.FilePath.Render(path) + " " + s.Success.Render("ok") + "\n"
	}

	var builder strings.Builder
	builder.WriteString(s.FilePath.Render(path) + " " + s.Failure.Render("mismatch"))
	if result.Unmodelled > 0 {
		builder.WriteString(s.Dim.Render(fmt.Sprintf(" (%d %s without a model type)",
			result.Unmodelled, plural(result.Unmodelled, "node", "nodes"))))
	}
	builder.WriteString("\n")
	builder.WriteString(s.FormatDiff(result.Direct, result.ViaModel))
	return builder.String()
}

// FormatDiff formats the unified diff from the direct rendering to the
// rendering via the model. Identical inputs format as the empty string.
func (s *Styles) FormatDiff(direct, viaModel string) string {
	diff := textdiff.Compute("direct", "via model", direct, viaModel)
	if !diff.HasChanges() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- "+diff.OldLabel) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ "+diff.NewLabel) + "\n")

	for _, hunk := range diff.Hunks {
		builder.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			text := line.Kind.Prefix() + line.Text
			switch line.Kind {
			case textdiff.Added:
				builder.WriteString(s.DiffAdd.Render(text))
			case textdiff.Removed:
				builder.WriteString(s.DiffRemove.Render(text))
			default:
				builder.WriteString(s.DiffContext.Render(text))
			}
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// FormatCheckSummaryOneLine formats check statistics as a single line.
// Example: "2 of 5 files differ after a model round trip".
func (s *Styles) FormatCheckSummaryOneLine(stats CheckStats) string {
	if stats.FilesMismatched == 0 && stats.FilesFailed == 0 {
		return s.Success.Render("All files round-trip") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesChecked, pluralFiles(stats.FilesChecked))) + "\n"
	}

	var parts []string
	if stats.FilesMismatched > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d of %d %s differ after a model round trip",
			stats.FilesMismatched, stats.FilesChecked, pluralFiles(stats.FilesChecked))))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed to parse",
			stats.FilesFailed, pluralFiles(stats.FilesFailed))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatCheckSummary formats check statistics as a summary block.
func (s *Styles) FormatCheckSummary(stats CheckStats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")
	if stats.FilesMismatched > 0 {
		builder.WriteString("  Files mismatched:  " +
			s.Failure.Render(strconv.Itoa(stats.FilesMismatched)) + "\n")
	}
	if stats.FilesFailed > 0 {
		builder.WriteString("  Files failed:      " +
			s.Error.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	builder.WriteString("\n")
	if stats.FilesMismatched > 0 || stats.FilesFailed > 0 {
		builder.WriteString(s.Failure.Render("Round-trip check failed"))
	} else {
		builder.WriteString(s.Success.Render("Round-trip check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func pluralFiles(n int) string {
	return plural(n, wordFile, wordFiles)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
