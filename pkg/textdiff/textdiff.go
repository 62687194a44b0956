// Package textdiff computes line-based unified diffs between two renderings
// of a document.
package textdiff

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between an old and a new text.
type Diff struct {
	// OldLabel names the old text in the "---" header.
	OldLabel string

	// NewLabel names the new text in the "+++" header.
	NewLabel string

	// Hunks contains the changed regions with surrounding context.
	Hunks []Hunk

	// Additions is the number of lines only in the new text.
	Additions int

	// Deletions is the number of lines only in the old text.
	Deletions int
}

// Hunk is one changed region of a diff.
type Hunk struct {
	// OldStart is the 1-based line in the old text where the hunk starts.
	OldStart int

	// OldCount is the number of old lines the hunk covers.
	OldCount int

	// NewStart is the 1-based line in the new text where the hunk starts.
	NewStart int

	// NewCount is the number of new lines the hunk covers.
	NewCount int

	Lines []Line
}

// Line is a single line of a hunk.
type Line struct {
	Kind LineKind

	// Text is the line without its diff prefix or newline.
	Text string
}

// LineKind tells whether a line is shared, added or removed.
type LineKind int

const (
	// Context is a line present in both texts.
	Context LineKind = iota

	// Added is a line only in the new text.
	Added

	// Removed is a line only in the old text.
	Removed
)

// Prefix returns the unified diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Compute returns the diff from oldText to newText with DefaultContext lines
// of context, or nil when the texts have the same lines.
func Compute(oldLabel, newLabel, oldText, newText string) *Diff {
	return ComputeContext(oldLabel, newLabel, oldText, newText, DefaultContext)
}

// ComputeContext is Compute with an explicit number of context lines.
func ComputeContext(oldLabel, newLabel, oldText, newText string, context int) *Diff {
	oldLines := SplitLines(oldText)
	newLines := SplitLines(newText)

	if equalLines(oldLines, newLines) {
		return nil
	}

	ops := editScript(oldLines, newLines)
	hunks := groupHunks(ops, max(context, 0))
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{OldLabel: oldLabel, NewLabel: newLabel, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Added:
				diff.Additions++
			case Removed:
				diff.Deletions++
			}
		}
	}
	return diff
}

// HasChanges reports whether d has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns d in unified diff format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n", d.OldLabel)
	fmt.Fprintf(&builder, "+++ %s\n", d.NewLabel)

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteString("\n")
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix())
			builder.WriteString(line.Text)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// SplitLines splits text into lines, dropping the newline that ends the last one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// editScript walks both texts along their longest common subsequence and
// returns one Line per step.
func editScript(oldLines, newLines []string) []Line {
	common := longestCommonSubsequence(oldLines, newLines)

	var ops []Line
	oldIdx, newIdx := 0, 0
	for _, shared := range common {
		for oldLines[oldIdx] != shared {
			ops = append(ops, Line{Kind: Removed, Text: oldLines[oldIdx]})
			oldIdx++
		}
		for newLines[newIdx] != shared {
			ops = append(ops, Line{Kind: Added, Text: newLines[newIdx]})
			newIdx++
		}
		ops = append(ops, Line{Kind: Context, Text: shared})
		oldIdx++
		newIdx++
	}
	for ; oldIdx < len(oldLines); oldIdx++ {
		ops = append(ops, Line{Kind: Removed, Text: oldLines[oldIdx]})
	}
	for ; newIdx < len(newLines); newIdx++ {
		ops = append(ops, Line{Kind: Added, Text: newLines[newIdx]})
	}

	return ops
}

// groupHunks cuts the edit script into hunks. Changes separated by at most
// 2*context unchanged lines share a hunk.
func groupHunks(ops []Line, context int) []Hunk {
	type span struct{ start, end int }

	var changes []span
	for i := 0; i < len(ops); {
		if ops[i].Kind == Context {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].Kind != Context {
			i++
		}
		changes = append(changes, span{start, i})
	}

	var hunks []Hunk
	for i := 0; i < len(changes); {
		j := i + 1
		for j < len(changes) && changes[j].start-changes[j-1].end <= 2*context {
			j++
		}

		start := max(changes[i].start-context, 0)
		end := min(changes[j-1].end+context, len(ops))
		hunks = append(hunks, buildHunk(ops, start, end))

		i = j
	}

	return hunks
}

func buildHunk(ops []Line, start, end int) Hunk {
	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != Added {
			hunk.OldStart++
		}
		if op.Kind != Removed {
			hunk.NewStart++
		}
	}

	hunk.Lines = append(hunk.Lines, ops[start:end]...)
	for _, op := range hunk.Lines {
		if op.Kind != Added {
			hunk.OldCount++
		}
		if op.Kind != Removed {
			hunk.NewCount++
		}
	}

	return hunk
}

// longestCommonSubsequence returns the LCS of two line slices.
func longestCommonSubsequence(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
	}

	for row := 1; row <= len(a); row++ {
		for col := 1; col <= len(b); col++ {
			if a[row-1] == b[col-1] {
				table[row][col] = table[row-1][col-1] + 1
			} else {
				table[row][col] = max(table[row-1][col], table[row][col-1])
			}
		}
	}

	length := table[len(a)][len(b)]
	if length == 0 {
		return nil
	}

	lcs := make([]string, length)
	row, col, idx := len(a), len(b), length-1
	for row > 0 && col > 0 {
		switch {
		case a[row-1] == b[col-1]:
			lcs[idx] = a[row-1]
			row--
			col--
			idx--
		case table[row-1][col] > table[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
