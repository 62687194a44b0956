package pretty

import (
	"strings"

	"github.com/yaklabco/mdbridge/pkg/model"
)

// FormatOutline lists the headings of blocks in document order, including
// those nested in lists and block quotes. Each heading is indented two spaces
// per level below the first.
func (s *Styles) FormatOutline(blocks []model.Block) string {
	var builder strings.Builder
	model.WalkBlocks(blocks, func(b model.Block) bool {
		heading, ok := b.(model.Heading)
		if !ok {
			return true
		}
		level := max(heading.Level, 1)
		builder.WriteString(strings.Repeat("  ", level-1))
		builder.WriteString(s.Dim.Render(strings.Repeat("#", level)))
		builder.WriteString(" " + s.Bold.Render(model.PlainText(heading.Text)) + "\n")
		return false
	})
	return builder.String()
}
