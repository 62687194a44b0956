package model

import "strings"

// PlainText flattens inlines to their visible text. Breaks become a single
// space; raw HTML and custom literals are dropped.
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	writePlain(&sb, inlines)
	return sb.String()
}

func writePlain(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case Text:
			sb.WriteString(v.Text)
		case Code:
			sb.WriteString(v.Text)
		case SoftBreak, LineBreak:
			sb.WriteByte(' ')
		case Emphasis:
			writePlain(sb, v.Children)
		case Strong:
			writePlain(sb, v.Children)
		case Link:
			writePlain(sb, v.Children)
		case Image:
			writePlain(sb, v.Children)
		}
	}
}

// WalkFunc is called for every block visited by WalkBlocks. Returning false
// skips the block's nested blocks.
type WalkFunc func(b Block) bool

// WalkBlocks visits blocks and their nested blocks in document order.
func WalkBlocks(blocks []Block, fn WalkFunc) {
	for _, b := range blocks {
		if !fn(b) {
			continue
		}
		switch v := b.(type) {
		case List:
			for _, item := range v.Items {
				WalkBlocks(item, fn)
			}
		case BlockQuote:
			WalkBlocks(v.Items, fn)
		}
	}
}
