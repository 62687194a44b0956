package model

// EqualBlocks reports whether two block sequences are structurally equal.
// A nil sequence equals an empty one.
func EqualBlocks(a, b []Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualBlock(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualInlines reports whether two inline sequences are structurally equal.
// A nil sequence equals an empty one.
func EqualInlines(a, b []Inline) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualInline(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualBlock reports whether two blocks are structurally equal.
//
//nolint:cyclop // one case per variant
func EqualBlock(a, b Block) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case List:
		y, ok := b.(List)
		if !ok || x.Type != y.Type || x.Start != y.Start || x.Tight != y.Tight || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !EqualBlocks(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case BlockQuote:
		y, ok := b.(BlockQuote)
		return ok && EqualBlocks(x.Items, y.Items)
	case Paragraph:
		y, ok := b.(Paragraph)
		return ok && EqualInlines(x.Text, y.Text)
	case Heading:
		y, ok := b.(Heading)
		return ok && x.Level == y.Level && EqualInlines(x.Text, y.Text)
	case CodeBlock, HTMLBlock, CustomBlock, ThematicBreak:
		return a == b
	default:
		return false
	}
}

// EqualInline reports whether two inlines are structurally equal.
func EqualInline(a, b Inline) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case Emphasis:
		y, ok := b.(Emphasis)
		return ok && EqualInlines(x.Children, y.Children)
	case Strong:
		y, ok := b.(Strong)
		return ok && EqualInlines(x.Children, y.Children)
	case Link:
		y, ok := b.(Link)
		return ok && x.Title == y.Title && x.URL == y.URL && EqualInlines(x.Children, y.Children)
	case Image:
		y, ok := b.(Image)
		return ok && x.Title == y.Title && x.URL == y.URL && EqualInlines(x.Children, y.Children)
	case Text, SoftBreak, LineBreak, Code, InlineHTML, CustomInline:
		return a == b
	default:
		return false
	}
}
