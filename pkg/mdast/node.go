package mdast

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeHTMLBlock
	NodeCustomBlock
	NodeThematicBreak

	// Inline-level nodes.
	NodeText
	NodeSoftBreak
	NodeLineBreak
	NodeCode
	NodeHTMLInline
	NodeCustomInline
	NodeEmphasis
	NodeStrong
	NodeLink
	NodeImage

	// Fallback for engine nodes with no counterpart, and for released views.
	NodeUnknown
)

var nodeKindNames = [...]string{
	NodeDocument:      "Document",
	NodeParagraph:     "Paragraph",
	NodeHeading:       "Heading",
	NodeList:          "List",
	NodeListItem:      "ListItem",
	NodeBlockquote:    "Blockquote",
	NodeCodeBlock:     "CodeBlock",
	NodeHTMLBlock:     "HTMLBlock",
	NodeCustomBlock:   "CustomBlock",
	NodeThematicBreak: "ThematicBreak",
	NodeText:          "Text",
	NodeSoftBreak:     "SoftBreak",
	NodeLineBreak:     "LineBreak",
	NodeCode:          "Code",
	NodeHTMLInline:    "HTMLInline",
	NodeCustomInline:  "CustomInline",
	NodeEmphasis:      "Emphasis",
	NodeStrong:        "Strong",
	NodeLink:          "Link",
	NodeImage:         "Image",
	NodeUnknown:       "Unknown",
}

// String returns the kind name.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsBlock returns true for block-level kinds, including the document.
func (k NodeKind) IsBlock() bool {
	switch k {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeHTMLBlock, NodeCustomBlock, NodeThematicBreak:
		return true
	default:
		return false
	}
}

// IsInline returns true for inline-level kinds.
func (k NodeKind) IsInline() bool {
	switch k {
	case NodeText, NodeSoftBreak, NodeLineBreak, NodeCode, NodeHTMLInline,
		NodeCustomInline, NodeEmphasis, NodeStrong, NodeLink, NodeImage:
		return true
	default:
		return false
	}
}

// IsLeaf returns true for kinds that never expose children.
func (k NodeKind) IsLeaf() bool {
	switch k {
	case NodeText, NodeSoftBreak, NodeLineBreak, NodeCode, NodeHTMLInline, NodeCustomInline,
		NodeCodeBlock, NodeHTMLBlock, NodeCustomBlock, NodeThematicBreak:
		return true
	default:
		return false
	}
}

// ListKind distinguishes bullet lists from ordered lists.
type ListKind uint8

const (
	// ListBullet is an unordered list ("-", "+", "*").
	ListBullet ListKind = iota

	// ListOrdered is an ordered list ("1.", "1)").
	ListOrdered
)

// String returns a human-readable name for the list kind.
func (k ListKind) String() string {
	if k == ListOrdered {
		return "ordered"
	}
	return "bullet"
}
