// Package model defines the immutable block and inline document model that
// mdbridge converts to and from Markdown trees.
//
// Block and Inline are closed sum types: only the variants declared in this
// package implement them. Optional string fields use the empty string to mean
// absent.
package model

// Tag names a model variant.
type Tag string

// Block variant tags.
const (
	ListTag          Tag = "List"
	BlockQuoteTag    Tag = "BlockQuote"
	CodeBlockTag     Tag = "CodeBlock"
	HTMLBlockTag     Tag = "HTMLBlock"
	ParagraphTag     Tag = "Paragraph"
	HeadingTag       Tag = "Heading"
	CustomBlockTag   Tag = "CustomBlock"
	ThematicBreakTag Tag = "ThematicBreak"
)

// Inline variant tags.
const (
	TextTag         Tag = "Text"
	SoftBreakTag    Tag = "SoftBreak"
	LineBreakTag    Tag = "LineBreak"
	CodeTag         Tag = "Code"
	InlineHTMLTag   Tag = "InlineHTML"
	EmphasisTag     Tag = "Emphasis"
	StrongTag       Tag = "Strong"
	CustomInlineTag Tag = "CustomInline"
	LinkTag         Tag = "Link"
	ImageTag        Tag = "Image"
)

// Block is a block-level element.
type Block interface {
	Tag() Tag
	block()
}

// Inline is an inline-level element.
type Inline interface {
	Tag() Tag
	inline()
}

// ListType distinguishes unordered lists from ordered ones.
type ListType int

const (
	// Unordered is a bullet list.
	Unordered ListType = iota
	// Ordered is a numbered list.
	Ordered
)

// String returns "unordered" or "ordered".
func (t ListType) String() string {
	if t == Ordered {
		return "ordered"
	}
	return "unordered"
}

// List holds items, each an ordered sequence of blocks. Start is the number
// of the first item of an ordered list and is used as given: the zero value
// numbers from 0, as "0." does in Markdown, so set Start to 1 for the usual
// numbering. A tight list renders its item paragraphs without <p> wrappers.
type List struct {
	Items [][]Block
	Type  ListType
	Start int
	Tight bool
}

// BlockQuote holds quoted blocks.
type BlockQuote struct {
	Items []Block
}

// CodeBlock is a literal code block. Language is the fence info string.
type CodeBlock struct {
	Text     string
	Language string
}

// HTMLBlock is a raw HTML block.
type HTMLBlock struct {
	Text string
}

// Paragraph holds inline content.
type Paragraph struct {
	Text []Inline
}

// Heading holds inline content at a level from 1 to 6.
type Heading struct {
	Text  []Inline
	Level int
}

// CustomBlock carries an opaque literal passed through by renderers.
type CustomBlock struct {
	Literal string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{}

func (List) Tag() Tag          { return ListTag }
func (BlockQuote) Tag() Tag    { return BlockQuoteTag }
func (CodeBlock) Tag() Tag     { return CodeBlockTag }
func (HTMLBlock) Tag() Tag     { return HTMLBlockTag }
func (Paragraph) Tag() Tag     { return ParagraphTag }
func (Heading) Tag() Tag       { return HeadingTag }
func (CustomBlock) Tag() Tag   { return CustomBlockTag }
func (ThematicBreak) Tag() Tag { return ThematicBreakTag }

func (List) block()          {}
func (BlockQuote) block()    {}
func (CodeBlock) block()     {}
func (HTMLBlock) block()     {}
func (Paragraph) block()     {}
func (Heading) block()       {}
func (CustomBlock) block()   {}
func (ThematicBreak) block() {}

// Text is literal text.
type Text struct {
	Text string
}

// SoftBreak is a line ending inside a paragraph.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

// Code is an inline code span.
type Code struct {
	Text string
}

// InlineHTML is raw inline HTML.
type InlineHTML struct {
	Text string
}

// Emphasis holds emphasized content.
type Emphasis struct {
	Children []Inline
}

// Strong holds strongly emphasized content.
type Strong struct {
	Children []Inline
}

// CustomInline carries an opaque literal passed through by renderers.
type CustomInline struct {
	Literal string
}

// Link is a hyperlink around its children.
type Link struct {
	Children []Inline
	Title    string
	URL      string
}

// Image is an image whose children form the alt text.
type Image struct {
	Children []Inline
	Title    string
	URL      string
}

func (Text) Tag() Tag         { return TextTag }
func (SoftBreak) Tag() Tag    { return SoftBreakTag }
func (LineBreak) Tag() Tag    { return LineBreakTag }
func (Code) Tag() Tag         { return CodeTag }
func (InlineHTML) Tag() Tag   { return InlineHTMLTag }
func (Emphasis) Tag() Tag     { return EmphasisTag }
func (Strong) Tag() Tag       { return StrongTag }
func (CustomInline) Tag() Tag { return CustomInlineTag }
func (Link) Tag() Tag         { return LinkTag }
func (Image) Tag() Tag        { return ImageTag }

func (Text) inline()         {}
func (SoftBreak) inline()    {}
func (LineBreak) inline()    {}
func (Code) inline()         {}
func (InlineHTML) inline()   {}
func (Emphasis) inline()     {}
func (Strong) inline()       {}
func (CustomInline) inline() {}
func (Link) inline()         {}
func (Image) inline()        {}
