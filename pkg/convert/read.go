package convert

import (
	"github.com/yaklabco/mdbridge/pkg/langdetect"
	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yaklabco/mdbridge/pkg/model"
)

// Reader converts trees to model values.
type Reader struct {
	detectLanguages bool
	preserveInline  bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLanguageDetection fills in the language of code blocks that have none
// by guessing it from their contents.
func WithLanguageDetection() ReaderOption {
	return func(r *Reader) { r.detectLanguages = true }
}

// WithPreservedInlineFallback reads unrecognized inline nodes as a
// CustomInline carrying their literal instead of an empty Text.
func WithPreservedInlineFallback() ReaderOption {
	return func(r *Reader) { r.preserveInline = true }
}

// NewReader returns a Reader with the given options applied.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read converts a document tree to its top-level blocks using the default
// Reader.
func Read(root *mdast.Node) []model.Block {
	return NewReader().Read(root)
}

// ReadBlock converts one node at block position using the default Reader.
//
//nolint:ireturn // model.Block is a closed sum type
func ReadBlock(n *mdast.Node) (model.Block, bool) {
	return NewReader().ReadBlock(n)
}

// ReadInline converts one node at inline position using the default Reader.
//
//nolint:ireturn // model.Inline is a closed sum type
func ReadInline(n *mdast.Node) model.Inline {
	return NewReader().ReadInline(n)
}

// Read converts a document tree to its top-level blocks. A non-document
// node reads as the single block it represents. A released tree reads as
// no blocks.
func (r *Reader) Read(root *mdast.Node) []model.Block {
	if root.Released() {
		return nil
	}
	if root.Kind() == mdast.NodeDocument {
		return r.readBlocks(root.Children())
	}
	if b, ok := r.ReadBlock(root); ok {
		return []model.Block{b}
	}
	return nil
}

// ReadBlock converts one node at block position. It reports false for a list
// item, which has no meaning outside the list that holds it.
//
//nolint:ireturn,cyclop // model.Block is a closed sum type; one case per kind
func (r *Reader) ReadBlock(n *mdast.Node) (model.Block, bool) {
	switch n.Kind() {
	case mdast.NodeParagraph:
		return model.Paragraph{Text: r.readInlines(n.Children())}, true
	case mdast.NodeHeading:
		return model.Heading{Text: r.readInlines(n.Children()), Level: n.HeadingLevel()}, true
	case mdast.NodeList:
		return r.readList(n), true
	case mdast.NodeBlockquote:
		return model.BlockQuote{Items: r.readBlocks(n.Children())}, true
	case mdast.NodeCodeBlock:
		return r.readCodeBlock(n), true
	case mdast.NodeHTMLBlock:
		return model.HTMLBlock{Text: n.Literal()}, true
	case mdast.NodeCustomBlock:
		return model.CustomBlock{Literal: n.Literal()}, true
	case mdast.NodeThematicBreak:
		return model.ThematicBreak{}, true
	case mdast.NodeListItem:
		return nil, false
	default:
		return model.CustomBlock{Literal: n.Literal()}, true
	}
}

// ReadInline converts one node at inline position.
//
//nolint:ireturn,cyclop // model.Inline is a closed sum type; one case per kind
func (r *Reader) ReadInline(n *mdast.Node) model.Inline {
	switch n.Kind() {
	case mdast.NodeText:
		return model.Text{Text: n.Literal()}
	case mdast.NodeSoftBreak:
		return model.SoftBreak{}
	case mdast.NodeLineBreak:
		return model.LineBreak{}
	case mdast.NodeCode:
		return model.Code{Text: n.Literal()}
	case mdast.NodeHTMLInline:
		return model.InlineHTML{Text: n.Literal()}
	case mdast.NodeCustomInline:
		return model.CustomInline{Literal: n.Literal()}
	case mdast.NodeEmphasis:
		return model.Emphasis{Children: r.readInlines(n.Children())}
	case mdast.NodeStrong:
		return model.Strong{Children: r.readInlines(n.Children())}
	case mdast.NodeLink:
		return model.Link{Children: r.readInlines(n.Children()), Title: n.Title(), URL: n.URL()}
	case mdast.NodeImage:
		return model.Image{Children: r.readInlines(n.Children()), Title: n.Title(), URL: n.URL()}
	default:
		if r.preserveInline {
			return model.CustomInline{Literal: n.Literal()}
		}
		return model.Text{Text: ""}
	}
}

func (r *Reader) readList(n *mdast.Node) model.List {
	list := model.List{
		Type:  model.Unordered,
		Start: n.ListStart(),
		Tight: n.ListTight(),
	}
	if n.ListKind() == mdast.ListOrdered {
		list.Type = model.Ordered
	}

	for _, child := range n.Children() {
		if child.Kind() != mdast.NodeListItem {
			continue
		}
		list.Items = append(list.Items, r.readBlocks(child.Children()))
	}
	return list
}

func (r *Reader) readCodeBlock(n *mdast.Node) model.CodeBlock {
	code := model.CodeBlock{Text: n.Literal(), Language: n.FenceInfo()}
	if code.Language == "" && r.detectLanguages {
		if lang, ok := langdetect.Guess(code.Text); ok {
			code.Language = lang
		}
	}
	return code
}

// readBlocks converts nodes at block position, dropping stray list items.
func (r *Reader) readBlocks(nodes []*mdast.Node) []model.Block {
	var blocks []model.Block
	for _, n := range nodes {
		if b, ok := r.ReadBlock(n); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func (r *Reader) readInlines(nodes []*mdast.Node) []model.Inline {
	var inlines []model.Inline
	for _, n := range nodes {
		inlines = append(inlines, r.ReadInline(n))
	}
	return inlines
}
