package mdast

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fields holds the optional node fields supplied to NewNode.
type fields struct {
	literal      *string
	fenceInfo    *string
	headingLevel *int
	title        *string
	url          *string
	listKind     *ListKind
	listStart    *int
	listTight    *bool
}

// Option sets one optional field on a node built by NewNode. Fields the node
// kind does not use are ignored.
type Option func(*fields)

// WithLiteral sets the text payload.
func WithLiteral(literal string) Option {
	return func(f *fields) { f.literal = &literal }
}

// WithFenceInfo sets the code block info string.
func WithFenceInfo(info string) Option {
	return func(f *fields) { f.fenceInfo = &info }
}

// WithHeadingLevel sets the heading level.
func WithHeadingLevel(level int) Option {
	return func(f *fields) { f.headingLevel = &level }
}

// WithTitle sets the link or image title.
func WithTitle(title string) Option {
	return func(f *fields) { f.title = &title }
}

// WithURL sets the link or image destination.
func WithURL(url string) Option {
	return func(f *fields) { f.url = &url }
}

// WithListKind sets the list kind.
func WithListKind(kind ListKind) Option {
	return func(f *fields) { f.listKind = &kind }
}

// WithListStart sets the ordered list start number.
func WithListStart(start int) Option {
	return func(f *fields) { f.listStart = &start }
}

// WithListTight marks the list tight or loose.
func WithListTight(tight bool) Option {
	return func(f *fields) { f.listTight = &tight }
}

// NewNode creates a new owning root of the given kind with children appended
// in order. The caller owns the result: it either attaches it to another node
// through NewNode or releases it with Close.
//
// A child that is itself a built root is moved: its bytes are copied into the
// new tree, its own arena is released, and the child handle becomes a view
// into the new tree. Any other child (a view, or a parsed root) is copied
// node by node and its tree is left untouched.
func NewNode(kind NodeKind, children []*Node, opts ...Option) *Node {
	var f fields
	for _, opt := range opts {
		opt(&f)
	}

	root := &Node{
		arena: &arena{built: true},
		node:  newEngineNode(kind),
		root:  true,
	}
	for _, child := range children {
		root.appendChild(child)
	}
	root.apply(&f)

	return root
}

// newEngineNode allocates an empty engine node for kind. Optional fields keep
// the engine's own defaults.
//
//nolint:ireturn // ast.Node is the engine's node interface
func newEngineNode(kind NodeKind) ast.Node {
	switch kind {
	case NodeDocument:
		return ast.NewDocument()
	case NodeParagraph:
		return ast.NewParagraph()
	case NodeHeading:
		return ast.NewHeading(1)
	case NodeList:
		return ast.NewList('-')
	case NodeListItem:
		return ast.NewListItem(2)
	case NodeBlockquote:
		return ast.NewBlockquote()
	case NodeCodeBlock:
		return ast.NewFencedCodeBlock(nil)
	case NodeHTMLBlock:
		return ast.NewHTMLBlock(ast.HTMLBlockType7)
	case NodeThematicBreak:
		return ast.NewThematicBreak()
	case NodeText:
		t := ast.NewText()
		t.SetRaw(true)
		return t
	case NodeSoftBreak:
		t := ast.NewText()
		t.SetSoftLineBreak(true)
		return t
	case NodeLineBreak:
		t := ast.NewText()
		t.SetHardLineBreak(true)
		return t
	case NodeCode:
		return ast.NewCodeSpan()
	case NodeHTMLInline:
		return ast.NewRawHTML()
	case NodeCustomInline:
		return NewCustomInline(text.NewSegment(0, 0))
	case NodeEmphasis:
		return ast.NewEmphasis(1)
	case NodeStrong:
		return ast.NewEmphasis(2)
	case NodeLink:
		return ast.NewLink()
	case NodeImage:
		return ast.NewImage(ast.NewLink())
	default:
		return NewCustomBlock()
	}
}

func (n *Node) apply(f *fields) {
	if f.literal != nil {
		n.SetLiteral(*f.literal)
	}
	if f.fenceInfo != nil {
		n.SetFenceInfo(*f.fenceInfo)
	}
	if f.headingLevel != nil {
		n.SetHeadingLevel(*f.headingLevel)
	}
	if f.title != nil {
		n.SetTitle(*f.title)
	}
	if f.url != nil {
		n.SetURL(*f.url)
	}
	if f.listKind != nil {
		n.SetListKind(*f.listKind)
	}
	if f.listStart != nil {
		n.SetListStart(*f.listStart)
	}
	if f.listTight != nil {
		n.SetListTight(*f.listTight)
	}
}

// fieldsOf captures every field of src that a copy must carry over.
func fieldsOf(src *Node) *fields {
	literal := src.Literal()
	info := src.FenceInfo()
	level := src.HeadingLevel()
	title := src.Title()
	url := src.URL()
	listKind := src.ListKind()
	listStart := src.ListStart()
	listTight := src.ListTight()

	f := &fields{literal: &literal, title: &title, url: &url}
	switch src.Kind() {
	case NodeCodeBlock:
		f.fenceInfo = &info
	case NodeHeading:
		f.headingLevel = &level
	case NodeList:
		f.listKind = &listKind
		f.listStart = &listStart
		f.listTight = &listTight
	}
	return f
}

func (n *Node) appendChild(child *Node) {
	if !n.valid() || !child.valid() {
		return
	}

	if child.root && child.arena.built {
		node := child.node
		base := len(n.arena.source)
		n.arena.source = append(n.arena.source, child.arena.source...)
		rebase(node, base)
		child.arena.release()
		child.arena = n.arena
		child.root = false
		n.node.AppendChild(n.node, node)
		return
	}

	n.node.AppendChild(n.node, cloneInto(n.arena, child))
}

// cloneInto copies the subtree under src into a, kind by kind. Engine nodes
// with no counterpart become custom nodes holding their literal.
//
//nolint:ireturn // ast.Node is the engine's node interface
func cloneInto(a *arena, src *Node) ast.Node {
	kind := src.Kind()
	if kind == NodeUnknown {
		kind = NodeCustomBlock
		if src.node.Type() == ast.TypeInline {
			kind = NodeCustomInline
		}
	}

	dst := &Node{arena: a, node: newEngineNode(kind)}
	if !kind.IsLeaf() {
		for _, child := range src.Children() {
			dst.node.AppendChild(dst.node, cloneInto(a, child))
		}
	}
	dst.apply(fieldsOf(src))

	return dst.node
}

// rebase shifts every segment in the subtree under root by base bytes. It
// only needs to cover the engine node types newEngineNode creates.
func rebase(root ast.Node, base int) {
	//nolint:errcheck,revive // the walker never returns an error
	ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Text:
			n.Segment = shift(n.Segment, base)
		case *ast.RawHTML:
			n.Segments = shiftAll(n.Segments, base)
		case *CustomInline:
			n.Segment = shift(n.Segment, base)
		case *ast.FencedCodeBlock:
			if n.Info != nil {
				n.Info.Segment = shift(n.Info.Segment, base)
			}
		case *ast.HTMLBlock:
			if n.HasClosure() {
				n.ClosureLine = shift(n.ClosureLine, base)
			}
		}

		if node.Type() == ast.TypeBlock {
			node.SetLines(shiftAll(node.Lines(), base))
		}
		return ast.WalkContinue, nil
	})
}

func shift(segment text.Segment, base int) text.Segment {
	segment.Start += base
	segment.Stop += base
	return segment
}

func shiftAll(segments *text.Segments, base int) *text.Segments {
	shifted := text.NewSegments()
	if segments == nil {
		return shifted
	}
	for i := range segments.Len() {
		shifted.Append(shift(segments.At(i), base))
	}
	return shifted
}
