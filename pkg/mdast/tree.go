// Package mdast provides the mutable Markdown tree used by mdbridge.
//
// A Node wraps one node of a goldmark AST together with the byte arena its
// text segments point into. Exactly one Node per tree, the root, owns that
// arena and releases it on Close. Every other Node is a view: a short-lived
// handle onto one position of the root's tree that never releases anything
// and is only meaningful while the root is open. Views are created fresh on
// every call to Children and are never cached.
//
// A tree is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
package mdast

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// arena holds the source bytes every segment of one tree points into.
type arena struct {
	source []byte

	// built is true when every segment in the tree was allocated by this
	// package, which makes the tree safe to move into another arena.
	built bool

	released bool
}

// add appends value to the arena and returns the segment covering it.
func (a *arena) add(value []byte) text.Segment {
	start := len(a.source)
	a.source = append(a.source, value...)
	return text.NewSegment(start, len(a.source))
}

// lines appends value and returns one segment per line, line endings included.
func (a *arena) lines(value []byte) *text.Segments {
	segments := text.NewSegments()
	for _, line := range splitLines(value) {
		segments.Append(a.add(line))
	}
	return segments
}

func (a *arena) release() {
	a.released = true
	a.source = nil
}

// part selects which facet of an engine node a view exposes. goldmark folds
// line breaks into the preceding text node and keeps autolink labels inside
// the link, so one engine node can back two views.
type part uint8

const (
	partNode part = iota
	partBreak
	partLabel
)

// Node is one node of a Markdown tree: either the owning root or a view.
type Node struct {
	arena *arena
	node  ast.Node
	part  part
	root  bool
}

// Wrap returns an owning root for an engine-parsed tree. The root takes
// ownership of source; the caller must not modify it afterwards.
func Wrap(doc ast.Node, source []byte) *Node {
	if doc == nil {
		return nil
	}
	return &Node{
		arena: &arena{source: source},
		node:  doc,
		root:  true,
	}
}

// IsRoot reports whether n owns its tree.
func (n *Node) IsRoot() bool {
	return n != nil && n.root
}

// Released reports whether the tree n belongs to has been released.
func (n *Node) Released() bool {
	return n == nil || n.arena == nil || n.arena.released
}

// Close releases the tree if n is its root. Closing a view, or closing a
// root twice, does nothing.
func (n *Node) Close() error {
	if n == nil || !n.root || n.Released() {
		return nil
	}
	n.arena.release()
	n.node = nil
	return nil
}

// AST returns the engine node behind n, or nil once the tree is released.
func (n *Node) AST() ast.Node {
	if !n.valid() {
		return nil
	}
	return n.node
}

// Source returns the arena the engine node's segments point into.
func (n *Node) Source() []byte {
	if !n.valid() {
		return nil
	}
	return n.arena.source
}

func (n *Node) valid() bool {
	return n != nil && n.node != nil && !n.Released()
}

func (n *Node) view(node ast.Node, p part) *Node {
	return &Node{arena: n.arena, node: node, part: p}
}

// Kind returns the node kind. Released views report NodeUnknown.
func (n *Node) Kind() NodeKind {
	if !n.valid() {
		return NodeUnknown
	}
	return kindOf(n.node, n.part)
}

func kindOf(node ast.Node, p part) NodeKind {
	switch v := node.(type) {
	case *ast.Document:
		return NodeDocument
	case *ast.Paragraph, *ast.TextBlock:
		return NodeParagraph
	case *ast.Heading:
		return NodeHeading
	case *ast.List:
		return NodeList
	case *ast.ListItem:
		return NodeListItem
	case *ast.Blockquote:
		return NodeBlockquote
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return NodeCodeBlock
	case *ast.HTMLBlock:
		return NodeHTMLBlock
	case *CustomBlock:
		return NodeCustomBlock
	case *ast.ThematicBreak:
		return NodeThematicBreak
	case *ast.Text:
		if p != partBreak {
			return NodeText
		}
		if v.HardLineBreak() {
			return NodeLineBreak
		}
		return NodeSoftBreak
	case *ast.String:
		return NodeText
	case *ast.CodeSpan:
		return NodeCode
	case *ast.RawHTML:
		return NodeHTMLInline
	case *CustomInline:
		return NodeCustomInline
	case *ast.Emphasis:
		if v.Level >= 2 {
			return NodeStrong
		}
		return NodeEmphasis
	case *ast.Link:
		return NodeLink
	case *ast.AutoLink:
		if p == partLabel {
			return NodeText
		}
		return NodeLink
	case *ast.Image:
		return NodeImage
	default:
		return NodeUnknown
	}
}

// Children returns fresh views of the direct children of n in document
// order. Leaf kinds have no children.
func (n *Node) Children() []*Node {
	if !n.valid() || n.part != partNode {
		return nil
	}

	if link, ok := n.node.(*ast.AutoLink); ok {
		return []*Node{n.view(link, partLabel)}
	}
	if n.Kind().IsLeaf() {
		return nil
	}

	var children []*Node
	for child := n.node.FirstChild(); child != nil; child = child.NextSibling() {
		textNode, ok := child.(*ast.Text)
		if !ok || !(textNode.SoftLineBreak() || textNode.HardLineBreak()) {
			children = append(children, n.view(child, partNode))
			continue
		}
		if textNode.Segment.Len() > 0 {
			children = append(children, n.view(child, partNode))
		}
		children = append(children, n.view(child, partBreak))
	}
	return children
}

// Literal returns the raw text payload of text-bearing kinds: text, code,
// HTML, custom and code block nodes. Unknown block nodes yield their source
// lines. All other kinds yield the empty string.
func (n *Node) Literal() string {
	if !n.valid() {
		return ""
	}
	switch n.Kind() {
	case NodeCode:
		if n.arena.built {
			return string(rawCodeSpanValue(n.node, n.arena.source))
		}
		return string(LiteralOf(n.node, n.arena.source))
	case NodeText, NodeHTMLInline, NodeCustomInline,
		NodeCodeBlock, NodeHTMLBlock, NodeCustomBlock, NodeUnknown:
		return string(LiteralOf(n.node, n.arena.source))
	default:
		return ""
	}
}

// SetLiteral replaces the text payload. It does nothing on kinds without one.
func (n *Node) SetLiteral(literal string) {
	if !n.valid() {
		return
	}
	value := []byte(literal)

	switch v := n.node.(type) {
	case *ast.Text:
		if n.part != partNode {
			return
		}
		// A raw text segment would swallow the line break it carries.
		if v.SoftLineBreak() || v.HardLineBreak() {
			v.Segment = n.arena.add(escapeText(value))
			v.SetRaw(false)
			return
		}
		v.Segment = n.arena.add(value)
		v.SetRaw(true)
	case *ast.String:
		v.Value = value
		v.SetRaw(true)
	case *ast.CodeSpan:
		v.RemoveChildren(v)
		v.AppendChild(v, ast.NewRawTextSegment(n.arena.add(value)))
	case *ast.RawHTML:
		segments := text.NewSegments()
		segments.Append(n.arena.add(value))
		v.Segments = segments
	case *CustomInline:
		v.Segment = n.arena.add(value)
	case *ast.HTMLBlock:
		n.arena.setHTMLBlockLiteral(v, value)
	case *ast.FencedCodeBlock, *ast.CodeBlock, *CustomBlock:
		n.node.SetLines(n.arena.lines(value))
	}
}

// HeadingLevel returns the level of a heading, or 0.
func (n *Node) HeadingLevel() int {
	if !n.valid() {
		return 0
	}
	if h, ok := n.node.(*ast.Heading); ok {
		return h.Level
	}
	return 0
}

// SetHeadingLevel sets the level of a heading.
func (n *Node) SetHeadingLevel(level int) {
	if !n.valid() {
		return
	}
	if h, ok := n.node.(*ast.Heading); ok {
		h.Level = level
	}
}

// FenceInfo returns the info string of a fenced code block, or "".
func (n *Node) FenceInfo() string {
	if !n.valid() {
		return ""
	}
	if cb, ok := n.node.(*ast.FencedCodeBlock); ok && cb.Info != nil {
		return string(LiteralOf(cb.Info, n.arena.source))
	}
	return ""
}

// SetFenceInfo sets the info string of a fenced code block. The empty
// string removes it.
func (n *Node) SetFenceInfo(info string) {
	if !n.valid() {
		return
	}
	cb, ok := n.node.(*ast.FencedCodeBlock)
	if !ok {
		return
	}
	if info == "" {
		cb.Info = nil
		return
	}
	cb.Info = ast.NewRawTextSegment(n.arena.add([]byte(info)))
}

// Title returns the title of a link or image, or "".
func (n *Node) Title() string {
	if !n.valid() || n.part != partNode {
		return ""
	}
	switch v := n.node.(type) {
	case *ast.Link:
		return string(v.Title)
	case *ast.Image:
		return string(v.Title)
	default:
		return ""
	}
}

// SetTitle sets the title of a link or image.
func (n *Node) SetTitle(title string) {
	if !n.valid() {
		return
	}
	switch v := n.node.(type) {
	case *ast.Link:
		v.Title = optionalBytes(title)
	case *ast.Image:
		v.Title = optionalBytes(title)
	}
}

// URL returns the destination of a link or image, or "".
func (n *Node) URL() string {
	if !n.valid() || n.part != partNode {
		return ""
	}
	switch v := n.node.(type) {
	case *ast.Link:
		return string(v.Destination)
	case *ast.Image:
		return string(v.Destination)
	case *ast.AutoLink:
		url := v.URL(n.arena.source)
		if v.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
			url = append([]byte("mailto:"), url...)
		}
		return string(autoLinkDestination(url))
	default:
		return ""
	}
}

// autoLinkDestination rewrites an autolink URL, which is used verbatim, as
// a link destination, in which backslash escapes and entity references are
// resolved. Escaping both keeps the resolved destination equal to the URL.
func autoLinkDestination(url []byte) []byte {
	if bytes.IndexByte(url, '\\') < 0 && bytes.IndexByte(url, '&') < 0 {
		return url
	}
	out := make([]byte, 0, len(url)+8)
	for _, c := range url {
		switch c {
		case '\\':
			out = append(out, '\\', '\\')
		case '&':
			out = append(out, "&amp;"...)
		default:
			out = append(out, c)
		}
	}
	return out
}

// SetURL sets the destination of a link or image.
func (n *Node) SetURL(url string) {
	if !n.valid() {
		return
	}
	switch v := n.node.(type) {
	case *ast.Link:
		v.Destination = optionalBytes(url)
	case *ast.Image:
		v.Destination = optionalBytes(url)
	}
}

// ListKind returns whether a list is ordered. Non-lists report ListBullet.
func (n *Node) ListKind() ListKind {
	if list := n.list(); list != nil && list.IsOrdered() {
		return ListOrdered
	}
	return ListBullet
}

// SetListKind switches a list between bullet and ordered markers.
func (n *Node) SetListKind(kind ListKind) {
	list := n.list()
	if list == nil {
		return
	}
	switch {
	case kind == ListOrdered && !list.IsOrdered():
		list.Marker = '.'
	case kind == ListBullet && list.IsOrdered():
		list.Marker = '-'
	}
}

// ListStart returns the start number of a list, or 0.
func (n *Node) ListStart() int {
	if list := n.list(); list != nil {
		return list.Start
	}
	return 0
}

// SetListStart sets the start number of a list.
func (n *Node) SetListStart(start int) {
	if list := n.list(); list != nil {
		list.Start = start
	}
}

// ListTight reports whether a list is tight.
func (n *Node) ListTight() bool {
	if list := n.list(); list != nil {
		return list.IsTight
	}
	return false
}

// SetListTight marks a list tight or loose. Like goldmark's list parser, a
// tight list holds its item paragraphs as text blocks, so the paragraphs
// directly under each item are converted to match.
func (n *Node) SetListTight(tight bool) {
	list := n.list()
	if list == nil {
		return
	}
	list.IsTight = tight

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for child := item.FirstChild(); child != nil; {
			next := child.NextSibling()
			var replacement ast.Node
			switch child.(type) {
			case *ast.Paragraph:
				if tight {
					replacement = ast.NewTextBlock()
				}
			case *ast.TextBlock:
				if !tight {
					replacement = ast.NewParagraph()
				}
			}
			if replacement != nil {
				replacement.SetLines(child.Lines())
				moveChildren(replacement, child)
				item.ReplaceChild(item, child, replacement)
			}
			child = next
		}
	}
}

func (n *Node) list() *ast.List {
	if !n.valid() {
		return nil
	}
	list, _ := n.node.(*ast.List)
	return list
}

func moveChildren(dst, src ast.Node) {
	for child := src.FirstChild(); child != nil; {
		next := child.NextSibling()
		dst.AppendChild(dst, child)
		child = next
	}
}

func optionalBytes(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
