package mdast

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Engine node kinds for custom content. Custom nodes carry an opaque literal
// that renderers pass through unchanged.
//
//nolint:gochecknoglobals // goldmark node kinds are registered once per process
var (
	KindCustomBlock  = ast.NewNodeKind("CustomBlock")
	KindCustomInline = ast.NewNodeKind("CustomInline")
)

// CustomBlock is a block-level custom node. Its literal is stored in its lines.
type CustomBlock struct {
	ast.BaseBlock
}

// NewCustomBlock returns an empty custom block.
func NewCustomBlock() *CustomBlock {
	return &CustomBlock{}
}

// Kind implements ast.Node.
func (n *CustomBlock) Kind() ast.NodeKind {
	return KindCustomBlock
}

// IsRaw implements ast.Node. Custom block lines are never parsed as inlines.
func (n *CustomBlock) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *CustomBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// CustomInline is an inline custom node. Its literal is Segment.
type CustomInline struct {
	ast.BaseInline

	Segment text.Segment
}

// NewCustomInline returns a custom inline holding segment.
func NewCustomInline(segment text.Segment) *CustomInline {
	return &CustomInline{Segment: segment}
}

// Kind implements ast.Node.
func (n *CustomInline) Kind() ast.NodeKind {
	return KindCustomInline
}

// Dump implements ast.Node.
func (n *CustomInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Literal": string(n.Segment.Value(source)),
	}, nil)
}
