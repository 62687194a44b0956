package mdast

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// maxEntityLength bounds the search for the ';' that closes an entity reference.
const maxEntityLength = 32

// LiteralOf returns the literal payload of an engine node: decoded text for
// text nodes, the joined lines for code, HTML and custom blocks, and the
// joined segments for inline code, raw HTML and custom inlines. Nodes that
// carry no literal yield nil.
func LiteralOf(node ast.Node, source []byte) []byte {
	switch n := node.(type) {
	case nil:
		return nil
	case *ast.Text:
		value := n.Segment.Value(source)
		if n.IsRaw() {
			return value
		}
		return decodeText(value)
	case *ast.String:
		return n.Value
	case *ast.CodeSpan:
		return codeSpanValue(n, source)
	case *ast.RawHTML:
		return segmentsValue(n.Segments, source)
	case *CustomInline:
		return n.Segment.Value(source)
	case *ast.AutoLink:
		return n.Label(source)
	case *ast.HTMLBlock:
		buf := linesValue(n, source)
		if n.HasClosure() {
			buf = append(buf, n.ClosureLine.Value(source)...)
		}
		return buf
	}

	if node.Type() == ast.TypeBlock {
		return linesValue(node, source)
	}
	return nil
}

// decodeText resolves backslash escapes and entity references the same way
// the HTML writer does when it renders a non-raw text segment.
func decodeText(value []byte) []byte {
	if bytes.IndexByte(value, '\\') < 0 && bytes.IndexByte(value, '&') < 0 {
		return value
	}

	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == '\\' && i+1 < len(value) && util.IsPunct(value[i+1]):
			out = append(out, value[i+1])
			i++
		case c == '&':
			end := bytes.IndexByte(value[i:], ';')
			if end <= 0 || end > maxEntityLength {
				out = append(out, c)
				continue
			}
			ref := value[i : i+end+1]
			out = append(out, util.ResolveNumericReferences(util.ResolveEntityNames(ref))...)
			i += end
		default:
			out = append(out, c)
		}
	}
	return out
}

// escapeText is the inverse of decodeText: every ASCII punctuation byte is
// backslash-escaped so a non-raw text segment renders literally.
func escapeText(value []byte) []byte {
	out := make([]byte, 0, len(value)+len(value)/4)
	for _, c := range value {
		if util.IsPunct(c) {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return out
}

// codeSpanValue joins the code span's text children. The parser gives each
// line of a code span its own child, and a line ending renders as a space,
// so it reads as one too.
func codeSpanValue(n *ast.CodeSpan, source []byte) []byte {
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		value := codeSpanPart(c, source)
		if bytes.HasSuffix(value, []byte("\n")) {
			buf = append(buf, value[:len(value)-1]...)
			buf = append(buf, ' ')
			continue
		}
		buf = append(buf, value...)
	}
	return buf
}

// rawCodeSpanValue joins the code span's text children unchanged. Built code
// spans hold their literal in a single child, line endings included.
func rawCodeSpanValue(n ast.Node, source []byte) []byte {
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		buf = append(buf, codeSpanPart(c, source)...)
	}
	return buf
}

func codeSpanPart(n ast.Node, source []byte) []byte {
	switch t := n.(type) {
	case *ast.Text:
		return t.Segment.Value(source)
	case *ast.String:
		return t.Value
	default:
		return nil
	}
}

func segmentsValue(segments *text.Segments, source []byte) []byte {
	if segments == nil {
		return nil
	}
	var buf []byte
	for i := range segments.Len() {
		seg := segments.At(i)
		buf = append(buf, seg.Value(source)...)
	}
	return buf
}

func linesValue(node ast.Node, source []byte) []byte {
	return segmentsValue(node.Lines(), source)
}
