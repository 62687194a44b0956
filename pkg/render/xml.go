package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdbridge/pkg/mdast"
)

const (
	xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<!DOCTYPE document SYSTEM \"CommonMark.dtd\">\n"
	xmlNamespace = "http://commonmark.org/xml/1.0"
	xmlIndent    = "  "
	xmlPreserve  = ` xml:space="preserve"`
)

//nolint:ireturn // renderer.Renderer is goldmark's renderer interface
func newXMLRenderer() renderer.Renderer {
	return renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(&xmlRenderer{}, priorityHTML),
	))
}

// xmlRenderer emits the CommonMark DTD XML form of a tree.
type xmlRenderer struct {
	depth int
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *xmlRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	containers := []ast.NodeKind{
		ast.KindDocument, ast.KindParagraph, ast.KindTextBlock, ast.KindHeading,
		ast.KindList, ast.KindListItem, ast.KindBlockquote,
		ast.KindEmphasis, ast.KindLink, ast.KindImage,
	}
	for _, kind := range containers {
		reg.Register(kind, r.renderContainer)
	}

	leaves := []ast.NodeKind{
		ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock, mdast.KindCustomBlock,
		ast.KindThematicBreak, ast.KindText, ast.KindString, ast.KindCodeSpan,
		ast.KindRawHTML, mdast.KindCustomInline, ast.KindAutoLink,
	}
	for _, kind := range leaves {
		reg.Register(kind, r.renderLeaf)
	}
}

func (r *xmlRenderer) renderContainer(
	w util.BufWriter, source []byte, n ast.Node, entering bool,
) (ast.WalkStatus, error) {
	tag, attrs := xmlElement(n, source)

	if !entering {
		if n.HasChildren() {
			r.depth--
			r.line(w, "</"+tag+">")
		}
		return ast.WalkContinue, nil
	}

	if n.Kind() == ast.KindDocument {
		_, _ = w.WriteString(xmlHeader)
	}
	if !n.HasChildren() {
		r.line(w, "<"+tag+attrs+" />")
		return ast.WalkSkipChildren, nil
	}
	r.line(w, "<"+tag+attrs+">")
	r.depth++
	return ast.WalkContinue, nil
}

func (r *xmlRenderer) renderLeaf(
	w util.BufWriter, source []byte, n ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch v := n.(type) {
	case *ast.ThematicBreak:
		r.line(w, "<thematic_break />")
	case *ast.Text:
		if v.Segment.Len() > 0 || !(v.SoftLineBreak() || v.HardLineBreak()) {
			r.literal(w, "text", "", mdast.LiteralOf(v, source))
		}
		switch {
		case v.HardLineBreak():
			r.line(w, "<linebreak />")
		case v.SoftLineBreak():
			r.line(w, "<softbreak />")
		}
	case *ast.AutoLink:
		url := autoLinkURL(v, source)
		r.line(w, fmt.Sprintf(`<link destination="%s" title="">`, escapeXML(url)))
		r.depth++
		r.literal(w, "text", "", v.Label(source))
		r.depth--
		r.line(w, "</link>")
	default:
		tag, attrs := xmlElement(n, source)
		r.literal(w, tag, attrs, mdast.LiteralOf(n, source))
	}
	return ast.WalkSkipChildren, nil
}

func (r *xmlRenderer) line(w util.BufWriter, s string) {
	_, _ = w.WriteString(strings.Repeat(xmlIndent, r.depth))
	_, _ = w.WriteString(s)
	_ = w.WriteByte('\n')
}

func (r *xmlRenderer) literal(w util.BufWriter, tag, attrs string, value []byte) {
	_, _ = w.WriteString(strings.Repeat(xmlIndent, r.depth))
	_, _ = w.WriteString("<" + tag + attrs + xmlPreserve + ">")
	_, _ = w.Write(util.EscapeHTML(value))
	_, _ = w.WriteString("</" + tag + ">\n")
}

// xmlElement returns the element name and attributes for n.
//
//nolint:cyclop // one case per node type
func xmlElement(n ast.Node, source []byte) (string, string) {
	switch v := n.(type) {
	case *ast.Document:
		return "document", fmt.Sprintf(` xmlns="%s"`, xmlNamespace)
	case *ast.Paragraph, *ast.TextBlock:
		return "paragraph", ""
	case *ast.Heading:
		return "heading", fmt.Sprintf(` level="%d"`, v.Level)
	case *ast.List:
		return "list", listAttrs(v)
	case *ast.ListItem:
		return "item", ""
	case *ast.Blockquote:
		return "block_quote", ""
	case *ast.FencedCodeBlock:
		if v.Info != nil {
			return "code_block", fmt.Sprintf(` info="%s"`, escapeXML(mdast.LiteralOf(v.Info, source)))
		}
		return "code_block", ""
	case *ast.CodeBlock:
		return "code_block", ""
	case *ast.HTMLBlock:
		return "html_block", ""
	case *mdast.CustomBlock:
		return "custom_block", ""
	case *ast.Text, *ast.String:
		return "text", ""
	case *ast.CodeSpan:
		return "code", ""
	case *ast.RawHTML:
		return "html_inline", ""
	case *mdast.CustomInline:
		return "custom_inline", ""
	case *ast.Emphasis:
		if v.Level >= 2 {
			return "strong", ""
		}
		return "emph", ""
	case *ast.Link:
		return "link", linkAttrs(v.Destination, v.Title)
	case *ast.Image:
		return "image", linkAttrs(v.Destination, v.Title)
	default:
		return strings.ToLower(n.Kind().String()), ""
	}
}

func listAttrs(list *ast.List) string {
	tight := fmt.Sprintf(` tight="%t"`, list.IsTight)
	if !list.IsOrdered() {
		return ` type="bullet"` + tight
	}
	delim := "period"
	if list.Marker == ')' {
		delim = "paren"
	}
	return fmt.Sprintf(` type="ordered" start="%d" delim="%s"`, list.Start, delim) + tight
}

func linkAttrs(destination, title []byte) string {
	return fmt.Sprintf(` destination="%s" title="%s"`, escapeXML(destination), escapeXML(title))
}

func escapeXML(value []byte) string {
	return string(util.EscapeHTML(value))
}

// autoLinkURL returns the destination of an autolink, with the mailto
// scheme added to email addresses.
func autoLinkURL(link *ast.AutoLink, source []byte) []byte {
	url := link.URL(source)
	if link.AutoLinkType == ast.AutoLinkEmail && !hasPrefixFold(url, "mailto:") {
		return append([]byte("mailto:"), url...)
	}
	return url
}

func hasPrefixFold(value []byte, prefix string) bool {
	return len(value) >= len(prefix) && strings.EqualFold(string(value[:len(prefix)]), prefix)
}
