package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"

	"github.com/yaklabco/mdbridge/pkg/mdast"
)

// listSeparator keeps two adjacent lists from merging when reparsed.
const listSeparator = "<!-- end list -->"

// commonMarkRenderer writes a tree back out as CommonMark. Headings are ATX,
// code blocks are fenced and bullets use "-".
type commonMarkRenderer struct {
	width int
}

// AddOptions implements renderer.Renderer.
func (r *commonMarkRenderer) AddOptions(opts ...renderer.Option) {
	r.width = configWidth(opts, r.width)
}

// Render implements renderer.Renderer.
func (r *commonMarkRenderer) Render(w io.Writer, source []byte, n ast.Node) error {
	c := &cmWriter{source: source, width: r.width}

	var lines []string
	if n.Type() == ast.TypeInline {
		lines = c.paragraph(n.Parent(), []ast.Node{n})
	} else if n.Kind() == ast.KindDocument {
		lines = c.blocks(n, false)
	} else {
		lines = c.block(n, false)
	}
	if len(lines) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("write commonmark: %w", err)
	}
	return nil
}

type cmWriter struct {
	source []byte
	width  int
	// delims holds the delimiter character of each open emphasis.
	delims []byte
}

// blocks renders the block children of parent. Children of a tight list
// item are not separated by blank lines.
func (c *cmWriter) blocks(parent ast.Node, tight bool) []string {
	var out []string
	var prev ast.Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		lines := c.block(child, tight)
		if len(lines) == 0 {
			continue
		}
		if prev != nil {
			if !tight {
				out = append(out, "")
			}
			if prev.Kind() == ast.KindList && child.Kind() == ast.KindList {
				out = append(out, listSeparator, "")
			}
		}
		out = append(out, lines...)
		prev = child
	}
	return out
}

//nolint:cyclop // one case per block type
func (c *cmWriter) block(n ast.Node, tight bool) []string {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return c.paragraph(n, nil)
	case *ast.Heading:
		return []string{c.heading(v)}
	case *ast.ThematicBreak:
		return []string{"-----"}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return c.codeBlock(n)
	case *ast.HTMLBlock, *mdast.CustomBlock:
		return literalLines(mdast.LiteralOf(n, c.source))
	case *ast.Blockquote:
		return prefixLines(c.blocks(n, false), "> ", "> ")
	case *ast.List:
		return c.list(v)
	case *ast.ListItem:
		return c.blocks(n, tight)
	default:
		if fc := n.FirstChild(); fc != nil && fc.Type() == ast.TypeInline {
			return c.paragraph(n, nil)
		}
		if n.HasChildren() {
			return c.blocks(n, tight)
		}
		return literalLines(mdast.LiteralOf(n, c.source))
	}
}

func (c *cmWriter) heading(h *ast.Heading) string {
	text := restoreSpaces(c.inlines(h, false))
	text = protectIndent(strings.ReplaceAll(text, "\n", " "))
	if strings.HasSuffix(text, "#") {
		text = text[:len(text)-1] + `\#`
	}
	marker := strings.Repeat("#", max(h.Level, 1))
	if text == "" {
		return marker
	}
	return marker + " " + text
}

// paragraph renders inline content as wrapped lines. When only is non-nil
// it renders those nodes instead of the children of n.
func (c *cmWriter) paragraph(n ast.Node, only []ast.Node) []string {
	var text string
	if only != nil {
		var sb strings.Builder
		for _, node := range only {
			c.inline(&sb, node, c.width > 0)
		}
		text = sb.String()
	} else {
		text = c.inlines(n, c.width > 0)
	}
	if strings.TrimSpace(restoreSpaces(text)) == "" {
		return nil
	}
	text = protectIndent(text)

	lines := wrapLines(text, c.width)
	for i, line := range lines {
		lines[i] = escapeLineStart(line)
	}
	return lines
}

func (c *cmWriter) codeBlock(n ast.Node) []string {
	literal := string(mdast.LiteralOf(n, c.source))
	info := ""
	if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
		info = string(mdast.LiteralOf(fenced.Info, c.source))
	}

	char := "`"
	if strings.Contains(info, "`") {
		char = "~"
	}
	fence := strings.Repeat(char, max(3, longestRun(literal, char[0])+1))

	out := []string{fence + info}
	if literal != "" {
		out = append(out, strings.Split(strings.TrimSuffix(literal, "\n"), "\n")...)
	}
	return append(out, fence)
}

func (c *cmWriter) list(list *ast.List) []string {
	var out []string
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "-"
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d.", number)
			number++
		}
		indent := strings.Repeat(" ", len(marker)+1)

		if len(out) > 0 && !list.IsTight {
			out = append(out, "")
		}
		lines := c.blocks(item, list.IsTight)
		if len(lines) == 0 {
			out = append(out, marker)
			continue
		}
		out = append(out, prefixLines(lines, marker+" ", indent)...)
	}
	return out
}

func (c *cmWriter) inlines(parent ast.Node, wrapping bool) string {
	var sb strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		c.inline(&sb, child, wrapping)
	}
	return sb.String()
}

//nolint:cyclop // one case per inline type
func (c *cmWriter) inline(sb *strings.Builder, n ast.Node, wrapping bool) {
	switch v := n.(type) {
	case *ast.Text:
		text := escapeMarkdown(string(mdast.LiteralOf(v, c.source)))
		if !v.SoftLineBreak() && !v.HardLineBreak() {
			text = escapeBang(text, v.NextSibling())
		}
		sb.WriteString(text)
		switch {
		case v.HardLineBreak():
			sb.WriteString("\\\n")
		case v.SoftLineBreak() && wrapping:
			sb.WriteByte(' ')
		case v.SoftLineBreak():
			sb.WriteByte('\n')
		}
	case *ast.String:
		sb.WriteString(escapeBang(escapeMarkdown(string(v.Value)), v.NextSibling()))
	case *ast.CodeSpan:
		sb.WriteString(protectSpaces(codeSpan(string(mdast.LiteralOf(v, c.source)))))
	case *ast.RawHTML, *mdast.CustomInline:
		sb.WriteString(protectSpaces(string(mdast.LiteralOf(n, c.source))))
	case *ast.Emphasis:
		char := c.emphasisDelim(v)
		c.delims = append(c.delims, char)
		inner := c.inlines(v, wrapping)
		c.delims = c.delims[:len(c.delims)-1]
		delim := strings.Repeat(string(char), max(v.Level, 1))
		sb.WriteString(delim + inner + delim)
	case *ast.Link:
		sb.WriteString("[" + c.inlines(v, wrapping) + "]")
		sb.WriteString(linkTarget(v.Destination, v.Title))
	case *ast.Image:
		sb.WriteString("![" + c.inlines(v, wrapping) + "]")
		sb.WriteString(linkTarget(v.Destination, v.Title))
	case *ast.AutoLink:
		sb.WriteString("<" + protectSpaces(string(v.Label(c.source))) + ">")
	case *east.Strikethrough:
		sb.WriteString("~~" + c.inlines(v, wrapping) + "~~")
	default:
		sb.WriteString(c.inlines(n, wrapping))
	}
}

// emphasisDelim picks the delimiter for v. An emphasis that touches the
// delimiter of its enclosing emphasis uses the other character, so that
// "*" inside "*" does not read back as one strong run.
func (c *cmWriter) emphasisDelim(v *ast.Emphasis) byte {
	if len(c.delims) == 0 || v.Parent() == nil || v.Parent().Kind() != ast.KindEmphasis {
		return '*'
	}
	if v.PreviousSibling() != nil && v.NextSibling() != nil {
		return '*'
	}
	if c.delims[len(c.delims)-1] == '*' {
		return '_'
	}
	return '*'
}

// escapeBang escapes a trailing "!" that would turn a following link into
// an image.
func escapeBang(text string, next ast.Node) string {
	if _, ok := next.(*ast.Link); ok && strings.HasSuffix(text, "!") {
		return text[:len(text)-1] + `\!`
	}
	return text
}

// linkTarget renders "(destination "title")".
func linkTarget(destination, title []byte) string {
	var sb strings.Builder
	sb.WriteByte('(')
	dest := string(destination)
	if strings.ContainsAny(dest, " ()<>\n") {
		r := strings.NewReplacer("<", `\<`, ">", `\>`)
		sb.WriteString(protectSpaces("<" + r.Replace(dest) + ">"))
	} else {
		sb.WriteString(dest)
	}
	if len(title) > 0 {
		r := strings.NewReplacer(`"`, `\"`, `\`, `\\`)
		sb.WriteString(` "` + r.Replace(string(title)) + `"`)
	}
	sb.WriteByte(')')
	return sb.String()
}

// codeSpan wraps value in a backtick fence longer than any run inside it.
func codeSpan(value string) string {
	fence := strings.Repeat("`", longestRun(value, '`')+1)
	if strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`") ||
		(strings.HasPrefix(value, " ") && strings.HasSuffix(value, " ") && strings.TrimSpace(value) != "") {
		value = " " + value + " "
	}
	return fence + value + fence
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := range len(s) {
		if s[i] == c {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return longest
}

// escapeMarkdown backslash-escapes characters that would start inline markup.
func escapeMarkdown(s string) string {
	var sb strings.Builder
	for i := range len(s) {
		if needsEscape(s, i) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func needsEscape(s string, i int) bool {
	switch s[i] {
	case '\\', '`', '*', '_', '[', ']', '<', '>':
		return true
	case '&':
		// Only an entity reference would be decoded.
		return i+1 < len(s) && (s[i+1] == '#' || isAlnum(s[i+1]))
	case '~':
		return i+1 < len(s) && s[i+1] == '~'
	default:
		return false
	}
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// escapeLineStart escapes a leading character that would open a block.
func escapeLineStart(line string) string {
	if line == "" {
		return line
	}
	switch line[0] {
	case '#', '-', '+', '=', '>':
		return `\` + line
	}

	digits := 0
	for digits < len(line) && digits < 10 && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(line) && (line[digits] == '.' || line[digits] == ')') {
		return line[:digits] + `\` + line[digits:]
	}
	return line
}

// protectIndent writes the spaces and tabs that start a line as character
// references. A parser strips leading whitespace from paragraph lines and
// reads four spaces as an indented code block.
func protectIndent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " \t")
		if body == line || body == "" {
			continue
		}
		var sb strings.Builder
		for _, r := range line[:len(line)-len(body)] {
			fmt.Fprintf(&sb, "&#%d;", r)
		}
		lines[i] = sb.String() + body
	}
	return strings.Join(lines, "\n")
}

func literalLines(literal []byte) []string {
	s := strings.TrimSuffix(string(literal), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
