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

//nolint:gochecknoglobals // read-only lookup table
var latexSections = []string{`\section`, `\subsection`, `\subsubsection`, `\paragraph`, `\subparagraph`}

//nolint:gochecknoglobals // read-only replacer
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\^{}`,
	`<`, `\textless{}`,
	`>`, `\textgreater{}`,
	`|`, `\textbar{}`,
)

//nolint:gochecknoglobals // read-only replacer
var latexURLEscaper = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`#`, `\#`,
	`%`, `\%`,
)

// latexRenderer writes a tree as a LaTeX body. Raw HTML is dropped and
// custom literals pass through unchanged.
type latexRenderer struct {
	width int
}

// AddOptions implements renderer.Renderer.
func (r *latexRenderer) AddOptions(opts ...renderer.Option) {
	r.width = configWidth(opts, r.width)
}

// Render implements renderer.Renderer.
func (r *latexRenderer) Render(w io.Writer, source []byte, n ast.Node) error {
	l := &latexWriter{source: source, width: r.width}

	var lines []string
	switch {
	case n.Type() == ast.TypeInline:
		var sb strings.Builder
		l.inline(&sb, n)
		lines = wrapLines(sb.String(), l.width)
	case n.Kind() == ast.KindDocument:
		lines = l.blocks(n)
	default:
		lines = l.block(n)
	}
	if len(lines) == 0 {
		return nil
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return fmt.Errorf("write latex: %w", err)
	}
	return nil
}

type latexWriter struct {
	source []byte
	width  int
}

func (l *latexWriter) blocks(parent ast.Node) []string {
	var out []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		lines := l.block(child)
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

//nolint:cyclop // one case per block type
func (l *latexWriter) block(n ast.Node) []string {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return l.paragraph(n)
	case *ast.Heading:
		section := latexSections[min(max(v.Level, 1), len(latexSections))-1]
		text := strings.ReplaceAll(restoreSpaces(l.inlines(v)), "\n", " ")
		return []string{section + "{" + text + "}"}
	case *ast.ThematicBreak:
		return []string{`\begin{center}\rule{0.5\linewidth}{\linethickness}\end{center}`}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		out := []string{`\begin{verbatim}`}
		if literal := strings.TrimSuffix(string(mdast.LiteralOf(n, l.source)), "\n"); literal != "" {
			out = append(out, strings.Split(literal, "\n")...)
		}
		return append(out, `\end{verbatim}`)
	case *ast.HTMLBlock:
		return nil
	case *mdast.CustomBlock:
		return literalLines(mdast.LiteralOf(n, l.source))
	case *ast.Blockquote:
		return l.environment("quote", "", n)
	case *ast.List:
		return l.list(v)
	case *ast.ListItem:
		return l.blocks(n)
	default:
		if fc := n.FirstChild(); fc != nil && fc.Type() == ast.TypeInline {
			return l.paragraph(n)
		}
		return l.blocks(n)
	}
}

func (l *latexWriter) environment(name, preamble string, n ast.Node) []string {
	out := []string{`\begin{` + name + `}`}
	if preamble != "" {
		out = append(out, preamble)
	}
	out = append(out, l.blocks(n)...)
	return append(out, `\end{`+name+`}`)
}

func (l *latexWriter) list(list *ast.List) []string {
	name := "itemize"
	out := []string{}
	if list.IsOrdered() {
		name = "enumerate"
	}
	out = append(out, `\begin{`+name+`}`)
	if list.IsOrdered() && list.Start != 1 {
		out = append(out, `\def\labelenumi{\arabic{enumi}.}`, fmt.Sprintf(`\setcounter{enumi}{%d}`, list.Start-1))
	}

	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		lines := l.blocks(item)
		if len(lines) == 0 {
			out = append(out, `\item`)
			continue
		}
		marker := `\item `
		if strings.HasPrefix(lines[0], "[") {
			// An unbraced bracket would open the optional label argument.
			marker = `\item{} `
		}
		out = append(out, prefixLines(lines, marker, "")...)
	}
	return append(out, `\end{`+name+`}`)
}

func (l *latexWriter) paragraph(n ast.Node) []string {
	text := l.inlines(n)
	if strings.TrimSpace(restoreSpaces(text)) == "" {
		return nil
	}
	return wrapLines(text, l.width)
}

func (l *latexWriter) inlines(parent ast.Node) string {
	var sb strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		l.inline(&sb, child)
	}
	return sb.String()
}

//nolint:cyclop // one case per inline type
func (l *latexWriter) inline(sb *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.Text:
		sb.WriteString(latexEscaper.Replace(string(mdast.LiteralOf(v, l.source))))
		switch {
		case v.HardLineBreak():
			sb.WriteString("\\\\\n")
		case v.SoftLineBreak() && l.width > 0:
			sb.WriteByte(' ')
		case v.SoftLineBreak():
			sb.WriteByte('\n')
		}
	case *ast.String:
		sb.WriteString(latexEscaper.Replace(string(v.Value)))
	case *ast.CodeSpan:
		sb.WriteString(`\texttt{` + latexEscaper.Replace(string(mdast.LiteralOf(v, l.source))) + `}`)
	case *ast.RawHTML:
	case *mdast.CustomInline:
		sb.WriteString(protectSpaces(string(mdast.LiteralOf(v, l.source))))
	case *ast.Emphasis:
		command := `\emph{`
		if v.Level >= 2 {
			command = `\textbf{`
		}
		sb.WriteString(command + l.inlines(v) + "}")
	case *ast.Link:
		sb.WriteString(l.link(string(v.Destination), v))
	case *ast.AutoLink:
		sb.WriteString(`\url{` + latexURLEscaper.Replace(string(autoLinkURL(v, l.source))) + `}`)
	case *ast.Image:
		sb.WriteString(`\protect\includegraphics{` + latexURLEscaper.Replace(string(v.Destination)) + `}`)
	case *east.Strikethrough:
		sb.WriteString(l.inlines(v))
	default:
		sb.WriteString(l.inlines(n))
	}
}

// link uses \url when the link text is the destination itself.
func (l *latexWriter) link(url string, n ast.Node) string {
	text := l.inlines(n)
	if url == "" {
		return text
	}
	escaped := latexURLEscaper.Replace(url)
	if text == latexEscaper.Replace(url) {
		return `\url{` + escaped + `}`
	}
	return `\href{` + escaped + `}{` + text + `}`
}
