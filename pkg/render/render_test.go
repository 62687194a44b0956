package render_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbridge/pkg/convert"
	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yaklabco/mdbridge/pkg/model"
	"github.com/yaklabco/mdbridge/pkg/parser/goldmark"
	"github.com/yaklabco/mdbridge/pkg/render"
)

func parse(t *testing.T, src string) *mdast.Node {
	t.Helper()

	root, err := goldmark.New(goldmark.FlavorCommonMark).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return root
}

func build(t *testing.T, blocks ...model.Block) *mdast.Node {
	t.Helper()

	root := convert.Build(blocks)
	t.Cleanup(func() { _ = root.Close() })
	return root
}

func txt(s string) model.Inline { return model.Text{Text: s} }

func para(inlines ...model.Inline) model.Block { return model.Paragraph{Text: inlines} }

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    render.Format
		wantErr bool
	}{
		{"", render.FormatHTML, false},
		{"html", render.FormatHTML, false},
		{"xml", render.FormatXML, false},
		{"commonmark", render.FormatCommonMark, false},
		{"md", render.FormatCommonMark, false},
		{"latex", render.FormatLaTeX, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := render.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, got.IsValid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestHTML_ConcreteDocument(t *testing.T) {
	t.Parallel()

	out := render.HTML(parse(t, "# Title\n\nSome *em* text."))

	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<em>em</em>")
}

// HTML output must not change when a parsed document is read into the model
// and built back into a tree.
func TestHTML_ModelRoundTrip(t *testing.T) {
	t.Parallel()

	docs := []string{
		"# Title\n\nSome *em* text.",
		"Setext\n======\n\n---\n",
		"- a\n- b\n",
		"- a\n  - nested\n- b\n",
		"- a\n\n  second\n- c\n",
		"3. three\n4. four\n",
		"7) paren\n",
		"> quote\n> more\n>\n> - in list\n",
		"```go\nfunc main() {}\n```\n",
		"    indented code\n",
		"<div>\nblock html\n</div>\n",
		"hard  \nbreak\nsoft\n",
		"[link](/u \"title\") ![img](/i.png) <https://go.dev> <me@example.com>\n",
		"`code span` and <span>inline html</span>\n",
		"&amp; &copy; &#65; \\* \\_ 5 < 6\n",
		"***strong em*** **bold** *it*\n",
		"1. one\n   ```\n   code\n   ```\n2. two\n",
		"[foo]: /url \"title\"\n\n[foo]\n",
		"[a]: /a\n[b]: /b\n",
		"- [r]: /r\n\n  [r]\n- [r]\n",
		"> [q]: /q\n>\n> [q] text\n",
		"<script>\nx\n</script>\n",
		"<pre>\ny\n</pre>\n\nafter\n",
		"<style>p{}</style>\nmore\n",
		"<textarea>\n\n*t*\n</textarea>\n",
		"<!-- c\nd -->\n",
		"<!-- one line -->\n",
		"<?php\necho 1;\n?>\n",
		"<!DOCTYPE html>\n",
		"<![CDATA[\nx\n]]>\n",
		"<script>\nx\n</script> tail\npara\n",
		"- <!-- in\n  item -->\n",
		"<https://example.com?find=\\*>\n",
		"<https://a.example/?a=1&amp;b=2> <me@example.com>\n",
		"[x](/a\\*b \"t\\*\") [y](/p&amp;q)\n",
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			t.Parallel()

			parsed := parse(t, doc)
			rebuilt := build(t, convert.Read(parsed)...)

			assert.Equal(t, render.HTML(parsed), render.HTML(rebuilt))

			unsafe := render.Options{Unsafe: true}
			var want, got bytes.Buffer
			require.NoError(t, render.Render(&want, parsed, render.FormatHTML, unsafe))
			require.NoError(t, render.Render(&got, rebuilt, render.FormatHTML, unsafe))
			assert.Equal(t, want.String(), got.String())
		})
	}
}

func TestHTML_Options(t *testing.T) {
	t.Parallel()

	root := parse(t, "a\nb <i>c</i>\n")

	var buf bytes.Buffer
	require.NoError(t, render.Render(&buf, root, render.FormatHTML, render.Options{
		Unsafe:    true,
		HardWraps: true,
		XHTML:     true,
	}))

	assert.Equal(t, "<p>a<br />\nb <i>c</i></p>\n", buf.String())
	assert.Contains(t, render.HTML(root), "<!-- raw HTML omitted -->")
}

func TestHTML_CustomNodes(t *testing.T) {
	t.Parallel()

	root := build(t,
		model.CustomBlock{Literal: "<x-widget></x-widget>"},
		para(txt("a "), model.CustomInline{Literal: "<b>raw</b>"}),
	)

	assert.Equal(t, "<x-widget></x-widget>\n<p>a <b>raw</b></p>\n", render.HTML(root))
}

func TestHTML_TightList(t *testing.T) {
	t.Parallel()

	items := [][]model.Block{{para(txt("a"))}, {para(txt("b"))}}

	tight := render.HTML(build(t, model.List{Items: items, Tight: true}))
	assert.Equal(t, "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n", tight)

	loose := render.HTML(build(t, model.List{Items: items}))
	assert.Equal(t, "<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>\n", loose)
}

func TestCommonMark_BuiltList(t *testing.T) {
	t.Parallel()

	root := build(t, model.List{
		Type:  model.Unordered,
		Items: [][]model.Block{{para(txt("a"))}, {para(txt("b"))}},
	})

	out := render.CommonMark(root, render.DefaultWidth)
	assert.Contains(t, out, "- a")
	assert.Contains(t, out, "- b")
}

func TestCommonMark_Output(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"heading", "Title\n=====\n", "# Title\n"},
		{"emphasis", "_a_ __b__\n", "*a* **b**\n"},
		{"thematic break", "***\n", "-----\n"},
		{"tight list", "* a\n* b\n", "- a\n- b\n"},
		{"loose ordered list", "2. a\n\n3. b\n", "2. a\n\n3. b\n"},
		{"quote", "> a\n>\n> b\n", "> a\n>\n> b\n"},
		{"indented code", "    x\n", "```\nx\n```\n"},
		{"code with fences", "````\n```\n````\n", "````\n```\n````\n"},
		{"hard break", "a\\\nb\n", "a\\\nb\n"},
		{"link", "[a](/u 'T')\n", "[a](/u \"T\")\n"},
		{"autolink", "<https://go.dev>\n", "<https://go.dev>\n"},
		{"escapes", "\\*lit\\* 1\\. \\# a &amp; b\n", "\\*lit\\* 1. # a & b\n"},
		{"line start escape", "\\# not heading\n", "\\# not heading\n"},
		{"adjacent lists", "- a\n\n<!-- -->\n\n- b\n", "- a\n\n<!-- -->\n\n- b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, render.CommonMark(parse(t, tt.doc), 0))
		})
	}
}

func TestCommonMark_ListSeparator(t *testing.T) {
	t.Parallel()

	items := [][]model.Block{{para(txt("a"))}}
	root := build(t, model.List{Items: items, Tight: true}, model.List{Items: items, Tight: true})

	assert.Equal(t, "- a\n\n<!-- end list -->\n\n- a\n", render.CommonMark(root, 0))
}

func TestCommonMark_Wrap(t *testing.T) {
	t.Parallel()

	words := strings.Repeat("word ", 30)
	root := build(t, para(txt(words), model.Code{Text: "a - b"}))

	out := render.CommonMark(root, 20)
	for line := range strings.SplitSeq(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20, "line %q", line)
	}
	assert.Contains(t, out, "`a - b`")

	assert.Equal(t, 1, strings.Count(render.CommonMark(root, 0), "\n"))
}

func TestCommonMark_Reparses(t *testing.T) {
	t.Parallel()

	docs := []string{
		"# Title\n\nSome *em* text.",
		"- a\n- b\n",
		"1. x\n2. y\n",
		"> q\n",
		"```go\nx\n```\n",
		"a  \nb\n",
		"[l](/u \"t\") `c`\n",
		"---\n",
		"\\- not a list\n\n2\\. not ordered\n",
		"- a\n  - b\n\n  para\n- c\n",
		"wow\\![x](/u) and ![i](/i)\n",
		"*_x_*\n\n_*x*_\n\n*_x_ y*\n\n**_x_**\n",
		"&#32;   code?\n\n&#9;tab\n",
		"a\\\n&#32; b\n",
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			t.Parallel()

			want := convert.Read(parse(t, doc))
			out := render.CommonMark(parse(t, doc), render.DefaultWidth)
			got := convert.Read(parse(t, out))

			assert.True(t, model.EqualBlocks(want, got), "rendered %q", out)
		})
	}
}

func TestCommonMark_ReparsesBuilt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		blocks []model.Block
	}{
		{"bang before link", []model.Block{para(txt("wow!"), model.Link{Children: []model.Inline{txt("x")}, URL: "/u"})}},
		{"escaped bang before link", []model.Block{para(txt(`a\!`), model.Link{Children: []model.Inline{txt("x")}, URL: "/u"})}},
		{"nested emphasis", []model.Block{para(model.Emphasis{Children: []model.Inline{model.Emphasis{Children: []model.Inline{txt("x")}}}})}},
		{"three nested emphases", []model.Block{para(model.Emphasis{Children: []model.Inline{
			model.Emphasis{Children: []model.Inline{model.Emphasis{Children: []model.Inline{txt("x")}}, txt(" y")}},
		}})}},
		{"emphasis inside strong", []model.Block{para(model.Strong{Children: []model.Inline{model.Strong{Children: []model.Inline{txt("x")}}}})}},
		{"leading spaces", []model.Block{para(txt("    code?"))}},
		{"leading tab", []model.Block{para(txt("\tx"))}},
		{"leading spaces after break", []model.Block{para(txt("a"), model.LineBreak{}, txt("  b"))}},
		{"heading with leading spaces", []model.Block{model.Heading{Level: 2, Text: []model.Inline{txt("  h")}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, width := range []int{0, render.DefaultWidth} {
				out := render.CommonMark(build(t, tt.blocks...), width)
				got := convert.Read(parse(t, out))

				assert.True(t, model.EqualBlocks(tt.blocks, got), "rendered %q", out)
			}
		})
	}
}

func TestLaTeX_Output(t *testing.T) {
	t.Parallel()

	root := parse(t, "# Title\n\n## Sub\n\nSome *em* and **bold** 50% `x_y`.\n\n"+
		"- a\n- b\n\n3. c\n\n> q\n\n```\ncode {}\n```\n\n<div>\n</div>\n\n---\n\n"+
		"[go](https://go.dev) <https://go.dev> ![i](/i.png)\n")

	out := render.LaTeX(root, 0)

	for _, want := range []string{
		`\section{Title}`,
		`\subsection{Sub}`,
		`Some \emph{em} and \textbf{bold} 50\% \texttt{x\_y}.`,
		"\\begin{itemize}\n\\item a\n\\item b\n\\end{itemize}",
		"\\begin{enumerate}\n\\def\\labelenumi{\\arabic{enumi}.}\n\\setcounter{enumi}{2}\n\\item c\n\\end{enumerate}",
		"\\begin{quote}\nq\n\\end{quote}",
		"\\begin{verbatim}\ncode {}\n\\end{verbatim}",
		`\rule`,
		`\href{https://go.dev}{go} \url{https://go.dev} \protect\includegraphics{/i.png}`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "<div>")
}

func TestLaTeX_ItemStartingWithBracket(t *testing.T) {
	t.Parallel()

	out := render.LaTeX(parse(t, "- [x] done\n- plain\n"), 0)

	assert.Contains(t, out, "\\item{} [x] done\n")
	assert.Contains(t, out, "\\item plain\n")
}

func TestRender_OrderedListStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		start     int
		wantHTML  string
		wantCM    string
		wantLaTeX bool
	}{
		{"zero value numbers from zero", 0, `<ol start="0">`, "0. a\n1. b", true},
		{"one", 1, "<ol>\n", "1. a\n2. b", false},
		{"five", 5, `<ol start="5">`, "5. a\n6. b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := build(t, model.List{
				Type:  model.Ordered,
				Start: tt.start,
				Tight: true,
				Items: [][]model.Block{{para(txt("a"))}, {para(txt("b"))}},
			})

			assert.Contains(t, render.HTML(root), tt.wantHTML)
			assert.Contains(t, render.CommonMark(root, 0), tt.wantCM)
			if tt.wantLaTeX {
				assert.Contains(t, render.LaTeX(root, 0), `\setcounter{enumi}`)
			} else {
				assert.NotContains(t, render.LaTeX(root, 0), `\setcounter{enumi}`)
			}

			got := convert.Read(parse(t, render.CommonMark(root, 0)))
			require.Len(t, got, 1)
			assert.Equal(t, tt.start, got[0].(model.List).Start)
		})
	}
}

func TestXML_Output(t *testing.T) {
	t.Parallel()

	out := render.XML(parse(t, "# Title\n\nSome *em* text\nnext [l](/u \"t\")\n\n```go\na < b\n```\n"))

	want := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE document SYSTEM "CommonMark.dtd">
<document xmlns="http://commonmark.org/xml/1.0">
  <heading level="1">
    <text xml:space="preserve">Title</text>
  </heading>
  <paragraph>
    <text xml:space="preserve">Some </text>
    <emph>
      <text xml:space="preserve">em</text>
    </emph>
    <text xml:space="preserve"> text</text>
    <softbreak />
    <text xml:space="preserve">next </text>
    <link destination="/u" title="t">
      <text xml:space="preserve">l</text>
    </link>
  </paragraph>
  <code_block info="go" xml:space="preserve">a &lt; b
</code_block>
</document>
`
	assert.Equal(t, want, out)
}

func TestXML_List(t *testing.T) {
	t.Parallel()

	out := render.XML(build(t, model.List{
		Type:  model.Ordered,
		Start: 2,
		Tight: true,
		Items: [][]model.Block{{para(txt("a"))}, {}},
	}))

	assert.Contains(t, out, `<list type="ordered" start="2" delim="period" tight="true">`)
	assert.Contains(t, out, "<item />")
}

func TestRender_Released(t *testing.T) {
	t.Parallel()

	root := convert.Build([]model.Block{para(txt("x"))})
	require.NoError(t, root.Close())

	for _, format := range render.Formats() {
		var buf bytes.Buffer
		require.NoError(t, render.Render(&buf, root, format, render.DefaultOptions()))
		assert.Empty(t, buf.String(), format)
	}
}

func TestRender_DoesNotMutate(t *testing.T) {
	t.Parallel()

	root := parse(t, "# a\n\n- b\n- c\n\n```go\nx\n```\n")
	before := convert.Read(root)

	for _, format := range render.Formats() {
		var buf bytes.Buffer
		require.NoError(t, render.Render(&buf, root, format, render.DefaultOptions()))
	}

	assert.True(t, model.EqualBlocks(before, convert.Read(root)))
}

func TestRender_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := render.Render(&buf, parse(t, "x"), render.Format("pdf"), render.DefaultOptions())
	require.Error(t, err)
}
