package convert_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbridge/pkg/convert"
	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yaklabco/mdbridge/pkg/model"
	"github.com/yaklabco/mdbridge/pkg/parser/goldmark"
)

func txt(s string) model.Inline { return model.Text{Text: s} }

func para(inlines ...model.Inline) model.Block { return model.Paragraph{Text: inlines} }

func parse(t *testing.T, flavor, src string) *mdast.Node {
	t.Helper()

	root, err := goldmark.New(flavor).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })
	return root
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		blocks []model.Block
	}{
		{"empty document", nil},
		{"paragraph", []model.Block{para(txt("hello"))}},
		{"heading", []model.Block{model.Heading{Level: 3, Text: []model.Inline{txt("Title")}}}},
		{"thematic break", []model.Block{model.ThematicBreak{}}},
		{"code block", []model.Block{model.CodeBlock{Text: "x := 1\n", Language: "go"}}},
		{"code block without language", []model.Block{model.CodeBlock{Text: "plain"}}},
		{"html block", []model.Block{model.HTMLBlock{Text: "<div>\n</div>\n"}}},
		{"html block with end line", []model.Block{model.HTMLBlock{Text: "<script>\nx\n</script>\n"}}},
		{"code with line endings", []model.Block{para(model.Code{Text: "a\n"}, model.Code{Text: "b\nc"})}},
		{"custom block", []model.Block{model.CustomBlock{Literal: "{% raw %}"}}},
		{"quote", []model.Block{model.BlockQuote{Items: []model.Block{
			para(txt("quoted")),
			model.BlockQuote{Items: []model.Block{model.ThematicBreak{}}},
		}}}},
		{"inlines", []model.Block{para(
			txt("a & <b> \\*"),
			model.SoftBreak{},
			model.Emphasis{Children: []model.Inline{txt("em")}},
			model.LineBreak{},
			model.Strong{Children: []model.Inline{model.Emphasis{Children: []model.Inline{txt("both")}}}},
			model.Code{Text: "co`de"},
			model.InlineHTML{Text: "<kbd>"},
			model.CustomInline{Literal: "{{x}}"},
		)}},
		{"link and image", []model.Block{para(
			model.Link{Children: []model.Inline{txt("site")}, URL: "https://example.com", Title: "Example"},
			model.Link{Children: []model.Inline{txt("bare")}},
			model.Image{Children: []model.Inline{txt("alt")}, URL: "/i.png"},
		)}},
		{"empty containers", []model.Block{
			model.Paragraph{},
			model.Heading{Level: 1},
			model.BlockQuote{},
			para(model.Emphasis{}, txt("")),
		}},
		{"loose ordered list", []model.Block{model.List{
			Type:  model.Ordered,
			Start: 3,
			Items: [][]model.Block{{para(txt("one"))}, {para(txt("two")), model.CodeBlock{Text: "x"}}},
		}}},
		{"tight nested list", []model.Block{model.List{
			Tight: true,
			Items: [][]model.Block{
				{para(txt("a")), model.List{Tight: true, Items: [][]model.Block{{para(txt("inner"))}}}},
				{},
			},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := convert.Build(tt.blocks)
			defer root.Close()

			got := convert.Read(root)
			assert.True(t, model.EqualBlocks(tt.blocks, got), "got %#v", got)
		})
	}
}

func TestRead_ConcreteDocument(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.FlavorCommonMark, "# Title\n\nSome *em* text.")

	want := []model.Block{
		model.Heading{Level: 1, Text: []model.Inline{txt("Title")}},
		para(txt("Some "), model.Emphasis{Children: []model.Inline{txt("em")}}, txt(" text.")),
	}
	assert.True(t, model.EqualBlocks(want, convert.Read(root)), "got %#v", convert.Read(root))
}

func TestRead_ParsedConstructs(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.FlavorCommonMark,
		"    indented\n\n1. one\n2. two\n\n<https://go.dev> <me@example.com>\n")

	blocks := convert.Read(root)
	require.Len(t, blocks, 3)

	assert.Equal(t, model.CodeBlock{Text: "indented\n"}, blocks[0])

	list, ok := blocks[1].(model.List)
	require.True(t, ok)
	assert.Equal(t, model.Ordered, list.Type)
	assert.Equal(t, 1, list.Start)
	assert.True(t, list.Tight)
	require.Len(t, list.Items, 2)
	assert.True(t, model.EqualBlocks([]model.Block{para(txt("two"))}, list.Items[1]))

	links, ok := blocks[2].(model.Paragraph)
	require.True(t, ok)
	assert.True(t, model.EqualInlines([]model.Inline{
		model.Link{Children: []model.Inline{txt("https://go.dev")}, URL: "https://go.dev"},
		txt(" "),
		model.Link{Children: []model.Inline{txt("me@example.com")}, URL: "mailto:me@example.com"},
	}, links.Text), "got %#v", links.Text)
}

func TestRead_Fallbacks(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.FlavorGFM, "a ~~b~~\n\n```\ncode\n```\n")
	blocks := root.Children()
	inlines := blocks[0].Children()
	require.Len(t, inlines, 2)
	require.Equal(t, mdast.NodeUnknown, inlines[1].Kind())

	t.Run("unknown inline reads as empty text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, model.Text{Text: ""}, convert.ReadInline(inlines[1]))
	})

	t.Run("block at inline position reads as empty text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, model.Text{Text: ""}, convert.ReadInline(blocks[1]))
	})

	t.Run("inline at block position keeps its literal", func(t *testing.T) {
		t.Parallel()
		b, ok := convert.ReadBlock(inlines[0])
		require.True(t, ok)
		assert.Equal(t, model.CustomBlock{Literal: "a "}, b)
	})

	t.Run("container at block position has no literal", func(t *testing.T) {
		t.Parallel()
		b, ok := convert.ReadBlock(inlines[1])
		require.True(t, ok)
		assert.Equal(t, model.CustomBlock{Literal: ""}, b)
	})

	t.Run("preserved inline fallback", func(t *testing.T) {
		t.Parallel()
		r := convert.NewReader(convert.WithPreservedInlineFallback())
		assert.Equal(t, model.CustomInline{Literal: "code\n"}, r.ReadInline(blocks[1]))
	})
}

func TestRead_ListItemOutsideList(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.FlavorCommonMark, "- a\n")
	item := root.Children()[0].Children()[0]
	require.Equal(t, mdast.NodeListItem, item.Kind())

	b, ok := convert.ReadBlock(item)
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.Empty(t, convert.Read(item))
}

func TestRead_LanguageDetection(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.FlavorCommonMark, "```\npackage main\n```\n\n```sh\npackage main\n```\n")

	plain := convert.Read(root)
	assert.Equal(t, model.CodeBlock{Text: "package main\n"}, plain[0])

	detected := convert.NewReader(convert.WithLanguageDetection()).Read(root)
	assert.Equal(t, model.CodeBlock{Text: "package main\n", Language: "go"}, detected[0])
	assert.Equal(t, model.CodeBlock{Text: "package main\n", Language: "sh"}, detected[1])
}

func TestBuild_ListStructure(t *testing.T) {
	t.Parallel()

	items := [][]model.Block{
		{para(txt("a"))},
		{},
		{para(txt("b")), model.List{Items: [][]model.Block{{para(txt("c"))}}}},
	}

	root := convert.BuildBlock(model.List{Items: items})
	defer root.Close()

	require.Equal(t, mdast.NodeList, root.Kind())
	children := root.Children()
	require.Len(t, children, len(items))
	for i, child := range children {
		assert.Equal(t, mdast.NodeListItem, child.Kind())
		assert.Len(t, child.Children(), len(items[i]))
	}

	b, ok := convert.ReadBlock(root)
	require.True(t, ok)
	assert.True(t, model.EqualBlock(model.List{Items: items}, b))
}

func TestBuild_NilVariants(t *testing.T) {
	t.Parallel()

	block := convert.BuildBlock(nil)
	defer block.Close()
	assert.Equal(t, mdast.NodeCustomBlock, block.Kind())

	inline := convert.BuildInline(nil)
	defer inline.Close()
	assert.Equal(t, mdast.NodeText, inline.Kind())
	assert.Empty(t, inline.Literal())
}

func TestRead_ReleasedRoot(t *testing.T) {
	t.Parallel()

	root := convert.Build([]model.Block{para(txt("gone"))})
	view := root.Children()[0]
	require.NoError(t, root.Close())

	assert.Empty(t, convert.Read(root))
	b, ok := convert.ReadBlock(view)
	require.True(t, ok)
	assert.Equal(t, model.CustomBlock{Literal: ""}, b)
}
