package convert

import (
	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yaklabco/mdbridge/pkg/model"
)

// Build returns a new document tree holding blocks. The caller must Close it.
func Build(blocks []model.Block) *mdast.Node {
	return mdast.NewNode(mdast.NodeDocument, buildBlocks(blocks))
}

// BuildBlock returns a new tree for a single block. A nil block builds an
// empty custom block.
func BuildBlock(block model.Block) *mdast.Node {
	switch b := block.(type) {
	case model.Paragraph:
		return mdast.NewNode(mdast.NodeParagraph, buildInlines(b.Text))
	case model.List:
		return buildList(b)
	case model.BlockQuote:
		return mdast.NewNode(mdast.NodeBlockquote, buildBlocks(b.Items))
	case model.CodeBlock:
		opts := []mdast.Option{mdast.WithLiteral(b.Text)}
		if b.Language != "" {
			opts = append(opts, mdast.WithFenceInfo(b.Language))
		}
		return mdast.NewNode(mdast.NodeCodeBlock, nil, opts...)
	case model.HTMLBlock:
		return mdast.NewNode(mdast.NodeHTMLBlock, nil, mdast.WithLiteral(b.Text))
	case model.CustomBlock:
		return mdast.NewNode(mdast.NodeCustomBlock, nil, mdast.WithLiteral(b.Literal))
	case model.Heading:
		return mdast.NewNode(mdast.NodeHeading, buildInlines(b.Text), mdast.WithHeadingLevel(b.Level))
	case model.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak, nil)
	default:
		return mdast.NewNode(mdast.NodeCustomBlock, nil)
	}
}

// BuildInline returns a new tree for a single inline. A nil inline builds an
// empty text node.
func BuildInline(inline model.Inline) *mdast.Node {
	switch in := inline.(type) {
	case model.Text:
		return mdast.NewNode(mdast.NodeText, nil, mdast.WithLiteral(in.Text))
	case model.SoftBreak:
		return mdast.NewNode(mdast.NodeSoftBreak, nil)
	case model.LineBreak:
		return mdast.NewNode(mdast.NodeLineBreak, nil)
	case model.Code:
		return mdast.NewNode(mdast.NodeCode, nil, mdast.WithLiteral(in.Text))
	case model.InlineHTML:
		return mdast.NewNode(mdast.NodeHTMLInline, nil, mdast.WithLiteral(in.Text))
	case model.CustomInline:
		return mdast.NewNode(mdast.NodeCustomInline, nil, mdast.WithLiteral(in.Literal))
	case model.Emphasis:
		return mdast.NewNode(mdast.NodeEmphasis, buildInlines(in.Children))
	case model.Strong:
		return mdast.NewNode(mdast.NodeStrong, buildInlines(in.Children))
	case model.Link:
		return mdast.NewNode(mdast.NodeLink, buildInlines(in.Children), linkOptions(in.Title, in.URL)...)
	case model.Image:
		return mdast.NewNode(mdast.NodeImage, buildInlines(in.Children), linkOptions(in.Title, in.URL)...)
	default:
		return mdast.NewNode(mdast.NodeText, nil, mdast.WithLiteral(""))
	}
}

// buildList attaches items before marking the list tight, so the item
// paragraphs are converted along with it.
func buildList(list model.List) *mdast.Node {
	items := make([]*mdast.Node, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, mdast.NewNode(mdast.NodeListItem, buildBlocks(item)))
	}

	kind := mdast.ListBullet
	if list.Type == model.Ordered {
		kind = mdast.ListOrdered
	}

	return mdast.NewNode(mdast.NodeList, items,
		mdast.WithListKind(kind),
		mdast.WithListStart(list.Start),
		mdast.WithListTight(list.Tight),
	)
}

func buildBlocks(blocks []model.Block) []*mdast.Node {
	nodes := make([]*mdast.Node, 0, len(blocks))
	for _, b := range blocks {
		nodes = append(nodes, BuildBlock(b))
	}
	return nodes
}

func buildInlines(inlines []model.Inline) []*mdast.Node {
	nodes := make([]*mdast.Node, 0, len(inlines))
	for _, in := range inlines {
		nodes = append(nodes, BuildInline(in))
	}
	return nodes
}

func linkOptions(title, url string) []mdast.Option {
	var opts []mdast.Option
	if title != "" {
		opts = append(opts, mdast.WithTitle(title))
	}
	if url != "" {
		opts = append(opts, mdast.WithURL(url))
	}
	return opts
}
