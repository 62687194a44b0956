package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbridge/internal/ui/pretty"
	"github.com/yaklabco/mdbridge/pkg/mdast"
)

func sampleTree() *mdast.Node {
	return mdast.NewNode(mdast.NodeDocument, []*mdast.Node{
		mdast.NewNode(mdast.NodeHeading, []*mdast.Node{
			mdast.NewNode(mdast.NodeText, nil, mdast.WithLiteral("Title")),
		}, mdast.WithHeadingLevel(2)),
		mdast.NewNode(mdast.NodeParagraph, []*mdast.Node{
			mdast.NewNode(mdast.NodeText, nil, mdast.WithLiteral("see ")),
			mdast.NewNode(mdast.NodeLink, []*mdast.Node{
				mdast.NewNode(mdast.NodeText, nil, mdast.WithLiteral("docs")),
			}, mdast.WithURL("/docs")),
		}),
		mdast.NewNode(mdast.NodeCodeBlock, nil, mdast.WithFenceInfo("go"), mdast.WithLiteral("x := 1\n")),
	})
}

func TestFormatTree(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	defer func() { _ = root.Close() }()

	got := pretty.NewTreeFormatter(pretty.NewStyles(false), 0).FormatTree(root)

	want := strings.Join([]string{
		`Document`,
		`├── Heading level=2`,
		`│   └── Text "Title"`,
		`├── Paragraph`,
		`│   ├── Text "see "`,
		`│   └── Link url="/docs"`,
		`│       └── Text "docs"`,
		`└── CodeBlock info="go" "x := 1\n"`,
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestFormatTree_List(t *testing.T) {
	t.Parallel()

	root := mdast.NewNode(mdast.NodeList, []*mdast.Node{
		mdast.NewNode(mdast.NodeListItem, nil),
	}, mdast.WithListKind(mdast.ListOrdered), mdast.WithListStart(3), mdast.WithListTight(true))
	defer func() { _ = root.Close() }()

	got := pretty.NewTreeFormatter(nil, 0).FormatTree(root)
	assert.Equal(t, "List kind=ordered start=3 tight=true\n└── ListItem\n", got)
}

func TestFormatTree_Truncates(t *testing.T) {
	t.Parallel()

	root := mdast.NewNode(mdast.NodeText, nil, mdast.WithLiteral(strings.Repeat("word ", 20)))
	defer func() { _ = root.Close() }()

	got := pretty.NewTreeFormatter(pretty.NewStyles(false), 20).FormatTree(root)
	line := strings.TrimSuffix(got, "\n")

	assert.True(t, strings.HasPrefix(line, `Text "word`), "got %q", line)
	assert.True(t, strings.HasSuffix(line, "…"), "got %q", line)
	assert.LessOrEqual(t, len([]rune(line)), 20)
}

func TestFormatTree_Released(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	require.NoError(t, root.Close())

	assert.Empty(t, pretty.NewTreeFormatter(nil, 0).FormatTree(root))
	assert.Empty(t, pretty.NewTreeFormatter(nil, 0).FormatTree(nil))
}

func TestCountNodes(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	defer func() { _ = root.Close() }()

	assert.Equal(t, 8, pretty.CountNodes(root))
}
