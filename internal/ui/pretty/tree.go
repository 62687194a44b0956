package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/mdbridge/pkg/mdast"
)

const (
	branchGuide = "├── "
	lastGuide   = "└── "
	pipeGuide   = "│   "
	blankGuide  = "    "
	ellipsis    = "…"
)

// TreeFormatter renders an mdast tree as an indented outline, one node per
// line, with the node's populated fields after its kind.
type TreeFormatter struct {
	styles *Styles
	width  int
}

// NewTreeFormatter creates a formatter. Lines wider than width columns are
// truncated; a width of 0 or less disables truncation.
func NewTreeFormatter(styles *Styles, width int) *TreeFormatter {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &TreeFormatter{styles: styles, width: width}
}

// FormatTree renders the subtree under root. A released or nil root renders
// as the empty string.
func (t *TreeFormatter) FormatTree(root *mdast.Node) string {
	if root == nil || root.Released() {
		return ""
	}

	var builder strings.Builder
	t.writeNode(&builder, root, "", "")
	return builder.String()
}

func (t *TreeFormatter) writeNode(builder *strings.Builder, node *mdast.Node, guide, childGuide string) {
	label := t.label(node)
	guideWidth := runewidth.StringWidth(guide)
	if t.width > 0 {
		label = t.truncateLabel(node, t.width-guideWidth)
	}

	builder.WriteString(t.styles.TreeGuide.Render(guide))
	builder.WriteString(label)
	builder.WriteString("\n")

	children := node.Children()
	for i, child := range children {
		if i == len(children)-1 {
			t.writeNode(builder, child, childGuide+lastGuide, childGuide+blankGuide)
			continue
		}
		t.writeNode(builder, child, childGuide+branchGuide, childGuide+pipeGuide)
	}
}

// label returns the styled, untruncated line for node.
func (t *TreeFormatter) label(node *mdast.Node) string {
	return t.styledLabel(node.Kind(), nodeFields(node), literalOf(node))
}

// truncateLabel fits the line for node into width columns. Only the literal
// is shortened; kind and fields are kept whole.
func (t *TreeFormatter) truncateLabel(node *mdast.Node, width int) string {
	kind := node.Kind()
	fields := nodeFields(node)
	literal := literalOf(node)

	if literal == "" {
		return t.styledLabel(kind, fields, "")
	}

	used := runewidth.StringWidth(plainLabel(kind.String(), fields, "")) + 1
	remaining := width - used
	if remaining < runewidth.StringWidth(ellipsis)+2 {
		return t.styledLabel(kind, fields, "")
	}

	return t.styledLabel(kind, fields, runewidth.Truncate(literal, remaining, ellipsis))
}

func (t *TreeFormatter) styledLabel(kind mdast.NodeKind, fields []field, literal string) string {
	var builder strings.Builder

	builder.WriteString(t.kindStyle(kind).Render(kind.String()))
	for _, f := range fields {
		builder.WriteString(" ")
		builder.WriteString(t.styles.FieldKey.Render(f.key + "="))
		builder.WriteString(t.styles.FieldValue.Render(f.value))
	}
	if literal != "" {
		builder.WriteString(" ")
		builder.WriteString(t.styles.Literal.Render(literal))
	}

	return builder.String()
}

func (t *TreeFormatter) kindStyle(kind mdast.NodeKind) lipgloss.Style {
	switch {
	case kind == mdast.NodeUnknown:
		return t.styles.UnknownKind
	case kind.IsInline():
		return t.styles.InlineKind
	default:
		return t.styles.BlockKind
	}
}

type field struct {
	key   string
	value string
}

// nodeFields returns the populated non-literal fields of node in a fixed order.
func nodeFields(node *mdast.Node) []field {
	var fields []field

	switch node.Kind() {
	case mdast.NodeHeading:
		fields = append(fields, field{"level", strconv.Itoa(node.HeadingLevel())})
	case mdast.NodeList:
		fields = append(fields, field{"kind", node.ListKind().String()})
		if node.ListKind() == mdast.ListOrdered {
			fields = append(fields, field{"start", strconv.Itoa(node.ListStart())})
		}
		fields = append(fields, field{"tight", strconv.FormatBool(node.ListTight())})
	case mdast.NodeCodeBlock:
		if info := node.FenceInfo(); info != "" {
			fields = append(fields, field{"info", strconv.Quote(info)})
		}
	case mdast.NodeLink, mdast.NodeImage:
		fields = append(fields, field{"url", strconv.Quote(node.URL())})
		if title := node.Title(); title != "" {
			fields = append(fields, field{"title", strconv.Quote(title)})
		}
	}

	return fields
}

// literalOf returns the quoted literal for kinds that carry one.
func literalOf(node *mdast.Node) string {
	switch node.Kind() {
	case mdast.NodeText, mdast.NodeCode, mdast.NodeHTMLInline, mdast.NodeCustomInline,
		mdast.NodeCodeBlock, mdast.NodeHTMLBlock, mdast.NodeCustomBlock:
		return strconv.Quote(node.Literal())
	default:
		return ""
	}
}

func plainLabel(kind string, fields []field, literal string) string {
	parts := []string{kind}
	for _, f := range fields {
		parts = append(parts, f.key+"="+f.value)
	}
	if literal != "" {
		parts = append(parts, literal)
	}
	return strings.Join(parts, " ")
}

// CountNodes returns the number of nodes in the subtree under root.
func CountNodes(root *mdast.Node) int {
	count := 0
	//nolint:errcheck,revive // the callback never returns an error
	mdast.Walk(root, func(*mdast.Node) error {
		count++
		return nil
	})
	return count
}
