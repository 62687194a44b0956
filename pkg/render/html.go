package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdbridge/pkg/mdast"
)

// Node renderer priorities. Each renderer registers disjoint node kinds.
const (
	priorityHTML      = 1000
	priorityExtension = 500
	priorityCustom    = 100
)

//nolint:ireturn // renderer.Renderer is goldmark's renderer interface
func newHTMLRenderer(opts Options) renderer.Renderer {
	var htmlOpts []html.Option
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if opts.XHTML {
		htmlOpts = append(htmlOpts, html.WithXHTML())
	}

	return renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(htmlOpts...), priorityHTML),
		util.Prioritized(extension.NewStrikethroughHTMLRenderer(htmlOpts...), priorityExtension),
		util.Prioritized(extension.NewTableHTMLRenderer(), priorityExtension),
		util.Prioritized(extension.NewTaskCheckBoxHTMLRenderer(htmlOpts...), priorityExtension),
		util.Prioritized(&customHTMLRenderer{}, priorityCustom),
	))
}

// customHTMLRenderer writes custom node literals verbatim, whatever the
// safe-mode setting.
type customHTMLRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *customHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(mdast.KindCustomBlock, r.renderCustomBlock)
	reg.Register(mdast.KindCustomInline, r.renderCustomInline)
}

func (r *customHTMLRenderer) renderCustomBlock(
	w util.BufWriter, source []byte, n ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	literal := mdast.LiteralOf(n, source)
	if len(literal) == 0 {
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.Write(literal)
	if literal[len(literal)-1] != '\n' {
		_ = w.WriteByte('\n')
	}
	return ast.WalkSkipChildren, nil
}

func (r *customHTMLRenderer) renderCustomInline(
	w util.BufWriter, source []byte, n ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(mdast.LiteralOf(n, source))
	}
	return ast.WalkSkipChildren, nil
}
