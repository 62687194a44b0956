// Package render serializes mdast trees to HTML, XML, CommonMark and LaTeX.
//
// Every format is a goldmark renderer: HTML reuses goldmark's own HTML
// renderer, XML is a node renderer emitting the CommonMark DTD, and
// CommonMark and LaTeX are line-oriented renderers that wrap paragraph text.
// Rendering only reads the tree.
package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark/renderer"

	"github.com/yaklabco/mdbridge/pkg/mdast"
)

// DefaultWidth is the column at which CommonMark and LaTeX output wraps.
const DefaultWidth = 80

// Options control rendering.
type Options struct {
	// Width is the wrap column for CommonMark and LaTeX. Zero disables
	// wrapping.
	Width int

	// Unsafe passes raw HTML and dangerous URLs through in HTML output.
	Unsafe bool

	// HardWraps renders soft line breaks as <br> in HTML output.
	HardWraps bool

	// XHTML emits self-closing tags in HTML output.
	XHTML bool
}

// DefaultOptions returns the options used by the convenience functions.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth}
}

// optWidth carries the wrap column to the line-oriented renderers.
const optWidth renderer.OptionName = "Width"

// New returns the goldmark renderer for format.
//
//nolint:ireturn // renderer.Renderer is goldmark's renderer interface
func New(format Format, opts Options) (renderer.Renderer, error) {
	switch format {
	case FormatHTML:
		return newHTMLRenderer(opts), nil
	case FormatXML:
		return newXMLRenderer(), nil
	case FormatCommonMark:
		r := &commonMarkRenderer{}
		r.AddOptions(renderer.WithOption(optWidth, opts.Width))
		return r, nil
	case FormatLaTeX:
		r := &latexRenderer{}
		r.AddOptions(renderer.WithOption(optWidth, opts.Width))
		return r, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Render writes root in format to w. A released tree renders nothing.
func Render(w io.Writer, root *mdast.Node, format Format, opts Options) error {
	r, err := New(format, opts)
	if err != nil {
		return err
	}

	node := root.AST()
	if node == nil {
		return nil
	}

	if err := r.Render(w, root.Source(), node); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

// HTML renders root as HTML with default options.
func HTML(root *mdast.Node) string {
	return renderString(root, FormatHTML, DefaultOptions())
}

// XML renders root as CommonMark XML.
func XML(root *mdast.Node) string {
	return renderString(root, FormatXML, DefaultOptions())
}

// CommonMark renders root as CommonMark wrapped at width columns.
func CommonMark(root *mdast.Node, width int) string {
	return renderString(root, FormatCommonMark, Options{Width: width})
}

// LaTeX renders root as LaTeX wrapped at width columns.
func LaTeX(root *mdast.Node, width int) string {
	return renderString(root, FormatLaTeX, Options{Width: width})
}

func renderString(root *mdast.Node, format Format, opts Options) string {
	var buf bytes.Buffer
	//nolint:errcheck,revive // writes to a bytes.Buffer cannot fail
	Render(&buf, root, format, opts)
	return buf.String()
}

// configWidth reads the wrap column from goldmark renderer options.
func configWidth(opts []renderer.Option, current int) int {
	cfg := renderer.NewConfig()
	for _, opt := range opts {
		opt.SetConfig(cfg)
	}
	if width, ok := cfg.Options[optWidth].(int); ok && width >= 0 {
		return width
	}
	return current
}
