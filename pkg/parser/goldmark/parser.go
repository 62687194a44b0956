// Package goldmark parses Markdown into mdast trees using the goldmark library.
package goldmark

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// definitionCleanupPriority runs the cleanup after every built-in transformer.
const definitionCleanupPriority = 1000

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ErrParse is returned when input cannot be turned into a document tree.
var ErrParse = errors.New("markdown parse failed")

// Parser turns Markdown text into owned mdast trees.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Markdown returns the goldmark instance the parser was configured with.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func (p *Parser) Markdown() goldmark.Markdown {
	return p.md
}

// Parse converts raw Markdown bytes into an owned document tree. The caller
// must Close the returned root.
//
// Empty input, a cancelled context, or a failure inside the engine yields
// an error wrapping ErrParse and no tree.
func (p *Parser) Parse(ctx context.Context, content []byte) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}

	source := copyContent(content)
	root, err := p.parse(source)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return root, nil
}

// ParseFile reads path and parses its contents.
func (p *Parser) ParseFile(ctx context.Context, path string) (*mdast.Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrParse, path, err)
	}

	root, err := p.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

func (p *Parser) parse(source []byte) (root *mdast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = fmt.Errorf("%w: %v", ErrParse, r)
		}
	}()

	reader := text.NewReader(source)
	doc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))
	if doc == nil {
		return nil, fmt.Errorf("%w: no document", ErrParse)
	}

	return mdast.Wrap(doc, source), nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithASTTransformers(
			util.Prioritized(definitionCleanup{}, definitionCleanupPriority),
		)),
	}

	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// definitionCleanup removes the empty text blocks goldmark leaves behind
// where a paragraph held nothing but link reference definitions. They render
// as nothing, but every reader of the tree would otherwise see an empty
// paragraph there.
type definitionCleanup struct{}

// Transform implements parser.ASTTransformer.
func (definitionCleanup) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	var empty []ast.Node
	//nolint:errcheck,revive // the walker never returns an error
	ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		if _, ok := node.(*ast.TextBlock); ok && node.Lines().Len() == 0 && !node.HasChildren() {
			empty = append(empty, node)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, node := range empty {
		node.Parent().RemoveChild(node.Parent(), node)
	}
}

// copyContent creates a copy of the content slice so the tree owns its bytes.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
