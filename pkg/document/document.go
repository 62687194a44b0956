// Package document is the entry point for turning Markdown text into trees,
// trees into the block model and back, and trees into output formats.
//
// A Processor carries the settings from a config.Config. The package-level
// functions use the defaults.
package document

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/mdbridge/internal/logging"
	"github.com/yaklabco/mdbridge/pkg/config"
	"github.com/yaklabco/mdbridge/pkg/convert"
	"github.com/yaklabco/mdbridge/pkg/mdast"
	"github.com/yaklabco/mdbridge/pkg/model"
	"github.com/yaklabco/mdbridge/pkg/parser/goldmark"
	"github.com/yaklabco/mdbridge/pkg/render"
)

// ErrParse is returned, wrapped, when text cannot be parsed into a tree.
var ErrParse = goldmark.ErrParse

// Processor parses, converts and renders documents with one configuration.
type Processor struct {
	cfg    *config.Config
	parser *goldmark.Parser
	reader *convert.Reader
}

// New creates a Processor from cfg. A nil cfg uses config.NewConfig.
func New(cfg *config.Config) (*Processor, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	if _, err := render.ParseFormat(string(cfg.Render.Format)); err != nil {
		return nil, fmt.Errorf("configure processor: %w", err)
	}

	var readerOpts []convert.ReaderOption
	if cfg.Read.DetectLanguages {
		readerOpts = append(readerOpts, convert.WithLanguageDetection())
	}
	if cfg.Read.PreserveUnknownInline {
		readerOpts = append(readerOpts, convert.WithPreservedInlineFallback())
	}

	return &Processor{
		cfg:    cfg.Clone(),
		parser: goldmark.New(string(cfg.Flavor)),
		reader: convert.NewReader(readerOpts...),
	}, nil
}

// Config returns a copy of the processor's configuration.
func (p *Processor) Config() *config.Config {
	return p.cfg.Clone()
}

// Parse parses text into an owned tree. The caller must Close it.
func (p *Processor) Parse(ctx context.Context, text []byte) (*mdast.Node, error) {
	root, err := p.parser.Parse(ctx, text)
	if err != nil {
		logging.FromContext(ctx).Debug("parse failed",
			logging.FieldFlavor, p.parser.Flavor(),
			logging.FieldBytes, len(text),
			logging.FieldError, err,
		)
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return root, nil
}

// ParseFile reads and parses the file at path. The caller must Close the
// returned tree.
func (p *Processor) ParseFile(ctx context.Context, path string) (*mdast.Node, error) {
	root, err := p.parser.ParseFile(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Debug("parse failed",
			logging.FieldFlavor, p.parser.Flavor(),
			logging.FieldPath, path,
			logging.FieldError, err,
		)
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return root, nil
}

// Read converts the tree under root into blocks.
func (p *Processor) Read(root *mdast.Node) []model.Block {
	return p.reader.Read(root)
}

// Build creates an owned document tree from blocks. The caller must Close it.
func (p *Processor) Build(blocks []model.Block) *mdast.Node {
	return convert.Build(blocks)
}

// Rebuild reads root into the block model and builds a new tree from the
// result. The caller must Close the returned tree; root is left untouched.
func (p *Processor) Rebuild(root *mdast.Node) *mdast.Node {
	return p.Build(p.Read(root))
}

// RenderOptions returns the render options derived from the configuration.
func (p *Processor) RenderOptions() render.Options {
	return render.Options{
		Width:     p.cfg.Render.WrapWidth(),
		Unsafe:    p.cfg.Render.Unsafe,
		HardWraps: p.cfg.Render.HardWraps,
		XHTML:     p.cfg.Render.XHTML,
	}
}

// Format returns the configured output format.
func (p *Processor) Format() render.Format {
	//nolint:errcheck // validated in New
	format, _ := render.ParseFormat(string(p.cfg.Render.Format))
	return format
}

// Render writes root to w in the configured format. With ViaModel set the
// tree is first rebuilt through the block model.
func (p *Processor) Render(w io.Writer, root *mdast.Node) error {
	return p.RenderAs(w, root, p.Format())
}

// RenderAs writes root to w in format.
func (p *Processor) RenderAs(w io.Writer, root *mdast.Node, format render.Format) error {
	if p.cfg.ViaModel {
		rebuilt := p.Rebuild(root)
		defer func() { _ = rebuilt.Close() }()
		root = rebuilt
	}

	if err := render.Render(w, root, format, p.RenderOptions()); err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // default processor for the package-level functions
var defaultProcessor = mustDefault()

func mustDefault() *Processor {
	p, err := New(nil)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse parses CommonMark text into an owned tree. The caller must Close it.
func Parse(ctx context.Context, text []byte) (*mdast.Node, error) {
	return defaultProcessor.Parse(ctx, text)
}

// ParseString is Parse for a string.
func ParseString(ctx context.Context, text string) (*mdast.Node, error) {
	return defaultProcessor.Parse(ctx, []byte(text))
}

// ParseFile reads and parses the CommonMark file at path. The caller must
// Close the returned tree.
func ParseFile(ctx context.Context, path string) (*mdast.Node, error) {
	return defaultProcessor.ParseFile(ctx, path)
}

// FromBlocks creates an owned document tree from blocks. The caller must
// Close it.
func FromBlocks(blocks []model.Block) *mdast.Node {
	return convert.Build(blocks)
}

// Blocks converts the tree under root into blocks.
func Blocks(root *mdast.Node) []model.Block {
	return convert.Read(root)
}

// ToHTML parses text and renders it as HTML with default options.
func ToHTML(ctx context.Context, text string) (string, error) {
	root, err := ParseString(ctx, text)
	if err != nil {
		return "", err
	}
	defer func() { _ = root.Close() }()

	return render.HTML(root), nil
}
