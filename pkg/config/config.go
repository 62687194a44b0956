// Package config defines core configuration types for mdbridge.
// These types are pure data structures with no dependency on how they are loaded.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat names a render target.
type OutputFormat string

const (
	FormatHTML       OutputFormat = "html"
	FormatXML        OutputFormat = "xml"
	FormatCommonMark OutputFormat = "commonmark"
	FormatLaTeX      OutputFormat = "latex"
)

// DefaultWidth is the wrap column used when no width is configured.
const DefaultWidth = 80

// RenderConfig controls how documents are rendered.
type RenderConfig struct {
	// Format is the default output format.
	Format OutputFormat `mapstructure:"format" yaml:"format"`

	// Width is the wrap column for CommonMark and LaTeX output.
	// Nil means DefaultWidth; zero disables wrapping.
	Width *int `mapstructure:"width" yaml:"width,omitempty"`

	// Unsafe passes raw HTML through in HTML output.
	Unsafe bool `mapstructure:"unsafe" yaml:"unsafe"`

	// HardWraps renders soft line breaks as <br>.
	HardWraps bool `mapstructure:"hard_wraps" yaml:"hard_wraps"`

	// XHTML emits self-closing tags.
	XHTML bool `mapstructure:"xhtml" yaml:"xhtml"`
}

// WrapWidth returns the configured wrap column.
func (r RenderConfig) WrapWidth() int {
	if r.Width == nil || *r.Width < 0 {
		return DefaultWidth
	}
	return *r.Width
}

// ReadConfig controls how trees are read into the block model.
type ReadConfig struct {
	// DetectLanguages guesses the language of code blocks without an info string.
	DetectLanguages bool `mapstructure:"detect_languages" yaml:"detect_languages"`

	// PreserveUnknownInline keeps the literal of inline nodes with no model
	// counterpart instead of reading them as empty text.
	PreserveUnknownInline bool `mapstructure:"preserve_unknown_inline" yaml:"preserve_unknown_inline"`
}

// Config is the root configuration structure for mdbridge.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Render configures output.
	Render RenderConfig `mapstructure:"render" yaml:"render"`

	// Read configures the tree to model reader.
	Read ReadConfig `mapstructure:"read" yaml:"read"`

	// CLI-level options (not persisted to config files).

	// ViaModel renders a document after reading it into the block model and
	// building it back.
	ViaModel bool `mapstructure:"-" yaml:"-"`

	// Output is the file rendered output is written to. Empty means stdout.
	Output string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	width := DefaultWidth
	return &Config{
		Flavor: FlavorCommonMark,
		Render: RenderConfig{
			Format: FormatHTML,
			Width:  &width,
		},
	}
}
