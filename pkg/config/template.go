package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. If false, the
	// template only sets the flavor and leaves the rest commented out.
	Full bool
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	if opts.Full {
		return generateFullTemplate()
	}
	return generateMinimalTemplate()
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Markdown flavor: commonmark or gfm
flavor: commonmark

# render:
#   # Output format: html, xml, commonmark or latex
#   format: html
#   # Wrap column for commonmark and latex output (0 = no wrapping)
#   width: 80
#   # Pass raw HTML through in html output
#   unsafe: false

# read:
#   # Guess the language of code blocks without an info string
#   detect_languages: false
`)

	return buf.Bytes()
}

func generateFullTemplate() []byte {
	cfg := NewConfig()
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	fmt.Fprintf(&buf, `
#
# This template lists every setting with its default value.

# Markdown flavor: commonmark or gfm
flavor: %s

render:
  # Output format: html, xml, commonmark or latex
  format: %s
  # Wrap column for commonmark and latex output (0 = no wrapping)
  width: %d
  # Pass raw HTML and dangerous URLs through in html output
  unsafe: %t
  # Render soft line breaks as <br>
  hard_wraps: %t
  # Emit self-closing tags
  xhtml: %t

read:
  # Guess the language of code blocks without an info string
  detect_languages: %t
  # Keep the source of inline constructs the block model has no type for
  preserve_unknown_inline: %t
`,
		cfg.Flavor,
		cfg.Render.Format, cfg.Render.WrapWidth(), cfg.Render.Unsafe, cfg.Render.HardWraps, cfg.Render.XHTML,
		cfg.Read.DetectLanguages, cfg.Read.PreserveUnknownInline,
	)

	return buf.Bytes()
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdbridge configuration
# See: https://github.com/yaklabco/mdbridge`
}
