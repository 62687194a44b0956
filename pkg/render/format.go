package render

import "fmt"

// Format is an output format for rendering a tree.
type Format string

// Output formats supported by the renderer.
const (
	FormatHTML       Format = "html"
	FormatXML        Format = "xml"
	FormatCommonMark Format = "commonmark"
	FormatLaTeX      Format = "latex"
)

// ParseFormat parses a format string, returning an error for unknown formats.
// The empty string selects HTML.
func ParseFormat(formatStr string) (Format, error) {
	switch formatStr {
	case "html", "":
		return FormatHTML, nil
	case "xml":
		return FormatXML, nil
	case "commonmark", "markdown", "md":
		return FormatCommonMark, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	default:
		return "", fmt.Errorf("unknown format %q; valid formats: html, xml, commonmark, latex", formatStr)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatHTML, FormatXML, FormatCommonMark, FormatLaTeX:
		return true
	default:
		return false
	}
}

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatHTML, FormatXML, FormatCommonMark, FormatLaTeX}
}
