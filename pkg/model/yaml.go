package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ToYAMLValue converts blocks to plain maps and slices suitable for
// serialization. Each element becomes a mapping keyed by its tag; empty
// optional fields are omitted.
func ToYAMLValue(blocks []Block) []any {
	out := make([]any, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockValue(b))
	}
	return out
}

// MarshalYAML encodes blocks as a YAML document.
func MarshalYAML(blocks []Block) ([]byte, error) {
	data, err := yaml.Marshal(ToYAMLValue(blocks))
	if err != nil {
		return nil, fmt.Errorf("marshal model: %w", err)
	}
	return data, nil
}

func blockValue(b Block) map[string]any {
	fields := map[string]any{}

	switch v := b.(type) {
	case List:
		fields["type"] = v.Type.String()
		if v.Type == Ordered {
			fields["start"] = v.Start
		}
		fields["tight"] = v.Tight
		items := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			items = append(items, ToYAMLValue(item))
		}
		fields["items"] = items
	case BlockQuote:
		fields["items"] = ToYAMLValue(v.Items)
	case CodeBlock:
		putOptional(fields, "language", v.Language)
		fields["text"] = v.Text
	case HTMLBlock:
		fields["text"] = v.Text
	case Paragraph:
		fields["text"] = inlinesValue(v.Text)
	case Heading:
		fields["level"] = v.Level
		fields["text"] = inlinesValue(v.Text)
	case CustomBlock:
		fields["literal"] = v.Literal
	case ThematicBreak:
	}

	if b == nil {
		return fields
	}
	return map[string]any{string(b.Tag()): fields}
}

func inlinesValue(inlines []Inline) []any {
	out := make([]any, 0, len(inlines))
	for _, in := range inlines {
		out = append(out, inlineValue(in))
	}
	return out
}

//nolint:cyclop // one case per variant
func inlineValue(in Inline) any {
	switch v := in.(type) {
	case Text:
		return map[string]any{string(TextTag): v.Text}
	case SoftBreak, LineBreak:
		return string(in.Tag())
	case Code:
		return map[string]any{string(CodeTag): v.Text}
	case InlineHTML:
		return map[string]any{string(InlineHTMLTag): v.Text}
	case CustomInline:
		return map[string]any{string(CustomInlineTag): v.Literal}
	case Emphasis:
		return map[string]any{string(EmphasisTag): inlinesValue(v.Children)}
	case Strong:
		return map[string]any{string(StrongTag): inlinesValue(v.Children)}
	case Link:
		return map[string]any{string(LinkTag): linkValue(v.Children, v.URL, v.Title)}
	case Image:
		return map[string]any{string(ImageTag): linkValue(v.Children, v.URL, v.Title)}
	default:
		return nil
	}
}

func linkValue(children []Inline, url, title string) map[string]any {
	fields := map[string]any{"url": url}
	putOptional(fields, "title", title)
	fields["children"] = inlinesValue(children)
	return fields
}

func putOptional(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
