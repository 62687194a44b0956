package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/mdbridge/pkg/mdast"
)

// FuzzParse fuzzes the full parser with random input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"```\ncode\n```",
		"*emphasis* and **strong**",
		"[link](url) and ![image](src)",
		"<https://example.com> &amp; \\*",
		"# Title\n\nParagraph.\n\n- item\n\n> quote\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New(FlavorCommonMark)

		root, err := p.Parse(context.Background(), data)
		if err != nil {
			return
		}
		defer root.Close()

		if root.Kind() != mdast.NodeDocument {
			t.Errorf("root kind = %v, want Document", root.Kind())
		}

		// Every view must be readable without panicking.
		err = mdast.Walk(root, func(n *mdast.Node) error {
			_ = n.Literal()
			_ = n.URL()
			_ = n.FenceInfo()
			return nil
		})
		if err != nil {
			t.Errorf("walk error: %v", err)
		}
	})
}

// FuzzParseGFM fuzzes the GFM parser with random input.
func FuzzParseGFM(f *testing.F) {
	seeds := []string{
		"",
		"- [x] task 1\n- [ ] task 2",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"~~strikethrough~~",
		"https://example.com",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		root, err := New(FlavorGFM).Parse(context.Background(), data)
		if err != nil {
			return
		}
		defer root.Close()

		if root.Kind() != mdast.NodeDocument {
			t.Errorf("root kind = %v, want Document", root.Kind())
		}
	})
}

// FuzzParseDeterministic verifies that parsing is deterministic.
func FuzzParseDeterministic(f *testing.F) {
	seeds := []string{
		"# Hello",
		"*emphasis*",
		"- list",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorCommonMark)

		r1, err1 := p.Parse(ctx, data)
		r2, err2 := p.Parse(ctx, data)

		if (err1 == nil) != (err2 == nil) {
			t.Error("parsing should be deterministic")
			return
		}
		if err1 != nil {
			return
		}
		defer r1.Close()
		defer r2.Close()

		count1 := countNodes(r1)
		count2 := countNodes(r2)
		if count1 != count2 {
			t.Errorf("node count mismatch: %d vs %d", count1, count2)
		}
	})
}

func countNodes(root *mdast.Node) int {
	count := 0
	//nolint:errcheck,revive // the callback never fails
	mdast.Walk(root, func(*mdast.Node) error {
		count++
		return nil
	})
	return count
}
