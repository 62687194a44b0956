package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdbridge/internal/ui/pretty"
	"github.com/yaklabco/mdbridge/pkg/model"
)

func TestFormatOutline(t *testing.T) {
	t.Parallel()

	heading := func(level int, inlines ...model.Inline) model.Heading {
		return model.Heading{Level: level, Text: inlines}
	}

	tests := []struct {
		name   string
		blocks []model.Block
		want   string
	}{
		{"no headings", []model.Block{model.Paragraph{Text: []model.Inline{model.Text{Text: "x"}}}}, ""},
		{
			name: "levels",
			blocks: []model.Block{
				heading(1, model.Text{Text: "A"}),
				heading(3, model.Strong{Children: []model.Inline{model.Text{Text: "B"}}}, model.SoftBreak{}, model.Code{Text: "c"}),
			},
			want: "# A\n    ### B c\n",
		},
		{
			name: "nested in quote and list",
			blocks: []model.Block{
				model.BlockQuote{Items: []model.Block{heading(2, model.Text{Text: "Q"})}},
				model.List{Items: [][]model.Block{{heading(1, model.Text{Text: "L"})}}},
			},
			want: "  ## Q\n# L\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatOutline(tt.blocks))
		})
	}
}
