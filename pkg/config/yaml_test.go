package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdbridge/pkg/config"
)

func intPtr(i int) *int { return &i }

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, config.FormatHTML, cfg.Render.Format)
	assert.Equal(t, config.DefaultWidth, cfg.Render.WrapWidth())
	assert.False(t, cfg.Read.DetectLanguages)
}

func TestRenderConfigWrapWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width *int
		want  int
	}{
		{"unset uses default", nil, config.DefaultWidth},
		{"zero disables wrapping", intPtr(0), 0},
		{"explicit", intPtr(40), 40},
		{"negative uses default", intPtr(-3), config.DefaultWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, config.RenderConfig{Width: tt.width}.WrapWidth())
		})
	}
}

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies width", func(t *testing.T) {
		original := config.NewConfig()

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original.Render.Width, clone.Render.Width)

		*clone.Render.Width = 10
		assert.Equal(t, config.DefaultWidth, *original.Render.Width)
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Flavor: config.FlavorGFM,
			Render: config.RenderConfig{
				Format:    config.FormatLaTeX,
				Width:     intPtr(60),
				Unsafe:    true,
				HardWraps: true,
				XHTML:     true,
			},
			Read:     config.ReadConfig{DetectLanguages: true, PreserveUnknownInline: true},
			ViaModel: true,
			Output:   "out.html",
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Flavor = config.FlavorGFM
		cfg.Output = "never-written"

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: gfm")
		assert.Contains(t, string(data), "  format: html")
		assert.Contains(t, string(data), "  width: 80")
		assert.NotContains(t, string(data), "never-written")
	})

	t.Run("header is prepended", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader(config.DefaultTemplateHeader())
		require.NoError(t, err)
		assert.Contains(t, string(data), "# mdbridge configuration\n# See: https://github.com/yaklabco/mdbridge\n\nflavor:")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
flavor: gfm
render:
  format: commonmark
  width: 0
  unsafe: true
read:
  detect_languages: true
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.Equal(t, config.FormatCommonMark, cfg.Render.Format)
		require.NotNil(t, cfg.Render.Width)
		assert.Equal(t, 0, cfg.Render.WrapWidth())
		assert.True(t, cfg.Render.Unsafe)
		assert.True(t, cfg.Read.DetectLanguages)
	})

	t.Run("missing width stays unset", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`flavor: commonmark`))
		require.NoError(t, err)
		assert.Nil(t, cfg.Render.Width)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: [unclosed"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data := config.GenerateTemplate(config.TemplateOptions{Full: full})

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
		if full {
			assert.Equal(t, config.NewConfig(), cfg)
		}
	}
}
