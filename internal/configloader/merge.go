package configloader

import "github.com/yaklabco/mdbridge/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Width: override overwrites base if set, so an explicit 0 disables wrapping
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Render.Format != "" {
		result.Render.Format = override.Render.Format
	}
	if override.Render.Width != nil {
		width := *override.Render.Width
		result.Render.Width = &width
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	// Booleans: false is the zero value, so a layer can only switch an
	// option on. A config file cannot unset what a lower layer enabled.
	if override.Render.Unsafe {
		result.Render.Unsafe = true
	}
	if override.Render.HardWraps {
		result.Render.HardWraps = true
	}
	if override.Render.XHTML {
		result.Render.XHTML = true
	}
	if override.Read.DetectLanguages {
		result.Read.DetectLanguages = true
	}
	if override.Read.PreserveUnknownInline {
		result.Read.PreserveUnknownInline = true
	}
	if override.ViaModel {
		result.ViaModel = true
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
