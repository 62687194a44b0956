package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/mdbridge/pkg/config"
)

// envVarPrefix is the prefix for all mdbridge environment variables.
const envVarPrefix = "MDBRIDGE_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":                  {"flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"FORMAT":                  {"render.format", envTypeString, "Output format: html, xml, commonmark or latex"},
	"WIDTH":                   {"render.width", envTypeInt, "Wrap column for commonmark and latex (0 = no wrapping)"},
	"UNSAFE":                  {"render.unsafe", envTypeBool, "Pass raw HTML through: true or false"},
	"HARD_WRAPS":              {"render.hard_wraps", envTypeBool, "Render soft breaks as <br>: true or false"},
	"XHTML":                   {"render.xhtml", envTypeBool, "Emit self-closing tags: true or false"},
	"DETECT_LANGUAGES":        {"read.detect_languages", envTypeBool, "Guess code block languages: true or false"},
	"PRESERVE_UNKNOWN_INLINE": {"read.preserve_unknown_inline", envTypeBool, "Keep unknown inline source: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDBRIDGE_ (e.g., MDBRIDGE_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "render.format":
		cfg.Render.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "render.unsafe":
		cfg.Render.Unsafe = value
	case "render.hard_wraps":
		cfg.Render.HardWraps = value
	case "render.xhtml":
		cfg.Render.XHTML = value
	case "read.detect_languages":
		cfg.Read.DetectLanguages = value
	case "read.preserve_unknown_inline":
		cfg.Read.PreserveUnknownInline = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "render.width":
		cfg.Render.Width = &value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	return vars
}
