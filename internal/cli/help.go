package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdbridge/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:     plain,
			Heading:     plain,
			Subcommand:  plain,
			Flag:        plain,
			Description: plain,
			Example:     plain,
			Dim:         plain,
		}
	}

	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	help   *template.Template
	usage  *template.Template
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]
{{- end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ subcommand (pad .Name .NamePadding) }} {{ description .Short }}
{{- end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ command .CommandPath }}

{{ with or .Long .Short }}{{ long . }}

{{ end }}{{ template "usage" . }}`

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	formatter := &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"command":     formatter.styles.Command.Render,
		"heading":     formatter.styles.Heading.Render,
		"subcommand":  formatter.styles.Subcommand.Render,
		"description": formatter.styles.Description.Render,
		"flags":       formatter.formatFlags,
		"long":        formatter.formatLong,
		"pad":         pad,
	}

	formatter.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	formatter.help = template.Must(template.Must(formatter.usage.Clone()).New("help").Parse(helpTemplate))

	return formatter
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// inherits both functions, so subcommands need no separate call.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := h.usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// formatLong trims trailing whitespace and dims the example lines of a long
// description. Example lines are the indented lines after "Examples:".
func (h *HelpFormatter) formatLong(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")

	inExamples := false
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "Examples:":
			inExamples = true
			line = h.styles.Heading.Render(line)
		case inExamples && strings.HasPrefix(line, "  "):
			line = h.styles.Example.Render(line)
		case line == "":
		default:
			inExamples = false
		}
		lines[i] = line
	}

	return strings.Join(lines, "\n")
}

// formatFlags renders one line per visible flag, with the names aligned in
// a column.
func (h *HelpFormatter) formatFlags(flags *pflag.FlagSet) string {
	type row struct {
		names string
		width int
		usage string
	}

	var rows []row
	column := 0
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		var names strings.Builder
		if flag.Shorthand != "" {
			names.WriteString(h.styles.Flag.Render("-"+flag.Shorthand) + ", ")
		} else {
			names.WriteString("    ")
		}
		names.WriteString(h.styles.Flag.Render("--" + flag.Name))

		plain := "    --" + flag.Name
		if typeName, _ := pflag.UnquoteUsage(flag); typeName != "" {
			names.WriteString(" " + h.styles.Dim.Render(typeName))
			plain += " " + typeName
		}

		usage := flag.Usage
		if flag.DefValue != "" && flag.DefValue != "false" && flag.DefValue != "[]" {
			usage += h.styles.Dim.Render(fmt.Sprintf(" (default %q)", flag.DefValue))
		}

		width := runewidth.StringWidth(plain)
		column = max(column, width)
		rows = append(rows, row{names: names.String(), width: width, usage: usage})
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+r.names+strings.Repeat(" ", column-r.width)+"   "+
			h.styles.Description.Render(r.usage))
	}
	return strings.Join(lines, "\n")
}

// pad right-pads s with spaces to width display columns.
func pad(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
