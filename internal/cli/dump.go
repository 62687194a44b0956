package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbridge/internal/logging"
	"github.com/yaklabco/mdbridge/internal/ui/pretty"
	"github.com/yaklabco/mdbridge/pkg/config"
	"github.com/yaklabco/mdbridge/pkg/document"
	"github.com/yaklabco/mdbridge/pkg/model"
)

// Dump formats.
const (
	dumpFormatTree    = "tree"
	dumpFormatYAML    = "yaml"
	dumpFormatOutline = "outline"
)

type dumpFlags struct {
	format                string
	flavor                string
	width                 string
	detectLanguages       bool
	preserveUnknownInline bool
}

func newDumpCommand() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Show the structure of a Markdown document",
		Long: `Show the structure of a Markdown document.

The tree format prints the parsed document tree, one node per line with its
fields. The yaml format prints the blocks and inlines the document reads
into, which is what the model round trip preserves. The outline format lists
the headings of the block model, indented by level.

Examples:
  mdbridge dump README.md                  # Document tree
  mdbridge dump --format yaml README.md    # Block model as YAML
  mdbridge dump -f outline README.md       # Heading outline
  mdbridge dump --flavor gfm --width auto  # Tree from stdin, fit to terminal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, inputArg(args), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", dumpFormatTree, "output format: tree, yaml, outline")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.width, "width", "w", "0",
		"truncate tree lines to this many columns; 0 disables truncation, auto uses the terminal width")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false,
		"guess the language of unlabelled code blocks")
	cmd.Flags().BoolVar(&flags.preserveUnknownInline, "preserve-unknown-inline", false,
		"keep unsupported inline content in the model")

	return cmd
}

func runDump(cmd *cobra.Command, inputPath string, flags *dumpFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	switch flags.format {
	case dumpFormatTree, dumpFormatYAML, dumpFormatOutline:
	default:
		return fmt.Errorf("%w: format must be %s, %s or %s, got %q",
			ErrUsage, dumpFormatTree, dumpFormatYAML, dumpFormatOutline, flags.format)
	}

	width, err := parseWidth(flags.width)
	if err != nil {
		return err
	}

	cliCfg := &config.Config{
		Read: config.ReadConfig{
			DetectLanguages:       flags.detectLanguages,
			PreserveUnknownInline: flags.preserveUnknownInline,
		},
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	proc, err := document.New(cfg)
	if err != nil {
		return err
	}

	content, _, err := readInput(ctx, cmd, inputPath)
	if err != nil {
		return err
	}

	root, err := proc.Parse(ctx, content)
	if err != nil {
		return fmt.Errorf("%s: %w", displayPath(inputPath), err)
	}
	defer func() { _ = root.Close() }()

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout()))

	var out []byte
	switch flags.format {
	case dumpFormatOutline:
		blocks := proc.Read(root)
		out = []byte(styles.FormatOutline(blocks))
		logger.Debug("read document", logging.FieldBlocks, len(blocks))
	case dumpFormatYAML:
		blocks := proc.Read(root)
		out, err = model.MarshalYAML(blocks)
		if err != nil {
			return fmt.Errorf("marshal model: %w", err)
		}
		logger.Debug("read document", logging.FieldBlocks, len(blocks))
	default:
		out = []byte(pretty.NewTreeFormatter(styles, width).FormatTree(root))
		logger.Debug("dumped tree", logging.FieldNodes, pretty.CountNodes(root))
	}

	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
