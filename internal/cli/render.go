package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbridge/internal/logging"
	"github.com/yaklabco/mdbridge/pkg/config"
	"github.com/yaklabco/mdbridge/pkg/document"
	"github.com/yaklabco/mdbridge/pkg/fsutil"
)

// ErrOutputModified is returned when the output file changed on disk between
// reading it as input and writing the rendered result over it.
var ErrOutputModified = errors.New("output file modified since it was read")

type renderFlags struct {
	to                    string
	flavor                string
	width                 string
	unsafe                bool
	hardWraps             bool
	xhtml                 bool
	viaModel              bool
	detectLanguages       bool
	preserveUnknownInline bool
	output                string
	backup                bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a Markdown document",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, inputArg(args), flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render a Markdown document as HTML, CommonMark XML, CommonMark or LaTeX.

Reads the named file, or standard input when no file (or "-") is given,
and writes the result to standard output unless --output is set.
Output files are replaced atomically and left untouched when the rendered
content is unchanged.

Examples:
  mdbridge render README.md                  # HTML to stdout
  mdbridge render --to commonmark doc.md     # Normalize to CommonMark
  mdbridge render --to latex --width 0 a.md  # LaTeX without wrapping
  mdbridge render --via-model doc.md         # Render after a model round trip
  cat doc.md | mdbridge render --to xml      # Read from stdin
  mdbridge render --to commonmark -o doc.md --backup doc.md`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.to, "to", "t", string(config.FormatHTML),
		"output format: html, xml, commonmark, latex")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"markdown flavor: commonmark, gfm")
	cmd.Flags().StringVarP(&flags.width, "width", "w", "80",
		"wrap column for commonmark and latex output; 0 disables wrapping, auto uses the terminal width")
	cmd.Flags().BoolVar(&flags.unsafe, "unsafe", false, "pass raw HTML through in html output")
	cmd.Flags().BoolVar(&flags.hardWraps, "hard-wraps", false, "render soft line breaks as hard breaks")
	cmd.Flags().BoolVar(&flags.xhtml, "xhtml", false, "emit XHTML style self-closing tags")
	cmd.Flags().BoolVar(&flags.viaModel, "via-model", false,
		"read the document into the block model and build it back before rendering")
	cmd.Flags().BoolVar(&flags.detectLanguages, "detect-languages", false,
		"guess the language of unlabelled code blocks when reading into the model")
	cmd.Flags().BoolVar(&flags.preserveUnknownInline, "preserve-unknown-inline", false,
		"keep unsupported inline content when reading into the model")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"keep a "+fsutil.BackupSuffix+" copy of an existing output file before replacing it")
}

// renderCLIConfig maps the flags that were explicitly set to a config layer.
func renderCLIConfig(cmd *cobra.Command, flags *renderFlags) (*config.Config, error) {
	cfg := &config.Config{
		ViaModel: flags.viaModel,
		Output:   flags.output,
	}

	if cmd.Flags().Changed("to") {
		cfg.Render.Format = config.OutputFormat(flags.to)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("width") {
		width, err := parseWidth(flags.width)
		if err != nil {
			return nil, err
		}
		cfg.Render.Width = &width
	}

	cfg.Render.Unsafe = flags.unsafe
	cfg.Render.HardWraps = flags.hardWraps
	cfg.Render.XHTML = flags.xhtml
	cfg.Read.DetectLanguages = flags.detectLanguages
	cfg.Read.PreserveUnknownInline = flags.preserveUnknownInline

	return cfg, nil
}

func runRender(cmd *cobra.Command, inputPath string, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg, err := renderCLIConfig(cmd, flags)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	proc, err := document.New(cfg)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	content, info, err := readInput(ctx, cmd, inputPath)
	if err != nil {
		return err
	}

	root, err := proc.Parse(ctx, content)
	if err != nil {
		return fmt.Errorf("%s: %w", displayPath(inputPath), err)
	}
	defer func() { _ = root.Close() }()

	var out bytes.Buffer
	if err := proc.Render(&out, root); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if cfg.Output == "" {
		if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if err := checkOverwrite(ctx, cfg.Output, inputPath, info); err != nil {
		return err
	}

	if flags.backup {
		created, err := fsutil.CreateBackup(ctx, cfg.Output)
		if err != nil {
			return fmt.Errorf("backup %s: %w", cfg.Output, err)
		}
		if created {
			logger.Debug("created backup", logging.FieldPath, fsutil.BackupPath(cfg.Output))
		}
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, cfg.Output, out.Bytes(), 0)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if written {
		logger.Info("wrote output",
			logging.FieldOutput, cfg.Output,
			logging.FieldFormat, proc.Format(),
			logging.FieldBytes, out.Len(),
		)
	} else {
		logger.Debug("output unchanged", logging.FieldOutput, cfg.Output)
	}

	return nil
}

// checkOverwrite refuses to replace the input file if it changed on disk
// after it was read.
func checkOverwrite(ctx context.Context, outputPath, inputPath string, info *fsutil.FileInfo) error {
	if info == nil || !samePath(outputPath, inputPath) {
		return nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return fmt.Errorf("check %s: %w", outputPath, err)
	}
	if modified {
		return fmt.Errorf("%w: %s", ErrOutputModified, outputPath)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func displayPath(path string) string {
	if path == "" || path == stdinPath {
		return "<stdin>"
	}
	return path
}
