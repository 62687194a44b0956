package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbridge/internal/logging"
	"github.com/yaklabco/mdbridge/internal/ui/pretty"
	"github.com/yaklabco/mdbridge/pkg/config"
	"github.com/yaklabco/mdbridge/pkg/document"
)

// ErrRoundTripMismatch is returned when at least one document renders
// differently after a trip through the block model, or fails to parse.
var ErrRoundTripMismatch = errors.New("round-trip mismatch")

type checkFlags struct {
	flavor  string
	quiet   bool
	summary bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Verify documents survive a round trip through the block model",
		Long: `Verify that documents render to the same HTML after being read into the
block model and built back into a tree.

Each file is parsed, rendered as HTML, read into the model, rebuilt and
rendered again. Files whose two renderings differ are reported with a diff.
Documents that use constructs without a model type (GFM tables, for
example) are expected to differ. With no files, standard input is checked.

Exits with status 1 if any file differs or fails to parse.

Examples:
  mdbridge check README.md docs/*.md
  mdbridge check --flavor gfm --summary *.md
  mdbridge check --quiet *.md              # Only report mismatches`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark),
		"markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "only report files that differ or fail")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block instead of a one-line summary")

	return cmd
}

func runCheck(cmd *cobra.Command, paths []string, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
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

	if len(paths) == 0 {
		paths = []string{stdinPath}
	}

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))

	var stats pretty.CheckStats
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("check: %w", err)
		}

		stats.FilesChecked++

		result, err := checkFile(ctx, cmd, proc, path)
		if err != nil {
			stats.FilesFailed++
			logger.Debug("check failed", logging.FieldPath, path, logging.FieldError, err)
			if err := writeString(out, styles.FilePath.Render(displayPath(path))+" "+
				styles.Error.Render(err.Error())+"\n"); err != nil {
				return err
			}
			continue
		}

		if !result.Equal() {
			stats.FilesMismatched++
		} else if flags.quiet {
			continue
		}

		if err := writeString(out, styles.FormatRoundTrip(displayPath(path), result)); err != nil {
			return err
		}
	}

	summary := styles.FormatCheckSummaryOneLine(stats)
	if flags.summary {
		summary = styles.FormatCheckSummary(stats)
	}
	if err := writeString(out, summary); err != nil {
		return err
	}

	logger.Debug("check complete",
		logging.FieldFilesChecked, stats.FilesChecked,
		logging.FieldFilesMismatched, stats.FilesMismatched,
	)

	if stats.FilesMismatched > 0 || stats.FilesFailed > 0 {
		return ErrRoundTripMismatch
	}
	return nil
}

func checkFile(ctx context.Context, cmd *cobra.Command, proc *document.Processor, path string) (document.RoundTrip, error) {
	ctx = logging.WithFields(ctx, logging.FieldPath, displayPath(path))

	content, _, err := readInput(ctx, cmd, path)
	if err != nil {
		return document.RoundTrip{}, err
	}

	root, err := proc.Parse(ctx, content)
	if err != nil {
		return document.RoundTrip{}, err
	}
	defer func() { _ = root.Close() }()

	return proc.CheckRoundTrip(ctx, root)
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
