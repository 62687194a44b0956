package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdbridge/internal/configloader"
	"github.com/yaklabco/mdbridge/internal/logging"
	"github.com/yaklabco/mdbridge/pkg/config"
	"github.com/yaklabco/mdbridge/pkg/fsutil"
)

var (
	// ErrConfig is returned when configuration cannot be loaded.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage is returned for invalid flag values.
	ErrUsage = errors.New("invalid usage")
)

// stdinPath selects standard input where a file argument is accepted.
const stdinPath = "-"

// widthAuto resolves the wrap width from the terminal.
const widthAuto = "auto"

// commandContext returns the command's context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the configuration for cmd, with cliCfg holding the
// values set through command flags.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	logger.Debug("loading configuration",
		logging.FieldWorkingDir, workDir,
		logging.FieldConfigFile, configPath,
	)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Render.Format,
		logging.FieldWidth, cfg.Render.WrapWidth(),
		logging.FieldViaModel, cfg.ViaModel,
	)

	return cfg, nil
}

// readInput reads the named file, or standard input when path is empty or
// "-". The returned FileInfo is nil for standard input.
func readInput(ctx context.Context, cmd *cobra.Command, path string) ([]byte, *fsutil.FileInfo, error) {
	if path == "" || path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil, nil
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	logging.FromContext(ctx).Debug("read input", logging.FieldInput, path, logging.FieldBytes, len(content))
	return content, info, nil
}

// inputArg returns the single optional file argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// parseWidth converts a --width value to a wrap column. "auto" uses the
// width of the terminal on stdout, falling back to config.DefaultWidth.
func parseWidth(value string) (int, error) {
	if value == widthAuto {
		return terminalWidth(os.Stdout), nil
	}

	width, err := strconv.Atoi(value)
	if err != nil || width < 0 {
		return 0, fmt.Errorf("%w: width must be a non-negative integer or %q, got %q", ErrUsage, widthAuto, value)
	}
	return width, nil
}

// terminalWidth returns the column count of f, or config.DefaultWidth when f
// is not a terminal.
func terminalWidth(f *os.File) int {
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return config.DefaultWidth
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return config.DefaultWidth
	}
	return width
}

// colorMode returns the value of the root --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
