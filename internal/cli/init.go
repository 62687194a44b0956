package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdbridge/internal/configloader"
	"github.com/yaklabco/mdbridge/internal/logging"
	"github.com/yaklabco/mdbridge/pkg/config"
	"github.com/yaklabco/mdbridge/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdbridge configuration file",
		Long: `Create a new .mdbridge.yml configuration file in the current directory
with the default settings. The file can be customized to change the flavor,
the default output format and wrap width, and how documents are read into
the block model.

Examples:
  mdbridge init                      Create minimal .mdbridge.yml
  mdbridge init --full               Write every setting with its default
  mdbridge init --user               Create the per-user config file instead
  mdbridge init --output custom.yml  Write to a custom file path` + envVarHelp(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the user configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.ProjectConfigName+")")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	outputPath, err := initOutputPath(flags)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template includes every setting with its default")
	}

	logger.Info("customize your configuration by editing the file")
	logger.Info("environment variables override it; run 'mdbridge init --help' to list them")

	return nil
}

// envVarHelp lists the environment variables that override config files.
func envVarHelp() string {
	var builder strings.Builder
	builder.WriteString("\n\nEnvironment variables (override config files, overridden by flags):\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&builder, "  %-32s %s\n", v.Name, v.Description)
	}
	return strings.TrimSuffix(builder.String(), "\n")
}

// initOutputPath picks the file to write from the flags.
func initOutputPath(flags *initFlags) (string, error) {
	switch {
	case flags.output != "":
		return flags.output, nil
	case flags.user:
		dir := configloader.UserConfigDir()
		if dir == "" {
			return "", fmt.Errorf("%w: cannot determine user config directory", ErrUsage)
		}
		return filepath.Join(dir, configloader.UserConfigName), nil
	default:
		return configloader.ProjectConfigName, nil
	}
}
