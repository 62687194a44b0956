package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/mdbridge/internal/cli"
	"github.com/yaklabco/mdbridge/pkg/document"
	"github.com/yaklabco/mdbridge/pkg/fsutil"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "mdbridge" {
		t.Errorf("expected Use to be 'mdbridge', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedSubcommands := []string{"render", "dump", "check", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"render": {"to", "flavor", "width", "unsafe", "hard-wraps", "xhtml", "via-model",
			"detect-languages", "preserve-unknown-inline", "output", "backup"},
		"dump":  {"format", "flavor", "width", "detect-languages", "preserve-unknown-inline"},
		"check": {"flavor", "quiet", "summary"},
		"init":  {"force", "full", "user", "output"},
	}

	for name, flags := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(cli.BuildInfo{})
			subCmd, _, err := cmd.Find([]string{name})
			if err != nil {
				t.Fatalf("%s command not found: %v", name, err)
			}

			for _, flag := range flags {
				if subCmd.Flags().Lookup(flag) == nil {
					t.Errorf("expected flag %q on %s", flag, name)
				}
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})

	for _, flag := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent flag %q", flag)
		}
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"mismatch", cli.ErrRoundTripMismatch, cli.ExitMismatch},
		{"config", errors.Join(cli.ErrConfig, errors.New("bad flavor")), cli.ExitConfigError},
		{"usage", fmt.Errorf("%w: bad width", cli.ErrUsage), cli.ExitInvalidUsage},
		{"parse", fmt.Errorf("a.md: %w", document.ErrParse), cli.ExitParseError},
		{"not found", fmt.Errorf("%w: a.md", fsutil.ErrNotFound), cli.ExitIOError},
		{"modified", cli.ErrOutputModified, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromError(tt.err); got != tt.want {
				t.Errorf("ExitCodeFromError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestInitHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	initCmd, _, err := cmd.Find([]string{"init"})
	if err != nil {
		t.Fatalf("init command not found: %v", err)
	}

	for _, name := range []string{"MDBRIDGE_FLAVOR", "MDBRIDGE_FORMAT", "MDBRIDGE_WIDTH"} {
		if !strings.Contains(initCmd.Long, name) {
			t.Errorf("init help does not mention %s", name)
		}
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"render", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"mdbridge render", "Usage:", "Flags:", "Global Flags:", "--via-model", "-o, --output", `(default "80")`} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}
