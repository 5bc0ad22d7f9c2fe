package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yaklabco/redmark/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "redmark" {
		t.Errorf("expected Use to be 'redmark', got %q", cmd.Use)
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

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"parse", "check", "init", "config", "version"} {
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

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	expectedFlags := []string{
		"format",
		"output",
		"strict",
		"show-ranges",
		"width",
		"compact",
		"summary",
		"no-context",
		"detect-lang",
		"max-nesting",
		"reddit-base-url",
	}

	for _, flagName := range expectedFlags {
		if parseCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("expected flag %q to exist on parse command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"version=1.2.3", "commit=abc123", "built=2024-01-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("version output %q does not contain %q", out.String(), want)
		}
	}
}

func TestParseCommandArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	parseCmd, _, err := cmd.Find([]string{"parse"})
	if err != nil {
		t.Fatalf("parse command not found: %v", err)
	}

	if err := parseCmd.Args(parseCmd, nil); err != nil {
		t.Errorf("parse should accept no args (stdin), got error: %v", err)
	}
	if err := parseCmd.Args(parseCmd, []string{"post.md"}); err != nil {
		t.Errorf("parse should accept one file, got error: %v", err)
	}
	if err := parseCmd.Args(parseCmd, []string{"a.md", "b.md"}); err == nil {
		t.Error("parse should reject two files")
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetArgs([]string{"parse", "--help"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "redmark parse [file|-]", "Flags:", "--show-ranges", "Global Flags:", "--config"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output does not contain %q:\n%s", want, out.String())
		}
	}
}
