package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/redmark/internal/configloader"
	"github.com/yaklabco/redmark/internal/logging"
	"github.com/yaklabco/redmark/internal/ui/pretty"
	"github.com/yaklabco/redmark/pkg/config"
	"github.com/yaklabco/redmark/pkg/fsutil"
	"github.com/yaklabco/redmark/pkg/mdast"
	"github.com/yaklabco/redmark/pkg/parser"
	"github.com/yaklabco/redmark/pkg/printer"
)

// stdinName is how diagnostics refer to standard input.
const stdinName = "<stdin>"

type parseFlags struct {
	format     string
	output     string
	strict     bool
	showRanges bool
	width      int
	compact    bool
	summary    bool
	noContext  bool
	detectLang bool
	maxNesting int
	baseURL    string
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a Markdown document and print its tree",
		Long:  parseLongDescription,
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := fsutil.StdioPath
			if len(args) == 1 {
				input = args[0]
			}
			return runParse(cmd, input, flags)
		},
	}

	addParseFlags(cmd, flags)

	return cmd
}

const parseLongDescription = `Parse a Reddit-flavored Markdown document and print its syntax tree.

Reads from standard input when no file is given or the file is "-".
Parse diagnostics are reported on standard error; with --strict they
also make the command exit with status 2.

Examples:
  redmark parse post.md                  # Indented tree
  redmark parse --show-ranges post.md    # Include byte ranges
  redmark parse --format json post.md    # JSON tree for tooling
  cat post.md | redmark parse -          # Read from stdin
  redmark parse -o tree.yaml --format yaml post.md`

func addParseFlags(cmd *cobra.Command, flags *parseFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the tree to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when diagnostics are produced")
	cmd.Flags().BoolVar(&flags.showRanges, "show-ranges", false, "include the byte range of every node")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate text to fit this width (0 = terminal width)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print node statistics to stderr")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in diagnostics")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "detect the language of unlabeled code blocks")
	cmd.Flags().IntVar(&flags.maxNesting, "max-nesting", 0, "maximum nesting depth of quotes, lists and inlines")
	cmd.Flags().StringVar(&flags.baseURL, "reddit-base-url", "", "base URL for relative /r/ and /u/ links")
}

// cliConfig converts explicitly set flags into a config layer. Flags left at
// their defaults do not override files or the environment.
func cliConfig(cmd *cobra.Command, flags *parseFlags) *config.Config {
	cfg := &config.Config{Strict: flags.strict}
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Output.Format = config.OutputFormat(flags.format)
	}
	if changed("show-ranges") {
		cfg.Output.ShowRanges = config.Bool(flags.showRanges)
	}
	if changed("width") {
		cfg.Output.Width = flags.width
	}
	if changed("detect-lang") {
		cfg.Parser.DetectCodeLanguage = config.Bool(flags.detectLang)
	}
	if changed("max-nesting") {
		cfg.Parser.MaxNesting = flags.maxNesting
	}
	if changed("reddit-base-url") {
		cfg.Parser.RedditBaseURL = flags.baseURL
	}
	if changed(flagColor) {
		color, _ := cmd.Flags().GetString(flagColor)
		cfg.Output.Color = config.ColorMode(color)
	}

	return cfg
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	if debug, _ := cmd.Flags().GetBool(flagDebug); !debug {
		logger.SetLevel(logging.ParseLevel(result.Config.LogLevel))
	}

	return result, nil
}

func runParse(cmd *cobra.Command, input string, flags *parseFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	loaded, err := loadConfig(ctx, cmd, cliConfig(cmd, flags))
	if err != nil {
		return err
	}
	cfg := loaded.Config

	content, err := fsutil.ReadInput(ctx, input, cmd.InOrStdin(), 0)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	p := parser.New(parser.Options{
		MaxNesting:         cfg.Parser.MaxNesting,
		DetectCodeLanguage: config.BoolValue(cfg.Parser.DetectCodeLanguage),
		RedditBaseURL:      cfg.Parser.RedditBaseURL,
		Logger:             logger,
	})
	doc := p.Parse(string(content))

	displayName := input
	if input == fsutil.StdioPath {
		displayName = stdinName
	}

	logger.Debug("parsed document",
		logging.FieldInput, displayName,
		logging.FieldBytes, len(content),
		logging.FieldBlocks, len(doc.Blocks),
		logging.FieldDiagnostics, len(doc.Diagnostics),
	)

	if err := writeTree(ctx, cmd, doc, cfg, flags); err != nil {
		return err
	}

	reportDiagnostics(cmd, doc, displayName, cfg, flags)

	if cfg.Strict && len(doc.Diagnostics) > 0 {
		return ErrDiagnosticsFound
	}
	return nil
}

// writeTree prints the document to stdout, or atomically to --output.
func writeTree(ctx context.Context, cmd *cobra.Command, doc *mdast.Document, cfg *config.Config, flags *parseFlags) error {
	toFile := flags.output != "" && flags.output != fsutil.StdioPath

	opts := printer.Options{
		Format:     cfg.Output.Format,
		ShowRanges: config.BoolValue(cfg.Output.ShowRanges),
		Width:      cfg.Output.Width,
		Compact:    flags.compact,
	}

	if !toFile {
		out := cmd.OutOrStdout()
		if opts.Width == 0 {
			opts.Width = terminalWidth(out)
		}
		opts.Theme = pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Output.Color), out)).TreeTheme()

		if err := printer.Print(out, doc, opts); err != nil {
			return fmt.Errorf("print tree: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := printer.Print(&buf, doc, opts); err != nil {
		return fmt.Errorf("print tree: %w", err)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, flags.output, buf.Bytes(), 0)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logging.FromContext(ctx).Debug("output file",
		logging.FieldOutput, flags.output,
		"written", written,
	)
	return nil
}

// reportDiagnostics writes diagnostics and the optional summary to stderr.
func reportDiagnostics(cmd *cobra.Command, doc *mdast.Document, name string, cfg *config.Config, flags *parseFlags) {
	errOut := cmd.ErrOrStderr()
	styles := pretty.NewStyles(pretty.IsColorEnabled(string(cfg.Output.Color), errOut))

	if len(doc.Diagnostics) > 0 {
		writeString(errOut, styles.FormatFileHeader(name, len(doc.Diagnostics))+"\n")
		for _, diag := range doc.Diagnostics {
			writeString(errOut, styles.FormatDiagnostic(name, doc, diag, !flags.noContext))
		}
	}

	stats := printer.Summarize(doc)
	switch {
	case flags.summary:
		writeString(errOut, styles.FormatSummary(stats))
	case flags.output != "" && flags.output != fsutil.StdioPath:
		writeString(errOut, styles.FormatSummaryOneLine(stats))
	}
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		logging.Default().Debug("terminal size unavailable", logging.FieldError, err)
		return 0
	}
	return width
}

func writeString(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}
