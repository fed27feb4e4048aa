package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codalotl/mergediff/internal/chunk"
	"github.com/codalotl/mergediff/internal/config"
	"github.com/codalotl/mergediff/internal/diff"
	"github.com/codalotl/mergediff/internal/simplelogger"
)

// Version is the mergediff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// Exit codes, following diff(1).
const (
	ExitSame    = 0
	ExitDiffer  = 1
	ExitTrouble = 2
)

// defaultWidth is the side-by-side width when neither config nor the terminal gives one.
const defaultWidth = 120

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns an exit code and an error:
//   - ExitSame -> the inputs are identical (or help/version/config was printed); err == nil.
//   - ExitDiffer -> the inputs differ; err == nil.
//   - ExitTrouble -> err != nil: bad flags or arguments, unreadable input, or invalid configuration.
//
// Errors have already been written to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := args
	if len(argv) > 0 {
		argv = argv[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	var differ bool
	root := newRootCommand(&differ)
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errW)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(errW, "mergediff: %v\n", err)
		if !isRunError(err) {
			fmt.Fprintln(errW, "Run 'mergediff --help' for usage.")
		}
		return ExitTrouble, err
	}
	if differ {
		return ExitDiffer, nil
	}
	return ExitSame, nil
}

// runError marks errors from RunE, as opposed to usage errors (bad flags or arguments).
type runError struct{ error }

func (e runError) Unwrap() error { return e.error }

func isRunError(err error) bool {
	var r runError
	return errors.As(err, &r)
}

type flagValues struct {
	format     string
	color      string
	configPath string
	scanLimit  int
	context    int
	width      int
	timeout    time.Duration
	cacheDir   string
	showConfig bool
}

func newRootCommand(differ *bool) *cobra.Command {
	var fv flagValues
	cmd := &cobra.Command{
		Use:   "mergediff [flags] OLD NEW",
		Short: "Compare two text files line by line, highlighting changes within lines",
		Long: `mergediff compares OLD and NEW ("-" reads standard input) and prints the changed lines.

Settings are read from defaults, then ` + config.UserFile() + `, then the nearest ` + config.LocalFileName + `
above the working directory, then --config, then MERGEDIFF_* environment variables, then flags.
Set MERGEDIFF_LOG_FILE to log diagnostics to a file.

Exit status is 0 if the inputs are the same, 1 if they differ, and 2 on trouble.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if fv.showConfig {
				if len(args) != 0 {
					return fmt.Errorf("--show-config takes no arguments")
				}
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("expected 2 arguments (OLD NEW), got %d", len(args))
			}
			if args[0] == "-" && args[1] == "-" {
				return fmt.Errorf("only one of OLD and NEW may be standard input")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, fv)
			if err != nil {
				return runError{err}
			}
			if fv.showConfig {
				return config.WriteSources(cmd.OutOrStdout(), cfg)
			}
			different, err := compare(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], args[1], cfg)
			if err != nil {
				return runError{err}
			}
			*differ = different
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&fv.format, "format", "", "output format: "+strings.Join(config.Formats, ", "))
	f.StringVar(&fv.color, "color", "", "colorize output: auto, always, or never")
	f.StringVar(&fv.configPath, "config", "", "read settings from this JSON file")
	f.IntVar(&fv.scanLimit, "scan-limit", 0, "diff search depth before falling back to a faster, approximate diff (0 = unlimited)")
	f.IntVar(&fv.context, "context", 0, "unchanged lines of context around each change")
	f.IntVar(&fv.width, "width", 0, "side-by-side output width (0 = terminal width)")
	f.DurationVar(&fv.timeout, "timeout", 0, "time budget for the diff (0 = none)")
	f.StringVar(&fv.cacheDir, "cache-dir", "", "cache diff results in this directory")
	f.BoolVar(&fv.showConfig, "show-config", false, "print the effective settings and where each came from, then exit")
	return cmd
}

// loadConfig loads the configuration and applies the flags the user set.
func loadConfig(cmd *cobra.Command, fv flagValues) (config.Config, error) {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format, cfg.FormatProvidence = fv.format, config.FromFlag
	}
	if changed("color") {
		cfg.Color, cfg.ColorProvidence = fv.color, config.FromFlag
	}
	if changed("scan-limit") {
		cfg.ScanLimit, cfg.ScanLimitProvidence = fv.scanLimit, config.FromFlag
	}
	if changed("context") {
		cfg.Context, cfg.ContextProvidence = fv.context, config.FromFlag
	}
	if changed("width") {
		cfg.Width, cfg.WidthProvidence = fv.width, config.FromFlag
	}
	if changed("timeout") {
		cfg.Timeout, cfg.TimeoutProvidence = fv.timeout, config.FromFlag
	}
	if changed("cache-dir") {
		cfg.CacheDir, cfg.CacheDirProvidence = fv.cacheDir, config.FromFlag
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// compare diffs the files at oldPath and newPath, writes the result to out in cfg.Format, and reports whether they differ.
func compare(in io.Reader, out, errW io.Writer, oldPath, newPath string, cfg config.Config) (bool, error) {
	oldData, err := readInput(in, oldPath)
	if err != nil {
		return false, fmt.Errorf("read old file: %w", err)
	}
	newData, err := readInput(in, newPath)
	if err != nil {
		return false, fmt.Errorf("read new file: %w", err)
	}

	logger := simplelogger.New()
	dc := cfg.DiffConfig()
	dc.Logger = logger

	a, b := chunk.NewText(oldData), chunk.NewText(newData)
	start := time.Now()
	chunks := buildChunks(a, b, dc, cfg.CacheDir, logger)
	logger.Info("compared", "old", oldPath, "new", newPath, "lenA", a.Len(), "lenB", b.Len(), "chunks", len(chunks), "elapsed", time.Since(start))

	for _, c := range chunks {
		if !c.Precise {
			fmt.Fprintln(errW, "mergediff: diff budget exhausted; some changes may be larger than necessary")
			break
		}
	}

	switch cfg.Format {
	case "unified":
		if len(chunks) > 0 {
			fmt.Fprintf(out, "--- %s\n+++ %s\n", oldPath, newPath)
			_, err = io.WriteString(out, chunk.RenderUnified(a, b, chunks, cfg.Context, useColor(cfg.Color, out)))
		}
	case "side":
		width := cfg.Width
		if width == 0 {
			width = terminalWidth(out)
		}
		_, err = io.WriteString(out, chunk.RenderSideBySide(a, b, chunks, width))
	case "json":
		err = writeChunksJSON(out, chunks)
	case "patch":
		_, err = io.WriteString(out, diff.Patch(oldData, newData, chunk.Spans(chunks)))
	case "chunks":
		for _, c := range chunks {
			la, lb := a.LineAt(c.FromA), b.LineAt(c.FromB)
			if _, err = fmt.Fprintf(out, "%d,%d %s\n", la.Number, lb.Number, c); err != nil {
				break
			}
		}
	}
	if err != nil {
		return false, fmt.Errorf("write output: %w", err)
	}
	return len(chunks) > 0, nil
}

func readInput(in io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(in)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// useColor resolves a color setting against w. "auto" colors terminals unless NO_COLOR is set.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
