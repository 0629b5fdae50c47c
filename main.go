// namecheck scores how well class and function names match their implementation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/namecheck/internal/analyze"
	"github.com/phobologic/namecheck/internal/cache"
	"github.com/phobologic/namecheck/internal/config"
	"github.com/phobologic/namecheck/internal/discover"
	"github.com/phobologic/namecheck/internal/model"
	"github.com/phobologic/namecheck/internal/parse"
	"github.com/phobologic/namecheck/internal/ranking"
	"github.com/phobologic/namecheck/internal/report"
	"github.com/phobologic/namecheck/internal/toon"
)

var version = "dev"

// defaultSample is analyzed when no path is given.
const defaultSample = "all_func.py"

// errReported signals a failure whose message was already written to stdout.
var errReported = errors.New("analysis failed")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

type options struct {
	detailed   bool
	save       bool
	noColor    bool
	verbose    bool
	output     string
	worst      int
	cachePath  string
	configPath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "namecheck [file]",
		Short: "Score how well class and function names match their implementation",
		Long: `namecheck parses a Python source file and scores every class and free
function name against its implementation: the docstring plus method and
attribute names for classes, the docstring plus full source for functions.

Each name gets a relevance score between 0 and 1 and a reason. Names scoring
below 0.70 also get a rename suggestion built from the implementation's most
frequent words.

Settings are read from .namecheck.toml in the working directory when present;
flags given on the command line take precedence.`,
		Example: `  namecheck models.py
  namecheck -d models.py             # include rename suggestions
  namecheck -s models.py             # also write models_analysis.json
  namecheck -o json models.py        # JSON on stdout
  namecheck -w 5 models.py           # list the 5 weakest names
  namecheck init                     # write a default .namecheck.toml`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSample
			if len(args) > 0 {
				path = args[0]
			}
			return runAnalyze(cmd, path, &opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.BoolVarP(&opts.detailed, "detailed", "d", false, "show rename suggestions")
	f.BoolVarP(&opts.save, "save", "s", false, "write results to <basename>_analysis.json next to the file")
	f.StringVarP(&opts.output, "output", "o", config.FormatText, "output format ("+strings.Join(config.Formats(), ", ")+")")
	f.IntVarP(&opts.worst, "worst", "w", 0, "list the N lowest-scoring names")
	f.BoolVar(&opts.noColor, "no-color", false, "disable styled output")
	f.StringVar(&opts.cachePath, "cache", "", "cache file path")
	f.StringVar(&opts.configPath, "config", "", "config file path (default ./"+config.FileName+")")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging to stderr")

	cmd.AddCommand(newInitCmd(stdout, stderr))
	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *options, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyConfig(cmd, opts, cfg)
	if !config.ValidFormat(opts.output) {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}
	if opts.worst < 0 {
		return fmt.Errorf("--worst must not be negative, got %d", opts.worst)
	}

	logger := newLogger(stderr, opts.verbose)

	entry, err := discover.File(path)
	if err != nil {
		return err
	}

	text := opts.output == config.FormatText
	if text {
		_, _ = fmt.Fprintf(stdout, "Analyzing: %s\n", path)
	}

	analyzer := analyze.New(
		analyze.WithLogger(logger),
		analyze.WithExclude(cfg.ExcludeMatcher()),
	)

	r, err := analyzeEntry(cmd, analyzer, entry, opts.cachePath, cfg.Exclude, logger)
	if err != nil {
		if errors.Is(err, parse.ErrParse) && !text {
			if werr := writeOutput(stdout, opts.output, path, &model.ErrorReport{Error: err.Error()}); werr != nil {
				return werr
			}
			return errReported
		}
		return err
	}

	if text {
		err = report.WriteText(stdout, r, report.TextOptions{
			Detailed: opts.detailed,
			Color:    !opts.noColor,
			Worst:    ranking.Lowest(r, opts.worst),
		})
	} else {
		err = writeOutput(stdout, opts.output, path, r)
	}
	if err != nil {
		return err
	}

	if opts.save {
		out := discover.OutputPath(path)
		if err := report.Save(out, r); err != nil {
			return err
		}
		if text {
			_, _ = fmt.Fprintf(stdout, "\nResults saved to %s\n", out)
		} else {
			logger.Info("results saved", "path", out)
		}
	}
	return nil
}

// analyzeEntry runs the analyzer, consulting the cache when one is configured.
func analyzeEntry(cmd *cobra.Command, a *analyze.Analyzer, entry discover.FileEntry, cachePath string, exclude []string, logger *slog.Logger) (*model.Report, error) {
	ctx := cmd.Context()
	if cachePath == "" {
		return a.AnalyzeFile(ctx, entry.Path)
	}

	source, err := os.ReadFile(entry.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", entry.Path, err)
	}
	fp := cache.Fingerprint(source, exclude...)
	if r, ok := cache.Lookup(cachePath, entry.Abs, fp); ok {
		logger.Debug("cache hit", "cache", cachePath, "fingerprint", fp)
		return r, nil
	}

	r, err := a.AnalyzeSource(ctx, entry.Language, entry.Path, source)
	if err != nil {
		return nil, err
	}
	if err := cache.Store(cachePath, entry.Abs, fp, r); err != nil {
		logger.Warn("cache not written", "cache", cachePath, "err", err)
	}
	return r, nil
}

func writeOutput(w io.Writer, format, path string, v any) error {
	switch format {
	case config.FormatJSON:
		return report.WriteJSON(w, v)
	case config.FormatYAML:
		return report.WriteYAML(w, v)
	case config.FormatTOON:
		var out string
		switch doc := v.(type) {
		case *model.Report:
			out = toon.Encode(path, doc)
		case *model.ErrorReport:
			out = toon.EncodeError(doc)
		default:
			return fmt.Errorf("toon: unsupported document %T", v)
		}
		_, err := fmt.Fprintln(w, out)
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// loadConfig reads an explicit config path, which must exist, or the default
// path, which may be absent.
func loadConfig(explicit string) (*config.Config, error) {
	if explicit == "" {
		return config.LoadFrom(config.Path())
	}
	if _, err := os.Stat(explicit); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return config.LoadFrom(explicit)
}

// applyConfig fills options from cfg unless the flag was set explicitly.
func applyConfig(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("detailed") {
		opts.detailed = cfg.Detailed
	}
	if !flags.Changed("output") && cfg.Output != "" {
		opts.output = cfg.Output
	}
	if !flags.Changed("no-color") {
		opts.noColor = !cfg.Color
	}
	if !flags.Changed("worst") {
		opts.worst = cfg.Worst
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
