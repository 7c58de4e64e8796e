package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version = "dev"

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, errAborted) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run builds a fresh root command and executes it with args.
func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "A CLI for counting lines in files",
		Long: `line-count counts the lines of every file directly inside a directory
and prints them sorted by count, one "<count>: <path>" line per file.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Flags parsed fine; runtime errors should not print usage.
			cmd.SilenceUsage = true

			usedConfig, err := initConfig(v, cfgFile)
			if err != nil {
				return err
			}
			opts := loadOptions(v)
			logger := newLogger(stderr, opts.Verbose)
			if usedConfig != "" {
				logger.Debug("using config file", "path", usedConfig)
			}
			if err := opts.validate(); err != nil {
				return err
			}
			return countDirectory(cmd.Context(), stdout, stderr, opts, logger)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/line-count/config.toml)")

	// Source
	flags.StringP("directory", "d", "", "Sets the directory to count lines in files (a path or git URL)")
	flags.Bool("interactive", false, "Pick the directory with an interactive fuzzy finder")

	// Filtering
	flags.StringP("include", "i", "", "Only count entries matching these patterns (comma-separated, e.g. *.rs,*.go)")
	flags.StringP("exclude", "e", "", "Skip entries matching these patterns (comma-separated)")
	flags.Bool("skip-hidden", false, "Skip hidden entries")
	flags.Bool("gitignore", false, "Skip entries ignored by the directory's .gitignore")

	// Processing
	flags.Bool("sort-desc", false, "If true, sorts by count desc, otherwise sorts by count asc")
	flags.IntP("threads", "t", 0, "Number of files counted in parallel (0 for one per CPU)")
	flags.Bool("keep-going", false, "Report entries that cannot be counted instead of aborting")

	// Output
	flags.StringP("output", "o", formatText, "Output format: text, json, or yaml")
	flags.Bool("summary", false, "Append totals to the text report")
	flags.StringP("file", "f", "", "Save output to specified file")
	flags.BoolP("clipboard", "c", false, "Copy output to clipboard")
	flags.String("pdf", "", "Save output as PDF")
	flags.BoolP("verbose", "v", false, "Log progress to stderr")

	if err := bindFlags(v, flags); err != nil {
		panic(err)
	}

	return cmd
}

// newLogger returns a text logger on w; warnings only unless verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// countDirectory resolves the source directory, counts its entries and
// writes the report.
func countDirectory(ctx context.Context, stdout, stderr io.Writer, opts options, logger *slog.Logger) error {
	dir := opts.Directory
	if opts.Interactive {
		picked, err := runInteractiveFinder()
		if err != nil {
			return err
		}
		dir = picked
	}

	if isGitURL(dir) {
		progress := io.Discard
		if opts.Verbose {
			progress = stderr
		}
		tempDir, err := cloneGitRepo(ctx, dir, progress, logger)
		if err != nil {
			return err
		}
		defer func() {
			logger.Debug("cleaning up temporary directory", "dir", tempDir)
			_ = os.RemoveAll(tempDir)
		}()
		dir = tempDir
		opts.Exclude += ",.git"
	}

	filter, err := newEntryFilter(dir, opts, logger)
	if err != nil {
		return err
	}

	paths, err := enumerateDirectory(dir, filter)
	if err != nil {
		return err
	}
	logger.Debug("counting entries", "dir", dir, "entries", len(paths), "threads", opts.Threads)

	counts, err := countAll(ctx, paths, opts.Threads, opts.KeepGoing)
	if err != nil {
		return err
	}

	sortCounts(counts, opts.SortDesc)
	annotateLanguages(counts, loadLanguages(logger))
	summary := summarize(counts)

	if opts.PDF != "" {
		if err := generatePDF(counts, summary, dir, opts.PDF); err != nil {
			return err
		}
		logger.Info("report saved", "path", opts.PDF)
	} else {
		report, err := renderReport(counts, opts.Output, opts.Summary)
		if err != nil {
			return err
		}
		if err := writeReport(stdout, report, opts, logger); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d entries could not be counted", summary.Failed, len(counts))
	}
	return nil
}

// loadLanguages loads languages.yml from the config directories. Detection
// is disabled when the file is missing or invalid.
func loadLanguages(logger *slog.Logger) *LoadedLanguageData {
	path := findLanguageFile(configDirs())
	if path == "" {
		return nil
	}
	ld, err := loadLanguageData(path)
	if err != nil {
		logger.Warn("could not load language definitions", "error", err)
		return nil
	}
	logger.Debug("loaded language definitions", "path", path, "languages", len(ld.Langs))
	return ld
}
