package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/pablor21/boollike"
	"github.com/pablor21/boollike/config"
	"github.com/pablor21/boollike/generator"
	"github.com/pablor21/boollike/logger"
	"github.com/pablor21/boollike/types"
	"github.com/pablor21/boollike/utils"
	"github.com/spf13/cobra"
)

// errFailed is returned once the diagnostics have been printed
var errFailed = errors.New("boollike failed")

type options struct {
	configFile  string
	dir         string
	check       bool
	suffix      string
	logLevel    string
	noColor     bool
	concurrency int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "boollike [packages]",
		Short: "Generate Not, Bool and FromBool for two-variant enums",
		Long: `boollike scans Go packages for types annotated with @boollike and writes, next to each
annotated file, a <file>_boollike.go with a Not method and, when one constant is annotated
with @intofalse, a Bool method and a <Type>FromBool function.

Packages are import path patterns ("./...") or file globs ("models/**/*.go", "!models/internal").
Without arguments the packages of the configuration file are used, "." by default.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "config file (default "+config.DefaultFileName+" in the working directory, if present)")
	f.StringVarP(&opts.dir, "dir", "C", "", "directory to run in")
	f.BoolVar(&opts.check, "check", false, "report out of date generated files without writing them")
	f.StringVar(&opts.suffix, "suffix", "", "generated file suffix (default _boollike.go)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error or none")
	f.BoolVar(&opts.noColor, "no-color", noColorEnv(), "disable colored output")
	f.IntVar(&opts.concurrency, "concurrency", 0, "files written in parallel (default GOMAXPROCS)")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(opts, args)
	if err != nil {
		return err
	}

	logger.SetupLogger(utils.DerefPtr(cfg.LogLevel, logger.LogLevelInfo))
	logger.SetLogTag("boollike")
	pctx := types.NewProcessContext(cfg, logger.NewLogger(cmd.ErrOrStderr()))

	report, err := boollike.Run(cmd.Context(), pctx, opts.check)
	if err != nil {
		return err
	}

	au := colors(opts.noColor)
	printReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), au, report)
	if report.Failed() {
		return errFailed
	}
	return nil
}

// loadConfig reads the configuration file and applies the command line over it
func loadConfig(opts *options, args []string) (*config.Config, error) {
	dir := opts.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	path := opts.configFile
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if path == "" && utils.FileExists(filepath.Join(dir, config.DefaultFileName)) {
		path = filepath.Join(dir, config.DefaultFileName)
	}

	var cfg *config.Config
	if path != "" {
		cfg, err = config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.NewDefaultConfig()
		cfg.Dir = dir
	}

	cfg.Merge(&config.Config{
		Scanning:   config.ScanningConfig{Packages: args},
		Generation: config.GenerationConfig{FileSuffix: opts.suffix, Concurrency: opts.concurrency},
	})
	if opts.logLevel != "" {
		lvl, err := logger.ParseLogLevel(opts.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = utils.Ptr(lvl)
	}
	if len(args) > 0 {
		// command line patterns are relative to the working directory, not the config file
		cfg.Dir = dir
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func printReport(stdout, stderr io.Writer, au *aurora.Aurora, report *boollike.Report) {
	for _, d := range report.Result.Diagnostics {
		fmt.Fprintf(stderr, "%s%s\n", au.Red("error: ").Bold(), d)
	}
	for _, d := range report.Drifts {
		fmt.Fprintf(stderr, "%s%s\n", au.Yellow("out of date: ").Bold(), d.Path)
		printDiff(stderr, au, d)
	}

	if s := report.Summary; s != nil {
		fmt.Fprintln(stdout, au.Faint(fmt.Sprintf("%d written, %d unchanged, %d removed",
			len(s.Written), len(s.Unchanged), len(s.Removed))))
	}
}

func printDiff(w io.Writer, au *aurora.Aurora, d generator.Drift) {
	for _, line := range strings.Split(strings.TrimRight(d.Diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(w, au.Bold(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, au.Green(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, au.Red(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(w, au.Cyan(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}

func colors(noColor bool) *aurora.Aurora {
	return aurora.New(aurora.WithColors(!noColor))
}

// noColorEnv honors the NO_COLOR convention
func noColorEnv() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
