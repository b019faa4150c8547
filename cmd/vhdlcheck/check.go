package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vhdlcheck/internal/diag"
	"vhdlcheck/internal/diagfmt"
	"vhdlcheck/internal/driver"
	"vhdlcheck/internal/observ"
	"vhdlcheck/internal/pipeline"
	"vhdlcheck/internal/project"
	"vhdlcheck/internal/version"
)

func newCheckCmd() *cobra.Command {
	defaults := project.DefaultConfig().Check
	cmd := &cobra.Command{
		Use:   "check [flags] [document|directory...]",
		Short: "Report duplicate declarations in unit documents",
		Long: `Check every design unit of the given unit documents (.json, .msgpack, .mp)
for homographs: names declared twice in one declarative region. Directories are
searched with the [paths] globs of vhdlcheck.toml. Without arguments the project
root (or the working directory) is searched.`,
		RunE: runCheck,
	}
	cmd.Flags().String("format", defaults.Format, "output format (pretty|short|json|sarif)")
	cmd.Flags().Int("max-diagnostics", defaults.MaxDiagnostics, "maximum number of diagnostics to report (0 = no limit)")
	cmd.Flags().Int("jobs", defaults.Jobs, "max parallel workers (0 = auto)")
	cmd.Flags().Bool("sort", defaults.Sort, "sort diagnostics by position instead of declaration order")
	cmd.Flags().Bool("cache", defaults.Cache, "reuse diagnostics of unchanged documents from the disk cache")
	cmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().Bool("notes", true, "include notes pointing at the first declaration")
	cmd.Flags().Int8("context", 0, "lines of source context around each snippet (pretty)")
	cmd.Flags().Uint8("width", 0, "truncate snippet lines to this width (pretty, 0 = no limit)")
	cmd.Flags().String("ui", "auto", "progress UI for multi-document runs (auto|on|off)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	return cmd
}

// checkSettings is the manifest overlaid with explicitly set flags.
type checkSettings struct {
	format         diagfmt.Format
	maxDiagnostics int
	jobs           int
	sort           bool
	cache          bool
	paths          project.PathsConfig
	root           string
}

// resolveCheckSettings applies the precedence flag > manifest > default.
// m may be nil when no manifest was found.
func resolveCheckSettings(cmd *cobra.Command, m *project.Manifest, wd string) (checkSettings, error) {
	cfg := project.DefaultConfig()
	root := wd
	if m != nil {
		cfg = m.Config
		root = m.Root
	}
	flags := cmd.Flags()

	var err error
	if flags.Changed("format") {
		if cfg.Check.Format, err = flags.GetString("format"); err != nil {
			return checkSettings{}, err
		}
	}
	if flags.Changed("max-diagnostics") {
		if cfg.Check.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return checkSettings{}, err
		}
	}
	if flags.Changed("jobs") {
		if cfg.Check.Jobs, err = flags.GetInt("jobs"); err != nil {
			return checkSettings{}, err
		}
	}
	if flags.Changed("sort") {
		if cfg.Check.Sort, err = flags.GetBool("sort"); err != nil {
			return checkSettings{}, err
		}
	}
	if flags.Changed("cache") {
		if cfg.Check.Cache, err = flags.GetBool("cache"); err != nil {
			return checkSettings{}, err
		}
	}

	format, err := diagfmt.ParseFormat(cfg.Check.Format)
	if err != nil {
		return checkSettings{}, err
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return checkSettings{}, fmt.Errorf("--max-diagnostics must not be negative")
	}
	if cfg.Check.Jobs < 0 {
		return checkSettings{}, fmt.Errorf("--jobs must not be negative")
	}
	return checkSettings{
		format:         format,
		maxDiagnostics: cfg.Check.MaxDiagnostics,
		jobs:           cfg.Check.Jobs,
		sort:           cfg.Check.Sort,
		cache:          cfg.Check.Cache,
		paths:          cfg.Paths,
		root:           root,
	}, nil
}

// collectDocuments expands args into document paths. Files are taken as
// given; directories are searched with the configured globs.
func collectDocuments(args []string, s checkSettings) ([]string, error) {
	if len(args) == 0 {
		args = []string{s.root}
	}
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := project.CollectFiles(arg, s.paths)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	if len(out) == 0 {
		return nil, errors.New("no unit documents found")
	}
	return out, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	manifest, err := project.LoadManifest(wd)
	if err != nil && !errors.Is(err, project.ErrNoManifest) {
		return err
	}
	settings, err := resolveCheckSettings(cmd, manifest, wd)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if noWarnings && warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	loadIdx := timer.Begin("load")
	files, err := collectDocuments(args, settings)
	timer.End(loadIdx, fmt.Sprintf("%d documents", len(files)))
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: settings.maxDiagnostics,
		Jobs:           settings.jobs,
		Timer:          timer,
	}
	if settings.cache {
		cache, cacheErr := driver.OpenDiskCache("vhdlcheck")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	if clearCache && opts.Cache != nil {
		if err := opts.Cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	runIdx := timer.Begin("run")
	var res *driver.Result
	var rec *pipeline.Recorder
	if len(files) > 1 && shouldUseTUI(mode) {
		res, err = runCheckWithUI(cmd.Context(), "checking unit documents", files, opts)
	} else {
		rec = &pipeline.Recorder{}
		opts.Progress = rec
		res, err = driver.CheckPaths(cmd.Context(), files, opts)
	}
	timer.End(runIdx, "")
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	res.FileSet.SetBaseDir(settings.root)

	bag := res.Bag(settings.maxDiagnostics)
	if noWarnings {
		bag.Filter(func(d *diag.Diagnostic) bool {
			return d.Severity >= diag.SevError
		})
	}
	if settings.sort {
		bag.Sort()
	}

	fmtOpts, err := outputOptions(cmd, settings)
	if err != nil {
		return err
	}

	renderIdx := timer.Begin("render")
	if showTimings && (settings.format == diagfmt.FormatJSON || settings.format == diagfmt.FormatSarif) {
		driver.AppendTimingDiagnostic(bag, timer, len(files))
	}
	err = diagfmt.Write(cmd.OutOrStdout(), settings.format, bag, res.FileSet, fmtOpts)
	timer.End(renderIdx, "")
	if err != nil {
		return fmt.Errorf("failed to format diagnostics: %w", err)
	}

	if settings.format == diagfmt.FormatPretty {
		if n := countErrors(bag); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d error(s) in %d document(s)\n", n, len(files))
		}
		if n := countCached(rec); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d document(s) reused from the disk cache\n", n, len(files))
		}
	}
	if showTimings {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	if bag.HasErrors() || res.HasErrors() || (warningsAsErrors && bag.HasWarnings()) {
		return errHasErrors
	}
	return nil
}

func outputOptions(cmd *cobra.Command, s checkSettings) (diagfmt.Options, error) {
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return diagfmt.Options{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return diagfmt.Options{}, fmt.Errorf("invalid --path-mode value %q", pathModeStr)
	}
	notes, err := cmd.Flags().GetBool("notes")
	if err != nil {
		return diagfmt.Options{}, fmt.Errorf("failed to get notes flag: %w", err)
	}
	contextLines, err := cmd.Flags().GetInt8("context")
	if err != nil {
		return diagfmt.Options{}, fmt.Errorf("failed to get context flag: %w", err)
	}
	width, err := cmd.Flags().GetUint8("width")
	if err != nil {
		return diagfmt.Options{}, fmt.Errorf("failed to get width flag: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	f, _ := out.(*os.File)
	color, err := useColor(cmd, f)
	if err != nil {
		return diagfmt.Options{}, err
	}

	return diagfmt.Options{
		Pretty: diagfmt.PrettyOpts{
			Color:     color,
			Context:   contextLines,
			PathMode:  pathMode,
			Width:     width,
			ShowNotes: notes,
		},
		JSON: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     notes,
		},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "vhdlcheck",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		},
		Sorted: s.sort,
	}, nil
}

// countCached counts documents answered from the disk cache. rec is nil when
// the progress view consumed the events.
func countCached(rec *pipeline.Recorder) int {
	if rec == nil {
		return 0
	}
	n := 0
	for _, ev := range rec.Events() {
		if ev.Status == pipeline.StatusCached {
			n++
		}
	}
	return n
}

// countErrors counts error-severity entries for the pretty summary line.
func countErrors(bag *diag.Bag) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
