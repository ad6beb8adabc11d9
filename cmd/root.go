// Package cmd provides the root command and CLI setup for jscov.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/jscov/internal/adapter"
	"github.com/mouse-blink/jscov/internal/controller"
	"github.com/mouse-blink/jscov/internal/domain"
	m "github.com/mouse-blink/jscov/internal/model"
)

const defaultOutputDir = ".jscov-out"

var logLevel = new(slog.LevelVar)
var logger *slog.Logger

var jsFileAdapter adapter.JSFileAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var configAdapter adapter.ConfigAdapter
var outputStore adapter.OutputStore
var watcher adapter.Watcher
var orchestrator domain.Orchestrator
var workflow domain.Workflow
var ui controller.UI

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	jsFileAdapter = adapter.NewLocalJSFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	configAdapter = adapter.NewLocalConfigAdapter()
	outputStore = adapter.NewLocalOutputStore(sourceFSAdapter)
	watcher = adapter.NewLocalWatcher(adapter.DefaultDebounce, logger)
	orchestrator = domain.NewOrchestrator(sourceFSAdapter, jsFileAdapter, outputStore, logger)
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		outputStore,
		watcher,
		ui,
		orchestrator,
		logger,
	)
}

var configFlag string
var parallelFlag int
var excludeFlags []string
var outputFlag string
var inPlaceFlag bool
var reportLogicFlag bool
var noPreambleFlag bool
var noManifestFlag bool
var coverageVariableFlag string
var saltFlag string
var verboseFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

const pathsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./lib ./src    scan multiple directories (non-recursive)
  - app.js         a single file

Only .js, .mjs and .cjs files are instrumented. node_modules, vendor and
hidden directories are never scanned. Without paths, the include list of
the config file is used, falling back to ./...`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jscov [paths...]",
		Short: "JavaScript coverage instrumenter",
		Long: `jscov instruments JavaScript sources with statement, function and branch
counters so a test run can record which code executed.

Instrumented files are written under --output, mirroring the source tree,
together with a manifest listing every file's counters.

` + pathsHelp,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verboseFlag {
				logLevel.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			instrumentArgs, err := resolveArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.Instrument(cmd.Context(), instrumentArgs)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", adapter.DefaultConfigFile, "path to the config file")
	flags.IntVarP(&parallelFlag, "parallel", "p", 1, "number of parallel workers")
	flags.StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching a gitignore pattern (can be repeated)")
	flags.StringVarP(&outputFlag, "output", "o", defaultOutputDir, "directory instrumented files are written to")
	flags.BoolVar(&inPlaceFlag, "in-place", false, "overwrite source files instead of writing to --output")
	flags.BoolVar(&reportLogicFlag, "report-logic", false, "record truthiness of every logical operand")
	flags.BoolVar(&noPreambleFlag, "no-preamble", false, "omit the coverage store preamble")
	flags.BoolVar(&noManifestFlag, "no-manifest", false, "do not write the manifest into --output")
	flags.StringVar(&coverageVariableFlag, "coverage-variable", "", "global variable holding the coverage store (default __coverage__)")
	flags.StringVar(&saltFlag, "salt", "", "salt mixed into the per-file accessor name")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output to stderr")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// resolveArgs layers the command-line flags over the config file.
func resolveArgs(cmd *cobra.Command, args []string) (domain.InstrumentArgs, error) {
	flags := cmd.Flags()

	cfg, err := configAdapter.Load(m.Path(configFlag), flags.Changed("config"))
	if err != nil {
		return domain.InstrumentArgs{}, fmt.Errorf("failed to load config: %w", err)
	}

	paths := parsePaths(args)
	if len(paths) == 0 {
		paths = parsePaths(cfg.Include)
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	exclude := append(append([]string{}, cfg.Exclude...), excludeFlags...)

	target := m.Target{
		Output:           m.Path(pick(flags.Changed("output"), outputFlag, cfg.Output, defaultOutputDir)),
		InPlace:          inPlaceFlag || cfg.InPlace,
		ReportLogic:      reportLogicFlag || cfg.ReportLogic,
		NoPreamble:       noPreambleFlag || (cfg.Preamble != nil && !*cfg.Preamble),
		CoverageVariable: pick(flags.Changed("coverage-variable"), coverageVariableFlag, cfg.CoverageVariable, ""),
		Salt:             pick(flags.Changed("salt"), saltFlag, cfg.Salt, ""),
	}

	if flags.Changed("in-place") && !inPlaceFlag {
		target.InPlace = false
	}

	if target.InPlace {
		target.Output = ""
	}

	threads := parallelFlag
	if !flags.Changed("parallel") && cfg.Parallel > 0 {
		threads = cfg.Parallel
	}

	if threads < 1 {
		return domain.InstrumentArgs{}, fmt.Errorf("--parallel must be at least 1, got %d", threads)
	}

	logger.Debug("resolved arguments",
		"paths", paths,
		"exclude", exclude,
		"output", target.Output,
		"in_place", target.InPlace,
		"threads", threads)

	return domain.InstrumentArgs{
		EstimateArgs: domain.EstimateArgs{
			Paths:   paths,
			Exclude: exclude,
			Target:  target,
			Threads: threads,
		},
		NoManifest: noManifestFlag,
	}, nil
}

// pick returns the flag value when it was set explicitly, else the config
// value, else the fallback.
func pick(changed bool, flagValue, configValue, fallback string) string {
	switch {
	case changed:
		return flagValue
	case configValue != "":
		return configValue
	default:
		return fallback
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
