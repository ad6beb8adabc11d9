// Package domain contains the instrumentation workflow and per-file pipeline.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/jscov/internal/adapter"
	"github.com/mouse-blink/jscov/internal/controller"
	m "github.com/mouse-blink/jscov/internal/model"
)

// ErrNoOutput is returned when neither an output directory nor in-place
// mode was selected.
var ErrNoOutput = errors.New("no output directory and not in place")

// EstimateArgs selects the sources and instrumentation settings of a run.
type EstimateArgs struct {
	Paths   []m.Path
	Exclude []string
	Target  m.Target
	Threads int
}

// InstrumentArgs extends EstimateArgs for runs that write output.
type InstrumentArgs struct {
	EstimateArgs
	// NoManifest skips writing the manifest into the output directory.
	NoManifest bool
}

// WatchArgs configures a watch session. An initial full pass runs first.
type WatchArgs struct {
	InstrumentArgs
}

// Workflow defines the instrumentation operations exposed to the CLI.
type Workflow interface {
	// Estimate instruments every source in memory and displays the counter
	// counts without writing anything.
	Estimate(ctx context.Context, args EstimateArgs) error
	// Instrument instruments every source and writes the result.
	Instrument(ctx context.Context, args InstrumentArgs) error
	// Watch instruments every source, then re-instruments changed files
	// until ctx is done.
	Watch(ctx context.Context, args WatchArgs) error
}

type workflow struct {
	fsAdapter adapter.SourceFSAdapter
	store     adapter.OutputStore
	watcher   adapter.Watcher
	ui        controller.UI
	orch      Orchestrator
	log       *slog.Logger
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	store adapter.OutputStore,
	watcher adapter.Watcher,
	ui controller.UI,
	orch Orchestrator,
	log *slog.Logger,
) Workflow {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &workflow{
		fsAdapter: fsAdapter,
		store:     store,
		watcher:   watcher,
		ui:        ui,
		orch:      orch,
		log:       log,
	}
}

func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.ui.Start(controller.WithListMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	args.Target.DryRun = true

	sources, err := w.fsAdapter.Get(args.Paths, args.Exclude)
	if err != nil {
		return w.ui.DisplaySummary(nil, err)
	}

	results, err := w.run(ctx, sources, args.Target, threadsOf(args.Threads))

	return w.ui.DisplaySummary(results, err)
}

func (w *workflow) Instrument(ctx context.Context, args InstrumentArgs) error {
	if err := w.ui.Start(controller.WithInstrumentMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	results, err := w.instrumentAll(ctx, args)

	return w.ui.DisplaySummary(results, err)
}

func (w *workflow) Watch(ctx context.Context, args WatchArgs) error {
	if w.watcher == nil {
		return fmt.Errorf("watch mode needs a watcher")
	}

	if err := w.ui.Start(controller.WithWatchMode()); err != nil {
		return fmt.Errorf("failed to start UI: %w", err)
	}
	defer w.ui.Close()

	results, err := w.instrumentAll(ctx, args.InstrumentArgs)
	if derr := w.ui.DisplaySummary(results, err); derr != nil && !isFileFault(derr) {
		return derr
	}

	onChange := func(paths []m.Path) {
		w.reinstrument(ctx, args.InstrumentArgs, paths)
	}

	if err := w.watcher.Watch(ctx, args.Paths, onChange); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	return nil
}

// reinstrument handles one debounced batch of changes. Sources are
// rediscovered from the original roots so relative paths and excludes
// stay the same as in the initial pass.
func (w *workflow) reinstrument(ctx context.Context, args InstrumentArgs, changed []m.Path) {
	sources, err := w.fsAdapter.Get(args.Paths, args.Exclude)
	if err != nil {
		w.log.Error("rescan failed", "error", err)
		return
	}

	wanted := make(map[m.Path]bool, len(changed))
	for _, p := range changed {
		wanted[p] = true
	}

	var batch []m.Source

	for _, s := range sources {
		if s.Origin != nil && wanted[s.Origin.Path] {
			batch = append(batch, s)
		}
	}

	if len(batch) == 0 {
		return
	}

	w.log.Info("re-instrumenting", "files", len(batch))

	if _, err := w.run(ctx, batch, args.Target, threadsOf(args.Threads)); err != nil {
		w.log.Error("re-instrumentation failed", "error", err)
	}
}

func (w *workflow) instrumentAll(ctx context.Context, args InstrumentArgs) ([]m.FileResult, error) {
	if !args.Target.InPlace && args.Target.Output == "" {
		return nil, ErrNoOutput
	}

	sources, err := w.fsAdapter.Get(args.Paths, args.Exclude)
	if err != nil {
		return nil, err
	}

	results, runErr := w.run(ctx, sources, args.Target, threadsOf(args.Threads))
	if runErr != nil && !isFileFault(runErr) {
		return results, runErr
	}

	if !args.Target.InPlace && !args.NoManifest && len(results) > 0 {
		path, err := w.store.SaveManifest(args.Target.Output, results)
		if err != nil {
			return results, err
		}

		w.log.Debug("manifest written", "path", path)
	}

	return results, runErr
}

// fileFaults joins the per-file instrumentation errors of a run. The run
// itself completed.
type fileFaults struct {
	err error
}

func (f *fileFaults) Error() string { return f.err.Error() }

func (f *fileFaults) Unwrap() error { return f.err }

func isFileFault(err error) bool {
	var ff *fileFaults

	return errors.As(err, &ff)
}

// run processes sources on a bounded pool. Results keep the order of
// sources. An I/O failure cancels the remaining work and is returned;
// per-file faults are collected and returned together once all files ran.
func (w *workflow) run(ctx context.Context, sources []m.Source, target m.Target, threads int) ([]m.FileResult, error) {
	w.ui.DisplayPlan(len(sources), threads)

	results := make([]m.FileResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, source := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := w.orch.Instrument(gctx, source, target)
			if err != nil {
				return err
			}

			results[i] = res
			w.logResult(res)
			w.ui.DisplayFileResult(res)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return compact(results), err
	}

	var faults []error

	for _, r := range results {
		if r.Error != nil {
			faults = append(faults, r.Error)
		}
	}

	if len(faults) > 0 {
		return results, &fileFaults{err: errors.Join(faults...)}
	}

	return results, nil
}

func (w *workflow) logResult(res m.FileResult) {
	switch {
	case res.Error != nil:
		// already logged by the orchestrator
	case res.Skipped:
		w.log.Info("skipped", "path", res.Source.Rel, "reason", res.Reason)
	default:
		w.log.Info("instrumented", "path", res.Source.Rel,
			"statements", res.Counts.Statements,
			"functions", res.Counts.Functions,
			"branches", res.Counts.Branches,
			"output", res.Output)
	}
}

// compact drops the slots of files that never ran.
func compact(results []m.FileResult) []m.FileResult {
	out := results[:0]

	for _, r := range results {
		if r.Source.Origin != nil {
			out = append(out, r)
		}
	}

	return out
}

func threadsOf(n int) int {
	if n <= 0 {
		return 1
	}

	return n
}
