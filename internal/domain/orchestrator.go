package domain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mouse-blink/jscov/internal/adapter"
	"github.com/mouse-blink/jscov/internal/domain/instrument"
	m "github.com/mouse-blink/jscov/internal/model"
)

// Orchestrator runs the per-file pipeline: read the source, parse it,
// instrument it and persist the result according to the target.
type Orchestrator interface {
	// Instrument processes one source. Faults in the source itself, such as
	// syntax errors, are reported through FileResult.Error; the returned
	// error is reserved for I/O failures that should stop the run.
	Instrument(ctx context.Context, source m.Source, target m.Target) (m.FileResult, error)
}

type orchestrator struct {
	fsAdapter adapter.SourceFSAdapter
	jsAdapter adapter.JSFileAdapter
	store     adapter.OutputStore
	log       *slog.Logger
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// filesystem, parser and output adapters.
func NewOrchestrator(fsAdapter adapter.SourceFSAdapter, jsAdapter adapter.JSFileAdapter, store adapter.OutputStore, log *slog.Logger) Orchestrator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &orchestrator{
		fsAdapter: fsAdapter,
		jsAdapter: jsAdapter,
		store:     store,
		log:       log,
	}
}

func (o *orchestrator) Instrument(ctx context.Context, source m.Source, target m.Target) (m.FileResult, error) {
	result := m.FileResult{Source: source}

	if source.Origin == nil {
		return result, fmt.Errorf("source origin is nil")
	}

	src, err := o.fsAdapter.ReadFile(source.Origin.Path)
	if err != nil {
		return result, fmt.Errorf("failed to read %s: %w", source.Origin.Path, err)
	}

	tree, err := o.jsAdapter.Parse(ctx, src)
	if err != nil {
		return result, fmt.Errorf("failed to parse %s: %w", source.Origin.Path, err)
	}
	defer tree.Close()

	res, err := instrument.InstrumentTree(tree.RootNode(), src, string(source.Rel), o.options(target))
	if err != nil {
		result.Error = err
		o.log.Error("instrumentation failed", "path", source.Rel, "error", err)

		return result, nil
	}

	result.Coverage = res.Coverage
	result.Counts = res.Coverage.Counts()
	result.Skipped = res.Skipped
	result.Reason = res.Reason

	if target.DryRun || (res.Skipped && target.InPlace) {
		return result, nil
	}

	if !target.InPlace && target.Output == "" {
		return result, ErrNoOutput
	}

	// Skipped files are still copied so the output tree stays complete.
	out, err := o.store.Save(o.outputRoot(target), source, res.Code)
	if err != nil {
		return result, err
	}

	result.Output = out

	return result, nil
}

func (o *orchestrator) options(target m.Target) instrument.Options {
	return instrument.Options{
		CoverageVariable: target.CoverageVariable,
		ReportLogic:      target.ReportLogic,
		NoPreamble:       target.NoPreamble,
		Salt:             target.Salt,
		Logger:           o.log,
	}
}

func (o *orchestrator) outputRoot(target m.Target) m.Path {
	if target.InPlace {
		return ""
	}

	return target.Output
}
