package domain_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/jscov/internal/adapter"
	adaptermocks "github.com/mouse-blink/jscov/internal/adapter/mocks"
	controllermocks "github.com/mouse-blink/jscov/internal/controller/mocks"
	"github.com/mouse-blink/jscov/internal/domain"
	domainmocks "github.com/mouse-blink/jscov/internal/domain/mocks"
	m "github.com/mouse-blink/jscov/internal/model"
)

type workflowMocks struct {
	fs      *adaptermocks.MockSourceFSAdapter
	store   *adaptermocks.MockOutputStore
	watcher *adaptermocks.MockWatcher
	ui      *controllermocks.MockUI
	orch    *domainmocks.MockOrchestrator
}

func newTestWorkflow(t *testing.T) (domain.Workflow, workflowMocks) {
	t.Helper()

	mocks := workflowMocks{
		fs:      adaptermocks.NewMockSourceFSAdapter(t),
		store:   adaptermocks.NewMockOutputStore(t),
		watcher: adaptermocks.NewMockWatcher(t),
		ui:      controllermocks.NewMockUI(t),
		orch:    domainmocks.NewMockOrchestrator(t),
	}

	wf := domain.NewWorkflow(mocks.fs, mocks.store, mocks.watcher, mocks.ui, mocks.orch, nil)

	return wf, mocks
}

func testSources(names ...string) []m.Source {
	sources := make([]m.Source, 0, len(names))
	for _, n := range names {
		sources = append(sources, m.Source{Origin: &m.File{Path: m.Path("/p/" + n), Hash: "h-" + n}, Rel: m.Path(n)})
	}

	return sources
}

func instrumentArgs(threads int) domain.InstrumentArgs {
	return domain.InstrumentArgs{
		EstimateArgs: domain.EstimateArgs{
			Paths:   []m.Path{"./..."},
			Exclude: []string{"dist/"},
			Target:  m.Target{Output: "out"},
			Threads: threads,
		},
	}
}

func TestWorkflow_Instrument_Success(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	sources := testSources("a.js", "b.js", "c.js")
	args := instrumentArgs(2)

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(args.Paths, args.Exclude).Return(sources, nil)
	mk.ui.EXPECT().DisplayPlan(3, 2).Return()
	mk.orch.EXPECT().Instrument(mock.Anything, mock.Anything, args.Target).
		RunAndReturn(func(_ context.Context, s m.Source, _ m.Target) (m.FileResult, error) {
			return m.FileResult{Source: s, Output: "out/" + s.Rel, Counts: m.Counts{Statements: 1}}, nil
		}).Times(3)
	mk.ui.EXPECT().DisplayFileResult(mock.Anything).Return().Times(3)
	mk.store.EXPECT().SaveManifest(m.Path("out"), mock.Anything).
		Run(func(_ m.Path, results []m.FileResult) {
			require.Len(t, results, 3)
			// results keep discovery order regardless of completion order
			for i, r := range results {
				assert.Equal(t, sources[i].Rel, r.Source.Rel)
			}
		}).
		Return(m.Path("out/jscov-manifest.yaml"), nil)
	mk.ui.EXPECT().DisplaySummary(mock.Anything, nil).Return(nil)

	require.NoError(t, wf.Instrument(context.Background(), args))
}

func TestWorkflow_Instrument_FileFaultsAreCollected(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	sources := testSources("a.js", "b.js")
	args := instrumentArgs(1)
	errA := errors.New("a.js:1:0: syntax error")

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(sources, nil)
	mk.ui.EXPECT().DisplayPlan(2, 1).Return()
	mk.orch.EXPECT().Instrument(mock.Anything, sources[0], mock.Anything).Return(m.FileResult{Source: sources[0], Error: errA}, nil)
	mk.orch.EXPECT().Instrument(mock.Anything, sources[1], mock.Anything).Return(m.FileResult{Source: sources[1]}, nil)
	mk.ui.EXPECT().DisplayFileResult(mock.Anything).Return().Times(2)
	mk.store.EXPECT().SaveManifest(m.Path("out"), mock.Anything).Return(m.Path("out/jscov-manifest.yaml"), nil)
	mk.ui.EXPECT().DisplaySummary(mock.Anything, mock.Anything).RunAndReturn(func(results []m.FileResult, err error) error {
		assert.Len(t, results, 2)
		return err
	})

	err := wf.Instrument(context.Background(), args)
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
}

func TestWorkflow_Instrument_IOErrorAborts(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	sources := testSources("a.js", "b.js", "c.js")
	args := instrumentArgs(1)
	diskErr := errors.New("disk full")

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(sources, nil)
	mk.ui.EXPECT().DisplayPlan(3, 1).Return()
	mk.orch.EXPECT().Instrument(mock.Anything, sources[0], mock.Anything).Return(m.FileResult{}, diskErr)
	mk.ui.EXPECT().DisplaySummary(mock.Anything, mock.Anything).RunAndReturn(func(_ []m.FileResult, err error) error {
		return err
	})

	err := wf.Instrument(context.Background(), args)
	require.ErrorIs(t, err, diskErr)
	mk.orch.AssertNumberOfCalls(t, "Instrument", 1)
}

func TestWorkflow_Instrument_InPlaceSkipsManifest(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	sources := testSources("a.js")
	args := instrumentArgs(1)
	args.Target = m.Target{InPlace: true}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(sources, nil)
	mk.ui.EXPECT().DisplayPlan(1, 1).Return()
	mk.orch.EXPECT().Instrument(mock.Anything, sources[0], args.Target).Return(m.FileResult{Source: sources[0]}, nil)
	mk.ui.EXPECT().DisplayFileResult(mock.Anything).Return()
	mk.ui.EXPECT().DisplaySummary(mock.Anything, nil).Return(nil)

	require.NoError(t, wf.Instrument(context.Background(), args))
}

func TestWorkflow_Instrument_NoOutput(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	args := instrumentArgs(1)
	args.Target = m.Target{}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.ui.EXPECT().DisplaySummary([]m.FileResult(nil), domain.ErrNoOutput).Return(domain.ErrNoOutput)

	require.ErrorIs(t, wf.Instrument(context.Background(), args), domain.ErrNoOutput)
}

func TestWorkflow_Instrument_GetSourcesError(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	getErr := errors.New("root path error")

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, getErr)
	mk.ui.EXPECT().DisplaySummary([]m.FileResult(nil), getErr).Return(getErr)

	require.ErrorIs(t, wf.Instrument(context.Background(), instrumentArgs(1)), getErr)
}

func TestWorkflow_Instrument_StartError(t *testing.T) {
	wf, mk := newTestWorkflow(t)

	mk.ui.EXPECT().Start(mock.Anything).Return(errors.New("no tty"))

	err := wf.Instrument(context.Background(), instrumentArgs(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start UI")
}

func TestWorkflow_Estimate_IsDryRun(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	sources := testSources("a.js")
	args := domain.EstimateArgs{Paths: []m.Path{"."}, Target: m.Target{Output: "out"}}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(args.Paths, []string(nil)).Return(sources, nil)
	mk.ui.EXPECT().DisplayPlan(1, 1).Return()
	mk.orch.EXPECT().Instrument(mock.Anything, sources[0], m.Target{Output: "out", DryRun: true}).
		Return(m.FileResult{Source: sources[0], Counts: m.Counts{Statements: 4}}, nil)
	mk.ui.EXPECT().DisplayFileResult(mock.Anything).Return()
	mk.ui.EXPECT().DisplaySummary(mock.Anything, nil).Return(nil)

	require.NoError(t, wf.Estimate(context.Background(), args))
}

func TestWorkflow_Watch_ReinstrumentsChangedFiles(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	sources := testSources("a.js", "b.js")
	args := domain.WatchArgs{InstrumentArgs: instrumentArgs(1)}
	args.NoManifest = true

	var (
		mu    sync.Mutex
		calls []m.Path
	)

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(args.Paths, args.Exclude).Return(sources, nil)
	mk.ui.EXPECT().DisplayPlan(mock.Anything, 1).Return()
	mk.orch.EXPECT().Instrument(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, s m.Source, _ m.Target) (m.FileResult, error) {
			mu.Lock()
			calls = append(calls, s.Rel)
			mu.Unlock()

			return m.FileResult{Source: s}, nil
		})
	mk.ui.EXPECT().DisplayFileResult(mock.Anything).Return()
	mk.ui.EXPECT().DisplaySummary(mock.Anything, nil).Return(nil)
	mk.watcher.EXPECT().Watch(mock.Anything, args.Paths, mock.Anything).
		RunAndReturn(func(_ context.Context, _ []m.Path, onChange adapter.ChangeHandler) error {
			onChange([]m.Path{"/p/b.js", "/p/unrelated.js"})
			return nil
		})

	require.NoError(t, wf.Watch(context.Background(), args))

	assert.Equal(t, []m.Path{"a.js", "b.js", "b.js"}, calls)
}

func TestWorkflow_Watch_WatcherError(t *testing.T) {
	wf, mk := newTestWorkflow(t)
	args := domain.WatchArgs{InstrumentArgs: instrumentArgs(1)}

	mk.ui.EXPECT().Start(mock.Anything).Return(nil)
	mk.ui.EXPECT().Close().Return()
	mk.fs.EXPECT().Get(mock.Anything, mock.Anything).Return([]m.Source{}, nil)
	mk.ui.EXPECT().DisplayPlan(0, 1).Return()
	mk.ui.EXPECT().DisplaySummary(mock.Anything, nil).Return(nil)
	mk.watcher.EXPECT().Watch(mock.Anything, mock.Anything, mock.Anything).Return(errors.New("inotify limit"))

	err := wf.Watch(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch failed")
}
