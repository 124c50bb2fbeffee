package importer

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inwheel/accessibility-importer/internal/domain"
)

// recordingRunner reports every call on a channel.
type recordingRunner struct {
	calls chan domain.RunParams
	err   error
}

func newRecordingRunner(err error) *recordingRunner {
	return &recordingRunner{calls: make(chan domain.RunParams, 10), err: err}
}

func (r *recordingRunner) Run(ctx context.Context, params domain.RunParams) ([]domain.RunReport, error) {
	r.calls <- params
	if r.err != nil {
		return nil, r.err
	}
	return []domain.RunReport{{Region: "switzerland", PlacesCommitted: 3}}, nil
}

func waitCall(t *testing.T, r *recordingRunner) domain.RunParams {
	t.Helper()
	select {
	case p := <-r.calls:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("runner was not called")
		return domain.RunParams{}
	}
}

func startWorker(t *testing.T, w *ImportWorker) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	return done
}

func TestImportWorker_RunsOnStartAndEveryInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	runner := newRecordingRunner(nil)
	w := NewImportWorker(runner, Config{
		Interval:   time.Hour,
		Regions:    []string{"switzerland"},
		Overwrite:  true,
		RunOnStart: true,
	}, clock, zap.NewNop())

	done := startWorker(t, w)

	first := waitCall(t, runner)
	assert.Equal(t, []string{"switzerland"}, first.Regions)
	assert.True(t, first.Overwrite)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Hour)
	waitCall(t, runner)

	require.NoError(t, w.Stop())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestImportWorker_WaitsForFirstTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	runner := newRecordingRunner(nil)
	w := NewImportWorker(runner, Config{Interval: time.Minute}, clock, zap.NewNop())

	done := startWorker(t, w)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Empty(t, runner.calls)

	clock.Advance(time.Minute)
	params := waitCall(t, runner)
	assert.Empty(t, params.Regions, "no regions means the whole catalog")

	require.NoError(t, w.Stop())
	assert.NoError(t, <-done)
}

func TestImportWorker_SurvivesFailedRun(t *testing.T) {
	clock := clockwork.NewFakeClock()
	runner := newRecordingRunner(stderrors.New("batch 2/5 rolled back"))
	w := NewImportWorker(runner, Config{Interval: time.Minute, RunOnStart: true}, clock, zap.NewNop())

	done := startWorker(t, w)
	waitCall(t, runner)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Minute)
	waitCall(t, runner)

	require.NoError(t, w.Stop())
	assert.NoError(t, <-done)
}

func TestImportWorker_StopIsIdempotent(t *testing.T) {
	w := NewImportWorker(newRecordingRunner(nil), Config{Interval: time.Minute}, nil, zap.NewNop())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
	assert.Equal(t, "scheduled-import", w.Name())
}
